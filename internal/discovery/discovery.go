// Package discovery turns the entrypoints directory of an extension project
// into a validated, browser-filtered list of build targets. Discovery is
// all-or-nothing: any classification, extraction or validation failure
// aborts the whole run, because a partial entrypoint list would produce a
// misleading manifest.
package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/crxforge/cli/internal/config"
	"github.com/crxforge/cli/internal/discovery/classify"
	"github.com/crxforge/cli/internal/discovery/options"
	"github.com/crxforge/cli/internal/domain"
	"github.com/crxforge/cli/internal/logger"
)

// Discoverer runs entrypoint discovery for one build context at a time.
type Discoverer struct {
	extractor *options.Extractor
	log       logger.Logger
}

// New creates a Discoverer. A nil loader selects the static tree-sitter
// loader; a nil log discards nothing and writes to stdout.
func New(loader options.ScriptLoader, log logger.Logger) *Discoverer {
	if log == nil {
		log = &logger.StdoutLogger{}
	}
	return &Discoverer{
		extractor: options.NewExtractor(loader),
		log:       log,
	}
}

// Discover globs the entrypoints directory, classifies every file, extracts
// per-kind options concurrently, applies browser and name filtering, injects
// the synthetic background entry required by serve mode, and validates the
// result. The returned slice is immutable by convention.
func (d *Discoverer) Discover(ctx context.Context, bctx config.BuildContext) ([]domain.Entrypoint, error) {
	if err := bctx.Validate(); err != nil {
		return nil, fmt.Errorf("invalid build context: %w", err)
	}

	relPaths, err := listFiles(bctx.EntrypointsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan entrypoints directory %s: %w", bctx.EntrypointsDir, err)
	}

	candidates := d.classifyAll(bctx, relPaths)

	eps, err := d.extractAll(ctx, bctx, candidates)
	if err != nil {
		return nil, err
	}

	d.applyBrowserFilter(bctx, eps)
	eps = d.injectVirtualBackground(bctx, eps)

	return finalize(bctx, eps)
}

// classifyAll maps relative paths to candidates, silently dropping paths
// that match no naming rule.
func (d *Discoverer) classifyAll(bctx config.BuildContext, relPaths []string) []domain.Candidate {
	var candidates []domain.Candidate
	for _, rel := range relPaths {
		match := classify.Classify(rel)
		if match == nil {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			Kind:      match.Kind,
			Name:      match.Name,
			InputPath: filepath.Join(bctx.EntrypointsDir, filepath.FromSlash(rel)),
			OutputDir: classify.OutputDir(match.Kind, bctx.OutDir),
		})
	}
	return candidates
}

// extractAll runs option extraction for all candidates concurrently. Each
// extraction touches only its own input file and writes only its own slot,
// so no locking is needed; the errgroup join guarantees no candidate
// partially participates in validation.
func (d *Discoverer) extractAll(ctx context.Context, bctx config.BuildContext, candidates []domain.Candidate) ([]domain.Entrypoint, error) {
	eps := make([]domain.Entrypoint, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	for i, cand := range candidates {
		g.Go(func() error {
			opts, err := d.extractor.Extract(gctx, bctx, cand)
			if err != nil {
				return err
			}
			eps[i] = domain.Entrypoint{Candidate: cand, Options: opts}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return eps, nil
}

// applyBrowserFilter marks entrypoints whose include/exclude options rule
// out the current target browser. Skipped entries are dropped before
// uniqueness validation.
func (d *Discoverer) applyBrowserFilter(bctx config.BuildContext, eps []domain.Entrypoint) {
	for i := range eps {
		if eps[i].Options == nil {
			continue
		}
		if !eps[i].Options.Base().IncludedFor(bctx.Browser) {
			eps[i].Skipped = true
			d.log.Logf("skipping entrypoint %s: not targeted at %s\n", eps[i].Name, bctx.Browser)
		}
	}
}

// injectVirtualBackground appends a synthetic background entrypoint in serve
// mode when the project defines none. The dev-reload transport needs a
// background context to attach to even in extensions that don't otherwise
// have one.
func (d *Discoverer) injectVirtualBackground(bctx config.BuildContext, eps []domain.Entrypoint) []domain.Entrypoint {
	if bctx.Command != config.CommandServe {
		return eps
	}
	for _, ep := range eps {
		if ep.Kind == domain.KindBackground && !ep.Skipped {
			return eps
		}
	}
	return append(eps, domain.Entrypoint{
		Candidate: domain.Candidate{
			Kind:      domain.KindBackground,
			Name:      "background",
			InputPath: domain.VirtualBackground,
			OutputDir: bctx.OutDir,
		},
		Options: &domain.BackgroundOptions{},
	})
}

// listFiles walks the entrypoints directory and returns slash-separated
// relative paths of all regular files in lexical order. Hidden files and
// directories are inert, as are dependency directories.
func listFiles(dir string) ([]string, error) {
	skipDirs := map[string]struct{}{
		"node_modules": {},
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := de.Name()
		if de.IsDir() {
			if path == dir {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	return files, err
}
