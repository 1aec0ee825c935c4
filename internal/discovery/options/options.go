// Package options extracts kind-specific option sets from entrypoint files.
// HTML documents carry options as meta tags, scripts export them from their
// options object; styles carry none.
package options

import (
	"context"
	"fmt"
	"strings"

	"github.com/crxforge/cli/internal/config"
	"github.com/crxforge/cli/internal/domain"
)

// ExtractionError identifies the entrypoint file an extraction failed on.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract entrypoint options from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor resolves the options object of a classified candidate.
type Extractor struct {
	loader ScriptLoader
}

// NewExtractor builds an extractor. A nil loader selects the built-in static
// tree-sitter loader.
func NewExtractor(loader ScriptLoader) *Extractor {
	if loader == nil {
		loader = NewStaticLoader()
	}
	return &Extractor{loader: loader}
}

// handler extracts options for one entrypoint kind.
type handler func(e *Extractor, ctx context.Context, bctx config.BuildContext, cand domain.Candidate) (domain.Options, error)

// handlers is the single dispatch point over the closed kind set. Kinds
// without an entry fall back to the generic page handler.
var handlers = map[domain.Kind]handler{
	domain.KindBackground:         extractBackground,
	domain.KindContentScript:      extractContentScript,
	domain.KindContentScriptStyle: extractStyle,
	domain.KindUnlistedScript:     extractUnlistedScript,
	domain.KindUnlistedStyle:      extractStyle,
	domain.KindPopup:              extractPopup,
	domain.KindOptions:            extractOptionsPage,
	domain.KindSidepanel:          extractSidepanel,
	domain.KindGeneric:            extractGenericPage,
}

// Extract resolves the options for a single candidate. Failures are fatal to
// the surrounding discovery; they are returned as *ExtractionError.
func (e *Extractor) Extract(ctx context.Context, bctx config.BuildContext, cand domain.Candidate) (domain.Options, error) {
	if cand.Virtual() {
		return &domain.BackgroundOptions{}, nil
	}

	h, ok := handlers[cand.Kind]
	if !ok {
		h = handlers[domain.KindGeneric]
	}
	opts, err := h(e, ctx, bctx, cand)
	if err != nil {
		return nil, &ExtractionError{Path: cand.InputPath, Err: err}
	}
	return opts, nil
}

func extractBackground(e *Extractor, ctx context.Context, bctx config.BuildContext, cand domain.Candidate) (domain.Options, error) {
	raw, err := e.loader.Load(ctx, cand.InputPath)
	if err != nil {
		return nil, err
	}
	opts := &domain.BackgroundOptions{
		BaseOptions: decodeBase(raw),
		Type:        getString(raw, "type"),
		Persistent:  getBoolPtr(raw, "persistent"),
	}
	// MV2 background pages cannot be ES modules; the option is dropped
	// rather than rejected so one codebase can target both versions.
	if bctx.ManifestVersion == 2 {
		opts.Type = ""
	}
	return opts, nil
}

func extractContentScript(e *Extractor, ctx context.Context, bctx config.BuildContext, cand domain.Candidate) (domain.Options, error) {
	raw, err := e.loader.Load(ctx, cand.InputPath)
	if err != nil {
		return nil, err
	}
	return &domain.ContentScriptOptions{
		BaseOptions:     decodeBase(raw),
		Matches:         getStringSlice(raw, "matches"),
		ExcludeMatches:  getStringSlice(raw, "exclude_matches"),
		RunAt:           getString(raw, "run_at"),
		AllFrames:       getBool(raw, "all_frames"),
		MatchAboutBlank: getBool(raw, "match_about_blank"),
		World:           getString(raw, "world"),
	}, nil
}

func extractUnlistedScript(e *Extractor, ctx context.Context, bctx config.BuildContext, cand domain.Candidate) (domain.Options, error) {
	raw, err := e.loader.Load(ctx, cand.InputPath)
	if err != nil {
		return nil, err
	}
	return &domain.ScriptOptions{BaseOptions: decodeBase(raw)}, nil
}

// extractStyle covers stylesheet kinds. Stylesheets have no option channel,
// so they always resolve to empty options.
func extractStyle(e *Extractor, ctx context.Context, bctx config.BuildContext, cand domain.Candidate) (domain.Options, error) {
	return &domain.StyleOptions{}, nil
}

func extractPopup(e *Extractor, ctx context.Context, bctx config.BuildContext, cand domain.Candidate) (domain.Options, error) {
	doc, err := readDocumentMeta(cand.InputPath)
	if err != nil {
		return nil, err
	}
	opts := &domain.PopupOptions{
		BaseOptions:  decodeBase(doc.fields),
		DefaultTitle: getString(doc.fields, "default_title"),
		DefaultIcon:  getStringMap(doc.fields, "default_icon"),
		BrowserStyle: getBoolPtr(doc.fields, "browser_style"),
	}
	if opts.DefaultTitle == "" {
		opts.DefaultTitle = doc.title
	}
	return opts, nil
}

func extractOptionsPage(e *Extractor, ctx context.Context, bctx config.BuildContext, cand domain.Candidate) (domain.Options, error) {
	doc, err := readDocumentMeta(cand.InputPath)
	if err != nil {
		return nil, err
	}
	return &domain.OptionsPageOptions{
		BaseOptions:  decodeBase(doc.fields),
		OpenInTab:    getBool(doc.fields, "open_in_tab"),
		BrowserStyle: getBoolPtr(doc.fields, "browser_style"),
		ChromeStyle:  getBoolPtr(doc.fields, "chrome_style"),
	}, nil
}

func extractSidepanel(e *Extractor, ctx context.Context, bctx config.BuildContext, cand domain.Candidate) (domain.Options, error) {
	doc, err := readDocumentMeta(cand.InputPath)
	if err != nil {
		return nil, err
	}
	opts := &domain.SidepanelOptions{
		BaseOptions:   decodeBase(doc.fields),
		DefaultTitle:  getString(doc.fields, "default_title"),
		DefaultIcon:   getString(doc.fields, "default_icon"),
		OpenAtInstall: getBoolPtr(doc.fields, "open_at_install"),
	}
	if opts.DefaultTitle == "" {
		opts.DefaultTitle = doc.title
	}
	return opts, nil
}

func extractGenericPage(e *Extractor, ctx context.Context, bctx config.BuildContext, cand domain.Candidate) (domain.Options, error) {
	doc, err := readDocumentMeta(cand.InputPath)
	if err != nil {
		return nil, err
	}
	return &domain.PageOptions{BaseOptions: decodeBase(doc.fields)}, nil
}

// Field access below tolerates both snake_case and camelCase spellings:
// meta tags use manifest field names (run_at) while script option objects
// use JS property names (runAt).

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "")
}

func lookup(raw map[string]any, key string) (any, bool) {
	want := normalizeKey(key)
	for k, v := range raw {
		if normalizeKey(k) == want {
			return v, true
		}
	}
	return nil, false
}

func decodeBase(raw map[string]any) domain.BaseOptions {
	return domain.BaseOptions{
		Include: getStringSlice(raw, "include"),
		Exclude: getStringSlice(raw, "exclude"),
	}
}

func getString(raw map[string]any, key string) string {
	if v, ok := lookup(raw, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getBool(raw map[string]any, key string) bool {
	if p := getBoolPtr(raw, key); p != nil {
		return *p
	}
	return false
}

func getBoolPtr(raw map[string]any, key string) *bool {
	if v, ok := lookup(raw, key); ok {
		if b, ok := v.(bool); ok {
			return &b
		}
	}
	return nil
}

func getStringSlice(raw map[string]any, key string) []string {
	v, ok := lookup(raw, key)
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{val}
	}
	return nil
}

func getStringMap(raw map[string]any, key string) map[string]string {
	v, ok := lookup(raw, key)
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]string, len(val))
		for k, item := range val {
			switch s := item.(type) {
			case string:
				out[k] = s
			case float64:
				out[k] = fmt.Sprintf("%v", s)
			}
		}
		return out
	case string:
		return map[string]string{"default": val}
	}
	return nil
}
