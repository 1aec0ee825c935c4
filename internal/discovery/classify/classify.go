// Package classify turns file paths relative to the entrypoints directory
// into typed entrypoint candidates. The naming convention is the wire format:
// a path either matches one of the ordered rules below or it is not an
// entrypoint at all.
package classify

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/crxforge/cli/internal/domain"
)

// Match is the outcome of classifying a single relative path.
type Match struct {
	Kind domain.Kind
	Name string
}

// ContentScriptsDir is the output subdirectory content-script bundles are
// isolated into. They are injected per-match-pattern rather than referenced
// from a manifest entry list, so they never share the build root.
const ContentScriptsDir = "content-scripts"

var scriptExts = map[string]bool{
	".ts": true, ".tsx": true, ".js": true, ".jsx": true,
	".mts": true, ".mjs": true,
}

var styleExts = map[string]bool{
	".css": true, ".scss": true, ".sass": true, ".less": true,
}

// Exact HTML basenames recognized as dedicated entrypoint kinds.
var htmlKinds = map[string]domain.Kind{
	"popup":     domain.KindPopup,
	"options":   domain.KindOptions,
	"devtools":  domain.KindDevtools,
	"sidepanel": domain.KindSidepanel,
	"bookmarks": domain.KindBookmarks,
	"history":   domain.KindHistory,
	"newtab":    domain.KindNewtab,
	"sandbox":   domain.KindSandbox,
}

// Suffix patterns that name their entrypoint: named.sidepanel.html,
// named.sandbox.html.
var htmlSuffixKinds = map[string]domain.Kind{
	".sidepanel": domain.KindSidepanel,
	".sandbox":   domain.KindSandbox,
}

// Classify decides whether relPath denotes an entrypoint and, if so, its
// kind and logical name. It returns nil for paths matching no rule; callers
// skip those silently.
//
// Equivalent shapes classify identically: popup.html and popup/index.html
// both yield {popup, "popup"}, overlay.content.ts and
// overlay.content/index.ts both yield {content-script, "overlay"}.
func Classify(relPath string) *Match {
	stem, ext, ok := splitEntry(relPath)
	if !ok {
		return nil
	}

	switch {
	case scriptExts[ext]:
		return classifyScript(stem)
	case ext == ".html":
		return classifyHTML(stem)
	case styleExts[ext]:
		return classifyStyle(stem)
	}
	return classifyByLanguage(relPath, stem)
}

// OutputDir computes the directory a kind's bundle is emitted into. Every
// kind emits to the build root except content scripts and their styles.
func OutputDir(kind domain.Kind, outDir string) string {
	if kind == domain.KindContentScript || kind == domain.KindContentScriptStyle {
		return filepath.Join(outDir, ContentScriptsDir)
	}
	return outDir
}

// splitEntry normalizes the path and reduces it to a logical stem plus
// extension. Only two shapes are eligible: a file directly inside the
// entrypoints directory, or a directory containing an index file. Anything
// nested deeper belongs to an entrypoint's private sources and is inert.
func splitEntry(relPath string) (stem, ext string, ok bool) {
	rel := path.Clean(filepath.ToSlash(relPath))
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", "", false
	}

	segs := strings.Split(rel, "/")
	switch len(segs) {
	case 1:
		base := segs[0]
		ext = strings.ToLower(path.Ext(base))
		stem = strings.TrimSuffix(base, path.Ext(base))
		return stem, ext, stem != "" && ext != ""
	case 2:
		// Directory form: the index file's extension discriminates, the
		// directory name carries the logical name.
		base := segs[1]
		ext = strings.ToLower(path.Ext(base))
		if strings.TrimSuffix(base, path.Ext(base)) != "index" || ext == "" {
			return "", "", false
		}
		return segs[0], ext, true
	}
	return "", "", false
}

func classifyScript(stem string) *Match {
	switch {
	case stem == "background":
		return &Match{Kind: domain.KindBackground, Name: "background"}
	case stem == "content":
		return &Match{Kind: domain.KindContentScript, Name: "content"}
	case strings.HasSuffix(stem, ".content"):
		return &Match{Kind: domain.KindContentScript, Name: strings.TrimSuffix(stem, ".content")}
	}
	return &Match{Kind: domain.KindUnlistedScript, Name: stem}
}

func classifyHTML(stem string) *Match {
	if kind, ok := htmlKinds[stem]; ok {
		return &Match{Kind: kind, Name: stem}
	}
	for suffix, kind := range htmlSuffixKinds {
		if strings.HasSuffix(stem, suffix) {
			return &Match{Kind: kind, Name: strings.TrimSuffix(stem, suffix)}
		}
	}
	return &Match{Kind: domain.KindUnlistedPage, Name: stem}
}

func classifyStyle(stem string) *Match {
	switch {
	case stem == "content":
		return &Match{Kind: domain.KindContentScriptStyle, Name: "content"}
	case strings.HasSuffix(stem, ".content"):
		return &Match{Kind: domain.KindContentScriptStyle, Name: strings.TrimSuffix(stem, ".content")}
	}
	return &Match{Kind: domain.KindUnlistedStyle, Name: stem}
}

// classifyByLanguage is the fallback for extensions outside the core tables.
// Language identification settles which unlisted bucket, if any, the file
// falls into (e.g. .styl resolves to Stylus and becomes an unlisted style).
func classifyByLanguage(relPath, stem string) *Match {
	lang, _ := enry.GetLanguageByExtension(relPath)
	switch lang {
	case "JavaScript", "TypeScript", "TSX", "CoffeeScript":
		return &Match{Kind: domain.KindUnlistedScript, Name: stem}
	case "CSS", "SCSS", "Sass", "Less", "Stylus", "PostCSS":
		return &Match{Kind: domain.KindUnlistedStyle, Name: stem}
	case "HTML":
		return &Match{Kind: domain.KindUnlistedPage, Name: stem}
	}
	return nil
}
