// Package manifest renders a resolved entrypoint set into a WebExtension
// manifest. It is the first downstream consumer of discovery output.
package manifest

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/crxforge/cli/internal/config"
	"github.com/crxforge/cli/internal/domain"
)

// Manifest is the JSON shape of manifest.json for MV2 and MV3. Fields that
// only exist in one version are left empty in the other.
type Manifest struct {
	ManifestVersion int    `json:"manifest_version"`
	Name            string `json:"name"`
	Version         string `json:"version"`
	Description     string `json:"description,omitempty"`

	Background         *Background     `json:"background,omitempty"`
	Action             *Action         `json:"action,omitempty"`
	BrowserAction      *Action         `json:"browser_action,omitempty"`
	OptionsUI          *OptionsUI      `json:"options_ui,omitempty"`
	DevtoolsPage       string          `json:"devtools_page,omitempty"`
	ChromeURLOverrides *URLOverrides   `json:"chrome_url_overrides,omitempty"`
	SidePanel          *SidePanel      `json:"side_panel,omitempty"`
	Sandbox            *Sandbox        `json:"sandbox,omitempty"`
	ContentScripts     []ContentScript `json:"content_scripts,omitempty"`
}

type Background struct {
	ServiceWorker string   `json:"service_worker,omitempty"`
	Type          string   `json:"type,omitempty"`
	Scripts       []string `json:"scripts,omitempty"`
	Persistent    *bool    `json:"persistent,omitempty"`
}

type Action struct {
	DefaultPopup string            `json:"default_popup,omitempty"`
	DefaultTitle string            `json:"default_title,omitempty"`
	DefaultIcon  map[string]string `json:"default_icon,omitempty"`
}

type OptionsUI struct {
	Page      string `json:"page"`
	OpenInTab bool   `json:"open_in_tab,omitempty"`
}

type URLOverrides struct {
	Bookmarks string `json:"bookmarks,omitempty"`
	History   string `json:"history,omitempty"`
	Newtab    string `json:"newtab,omitempty"`
}

type SidePanel struct {
	DefaultPath string `json:"default_path,omitempty"`
}

type Sandbox struct {
	Pages []string `json:"pages"`
}

type ContentScript struct {
	Matches         []string `json:"matches"`
	ExcludeMatches  []string `json:"exclude_matches,omitempty"`
	JS              []string `json:"js,omitempty"`
	CSS             []string `json:"css,omitempty"`
	RunAt           string   `json:"run_at,omitempty"`
	AllFrames       bool     `json:"all_frames,omitempty"`
	MatchAboutBlank bool     `json:"match_about_blank,omitempty"`
	World           string   `json:"world,omitempty"`
}

// Build maps a resolved entrypoint set onto a manifest. Unlisted entrypoints
// are built but never referenced here; browsers can only override a single
// page, so declaring more than one of bookmarks/history/newtab is an error.
func Build(meta config.ManifestMeta, bctx config.BuildContext, eps []domain.Entrypoint) (*Manifest, error) {
	m := &Manifest{
		ManifestVersion: bctx.ManifestVersion,
		Name:            meta.Name,
		Version:         meta.Version,
		Description:     meta.Description,
	}

	var scripts []domain.Entrypoint
	var overrides int

	for _, ep := range eps {
		if ep.Skipped {
			continue
		}
		switch ep.Kind {
		case domain.KindBackground:
			m.Background = background(bctx, ep)
		case domain.KindPopup:
			m.setPopup(bctx, ep)
		case domain.KindOptions:
			opts, _ := ep.Options.(*domain.OptionsPageOptions)
			m.OptionsUI = &OptionsUI{Page: htmlPath(ep)}
			if opts != nil {
				m.OptionsUI.OpenInTab = opts.OpenInTab
			}
		case domain.KindDevtools:
			m.DevtoolsPage = htmlPath(ep)
		case domain.KindBookmarks, domain.KindHistory, domain.KindNewtab:
			overrides++
			if overrides > 1 {
				return nil, fmt.Errorf("an extension can override only one browser page, found multiple override entrypoints")
			}
			m.setOverride(ep)
		case domain.KindSidepanel:
			m.SidePanel = &SidePanel{DefaultPath: htmlPath(ep)}
		case domain.KindSandbox:
			if m.Sandbox == nil {
				m.Sandbox = &Sandbox{}
			}
			m.Sandbox.Pages = append(m.Sandbox.Pages, htmlPath(ep))
		case domain.KindContentScript:
			scripts = append(scripts, ep)
		}
	}

	m.ContentScripts = contentScripts(bctx, scripts)
	return m, nil
}

func background(bctx config.BuildContext, ep domain.Entrypoint) *Background {
	opts, _ := ep.Options.(*domain.BackgroundOptions)
	out := outputPath(bctx, ep, ".js")
	if bctx.ManifestVersion == 3 {
		bg := &Background{ServiceWorker: out}
		if opts != nil {
			bg.Type = opts.Type
		}
		return bg
	}
	bg := &Background{Scripts: []string{out}}
	if opts != nil {
		bg.Persistent = opts.Persistent
	}
	return bg
}

func (m *Manifest) setPopup(bctx config.BuildContext, ep domain.Entrypoint) {
	action := &Action{DefaultPopup: htmlPath(ep)}
	if opts, ok := ep.Options.(*domain.PopupOptions); ok {
		action.DefaultTitle = opts.DefaultTitle
		action.DefaultIcon = opts.DefaultIcon
	}
	if bctx.ManifestVersion == 3 {
		m.Action = action
	} else {
		m.BrowserAction = action
	}
}

func (m *Manifest) setOverride(ep domain.Entrypoint) {
	m.ChromeURLOverrides = &URLOverrides{}
	switch ep.Kind {
	case domain.KindBookmarks:
		m.ChromeURLOverrides.Bookmarks = htmlPath(ep)
	case domain.KindHistory:
		m.ChromeURLOverrides.History = htmlPath(ep)
	case domain.KindNewtab:
		m.ChromeURLOverrides.Newtab = htmlPath(ep)
	}
}

// contentScripts declares one entry per content script. Scripts without
// match patterns (and standalone content-script styles, which have no option
// channel) are still built into the content-scripts directory but cannot be
// declared in the manifest, so they are omitted; the runtime injects those
// through the scripting API instead.
func contentScripts(bctx config.BuildContext, scripts []domain.Entrypoint) []ContentScript {
	sort.Slice(scripts, func(i, j int) bool { return scripts[i].Name < scripts[j].Name })

	var entries []ContentScript
	for _, ep := range scripts {
		opts, ok := ep.Options.(*domain.ContentScriptOptions)
		if !ok || len(opts.Matches) == 0 {
			continue
		}
		entries = append(entries, ContentScript{
			Matches:         opts.Matches,
			ExcludeMatches:  opts.ExcludeMatches,
			JS:              []string{outputPath(bctx, ep, ".js")},
			RunAt:           opts.RunAt,
			AllFrames:       opts.AllFrames,
			MatchAboutBlank: opts.MatchAboutBlank,
			World:           opts.World,
		})
	}
	return entries
}

// outputPath is the manifest-relative path of an entrypoint's emitted file.
func outputPath(bctx config.BuildContext, ep domain.Entrypoint, ext string) string {
	rel, err := filepath.Rel(bctx.OutDir, ep.OutputDir)
	if err != nil || rel == "." {
		return ep.Name + ext
	}
	return filepath.ToSlash(filepath.Join(rel, ep.Name+ext))
}

func htmlPath(ep domain.Entrypoint) string {
	return ep.Name + ".html"
}
