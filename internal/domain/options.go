package domain

// Options is the kind-specific option set attached to a resolved entrypoint.
// Concrete types embed BaseOptions so browser filtering can be applied
// uniformly without knowing the kind.
type Options interface {
	Base() BaseOptions
}

// BaseOptions carries the fields every entrypoint kind accepts.
type BaseOptions struct {
	// Include restricts the entrypoint to the named target browsers.
	Include []string `json:"include,omitempty"`
	// Exclude removes the entrypoint for the named target browsers.
	Exclude []string `json:"exclude,omitempty"`
}

func (o BaseOptions) Base() BaseOptions { return o }

// IncludedFor reports whether an entrypoint carrying these options should be
// built for the given target browser.
func (o BaseOptions) IncludedFor(browser string) bool {
	if len(o.Include) > 0 && !contains(o.Include, browser) {
		return false
	}
	if contains(o.Exclude, browser) {
		return false
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// BackgroundOptions configures the background script or service worker.
type BackgroundOptions struct {
	BaseOptions
	// Type is "module" when the background should be loaded as an ES module.
	// Only meaningful under manifest version 3; dropped silently under MV2.
	Type       string `json:"type,omitempty"`
	Persistent *bool  `json:"persistent,omitempty"`
}

// ContentScriptOptions configures a content script or content-script style.
type ContentScriptOptions struct {
	BaseOptions
	Matches         []string `json:"matches,omitempty"`
	ExcludeMatches  []string `json:"exclude_matches,omitempty"`
	RunAt           string   `json:"run_at,omitempty"`
	AllFrames       bool     `json:"all_frames,omitempty"`
	MatchAboutBlank bool     `json:"match_about_blank,omitempty"`
	World           string   `json:"world,omitempty"`
}

// PopupOptions configures the action (MV3) or browser_action (MV2) popup.
type PopupOptions struct {
	BaseOptions
	DefaultTitle string            `json:"default_title,omitempty"`
	DefaultIcon  map[string]string `json:"default_icon,omitempty"`
	BrowserStyle *bool             `json:"browser_style,omitempty"`
}

// OptionsPageOptions configures the options_ui manifest entry.
type OptionsPageOptions struct {
	BaseOptions
	OpenInTab    bool  `json:"open_in_tab,omitempty"`
	BrowserStyle *bool `json:"browser_style,omitempty"`
	ChromeStyle  *bool `json:"chrome_style,omitempty"`
}

// SidepanelOptions configures the side_panel (Chrome) or sidebar_action
// (Firefox) manifest entry.
type SidepanelOptions struct {
	BaseOptions
	DefaultTitle  string `json:"default_title,omitempty"`
	DefaultIcon   string `json:"default_icon,omitempty"`
	OpenAtInstall *bool  `json:"open_at_install,omitempty"`
}

// PageOptions is the schema for generic HTML pages: devtools, bookmarks,
// history, newtab, sandbox and unlisted pages accept only the base fields.
type PageOptions struct {
	BaseOptions
}

// ScriptOptions is the schema for unlisted scripts.
type ScriptOptions struct {
	BaseOptions
}

// StyleOptions is the schema for unlisted styles and content-script styles
// without a companion script.
type StyleOptions struct {
	BaseOptions
}
