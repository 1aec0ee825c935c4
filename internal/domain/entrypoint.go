package domain

// Kind identifies the flavor of a discovered entrypoint. The set is closed:
// classification only ever produces one of the constants below.
type Kind string

const (
	KindBackground         Kind = "background"
	KindContentScript      Kind = "content-script"
	KindContentScriptStyle Kind = "content-script-style"
	KindPopup              Kind = "popup"
	KindOptions            Kind = "options"
	KindDevtools           Kind = "devtools"
	KindSidepanel          Kind = "sidepanel"
	KindBookmarks          Kind = "bookmarks"
	KindHistory            Kind = "history"
	KindNewtab             Kind = "newtab"
	KindSandbox            Kind = "sandbox"
	KindUnlistedPage       Kind = "unlisted-page"
	KindUnlistedScript     Kind = "unlisted-script"
	KindUnlistedStyle      Kind = "unlisted-style"
	// KindGeneric is never produced by classification. It is the registration
	// key for the catch-all option extractor that serves HTML kinds without a
	// dedicated schema (devtools, bookmarks, history, newtab, sandbox,
	// unlisted pages).
	KindGeneric Kind = "generic"
)

// VirtualBackground is the sentinel input path of the synthetic background
// entrypoint injected in serve mode. It never refers to a real file.
const VirtualBackground = "virtual:background"

// HTMLBased reports whether entrypoints of this kind are backed by an HTML
// document and carry their options as <meta name="manifest.*"> tags.
func (k Kind) HTMLBased() bool {
	switch k {
	case KindPopup, KindOptions, KindDevtools, KindSidepanel, KindBookmarks,
		KindHistory, KindNewtab, KindSandbox, KindUnlistedPage, KindGeneric:
		return true
	}
	return false
}

// ScriptBased reports whether entrypoints of this kind are backed by a
// JS/TS module that exports its options.
func (k Kind) ScriptBased() bool {
	switch k {
	case KindBackground, KindContentScript, KindUnlistedScript:
		return true
	}
	return false
}

// StyleBased reports whether entrypoints of this kind are plain stylesheets.
// Stylesheets carry no embedded options.
func (k Kind) StyleBased() bool {
	return k == KindContentScriptStyle || k == KindUnlistedStyle
}

// Candidate is a classified but not yet enriched entrypoint. Produced by the
// path classifier, consumed by option extraction; not retained afterwards.
type Candidate struct {
	Kind      Kind   `json:"kind"`
	Name      string `json:"name"`
	InputPath string `json:"input_path"`
	OutputDir string `json:"output_dir"`
}

// Virtual reports whether the candidate has no backing source file.
func (c Candidate) Virtual() bool {
	return c.InputPath == VirtualBackground
}

// Entrypoint is the final, validated unit of work handed to the downstream
// manifest/bundling stage. Immutable once discovery returns.
type Entrypoint struct {
	Candidate
	Options Options `json:"options,omitempty"`
	// Skipped marks entrypoints excluded by browser include/exclude rules or
	// by an active entrypoint filter. Skipped entries never appear in the
	// set returned by discovery; the flag exists for diagnostics reporting.
	Skipped bool `json:"skipped,omitempty"`
}
