package manifest

import (
	"path/filepath"
	"testing"

	"github.com/crxforge/cli/internal/config"
	"github.com/crxforge/cli/internal/domain"
)

func testContext(mv int) config.BuildContext {
	return config.BuildContext{
		EntrypointsDir:  filepath.Join("proj", "entrypoints"),
		OutDir:          filepath.Join("proj", "dist"),
		ManifestVersion: mv,
		Browser:         "chrome",
		Command:         config.CommandBuild,
	}
}

func meta() config.ManifestMeta {
	return config.ManifestMeta{Name: "demo", Version: "1.2.3"}
}

func entrypoint(kind domain.Kind, name string, opts domain.Options, bctx config.BuildContext) domain.Entrypoint {
	outDir := bctx.OutDir
	if kind == domain.KindContentScript || kind == domain.KindContentScriptStyle {
		outDir = filepath.Join(bctx.OutDir, "content-scripts")
	}
	return domain.Entrypoint{
		Candidate: domain.Candidate{
			Kind:      kind,
			Name:      name,
			InputPath: filepath.Join(bctx.EntrypointsDir, name),
			OutputDir: outDir,
		},
		Options: opts,
	}
}

func TestBuildMV3(t *testing.T) {
	bctx := testContext(3)
	eps := []domain.Entrypoint{
		entrypoint(domain.KindBackground, "background", &domain.BackgroundOptions{Type: "module"}, bctx),
		entrypoint(domain.KindPopup, "popup", &domain.PopupOptions{DefaultTitle: "Demo"}, bctx),
		entrypoint(domain.KindOptions, "options", &domain.OptionsPageOptions{OpenInTab: true}, bctx),
		entrypoint(domain.KindContentScript, "overlay", &domain.ContentScriptOptions{
			Matches: []string{"<all_urls>"},
			RunAt:   "document_end",
		}, bctx),
		entrypoint(domain.KindUnlistedPage, "changelog", &domain.PageOptions{}, bctx),
	}

	m, err := Build(meta(), bctx, eps)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if m.ManifestVersion != 3 || m.Name != "demo" || m.Version != "1.2.3" {
		t.Errorf("header = %d/%s/%s", m.ManifestVersion, m.Name, m.Version)
	}
	if m.Background == nil || m.Background.ServiceWorker != "background.js" {
		t.Fatalf("Background = %+v, want service worker", m.Background)
	}
	if m.Background.Type != "module" {
		t.Errorf("Background.Type = %q", m.Background.Type)
	}
	if m.Action == nil || m.Action.DefaultPopup != "popup.html" || m.Action.DefaultTitle != "Demo" {
		t.Errorf("Action = %+v", m.Action)
	}
	if m.BrowserAction != nil {
		t.Error("BrowserAction set on an MV3 manifest")
	}
	if m.OptionsUI == nil || m.OptionsUI.Page != "options.html" || !m.OptionsUI.OpenInTab {
		t.Errorf("OptionsUI = %+v", m.OptionsUI)
	}
	if len(m.ContentScripts) != 1 {
		t.Fatalf("ContentScripts = %+v, want one entry", m.ContentScripts)
	}
	cs := m.ContentScripts[0]
	if len(cs.JS) != 1 || cs.JS[0] != "content-scripts/overlay.js" {
		t.Errorf("content script js = %v", cs.JS)
	}
	if cs.RunAt != "document_end" {
		t.Errorf("run_at = %q", cs.RunAt)
	}
}

func TestBuildMV2(t *testing.T) {
	bctx := testContext(2)
	persistent := false
	eps := []domain.Entrypoint{
		entrypoint(domain.KindBackground, "background", &domain.BackgroundOptions{Persistent: &persistent}, bctx),
		entrypoint(domain.KindPopup, "popup", &domain.PopupOptions{}, bctx),
	}

	m, err := Build(meta(), bctx, eps)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if m.Background == nil || len(m.Background.Scripts) != 1 || m.Background.Scripts[0] != "background.js" {
		t.Fatalf("Background = %+v, want scripts array", m.Background)
	}
	if m.Background.Persistent == nil || *m.Background.Persistent {
		t.Errorf("Persistent = %v, want false", m.Background.Persistent)
	}
	if m.BrowserAction == nil || m.BrowserAction.DefaultPopup != "popup.html" {
		t.Errorf("BrowserAction = %+v", m.BrowserAction)
	}
	if m.Action != nil {
		t.Error("Action set on an MV2 manifest")
	}
}

func TestBuildURLOverrides(t *testing.T) {
	bctx := testContext(3)

	t.Run("single override", func(t *testing.T) {
		eps := []domain.Entrypoint{
			entrypoint(domain.KindNewtab, "newtab", &domain.PageOptions{}, bctx),
		}
		m, err := Build(meta(), bctx, eps)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if m.ChromeURLOverrides == nil || m.ChromeURLOverrides.Newtab != "newtab.html" {
			t.Errorf("overrides = %+v", m.ChromeURLOverrides)
		}
	})

	t.Run("multiple overrides rejected", func(t *testing.T) {
		eps := []domain.Entrypoint{
			entrypoint(domain.KindNewtab, "newtab", &domain.PageOptions{}, bctx),
			entrypoint(domain.KindHistory, "history", &domain.PageOptions{}, bctx),
		}
		if _, err := Build(meta(), bctx, eps); err == nil {
			t.Fatal("expected error for multiple override pages")
		}
	})
}

func TestBuildSkipsFilteredEntries(t *testing.T) {
	bctx := testContext(3)
	skipped := entrypoint(domain.KindPopup, "popup", &domain.PopupOptions{}, bctx)
	skipped.Skipped = true

	m, err := Build(meta(), bctx, []domain.Entrypoint{skipped})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if m.Action != nil {
		t.Error("skipped popup still declared in manifest")
	}
}

func TestBuildSandboxAndSidepanel(t *testing.T) {
	bctx := testContext(3)
	eps := []domain.Entrypoint{
		entrypoint(domain.KindSandbox, "payments", &domain.PageOptions{}, bctx),
		entrypoint(domain.KindSidepanel, "sidepanel", &domain.SidepanelOptions{}, bctx),
		entrypoint(domain.KindDevtools, "devtools", &domain.PageOptions{}, bctx),
	}

	m, err := Build(meta(), bctx, eps)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if m.Sandbox == nil || len(m.Sandbox.Pages) != 1 || m.Sandbox.Pages[0] != "payments.html" {
		t.Errorf("Sandbox = %+v", m.Sandbox)
	}
	if m.SidePanel == nil || m.SidePanel.DefaultPath != "sidepanel.html" {
		t.Errorf("SidePanel = %+v", m.SidePanel)
	}
	if m.DevtoolsPage != "devtools.html" {
		t.Errorf("DevtoolsPage = %q", m.DevtoolsPage)
	}
}
