package options

import (
	"context"
	"reflect"
	"testing"

	"github.com/crxforge/cli/internal/config"
	"github.com/crxforge/cli/internal/domain"
)

func TestStaticLoaderDefineCall(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "overlay.content.ts", `
import { defineContentScript } from 'crx';

export default defineContentScript({
  matches: ['*://*.example.com/*'],
  runAt: 'document_end',
  allFrames: true,
  main(ctx) {
    console.log('injected');
  },
});
`)

	loader := NewStaticLoader()
	raw, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(raw["matches"], []any{"*://*.example.com/*"}) {
		t.Errorf("matches = %#v", raw["matches"])
	}
	if raw["runAt"] != "document_end" {
		t.Errorf("runAt = %#v", raw["runAt"])
	}
	if raw["allFrames"] != true {
		t.Errorf("allFrames = %#v", raw["allFrames"])
	}
	if _, ok := raw["main"]; ok {
		t.Error("function members must not appear in the options map")
	}
}

func TestStaticLoaderFunctionArgument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "background.ts", `
export default defineBackground(() => {
  console.log('hello');
});
`)

	loader := NewStaticLoader()
	raw, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(raw) != 0 {
		t.Errorf("options = %#v, want empty map", raw)
	}
}

func TestStaticLoaderExportedObject(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "injected.js", `
export default {
  include: ['firefox'],
};
`)

	loader := NewStaticLoader()
	raw, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(raw["include"], []any{"firefox"}) {
		t.Errorf("include = %#v", raw["include"])
	}
}

func TestExtractBackgroundModuleType(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "background.ts", `
export default defineBackground({
  type: 'module',
  main() {},
});
`)

	e := NewExtractor(nil)
	cand := domain.Candidate{Kind: domain.KindBackground, Name: "background", InputPath: path}

	t.Run("mv3 keeps module type", func(t *testing.T) {
		bctx := config.BuildContext{ManifestVersion: 3, Browser: "chrome"}
		opts, err := e.Extract(context.Background(), bctx, cand)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		bg := opts.(*domain.BackgroundOptions)
		if bg.Type != "module" {
			t.Errorf("Type = %q, want module", bg.Type)
		}
	})

	t.Run("mv2 drops module type", func(t *testing.T) {
		bctx := config.BuildContext{ManifestVersion: 2, Browser: "chrome"}
		opts, err := e.Extract(context.Background(), bctx, cand)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		bg := opts.(*domain.BackgroundOptions)
		if bg.Type != "" {
			t.Errorf("Type = %q, want it dropped under MV2", bg.Type)
		}
	})
}

func TestExtractContentScriptSnakeAndCamel(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "overlay.content.js", `
export default defineContentScript({
  matches: ['<all_urls>'],
  run_at: 'document_start',
  match_about_blank: true,
});
`)

	e := NewExtractor(nil)
	bctx := config.BuildContext{ManifestVersion: 3, Browser: "chrome"}
	cand := domain.Candidate{Kind: domain.KindContentScript, Name: "overlay", InputPath: path}

	opts, err := e.Extract(context.Background(), bctx, cand)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	cs := opts.(*domain.ContentScriptOptions)
	if cs.RunAt != "document_start" {
		t.Errorf("RunAt = %q", cs.RunAt)
	}
	if !cs.MatchAboutBlank {
		t.Error("MatchAboutBlank = false, want true")
	}
	if !reflect.DeepEqual(cs.Matches, []string{"<all_urls>"}) {
		t.Errorf("Matches = %#v", cs.Matches)
	}
}

func TestExtractVirtualBackground(t *testing.T) {
	e := NewExtractor(nil)
	bctx := config.BuildContext{ManifestVersion: 3, Browser: "chrome"}
	cand := domain.Candidate{
		Kind:      domain.KindBackground,
		Name:      "background",
		InputPath: domain.VirtualBackground,
	}

	opts, err := e.Extract(context.Background(), bctx, cand)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if _, ok := opts.(*domain.BackgroundOptions); !ok {
		t.Fatalf("options type = %T, want *domain.BackgroundOptions", opts)
	}
}
