package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProjectDefaults(t *testing.T) {
	dir := t.TempDir()

	p, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if p.EntrypointsDir != "entrypoints" {
		t.Errorf("EntrypointsDir = %q", p.EntrypointsDir)
	}
	if p.ManifestVersion != 3 {
		t.Errorf("ManifestVersion = %d, want 3", p.ManifestVersion)
	}
	if p.Browser != "chrome" {
		t.Errorf("Browser = %q, want chrome", p.Browser)
	}
	if p.Manifest.Name != filepath.Base(dir) {
		t.Errorf("Manifest.Name = %q, want directory name", p.Manifest.Name)
	}
}

func TestLoadProjectFile(t *testing.T) {
	dir := t.TempDir()
	content := `
entrypoints_dir: src/entries
out_dir: build
browser: firefox
manifest_version: 2
manifest:
  name: My Extension
  version: 1.0.0
  description: Does things
`
	if err := os.WriteFile(filepath.Join(dir, ProjectFile), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	p, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if p.Browser != "firefox" || p.ManifestVersion != 2 {
		t.Errorf("target = %s/MV%d", p.Browser, p.ManifestVersion)
	}
	if p.Manifest.Name != "My Extension" || p.Manifest.Version != "1.0.0" {
		t.Errorf("manifest meta = %+v", p.Manifest)
	}

	bctx := p.BuildContext(CommandBuild, "", nil)
	if bctx.EntrypointsDir != filepath.Join(p.Root(), "src", "entries") {
		t.Errorf("EntrypointsDir = %s, want project-relative resolution", bctx.EntrypointsDir)
	}
	if bctx.Browser != "firefox" {
		t.Errorf("Browser = %s, want config default", bctx.Browser)
	}
}

func TestLoadProjectMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ProjectFile), []byte("{not yaml"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadProject(dir); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestBuildContextOverrides(t *testing.T) {
	p := DefaultProject("/proj")
	bctx := p.BuildContext(CommandServe, "edge", []string{"popup"})

	if bctx.Command != CommandServe {
		t.Errorf("Command = %s", bctx.Command)
	}
	if bctx.Browser != "edge" {
		t.Errorf("Browser = %s, want flag override", bctx.Browser)
	}
	if len(bctx.FilterEntrypoints) != 1 || bctx.FilterEntrypoints[0] != "popup" {
		t.Errorf("FilterEntrypoints = %v", bctx.FilterEntrypoints)
	}
}

func TestBuildContextValidate(t *testing.T) {
	valid := BuildContext{
		EntrypointsDir:  "/p/entrypoints",
		OutDir:          "/p/dist",
		ManifestVersion: 3,
		Browser:         "chrome",
		Command:         CommandBuild,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid context rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*BuildContext)
	}{
		{"missing entrypoints dir", func(c *BuildContext) { c.EntrypointsDir = "" }},
		{"missing out dir", func(c *BuildContext) { c.OutDir = "" }},
		{"bad manifest version", func(c *BuildContext) { c.ManifestVersion = 4 }},
		{"missing browser", func(c *BuildContext) { c.Browser = "" }},
		{"bad command", func(c *BuildContext) { c.Command = "deploy" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
