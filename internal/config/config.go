package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Command is the invocation mode discovery runs under.
type Command string

const (
	CommandBuild Command = "build"
	CommandServe Command = "serve"
)

// BuildContext carries everything discovery needs for one invocation. It is
// constructed once from the project config plus command-line flags and never
// mutated afterwards.
type BuildContext struct {
	// EntrypointsDir is the absolute path of the directory scanned for
	// entrypoint files.
	EntrypointsDir string
	// OutDir is the absolute path of the build output root.
	OutDir string
	// ManifestVersion is 2 or 3.
	ManifestVersion int
	// Browser is the build target (chrome, firefox, safari, edge, ...).
	Browser string
	// Command selects build or serve semantics.
	Command Command
	// FilterEntrypoints, when non-nil, is an ordered allow-set of entrypoint
	// names. Discovery output follows its order.
	FilterEntrypoints []string
}

// Validate checks the context for values discovery cannot work with.
func (c BuildContext) Validate() error {
	if c.EntrypointsDir == "" {
		return fmt.Errorf("entrypoints directory is not set")
	}
	if c.OutDir == "" {
		return fmt.Errorf("output directory is not set")
	}
	if c.ManifestVersion != 2 && c.ManifestVersion != 3 {
		return fmt.Errorf("unsupported manifest version %d (expected 2 or 3)", c.ManifestVersion)
	}
	if c.Browser == "" {
		return fmt.Errorf("target browser is not set")
	}
	if c.Command != CommandBuild && c.Command != CommandServe {
		return fmt.Errorf("unknown command %q", c.Command)
	}
	return nil
}

// ManifestMeta is the static identity block copied into generated manifests.
type ManifestMeta struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Project is the on-disk project configuration (crxforge.yaml).
type Project struct {
	// EntrypointsDir is resolved relative to the project root.
	EntrypointsDir string `json:"entrypoints_dir" yaml:"entrypoints_dir"`
	// OutDir is resolved relative to the project root.
	OutDir string `json:"out_dir" yaml:"out_dir"`
	// Browser is the default build target.
	Browser string `json:"browser" yaml:"browser"`
	// ManifestVersion is the default manifest schema revision.
	ManifestVersion int `json:"manifest_version" yaml:"manifest_version"`
	// Manifest holds the static fields of the generated manifest.
	Manifest ManifestMeta `json:"manifest" yaml:"manifest"`

	root string
}

// ProjectFile is the config filename looked up in the project root.
const ProjectFile = "crxforge.yaml"

// DefaultProject returns the configuration used when no project file exists.
func DefaultProject(root string) *Project {
	return &Project{
		EntrypointsDir:  "entrypoints",
		OutDir:          filepath.Join(".output", "dist"),
		Browser:         "chrome",
		ManifestVersion: 3,
		Manifest: ManifestMeta{
			Name:    filepath.Base(root),
			Version: "0.0.0",
		},
		root: root,
	}
}

// LoadProject reads crxforge.yaml from the given project root, falling back
// to defaults for any field the file leaves unset. A missing file is not an
// error; a malformed one is.
func LoadProject(root string) (*Project, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	p := DefaultProject(absRoot)

	data, err := os.ReadFile(filepath.Join(absRoot, ProjectFile))
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ProjectFile, err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
	}
	return p, nil
}

// BuildContext resolves the project configuration into an immutable context
// for one discovery invocation.
func (p *Project) BuildContext(command Command, browser string, filter []string) BuildContext {
	if browser == "" {
		browser = p.Browser
	}
	return BuildContext{
		EntrypointsDir:    p.abs(p.EntrypointsDir),
		OutDir:            p.abs(p.OutDir),
		ManifestVersion:   p.ManifestVersion,
		Browser:           browser,
		Command:           command,
		FilterEntrypoints: filter,
	}
}

// Root returns the absolute project root the config was loaded from.
func (p *Project) Root() string { return p.root }

func (p *Project) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.root, path)
}
