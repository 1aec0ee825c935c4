package ui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/crxforge/cli/internal/config"
	"github.com/crxforge/cli/internal/domain"
)

// RenderEntrypoints returns a formatted summary of a resolved entrypoint set.
func RenderEntrypoints(bctx config.BuildContext, eps []domain.Entrypoint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", "🧩 Discovered Entrypoints")
	b.WriteString(strings.Repeat("=", 24))
	b.WriteString("\n\n")

	summary := []string{
		fmt.Sprintf("📂 Entrypoints Dir: %s", bctx.EntrypointsDir),
		fmt.Sprintf("🌐 Target Browser: %s (MV%d)", bctx.Browser, bctx.ManifestVersion),
		fmt.Sprintf("🎯 Entrypoints: %d", len(eps)),
	}
	b.WriteString(strings.Join(summary, "\n"))
	b.WriteString("\n\n")

	byKind := make(map[domain.Kind][]domain.Entrypoint)
	for _, ep := range eps {
		byKind[ep.Kind] = append(byKind[ep.Kind], ep)
	}

	var kinds []string
	for kind := range byKind {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		fmt.Fprintf(&b, "%s:\n", kind)
		for _, ep := range byKind[domain.Kind(kind)] {
			fmt.Fprintf(&b, "  - %s (%s)\n", ep.Name, inputLabel(ep))
		}
	}
	return b.String()
}

func inputLabel(ep domain.Entrypoint) string {
	if ep.Virtual() {
		return "virtual"
	}
	return filepath.Base(ep.InputPath)
}
