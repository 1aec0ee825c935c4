package discovery

import (
	"fmt"
	"strings"
)

// DuplicateGroup is one logical name claimed by more than one entrypoint.
type DuplicateGroup struct {
	Name  string
	Paths []string
}

// DuplicateNameError reports every name conflict in the discovered set at
// once, so a single run gives the complete picture.
type DuplicateNameError struct {
	Groups []DuplicateGroup
}

func (e *DuplicateNameError) Error() string {
	var b strings.Builder
	b.WriteString("multiple entrypoints share the same name:")
	for _, g := range e.Groups {
		fmt.Fprintf(&b, "\n  %s:", g.Name)
		for _, p := range g.Paths {
			fmt.Fprintf(&b, "\n    - %s", p)
		}
	}
	b.WriteString("\nrename the conflicting entrypoints so every name is unique")
	return b.String()
}

// NoEntrypointsError reports a discovery run that produced nothing, either
// because nothing matched or because everything was filtered out.
type NoEntrypointsError struct {
	Dir string
}

func (e *NoEntrypointsError) Error() string {
	return fmt.Sprintf("no entrypoints found in %s", e.Dir)
}
