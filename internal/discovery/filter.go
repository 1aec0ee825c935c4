package discovery

import (
	"sort"

	"github.com/crxforge/cli/internal/config"
	"github.com/crxforge/cli/internal/domain"
)

// finalize applies the entrypoint name filter and the cross-set invariants:
// names must be unique and the surviving set must not be empty.
func finalize(bctx config.BuildContext, eps []domain.Entrypoint) ([]domain.Entrypoint, error) {
	active := make([]domain.Entrypoint, 0, len(eps))
	for _, ep := range eps {
		if !ep.Skipped {
			active = append(active, ep)
		}
	}

	if len(bctx.FilterEntrypoints) > 0 {
		active = applyNameFilter(bctx.FilterEntrypoints, active)
	}

	if dups := duplicateGroups(active); len(dups) > 0 {
		return nil, &DuplicateNameError{Groups: dups}
	}
	if len(active) == 0 {
		return nil, &NoEntrypointsError{Dir: bctx.EntrypointsDir}
	}
	return active, nil
}

// applyNameFilter keeps only entrypoints named by the allow-set, in the
// allow-set's order rather than discovery order. Virtual entrypoints bypass
// the filter: they exist to satisfy the build mode, not the user selection.
func applyNameFilter(allow []string, eps []domain.Entrypoint) []domain.Entrypoint {
	out := make([]domain.Entrypoint, 0, len(eps))
	for _, name := range allow {
		for _, ep := range eps {
			if ep.Name == name && !ep.Virtual() {
				out = append(out, ep)
			}
		}
	}
	for _, ep := range eps {
		if ep.Virtual() {
			out = append(out, ep)
		}
	}
	return out
}

// duplicateGroups returns every logical name claimed by more than one
// entrypoint, with deterministic ordering of groups and paths.
func duplicateGroups(eps []domain.Entrypoint) []DuplicateGroup {
	byName := make(map[string][]string)
	for _, ep := range eps {
		byName[ep.Name] = append(byName[ep.Name], ep.InputPath)
	}

	var groups []DuplicateGroup
	for name, paths := range byName {
		if len(paths) > 1 {
			sort.Strings(paths)
			groups = append(groups, DuplicateGroup{Name: name, Paths: paths})
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups
}
