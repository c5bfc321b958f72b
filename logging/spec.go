package logging

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Spec is a base level plus per-component overrides, written as
// "<level>[,<component>=<level>]...", for example "warn,collector=debug".
type Spec struct {
	Base       Level
	Components map[string]Level
}

// ParseSpec parses a spec string. An empty string yields info with no
// overrides. A bare level is only accepted as the first element.
func ParseSpec(s string) (Spec, error) {
	spec := Spec{Base: LevelInfo, Components: map[string]Level{}}

	for i, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		component, levelStr, isOverride := strings.Cut(part, "=")
		if !isOverride {
			if i != 0 {
				return spec, fmt.Errorf("base level %q must be first in spec", part)
			}
			level, err := ParseLevel(part)
			if err != nil {
				return spec, err
			}
			spec.Base = level
			continue
		}

		component = strings.TrimSpace(component)
		if component == "" {
			return spec, fmt.Errorf("empty component name in %q", part)
		}
		level, err := ParseLevel(levelStr)
		if err != nil {
			return spec, fmt.Errorf("invalid level for component %q: %w", component, err)
		}
		spec.Components[component] = level
	}

	return spec, nil
}

// LevelFor returns the level that applies to component.
func (s Spec) LevelFor(component string) Level {
	if l, ok := s.Components[component]; ok {
		return l
	}
	return s.Base
}

// String formats the spec so that ParseSpec accepts it. Components are
// sorted by name.
func (s Spec) String() string {
	parts := []string{s.Base.String()}
	for _, c := range slices.Sorted(maps.Keys(s.Components)) {
		parts = append(parts, c+"="+s.Components[c].String())
	}
	return strings.Join(parts, ",")
}
