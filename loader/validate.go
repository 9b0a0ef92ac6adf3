package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/doorshuffle/pathfind"
	"github.com/nathoo/doorshuffle/types"
	"github.com/nathoo/doorshuffle/world"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

var validEntranceTypes = map[types.EntranceType]bool{
	types.EntranceRegion:  true,
	types.EntranceDungeon: true,
	types.EntranceBoss:    true,
}

var validGames = map[types.Game]bool{
	types.GameOoT: true,
	types.GameMM:  true,
}

// validate checks the world for referential integrity. Problems that make the
// shuffler misbehave are errors; suspicious but workable data is a warning.
func validate(w *world.World) ([]string, error) {
	ve := &ValidationError{}

	if _, ok := w.Areas[w.Start]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start area %q not found in defined areas", w.Start))
	}

	for _, id := range w.AreaIDs() {
		a := w.Areas[id]
		for _, to := range sortedKeys(a.Exits) {
			if _, ok := w.Areas[to]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"area %q exit points to undefined area %q", id, to))
			}
		}
		if a.Boss && a.Dungeon == "" {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"boss area %q has no dungeon", id))
		}
	}

	for _, id := range sortedKeys(w.Entrances) {
		validateEntrance(w, w.Entrances[id], ve)
	}

	if len(ve.Errors) == 0 {
		ve.Warnings = append(ve.Warnings, unreachableAreas(w)...)
	}

	if len(ve.Errors) > 0 {
		return ve.Warnings, ve
	}
	return ve.Warnings, nil
}

func validateEntrance(w *world.World, e *types.Entrance, ve *ValidationError) {
	if !validEntranceTypes[e.Type] {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"entrance %q has unknown type %q", e.ID, e.Type))
	}
	if !validGames[e.Game] {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"entrance %q has unknown game %q", e.ID, e.Game))
	}

	from, okFrom := w.Areas[e.From]
	if !okFrom {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"entrance %q leaves undefined area %q", e.ID, e.From))
	}
	if _, ok := w.Areas[e.To]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"entrance %q leads to undefined area %q", e.ID, e.To))
	}
	if okFrom {
		if _, ok := from.Exits[e.To]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"entrance %q has no exit %q → %q", e.ID, e.From, e.To))
		}
	}

	if e.Reverse == "" {
		if e.Type == types.EntranceDungeon {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"dungeon entrance %q has no reverse", e.ID))
		}
		return
	}
	rev, ok := w.Entrances[e.Reverse]
	if !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"entrance %q reverse %q is not defined", e.ID, e.Reverse))
		return
	}
	if rev.Reverse != e.ID {
		ve.Warnings = append(ve.Warnings, fmt.Sprintf(
			"entrance %q reverse %q does not point back", e.ID, e.Reverse))
	}
}

// unreachableAreas lists every area the start cannot reach even with every
// item and event available.
func unreachableAreas(w *world.World) []string {
	st, err := pathfind.New(w).Run("", pathfind.Options{SingleWorld: true, IgnoreItems: true, Recursive: true})
	if err != nil {
		return []string{err.Error()}
	}
	var out []string
	for _, id := range w.AreaIDs() {
		if !st.Worlds[0].Areas.Has(id) {
			out = append(out, fmt.Sprintf("area %q is not reachable from %q", id, w.Start))
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
