package shuffle

import (
	"fmt"

	"github.com/nathoo/doorshuffle/logic"
	"github.com/nathoo/doorshuffle/pathfind"
	"github.com/nathoo/doorshuffle/settings"
	"github.com/nathoo/doorshuffle/types"
	"github.com/nathoo/doorshuffle/world"
)

// Groups whose completion has extra requirements.
const (
	groupGanonTower = "Tower"
	eventGanon      = "OOT_GANON"
)

// variantGroups pairs dungeon groups that are the normal and inverted form of
// the same structure. Reaching either one counts, and both share a pool of
// required locations.
var variantGroups = map[string]string{
	"ST":  "IST",
	"IST": "ST",
}

// variantAreas is the entry area of each variant group.
var variantAreas = map[string]string{
	"ST":  world.StoneTowerTemple,
	"IST": world.StoneTowerInverted,
}

type assignOptions struct {
	ownGame   bool
	locations []string
	explicit  bool // locations was supplied, even if empty
}

// savedEdge is an exit as it was before a trial touched it.
type savedEdge struct {
	area *types.Area
	to   string
	prev logic.Expr
	had  bool
}

// edits is a stack of temporary exit changes.
type edits []savedEdge

func (ed *edits) set(w *world.World, from, to string, expr logic.Expr) error {
	a, ok := w.Areas[from]
	if !ok {
		return invariantf("unknown area %q", from)
	}
	prev, had := a.Exits[to]
	*ed = append(*ed, savedEdge{area: a, to: to, prev: prev, had: had})
	a.Exits[to] = expr
	return nil
}

// restore puts every touched exit back, newest first.
func (ed *edits) restore() {
	for i := len(*ed) - 1; i >= 0; i-- {
		e := (*ed)[i]
		if e.had {
			e.area.Exits[e.to] = e.prev
		} else {
			delete(e.area.Exits, e.to)
		}
	}
	*ed = nil
}

// isAssignable reports whether routing original's source to replacement's
// destination keeps the replacement's locations (and Ganon, when required)
// reachable.
func (s *Shuffler) isAssignable(original, replacement string, opts assignOptions) (bool, error) {
	oe, err := s.entrance(original)
	if err != nil {
		return false, err
	}
	re, err := s.entrance(replacement)
	if err != nil {
		return false, err
	}

	if opts.ownGame && oe.Game != re.Game {
		return false, nil
	}
	if s.input.Settings.Logic == settings.LogicBeatable {
		return true, nil
	}

	dungeon := s.canonicalDungeon(re.To)
	st, err := s.trial(oe, re, dungeon)
	if err != nil {
		return false, err
	}

	var required []string
	switch {
	case opts.explicit:
		required = opts.locations
	case variantGroups[dungeon] != "":
		required = append(s.world.DungeonLocations(dungeon), s.world.DungeonLocations(variantGroups[dungeon])...)
	default:
		required = s.world.DungeonLocations(dungeon)
	}

	if !st.Reachable(required) {
		return false, nil
	}
	if dungeon == groupGanonTower && s.input.Settings.RequiresGanon() && !st.HasEvent(eventGanon) {
		return false, nil
	}
	return true, nil
}

// trial installs the candidate edge, runs the pathfinder once, and restores
// every touched exit before returning, whatever the outcome.
func (s *Shuffler) trial(oe, re *types.Entrance, dungeon string) (*pathfind.State, error) {
	expr, err := s.canonicalExpr(oe)
	if err != nil {
		return nil, err
	}

	var ed edits
	defer ed.restore()

	if err := ed.set(s.world, oe.From, re.To, expr); err != nil {
		return nil, err
	}
	if other, ok := variantGroups[dungeon]; ok {
		if err := ed.set(s.world, world.SpawnArea, variantAreas[other], logic.True()); err != nil {
			return nil, err
		}
	}

	st, err := s.pathfinder.Run("", pathfind.Options{
		SingleWorld: true,
		IgnoreItems: true,
		Recursive:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("checking %s → %s: %w", oe.ID, re.ID, err)
	}
	return st, nil
}
