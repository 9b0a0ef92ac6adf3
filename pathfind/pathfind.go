// Package pathfind computes which areas, events and locations are reachable
// from a start area under the logic guarding each edge.
package pathfind

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/doorshuffle/logic"
	"github.com/nathoo/doorshuffle/world"
)

// ErrUnknownArea is returned when the start area does not exist.
var ErrUnknownArea = errors.New("pathfind: unknown area")

// Options tune a run.
type Options struct {
	SingleWorld bool           // only world 0 is explored
	IgnoreItems bool           // every item requirement is satisfied
	Recursive   bool           // iterate until no new event or area appears
	Items       map[string]int // starting inventory when items are not ignored
}

// WorldState is what one world reached.
type WorldState struct {
	Areas  mapset.Set[string]
	Events mapset.Set[string]
}

// State is the result of a run.
type State struct {
	Locations mapset.Set[string]
	Worlds    []WorldState
}

// Pathfinder runs reachability over a world it does not own. It reads the
// world fresh on every run, so edits between runs are always observed.
type Pathfinder struct {
	world *world.World
}

// New creates a pathfinder over w.
func New(w *world.World) *Pathfinder {
	return &Pathfinder{world: w}
}

// walker is the evaluation context of one run.
type walker struct {
	opts   Options
	areas  mapset.Set[string]
	events mapset.Set[string]
	queue  []string
}

func (wk *walker) HasItem(item string, count int) bool {
	if wk.opts.IgnoreItems {
		return true
	}
	return wk.opts.Items[item] >= count
}

func (wk *walker) HasEvent(name string) bool {
	return wk.events.Has(name)
}

// Run explores from start, or from the world's start area when start is "".
func (p *Pathfinder) Run(start string, opts Options) (*State, error) {
	if start == "" {
		start = p.world.Start
	}
	if _, ok := p.world.Areas[start]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArea, start)
	}

	wk := &walker{
		opts:   opts,
		areas:  mapset.Of(start),
		events: mapset.New[string](),
		queue:  []string{start},
	}

	for {
		wk.expand(p.world)
		if !wk.triggerEvents(p.world) || !opts.Recursive {
			break
		}
		// New events may open exits out of areas already visited.
		wk.queue = world.SortedSet(wk.areas)
	}

	locations := mapset.New[string]()
	for _, id := range world.SortedSet(wk.areas) {
		for loc, expr := range p.world.Areas[id].Locations {
			if logic.Eval(expr, wk) {
				locations.Put(loc)
			}
		}
	}

	return &State{
		Locations: locations,
		Worlds:    []WorldState{{Areas: wk.areas, Events: wk.events}},
	}, nil
}

// expand follows every open exit from the queued areas.
func (wk *walker) expand(w *world.World) {
	for len(wk.queue) > 0 {
		id := wk.queue[0]
		wk.queue = wk.queue[1:]

		for dest, expr := range w.Areas[id].Exits {
			if wk.areas.Has(dest) {
				continue
			}
			if _, ok := w.Areas[dest]; !ok {
				continue
			}
			if logic.Eval(expr, wk) {
				wk.areas.Put(dest)
				wk.queue = append(wk.queue, dest)
			}
		}
	}
}

// triggerEvents grants every event whose condition holds in a reached area.
// It reports whether anything new was granted.
func (wk *walker) triggerEvents(w *world.World) bool {
	changed := false
	for _, id := range world.SortedSet(wk.areas) {
		for ev, expr := range w.Areas[id].Events {
			if wk.events.Has(ev) {
				continue
			}
			if logic.Eval(expr, wk) {
				wk.events.Put(ev)
				changed = true
			}
		}
	}
	return changed
}

// Reachable reports whether every location is in the state.
func (s *State) Reachable(locations []string) bool {
	for _, l := range locations {
		if !s.Locations.Has(l) {
			return false
		}
	}
	return true
}

// HasEvent reports whether world 0 triggered the event.
func (s *State) HasEvent(name string) bool {
	if len(s.Worlds) == 0 {
		return false
	}
	return s.Worlds[0].Events.Has(name)
}
