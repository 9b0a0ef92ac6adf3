// Package world holds the traversal graph the shuffler operates on, with
// lookup helpers and a deep copy for per-attempt ownership.
package world

import (
	"maps"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/doorshuffle/logic"
	"github.com/nathoo/doorshuffle/types"
)

// Fixed node names the shuffler relies on.
const (
	SpawnArea          = "OOT SPAWN"
	MMHubArea          = "MM GLOBAL"
	StoneTowerTemple   = "MM Stone Tower Temple"
	StoneTowerInverted = "MM Stone Tower Temple Inverted"
)

// World is the traversal graph: areas, entrances, dungeon groups, and the
// region each location is displayed under.
type World struct {
	Start     string
	Areas     map[string]*types.Area
	Entrances map[string]*types.Entrance
	Dungeons  map[string]mapset.Set[string] // dungeon group → location ids
	Regions   map[string]string             // location id → region id
}

// New creates an empty world starting at SpawnArea.
func New() *World {
	return &World{
		Start:     SpawnArea,
		Areas:     map[string]*types.Area{},
		Entrances: map[string]*types.Entrance{},
		Dungeons:  map[string]mapset.Set[string]{},
		Regions:   map[string]string{},
	}
}

// NewArea returns an area with all maps allocated.
func NewArea(game types.Game) *types.Area {
	return &types.Area{
		Game:      game,
		Exits:     map[string]logic.Expr{},
		Events:    map[string]logic.Expr{},
		Locations: map[string]logic.Expr{},
	}
}

// Clone returns a deep copy. Expressions are immutable and shared.
func (w *World) Clone() *World {
	c := &World{
		Start:     w.Start,
		Areas:     make(map[string]*types.Area, len(w.Areas)),
		Entrances: make(map[string]*types.Entrance, len(w.Entrances)),
		Dungeons:  make(map[string]mapset.Set[string], len(w.Dungeons)),
		Regions:   maps.Clone(w.Regions),
	}
	for id, a := range w.Areas {
		c.Areas[id] = &types.Area{
			Game:      a.Game,
			Dungeon:   a.Dungeon,
			Boss:      a.Boss,
			Exits:     cloneExprs(a.Exits),
			Events:    cloneExprs(a.Events),
			Locations: cloneExprs(a.Locations),
		}
	}
	for id, e := range w.Entrances {
		ec := *e
		c.Entrances[id] = &ec
	}
	for id, set := range w.Dungeons {
		s := mapset.New[string]()
		set.Each(s.Put)
		c.Dungeons[id] = s
	}
	if c.Regions == nil {
		c.Regions = map[string]string{}
	}
	return c
}

func cloneExprs(m map[string]logic.Expr) map[string]logic.Expr {
	c := make(map[string]logic.Expr, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// AddArea registers an area and records its locations in its dungeon group
// and region.
func (w *World) AddArea(id string, a *types.Area, region string) {
	w.Areas[id] = a
	for loc := range a.Locations {
		if a.Dungeon != "" {
			w.DungeonSet(a.Dungeon).Put(loc)
		}
		if region == "" {
			region = RegionOf(a.Dungeon)
		}
		w.Regions[loc] = region
	}
}

// DungeonSet returns the location set for a group, creating it if needed.
func (w *World) DungeonSet(group string) mapset.Set[string] {
	s, ok := w.Dungeons[group]
	if !ok {
		s = mapset.New[string]()
		w.Dungeons[group] = s
	}
	return s
}

// DungeonLocations returns the sorted locations of a group.
func (w *World) DungeonLocations(group string) []string {
	s, ok := w.Dungeons[group]
	if !ok {
		return nil
	}
	return SortedSet(s)
}

// EntrancesOfType returns every entrance of the given type, sorted by id.
func (w *World) EntrancesOfType(t types.EntranceType) []*types.Entrance {
	var out []*types.Entrance
	for _, e := range w.Entrances {
		if e.Type == t {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AreaIDs returns every area id, sorted.
func (w *World) AreaIDs() []string {
	ids := make([]string, 0, len(w.Areas))
	for id := range w.Areas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Exit returns the guard on the edge from → to, if any.
func (w *World) Exit(from, to string) (logic.Expr, bool) {
	a, ok := w.Areas[from]
	if !ok {
		return logic.Expr{}, false
	}
	e, ok := a.Exits[to]
	return e, ok
}

// SortedSet returns the members of a set in sorted order.
func SortedSet(s mapset.Set[string]) []string {
	out := make([]string, 0, s.Size())
	s.Each(func(k string) { out = append(out, k) })
	sort.Strings(out)
	return out
}
