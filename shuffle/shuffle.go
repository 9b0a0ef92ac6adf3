// Package shuffle reassigns which entrance leads where while keeping the
// world completable. A Shuffler owns a private copy of the world for one
// attempt and runs the region, dungeon and boss passes in that order.
package shuffle

import (
	"errors"
	"fmt"

	"github.com/nathoo/doorshuffle/logic"
	"github.com/nathoo/doorshuffle/monitor"
	"github.com/nathoo/doorshuffle/pathfind"
	"github.com/nathoo/doorshuffle/random"
	"github.com/nathoo/doorshuffle/settings"
	"github.com/nathoo/doorshuffle/types"
	"github.com/nathoo/doorshuffle/world"
)

// Pathfinder computes reachability over the world it was created for.
type Pathfinder interface {
	Run(start string, opts pathfind.Options) (*pathfind.State, error)
}

// Input is everything one attempt needs. World is never mutated.
type Input struct {
	World    *world.World
	Parsers  logic.Parsers
	Settings settings.Settings
	Random   *random.Random
	Monitor  monitor.Monitor
	Attempts int

	// NewPathfinder builds the pathfinder over the shuffler's private world.
	// Defaults to pathfind.New.
	NewPathfinder func(w *world.World) Pathfinder
}

// Output is a successful attempt.
type Output struct {
	World     *world.World
	Entrances types.ShuffleResult
}

// Shuffler runs one attempt.
type Shuffler struct {
	input      Input
	world      *world.World
	pathfinder Pathfinder
	resetTime  logic.Expr
	result     types.ShuffleResult
	ran        bool
}

// New clones the input world and prepares a shuffler over the clone.
func New(in Input) (*Shuffler, error) {
	if in.World == nil {
		return nil, errors.New("shuffle: nil world")
	}
	if in.Random == nil {
		return nil, errors.New("shuffle: nil random source")
	}
	if err := in.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("shuffle: %w", err)
	}
	if in.Monitor == nil {
		in.Monitor = monitor.Discard
	}
	if in.Parsers == nil {
		in.Parsers = logic.DefaultParsers()
	}
	if in.NewPathfinder == nil {
		in.NewPathfinder = func(w *world.World) Pathfinder { return pathfind.New(w) }
	}

	mm, ok := in.Parsers[string(types.GameMM)]
	if !ok {
		return nil, invariantf("no %s expression parser", types.GameMM)
	}
	resetTime, err := mm.Parse(logic.MacroResetTime)
	if err != nil {
		return nil, fmt.Errorf("shuffle: %w", err)
	}

	w := in.World.Clone()
	return &Shuffler{
		input:      in,
		world:      w,
		pathfinder: in.NewPathfinder(w),
		resetTime:  resetTime,
		result: types.ShuffleResult{
			Overrides: map[string]string{},
			Boss:      identity(len(BossIndex)),
			Dungeons:  identity(len(DungeonIndex)),
		},
	}, nil
}

// Run executes the enabled passes. On error nothing is returned; the
// caller discards the shuffler.
func (s *Shuffler) Run() (*Output, error) {
	if s.ran {
		return nil, errors.New("shuffle: Run called twice")
	}
	s.ran = true

	s.input.Monitor.Log(fmt.Sprintf("Logic: Entrances (attempt %d)", s.input.Attempts))

	cfg := s.input.Settings
	if cfg.ERRegions {
		if err := s.placeRegions(); err != nil {
			return nil, err
		}
	}
	if cfg.ERDungeons != settings.ERNone {
		if err := s.fixDungeons(); err != nil {
			return nil, err
		}
	}
	if cfg.ERBoss != settings.ERNone {
		if err := s.fixBosses(); err != nil {
			return nil, err
		}
	}

	return &Output{World: s.world, Entrances: s.result}, nil
}

// World returns the shuffler's private world.
func (s *Shuffler) World() *world.World {
	return s.world
}

// Check re-runs the validity check for routing original to replacement on
// the current world. A nil locations list uses the destination group's.
func (s *Shuffler) Check(original, replacement string, locations []string) (bool, error) {
	return s.isAssignable(original, replacement, assignOptions{
		locations: locations,
		explicit:  locations != nil,
	})
}

func (s *Shuffler) entrance(id string) (*types.Entrance, error) {
	e, ok := s.world.Entrances[id]
	if !ok {
		return nil, invariantf("unknown entrance %q", id)
	}
	return e, nil
}

func (s *Shuffler) area(id string) (*types.Area, error) {
	a, ok := s.world.Areas[id]
	if !ok {
		return nil, invariantf("unknown area %q", id)
	}
	return a, nil
}

// canonicalExpr is the guard of e's edge in the caller's world. Passes
// delete edges from the private world, so the original is read from there.
func (s *Shuffler) canonicalExpr(e *types.Entrance) (logic.Expr, error) {
	expr, ok := s.input.World.Exit(e.From, e.To)
	if !ok {
		return logic.Expr{}, invariantf("entrance %q has no edge %q → %q", e.ID, e.From, e.To)
	}
	return expr, nil
}

// canonicalDungeon is the group of an area in the caller's world.
func (s *Shuffler) canonicalDungeon(areaID string) string {
	if a, ok := s.input.World.Areas[areaID]; ok {
		return a.Dungeon
	}
	return ""
}

func remove(pool []string, v string) []string {
	out := pool[:0:0]
	for _, p := range pool {
		if p != v {
			out = append(out, p)
		}
	}
	return out
}
