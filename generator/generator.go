// Package generator runs shuffle attempts until one succeeds. A placement
// failure only means the random order was unlucky, so the world is shuffled
// again from scratch; any other error ends the run.
package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/nathoo/doorshuffle/logic"
	"github.com/nathoo/doorshuffle/monitor"
	"github.com/nathoo/doorshuffle/random"
	"github.com/nathoo/doorshuffle/settings"
	"github.com/nathoo/doorshuffle/shuffle"
	"github.com/nathoo/doorshuffle/world"
)

// DefaultMaxAttempts bounds the retry loop when Options leaves it unset.
const DefaultMaxAttempts = 100

// ErrExhausted is returned when every attempt hit a placement failure.
var ErrExhausted = errors.New("generator: attempts exhausted")

// Options configure a run.
type Options struct {
	World       *world.World
	Parsers     logic.Parsers
	Settings    settings.Settings
	Seed        int64
	MaxAttempts int
	Monitor     monitor.Monitor

	// Position resumes the seed's stream after that many source values,
	// as recorded in Result.Position.
	Position int64

	// NewPathfinder is passed through to every attempt.
	NewPathfinder func(w *world.World) shuffle.Pathfinder
}

// Result is the first successful attempt.
type Result struct {
	Seed     int64
	Attempts int

	// Position is where the successful attempt started in the seed's
	// stream. Running again with the same seed and Position reproduces the
	// result on the first attempt.
	Position int64

	Output   *shuffle.Output
	Shuffler *shuffle.Shuffler
}

// Run shuffles opts.World until an attempt succeeds. All attempts draw from
// one random stream seeded with opts.Seed, so a seed reproduces the whole
// sequence of attempts.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.Monitor == nil {
		opts.Monitor = monitor.Discard
	}

	rng := random.Restore(opts.Seed, opts.Position)
	var last error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := rng.Position()
		s, err := shuffle.New(shuffle.Input{
			World:         opts.World,
			Parsers:       opts.Parsers,
			Settings:      opts.Settings,
			Random:        rng,
			Monitor:       opts.Monitor,
			Attempts:      attempt,
			NewPathfinder: opts.NewPathfinder,
		})
		if err != nil {
			return nil, err
		}

		out, err := s.Run()
		if err == nil {
			return &Result{Seed: rng.Seed(), Attempts: attempt, Position: start, Output: out, Shuffler: s}, nil
		}

		var pe *shuffle.PlacementError
		if !errors.As(err, &pe) {
			return nil, err
		}
		opts.Monitor.Log(fmt.Sprintf("Attempt %d failed: %v", attempt, err))
		last = err
	}
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, opts.MaxAttempts, last)
}
