// Package random provides the seeded source every shuffle draws from.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Random wraps math/rand.Rand and counts the values drawn from the
// underlying source, so a stream can be resumed at any recorded position.
type Random struct {
	seed int64
	src  *countingSource
	rng  *rand.Rand
}

// countingSource counts every value the generator pulls. One Intn may pull
// more than one value, so the count is of source steps, not of draws.
type countingSource struct {
	src rand.Source64
	n   int64
}

func (c *countingSource) Int63() int64 {
	c.n++
	return c.src.Int63()
}

func (c *countingSource) Uint64() uint64 {
	c.n++
	return c.src.Uint64()
}

func (c *countingSource) Seed(seed int64) {
	c.src.Seed(seed)
	c.n = 0
}

// New creates a new deterministic source from a seed.
func New(seed int64) *Random {
	src := &countingSource{src: rand.NewSource(seed).(rand.Source64)}
	return &Random{seed: seed, src: src, rng: rand.New(src)}
}

// NewSeed generates a seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Intn returns a random integer in [0, n).
func (r *Random) Intn(n int) int {
	return r.rng.Intn(n)
}

// Seed returns the seed the source was created with.
func (r *Random) Seed() int64 {
	return r.seed
}

// Position returns the number of source values consumed since creation.
func (r *Random) Position() int64 {
	return r.src.n
}

// Restore creates a source for seed and skips the first position values,
// so its next draw equals the next draw of the stream it was recorded from.
func Restore(seed int64, position int64) *Random {
	r := New(seed)
	for i := int64(0); i < position; i++ {
		r.src.Int63()
	}
	return r
}

// Shuffle returns a permuted copy of s. The input is left untouched.
func Shuffle[T any](r *Random, s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
