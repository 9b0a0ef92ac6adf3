package shuffle

import (
	"errors"
	"fmt"
)

// ErrInvariant marks a malformed world: a missing entrance, pairing, edge
// or group. It is never worth retrying.
var ErrInvariant = errors.New("shuffle: invariant violated")

// Placement kinds.
const (
	KindDungeon = "dungeon"
	KindBoss    = "boss"
)

// PlacementError reports that no destination in the remaining pool accepted
// a source under the current random order. The attempt must be discarded.
type PlacementError struct {
	Kind   string
	Source string
}

func (e *PlacementError) Error() string {
	if e.Kind == KindBoss {
		return fmt.Sprintf("nowhere to place boss %s", e.Source)
	}
	return fmt.Sprintf("unable to assign a dungeon to location: %s", e.Source)
}

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
