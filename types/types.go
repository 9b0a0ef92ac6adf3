// Package types defines the shared data structures for the entrance shuffler.
// This package contains only type definitions and no logic.
package types

import "github.com/nathoo/doorshuffle/logic"

// Game tags which constituent title an area or entrance belongs to.
type Game string

const (
	GameOoT Game = "oot"
	GameMM  Game = "mm"
)

// EntranceType is the shuffle category of an entrance.
type EntranceType string

const (
	EntranceRegion  EntranceType = "region"
	EntranceDungeon EntranceType = "dungeon"
	EntranceBoss    EntranceType = "boss"
)

// Area is a node in the traversal graph.
type Area struct {
	Game      Game
	Dungeon   string                // dungeon group tag, "" for overworld
	Boss      bool                  // true for boss rooms
	Exits     map[string]logic.Expr // destination area → guard
	Events    map[string]logic.Expr // event name → grant condition
	Locations map[string]logic.Expr // location id → check condition
}

// Entrance is a directed transition between two areas.
type Entrance struct {
	ID      string
	From    string
	To      string
	Type    EntranceType
	Reverse string // id of the opposite direction, "" if none
	Game    Game
}

// ShuffleResult records what a shuffle changed.
type ShuffleResult struct {
	Overrides map[string]string // original entrance → replacement entrance
	Boss      []int             // boss slot → boss now placed there
	Dungeons  []int             // dungeon slot → dungeon now placed there
}
