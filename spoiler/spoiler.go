// Package spoiler implements the JSON spoiler log of a finished shuffle.
package spoiler

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nathoo/doorshuffle/settings"
	"github.com/nathoo/doorshuffle/shuffle"
	"github.com/nathoo/doorshuffle/types"
)

// Version is written into every log.
const Version = "1"

// Log is the JSON-serializable spoiler format. Dungeons and Bosses map a
// slot's group name to the group now placed there; identity slots are left
// out.
type Log struct {
	Version   string            `json:"version"`
	Seed      int64             `json:"seed"`
	Position  int64             `json:"position"`
	Attempts  int               `json:"attempts"`
	Settings  settings.Settings `json:"settings"`
	Overrides map[string]string `json:"overrides"`
	Dungeons  map[string]string `json:"dungeons"`
	Bosses    map[string]string `json:"bosses"`
}

// New builds a log from a shuffle result. Position is where the successful
// attempt started in the seed's random stream.
func New(seed, position int64, attempts int, cfg settings.Settings, res types.ShuffleResult) *Log {
	l := &Log{
		Version:   Version,
		Seed:      seed,
		Position:  position,
		Attempts:  attempts,
		Settings:  cfg,
		Overrides: map[string]string{},
		Dungeons:  slotNames(shuffle.DungeonIndex, res.Dungeons),
		Bosses:    slotNames(shuffle.BossIndex, res.Boss),
	}
	for k, v := range res.Overrides {
		l.Overrides[k] = v
	}
	return l
}

func slotNames(table map[string]int, slots []int) map[string]string {
	out := map[string]string{}
	for slot, placed := range slots {
		if slot == placed {
			continue
		}
		out[shuffle.SlotName(table, slot)] = shuffle.SlotName(table, placed)
	}
	return out
}

// Marshal serializes a log to indented JSON.
func Marshal(l *Log) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Log.
func Unmarshal(data []byte) (*Log, error) {
	var l Log
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	if l.Overrides == nil {
		l.Overrides = map[string]string{}
	}
	if l.Dungeons == nil {
		l.Dungeons = map[string]string{}
	}
	if l.Bosses == nil {
		l.Bosses = map[string]string{}
	}
	return &l, nil
}

// Save writes the log to path.
func Save(path string, l *Log) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing spoiler: %w", err)
	}
	return nil
}

// Load reads a log from path.
func Load(path string) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spoiler: %w", err)
	}
	l, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parsing spoiler %s: %w", path, err)
	}
	return l, nil
}
