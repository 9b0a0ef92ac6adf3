package spoiler

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/nathoo/doorshuffle/settings"
	"github.com/nathoo/doorshuffle/shuffle"
	"github.com/nathoo/doorshuffle/types"
)

func testResult() types.ShuffleResult {
	boss := make([]int, len(shuffle.BossIndex))
	for i := range boss {
		boss[i] = i
	}
	dungeons := make([]int, len(shuffle.DungeonIndex))
	for i := range dungeons {
		dungeons[i] = i
	}
	fire, water := shuffle.DungeonIndex["Fire"], shuffle.DungeonIndex["Water"]
	dungeons[fire], dungeons[water] = water, fire
	dc, jj := shuffle.BossIndex["DC"], shuffle.BossIndex["JJ"]
	boss[dc], boss[jj] = jj, dc

	return types.ShuffleResult{
		Overrides: map[string]string{"OOT_FIRE": "OOT_WATER", "OOT_WATER": "OOT_FIRE"},
		Boss:      boss,
		Dungeons:  dungeons,
	}
}

func TestNew(t *testing.T) {
	cfg := settings.Default()
	cfg.ERDungeons = settings.ERFull
	l := New(42, 17, 3, cfg, testResult())

	if l.Version != Version {
		t.Errorf("Version = %q", l.Version)
	}
	if l.Seed != 42 || l.Position != 17 || l.Attempts != 3 {
		t.Errorf("Seed/Position/Attempts = %d/%d/%d", l.Seed, l.Position, l.Attempts)
	}
	if len(l.Dungeons) != 2 || l.Dungeons["Fire"] != "Water" || l.Dungeons["Water"] != "Fire" {
		t.Errorf("Dungeons = %v", l.Dungeons)
	}
	if len(l.Bosses) != 2 || l.Bosses["DC"] != "JJ" || l.Bosses["JJ"] != "DC" {
		t.Errorf("Bosses = %v", l.Bosses)
	}
	if l.Overrides["OOT_FIRE"] != "OOT_WATER" {
		t.Errorf("Overrides = %v", l.Overrides)
	}
}

func TestNewCopiesOverrides(t *testing.T) {
	res := testResult()
	l := New(1, 0, 1, settings.Default(), res)
	res.Overrides["OOT_FIRE"] = "changed"
	if l.Overrides["OOT_FIRE"] != "OOT_WATER" {
		t.Error("log shares the result's override map")
	}
}

func TestRoundTrip(t *testing.T) {
	cfg := settings.Default()
	cfg.Goal = settings.GoalMajora
	cfg.ERBoss = settings.EROwnGame
	l := New(7, 40, 2, cfg, testResult())

	path := filepath.Join(t.TempDir(), "spoiler.json")
	if err := Save(path, l); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got.Seed != 7 || got.Position != 40 || got.Attempts != 2 {
		t.Errorf("Seed/Position/Attempts = %d/%d/%d", got.Seed, got.Position, got.Attempts)
	}
	if got.Settings != cfg {
		t.Errorf("Settings = %+v, want %+v", got.Settings, cfg)
	}
	if got.Bosses["DC"] != "JJ" || got.Dungeons["Fire"] != "Water" {
		t.Errorf("slots lost: %v %v", got.Bosses, got.Dungeons)
	}
}

func TestJSONFieldNames(t *testing.T) {
	data, err := Marshal(New(5, 0, 1, settings.Default(), testResult()))
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"version", "seed", "position", "attempts", "settings", "overrides", "dungeons", "bosses"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
}

func TestUnmarshalFillsMaps(t *testing.T) {
	l, err := Unmarshal([]byte(`{"version":"1","seed":3}`))
	if err != nil {
		t.Fatal(err)
	}
	if l.Overrides == nil || l.Dungeons == nil || l.Bosses == nil {
		t.Error("nil maps after load")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Unmarshal([]byte("{not json")); err == nil {
		t.Error("expected error for bad JSON")
	}
}
