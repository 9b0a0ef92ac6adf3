package inspect

import (
	"strings"
	"testing"

	"github.com/nathoo/doorshuffle/generator"
	"github.com/nathoo/doorshuffle/logic"
	"github.com/nathoo/doorshuffle/random"
	"github.com/nathoo/doorshuffle/settings"
	"github.com/nathoo/doorshuffle/shuffle"
	"github.com/nathoo/doorshuffle/types"
	"github.com/nathoo/doorshuffle/world"
)

func testWorld() *world.World {
	w := world.New()
	add := func(id, dungeon string) *types.Area {
		a := world.NewArea(types.GameOoT)
		a.Dungeon = dungeon
		w.Areas[id] = a
		return a
	}
	add(world.SpawnArea, "")
	add("Death Mountain", "")
	add("Lake", "")
	add("Fire Lobby", "Fire")
	add("Water Lobby", "Water")

	link := func(id, from, to, rev string) {
		w.Entrances[id] = &types.Entrance{ID: id, From: from, To: to, Type: types.EntranceDungeon, Reverse: rev, Game: types.GameOoT}
		w.Areas[from].Exits[to] = logic.True()
	}
	w.Areas[world.SpawnArea].Exits["Death Mountain"] = logic.True()
	w.Areas[world.SpawnArea].Exits["Lake"] = logic.True()
	link("FIRE_IN", "Death Mountain", "Fire Lobby", "FIRE_OUT")
	link("FIRE_OUT", "Fire Lobby", "Death Mountain", "FIRE_IN")
	link("WATER_IN", "Lake", "Water Lobby", "WATER_OUT")
	link("WATER_OUT", "Water Lobby", "Lake", "WATER_IN")

	for area, loc := range map[string]string{"Fire Lobby": "Fire Chest", "Water Lobby": "Water Chest"} {
		a := w.Areas[area]
		a.Locations[loc] = logic.True()
		w.DungeonSet(a.Dungeon).Put(loc)
		w.Regions[loc] = world.RegionOf(a.Dungeon)
	}
	return w
}

// swappedSession pretends Fire and Water traded places.
func swappedSession(t *testing.T) *Session {
	t.Helper()
	w := testWorld()
	s, err := shuffle.New(shuffle.Input{World: w, Settings: settings.Default(), Random: random.New(1)})
	if err != nil {
		t.Fatal(err)
	}

	dungeons := make([]int, len(shuffle.DungeonIndex))
	for i := range dungeons {
		dungeons[i] = i
	}
	fire, water := shuffle.DungeonIndex["Fire"], shuffle.DungeonIndex["Water"]
	dungeons[fire], dungeons[water] = water, fire
	boss := make([]int, len(shuffle.BossIndex))
	for i := range boss {
		boss[i] = i
	}

	return New(w, &generator.Result{
		Seed:     1,
		Attempts: 1,
		Shuffler: s,
		Output: &shuffle.Output{
			World: s.World(),
			Entrances: types.ShuffleResult{
				Overrides: map[string]string{
					"FIRE_IN":   "WATER_IN",
					"WATER_OUT": "FIRE_OUT",
					"WATER_IN":  "FIRE_IN",
					"FIRE_OUT":  "WATER_OUT",
				},
				Dungeons: dungeons,
				Boss:     boss,
			},
		},
	})
}

func joined(r Result) string {
	return strings.Join(r.Output, "\n")
}

func TestStep(t *testing.T) {
	s := swappedSession(t)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "   ", []string{"What do you want to know?"}},
		{"unknown", "dance", []string{`Unknown query "dance"`}},
		{"help", "help", []string{"overrides [text]", "check <entrance>"}},
		{"overrides", "overrides", []string{"FIRE_IN → WATER_IN", "WATER_OUT → FIRE_OUT"}},
		{"overrides filtered", "overrides out", []string{"FIRE_OUT → WATER_OUT"}},
		{"overrides no match", "o nothing", []string{`No overrides match "nothing"`}},
		{"where", "where FIRE_IN", []string{"FIRE_IN (Death Mountain) now leads to WATER_IN, arriving in Water Lobby.", "Fire Lobby is now reached through WATER_IN (Lake)."}},
		{"where ignores case", "w fire_in", []string{"now leads to WATER_IN"}},
		{"where unknown", "where NOPE", []string{`No entrance "NOPE"`}},
		{"where usage", "where", []string{"Usage: where <entrance>"}},
		{"dungeons", "dungeons", []string{"Fire     ← Water", "Water    ← Fire"}},
		{"bosses", "bosses", []string{"Every boss is in its own slot."}},
		{"regions", "regions Fire", []string{"Fire Chest  [OOT_TEMPLE_FIRE]"}},
		{"regions empty", "regions Forest", []string{`"Forest" has no locations`}},
		{"check", "check FIRE_IN", []string{"FIRE_IN → WATER_IN: every required location is reachable."}},
		{"check usage", "check", []string{"Usage: check <entrance>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := joined(s.Step(tt.input))
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Step(%q) = %q, want it to contain %q", tt.input, got, w)
				}
			}
		})
	}
}

func TestStep_OverridesSorted(t *testing.T) {
	r := swappedSession(t).Step("overrides")
	want := []string{"FIRE_IN → WATER_IN", "FIRE_OUT → WATER_OUT", "WATER_IN → FIRE_IN", "WATER_OUT → FIRE_OUT"}
	if strings.Join(r.Output, "|") != strings.Join(want, "|") {
		t.Errorf("got %v, want %v", r.Output, want)
	}
}

func TestStep_CheckInvalid(t *testing.T) {
	s := swappedSession(t)
	s.Result.Output.World.Areas["Water Lobby"].Locations["Water Chest"] = logic.Event("NEVER")
	got := joined(s.Step("check FIRE_IN"))
	if !strings.Contains(got, "out of reach") {
		t.Errorf("got %q", got)
	}
}

func TestStep_NotShuffled(t *testing.T) {
	s := swappedSession(t)
	delete(s.Result.Output.Entrances.Overrides, "FIRE_IN")

	if got := joined(s.Step("check FIRE_IN")); !strings.Contains(got, "was not shuffled") {
		t.Errorf("check: %q", got)
	}
	if got := joined(s.Step("where FIRE_IN")); !strings.Contains(got, "still leads to Fire Lobby") {
		t.Errorf("where: %q", got)
	}
}

func TestStep_NothingShuffled(t *testing.T) {
	s := swappedSession(t)
	s.Result.Output.Entrances.Overrides = map[string]string{}
	if got := joined(s.Step("overrides")); got != "No entrances were shuffled." {
		t.Errorf("got %q", got)
	}
}
