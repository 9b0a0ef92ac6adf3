package shuffle

import (
	"github.com/nathoo/doorshuffle/logic"
	"github.com/nathoo/doorshuffle/pathfind"
	"github.com/nathoo/doorshuffle/random"
	"github.com/nathoo/doorshuffle/settings"
	"github.com/nathoo/doorshuffle/types"
	"github.com/nathoo/doorshuffle/world"
)

// builder assembles small worlds for tests.
type builder struct {
	w *world.World
}

func newBuilder() *builder {
	w := world.New()
	w.Areas[world.SpawnArea] = world.NewArea(types.GameOoT)
	return &builder{w: w}
}

func (b *builder) area(id string, game types.Game, dungeon string, boss bool) *builder {
	a := world.NewArea(game)
	a.Dungeon = dungeon
	a.Boss = boss
	b.w.Areas[id] = a
	return b
}

func (b *builder) exit(from, to string, guard logic.Expr) *builder {
	b.w.Areas[from].Exits[to] = guard
	return b
}

func (b *builder) event(area, name string, cond logic.Expr) *builder {
	b.w.Areas[area].Events[name] = cond
	return b
}

func (b *builder) location(area, id string, cond logic.Expr) *builder {
	a := b.w.Areas[area]
	a.Locations[id] = cond
	if a.Dungeon != "" {
		b.w.DungeonSet(a.Dungeon).Put(id)
	}
	b.w.Regions[id] = world.RegionOf(a.Dungeon)
	return b
}

// entrance registers an entrance and the edge it stands for.
func (b *builder) entrance(id, from, to string, typ types.EntranceType, game types.Game, reverse string, guard logic.Expr) *builder {
	b.w.Entrances[id] = &types.Entrance{ID: id, From: from, To: to, Type: typ, Reverse: reverse, Game: game}
	return b.exit(from, to, guard)
}

// countingPathfinder records how often the shuffler asks for reachability.
type countingPathfinder struct {
	inner Pathfinder
	calls int
}

func (c *countingPathfinder) Run(start string, opts pathfind.Options) (*pathfind.State, error) {
	c.calls++
	return c.inner.Run(start, opts)
}

// failingPathfinder always fails.
type failingPathfinder struct{ err error }

func (f failingPathfinder) Run(string, pathfind.Options) (*pathfind.State, error) {
	return nil, f.err
}

func newShuffler(w *world.World, cfg settings.Settings, seed int64) (*Shuffler, error) {
	return New(Input{World: w, Settings: cfg, Random: random.New(seed), Attempts: 1})
}

// snapshotExits copies every exit map of a world.
func snapshotExits(w *world.World) map[string]map[string]logic.Expr {
	out := map[string]map[string]logic.Expr{}
	for id, a := range w.Areas {
		m := map[string]logic.Expr{}
		for k, v := range a.Exits {
			m[k] = v
		}
		out[id] = m
	}
	return out
}

// fireWaterWorld has two OoT dungeons, each entered from its own overworld
// area with a paired exit back.
func fireWaterWorld() *world.World {
	t := logic.True()
	b := newBuilder().
		area("Death Mountain", types.GameOoT, "", false).
		area("Lake", types.GameOoT, "", false).
		area("Fire Lobby", types.GameOoT, "Fire", false).
		area("Fire Depths", types.GameOoT, "Fire", false).
		area("Water Lobby", types.GameOoT, "Water", false).
		exit(world.SpawnArea, "Death Mountain", t).
		exit(world.SpawnArea, "Lake", t).
		exit("Fire Lobby", "Fire Depths", t).
		entrance("FIRE_IN", "Death Mountain", "Fire Lobby", types.EntranceDungeon, types.GameOoT, "FIRE_OUT", t).
		entrance("FIRE_OUT", "Fire Lobby", "Death Mountain", types.EntranceDungeon, types.GameOoT, "FIRE_IN", t).
		entrance("WATER_IN", "Lake", "Water Lobby", types.EntranceDungeon, types.GameOoT, "WATER_OUT", t).
		entrance("WATER_OUT", "Water Lobby", "Lake", types.EntranceDungeon, types.GameOoT, "WATER_IN", t).
		location("Fire Lobby", "Fire Chest 1", t).
		location("Fire Depths", "Fire Chest 2", t).
		location("Water Lobby", "Water Chest", t)
	return b.w
}

// bossWorld has three boss rooms. DT is the only OoT boss. The DC room's
// reward needs DC's own clear event, which only becomes reachable once DC's
// boss has been moved into another room.
func bossWorld() *world.World {
	t := logic.True()
	b := newBuilder().
		area("DT Lair", types.GameOoT, "DT", false).
		area("DC Lair", types.GameMM, "DC", false).
		area("JJ Lair", types.GameMM, "JJ", false).
		area("DT Boss", types.GameOoT, "DT", true).
		area("DC Boss", types.GameMM, "DC", true).
		area("JJ Boss", types.GameMM, "JJ", true).
		exit(world.SpawnArea, "DT Lair", t).
		exit(world.SpawnArea, "DC Lair", t).
		exit(world.SpawnArea, "JJ Lair", t).
		entrance("BOSS_DT", "DT Lair", "DT Boss", types.EntranceBoss, types.GameOoT, "", t).
		entrance("BOSS_DC", "DC Lair", "DC Boss", types.EntranceBoss, types.GameMM, "", t).
		entrance("BOSS_JJ", "JJ Lair", "JJ Boss", types.EntranceBoss, types.GameMM, "", t).
		location("DT Boss", "DT Heart", t).
		location("DC Boss", "DC Heart", logic.Event("DC_CLEAR")).
		location("JJ Boss", "JJ Heart", t).
		event("DT Boss", "DT_CLEAR", t).
		event("DC Boss", "DC_CLEAR", t).
		event("JJ Boss", "JJ_CLEAR", t)
	return b.w
}

// regionWorld has one-way region links in both games.
func regionWorld() *world.World {
	t := logic.True()
	b := newBuilder().
		area("Kokiri", types.GameOoT, "", false).
		area("Field", types.GameOoT, "", false).
		area("Termina", types.GameMM, "", false).
		area("Clock Town", types.GameMM, "", false).
		area(world.MMHubArea, types.GameMM, "", false).
		exit(world.SpawnArea, "Kokiri", t).
		exit(world.SpawnArea, "Termina", t).
		entrance("KOKIRI_FIELD", "Kokiri", "Field", types.EntranceRegion, types.GameOoT, "", logic.Event("KOKIRI_SWORD")).
		entrance("TERMINA_TOWN", "Termina", "Clock Town", types.EntranceRegion, types.GameMM, "", t).
		entrance("SPAWN_TERMINA", world.SpawnArea, "Termina", types.EntranceRegion, types.GameOoT, "", t)
	return b.w
}

func withDungeons(mode settings.ERMode) settings.Settings {
	cfg := settings.Default()
	cfg.ERDungeons = mode
	return cfg
}

func withBoss(mode settings.ERMode) settings.Settings {
	cfg := settings.Default()
	cfg.ERBoss = mode
	return cfg
}
