package shuffle

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/doorshuffle/random"
	"github.com/nathoo/doorshuffle/settings"
	"github.com/nathoo/doorshuffle/types"
)

// baseDungeons are always shuffled when dungeon shuffle is on.
var baseDungeons = []string{"DT", "DC", "JJ", "Forest", "Fire", "Water", "Shadow", "Spirit", "WF", "SH", "GB", "ST", "IST"}

// shuffledDungeons lists the configured dungeon groups in a stable order.
func shuffledDungeons(cfg settings.Settings) []string {
	out := append([]string(nil), baseDungeons...)
	if cfg.ERMinorDungeons {
		out = append(out, "BotW", "IC", "GTG")
	}
	if cfg.ERGanonCastle {
		out = append(out, "Ganon")
	}
	if cfg.ERGanonTower {
		out = append(out, "Tower")
	}
	if cfg.ERSpiderHouses {
		out = append(out, "SSH", "OSH")
	}
	if cfg.ERPirateFortress {
		out = append(out, "PF")
	}
	if cfg.ERBeneathWell {
		out = append(out, "BtW", "BtWE")
	}
	if cfg.ERIkanaCastle {
		out = append(out, "ACoI")
	}
	if cfg.ERSecretShrine {
		out = append(out, "SS")
	}
	return out
}

// fixDungeons shuffles dungeon entrances: each dungeon, in random order,
// takes the first destination in a random order of the remaining pool that
// keeps the destination's locations reachable.
func (s *Shuffler) fixDungeons() error {
	configured := shuffledDungeons(s.input.Settings)
	shuffled := mapset.Of(configured...)

	// Collect each group's entrance and cut both directions out of the graph.
	byDungeon := map[string]*types.Entrance{}
	for _, e := range s.world.EntrancesOfType(types.EntranceDungeon) {
		from, err := s.area(e.From)
		if err != nil {
			return err
		}
		to, err := s.area(e.To)
		if err != nil {
			return err
		}
		if !shuffled.Has(from.Dungeon) && !shuffled.Has(to.Dungeon) {
			continue
		}

		exit, ok := s.world.Entrances[e.Reverse]
		if !ok {
			return invariantf("dungeon entrance %q has no reverse", e.ID)
		}
		exitFrom, err := s.area(exit.From)
		if err != nil {
			return err
		}

		byDungeon[to.Dungeon] = e
		delete(from.Exits, e.To)
		delete(exitFrom.Exits, exit.To)
	}

	present := s.presentGroups()
	var groups []string
	for _, d := range configured {
		if _, ok := byDungeon[d]; ok {
			groups = append(groups, d)
			continue
		}
		if present.Has(d) {
			return invariantf("dungeon %q has no entrance", d)
		}
	}

	dungeons := random.Shuffle(s.input.Random, groups)
	pool := append([]string(nil), dungeons...)
	ownGame := s.input.Settings.ERDungeons == settings.EROwnGame

	for len(dungeons) > 0 {
		dungeon := dungeons[len(dungeons)-1]
		dungeons = dungeons[:len(dungeons)-1]
		src := byDungeon[dungeon]

		dest := ""
		for _, c := range random.Shuffle(s.input.Random, pool) {
			ok, err := s.isAssignable(src.ID, byDungeon[c].ID, assignOptions{ownGame: ownGame})
			if err != nil {
				return err
			}
			if ok {
				dest = c
				break
			}
		}
		if dest == "" {
			return &PlacementError{Kind: KindDungeon, Source: dungeon}
		}

		destSlot, ok := DungeonIndex[dest]
		if !ok {
			return invariantf("dungeon %q has no slot", dest)
		}
		srcSlot, ok := DungeonIndex[dungeon]
		if !ok {
			return invariantf("dungeon %q has no slot", dungeon)
		}

		pool = remove(pool, dest)
		if err := s.place(src.ID, byDungeon[dest].ID, false); err != nil {
			return err
		}
		s.result.Dungeons[destSlot] = srcSlot
	}
	return nil
}

// presentGroups returns every dungeon group some area is tagged with.
func (s *Shuffler) presentGroups() mapset.Set[string] {
	groups := mapset.New[string]()
	for _, a := range s.world.Areas {
		if a.Dungeon != "" {
			groups.Put(a.Dungeon)
		}
	}
	return groups
}
