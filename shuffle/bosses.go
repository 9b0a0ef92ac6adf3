package shuffle

import (
	"maps"
	"sort"

	"github.com/nathoo/doorshuffle/logic"
	"github.com/nathoo/doorshuffle/random"
	"github.com/nathoo/doorshuffle/settings"
	"github.com/nathoo/doorshuffle/types"
	"github.com/nathoo/doorshuffle/world"
)

// bossGroup is what the boss pass knows about one boss-bearing group.
type bossGroup struct {
	entrance  *types.Entrance
	areas     []string              // boss areas, sorted
	events    map[string]logic.Expr // events stripped from the boss areas
	locations []string              // locations inside the boss areas
}

// collectBosses gathers boss areas per group and strips their events, so
// default reachability no longer grants them.
func (s *Shuffler) collectBosses() map[string]*bossGroup {
	groups := map[string]*bossGroup{}
	for _, id := range s.world.AreaIDs() {
		a := s.world.Areas[id]
		if !a.Boss {
			continue
		}
		g, ok := groups[a.Dungeon]
		if !ok {
			g = &bossGroup{events: map[string]logic.Expr{}, locations: []string{}}
			groups[a.Dungeon] = g
		}
		maps.Copy(g.events, a.Events)
		g.areas = append(g.areas, id)
		g.locations = append(g.locations, sortedKeys(a.Locations)...)
		a.Events = map[string]logic.Expr{}
	}
	return groups
}

// fixBosses shuffles boss rooms with the same greedy first-fit scheme as
// dungeons. The requirement for a destination is its own boss locations.
func (s *Shuffler) fixBosses() error {
	groups := s.collectBosses()

	byDungeon := map[string]*types.Entrance{}
	for _, e := range s.world.EntrancesOfType(types.EntranceBoss) {
		from, err := s.area(e.From)
		if err != nil {
			return err
		}
		to, err := s.area(e.To)
		if err != nil {
			return err
		}
		byDungeon[to.Dungeon] = e
		delete(from.Exits, e.To)
	}

	bosses := random.Shuffle(s.input.Random, sortedKeys(byDungeon))
	pool := append([]string(nil), bosses...)
	ownGame := s.input.Settings.ERBoss == settings.EROwnGame

	for _, srcBoss := range bosses {
		src := byDungeon[srcBoss]

		dstBoss := ""
		for _, c := range random.Shuffle(s.input.Random, pool) {
			opts := assignOptions{ownGame: ownGame}
			if g, ok := groups[c]; ok {
				opts.locations = g.locations
				opts.explicit = true
			}
			ok, err := s.isAssignable(src.ID, byDungeon[c].ID, opts)
			if err != nil {
				return err
			}
			if ok {
				dstBoss = c
				break
			}
		}
		if dstBoss == "" {
			return &PlacementError{Kind: KindBoss, Source: srcBoss}
		}

		dstSlot, ok := BossIndex[dstBoss]
		if !ok {
			return invariantf("boss %q has no slot", dstBoss)
		}
		srcSlot, ok := BossIndex[srcBoss]
		if !ok {
			return invariantf("boss %q has no slot", srcBoss)
		}
		host, ok := groups[dstBoss]
		if !ok || len(host.areas) == 0 {
			return invariantf("boss group %q has no boss area", dstBoss)
		}

		pool = remove(pool, dstBoss)
		if err := s.place(src.ID, byDungeon[dstBoss].ID, false); err != nil {
			return err
		}
		s.result.Boss[dstSlot] = srcSlot

		last := s.world.Areas[host.areas[len(host.areas)-1]]
		if g, ok := groups[srcBoss]; ok {
			maps.Copy(last.Events, g.events)
		}
		s.relocate(host.areas, dstBoss, srcBoss)
	}
	return nil
}

// relocate moves boss areas from one group to another, together with their
// locations and the locations' region.
func (s *Shuffler) relocate(areas []string, from, to string) {
	for _, id := range areas {
		a := s.world.Areas[id]
		a.Dungeon = to
		for loc := range a.Locations {
			s.world.DungeonSet(from).Remove(loc)
			s.world.DungeonSet(to).Put(loc)
			s.world.Regions[loc] = world.RegionOf(to)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
