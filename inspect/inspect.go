// Package inspect answers questions about a finished shuffle: where an
// entrance now leads, which dungeon or boss sits in which slot, and whether a
// placement still passes the validity check on the final world.
package inspect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/doorshuffle/generator"
	"github.com/nathoo/doorshuffle/shuffle"
	"github.com/nathoo/doorshuffle/types"
	"github.com/nathoo/doorshuffle/world"
)

// Result is the answer to one query.
type Result struct {
	Output []string
}

// Session holds a finished shuffle and the world it was built from.
type Session struct {
	Original *world.World
	Result   *generator.Result
}

// New creates a session over a generator result.
func New(original *world.World, res *generator.Result) *Session {
	return &Session{Original: original, Result: res}
}

// Commands lists the queries Step understands, for help and completion.
var Commands = []string{"overrides", "where", "dungeons", "bosses", "regions", "check", "help"}

// Step answers one query.
func (s *Session) Step(input string) Result {
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) == 0 {
		return say("What do you want to know? Type help for a list of queries.")
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "overrides", "o":
		return s.overrides(args)
	case "where", "w":
		if len(args) == 0 {
			return say("Where does what lead? Usage: where <entrance>")
		}
		return s.where(args[0])
	case "dungeons", "d":
		return slots("dungeon", shuffle.DungeonIndex, s.Result.Output.Entrances.Dungeons)
	case "bosses", "b":
		return slots("boss", shuffle.BossIndex, s.Result.Output.Entrances.Boss)
	case "regions", "r":
		if len(args) == 0 {
			return say("Which dungeon group? Usage: regions <group>")
		}
		return s.regions(args[0])
	case "check", "c":
		if len(args) == 0 {
			return say("Check which entrance? Usage: check <entrance>")
		}
		return s.check(args[0])
	case "help", "h", "?":
		return help()
	default:
		return say(fmt.Sprintf("Unknown query %q. Type help for a list of queries.", verb))
	}
}

func say(lines ...string) Result {
	return Result{Output: lines}
}

func help() Result {
	return say(
		"Queries:",
		"  overrides [text]    list shuffled entrances, optionally filtered",
		"  where <entrance>    where an entrance leads and what leads to its old target",
		"  dungeons            dungeon slots that changed",
		"  bosses              boss slots that changed",
		"  regions <group>     locations of a dungeon group and their regions",
		"  check <entrance>    re-run the validity check for a placement",
		"  help                this list",
	)
}

func (s *Session) overrides(args []string) Result {
	o := s.Result.Output.Entrances.Overrides
	filter := strings.ToLower(strings.Join(args, " "))

	var lines []string
	for _, k := range sortedKeys(o) {
		line := fmt.Sprintf("%s → %s", k, o[k])
		if filter != "" && !strings.Contains(strings.ToLower(line), filter) {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		if filter != "" {
			return say(fmt.Sprintf("No overrides match %q.", filter))
		}
		return say("No entrances were shuffled.")
	}
	return say(lines...)
}

// lookup finds an entrance by id, ignoring case.
func (s *Session) lookup(id string) (*types.Entrance, bool) {
	if e, ok := s.Original.Entrances[id]; ok {
		return e, true
	}
	for k, e := range s.Original.Entrances {
		if strings.EqualFold(k, id) {
			return e, true
		}
	}
	return nil, false
}

func (s *Session) where(id string) Result {
	e, ok := s.lookup(id)
	if !ok {
		return say(fmt.Sprintf("No entrance %q.", id))
	}
	o := s.Result.Output.Entrances.Overrides

	var lines []string
	if r, ok := o[e.ID]; ok {
		dest := s.Original.Entrances[r]
		lines = append(lines, fmt.Sprintf("%s (%s) now leads to %s, arriving in %s.", e.ID, e.From, r, dest.To))
	} else {
		lines = append(lines, fmt.Sprintf("%s was not shuffled; it still leads to %s.", e.ID, e.To))
	}
	for _, k := range sortedKeys(o) {
		if o[k] == e.ID && k != e.ID {
			lines = append(lines, fmt.Sprintf("%s is now reached through %s (%s).", e.To, k, s.Original.Entrances[k].From))
		}
	}
	return say(lines...)
}

func slots(kind string, table map[string]int, placed []int) Result {
	var lines []string
	for slot, p := range placed {
		if slot == p {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-8s ← %s", shuffle.SlotName(table, slot), shuffle.SlotName(table, p)))
	}
	if len(lines) == 0 {
		return say(fmt.Sprintf("Every %s is in its own slot.", kind))
	}
	return say(lines...)
}

func (s *Session) regions(group string) Result {
	w := s.Result.Output.World
	set, ok := w.Dungeons[group]
	if !ok || set.Size() == 0 {
		return say(fmt.Sprintf("Dungeon group %q has no locations.", group))
	}
	var lines []string
	for _, loc := range world.SortedSet(set) {
		lines = append(lines, fmt.Sprintf("%s  [%s]", loc, w.Regions[loc]))
	}
	return say(lines...)
}

func (s *Session) check(id string) Result {
	e, ok := s.lookup(id)
	if !ok {
		return say(fmt.Sprintf("No entrance %q.", id))
	}
	r, ok := s.Result.Output.Entrances.Overrides[e.ID]
	if !ok {
		return say(fmt.Sprintf("%s was not shuffled.", e.ID))
	}
	valid, err := s.Result.Shuffler.Check(e.ID, r, nil)
	if err != nil {
		return say(fmt.Sprintf("Check failed: %v", err))
	}
	if valid {
		return say(fmt.Sprintf("%s → %s: every required location is reachable.", e.ID, r))
	}
	return say(fmt.Sprintf("%s → %s: some required location is out of reach.", e.ID, r))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
