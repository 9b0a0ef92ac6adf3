// Package loader loads a world graph written in a small Lua DSL. The Lua VM
// is discarded after loading; nothing Lua survives into the world.
package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/doorshuffle/logic"
	"github.com/nathoo/doorshuffle/types"
	"github.com/nathoo/doorshuffle/world"
)

type rawMacro struct {
	name  string
	table *lua.LTable
}

type rawArea struct {
	id    string
	table *lua.LTable
}

type rawEntrance struct {
	id    string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// compile converts the collected Lua data into a world.
func compile(coll *collector) (*Defs, error) {
	if coll.world == nil {
		return nil, fmt.Errorf("no World{} definition found")
	}

	parsers := logic.DefaultParsers()
	for _, m := range coll.macros {
		p, err := parserFor(parsers, getString(m.table, "game"))
		if err != nil {
			return nil, fmt.Errorf("macro %s: %w", m.name, err)
		}
		if err := p.Define(m.name, getString(m.table, "expr")); err != nil {
			return nil, err
		}
	}

	w := world.New()
	if start := getString(coll.world, "start"); start != "" {
		w.Start = start
	}

	for _, raw := range coll.areas {
		if _, dup := w.Areas[raw.id]; dup {
			return nil, fmt.Errorf("duplicate area %q", raw.id)
		}
		area, region, err := compileArea(raw, parsers)
		if err != nil {
			return nil, fmt.Errorf("compiling area %s: %w", raw.id, err)
		}
		w.AddArea(raw.id, area, region)
	}

	for _, raw := range coll.entrances {
		if _, dup := w.Entrances[raw.id]; dup {
			return nil, fmt.Errorf("duplicate entrance %q", raw.id)
		}
		w.Entrances[raw.id] = compileEntrance(raw, w)
	}

	return &Defs{World: w, Parsers: parsers}, nil
}

func parserFor(parsers logic.Parsers, game string) (*logic.Parser, error) {
	p, ok := parsers[game]
	if !ok {
		return nil, fmt.Errorf("unknown game %q", game)
	}
	return p, nil
}

func compileArea(raw rawArea, parsers logic.Parsers) (*types.Area, string, error) {
	game := getString(raw.table, "game")
	p, err := parserFor(parsers, game)
	if err != nil {
		return nil, "", err
	}

	a := world.NewArea(types.Game(game))
	a.Dungeon = getString(raw.table, "dungeon")
	a.Boss = getBool(raw.table, "boss", false)

	for _, field := range []struct {
		key string
		dst map[string]logic.Expr
	}{
		{"exits", a.Exits},
		{"events", a.Events},
		{"locations", a.Locations},
	} {
		if err := compileExprs(getTable(raw.table, field.key), p, field.dst); err != nil {
			return nil, "", fmt.Errorf("%s: %w", field.key, err)
		}
	}
	return a, getString(raw.table, "region"), nil
}

// compileExprs parses a { name = "expr" } table. A Lua boolean stands for
// the constant expression.
func compileExprs(tbl *lua.LTable, p *logic.Parser, dst map[string]logic.Expr) error {
	if tbl == nil {
		return nil
	}
	raw := map[string]lua.LValue{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			raw[string(ks)] = v
		}
	})

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := raw[k].(type) {
		case lua.LBool:
			if v {
				dst[k] = logic.True()
			} else {
				dst[k] = logic.False()
			}
		case lua.LString:
			e, err := p.Parse(string(v))
			if err != nil {
				return fmt.Errorf("%q: %w", k, err)
			}
			dst[k] = e
		default:
			return fmt.Errorf("%q: expected string or boolean, got %s", k, v.Type())
		}
	}
	return nil
}

// compileEntrance builds an entrance. Its game defaults to the game of the
// area it leaves.
func compileEntrance(raw rawEntrance, w *world.World) *types.Entrance {
	e := &types.Entrance{
		ID:      raw.id,
		From:    getString(raw.table, "from"),
		To:      getString(raw.table, "to"),
		Type:    types.EntranceType(getString(raw.table, "type")),
		Reverse: getString(raw.table, "reverse"),
		Game:    types.Game(getString(raw.table, "game")),
	}
	if e.Game == "" {
		if from, ok := w.Areas[e.From]; ok {
			e.Game = from.Game
		}
	}
	return e
}

// sortedLuaFiles puts world.lua first and the rest in alphabetical order.
func sortedLuaFiles(files []string) []string {
	var worldFile string
	var others []string
	for _, f := range files {
		if f == "world.lua" {
			worldFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if worldFile != "" {
		return append([]string{worldFile}, others...)
	}
	return others
}
