package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the world constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// World { start = "..." }
	L.SetGlobal("World", L.NewFunction(func(L *lua.LState) int {
		coll.world = L.CheckTable(1)
		return 0
	}))

	// Macro "name" { game = "mm", expr = "..." }
	L.SetGlobal("Macro", L.NewFunction(curried(func(id string, tbl *lua.LTable) {
		coll.macros = append(coll.macros, rawMacro{name: id, table: tbl})
	})))

	// Area "id" { game = "oot", dungeon = "...", exits = {...}, ... }
	L.SetGlobal("Area", L.NewFunction(curried(func(id string, tbl *lua.LTable) {
		coll.areas = append(coll.areas, rawArea{id: id, table: tbl})
	})))

	// Entrance "id" { from = "...", to = "...", type = "dungeon", reverse = "..." }
	L.SetGlobal("Entrance", L.NewFunction(curried(func(id string, tbl *lua.LTable) {
		coll.entrances = append(coll.entrances, rawEntrance{id: id, table: tbl})
	})))
}

// curried builds a constructor of the form Name "id" { ... }: the outer call
// takes the id and returns a function taking the table.
func curried(add func(id string, tbl *lua.LTable)) lua.LGFunction {
	return func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			add(id, L.CheckTable(1))
			return 0
		}))
		return 1
	}
}
