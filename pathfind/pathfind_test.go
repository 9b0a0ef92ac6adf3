package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/doorshuffle/logic"
	"github.com/nathoo/doorshuffle/types"
	"github.com/nathoo/doorshuffle/world"
)

// testWorld: spawn → field (needs BOW) → castle (needs event SWITCH, granted
// in field). The field also holds a chest behind HOOKSHOT.
func testWorld() *world.World {
	w := world.New()

	spawn := world.NewArea(types.GameOoT)
	spawn.Exits["Field"] = logic.Has("BOW", 1)
	spawn.Locations["Spawn Chest"] = logic.True()
	w.AddArea(world.SpawnArea, spawn, "")

	field := world.NewArea(types.GameOoT)
	field.Exits[world.SpawnArea] = logic.True()
	field.Exits["Castle"] = logic.Event("SWITCH")
	field.Exits["Missing"] = logic.True()
	field.Events["SWITCH"] = logic.True()
	field.Locations["Field Chest"] = logic.Has("HOOKSHOT", 1)
	w.AddArea("Field", field, "")

	castle := world.NewArea(types.GameOoT)
	castle.Events["OOT_GANON"] = logic.True()
	castle.Locations["Castle Chest"] = logic.True()
	w.AddArea("Castle", castle, "")

	return w
}

func TestRun_IgnoreItemsRecursive(t *testing.T) {
	p := New(testWorld())
	st, err := p.Run("", Options{SingleWorld: true, IgnoreItems: true, Recursive: true})
	require.NoError(t, err)

	assert.True(t, st.Reachable([]string{"Spawn Chest", "Field Chest", "Castle Chest"}))
	assert.True(t, st.HasEvent("SWITCH"))
	assert.True(t, st.HasEvent("OOT_GANON"))
	assert.False(t, st.Worlds[0].Areas.Has("Missing"), "dangling exits are not followed")
}

func TestRun_NonRecursiveStopsAfterOneSweep(t *testing.T) {
	p := New(testWorld())
	st, err := p.Run("", Options{SingleWorld: true, IgnoreItems: true})
	require.NoError(t, err)

	assert.True(t, st.HasEvent("SWITCH"))
	assert.False(t, st.Worlds[0].Areas.Has("Castle"), "castle opens only after the event is re-applied")
	assert.False(t, st.Locations.Has("Castle Chest"))
}

func TestRun_ItemsRequired(t *testing.T) {
	p := New(testWorld())

	st, err := p.Run("", Options{Recursive: true})
	require.NoError(t, err)
	assert.True(t, st.Locations.Has("Spawn Chest"))
	assert.False(t, st.Locations.Has("Field Chest"))
	assert.False(t, st.Worlds[0].Areas.Has("Field"))

	st, err = p.Run("", Options{Recursive: true, Items: map[string]int{"BOW": 1}})
	require.NoError(t, err)
	assert.True(t, st.Worlds[0].Areas.Has("Castle"))
	assert.False(t, st.Locations.Has("Field Chest"), "chest still needs the hookshot")
	assert.True(t, st.Locations.Has("Castle Chest"))
}

func TestRun_StartOverride(t *testing.T) {
	p := New(testWorld())
	st, err := p.Run("Castle", Options{IgnoreItems: true, Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, 1, st.Worlds[0].Areas.Size())
	assert.True(t, st.Locations.Has("Castle Chest"))
	assert.False(t, st.Locations.Has("Spawn Chest"))
}

func TestRun_UnknownStart(t *testing.T) {
	p := New(testWorld())
	_, err := p.Run("Nowhere", Options{})
	require.ErrorIs(t, err, ErrUnknownArea)
}

func TestRun_ObservesEditsBetweenRuns(t *testing.T) {
	w := testWorld()
	p := New(w)

	delete(w.Areas["Field"].Exits, "Castle")
	st, err := p.Run("", Options{IgnoreItems: true, Recursive: true})
	require.NoError(t, err)
	assert.False(t, st.Locations.Has("Castle Chest"))

	w.Areas[world.SpawnArea].Exits["Castle"] = logic.True()
	st, err = p.Run("", Options{IgnoreItems: true, Recursive: true})
	require.NoError(t, err)
	assert.True(t, st.Locations.Has("Castle Chest"))
}

func TestState_HasEventEmpty(t *testing.T) {
	st := &State{}
	assert.False(t, st.HasEvent("X"))
}
