package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/dungeoncore/internal/core/interact"
	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/sim"
)

func hallway() sim.Snapshot {
	g := level.NewGrid(10, 3)
	g.Fill(1, 1, 8, 1, level.Floor)
	geo := level.Geometry{Width: 10, Height: 3, TileSize: 5, WallHeight: 5}
	return sim.Snapshot{
		Grid:     g,
		Geometry: geo,
		Exit:     level.Point{X: 8, Y: 1},
		Keys:     []sim.KeyView{{Color: "red", Cell: level.Point{X: 4, Y: 1}}},
		Player:   sim.PlayerView{Pos: geo.CellCenter(level.Point{X: 1, Y: 1}, 2.5)},
	}
}

func types(intents []sim.Intent) []sim.IntentType {
	out := make([]sim.IntentType, 0, len(intents))
	for _, in := range intents {
		out = append(out, in.Type)
	}
	return out
}

func TestAutopilotWalksTowardKey(t *testing.T) {
	snap := hallway()
	got := newAutopilot(snap).next(snap)

	require.Equal(t, []sim.IntentType{sim.IntentLook, sim.IntentMove}, types(got))
	assert.InDelta(t, math.Pi/2, got[0].Look.Yaw, 1e-9)
	assert.True(t, got[1].Move.Forward)
}

func TestAutopilotOpensShutDoor(t *testing.T) {
	snap := hallway()
	snap.Doors = []sim.DoorView{{Cell: level.Point{X: 2, Y: 1}, State: interact.DoorClosed}}

	got := newAutopilot(snap).next(snap)
	assert.Contains(t, types(got), sim.IntentInteract)
}

func TestAutopilotUsesExitWhenDone(t *testing.T) {
	snap := hallway()
	snap.Keys = nil
	snap.Player.Pos = snap.Geometry.CellCenter(snap.Exit, 2.5)

	got := newAutopilot(snap).next(snap)
	assert.Equal(t, []sim.IntentType{sim.IntentMove, sim.IntentInteract}, types(got))
}

func TestAutopilotShootsCloseEnemies(t *testing.T) {
	snap := hallway()
	enemy := snap.Geometry.CellCenter(level.Point{X: 3, Y: 1}, 0)
	snap.Enemies = []sim.EnemyView{{ID: 1, Pos: enemy}}

	got := newAutopilot(snap).next(snap)
	require.Equal(t, []sim.IntentType{sim.IntentMove, sim.IntentLook, sim.IntentFire}, types(got))
	assert.InDelta(t, math.Pi/2, got[1].Look.Yaw, 1e-9)
	assert.Less(t, got[1].Look.Pitch, 0.0)
}
