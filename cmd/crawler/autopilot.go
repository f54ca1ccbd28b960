package main

import (
	"math"

	"github.com/zeusync/dungeoncore/internal/core/interact"
	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/player"
	"github.com/zeusync/dungeoncore/internal/core/sim"
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

const (
	// engageRange is how close an enemy must be before the pilot stops to shoot.
	engageRange = 18.0
	// arrival is the flat distance at which a goal cell counts as reached.
	arrival = 1.5
)

// autopilot plays the level from snapshots alone: it walks the shortest
// floor path to the next key, then the switch, then the exit, opens doors
// in its way and shoots whatever comes close.
type autopilot struct {
	geo  level.Geometry
	grid *level.Grid
}

func newAutopilot(snap sim.Snapshot) *autopilot {
	return &autopilot{geo: snap.Geometry, grid: snap.Grid}
}

// goal picks the next cell to walk to and whether it has to be used once
// reached.
func (a *autopilot) goal(snap sim.Snapshot) (level.Point, bool) {
	if len(snap.Keys) > 0 {
		return snap.Keys[0].Cell, false
	}
	if snap.Switch != nil && !snap.Switch.Activated {
		return snap.Switch.Cell, true
	}
	return snap.Exit, true
}

func (a *autopilot) next(snap sim.Snapshot) []sim.Intent {
	pos := snap.Player.Pos

	if target, ok := a.nearestEnemy(snap); ok {
		aim := target.Sub(pos)
		pitch := math.Atan2(aim.Y, math.Hypot(aim.X, aim.Z))
		return []sim.Intent{
			sim.Move(player.Input{}),
			sim.Look(physics.Yaw(aim), pitch),
			sim.Fire(),
		}
	}

	goal, use := a.goal(snap)
	here := a.geo.CellOf(pos.X, pos.Z)
	center := a.geo.CellCenter(goal, pos.Y)
	if physics.FlatDistance(pos, center) < arrival {
		intents := []sim.Intent{sim.Move(player.Input{})}
		if use {
			intents = append(intents, sim.Interact())
		}
		return intents
	}

	path := level.PathBFS(a.grid, here, goal, nil)
	if len(path) < 2 {
		return []sim.Intent{sim.Move(player.Input{})}
	}
	step := path[1]
	waypoint := a.geo.CellCenter(step, pos.Y)

	intents := []sim.Intent{
		sim.Look(physics.Yaw(waypoint.Sub(pos)), 0),
		sim.Move(player.Input{Forward: true}),
	}
	if a.doorShut(snap, step) {
		intents = append(intents, sim.Interact())
	}
	return intents
}

func (a *autopilot) doorShut(snap sim.Snapshot, cell level.Point) bool {
	for _, d := range snap.Doors {
		if d.Cell == cell {
			return d.State == interact.DoorClosed
		}
	}
	return false
}

func (a *autopilot) nearestEnemy(snap sim.Snapshot) (physics.Vec3, bool) {
	var (
		best  physics.Vec3
		found bool
		dist  = engageRange
	)
	for _, e := range snap.Enemies {
		if d := physics.FlatDistance(snap.Player.Pos, e.Pos); d < dist {
			best, dist, found = e.Pos, d, true
		}
	}
	// aim at the torso, not the feet
	best.Y += 1.2
	return best, found
}
