package npc

import (
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

// Separate pushes apart every pair of enemies whose centres are closer than
// twice radius. Pushes are taken from the positions at the start of the pass
// and summed per enemy, each side moving by push times the overlap. A move
// is shortened, then dropped, if it would land in a blocked cell or bring
// the enemy closer to a neighbour it is overlapping.
func Separate(enemies []*Enemy, radius, push float64, f Field) {
	minDist := 2 * radius
	deltas := make([]physics.Vec3, len(enemies))
	for i := 0; i < len(enemies); i++ {
		for j := i + 1; j < len(enemies); j++ {
			axis := enemies[j].Pos.Sub(enemies[i].Pos).Flat()
			dist := axis.Len()
			if dist >= minDist {
				continue
			}
			if dist < 1e-9 {
				// stacked exactly: split along X, lower index to the left
				axis = physics.V3(1, 0, 0)
			} else {
				axis = axis.Scale(1 / dist)
			}
			shift := axis.Scale((minDist - dist) * push)
			deltas[i] = deltas[i].Sub(shift)
			deltas[j] = deltas[j].Add(shift)
		}
	}

	for i, e := range enemies {
		delta := deltas[i]
		for try := 0; try < 3 && delta.Len() > 1e-9; try++ {
			if nudge(e, delta, enemies, minDist, f) {
				break
			}
			delta = delta.Scale(0.5)
		}
	}
}

// nudge moves e by delta unless the target is blocked or closer to some
// other enemy that would still overlap it afterwards.
func nudge(e *Enemy, delta physics.Vec3, enemies []*Enemy, minDist float64, f Field) bool {
	next := e.Pos.Add(delta)
	if _, blocked := f.Blocked(next.X, next.Z); blocked {
		return false
	}
	for _, o := range enemies {
		if o == e {
			continue
		}
		after := physics.FlatDistance(next, o.Pos)
		if after < minDist && after < physics.FlatDistance(e.Pos, o.Pos) {
			return false
		}
	}
	e.Pos.X, e.Pos.Z = next.X, next.Z
	return true
}
