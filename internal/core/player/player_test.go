package player

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

type freeSpace struct{}

func (freeSpace) Move(pos, delta physics.Vec3, _ float64) physics.Vec3 { return pos.Add(delta) }

func TestSpawnResetsState(t *testing.T) {
	p := New(DefaultConfig())
	p.Spawn(physics.V3(1, 2.5, 3), 0, []level.Color{"red", "blue"})
	p.CollectKey("red")
	p.TakeDamage(40)
	p.ArmCooldown()

	p.Spawn(physics.V3(0, 2.5, 0), 0, []level.Color{"green"})
	assert.Equal(t, 100.0, p.Health)
	assert.False(t, p.HasKey("red"))
	assert.Equal(t, map[level.Color]bool{"green": false}, p.Keys())
	assert.True(t, p.CanInteract())
}

func TestTakeDamageKillsOnce(t *testing.T) {
	p := New(DefaultConfig())
	assert.False(t, p.TakeDamage(60))
	assert.True(t, p.TakeDamage(60))
	assert.Equal(t, 0.0, p.Health)
	assert.False(t, p.TakeDamage(10), "already dead")
}

func TestCollectKeyReportsCompletion(t *testing.T) {
	p := New(DefaultConfig())
	p.Spawn(physics.Vec3{}, 0, []level.Color{"red", "blue"})
	assert.False(t, p.CollectKey("red"))
	assert.True(t, p.CollectKey("blue"))
}

func TestMoveFollowsYaw(t *testing.T) {
	p := New(DefaultConfig())
	p.Look(math.Pi/2, 0)

	step := p.Move(1, Input{Forward: true}, freeSpace{})
	assert.True(t, step, "first step sounds immediately")
	assert.InDelta(t, 5, p.Pos.X, 1e-9)
	assert.InDelta(t, 0, p.Pos.Z, 1e-9)

	p.Move(0.5, Input{Right: true, Sprint: true}, freeSpace{})
	assert.InDelta(t, 5, p.Pos.X, 1e-9)
	assert.InDelta(t, 4.5, math.Abs(p.Pos.Z), 1e-9)
}

func TestFootstepCadence(t *testing.T) {
	p := New(DefaultConfig())
	steps := 0
	for i := 0; i < 90; i++ {
		if p.Move(1.0/60, Input{Forward: true}, freeSpace{}) {
			steps++
		}
	}
	// 1.5 s at one step per 0.45 s
	require.Equal(t, 4, steps)

	assert.False(t, p.Move(1, Input{Forward: true, Back: true}, freeSpace{}), "opposed keys cancel")
}

func TestCooldown(t *testing.T) {
	p := New(DefaultConfig())
	p.ArmCooldown()
	assert.False(t, p.CanInteract())
	p.Cool(0.3)
	assert.False(t, p.CanInteract())
	p.Cool(0.3)
	assert.True(t, p.CanInteract())
}
