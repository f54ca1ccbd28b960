package npc

import (
	"math"
	"math/rand"

	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

// New builds an enemy of the given archetype standing on pos.
func New(id int, kind Kind, pos physics.Vec3, cfg *Config, rng *rand.Rand) *Enemy {
	sign := 1.0
	if rng.Intn(2) == 0 {
		sign = -1
	}
	e := &Enemy{ID: id, Pos: pos, AnimOffset: rng.Float64() * 2 * math.Pi}
	switch kind {
	case KindRanged:
		e.Behavior, e.Body = NewRanged(cfg.Ranged), skeletonBody(true)
	case KindSwarm:
		e.Behavior, e.Body = NewSwarm(cfg.Swarm, sign), scuttlerBody()
	case KindFlyer:
		e.Behavior, e.Body = NewFlyer(cfg.Flyer, sign), sentinelBody()
		e.Pos.Y = cfg.Flyer.Altitude
	default:
		e.Behavior, e.Body = NewMelee(cfg.Melee), skeletonBody(false)
	}
	return e
}

// pickKind draws an archetype by weight.
func pickKind(w Weights, rng *rand.Rand) Kind {
	total := w.Melee + w.Ranged + w.Swarm + w.Flyer
	if total <= 0 {
		return KindMelee
	}
	r := rng.Float64() * total
	for _, c := range []struct {
		kind   Kind
		weight float64
	}{
		{KindMelee, w.Melee},
		{KindRanged, w.Ranged},
		{KindSwarm, w.Swarm},
		{KindFlyer, w.Flyer},
	} {
		if r < c.weight {
			return c.kind
		}
		r -= c.weight
	}
	return KindFlyer
}

// Populate spawns one enemy per TilesPerEnemy floor tiles on random floor
// cells, never on a door and never within SpawnExclusion tiles of spawn.
// nextID hands out entity ids.
func Populate(data *level.Data, cfg *Config, rng *rand.Rand, nextID func() int) []*Enemy {
	floor := data.Grid.FloorTiles()
	var candidates []level.Point
	for _, c := range floor {
		if chebyshev(c, data.Spawn) <= cfg.SpawnExclusion {
			continue
		}
		if _, door := data.DoorAt(c); door {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 || cfg.TilesPerEnemy <= 0 {
		return nil
	}

	count := len(floor) / cfg.TilesPerEnemy
	enemies := make([]*Enemy, 0, count)
	for i := 0; i < count; i++ {
		cell := candidates[rng.Intn(len(candidates))]
		pos := data.Geometry.CellCenter(cell, 0)
		enemies = append(enemies, New(nextID(), pickKind(cfg.Weights, rng), pos, cfg, rng))
	}
	return enemies
}

func chebyshev(a, b level.Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return max(dx, dy)
}
