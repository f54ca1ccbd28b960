package combat

import (
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

type Owner uint8

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

func (o Owner) String() string {
	if o == OwnerEnemy {
		return "enemy"
	}
	return "player"
}

// Projectile is a bullet in flight. Range is its travel budget; it is
// removed once Travelled reaches it.
type Projectile struct {
	ID    int
	Owner Owner
	// Shooter is the id of the enemy that fired, 0 for the player.
	Shooter   int
	Pos       physics.Vec3
	Vel       physics.Vec3
	Damage    float64
	Range     float64
	Travelled float64
}
