package npc

import (
	"math/rand"

	"github.com/zeusync/dungeoncore/internal/core/collision"
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

type Kind uint8

const (
	KindMelee Kind = iota
	KindRanged
	KindSwarm
	KindFlyer
)

func (k Kind) String() string {
	switch k {
	case KindMelee:
		return "melee"
	case KindRanged:
		return "ranged"
	case KindSwarm:
		return "swarm"
	case KindFlyer:
		return "flyer"
	default:
		return "unknown"
	}
}

// Behavior is the archetype-specific state of an enemy. The set of
// implementations is closed: *Melee, *Ranged, *Swarm and *Flyer.
type Behavior interface {
	Kind() Kind
	sealed()
}

// Field is the slice of the collision field enemies need.
type Field interface {
	Blocked(x, z float64) (collision.Block, bool)
	Clear(from, to physics.Vec3) bool
}

// Target is what enemies chase and hurt.
type Target interface {
	Position() physics.Vec3
	TakeDamage(amount float64) bool
}

// Shot is a projectile launch request.
type Shot struct {
	Owner    int
	Kind     Kind
	Origin   physics.Vec3
	Velocity physics.Vec3
	Damage   float64
	Range    float64
}

// Emitter spawns enemy projectiles.
type Emitter interface {
	Emit(s Shot)
}

// World is everything an enemy reads or touches during its update.
type World struct {
	Field   Field
	Target  Target
	Emitter Emitter
	Rng     *rand.Rand
	// Now is simulation time in seconds.
	Now float64
}

// Enemy is one hostile. Pos is the ground point under a walker and the hover
// centre of a flyer.
type Enemy struct {
	ID         int
	Pos        physics.Vec3
	Yaw        float64
	Behavior   Behavior
	Body       Body
	AnimOffset float64
}

func (e *Enemy) Position() physics.Vec3 { return e.Pos }
func (e *Enemy) Kind() Kind             { return e.Behavior.Kind() }

// Anchor returns the world position of a named attachment point.
func (e *Enemy) Anchor(name string) (physics.Vec3, bool) {
	off, ok := e.Body.Anchors[name]
	if !ok {
		return physics.Vec3{}, false
	}
	return e.local(off), true
}

func (e *Enemy) local(off physics.Vec3) physics.Vec3 {
	return e.Pos.
		Add(physics.Forward(e.Yaw).Scale(off.Z)).
		Add(physics.Right(e.Yaw).Scale(off.X)).
		Add(physics.Vec3{Y: off.Y})
}

// PartPosition is the world position of a part's centre.
func (e *Enemy) PartPosition(p Part) physics.Vec3 {
	return e.local(p.Offset)
}

// Volume is the hit cylinder. Walkers stand on y=0; a flyer's cylinder is
// centred on its current altitude.
func (e *Enemy) Volume() physics.Cylinder {
	base := physics.Vec3{X: e.Pos.X, Z: e.Pos.Z}
	if _, ok := e.Behavior.(*Flyer); ok {
		base.Y = e.Pos.Y - e.Body.Height/2
	}
	return physics.Cylinder{Base: base, Radius: e.Body.Radius, Height: e.Body.Height}
}

// Update runs one tick of the enemy's archetype logic.
func (e *Enemy) Update(dt float64, w *World, cfg *Config) {
	switch b := e.Behavior.(type) {
	case *Melee:
		b.update(e, dt, w, &cfg.Melee)
	case *Ranged:
		b.update(e, dt, w, &cfg.Ranged)
	case *Swarm:
		b.update(e, dt, w, &cfg.Swarm)
	case *Flyer:
		b.update(e, dt, w, &cfg.Flyer)
	}
}

// face turns the enemy toward a point on the ground plane.
func (e *Enemy) face(p physics.Vec3) {
	d := p.Sub(e.Pos).Flat()
	if d.Len() > 1e-9 {
		e.Yaw = physics.Yaw(d)
	}
}

// step moves along the ground by delta testing X and Z separately, so a
// blocked axis does not cancel the free one.
func (e *Enemy) step(delta physics.Vec3, f Field) {
	if nx := e.Pos.X + delta.X; delta.X != 0 {
		if _, blocked := f.Blocked(nx, e.Pos.Z); !blocked {
			e.Pos.X = nx
		}
	}
	if nz := e.Pos.Z + delta.Z; delta.Z != 0 {
		if _, blocked := f.Blocked(e.Pos.X, nz); !blocked {
			e.Pos.Z = nz
		}
	}
}

// sightLine checks line of sight from the head anchor to the target.
func (e *Enemy) sightLine(w *World) bool {
	head, ok := e.Anchor(AnchorHead)
	if !ok {
		return false
	}
	return w.Field.Clear(head, w.Target.Position())
}

// aim builds the launch velocity toward the target, perturbed by up to
// inaccuracy/2 radians on two axes when the shot is meant to miss.
func aim(from, to physics.Vec3, speed, inaccuracy float64, miss bool, rng *rand.Rand) physics.Vec3 {
	dir := to.Sub(from).Normalize()
	if miss {
		dir = dir.RotateAxis(physics.V3(1, 0, 0), (rng.Float64()-0.5)*inaccuracy)
		dir = dir.RotateAxis(physics.V3(0, 1, 0), (rng.Float64()-0.5)*inaccuracy)
	}
	return dir.Scale(speed)
}

func randBetween(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// bandDirection is +1 to close in, -1 to back off and 0 inside [lo, hi].
func bandDirection(dist, lo, hi float64) float64 {
	switch {
	case dist > hi:
		return 1
	case dist < lo:
		return -1
	default:
		return 0
	}
}
