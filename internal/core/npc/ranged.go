package npc

import (
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

// Ranged keeps to a distance band and fires single shots when it can see
// the target. Its first shots always go wide.
type Ranged struct {
	Cooldown   float64
	ShotsFired int
}

func NewRanged(cfg RangedConfig) *Ranged {
	return &Ranged{Cooldown: cfg.Cooldown}
}

func (*Ranged) Kind() Kind { return KindRanged }
func (*Ranged) sealed()    {}

func (r *Ranged) update(e *Enemy, dt float64, w *World, cfg *RangedConfig) {
	target := w.Target.Position()
	e.face(target)

	dist := physics.FlatDistance(e.Pos, target)
	if dir := bandDirection(dist, cfg.MinRange, cfg.MaxRange); dir != 0 {
		e.step(physics.Forward(e.Yaw).Scale(dir*cfg.Speed*dt), w.Field)
	}

	r.Cooldown -= dt
	if r.Cooldown > 0 || !e.sightLine(w) {
		return
	}
	muzzle, ok := e.Anchor(AnchorMuzzle)
	if !ok {
		return
	}
	miss := r.ShotsFired < cfg.SureMisses || w.Rng.Float64() < cfg.MissChance
	w.Emitter.Emit(Shot{
		Owner:    e.ID,
		Kind:     KindRanged,
		Origin:   muzzle,
		Velocity: aim(muzzle, target, cfg.ProjectileSpeed, cfg.Inaccuracy, miss, w.Rng),
		Damage:   cfg.Damage,
		Range:    cfg.Reach,
	})
	r.ShotsFired++
	r.Cooldown = cfg.Cooldown
}
