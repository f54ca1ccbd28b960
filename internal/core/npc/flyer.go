package npc

import (
	"math"

	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

// Flyer hovers with a slow bob, holds a distance band while strafing and
// fires in bursts.
type Flyer struct {
	StrafeSign  float64
	StrafeTimer float64
	// Burst is the number of shots left in the current burst.
	Burst      int
	BurstTimer float64
	Cooldown   float64
}

func NewFlyer(cfg FlyerConfig, sign float64) *Flyer {
	return &Flyer{StrafeSign: sign, StrafeTimer: cfg.StrafeMin, Cooldown: cfg.BurstCooldown}
}

func (*Flyer) Kind() Kind { return KindFlyer }
func (*Flyer) sealed()    {}

func (f *Flyer) update(e *Enemy, dt float64, w *World, cfg *FlyerConfig) {
	e.Pos.Y = cfg.Altitude + cfg.BobAmplitude*math.Sin(cfg.BobRate*w.Now+e.AnimOffset)

	target := w.Target.Position()
	e.face(target)
	dist := physics.FlatDistance(e.Pos, target)

	f.StrafeTimer -= dt
	if f.StrafeTimer <= 0 {
		f.StrafeSign = -f.StrafeSign
		f.StrafeTimer = randBetween(w.Rng, cfg.StrafeMin, cfg.StrafeMax)
	}
	move := physics.Forward(e.Yaw).Scale(bandDirection(dist, cfg.MinRange, cfg.MaxRange)).
		Add(physics.Right(e.Yaw).Scale(f.StrafeSign * cfg.StrafeWeight))
	if move.Len() > 0 {
		e.step(move.Normalize().Scale(cfg.Speed*dt), w.Field)
	}

	if f.Burst == 0 {
		f.Cooldown -= dt
		if f.Cooldown > 0 || !e.sightLine(w) {
			return
		}
		f.Burst, f.BurstTimer = cfg.BurstSize, 0
	}

	f.BurstTimer -= dt
	if f.BurstTimer > 0 || !e.sightLine(w) {
		return
	}
	muzzle, ok := e.Anchor(AnchorMuzzle)
	if !ok {
		return
	}
	w.Emitter.Emit(Shot{
		Owner:    e.ID,
		Kind:     KindFlyer,
		Origin:   muzzle,
		Velocity: aim(muzzle, target, cfg.ProjectileSpeed, cfg.Inaccuracy, w.Rng.Float64() < cfg.MissChance, w.Rng),
		Damage:   cfg.Damage,
		Range:    cfg.Reach,
	})
	f.Burst--
	f.BurstTimer = cfg.BurstInterval
	if f.Burst == 0 {
		f.Cooldown = cfg.BurstCooldown
	}
}
