package npc

import (
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

// Swarm rushes the target while weaving left and right, and bites on
// contact with no wind-up.
type Swarm struct {
	StrafeSign  float64
	StrafeTimer float64
	Cooldown    float64
}

func NewSwarm(cfg SwarmConfig, sign float64) *Swarm {
	return &Swarm{StrafeSign: sign, StrafeTimer: cfg.StrafeMin}
}

func (*Swarm) Kind() Kind { return KindSwarm }
func (*Swarm) sealed()    {}

func (s *Swarm) update(e *Enemy, dt float64, w *World, cfg *SwarmConfig) {
	target := w.Target.Position()
	e.face(target)
	dist := physics.FlatDistance(e.Pos, target)

	s.StrafeTimer -= dt
	if s.StrafeTimer <= 0 {
		s.StrafeSign = -s.StrafeSign
		s.StrafeTimer = randBetween(w.Rng, cfg.StrafeMin, cfg.StrafeMax)
	}

	if dist > cfg.StopDistance {
		dir := physics.Forward(e.Yaw).
			Add(physics.Right(e.Yaw).Scale(s.StrafeSign * cfg.StrafeWeight)).
			Normalize()
		e.step(dir.Scale(cfg.Speed*dt), w.Field)
	}

	s.Cooldown -= dt
	if dist <= cfg.Range && s.Cooldown <= 0 {
		w.Target.TakeDamage(cfg.Damage)
		s.Cooldown = cfg.Cooldown
	}
}
