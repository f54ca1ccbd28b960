package npc

import (
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

type MeleeState uint8

const (
	MeleeChasing MeleeState = iota
	MeleeAttacking
)

func (s MeleeState) String() string {
	if s == MeleeAttacking {
		return "attacking"
	}
	return "chasing"
}

// Melee walks up to the target and swings. Damage lands once per swing, at
// StrikeAt into it, and only if the target is still within range plus margin.
type Melee struct {
	State       MeleeState
	SinceAttack float64
	// Strike counts down to the damage frame of the current swing.
	Strike float64
}

func NewMelee(cfg MeleeConfig) *Melee {
	return &Melee{SinceAttack: cfg.Period}
}

func (*Melee) Kind() Kind { return KindMelee }
func (*Melee) sealed()    {}

func (m *Melee) update(e *Enemy, dt float64, w *World, cfg *MeleeConfig) {
	target := w.Target.Position()
	dist := physics.FlatDistance(e.Pos, target)
	m.SinceAttack += dt
	e.face(target)

	if m.State == MeleeChasing && dist <= cfg.Range && m.SinceAttack >= cfg.Period {
		m.State = MeleeAttacking
		m.SinceAttack = 0
		m.Strike = cfg.StrikeAt
	}

	switch m.State {
	case MeleeAttacking:
		if m.Strike > 0 {
			m.Strike -= dt
			if m.Strike <= 0 && dist <= cfg.Range+cfg.Margin {
				w.Target.TakeDamage(cfg.Damage)
			}
		}
		if m.SinceAttack >= cfg.Swing {
			m.State = MeleeChasing
		}
	case MeleeChasing:
		if dist > cfg.StopDistance {
			e.step(physics.Forward(e.Yaw).Scale(cfg.Speed*dt), w.Field)
		}
	}
}
