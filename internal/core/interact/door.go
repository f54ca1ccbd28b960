package interact

import (
	"math"

	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

type DoorState uint8

const (
	DoorClosed DoorState = iota
	DoorOpening
	DoorOpen
	DoorClosing
)

func (s DoorState) String() string {
	switch s {
	case DoorClosed:
		return "closed"
	case DoorOpening:
		return "opening"
	case DoorOpen:
		return "open"
	case DoorClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// doorTransitions is the full table of allowed state changes.
var doorTransitions = map[DoorState]DoorState{
	DoorClosed:  DoorOpening,
	DoorOpening: DoorOpen,
	DoorOpen:    DoorClosing,
	DoorClosing: DoorClosed,
}

type DoorConfig struct {
	Rate      float64 `yaml:"rate"`
	Epsilon   float64 `yaml:"epsilon"`
	AutoClose float64 `yaml:"auto_close"`
}

func DefaultDoorConfig() DoorConfig {
	return DoorConfig{Rate: 8, Epsilon: 0.01, AutoClose: 5}
}

// Door is a sliding door occupying one cell. Y is the animated height of its
// centre; it rises from ClosedY to OpenY.
type Door struct {
	ID          int
	Cell        level.Point
	Orientation level.Orientation
	Color       level.Color
	Center      physics.Vec3

	State     DoorState
	Permanent bool
	Y         float64
	OpenY     float64
	ClosedY   float64
	OpenedAt  float64
}

// Blocks reports whether the door stops bodies and projectiles.
func (d *Door) Blocks() bool {
	return d.State == DoorClosed || d.State == DoorClosing
}

func (d *Door) transition(to DoorState) bool {
	if doorTransitions[d.State] != to {
		return false
	}
	d.State = to
	return true
}

// RequestOpen starts opening a closed door. A colored door needs its key and,
// once unlocked, never closes again.
func (d *Door) RequestOpen(hasKey func(level.Color) bool) Outcome {
	if d.Color != level.Plain && !hasKey(d.Color) {
		return OutcomeLocked
	}
	if !d.transition(DoorOpening) {
		return OutcomeNone
	}
	if d.Color != level.Plain {
		d.Permanent = true
		return OutcomeUnlocked
	}
	return OutcomeOpened
}

// Toggle is the interaction edge: open a closed door or close an open plain one.
func (d *Door) Toggle(hasKey func(level.Color) bool) Outcome {
	switch {
	case d.State == DoorClosed:
		return d.RequestOpen(hasKey)
	case d.Color != level.Plain && !hasKey(d.Color):
		return OutcomeLocked
	case d.State == DoorOpen && !d.Permanent && d.transition(DoorClosing):
		return OutcomeClosed
	default:
		return OutcomeNone
	}
}

// Update animates the door toward its target height and advances the state
// once it gets within epsilon. now is simulation time in seconds.
func (d *Door) Update(dt, now float64, cfg DoorConfig) {
	target := d.Y
	switch d.State {
	case DoorOpening:
		target = d.OpenY
		if math.Abs(d.Y-target) < cfg.Epsilon {
			d.Y = target
			d.OpenedAt = now
			d.transition(DoorOpen)
		}
	case DoorClosing:
		target = d.ClosedY
		if math.Abs(d.Y-target) < cfg.Epsilon {
			d.Y = target
			d.transition(DoorClosed)
		}
	case DoorOpen:
		if !d.Permanent && now > d.OpenedAt+cfg.AutoClose {
			d.transition(DoorClosing)
		}
	}
	if d.Y != target {
		d.Y = physics.Lerp(d.Y, target, dt*cfg.Rate)
	}
}
