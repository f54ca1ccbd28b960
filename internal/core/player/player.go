package player

import (
	"math"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

type Config struct {
	MaxHealth        float64 `yaml:"max_health"`
	WalkSpeed        float64 `yaml:"walk_speed"`
	SprintSpeed      float64 `yaml:"sprint_speed"`
	Radius           float64 `yaml:"radius"`
	HitRadius        float64 `yaml:"hit_radius"`
	FootstepWalk     float64 `yaml:"footstep_walk"`
	FootstepSprint   float64 `yaml:"footstep_sprint"`
	InteractCooldown float64 `yaml:"interact_cooldown"`
}

func DefaultConfig() Config {
	return Config{
		MaxHealth:        100,
		WalkSpeed:        5,
		SprintSpeed:      9,
		Radius:           0.4,
		HitRadius:        1.0,
		FootstepWalk:     0.45,
		FootstepSprint:   0.3,
		InteractCooldown: 0.5,
	}
}

// Mover resolves a desired displacement against level geometry.
type Mover interface {
	Move(pos, delta physics.Vec3, radius float64) physics.Vec3
}

// Input is the movement part of one tick's intents.
type Input struct {
	Forward, Back, Left, Right bool
	Sprint                     bool
}

func (in Input) Moving() bool {
	return in.Forward != in.Back || in.Left != in.Right
}

// Player is the single avatar. The simulation resets it on every start.
type Player struct {
	cfg Config

	Pos    physics.Vec3
	Yaw    float64
	Pitch  float64
	Health float64
	Dead   bool

	keys     mapset.Set[level.Color]
	colors   []level.Color
	cooldown float64
	stepWait float64
}

var _ physics.Positioned = (*Player)(nil)

func New(cfg Config) *Player {
	p := &Player{cfg: cfg}
	p.Spawn(physics.Vec3{}, 0, nil)
	return p
}

// Spawn restores full health, drops every key and places the player.
func (p *Player) Spawn(pos physics.Vec3, yaw float64, colors []level.Color) {
	p.Pos = pos
	p.Yaw, p.Pitch = yaw, 0
	p.Health = p.cfg.MaxHealth
	p.Dead = false
	p.keys = mapset.New[level.Color]()
	p.colors = slices.Clone(colors)
	p.cooldown = 0
	p.stepWait = 0
}

func (p *Player) Position() physics.Vec3 { return p.Pos }
func (p *Player) MaxHealth() float64     { return p.cfg.MaxHealth }
func (p *Player) HitRadius() float64     { return p.cfg.HitRadius }

// TakeDamage lowers health and reports whether this hit killed the player.
func (p *Player) TakeDamage(amount float64) bool {
	if p.Dead || amount <= 0 {
		return false
	}
	p.Health -= amount
	if p.Health <= 0 {
		p.Health = 0
		p.Dead = true
		return true
	}
	return false
}

func (p *Player) HasKey(c level.Color) bool { return p.keys.Has(c) }

// CollectKey records a key and reports whether every level color is now held.
func (p *Player) CollectKey(c level.Color) bool {
	p.keys.Put(c)
	return p.HasAllKeys()
}

func (p *Player) HasAllKeys() bool {
	for _, c := range p.colors {
		if !p.keys.Has(c) {
			return false
		}
	}
	return true
}

// Keys returns the held/missing state of every level color.
func (p *Player) Keys() map[level.Color]bool {
	out := make(map[level.Color]bool, len(p.colors))
	for _, c := range p.colors {
		out[c] = p.keys.Has(c)
	}
	return out
}

func (p *Player) KeyColors() []level.Color { return p.colors }

// CanInteract reports whether the interaction cooldown has run out.
func (p *Player) CanInteract() bool { return p.cooldown <= 0 }

func (p *Player) ArmCooldown() { p.cooldown = p.cfg.InteractCooldown }

// Cool runs the interaction cooldown down by dt.
func (p *Player) Cool(dt float64) {
	if p.cooldown > 0 {
		p.cooldown -= dt
	}
}

// Look sets the view angles. Pitch is clamped just short of straight up/down.
func (p *Player) Look(yaw, pitch float64) {
	const limit = math.Pi/2 - 0.01
	p.Yaw = yaw
	p.Pitch = math.Max(-limit, math.Min(limit, pitch))
}

// Aim is the unit view direction.
func (p *Player) Aim() physics.Vec3 {
	return physics.Direction(p.Yaw, p.Pitch)
}

// Move walks the player for one tick and reports whether a footstep fell due.
func (p *Player) Move(dt float64, in Input, m Mover) bool {
	p.stepWait -= dt
	if !in.Moving() || p.Dead {
		return false
	}

	var dx, dz float64
	if in.Forward {
		dz++
	}
	if in.Back {
		dz--
	}
	if in.Right {
		dx++
	}
	if in.Left {
		dx--
	}
	dir := physics.Forward(p.Yaw).Scale(dz).Add(physics.Right(p.Yaw).Scale(dx)).Normalize()

	speed, interval := p.cfg.WalkSpeed, p.cfg.FootstepWalk
	if in.Sprint {
		speed, interval = p.cfg.SprintSpeed, p.cfg.FootstepSprint
	}
	p.Pos = m.Move(p.Pos, dir.Scale(speed*dt), p.cfg.Radius)

	if p.stepWait <= 0 {
		p.stepWait = interval
		return true
	}
	return false
}
