package sim

import (
	"github.com/zeusync/dungeoncore/internal/core/combat"
	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/npc"
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

// Event types published on the bus after every tick.
const (
	EventGunshot           = "gunshot"
	EventFootstep          = "footstep"
	EventEnemyDeath        = "enemy_death"
	EventKeyPickup         = "key_pickup"
	EventDoorUnlock        = "door_unlock"
	EventDoorLocked        = "door_locked"
	EventSwitchActivated   = "switch_activated"
	EventExitLocked        = "exit_locked"
	EventDecal             = "decal"
	EventStateChanged      = "state_changed"
	EventGenerationWarning = "generation_warning"
)

// Event sources.
const (
	sourceSim       = "sim"
	sourcePlayer    = "player"
	sourceCombat    = "combat"
	sourceInteract  = "interact"
	sourceGenerator = "generator"
)

// GunshotEvent is raised for every shot, by the player or an enemy.
type GunshotEvent struct {
	Owner combat.Owner
	// Shooter is the enemy id, 0 for the player.
	Shooter int
	Weapon  string
	Origin  physics.Vec3
	Sound   combat.SoundProfile
}

type FootstepEvent struct {
	Pos    physics.Vec3
	Sprint bool
}

type EnemyDeathEvent struct {
	Enemy     int
	Kind      npc.Kind
	Pos       physics.Vec3
	Fragments int
}

// KeyEvent backs key pickups.
type KeyEvent struct {
	Color level.Color
	Cell  level.Point
}

// DoorEvent backs colored door unlocks and refusals.
type DoorEvent struct {
	Door  int
	Color level.Color
	Cell  level.Point
}

// CellEvent backs switch activation and the locked exit.
type CellEvent struct {
	Cell level.Point
}

type DecalEvent struct {
	Decal combat.Decal
	Owner combat.Owner
}

type StateEvent struct {
	From    State
	To      State
	Session string
	Seed    int64
}

type WarningEvent struct {
	Warning level.Warning
}
