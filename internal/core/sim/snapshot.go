package sim

import (
	"slices"

	"github.com/zeusync/dungeoncore/internal/core/combat"
	"github.com/zeusync/dungeoncore/internal/core/interact"
	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/npc"
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

// Snapshot is a read-only copy of the simulation between ticks. The grid
// and rooms are shared; they never change after generation.
type Snapshot struct {
	Session string
	State   State
	Tick    uint64
	Time    float64
	Seed    int64

	Grid     *level.Grid
	Geometry level.Geometry
	Rooms    []level.Room
	Warnings []level.Warning

	Doors       []DoorView
	Keys        []KeyView
	Switch      *SwitchView
	Exit        level.Point
	Enemies     []EnemyView
	Projectiles []ProjectileView
	Decals      []combat.Decal
	Debris      []combat.Debris

	Player PlayerView
	UI     UIState
}

type DoorView struct {
	ID          int
	Cell        level.Point
	Orientation level.Orientation
	Color       level.Color
	State       interact.DoorState
	Y           float64
	Permanent   bool
}

type KeyView struct {
	Color level.Color
	Cell  level.Point
	Pos   physics.Vec3
}

type SwitchView struct {
	Cell      level.Point
	Activated bool
}

type EnemyView struct {
	ID         int
	Kind       npc.Kind
	Pos        physics.Vec3
	Yaw        float64
	AnimOffset float64
}

type ProjectileView struct {
	ID    int
	Owner combat.Owner
	Pos   physics.Vec3
	Vel   physics.Vec3
}

type PlayerView struct {
	Pos   physics.Vec3
	Yaw   float64
	Pitch float64
}

// UIState is what a HUD needs.
type UIState struct {
	Health    float64
	MaxHealth float64
	Keys      map[level.Color]bool
	KeyColors []level.Color
	Objective string
	Won       bool
	Lost      bool
	Weapon    int
	Weapons   []string
}

// snapshot copies the live state. Callers hold s.mu.
func (s *Simulation) snapshot() Snapshot {
	snap := Snapshot{
		Session: s.session,
		State:   s.state,
		Tick:    s.tick,
		Time:    s.now,
		UI: UIState{
			Won:  s.state == StateWon,
			Lost: s.state == StateDead,
		},
	}
	if s.data != nil {
		snap.Seed = s.data.Seed
		snap.Grid = s.data.Grid
		snap.Geometry = s.data.Geometry
		snap.Rooms = s.data.Rooms
		snap.Warnings = slices.Clone(s.data.Warnings)
		snap.Exit = s.data.Exit
	}

	if s.things != nil {
		for _, d := range s.things.Doors() {
			snap.Doors = append(snap.Doors, DoorView{
				ID:          d.ID,
				Cell:        d.Cell,
				Orientation: d.Orientation,
				Color:       d.Color,
				State:       d.State,
				Y:           d.Y,
				Permanent:   d.Permanent,
			})
		}
		for _, k := range s.things.Keys() {
			if !k.Collected {
				snap.Keys = append(snap.Keys, KeyView{Color: k.Color, Cell: k.Cell, Pos: k.Pos})
			}
		}
		if sw := s.things.Switch(); sw != nil {
			snap.Switch = &SwitchView{Cell: sw.Cell, Activated: sw.Activated}
		}
		snap.UI.Objective = s.things.Objective()
	}

	for _, e := range s.enemies {
		snap.Enemies = append(snap.Enemies, EnemyView{
			ID:         e.ID,
			Kind:       e.Kind(),
			Pos:        e.Pos,
			Yaw:        e.Yaw,
			AnimOffset: e.AnimOffset,
		})
	}
	if s.combat != nil {
		for _, p := range s.combat.Projectiles() {
			snap.Projectiles = append(snap.Projectiles, ProjectileView{ID: p.ID, Owner: p.Owner, Pos: p.Pos, Vel: p.Vel})
		}
	}
	snap.Decals = slices.Clone(s.decals)
	snap.Debris = slices.Clone(s.debris)

	if p := s.player; p != nil {
		snap.Player = PlayerView{Pos: p.Pos, Yaw: p.Yaw, Pitch: p.Pitch}
		snap.UI.Health = p.Health
		snap.UI.MaxHealth = p.MaxHealth()
		snap.UI.Keys = p.Keys()
		snap.UI.KeyColors = slices.Clone(p.KeyColors())
	}
	if s.arsenal != nil {
		snap.UI.Weapon = s.arsenal.Index()
		for _, w := range s.arsenal.Weapons {
			snap.UI.Weapons = append(snap.UI.Weapons, w.Name)
		}
	}
	return snap
}
