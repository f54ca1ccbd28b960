package interact

import (
	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/player"
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

// Outcome is what an interaction or proximity check did.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeOpened
	OutcomeClosed
	OutcomeUnlocked
	OutcomeLocked
	OutcomeKeyCollected
	OutcomeSwitchActivated
	OutcomeExitLocked
	OutcomeWon
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOpened:
		return "opened"
	case OutcomeClosed:
		return "closed"
	case OutcomeUnlocked:
		return "unlocked"
	case OutcomeLocked:
		return "locked"
	case OutcomeKeyCollected:
		return "key_collected"
	case OutcomeSwitchActivated:
		return "switch_activated"
	case OutcomeExitLocked:
		return "exit_locked"
	case OutcomeWon:
		return "won"
	default:
		return "none"
	}
}

// Result describes one outcome and the entity it concerns.
type Result struct {
	Outcome Outcome
	Door    int
	Color   level.Color
	Cell    level.Point
}

// Objective texts shown to the player.
const (
	ObjectiveFindKeys     = "Find the colored keys to proceed."
	ObjectiveAllKeys      = "All keys found! Find and activate the main switch."
	ObjectiveAllKeysExit  = "All keys found! Find the exit."
	ObjectiveFindSwitch   = "Find and activate the main switch."
	ObjectiveSwitchOn     = "Switch activated! Find the exit."
	ObjectiveExitLocked   = "Exit is locked. You must activate the main switch first."
	ObjectiveFindExit     = "Find the exit."
	ObjectiveLevelCleared = "You found the exit!"
)

type Config struct {
	Doors DoorConfig `yaml:"doors"`
	// DoorRange is in tiles.
	DoorRange   float64 `yaml:"door_range"`
	KeyRadius   float64 `yaml:"key_radius"`
	SwitchRange float64 `yaml:"switch_range"`
	ExitRange   float64 `yaml:"exit_range"`
}

func DefaultConfig() Config {
	return Config{
		Doors:       DefaultDoorConfig(),
		DoorRange:   1.5,
		KeyRadius:   2.0,
		SwitchRange: 2.5,
		ExitRange:   3.0,
	}
}

type Key struct {
	Cell      level.Point
	Color     level.Color
	Pos       physics.Vec3
	Collected bool
}

type Switch struct {
	Cell      level.Point
	Pos       physics.Vec3
	Activated bool
}

type Exit struct {
	Cell level.Point
	Pos  physics.Vec3
}

// System owns every door, key, switch and exit of one level. Doors live in
// a slice addressed by their ID; byCell indexes them for collision queries.
type System struct {
	cfg       Config
	doorRange float64

	doors  []*Door
	byCell map[level.Point]int
	keys   []*Key
	sw     *Switch
	exit   Exit

	objective string
}

// NewSystem builds the interactables of a generated level.
func NewSystem(data *level.Data, cfg Config) *System {
	geo := data.Geometry
	s := &System{
		cfg:       cfg,
		doorRange: cfg.DoorRange * geo.TileSize,
		byCell:    make(map[level.Point]int, len(data.Doors)),
		exit:      Exit{Cell: data.Exit, Pos: geo.CellCenter(data.Exit, 0)},
	}
	closedY, openY := geo.WallHeight/2, geo.WallHeight*1.5-0.1
	for i, site := range data.Doors {
		s.doors = append(s.doors, &Door{
			ID:          i,
			Cell:        site.Cell,
			Orientation: site.Orientation,
			Color:       site.Color,
			Center:      geo.CellCenter(site.Cell, closedY),
			State:       DoorClosed,
			Y:           closedY,
			OpenY:       openY,
			ClosedY:     closedY,
		})
		s.byCell[site.Cell] = i
	}
	for _, k := range data.Keys {
		s.keys = append(s.keys, &Key{Cell: k.Cell, Color: k.Color, Pos: geo.CellCenter(k.Cell, 0)})
	}
	if data.Switch != nil {
		s.sw = &Switch{Cell: *data.Switch, Pos: geo.CellCenter(*data.Switch, 0)}
	}

	switch {
	case len(data.KeyColors) > 0:
		s.objective = ObjectiveFindKeys
	case s.sw != nil:
		s.objective = ObjectiveFindSwitch
	default:
		s.objective = ObjectiveFindExit
	}
	return s
}

// DoorBlocks implements the collision field's door lookup.
func (s *System) DoorBlocks(p level.Point) bool {
	i, ok := s.byCell[p]
	return ok && s.doors[i].Blocks()
}

func (s *System) Doors() []*Door     { return s.doors }
func (s *System) Keys() []*Key       { return s.keys }
func (s *System) Switch() *Switch    { return s.sw }
func (s *System) Exit() Exit         { return s.exit }
func (s *System) Objective() string  { return s.objective }
func (s *System) SwitchActive() bool { return s.sw == nil || s.sw.Activated }

// UpdateDoors animates every door. now is simulation time in seconds.
func (s *System) UpdateDoors(dt, now float64) {
	for _, d := range s.doors {
		d.Update(dt, now, s.cfg.Doors)
	}
}

// CollectKeys picks up every key within reach of the player.
func (s *System) CollectKeys(p *player.Player) []Result {
	var out []Result
	for _, k := range s.keys {
		if k.Collected || physics.FlatDistance(k.Pos, p.Position()) >= s.cfg.KeyRadius {
			continue
		}
		k.Collected = true
		if p.CollectKey(k.Color) {
			if s.sw != nil && !s.sw.Activated {
				s.objective = ObjectiveAllKeys
			} else if s.sw == nil {
				s.objective = ObjectiveAllKeysExit
			}
		}
		out = append(out, Result{Outcome: OutcomeKeyCollected, Color: k.Color, Cell: k.Cell})
	}
	return out
}

// Interact handles one interaction edge. A door that reacts wins over the
// switch, the switch over the exit. Anything that reacts arms the player's cooldown.
func (s *System) Interact(p *player.Player) Result {
	if !p.CanInteract() || p.Dead {
		return Result{}
	}
	res := s.interact(p)
	if res.Outcome != OutcomeNone {
		p.ArmCooldown()
	}
	return res
}

func (s *System) interact(p *player.Player) Result {
	pos := p.Position()

	if d := s.nearestDoor(pos); d != nil {
		if out := d.Toggle(p.HasKey); out != OutcomeNone {
			return Result{Outcome: out, Door: d.ID, Color: d.Color, Cell: d.Cell}
		}
	}

	if s.sw != nil && !s.sw.Activated && physics.FlatDistance(s.sw.Pos, pos) < s.cfg.SwitchRange {
		s.sw.Activated = true
		s.objective = ObjectiveSwitchOn
		return Result{Outcome: OutcomeSwitchActivated, Cell: s.sw.Cell}
	}

	if physics.FlatDistance(s.exit.Pos, pos) < s.cfg.ExitRange {
		if !s.SwitchActive() {
			s.objective = ObjectiveExitLocked
			return Result{Outcome: OutcomeExitLocked, Cell: s.exit.Cell}
		}
		s.objective = ObjectiveLevelCleared
		return Result{Outcome: OutcomeWon, Cell: s.exit.Cell}
	}
	return Result{}
}

func (s *System) nearestDoor(pos physics.Vec3) *Door {
	var (
		best     *Door
		bestDist = s.doorRange
	)
	for _, d := range s.doors {
		if dist := physics.FlatDistance(d.Center, pos); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}
