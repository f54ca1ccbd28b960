package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"

	"github.com/zeusync/dungeoncore/internal/core/collision"
	"github.com/zeusync/dungeoncore/internal/core/combat"
	"github.com/zeusync/dungeoncore/internal/core/config"
	"github.com/zeusync/dungeoncore/internal/core/events/bus"
	"github.com/zeusync/dungeoncore/internal/core/interact"
	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/level/generator"
	"github.com/zeusync/dungeoncore/internal/core/npc"
	"github.com/zeusync/dungeoncore/internal/core/observability/log"
	"github.com/zeusync/dungeoncore/internal/core/player"
)

const defaultIntentCapacity = 256

type Option func(*Simulation)

// WithYield replaces the hook run once between entering Generating and
// building the level.
func WithYield(yield func()) Option {
	return func(s *Simulation) { s.yield = yield }
}

// WithRand fixes the source used for enemies, weapons and combat effects.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulation) { s.rng = rng }
}

func WithIntentCapacity(n int) Option {
	return func(s *Simulation) { s.intents = NewIntentBuffer(n) }
}

// Simulation is one game session. All world state is owned here and only
// mutated inside GenerateLevel, Start, Pause, Resume and Tick. Events are
// published after the lock is released, so handlers may call back in.
type Simulation struct {
	cfg     *config.Config
	gen     generator.Generator
	bus     bus.EventBus
	log     log.Log
	yield   func()
	rng     *rand.Rand
	intents *IntentBuffer

	mu      sync.Mutex
	state   State
	session string
	tick    uint64
	now     float64

	data    *level.Data
	field   *collision.Field
	things  *interact.System
	player  *player.Player
	enemies []*npc.Enemy
	combat  *combat.Resolver
	arsenal *combat.Arsenal
	decals  []combat.Decal
	debris  []combat.Debris

	input     player.Input
	nextEnemy int
	pending   []bus.Event
	last      Snapshot
}

func New(cfg *config.Config, gen generator.Generator, eventBus bus.EventBus, logger log.Log, opts ...Option) *Simulation {
	if logger == nil {
		logger = log.NewNop()
	}
	s := &Simulation{
		cfg:     cfg,
		gen:     gen,
		bus:     eventBus,
		log:     logger.Named("sim"),
		yield:   runtime.Gosched,
		intents: NewIntentBuffer(defaultIntentCapacity),
		state:   StateMenu,
		player:  player.New(cfg.Player),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.combat = combat.NewResolver(cfg.Combat, s.rng, s.log)
	s.last = s.snapshot()
	return s
}

// GenerateLevel discards the current level and builds a new one. The
// Generating state is published before the work starts.
func (s *Simulation) GenerateLevel() error {
	s.mu.Lock()
	if err := s.moveTo(StateGenerating); err != nil {
		s.mu.Unlock()
		return err
	}
	s.discard()
	s.last = s.snapshot()
	events := s.flush()
	s.mu.Unlock()
	pubErr := s.publish(events)

	s.yield()
	started := time.Now()
	data, err := s.gen.Generate()

	s.mu.Lock()
	if err != nil {
		_ = s.moveTo(StateMenu)
		s.last = s.snapshot()
		events = s.flush()
		s.mu.Unlock()
		s.log.Error("level generation failed", log.Error(err))
		_ = s.publish(events)
		return fmt.Errorf("generate level: %w", err)
	}

	s.install(data)
	for _, w := range data.Warnings {
		s.emit(EventGenerationWarning, sourceGenerator, WarningEvent{Warning: w})
	}
	_ = s.moveTo(StatePreview)
	s.last = s.snapshot()
	events = s.flush()
	s.mu.Unlock()

	s.log.Info("level ready",
		log.String("strategy", data.Strategy),
		log.Seed(data.Seed),
		log.Int("rooms", len(data.Rooms)),
		log.Int("warnings", len(data.Warnings)),
		log.Duration("took", time.Since(started)),
	)
	return errors.Join(pubErr, s.publish(events))
}

// Start begins play on the current level. A finished session may be
// restarted on the same level.
func (s *Simulation) Start() error {
	s.mu.Lock()
	if s.data == nil {
		s.mu.Unlock()
		return ErrNoLevel
	}
	if s.state != StatePreview && !s.state.Finished() {
		s.mu.Unlock()
		return fmt.Errorf("%w: cannot start from %s", ErrInvalidState, s.state)
	}

	s.install(s.data)
	s.nextEnemy = 0
	s.enemies = npc.Populate(s.data, &s.cfg.Enemies, s.rng, func() int {
		s.nextEnemy++
		return s.nextEnemy
	})
	s.arsenal = combat.NewArsenal(s.cfg.Weapons.Count, s.rng)
	s.tick, s.now = 0, 0
	s.session = uuid.NewString()
	s.intents.Drain()

	_ = s.moveTo(StatePlaying)
	s.last = s.snapshot()
	events := s.flush()
	fields := []log.Field{
		log.String("session", s.session),
		log.Seed(s.data.Seed),
		log.Int("enemies", len(s.enemies)),
	}
	s.mu.Unlock()

	s.log.Info("session started", fields...)
	return s.publish(events)
}

func (s *Simulation) Pause() error  { return s.switchTo(StatePaused) }
func (s *Simulation) Resume() error { return s.switchTo(StatePlaying) }

func (s *Simulation) switchTo(next State) error {
	s.mu.Lock()
	if next == StatePlaying && s.state != StatePaused {
		s.mu.Unlock()
		return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidState, s.state, next)
	}
	if err := s.moveTo(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.last = s.snapshot()
	events := s.flush()
	s.mu.Unlock()
	return s.publish(events)
}

// Enqueue stages an intent for the next tick. It reports false when the
// buffer is full and the intent was dropped.
func (s *Simulation) Enqueue(in Intent) bool {
	if !s.intents.Push(in) {
		s.log.Warn("intent dropped", log.String("type", string(in.Type)))
		return false
	}
	return true
}

// Tick advances the session by dt seconds. Outside Playing only pause,
// look and move intents take effect. The returned error joins handler errors.
func (s *Simulation) Tick(dt float64) error {
	s.mu.Lock()
	fire, use := s.apply(s.intents.Drain())
	if s.state != StatePlaying || dt <= 0 {
		s.last = s.snapshot()
		events := s.flush()
		s.mu.Unlock()
		return s.publish(events)
	}

	s.tick++
	s.now += dt

	s.things.UpdateDoors(dt, s.now)
	s.updateEnemies(dt)
	s.settle(s.combat.Step(dt, combat.OwnerEnemy, s.field, s.enemies, s.player))
	if fire {
		s.fire()
	}
	s.settle(s.combat.Step(dt, combat.OwnerPlayer, s.field, s.enemies, s.player))
	s.debris = combat.UpdateDebris(s.debris, dt, &s.combat.Config().Debris)
	s.decals = combat.UpdateDecals(s.decals, dt)
	won := s.interactables(use)

	s.player.Cool(dt)
	if s.player.Move(dt, s.input, s.field) {
		s.emit(EventFootstep, sourcePlayer, FootstepEvent{Pos: s.player.Pos, Sprint: s.input.Sprint})
	}

	switch {
	case s.player.Dead:
		_ = s.moveTo(StateDead)
		s.log.Info("player died", log.String("session", s.session), log.Uint64("tick", s.tick))
	case won:
		_ = s.moveTo(StateWon)
		s.log.Info("level cleared", log.String("session", s.session), log.Float64("time", s.now))
	}

	s.last = s.snapshot()
	events := s.flush()
	s.mu.Unlock()
	return s.publish(events)
}

// Snapshot returns the state as of the last mutation.
func (s *Simulation) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Simulation) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Simulation) Session() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Level returns the current level, nil before the first generation.
func (s *Simulation) Level() *level.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// apply folds the drained intents into the tick's input. It returns the
// fire and interact edges.
func (s *Simulation) apply(intents []Intent) (fire, use bool) {
	for _, in := range intents {
		switch in.Type {
		case IntentPause:
			if s.state == StatePlaying {
				_ = s.moveTo(StatePaused)
			}
		case IntentResume:
			if s.state == StatePaused {
				_ = s.moveTo(StatePlaying)
			}
		case IntentLook:
			if in.Look != nil {
				s.player.Look(in.Look.Yaw, in.Look.Pitch)
			}
		case IntentMove:
			if in.Move != nil {
				s.input = *in.Move
			}
		case IntentFire:
			fire = true
		case IntentInteract:
			use = true
		case IntentWeapon:
			if s.arsenal != nil && s.arsenal.Select(in.Weapon) {
				s.log.Debug("weapon selected", log.Int("index", in.Weapon))
			}
		}
	}
	return fire, use
}

func (s *Simulation) updateEnemies(dt float64) {
	w := &npc.World{
		Field:   s.field,
		Target:  s.player,
		Emitter: enemyGuns{s},
		Rng:     s.rng,
		Now:     s.now,
	}
	for _, e := range s.enemies {
		e.Update(dt, w, &s.cfg.Enemies)
	}
	npc.Separate(s.enemies, s.cfg.Enemies.SeparationRadius, s.cfg.Enemies.SeparationPush, s.field)
}

// fire pulls the trigger of the selected weapon. Recoil kicks the view up
// by Recoil degrees.
func (s *Simulation) fire() {
	if s.arsenal == nil || s.player.Dead {
		return
	}
	w, ok := s.arsenal.Trigger(s.now)
	if !ok {
		return
	}
	p := s.combat.Fire(s.player.Pos, s.player.Yaw, s.player.Pitch, w)
	s.emit(EventGunshot, sourcePlayer, GunshotEvent{
		Owner:  combat.OwnerPlayer,
		Weapon: w.Name,
		Origin: p.Pos,
		Sound:  w.Sound,
	})
	s.player.Look(s.player.Yaw, s.player.Pitch+w.Recoil*math.Pi/180)
}

// settle applies one combat report: decals stick, killed enemies leave
// the world and fall apart.
func (s *Simulation) settle(rep combat.Report) {
	for _, hit := range rep.Impacts {
		s.decals = append(s.decals, hit.Decal)
		s.emit(EventDecal, sourceCombat, DecalEvent{Decal: hit.Decal, Owner: hit.Owner})
	}
	if len(rep.Kills) > 0 {
		dead := mapset.New[*npc.Enemy]()
		for _, k := range rep.Kills {
			dead.Put(k.Enemy)
			s.debris = append(s.debris, k.Debris...)
			s.emit(EventEnemyDeath, sourceCombat, EnemyDeathEvent{
				Enemy:     k.Enemy.ID,
				Kind:      k.Enemy.Kind(),
				Pos:       k.Enemy.Pos,
				Fragments: len(k.Debris),
			})
		}
		s.enemies = slices.DeleteFunc(s.enemies, dead.Has)
	}
	if rep.PlayerHits > 0 {
		s.log.Debug("player hit",
			log.Int("hits", rep.PlayerHits),
			log.Float64("damage", rep.PlayerDamage),
			log.Float64("health", s.player.Health),
		)
	}
}

// interactables collects keys in reach and handles an interaction edge.
// It reports whether the player reached an unlocked exit.
func (s *Simulation) interactables(use bool) bool {
	for _, res := range s.things.CollectKeys(s.player) {
		s.emit(EventKeyPickup, sourceInteract, KeyEvent{Color: res.Color, Cell: res.Cell})
	}
	if !use {
		return false
	}

	res := s.things.Interact(s.player)
	switch res.Outcome {
	case interact.OutcomeUnlocked:
		s.emit(EventDoorUnlock, sourceInteract, DoorEvent{Door: res.Door, Color: res.Color, Cell: res.Cell})
	case interact.OutcomeLocked:
		s.emit(EventDoorLocked, sourceInteract, DoorEvent{Door: res.Door, Color: res.Color, Cell: res.Cell})
	case interact.OutcomeSwitchActivated:
		s.emit(EventSwitchActivated, sourceInteract, CellEvent{Cell: res.Cell})
	case interact.OutcomeExitLocked:
		s.emit(EventExitLocked, sourceInteract, CellEvent{Cell: res.Cell})
	case interact.OutcomeWon:
		return true
	case interact.OutcomeOpened, interact.OutcomeClosed:
		s.log.Debug("door toggled", log.Int("door", res.Door), log.Stringer("outcome", res.Outcome))
	}
	return false
}

// install builds fresh interactables and collision for data and clears
// everything left from the previous session.
func (s *Simulation) install(data *level.Data) {
	s.data = data
	s.things = interact.NewSystem(data, s.cfg.Interact)
	s.field = collision.New(data.Grid, data.Geometry, s.things)
	s.enemies = nil
	s.combat.Reset()
	s.decals = nil
	s.debris = nil
	s.input = player.Input{}
	geo := data.Geometry
	s.player.Spawn(geo.CellCenter(data.Spawn, geo.WallHeight/2), 0, data.KeyColors)
}

func (s *Simulation) discard() {
	s.data, s.things, s.field = nil, nil, nil
	s.enemies, s.decals, s.debris = nil, nil, nil
	s.arsenal = nil
	s.session = ""
	s.combat.Reset()
}

func (s *Simulation) moveTo(next State) error {
	if !s.state.canMoveTo(next) {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidState, s.state, next)
	}
	from := s.state
	s.state = next
	ev := StateEvent{From: from, To: next, Session: s.session}
	if s.data != nil {
		ev.Seed = s.data.Seed
	}
	s.emit(EventStateChanged, sourceSim, ev)
	s.log.Debug("state changed", log.Stringer("from", from), log.Stringer("to", next))
	return nil
}

func (s *Simulation) emit(typ, source string, data any) {
	s.pending = append(s.pending, bus.NewEvent(typ, source, s.now, data))
}

func (s *Simulation) flush() []bus.Event {
	out := s.pending
	s.pending = nil
	return out
}

func (s *Simulation) publish(events []bus.Event) error {
	if len(events) == 0 || s.bus == nil {
		return nil
	}
	if err := s.bus.PublishBatch(events...); err != nil {
		s.log.Warn("event handlers failed", log.Error(err))
		return fmt.Errorf("publish events: %w", err)
	}
	return nil
}

// enemyGuns routes enemy shots into the resolver and announces them.
// It runs inside Tick with the lock held.
type enemyGuns struct {
	s *Simulation
}

func (g enemyGuns) Emit(shot npc.Shot) {
	g.s.combat.Emit(shot)
	g.s.emit(EventGunshot, sourceCombat, GunshotEvent{
		Owner:   combat.OwnerEnemy,
		Shooter: shot.Owner,
		Weapon:  shot.Kind.String(),
		Origin:  shot.Origin,
		Sound:   combat.EnemySound(shot.Kind),
	})
}
