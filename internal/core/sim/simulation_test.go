package sim

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/dungeoncore/internal/core/combat"
	"github.com/zeusync/dungeoncore/internal/core/config"
	"github.com/zeusync/dungeoncore/internal/core/events/bus"
	"github.com/zeusync/dungeoncore/internal/core/interact"
	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/npc"
	"github.com/zeusync/dungeoncore/internal/core/player"
)

const dt = 1.0 / 60

// stubGenerator hands out a fixed level.
type stubGenerator struct {
	build func() *level.Data
	err   error
	calls int
}

func (g *stubGenerator) Generate() (*level.Data, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.build(), nil
}

func (g *stubGenerator) GenerateSeed(int64) (*level.Data, error) { return g.Generate() }
func (g *stubGenerator) Strategy() string                        { return "stub" }

// corridor is a single row of floor: spawn, red key, red door, exit.
func corridor() *level.Data {
	g := level.NewGrid(12, 3)
	g.Fill(1, 1, 10, 1, level.Floor)
	g.Freeze()
	return &level.Data{
		Strategy:  "stub",
		Seed:      7,
		Geometry:  level.Geometry{Width: 12, Height: 3, TileSize: 5, WallHeight: 5},
		Grid:      g,
		Rooms:     []level.Room{level.NewRoom(0, 1, 1, 10, 1)},
		Spawn:     level.Point{X: 1, Y: 1},
		Doors:     []level.DoorSite{{Cell: level.Point{X: 5, Y: 1}, Orientation: level.Vertical, Color: "red"}},
		Keys:      []level.KeySite{{Cell: level.Point{X: 3, Y: 1}, Color: "red"}},
		KeyColors: []level.Color{"red"},
		Exit:      level.Point{X: 9, Y: 1},
		Warnings:  []level.Warning{{Item: "switch", Room: -1, Message: "skipped"}},
	}
}

// closet is three floor cells, small enough that every enemy is in reach.
func closet() *level.Data {
	g := level.NewGrid(5, 3)
	g.Fill(1, 1, 3, 1, level.Floor)
	g.Freeze()
	return &level.Data{
		Geometry: level.Geometry{Width: 5, Height: 3, TileSize: 5, WallHeight: 5},
		Grid:     g,
		Spawn:    level.Point{X: 1, Y: 1},
		Exit:     level.Point{X: 3, Y: 1},
	}
}

type recorder struct {
	mu     sync.Mutex
	events []bus.Event
}

func (r *recorder) handle(e bus.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type())
	}
	return out
}

func (r *recorder) of(typ string) []bus.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []bus.Event
	for _, e := range r.events {
		if e.Type() == typ {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func quietConfig() *config.Config {
	cfg := config.Default()
	cfg.Enemies.TilesPerEnemy = 0
	return cfg
}

func newSim(t *testing.T, cfg *config.Config, build func() *level.Data, opts ...Option) (*Simulation, *recorder) {
	t.Helper()
	b := bus.New()
	rec := &recorder{}
	_, err := b.Subscribe(bus.Any, rec.handle)
	require.NoError(t, err)
	opts = append([]Option{WithRand(rand.New(rand.NewSource(1))), WithYield(func() {})}, opts...)
	return New(cfg, &stubGenerator{build: build}, b, nil, opts...), rec
}

func started(t *testing.T, cfg *config.Config, build func() *level.Data) (*Simulation, *recorder) {
	t.Helper()
	s, rec := newSim(t, cfg, build)
	require.NoError(t, s.GenerateLevel())
	require.NoError(t, s.Start())
	rec.reset()
	return s, rec
}

func run(t *testing.T, s *Simulation, seconds float64) {
	t.Helper()
	for i := 0; i < int(math.Round(seconds/dt)); i++ {
		require.NoError(t, s.Tick(dt))
	}
}

func TestGenerateLevelEntersPreview(t *testing.T) {
	var (
		s      *Simulation
		yields int
		during State
	)
	s, rec := newSim(t, quietConfig(), corridor, WithYield(func() {
		yields++
		during = s.State()
	}))
	assert.Equal(t, StateMenu, s.State())

	require.NoError(t, s.GenerateLevel())
	assert.Equal(t, 1, yields)
	assert.Equal(t, StateGenerating, during)
	assert.Equal(t, StatePreview, s.State())

	snap := s.Snapshot()
	require.NotNil(t, snap.Grid)
	assert.Equal(t, int64(7), snap.Seed)
	assert.Len(t, snap.Doors, 1)
	assert.Len(t, snap.Keys, 1)
	assert.Equal(t, interact.ObjectiveFindKeys, snap.UI.Objective)

	assert.Equal(t, []string{EventStateChanged, EventGenerationWarning, EventStateChanged}, rec.types())
	last := rec.of(EventStateChanged)[1].Data().(StateEvent)
	assert.Equal(t, StateGenerating, last.From)
	assert.Equal(t, StatePreview, last.To)
	assert.Equal(t, int64(7), last.Seed)
}

func TestGenerateLevelRejectsReentry(t *testing.T) {
	var (
		s     *Simulation
		inner error
	)
	s, _ = newSim(t, quietConfig(), corridor, WithYield(func() {
		inner = s.GenerateLevel()
	}))
	require.NoError(t, s.GenerateLevel())
	assert.ErrorIs(t, inner, ErrInvalidState)
}

func TestGenerateFailureReturnsToMenu(t *testing.T) {
	boom := errors.New("boom")
	s := New(quietConfig(), &stubGenerator{err: boom}, bus.New(), nil, WithYield(func() {}))

	err := s.GenerateLevel()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateMenu, s.State())
	assert.Nil(t, s.Level())
}

func TestStartRequiresPreview(t *testing.T) {
	s, _ := newSim(t, quietConfig(), corridor)
	assert.ErrorIs(t, s.Start(), ErrNoLevel)

	require.NoError(t, s.GenerateLevel())
	require.NoError(t, s.Start())
	assert.Equal(t, StatePlaying, s.State())
	assert.NotEmpty(t, s.Session())
	assert.ErrorIs(t, s.Start(), ErrInvalidState)
}

func TestStartResetsWorld(t *testing.T) {
	s, rec := newSim(t, quietConfig(), corridor)
	require.NoError(t, s.GenerateLevel())
	require.NoError(t, s.Start())

	snap := s.Snapshot()
	assert.Equal(t, StatePlaying, snap.State)
	assert.Equal(t, 100.0, snap.UI.Health)
	assert.Equal(t, 100.0, snap.UI.MaxHealth)
	assert.Equal(t, map[level.Color]bool{"red": false}, snap.UI.Keys)
	assert.Len(t, snap.UI.Weapons, 10)
	assert.Equal(t, 0, snap.UI.Weapon)
	assert.InDelta(t, -22.5, snap.Player.Pos.X, 1e-9)
	assert.InDelta(t, 2.5, snap.Player.Pos.Y, 1e-9)
	assert.Empty(t, snap.Enemies)
	assert.Empty(t, snap.Projectiles)

	ev := rec.of(EventStateChanged)
	playing := ev[len(ev)-1].Data().(StateEvent)
	assert.Equal(t, StatePlaying, playing.To)
	assert.Equal(t, snap.Session, playing.Session)
}

func TestTickOutsidePlayingIsIdle(t *testing.T) {
	s, _ := newSim(t, quietConfig(), corridor)
	require.NoError(t, s.Tick(dt))
	require.NoError(t, s.GenerateLevel())
	require.NoError(t, s.Tick(dt))
	assert.Equal(t, uint64(0), s.Snapshot().Tick)
}

func TestWalkCollectUnlockAndWin(t *testing.T) {
	s, rec := started(t, quietConfig(), corridor)

	s.Enqueue(Look(math.Pi/2, 0))
	s.Enqueue(Move(player.Input{Forward: true}))
	run(t, s, 2)

	picked := rec.of(EventKeyPickup)
	require.Len(t, picked, 1)
	assert.Equal(t, level.Color("red"), picked[0].Data().(KeyEvent).Color)
	snap := s.Snapshot()
	assert.True(t, snap.UI.Keys["red"])
	assert.Empty(t, snap.Keys)
	assert.NotEmpty(t, rec.of(EventFootstep))

	// the closed door stops the walk
	run(t, s, 2)
	assert.InDelta(t, -5.4, s.Snapshot().Player.Pos.X, 0.1)

	s.Enqueue(Interact())
	require.NoError(t, s.Tick(dt))
	unlocked := rec.of(EventDoorUnlock)
	require.Len(t, unlocked, 1)
	assert.Equal(t, level.Color("red"), unlocked[0].Data().(DoorEvent).Color)

	for i := 0; i < 600 && s.Snapshot().Player.Pos.X < 16; i++ {
		require.NoError(t, s.Tick(dt))
	}
	require.GreaterOrEqual(t, s.Snapshot().Player.Pos.X, 16.0)

	s.Enqueue(Move(player.Input{}))
	run(t, s, 0.5)
	s.Enqueue(Interact())
	require.NoError(t, s.Tick(dt))

	assert.Equal(t, StateWon, s.State())
	assert.True(t, s.Snapshot().UI.Won)
	ev := rec.of(EventStateChanged)
	assert.Equal(t, StateWon, ev[len(ev)-1].Data().(StateEvent).To)

	// a finished session ignores further ticks
	tick := s.Snapshot().Tick
	run(t, s, 0.5)
	assert.Equal(t, tick, s.Snapshot().Tick)
}

func TestLockedDoorWithoutKey(t *testing.T) {
	s, rec := started(t, quietConfig(), func() *level.Data {
		d := corridor()
		d.Keys[0].Cell = level.Point{X: 8, Y: 1}
		return d
	})

	s.Enqueue(Look(math.Pi/2, 0))
	s.Enqueue(Move(player.Input{Forward: true, Sprint: true}))
	run(t, s, 3)
	s.Enqueue(Interact())
	require.NoError(t, s.Tick(dt))

	locked := rec.of(EventDoorLocked)
	require.Len(t, locked, 1)
	assert.Equal(t, 0, locked[0].Data().(DoorEvent).Door)
	assert.Empty(t, rec.of(EventDoorUnlock))

	for _, e := range rec.of(EventFootstep) {
		assert.True(t, e.Data().(FootstepEvent).Sprint)
	}
}

func TestFireLeavesDecalOnDoor(t *testing.T) {
	s, rec := started(t, quietConfig(), corridor)

	s.Enqueue(Look(math.Pi/2, 0))
	s.Enqueue(SelectWeapon(3))
	s.Enqueue(Fire())
	require.NoError(t, s.Tick(dt))

	shots := rec.of(EventGunshot)
	require.Len(t, shots, 1)
	shot := shots[0].Data().(GunshotEvent)
	assert.Equal(t, combat.OwnerPlayer, shot.Owner)
	snap := s.Snapshot()
	assert.Equal(t, 3, snap.UI.Weapon)
	assert.Equal(t, snap.UI.Weapons[3], shot.Weapon)
	assert.Len(t, snap.Projectiles, 1)
	assert.Greater(t, snap.Player.Pitch, 0.0)

	run(t, s, 1)
	decals := rec.of(EventDecal)
	require.Len(t, decals, 1)
	d := decals[0].Data().(DecalEvent)
	assert.Equal(t, combat.OwnerPlayer, d.Owner)
	assert.InDelta(t, -5, d.Decal.Pos.X, 0.05)
	snap = s.Snapshot()
	assert.Empty(t, snap.Projectiles)
	assert.Len(t, snap.Decals, 1)
}

func TestMeleeSwarmKillsPlayer(t *testing.T) {
	cfg := config.Default()
	cfg.Enemies.TilesPerEnemy = 1
	cfg.Enemies.SpawnExclusion = 0
	cfg.Enemies.Weights = npc.Weights{Melee: 1}
	cfg.Enemies.Melee.Speed = 20
	cfg.Enemies.Melee.Damage = 200
	s, rec := started(t, cfg, closet)
	require.Len(t, s.Snapshot().Enemies, 3)
	first := s.Session()

	for i := 0; i < 600 && s.State() == StatePlaying; i++ {
		require.NoError(t, s.Tick(dt))
	}
	assert.Equal(t, StateDead, s.State())
	snap := s.Snapshot()
	assert.True(t, snap.UI.Lost)
	assert.Zero(t, snap.UI.Health)
	ev := rec.of(EventStateChanged)
	assert.Equal(t, StateDead, ev[len(ev)-1].Data().(StateEvent).To)

	require.NoError(t, s.Start())
	assert.Equal(t, StatePlaying, s.State())
	assert.NotEqual(t, first, s.Session())
	assert.Equal(t, 100.0, s.Snapshot().UI.Health)
}

func TestPauseFreezesTicks(t *testing.T) {
	s, rec := newSim(t, quietConfig(), corridor)
	require.NoError(t, s.GenerateLevel())
	assert.ErrorIs(t, s.Pause(), ErrInvalidState)
	require.NoError(t, s.Start())

	run(t, s, 0.1)
	tick := s.Snapshot().Tick

	s.Enqueue(Pause())
	s.Enqueue(Move(player.Input{Forward: true}))
	run(t, s, 1)
	assert.Equal(t, StatePaused, s.State())
	assert.Equal(t, tick, s.Snapshot().Tick)
	assert.ErrorIs(t, s.Pause(), ErrInvalidState)

	require.NoError(t, s.Resume())
	assert.ErrorIs(t, s.Resume(), ErrInvalidState)
	run(t, s, 0.1)
	assert.Greater(t, s.Snapshot().Tick, tick)

	var moves []State
	for _, e := range rec.of(EventStateChanged) {
		moves = append(moves, e.Data().(StateEvent).To)
	}
	assert.Equal(t, []State{StateGenerating, StatePreview, StatePlaying, StatePaused, StatePlaying}, moves)
}

func TestEnqueueReportsOverflow(t *testing.T) {
	s, _ := newSim(t, quietConfig(), corridor, WithIntentCapacity(2))
	assert.True(t, s.Enqueue(Fire()))
	assert.True(t, s.Enqueue(Interact()))
	assert.False(t, s.Enqueue(Pause()))
}

func TestHandlerErrorsSurfaceFromTick(t *testing.T) {
	s, _ := started(t, quietConfig(), corridor)
	boom := errors.New("handler failed")
	_, err := s.bus.Subscribe(EventGunshot, func(bus.Event) error { return boom })
	require.NoError(t, err)

	s.Enqueue(Fire())
	assert.ErrorIs(t, s.Tick(dt), boom)
	assert.Equal(t, StatePlaying, s.State())
}
