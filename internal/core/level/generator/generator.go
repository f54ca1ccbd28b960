package generator

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/observability/log"
)

// Strategy names accepted by New.
const (
	StrategyCriticalPath = "critical-path"
	StrategyCorridor     = "corridor"
	StrategyQuadrant     = "quadrant"
)

// Strategies lists every registered strategy name.
func Strategies() []string {
	return []string{StrategyCriticalPath, StrategyCorridor, StrategyQuadrant}
}

// Generator produces a new level on every call. Generate draws a fresh
// per-level seed; GenerateSeed rebuilds the level for a recorded seed.
type Generator interface {
	Generate() (*level.Data, error)
	GenerateSeed(seed int64) (*level.Data, error)
	Strategy() string
}

// RoomOptions bounds rectangle placement. A zero Attempts selects the
// defaults of the chosen strategy.
type RoomOptions struct {
	Attempts int `yaml:"attempts"`
	MaxRooms int `yaml:"max_rooms"`
	MinSize  int `yaml:"min_size"`
	MaxSize  int `yaml:"max_size"`
	Padding  int `yaml:"padding"`
}

type Options struct {
	Width      int
	Height     int
	TileSize   float64
	WallHeight float64

	Rooms RoomOptions

	// ExtraCorridors adds loop corridors between non-successive rooms.
	ExtraCorridors int
	// MazeChance is the probability a large enough room gets a maze interior.
	MazeChance float64
	// ObstacleDensity is the share of an arena's cells offered to obstacles.
	ObstacleDensity float64

	KeyColors   []level.Color
	Switch      bool
	WallThemes  []string
	FloorThemes []string

	// Seed drives the per-level seed sequence; 0 seeds from the clock.
	Seed int64
}

// DefaultOptions mirrors the stock 40x40 dungeon.
func DefaultOptions() Options {
	return Options{
		Width:           40,
		Height:          40,
		TileSize:        5,
		WallHeight:      5,
		ExtraCorridors:  1,
		MazeChance:      0.3,
		ObstacleDensity: 0.08,
		KeyColors:       append([]level.Color(nil), level.DefaultKeyColors...),
		Switch:          true,
		WallThemes:      []string{"brick", "wood", "stone", "metal", "concrete"},
		FloorThemes:     []string{"cement", "wood", "dirt"},
	}
}

var (
	criticalPathRooms = RoomOptions{Attempts: 60, MaxRooms: 10, MinSize: 4, MaxSize: 8, Padding: 2}
	corridorRooms     = RoomOptions{Attempts: 15, MaxRooms: 15, MinSize: 4, MaxSize: 8, Padding: 0}
)

// Validate reports the first option that makes generation impossible.
func (o Options) Validate() error {
	switch {
	case o.Width < 12 || o.Height < 12:
		return fmt.Errorf("%w: grid %dx%d is smaller than 12x12", ErrInvalidOptions, o.Width, o.Height)
	case o.TileSize <= 0 || o.WallHeight <= 0:
		return fmt.Errorf("%w: tile size and wall height must be positive", ErrInvalidOptions)
	case o.Rooms.Attempts < 0:
		return fmt.Errorf("%w: negative room attempts", ErrInvalidOptions)
	case o.Rooms.Attempts > 0 && (o.Rooms.MinSize < 2 || o.Rooms.MaxSize < o.Rooms.MinSize):
		return fmt.Errorf("%w: room size range %d..%d", ErrInvalidOptions, o.Rooms.MinSize, o.Rooms.MaxSize)
	case o.Rooms.Attempts > 0 && o.Rooms.MaxSize+2 >= min(o.Width, o.Height):
		return fmt.Errorf("%w: rooms up to %d do not fit the grid", ErrInvalidOptions, o.Rooms.MaxSize)
	case o.MazeChance < 0 || o.MazeChance > 1:
		return fmt.Errorf("%w: maze chance %v outside [0,1]", ErrInvalidOptions, o.MazeChance)
	case o.ObstacleDensity < 0 || o.ObstacleDensity > 0.5:
		return fmt.Errorf("%w: obstacle density %v outside [0,0.5]", ErrInvalidOptions, o.ObstacleDensity)
	case len(o.WallThemes) == 0 || len(o.FloorThemes) == 0:
		return fmt.Errorf("%w: theme lists must not be empty", ErrInvalidOptions)
	}
	seen := make(map[level.Color]bool, len(o.KeyColors))
	for _, c := range o.KeyColors {
		if c == level.Plain || seen[c] {
			return fmt.Errorf("%w: key color %q empty or repeated", ErrInvalidOptions, c)
		}
		seen[c] = true
	}
	return nil
}

func (o Options) geometry() level.Geometry {
	return level.Geometry{Width: o.Width, Height: o.Height, TileSize: o.TileSize, WallHeight: o.WallHeight}
}

// builder carves one level. Strategies share it so the passes stay uniform.
type builder struct {
	opts     Options
	rng      *rand.Rand
	grid     *level.Grid
	rooms    []level.Room
	data     *level.Data
	log      log.Log
	strategy string
}

type strategyFunc func(b *builder)

type generator struct {
	name  string
	build strategyFunc
	opts  Options
	log   log.Log

	mu     sync.Mutex
	master *rand.Rand
}

var _ Generator = (*generator)(nil)

// New returns the generator registered under strategy.
func New(strategy string, opts Options, logger log.Log) (Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	var build strategyFunc
	switch strategy {
	case StrategyCriticalPath, "":
		strategy, build = StrategyCriticalPath, buildCriticalPath
	case StrategyCorridor:
		build = buildCorridor
	case StrategyQuadrant:
		build = buildQuadrant
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
	if logger == nil {
		logger = log.NewNop()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &generator{
		name:   strategy,
		build:  build,
		opts:   opts,
		log:    logger.Named("generator").With(log.String("strategy", strategy)),
		master: rand.New(rand.NewSource(seed)),
	}, nil
}

func (g *generator) Strategy() string { return g.name }

func (g *generator) Generate() (*level.Data, error) {
	g.mu.Lock()
	seed := g.master.Int63()
	g.mu.Unlock()
	return g.GenerateSeed(seed)
}

func (g *generator) GenerateSeed(seed int64) (*level.Data, error) {
	started := time.Now()
	b := &builder{
		opts:     g.opts,
		rng:      rand.New(rand.NewSource(seed)),
		grid:     level.NewGrid(g.opts.Width, g.opts.Height),
		log:      g.log.With(log.Seed(seed)),
		strategy: g.name,
	}
	b.data = &level.Data{
		Strategy: g.name,
		Seed:     seed,
		Geometry: g.opts.geometry(),
	}

	g.build(b)
	b.finish()

	b.log.Debug("level generated",
		log.Int("rooms", len(b.data.Rooms)),
		log.Int("doors", len(b.data.Doors)),
		log.Int("keys", len(b.data.Keys)),
		log.Bool("solvable", b.data.Solvable),
		log.Duration("took", time.Since(started)),
	)
	return b.data, nil
}

func (b *builder) warn(w level.Warning) {
	b.data.Warnings = append(b.data.Warnings, w)
	b.log.Warn("placement fallback",
		log.String("item", w.Item),
		log.Int("room", w.Room),
		log.Cell(w.Cell.X, w.Cell.Y),
		log.String("reason", w.Message),
	)
}

func (b *builder) roomOptions(fallback RoomOptions) RoomOptions {
	if b.opts.Rooms.Attempts > 0 {
		return b.opts.Rooms
	}
	return fallback
}

func (b *builder) pickTheme(themes []string) string {
	return themes[b.rng.Intn(len(themes))]
}

// randRange returns a uniform int in [lo, hi].
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
