package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/dungeoncore/internal/core/combat"
	"github.com/zeusync/dungeoncore/internal/core/interact"
	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/level/generator"
	"github.com/zeusync/dungeoncore/internal/core/npc"
	"github.com/zeusync/dungeoncore/internal/core/observability/log"
	"github.com/zeusync/dungeoncore/internal/core/player"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is every tunable of a session. Sections missing from a file keep
// their defaults.
type Config struct {
	Log      log.Config      `yaml:"log"`
	Level    LevelConfig     `yaml:"level"`
	Player   player.Config   `yaml:"player"`
	Interact interact.Config `yaml:"interact"`
	Enemies  npc.Config      `yaml:"enemies"`
	Combat   combat.Config   `yaml:"combat"`
	Weapons  WeaponsConfig   `yaml:"weapons"`
}

type LevelConfig struct {
	Strategy   string  `yaml:"strategy"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	TileSize   float64 `yaml:"tile_size"`
	WallHeight float64 `yaml:"wall_height"`

	Rooms           generator.RoomOptions `yaml:"rooms"`
	ExtraCorridors  int                   `yaml:"extra_corridors"`
	MazeChance      float64               `yaml:"maze_chance"`
	ObstacleDensity float64               `yaml:"obstacle_density"`

	KeyColors   []string `yaml:"key_colors"`
	Switch      bool     `yaml:"switch"`
	WallThemes  []string `yaml:"wall_themes"`
	FloorThemes []string `yaml:"floor_themes"`

	// Seed fixes the level sequence. SeedPhrase, when set, wins and is
	// hashed into a seed. Both empty seeds from the clock.
	Seed       int64  `yaml:"seed"`
	SeedPhrase string `yaml:"seed_phrase"`
}

type WeaponsConfig struct {
	Count int `yaml:"count"`
}

func Default() *Config {
	opts := generator.DefaultOptions()
	colors := make([]string, 0, len(opts.KeyColors))
	for _, c := range opts.KeyColors {
		colors = append(colors, string(c))
	}
	return &Config{
		Log: log.Config{Level: "info", Encoding: "console"},
		Level: LevelConfig{
			Strategy:        generator.StrategyCriticalPath,
			Width:           opts.Width,
			Height:          opts.Height,
			TileSize:        opts.TileSize,
			WallHeight:      opts.WallHeight,
			ExtraCorridors:  opts.ExtraCorridors,
			MazeChance:      opts.MazeChance,
			ObstacleDensity: opts.ObstacleDensity,
			KeyColors:       colors,
			Switch:          opts.Switch,
			WallThemes:      opts.WallThemes,
			FloorThemes:     opts.FloorThemes,
		},
		Player:   player.DefaultConfig(),
		Interact: interact.DefaultConfig(),
		Enemies:  npc.DefaultConfig(),
		Combat:   combat.DefaultConfig(),
		Weapons:  WeaponsConfig{Count: 10},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// LoadYAML decodes YAML over the defaults and validates the result. An
// empty document yields the defaults.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// SeedFor hashes a free-text phrase into a generator seed. The result is
// never zero, which the generator reads as "use the clock".
func SeedFor(phrase string) int64 {
	s := int64(xxhash.Sum64String(phrase) >> 1)
	if s == 0 {
		return 1
	}
	return s
}

// ResolvedSeed is the seed the generator should start from.
func (l LevelConfig) ResolvedSeed() int64 {
	if l.SeedPhrase != "" {
		return SeedFor(l.SeedPhrase)
	}
	return l.Seed
}

// Options converts the level section into generator options.
func (l LevelConfig) Options() generator.Options {
	colors := make([]level.Color, 0, len(l.KeyColors))
	for _, c := range l.KeyColors {
		colors = append(colors, level.Color(c))
	}
	return generator.Options{
		Width:           l.Width,
		Height:          l.Height,
		TileSize:        l.TileSize,
		WallHeight:      l.WallHeight,
		Rooms:           l.Rooms,
		ExtraCorridors:  l.ExtraCorridors,
		MazeChance:      l.MazeChance,
		ObstacleDensity: l.ObstacleDensity,
		KeyColors:       colors,
		Switch:          l.Switch,
		WallThemes:      l.WallThemes,
		FloorThemes:     l.FloorThemes,
		Seed:            l.ResolvedSeed(),
	}
}
