package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/level/generator"
	"github.com/zeusync/dungeoncore/internal/core/npc"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 40, c.Level.Width)
	assert.Equal(t, 10, c.Weapons.Count)
	assert.Equal(t, 15, c.Enemies.TilesPerEnemy)
}

func TestLoadYAMLOverlaysDefaults(t *testing.T) {
	doc := `
log:
  level: debug
level:
  strategy: quadrant
  key_colors: [red, blue]
  seed: 42
player:
  max_health: 150
enemies:
  weights:
    melee: 1
    ranged: 0
    swarm: 0
    flyer: 0
`
	c, err := LoadYAML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, generator.StrategyQuadrant, c.Level.Strategy)
	assert.Equal(t, 150.0, c.Player.MaxHealth)
	assert.Equal(t, 9.0, c.Player.SprintSpeed, "untouched fields keep defaults")
	assert.Equal(t, 1.0, c.Enemies.Weights.Melee)
	assert.Zero(t, c.Enemies.Weights.Flyer)

	opts := c.Level.Options()
	assert.Equal(t, []level.Color{"red", "blue"}, opts.KeyColors)
	assert.Equal(t, int64(42), opts.Seed)
}

func TestLoadYAMLEmptyDocument(t *testing.T) {
	c, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadYAMLRejectsUnknownKeys(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("levle:\n  width: 30\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crawler.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weapons:\n  count: 3\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Weapons.Count)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateJoinsEveryProblem(t *testing.T) {
	c := Default()
	c.Log.Level = "loud"
	c.Level.Strategy = "spiral"
	c.Player.MaxHealth = 0
	c.Enemies.Weights = npc.Weights{}
	c.Weapons.Count = 0

	err := c.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	assert.Len(t, joined.Unwrap(), 5)
}

func TestValidateWrapsGeneratorErrors(t *testing.T) {
	c := Default()
	c.Level.Width = 5
	err := c.Validate()
	assert.ErrorIs(t, err, generator.ErrInvalidOptions)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSeedPhrase(t *testing.T) {
	a := LevelConfig{SeedPhrase: "catacombs"}
	b := LevelConfig{SeedPhrase: "catacombs", Seed: 9}
	c := LevelConfig{SeedPhrase: "crypt"}

	assert.Equal(t, a.ResolvedSeed(), b.ResolvedSeed(), "phrase wins over seed")
	assert.NotEqual(t, a.ResolvedSeed(), c.ResolvedSeed())
	assert.Positive(t, a.ResolvedSeed())
	assert.Equal(t, int64(9), LevelConfig{Seed: 9}.ResolvedSeed())
}
