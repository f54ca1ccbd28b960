package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zeusync/dungeoncore/internal/core/level/generator"
	"github.com/zeusync/dungeoncore/internal/core/observability/log"
)

// Validate reports every violated constraint at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
		}
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log: %w", ErrInvalidConfig, err))
	}

	check(c.Level.Strategy == "" || slices.Contains(generator.Strategies(), c.Level.Strategy),
		"level.strategy %q is not one of %v", c.Level.Strategy, generator.Strategies())
	if err := c.Level.Options().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: level: %w", ErrInvalidConfig, err))
	}

	p := c.Player
	check(p.MaxHealth > 0, "player.max_health must be positive")
	check(p.WalkSpeed > 0 && p.SprintSpeed >= p.WalkSpeed, "player speeds must be positive with sprint >= walk")
	check(p.Radius > 0 && p.Radius < c.Level.TileSize/2, "player.radius must fit inside a tile")
	check(p.HitRadius > 0, "player.hit_radius must be positive")
	check(p.InteractCooldown >= 0, "player.interact_cooldown must not be negative")

	in := c.Interact
	check(in.Doors.Rate > 0 && in.Doors.Epsilon > 0, "interact.doors rate and epsilon must be positive")
	check(in.Doors.AutoClose >= 0, "interact.doors.auto_close must not be negative")
	check(in.DoorRange > 0 && in.KeyRadius > 0 && in.SwitchRange > 0 && in.ExitRange > 0,
		"interact ranges must be positive")

	e := c.Enemies
	w := e.Weights
	check(w.Melee >= 0 && w.Ranged >= 0 && w.Swarm >= 0 && w.Flyer >= 0, "enemies.weights must not be negative")
	check(w.Melee+w.Ranged+w.Swarm+w.Flyer > 0, "enemies.weights must not all be zero")
	check(e.TilesPerEnemy > 0, "enemies.tiles_per_enemy must be positive")
	check(e.SpawnExclusion >= 0, "enemies.spawn_exclusion must not be negative")
	check(e.Ranged.MinRange <= e.Ranged.MaxRange, "enemies.ranged band is inverted")
	check(e.Flyer.MinRange <= e.Flyer.MaxRange, "enemies.flyer band is inverted")
	check(e.Flyer.BurstSize > 0, "enemies.flyer.burst_size must be positive")
	check(e.Melee.StrikeAt <= e.Melee.Swing, "enemies.melee.strike_at falls after the swing ends")

	cb := c.Combat
	check(cb.PlayerRange > 0, "combat.player_range must be positive")
	check(cb.Debris.MinLife <= cb.Debris.MaxLife, "combat.debris life range is inverted")
	check(cb.Decals.MinLife <= cb.Decals.MaxLife, "combat.decals life range is inverted")

	check(c.Weapons.Count > 0, "weapons.count must be positive")

	return errors.Join(errs...)
}
