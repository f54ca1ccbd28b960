package npc

// Stats for every archetype. Distances are world units, times seconds.

type MeleeConfig struct {
	Speed        float64 `yaml:"speed"`
	StopDistance float64 `yaml:"stop_distance"`
	Range        float64 `yaml:"range"`
	Margin       float64 `yaml:"margin"`
	Damage       float64 `yaml:"damage"`
	Period       float64 `yaml:"period"`
	Swing        float64 `yaml:"swing"`
	StrikeAt     float64 `yaml:"strike_at"`
}

type RangedConfig struct {
	Speed           float64 `yaml:"speed"`
	MinRange        float64 `yaml:"min_range"`
	MaxRange        float64 `yaml:"max_range"`
	Cooldown        float64 `yaml:"cooldown"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	Damage          float64 `yaml:"damage"`
	SureMisses      int     `yaml:"sure_misses"`
	MissChance      float64 `yaml:"miss_chance"`
	Inaccuracy      float64 `yaml:"inaccuracy"`
	Reach           float64 `yaml:"reach"`
}

type SwarmConfig struct {
	Speed        float64 `yaml:"speed"`
	StopDistance float64 `yaml:"stop_distance"`
	StrafeMin    float64 `yaml:"strafe_min"`
	StrafeMax    float64 `yaml:"strafe_max"`
	StrafeWeight float64 `yaml:"strafe_weight"`
	Range        float64 `yaml:"range"`
	Damage       float64 `yaml:"damage"`
	Cooldown     float64 `yaml:"cooldown"`
}

type FlyerConfig struct {
	Altitude        float64 `yaml:"altitude"`
	BobAmplitude    float64 `yaml:"bob_amplitude"`
	BobRate         float64 `yaml:"bob_rate"`
	Speed           float64 `yaml:"speed"`
	MinRange        float64 `yaml:"min_range"`
	MaxRange        float64 `yaml:"max_range"`
	StrafeMin       float64 `yaml:"strafe_min"`
	StrafeMax       float64 `yaml:"strafe_max"`
	StrafeWeight    float64 `yaml:"strafe_weight"`
	BurstSize       int     `yaml:"burst_size"`
	BurstInterval   float64 `yaml:"burst_interval"`
	BurstCooldown   float64 `yaml:"burst_cooldown"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	Damage          float64 `yaml:"damage"`
	MissChance      float64 `yaml:"miss_chance"`
	Inaccuracy      float64 `yaml:"inaccuracy"`
	Reach           float64 `yaml:"reach"`
}

// Weights are the relative spawn odds of each archetype.
type Weights struct {
	Melee  float64 `yaml:"melee"`
	Ranged float64 `yaml:"ranged"`
	Swarm  float64 `yaml:"swarm"`
	Flyer  float64 `yaml:"flyer"`
}

type Config struct {
	Melee  MeleeConfig  `yaml:"melee"`
	Ranged RangedConfig `yaml:"ranged"`
	Swarm  SwarmConfig  `yaml:"swarm"`
	Flyer  FlyerConfig  `yaml:"flyer"`

	Weights Weights `yaml:"weights"`
	// TilesPerEnemy sets the population: one enemy per this many floor tiles.
	TilesPerEnemy int `yaml:"tiles_per_enemy"`
	// SpawnExclusion keeps enemies this many tiles away from the player spawn.
	SpawnExclusion int `yaml:"spawn_exclusion"`

	SeparationRadius float64 `yaml:"separation_radius"`
	SeparationPush   float64 `yaml:"separation_push"`
}

func DefaultConfig() Config {
	return Config{
		Melee: MeleeConfig{
			Speed:        1.2,
			StopDistance: 2,
			Range:        2.5,
			Margin:       0.5,
			Damage:       10,
			Period:       1.5,
			Swing:        0.5,
			StrikeAt:     0.3,
		},
		Ranged: RangedConfig{
			Speed:           1,
			MinRange:        10,
			MaxRange:        20,
			Cooldown:        2,
			ProjectileSpeed: 40,
			Damage:          5,
			SureMisses:      2,
			MissChance:      0.3,
			Inaccuracy:      0.3,
			Reach:           150,
		},
		Swarm: SwarmConfig{
			Speed:        3,
			StopDistance: 1,
			StrafeMin:    0.5,
			StrafeMax:    1.5,
			StrafeWeight: 0.6,
			Range:        1.5,
			Damage:       4,
			Cooldown:     0.8,
		},
		Flyer: FlyerConfig{
			Altitude:        3.5,
			BobAmplitude:    0.4,
			BobRate:         2,
			Speed:           2,
			MinRange:        8,
			MaxRange:        16,
			StrafeMin:       1,
			StrafeMax:       3,
			StrafeWeight:    0.6,
			BurstSize:       3,
			BurstInterval:   0.15,
			BurstCooldown:   3,
			ProjectileSpeed: 30,
			Damage:          4,
			MissChance:      0.3,
			Inaccuracy:      0.3,
			Reach:           150,
		},
		Weights:          Weights{Melee: 0.4, Ranged: 0.25, Swarm: 0.2, Flyer: 0.15},
		TilesPerEnemy:    15,
		SpawnExclusion:   3,
		SeparationRadius: 0.6,
		SeparationPush:   0.5,
	}
}
