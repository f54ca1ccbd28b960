package combat

// Config tunes projectiles and the cosmetic aftermath of hits.
type Config struct {
	// PlayerRange is the distance a player bullet may travel.
	PlayerRange float64 `yaml:"player_range"`
	// MuzzleOffset is where player bullets appear relative to the eye,
	// as right, up and forward components.
	MuzzleOffset [3]float64 `yaml:"muzzle_offset"`

	Debris DebrisConfig `yaml:"debris"`
	Decals DecalConfig  `yaml:"decals"`
}

type DebrisConfig struct {
	Gravity float64 `yaml:"gravity"`
	// Bounce scales vertical speed when a fragment hits the floor.
	Bounce  float64 `yaml:"bounce"`
	Damping float64 `yaml:"damping"`
	MinLife float64 `yaml:"min_life"`
	MaxLife float64 `yaml:"max_life"`
	Fade    float64 `yaml:"fade"`
	// Inherit is the share of the killing bullet's velocity every fragment
	// carries on top of its own burst.
	Inherit  float64 `yaml:"inherit"`
	MinBurst float64 `yaml:"min_burst"`
	MaxBurst float64 `yaml:"max_burst"`
}

type DecalConfig struct {
	MinLife float64 `yaml:"min_life"`
	MaxLife float64 `yaml:"max_life"`
	Fade    float64 `yaml:"fade"`
	MinSize float64 `yaml:"min_size"`
	MaxSize float64 `yaml:"max_size"`
	// Lift keeps the decal off the surface it marks.
	Lift float64 `yaml:"lift"`
}

func DefaultConfig() Config {
	return Config{
		PlayerRange:  100,
		MuzzleOffset: [3]float64{0.3, -0.3, 0.5},
		Debris: DebrisConfig{
			Gravity:  -15,
			Bounce:   -0.4,
			Damping:  0.8,
			MinLife:  3,
			MaxLife:  5,
			Fade:     1,
			Inherit:  0.05,
			MinBurst: 3,
			MaxBurst: 8,
		},
		Decals: DecalConfig{
			MinLife: 15,
			MaxLife: 25,
			Fade:    1,
			MinSize: 0.3,
			MaxSize: 0.7,
			Lift:    0.01,
		},
	}
}
