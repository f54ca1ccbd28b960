package combat

import (
	"math"
	"math/rand"

	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

// Decal marks a projectile impact on a surface.
type Decal struct {
	Pos    physics.Vec3
	Normal physics.Vec3
	Size   float64
	// Spin is the roll of the mark around its normal.
	Spin float64
	Life float64
}

func newDecal(point, normal physics.Vec3, cfg *DecalConfig, rng *rand.Rand) Decal {
	return Decal{
		Pos:    point.AddScaled(normal, cfg.Lift),
		Normal: normal,
		Size:   randRange(rng, cfg.MinSize, cfg.MaxSize),
		Spin:   rng.Float64() * 2 * math.Pi,
		Life:   randRange(rng, cfg.MinLife, cfg.MaxLife),
	}
}

// Opacity fades linearly to zero over the last fade seconds of life.
func (d Decal) Opacity(fade float64) float64 {
	return fadeOut(d.Life, fade)
}

// UpdateDecals ages every decal and drops the expired ones in place.
func UpdateDecals(decals []Decal, dt float64) []Decal {
	kept := decals[:0]
	for _, d := range decals {
		d.Life -= dt
		if d.Life > 0 {
			kept = append(kept, d)
		}
	}
	return kept
}

func fadeOut(life, fade float64) float64 {
	if fade <= 0 || life >= fade {
		return 1
	}
	return max(0, life/fade)
}
