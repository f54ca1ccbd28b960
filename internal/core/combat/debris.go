package combat

import (
	"math"
	"math/rand"

	"github.com/zeusync/dungeoncore/internal/core/npc"
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

// Debris is one body part flying free after its enemy died. It is purely
// cosmetic and never collides with anything but the floor.
type Debris struct {
	Part string
	Pos  physics.Vec3
	Vel  physics.Vec3
	// Rot accumulates Spin as Euler angles.
	Rot  physics.Vec3
	Spin physics.Vec3
	Size physics.Vec3
	Life float64
}

// Disassemble breaks an enemy into one fragment per body part. Each part
// keeps a share of the bullet's velocity plus a burst away from the body.
func Disassemble(e *npc.Enemy, impact physics.Vec3, cfg *DebrisConfig, rng *rand.Rand) []Debris {
	out := make([]Debris, 0, len(e.Body.Parts))
	for _, p := range e.Body.Parts {
		dir := physics.V3(rng.Float64()-0.5, rng.Float64()*0.5+0.2, rng.Float64()-0.5).Normalize()
		out = append(out, Debris{
			Part: p.Name,
			Pos:  e.PartPosition(p),
			Vel:  impact.Scale(cfg.Inherit).Add(dir.Scale(randRange(rng, cfg.MinBurst, cfg.MaxBurst))),
			Rot:  physics.Vec3{Y: e.Yaw},
			Spin: physics.V3(rng.Float64()-0.5, rng.Float64()-0.5, rng.Float64()-0.5).Scale(2 * math.Pi),
			Size: p.Size,
			Life: randRange(rng, cfg.MinLife, cfg.MaxLife),
		})
	}
	return out
}

// Update integrates one fragment and reports whether it is still alive.
func (d *Debris) Update(dt float64, cfg *DebrisConfig) bool {
	d.Life -= dt
	if d.Life <= 0 {
		return false
	}
	d.Vel.Y += cfg.Gravity * dt
	d.Pos = d.Pos.AddScaled(d.Vel, dt)
	d.Rot = d.Rot.AddScaled(d.Spin, dt)

	if d.Pos.Y < 0 {
		d.Pos.Y = 0
		d.Vel.Y *= cfg.Bounce
		d.Vel.X *= cfg.Damping
		d.Vel.Z *= cfg.Damping
		d.Spin = d.Spin.Scale(cfg.Damping)
	}
	return true
}

func (d Debris) Opacity(fade float64) float64 {
	return fadeOut(d.Life, fade)
}

// UpdateDebris advances every fragment and drops the expired ones in place.
func UpdateDebris(debris []Debris, dt float64, cfg *DebrisConfig) []Debris {
	kept := debris[:0]
	for i := range debris {
		if debris[i].Update(dt, cfg) {
			kept = append(kept, debris[i])
		}
	}
	return kept
}
