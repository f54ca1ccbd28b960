package combat

import (
	"math"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"github.com/zeusync/dungeoncore/internal/core/collision"
	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/npc"
	"github.com/zeusync/dungeoncore/internal/core/observability/log"
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

// rangeSlack absorbs float drift when comparing travel with the budget.
const rangeSlack = 1e-9

// Field is the collision surface projectiles test against.
type Field interface {
	Blocked(x, z float64) (collision.Block, bool)
	Geometry() level.Geometry
	TileBox(p level.Point) physics.AABB
}

// Target is the player as seen by enemy bullets.
type Target interface {
	Position() physics.Vec3
	HitRadius() float64
	TakeDamage(amount float64) bool
}

// Impact is a projectile stopped by a wall or a door.
type Impact struct {
	Decal Decal
	Owner Owner
	Block collision.Block
}

// Kill is an enemy destroyed by a player bullet.
type Kill struct {
	Enemy    *npc.Enemy
	Velocity physics.Vec3
	Debris   []Debris
}

// Report collects what one Step resolved.
type Report struct {
	Impacts      []Impact
	Kills        []Kill
	PlayerHits   int
	PlayerDamage float64
	PlayerKilled bool
	Expired      int
}

// Resolver owns every projectile in flight and settles their fate each
// tick: wall or door first, then enemies, then the player, then range.
type Resolver struct {
	cfg    Config
	rng    *rand.Rand
	logger log.Log

	nextID      int
	projectiles []*Projectile
}

var _ npc.Emitter = (*Resolver)(nil)

func NewResolver(cfg Config, rng *rand.Rand, logger log.Log) *Resolver {
	return &Resolver{cfg: cfg, rng: rng, logger: logger.Named("combat")}
}

func (r *Resolver) Config() *Config { return &r.cfg }

func (r *Resolver) Projectiles() []*Projectile { return r.projectiles }

// Reset drops every projectile in flight.
func (r *Resolver) Reset() {
	r.projectiles = r.projectiles[:0]
}

func (r *Resolver) add(p *Projectile) *Projectile {
	r.nextID++
	p.ID = r.nextID
	r.projectiles = append(r.projectiles, p)
	return p
}

// Emit launches an enemy shot.
func (r *Resolver) Emit(s npc.Shot) {
	r.add(&Projectile{
		Owner:   OwnerEnemy,
		Shooter: s.Owner,
		Pos:     s.Origin,
		Vel:     s.Velocity,
		Damage:  s.Damage,
		Range:   s.Range,
	})
}

// Fire launches a player bullet from just below and right of the eye along
// the view direction.
func (r *Resolver) Fire(eye physics.Vec3, yaw, pitch float64, w Weapon) *Projectile {
	forward := physics.Direction(yaw, pitch)
	right := physics.Right(yaw)
	up := right.Cross(forward)
	off := r.cfg.MuzzleOffset

	origin := eye.
		Add(right.Scale(off[0])).
		Add(up.Scale(off[1])).
		Add(forward.Scale(off[2]))
	return r.add(&Projectile{
		Owner:  OwnerPlayer,
		Pos:    origin,
		Vel:    forward.Scale(w.BulletSpeed),
		Damage: w.Damage,
		Range:  r.cfg.PlayerRange,
	})
}

// Step advances every projectile of one owner by dt. Each projectile
// resolves at most one outcome per call. Enemies killed here are reported,
// not removed; the caller owns the enemy list.
func (r *Resolver) Step(dt float64, owner Owner, f Field, enemies []*npc.Enemy, player Target) Report {
	var rep Report
	dead := mapset.New[*npc.Enemy]()

	kept := r.projectiles[:0]
	for _, p := range r.projectiles {
		if p.Owner != owner || !r.advance(p, dt, f, enemies, player, dead, &rep) {
			kept = append(kept, p)
		}
	}
	clear(r.projectiles[len(kept):])
	r.projectiles = kept
	return rep
}

// advance moves one projectile and reports whether it is finished.
func (r *Resolver) advance(p *Projectile, dt float64, f Field, enemies []*npc.Enemy, player Target, dead mapset.Set[*npc.Enemy], rep *Report) bool {
	prev := p.Pos
	move := p.Vel.Scale(dt)
	p.Pos = p.Pos.Add(move)
	p.Travelled += move.Len()

	if at, block, hit := firstBlock(prev, p.Pos, f); hit {
		p.Pos = at
		rep.Impacts = append(rep.Impacts, Impact{
			Decal: r.impact(prev, p, f),
			Owner: p.Owner,
			Block: block,
		})
		return true
	}
	if p.Pos.Y < 0 {
		return true
	}

	switch p.Owner {
	case OwnerPlayer:
		if e := firstEnemyHit(prev, p.Pos, enemies, dead); e != nil {
			dead.Put(e)
			rep.Kills = append(rep.Kills, Kill{
				Enemy:    e,
				Velocity: p.Vel,
				Debris:   Disassemble(e, p.Vel, &r.cfg.Debris, r.rng),
			})
			r.logger.Debug("enemy destroyed", log.Int("enemy", e.ID), log.Stringer("kind", e.Kind()))
			return true
		}
	case OwnerEnemy:
		if player != nil {
			body := physics.Sphere{Center: player.Position(), Radius: player.HitRadius()}
			if body.Segment(prev, p.Pos) {
				rep.PlayerHits++
				rep.PlayerDamage += p.Damage
				if player.TakeDamage(p.Damage) {
					rep.PlayerKilled = true
				}
				return true
			}
		}
	}

	if p.Travelled >= p.Range-rangeSlack {
		rep.Expired++
		return true
	}
	return false
}

// firstBlock samples the segment a-b at most half a tile apart and returns
// the first sample that lands in a blocking cell.
func firstBlock(a, b physics.Vec3, f Field) (physics.Vec3, collision.Block, bool) {
	seg := b.Sub(a)
	steps := 1
	if half := f.Geometry().TileSize / 2; half > 0 {
		steps = max(1, int(math.Ceil(seg.Flat().Len()/half)))
	}
	for i := 1; i <= steps; i++ {
		at := a.AddScaled(seg, float64(i)/float64(steps))
		if block, hit := f.Blocked(at.X, at.Z); hit {
			return at, block, true
		}
	}
	return b, collision.BlockNone, false
}

// impact finds where the segment from prev entered the blocking tile. If
// the segment never touches that tile's box the end point stands in.
func (r *Resolver) impact(prev physics.Vec3, p *Projectile, f Field) Decal {
	box := f.TileBox(f.Geometry().CellOf(p.Pos.X, p.Pos.Z))
	seg := p.Pos.Sub(prev)
	point, normal := p.Pos, physics.DominantAxisNormal(p.Vel)
	if l := seg.Len(); l > 0 {
		if hit, ok := physics.RayAABB(prev, seg.Scale(1/l), l, box); ok {
			point, normal = hit.Point, hit.Normal
		}
	}
	return newDecal(point, normal, &r.cfg.Decals, r.rng)
}

// firstEnemyHit returns the live enemy whose volume the segment crosses
// closest to its start.
func firstEnemyHit(from, to physics.Vec3, enemies []*npc.Enemy, dead mapset.Set[*npc.Enemy]) *npc.Enemy {
	var (
		best     *npc.Enemy
		bestDist float64
	)
	for _, e := range enemies {
		if dead.Has(e) || !e.Volume().Segment(from, to) {
			continue
		}
		if d := physics.FlatDistance(from, e.Pos); best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}
