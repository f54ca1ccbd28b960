package combat

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/dungeoncore/internal/core/collision"
	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/npc"
	"github.com/zeusync/dungeoncore/internal/core/observability/log"
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

const dt = 1.0 / 60

func testRNG() *rand.Rand { return rand.New(rand.NewSource(3)) }

// room is a 10x10 grid with a one-tile wall ring. With tile size 5 the
// floor spans world x and z in [-20, 20].
func room() *collision.Field {
	g := level.NewGrid(10, 10)
	g.Fill(1, 1, 8, 8, level.Floor)
	g.Freeze()
	return collision.New(g, level.Geometry{Width: 10, Height: 10, TileSize: 5, WallHeight: 5}, nil)
}

type openField struct{ geo level.Geometry }

func (openField) Blocked(x, z float64) (collision.Block, bool) { return collision.BlockNone, false }
func (f openField) Geometry() level.Geometry                   { return f.geo }
func (f openField) TileBox(p level.Point) physics.AABB         { return f.geo.CellBox(p) }

type dummy struct {
	pos   physics.Vec3
	taken float64
}

func (d *dummy) Position() physics.Vec3 { return d.pos }
func (d *dummy) HitRadius() float64     { return 1 }
func (d *dummy) TakeDamage(amount float64) bool {
	d.taken += amount
	return d.taken >= 100
}

func newResolver() *Resolver {
	return NewResolver(DefaultConfig(), testRNG(), log.NewNop())
}

func TestProjectileExpiresWithinRangeBudget(t *testing.T) {
	r := newResolver()
	r.Emit(npc.Shot{Origin: physics.V3(0, 1, 0), Velocity: physics.V3(0, 0, 40), Damage: 5, Range: 100})

	limit := int(math.Ceil(100 / 40.0 / dt))
	f := openField{geo: level.Geometry{Width: 10, Height: 10, TileSize: 5}}
	ticks := 0
	for len(r.Projectiles()) > 0 {
		ticks++
		require.LessOrEqual(t, ticks, limit)
		r.Step(dt, OwnerEnemy, f, nil, nil)
	}
	assert.GreaterOrEqual(t, ticks, limit-1)
}

func TestWallImpactLandsOnSurface(t *testing.T) {
	r := newResolver()
	f := room()
	r.Fire(physics.V3(2.5, 2.5, 2.5), math.Pi/2, 0, Weapon{BulletSpeed: 80, Damage: 10})

	var rep Report
	for i := 0; i < 120 && len(r.Projectiles()) > 0; i++ {
		rep = r.Step(dt, OwnerPlayer, f, nil, nil)
	}
	require.Len(t, rep.Impacts, 1)
	imp := rep.Impacts[0]
	assert.Equal(t, collision.BlockWall, imp.Block)
	assert.Equal(t, OwnerPlayer, imp.Owner)
	assert.InDelta(t, -1, imp.Decal.Normal.X, 1e-9)
	assert.InDelta(t, 20-DefaultConfig().Decals.Lift, imp.Decal.Pos.X, 1e-6)
	assert.GreaterOrEqual(t, imp.Decal.Size, 0.3)
	assert.GreaterOrEqual(t, imp.Decal.Life, 15.0)
}

func TestPlayerBulletKillsEnemy(t *testing.T) {
	r := newResolver()
	f := room()
	cfg := npc.DefaultConfig()
	target := npc.New(9, npc.KindMelee, physics.V3(12, 0, 2.5), &cfg, testRNG())
	bystander := npc.New(10, npc.KindMelee, physics.V3(-12, 0, 2.5), &cfg, testRNG())
	enemies := []*npc.Enemy{target, bystander}

	r.Fire(physics.V3(2.5, 1.5, 2.5), math.Pi/2, 0, Weapon{BulletSpeed: 80, Damage: 10})
	var kills []Kill
	for i := 0; i < 60 && len(r.Projectiles()) > 0; i++ {
		kills = append(kills, r.Step(dt, OwnerPlayer, f, enemies, nil).Kills...)
	}
	require.Len(t, kills, 1)
	assert.Same(t, target, kills[0].Enemy)
	assert.Len(t, kills[0].Debris, len(target.Body.Parts))
	assert.Empty(t, r.Projectiles())
}

func TestWallResolvesBeforeEnemy(t *testing.T) {
	r := newResolver()
	f := room()
	cfg := npc.DefaultConfig()
	enemies := []*npc.Enemy{npc.New(1, npc.KindMelee, physics.V3(19.5, 0, 2.5), &cfg, testRNG())}

	r.Emit(npc.Shot{Origin: physics.V3(18, 1, 2.5), Velocity: physics.V3(60, 0, 0), Range: 100})
	r.projectiles[0].Owner = OwnerPlayer

	rep := r.Step(0.05, OwnerPlayer, f, enemies, nil)
	assert.Len(t, rep.Impacts, 1)
	assert.Empty(t, rep.Kills)
}

func TestLongStepCannotSkipThinWall(t *testing.T) {
	g := level.NewGrid(10, 10)
	g.Fill(1, 1, 8, 8, level.Floor)
	for y := 1; y < 9; y++ {
		g.Set(level.Point{X: 5, Y: y}, level.Wall)
	}
	g.Freeze()
	f := collision.New(g, level.Geometry{Width: 10, Height: 10, TileSize: 5, WallHeight: 5}, nil)

	cfg := npc.DefaultConfig()
	behind := npc.New(1, npc.KindMelee, physics.V3(7, 0, -12.5), &cfg, testRNG())

	r := newResolver()
	r.Emit(npc.Shot{Origin: physics.V3(-2, 1, -12.5), Velocity: physics.V3(100, 0, 0), Range: 100})
	r.projectiles[0].Owner = OwnerPlayer

	rep := r.Step(0.1, OwnerPlayer, f, []*npc.Enemy{behind}, nil)
	assert.Empty(t, rep.Kills, "the wall tile between shooter and enemy stops the bullet")
	require.Len(t, rep.Impacts, 1)
	assert.InDelta(t, -DefaultConfig().Decals.Lift, rep.Impacts[0].Decal.Pos.X, 1e-6)
	assert.Empty(t, r.Projectiles())
}

func TestEnemyBulletHitsPlayerOnly(t *testing.T) {
	r := newResolver()
	f := room()
	cfg := npc.DefaultConfig()
	enemies := []*npc.Enemy{npc.New(1, npc.KindMelee, physics.V3(6, 0, 2.5), &cfg, testRNG())}
	player := &dummy{pos: physics.V3(12, 1, 2.5)}

	r.Emit(npc.Shot{Owner: 4, Origin: physics.V3(2.5, 1, 2.5), Velocity: physics.V3(40, 0, 0), Damage: 5, Range: 150})
	var rep Report
	for i := 0; i < 60 && len(r.Projectiles()) > 0; i++ {
		step := r.Step(dt, OwnerEnemy, f, enemies, player)
		rep.PlayerHits += step.PlayerHits
		rep.Kills = append(rep.Kills, step.Kills...)
	}
	assert.Equal(t, 1, rep.PlayerHits)
	assert.Empty(t, rep.Kills)
	assert.Equal(t, 5.0, player.taken)
}

func TestStepLeavesOtherOwnerAlone(t *testing.T) {
	r := newResolver()
	r.Emit(npc.Shot{Origin: physics.V3(0, 1, 0), Velocity: physics.V3(0, 0, 10), Range: 100})
	r.Step(dt, OwnerPlayer, room(), nil, nil)
	require.Len(t, r.Projectiles(), 1)
	assert.Equal(t, physics.V3(0, 1, 0), r.Projectiles()[0].Pos)
}

func TestProjectileBelowFloorVanishes(t *testing.T) {
	r := newResolver()
	r.Emit(npc.Shot{Origin: physics.V3(0, 0.1, 0), Velocity: physics.V3(0, -30, 0), Range: 100})
	rep := r.Step(dt, OwnerEnemy, room(), nil, nil)
	assert.Empty(t, r.Projectiles())
	assert.Empty(t, rep.Impacts)
	assert.Zero(t, rep.Expired)
}

func TestDebrisFallsAndBounces(t *testing.T) {
	cfg := DefaultConfig().Debris
	d := Debris{Pos: physics.V3(0, 0.01, 0), Vel: physics.V3(2, -1, 0), Spin: physics.V3(1, 0, 0), Life: 4}

	require.True(t, d.Update(dt, &cfg))
	assert.Equal(t, 0.0, d.Pos.Y)
	assert.Greater(t, d.Vel.Y, 0.0, "bounced upward")
	assert.InDelta(t, (-1+cfg.Gravity*dt)*cfg.Bounce, d.Vel.Y, 1e-9)
	assert.InDelta(t, 2*cfg.Damping, d.Vel.X, 1e-9)
	assert.InDelta(t, cfg.Damping, d.Spin.X, 1e-9)

	d.Life = 0.5
	assert.InDelta(t, 0.5, d.Opacity(cfg.Fade), 1e-9)
	assert.False(t, d.Update(1, &cfg))
}

func TestDisassembleBurstsOutward(t *testing.T) {
	cfg := npc.DefaultConfig()
	dc := DefaultConfig().Debris
	e := npc.New(1, npc.KindSwarm, physics.V3(3, 0, 3), &cfg, testRNG())

	parts := Disassemble(e, physics.V3(100, 0, 0), &dc, testRNG())
	require.Len(t, parts, len(e.Body.Parts))
	for _, p := range parts {
		assert.Greater(t, p.Vel.Y, 0.0)
		assert.GreaterOrEqual(t, p.Life, dc.MinLife)
		assert.LessOrEqual(t, p.Life, dc.MaxLife)
	}

	all := UpdateDebris(parts, dc.MaxLife+0.1, &dc)
	assert.Empty(t, all)
}

func TestDecalsExpire(t *testing.T) {
	decals := []Decal{{Life: 0.5}, {Life: 20}}
	decals = UpdateDecals(decals, 1)
	require.Len(t, decals, 1)
	assert.Equal(t, 19.0, decals[0].Life)
	assert.Equal(t, 1.0, decals[0].Opacity(1))
}

func TestArsenalStats(t *testing.T) {
	a := NewArsenal(10, testRNG())
	require.Len(t, a.Weapons, 10)
	for _, w := range a.Weapons {
		assert.GreaterOrEqual(t, w.BulletSpeed, 60.0)
		assert.LessOrEqual(t, w.BulletSpeed, 100.0)
		assert.GreaterOrEqual(t, w.FirePeriod, 0.1)
		assert.LessOrEqual(t, w.FirePeriod, 0.55)
		assert.GreaterOrEqual(t, w.Damage, 10.0)
		assert.LessOrEqual(t, w.Damage, 15.0)
		assert.Greater(t, w.Sound.Pitch, w.Sound.Drop)
		assert.NotEmpty(t, w.Name)
	}
}

func TestArsenalRateLimit(t *testing.T) {
	a := NewArsenal(2, testRNG())
	w, ok := a.Trigger(1)
	require.True(t, ok)

	_, ok = a.Trigger(1 + w.FirePeriod/2)
	assert.False(t, ok)
	_, ok = a.Trigger(1 + w.FirePeriod + 1e-6)
	assert.True(t, ok)

	assert.False(t, a.Select(5))
	assert.False(t, a.Select(0), "already selected")
	assert.True(t, a.Select(1))
	assert.Equal(t, 1, a.Index())

	var empty Arsenal
	_, ok = empty.Trigger(0)
	assert.False(t, ok)
}

func TestEnemySounds(t *testing.T) {
	assert.NotZero(t, EnemySound(npc.KindRanged).Pitch)
	assert.NotZero(t, EnemySound(npc.KindFlyer).Pitch)
	assert.Zero(t, EnemySound(npc.KindMelee))
}
