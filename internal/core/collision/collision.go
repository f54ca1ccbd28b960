package collision

import (
	"math"

	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

// Block is what stops movement at a point.
type Block uint8

const (
	BlockNone Block = iota
	BlockWall
	BlockDoor
)

func (b Block) String() string {
	switch b {
	case BlockWall:
		return "wall"
	case BlockDoor:
		return "door"
	default:
		return "none"
	}
}

// DoorIndex answers whether a door occupies a cell and currently blocks it.
type DoorIndex interface {
	DoorBlocks(p level.Point) bool
}

// Field is the single blocking predicate shared by player movement, enemy
// movement and projectiles. It holds no state of its own, so repeated
// queries within a tick always agree.
type Field struct {
	grid  *level.Grid
	geo   level.Geometry
	doors DoorIndex
}

// New builds a field over a generated grid. doors may be nil.
func New(grid *level.Grid, geo level.Geometry, doors DoorIndex) *Field {
	return &Field{grid: grid, geo: geo, doors: doors}
}

func (f *Field) Geometry() level.Geometry { return f.geo }

// Blocked maps a world position to its cell and reports what blocks it.
// Cells outside the grid are walls.
func (f *Field) Blocked(x, z float64) (Block, bool) {
	if math.IsNaN(x) || math.IsNaN(z) {
		return BlockWall, true
	}
	return f.BlockedAt(f.geo.CellOf(x, z))
}

func (f *Field) BlockedAt(p level.Point) (Block, bool) {
	if !f.grid.IsFloor(p) {
		return BlockWall, true
	}
	if f.doors != nil && f.doors.DoorBlocks(p) {
		return BlockDoor, true
	}
	return BlockNone, false
}

// TileBox is the volume of the tile containing p, used to find the exact
// surface point a projectile struck.
func (f *Field) TileBox(p level.Point) physics.AABB {
	return f.geo.CellBox(p)
}

// Clear reports whether a straight segment crosses no blocked cell. The
// segment is sampled at a quarter tile, which cannot skip a whole tile.
func (f *Field) Clear(from, to physics.Vec3) bool {
	delta := to.Sub(from)
	dist := delta.Flat().Len()
	step := f.geo.TileSize / 4
	n := int(math.Ceil(dist / step))
	for i := 1; i <= n; i++ {
		p := from.AddScaled(delta, float64(i)/float64(n))
		if _, blocked := f.Blocked(p.X, p.Z); blocked {
			return false
		}
	}
	return true
}

// Move advances pos by delta one axis at a time so a body slides along a
// wall instead of stopping dead. radius keeps the body off the blocked cell.
func (f *Field) Move(pos, delta physics.Vec3, radius float64) physics.Vec3 {
	if delta.X != 0 {
		edge := pos.X + delta.X + math.Copysign(radius, delta.X)
		if _, blocked := f.Blocked(edge, pos.Z); !blocked {
			pos.X += delta.X
		}
	}
	if delta.Z != 0 {
		edge := pos.Z + delta.Z + math.Copysign(radius, delta.Z)
		if _, blocked := f.Blocked(pos.X, edge); !blocked {
			pos.Z += delta.Z
		}
	}
	return pos
}
