package level

import (
	"math"

	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

// Geometry maps between world coordinates and grid cells. The grid is
// centred on the world origin.
type Geometry struct {
	Width, Height int
	TileSize      float64
	WallHeight    float64
}

// CellOf floors (coord / tileSize) + dimension/2 on both axes.
func (g Geometry) CellOf(x, z float64) Point {
	return Point{
		X: int(math.Floor(x/g.TileSize + float64(g.Width)/2)),
		Y: int(math.Floor(z/g.TileSize + float64(g.Height)/2)),
	}
}

// CellCenter is the world position of the middle of p at height y.
func (g Geometry) CellCenter(p Point, y float64) physics.Vec3 {
	return physics.Vec3{
		X: (float64(p.X)-float64(g.Width)/2)*g.TileSize + g.TileSize/2,
		Y: y,
		Z: (float64(p.Y)-float64(g.Height)/2)*g.TileSize + g.TileSize/2,
	}
}

// CellBox is the bounding volume of a full-height tile.
func (g Geometry) CellBox(p Point) physics.AABB {
	minX := (float64(p.X) - float64(g.Width)/2) * g.TileSize
	minZ := (float64(p.Y) - float64(g.Height)/2) * g.TileSize
	return physics.AABB{
		Min: physics.Vec3{X: minX, Y: 0, Z: minZ},
		Max: physics.Vec3{X: minX + g.TileSize, Y: g.WallHeight, Z: minZ + g.TileSize},
	}
}
