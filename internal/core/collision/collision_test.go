package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

type doorSet map[level.Point]bool

func (d doorSet) DoorBlocks(p level.Point) bool { return d[p] }

func testField(doors DoorIndex) (*Field, level.Geometry) {
	geo := level.Geometry{Width: 10, Height: 10, TileSize: 5, WallHeight: 5}
	g := level.NewGrid(10, 10)
	g.Fill(1, 1, 8, 1, level.Floor)
	g.Freeze()
	return New(g, geo, doors), geo
}

func TestBlockedClassifiesCells(t *testing.T) {
	doors := doorSet{{X: 4, Y: 1}: true, {X: 6, Y: 1}: false}
	f, geo := testField(doors)

	tests := []struct {
		name string
		cell level.Point
		want Block
	}{
		{"floor", level.Point{X: 2, Y: 1}, BlockNone},
		{"wall", level.Point{X: 2, Y: 2}, BlockWall},
		{"closed door", level.Point{X: 4, Y: 1}, BlockDoor},
		{"open door", level.Point{X: 6, Y: 1}, BlockNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := geo.CellCenter(tt.cell, 0)
			got, blocked := f.Blocked(c.X, c.Z)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != BlockNone, blocked)
		})
	}
}

func TestOutOfRangeIsWall(t *testing.T) {
	f, _ := testField(nil)
	for _, pos := range [][2]float64{{-1000, 0}, {0, 1000}, {25.1, 0}, {-25.1, -25.1}} {
		kind, blocked := f.Blocked(pos[0], pos[1])
		assert.True(t, blocked)
		assert.Equal(t, BlockWall, kind)
	}
}

func TestBlockedIsIdempotent(t *testing.T) {
	f, _ := testField(doorSet{{X: 4, Y: 1}: true})
	for x := -30.0; x < 30; x += 0.7 {
		for z := -30.0; z < 30; z += 0.7 {
			k1, b1 := f.Blocked(x, z)
			k2, b2 := f.Blocked(x, z)
			assert.Equal(t, k1, k2)
			assert.Equal(t, b1, b2)
		}
	}
}

func TestClearLineOfSight(t *testing.T) {
	f, geo := testField(doorSet{{X: 5, Y: 1}: true})
	a := geo.CellCenter(level.Point{X: 1, Y: 1}, 2)
	b := geo.CellCenter(level.Point{X: 4, Y: 1}, 2)
	c := geo.CellCenter(level.Point{X: 7, Y: 1}, 2)

	assert.True(t, f.Clear(a, b))
	assert.False(t, f.Clear(a, c), "closed door blocks sight")
	assert.False(t, f.Clear(a, geo.CellCenter(level.Point{X: 1, Y: 3}, 2)))
}

func TestMoveSlidesAlongWalls(t *testing.T) {
	f, geo := testField(nil)
	start := geo.CellCenter(level.Point{X: 2, Y: 1}, 0)

	// pushing diagonally into the wall keeps the free axis
	got := f.Move(start, physics.V3(1, 0, 3), 0.4)
	assert.InDelta(t, start.X+1, got.X, 1e-9)
	assert.InDelta(t, start.Z, got.Z, 1e-9)
}
