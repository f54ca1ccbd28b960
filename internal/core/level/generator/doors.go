package generator

import (
	"github.com/zeusync/dungeoncore/internal/core/level"
)

// minDoorSpacing keeps doors from stacking up in the same corridor.
const minDoorSpacing = 3

func (b *builder) addDoor(cell level.Point, color level.Color) {
	b.data.Doors = append(b.data.Doors, level.DoorSite{Cell: cell, Color: color})
}

func (b *builder) doorAt(cell level.Point) bool {
	_, ok := b.data.DoorAt(cell)
	return ok
}

func (b *builder) tooCloseToDoor(cell level.Point) bool {
	for _, d := range b.data.Doors {
		if d.Cell.Manhattan(cell) < minDoorSpacing {
			return true
		}
	}
	return false
}

// passage reports whether cell is a one-wide choke: walls on two opposite
// sides and floor on the other two.
func passage(g *level.Grid, c level.Point) (level.Orientation, bool) {
	if !g.IsFloor(c) {
		return 0, false
	}
	n, s := g.IsFloor(c.Add(0, -1)), g.IsFloor(c.Add(0, 1))
	w, e := g.IsFloor(c.Add(-1, 0)), g.IsFloor(c.Add(1, 0))
	switch {
	case !w && !e && n && s:
		return level.Vertical, true
	case !n && !s && w && e:
		return level.Horizontal, true
	default:
		return 0, false
	}
}

// detectPassages scans the interior column by column and keeps every passage
// cell at least minDoorSpacing from the doors already chosen.
func (b *builder) detectPassages() {
	for x := 1; x < b.grid.Width()-1; x++ {
		for y := 1; y < b.grid.Height()-1; y++ {
			c := level.Point{X: x, Y: y}
			if _, ok := passage(b.grid, c); !ok || b.tooCloseToDoor(c) {
				continue
			}
			b.addDoor(c, level.Plain)
		}
	}
}

// orientDoors settles each door's orientation from the final grid. Doors
// outside a clean passage fall back to the axis with the fewest open sides.
func (b *builder) orientDoors() {
	for i := range b.data.Doors {
		c := b.data.Doors[i].Cell
		if o, ok := passage(b.grid, c); ok {
			b.data.Doors[i].Orientation = o
			continue
		}
		alongY := 0
		if b.grid.IsFloor(c.Add(0, -1)) {
			alongY++
		}
		if b.grid.IsFloor(c.Add(0, 1)) {
			alongY++
		}
		alongX := 0
		if b.grid.IsFloor(c.Add(-1, 0)) {
			alongX++
		}
		if b.grid.IsFloor(c.Add(1, 0)) {
			alongX++
		}
		if alongY > alongX {
			b.data.Doors[i].Orientation = level.Vertical
		} else {
			b.data.Doors[i].Orientation = level.Horizontal
		}
	}
}
