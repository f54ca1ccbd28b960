package generator

import (
	"github.com/zeusync/dungeoncore/internal/core/level"
)

// openingWidth is the number of wall cells knocked out between two quadrants.
const openingWidth = 2

// quadrant visiting order: NW, NE, SE, SW.
var quadrantWalk = []int{0, 1, 2, 3}

// buildQuadrant splits the grid into four rooms along a wall cross and opens
// a two-wide gap between consecutive quadrants. Every gap cell carries the
// same colored door; its key lies in the quadrant before it.
func buildQuadrant(b *builder) {
	w, h := b.grid.Width(), b.grid.Height()
	mx, my := w/2, h/2

	b.stampRoom(level.NewRoom(0, 1, 1, mx-1, my-1))
	b.stampRoom(level.NewRoom(1, mx+1, 1, w-mx-2, my-1))
	b.stampRoom(level.NewRoom(2, mx+1, my+1, w-mx-2, h-my-2))
	b.stampRoom(level.NewRoom(3, 1, my+1, mx-1, h-my-2))

	// NW-NE and SE-SW cut the vertical wall, NE-SE the horizontal one
	openings := [][]level.Point{
		b.opening(level.Point{X: mx, Y: 1}, 0, 1, my-1),
		b.opening(level.Point{X: mx + 1, Y: my}, 1, 0, w-mx-2),
		b.opening(level.Point{X: mx, Y: my + 1}, 0, 1, h-my-2),
	}
	for i, cells := range openings {
		a, c := quadrantWalk[i], quadrantWalk[i+1]
		level.Connect(b.rooms, a, c)
		for _, cell := range cells {
			b.grid.Set(cell, level.Floor)
		}
	}

	b.dressRooms(0)
	b.data.Spawn = b.rooms[0].Center()
	b.data.CriticalPath = append([]int(nil), quadrantWalk...)

	order := make(map[level.Point]int)
	gated := 0
	for i, cells := range openings {
		color := level.Plain
		if i < len(b.opts.KeyColors) {
			color = b.opts.KeyColors[i]
			gated++
		}
		for _, cell := range cells {
			if color != level.Plain {
				order[cell] = i
			}
			b.addDoor(cell, color)
		}
	}
	b.data.KeyColors = append([]level.Color(nil), b.opts.KeyColors[:gated]...)

	pl := b.newPlacer()
	for k := 0; k < gated; k++ {
		pl.blockDoorsFrom(order, k)
		color := b.data.KeyColors[k]
		cell := pl.place("key "+string(color), quadrantWalk[k])
		b.data.Keys = append(b.data.Keys, level.KeySite{Cell: cell, Color: color})
	}

	pl.flood(nil)
	last := quadrantWalk[len(quadrantWalk)-1]
	if b.opts.Switch {
		sw := pl.place("switch", last)
		b.data.Switch = &sw
	}
	b.data.Exit = pl.place("exit", last)
}

// opening picks openingWidth consecutive cells along a wall segment that
// starts at origin, runs along (dx, dy) and spans length cells.
func (b *builder) opening(origin level.Point, dx, dy, length int) []level.Point {
	offset := randRange(b.rng, 1, max(length-openingWidth-1, 1))
	cells := make([]level.Point, 0, openingWidth)
	for i := 0; i < openingWidth; i++ {
		cells = append(cells, origin.Add(dx*(offset+i), dy*(offset+i)))
	}
	return cells
}
