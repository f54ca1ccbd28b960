package generator

import (
	"github.com/zeusync/dungeoncore/internal/core/level"
)

// placeRooms rejection-samples rectangles inside the border and stamps each
// accepted one as floor. It stops after ro.Attempts tries or ro.MaxRooms rooms.
func (b *builder) placeRooms(ro RoomOptions) {
	w, h := b.grid.Width(), b.grid.Height()
	for i := 0; i < ro.Attempts && len(b.rooms) < ro.MaxRooms; i++ {
		rw := randRange(b.rng, ro.MinSize, ro.MaxSize)
		rh := randRange(b.rng, ro.MinSize, ro.MaxSize)
		// one cell of border on every side
		x := 1 + b.rng.Intn(w-rw-1)
		y := 1 + b.rng.Intn(h-rh-1)

		candidate := level.NewRoom(len(b.rooms), x, y, rw, rh)
		failed := false
		for _, other := range b.rooms {
			if candidate.Overlaps(other, ro.Padding) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}
		b.stampRoom(candidate)
	}

	if len(b.rooms) == 0 {
		size := max(ro.MinSize, 4)
		r := level.NewRoom(0, (w-size)/2, (h-size)/2, size, size)
		b.log.Debug("no room accepted, stamping a central one")
		b.stampRoom(r)
	}
}

func (b *builder) stampRoom(r level.Room) {
	r.WallTheme = b.pickTheme(b.opts.WallThemes)
	r.FloorTheme = b.pickTheme(b.opts.FloorThemes)
	b.grid.Fill(r.X, r.Y, r.W, r.H, level.Floor)
	b.rooms = append(b.rooms, r)
}

// roomIndex maps each cell to the room covering it, -1 elsewhere.
type roomIndex struct {
	width int
	ids   []int
}

func (b *builder) indexRooms() roomIndex {
	idx := roomIndex{width: b.grid.Width(), ids: make([]int, b.grid.Width()*b.grid.Height())}
	for i := range idx.ids {
		idx.ids[i] = -1
	}
	for _, r := range b.rooms {
		for _, c := range r.Cells() {
			idx.ids[c.Y*idx.width+c.X] = r.ID
		}
	}
	return idx
}

func (ri roomIndex) at(p level.Point) int {
	i := p.Y*ri.width + p.X
	if p.X < 0 || p.Y < 0 || p.X >= ri.width || i >= len(ri.ids) {
		return -1
	}
	return ri.ids[i]
}

// carveL digs a one-wide L corridor between two cells, bending either
// horizontal-then-vertical or vertical-then-horizontal on a coin flip.
// The returned cells run from a to b without repeats.
func (b *builder) carveL(from, to level.Point) []level.Point {
	var path []level.Point
	step := func(p level.Point) {
		if len(path) > 0 && path[len(path)-1] == p {
			return
		}
		path = append(path, p)
	}
	walkX := func(y, x0, x1 int) {
		for x := x0; x != x1; x += sign(x1 - x0) {
			step(level.Point{X: x, Y: y})
		}
		step(level.Point{X: x1, Y: y})
	}
	walkY := func(x, y0, y1 int) {
		for y := y0; y != y1; y += sign(y1 - y0) {
			step(level.Point{X: x, Y: y})
		}
		step(level.Point{X: x, Y: y1})
	}

	if b.rng.Float64() > 0.5 {
		walkX(from.Y, from.X, to.X)
		walkY(to.X, from.Y, to.Y)
	} else {
		walkY(from.X, from.Y, to.Y)
		walkX(to.Y, from.X, to.X)
	}
	for _, p := range path {
		b.grid.Set(p, level.Floor)
	}
	return path
}

// connection is a corridor stretch linking two rooms. Cells run from room A
// to room B and never lie inside a room; rooms that touch have no cells.
type connection struct {
	A, B  int
	Cells []level.Point
}

// entry returns the corridor cell next to room id.
func (c connection) entry(id int) (level.Point, bool) {
	if len(c.Cells) == 0 {
		return level.Point{}, false
	}
	if id == c.B {
		return c.Cells[len(c.Cells)-1], true
	}
	return c.Cells[0], true
}

// splitConnections walks a carved corridor and records every room-to-room
// transition it makes, which is not always the pair it was dug for.
func splitConnections(path []level.Point, idx roomIndex) []connection {
	var (
		out     []connection
		current = -1
		stretch []level.Point
	)
	for _, p := range path {
		id := idx.at(p)
		if id < 0 {
			if current >= 0 {
				stretch = append(stretch, p)
			}
			continue
		}
		if current >= 0 && id != current {
			out = append(out, connection{A: current, B: id, Cells: stretch})
		}
		current = id
		stretch = nil
	}
	return out
}

// roomGraph keeps one connection per unordered room pair and mirrors every
// edge into the rooms' neighbour sets.
type roomGraph struct {
	edges map[[2]int]connection
}

func newRoomGraph() *roomGraph {
	return &roomGraph{edges: make(map[[2]int]connection)}
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func (g *roomGraph) add(rooms []level.Room, c connection) {
	if c.A == c.B {
		return
	}
	key := pairKey(c.A, c.B)
	if existing, ok := g.edges[key]; ok && len(existing.Cells) > 0 {
		return
	}
	g.edges[key] = c
	level.Connect(rooms, c.A, c.B)
}

func (g *roomGraph) between(a, b int) (connection, bool) {
	c, ok := g.edges[pairKey(a, b)]
	return c, ok
}

// connectRooms digs corridors between successive rooms plus extra loops and
// returns the resulting adjacency graph.
func (b *builder) connectRooms(extra int) *roomGraph {
	var paths [][]level.Point
	for i := 0; i+1 < len(b.rooms); i++ {
		paths = append(paths, b.carveL(b.rooms[i].Center(), b.rooms[i+1].Center()))
	}
	if len(b.rooms) > 2 {
		for i := 0; i < extra; i++ {
			a := b.rng.Intn(len(b.rooms))
			c := b.rng.Intn(len(b.rooms))
			if a == c || a+1 == c || c+1 == a {
				continue
			}
			paths = append(paths, b.carveL(b.rooms[a].Center(), b.rooms[c].Center()))
		}
	}

	idx := b.indexRooms()
	graph := newRoomGraph()
	for _, p := range paths {
		for _, c := range splitConnections(p, idx) {
			graph.add(b.rooms, c)
		}
	}
	return graph
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
