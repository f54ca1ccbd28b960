package generator

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/pkg/sequence"
)

// placer hands out item cells among tiles proven reachable from spawn.
// Reachability is recomputed whenever the blocking predicate changes.
type placer struct {
	b       *builder
	idx     roomIndex
	used    mapset.Set[level.Point]
	reached mapset.Set[level.Point]
	buckets map[int][]level.Point
}

func (b *builder) newPlacer() *placer {
	p := &placer{b: b, idx: b.indexRooms(), used: mapset.New[level.Point]()}
	p.used.Put(b.data.Spawn)
	for _, d := range b.data.Doors {
		p.used.Put(d.Cell)
	}
	p.flood(nil)
	return p
}

// flood recomputes reachability from spawn and buckets the result by room.
func (p *placer) flood(blocked func(level.Point) bool) {
	p.reached = level.FloodFill(p.b.grid, p.b.data.Spawn, blocked)
	p.buckets = make(map[int][]level.Point)
	// row-major walk keeps bucket order independent of set iteration
	for _, c := range p.b.grid.FloorTiles() {
		if !p.reached.Has(c) {
			continue
		}
		if id := p.idx.at(c); id >= 0 {
			p.buckets[id] = append(p.buckets[id], c)
		}
	}
}

// blockDoorsFrom closes every colored door whose order is at least k.
func (p *placer) blockDoorsFrom(order map[level.Point]int, k int) {
	p.flood(func(c level.Point) bool {
		i, ok := order[c]
		return ok && i >= k
	})
}

func (p *placer) free(c level.Point) bool {
	return p.b.grid.IsFloor(c) && !p.used.Has(c)
}

// place picks a reachable free cell in one of the preferred rooms. If none
// has one it searches outward from the first room's centre; if that fails
// too it records a warning and settles for the nearest free floor cell.
func (p *placer) place(item string, rooms ...int) level.Point {
	var pool []level.Point
	for _, id := range rooms {
		for _, c := range p.buckets[id] {
			if p.free(c) {
				pool = append(pool, c)
			}
		}
	}
	if len(pool) > 0 {
		c := pool[p.b.rng.Intn(len(pool))]
		p.used.Put(c)
		return c
	}

	origin, room := p.b.data.Spawn, -1
	if len(rooms) > 0 {
		room = rooms[0]
		origin = p.b.rooms[room].Center()
	}
	if c, ok := p.nearest(origin, func(c level.Point) bool { return p.reached.Has(c) }); ok {
		p.used.Put(c)
		return c
	}

	c, ok := p.nearest(origin, nil)
	if !ok {
		c = origin
	}
	p.used.Put(c)
	p.b.warn(level.Warning{
		Item:    item,
		Room:    room,
		Cell:    c,
		Message: "no reachable tile left, placed on nearest open floor",
	})
	return c
}

// nearest expands outward from origin by Manhattan distance across the whole
// grid and returns the first free floor cell accepted by want.
func (p *placer) nearest(origin level.Point, want func(level.Point) bool) (level.Point, bool) {
	g := p.b.grid
	seen := mapset.New[level.Point]()
	pq := sequence.NewPriorityQueue[level.Point]()
	pq.Enqueue(origin, 0)
	seen.Put(origin)

	for !pq.IsEmpty() {
		c, _ := pq.Dequeue()
		if p.free(c) && (want == nil || want(c)) {
			return c, true
		}
		for _, n := range c.Neighbors4() {
			if !g.InBounds(n) || seen.Has(n) {
				continue
			}
			seen.Put(n)
			pq.Enqueue(n, n.Manhattan(origin))
		}
	}
	return level.Point{}, false
}
