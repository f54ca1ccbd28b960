package generator

import (
	"github.com/zeusync/dungeoncore/internal/core/level"
)

// dressRooms gives every room except the spawn room an interior. Each change
// is checked against global connectivity and rolled back if it splits the
// floor.
func (b *builder) dressRooms(spawnRoom int) {
	for i := range b.rooms {
		r := &b.rooms[i]
		if r.ID == spawnRoom {
			r.Archetype = level.ArchetypeArena
			continue
		}
		if mazeCells(r.W) >= 2 && mazeCells(r.H) >= 2 && b.rng.Float64() < b.opts.MazeChance {
			if b.carveMaze(*r) {
				r.Archetype = level.ArchetypeMaze
				continue
			}
		}
		r.Archetype = level.ArchetypeArena
		b.scatterObstacles(*r)
	}
}

// connected reports whether every floor cell is reachable from any other.
func (b *builder) connected() bool {
	floor := b.grid.FloorTiles()
	if len(floor) == 0 {
		return false
	}
	return level.FloodFill(b.grid, floor[0], nil).Size() == len(floor)
}

// scatterObstacles drops single and double wall blocks into an arena,
// skipping the centre where corridors terminate.
func (b *builder) scatterObstacles(r level.Room) {
	count := int(float64(r.W*r.H) * b.opts.ObstacleDensity)
	center := r.Center()
	for i := 0; i < count; i++ {
		cells := []level.Point{{
			X: r.X + 1 + b.rng.Intn(max(r.W-2, 1)),
			Y: r.Y + 1 + b.rng.Intn(max(r.H-2, 1)),
		}}
		if b.rng.Intn(2) == 0 {
			next := cells[0].Add(1, 0)
			if b.rng.Intn(2) == 0 {
				next = cells[0].Add(0, 1)
			}
			if r.Contains(next) {
				cells = append(cells, next)
			}
		}

		ok := true
		for _, c := range cells {
			if c == center || !b.grid.IsFloor(c) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for _, c := range cells {
			b.grid.Set(c, level.Wall)
		}
		if !b.connected() {
			for _, c := range cells {
				b.grid.Set(c, level.Floor)
			}
		}
	}
}

// mazeCells is the number of coarse passage cells that fit along one side.
// Passages and walls are two tiles wide each.
func mazeCells(side int) int {
	return (side/2 + 1) / 2
}

// carveMaze replaces the room with a recursive backtracker maze run on a
// half-resolution lattice, then reconnects every corridor that ran into the
// room. It restores the room and reports false if the level would split.
func (b *builder) carveMaze(r level.Room) bool {
	before := b.grid.Clone()
	entrances := b.entrances(r)

	cols, rows := mazeCells(r.W), mazeCells(r.H)
	coarse := backtrack(cols*2-1, rows*2-1, b.rng)

	b.grid.Fill(r.X, r.Y, r.W, r.H, level.Wall)
	for cy := range coarse {
		for cx, open := range coarse[cy] {
			if open {
				b.grid.Fill(r.X+cx*2, r.Y+cy*2, 2, 2, level.Floor)
			}
		}
	}
	for _, e := range entrances {
		b.stitch(r, e)
	}

	if b.connected() {
		return true
	}
	b.grid = before
	return false
}

// entrances lists the room edge cells that have floor just outside.
func (b *builder) entrances(r level.Room) []level.Point {
	var out []level.Point
	for _, c := range r.Cells() {
		if c.X != r.X && c.X != r.X+r.W-1 && c.Y != r.Y && c.Y != r.Y+r.H-1 {
			continue
		}
		for _, n := range c.Neighbors4() {
			if !r.Contains(n) && b.grid.IsFloor(n) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// stitch carves an L from an entrance to the nearest maze floor cell.
func (b *builder) stitch(r level.Room, from level.Point) {
	if b.grid.IsFloor(from) {
		return
	}
	best, bestDist := from, -1
	for _, c := range r.Cells() {
		if c == from || !b.grid.IsFloor(c) {
			continue
		}
		if d := c.Manhattan(from); bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 {
		b.grid.Set(from, level.Floor)
		return
	}
	for x := from.X; x != best.X; x += sign(best.X - from.X) {
		b.grid.Set(level.Point{X: x, Y: from.Y}, level.Floor)
	}
	for y := from.Y; y != best.Y; y += sign(best.Y - from.Y) {
		b.grid.Set(level.Point{X: best.X, Y: y}, level.Floor)
	}
}

// backtrack carves a perfect maze on a w x h lattice whose even cells are
// rooms and odd cells the walls between them.
func backtrack(w, h int, rng interface{ Intn(int) int }) [][]bool {
	grid := make([][]bool, h)
	for i := range grid {
		grid[i] = make([]bool, w)
	}

	start := level.Point{}
	stack := []level.Point{start}
	grid[0][0] = true
	dirs := []level.Point{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 2, Y: 0}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		candidates := make([]level.Point, 0, 4)
		for _, d := range dirs {
			nx, ny := cur.X+d.X, cur.Y+d.Y
			if nx >= 0 && nx < w && ny >= 0 && ny < h && !grid[ny][nx] {
				candidates = append(candidates, d)
			}
		}
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := candidates[rng.Intn(len(candidates))]
		grid[cur.Y+d.Y/2][cur.X+d.X/2] = true
		next := level.Point{X: cur.X + d.X, Y: cur.Y + d.Y}
		grid[next.Y][next.X] = true
		stack = append(stack, next)
	}
	return grid
}
