package level

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/zeusync/dungeoncore/pkg/generic"
	"github.com/zeusync/dungeoncore/pkg/sequence"
)

// frontiers recycles BFS queues; generation floods the grid many times per
// level and levels are built concurrently.
var frontiers = generic.NewPool(
	func() *sequence.Queue[Point] { return sequence.NewQueue[Point](64) },
	(*sequence.Queue[Point]).Reset,
)

// FloodFill returns every floor cell 4-connected to start. Cells for which
// blocked returns true are never entered; nil blocks nothing. A start cell
// that is a wall yields an empty set.
func FloodFill(g *Grid, start Point, blocked func(Point) bool) mapset.Set[Point] {
	visited := mapset.New[Point]()
	if !g.IsFloor(start) || (blocked != nil && blocked(start)) {
		return visited
	}

	return generic.With(frontiers, func(queue *sequence.Queue[Point]) mapset.Set[Point] {
		queue.Push(start)
		visited.Put(start)
		for !queue.IsEmpty() {
			cur, _ := queue.Pop()
			for _, n := range cur.Neighbors4() {
				if visited.Has(n) || !g.IsFloor(n) {
					continue
				}
				if blocked != nil && blocked(n) {
					continue
				}
				visited.Put(n)
				queue.Push(n)
			}
		}
		return visited
	})
}

// PathBFS returns the shortest 4-connected floor path from start to end,
// both inclusive, or nil when end cannot be reached.
func PathBFS(g *Grid, start, end Point, blocked func(Point) bool) []Point {
	if !g.IsFloor(end) {
		return nil
	}
	return PathTo(g, start, func(p Point) bool { return p == end }, blocked)
}

// PathTo returns the shortest 4-connected floor path from start to the
// nearest cell accepted by goal, both inclusive, or nil when none is reachable.
func PathTo(g *Grid, start Point, goal func(Point) bool, blocked func(Point) bool) []Point {
	if !g.IsFloor(start) {
		return nil
	}
	cameFrom := map[Point]Point{start: start}

	return generic.With(frontiers, func(queue *sequence.Queue[Point]) []Point {
		queue.Push(start)
		for !queue.IsEmpty() {
			cur, _ := queue.Pop()
			if goal(cur) {
				return unwind(cameFrom, start, cur)
			}
			for _, n := range cur.Neighbors4() {
				if _, seen := cameFrom[n]; seen || !g.IsFloor(n) {
					continue
				}
				if blocked != nil && blocked(n) {
					continue
				}
				cameFrom[n] = cur
				queue.Push(n)
			}
		}
		return nil
	})
}

// unwind follows cameFrom back from end and returns the path start first.
func unwind(cameFrom map[Point]Point, start, end Point) []Point {
	var path []Point
	for cur := end; cur != start; cur = cameFrom[cur] {
		path = append(path, cur)
	}
	path = append(path, start)
	slices.Reverse(path)
	return path
}
