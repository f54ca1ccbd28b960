package generator

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/pkg/sequence"
)

// farthestRoom runs a BFS over room adjacency and returns the last room
// dequeued, which sits at the greatest hop distance from start.
func farthestRoom(rooms []level.Room, start int) int {
	visited := mapset.New[int]()
	visited.Put(start)
	queue := sequence.NewQueue[int](len(rooms))
	queue.Push(start)

	last := start
	for !queue.IsEmpty() {
		cur, _ := queue.Pop()
		last = cur
		for _, n := range sortedNeighbors(rooms[cur]) {
			if visited.Has(n) {
				continue
			}
			visited.Put(n)
			queue.Push(n)
		}
	}
	return last
}

// roomPath recovers the shortest room walk from start to end, both
// inclusive. It returns nil when end is unreachable.
func roomPath(rooms []level.Room, start, end int) []int {
	parent := map[int]int{start: start}
	queue := sequence.NewQueue[int](len(rooms))
	queue.Push(start)

	for !queue.IsEmpty() {
		cur, _ := queue.Pop()
		if cur == end {
			path := []int{cur}
			for cur != start {
				cur = parent[cur]
				path = append(path, cur)
			}
			slices.Reverse(path)
			return path
		}
		for _, n := range sortedNeighbors(rooms[cur]) {
			if _, seen := parent[n]; seen {
				continue
			}
			parent[n] = cur
			queue.Push(n)
		}
	}
	return nil
}

// criticalPath is the longest shortest walk from start: the first BFS finds
// the farthest room, the second recovers the route to it.
func criticalPath(rooms []level.Room, start int) []int {
	return roomPath(rooms, start, farthestRoom(rooms, start))
}

// sortedNeighbors fixes the visiting order so a seed always yields the same path.
func sortedNeighbors(r level.Room) []int {
	out := make([]int, 0, r.Neighbors.Size())
	r.Neighbors.Each(func(n int) { out = append(out, n) })
	slices.Sort(out)
	return out
}
