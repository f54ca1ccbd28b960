package generator

import (
	"slices"

	"github.com/zeusync/dungeoncore/internal/core/level"
	"github.com/zeusync/dungeoncore/internal/core/observability/log"
)

// buildCriticalPath gates the longest room walk from spawn with colored
// doors, in walk order, and drops each key where it can be reached with that
// door and every later one still shut. A gate closes every corridor that
// bypasses its edge, so the rooms past it stay shut until the key is found.
func buildCriticalPath(b *builder) {
	const spawnRoom = 0

	b.placeRooms(b.roomOptions(criticalPathRooms))
	graph := b.connectRooms(b.opts.ExtraCorridors)
	b.dressRooms(spawnRoom)
	b.data.Spawn = b.rooms[spawnRoom].Center()

	path := criticalPath(b.rooms, spawnRoom)
	b.data.CriticalPath = path

	var (
		colors = b.opts.KeyColors
		order  = make(map[level.Point]int)
		gateAt []int
	)
	for i := 0; i+1 < len(path); i++ {
		conn, ok := graph.between(path[i], path[i+1])
		if !ok {
			continue
		}
		cell, ok := conn.entry(path[i+1])
		if !ok || b.doorAt(cell) {
			continue
		}
		if k := len(gateAt); k < len(colors) {
			if cut, ok := b.gate(cell, path[i+1:]); ok {
				for _, c := range cut {
					order[c] = k
					b.addDoor(c, colors[k])
				}
				gateAt = append(gateAt, i)
				continue
			}
			b.log.Debug("edge cannot be gated", log.Int("from", path[i]), log.Int("to", path[i+1]))
		}
		b.addDoor(cell, level.Plain)
	}
	b.data.KeyColors = slices.Clone(colors[:len(gateAt)])

	// plain doors on every other connection, in a stable order
	keys := make([][2]int, 0, len(graph.edges))
	for k := range graph.edges {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(x, y [2]int) int {
		if x[0] != y[0] {
			return x[0] - y[0]
		}
		return x[1] - y[1]
	})
	for _, k := range keys {
		conn := graph.edges[k]
		cell, ok := conn.entry(conn.B)
		if !ok || b.doorAt(cell) || b.tooCloseToDoor(cell) {
			continue
		}
		b.addDoor(cell, level.Plain)
	}

	pl := b.newPlacer()
	for k, edge := range gateAt {
		pl.blockDoorsFrom(order, k)
		color := b.data.KeyColors[k]
		cell := pl.place("key "+string(color), path[:edge+1]...)
		b.data.Keys = append(b.data.Keys, level.KeySite{Cell: cell, Color: color})
	}

	pl.flood(nil)
	terminal := path[len(path)-1]
	if b.opts.Switch {
		sw := pl.place("switch", terminal)
		b.data.Switch = &sw
	}
	b.data.Exit = pl.place("exit", terminal)
}
