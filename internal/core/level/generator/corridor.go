package generator

import (
	"slices"

	"github.com/zeusync/dungeoncore/internal/core/level"
)

// buildCorridor is the plain layout: rooms chained by L corridors, doors on
// every detected passage, nothing colored. Keys, switch and exit go only on
// tiles a flood from spawn can reach.
func buildCorridor(b *builder) {
	const spawnRoom = 0

	b.placeRooms(b.roomOptions(corridorRooms))
	b.connectRooms(0)
	b.dressRooms(spawnRoom)
	b.data.Spawn = b.rooms[spawnRoom].Center()
	b.detectPassages()

	path := criticalPath(b.rooms, spawnRoom)
	b.data.CriticalPath = path
	b.data.KeyColors = slices.Clone(b.opts.KeyColors)

	others := make([]int, 0, len(b.rooms))
	for _, r := range b.rooms {
		if r.ID != spawnRoom {
			others = append(others, r.ID)
		}
	}
	if len(others) == 0 {
		others = append(others, spawnRoom)
	}

	pl := b.newPlacer()
	for _, color := range b.data.KeyColors {
		room := others[b.rng.Intn(len(others))]
		cell := pl.place("key "+string(color), room)
		b.data.Keys = append(b.data.Keys, level.KeySite{Cell: cell, Color: color})
	}

	terminal := path[len(path)-1]
	if b.opts.Switch {
		sw := pl.place("switch", others[b.rng.Intn(len(others))])
		b.data.Switch = &sw
	}
	b.data.Exit = pl.place("exit", terminal)
}
