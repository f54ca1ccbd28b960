package generator

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/zeusync/dungeoncore/internal/core/level"
)

// maxGateDoors bounds the doors one colored gate may take before its edge is
// given up.
const maxGateDoors = 12

// gate grows the door set starting at first until no room in beyond can be
// reached from spawn with those cells shut. Each bypass found gets a door on
// its corridor cell closest to the far side. It reports false when a bypass
// has no corridor cell left to close or the set grows past maxGateDoors.
func (b *builder) gate(first level.Point, beyond []int) ([]level.Point, bool) {
	idx := b.indexRooms()
	targets := mapset.New[int]()
	for _, id := range beyond {
		targets.Put(id)
	}
	shut := mapset.New[level.Point]()
	shut.Put(first)
	cells := []level.Point{first}

	behind := func(c level.Point) bool { return targets.Has(idx.at(c)) }
	for len(cells) <= maxGateDoors {
		path := level.PathTo(b.grid, b.data.Spawn, behind, shut.Has)
		if path == nil {
			return cells, true
		}
		cell, ok := b.bypassCell(path, idx)
		if !ok {
			return nil, false
		}
		shut.Put(cell)
		cells = append(cells, cell)
	}
	return nil, false
}

// bypassCell walks path back from its far end and returns the first corridor
// cell that can still take a door.
func (b *builder) bypassCell(path []level.Point, idx roomIndex) (level.Point, bool) {
	for i := len(path) - 2; i > 0; i-- {
		c := path[i]
		if idx.at(c) >= 0 || b.doorAt(c) {
			continue
		}
		return c, true
	}
	return level.Point{}, false
}
