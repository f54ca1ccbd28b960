package generator

import (
	"github.com/zeusync/dungeoncore/internal/core/level"
)

// finish orients doors, validates the result and freezes the grid. Failed
// checks become warnings; the level is still handed out.
func (b *builder) finish() {
	b.orientDoors()

	if !b.grid.BorderIsWall() {
		b.grid.SealBorder()
		b.warn(level.Warning{Item: "grid", Room: -1, Message: "floor reached the border and was sealed"})
	}

	b.data.Grid = b.grid
	b.data.Rooms = b.rooms

	res := b.data.Solve()
	b.data.Solvable = res.Solvable() && len(res.KeyOrder) == len(b.data.Keys)
	if !res.ExitReachable {
		b.warn(level.Warning{Item: "exit", Room: -1, Cell: b.data.Exit, Message: "exit unreachable from spawn"})
	}
	if !res.SwitchReachable {
		b.warn(level.Warning{Item: "switch", Room: -1, Cell: *b.data.Switch, Message: "switch unreachable from spawn"})
	}
	if len(res.KeyOrder) < len(b.data.Keys) {
		b.warn(level.Warning{Item: "keys", Room: -1, Message: "not every key can be collected"})
	}

	b.grid.Freeze()
}
