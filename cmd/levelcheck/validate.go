package main

import (
	"fmt"

	"github.com/zeusync/dungeoncore/internal/core/level"
)

// validate replays a level the way a player would and returns why it
// cannot be finished, or "" when it can.
func validate(data *level.Data) string {
	if !data.Grid.BorderIsWall() {
		return "border is not sealed"
	}
	if !data.Grid.IsFloor(data.Spawn) {
		return fmt.Sprintf("spawn %s is not floor", data.Spawn)
	}
	res := data.Solve()
	switch {
	case !res.ExitReachable:
		return "exit unreachable"
	case !res.SwitchReachable:
		return "switch unreachable"
	case len(res.KeyOrder) < len(data.Keys):
		return fmt.Sprintf("%d of %d keys collectable", len(res.KeyOrder), len(data.Keys))
	}
	for i, d := range data.Doors {
		if !data.Grid.IsFloor(d.Cell) {
			return fmt.Sprintf("door %d at %s sits in a wall", i, d.Cell)
		}
	}
	return ""
}
