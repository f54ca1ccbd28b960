package level

import "github.com/zyedidia/generic/mapset"

// Data is everything one generation pass produces. It is created once and
// discarded wholesale when a new level is requested.
type Data struct {
	Strategy string
	Seed     int64
	Geometry Geometry

	Grid      *Grid
	Rooms     []Room
	Doors     []DoorSite
	Keys      []KeySite
	KeyColors []Color
	Switch    *Point
	Exit      Point
	Spawn     Point

	// CriticalPath lists room ids from the spawn room to the exit room.
	CriticalPath []int
	Warnings     []Warning
	Solvable     bool
}

// RoomAt returns the id of the room containing p.
func (d *Data) RoomAt(p Point) (int, bool) {
	for _, r := range d.Rooms {
		if r.Contains(p) {
			return r.ID, true
		}
	}
	return -1, false
}

// DoorAt returns the index of the door occupying p.
func (d *Data) DoorAt(p Point) (int, bool) {
	for i, door := range d.Doors {
		if door.Cell == p {
			return i, true
		}
	}
	return -1, false
}

// Reachability is the outcome of replaying the level with a player that
// picks up every key it can reach and opens every door it holds a key for.
type Reachability struct {
	Reached         mapset.Set[Point]
	KeyOrder        []Color
	SwitchReachable bool
	ExitReachable   bool
}

// Solvable reports whether the exit can be reached and, when the level has
// a switch, whether the switch can be activated first.
func (r Reachability) Solvable() bool {
	return r.ExitReachable && r.SwitchReachable
}

// Solve floods from spawn treating colored doors as walls until their key
// has been reached, repeating until no new key turns up. Plain doors never
// block since the player can always open them.
func (d *Data) Solve() Reachability {
	collected := make(map[Color]bool)
	colored := make(map[Point]Color)
	for _, door := range d.Doors {
		if door.Color != Plain {
			colored[door.Cell] = door.Color
		}
	}

	var (
		reached mapset.Set[Point]
		order   []Color
	)
	for {
		reached = FloodFill(d.Grid, d.Spawn, func(p Point) bool {
			c, ok := colored[p]
			return ok && !collected[c]
		})
		progress := false
		for _, k := range d.Keys {
			if !collected[k.Color] && reached.Has(k.Cell) {
				collected[k.Color] = true
				order = append(order, k.Color)
				progress = true
			}
		}
		if !progress {
			break
		}
	}

	res := Reachability{
		Reached:         reached,
		KeyOrder:        order,
		SwitchReachable: true,
		ExitReachable:   reached.Has(d.Exit),
	}
	if d.Switch != nil {
		res.SwitchReachable = reached.Has(*d.Switch)
	}
	return res
}
