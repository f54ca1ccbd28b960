package level

import "fmt"

// Orientation tells which passage a door blocks. A Vertical door sits in a
// corridor running along Y (walls left and right); a Horizontal door sits in
// one running along X.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Color names a key/door pair. The empty color marks a plain door.
type Color string

const Plain Color = ""

// DefaultKeyColors is the palette used when a config does not list one.
var DefaultKeyColors = []Color{"red", "green", "blue", "yellow"}

type DoorSite struct {
	Cell        Point
	Orientation Orientation
	Color       Color
}

type KeySite struct {
	Cell  Point
	Color Color
}

// Warning records an item that could not be placed on a tile proven
// reachable from spawn.
type Warning struct {
	Item    string
	Room    int
	Cell    Point
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s in room %d at %s: %s", w.Item, w.Room, w.Cell, w.Message)
}
