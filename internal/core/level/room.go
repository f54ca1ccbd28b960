package level

import "github.com/zyedidia/generic/mapset"

// Archetype selects how a room's interior is generated.
type Archetype uint8

const (
	ArchetypeArena Archetype = iota
	ArchetypeMaze
)

func (a Archetype) String() string {
	switch a {
	case ArchetypeArena:
		return "arena"
	case ArchetypeMaze:
		return "maze"
	default:
		return "unknown"
	}
}

// Room is a rectangular region of the grid. Themes are cosmetic tags handed
// to the geometry builder untouched.
type Room struct {
	ID         int
	X, Y       int
	W, H       int
	Archetype  Archetype
	WallTheme  string
	FloorTheme string
	Neighbors  mapset.Set[int]
}

func NewRoom(id, x, y, w, h int) Room {
	return Room{ID: id, X: x, Y: y, W: w, H: h, Neighbors: mapset.New[int]()}
}

func (r Room) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

func (r Room) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Overlaps reports whether the rooms come within pad cells of each other.
func (r Room) Overlaps(o Room, pad int) bool {
	return r.X-pad < o.X+o.W && r.X+r.W+pad > o.X &&
		r.Y-pad < o.Y+o.H && r.Y+r.H+pad > o.Y
}

// Cells lists every cell of the rectangle in row-major order.
func (r Room) Cells() []Point {
	out := make([]Point, 0, r.W*r.H)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			out = append(out, Point{x, y})
		}
	}
	return out
}

// Connect records an undirected adjacency edge.
func Connect(rooms []Room, a, b int) {
	if a == b {
		return
	}
	rooms[a].Neighbors.Put(b)
	rooms[b].Neighbors.Put(a)
}
