package level

import "fmt"

type Tile uint8

const (
	Wall Tile = iota
	Floor
)

func (t Tile) String() string {
	if t == Floor {
		return "floor"
	}
	return "wall"
}

// Point is a grid cell. X runs along world X, Y along world Z.
type Point struct{ X, Y int }

func (p Point) Add(dx, dy int) Point { return Point{p.X + dx, p.Y + dy} }

func (p Point) Manhattan(o Point) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Neighbors4 lists the orthogonal neighbours in N, S, W, E order.
func (p Point) Neighbors4() [4]Point {
	return [4]Point{{p.X, p.Y - 1}, {p.X, p.Y + 1}, {p.X - 1, p.Y}, {p.X + 1, p.Y}}
}

// Grid is the Wall/Floor occupancy map. Generators carve it; once Freeze is
// called every further write panics.
type Grid struct {
	width, height int
	tiles         []Tile
	frozen        bool
}

// NewGrid returns a width x height grid filled with Wall.
func NewGrid(width, height int) *Grid {
	return &Grid{width: width, height: height, tiles: make([]Tile, width*height)}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// At returns the tile at p; anything outside the grid reads as Wall.
func (g *Grid) At(p Point) Tile {
	if !g.InBounds(p) {
		return Wall
	}
	return g.tiles[p.Y*g.width+p.X]
}

func (g *Grid) IsFloor(p Point) bool { return g.At(p) == Floor }

func (g *Grid) Set(p Point, t Tile) {
	if g.frozen {
		panic("level: write to frozen grid")
	}
	if !g.InBounds(p) {
		return
	}
	g.tiles[p.Y*g.width+p.X] = t
}

// Fill sets every cell of the rectangle.
func (g *Grid) Fill(x, y, w, h int, t Tile) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			g.Set(Point{xx, yy}, t)
		}
	}
}

func (g *Grid) Freeze()      { g.frozen = true }
func (g *Grid) Frozen() bool { return g.frozen }

// Clone returns a writable copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, tiles: make([]Tile, len(g.tiles))}
	copy(c.tiles, g.tiles)
	return c
}

// FloorTiles lists every floor cell in row-major order.
func (g *Grid) FloorTiles() []Point {
	out := make([]Point, 0, len(g.tiles)/2)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.tiles[y*g.width+x] == Floor {
				out = append(out, Point{x, y})
			}
		}
	}
	return out
}

// SealBorder forces the outermost ring to Wall.
func (g *Grid) SealBorder() {
	for x := 0; x < g.width; x++ {
		g.Set(Point{x, 0}, Wall)
		g.Set(Point{x, g.height - 1}, Wall)
	}
	for y := 0; y < g.height; y++ {
		g.Set(Point{0, y}, Wall)
		g.Set(Point{g.width - 1, y}, Wall)
	}
}

func (g *Grid) BorderIsWall() bool {
	for x := 0; x < g.width; x++ {
		if g.At(Point{x, 0}) != Wall || g.At(Point{x, g.height - 1}) != Wall {
			return false
		}
	}
	for y := 0; y < g.height; y++ {
		if g.At(Point{0, y}) != Wall || g.At(Point{g.width - 1, y}) != Wall {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
