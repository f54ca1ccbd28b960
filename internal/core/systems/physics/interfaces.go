package physics

// Positioned is anything with a world position; AI sensors and hit tests
// only need this much of an entity.
type Positioned interface {
	Position() Vec3
}

// Volume is a hit-test shape.
type Volume interface {
	Contains(p Vec3) bool
}

var (
	_ Volume = Cylinder{}
	_ Volume = Sphere{}
	_ Volume = AABB{}
)
