package physics

import "math"

// Vec3 is a world-space vector. Y is up; the level grid lies in the XZ plane.
type Vec3 struct{ X, Y, Z float64 }

func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3           { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3           { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3      { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64        { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Len() float64              { return math.Sqrt(v.Dot(v)) }
func (v Vec3) Flat() Vec3                { return Vec3{v.X, 0, v.Z} }
func (v Vec3) DistanceTo(o Vec3) float64 { return o.Sub(v).Len() }

// AddScaled returns v + o*s, the explicit Euler step.
func (v Vec3) AddScaled(o Vec3, s float64) Vec3 {
	return Vec3{v.X + o.X*s, v.Y + o.Y*s, v.Z + o.Z*s}
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns the unit vector, or the zero vector for zero input.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// FlatDistance is the distance in the XZ plane.
func FlatDistance(a, b Vec3) float64 {
	return math.Hypot(b.X-a.X, b.Z-a.Z)
}

// RotateAxis rotates v around the unit axis by angle radians (Rodrigues).
func (v Vec3) RotateAxis(axis Vec3, angle float64) Vec3 {
	axis = axis.Normalize()
	cos, sin := math.Cos(angle), math.Sin(angle)
	term1 := v.Scale(cos)
	term2 := axis.Cross(v).Scale(sin)
	term3 := axis.Scale(axis.Dot(v) * (1 - cos))
	return term1.Add(term2).Add(term3)
}

// Yaw is the heading of a flat direction, measured so that yaw 0 faces +Z.
func Yaw(dir Vec3) float64 {
	return math.Atan2(dir.X, dir.Z)
}

// Forward is the flat unit vector for a yaw.
func Forward(yaw float64) Vec3 {
	return Vec3{math.Sin(yaw), 0, math.Cos(yaw)}
}

// Right is the flat unit vector 90 degrees clockwise of Forward when seen from above.
func Right(yaw float64) Vec3 {
	return Vec3{-math.Cos(yaw), 0, math.Sin(yaw)}
}

// Direction builds a unit vector from yaw and pitch (pitch > 0 looks up).
func Direction(yaw, pitch float64) Vec3 {
	cp := math.Cos(pitch)
	return Vec3{math.Sin(yaw) * cp, math.Sin(pitch), math.Cos(yaw) * cp}
}

// Lerp moves a toward b by t clamped to [0,1].
func Lerp(a, b, t float64) float64 {
	if t > 1 {
		t = 1
	}
	if t < 0 {
		t = 0
	}
	return a + (b-a)*t
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
