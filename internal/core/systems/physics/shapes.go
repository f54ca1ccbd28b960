package physics

import "math"

// AABB is an axis aligned box.
type AABB struct{ Min, Max Vec3 }

func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// RayHit is the entry point of a ray into a box.
type RayHit struct {
	Point  Vec3
	Normal Vec3
	T      float64
}

// RayAABB intersects the segment origin + dir*t, t in [0,maxT], with the box
// using the slab method. The normal is the face the ray entered through. A
// ray starting inside the box reports t=0 with the face opposing the
// dominant direction component.
func RayAABB(origin, dir Vec3, maxT float64, box AABB) (RayHit, bool) {
	tMin, tMax := 0.0, maxT
	var normal Vec3
	inside := true

	axes := [3]struct {
		o, d, lo, hi float64
		n            Vec3
	}{
		{origin.X, dir.X, box.Min.X, box.Max.X, Vec3{X: 1}},
		{origin.Y, dir.Y, box.Min.Y, box.Max.Y, Vec3{Y: 1}},
		{origin.Z, dir.Z, box.Min.Z, box.Max.Z, Vec3{Z: 1}},
	}

	for _, a := range axes {
		if a.o < a.lo || a.o > a.hi {
			inside = false
		}
		if math.Abs(a.d) < 1e-12 {
			if a.o < a.lo || a.o > a.hi {
				return RayHit{}, false
			}
			continue
		}
		inv := 1 / a.d
		t1, t2 := (a.lo-a.o)*inv, (a.hi-a.o)*inv
		n := a.n.Scale(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			n = a.n
		}
		if t1 > tMin {
			tMin = t1
			normal = n
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return RayHit{}, false
		}
	}

	if inside {
		normal = DominantAxisNormal(dir)
		tMin = 0
	}
	return RayHit{Point: origin.AddScaled(dir, tMin), Normal: normal, T: tMin}, true
}

// DominantAxisNormal is the flat axis normal facing against the larger of
// the X/Z components of v.
func DominantAxisNormal(v Vec3) Vec3 {
	if math.Abs(v.X) > math.Abs(v.Z) {
		return Vec3{X: -Sign(v.X)}
	}
	return Vec3{Z: -Sign(v.Z)}
}

// Cylinder is an upright cylinder whose base sits at Base.Y.
type Cylinder struct {
	Base   Vec3
	Radius float64
	Height float64
}

func (c Cylinder) Contains(p Vec3) bool {
	if p.Y < c.Base.Y || p.Y > c.Base.Y+c.Height {
		return false
	}
	return FlatDistance(c.Base, p) <= c.Radius
}

type Sphere struct {
	Center Vec3
	Radius float64
}

func (s Sphere) Contains(p Vec3) bool {
	return s.Center.DistanceTo(p) < s.Radius
}

// Segment reports whether the segment a-b passes through the cylinder. The
// segment is first clipped to the cylinder's height band, then the clipped
// part's closest flat approach to the axis is tested against the radius.
func (c Cylinder) Segment(a, b Vec3) bool {
	d := b.Sub(a)
	lo, hi := 0.0, 1.0
	bottom, top := c.Base.Y, c.Base.Y+c.Height
	if math.Abs(d.Y) < 1e-12 {
		if a.Y < bottom || a.Y > top {
			return false
		}
	} else {
		t1, t2 := (bottom-a.Y)/d.Y, (top-a.Y)/d.Y
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		lo, hi = math.Max(lo, t1), math.Min(hi, t2)
		if lo > hi {
			return false
		}
	}
	t := closestFlat(a, b, c.Base, lo, hi)
	return FlatDistance(c.Base, a.AddScaled(d, t)) <= c.Radius
}

// Segment reports whether the segment a-b passes within the sphere.
func (s Sphere) Segment(a, b Vec3) bool {
	d := b.Sub(a)
	t := 0.0
	if l := d.Dot(d); l > 1e-12 {
		t = math.Max(0, math.Min(1, s.Center.Sub(a).Dot(d)/l))
	}
	return s.Contains(a.AddScaled(d, t))
}

// closestFlat returns the t in [lo, hi] where a + (b-a)t comes flat-closest to p.
func closestFlat(a, b, p Vec3, lo, hi float64) float64 {
	d := b.Sub(a).Flat()
	l := d.Dot(d)
	if l < 1e-12 {
		return lo
	}
	return math.Max(lo, math.Min(hi, p.Sub(a).Flat().Dot(d)/l))
}
