// Package geom provides the small vector and rigid-transform types shared by
// the gear geometry packages. Profiles are ordered closed rings of Vec2; the
// bevel and mating code lifts them to Vec3 and moves them with RigidTransform.
package geom

import "math"

// Vec2 is a 2D point or vector.
type Vec2 struct {
	X, Y float64
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v.X + w.X, v.Y + w.Y}
}

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v.X - w.X, v.Y - w.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the Euclidean norm of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Vec3 lifts v into 3D at the given z.
func (v Vec2) Vec3(z float64) Vec3 {
	return Vec3{v.X, v.Y, z}
}

// Vec3 is a 3D point or vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product of v and w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the Euclidean norm of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Unit axes used by the placement code.
var (
	AxisX = Vec3{X: 1}
	AxisY = Vec3{Y: 1}
	AxisZ = Vec3{Z: 1}
)

// Lift converts a 2D ring to a 3D ring in the plane at the given z.
func Lift(ring []Vec2, z float64) []Vec3 {
	out := make([]Vec3, len(ring))
	for i, p := range ring {
		out[i] = p.Vec3(z)
	}
	return out
}

// Centroid returns the arithmetic mean of the ring's points. An empty ring
// has centroid (0,0).
func Centroid(ring []Vec2) Vec2 {
	if len(ring) == 0 {
		return Vec2{}
	}
	var sum Vec2
	for _, p := range ring {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(ring)))
}

// RigidTransform is an axis-angle rotation about the origin followed by a
// translation. It is the single transform representation used for both spur
// (in-plane) and bevel (3D) gear placement.
type RigidTransform struct {
	Axis        Vec3    // rotation axis, unit length
	Angle       float64 // radians
	Translation Vec3
}

// Rotation returns a pure rotation transform.
func Rotation(axis Vec3, angle float64) RigidTransform {
	return RigidTransform{Axis: axis.Normalized(), Angle: angle}
}

// Then returns t followed by a translation, applied after the rotation.
func (t RigidTransform) Then(translation Vec3) RigidTransform {
	t.Translation = t.Translation.Add(translation)
	return t
}

// Apply rotates p about the origin by the transform's axis and angle
// (Rodrigues' formula) and then translates it.
func (t RigidTransform) Apply(p Vec3) Vec3 {
	k := t.Axis.Normalized()
	sin, cos := math.Sincos(t.Angle)
	rotated := p.Scale(cos).
		Add(k.Cross(p).Scale(sin)).
		Add(k.Scale(k.Dot(p) * (1 - cos)))
	return rotated.Add(t.Translation)
}

// ApplyAll applies the transform to every point of a ring, preserving order.
func (t RigidTransform) ApplyAll(ring []Vec3) []Vec3 {
	out := make([]Vec3, len(ring))
	for i, p := range ring {
		out[i] = t.Apply(p)
	}
	return out
}

// ApplyRing2D lifts a 2D ring to the plane at z, then applies the transform.
func (t RigidTransform) ApplyRing2D(ring []Vec2, z float64) []Vec3 {
	return t.ApplyAll(Lift(ring, z))
}
