// Package kernel defines the geometry-kernel capability the gear packages
// hand their section stacks to. Implementations (sdfx) provide surface
// lofting, boolean bore cutting, and triangle-mesh output behind this
// interface, so profile and section generation stay fully usable for callers
// without a solid-modeling backend.
package kernel

import "github.com/chazu/gearkit/pkg/geom"

// Solid is an opaque handle to a kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the solid-modeling capability interface.
type Kernel interface {
	// Loft builds a solid through an ordered stack of section rings.
	// rings[i] lies in the plane z = offsets[i]; offsets must be strictly
	// increasing and both slices must have the same length, at least 2.
	// Rings are closed counterclockwise point sequences; loft continuity
	// expects consistent point counts across sections.
	Loft(rings [][]geom.Vec2, offsets []float64) (Solid, error)

	// Cylinder creates a z-aligned cylinder centered at the origin,
	// typically used as a bore cutter.
	Cylinder(height, radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
