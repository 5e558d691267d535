// Package solid feeds bevel gear section stacks through a geometry kernel,
// producing lofted, bore-cut triangle meshes. It owns no geometry of its
// own: profile math stays in gear/bevel, solid modeling stays behind
// kernel.Kernel, and all file export belongs to the caller.
package solid

import (
	"fmt"
	"math"

	"github.com/chazu/gearkit/pkg/bevel"
	"github.com/chazu/gearkit/pkg/geom"
	"github.com/chazu/gearkit/pkg/kernel"
	"github.com/chazu/gearkit/pkg/mate"
)

// DefaultBoreRadius returns the bore radius used when the caller does not
// choose one: twice the large-end module.
func DefaultBoreRadius(g *bevel.Gear) float64 {
	return g.Params.Gear.Module * 2
}

// Build lofts the gear's section stack into a kernel solid and cuts the
// center bore. A boreRadius of zero or less skips the bore.
func Build(k kernel.Kernel, g *bevel.Gear, boreRadius float64) (kernel.Solid, error) {
	if len(g.Sections) < 2 {
		return nil, fmt.Errorf("solid: gear has %d sections, need at least 2 to loft", len(g.Sections))
	}

	rings := make([][]geom.Vec2, len(g.Sections))
	offsets := make([]float64, len(g.Sections))
	for i, s := range g.Sections {
		rings[i] = s.Points
		offsets[i] = s.Offset
	}

	s, err := k.Loft(rings, offsets)
	if err != nil {
		return nil, fmt.Errorf("solid: loft: %w", err)
	}

	if boreRadius > 0 {
		// Cutter taller than the stack so the bore cuts cleanly through
		// both end faces.
		extent := offsets[len(offsets)-1]
		cutter := k.Translate(k.Cylinder(2*extent, boreRadius), 0, 0, extent/2)
		s = k.Difference(s, cutter)
	}

	return s, nil
}

// Gear builds the gear solid and meshes it.
func Gear(k kernel.Kernel, g *bevel.Gear, boreRadius float64) (*kernel.Mesh, error) {
	s, err := Build(k, g, boreRadius)
	if err != nil {
		return nil, err
	}
	mesh, err := k.ToMesh(s)
	if err != nil {
		return nil, fmt.Errorf("solid: mesh: %w", err)
	}
	mesh.Name = fmt.Sprintf("bevel-gear-%dt", g.Params.Gear.Teeth)
	return mesh, nil
}

// Pair meshes gear a at the origin and gear b placed against it per the
// mate placement: one mesh per gear, in that order.
func Pair(k kernel.Kernel, a, b *bevel.Gear, placement mate.BevelPlacement, boreRadius float64) ([]*kernel.Mesh, error) {
	meshA, err := Gear(k, a, boreRadius)
	if err != nil {
		return nil, fmt.Errorf("solid: gear A: %w", err)
	}

	sb, err := Build(k, b, boreRadius)
	if err != nil {
		return nil, fmt.Errorf("solid: gear B: %w", err)
	}
	rx, ry, rz := eulerDegrees(placement.Transform)
	sb = k.Rotate(sb, rx, ry, rz)
	tr := placement.Transform.Translation
	sb = k.Translate(sb, tr.X, tr.Y, tr.Z)

	meshB, err := k.ToMesh(sb)
	if err != nil {
		return nil, fmt.Errorf("solid: gear B mesh: %w", err)
	}
	meshB.Name = fmt.Sprintf("bevel-gear-%dt", b.Params.Gear.Teeth)

	return []*kernel.Mesh{meshA, meshB}, nil
}

// eulerDegrees converts an axis-angle rotation to kernel Euler angles.
// Placements only ever rotate about a single coordinate axis, which is the
// only case where this componentwise mapping is exact.
func eulerDegrees(t geom.RigidTransform) (x, y, z float64) {
	deg := t.Angle * 180 / math.Pi
	return t.Axis.X * deg, t.Axis.Y * deg, t.Axis.Z * deg
}
