// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/gearkit/pkg/geom"
	"github.com/chazu/gearkit/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 120

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// Kernel implements kernel.Kernel using sdfx.
type Kernel struct{}

// New returns a new sdfx-backed kernel.
func New() *Kernel {
	return &Kernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// toPolygon converts a gear ring to an sdfx 2D polygon SDF.
func toPolygon(ring []geom.Vec2) (sdf.SDF2, error) {
	pts := make([]v2.Vec, len(ring))
	for i, p := range ring {
		pts[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	return sdf.Polygon2D(pts)
}

// Loft builds a solid through a stack of section rings by lofting each
// consecutive pair and unioning the segments. sdf.Loft3D centers its result
// on z=0, so each segment is shifted to its slab of the stack.
func (k *Kernel) Loft(rings [][]geom.Vec2, offsets []float64) (kernel.Solid, error) {
	if len(rings) != len(offsets) {
		return nil, fmt.Errorf("loft: %d rings but %d offsets", len(rings), len(offsets))
	}
	if len(rings) < 2 {
		return nil, fmt.Errorf("loft: need at least 2 sections, got %d", len(rings))
	}

	slices := make([]sdf.SDF2, len(rings))
	for i, ring := range rings {
		poly, err := toPolygon(ring)
		if err != nil {
			return nil, fmt.Errorf("loft: section %d: %w", i, err)
		}
		slices[i] = poly
	}

	var solid sdf.SDF3
	for i := 0; i+1 < len(slices); i++ {
		height := offsets[i+1] - offsets[i]
		if height <= 0 {
			return nil, fmt.Errorf("loft: offsets not strictly increasing at section %d", i+1)
		}
		segment, err := sdf.Loft3D(slices[i], slices[i+1], height, 0)
		if err != nil {
			return nil, fmt.Errorf("loft: segment %d: %w", i, err)
		}
		m := sdf.Translate3d(v3.Vec{Z: offsets[i] + height/2})
		placed := sdf.Transform3D(segment, m)
		if solid == nil {
			solid = placed
		} else {
			solid = sdf.Union3D(solid, placed)
		}
	}

	return wrap(solid), nil
}

// Cylinder creates a z-aligned cylinder centered at the origin.
func (k *Kernel) Cylinder(height, radius float64) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s)
}

// Union returns the union of two solids.
func (k *Kernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *Kernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *Kernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *Kernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(defaultMeshCells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
