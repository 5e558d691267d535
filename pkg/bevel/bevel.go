// Package bevel approximates a bevel gear's tooth surface as a stack of 2D
// involute profiles scaled along the pitch cone.
//
// Each section is a full profile generated with the module scaled by its
// distance from the cone apex. Scaling the whole 2D profile uniformly is a
// deliberate approximation: true bevel teeth taper addendum and dedendum
// depth nonlinearly along the cone, which this package does not model.
package bevel

import (
	"fmt"
	"math"

	"github.com/chazu/gearkit/pkg/gear"
	"github.com/chazu/gearkit/pkg/geom"
)

// MinScale is the smallest section scale that still produces a numerically
// meaningful profile. Sections at or below it are dropped from the stack.
const MinScale = 0.1

// ConfigError reports a bevel configuration that cannot produce a valid
// section stack. It is returned before any section is computed.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s = %g: %s", e.Field, e.Value, e.Reason)
}

// Params describes a bevel gear by its large-end profile spec and cone shape.
type Params struct {
	Gear         gear.Spec
	ConeAngleDeg float64 // pitch-cone half angle, in (0, 90)
	FaceWidth    float64 // tooth face extent along the cone, toward the apex
	Sections     int     // requested number of profile sections, at least 2
}

// Complement returns the parameter set of the partner gear for a 90 degree
// shaft intersection: same profile spec, complementary cone angle. Other
// shaft angles need a different relation and are out of scope.
func (p Params) Complement() Params {
	p.ConeAngleDeg = 90 - p.ConeAngleDeg
	return p
}

// Section is one 2D profile of the stack, at a given axial offset from the
// large-end plane. Points are already scaled: the profile was generated with
// the section's effective module.
type Section struct {
	Points []geom.Vec2
	Offset float64 // axial distance from the large end, increases toward the small end
	Scale  float64 // radial shrink factor in (MinScale, 1]
	Radius float64 // effective pitch radius at this section
}

// Ring3D returns the section's profile lifted to its plane.
func (s *Section) Ring3D() []geom.Vec3 {
	return geom.Lift(s.Points, s.Offset)
}

// Gear is a bevel gear: an ordered stack of sections from the large end
// (offset 0, scale 1) to the small end, plus the derived cone quantities.
// Values are computed once by New and never mutated.
type Gear struct {
	Params       Params
	PitchRadius  float64 // large-end pitch radius
	ApexDistance float64 // apex to large-end pitch circle, along the cone slant
	Sections     []Section
	Warnings     []gear.Warning // advisory findings from the large-end profile
}

// Truncated reports whether sections were dropped because their scale fell
// to MinScale or below. The stack is still ordered and usable; callers that
// need the full requested count must check this.
func (g *Gear) Truncated() bool {
	return len(g.Sections) < g.Params.Sections
}

// New validates the parameters and eagerly builds the section stack.
func New(p Params) (*Gear, error) {
	if err := p.Gear.Validate(); err != nil {
		return nil, err
	}
	if p.ConeAngleDeg <= 0 || p.ConeAngleDeg >= 90 {
		return nil, &ConfigError{Field: "coneAngle", Value: p.ConeAngleDeg, Reason: "must be in (0, 90) degrees"}
	}
	if p.Sections < 2 {
		return nil, &ConfigError{Field: "sections", Value: float64(p.Sections), Reason: "need at least 2 sections to form a stack"}
	}
	if p.FaceWidth <= 0 {
		return nil, &ConfigError{Field: "faceWidth", Value: p.FaceWidth, Reason: "must be positive"}
	}

	pitchRadius := p.Gear.PitchRadius()
	apex := pitchRadius / math.Sin(p.ConeAngleDeg*math.Pi/180)
	if p.FaceWidth >= apex {
		return nil, &ConfigError{
			Field:  "faceWidth",
			Value:  p.FaceWidth,
			Reason: fmt.Sprintf("must be less than the apex distance %g", apex),
		}
	}

	g := &Gear{
		Params:       p,
		PitchRadius:  pitchRadius,
		ApexDistance: apex,
	}

	for i := 0; i < p.Sections; i++ {
		t := float64(i) / float64(p.Sections-1)
		scale := (apex - t*p.FaceWidth) / apex
		if scale <= MinScale {
			// Too small to be numerically meaningful; drop the section
			// rather than fail the whole stack.
			continue
		}

		spec := p.Gear
		spec.Module = p.Gear.Module * scale
		profile, err := gear.Generate(spec)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		if i == 0 {
			g.Warnings = profile.Warnings
		}

		g.Sections = append(g.Sections, Section{
			Points: profile.Points,
			Offset: t * p.FaceWidth,
			Scale:  scale,
			Radius: pitchRadius * scale,
		})
	}

	return g, nil
}
