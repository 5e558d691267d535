// Package gear generates 2D involute gear-tooth profiles.
//
// A profile is the closed boundary of a whole gear (all teeth) as an ordered
// counterclockwise ring of points centered on the gear axis at the origin.
// Generation is a pure function of the Spec: identical specs always produce
// bit-identical rings.
package gear

import (
	"fmt"
	"math"

	"github.com/chazu/gearkit/pkg/geom"
)

// Clearance is the dedendum clearance coefficient for standard full-depth
// teeth: dedendum = module * (1 + Clearance).
const Clearance = 0.25

// minTeeth is the tooth count below which involute flanks start to undercut
// and the generated ring may self-intersect.
const minTeeth = 5

// Spec holds the parameters that fully determine one gear profile.
// It is a plain immutable value; construct it with struct literals.
type Spec struct {
	Module           float64 // tooth sizing unit; pitch diameter = Module * Teeth
	Teeth            int     // number of teeth, at least 1
	PressureAngleDeg float64 // commonly 14.5 - 25 degrees
	Backlash         float64 // circular backlash, removed symmetrically from tooth thickness
	ProfileShift     float64 // carried for callers; not applied to the geometry
	Samples          int     // points per curved segment, at least 2
}

// ToothWidth returns the circular pitch, pi * Module.
func (s Spec) ToothWidth() float64 {
	return math.Pi * s.Module
}

// PitchRadius returns Module * Teeth / 2. This is exact: it is computed from
// the module directly, never round-tripped through the tooth width.
func (s Spec) PitchRadius() float64 {
	return s.Module * float64(s.Teeth) / 2
}

// Validate checks the spec against the generator's parameter constraints.
func (s Spec) Validate() error {
	if s.Module <= 0 {
		return &ParamError{Param: "module", Value: s.Module, Reason: "must be positive"}
	}
	if s.Teeth < 1 {
		return &ParamError{Param: "teeth", Value: float64(s.Teeth), Reason: "must be at least 1"}
	}
	if s.PressureAngleDeg <= 0 || s.PressureAngleDeg >= 90 {
		return &ParamError{Param: "pressureAngle", Value: s.PressureAngleDeg, Reason: "must be in (0, 90) degrees"}
	}
	if s.Backlash < 0 {
		return &ParamError{Param: "backlash", Value: s.Backlash, Reason: "must not be negative"}
	}
	if 2*s.Backlash >= s.ToothWidth() {
		return &ParamError{Param: "backlash", Value: s.Backlash, Reason: "eliminates the tooth thickness"}
	}
	if s.Samples < 2 {
		return &ParamError{Param: "samples", Value: float64(s.Samples), Reason: "must be at least 2"}
	}
	return nil
}

// Profile is the generated boundary of one gear: a closed counterclockwise
// ring (the last point connects back to the first) with exactly
// Teeth * 4 * Samples points. The ring's centroid is the gear axis (0,0).
type Profile struct {
	Points      []geom.Vec2
	PitchRadius float64
	Teeth       int
	Samples     int
	Warnings    []Warning
}

// PointsPerTooth returns the number of ring points each tooth contributes:
// one flank, the tip arc, the mirrored flank, and the root arc, each with
// Samples points.
func (p *Profile) PointsPerTooth() int {
	return 4 * p.Samples
}

// Degenerate reports whether generation flagged the geometry as possibly
// self-intersecting.
func (p *Profile) Degenerate() bool {
	return len(p.Warnings) > 0
}

// Generate computes the involute profile for the spec. It returns a
// ParamError for degenerate inputs; geometrically questionable but
// computable inputs (very low tooth counts, pointed tips) succeed with
// warnings attached to the profile.
func Generate(s Spec) (*Profile, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	m := s.Module
	z := s.Teeth
	alpha := s.PressureAngleDeg * math.Pi / 180

	rPitch := s.PitchRadius()
	rBase := rPitch * math.Cos(alpha)
	rTip := rPitch + m
	rRoot := rPitch - m*(1+Clearance)

	p := &Profile{
		PitchRadius: rPitch,
		Teeth:       z,
		Samples:     s.Samples,
	}
	if z < minTeeth {
		p.warnf(WarnLowToothCount, "%d teeth: involute flanks may undercut and self-intersect", z)
	}
	if rRoot <= 0 {
		// The dedendum circle would collapse through the axis. Keep the
		// ring well formed and flag it.
		rRoot = m / 20
		p.warnf(WarnRootClamped, "dedendum circle clamped to %g", rRoot)
	}

	// Involute parameter range. The curve leaves the base circle at t=0 and
	// reaches radius rBase*sqrt(1+t^2) at parameter t. When the root circle
	// lies outside the base circle the flank starts part-way up the curve.
	tMax := unwindTo(rTip, rBase)
	t0 := 0.0
	if rRoot > rBase {
		t0 = unwindTo(rRoot, rBase)
	}

	// Half tooth thickness as an angle at the pitch circle, backlash removed.
	halfTooth := (s.ToothWidth()/2 - s.Backlash) / (2 * rPitch)
	invAlpha := math.Tan(alpha) - alpha

	tipSpan := 2 * (halfTooth + invAlpha - involute(tMax))
	if tipSpan < 0 {
		p.warnf(WarnPointedTip, "flanks cross below the tip radius; ring self-intersects")
	}

	pitch := 2 * math.Pi / float64(z)
	n := s.Samples
	p.Points = make([]geom.Vec2, 0, z*4*n)

	for k := 0; k < z; k++ {
		center := float64(k) * pitch

		// Rising flank: involute from the root end to the tip, placed so
		// that it crosses the pitch circle half a tooth before the
		// centerline.
		leftRef := center - halfTooth - invAlpha
		for i := 0; i < n; i++ {
			t := lerp(t0, tMax, float64(i)/float64(n-1))
			p.Points = append(p.Points, polar(rBase*math.Hypot(1, t), leftRef+involute(t)))
		}

		// Tip arc between the two flank tips, interior points only so the
		// flank endpoints are not duplicated.
		leftTip := leftRef + involute(tMax)
		for i := 0; i < n; i++ {
			a := leftTip + tipSpan*float64(i+1)/float64(n+1)
			p.Points = append(p.Points, polar(rTip, a))
		}

		// Falling flank: the rising flank mirrored about the centerline,
		// traversed tip to root.
		rightRef := center + halfTooth + invAlpha
		for i := n - 1; i >= 0; i-- {
			t := lerp(t0, tMax, float64(i)/float64(n-1))
			p.Points = append(p.Points, polar(rBase*math.Hypot(1, t), rightRef-involute(t)))
		}

		// Root arc across the gap to the next tooth, interior points only.
		rootFrom := rightRef - involute(t0)
		rootTo := center + pitch - halfTooth - invAlpha + involute(t0)
		for i := 0; i < n; i++ {
			a := rootFrom + (rootTo-rootFrom)*float64(i+1)/float64(n+1)
			p.Points = append(p.Points, polar(rRoot, a))
		}
	}

	return p, nil
}

// involute returns the polar angle swept by the involute of a circle at
// unwrap parameter t, measured from the curve's start on the base circle.
func involute(t float64) float64 {
	return t - math.Atan(t)
}

// unwindTo returns the unwrap parameter at which the involute of the base
// circle reaches radius r.
func unwindTo(r, rBase float64) float64 {
	q := r / rBase
	return math.Sqrt(q*q - 1)
}

func polar(r, theta float64) geom.Vec2 {
	sin, cos := math.Sincos(theta)
	return geom.Vec2{X: r * cos, Y: r * sin}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func (p *Profile) warnf(code WarningCode, format string, args ...any) {
	p.Warnings = append(p.Warnings, Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}
