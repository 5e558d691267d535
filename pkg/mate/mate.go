// Package mate computes the rigid placements that bring two gears into mesh:
// the center distance and half-tooth rotation for spur pairs, and the
// 90 degree crossed-axis placement for bevel pairs.
package mate

import (
	"math"

	"github.com/chazu/gearkit/pkg/bevel"
	"github.com/chazu/gearkit/pkg/gear"
	"github.com/chazu/gearkit/pkg/geom"
)

// SpurPlacement positions gear B against gear A in the XY plane. Gear A
// stays at the origin; Transform is applied to gear B's profile.
type SpurPlacement struct {
	// CenterDistance is the nominal axis spacing, the sum of the two pitch
	// radii. Profile shift correction is not applied.
	CenterDistance float64
	// RotationAngle is half of gear B's angular pitch, so B's teeth fall
	// into A's gaps.
	RotationAngle float64
	Transform     geom.RigidTransform
}

// Spur computes the placement that meshes a gear of pitch radius b and
// teethB teeth against a gear of pitch radius a at the origin.
func Spur(pitchRadiusA, pitchRadiusB float64, teethB int) (SpurPlacement, error) {
	if pitchRadiusA <= 0 {
		return SpurPlacement{}, &gear.ParamError{Param: "pitchRadiusA", Value: pitchRadiusA, Reason: "must be positive"}
	}
	if pitchRadiusB <= 0 {
		return SpurPlacement{}, &gear.ParamError{Param: "pitchRadiusB", Value: pitchRadiusB, Reason: "must be positive"}
	}
	if teethB < 1 {
		return SpurPlacement{}, &gear.ParamError{Param: "teethB", Value: float64(teethB), Reason: "must be at least 1"}
	}

	center := pitchRadiusA + pitchRadiusB
	angle := math.Pi / float64(teethB)
	return SpurPlacement{
		CenterDistance: center,
		RotationAngle:  angle,
		Transform:      geom.Rotation(geom.AxisZ, angle).Then(geom.Vec3{X: center}),
	}, nil
}

// BevelPlacement positions a partner bevel gear with its axis at 90 degrees
// to the first gear's axis. The placement is a coarse visual arrangement:
// it tilts the partner about Y and offsets it by the apex distance, it does
// not bring the two cone apexes to the same point.
type BevelPlacement struct {
	// ApexDistance is the first gear's apex distance; the partner is
	// translated by it along the first gear's reference axis after a 90
	// degree rotation about Y.
	ApexDistance float64
	Transform    geom.RigidTransform
}

// Bevel derives the partner gear's parameters (complementary cone angle,
// 90 degree shafts only) and the placement that mates it against a. The
// caller builds the partner with bevel.New; this function performs no
// profile generation itself.
func Bevel(a *bevel.Gear) (bevel.Params, BevelPlacement) {
	partner := a.Params.Complement()
	placement := BevelPlacement{
		ApexDistance: a.ApexDistance,
		Transform: geom.Rotation(geom.AxisY, math.Pi/2).
			Then(geom.Vec3{X: a.ApexDistance}),
	}
	return partner, placement
}
