package gear

import "fmt"

// ParamError reports a gear parameter that makes profile generation
// impossible. It is returned before any geometry is computed; the caller
// never sees a partially built profile.
type ParamError struct {
	Param  string  // parameter name, e.g. "teeth"
	Value  float64 // offending value
	Reason string  // human-readable constraint
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s = %g: %s", e.Param, e.Value, e.Reason)
}

// WarningCode classifies an advisory geometry finding.
type WarningCode int

const (
	WarnLowToothCount WarningCode = iota // teeth below the undercut-safe minimum
	WarnPointedTip                       // flanks meet below the tip radius
	WarnRootClamped                      // dedendum circle clamped above zero
)

func (c WarningCode) String() string {
	switch c {
	case WarnLowToothCount:
		return "low-tooth-count"
	case WarnPointedTip:
		return "pointed-tip"
	case WarnRootClamped:
		return "root-clamped"
	default:
		return fmt.Sprintf("WarningCode(%d)", int(c))
	}
}

// Warning is an advisory finding attached to a generated profile. Warnings
// never block generation: the generator returns the ring as computed and
// lets the caller decide whether a possibly self-intersecting profile is
// acceptable.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}
