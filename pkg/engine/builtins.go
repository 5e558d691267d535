package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/gearkit/pkg/bevel"
	"github.com/chazu/gearkit/pkg/gear"
	"github.com/chazu/gearkit/pkg/geom"
	"github.com/chazu/gearkit/pkg/mate"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites the gear DSL into plain zygomys source:
//
//   - :keyword becomes the string literal "__kw_keyword", so builtins can
//     take keyword arguments without registering global symbols;
//   - kebab-case identifiers (spur-gear, face-width) become underscore form,
//     since zygomys reads an interior hyphen as subtraction;
//   - ; line comments become // comments, which is what zygomys expects.
//
// String literals are passed through untouched.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)

	b := []byte(source)
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == '"' || c == '`':
			// Copy the whole string literal, honoring backslash escapes
			// in double-quoted strings.
			quote := c
			out.WriteByte(c)
			i++
			for i < len(b) && b[i] != quote {
				if quote == '"' && b[i] == '\\' && i+1 < len(b) {
					out.WriteByte(b[i])
					i++
				}
				out.WriteByte(b[i])
				i++
			}
			if i < len(b) {
				out.WriteByte(quote)
				i++
			}

		case c == ';':
			out.WriteString("//")
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out.WriteByte(b[i])
				i++
			}

		case c == ':' && i+1 < len(b) && isAlpha(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out.WriteByte('"')
			out.WriteString(kwPrefix)
			out.Write(b[i+1 : j])
			out.WriteByte('"')
			i = j

		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isAlpha(b[i+1]):
			// Hyphen between identifier characters: kebab-case, not minus.
			out.WriteByte('_')
			i++

		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string and returns the
// keyword name without the prefix. Keyword text survives preprocessing with
// its hyphens (it sits inside a string literal), so the name is normalized
// to underscore form here to match the builtin lookup keys.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return strings.ReplaceAll(str.S[len(kwPrefix):], "-", "_"), true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); {
		name, ok := isKW(args[i])
		if ok && i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
			continue
		}
		if ok {
			// Trailing keyword with no value.
			result.kw[name] = zygo.SexpNull
			i++
			continue
		}
		result.positional = append(result.positional, args[i])
		i++
	}
	return result
}

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// floatArg reads an optional keyword float into dst.
func floatArg(pa kwArgs, name string, dst *float64) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = f
	return nil
}

// intArg reads an optional keyword integer into dst.
func intArg(pa kwArgs, name string, dst *int) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	n, err := toInt(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = n
	return nil
}

// ---------------------------------------------------------------------------
// Sexp wrappers for gear values
// ---------------------------------------------------------------------------

// sexpSpur wraps a generated spur gear so it can be passed between builtins.
type sexpSpur struct {
	name    string
	spec    gear.Spec
	profile *gear.Profile
}

func (s *sexpSpur) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(spur-gear %dt m%g)", s.spec.Teeth, s.spec.Module)
}
func (s *sexpSpur) Type() *zygo.RegisteredType { return nil }

// sexpBevel wraps a built bevel gear.
type sexpBevel struct {
	name string
	g    *bevel.Gear
}

func (s *sexpBevel) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(bevel-gear %dt m%g cone%g)",
		s.g.Params.Gear.Teeth, s.g.Params.Gear.Module, s.g.Params.ConeAngleDeg)
}
func (s *sexpBevel) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// Default sample counts. Bevel sections use coarser sampling since each
// gear carries many of them.
const (
	defaultSpurSamples  = 32
	defaultBevelSamples = 16
	defaultSections     = 10
)

// specFromArgs builds a gear.Spec from keyword arguments. module and teeth
// are required; the rest have workable defaults.
func specFromArgs(pa kwArgs, samples int) (gear.Spec, string, error) {
	spec := gear.Spec{
		PressureAngleDeg: 20,
		Samples:          samples,
	}

	mv, ok := pa.kw["module"]
	if !ok {
		return spec, "", fmt.Errorf("module is required")
	}
	m, err := toFloat64(mv)
	if err != nil {
		return spec, "", fmt.Errorf("module: %w", err)
	}
	spec.Module = m

	tv, ok := pa.kw["teeth"]
	if !ok {
		return spec, "", fmt.Errorf("teeth is required")
	}
	z, err := toInt(tv)
	if err != nil {
		return spec, "", fmt.Errorf("teeth: %w", err)
	}
	spec.Teeth = z

	if err := floatArg(pa, "pressure_angle", &spec.PressureAngleDeg); err != nil {
		return spec, "", err
	}
	if err := floatArg(pa, "backlash", &spec.Backlash); err != nil {
		return spec, "", err
	}
	if err := floatArg(pa, "profile_shift", &spec.ProfileShift); err != nil {
		return spec, "", err
	}
	if err := intArg(pa, "samples", &spec.Samples); err != nil {
		return spec, "", err
	}

	name := ""
	if v, ok := pa.kw["name"]; ok {
		name, err = toString(v)
		if err != nil {
			return spec, "", fmt.Errorf("name: %w", err)
		}
	}
	return spec, name, nil
}

// registerBuiltins installs the gear DSL builtins into a zygomys
// environment. The builtins populate the provided Model during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, model *Model) {

	// -----------------------------------------------------------------------
	// (spur-gear :module 1 :teeth 30 :pressure-angle 20 :backlash 0
	//            :samples 32 :name "drive")
	// -----------------------------------------------------------------------
	env.AddFunction("spur_gear", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		spec, gearName, err := specFromArgs(pa, defaultSpurSamples)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("spur-gear: %w", err)
		}
		profile, err := gear.Generate(spec)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("spur-gear: %w", err)
		}
		return &sexpSpur{name: gearName, spec: spec, profile: profile}, nil
	})

	// -----------------------------------------------------------------------
	// (bevel-gear :module 5 :teeth 20 :cone-angle 45 :face-width 15
	//             :sections 10 :samples 16 :name "crown")
	// -----------------------------------------------------------------------
	env.AddFunction("bevel_gear", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		spec, gearName, err := specFromArgs(pa, defaultBevelSamples)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bevel-gear: %w", err)
		}

		params := bevel.Params{
			Gear:         spec,
			ConeAngleDeg: 45,
			FaceWidth:    10,
			Sections:     defaultSections,
		}
		if err := floatArg(pa, "cone_angle", &params.ConeAngleDeg); err != nil {
			return zygo.SexpNull, fmt.Errorf("bevel-gear: %w", err)
		}
		if err := floatArg(pa, "face_width", &params.FaceWidth); err != nil {
			return zygo.SexpNull, fmt.Errorf("bevel-gear: %w", err)
		}
		if err := intArg(pa, "sections", &params.Sections); err != nil {
			return zygo.SexpNull, fmt.Errorf("bevel-gear: %w", err)
		}

		g, err := bevel.New(params)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bevel-gear: %w", err)
		}
		return &sexpBevel{name: gearName, g: g}, nil
	})

	// -----------------------------------------------------------------------
	// (place g) — add a gear to the model at the origin.
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("place requires a gear argument")
		}
		p, err := placedFrom(args[0], geom.RigidTransform{Axis: geom.AxisZ})
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: %w", err)
		}
		model.add(p)
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (gearset "drive" a b ...) — add gears under a common name prefix.
	// Gears without an explicit :name get "<prefix>-N".
	// -----------------------------------------------------------------------
	env.AddFunction("gearset", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("gearset requires a name and at least one gear")
		}
		prefix, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("gearset: name: %w", err)
		}
		for i, arg := range args[1:] {
			p, err := placedFrom(arg, geom.RigidTransform{Axis: geom.AxisZ})
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("gearset: gear %d: %w", i+1, err)
			}
			if p.Name == "" {
				p.Name = fmt.Sprintf("%s-%d", prefix, i+1)
			}
			model.add(p)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (mate a b) — place a at the origin and b meshed against it.
	// (mate a)   — bevel only: derive b with the complementary cone angle.
	// -----------------------------------------------------------------------
	env.AddFunction("mate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("mate requires at least one gear")
		}

		switch a := args[0].(type) {
		case *sexpSpur:
			if len(args) < 2 {
				return zygo.SexpNull, fmt.Errorf("mate: a spur gear needs an explicit partner")
			}
			b, ok := args[1].(*sexpSpur)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("mate: cannot mate a spur gear with %T", args[1])
			}
			placement, err := mate.Spur(a.profile.PitchRadius, b.profile.PitchRadius, b.spec.Teeth)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("mate: %w", err)
			}
			model.add(Placed{Name: a.name, Kind: KindSpur, Spur: a.profile,
				Transform: geom.RigidTransform{Axis: geom.AxisZ}})
			model.add(Placed{Name: b.name, Kind: KindSpur, Spur: b.profile,
				Transform: placement.Transform})
			return zygo.SexpNull, nil

		case *sexpBevel:
			partnerParams, placement := mate.Bevel(a.g)
			var partner *bevel.Gear
			var partnerName string
			if len(args) >= 2 {
				b, ok := args[1].(*sexpBevel)
				if !ok {
					return zygo.SexpNull, fmt.Errorf("mate: cannot mate a bevel gear with %T", args[1])
				}
				partner = b.g
				partnerName = b.name
			} else {
				g, err := bevel.New(partnerParams)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("mate: partner: %w", err)
				}
				partner = g
			}
			model.add(Placed{Name: a.name, Kind: KindBevel, Bevel: a.g,
				Transform: geom.RigidTransform{Axis: geom.AxisZ}})
			model.add(Placed{Name: partnerName, Kind: KindBevel, Bevel: partner,
				Transform: placement.Transform})
			return zygo.SexpNull, nil

		default:
			return zygo.SexpNull, fmt.Errorf("mate: expected a gear, got %T", args[0])
		}
	})
}

// placedFrom converts a gear wrapper Sexp into a Placed entry.
func placedFrom(s zygo.Sexp, tr geom.RigidTransform) (Placed, error) {
	switch v := s.(type) {
	case *sexpSpur:
		return Placed{Name: v.name, Kind: KindSpur, Spur: v.profile, Transform: tr}, nil
	case *sexpBevel:
		return Placed{Name: v.name, Kind: KindBevel, Bevel: v.g, Transform: tr}, nil
	default:
		return Placed{}, fmt.Errorf("expected a gear, got %T", s)
	}
}
