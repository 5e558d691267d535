package bevel

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/gearkit/pkg/gear"
)

func validParams() Params {
	return Params{
		Gear: gear.Spec{
			Module:           5,
			Teeth:            20,
			PressureAngleDeg: 20,
			Samples:          8,
		},
		ConeAngleDeg: 45,
		FaceWidth:    15,
		Sections:     10,
	}
}

func TestNewDerivedQuantities(t *testing.T) {
	g, err := New(validParams())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if g.PitchRadius != 50 {
		t.Errorf("PitchRadius = %v, want exactly 50", g.PitchRadius)
	}
	wantApex := 50 / math.Sin(math.Pi/4) // ~70.71
	if math.Abs(g.ApexDistance-wantApex) > 1e-9 {
		t.Errorf("ApexDistance = %v, want %v", g.ApexDistance, wantApex)
	}
}

func TestNewSectionStackOrdering(t *testing.T) {
	g, err := New(validParams())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(g.Sections) != 10 {
		t.Fatalf("got %d sections, want 10", len(g.Sections))
	}
	if g.Truncated() {
		t.Error("Truncated() = true for a stack well above the scale floor")
	}

	first := g.Sections[0]
	if first.Scale != 1.0 {
		t.Errorf("large-end scale = %v, want exactly 1.0", first.Scale)
	}
	if first.Offset != 0 {
		t.Errorf("large-end offset = %v, want 0", first.Offset)
	}

	for i := 1; i < len(g.Sections); i++ {
		prev, cur := g.Sections[i-1], g.Sections[i]
		if cur.Offset <= prev.Offset {
			t.Fatalf("section %d offset %g not increasing (prev %g)", i, cur.Offset, prev.Offset)
		}
		if cur.Scale >= prev.Scale {
			t.Fatalf("section %d scale %g not strictly decreasing (prev %g)", i, cur.Scale, prev.Scale)
		}
	}

	last := g.Sections[len(g.Sections)-1]
	if math.Abs(last.Offset-15) > 1e-12 {
		t.Errorf("small-end offset = %v, want faceWidth 15", last.Offset)
	}
	wantScale := (g.ApexDistance - 15) / g.ApexDistance
	if math.Abs(last.Scale-wantScale) > 1e-12 {
		t.Errorf("small-end scale = %v, want %v", last.Scale, wantScale)
	}
}

func TestNewSectionsShareRingSize(t *testing.T) {
	g, err := New(validParams())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	// All sections use the same sample count so downstream lofting sees
	// matching point counts.
	want := len(g.Sections[0].Points)
	for i, s := range g.Sections {
		if len(s.Points) != want {
			t.Fatalf("section %d has %d points, want %d", i, len(s.Points), want)
		}
	}
}

func TestNewSectionRadiiScale(t *testing.T) {
	g, err := New(validParams())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for i, s := range g.Sections {
		want := g.PitchRadius * s.Scale
		if math.Abs(s.Radius-want) > 1e-12 {
			t.Errorf("section %d radius = %g, want %g", i, s.Radius, want)
		}
		// The profile itself must be scaled too, not just annotated: its
		// outermost point is the scaled tip radius.
		tip := 0.0
		for _, p := range s.Points {
			if r := p.Length(); r > tip {
				tip = r
			}
		}
		wantTip := (g.PitchRadius + g.Params.Gear.Module) * s.Scale
		if math.Abs(tip-wantTip) > 1e-9 {
			t.Errorf("section %d tip radius = %g, want %g", i, tip, wantTip)
		}
	}
}

func TestNewFaceWidthAtApexDistance(t *testing.T) {
	p := validParams()
	p.FaceWidth = 50 / math.Sin(math.Pi/4) // exactly the apex distance
	_, err := New(p)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("New() error = %v, want ConfigError", err)
	}
	if ce.Field != "faceWidth" {
		t.Errorf("ConfigError.Field = %q, want faceWidth", ce.Field)
	}

	p.FaceWidth = 100 // beyond the apex
	if _, err := New(p); err == nil {
		t.Fatal("New() accepted faceWidth beyond the apex distance")
	}
}

func TestNewConfigErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Params)
		wantField string
	}{
		{"one section", func(p *Params) { p.Sections = 1 }, "sections"},
		{"zero cone angle", func(p *Params) { p.ConeAngleDeg = 0 }, "coneAngle"},
		{"flat cone", func(p *Params) { p.ConeAngleDeg = 90 }, "coneAngle"},
		{"zero face width", func(p *Params) { p.FaceWidth = 0 }, "faceWidth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			_, err := New(p)
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("New() error = %v, want ConfigError", err)
			}
			if ce.Field != tt.wantField {
				t.Errorf("ConfigError.Field = %q, want %q", ce.Field, tt.wantField)
			}
		})
	}
}

func TestNewPropagatesParamError(t *testing.T) {
	p := validParams()
	p.Gear.Teeth = 0
	_, err := New(p)
	var pe *gear.ParamError
	if !errors.As(err, &pe) {
		t.Fatalf("New() error = %v, want gear.ParamError", err)
	}
}

func TestNewDropsTinySections(t *testing.T) {
	// A steep, deep cone: apex distance just above the face width, so the
	// small-end sections fall under the scale floor and are dropped.
	p := validParams()
	p.Gear.Module = 1
	p.Gear.Teeth = 20 // pitch radius 10
	p.ConeAngleDeg = 45
	p.FaceWidth = 14 // apex ~14.14, small-end scale ~0.010
	g, err := New(p)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !g.Truncated() {
		t.Fatal("Truncated() = false, want true")
	}
	if len(g.Sections) == 0 {
		t.Fatal("all sections dropped")
	}
	if len(g.Sections) >= p.Sections {
		t.Fatalf("got %d sections, want fewer than %d", len(g.Sections), p.Sections)
	}
	for i, s := range g.Sections {
		if s.Scale <= MinScale {
			t.Errorf("section %d kept with scale %g <= MinScale", i, s.Scale)
		}
	}
}

func TestComplement(t *testing.T) {
	p := validParams()
	p.ConeAngleDeg = 30
	c := p.Complement()
	if c.ConeAngleDeg != 60 {
		t.Errorf("Complement() cone angle = %v, want 60", c.ConeAngleDeg)
	}
	if c.Gear != p.Gear || c.FaceWidth != p.FaceWidth || c.Sections != p.Sections {
		t.Error("Complement() changed fields other than the cone angle")
	}
}

func TestSectionRing3D(t *testing.T) {
	g, err := New(validParams())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s := g.Sections[3]
	ring := s.Ring3D()
	if len(ring) != len(s.Points) {
		t.Fatalf("Ring3D() has %d points, want %d", len(ring), len(s.Points))
	}
	for i, p := range ring {
		if p.Z != s.Offset {
			t.Fatalf("point %d at z = %g, want %g", i, p.Z, s.Offset)
		}
	}
}
