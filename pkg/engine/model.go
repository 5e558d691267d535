package engine

import (
	"fmt"

	"github.com/chazu/gearkit/pkg/bevel"
	"github.com/chazu/gearkit/pkg/gear"
	"github.com/chazu/gearkit/pkg/geom"
)

// GearKind distinguishes the two gear families the DSL can build.
type GearKind int

const (
	KindSpur GearKind = iota
	KindBevel
)

func (k GearKind) String() string {
	switch k {
	case KindSpur:
		return "spur"
	case KindBevel:
		return "bevel"
	default:
		return "unknown"
	}
}

// Placed is one gear of an evaluated model together with the rigid transform
// that positions it. The first gear of a mated pair carries the identity
// transform.
type Placed struct {
	Name      string
	Kind      GearKind
	Spur      *gear.Profile // set when Kind == KindSpur
	Bevel     *bevel.Gear   // set when Kind == KindBevel
	Transform geom.RigidTransform
}

// Model is the ordered list of placed gears produced by one evaluation.
type Model struct {
	Gears []Placed
}

// add appends a placed gear, naming it gear-N when the name is empty.
func (m *Model) add(p Placed) {
	if p.Name == "" {
		p.Name = fmt.Sprintf("gear-%d", len(m.Gears)+1)
	}
	m.Gears = append(m.Gears, p)
}
