package orbit

import (
	"github.com/agbru/orbitcalc/internal/format"
	"github.com/agbru/orbitcalc/internal/wheel"
)

// Representative is the canonical member of one orbit.
type Representative struct {
	// Ordinal is the 1-based position of the orbit in discovery order.
	Ordinal int
	// Config is the first configuration of the orbit in enumeration order.
	Config wheel.Config
	// OrbitSize is the number of distinct configurations in the orbit.
	OrbitSize int
}

// Label returns the human-facing label of the orbit, a roman numeral of its ordinal.
func (r Representative) Label() string {
	return format.FormatRoman(r.Ordinal)
}

// Orbit recomputes the full orbit of the representative under a.
func (r Representative) Orbit(a wheel.Action) wheel.Orbit {
	return wheel.OrbitOf(a, r.Config)
}

// Configs extracts the configurations of reps in order.
func Configs(reps []Representative) []wheel.Config {
	out := make([]wheel.Config, len(reps))
	for i, r := range reps {
		out[i] = r.Config
	}
	return out
}
