// Package report defines the serialisable form of a classification result,
// shared by the CLI's --json and --output modes and the HTTP service.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/agbru/orbitcalc/internal/format"
	"github.com/agbru/orbitcalc/internal/orbit"
	"github.com/agbru/orbitcalc/internal/wheel"
)

// Entry is one representative in a report.
type Entry struct {
	Ordinal   int      `json:"ordinal"`
	Label     string   `json:"label"`
	Bits      string   `json:"bits"`
	OrbitSize int      `json:"orbit_size"`
	Spokes    []int    `json:"spokes"`
	Members   []string `json:"members,omitempty"`
}

// Report is a complete classification result.
type Report struct {
	N               int     `json:"n"`
	Action          string  `json:"action"`
	Algorithm       string  `json:"algorithm"`
	Orbits          int     `json:"orbits"`
	Representatives []Entry `json:"representatives"`
	Duration        string  `json:"duration"`
}

// New builds a report. When withMembers is set each entry also lists the
// full orbit of its representative under action, in generation order.
func New(n int, action wheel.Action, algorithm string, reps []orbit.Representative, d time.Duration, withMembers bool) Report {
	r := Report{
		N:               n,
		Action:          action.Name(),
		Algorithm:       algorithm,
		Orbits:          len(reps),
		Representatives: make([]Entry, len(reps)),
		Duration:        format.FormatExecutionDuration(d),
	}
	for i, rep := range reps {
		e := Entry{
			Ordinal:   rep.Ordinal,
			Label:     rep.Label(),
			Bits:      rep.Config.String(),
			OrbitSize: rep.OrbitSize,
			Spokes:    rep.Config.Spokes(),
		}
		if withMembers {
			e.Members = MemberStrings(rep.Orbit(action))
		}
		r.Representatives[i] = e
	}
	return r
}

// MemberStrings renders the members of o as bit strings.
func MemberStrings(o wheel.Orbit) []string {
	members := o.Members()
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.String()
	}
	return out
}

// WriteJSON encodes r as indented JSON followed by a newline.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// WriteText writes r as a commented plain-text table.
func WriteText(w io.Writer, r Report, generated time.Time) error {
	if _, err := fmt.Fprintf(w, "# Orbit Classification Report\n# Generated: %s\n# Algorithm: %s\n# Action: %s\n# Duration: %s\n# N: %d\n# Orbits: %d\n\n",
		generated.Format(time.RFC3339), r.Algorithm, r.Action, r.Duration, r.N, r.Orbits); err != nil {
		return err
	}
	for _, e := range r.Representatives {
		if _, err := fmt.Fprintf(w, "%-6s %s %d %s\n", e.Label, e.Bits, e.OrbitSize, format.FormatSpokes(e.Spokes)); err != nil {
			return err
		}
	}
	return nil
}
