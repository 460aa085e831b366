package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/orbitcalc/internal/format"
	"github.com/agbru/orbitcalc/internal/metrics"
	"github.com/agbru/orbitcalc/internal/orbit"
	"github.com/agbru/orbitcalc/internal/wheel"
)

// Glyphs of the spoke ring.
const (
	ringOn  = '●'
	ringOff = '·'
)

// detailMemberLimit caps the members listed in the detail panel.
const detailMemberLimit = 16

// visibleRows returns the number of list rows that fit in height lines of
// panel, borders excluded.
func visibleRows(height int) int {
	return max(height-2, 1)
}

// clampSelection keeps selected inside 0..count-1 and scrolls offset so that
// the selection is visible.
func clampSelection(selected, offset, count, rows int) (int, int) {
	if count == 0 {
		return 0, 0
	}
	selected = min(max(selected, 0), count-1)
	if selected < offset {
		offset = selected
	}
	if selected >= offset+rows {
		offset = selected - rows + 1
	}
	offset = min(max(offset, 0), max(count-rows, 0))
	return selected, offset
}

// renderList draws the representative list.
func renderList(reps []orbit.Representative, selected, offset, width, height int) string {
	rows := visibleRows(height)
	var sb strings.Builder
	if len(reps) == 0 {
		sb.WriteString(dimStyle.Render("No orbits yet"))
	}
	end := min(offset+rows, len(reps))
	for i := offset; i < end; i++ {
		r := reps[i]
		line := fmt.Sprintf("%s %s %3d", labelStyle.Render(r.Label()), r.Config, r.OrbitSize)
		if i == selected {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
		if i < end-1 {
			sb.WriteByte('\n')
		}
	}
	return panelStyle.Width(max(width-2, 1)).Height(rows).Render(sb.String())
}

// renderRing colours each rune of the spoke ring.
func renderRing(c wheel.Config) string {
	ring := format.FormatRing(c.Spokes(), c.Len(), ringOn, ringOff)
	var sb strings.Builder
	for _, r := range ring {
		if r == ringOn {
			sb.WriteString(ringOnStyle.Render(string(r)))
		} else {
			sb.WriteString(ringOffStyle.Render(string(r)))
		}
	}
	return sb.String()
}

// renderDetail draws the panel describing the selected orbit and the size
// profile of the whole universe.
func renderDetail(reps []orbit.Representative, selected int, action wheel.Action, n, width, height int) string {
	var lines []string
	if len(reps) == 0 {
		lines = append(lines, dimStyle.Render("Select an orbit"))
	} else {
		r := reps[selected]
		o := r.Orbit(action)
		members := make([]string, 0, min(o.Len(), detailMemberLimit))
		for i, m := range o.Members() {
			if i == detailMemberLimit {
				members = append(members, fmt.Sprintf("... (+%d)", o.Len()-detailMemberLimit))
				break
			}
			members = append(members, m.String())
		}

		lines = append(lines,
			titleStyle.Render("Orbit "+r.Label()),
			labelStyle.Render("Bits")+r.Config.String(),
			labelStyle.Render("Spokes")+format.FormatSpokes(r.Config.Spokes()),
			labelStyle.Render("Ring")+renderRing(r.Config),
			labelStyle.Render("Size")+fmt.Sprintf("%d of %d", r.OrbitSize, action.Period(n)),
			"",
			dimStyle.Render("Members"),
		)
		lines = append(lines, members...)

		stats := metrics.ComputeOrbitStats(n, reps)
		sizes := make([]int, len(reps))
		for i, rep := range reps {
			sizes[i] = rep.OrbitSize
		}
		lines = append(lines,
			"",
			dimStyle.Render(fmt.Sprintf("Profile  %d orbits, %d configurations", stats.Orbits, stats.Configurations)),
			accentStyle.Render(RenderSparkline(SizeProfile(sizes))),
		)
	}

	rows := visibleRows(height)
	if len(lines) > rows {
		lines = lines[:rows]
	}
	return panelStyle.Width(max(width-2, 1)).Height(rows).Render(strings.Join(lines, "\n"))
}

// renderProgress draws the progress bar and the recent progress samples.
func renderProgress(avg float64, eta time.Duration, samples []float64, width int) string {
	barWidth := max(min(width-30, 40), 10)
	bar := format.FormatProgressBarWithETA(avg, eta, barWidth)
	return lipgloss.JoinVertical(lipgloss.Left,
		accentStyle.Render(bar),
		dimStyle.Render(RenderSparkline(samples)),
	)
}

// renderFooter draws the key help and the run status.
func renderFooter(k KeyMap, status string, width int) string {
	var parts []string
	for _, b := range k.ShortHelp() {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	row := strings.Join(parts, "  ")
	if status != "" {
		row = status + "  " + row
	}
	return lipgloss.NewStyle().Width(max(width, lipgloss.Width(row))).Render(row)
}
