package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/orbitcalc/internal/config"
	apperrors "github.com/agbru/orbitcalc/internal/errors"
	"github.com/agbru/orbitcalc/internal/orbit"
	"github.com/agbru/orbitcalc/internal/orchestration"
)

func testConfig() config.AppConfig {
	return config.AppConfig{N: 7, Algo: "memo", Action: "twisted", Timeout: time.Minute}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	classifiers := []orbit.Classifier{orbit.NewDefaultFactory().MustGet("memo")}
	m := NewModel(context.Background(), classifiers, testConfig(), "v1.0.0")
	t.Cleanup(m.cancel)
	return m
}

func sevenSlotReps(t *testing.T) []orbit.Representative {
	t.Helper()
	reps, err := orbit.Classify(7)
	require.NoError(t, err)
	return reps
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_FinalResultPopulatesList(t *testing.T) {
	m := newTestModel(t)
	reps := sevenSlotReps(t)

	m, _ = update(t, m, FinalResultMsg{Result: orchestration.ClassificationResult{Name: "Memoized", Representatives: reps}})
	assert.Len(t, m.reps, 10)
	assert.Equal(t, "Memoized", m.strategy)

	m, _ = update(t, m, ClassificationCompleteMsg{ExitCode: apperrors.ExitSuccess})
	assert.True(t, m.done)
	assert.Equal(t, apperrors.ExitSuccess, m.exitCode)
}

func TestModel_StaleGenerationIgnored(t *testing.T) {
	m := newTestModel(t)
	m.generation = 2

	m, _ = update(t, m, FinalResultMsg{Result: orchestration.ClassificationResult{Representatives: sevenSlotReps(t)}, Generation: 1})
	assert.Empty(t, m.reps)

	m, _ = update(t, m, ClassificationCompleteMsg{ExitCode: apperrors.ExitErrorMismatch, Generation: 1})
	assert.False(t, m.done)

	m, cmd := update(t, m, ContextCancelledMsg{Err: context.Canceled, Generation: 1})
	assert.False(t, m.done)
	assert.Nil(t, cmd)
}

func TestModel_ProgressFromCancelledRunIgnored(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, ProgressMsg{AverageProgress: 0.4, Generation: 0})
	require.Equal(t, 1, m.samples.Len())

	m, _ = update(t, m, keyMsg("+"))
	require.Equal(t, uint64(1), m.generation)
	assert.Equal(t, 0, m.samples.Len())
	assert.Zero(t, m.average)

	m, _ = update(t, m, ProgressMsg{AverageProgress: 0.9, ETA: time.Second, Generation: 0})
	assert.Equal(t, 0, m.samples.Len(), "progress of the cancelled run must not reach the sparkline")
	assert.Zero(t, m.average)
	assert.Zero(t, m.eta)

	m, _ = update(t, m, ProgressMsg{AverageProgress: 0.25, Generation: 1})
	assert.Equal(t, 1, m.samples.Len())
	assert.InDelta(t, 0.25, m.average, 1e-9)
}

func TestModel_Navigation(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 12})
	m, _ = update(t, m, FinalResultMsg{Result: orchestration.ClassificationResult{Representatives: sevenSlotReps(t)}})

	m, _ = update(t, m, keyMsg("k"))
	assert.Equal(t, 0, m.selected, "selection must not go above the first row")

	for range 20 {
		m, _ = update(t, m, keyMsg("j"))
	}
	assert.Equal(t, 9, m.selected, "selection must stop at the last row")
	rows := visibleRows(m.bodyHeight())
	assert.LessOrEqual(t, m.offset, m.selected)
	assert.Less(t, m.selected, m.offset+rows)
}

func TestModel_ToggleActionRestarts(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, FinalResultMsg{Result: orchestration.ClassificationResult{Representatives: sevenSlotReps(t)}})
	oldCtx := m.ctx

	m, cmd := update(t, m, keyMsg("a"))
	require.NotNil(t, cmd)
	assert.Equal(t, "cyclic", m.config.Action)
	assert.Equal(t, uint64(1), m.generation)
	assert.Empty(t, m.reps)
	assert.ErrorIs(t, oldCtx.Err(), context.Canceled)
	assert.NoError(t, m.ctx.Err())

	m, _ = update(t, m, keyMsg("a"))
	assert.Equal(t, "twisted", m.config.Action)
}

func TestModel_GrowAndShrinkBounds(t *testing.T) {
	m := newTestModel(t)
	m.config.N = orbit.MaxN
	m, cmd := update(t, m, keyMsg("+"))
	assert.Nil(t, cmd)
	assert.Equal(t, orbit.MaxN, m.config.N)

	m, _ = update(t, m, keyMsg("-"))
	assert.Equal(t, orbit.MaxN-1, m.config.N)

	m.config.N = 1
	m, cmd = update(t, m, keyMsg("-"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.config.N)
}

func TestModel_ErrorMsg(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
	m, _ = update(t, m, ErrorMsg{Err: errors.New("boom")})
	assert.True(t, m.done)
	assert.Contains(t, m.View(), "boom")
}

func TestModel_QuitCancelsContext(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.ErrorIs(t, m.ctx.Err(), context.Canceled)
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, "Initializing...", m.View())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	m, _ = update(t, m, ProgressMsg{AverageProgress: 0.5})
	assert.Contains(t, m.View(), "Classifying...")

	m, _ = update(t, m, FinalResultMsg{Result: orchestration.ClassificationResult{Name: "Memoized", Representatives: sevenSlotReps(t)}})
	m, _ = update(t, m, ClassificationCompleteMsg{})
	view := m.View()
	for _, want := range []string{"Orbit Browser", "N=7 twisted memo", "Orbit I", "0000000", "10 orbits"} {
		assert.True(t, strings.Contains(view, want), "view is missing %q", want)
	}
}

func TestClampSelection(t *testing.T) {
	tests := []struct {
		name                          string
		selected, offset, count, rows int
		wantSelected, wantOffset      int
	}{
		{"empty", 3, 2, 0, 5, 0, 0},
		{"scroll down", 6, 0, 10, 5, 6, 2},
		{"scroll up", 1, 4, 10, 5, 1, 1},
		{"clamp high", 15, 0, 10, 5, 9, 5},
		{"clamp low", -2, 0, 10, 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, o := clampSelection(tt.selected, tt.offset, tt.count, tt.rows)
			assert.Equal(t, tt.wantSelected, s)
			assert.Equal(t, tt.wantOffset, o)
		})
	}
}

func TestRenderRing(t *testing.T) {
	reps := sevenSlotReps(t)
	ring := renderRing(reps[0].Config)
	assert.Equal(t, 7, strings.Count(ring, string(ringOn)))
	assert.Equal(t, 7, strings.Count(ring, string(ringOff)))
}
