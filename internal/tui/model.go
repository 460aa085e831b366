package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/orbitcalc/internal/config"
	apperrors "github.com/agbru/orbitcalc/internal/errors"
	"github.com/agbru/orbitcalc/internal/orbit"
	"github.com/agbru/orbitcalc/internal/orchestration"
	"github.com/agbru/orbitcalc/internal/wheel"
)

// Layout constants of the browser.
const (
	headerHeight          = 1
	footerHeight          = 1
	progressHeight        = 2
	minBodyHeight         = 6
	ListPanelWidthPercent = 40
	progressSamples       = 64
)

// ExecutionState holds the execution-related fields of a browser session.
type ExecutionState struct {
	ctx         context.Context
	cancel      context.CancelFunc
	classifiers []orbit.Classifier
	generation  uint64
	done        bool
	exitCode    int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the height available to the list and detail panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight-progressHeight, minBodyHeight)
}

// listWidth returns the width of the representative list.
func (l LayoutManager) listWidth() int {
	return l.width * ListPanelWidthPercent / 100
}

// detailWidth returns the width of the detail panel.
func (l LayoutManager) detailWidth() int {
	return l.width - l.listWidth()
}

// Model is the root bubbletea model of the orbit browser.
type Model struct {
	header HeaderModel
	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	config    config.AppConfig
	ref       *programRef

	samples  *RingBuffer
	average  float64
	eta      time.Duration
	reps     []orbit.Representative
	results  []orchestration.ClassificationResult
	strategy string
	selected int
	offset   int
	err      error
}

// NewModel creates a browser for the universe described by cfg.
func NewModel(parentCtx context.Context, classifiers []orbit.Classifier, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	m := Model{
		header: NewHeaderModel(version),
		keymap: DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:         ctx,
			cancel:      cancel,
			classifiers: classifiers,
			exitCode:    apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		config:    cfg,
		ref:       &programRef{},
		samples:   NewRingBuffer(progressSamples),
	}
	m.header.SetRun(m.runDescription())
	return m
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return m.startCmds()
}

func (m Model) startCmds() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startClassificationCmd(m.ref, m.ctx, m.classifiers, m.config, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// runDescription summarizes the current run parameters for the header.
func (m Model) runDescription() string {
	return fmt.Sprintf("N=%d %s %s", m.config.N, m.config.Action, m.config.Algo)
}

// action returns the symmetry action of the current run.
func (m Model) action() wheel.Action {
	a, err := wheel.ActionByName(m.config.Action)
	if err != nil {
		return wheel.TwistedRotation{}
	}
	return a
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(m.width)
		m.selected, m.offset = clampSelection(m.selected, m.offset, len(m.reps), visibleRows(m.bodyHeight()))
		return m, nil

	case ProgressMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.average = msg.AverageProgress
		m.eta = msg.ETA
		m.samples.Push(msg.AverageProgress * 100)
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ComparisonResultsMsg:
		if msg.Generation == m.generation {
			m.results = msg.Results
		}
		return m, nil

	case FinalResultMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.reps = msg.Result.Representatives
		m.strategy = msg.Result.Name
		m.selected, m.offset = 0, 0
		return m, nil

	case ErrorMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.err = msg.Err
		m.done = true
		m.header.SetDone()
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tickCmd()

	case ClassificationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.average = 1
		m.header.SetDone()
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.header.SetDone()
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := visibleRows(m.bodyHeight())
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		m.selected--
	case key.Matches(msg, m.keymap.Down):
		m.selected++
	case key.Matches(msg, m.keymap.PageUp):
		m.selected -= rows
	case key.Matches(msg, m.keymap.PageDown):
		m.selected += rows

	case key.Matches(msg, m.keymap.Rerun):
		return m.restart()

	case key.Matches(msg, m.keymap.ToggleAction):
		if m.config.Action == "cyclic" {
			m.config.Action = "twisted"
		} else {
			m.config.Action = "cyclic"
		}
		return m.restart()

	case key.Matches(msg, m.keymap.Grow):
		if m.config.N >= orbit.MaxN {
			return m, nil
		}
		m.config.N++
		return m.restart()

	case key.Matches(msg, m.keymap.Shrink):
		if m.config.N <= 1 {
			return m, nil
		}
		m.config.N--
		return m.restart()

	default:
		return m, nil
	}

	m.selected, m.offset = clampSelection(m.selected, m.offset, len(m.reps), rows)
	return m, nil
}

// restart cancels the current run and starts a new one with the current
// configuration. Messages from the cancelled run are discarded by generation.
func (m Model) restart() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	m.generation++
	m.ctx, m.cancel = context.WithCancel(m.parentCtx)

	m.header.Reset()
	m.header.SetRun(m.runDescription())
	m.samples.Reset()
	m.average = 0
	m.eta = 0
	m.reps = nil
	m.results = nil
	m.strategy = ""
	m.selected, m.offset = 0, 0
	m.err = nil
	m.done = false
	m.exitCode = apperrors.ExitSuccess

	return m, m.startCmds()
}

// status returns the footer status of the current run.
func (m Model) status() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("Error: " + m.err.Error())
	case m.done && m.exitCode == apperrors.ExitErrorMismatch:
		return errorStyle.Render("Strategies disagree")
	case m.done:
		return doneStyle.Render(fmt.Sprintf("%d orbits (%s)", len(m.reps), m.strategy))
	default:
		return dimStyle.Render("Classifying...")
	}
}

// View renders the browser.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.header.View()
	progress := renderProgress(m.average, m.eta, m.samples.Slice(), m.width)
	list := renderList(m.reps, m.selected, m.offset, m.listWidth(), m.bodyHeight())
	detail := renderDetail(m.reps, m.selected, m.action(), m.config.N, m.detailWidth(), m.bodyHeight())
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
	footer := renderFooter(m.keymap, m.status(), m.width)

	return lipgloss.JoinVertical(lipgloss.Left, header, progress, body, footer)
}

// Run is the public entry point of the browser. It runs the bubbletea
// program and returns the exit code of the last run.
func Run(ctx context.Context, classifiers []orbit.Classifier, cfg config.AppConfig, version string) int {
	initTUIStyles()

	model := NewModel(ctx, classifiers, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startClassificationCmd returns a tea.Cmd that runs the classifiers. Each
// run is bounded by cfg.Timeout; the session itself is not.
func startClassificationCmd(ref *programRef, ctx context.Context, classifiers []orbit.Classifier, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		runCtx := ctx
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}

		progressReporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUIResultPresenter{ref: ref, generation: gen}

		results := orchestration.ExecuteClassifications(runCtx, classifiers, cfg.N, cfg.ToOrbitOptions(), progressReporter, io.Discard)
		presOpts := orchestration.PresentationOptions{
			N:       cfg.N,
			Algo:    cfg.Algo,
			Action:  cfg.Action,
			Verbose: cfg.Verbose,
			Details: cfg.Details,
		}
		exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, io.Discard)

		return ClassificationCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
