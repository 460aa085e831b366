package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/orbitcalc/internal/format"
	"github.com/agbru/orbitcalc/internal/orbit"
	"github.com/agbru/orbitcalc/internal/orchestration"
	"github.com/agbru/orbitcalc/internal/progress"
	"github.com/agbru/orbitcalc/internal/ui"
	"github.com/agbru/orbitcalc/internal/wheel"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultAlgo is the initial strategy. Empty or "all" selects orbit.DefaultClassifier.
	DefaultAlgo string
	// DefaultAction is the initial action name.
	DefaultAction string
	// Timeout bounds each classification.
	Timeout time.Duration
	// Workers is passed to the parallel strategy.
	Workers int
}

// REPL is an interactive orbit classification session.
type REPL struct {
	config        REPLConfig
	factory       orbit.ClassifierFactory
	currentAlgo   string
	currentAction wheel.Action
	verbose       bool
	in            io.Reader
	out           io.Writer
}

// NewREPL returns a session reading from stdin and writing to stdout.
func NewREPL(factory orbit.ClassifierFactory, config REPLConfig) *REPL {
	algo := config.DefaultAlgo
	if _, err := factory.Get(algo); err != nil {
		algo = orbit.DefaultClassifier
	}
	return &REPL{
		config:        config,
		factory:       factory,
		currentAlgo:   algo,
		currentAction: resolveAction(config.DefaultAction),
		in:            os.Stdin,
		out:           os.Stdout,
	}
}

// SetInput sets the input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets the output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads and executes commands until exit, quit or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"orbit> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		if line := strings.TrimSpace(input); line != "" && !r.processCommand(line) {
			return
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s== Orbit Classifier - Interactive Mode ==%s\n\n", ui.ColorBold(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	rows := [][2]string{
		{"classify <n>", "Classify the n-slot wheel (or type n alone)"},
		{"orbit <bits>", "Show the orbit of one configuration, e.g. orbit 0010010"},
		{"algo <name>", "Change strategy (" + strings.Join(r.factory.List(), ", ") + ")"},
		{"action <name>", "Change action (" + strings.Join(wheel.ActionNames(), ", ") + ")"},
		{"compare <n>", "Run every strategy and check they agree"},
		{"verbose", "Toggle orbit member listing"},
		{"list", "List available strategies"},
		{"status", "Display current configuration"},
		{"help", "Display this help"},
		{"exit / quit", "Exit interactive mode"},
	}
	for _, row := range rows {
		fmt.Fprintf(r.out, "  %s%-14s%s - %s\n", ui.ColorYellow(), row[0], ui.ColorReset(), row[1])
	}
}

// processCommand executes one line and reports whether the session continues.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "classify", "c":
		if n, ok := r.parseN("classify", args); ok {
			r.classify(n)
		}
	case "orbit", "o":
		r.cmdOrbit(args)
	case "algo", "a":
		r.cmdAlgo(args)
	case "action":
		r.cmdAction(args)
	case "compare", "cmp":
		if n, ok := r.parseN("compare", args); ok {
			r.compare(n)
		}
	case "verbose", "v":
		r.verbose = !r.verbose
		fmt.Fprintf(r.out, "Member listing: %s%t%s\n", ui.ColorGreen(), r.verbose, ui.ColorReset())
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if n, err := strconv.Atoi(cmd); err == nil {
			r.classify(n)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}
	return true
}

func (r *REPL) parseN(cmd string, args []string) (int, bool) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s <n>%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return 0, false
	}
	return n, true
}

func (r *REPL) options() orbit.Options {
	return orbit.Options{Action: r.currentAction, Workers: r.config.Workers}
}

func (r *REPL) classify(n int) {
	c, err := r.factory.Get(r.currentAlgo)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	progressChan := make(chan progress.ProgressUpdate, orchestration.ProgressBufferMultiplier)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	reps, err := c.Classify(ctx, progressChan, 0, n, r.options())
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	DisplayResult(
		orchestration.ClassificationResult{Name: c.Name(), Representatives: reps, Duration: duration},
		orchestration.PresentationOptions{N: n, Algo: r.currentAlgo, Action: r.currentAction.Name(), Verbose: r.verbose},
		r.out)
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdOrbit(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: orbit <bits>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	c, err := wheel.Parse(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid configuration: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	o := wheel.OrbitOf(r.currentAction, c)
	fmt.Fprintf(r.out, "Orbit of %s%s%s under %s: %s%d%s members, key %s\n",
		ui.ColorCyan(), c, ui.ColorReset(), r.currentAction.Name(),
		ui.ColorGreen(), o.Len(), ui.ColorReset(), o.Key())
	fmt.Fprintf(r.out, "  spokes  %s\n", format.FormatSpokes(c.Spokes()))
	fmt.Fprintf(r.out, "  ring    %s\n", format.FormatRing(c.Spokes(), c.Len(), '●', '·'))
	fmt.Fprintf(r.out, "  members %s\n", FormatMembers(o, 0))
}

func (r *REPL) cmdAlgo(args []string) {
	available := strings.Join(r.factory.List(), ", ")
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\nAvailable strategies: %s\n", ui.ColorRed(), ui.ColorReset(), available)
		return
	}
	name := strings.ToLower(args[0])
	if _, err := r.factory.Get(name); err != nil {
		fmt.Fprintf(r.out, "%sUnknown strategy: %s%s\nAvailable strategies: %s\n", ui.ColorRed(), name, ui.ColorReset(), available)
		return
	}
	r.currentAlgo = name
	fmt.Fprintf(r.out, "Strategy changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

func (r *REPL) cmdAction(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: action <name>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	a, err := wheel.ActionByName(strings.ToLower(args[0]))
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\nAvailable actions: %s\n", ui.ColorRed(), err, ui.ColorReset(), strings.Join(wheel.ActionNames(), ", "))
		return
	}
	r.currentAction = a
	fmt.Fprintf(r.out, "Action changed to: %s%s%s\n", ui.ColorGreen(), a.Name(), ui.ColorReset())
}

func (r *REPL) compare(n int) {
	classifiers := orchestration.GetClassifiersToRun("all", r.factory)

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	results := orchestration.ExecuteClassifications(ctx, classifiers, n, r.options(), orchestration.NullProgressReporter{}, io.Discard)

	fmt.Fprintf(r.out, "\n%sComparison for N=%d (%s):%s\n", ui.ColorBold(), n, r.currentAction.Name(), ui.ColorReset())
	var reference []orbit.Representative
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(r.out, "  %s%-10s%s: %sError - %v%s\n",
				ui.ColorYellow(), res.Name, ui.ColorReset(), ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		if reference == nil {
			reference = res.Representatives
		}
		status := ui.ColorGreen() + "consistent" + ui.ColorReset()
		if !orchestration.SameRepresentatives(reference, res.Representatives) {
			status = ui.ColorRed() + "INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-10s%s: %s%10s%s %4d orbits  %s\n",
			ui.ColorYellow(), res.Name, ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(res.Duration), ui.ColorReset(),
			len(res.Representatives), status)
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable strategies:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "> " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%s%s\n", marker, ui.ColorYellow(), name, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Strategy:  %s%s%s\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Action:    %s%s%s\n", ui.ColorCyan(), r.currentAction.Name(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:   %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Members:   %s%t%s\n", ui.ColorCyan(), r.verbose, ui.ColorReset())
	fmt.Fprintln(r.out)
}
