// Package game drives single runs of the external PyRat maze game. It owns a
// mutable command-line configuration, launches the game synchronously, and
// loads the stats file the game reports on stdout.
package game

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/banshee-data/pyrat-bench/internal/monitoring"
)

// DefaultInterpreter and DefaultEntryPoint form the head of every game
// invocation unless overridden on the Game.
const (
	DefaultInterpreter = "python"
	DefaultEntryPoint  = "pyrat.py"
)

// statsPathPattern matches the line the game prints to announce where it
// wrote its stats file. Matching is line-anchored across the full captured
// output.
var statsPathPattern = regexp.MustCompile(`(?m)^Stats can be found at: (.+\.csv)\r?$`)

// Setting is one named option supplied at construction. Construction-time
// settings overlay the defaults in order, caller wins on conflict.
type Setting struct {
	Name  string
	Value Value
}

// Game is the single-run driver. Its option store is freely mutable between
// runs; each Run renders the store into an argv and blocks until the game
// exits. The synchronous and nodrawing flags default to enabled so
// experiments run headless and as fast as possible.
type Game struct {
	// Interpreter invokes the game's entry point, e.g. "python" or a full
	// path to a specific interpreter.
	Interpreter string
	// EntryPoint is the game program handed to the interpreter.
	EntryPoint string

	opts   *Options
	runner CommandRunner
}

// New creates a driver with the default flags pre-set, then applies the
// given settings in order.
func New(settings ...Setting) *Game {
	opts := NewOptions()
	opts.Set("synchronous", Bool(true))
	opts.Set("nodrawing", Bool(true))
	for _, s := range settings {
		opts.Set(s.Name, s.Value)
	}
	return &Game{
		Interpreter: DefaultInterpreter,
		EntryPoint:  DefaultEntryPoint,
		opts:        opts,
		runner:      ExecRunner{},
	}
}

// Set adds or overwrites one option. Later runs pick up the change.
func (g *Game) Set(name string, v Value) { g.opts.Set(name, v) }

// Options exposes the underlying option store.
func (g *Game) Options() *Options { return g.opts }

// SetRunner replaces the subprocess runner. Tests install a MockRunner.
func (g *Game) SetRunner(r CommandRunner) {
	if r != nil {
		g.runner = r
	}
}

// Args renders the full invocation: interpreter, entry point, then one flag
// per option in insertion order.
func (g *Game) Args() []string {
	args := []string{g.Interpreter, g.EntryPoint}
	return append(args, g.opts.Args()...)
}

// Run launches the game with the current configuration and blocks until it
// exits. On success it returns the stats-file path extracted from the game's
// output and the loaded dataset. A non-zero exit, a missing stats line, or
// an unreadable stats file is fatal for the run.
func (g *Game) Run() (string, *Stats, error) {
	argv := g.Args()
	monitoring.Logf("game: running %s", strings.Join(argv, " "))

	out, err := g.runner.CombinedOutput(argv[0], argv[1:]...)
	if err != nil {
		return "", nil, fmt.Errorf("game exited abnormally: %w (output: %s)", err, tail(string(out)))
	}

	path, err := ExtractStatsPath(string(out))
	if err != nil {
		return "", nil, err
	}
	monitoring.Logf("game: stats written to %s", path)

	stats, err := LoadStats(path)
	if err != nil {
		return "", nil, err
	}
	return path, stats, nil
}

// ExtractStatsPath scans captured game output for the stats announcement
// line and returns the path it names. The absence of that line means the
// game did not complete a scored run and is not recoverable.
func ExtractStatsPath(output string) (string, error) {
	m := statsPathPattern.FindStringSubmatch(output)
	if m == nil {
		return "", fmt.Errorf("no stats path in game output (got: %s)", tail(output))
	}
	return m[1], nil
}

// tail keeps error messages readable when the game dumps a lot of output.
func tail(s string) string {
	const max = 400
	s = strings.TrimSpace(s)
	if s == "" {
		return "<empty>"
	}
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max:]
}
