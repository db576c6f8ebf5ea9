package sweep

import (
	"fmt"
	"strings"

	"github.com/banshee-data/pyrat-bench/internal/game"
	"github.com/banshee-data/pyrat-bench/internal/monitoring"
)

// Recorder persists sweep provenance as the sweep progresses. It is optional;
// a nil Recorder keeps the sweep purely in-memory.
type Recorder interface {
	// BeginSweep registers a new sweep and returns its identifier.
	BeginSweep(gridKeys []string) (string, error)
	// RecordRow stores one combination's index labels and reduced statistics.
	RecordRow(sweepID string, position int, index, columns []string, values []float64) error
	// FinishSweep stamps the sweep complete, or failed when runErr is
	// non-nil.
	FinishSweep(sweepID string, runErr error) error
}

// Config describes one sweep.
type Config struct {
	// FixedParams are shared across every run, applied at driver
	// construction.
	FixedParams []game.Setting
	// Grid defines the swept parameters.
	Grid *Grid
	// LinkHeightWidth mirrors a swept "height" onto "width" and vice versa,
	// so a square maze needs only one swept dimension.
	LinkHeightWidth bool
	// Recorder, when set, persists the sweep as it runs.
	Recorder Recorder
}

// Runner executes a sweep: one game run per grid combination, sequentially,
// reusing a single driver whose options are overwritten between runs.
type Runner struct {
	cfg  Config
	game *game.Game
}

// NewRunner builds the runner and its driver from the fixed parameters.
func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:  cfg,
		game: game.New(cfg.FixedParams...),
	}
}

// Game exposes the underlying driver, mainly so tests can install a mock
// command runner and callers can adjust the interpreter or entry point.
func (r *Runner) Game() *game.Game { return r.game }

// Run executes every combination and assembles the result table: one row per
// combination, indexed by the grid's parameter names, columns from the first
// run's mean-reduced statistics. Any run failure aborts the whole sweep.
func (r *Runner) Run() (*Table, error) {
	keys := r.cfg.Grid.Names()
	total := r.cfg.Grid.Count()
	table := NewTable(keys)

	var sweepID string
	if r.cfg.Recorder != nil {
		id, err := r.cfg.Recorder.BeginSweep(keys)
		if err != nil {
			return nil, fmt.Errorf("registering sweep: %w", err)
		}
		sweepID = id
	}

	position := 0
	for combo := range r.cfg.Grid.Combinations() {
		position++
		r.apply(combo)
		monitoring.Logf("sweep: run %d/%d (%s)", position, total, describe(combo))

		_, stats, err := r.game.Run()
		if err != nil {
			err = fmt.Errorf("run %d/%d (%s): %w", position, total, describe(combo), err)
			r.finish(sweepID, err)
			return nil, err
		}

		summary := stats.Mean()
		index := indexLabels(combo)
		if err := table.AppendRow(index, summary.Columns(), summary.Values()); err != nil {
			err = fmt.Errorf("run %d/%d (%s): %w", position, total, describe(combo), err)
			r.finish(sweepID, err)
			return nil, err
		}

		if r.cfg.Recorder != nil {
			if err := r.cfg.Recorder.RecordRow(sweepID, position, index, summary.Columns(), summary.Values()); err != nil {
				err = fmt.Errorf("recording run %d/%d: %w", position, total, err)
				r.finish(sweepID, err)
				return nil, err
			}
		}
	}

	r.finish(sweepID, nil)
	return table, nil
}

// apply overlays one combination onto the driver, overwriting any previous
// values, and mirrors height/width when linking is enabled.
func (r *Runner) apply(combo Combination) {
	for _, s := range combo {
		r.game.Set(s.Name, s.Value)
		if !r.cfg.LinkHeightWidth {
			continue
		}
		switch s.Name {
		case "height":
			r.game.Set("width", s.Value)
		case "width":
			r.game.Set("height", s.Value)
		}
	}
}

func (r *Runner) finish(sweepID string, runErr error) {
	if r.cfg.Recorder == nil {
		return
	}
	if err := r.cfg.Recorder.FinishSweep(sweepID, runErr); err != nil {
		monitoring.Logf("sweep: finishing record %s: %v", sweepID, err)
	}
}

// indexLabels renders a combination into table row labels. The agent-script
// and interpreter options appear as file stems rather than full paths.
func indexLabels(combo Combination) []string {
	out := make([]string, len(combo))
	for i, s := range combo {
		if s.Name == "rat" || s.Name == "python" {
			out[i] = s.Value.Stem()
		} else {
			out[i] = s.Value.String()
		}
	}
	return out
}

func describe(combo Combination) string {
	parts := make([]string, len(combo))
	for i, s := range combo {
		parts[i] = s.Name + "=" + s.Value.String()
	}
	return strings.Join(parts, " ")
}
