// Package sweep runs the game across every combination of a parameter grid
// and assembles the mean-reduced results into a single table.
package sweep

import (
	"iter"

	"github.com/banshee-data/pyrat-bench/internal/game"
)

// Grid maps parameter names to ordered candidate-value lists. Iteration
// order over combinations follows the grid's own insertion order, so a grid
// is deterministic given the same Add calls.
type Grid struct {
	names  []string
	values map[string][]game.Value
}

// NewGrid returns an empty parameter grid.
func NewGrid() *Grid {
	return &Grid{values: make(map[string][]game.Value)}
}

// Add registers candidate values for a parameter. Adding an existing name
// replaces its values but keeps its position.
func (g *Grid) Add(name string, values ...game.Value) {
	if _, ok := g.values[name]; !ok {
		g.names = append(g.names, name)
	}
	g.values[name] = values
}

// Names returns the parameter names in insertion order.
func (g *Grid) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Count returns the number of combinations the grid enumerates. An empty
// grid, or any parameter with no candidate values, counts zero.
func (g *Grid) Count() int {
	if len(g.names) == 0 {
		return 0
	}
	n := 1
	for _, name := range g.names {
		n *= len(g.values[name])
	}
	return n
}

// Combination is one element of the cartesian product: one setting per grid
// parameter, in grid order.
type Combination []game.Setting

// Combinations lazily yields every element of the cartesian product of the
// grid's value lists. The last parameter varies fastest. Values are not
// deduplicated; colliding entries still form distinct combinations.
func (g *Grid) Combinations() iter.Seq[Combination] {
	return func(yield func(Combination) bool) {
		if g.Count() == 0 {
			return
		}
		lists := make([][]game.Value, len(g.names))
		for i, name := range g.names {
			lists[i] = g.values[name]
		}

		idx := make([]int, len(lists))
		for {
			combo := make(Combination, len(lists))
			for i, name := range g.names {
				combo[i] = game.Setting{Name: name, Value: lists[i][idx[i]]}
			}
			if !yield(combo) {
				return
			}

			// Odometer step, rightmost digit first.
			i := len(idx) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(lists[i]) {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}
