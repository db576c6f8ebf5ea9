package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pyrat-bench/internal/game"
)

func comboStrings(c Combination) map[string]string {
	out := make(map[string]string, len(c))
	for _, s := range c {
		out[s.Name] = s.Value.String()
	}
	return out
}

func TestGridCombinationsFullProduct(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	g.Add("width", game.Int(5), game.Int(10))
	g.Add("density", game.Float(0.2), game.Float(0.4))

	assert.Equal(t, 4, g.Count())

	var got []map[string]string
	for combo := range g.Combinations() {
		require.Len(t, combo, 2)
		assert.Equal(t, "width", combo[0].Name)
		assert.Equal(t, "density", combo[1].Name)
		got = append(got, comboStrings(combo))
	}

	want := []map[string]string{
		{"width": "5", "density": "0.2"},
		{"width": "5", "density": "0.4"},
		{"width": "10", "density": "0.2"},
		{"width": "10", "density": "0.4"},
	}
	assert.Equal(t, want, got)
}

func TestGridCombinationsDeterministic(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	g.Add("a", game.Int(1), game.Int(2), game.Int(3))
	g.Add("b", game.String("x"), game.String("y"))

	var first, second []map[string]string
	for combo := range g.Combinations() {
		first = append(first, comboStrings(combo))
	}
	for combo := range g.Combinations() {
		second = append(second, comboStrings(combo))
	}

	assert.Len(t, first, 6)
	assert.Equal(t, first, second)
}

func TestGridEmptyYieldsNothing(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	assert.Equal(t, 0, g.Count())
	for range g.Combinations() {
		t.Fatal("empty grid produced a combination")
	}
}

func TestGridEmptyValueListYieldsNothing(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	g.Add("width", game.Int(5))
	g.Add("rat")

	assert.Equal(t, 0, g.Count())
	for range g.Combinations() {
		t.Fatal("grid with an empty value list produced a combination")
	}
}

func TestGridNoDeduplication(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	g.Add("width", game.Int(5), game.Int(5))

	n := 0
	for range g.Combinations() {
		n++
	}
	assert.Equal(t, 2, n)
}

func TestGridAddReplacesInPlace(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	g.Add("width", game.Int(5))
	g.Add("density", game.Float(0.2))
	g.Add("width", game.Int(7), game.Int(9))

	assert.Equal(t, []string{"width", "density"}, g.Names())
	assert.Equal(t, 2, g.Count())
}

func TestGridCombinationsEarlyStop(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	g.Add("a", game.Int(1), game.Int(2), game.Int(3))

	n := 0
	for range g.Combinations() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}
