package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pyrat-bench/internal/sweep"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	id, err := s.BeginSweep([]string{"width", "density"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	cols := []string{"win_rat", "moves"}
	require.NoError(t, s.RecordRow(id, 1, []string{"5", "0.2"}, cols, []float64{0.2, 20}))
	require.NoError(t, s.RecordRow(id, 2, []string{"5", "0.4"}, cols, []float64{0.3, 22}))
	require.NoError(t, s.RecordRow(id, 3, []string{"10", "0.2"}, cols, []float64{0.5, 30}))
	require.NoError(t, s.FinishSweep(id, nil))

	table, err := s.LoadTable(id)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"width", "density"}, table.IndexNames())
	assert.Equal(t, cols, table.Columns())

	idx, vals := table.Row(1)
	assert.Equal(t, []string{"5", "0.4"}, idx)
	assert.Equal(t, []float64{0.3, 22}, vals)
}

func TestStoreFinishWithError(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	id, err := s.BeginSweep([]string{"width"})
	require.NoError(t, err)
	require.NoError(t, s.FinishSweep(id, errors.New("run 2/3: game exited abnormally")))

	sweeps, err := s.ListSweeps()
	require.NoError(t, err)
	require.Len(t, sweeps, 1)
	assert.Equal(t, "failed", sweeps[0].Status)
	assert.Contains(t, sweeps[0].Error, "exited abnormally")
	assert.NotNil(t, sweeps[0].CompletedAt)
}

func TestStoreFinishUnknownSweep(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	assert.Error(t, s.FinishSweep("no-such-sweep", nil))
}

func TestStoreLoadUnknownSweep(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	_, err := s.LoadTable("no-such-sweep")
	assert.ErrorContains(t, err, "not found")
}

func TestStoreListSweeps(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	first, err := s.BeginSweep([]string{"width"})
	require.NoError(t, err)
	second, err := s.BeginSweep([]string{"density"})
	require.NoError(t, err)

	sweeps, err := s.ListSweeps()
	require.NoError(t, err)
	require.Len(t, sweeps, 2)

	ids := []string{sweeps[0].SweepID, sweeps[1].SweepID}
	assert.Contains(t, ids, first)
	assert.Contains(t, ids, second)
	assert.Equal(t, "running", sweeps[0].Status)
}

// Store must satisfy the sweep orchestrator's persistence seam.
var _ sweep.Recorder = (*Store)(nil)
