package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pyrat-bench/internal/monitoring"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	os.Exit(m.Run())
}

func TestNewDefaults(t *testing.T) {
	g := New()

	assert.Equal(t, []string{"python", "pyrat.py", "--synchronous", "--nodrawing"}, g.Args())
}

func TestNewSettingsOverrideDefaults(t *testing.T) {
	g := New(
		Setting{"synchronous", Bool(false)},
		Setting{"width", Int(13)},
	)

	assert.Equal(t,
		[]string{"python", "pyrat.py", "--synchronous", "false", "--nodrawing", "--width", "13"},
		g.Args())
}

func TestArgsRenderingTail(t *testing.T) {
	g := New()
	g.Set("width", Int(13))
	g.Set("rat", String("ai.py"))

	args := g.Args()
	assert.Equal(t, []string{"--nodrawing", "--width", "13", "--rat", "ai.py"}, args[len(args)-5:])
}

func TestExtractStatsPath(t *testing.T) {
	t.Parallel()

	path, err := ExtractStatsPath("irrelevant\nStats can be found at: /tmp/run1.csv\nmore\n")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/run1.csv", path)
}

func TestExtractStatsPathCRLF(t *testing.T) {
	t.Parallel()

	path, err := ExtractStatsPath("noise\r\nStats can be found at: out/run.csv\r\n")
	require.NoError(t, err)
	assert.Equal(t, "out/run.csv", path)
}

func TestExtractStatsPathMissing(t *testing.T) {
	t.Parallel()

	_, err := ExtractStatsPath("the game crashed before writing stats\n")
	assert.Error(t, err)
}

func TestExtractStatsPathNotLineAnchored(t *testing.T) {
	t.Parallel()

	// The announcement must be its own line, not embedded mid-line.
	_, err := ExtractStatsPath("prefix Stats can be found at: /tmp/run1.csv\n")
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	statsPath := filepath.Join(t.TempDir(), "run1.csv")
	require.NoError(t, os.WriteFile(statsPath, []byte(sampleStats), 0o644))

	mock := &MockRunner{Output: fmt.Appendf(nil, "booting maze\nStats can be found at: %s\n", statsPath)}

	g := New(Setting{"width", Int(13)}, Setting{"tests", Int(10)})
	g.SetRunner(mock)

	path, stats, err := g.Run()
	require.NoError(t, err)
	assert.Equal(t, statsPath, path)
	assert.Equal(t, 3, stats.Len())

	require.Len(t, mock.Calls, 1)
	assert.Equal(t,
		[]string{"python", "pyrat.py", "--synchronous", "--nodrawing", "--width", "13", "--tests", "10"},
		mock.LastCall())
}

func TestRunNonZeroExitIsFatal(t *testing.T) {
	mock := &MockRunner{
		Output: []byte("Stats can be found at: /tmp/run1.csv\n"),
		Err:    errors.New("exit status 2"),
	}

	g := New()
	g.SetRunner(mock)

	// Even though the output contains a stats line, a failed process is
	// never treated as a successful run.
	_, _, err := g.Run()
	assert.ErrorContains(t, err, "exited abnormally")
}

func TestRunNoStatsLine(t *testing.T) {
	g := New()
	g.SetRunner(&MockRunner{Output: []byte("no announcement here\n")})

	_, _, err := g.Run()
	assert.ErrorContains(t, err, "no stats path")
}

func TestRunStatsFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.csv")
	g := New()
	g.SetRunner(&MockRunner{Output: fmt.Appendf(nil, "Stats can be found at: %s\n", missing)})

	_, _, err := g.Run()
	assert.Error(t, err)
}
