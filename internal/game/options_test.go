package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"int", Int(13), "13"},
		{"float", Float(0.2), "0.2"},
		{"float whole", Float(7), "7"},
		{"string", String("ai.py"), "ai.py"},
		{"path", Path("AIs/lab3_bfs.py"), "AIs/lab3_bfs.py"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValueStem(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "lab3_bfs", Path("AIs/lab3_bfs.py").Stem())
	assert.Equal(t, "python3", Path("/usr/bin/python3").Stem())
	// Non-path values keep their plain form.
	assert.Equal(t, "ai.py", String("ai.py").Stem())
	assert.Equal(t, "13", Int(13).Stem())
}

func TestOptionsArgsRendering(t *testing.T) {
	t.Parallel()

	opts := NewOptions()
	opts.Set("nodrawing", Bool(true))
	opts.Set("width", Int(13))
	opts.Set("rat", String("ai.py"))

	assert.Equal(t, []string{"--nodrawing", "--width", "13", "--rat", "ai.py"}, opts.Args())
}

func TestOptionsBoolFalseKeepsValue(t *testing.T) {
	t.Parallel()

	opts := NewOptions()
	opts.Set("synchronous", Bool(false))

	// Only boolean true is a bare flag.
	assert.Equal(t, []string{"--synchronous", "false"}, opts.Args())
}

func TestOptionsOverwriteKeepsPosition(t *testing.T) {
	t.Parallel()

	opts := NewOptions()
	opts.Set("width", Int(5))
	opts.Set("density", Float(0.4))
	opts.Set("width", Int(10))

	assert.Equal(t, []string{"width", "density"}, opts.Names())
	assert.Equal(t, []string{"--width", "10", "--density", "0.4"}, opts.Args())

	v, ok := opts.Get("width")
	assert.True(t, ok)
	assert.Equal(t, "10", v.String())
}
