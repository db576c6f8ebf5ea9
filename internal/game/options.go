package game

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindPath
)

// Value is a closed tagged variant for option values: boolean, integer,
// float, text, or filesystem path. Paths behave like text except for Stem,
// which matters when sweep results are indexed.
type Value struct {
	kind Kind
	b    bool
	i    int
	f    float64
	s    string
}

// Bool returns a boolean option value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int returns an integer option value.
func Int(v int) Value { return Value{kind: KindInt, i: v} }

// Float returns a floating-point option value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// String returns a text option value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Path returns a filesystem-path option value.
func Path(v string) Value { return Value{kind: KindPath, s: v} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsTrue reports whether the value is boolean true. Such values render as a
// bare command-line flag with no argument.
func (v Value) IsTrue() bool { return v.kind == KindBool && v.b }

// String renders the value the way it appears on the command line.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.Itoa(v.i)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// Stem returns the base name without extension for path values, and the
// plain string form for everything else. Result tables index agent-script
// and interpreter parameters by stem rather than full path.
func (v Value) Stem() string {
	if v.kind != KindPath {
		return v.String()
	}
	base := filepath.Base(v.s)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Options is a mutable name → Value store that preserves insertion order.
// Setting an existing name overwrites its value in place; new names append.
type Options struct {
	names  []string
	values map[string]Value
}

// NewOptions returns an empty option store.
func NewOptions() *Options {
	return &Options{values: make(map[string]Value)}
}

// Set adds or overwrites the named option.
func (o *Options) Set(name string, v Value) {
	if _, ok := o.values[name]; !ok {
		o.names = append(o.names, name)
	}
	o.values[name] = v
}

// Get returns the named option and whether it is present.
func (o *Options) Get(name string) (Value, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Names returns the option names in insertion order.
func (o *Options) Names() []string {
	out := make([]string, len(o.names))
	copy(out, o.names)
	return out
}

// Len returns the number of options.
func (o *Options) Len() int { return len(o.names) }

// Args renders the options as command-line tokens in insertion order. A
// boolean-true value emits only its flag; every other value emits the flag
// followed by its string form.
func (o *Options) Args() []string {
	args := make([]string, 0, 2*len(o.names))
	for _, name := range o.names {
		v := o.values[name]
		args = append(args, "--"+name)
		if !v.IsTrue() {
			args = append(args, v.String())
		}
	}
	return args
}
