package game

import "os/exec"

// CommandRunner abstracts synchronous subprocess execution so that tests can
// script game output without launching anything.
type CommandRunner interface {
	// CombinedOutput runs the command to completion and returns its combined
	// stdout and stderr.
	CombinedOutput(name string, args ...string) ([]byte, error)
}

// ExecRunner executes commands with os/exec.
type ExecRunner struct{}

// CombinedOutput runs the command and blocks until it exits.
func (ExecRunner) CombinedOutput(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// MockRunner implements CommandRunner for tests. It records every invocation
// and returns scripted output.
type MockRunner struct {
	// Output is returned from CombinedOutput. If OutputFunc is set it takes
	// precedence and is called with the full argv.
	Output     []byte
	Err        error
	OutputFunc func(argv []string) ([]byte, error)

	// Calls records the argv of each invocation, command name first.
	Calls [][]string
}

// CombinedOutput records the call and returns the scripted result.
func (m *MockRunner) CombinedOutput(name string, args ...string) ([]byte, error) {
	argv := append([]string{name}, args...)
	m.Calls = append(m.Calls, argv)
	if m.OutputFunc != nil {
		return m.OutputFunc(argv)
	}
	return m.Output, m.Err
}

// LastCall returns the most recent argv, or nil if nothing ran.
func (m *MockRunner) LastCall() []string {
	if len(m.Calls) == 0 {
		return nil
	}
	return m.Calls[len(m.Calls)-1]
}
