package runner

import (
	"context"
	"sync"
)

// Call is one invocation recorded by Fake.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Line returns the command line of the call.
func (c Call) Line() string {
	return Format(c.Name, c.Args...)
}

// Fake is an in-memory Runner for tests. Commands succeed only when their
// command line is listed in OK. Output holds captured stdout per command line.
type Fake struct {
	OK     map[string]bool
	Output map[string]string

	mu    sync.Mutex
	calls []Call
}

// NewFake returns a Fake that succeeds for the given command lines.
func NewFake(ok ...string) *Fake {
	f := &Fake{OK: map[string]bool{}, Output: map[string]string{}}
	for _, line := range ok {
		f.OK[line] = true
	}
	return f
}

// Run implements Runner.
func (f *Fake) Run(_ context.Context, dir, name string, args ...string) bool {
	return f.record(dir, name, args)
}

// Capture implements Runner.
func (f *Fake) Capture(_ context.Context, dir, name string, args ...string) (string, bool) {
	ok := f.record(dir, name, args)
	if !ok {
		return "", false
	}
	return f.Output[Format(name, args...)], true
}

func (f *Fake) record(dir, name string, args []string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Dir: dir, Name: name, Args: append([]string(nil), args...)})
	return f.OK[Format(name, args...)]
}

// Calls returns the recorded invocations in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Lines returns the recorded command lines in order.
func (f *Fake) Lines() []string {
	var lines []string
	for _, c := range f.Calls() {
		lines = append(lines, c.Line())
	}
	return lines
}
