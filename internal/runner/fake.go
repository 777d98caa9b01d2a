package runner

import (
	"context"
	"sync"
)

// Call records a single invocation made through a Recorder.
type Call struct {
	Command string
	Args    []string
	Dir     string
}

// Recorder is an in-memory Runner that records calls and answers them with a
// caller-supplied function. It never starts a process.
type Recorder struct {
	mu     sync.Mutex
	calls  []Call
	Handle func(call Call) (RunResult, error)
}

// Run implements Runner.
func (r *Recorder) Run(_ context.Context, command string, args []string, opts RunOptions) (RunResult, error) {
	call := Call{Command: command, Args: append([]string(nil), args...), Dir: opts.Dir}
	r.mu.Lock()
	r.calls = append(r.calls, call)
	handle := r.Handle
	r.mu.Unlock()

	if handle == nil {
		return RunResult{}, nil
	}
	return handle(call)
}

// Calls returns a copy of the recorded invocations in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

var _ Runner = (*Recorder)(nil)
