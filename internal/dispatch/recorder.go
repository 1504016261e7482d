package dispatch

import (
	"context"
	"sync"

	"github.com/nikolayk812/checkout-demo/internal/port"
)

// ScheduledTask is one recorded Schedule call.
type ScheduledTask struct {
	Task string
	Args map[string]string
}

// Recorder is the no-transport Dispatcher for tests: it records every
// Schedule call so assertions can check what was scheduled without a
// broker. FailWith, when set, is returned from Schedule instead.
type Recorder struct {
	mu       sync.Mutex
	calls    []ScheduledTask
	FailWith error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Schedule(_ context.Context, task string, args map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	copied := make(map[string]string, len(args))
	for k, v := range args {
		copied[k] = v
	}
	r.calls = append(r.calls, ScheduledTask{Task: task, Args: copied})

	return nil
}

func (r *Recorder) Calls() []ScheduledTask {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]ScheduledTask, len(r.calls))
	copy(out, r.calls)
	return out
}

var _ port.Dispatcher = (*Recorder)(nil)
