package port

import "context"

// Dispatcher enqueues work for out-of-process execution and returns
// immediately. Delivery is at-least-once; callers treat scheduled tasks
// as fire-and-forget.
type Dispatcher interface {
	Schedule(ctx context.Context, task string, args map[string]string) error
}
