// Package idling provides a counting busy/idle resource. Instrumented code
// increments it when work starts and decrements it when work settles;
// tests wait on it instead of sleeping.
package idling

import (
	"context"
	"sync"
)

// Resource is a named busy counter. The zero value is not usable; use New.
type Resource struct {
	name string

	mu      sync.Mutex
	count   int
	waiters []chan struct{}
}

// New creates an idle resource.
func New(name string) *Resource {
	return &Resource{name: name}
}

// Name returns the resource name.
func (r *Resource) Name() string { return r.name }

// Increment marks one more unit of work in progress.
func (r *Resource) Increment() {
	r.mu.Lock()
	r.count++
	r.mu.Unlock()
}

// Decrement marks one unit of work settled. It is a no-op when already
// idle, and wakes WaitForIdle callers when the count reaches zero.
func (r *Resource) Decrement() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.count == 0 {
		return
	}
	r.count--
	if r.count == 0 {
		for _, w := range r.waiters {
			close(w)
		}
		r.waiters = nil
	}
}

// IsIdleNow reports whether no work is in progress.
func (r *Resource) IsIdleNow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count == 0
}

// Count returns the number of units in progress.
func (r *Resource) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// WaitForIdle blocks until the resource is idle or ctx ends.
func (r *Resource) WaitForIdle(ctx context.Context) error {
	r.mu.Lock()
	if r.count == 0 {
		r.mu.Unlock()
		return nil
	}
	w := make(chan struct{})
	r.waiters = append(r.waiters, w)
	r.mu.Unlock()

	select {
	case <-w:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
