package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/kbukum/taskstats/statistics"
)

// renderer prints each state as one line of the statistics screen.
type renderer struct {
	mu sync.Mutex
	w  io.Writer
	n  int
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{w: w}
}

// Render implements statistics.StateObserver.
func (r *renderer) Render(s statistics.ViewState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.n++
	fmt.Fprintf(r.w, "%3d  %s\n", r.n, screen(s))
}

// screen is the text the statistics screen shows for s.
func screen(s statistics.ViewState) string {
	switch {
	case s.Err != nil:
		return "Error loading statistics: " + s.Err.Error()
	case s.IsLoading:
		return fmt.Sprintf("Loading... (active %d, completed %d)", s.ActiveCount, s.CompletedCount)
	case s.Total() == 0:
		return "You have no tasks."
	default:
		return fmt.Sprintf("Active tasks: %d, Completed tasks: %d", s.ActiveCount, s.CompletedCount)
	}
}
