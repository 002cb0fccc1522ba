package statistics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/taskstats/task"
)

// demoSource returns 3 active and 2 completed tasks.
func demoSource() task.Source {
	store := task.NewMemoryStore(task.DemoTasks()...)
	return store
}

func tasksOf(active, completed int) []task.Task {
	var out []task.Task
	for i := 0; i < active; i++ {
		out = append(out, task.New("active", ""))
	}
	for i := 0; i < completed; i++ {
		tk := task.New("done", "")
		tk.Completed = true
		out = append(out, tk)
	}
	return out
}

type fetchReply struct {
	tasks []task.Task
	err   error
}

// gatedSource blocks every FetchAll until the test releases that call.
// Calls are numbered in arrival order.
type gatedSource struct {
	mu      sync.Mutex
	calls   int
	gates   []chan fetchReply
	entered chan int
}

func newGatedSource(n int) *gatedSource {
	s := &gatedSource{entered: make(chan int, n)}
	for i := 0; i < n; i++ {
		s.gates = append(s.gates, make(chan fetchReply, 1))
	}
	return s
}

func (s *gatedSource) FetchAll(ctx context.Context) ([]task.Task, error) {
	s.mu.Lock()
	idx := s.calls
	s.calls++
	s.mu.Unlock()
	s.entered <- idx
	select {
	case r := <-s.gates[idx]:
		return r.tasks, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *gatedSource) waitEntered(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-s.entered:
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of %d fetches started", i, n)
		}
	}
}

func (s *gatedSource) release(idx int, r fetchReply) { s.gates[idx] <- r }

// recorder collects every state passed to it.
type recorder struct {
	mu     sync.Mutex
	states []ViewState
	ch     chan ViewState
}

func newRecorder() *recorder { return &recorder{ch: make(chan ViewState, 64)} }

func (r *recorder) observe(s ViewState) {
	r.mu.Lock()
	r.states = append(r.states, s)
	r.mu.Unlock()
	r.ch <- s
}

func (r *recorder) all() []ViewState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ViewState(nil), r.states...)
}

func (r *recorder) next(t *testing.T) ViewState {
	t.Helper()
	select {
	case s := <-r.ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("no state within 2s")
		return ViewState{}
	}
}

type bogusIntent struct{ InitialIntent }

type bogusAction struct{ LoadStatistics }

type bogusResult struct{ InFlight }
