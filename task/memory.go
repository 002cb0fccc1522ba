package task

import (
	"context"
	"slices"
	"sync"

	"github.com/kbukum/taskstats/errors"
)

// MemoryStore keeps tasks in memory, ordered by insertion.
type MemoryStore struct {
	mu    sync.RWMutex
	order []string
	tasks map[string]Task
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store holding tasks.
func NewMemoryStore(tasks ...Task) *MemoryStore {
	s := &MemoryStore{tasks: make(map[string]Task, len(tasks))}
	for _, t := range tasks {
		s.put(t)
	}
	return s
}

func (s *MemoryStore) put(t Task) {
	if _, ok := s.tasks[t.ID]; !ok {
		s.order = append(s.order, t.ID)
	}
	s.tasks[t.ID] = t
}

// FetchAll returns a copy of every task in insertion order.
func (s *MemoryStore) FetchAll(ctx context.Context) ([]Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tasks[id])
	}
	return out, nil
}

// Save inserts or replaces a task.
func (s *MemoryStore) Save(_ context.Context, t Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(t)
	return nil
}

// Get returns the task with id.
func (s *MemoryStore) Get(_ context.Context, id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, errors.NotFound("task", id)
	}
	return t, nil
}

// Complete marks a task completed.
func (s *MemoryStore) Complete(_ context.Context, id string) error {
	return s.setCompleted(id, true)
}

// Activate marks a task active again.
func (s *MemoryStore) Activate(_ context.Context, id string) error {
	return s.setCompleted(id, false)
}

func (s *MemoryStore) setCompleted(id string, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return errors.NotFound("task", id)
	}
	t.Completed = done
	s.tasks[id] = t
	return nil
}

// Delete removes a task.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return errors.NotFound("task", id)
	}
	delete(s.tasks, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return nil
}
