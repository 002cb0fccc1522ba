// Package task is the record source behind the statistics screen: the Task
// entity, the Source the statistics pipeline reads from, and the stores
// and decorators that implement it.
package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/taskstats/validation"
)

// MaxTitleLength bounds Task.Title.
const MaxTitleLength = 256

// Task is a to-do record. A task is either active or completed.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// New creates an active task with a fresh ID.
func New(title, description string) Task {
	return Task{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}
}

// IsActive reports whether the task is still open.
func (t Task) IsActive() bool { return !t.Completed }

// IsCompleted reports whether the task is done.
func (t Task) IsCompleted() bool { return t.Completed }

// IsEmpty reports whether the task has neither title nor description.
func (t Task) IsEmpty() bool {
	return strings.TrimSpace(t.Title) == "" && strings.TrimSpace(t.Description) == ""
}

// Validate checks the task before it is stored.
func (t Task) Validate() error {
	return validation.New().
		RequiredUUID("id", t.ID).
		Custom(!t.IsEmpty(), "title", "title or description is required").
		MaxLength("title", t.Title, MaxTitleLength).
		Custom(!t.CreatedAt.IsZero(), "created_at", "is required").
		Validate()
}

// Source provides the full set of task records.
type Source interface {
	// FetchAll returns every task. It may block and may fail.
	FetchAll(ctx context.Context) ([]Task, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]Task, error)

// FetchAll calls f(ctx).
func (f SourceFunc) FetchAll(ctx context.Context) ([]Task, error) { return f(ctx) }

// Store is a Source that can also be written to.
type Store interface {
	Source
	Save(ctx context.Context, t Task) error
	Get(ctx context.Context, id string) (Task, error)
	Complete(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// DemoTasks returns a small fixed set of tasks: three active, two completed.
func DemoTasks() []Task {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	titles := []struct {
		title string
		done  bool
	}{
		{"Write the release notes", false},
		{"Review open pull requests", false},
		{"Book the team offsite", false},
		{"Rotate the staging credentials", true},
		{"Archive last quarter's reports", true},
	}
	out := make([]Task, len(titles))
	for i, tt := range titles {
		t := New(tt.title, "")
		t.Completed = tt.done
		t.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		out[i] = t
	}
	return out
}

// Seed saves tasks into s when s is empty.
func Seed(ctx context.Context, s Store, tasks []Task) (int, error) {
	existing, err := s.FetchAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, t := range tasks {
		if err := s.Save(ctx, t); err != nil {
			return 0, err
		}
	}
	return len(tasks), nil
}
