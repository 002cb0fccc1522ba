package task

import (
	"context"
	"testing"

	"github.com/kbukum/taskstats/errors"
)

// storeSuite runs the same behaviour checks against any Store.
func storeSuite(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	first := New("First", "")
	second := New("Second", "")
	second.CreatedAt = first.CreatedAt.Add(1)
	for _, tk := range []Task{first, second} {
		if err := s.Save(ctx, tk); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	if err := s.Complete(ctx, first.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	got, err := s.Get(ctx, first.ID)
	if err != nil || !got.IsCompleted() {
		t.Fatalf("Get after Complete: %+v, %v", got, err)
	}
	if err := s.Activate(ctx, first.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	all, err := s.FetchAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != first.ID || all[1].ID != second.ID {
		t.Fatalf("FetchAll order = %+v", all)
	}
	if all[0].IsCompleted() {
		t.Error("first task should be active again")
	}

	renamed := second
	renamed.Title = "Second, renamed"
	if err := s.Save(ctx, renamed); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get(ctx, second.ID); got.Title != renamed.Title {
		t.Errorf("Save did not replace: %q", got.Title)
	}

	if err := s.Delete(ctx, first.ID); err != nil {
		t.Fatal(err)
	}
	all, _ = s.FetchAll(ctx)
	if len(all) != 1 {
		t.Errorf("after Delete: %d tasks", len(all))
	}

	missing := New("ghost", "").ID
	for name, err := range map[string]error{
		"get":      func() error { _, err := s.Get(ctx, missing); return err }(),
		"complete": s.Complete(ctx, missing),
		"activate": s.Activate(ctx, missing),
		"delete":   s.Delete(ctx, missing),
	} {
		if !errors.HasCode(err, errors.ErrCodeNotFound) {
			t.Errorf("%s missing: err = %v, want NOT_FOUND", name, err)
		}
	}

	if err := s.Save(ctx, Task{ID: "x"}); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save invalid: err = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	storeSuite(t, NewMemoryStore())
}

func TestMemoryStore_FetchAllReturnsCopy(t *testing.T) {
	s := NewMemoryStore(DemoTasks()...)
	all, _ := s.FetchAll(context.Background())
	all[0].Completed = true
	again, _ := s.FetchAll(context.Background())
	if again[0].Completed {
		t.Error("mutating FetchAll result changed the store")
	}
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMemoryStore().FetchAll(ctx); err == nil {
		t.Error("expected context error")
	}
}
