package idling

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestResource_Counting(t *testing.T) {
	r := New("statistics")
	if !r.IsIdleNow() || r.Name() != "statistics" {
		t.Fatal("new resource should be idle")
	}
	r.Increment()
	r.Increment()
	if r.IsIdleNow() || r.Count() != 2 {
		t.Errorf("count = %d", r.Count())
	}
	r.Decrement()
	r.Decrement()
	r.Decrement()
	if !r.IsIdleNow() || r.Count() != 0 {
		t.Errorf("count = %d after extra decrement, want 0", r.Count())
	}
}

func TestResource_WaitForIdle(t *testing.T) {
	r := New("statistics")
	if err := r.WaitForIdle(context.Background()); err != nil {
		t.Fatal(err)
	}

	r.Increment()
	done := make(chan error, 1)
	go func() { done <- r.WaitForIdle(context.Background()) }()

	select {
	case <-done:
		t.Fatal("WaitForIdle returned while busy")
	case <-time.After(10 * time.Millisecond):
	}
	r.Decrement()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitForIdle did not return after Decrement")
	}
}

func TestResource_WaitForIdleCancelled(t *testing.T) {
	r := New("statistics")
	r.Increment()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := r.WaitForIdle(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v", err)
	}
}
