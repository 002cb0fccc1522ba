package statistics

import (
	stderrors "errors"
	"testing"

	"github.com/kbukum/taskstats/errors"
)

func TestReduce(t *testing.T) {
	boom := stderrors.New("boom")
	loaded := ViewState{ActiveCount: 3, CompletedCount: 2}

	tests := []struct {
		name string
		prev ViewState
		in   Result
		want ViewState
	}{
		{"in flight from idle", Idle(), InFlight{}, ViewState{IsLoading: true}},
		{"in flight keeps counts", loaded, InFlight{}, ViewState{IsLoading: true, ActiveCount: 3, CompletedCount: 2}},
		{"in flight keeps error", ViewState{Err: boom}, InFlight{}, ViewState{IsLoading: true, Err: boom}},
		{"success replaces counts", ViewState{IsLoading: true, ActiveCount: 9}, Success{ActiveCount: 3, CompletedCount: 2}, loaded},
		{"success clears error", ViewState{IsLoading: true, Err: boom}, Success{ActiveCount: 1}, ViewState{ActiveCount: 1}},
		{"failure keeps counts", ViewState{IsLoading: true, ActiveCount: 3, CompletedCount: 2}, Failure{Err: boom}, ViewState{ActiveCount: 3, CompletedCount: 2, Err: boom}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.prev, tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("Reduce(%v, %T) = %v, want %v", tt.prev, tt.in, got, tt.want)
			}
		})
	}
}

func TestReduce_Pure(t *testing.T) {
	prev := ViewState{ActiveCount: 4, CompletedCount: 1}
	snapshot := prev
	first := Reduce(prev, Failure{Err: errors.ErrUnknownAction})
	second := Reduce(prev, Failure{Err: errors.ErrUnknownAction})
	if !first.Equal(second) {
		t.Errorf("same inputs gave %v and %v", first, second)
	}
	if !prev.Equal(snapshot) {
		t.Errorf("prev changed to %v", prev)
	}
}

func TestReduce_UnknownResultPanics(t *testing.T) {
	defer func() {
		rec := recover()
		err, ok := rec.(error)
		if !ok || !errors.HasCode(err, errors.ErrCodeUnhandledResult) {
			t.Fatalf("expected UNHANDLED_RESULT panic, got %v", rec)
		}
	}()
	Reduce(Idle(), bogusResult{})
}

func TestStatus_String(t *testing.T) {
	if (InFlight{}).Status().String() != "in_flight" ||
		(Success{}).Status().String() != "success" ||
		(Failure{}).Status().String() != "failure" {
		t.Error("unexpected status names")
	}
}
