package main

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/kbukum/taskstats/statistics"
)

func TestScreen(t *testing.T) {
	tests := []struct {
		name  string
		state statistics.ViewState
		want  string
	}{
		{"idle", statistics.Idle(), "You have no tasks."},
		{"loading", statistics.ViewState{IsLoading: true}, "Loading... (active 0, completed 0)"},
		{"loading keeps counts", statistics.ViewState{IsLoading: true, ActiveCount: 2, CompletedCount: 1}, "Loading... (active 2, completed 1)"},
		{"counts", statistics.ViewState{ActiveCount: 3, CompletedCount: 4}, "Active tasks: 3, Completed tasks: 4"},
		{"error", statistics.ViewState{Err: stderrors.New("disk gone")}, "Error loading statistics: disk gone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := screen(tt.state); got != tt.want {
				t.Errorf("screen() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderer_NumbersLines(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf)
	r.Render(statistics.ViewState{IsLoading: true})
	r.Render(statistics.ViewState{ActiveCount: 1, CompletedCount: 1})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[0]), "1  Loading") {
		t.Errorf("line 1 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "Active tasks: 1, Completed tasks: 1") {
		t.Errorf("line 2 = %q", lines[1])
	}
}
