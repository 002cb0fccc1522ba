package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFromSlice_Collect(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestJust_Empty(t *testing.T) {
	got, err := Collect(context.Background(), Just[int]())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestFrom_Iterator(t *testing.T) {
	iter := &sliceIter[string]{items: []string{"a", "b"}}
	got, err := Collect(context.Background(), From[string](iter))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v, want [a b]", got)
	}
}

func TestDefer_IsLazy(t *testing.T) {
	calls := 0
	p := Defer(func(_ context.Context) (int, error) {
		calls++
		return 7, nil
	})
	iter := p.Iter(context.Background())
	if calls != 0 {
		t.Fatalf("fn called before pull: %d", calls)
	}
	v, ok, err := iter.Next(context.Background())
	if err != nil || !ok || v != 7 {
		t.Fatalf("Next = %d, %v, %v", v, ok, err)
	}
	if _, ok, _ := iter.Next(context.Background()); ok {
		t.Error("Defer should yield exactly one value")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDefer_Error(t *testing.T) {
	p := Defer(func(_ context.Context) (int, error) { return 0, errors.New("boom") })
	if _, err := Collect(context.Background(), p); err == nil || err.Error() != "boom" {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestFromChan(t *testing.T) {
	ch := make(chan string, 3)
	ch <- "x"
	ch <- "y"
	close(ch)
	got, err := Collect(context.Background(), FromChan(ch))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("got %v", got)
	}
}

func TestFromChan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Collect(ctx, FromChan(make(chan int)))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMap(t *testing.T) {
	p := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (string, error) {
		return strings.Repeat("*", n), nil
	})
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[2] != "***" {
		t.Errorf("got %v", got)
	}
}

func TestMap_Error(t *testing.T) {
	p := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, errors.New("bad value")
		}
		return n, nil
	})
	got, err := Collect(context.Background(), p)
	if err == nil || err.Error() != "bad value" {
		t.Errorf("expected bad value, got %v", err)
	}
	if !intSliceEqual(got, []int{1}) {
		t.Errorf("values before error = %v, want [1]", got)
	}
}

func TestFlatMap(t *testing.T) {
	batches := FromSlice([][]int{{1, 2}, {}, {3}})
	flat := FlatMap(batches, func(ctx context.Context, xs []int) (Iterator[int], error) {
		return FromSlice(xs).Iter(ctx), nil
	})
	got, err := Collect(context.Background(), flat)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestFilter(t *testing.T) {
	odd := Filter(FromSlice([]int{1, 2, 3, 4, 5}), func(n int) bool { return n%2 == 1 })
	got, err := Collect(context.Background(), odd)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 3, 5}) {
		t.Errorf("got %v", got)
	}
}

func TestTap(t *testing.T) {
	var seen []int
	p := Tap(FromSlice([]int{4, 5}), func(_ context.Context, n int) error {
		seen = append(seen, n)
		return nil
	})
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, seen) {
		t.Errorf("tap saw %v, pipeline yielded %v", seen, got)
	}
}

func TestReduce(t *testing.T) {
	type counts struct{ odd, even int }
	p := Reduce(FromSlice([]int{1, 2, 3, 4, 5}), counts{}, func(c counts, n int) counts {
		if n%2 == 0 {
			c.even++
		} else {
			c.odd++
		}
		return c
	})
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != (counts{odd: 3, even: 2}) {
		t.Errorf("got %+v", got)
	}
}

func TestReduce_EmptyYieldsInit(t *testing.T) {
	got, err := Collect(context.Background(), Reduce(Just[int](), 42, func(acc, n int) int { return acc + n }))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != 42 {
		t.Errorf("expected [42], got %v", got)
	}
}

func TestConcat_PullsInOrder(t *testing.T) {
	var order []string
	first := Just("inflight")
	second := Defer(func(_ context.Context) (string, error) {
		order = append(order, "fetch")
		return "done", nil
	})
	err := ForEach(context.Background(), Concat(first, second), func(_ context.Context, s string) error {
		order = append(order, s)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"inflight", "fetch", "done"}
	if !strSliceEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestOnErrorReturn(t *testing.T) {
	src := Concat(Just(1, 2), Defer(func(_ context.Context) (int, error) {
		return 0, errors.New("lost")
	}), Just(99))
	p := OnErrorReturn(src, func(err error) int { return -len(err.Error()) })
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, -4}) {
		t.Errorf("got %v, want [1 2 -4]", got)
	}
}

func TestOnErrorReturn_NoError(t *testing.T) {
	called := false
	p := OnErrorReturn(Just(1), func(error) int { called = true; return 0 })
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if called || !intSliceEqual(got, []int{1}) {
		t.Errorf("got %v, fallback called=%v", got, called)
	}
}

func TestDrain_SinkError(t *testing.T) {
	n := 0
	err := Drain(Just(1, 2, 3), func(_ context.Context, _ int) error {
		n++
		if n == 2 {
			return errors.New("sink full")
		}
		return nil
	}).Run(context.Background())
	if err == nil || n != 2 {
		t.Errorf("err=%v n=%d", err, n)
	}
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func strSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
