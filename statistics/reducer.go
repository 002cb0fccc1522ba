package statistics

import "github.com/kbukum/taskstats/errors"

// Reduce folds r into prev and returns the next state. It is pure.
//
// Counts survive InFlight and Failure, so the last known numbers stay on
// screen while reloading or after an error. Reduce panics with
// ErrUnhandledResult on a result type it does not know.
func Reduce(prev ViewState, r Result) ViewState {
	switch r := r.(type) {
	case InFlight:
		next := prev
		next.IsLoading = true
		return next
	case Success:
		return ViewState{
			ActiveCount:    r.ActiveCount,
			CompletedCount: r.CompletedCount,
		}
	case Failure:
		next := prev
		next.IsLoading = false
		next.Err = r.Err
		return next
	default:
		panic(errors.UnhandledResult(r))
	}
}
