package statistics

import "github.com/kbukum/taskstats/idling"

// StateObserver is called with every state the view model produces, in
// order, right after the fold.
type StateObserver func(ViewState)

// IdlingObserver keeps res busy while the screen shows a load in
// progress: it increments on a loading state and otherwise decrements
// unless res is already idle.
func IdlingObserver(res *idling.Resource) StateObserver {
	return func(s ViewState) {
		if s.IsLoading {
			res.Increment()
			return
		}
		if !res.IsIdleNow() {
			res.Decrement()
		}
	}
}
