package statistics

import "fmt"

// ViewState is everything the statistics screen renders. Values are never
// modified after creation; the reducer returns a new one for each result.
type ViewState struct {
	IsLoading      bool
	ActiveCount    int
	CompletedCount int
	Err            error
}

// Idle returns the state shown before any load: not loading, zero counts,
// no error.
func Idle() ViewState { return ViewState{} }

// Equal compares field by field; errors compare by identity.
func (s ViewState) Equal(o ViewState) bool {
	return s.IsLoading == o.IsLoading &&
		s.ActiveCount == o.ActiveCount &&
		s.CompletedCount == o.CompletedCount &&
		s.Err == o.Err
}

// Total returns the number of tasks counted.
func (s ViewState) Total() int { return s.ActiveCount + s.CompletedCount }

func (s ViewState) String() string {
	errText := "<nil>"
	if s.Err != nil {
		errText = s.Err.Error()
	}
	return fmt.Sprintf("{loading:%t active:%d completed:%d err:%s}", s.IsLoading, s.ActiveCount, s.CompletedCount, errText)
}
