package statistics

// Status classifies a Result.
type Status int

const (
	StatusInFlight Status = iota
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusInFlight:
		return "in_flight"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is one outcome produced while processing an action.
type Result interface {
	Status() Status
	result()
}

// InFlight marks the start of a load.
type InFlight struct{}

// Success carries the counts of a completed load.
type Success struct {
	ActiveCount    int
	CompletedCount int
}

// Failure carries the error that ended a load.
type Failure struct {
	Err error
}

func (InFlight) Status() Status { return StatusInFlight }
func (Success) Status() Status  { return StatusSuccess }
func (Failure) Status() Status  { return StatusFailure }

func (InFlight) result() {}
func (Success) result()  {}
func (Failure) result()  {}
