package scheduler

// Scheduler runs units of work on some execution context.
// Schedule never blocks on the work itself.
type Scheduler interface {
	Schedule(fn func())
}

// Func adapts a plain function to Scheduler.
type Func func(fn func())

// Schedule calls f(fn).
func (f Func) Schedule(fn func()) { f(fn) }

type immediate struct{}

func (immediate) Schedule(fn func()) { fn() }

// Immediate returns a Scheduler that runs work synchronously on the
// calling goroutine.
func Immediate() Scheduler { return immediate{} }

type goroutine struct{}

func (goroutine) Schedule(fn func()) { go fn() }

// Go returns a Scheduler that runs each unit of work on a new goroutine.
func Go() Scheduler { return goroutine{} }
