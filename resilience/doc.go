// Package resilience provides the fault-tolerance primitives used around
// the task record source and the HTTP boundary.
//
//   - Retry: re-run a failing call with exponential backoff
//   - CircuitBreaker: fail fast after repeated backend failures
//   - Bulkhead: bound concurrent work, optionally waiting for a slot
//   - RateLimiter: token bucket for inbound intents
//
// A record source typically composes them from the outside in:
//
//	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("tasks"))
//	tasks, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func(ctx context.Context) ([]task.Task, error) {
//	    var out []task.Task
//	    err := cb.Execute(func() error {
//	        var err error
//	        out, err = store.FetchAll(ctx)
//	        return err
//	    })
//	    return out, err
//	})
package resilience
