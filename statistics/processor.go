package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/taskstats/errors"
	"github.com/kbukum/taskstats/logger"
	"github.com/kbukum/taskstats/observability"
	"github.com/kbukum/taskstats/pipeline"
	"github.com/kbukum/taskstats/scheduler"
	"github.com/kbukum/taskstats/task"
)

// Processor turns actions into result sequences.
type Processor struct {
	source  task.Source
	io      scheduler.Scheduler
	ui      scheduler.Scheduler
	log     *logger.Logger
	metrics *observability.Metrics
}

// NewProcessor creates a Processor that reads from source, fetches on io
// and delivers results on ui. A nil log discards output; a nil metrics
// records nothing.
func NewProcessor(source task.Source, io, ui scheduler.Scheduler, log *logger.Logger, metrics *observability.Metrics) *Processor {
	if io == nil {
		io = scheduler.Immediate()
	}
	if ui == nil {
		ui = scheduler.Immediate()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Processor{source: source, io: io, ui: ui, log: log, metrics: metrics}
}

// Process returns the lazy result sequence for action. Nothing runs until
// the sequence is pulled. The sequence never ends with an error: failures
// are yielded as a final Failure.
func (p *Processor) Process(action Action) *pipeline.Pipeline[Result] {
	head, rest := p.plan(action)
	return pipeline.Concat(pipeline.Just(head...), rest)
}

// Dispatch hands the results of action to deliver on the ui scheduler. The
// leading results that need no io (InFlight) are scheduled on ui at once;
// the rest of the sequence is pulled on io. It returns without waiting.
func (p *Processor) Dispatch(ctx context.Context, action Action, deliver func(Result)) {
	head, rest := p.plan(action)
	for _, r := range head {
		p.ui.Schedule(func() { deliver(r) })
	}
	p.io.Schedule(func() {
		err := pipeline.ForEach(ctx, rest, func(_ context.Context, r Result) error {
			p.ui.Schedule(func() { deliver(r) })
			return nil
		})
		if err != nil {
			p.log.Warn("Result sequence abandoned", logger.ErrorFields("dispatch", err))
		}
	})
}

// plan splits the sequence for action into the results known up front and
// the lazy remainder.
func (p *Processor) plan(action Action) ([]Result, *pipeline.Pipeline[Result]) {
	switch action.(type) {
	case LoadStatistics:
		return []Result{InFlight{}}, p.loadStatistics()
	default:
		return nil, pipeline.Just[Result](Failure{Err: errors.UnknownAction(action)})
	}
}

// loadStatistics fetches, counts and yields Success, or Failure on error.
func (p *Processor) loadStatistics() *pipeline.Pipeline[Result] {
	records := pipeline.FlatMap(pipeline.Defer(p.fetch),
		func(ctx context.Context, tasks []task.Task) (pipeline.Iterator[task.Task], error) {
			return pipeline.FromSlice(tasks).Iter(ctx), nil
		})
	counted := pipeline.Reduce(records, Success{}, countTask)
	outcome := pipeline.Map(counted, func(_ context.Context, s Success) (Result, error) {
		return s, nil
	})
	return pipeline.OnErrorReturn(outcome, func(err error) Result {
		return Failure{Err: err}
	})
}

func countTask(s Success, t task.Task) Success {
	if t.IsCompleted() {
		s.CompletedCount++
	} else {
		s.ActiveCount++
	}
	return s
}

func (p *Processor) fetch(ctx context.Context) (tasks []task.Task, err error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanFetch)
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			tasks, err = nil, errors.Internal(fmt.Errorf("task fetch panicked: %v", r))
		}
		elapsed := time.Since(start)
		p.metrics.RecordFetch(ctx, elapsed.Seconds(), err)
		observability.EndSpan(span, err)
		if err != nil {
			p.log.WithContext(ctx).Warn("Task fetch failed", logger.MergeWithError(logger.DurationFields("fetch", elapsed), err))
			return
		}
		p.log.WithContext(ctx).Debug("Tasks fetched", logger.Fields(
			logger.FieldDuration, elapsed.Milliseconds(),
			"tasks", len(tasks),
		))
	}()
	return p.source.FetchAll(ctx)
}
