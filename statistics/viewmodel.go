package statistics

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/taskstats/component"
	"github.com/kbukum/taskstats/errors"
	"github.com/kbukum/taskstats/idling"
	"github.com/kbukum/taskstats/logger"
	"github.com/kbukum/taskstats/observability"
	"github.com/kbukum/taskstats/pipeline"
	"github.com/kbukum/taskstats/scheduler"
	"github.com/kbukum/taskstats/task"
)

// ComponentName is the registry name of the view model.
const ComponentName = "statistics"

// Option configures a ViewModel.
type Option func(*options)

type options struct {
	io        scheduler.Scheduler
	ui        scheduler.Scheduler
	log       *logger.Logger
	metrics   *observability.Metrics
	observers []StateObserver
}

// WithSchedulers sets the background scheduler the fetch runs on and the
// foreground scheduler results are folded on.
func WithSchedulers(io, ui scheduler.Scheduler) Option {
	return func(o *options) {
		o.io = io
		o.ui = ui
	}
}

// WithLogger sets the logger every stage logs to.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithMetrics sets the pipeline instruments.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithStateObserver adds an observer called after every fold.
func WithStateObserver(fn StateObserver) Option {
	return func(o *options) { o.observers = append(o.observers, fn) }
}

// WithIdlingResource keeps res busy while a load is shown in progress.
func WithIdlingResource(res *idling.Resource) Option {
	return WithStateObserver(IdlingObserver(res))
}

// ViewModel connects the UI surface to the pipeline. Intents go in through
// Submit; states come out through States.
type ViewModel struct {
	processor *Processor
	stream    *StateStream
	log       *logger.Logger
	metrics   *observability.Metrics
	observers []StateObserver

	ctx    context.Context
	cancel context.CancelFunc

	// state is only touched by the goroutine draining pending.
	state ViewState

	mu      sync.Mutex
	halted  error
	closed  bool
	pending []Result
	folding bool
}

// New creates a ViewModel over source in the Idle state. By default the
// fetch runs on its own goroutine and results are folded where they are
// delivered.
func New(source task.Source, opts ...Option) *ViewModel {
	o := options{
		io: scheduler.Go(),
		ui: scheduler.Immediate(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Nop()
	}
	log := o.log.WithComponent(ComponentName)

	ctx, cancel := context.WithCancel(context.Background())
	return &ViewModel{
		processor: NewProcessor(source, o.io, o.ui, log, o.metrics),
		stream:    NewStateStream(Idle()),
		log:       log,
		metrics:   o.metrics,
		observers: o.observers,
		ctx:       ctx,
		cancel:    cancel,
		state:     Idle(),
	}
}

// Submit routes intent and dispatches its action. It returns once the work
// is scheduled. A routing failure is fatal: it halts the view model and is
// returned from this and every later call. After Close it fails with
// SERVICE_UNAVAILABLE.
func (vm *ViewModel) Submit(ctx context.Context, intent Intent) error {
	if err := vm.Err(); err != nil {
		return err
	}
	if vm.isClosed() {
		return errors.ServiceUnavailable("statistics view model")
	}
	vm.log.Debug("Intent received", logger.StageFields(logger.FieldIntent, intent))
	vm.metrics.RecordIntent(ctx, IntentName(intent))

	action, err := Route(intent)
	if err != nil {
		vm.halt(err)
		return err
	}
	vm.log.Debug("Action routed", logger.StageFields(logger.FieldAction, action))

	// Keep the caller's trace but not its cancellation.
	dispatchCtx := trace.ContextWithSpanContext(vm.ctx, trace.SpanContextFromContext(ctx))
	vm.processor.Dispatch(dispatchCtx, action, vm.fold)
	return nil
}

// ForwardIntents submits every intent received on intents until the
// channel is closed (nil), ctx is done (ctx.Err()) or routing fails
// (the fatal error).
func (vm *ViewModel) ForwardIntents(ctx context.Context, intents <-chan Intent) error {
	return pipeline.ForEach(ctx, pipeline.FromChan(intents), vm.Submit)
}

// States subscribes to the state stream.
func (vm *ViewModel) States(ctx context.Context) <-chan ViewState {
	return vm.stream.Subscribe(ctx)
}

// State returns the latest state.
func (vm *ViewModel) State() ViewState {
	return vm.stream.Current()
}

// Err returns the fatal error that halted the view model, or nil.
func (vm *ViewModel) Err() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.halted
}

// Close abandons in-flight fetches and ends every subscription. Later
// submits fail with SERVICE_UNAVAILABLE and late results are dropped.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	vm.closed = true
	vm.mu.Unlock()
	vm.cancel()
	vm.stream.Close()
}

func (vm *ViewModel) isClosed() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.closed
}

// fold queues r and, unless another call is already draining the queue,
// applies queued results one at a time in arrival order. Results are
// applied without holding mu, so observers may call back into the view
// model; a result produced from inside an observer is applied after it
// returns.
func (vm *ViewModel) fold(r Result) {
	vm.mu.Lock()
	vm.pending = append(vm.pending, r)
	if vm.folding {
		vm.mu.Unlock()
		return
	}
	vm.folding = true
	for len(vm.pending) > 0 {
		next := vm.pending[0]
		vm.pending = vm.pending[1:]
		stopped := vm.halted != nil || vm.closed
		vm.mu.Unlock()
		if !stopped {
			vm.apply(next)
		}
		vm.mu.Lock()
	}
	vm.pending = nil
	vm.folding = false
	vm.mu.Unlock()
}

func (vm *ViewModel) apply(r Result) {
	vm.log.Debug("Result received", logger.StageFields(logger.FieldResult, r))

	next, err := reduceSafely(vm.state, r)
	if err != nil {
		vm.halt(err)
		return
	}
	vm.metrics.RecordResult(vm.ctx, r.Status().String())
	switch r.Status() {
	case StatusInFlight:
		vm.metrics.AddLoading(vm.ctx, 1)
	default:
		vm.metrics.AddLoading(vm.ctx, -1)
	}

	vm.state = next
	vm.stream.Publish(next)
	vm.log.Debug("State reduced", logger.StageFields(logger.FieldState, next))
	for _, observe := range vm.observers {
		observe(next)
	}
}

func reduceSafely(prev ViewState, r Result) (next ViewState, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok && errors.HasCode(e, errors.ErrCodeUnhandledResult) {
				err = e
				return
			}
			err = errors.Internal(fmt.Errorf("reducer panicked: %v", rec))
		}
	}()
	return Reduce(prev, r), nil
}

func (vm *ViewModel) halt(err error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.haltLocked(err)
}

func (vm *ViewModel) haltLocked(err error) {
	if vm.halted != nil {
		return
	}
	vm.halted = err
	vm.log.Error("Statistics pipeline halted", logger.ErrorFields("fold", err))
	vm.stream.Close()
}

// --- component.Component ---

// Name implements component.Component.
func (vm *ViewModel) Name() string { return ComponentName }

// Start implements component.Component.
func (vm *ViewModel) Start(_ context.Context) error {
	if err := vm.Err(); err != nil {
		return err
	}
	vm.log.Info("Statistics view model started")
	return nil
}

// Stop implements component.Component.
func (vm *ViewModel) Stop(_ context.Context) error {
	vm.Close()
	vm.log.Info("Statistics view model stopped")
	return nil
}

// Health implements component.Component.
func (vm *ViewModel) Health(_ context.Context) component.Health {
	if err := vm.Err(); err != nil {
		return component.Health{Name: ComponentName, Status: component.StatusUnhealthy, Message: err.Error()}
	}
	if vm.isClosed() {
		return component.Health{Name: ComponentName, Status: component.StatusUnhealthy, Message: "closed"}
	}
	s := vm.State()
	if s.Err != nil {
		return component.Health{Name: ComponentName, Status: component.StatusDegraded, Message: s.Err.Error()}
	}
	return component.Health{Name: ComponentName, Status: component.StatusHealthy, Message: s.String()}
}
