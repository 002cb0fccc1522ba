package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/taskstats/component"
	"github.com/kbukum/taskstats/logger"
	"github.com/kbukum/taskstats/resilience"
)

// DefaultWorkers is the pool size used when PoolConfig.Workers is unset.
const DefaultWorkers = 4

// PoolConfig configures a background Pool.
type PoolConfig struct {
	Name    string `mapstructure:"name"`
	Workers int    `mapstructure:"workers" validate:"gte=0"`
}

// Pool runs scheduled work on background goroutines, at most Workers at a
// time. Work beyond that waits for a slot instead of being rejected.
type Pool struct {
	name     string
	bulkhead *resilience.Bulkhead
	log      *logger.Logger

	mu      sync.Mutex
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

var (
	_ Scheduler           = (*Pool)(nil)
	_ component.Component = (*Pool)(nil)
)

// NewPool creates a pool that is ready to accept work.
func NewPool(cfg PoolConfig, log *logger.Logger) *Pool {
	if cfg.Name == "" {
		cfg.Name = "io"
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		name: cfg.Name,
		log:  log.WithComponent("scheduler").WithFields(logger.Fields("scheduler", cfg.Name)),
		bulkhead: resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          cfg.Name,
			MaxConcurrent: cfg.Workers,
			MaxWait:       resilience.WaitForever,
		}),
		ctx:    ctx,
		cancel: cancel,
	}
	return p
}

// Schedule queues fn for background execution and returns immediately.
// Work scheduled after Stop is discarded.
func (p *Pool) Schedule(fn func()) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		p.log.Warn("Work scheduled on stopped pool, discarded")
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		err := p.bulkhead.Execute(p.ctx, func() error {
			defer p.recover()
			fn()
			return nil
		})
		if err != nil {
			p.log.Warn("Scheduled work abandoned", logger.ErrorFields("schedule", err))
		}
	}()
}

func (p *Pool) recover() {
	if r := recover(); r != nil {
		p.log.Error("Scheduled work panicked", logger.Fields("panic", fmt.Sprint(r)))
	}
}

// Name implements component.Component.
func (p *Pool) Name() string { return p.name + "-pool" }

// Start implements component.Component. The pool accepts work from creation.
func (p *Pool) Start(context.Context) error { return nil }

// Stop rejects new work, abandons work still waiting for a slot and waits
// for running work to return or ctx to end.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Health implements component.Component.
func (p *Pool) Health(context.Context) component.Health {
	h := component.Health{
		Name:    p.Name(),
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("%d/%d workers busy", p.bulkhead.InUse(), p.bulkhead.MaxConcurrent()),
	}
	if p.ctx.Err() != nil {
		h.Status = component.StatusUnhealthy
		h.Message = "stopped"
	}
	return h
}
