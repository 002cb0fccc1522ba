package task

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/kbukum/taskstats/component"
	"github.com/kbukum/taskstats/errors"
	"github.com/kbukum/taskstats/logger"
	"github.com/kbukum/taskstats/resilience"
)

// Component owns the task store's lifecycle and serves as the Source the
// statistics pipeline reads from. It can be handed out before Start;
// fetches before Start or after Stop fail with SERVICE_UNAVAILABLE.
type Component struct {
	cfg Config
	log *logger.Logger

	mu      sync.RWMutex
	store   Store
	source  Source
	breaker *resilience.CircuitBreaker
}

var (
	_ component.Component = (*Component)(nil)
	_ Source              = (*Component)(nil)
)

// NewComponent creates a task store component from cfg.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	return &Component{cfg: cfg, log: log.WithComponent("task-source")}
}

// Name implements component.Component.
func (c *Component) Name() string { return "task-store" }

// Start opens the backend, seeds it if configured and builds the decorated
// source.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store != nil {
		return nil
	}

	var store Store
	switch c.cfg.Driver {
	case DriverMemory:
		store = NewMemoryStore()
	case DriverSQLite:
		s, err := OpenSQLite(ctx, c.cfg.Path)
		if err != nil {
			return err
		}
		store = s
	default:
		return errors.InvalidInput("driver", fmt.Sprintf("unknown driver %q", c.cfg.Driver))
	}

	if c.cfg.Seed {
		n, err := Seed(ctx, store, DemoTasks())
		if err != nil {
			closeStore(store)
			return fmt.Errorf("seed tasks: %w", err)
		}
		if n > 0 {
			c.log.Info("Seeded demo tasks", logger.Fields("count", n))
		}
	}

	c.store = store
	c.source = c.decorate(store)
	c.log.Info("Task store started", logger.Fields("driver", c.cfg.Driver, "path", c.cfg.Path))
	return nil
}

// decorate wraps the store: latency innermost, then retries, then the
// breaker, then logging.
func (c *Component) decorate(store Store) Source {
	var src Source = WithDelay(store, c.cfg.Delay)

	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = c.cfg.Retry.MaxAttempts
	retry.InitialBackoff = c.cfg.Retry.InitialBackoff
	src = WithRetry(src, retry, c.log)

	if c.cfg.Breaker.MaxFailures > 0 {
		c.breaker = resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:        "task-store",
			MaxFailures: c.cfg.Breaker.MaxFailures,
			Timeout:     c.cfg.Breaker.Timeout,
			IsFailure:   CountsFailure,
			OnStateChange: func(name string, from, to resilience.State) {
				c.log.Warn("Circuit breaker state changed", logger.Fields("breaker", name, "from", from.String(), "to", to.String()))
			},
		})
		src = WithCircuitBreaker(src, c.breaker)
	}
	return WithLogging(src, c.log)
}

// Stop closes the backend.
func (c *Component) Stop(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		return nil
	}
	err := closeStore(c.store)
	c.store, c.source, c.breaker = nil, nil, nil
	return err
}

// Health implements component.Component.
func (c *Component) Health(ctx context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy, Message: c.cfg.Driver}
	switch {
	case c.store == nil:
		h.Status, h.Message = component.StatusUnhealthy, "not started"
	case c.breaker != nil && c.breaker.State() != resilience.StateClosed:
		h.Status, h.Message = component.StatusDegraded, "circuit "+c.breaker.State().String()
	default:
		if s, ok := c.store.(*SQLiteStore); ok {
			if err := s.Ping(ctx); err != nil {
				h.Status, h.Message = component.StatusUnhealthy, err.Error()
			}
		}
	}
	return h
}

// FetchAll implements Source through the decorated store.
func (c *Component) FetchAll(ctx context.Context) ([]Task, error) {
	c.mu.RLock()
	src := c.source
	c.mu.RUnlock()
	if src == nil {
		return nil, errors.ServiceUnavailable("task store")
	}
	return src.FetchAll(ctx)
}

// Store returns the underlying store, or nil before Start.
func (c *Component) Store() Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store
}

func closeStore(s Store) error {
	if cl, ok := s.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
