package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/taskstats/component"
	"github.com/kbukum/taskstats/logger"
)

// Loop runs scheduled work one item at a time, in scheduling order, on a
// single goroutine. Work scheduled before Start is queued and runs once
// the loop starts.
type Loop struct {
	name string
	log  *logger.Logger

	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	running bool
	stopped bool
	done    chan struct{}
}

var (
	_ Scheduler           = (*Loop)(nil)
	_ component.Component = (*Loop)(nil)
)

// NewLoop creates a stopped loop.
func NewLoop(name string, log *logger.Logger) *Loop {
	if name == "" {
		name = "ui"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Loop{
		name: name,
		log:  log.WithComponent("scheduler").WithFields(logger.Fields("scheduler", name)),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Schedule appends fn to the queue. It never blocks.
func (l *Loop) Schedule(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		l.log.Warn("Work scheduled on stopped loop, discarded")
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued items not yet started.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Name implements component.Component.
func (l *Loop) Name() string { return l.name + "-loop" }

// Start launches the loop goroutine.
func (l *Loop) Start(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return fmt.Errorf("loop %s already stopped", l.name)
	}
	if l.running {
		return nil
	}
	l.running = true
	go l.run()
	return nil
}

// Stop stops accepting work, lets the loop finish what is already queued
// and waits for it to exit or ctx to end.
func (l *Loop) Stop(ctx context.Context) error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return nil
	}
	l.stopped = true
	running := l.running
	l.mu.Unlock()

	if !running {
		return nil
	}
	select {
	case l.wake <- struct{}{}:
	default:
	}
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Health implements component.Component.
func (l *Loop) Health(context.Context) component.Health {
	l.mu.Lock()
	defer l.mu.Unlock()
	h := component.Health{
		Name:    l.Name(),
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("%d pending", len(l.queue)),
	}
	if !l.running || l.stopped {
		h.Status = component.StatusUnhealthy
		h.Message = "not running"
	}
	return h
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			stopped := l.stopped
			l.mu.Unlock()
			if stopped {
				return
			}
			<-l.wake
			continue
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		l.exec(fn)
	}
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("Loop work panicked", logger.Fields("panic", fmt.Sprint(r)))
		}
	}()
	fn()
}
