package statistics

import (
	"context"
	"sync"
)

// StateStream holds the latest ViewState and fans every new one out to
// subscribers. Each subscriber has its own unbounded queue, so a slow
// reader never loses states and never blocks Publish.
type StateStream struct {
	mu      sync.Mutex
	current ViewState
	subs    map[*subscriber]struct{}
	closed  bool
}

// NewStateStream returns a stream seeded with initial.
func NewStateStream(initial ViewState) *StateStream {
	return &StateStream{
		current: initial,
		subs:    make(map[*subscriber]struct{}),
	}
}

// Current returns the latest state.
func (s *StateStream) Current() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Publish makes state the latest and queues it for every subscriber.
// It is a no-op after Close.
func (s *StateStream) Publish(state ViewState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.current = state
	for sub := range s.subs {
		sub.push(state)
	}
}

// Subscribe returns a channel that yields the latest state at once and
// then every published state in order. The channel is closed when ctx is
// done or after the stream is closed and the queue is drained. Subscribing
// to a closed stream yields the final state and then closes.
func (s *StateStream) Subscribe(ctx context.Context) <-chan ViewState {
	sub := &subscriber{
		out:  make(chan ViewState),
		wake: make(chan struct{}, 1),
	}
	s.mu.Lock()
	sub.queue = append(sub.queue, s.current)
	if s.closed {
		sub.closed = true
	} else {
		s.subs[sub] = struct{}{}
	}
	s.mu.Unlock()

	go func() {
		defer s.remove(sub)
		sub.run(ctx)
	}()
	return sub.out
}

// Subscribers returns the number of live subscriptions.
func (s *StateStream) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close stops accepting states and ends every subscription once its
// queue is drained.
func (s *StateStream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for sub := range s.subs {
		sub.close()
	}
	s.subs = make(map[*subscriber]struct{})
}

func (s *StateStream) remove(sub *subscriber) {
	s.mu.Lock()
	delete(s.subs, sub)
	s.mu.Unlock()
}

type subscriber struct {
	out  chan ViewState
	wake chan struct{}

	mu     sync.Mutex
	queue  []ViewState
	closed bool
}

func (s *subscriber) push(state ViewState) {
	s.mu.Lock()
	s.queue = append(s.queue, state)
	s.mu.Unlock()
	s.signal()
}

func (s *subscriber) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.signal()
}

func (s *subscriber) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber) run(ctx context.Context) {
	defer close(s.out)
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return
			}
			select {
			case <-s.wake:
				continue
			case <-ctx.Done():
				return
			}
		}
		next := s.queue[0]
		s.queue[0] = ViewState{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- next:
		case <-ctx.Done():
			return
		}
	}
}
