package client

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultPollInterval is how often dashboard views refresh
	DefaultPollInterval = 15 * time.Second
	// ErrorBackoff replaces the interval after a failed refresh
	ErrorBackoff = 30 * time.Second
)

// Subscription is a running poll loop. Stop cancels the in-flight call and
// blocks until the loop has exited, so no callback fires after it returns.
type Subscription struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Poll runs fn immediately and then on every tick until Stop is called.
// A failing fn is retried on the backoff interval instead of the normal
// one.
func Poll(interval time.Duration, fn func(context.Context) error) *Subscription {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	sub := &Subscription{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go sub.run(interval, fn)
	return sub
}

// Stop ends the subscription and waits for the loop to exit
func (s *Subscription) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

func (s *Subscription) run(interval time.Duration, fn func(context.Context) error) {
	defer close(s.done)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		<-s.stop
		cancel()
	}()

	next := interval
	if err := fn(ctx); err != nil {
		next = ErrorBackoff
	}

	timer := time.NewTimer(next)
	defer timer.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-timer.C:
			if err := fn(ctx); err != nil {
				timer.Reset(ErrorBackoff)
			} else {
				timer.Reset(interval)
			}
		}
	}
}
