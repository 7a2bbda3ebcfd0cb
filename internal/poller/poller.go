// Package poller re-invokes a page refresh callback on a fixed cadence.
package poller

import (
	"context"
	"time"
)

// Poller invokes a callback on a fixed interval until its context is
// cancelled. Callback re-entrancy is not prevented; the controllers'
// sequence guard makes overlapping refreshes safe.
type Poller struct {
	interval time.Duration
}

// New creates a poller with the given interval. Non-positive intervals fall
// back to one second.
func New(interval time.Duration) *Poller {
	if interval <= 0 {
		interval = time.Second
	}

	return &Poller{interval: interval}
}

// Interval returns the polling cadence.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Run blocks, invoking fn once per interval, until ctx is cancelled. Each
// invocation receives ctx so in-flight work is aborted on teardown.
func (p *Poller) Run(ctx context.Context, fn func(context.Context)) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}

// Start runs the poller in a goroutine and returns a stop function.
func (p *Poller) Start(ctx context.Context, fn func(context.Context)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)

	done := make(chan struct{})

	go func() {
		defer close(done)
		p.Run(ctx, fn)
	}()

	return func() {
		cancel()
		<-done
	}
}
