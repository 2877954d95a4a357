// Package eventloop provides the single-threaded scheduler the overlay
// controller runs on.
//
// All controller work executes on one goroutine. Blocking work (network
// fetches) runs elsewhere via Async and hands a continuation back to the
// loop; timers fire by posting onto the loop. Nothing the controller owns is
// ever touched from two goroutines.
package eventloop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// ErrStopped is returned when work is submitted to a stopped loop.
var ErrStopped = errors.New("event loop stopped")

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer before it ran.
	Stop() bool
}

// Scheduler is what the overlay controller needs from its host loop.
type Scheduler interface {
	// Async runs work off the loop; the function it returns, if non-nil,
	// is executed on the loop afterwards.
	Async(work func() func())
	// AfterFunc runs fn on the loop once d has elapsed, unless stopped.
	AfterFunc(d time.Duration, fn func()) Timer
}

const queueSize = 64

// Loop is a goroutine-backed Scheduler. Run must be called exactly once.
type Loop struct {
	queue    chan func()
	done     chan struct{}
	stopOnce sync.Once
	async    conc.WaitGroup
	log      zerolog.Logger
}

// New returns a loop ready to Run.
func New(log zerolog.Logger) *Loop {
	return &Loop{
		queue: make(chan func(), queueSize),
		done:  make(chan struct{}),
		log:   log,
	}
}

// Run executes posted functions in order until ctx is cancelled or Stop is
// called. A panicking function is logged and the loop keeps going.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.queue:
			l.exec(fn)
		}
	}
}

func (l *Loop) exec(fn func()) {
	var pc panics.Catcher
	pc.Try(fn)
	if r := pc.Recovered(); r != nil {
		l.log.Error().Err(r.AsError()).Msg("event loop: recovered panic")
	}
}

// Post queues fn for execution on the loop. It returns false once the loop
// has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Call runs fn on the loop and waits for it to finish.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrStopped
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Async implements Scheduler. The goroutine is owned by the loop and joined
// by Wait.
func (l *Loop) Async(work func() func()) {
	l.async.Go(func() {
		if apply := work(); apply != nil {
			l.Post(apply)
		}
	})
}

// AfterFunc implements Scheduler.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	lt := &loopTimer{}
	lt.t = time.AfterFunc(d, func() {
		l.Post(func() {
			// Stop and this check both run on the loop, so a timer stopped
			// after it was queued still never runs fn.
			if !lt.stopped.Load() {
				fn()
			}
		})
	})
	return lt
}

// Stop ends Run. Queued functions that have not started are dropped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// Done is closed once the loop has stopped.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Wait blocks until every Async goroutine has returned.
func (l *Loop) Wait() {
	l.async.Wait()
}

type loopTimer struct {
	t       *time.Timer
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	return t.t.Stop()
}
