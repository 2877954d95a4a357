package journal

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/ziadkadry99/overlaykit/internal/overlay"
)

// DefaultBuffer is the number of transitions the recorder queues before
// dropping new ones.
const DefaultBuffer = 256

// Recorder writes transitions to a Store off the session loops. Observers
// never block: when the queue is full an entry is dropped and logged.
type Recorder struct {
	store  *Store
	logger zerolog.Logger
	queue  chan Entry
	wg     conc.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewRecorder starts a recorder with one writer goroutine.
func NewRecorder(store *Store, logger zerolog.Logger, buffer int) *Recorder {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	r := &Recorder{
		store:  store,
		logger: logger.With().Str("component", "journal").Logger(),
		queue:  make(chan Entry, buffer),
	}
	r.wg.Go(r.drain)
	return r
}

// Observer returns a TransitionObserver that tags entries with sessionID.
func (r *Recorder) Observer(sessionID string) overlay.TransitionObserver {
	return overlay.TransitionFunc(func(t overlay.Transition) {
		r.enqueue(Entry{
			Timestamp:  t.At,
			SessionID:  sessionID,
			Generation: t.Generation,
			From:       t.From.String(),
			To:         t.To.String(),
			URL:        t.URL,
		})
	})
}

func (r *Recorder) enqueue(e Entry) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.queue <- e:
	default:
		r.logger.Warn().Str("session", e.SessionID).Str("to", e.To).Msg("journal queue full, dropping transition")
	}
}

func (r *Recorder) drain() {
	for e := range r.queue {
		if err := r.store.Log(context.Background(), e); err != nil {
			r.logger.Error().Err(err).Str("session", e.SessionID).Msg("writing transition")
		}
	}
}

// Close stops accepting transitions and waits until queued ones are written.
func (r *Recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()
	r.wg.Wait()
}
