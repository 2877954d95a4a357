package eventloop

import "time"

// Manual is a deterministic Scheduler for tests. Async work is queued until
// the test runs it, and time only moves on Advance. Everything executes on
// the calling goroutine.
type Manual struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
	tasks  []func() func()
}

// NewManual returns a Manual scheduler at time zero.
func NewManual() *Manual { return &Manual{} }

// Async implements Scheduler.
func (m *Manual) Async(work func() func()) {
	m.tasks = append(m.tasks, work)
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.seq++
	t := &manualTimer{at: m.now + d, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Pending returns the number of queued Async tasks.
func (m *Manual) Pending() int { return len(m.tasks) }

// PendingTimers returns the number of timers that are neither fired nor stopped.
func (m *Manual) PendingTimers() int {
	n := 0
	for _, t := range m.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// RunTask runs the i-th queued task and its continuation.
func (m *Manual) RunTask(i int) {
	work := m.tasks[i]
	m.tasks = append(m.tasks[:i:i], m.tasks[i+1:]...)
	if apply := work(); apply != nil {
		apply()
	}
}

// RunNext runs the oldest queued task. It reports whether one existed.
func (m *Manual) RunNext() bool {
	if len(m.tasks) == 0 {
		return false
	}
	m.RunTask(0)
	return true
}

// RunAll runs queued tasks, including ones queued meanwhile, until none remain.
func (m *Manual) RunAll() {
	for m.RunNext() {
	}
}

// Now returns the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration { return m.now }

// Advance moves virtual time forward by d, firing due timers in order.
// Timers scheduled by a firing callback run too if they fall due within d.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.at
		next.fired = true
		next.fn()
	}
	m.now = target
	m.compact()
}

func (m *Manual) nextDue(target time.Duration) *manualTimer {
	var next *manualTimer
	for _, t := range m.timers {
		if t.fired || t.stopped || t.at > target {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (m *Manual) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.fired && !t.stopped {
			live = append(live, t)
		}
	}
	m.timers = live
}

type manualTimer struct {
	at      time.Duration
	seq     int
	fn      func()
	fired   bool
	stopped bool
}

func (t *manualTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
