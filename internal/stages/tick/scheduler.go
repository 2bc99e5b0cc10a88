package tick

import "time"

// RealScheduler hosts tick redelivery with time.AfterFunc. It is the
// production Scheduler capability; spec.md §5 leaves timer hosting to
// the embedder, and this is this repository's choice of embedder.
type RealScheduler struct{}

func (RealScheduler) Schedule(after time.Duration, fn func()) {
	time.AfterFunc(after, fn)
}

// ManualScheduler records scheduled calls without running them, for
// deterministic tests. FireAll runs every pending call in the order
// they were scheduled, ignoring their delays, and removes them.
type ManualScheduler struct {
	pending []manualEntry
}

type manualEntry struct {
	after time.Duration
	fn    func()
}

func (m *ManualScheduler) Schedule(after time.Duration, fn func()) {
	m.pending = append(m.pending, manualEntry{after: after, fn: fn})
}

// FireAll runs every scheduled callback and clears the queue,
// regardless of delay.
func (m *ManualScheduler) FireAll() {
	pending := m.pending
	m.pending = nil
	for _, e := range pending {
		e.fn()
	}
}

// Pending reports how many callbacks are scheduled and not yet fired.
func (m *ManualScheduler) Pending() int {
	return len(m.pending)
}
