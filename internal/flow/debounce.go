package flow

import (
	"sync"
	"time"

	"go-interview-portal/internal/domain"
)

// persistFunc receives the coalesced value for one field once its quiet
// period elapses.
type persistFunc func(section domain.Section, questionKey string, value domain.AnswerValue)

type fieldKey struct {
	Section     domain.Section
	QuestionKey string
}

type pendingWrite struct {
	timer *time.Timer
	value domain.AnswerValue
}

// Debouncer coalesces rapid edits to the same field into a single persisted
// write issued after a quiet period. It keeps an explicit per-field timer
// table: each new edit cancels and replaces the field's pending timer, so the
// write that eventually fires carries the value of the last edit. Edits to
// different fields debounce independently.
//
// One Debouncer serves one identifier; the identifier dimension of the
// per-(identifier, section, questionKey) policy comes from each session
// owning its own instance.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	pending map[fieldKey]*pendingWrite
	persist persistFunc
}

func NewDebouncer(window time.Duration, persist persistFunc) *Debouncer {
	return &Debouncer{
		window:  window,
		pending: make(map[fieldKey]*pendingWrite),
		persist: persist,
	}
}

// Schedule records a new edit for the field, restarting its quiet period.
func (d *Debouncer) Schedule(section domain.Section, questionKey string, value domain.AnswerValue) {
	key := fieldKey{Section: section, QuestionKey: questionKey}

	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.pending[key]; ok {
		existing.timer.Stop()
		existing.value = value
		existing.timer.Reset(d.window)
		return
	}

	pw := &pendingWrite{value: value}
	pw.timer = time.AfterFunc(d.window, func() {
		d.fire(key)
	})
	d.pending[key] = pw
}

func (d *Debouncer) fire(key fieldKey) {
	d.mu.Lock()
	pw, ok := d.pending[key]
	if ok {
		delete(d.pending, key)
	}
	d.mu.Unlock()

	if ok {
		d.persist(key.Section, key.QuestionKey, pw.value)
	}
}

// Flush persists every pending write immediately, cancelling the timers.
// Used on submission and session teardown; plain step navigation does not
// flush.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	flushed := make(map[fieldKey]domain.AnswerValue, len(d.pending))
	for key, pw := range d.pending {
		pw.timer.Stop()
		flushed[key] = pw.value
		delete(d.pending, key)
	}
	d.mu.Unlock()

	for key, value := range flushed {
		d.persist(key.Section, key.QuestionKey, value)
	}
}

// PendingCount reports how many fields have a write waiting on its quiet
// period.
func (d *Debouncer) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
