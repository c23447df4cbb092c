// Package timer implements the deferred-work scheduling that the host's
// per-tick hook services. Each loaded plugin owns one Set; every call to the
// plugin's process_tick entry point drains the callbacks that have come due.
package timer

import (
	"sort"
	"sync"
	"time"

	"github.com/tickgate-dev/tickgate-sdk/domain/ports"
)

// ID identifies one scheduled timer within a Set. IDs are never reused
// within the lifetime of a Set.
type ID uint32

// Callback is the deferred work a timer fires. Callbacks run on the host's
// tick thread and must not block.
type Callback func()

// Set schedules timers for a single plugin instance.
type Set struct {
	clock  ports.Clock
	timers map[ID]*entry
	next   ID
	mu     sync.Mutex
}

type entry struct {
	fires     time.Time
	interval  time.Duration
	fn        Callback
	id        ID
	repeating bool
}

// Option configures a Set.
type Option func(*Set)

// WithClock substitutes the clock used to decide when timers are due.
func WithClock(clock ports.Clock) Option {
	return func(s *Set) {
		s.clock = clock
	}
}

// NewSet creates an empty timer Set.
func NewSet(opts ...Option) *Set {
	s := &Set{
		clock:  ports.SystemClock(),
		timers: make(map[ID]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add schedules fn to fire after interval. A repeating timer reschedules
// itself after each firing; a one-shot timer is removed before its callback
// runs. Returns the timer's ID.
func (s *Set) Add(interval time.Duration, repeating bool, fn Callback) ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	id := s.next
	s.timers[id] = &entry{
		id:        id,
		interval:  interval,
		repeating: repeating,
		fires:     s.clock.Now().Add(interval),
		fn:        fn,
	}
	return id
}

// Remove cancels a timer. Returns false if the ID is unknown, which includes
// one-shot timers that have already fired.
func (s *Set) Remove(id ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.timers[id]; !ok {
		return false
	}
	delete(s.timers, id)
	return true
}

// Len returns the number of scheduled timers.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Process fires every timer that is due at the current clock reading and
// returns how many fired. Due timers fire in schedule order (earliest first,
// ties broken by ID). Callbacks run with the Set unlocked, so they may add or
// remove timers; a repeating timer that misses several ticks fires once per
// Process call, not once per missed interval.
func (s *Set) Process() int {
	now := s.clock.Now()

	s.mu.Lock()
	var due []*entry
	for _, e := range s.timers {
		if !e.fires.After(now) {
			due = append(due, e)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].fires.Equal(due[j].fires) {
			return due[i].id < due[j].id
		}
		return due[i].fires.Before(due[j].fires)
	})
	for _, e := range due {
		if e.repeating {
			e.fires = now.Add(e.interval)
		} else {
			delete(s.timers, e.id)
		}
	}
	s.mu.Unlock()

	for _, e := range due {
		e.fn()
	}
	return len(due)
}

// Clear removes all timers without firing them. Called on unload.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.timers {
		delete(s.timers, id)
	}
}
