// Package schedule provides cooperative timers and the post-physics task
// queue. Everything runs on the caller's goroutine during Advance or Drain.
package schedule

import "github.com/younwookim/arena/internal/domain/entity"

// TaskID identifies a scheduled task. The zero value is never issued.
type TaskID uint64

// dueEpsilon absorbs float drift from summing frame deltas
const dueEpsilon = 1e-9

type task struct {
	id        TaskID
	owner     entity.ID
	fn        func()
	interval  float64
	remaining float64
	repeat    bool
	cancelled bool
}

// Scheduler runs timers and deferred tasks for the simulation.
// Not safe for concurrent use.
type Scheduler struct {
	nextID   TaskID
	tasks    map[TaskID]*task
	timers   []*task
	deferred []*task
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		tasks:    make(map[TaskID]*task),
		timers:   make([]*task, 0, 16),
		deferred: make([]*task, 0, 16),
	}
}

func (s *Scheduler) add(t *task) TaskID {
	s.nextID++
	t.id = s.nextID
	s.tasks[t.id] = t
	return t.id
}

// Every runs fn each interval seconds until cancelled.
// A non-positive interval schedules nothing and returns 0.
func (s *Scheduler) Every(owner entity.ID, interval float64, fn func()) TaskID {
	if interval <= 0 || fn == nil {
		return 0
	}
	t := &task{owner: owner, fn: fn, interval: interval, remaining: interval, repeat: true}
	id := s.add(t)
	s.timers = append(s.timers, t)
	return id
}

// After runs fn once, delay seconds from now.
// A non-positive delay fires on the next Advance.
func (s *Scheduler) After(owner entity.ID, delay float64, fn func()) TaskID {
	if fn == nil {
		return 0
	}
	t := &task{owner: owner, fn: fn, remaining: delay}
	id := s.add(t)
	s.timers = append(s.timers, t)
	return id
}

// Defer queues fn for the next post-physics Drain
func (s *Scheduler) Defer(owner entity.ID, fn func()) TaskID {
	if fn == nil {
		return 0
	}
	t := &task{owner: owner, fn: fn}
	id := s.add(t)
	s.deferred = append(s.deferred, t)
	return id
}

// Cancel stops a task. Unknown or finished IDs are ignored.
func (s *Scheduler) Cancel(id TaskID) {
	t, ok := s.tasks[id]
	if !ok {
		return
	}
	t.cancelled = true
	delete(s.tasks, id)
}

// CancelOwner cancels every task owned by owner and returns how many were live
func (s *Scheduler) CancelOwner(owner entity.ID) int {
	n := 0
	for id, t := range s.tasks {
		if t.owner == owner {
			t.cancelled = true
			delete(s.tasks, id)
			n++
		}
	}
	return n
}

// Advance moves timers forward by dt and fires those that came due.
// A repeating timer fires at most once per call. Timers created while
// advancing start counting on the next call.
func (s *Scheduler) Advance(dt float64) {
	timers := s.timers[:len(s.timers):len(s.timers)]
	for _, t := range timers {
		if t.cancelled {
			continue
		}
		t.remaining -= dt
		if t.remaining > dueEpsilon {
			continue
		}

		if !t.repeat {
			t.cancelled = true
			delete(s.tasks, t.id)
			t.fn()
			continue
		}

		t.fn()
		t.remaining += t.interval
		if t.remaining <= dueEpsilon {
			t.remaining = t.interval
		}
	}

	// Compact, keeping timers appended by callbacks
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}

// Drain runs the deferred tasks queued before this call, in order, and
// returns how many ran. Tasks deferred while draining wait for the next Drain.
func (s *Scheduler) Drain() int {
	if len(s.deferred) == 0 {
		return 0
	}
	batch := s.deferred
	s.deferred = make([]*task, 0, cap(batch))

	ran := 0
	for _, t := range batch {
		if t.cancelled {
			continue
		}
		t.cancelled = true
		delete(s.tasks, t.id)
		t.fn()
		ran++
	}
	return ran
}

// Pending returns the number of live tasks, timers and deferred
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// PendingDeferred returns the number of live tasks waiting for Drain
func (s *Scheduler) PendingDeferred() int {
	n := 0
	for _, t := range s.deferred {
		if !t.cancelled {
			n++
		}
	}
	return n
}
