// Package sched provides a virtual-time scheduler for the lab's clocks and
// animations.
//
// Nothing runs on its own: a caller advances time with [Scheduler.Advance]
// and every callback that falls due is invoked synchronously, in deadline
// order. Callbacks sharing a deadline fire in the order their timers were
// created.
//
// # Example
//
//	s := sched.New()
//	t := s.Every(10*time.Millisecond, func() { ticks++ })
//	s.Advance(time.Second) // ticks == 100
//	t.Stop()
//
// # Thread Safety
//
// A Scheduler is NOT safe for concurrent use. The lab is single threaded;
// the TUI advances it from its update loop.
package sched

import (
	"container/heap"
	"time"
)

type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

// Timer is a handle to a scheduled callback.
type Timer struct {
	s        *Scheduler
	fn       func()
	due      time.Duration
	interval time.Duration
	seq      uint64
	index    int
	active   bool
}

func New() *Scheduler {
	return &Scheduler{queue: make(timerQueue, 0)}
}

// Now returns the virtual time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration { return s.now }

// Every runs fn each interval until the timer is stopped. A non-positive
// interval is raised to one nanosecond.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Timer {
	if interval <= 0 {
		interval = 1
	}
	return s.schedule(interval, interval, fn)
}

// EveryAfter is Every with the first run first from now instead of one
// interval from now.
func (s *Scheduler) EveryAfter(first, interval time.Duration, fn func()) *Timer {
	if interval <= 0 {
		interval = 1
	}
	if first < 0 {
		first = 0
	}
	return s.schedule(first, interval, fn)
}

// After runs fn once, d from now.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	return s.schedule(d, 0, fn)
}

func (s *Scheduler) schedule(d, interval time.Duration, fn func()) *Timer {
	s.seq++
	t := &Timer{
		s:        s,
		fn:       fn,
		due:      s.now + d,
		interval: interval,
		seq:      s.seq,
		active:   true,
	}
	heap.Push(&s.queue, t)
	return t
}

// Advance moves virtual time forward by d, firing every callback that falls
// due on the way. Callbacks may schedule or stop timers.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := s.now + d
	for len(s.queue) > 0 {
		next := s.queue[0]
		if next.due > target {
			break
		}
		s.now = next.due
		if next.interval > 0 {
			next.due += next.interval
			heap.Fix(&s.queue, next.index)
		} else {
			heap.Pop(&s.queue)
			next.active = false
		}
		next.fn()
	}
	s.now = target
}

// Pending reports the number of armed timers.
func (s *Scheduler) Pending() int { return len(s.queue) }

// Stop cancels the timer. Stopping an inactive timer is a no-op.
func (t *Timer) Stop() {
	if t == nil || !t.active {
		return
	}
	t.active = false
	if t.index >= 0 && t.index < len(t.s.queue) && t.s.queue[t.index] == t {
		heap.Remove(&t.s.queue, t.index)
	}
}

func (t *Timer) Active() bool { return t != nil && t.active }

// Due returns the virtual time of the next firing.
func (t *Timer) Due() time.Duration { return t.due }

type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
