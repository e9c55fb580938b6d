package clock

import (
	"fmt"
	"time"

	"github.com/san-kum/virtuallab/internal/sched"
)

const (
	// TickInterval is the length of one tick at speed factor 1.
	TickInterval = 10 * time.Millisecond
	TicksPerUnit = 100
)

// Clock is a fixed-tick stopwatch whose tick interval is scaled by a speed
// factor. The display reads "<units><sep><hundredths>", e.g. "1:50".
type Clock struct {
	sched    *sched.Scheduler
	timer    *sched.Timer
	ticks    int
	last     time.Duration
	phase    time.Duration
	paused   bool
	sep      string
	onChange func(string)
}

type Option func(*Clock)

// WithSeparator sets the string between whole units and hundredths. The
// voltmeter reading of the Planck practical uses ".".
func WithSeparator(sep string) Option {
	return func(c *Clock) { c.sep = sep }
}

func New(s *sched.Scheduler, opts ...Option) *Clock {
	c := &Clock{sched: s, sep: ":"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers fn to receive the display after every reset or tick.
func (c *Clock) OnChange(fn func(string)) { c.onChange = fn }

func (c *Clock) Reset() {
	c.ticks = 0
	c.notify()
}

func (c *Clock) Tick() {
	c.ticks++
	c.notify()
}

// Start schedules Tick every TickInterval*speedFactor. A running clock is
// re-armed at the new interval.
func (c *Clock) Start(speedFactor int) {
	c.timer.Stop()
	c.paused = false
	c.last = c.sched.Now()
	c.timer = c.sched.Every(interval(speedFactor), c.fire)
}

func (c *Clock) Stop() {
	c.timer.Stop()
	c.timer = nil
	c.paused = false
}

// Pause stops a running clock and keeps how far it was into the current
// tick, so Resume loses no time.
func (c *Clock) Pause() {
	if !c.timer.Active() {
		return
	}
	c.phase = c.sched.Now() - c.last
	c.timer.Stop()
	c.timer = nil
	c.paused = true
}

// Resume restarts a paused clock at the interval for speedFactor. The first
// tick falls due once the rest of the interrupted tick has passed.
func (c *Clock) Resume(speedFactor int) {
	if !c.paused {
		return
	}
	c.paused = false
	now := c.sched.Now()
	c.last = now - c.phase
	c.timer = c.sched.EveryAfter(interval(speedFactor)-c.phase, interval(speedFactor), c.fire)
}

func (c *Clock) Paused() bool { return c.paused }

func (c *Clock) Running() bool { return c.timer.Active() }

func (c *Clock) Ticks() int { return c.ticks }

// Value returns the reading as a number, 150 ticks being 1.5.
func (c *Clock) Value() float64 { return float64(c.ticks) / TicksPerUnit }

func (c *Clock) Display() string {
	return fmt.Sprintf("%d%s%02d", c.ticks/TicksPerUnit, c.sep, c.ticks%TicksPerUnit)
}

func (c *Clock) fire() {
	c.last = c.sched.Now()
	c.Tick()
}

func interval(speedFactor int) time.Duration {
	if speedFactor < 1 {
		speedFactor = 1
	}
	return time.Duration(speedFactor) * TickInterval
}

func (c *Clock) notify() {
	if c.onChange != nil {
		c.onChange(c.Display())
	}
}
