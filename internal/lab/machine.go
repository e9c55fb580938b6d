package lab

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/virtuallab/internal/anim"
	"github.com/san-kum/virtuallab/internal/clock"
	"github.com/san-kum/virtuallab/internal/config"
	"github.com/san-kum/virtuallab/internal/kinematics"
	"github.com/san-kum/virtuallab/internal/sched"
)

// Machine is the surface shared by every practical.
type Machine interface {
	Practical() Practical
	Mode() Mode
	State() State
	Caption() string
	Clock() *clock.Clock

	// Start runs the prepared motion from the beginning.
	Start() error
	Pause()
	Resume()
	ChangeSpeed(raw int)
	ResetTimer()

	Running() bool
	Paused() bool
	Speed() int

	// Position returns where the moving object currently is in scene
	// coordinates.
	Position() mgl64.Vec2
}

// Observer receives display updates from a machine.
type Observer interface {
	OnCaption(caption string)
	OnClock(display string)
	OnFinished(state State)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Caption  func(string)
	Clock    func(string)
	Finished func(State)
}

func (o ObserverFuncs) OnCaption(c string) {
	if o.Caption != nil {
		o.Caption(c)
	}
}

func (o ObserverFuncs) OnClock(d string) {
	if o.Clock != nil {
		o.Clock(d)
	}
}

func (o ObserverFuncs) OnFinished(s State) {
	if o.Finished != nil {
		o.Finished(s)
	}
}

type options struct {
	sched    *sched.Scheduler
	observer Observer
	cfg      *config.Config
}

type Option func(*options)

// WithScheduler shares s with the caller, which then advances time.
func WithScheduler(s *sched.Scheduler) Option {
	return func(o *options) { o.sched = s }
}

func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithConfig applies the speed, LED and physics settings of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sched == nil {
		o.sched = sched.New()
	}
	if o.observer == nil {
		o.observer = ObserverFuncs{}
	}
	if o.cfg == nil {
		o.cfg = config.DefaultConfig()
	}
	return o
}

// New builds the machine for a practical in the given mode.
func New(p Practical, mode Mode, opts ...Option) (Machine, error) {
	if mode != Example && mode != DIY {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	switch p {
	case VerticalDrop:
		return NewVertical(mode, opts...), nil
	case RampRoll:
		return NewRamp(mode, opts...), nil
	case PlanckConstant:
		return NewPlanck(mode, opts...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPractical, p)
}

// scene holds the clock, the motion player and the bookkeeping common to
// all practicals.
type scene struct {
	practical Practical
	mode      Mode
	sched     *sched.Scheduler
	clock     *clock.Clock
	player    *anim.Player
	observer  Observer

	state   State
	caption string
	rest    mgl64.Vec2
	base    float64
	raw     int
	speed   int

	onTick   func()
	onFinish func()
}

func newScene(p Practical, mode Mode, o options, clockOpts ...clock.Option) scene {
	return scene{
		practical: p,
		mode:      mode,
		sched:     o.sched,
		clock:     clock.New(o.sched, clockOpts...),
		player:    anim.NewPlayer(o.sched),
		observer:  o.observer,
	}
}

// wire registers the scene's callbacks. It is called once the scene has
// reached its final address inside the variant.
func (s *scene) wire(raw int) {
	s.clock.OnChange(func(display string) {
		s.observer.OnClock(display)
		if s.onTick != nil {
			s.onTick()
		}
	})
	s.player.OnFinish(s.finished)
	s.ChangeSpeed(raw)
}

func (s *scene) Practical() Practical { return s.practical }

func (s *scene) Mode() Mode { return s.mode }

func (s *scene) State() State { return s.state }

func (s *scene) Caption() string { return s.caption }

func (s *scene) Clock() *clock.Clock { return s.clock }

func (s *scene) Scheduler() *sched.Scheduler { return s.sched }

func (s *scene) Running() bool { return s.player.Status() == anim.Playing }

func (s *scene) Paused() bool { return s.player.Status() == anim.Paused }

func (s *scene) Speed() int { return s.speed }

// RawSpeed returns the slider value last passed to ChangeSpeed.
func (s *scene) RawSpeed() int { return s.raw }

// ChangeSpeed sets the speed factor used by the next Start or Resume.
func (s *scene) ChangeSpeed(raw int) {
	s.raw = raw
	s.speed = kinematics.SpeedFactor(raw)
}

func (s *scene) Pause() {
	if s.player.Status() != anim.Playing {
		return
	}
	s.clock.Pause()
	s.player.Pause()
}

func (s *scene) Resume() {
	if s.player.Status() != anim.Paused {
		return
	}
	s.clock.Resume(s.speed)
	s.player.Resume()
}

// ResetTimer zeroes the clock. A running clock stops; a paused one picks
// up from zero on Resume.
func (s *scene) ResetTimer() {
	if !s.clock.Paused() {
		s.clock.Stop()
	}
	s.clock.Reset()
}

func (s *scene) Position() mgl64.Vec2 {
	if s.player.Status() == anim.Idle {
		return s.rest
	}
	return s.player.Position()
}

// Motion returns the prepared motion, if any.
func (s *scene) Motion() (anim.Motion, bool) {
	return s.player.Motion(), s.player.Loaded()
}

func (s *scene) active() bool {
	st := s.player.Status()
	return st == anim.Playing || st == anim.Paused
}

func (s *scene) setCaption(text string) {
	s.caption = text
	s.observer.OnCaption(text)
}

// still halts any motion, rewinds the clock and sets the resting state.
func (s *scene) still(state State, caption string) {
	s.player.Stop()
	s.clock.Stop()
	s.clock.Reset()
	s.state = state
	s.setCaption(caption)
}

// play restarts the clock and runs the loaded motion for d. The clock is
// armed first so a tick falling due with the motion's end is counted.
func (s *scene) play(d time.Duration) {
	s.clock.Stop()
	s.clock.Reset()
	s.clock.Start(s.speed)
	s.player.SetDuration(d)
	s.player.Play()
}

func (s *scene) finished() {
	s.clock.Stop()
	if s.onFinish != nil {
		s.onFinish()
	}
	s.observer.OnFinished(s.state)
}

func (s *scene) err(op string, err error) error {
	return &StepError{Practical: s.practical, State: s.state, Op: op, Wrapped: err}
}
