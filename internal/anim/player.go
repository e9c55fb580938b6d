package anim

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/virtuallab/internal/sched"
)

type Status int

const (
	Idle Status = iota
	Playing
	Paused
	Finished
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return "idle"
	}
}

// Player runs one Motion on a scheduler. Progress survives pause/resume;
// only a completion timer is kept armed while playing.
type Player struct {
	sched    *sched.Scheduler
	motion   Motion
	loaded   bool
	status   Status
	banked   time.Duration
	resumed  time.Duration
	timer    *sched.Timer
	onFinish func()
}

func NewPlayer(s *sched.Scheduler) *Player {
	return &Player{sched: s}
}

// Load replaces the current motion, stopping any run in progress.
func (p *Player) Load(m Motion) {
	p.Stop()
	p.motion = m
	p.loaded = true
}

// Unload stops the player and forgets its motion.
func (p *Player) Unload() {
	p.Stop()
	p.motion = Motion{}
	p.loaded = false
}

func (p *Player) Loaded() bool { return p.loaded }

func (p *Player) Motion() Motion { return p.motion }

// SetDuration changes the duration of the loaded motion. It has no effect
// on a run already in progress until the next Play.
func (p *Player) SetDuration(d time.Duration) {
	if p.status == Playing || p.status == Paused {
		return
	}
	p.motion.Duration = d
}

func (p *Player) OnFinish(fn func()) { p.onFinish = fn }

// Play starts the loaded motion from its beginning.
func (p *Player) Play() {
	if !p.loaded {
		return
	}
	p.cancel()
	p.banked = 0
	p.run()
}

func (p *Player) Pause() {
	if p.status != Playing {
		return
	}
	p.banked += p.sched.Now() - p.resumed
	p.cancel()
	p.status = Paused
}

func (p *Player) Resume() {
	if p.status != Paused {
		return
	}
	p.run()
}

// Stop halts the motion and rewinds it.
func (p *Player) Stop() {
	p.cancel()
	p.banked = 0
	p.status = Idle
}

func (p *Player) Status() Status { return p.status }

// Elapsed returns how far into the motion the player is.
func (p *Player) Elapsed() time.Duration {
	e := p.banked
	if p.status == Playing {
		e += p.sched.Now() - p.resumed
	}
	if p.status == Finished || e > p.motion.Duration {
		return p.motion.Duration
	}
	return e
}

func (p *Player) Position() mgl64.Vec2 {
	if p.status == Idle {
		return p.motion.Start
	}
	return p.motion.PositionAt(p.Elapsed())
}

func (p *Player) run() {
	p.resumed = p.sched.Now()
	p.status = Playing
	p.timer = p.sched.After(p.motion.Duration-p.banked, p.finish)
}

func (p *Player) finish() {
	p.timer = nil
	p.banked = p.motion.Duration
	p.status = Finished
	if p.onFinish != nil {
		p.onFinish()
	}
}

func (p *Player) cancel() {
	p.timer.Stop()
	p.timer = nil
}
