package lab

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/virtuallab/internal/anim"
	"github.com/san-kum/virtuallab/internal/config"
	"github.com/san-kum/virtuallab/internal/kinematics"
)

// Scene coordinates of the drop practicals.
var (
	// VerticalX is the column the example ball falls down.
	VerticalX = 100.0

	VerticalExampleEnd = mgl64.Vec2{100, 503}
	VerticalDIYStart   = mgl64.Vec2{0, -38}

	RampExampleEnd = mgl64.Vec2{-18, 210}
	RampDIYStart   = mgl64.Vec2{100, 250}
	RampDIYEnd     = mgl64.Vec2{-120, 455}
)

// ball is the machinery shared by the vertical and ramp practicals: one
// ball dropped from a resting position to a landing point.
type ball struct {
	scene
	units      func(mgl64.Vec2) float64
	landing    func(mgl64.Vec2) mgl64.Vec2
	exampleEnd mgl64.Vec2
}

func (b *ball) init(raw int, start mgl64.Vec2) {
	b.wire(raw)
	b.onFinish = b.landed
	b.state = Setup1
	if b.mode == DIY {
		b.rest = start
	}
}

// still places the ball at rest at pos and forgets the prepared drop.
func (b *ball) still(state State, pos mgl64.Vec2, caption string) {
	b.scene.still(state, caption)
	b.player.Unload()
	b.rest = pos
}

// drop prepares the ball to fall from pos. The motion is not started.
func (b *ball) drop(pos mgl64.Vec2, state State, base float64, caption string) {
	b.clock.Stop()
	b.rest = pos
	b.base = base
	b.state = state
	b.setCaption(caption)
	b.player.Load(anim.NewMotion(pos, b.exampleEnd, kinematics.Millis(base, b.speed)))
}

// Start drops the ball. In DIY mode the fall time is worked out from where
// the ball is at the moment of the call.
func (b *ball) Start() error {
	if b.active() {
		return b.err("start", ErrMotionActive)
	}
	if b.mode == DIY {
		from := b.rest
		units := b.units(from)
		d := kinematics.Scheduled(units, b.speed)
		b.player.Load(anim.NewMotion(from, b.landing(from), d))
		b.state = Dropping1
		b.play(d)
		return nil
	}
	if !b.player.Loaded() {
		return b.err("start", ErrNoMotion)
	}
	b.play(kinematics.Millis(b.base, b.speed))
	return nil
}

// MoveBall repositions the ball before a DIY drop.
func (b *ball) MoveBall(p mgl64.Vec2) error {
	if b.mode != DIY {
		return b.err("move", ErrWrongMode)
	}
	if b.active() {
		return b.err("move", ErrMotionActive)
	}
	b.player.Unload()
	b.rest = p
	return nil
}

// Ball returns the ball's current position.
func (b *ball) Ball() mgl64.Vec2 { return b.Position() }

// Units returns the fall time in seconds the ball would take from where it
// rests now, before any speed scaling.
func (b *ball) Units() float64 { return b.units(b.rest) }

func (b *ball) landed() {
	if b.mode != DIY {
		return
	}
	b.rest = b.player.Motion().End
	b.player.Stop()
	b.state = Setup1
}

// Vertical is the free-fall practical.
type Vertical struct {
	ball
	model *kinematics.FreeFall
}

func NewVertical(mode Mode, opts ...Option) *Vertical {
	o := buildOptions(opts)
	v := &Vertical{
		ball:  ball{scene: newScene(VerticalDrop, mode, o)},
		model: kinematics.NewFreeFall(),
	}
	applyPhysics(o.cfg, v.model)
	v.units = v.model.Units
	v.landing = v.model.Landing
	v.exampleEnd = VerticalExampleEnd
	v.init(o.cfg.Speed, VerticalDIYStart)
	return v
}

// Still rests the ball at the given scene height.
func (v *Vertical) Still(state State, y float64, caption string) {
	v.still(state, mgl64.Vec2{VerticalX, y}, caption)
}

// Drop prepares a scripted fall from height y lasting base milliseconds at
// speed factor 1.
func (v *Vertical) Drop(y float64, state State, base float64, caption string) {
	v.drop(mgl64.Vec2{VerticalX, y}, state, base, caption)
}

// Height returns the drop height in metres from where the ball rests.
func (v *Vertical) Height() float64 { return v.model.Height(v.rest) }

func (v *Vertical) Model() *kinematics.FreeFall { return v.model }

// Ramp is the inclined plane practical.
type Ramp struct {
	ball
	model *kinematics.Incline
}

func NewRamp(mode Mode, opts ...Option) *Ramp {
	o := buildOptions(opts)
	r := &Ramp{
		ball:  ball{scene: newScene(RampRoll, mode, o)},
		model: kinematics.NewIncline(),
	}
	applyPhysics(o.cfg, r.model)
	r.units = r.model.Units
	r.landing = func(mgl64.Vec2) mgl64.Vec2 { return RampDIYEnd }
	r.exampleEnd = RampExampleEnd
	r.init(o.cfg.Speed, RampDIYStart)
	return r
}

func (r *Ramp) Still(state State, pos mgl64.Vec2, caption string) {
	r.still(state, pos, caption)
}

func (r *Ramp) Drop(pos mgl64.Vec2, state State, base float64, caption string) {
	r.drop(pos, state, base, caption)
}

// Distance returns the length along the ramp in metres from where the ball
// rests.
func (r *Ramp) Distance() float64 { return r.model.Distance(r.rest) }

func (r *Ramp) Model() *kinematics.Incline { return r.model }

type paramSetter interface {
	SetParam(name string, value float64) error
}

// applyPhysics copies the positive physics settings of cfg onto a model.
func applyPhysics(cfg *config.Config, m paramSetter) {
	if cfg.Physics.Gravity > 0 {
		_ = m.SetParam("gravity", cfg.Physics.Gravity)
	}
	if cfg.Physics.Scale > 0 {
		_ = m.SetParam("scale", cfg.Physics.Scale)
	}
}
