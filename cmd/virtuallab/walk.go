package main

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/virtuallab/internal/circuit"
	"github.com/san-kum/virtuallab/internal/lab"
	"github.com/san-kum/virtuallab/internal/sched"
)

// walkLimit bounds how long a headless run may take in virtual time.
const walkLimit = 2 * time.Minute

func walkPractical(cmd *cobra.Command, args []string) error {
	p, err := lab.ParsePractical(args[0])
	if err != nil {
		return err
	}
	m := walkMode
	if m == "" {
		m = cfg.Mode
	}
	md, err := lab.ParseMode(m)
	if err != nil {
		return err
	}
	raw := walkSpeed
	if raw == 0 {
		raw = cfg.Speed
	}

	s := sched.New()
	obs := lab.ObserverFuncs{
		Caption:  func(c string) { log.WithField("caption", c).Debug("caption") },
		Finished: func(st lab.State) { log.WithField("state", st).Debug("motion finished") },
	}
	machine, err := lab.New(p, md, lab.WithScheduler(s), lab.WithObserver(obs), lab.WithConfig(cfg))
	if err != nil {
		return err
	}
	machine.ChangeSpeed(raw)
	sess := lab.NewSession(machine)
	if err := sess.Press(); err != nil {
		return err
	}

	fmt.Printf("%s (%s), speed %d\n\n", p.Title(), md, raw)
	if md == lab.DIY {
		return walkDIY(sess, s)
	}

	for step := 1; ; step++ {
		fmt.Printf("%d. %s\n   %s\n", step, sess.Instruction(), machine.Caption())
		if machine.State().Playable() {
			if err := sess.Press(); err != nil {
				return err
			}
			if err := runToEnd(s, machine); err != nil {
				return err
			}
		}
		if !sess.Next() {
			break
		}
	}
	return nil
}

// runToEnd advances virtual time until the machine's motion finishes and
// prints what it measured.
func runToEnd(s *sched.Scheduler, machine lab.Machine) error {
	start := s.Now()
	planck, _ := machine.(*lab.Planck)
	lit := ""
	for machine.Running() {
		if s.Now()-start > walkLimit {
			return fmt.Errorf("motion did not finish within %v", walkLimit)
		}
		s.Advance(10 * time.Millisecond)
		if planck != nil && lit == "" && planck.Lamp().Lit() {
			lit = planck.Reading()
		}
	}
	if planck != nil {
		if lit == "" {
			lit = "never"
		}
		fmt.Printf("   voltmeter %s V, LED %gnm lit at %s\n", planck.Reading(), planck.LED().Wavelength, lit)
		return nil
	}
	fmt.Printf("   timer %s after %v\n", machine.Clock().Display(), s.Now()-start)
	return nil
}

func walkDIY(sess *lab.Session, s *sched.Scheduler) error {
	fmt.Println(sess.Instruction())
	switch m := sess.Machine().(type) {
	case *lab.Vertical:
		params := m.Model().GetParams()
		pos := mgl64.Vec2{0, params["floor_y"] - height*params["scale"]}
		if err := m.MoveBall(pos); err != nil {
			return err
		}
		fmt.Printf("ball raised to %.3f m\n", m.Height())
	case *lab.Ramp:
		params := m.Model().GetParams()
		angle := params["angle"]
		foot := mgl64.Vec2{params["foot_x"], params["foot_y"]}
		up := mgl64.Vec2{math.Cos(angle), -math.Sin(angle)}
		if err := m.MoveBall(foot.Add(up.Mul(height * params["scale"]))); err != nil {
			return err
		}
		fmt.Printf("ball placed %.3f m up the ramp\n", m.Distance())
	case *lab.Planck:
		return walkCircuit(sess, m)
	}
	if err := sess.Press(); err != nil {
		return err
	}
	return runToEnd(s, sess.Machine())
}

// walkCircuit wires the canonical circuit, verifies it and turns the
// rheostat down until the LED lights.
func walkCircuit(sess *lab.Session, p *lab.Planck) error {
	if err := sess.Press(); !errors.Is(err, lab.ErrCircuitOpen) {
		return fmt.Errorf("empty circuit passed verification: %v", err)
	}
	fmt.Println(sess.Instruction())

	g := p.Graph()
	for _, e := range g.Edges() {
		w := g.WireFor(e[0], e[1])
		if err := p.BeginWire(w.From); err != nil {
			return err
		}
		p.UpdateWire(w.To)
		p.EndWire(w.To)
		log.WithFields(logrus.Fields{"from": e[0], "to": e[1]}).Debug("wired")
	}
	if err := sess.Press(); err != nil {
		return err
	}
	fmt.Println(sess.Instruction())

	for _, led := range circuit.LEDs {
		if err := p.ChangeLED(led.Wavelength); err != nil {
			return err
		}
		threshold := "never"
		for r := circuit.RheostatMax; r >= 0; r-- {
			if err := p.SetRheostat(r); err != nil {
				return err
			}
			if p.Lamp().Lit() {
				threshold = p.Reading() + " V"
				break
			}
		}
		fmt.Printf("   %gnm lit at %s\n", led.Wavelength, threshold)
		if err := p.SetRheostat(circuit.RheostatMax); err != nil {
			return err
		}
	}
	return nil
}
