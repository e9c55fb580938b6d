package lab

import (
	"fmt"
	"strings"
)

type Practical string

const (
	VerticalDrop   Practical = "vertical"
	RampRoll       Practical = "ramp"
	PlanckConstant Practical = "planck"
)

var Practicals = []Practical{VerticalDrop, RampRoll, PlanckConstant}

func ParsePractical(s string) (Practical, error) {
	p := Practical(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Practicals {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPractical, s)
}

func (p Practical) Title() string {
	switch p {
	case VerticalDrop:
		return "Vertical Drop"
	case RampRoll:
		return "Ramp Roll"
	case PlanckConstant:
		return "Planck's Constant"
	}
	return string(p)
}

// Mode selects between the scripted example and the user driven practical.
type Mode int

const (
	Example Mode = iota
	DIY
)

func (m Mode) String() string {
	if m == DIY {
		return "diy"
	}
	return "example"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "example", "":
		return Example, nil
	case "diy", "practical":
		return DIY, nil
	}
	return Example, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

type State int

const (
	Setup1 State = iota + 1
	Dropping1
	Setup2
	Dropping2

	PlanckSetup
	Sliding
	PlanckSetup2

	BuildingCircuit
	CircuitVerified
	Measuring
)

var stateNames = map[State]string{
	Setup1:          "setup-1",
	Dropping1:       "dropping-1",
	Setup2:          "setup-2",
	Dropping2:       "dropping-2",
	PlanckSetup:     "planck-setup",
	Sliding:         "sliding",
	PlanckSetup2:    "planck-setup-2",
	BuildingCircuit: "building-circuit",
	CircuitVerified: "circuit-verified",
	Measuring:       "measuring",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Playable reports whether the start control may run a motion in s.
func (s State) Playable() bool {
	switch s {
	case Dropping1, Dropping2, Sliding, PlanckSetup2:
		return true
	}
	return false
}
