package results

import (
	"fmt"
	"math"
)

// Accepted values and the constants used to derive h.
const (
	StandardGravity = 9.81
	PlanckAccepted  = 6.63e-34
	ElectronCharge  = 1.602e-19
	SpeedOfLight    = 3e8

	// RampAngle is the incline of the ramp practical in degrees.
	RampAngle = 30.0
)

// Fit is a least squares straight line y = Gradient·x + Intercept.
type Fit struct {
	Gradient  float64
	Intercept float64
	N         int
}

func (f Fit) At(x float64) float64 {
	return f.Gradient*x + f.Intercept
}

// LinearFit fits a degree one polynomial through the points.
func LinearFit(x, y []float64) (Fit, error) {
	if len(x) != len(y) {
		return Fit{}, fmt.Errorf("results: %d x values for %d y values", len(x), len(y))
	}
	n := float64(len(x))
	if len(x) < 2 {
		return Fit{}, ErrTooFewPoints
	}
	var sx, sy float64
	for i := range x {
		sx += x[i]
		sy += y[i]
	}
	mx, my := sx/n, sy/n
	var sxx, sxy float64
	for i := range x {
		dx := x[i] - mx
		sxx += dx * dx
		sxy += dx * (y[i] - my)
	}
	if sxx == 0 {
		return Fit{}, ErrTooFewPoints
	}
	m := sxy / sxx
	return Fit{Gradient: m, Intercept: my - m*mx, N: len(x)}, nil
}

// GravityFromVertical returns g for a distance against time² gradient,
// since s = ½gt².
func GravityFromVertical(gradient float64) float64 {
	return gradient * 2
}

// GravityFromRamp returns g for a ramp distance against time² gradient.
func GravityFromRamp(gradient float64) float64 {
	return gradient * 2 / sinDeg(RampAngle)
}

// GravityFromRoll returns g from a single roll of s metres taking t seconds
// down an incline of angle degrees.
func GravityFromRoll(s, t, angle float64) float64 {
	return s / (0.5 * sinDeg(angle) * t * t)
}

// PlanckFromGradient returns h for a voltage against 1/λ gradient,
// since eV = hc/λ.
func PlanckFromGradient(gradient float64) float64 {
	return gradient * ElectronCharge / SpeedOfLight
}

// PercentError is the distance of measured from accepted as a percentage of
// accepted, rounded to one place.
func PercentError(measured, accepted float64) float64 {
	return round(math.Abs(accepted-measured)/accepted*100, 1)
}

// Result is the outcome of analysing a table.
type Result struct {
	Experiment Experiment
	Fit        Fit
	Symbol     string
	Unit       string
	Value      float64
	Accepted   float64
	Error      float64
	Tip        string
}

func (r Result) String() string {
	return fmt.Sprintf("%s = %.3g %s (accepted %.3g, error %.1f%%)", r.Symbol, r.Value, r.Unit, r.Accepted, r.Error)
}

// Analyse averages the table, fits its points and derives the practical's
// constant.
func Analyse(t *Table) (Result, error) {
	if t.Empty() {
		return Result{}, ErrNoRows
	}
	t.CalcAverages()
	x, y := t.Points()
	f, err := LinearFit(x, y)
	if err != nil {
		return Result{}, err
	}
	r := Result{Experiment: t.exp, Fit: f}
	switch t.exp {
	case Planck:
		r.Symbol, r.Unit, r.Accepted = "h", "Js", PlanckAccepted
		r.Value = PlanckFromGradient(f.Gradient)
		r.Tip = "Tip: h = (gradient × e)/c"
	case Ramp:
		r.Symbol, r.Unit, r.Accepted = "g", "m/s²", StandardGravity
		r.Value = GravityFromRamp(f.Gradient)
		r.Tip = "Tip: g = (gradient × 2) ÷ sin(30)"
	default:
		r.Symbol, r.Unit, r.Accepted = "g", "m/s²", StandardGravity
		r.Value = GravityFromVertical(f.Gradient)
		r.Tip = "Tip: g = gradient × 2"
	}
	r.Error = PercentError(r.Value, r.Accepted)
	return r, nil
}

func sinDeg(deg float64) float64 {
	return math.Sin(deg * math.Pi / 180)
}
