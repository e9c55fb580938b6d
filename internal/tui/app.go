// Package tui is the terminal front end: a menu of practicals, the animated
// apparatus and the results table.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/virtuallab/internal/circuit"
	"github.com/san-kum/virtuallab/internal/config"
	"github.com/san-kum/virtuallab/internal/kinematics"
	"github.com/san-kum/virtuallab/internal/lab"
	"github.com/san-kum/virtuallab/internal/results"
	"github.com/san-kum/virtuallab/internal/sched"
	"github.com/san-kum/virtuallab/internal/storage"
)

type screen int

const (
	screenMenu screen = iota
	screenLab
	screenTable
)

// Rows printed above the canvas; mouse rows are offset by this.
const (
	canvasTop  = 4
	canvasLeft = 3
)

// ballStep is how far one key press moves the DIY ball, in scene units.
const ballStep = kinematics.Scale / 20

var practicalInfo = map[lab.Practical]string{
	lab.VerticalDrop:   "g from a ball dropped vertically",
	lab.RampRoll:       "g from a ball rolled down a 30° ramp",
	lab.PlanckConstant: "h from LED threshold voltages",
}

type entry struct {
	practical lab.Practical
	mode      lab.Mode
}

// display collects what the machine reports between frames.
type display struct {
	clock    string
	finished int
}

type model struct {
	cfg   *config.Config
	store *storage.Store
	log   logrus.FieldLogger

	screen  screen
	cursor  int
	entries []entry

	sched    *sched.Scheduler
	sess     *lab.Session
	disp     *display
	raw      int
	lastTick time.Time
	status   string
	wireFrom int

	table    *results.Table
	editBuf  string
	keyField bool
	row      int
	tip      string
	result   string

	width, height int
}

type tickMsg time.Time

func (m model) tick() tea.Cmd {
	fps := m.cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

// NewApp builds the bubbletea model. store may be nil, in which case tables
// cannot be saved.
func NewApp(cfg *config.Config, store *storage.Store, log logrus.FieldLogger) *model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	m := &model{
		cfg:      cfg,
		store:    store,
		log:      log,
		screen:   screenMenu,
		raw:      cfg.Speed,
		wireFrom: -1,
		keyField: true,
		width:    80,
		height:   24,
	}
	for _, p := range lab.Practicals {
		m.entries = append(m.entries, entry{p, lab.Example}, entry{p, lab.DIY})
	}
	for i, e := range m.entries {
		if string(e.practical) == cfg.Practical && e.mode.String() == cfg.Mode {
			m.cursor = i
		}
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.screen == screenMenu || m.sched == nil {
			return m, nil
		}
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			if d := now.Sub(m.lastTick); d > 0 {
				m.sched.Advance(d)
			}
		}
		m.lastTick = now
		return m, m.tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.screen {
	case screenMenu:
		return m.menuKey(msg)
	case screenLab:
		return m.labKey(msg)
	case screenTable:
		return m.tableKey(msg), nil
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		e := m.entries[m.cursor]
		if err := m.open(e.practical, e.mode); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, tea.Batch(tea.ClearScreen, m.tick())
	}
	return m, nil
}

// open builds a machine for the practical and shows the lab screen.
func (m *model) open(p lab.Practical, mode lab.Mode) error {
	m.sched = sched.New()
	m.disp = &display{}
	d, log := m.disp, m.log
	obs := lab.ObserverFuncs{
		Caption:  func(c string) { log.WithField("caption", c).Debug("caption changed") },
		Clock:    func(s string) { d.clock = s },
		Finished: func(lab.State) { d.finished++ },
	}
	machine, err := lab.New(p, mode, lab.WithScheduler(m.sched), lab.WithObserver(obs), lab.WithConfig(m.cfg))
	if err != nil {
		return err
	}
	machine.ChangeSpeed(m.raw)
	m.sess = lab.NewSession(machine)
	m.table = results.NewTable(results.Experiment(p))
	m.tip = m.table.KeyTip()
	m.result = ""
	m.row = 0
	m.keyField = true
	m.editBuf = ""
	m.wireFrom = -1
	m.lastTick = time.Time{}
	m.status = ""
	m.screen = screenLab
	m.log.WithFields(logrus.Fields{"practical": p, "mode": mode}).Debug("opened practical")
	return nil
}

func (m model) labKey(msg tea.KeyMsg) (model, tea.Cmd) {
	machine := m.sess.Machine()
	m.status = ""
	switch msg.String() {
	case "q", "esc":
		m.screen = screenMenu
		m.sess = nil
		m.sched = nil
		return m, tea.ClearScreen
	case " ", "enter":
		m.report(m.sess.Press())
	case "n", "right":
		m.sess.Next()
	case "p", "left":
		m.sess.Prev()
	case "+", "=":
		if m.raw < kinematics.MaxSpeed {
			m.raw++
		}
		machine.ChangeSpeed(m.raw)
	case "-", "_":
		if m.raw > kinematics.MinSpeed {
			m.raw--
		}
		machine.ChangeSpeed(m.raw)
	case "r":
		machine.ResetTimer()
	case "t":
		m.screen = screenTable
		return m, tea.ClearScreen
	case "up", "k":
		m.moveBall(-1)
	case "down", "j":
		m.moveBall(1)
	case "L":
		m.cycleLED()
	case "[":
		m.turnRheostat(-10)
	case "]":
		m.turnRheostat(10)
	case "x":
		m.sess.ClearWires()
		m.wireFrom = -1
	default:
		if k := msg.String(); len(k) == 1 && k[0] >= '0' && k[0] <= '9' {
			m.wireKey(int(k[0] - '0'))
		}
	}
	return m, nil
}

func (m *model) report(err error) {
	if err == nil {
		return
	}
	m.log.WithError(err).Debug("control press")
	switch {
	case errors.Is(err, lab.ErrCircuitOpen):
		m.status = lab.CaptionNotConnected
	default:
		m.status = err.Error()
	}
}

// moveBall nudges the DIY ball; dir -1 raises it.
func (m *model) moveBall(dir float64) {
	var (
		err error
		pos mgl64.Vec2
	)
	switch b := m.sess.Machine().(type) {
	case *lab.Vertical:
		pos = b.Ball().Add(mgl64.Vec2{0, dir * ballStep})
		err = b.MoveBall(pos)
	case *lab.Ramp:
		along := lab.RampDIYEnd.Sub(b.Ball())
		if along.Len() == 0 {
			along = lab.RampDIYEnd.Sub(lab.RampDIYStart)
		}
		pos = b.Ball().Add(along.Normalize().Mul(dir * ballStep))
		err = b.MoveBall(pos)
	default:
		return
	}
	if err != nil && !errors.Is(err, lab.ErrWrongMode) {
		m.report(err)
	}
}

func (m *model) cycleLED() {
	p, ok := m.sess.Machine().(*lab.Planck)
	if !ok {
		return
	}
	next := circuit.LEDs[0]
	for i, led := range circuit.LEDs {
		if led.Wavelength == p.LED().Wavelength {
			next = circuit.LEDs[(i+1)%len(circuit.LEDs)]
		}
	}
	m.report(p.ChangeLED(next.Wavelength))
}

func (m *model) turnRheostat(delta int) {
	if p, ok := m.sess.Machine().(*lab.Planck); ok {
		m.report(p.SetRheostat(p.Rheostat() + delta))
	}
}

// wireKey draws a wire between two components picked by id in turn.
func (m *model) wireKey(id int) {
	p, ok := m.sess.Machine().(*lab.Planck)
	if !ok || p.Graph() == nil {
		return
	}
	comp, ok := p.Graph().Component(id)
	if !ok {
		return
	}
	if m.wireFrom < 0 {
		if err := p.BeginWire(comp.Region.Centre()); err != nil {
			m.report(err)
			return
		}
		m.wireFrom = id
		return
	}
	p.UpdateWire(comp.Region.Centre())
	p.EndWire(comp.Region.Centre())
	m.wireFrom = -1
}

func (m model) handleMouse(msg tea.MouseMsg) model {
	if m.screen != screenLab || m.sess == nil {
		return m
	}
	p, ok := m.sess.Machine().(*lab.Planck)
	if !ok || p.Graph() == nil {
		return m
	}
	pt := m.sceneCanvas().point(msg.X-canvasLeft, msg.Y-canvasTop)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.report(p.BeginWire(pt))
		}
	case tea.MouseActionMotion:
		p.UpdateWire(pt)
	case tea.MouseActionRelease:
		p.EndWire(pt)
	}
	return m
}

func (m model) View() string {
	switch m.screen {
	case screenMenu:
		return m.viewMenu()
	case screenLab:
		return m.viewLab()
	case screenTable:
		return m.viewTable()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("v i r t u a l l a b") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, e := range m.entries {
		name := fmt.Sprintf("%-18s %-8s", e.practical.Title(), e.mode)
		desc := practicalInfo[e.practical]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(name) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(name) + dimmer.Render(desc) + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n      " + red.Render(m.status) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter open   q quit") + "\n")
	return b.String()
}

func (m model) canvasSize() (int, int) {
	cw := m.width - 6
	ch := m.height - 12
	if cw < 50 {
		cw = 50
	}
	if ch < 12 {
		ch = 12
	}
	return cw, ch
}

// sceneCanvas returns an empty canvas over the scene area of the open
// practical.
func (m model) sceneCanvas() *canvas {
	cw, ch := m.canvasSize()
	machine := m.sess.Machine()
	switch machine.Practical() {
	case lab.RampRoll:
		return newCanvas(cw, ch, mgl64.Vec2{-160, -80}, mgl64.Vec2{440, 520})
	case lab.PlanckConstant:
		if machine.Mode() == lab.DIY {
			return newCanvas(cw, ch, mgl64.Vec2{-220, -320}, mgl64.Vec2{340, 220})
		}
		return newCanvas(cw, ch, mgl64.Vec2{0, 180}, mgl64.Vec2{220, 300})
	}
	return newCanvas(cw, ch, mgl64.Vec2{-60, -80}, mgl64.Vec2{260, 520})
}

func (m model) viewLab() string {
	machine := m.sess.Machine()
	c := m.sceneCanvas()
	switch machine.Practical() {
	case lab.VerticalDrop:
		drawVertical(c, machine)
	case lab.RampRoll:
		drawRamp(c, machine)
	case lab.PlanckConstant:
		drawPlanck(c, machine.(*lab.Planck))
	}

	var b strings.Builder
	icon, state := dim.Render("○"), dim.Render("idle")
	switch {
	case machine.Running():
		icon, state = green.Render("●"), green.Render("running")
	case machine.Paused():
		icon, state = yellow.Render("○"), yellow.Render("paused")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("   %s %s  %s  %s %s  %s\n",
		icon, cyan.Render(machine.Practical().Title()), state,
		dim.Render("clock"), magenta.Render(machine.Clock().Display()),
		dim.Render(fmt.Sprintf("speed %d", m.raw))))
	b.WriteString("   " + white.Render(machine.Caption()))
	if m.disp.finished > 0 {
		b.WriteString(dim.Render(fmt.Sprintf("   runs %d, last %s", m.disp.finished, m.disp.clock)))
	}
	b.WriteString("\n")
	b.WriteString("\n")
	for _, row := range c.lines() {
		b.WriteString("   " + row + "\n")
	}

	if p, ok := machine.(*lab.Planck); ok {
		r, g, bl := p.Lamp().Colour()
		b.WriteString(fmt.Sprintf("\n   LED %s %s   voltmeter %s V", rgb("◉", r, g, bl),
			dim.Render(fmt.Sprintf("%gnm", p.LED().Wavelength)), magenta.Render(p.Reading())))
		if p.Mode() == lab.DIY {
			b.WriteString(dim.Render(fmt.Sprintf("   rheostat %d", p.Rheostat())))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n   " + cyan.Render("["+m.sess.Control()+"]") + "  " + white.Render(m.sess.Instruction()) + "\n")
	if m.status != "" {
		b.WriteString("   " + red.Render(m.status) + "\n")
	}
	b.WriteString("\n" + dim.Render("   "+m.labHints()) + "\n")
	return b.String()
}

func (m model) labHints() string {
	machine := m.sess.Machine()
	if machine.Mode() == lab.Example {
		h := "space control  ←→ step  ±speed  r reset timer  t table  q menu"
		if machine.Practical() == lab.PlanckConstant {
			h += "  L led"
		}
		return h
	}
	if machine.Practical() == lab.PlanckConstant {
		return "0-9 wire  x clear  space check  [] rheostat  L led  t table  q menu"
	}
	return "↑↓ move ball  space control  ±speed  r reset timer  t table  q menu"
}

func drawVertical(c *canvas, machine lab.Machine) {
	c.line(mgl64.Vec2{-60, kinematics.FloorY + 38}, mgl64.Vec2{260, kinematics.FloorY + 38}, '▀')
	for y := 0.0; y <= 2*kinematics.Scale; y += kinematics.Scale / 4 {
		c.plot(mgl64.Vec2{-40, kinematics.FloorY + 38 - y}, '┤')
	}
	c.plot(machine.Position().Add(mgl64.Vec2{0, 19}), '⬤')
}

func drawRamp(c *canvas, machine lab.Machine) {
	foot := lab.RampExampleEnd
	if machine.Mode() == lab.DIY {
		foot = lab.RampDIYEnd
	}
	up := mgl64.Vec2{kinematics.Scale * 0.866, -kinematics.Scale * 0.5}
	c.line(foot.Sub(up.Mul(0.1)), foot.Add(up.Mul(1.1)), '╱')
	c.line(mgl64.Vec2{-160, 500}, mgl64.Vec2{440, 500}, '▀')
	c.plot(machine.Position(), '⬤')
}

func drawPlanck(c *canvas, p *lab.Planck) {
	if p.Mode() == lab.Example {
		c.line(lab.SliderEnd, lab.SliderStart, '═')
		c.plot(p.Position().Sub(mgl64.Vec2{0, 10}), '▼')
		c.text(mgl64.Vec2{lab.SliderEnd.X(), 200}, "variable resistor")
		return
	}
	for _, comp := range p.Components() {
		c.box(comp.Region.Min, comp.Region.Max)
		label := comp.Name
		if comp.Satisfied() {
			label += "✓"
		}
		c.text(comp.Region.Centre(), fmt.Sprintf("%d %s", comp.ID, label))
	}
	for _, w := range p.Graph().Wires() {
		c.line(w.From, w.To, '·')
	}
	if w, ok := p.Graph().Preview(); ok {
		c.line(w.From, w.To, '∘')
	}
}

// Run starts the terminal UI.
func Run(cfg *config.Config, store *storage.Store, log logrus.FieldLogger) error {
	p := tea.NewProgram(NewApp(cfg, store, log), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
