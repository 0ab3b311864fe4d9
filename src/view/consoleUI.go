package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"gameoflife/src/simulation"
	"gameoflife/src/universe"
)

//pane names
const (
	paneHeader        = "header"
	paneConfiguration = "configuration"
	paneStatus        = "status"
	paneField         = "field"
	paneHelp          = "help"
)

const (
	leftColumnWidth = 28
	minWindowHeight = 20
)

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal viewer
//cells can be toggled with the mouse, the simulation is controlled with the keys listed in the help pane
type ConsoleUI struct {
	r          *simulation.Runner
	g          *gocui.Gui
	k          []keyBinding
	liveFiller string
	deadFiller string
	//index of the next template settled by the 't' key
	nextTemplate int
}

var (
	runningStateDescr = map[simulation.RunningState]string{
		simulation.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		simulation.RunningStateStep:     "do the step",
		simulation.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		simulation.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
	cropWarning = aurora.Red("The field size is larger than the viewing area").BgBlack().String()
)

//NewViewTerminal creates the terminal UI, panics when the terminal can't be initialized
func NewViewTerminal() *ConsoleUI {
	t := &ConsoleUI{
		liveFiller: aurora.Green(universe.AliveGlyph).BgBrightGreen().String(),
		deadFiller: "░",
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}
	g.Mouse = true
	t.g = g
	t.k = t.keyBindings()
	t.g.SetManagerFunc(t.layout)
	for _, kb := range t.k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			log.Panicln(err)
		}
	}
	return t
}

func (t *ConsoleUI) keyBindings() []keyBinding {
	return []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdStep, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Random", t.cmdRandom, ""},
		{'t', "T", "Next template", t.cmdTemplate, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, paneField},
	}
}

func (t *ConsoleUI) Register(r *simulation.Runner) {
	t.r = r
}

//Start runs the terminal main loop until the user quits
func (t *ConsoleUI) Start() {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
}

func (t *ConsoleUI) Refresh() {
	t.renderField()
	t.renderConfiguration()
	t.renderStatus()
}

//drawField draws the snapshot into a maxW x maxH character area
//rows and columns that don't fit are cut and the last line is replaced with the crop warning
func drawField(a simulation.Snapshot, maxW int, maxH int, live string, dead string) string {
	var b bytes.Buffer
	crop := a.Width > maxW || a.Height > maxH
	for row := 0; row < a.Height && row < maxH; row++ {
		if row != 0 {
			b.WriteByte('\n')
		}
		if crop && row == maxH-1 {
			b.WriteString(cropWarning)
			break
		}
		line := a.Cells[row*a.Width : (row+1)*a.Width]
		for column, c := range line {
			if column >= maxW {
				break
			}
			if c.IsAlive() {
				b.WriteString(live)
			} else {
				b.WriteString(dead)
			}
		}
	}
	return b.String()
}

func (t *ConsoleUI) renderField() {
	a := t.r.Snapshot()
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		v, err := g.View(paneField)
		if err != nil {
			return err
		}
		v.Clear()
		maxW, maxH := v.Size()
		_, _ = fmt.Fprint(v, drawField(a, maxW, maxH, t.liveFiller, t.deadFiller))
		return nil
	})
}

func (t *ConsoleUI) renderStatus() {
	s := t.r.Status()
	t.g.Update(func(g *gocui.Gui) error {
		if v, err := g.View(paneStatus); err == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, renderProp("Generation", "%v", s.IterationNum))
			_, _ = fmt.Fprintln(v, renderProp("Live cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, renderProp("Tick time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	c := t.r.Options()
	t.g.Update(func(g *gocui.Gui) error {
		if v, err := g.View(paneConfiguration); err == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, renderProp("Dimension", "%v x %v", c.Width, c.Height))
			_, _ = fmt.Fprintln(v, renderProp("Interval", "%v", c.Interval))
			_, _ = fmt.Fprintln(v, renderProp("Max steps", "%v", c.MaxSteps))
			_, _ = fmt.Fprintln(v, renderProp("Templates", "%v", len(t.r.Templates())))
		}
		return nil
	})
}

func renderProp(name string, valueFormat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueFormat, values...)
}

//helpLine lists the key bindings
func helpLine(k []keyBinding) string {
	b := strings.Builder{}
	b.WriteString("KEYBINDINGS: ")
	for i, kb := range k {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(aurora.Green(kb.name).String())
		b.WriteString(": ")
		b.WriteString(kb.descr)
	}
	return b.String()
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil && err != gocui.ErrUnknownView {
			return err
		}
		for _, name := range []string{paneConfiguration, paneStatus, paneField, paneHelp} {
			_ = g.DeleteView(name)
		}
		return nil
	}
	if _, err := t.headerLayout(g, 3, "Conway's Game of Life on a torus"); err != nil && err != gocui.ErrUnknownView {
		return err
	}

	middle := 3 + (maxY-5-3)/2
	if v, err := g.SetView(paneConfiguration, 0, 3, leftColumnWidth, middle); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Configuration"
		t.renderConfiguration()
	}

	if v, err := g.SetView(paneStatus, 0, middle+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
		t.renderStatus()
	}

	if v, err := g.SetView(paneField, leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		o := t.r.Options()
		v.Title = fmt.Sprintf("Universe %vx%v", o.Width, o.Height)
	}
	t.renderField()

	if v, err := g.SetView(paneHelp, -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		_, _ = fmt.Fprintln(v, helpLine(t.k))
	}
	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView(paneHeader, -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdStep(_ *gocui.View) error {
	t.r.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.r.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.r.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.r.Clear()
	return nil
}

func (t *ConsoleUI) cmdRandom(_ *gocui.View) error {
	t.r.SettleWithRandomData()
	return nil
}

func (t *ConsoleUI) cmdTemplate(_ *gocui.View) error {
	names := t.r.Templates()
	if len(names) == 0 {
		return nil
	}
	t.r.Clear()
	t.r.SettleTemplate(names[t.nextTemplate%len(names)])
	t.nextTemplate++
	return nil
}

//cmdMouseClick toggles the cell under the cursor, the view cursor is (column, row)
func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.r.InverseCell(cy, cx)
	return nil
}
