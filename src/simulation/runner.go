package simulation

import (
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"gameoflife/src/universe"
)

//Options represents the Runner's configurable options
type Options struct {
	Width           int
	Height          int
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	Seed            int64 //seed for SettleWithRandomData, 0 picks one from the clock
}

//Status represents the status of the simulation at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
}

//Snapshot is a copy of the universe cells
type Snapshot struct {
	Width  int
	Height int
	Cells  []universe.Cell
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the runner
type Viewer interface {
	Refresh()
	Register(r *Runner)
	Start()
}

//The simulation running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual RunningState = iota
	RunningStateStep
	RunningStateRun
	RunningStateFinished
)

var DefaultOptions = Options{
	Width:           universe.DefWidth,
	Height:          universe.DefHeight,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
}

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "manual"
	case RunningStateStep:
		return "step"
	case RunningStateRun:
		return "run"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}

//Runner drives one Universe
//all universe mutations are executed by the control goroutine in the order they were requested
type Runner struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	area struct {
		*universe.Universe
		sync.Mutex
	}
	stateCh chan Status
	views   struct {
		list []Viewer
		sync.Mutex
	}
	//closed to end the current run loop, owned by the control goroutine
	runStop   chan struct{}
	templates struct {
		m map[string]universe.Template
		sync.Mutex
	}
	rnd       *rand.Rand
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

//New creates the Runner, takes the ownership of u and starts the control goroutine
//stateCh receives the status on every running state switch, it can be nil
func New(u *universe.Universe, o *Options, stateCh chan Status) *Runner {
	if o == nil {
		o = &DefaultOptions
	}
	r := Runner{
		options:   *o,
		stateCh:   stateCh,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
		done:      make(chan struct{}),
	}
	r.options.Width = u.Width()
	r.options.Height = u.Height()
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r.rnd = rand.New(rand.NewSource(seed))
	r.templates.m = map[string]universe.Template{}
	r.area.Universe = u
	r.state.LiveCells = u.LiveCells()
	go r.mainLoop()
	return &r
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (r *Runner) AddTemplate(tmpl universe.Template) {
	r.templates.Lock()
	r.templates.m[tmpl.Name] = tmpl
	r.templates.Unlock()
}

//Templates returns the names of the stored templates
func (r *Runner) Templates() []string {
	r.templates.Lock()
	defer r.templates.Unlock()
	names := make([]string, 0, len(r.templates.m))
	for k := range r.templates.m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//SettleTemplate populates the universe with the seeding template, returns immediately
func (r *Runner) SettleTemplate(name string) {
	r.send(func() { r.settleTemplate(name) })
}

//SettleWithRandomData clears the universe and populates it with random data, returns immediately
//ignored while the simulation is running
func (r *Runner) SettleWithRandomData() {
	r.send(r.settleRandom)
}

//InverseCell inverses the cell state at row, column, returns immediately
//points outside the universe are ignored
func (r *Runner) InverseCell(row int, column int) {
	r.send(func() {
		r.area.Lock()
		if !r.area.Contains(row, column) {
			r.area.Unlock()
			return
		}
		r.area.ToggleCell(row, column)
		live := r.area.LiveCells()
		r.area.Unlock()
		r.setLiveCells(live)
		r.refreshView()
	})
}

//RegisterViewer registers the viewer - the runner will call the viewer when the state is changed
func (r *Runner) RegisterViewer(v Viewer) {
	v.Register(r)
	r.views.Lock()
	r.views.list = append(r.views.list, v)
	r.views.Unlock()
}

//StateCh returns the channel with the status updates
func (r *Runner) StateCh() chan Status {
	return r.stateCh
}

//Status returns current simulation status represented by Status struct
func (r *Runner) Status() Status {
	r.state.Lock()
	defer r.state.Unlock()
	return r.state.Status
}

//Options returns current configuration represented by Options struct
func (r *Runner) Options() Options {
	return r.options
}

//Snapshot returns a copy of the current universe cells
func (r *Runner) Snapshot() Snapshot {
	r.area.Lock()
	defer r.area.Unlock()
	return Snapshot{
		Width:  r.area.Width(),
		Height: r.area.Height(),
		Cells:  append([]universe.Cell(nil), r.area.GetCells()...),
	}
}

//Render renders the universe with the given alive and dead fillers
func (r *Runner) Render(alive string, dead string) string {
	r.area.Lock()
	defer r.area.Unlock()
	return r.area.RenderWith(alive, dead)
}

//Run starts the simulation, returns immediately
func (r *Runner) Run() {
	r.send(r.run)
}

//Stop stops the simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (r *Runner) Stop() {
	r.send(r.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (r *Runner) Step() {
	r.send(r.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (r *Runner) Clear() {
	r.send(r.clear)
}

//Wait blocks until every command sent before it has been executed
func (r *Runner) Wait() {
	done := make(chan struct{})
	r.send(func() { close(done) })
	select {
	case <-done:
	case <-r.done:
	}
}

//Close stops the control goroutine, returns immediately
//commands sent after Close are dropped
func (r *Runner) Close() {
	r.closeOnce.Do(func() { close(r.closeCh) })
}

//send passes the command to the control goroutine
func (r *Runner) send(cmd func()) {
	select {
	case r.controlCh <- cmd:
	case <-r.done:
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (r *Runner) mainLoop() {
	defer close(r.done)
	for {
		select {
		case cmd := <-r.controlCh:
			cmd()
		case <-r.closeCh:
			return
		}
	}
}

func (r *Runner) mode() RunningState {
	r.state.Lock()
	defer r.state.Unlock()
	return r.state.RunningMode
}

func (r *Runner) setLiveCells(n int) {
	r.state.Lock()
	r.state.LiveCells = n
	r.state.Unlock()
}

//settleTemplate places the template points, the ones outside the universe are skipped
func (r *Runner) settleTemplate(name string) {
	r.templates.Lock()
	tmpl, ok := r.templates.m[name]
	r.templates.Unlock()
	if !ok {
		log.Printf("unknown template %q", name)
		return
	}
	r.area.Lock()
	points := make([]universe.Point, 0, len(tmpl.Cells))
	for _, p := range tmpl.Cells {
		if r.area.Contains(p.Row, p.Column) {
			points = append(points, p)
		}
	}
	r.area.SetCells(points)
	live := r.area.LiveCells()
	r.area.Unlock()
	r.setLiveCells(live)
	r.refreshView()
}

func (r *Runner) settleRandom() {
	mode := r.mode()
	if mode != RunningStateManual && mode != RunningStateFinished {
		return
	}
	r.clear()
	r.area.Lock()
	r.area.Fill(func(int) universe.Cell {
		return universe.Cell(r.rnd.Intn(2))
	})
	live := r.area.LiveCells()
	r.area.Unlock()
	r.setLiveCells(live)
	r.refreshView()
}

//switchRunningState switch the state of the simulation to RunningState
//also writes the new state to the stateCh to signal upper control software
func (r *Runner) switchRunningState(to RunningState) {
	r.state.Lock()
	r.state.RunningMode = to
	st := r.state.Status
	r.state.Unlock()
	if r.stateCh != nil {
		r.stateCh <- st
	}
}

//run starts the simulation loop
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (r *Runner) run() {
	if r.mode() == RunningStateRun {
		return
	}
	//a loop left over from a finished run must not pick up the new one
	r.endRun()
	stopCh := make(chan struct{})
	r.runStop = stopCh
	r.switchRunningState(RunningStateRun)
	go func() {
		skipped := 0
		done := make(chan struct{}, 1)
		for {
			select {
			case <-stopCh:
				return
			default:
			}
			mode := r.mode()
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > r.options.MaxSkippedTicks {
				log.Printf("simulation finished: %d ticks skipped while the step was in progress", skipped)
				r.send(func() { r.switchRunningState(RunningStateFinished) })
				break
			}
			//skip the tick if the universe is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				select {
				case r.controlCh <- func() {
					select {
					case <-stopCh:
					default:
						r.step()
					}
					done <- struct{}{}
				}:
				case <-r.done:
					return
				}
				select {
				case <-done:
				case <-r.done:
					return
				}
			} else {
				skipped++
			}
			if r.options.Interval > 0 {
				select {
				case <-time.After(r.options.Interval):
				case <-stopCh:
					return
				case <-r.done:
					return
				}
			}
		}
	}()
}

//endRun ends the current run loop, if any
func (r *Runner) endRun() {
	if r.runStop != nil {
		close(r.runStop)
		r.runStop = nil
	}
}

//stop stops the running cycle
func (r *Runner) stop() {
	r.endRun()
	if r.mode() == RunningStateRun {
		r.switchRunningState(RunningStateManual)
	}
}

//step does the new one state calculation for entire universe
func (r *Runner) step() {
	finished := false
	rm := r.mode()
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	defer func() {
		if finished {
			r.switchRunningState(RunningStateFinished)
		} else {
			r.switchRunningState(rm)
		}
		r.refreshView()
	}()

	maxIter := r.options.MaxSteps
	if maxIter != 0 && r.Status().IterationNum >= maxIter {
		finished = true
		return
	}
	r.switchRunningState(RunningStateStep)

	r.area.Lock()
	st := r.area.Tick()
	r.area.Unlock()

	r.state.Lock()
	r.state.IterationNum++
	r.state.LiveCells = st.LiveCells
	r.state.IterationTime = st.Elapsed
	iter := r.state.IterationNum
	r.state.Unlock()

	if st.LiveCells == 0 || !st.Changed || (maxIter != 0 && iter >= maxIter) {
		finished = true
	}
}

//clear clears the universe data, reset all counters
func (r *Runner) clear() {
	r.endRun()
	r.state.Lock()
	r.area.Lock()
	r.state.IterationNum = 0
	r.state.LiveCells = 0
	r.state.IterationTime = 0
	r.area.Clear()
	r.area.Unlock()
	r.state.Unlock()
	r.switchRunningState(RunningStateManual)
	r.refreshView()
}

//refreshView calls Refresh event for all registered views
func (r *Runner) refreshView() {
	r.views.Lock()
	views := append([]Viewer(nil), r.views.list...)
	r.views.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}
