package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"gameoflife/src/simulation"
)

//ConsoleOut prints the simulation progress as plain lines
type ConsoleOut struct {
	r         *simulation.Runner
	w         io.Writer
	au        aurora.Aurora
	startTime time.Time
	every     int
	//the summary is printed once per transition into the finished state
	finished bool
}

//NewConsoleOut creates the viewer writing to stdout with colors
func NewConsoleOut() *ConsoleOut {
	return NewConsoleOutTo(os.Stdout, true)
}

//NewConsoleOutTo creates the viewer writing to w
func NewConsoleOutTo(w io.Writer, colors bool) *ConsoleOut {
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors), every: 10}
}

func (c *ConsoleOut) Refresh() {
	st := c.r.Status()
	wasFinished := c.finished
	c.finished = st.RunningMode == simulation.RunningStateFinished
	if c.finished && !wasFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
		c.printHashData(resultData)
	} else if st.RunningMode == simulation.RunningStateRun {
		if st.IterationNum%c.every == 0 {
			fmt.Fprintf(c.w, "  Iterations done: %v, live cells: %v\n", st.IterationNum, st.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(r *simulation.Runner) {
	c.r = r
	o := c.r.Options()
	fmt.Fprintln(c.w, c.au.Cyan("Running configuration:"))
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", o.Width, o.Height),
		"Interval":       o.Interval,
		"Max iterations": fmt.Sprintf("%v steps", o.MaxSteps),
	})
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", c.au.Green(propName), d[propName])
	}
}
