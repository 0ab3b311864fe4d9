package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"gameoflife/src/simulation"
	"gameoflife/src/universe"
)

func TestConsoleOut(t *testing.T) {
	u, err := universe.NewSized(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	o := simulation.DefaultOptions
	o.Interval = 0
	stateCh := make(chan simulation.Status, 10)
	r := simulation.New(u, &o, stateCh)
	defer r.Close()

	var buf bytes.Buffer
	c := NewConsoleOutTo(&buf, false)
	r.RegisterViewer(c)
	c.Start()
	r.InverseCell(1, 1)
	r.Step()
	timeout := time.After(5 * time.Second)
	for finished := false; !finished; {
		select {
		case st := <-stateCh:
			finished = st.RunningMode == simulation.RunningStateFinished
		case <-timeout:
			t.Fatal("timed out")
		}
	}
	r.Wait()

	//refreshes while finished don't repeat the summary
	r.InverseCell(0, 0)
	r.Step()
	r.Wait()
	r.InverseCell(0, 0)
	r.Wait()

	out := buf.String()
	if n := strings.Count(out, "Finished:"); n != 1 {
		t.Fatalf("summary printed %d times:\n%s", n, out)
	}
	for _, want := range []string{"Dimension: 3 x 3", "Simulation started", "Finished:", "Last iteration: 1", "Live cells: 0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("%q missing from output:\n%s", want, out)
		}
	}
}
