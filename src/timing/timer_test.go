package timing

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type recordingSink struct {
	events []string
}

func (r *recordingSink) TimeStart(label string) {
	r.events = append(r.events, "start "+label)
}

func (r *recordingSink) TimeEnd(label string, _ time.Duration) {
	r.events = append(r.events, "end "+label)
}

func TestTimerSignals(t *testing.T) {
	r := &recordingSink{}
	func() {
		defer Start("span", r).Stop()
		if len(r.events) != 1 || r.events[0] != "start span" {
			t.Fatalf("events before stop: %v", r.events)
		}
	}()
	if len(r.events) != 2 || r.events[1] != "end span" {
		t.Fatalf("events after stop: %v", r.events)
	}
}

func TestTimerEndsOnPanic(t *testing.T) {
	r := &recordingSink{}
	func() {
		defer func() { _ = recover() }()
		defer Start("span", r).Stop()
		panic("boom")
	}()
	if len(r.events) != 2 {
		t.Fatalf("end signal missing after panic: %v", r.events)
	}
}

func TestTimerStopOnce(t *testing.T) {
	r := &recordingSink{}
	tm := Start("span", r)
	first := tm.Stop()
	second := tm.Stop()
	if first != second {
		t.Fatalf("durations differ: %v != %v", first, second)
	}
	if len(r.events) != 2 {
		t.Fatalf("expected one start and one end, got %v", r.events)
	}
}

func TestNilSink(t *testing.T) {
	tm := Start("span", nil)
	if d := tm.Stop(); d < 0 {
		t.Fatalf("negative duration %v", d)
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	s := LogSink{Logger: log.New(&buf, "", 0)}
	Start("universe_tick", s).Stop()
	out := buf.String()
	if !strings.Contains(out, "universe_tick: start\n") {
		t.Fatalf("start line missing in %q", out)
	}
	if strings.Count(out, "universe_tick: ") != 2 {
		t.Fatalf("expected two lines in %q", out)
	}
}

func TestMultiSink(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	Start("span", MultiSink{a, b}).Stop()
	if len(a.events) != 2 || len(b.events) != 2 {
		t.Fatalf("fan out failed: %v %v", a.events, b.events)
	}
}

func TestPrometheusSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, err := NewPrometheusSink(reg)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		Start("universe_tick", s).Stop()
	}
	if v := testutil.ToFloat64(s.started.WithLabelValues("universe_tick")); v != 3 {
		t.Fatalf("started counter is %v, expected 3", v)
	}
	if n := testutil.CollectAndCount(s.duration, "simlife_span_duration_seconds"); n != 1 {
		t.Fatalf("expected one histogram series, got %v", n)
	}
}

func TestPrometheusSinkRegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusSink(reg); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPrometheusSink(reg); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}
