//Package timing provides scoped timing spans
//a span emits a start signal when it is created and an end signal when it is stopped
package timing

import (
	"log"
	"time"
)

//Sink receives the start and end signals of the timing spans
type Sink interface {
	TimeStart(label string)
	TimeEnd(label string, elapsed time.Duration)
}

//Timer is one running span
//Stop it with defer so the end signal fires on every exit path
type Timer struct {
	label   string
	sink    Sink
	start   time.Time
	elapsed time.Duration
	stopped bool
}

//Start opens a span and emits its start signal
func Start(label string, s Sink) *Timer {
	if s == nil {
		s = NopSink{}
	}
	s.TimeStart(label)
	return &Timer{label: label, sink: s, start: time.Now()}
}

//Stop emits the end signal and returns the span duration
//only the first call signals, later calls return the same duration
func (t *Timer) Stop() time.Duration {
	if t.stopped {
		return t.elapsed
	}
	t.stopped = true
	t.elapsed = time.Since(t.start)
	t.sink.TimeEnd(t.label, t.elapsed)
	return t.elapsed
}

//NopSink discards all signals
type NopSink struct{}

func (NopSink) TimeStart(string)               {}
func (NopSink) TimeEnd(string, time.Duration) {}

//LogSink writes the signals to a logger, the standard logger is used when Logger is nil
type LogSink struct {
	Logger *log.Logger
}

func (s LogSink) TimeStart(label string) {
	s.printf("%s: start", label)
}

func (s LogSink) TimeEnd(label string, elapsed time.Duration) {
	s.printf("%s: %v", label, elapsed)
}

func (s LogSink) printf(format string, v ...interface{}) {
	if s.Logger == nil {
		log.Printf(format, v...)
		return
	}
	s.Logger.Printf(format, v...)
}

//MultiSink sends every signal to all its sinks in order
type MultiSink []Sink

func (m MultiSink) TimeStart(label string) {
	for _, s := range m {
		s.TimeStart(label)
	}
}

func (m MultiSink) TimeEnd(label string, elapsed time.Duration) {
	for _, s := range m {
		s.TimeEnd(label, elapsed)
	}
}
