package timing

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

//PrometheusSink exports the spans as prometheus metrics
type PrometheusSink struct {
	started  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

//NewPrometheusSink creates the span metrics and registers them with reg
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	s := &PrometheusSink{
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "simlife_span_started_total",
			Help: "Total number of timing spans started",
		}, []string{"span"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "simlife_span_duration_seconds",
			Help:    "Histogram of timing span durations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 10),
		}, []string{"span"}),
	}
	for _, c := range []prometheus.Collector{s.started, s.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *PrometheusSink) TimeStart(label string) {
	s.started.WithLabelValues(label).Inc()
}

func (s *PrometheusSink) TimeEnd(label string, elapsed time.Duration) {
	s.duration.WithLabelValues(label).Observe(elapsed.Seconds())
}
