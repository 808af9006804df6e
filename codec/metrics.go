package codec

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeFormat  = "format"
	OutcomeISO8601 = "iso8601"
	OutcomeError   = "error"
)

// Prometheus metrics of codecs.
//
// A nil *Metrics is valid, it records nothing and has no collectors.
type Metrics struct {
	reads  *prometheus.CounterVec
	builds prometheus.Counter
}

// Create metrics, use Register to expose them.
func NewMetrics() *Metrics {
	return &Metrics{
		reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datecodec_read_total",
			Help: "Total number of date tokens read, by the step that resolved them.",
		}, []string{"outcome"}),
		builds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "datecodec_formatset_builds_total",
			Help: "Total number of FormatSets built by codec workers.",
		}),
	}
}

// Register the collectors, a nil *Metrics registers nothing.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{m.reads, m.builds}
}

// Counter of reads with the given outcome, nil if m is nil.
func (m *Metrics) Reads(outcome string) prometheus.Counter {
	if m == nil {
		return nil
	}
	return m.reads.WithLabelValues(outcome)
}

// Counter of FormatSet builds, nil if m is nil.
func (m *Metrics) Builds() prometheus.Counter {
	if m == nil {
		return nil
	}
	return m.builds
}

func (m *Metrics) incRead(outcome string) {
	if m == nil {
		return
	}
	m.reads.WithLabelValues(outcome).Inc()
}

func (m *Metrics) incBuild() {
	if m == nil {
		return
	}
	m.builds.Inc()
}
