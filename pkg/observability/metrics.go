package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the Prometheus collectors for canvas activity and
// frame pacing. A nil *Metrics is valid and records nothing, so
// callers never need to branch on whether metrics are enabled.
type Metrics struct {
	FrameDuration prometheus.Histogram
	FPS           prometheus.Gauge
	Stutters      prometheus.Counter

	Nodes       prometheus.Gauge
	Connections prometheus.Gauge
	Operations  *prometheus.CounterVec
}

// NewMetrics registers the canvas collectors against the provided
// registerer, defaulting to the global Prometheus registry when nil
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		FrameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "loom_frame_duration_seconds",
			Help:    "Frame render duration in seconds.",
			Buckets: []float64{0.002, 0.004, 0.008, 0.012, 0.016667, 0.025, 0.033, 0.05, 0.1},
		}),
		FPS: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "loom_fps",
			Help: "Current frames per second, derived from the frame time history.",
		}),
		Stutters: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "loom_frame_stutters_total",
			Help: "Total frames exceeding twice the target frame time.",
		}),
		Nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "loom_canvas_nodes",
			Help: "Current number of nodes on the canvas.",
		}),
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "loom_canvas_connections",
			Help: "Current number of connections on the canvas.",
		}),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loom_canvas_operations_total",
			Help: "Canvas operations, labeled by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}

	collectors := []prometheus.Collector{
		m.FrameDuration, m.FPS, m.Stutters, m.Nodes, m.Connections, m.Operations,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordFrame records one frame's duration and stutter flag
func (m *Metrics) RecordFrame(duration time.Duration, stutter bool) {
	if m == nil {
		return
	}
	m.FrameDuration.Observe(duration.Seconds())
	if stutter {
		m.Stutters.Inc()
	}
}

// SetFPS publishes the current FPS estimate
func (m *Metrics) SetFPS(fps float64) {
	if m == nil {
		return
	}
	m.FPS.Set(fps)
}

// RecordOperation counts one canvas operation by name and outcome
func (m *Metrics) RecordOperation(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
}

// SetCanvasSize publishes the current node and connection counts
func (m *Metrics) SetCanvasSize(nodes, connections int) {
	if m == nil {
		return
	}
	m.Nodes.Set(float64(nodes))
	m.Connections.Set(float64(connections))
}
