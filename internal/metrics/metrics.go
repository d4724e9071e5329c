// Package metrics counts event deliveries and resource opens in an
// in-process Prometheus registry. Nothing is exported over the network; the
// CLI logs a snapshot on shutdown.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const metricsNamespace = "oneclick"

// Outcome labels.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Collector implements event.Observer and the orchestrator's open counter.
type Collector struct {
	published        *prometheus.CounterVec
	taskRuns         *prometheus.CounterVec
	taskDuration     *prometheus.HistogramVec
	resourceOpens    *prometheus.CounterVec
	launchersStarted prometheus.Counter

	gatherer prometheus.Gatherer
}

// New creates a collector and registers it with reg. A nil reg gets a
// fresh private registry.
func New(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	c := &Collector{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of events published on the bus.",
		}, []string{"event"}),
		taskRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "listeners",
			Name:      "runs_total",
			Help:      "Total number of listener and detached task runs.",
		}, []string{"topic", "listener", "outcome"}),
		taskDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "listeners",
			Name:      "duration_seconds",
			Help:      "Listener and detached task run time in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"topic"}),
		resourceOpens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "resources",
			Name:      "opens_total",
			Help:      "Total number of resource open attempts.",
		}, []string{"outcome"}),
		launchersStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "launchers",
			Name:      "launched_total",
			Help:      "Total number of launchers started.",
		}),
		gatherer: reg,
	}
	reg.MustRegister(c.published, c.taskRuns, c.taskDuration, c.resourceOpens, c.launchersStarted)
	return c
}

// Published counts one published event.
func (c *Collector) Published(topic string) {
	c.published.WithLabelValues(topic).Inc()
}

// TaskFinished counts one listener or task run and records its duration.
func (c *Collector) TaskFinished(topic, name string, elapsed time.Duration, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeFailed
	}
	c.taskRuns.WithLabelValues(topic, name, outcome).Inc()
	c.taskDuration.WithLabelValues(topic).Observe(elapsed.Seconds())
}

// ResourceOpened counts one open attempt.
func (c *Collector) ResourceOpened(err error) {
	if err != nil {
		c.resourceOpens.WithLabelValues(OutcomeFailed).Inc()
		return
	}
	c.resourceOpens.WithLabelValues(OutcomeOK).Inc()
}

// LauncherStarted counts one launcher run.
func (c *Collector) LauncherStarted() {
	c.launchersStarted.Inc()
}

// Snapshot sums every counter family by name. Histograms report their
// sample count.
func (c *Collector) Snapshot() (map[string]float64, error) {
	families, err := c.gatherer.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(families))
	for _, mf := range families {
		out[mf.GetName()] = sumFamily(mf)
	}
	return out, nil
}

func sumFamily(mf *dto.MetricFamily) float64 {
	var total float64
	for _, m := range mf.GetMetric() {
		switch mf.GetType() {
		case dto.MetricType_COUNTER:
			total += m.GetCounter().GetValue()
		case dto.MetricType_HISTOGRAM:
			total += float64(m.GetHistogram().GetSampleCount())
		}
	}
	return total
}
