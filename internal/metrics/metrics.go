package metrics

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// JobCollector exposes Prometheus metrics for one batch job run. The
// jobs are short-lived processes, so metrics go out through a
// Pushgateway instead of a scrape endpoint.
type JobCollector struct {
	registry     *prometheus.Registry
	usersTotal   *prometheus.CounterVec
	jobDuration  prometheus.Histogram
	lastRunStamp prometheus.Gauge
	job          string
}

// NewJobCollector constructs a collector for the named job.
func NewJobCollector(job string) (*JobCollector, error) {
	registry := prometheus.NewRegistry()

	usersTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wm",
		Subsystem: job,
		Name:      "users_total",
		Help:      "Users processed by the batch run, partitioned by outcome.",
	}, []string{"outcome"})

	jobDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wm",
		Subsystem: job,
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of the batch run.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	})

	lastRunStamp := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wm",
		Subsystem: job,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the last completed batch run.",
	})

	for _, c := range []prometheus.Collector{usersTotal, jobDuration, lastRunStamp} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &JobCollector{
		registry:     registry,
		usersTotal:   usersTotal,
		jobDuration:  jobDuration,
		lastRunStamp: lastRunStamp,
		job:          job,
	}, nil
}

// ObserveRun records the outcome counts and duration of one run.
func (c *JobCollector) ObserveRun(succeeded, failed, skipped int, duration time.Duration) {
	c.usersTotal.WithLabelValues("succeeded").Add(float64(succeeded))
	c.usersTotal.WithLabelValues("failed").Add(float64(failed))
	c.usersTotal.WithLabelValues("skipped").Add(float64(skipped))
	c.jobDuration.Observe(duration.Seconds())
	c.lastRunStamp.SetToCurrentTime()
}

// Push sends the collected metrics to a Pushgateway. A push failure is
// logged but never fails the job; the batch result is already durable.
func (c *JobCollector) Push(gatewayURL string, logger *slog.Logger) {
	if gatewayURL == "" {
		return
	}

	err := push.New(gatewayURL, c.job).
		Gatherer(c.registry).
		Push()
	if err != nil {
		logger.Warn("failed to push metrics",
			"gateway", gatewayURL,
			"job", c.job,
			"error", err,
		)
		return
	}

	logger.Info("metrics pushed", "gateway", gatewayURL, "job", c.job)
}

// Registry exposes the private registry for testing.
func (c *JobCollector) Registry() *prometheus.Registry {
	return c.registry
}
