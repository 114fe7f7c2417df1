package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "withdraw_commission"

// Outcome classifies how a run ended.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
	OutcomeDryRun   Outcome = "dry_run"
)

// Recorder tracks stage timings and run outcomes in a private registry. A nil *Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	stageSeconds *prometheus.HistogramVec
	outcomes     *prometheus.CounterVec
}

func NewRecorder(chainID string) *Recorder {
	constLabels := prometheus.Labels{"chain_id": chainID}

	stageSeconds := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "stage_duration_seconds",
			Help:        "Time spent in each pipeline stage",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"stage", "status"},
	)
	outcomes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "runs_total",
			Help:        "Count of runs classified by outcome",
			ConstLabels: constLabels,
		},
		[]string{"outcome"},
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(stageSeconds, outcomes)

	return &Recorder{
		registry:     registry,
		stageSeconds: stageSeconds,
		outcomes:     outcomes,
	}
}

func (r *Recorder) ObserveStage(stage string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	status := "ok"
	if err != nil {
		status = "error"
	}
	r.stageSeconds.WithLabelValues(stage, status).Observe(duration.Seconds())
}

func (r *Recorder) RecordOutcome(outcome Outcome) {
	if r == nil {
		return
	}
	r.outcomes.WithLabelValues(string(outcome)).Inc()
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Push sends everything recorded so far to a Prometheus Pushgateway, replacing the job's previous metrics.
func (r *Recorder) Push(ctx context.Context, pushgatewayURL, job string) error {
	if r == nil {
		return nil
	}
	return push.New(pushgatewayURL, job).Gatherer(r.registry).PushContext(ctx)
}
