// Package monitor implements the production monitoring loop: a bounded,
// cancellable poller that watches realtime metrics while the production
// deploy stage is live and preempts the pipeline on an anomaly or an adverse
// business impact.
package monitor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ortelius/ado-backend/model"
)

// anomalyFactor is the multiple of the baseline p95 above which a realtime
// response-time sample counts as an anomaly.
const anomalyFactor = 1.5

// impactThreshold is the business-impact severity above which the rollout
// is aborted.
const impactThreshold = 0.7

// Collector supplies realtime performance samples during monitoring.
type Collector interface {
	CollectRealtime(ctx context.Context) (model.PerformanceMetrics, error)
}

// ImpactAssessor computes the business impact of a realtime sample.
type ImpactAssessor interface {
	AssessImpact(ctx context.Context, sample model.PerformanceMetrics) (model.BusinessImpact, error)
}

// AnomalyError reports a realtime sample exceeding the baseline threshold.
type AnomalyError struct {
	ResponseTime float64
	Threshold    float64
	Tick         int
}

func (e *AnomalyError) Error() string {
	return fmt.Sprintf("anomaly detected at tick %d: response time %.1fms exceeds threshold %.1fms",
		e.Tick, e.ResponseTime, e.Threshold)
}

// ImpactError reports an adverse business impact breach.
type ImpactError struct {
	Severity float64
	Areas    []string
	Tick     int
}

func (e *ImpactError) Error() string {
	return fmt.Sprintf("negative business impact detected at tick %d: severity %.2f", e.Tick, e.Severity)
}

// Monitor polls realtime metrics over a fixed window at a fixed interval.
type Monitor struct {
	collector Collector
	assessor  ImpactAssessor
	window    time.Duration
	interval  time.Duration
	log       *zap.Logger
}

// New creates a monitor. Window and interval come from the pipeline
// configuration (defaults 300s / 10s).
func New(collector Collector, assessor ImpactAssessor, window, interval time.Duration, log *zap.Logger) *Monitor {
	return &Monitor{
		collector: collector,
		assessor:  assessor,
		window:    window,
		interval:  interval,
		log:       log,
	}
}

// Watch runs the monitoring loop against the pre-deploy baseline. It returns
// nil when the full window elapses without findings, an *AnomalyError or
// *ImpactError as soon as a breach is detected (remaining ticks are
// cancelled), the context error when the caller tears the loop down early,
// or the collector/assessor error when telemetry itself fails.
func (m *Monitor) Watch(ctx context.Context, baseline model.PerformanceMetrics) error {
	ticks := int(m.window / m.interval)
	threshold := baseline.ResponseTimeP95 * anomalyFactor

	m.log.Info("production monitoring started",
		zap.Duration("window", m.window),
		zap.Duration("interval", m.interval),
		zap.Float64("anomaly_threshold_ms", threshold))

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for tick := 1; tick <= ticks; tick++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		sample, err := m.collector.CollectRealtime(ctx)
		if err != nil {
			return fmt.Errorf("failed to collect realtime metrics: %w", err)
		}

		if sample.ResponseTimeP95 > threshold {
			m.log.Warn("anomaly detected during production deployment",
				zap.Int("tick", tick),
				zap.Float64("response_time_ms", sample.ResponseTimeP95),
				zap.Float64("threshold_ms", threshold))
			return &AnomalyError{ResponseTime: sample.ResponseTimeP95, Threshold: threshold, Tick: tick}
		}

		impact, err := m.assessor.AssessImpact(ctx, sample)
		if err != nil {
			return fmt.Errorf("failed to assess business impact: %w", err)
		}

		if impact.Severity > impactThreshold {
			m.log.Warn("negative business impact detected",
				zap.Int("tick", tick),
				zap.Float64("severity", impact.Severity),
				zap.Strings("impact_areas", impact.ImpactAreas))
			return &ImpactError{Severity: impact.Severity, Areas: impact.ImpactAreas, Tick: tick}
		}
	}

	m.log.Info("production monitoring completed", zap.Int("ticks", ticks))
	return nil
}
