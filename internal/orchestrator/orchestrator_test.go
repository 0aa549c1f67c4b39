package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ortelius/ado-backend/config"
	"github.com/ortelius/ado-backend/history"
	"github.com/ortelius/ado-backend/model"
)

type fakeQuality struct{ metrics model.QualityMetrics }

func (f fakeQuality) CollectQuality(context.Context) (model.QualityMetrics, error) {
	return f.metrics, nil
}

type fakePerformance struct{ baseline model.PerformanceMetrics }

func (f fakePerformance) CollectBaseline(context.Context) (model.PerformanceMetrics, error) {
	return f.baseline, nil
}

type fakeSecurity struct{ assessment model.SecurityAssessment }

func (f fakeSecurity) AssessSecurity(context.Context) (model.SecurityAssessment, error) {
	return f.assessment, nil
}

// fakeExecutor returns the canned result per stage, fails on demand, and
// records execution order. A blocking stage waits for cancellation before
// returning, standing in for a long-running deploy.
type fakeExecutor struct {
	failStage model.Stage
	failErr   error
	blockOn   model.Stage
	executed  []model.Stage
}

func (f *fakeExecutor) ExecuteStage(ctx context.Context, stage model.Stage, dctx model.DeploymentContext) (model.StageResult, error) {
	f.executed = append(f.executed, stage)

	if stage == f.failStage {
		return nil, f.failErr
	}
	if stage == f.blockOn {
		<-ctx.Done()
		return model.StageResult{"deployment_successful": true}, nil
	}

	switch stage {
	case model.StageValidation:
		return model.StageResult{"validation_passed": true}, nil
	case model.StageBuild:
		return model.StageResult{"build_successful": true}, nil
	case model.StageTest:
		return model.StageResult{"tests_passed": true, "test_coverage": 89.5}, nil
	case model.StageDeployDev, model.StageDeployStaging, model.StageDeployProduction:
		return model.StageResult{"deployment_successful": true, "strategy": dctx.DeploymentStrategy}, nil
	default:
		return model.StageResult{"success": true}, nil
	}
}

type fakeRollback struct {
	plans []model.RollbackPlan
	err   error
}

func (f *fakeRollback) ExecuteRollback(_ context.Context, plan model.RollbackPlan, _ model.DeploymentContext) error {
	f.plans = append(f.plans, plan)
	return f.err
}

type fakeNotifier struct {
	completed  []model.OrchestrationResult
	rolledBack []model.RollbackPlan
}

func (f *fakeNotifier) DeploymentCompleted(_ context.Context, result model.OrchestrationResult) error {
	f.completed = append(f.completed, result)
	return nil
}

func (f *fakeNotifier) DeploymentRolledBack(_ context.Context, _ model.OrchestrationResult, plan model.RollbackPlan) error {
	f.rolledBack = append(f.rolledBack, plan)
	return nil
}

// steadyCollector returns a healthy realtime sample on every tick.
type steadyCollector struct{}

func (steadyCollector) CollectRealtime(context.Context) (model.PerformanceMetrics, error) {
	return model.PerformanceMetrics{ResponseTimeP95: 120, ErrorRate: 0.02, Throughput: 2600}, nil
}

// spikingCollector returns a healthy sample first, then an anomalous one.
type spikingCollector struct{ calls int }

func (c *spikingCollector) CollectRealtime(context.Context) (model.PerformanceMetrics, error) {
	c.calls++
	if c.calls >= 2 {
		return model.PerformanceMetrics{ResponseTimeP95: 400}, nil
	}
	return model.PerformanceMetrics{ResponseTimeP95: 120}, nil
}

type calmAssessor struct{}

func (calmAssessor) AssessImpact(context.Context, model.PerformanceMetrics) (model.BusinessImpact, error) {
	return model.BusinessImpact{Severity: 0.1}, nil
}

type testHarness struct {
	orch     *Orchestrator
	executor *fakeExecutor
	rollback *fakeRollback
	notifier *fakeNotifier
	store    *history.MemoryStore
}

func newHarness(t *testing.T, mutate func(*Dependencies)) *testHarness {
	t.Helper()

	cfg := config.Default()
	cfg.Monitoring = config.Monitoring{WindowSeconds: 1, IntervalSeconds: 1}

	executor := &fakeExecutor{}
	rollback := &fakeRollback{}
	notifier := &fakeNotifier{}
	store := history.NewMemoryStore()

	deps := Dependencies{
		Config: cfg,
		Quality: fakeQuality{metrics: model.QualityMetrics{
			TestCoverage:            95,
			CodeQualityScore:        0.95,
			SecurityVulnerabilities: 0,
			PerformanceScore:        0.95,
			ReliabilityScore:        0.95,
		}},
		Performance: fakePerformance{baseline: model.PerformanceMetrics{
			ResponseTimeP95: 100,
			Throughput:      2500,
			ErrorRate:       0.05,
			Availability:    99.97,
		}},
		Security: fakeSecurity{assessment: model.SecurityAssessment{
			SecurityScore:          0.95,
			ComplianceScore:        0.98,
			ThreatLevel:            model.RiskLow,
			QuantumSecurityEnabled: true,
			ZeroTrustValidated:     true,
		}},
		Executor: executor,
		Rollback: rollback,
		Monitor:  steadyCollector{},
		Impact:   calmAssessor{},
		History:  store,
		Notifier: notifier,
		Log:      zap.NewNop(),
	}

	if mutate != nil {
		mutate(&deps)
	}

	return &testHarness{
		orch:     New(deps),
		executor: executor,
		rollback: rollback,
		notifier: notifier,
		store:    store,
	}
}

func TestOrchestrateStagingSuccess(t *testing.T) {
	h := newHarness(t, nil)

	result, err := h.orch.Orchestrate(context.Background(), model.DeploymentRequest{
		Environment: "staging",
		Version:     "2.3.4",
	})

	require.NoError(t, err)
	assert.Equal(t, model.StatusSuccess, result.Status)
	assert.Equal(t, model.DecisionApprove, result.Decision.Decision)
	assert.True(t, result.MonitoringEnabled)
	assert.Equal(t, "blue-green", result.DeploymentStrategy)
	require.NotNil(t, result.PredictedMetrics)
	assert.InDelta(t, 95, result.PredictedMetrics.ResponseTimeP95, 1e-9)

	assert.Equal(t, []model.Stage{
		model.StageValidation,
		model.StageBuild,
		model.StageTest,
		model.StageDeployDev,
		model.StageDeployStaging,
		model.StageMonitoring,
	}, h.executor.executed)

	assert.Len(t, result.StageResults, 6)
	assert.Empty(t, h.rollback.plans)
	require.Len(t, h.notifier.completed, 1)
	assert.Equal(t, result.DeploymentID, h.notifier.completed[0].DeploymentID)
}

func TestOrchestrateDeploymentIDFormat(t *testing.T) {
	h := newHarness(t, nil)
	h.orch.now = func() time.Time {
		return time.Date(2026, 8, 26, 14, 30, 5, 0, time.UTC)
	}

	result, err := h.orch.Orchestrate(context.Background(), model.DeploymentRequest{Environment: "development"})

	require.NoError(t, err)
	assert.Equal(t, "deploy-20260826-143005", result.DeploymentID)
}

func TestOrchestrateRequestDefaults(t *testing.T) {
	h := newHarness(t, nil)

	// Empty request defaults to production/latest/blue-green; production
	// runs all three deploy sub-stages (and the 1s monitor window).
	result, err := h.orch.Orchestrate(context.Background(), model.DeploymentRequest{})

	require.NoError(t, err)
	assert.Equal(t, model.StatusSuccess, result.Status)
	assert.Equal(t, model.EnvProduction, result.Context.Environment)
	assert.Equal(t, "latest", result.Context.ApplicationVersion)
	assert.Equal(t, "blue-green", result.Context.DeploymentStrategy)
	assert.Contains(t, h.executor.executed, model.StageDeployProduction)
}

func TestOrchestrateUnknownEnvironment(t *testing.T) {
	h := newHarness(t, nil)

	result, err := h.orch.Orchestrate(context.Background(), model.DeploymentRequest{Environment: "qa"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusError, result.Status)
	assert.Contains(t, result.Error, "unknown environment")
	assert.Empty(t, h.executor.executed)
}

func TestOrchestrateRejectShortCircuits(t *testing.T) {
	h := newHarness(t, func(deps *Dependencies) {
		deps.Config.AutonomousDecisions.DeploymentApproval = nil
		deps.Quality = fakeQuality{metrics: model.QualityMetrics{
			TestCoverage:            40,
			CodeQualityScore:        0.4,
			SecurityVulnerabilities: 8,
		}}
		deps.Security = fakeSecurity{assessment: model.SecurityAssessment{
			VulnerabilityCount: 8,
			SecurityScore:      0.4,
			ThreatLevel:        model.RiskMedium,
		}}
		deps.Performance = fakePerformance{baseline: model.PerformanceMetrics{
			ResponseTimeP95: 450,
			Throughput:      500,
			ErrorRate:       0.9,
			Availability:    98,
		}}
	})

	result, err := h.orch.Orchestrate(context.Background(), model.DeploymentRequest{Environment: "staging"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, result.Status)
	assert.Equal(t, model.DecisionReject, result.Decision.Decision)
	assert.NotEmpty(t, result.Reason)
	assert.NotEmpty(t, result.Recommendations)
	assert.Empty(t, h.executor.executed, "no stage may run after a reject")
	assert.Empty(t, h.rollback.plans)
	assert.Empty(t, h.notifier.completed)

	// The rejected run is still recorded.
	records, err := h.store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.StatusRejected, records[0].Status)
}

func TestOrchestrateConditionalRecordsConditions(t *testing.T) {
	h := newHarness(t, func(deps *Dependencies) {
		deps.Config.AutonomousDecisions.DeploymentApproval = nil
		deps.Quality = fakeQuality{metrics: model.QualityMetrics{
			TestCoverage:     85,
			CodeQualityScore: 0.7,
			PerformanceScore: 0.6,
			ReliabilityScore: 0.6,
		}}
		deps.Security = fakeSecurity{assessment: model.SecurityAssessment{SecurityScore: 0.7}}
		deps.Performance = fakePerformance{baseline: model.PerformanceMetrics{
			ResponseTimeP95: 300,
			Throughput:      2500,
			ErrorRate:       0.05,
			Availability:    99.97,
		}}
	})

	result, err := h.orch.Orchestrate(context.Background(), model.DeploymentRequest{Environment: "development"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusSuccess, result.Status)
	assert.Equal(t, model.DecisionConditional, result.Decision.Decision)
	assert.ElementsMatch(t, []string{"enhanced_monitoring", "gradual_rollout"}, result.Conditions)
	assert.False(t, result.Decision.AutonomousExecution)
}

func TestOrchestrateBuildFaultProduction(t *testing.T) {
	h := newHarness(t, func(deps *Dependencies) {
		deps.Executor.(*fakeExecutor).failStage = model.StageBuild
		deps.Executor.(*fakeExecutor).failErr = errors.New("compiler exploded")
	})

	result, err := h.orch.Orchestrate(context.Background(), model.DeploymentRequest{Environment: "production"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusError, result.Status)
	assert.Equal(t, model.StageBuild, result.FailedStage)
	assert.Contains(t, result.Error, "compiler exploded")
	assert.True(t, result.RollbackInitiated)
	require.NotNil(t, result.RollbackPlan)
	assert.Equal(t, model.RollbackImmediate, result.RollbackPlan.Strategy)

	require.Len(t, h.rollback.plans, 1)
	require.Len(t, h.notifier.rolledBack, 1)
	assert.Equal(t, model.RollbackImmediate, h.notifier.rolledBack[0].Strategy)

	// Pipeline stopped at build: only validation ran before it.
	assert.Equal(t, []model.Stage{model.StageValidation, model.StageBuild}, h.executor.executed)
}

func TestOrchestrateCoverageGateFailsStage(t *testing.T) {
	// Tests pass but coverage misses the 85 gate: a validation failure,
	// not an executor fault.
	h := newHarness(t, func(deps *Dependencies) {
		deps.Executor = &lowCoverageExecutor{}
	})

	result, err := h.orch.Orchestrate(context.Background(), model.DeploymentRequest{Environment: "staging"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, result.Status)
	assert.Equal(t, model.StageTest, result.FailedStage)
	assert.Empty(t, result.Error)
	assert.True(t, result.RollbackInitiated)
	require.NotNil(t, result.RollbackPlan)
	assert.Equal(t, model.RollbackGradual, result.RollbackPlan.Strategy)
	require.Len(t, h.notifier.rolledBack, 1)
}

// lowCoverageExecutor passes every stage but reports test coverage below the
// decision engine's gate.
type lowCoverageExecutor struct{ fakeExecutor }

func (e *lowCoverageExecutor) ExecuteStage(ctx context.Context, stage model.Stage, dctx model.DeploymentContext) (model.StageResult, error) {
	if stage == model.StageTest {
		return model.StageResult{"tests_passed": true, "test_coverage": 70.0}, nil
	}
	return e.fakeExecutor.ExecuteStage(ctx, stage, dctx)
}

func TestOrchestrateMonitorAnomalyOverridesExecutor(t *testing.T) {
	collector := &spikingCollector{}
	h := newHarness(t, func(deps *Dependencies) {
		deps.Config.Monitoring = config.Monitoring{WindowSeconds: 3, IntervalSeconds: 1}
		deps.Monitor = collector
		deps.Executor.(*fakeExecutor).blockOn = model.StageDeployProduction
	})

	result, err := h.orch.Orchestrate(context.Background(), model.DeploymentRequest{Environment: "production"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, result.Status)
	assert.Equal(t, model.StageDeployProduction, result.FailedStage)
	assert.True(t, result.RollbackInitiated)
	require.NotNil(t, result.RollbackPlan)
	assert.Equal(t, model.RollbackImmediate, result.RollbackPlan.Strategy)
	assert.Equal(t, 2, collector.calls, "monitor must exit at the anomalous tick")
}

func TestOrchestrateMissingStageDescriptor(t *testing.T) {
	h := newHarness(t, func(deps *Dependencies) {
		var kept []config.StageDescriptor
		for _, s := range deps.Config.Pipeline.Stages {
			if s.Name != "monitoring" {
				kept = append(kept, s)
			}
		}
		deps.Config.Pipeline.Stages = kept
	})

	result, err := h.orch.Orchestrate(context.Background(), model.DeploymentRequest{Environment: "development"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusError, result.Status)
	assert.ErrorContains(t, errors.New(result.Error), "monitoring")
	assert.Empty(t, h.executor.executed, "nothing may execute on a configuration error")
	assert.Empty(t, h.rollback.plans, "no rollback when nothing ran")
}

func TestOrchestrateRecordsHistory(t *testing.T) {
	h := newHarness(t, nil)

	result, err := h.orch.Orchestrate(context.Background(), model.DeploymentRequest{
		Environment: "staging",
		Version:     "main-v2.3.4",
		Source:      "github-actions",
		TriggeredBy: "autonomous-scheduler",
	})
	require.NoError(t, err)

	records, err := h.store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, result.DeploymentID, rec.DeploymentID)
	assert.Equal(t, model.EnvStaging, rec.Environment)
	assert.Equal(t, "2.3.4", rec.Version, "branch prefix must be stripped")
	require.NotNil(t, rec.VersionMajor)
	require.NotNil(t, rec.VersionMinor)
	require.NotNil(t, rec.VersionPatch)
	assert.Equal(t, 2, *rec.VersionMajor)
	assert.Equal(t, 3, *rec.VersionMinor)
	assert.Equal(t, 4, *rec.VersionPatch)
	assert.Equal(t, "github-actions", rec.Source)
	assert.Equal(t, "autonomous-scheduler", rec.TriggeredBy)
	assert.Equal(t, model.StatusSuccess, rec.Status)
	assert.GreaterOrEqual(t, rec.DurationSec, 0.0)
}

func TestOrchestrateRecordsNoComponentsForLatest(t *testing.T) {
	h := newHarness(t, nil)

	_, err := h.orch.Orchestrate(context.Background(), model.DeploymentRequest{Environment: "staging"})
	require.NoError(t, err)

	records, err := h.store.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "latest", rec.Version)
	assert.Nil(t, rec.VersionMajor)
	assert.Nil(t, rec.VersionMinor)
	assert.Nil(t, rec.VersionPatch)
}

func TestOrchestrateRollbackFailureKeepsStatus(t *testing.T) {
	h := newHarness(t, func(deps *Dependencies) {
		deps.Executor.(*fakeExecutor).failStage = model.StageTest
		deps.Executor.(*fakeExecutor).failErr = errors.New("runner lost")
		deps.Rollback.(*fakeRollback).err = errors.New("rollback also failed")
	})

	result, err := h.orch.Orchestrate(context.Background(), model.DeploymentRequest{Environment: "staging"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusError, result.Status)
	assert.True(t, result.RollbackInitiated)
	// Rollback is best-effort: stakeholders are still notified.
	assert.Len(t, h.notifier.rolledBack, 1)
}
