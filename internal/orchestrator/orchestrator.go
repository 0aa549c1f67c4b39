// Package orchestrator drives the deployment pipeline state machine: context
// assembly, the decision gate, ordered stage execution with the nested
// production monitor, rollback, history recording and stakeholder
// notification.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ortelius/ado-backend/config"
	"github.com/ortelius/ado-backend/history"
	"github.com/ortelius/ado-backend/internal/decision"
	"github.com/ortelius/ado-backend/internal/monitor"
	"github.com/ortelius/ado-backend/internal/risk"
	"github.com/ortelius/ado-backend/model"
	"github.com/ortelius/ado-backend/util"
)

// deploymentIDPrefix makes run identifiers sortable by start time.
const deploymentIDPrefix = "deploy-"

// QualityProvider supplies the code quality snapshot for a run.
type QualityProvider interface {
	CollectQuality(ctx context.Context) (model.QualityMetrics, error)
}

// PerformanceProvider supplies the pre-deploy performance baseline.
type PerformanceProvider interface {
	CollectBaseline(ctx context.Context) (model.PerformanceMetrics, error)
}

// SecurityProvider supplies the security assessment for a run.
type SecurityProvider interface {
	AssessSecurity(ctx context.Context) (model.SecurityAssessment, error)
}

// StageExecutor carries out one pipeline stage and reports its outcome.
type StageExecutor interface {
	ExecuteStage(ctx context.Context, stage model.Stage, dctx model.DeploymentContext) (model.StageResult, error)
}

// RollbackExecutor carries out a rollback plan. Execution is best-effort:
// the orchestrator logs failures and keeps the run's terminal status.
type RollbackExecutor interface {
	ExecuteRollback(ctx context.Context, plan model.RollbackPlan, dctx model.DeploymentContext) error
}

// Notifier delivers deployment outcomes to stakeholders. Notification
// failures are logged and never change the run's result.
type Notifier interface {
	DeploymentCompleted(ctx context.Context, result model.OrchestrationResult) error
	DeploymentRolledBack(ctx context.Context, result model.OrchestrationResult, plan model.RollbackPlan) error
}

// Dependencies bundles the collaborators an Orchestrator is built from.
type Dependencies struct {
	Config      *config.Config
	Quality     QualityProvider
	Performance PerformanceProvider
	Security    SecurityProvider
	Executor    StageExecutor
	Rollback    RollbackExecutor
	Monitor     monitor.Collector
	Impact      monitor.ImpactAssessor
	History     history.Tracker
	Notifier    Notifier
	Log         *zap.Logger
}

// Orchestrator runs one deployment pipeline per request. It keeps no per-run
// state, so concurrent orchestrations are independent.
type Orchestrator struct {
	deps     Dependencies
	analyzer *risk.Analyzer
	engine   *decision.Engine

	// now is swapped out by tests for deterministic deployment ids.
	now func() time.Time
}

// New creates an orchestrator from its collaborators.
func New(deps Dependencies) *Orchestrator {
	return &Orchestrator{
		deps:     deps,
		analyzer: risk.NewAnalyzer(deps.Log),
		engine:   decision.NewEngine(deps.Config, deps.Log),
		now:      time.Now,
	}
}

// Orchestrate runs the full pipeline for one deployment request and returns
// its terminal result. The returned error is reserved for context assembly
// failures (provider faults); every pipeline-level failure is expressed in
// the result's status instead.
func (o *Orchestrator) Orchestrate(ctx context.Context, req model.DeploymentRequest) (model.OrchestrationResult, error) {
	started := o.now()
	deploymentID := deploymentIDPrefix + started.Format("20060102-150405")

	log := o.deps.Log.With(zap.String("deployment_id", deploymentID))
	log.Info("starting deployment orchestration",
		zap.String("environment", req.Environment),
		zap.String("version", req.Version))

	req = req.Normalized()

	env, err := model.ParseEnvironment(req.Environment)
	if err != nil {
		result := model.OrchestrationResult{
			DeploymentID: deploymentID,
			Status:       model.StatusError,
			Error:        err.Error(),
			StartedAt:    started,
			CompletedAt:  o.now(),
		}
		return result, nil
	}

	// Pre-flight configuration check: every planned stage needs a
	// descriptor before anything executes. A missing one is fatal for the
	// run, with no rollback since nothing ran.
	stages := model.StagesFor(env)
	for _, stage := range stages {
		if _, err := o.deps.Config.Descriptor(string(stage)); err != nil {
			log.Error("pipeline configuration incomplete", zap.Error(err))
			result := model.OrchestrationResult{
				DeploymentID: deploymentID,
				Status:       model.StatusError,
				Error:        err.Error(),
				StartedAt:    started,
				CompletedAt:  o.now(),
			}
			return result, nil
		}
	}

	dctx, err := o.gatherContext(ctx, req, env)
	if err != nil {
		return model.OrchestrationResult{}, fmt.Errorf("failed to gather deployment context: %w", err)
	}

	dctx.RiskAssessment = o.analyzer.Analyze(dctx)
	dec := o.engine.Decide(dctx)

	log.Info("deployment decision made",
		zap.String("decision", string(dec.Decision)),
		zap.Float64("confidence", dec.Confidence))

	var result model.OrchestrationResult

	if dec.Decision == model.DecisionReject {
		result = model.OrchestrationResult{
			DeploymentID:    deploymentID,
			Status:          model.StatusRejected,
			Decision:        dec,
			Reason:          dec.Reasoning,
			Recommendations: dec.RecommendedActions,
			Context:         dctx,
			StartedAt:       started,
			CompletedAt:     o.now(),
		}
	} else {
		result = o.executePipeline(ctx, log, dctx, dec, stages)
		result.DeploymentID = deploymentID
		result.StartedAt = started
		result.CompletedAt = o.now()

		if dec.Decision == model.DecisionConditional {
			result.Conditions = dec.Conditions
		}
	}

	o.recordHistory(ctx, log, req, result)

	if result.Status == model.StatusSuccess {
		if err := o.deps.Notifier.DeploymentCompleted(ctx, result); err != nil {
			log.Warn("failed to notify deployment completion", zap.Error(err))
		}
	}

	log.Info("deployment orchestration finished", zap.String("status", string(result.Status)))
	return result, nil
}

// gatherContext assembles the decision context from the capability
// providers. History lookups degrade to the neutral summary on store errors;
// provider faults abort the run before any stage executes.
func (o *Orchestrator) gatherContext(ctx context.Context, req model.DeploymentRequest, env model.Environment) (model.DeploymentContext, error) {
	quality, err := o.deps.Quality.CollectQuality(ctx)
	if err != nil {
		return model.DeploymentContext{}, fmt.Errorf("quality metrics: %w", err)
	}

	baseline, err := o.deps.Performance.CollectBaseline(ctx)
	if err != nil {
		return model.DeploymentContext{}, fmt.Errorf("performance baseline: %w", err)
	}

	security, err := o.deps.Security.AssessSecurity(ctx)
	if err != nil {
		return model.DeploymentContext{}, fmt.Errorf("security assessment: %w", err)
	}

	hist, err := o.deps.History.RelevantHistory(ctx, req)
	if err != nil {
		o.deps.Log.Warn("failed to load deployment history, using neutral summary", zap.Error(err))
		hist = model.HistorySummary{}
	}

	return model.DeploymentContext{
		Environment:        env,
		ApplicationVersion: req.Version,
		DeploymentStrategy: req.Strategy,
		QualityMetrics:     quality,
		PerformanceMetrics: baseline,
		SecurityAssessment: security,
		HistoricalData:     hist,
	}, nil
}

// executePipeline walks the ordered stage plan. Stage N's validated outcome
// is fully known before stage N+1 starts. The production deploy stage races
// its executor against the production monitor; the first failure wins.
func (o *Orchestrator) executePipeline(
	ctx context.Context,
	log *zap.Logger,
	dctx model.DeploymentContext,
	dec model.DeploymentDecision,
	stages []model.Stage,
) model.OrchestrationResult {
	results := make(map[model.Stage]model.StageResult, len(stages))

	for _, stage := range stages {
		log.Info("executing pipeline stage", zap.String("stage", string(stage)))

		stageResult, err := o.runStage(ctx, dctx, stage)
		if stageResult != nil {
			results[stage] = stageResult
		}

		if err != nil {
			var anomalyErr *monitor.AnomalyError
			var impactErr *monitor.ImpactError
			if errors.As(err, &anomalyErr) || errors.As(err, &impactErr) {
				// Monitor findings override a nominally-successful
				// executor result and count as a validation failure.
				log.Warn("production monitor aborted stage", zap.Error(err))
				plan := o.rollback(ctx, log, dctx, results)
				return model.OrchestrationResult{
					Status:            model.StatusFailed,
					Decision:          dec,
					FailedStage:       stage,
					StageResults:      results,
					RollbackInitiated: true,
					RollbackPlan:      &plan,
					Context:           dctx,
				}
			}

			log.Error("stage execution failed", zap.String("stage", string(stage)), zap.Error(err))
			plan := o.rollback(ctx, log, dctx, results)
			return model.OrchestrationResult{
				Status:            model.StatusError,
				Decision:          dec,
				FailedStage:       stage,
				Error:             err.Error(),
				StageResults:      results,
				RollbackInitiated: true,
				RollbackPlan:      &plan,
				Context:           dctx,
			}
		}

		if !o.engine.ValidateStage(stage, stageResult, dctx) {
			log.Warn("stage failed validation", zap.String("stage", string(stage)))
			plan := o.rollback(ctx, log, dctx, results)
			return model.OrchestrationResult{
				Status:            model.StatusFailed,
				Decision:          dec,
				FailedStage:       stage,
				StageResults:      results,
				RollbackInitiated: true,
				RollbackPlan:      &plan,
				Context:           dctx,
			}
		}
	}

	predicted := risk.PredictPerformance(dctx.PerformanceMetrics)

	return model.OrchestrationResult{
		Status:             model.StatusSuccess,
		Decision:           dec,
		DeploymentStrategy: dctx.DeploymentStrategy,
		StageResults:       results,
		MonitoringEnabled:  true,
		PredictedMetrics:   &predicted,
		Context:            dctx,
	}
}

// runStage executes one stage. The production deploy stage additionally runs
// the production monitor for its whole window; executor and monitor race in
// an errgroup so the first failure cancels the other.
func (o *Orchestrator) runStage(ctx context.Context, dctx model.DeploymentContext, stage model.Stage) (model.StageResult, error) {
	if stage != model.StageDeployProduction {
		return o.deps.Executor.ExecuteStage(ctx, stage, dctx)
	}

	mon := monitor.New(
		o.deps.Monitor,
		o.deps.Impact,
		o.deps.Config.Monitoring.Window(),
		o.deps.Config.Monitoring.Interval(),
		o.deps.Log,
	)

	var stageResult model.StageResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := o.deps.Executor.ExecuteStage(gctx, stage, dctx)
		stageResult = res
		return err
	})
	g.Go(func() error {
		err := mon.Watch(gctx, dctx.PerformanceMetrics)
		if errors.Is(err, context.Canceled) {
			// Torn down because the executor already failed; that
			// error is the one to surface.
			return nil
		}
		return err
	})

	return stageResult, g.Wait()
}

// rollback selects and executes the remediation plan, then notifies
// stakeholders unconditionally. Both steps are best-effort.
func (o *Orchestrator) rollback(ctx context.Context, log *zap.Logger, dctx model.DeploymentContext, results map[model.Stage]model.StageResult) model.RollbackPlan {
	plan := o.engine.SelectRollback(dctx, results)

	log.Info("initiating rollback", zap.String("strategy", string(plan.Strategy)), zap.String("reason", plan.Reason))

	if err := o.deps.Rollback.ExecuteRollback(ctx, plan, dctx); err != nil {
		log.Error("rollback execution failed", zap.Error(err))
	}

	if err := o.deps.Notifier.DeploymentRolledBack(ctx, model.OrchestrationResult{
		Status:       model.StatusRolledBack,
		StageResults: results,
		RollbackPlan: &plan,
		Context:      dctx,
	}, plan); err != nil {
		log.Warn("failed to notify rollback completion", zap.Error(err))
	}

	return plan
}

// recordHistory appends the run to the deployment log. Persistence failures
// are logged and never change the returned result.
func (o *Orchestrator) recordHistory(ctx context.Context, log *zap.Logger, req model.DeploymentRequest, result model.OrchestrationResult) {
	rec := model.DeploymentRecord{
		DeploymentID: result.DeploymentID,
		Timestamp:    result.StartedAt,
		Environment:  result.Context.Environment,
		Version:      req.Version,
		Strategy:     req.Strategy,
		Source:       req.Source,
		TriggeredBy:  req.TriggeredBy,
		Context:      result.Context,
		Decision:     result.Decision,
		Status:       result.Status,
		FailedStage:  result.FailedStage,
		DurationSec:  result.CompletedAt.Sub(result.StartedAt).Seconds(),
	}

	// Parsed components back the per-version trend queries; "latest" is a
	// moving target and carries none.
	if req.Version != "latest" {
		parsed := util.ParseSemanticVersion(req.Version)
		rec.VersionMajor = parsed.Major
		rec.VersionMinor = parsed.Minor
		rec.VersionPatch = parsed.Patch
	}

	if err := o.deps.History.Record(ctx, rec); err != nil {
		log.Warn("failed to record deployment history", zap.Error(err))
	}
}
