// Package providers holds the built-in metric providers and stage executors
// wired into the orchestrator by default. They return fixed snapshots in
// place of real integrations (coverage tooling, APM, security scanners) and
// mark the seams where those integrations plug in.
package providers

import (
	"context"

	"go.uber.org/zap"

	"github.com/ortelius/ado-backend/model"
)

// StaticQualityProvider returns a fixed quality snapshot.
// TODO: replace with the SonarQube collector once the ado-metrics service exposes it.
type StaticQualityProvider struct{}

// CollectQuality returns the built-in quality metrics.
func (StaticQualityProvider) CollectQuality(_ context.Context) (model.QualityMetrics, error) {
	return model.QualityMetrics{
		TestCoverage:            89.5,
		CodeQualityScore:        0.92,
		SecurityVulnerabilities: 0,
		PerformanceScore:        0.88,
		ReliabilityScore:        0.91,
		MaintainabilityScore:    0.85,
	}, nil
}

// StaticPerformanceProvider returns fixed performance snapshots. It serves
// both lifecycles: the pre-deploy baseline and the realtime samples consumed
// by the production monitor.
type StaticPerformanceProvider struct{}

// CollectBaseline returns the built-in pre-deploy performance baseline.
func (StaticPerformanceProvider) CollectBaseline(_ context.Context) (model.PerformanceMetrics, error) {
	return model.PerformanceMetrics{
		ResponseTimeP95:   145.7,
		Throughput:        2500,
		ErrorRate:         0.05,
		CPUUtilization:    65.2,
		MemoryUtilization: 58.7,
		Availability:      99.97,
	}, nil
}

// CollectRealtime returns the built-in realtime sample used during
// production monitoring.
func (StaticPerformanceProvider) CollectRealtime(_ context.Context) (model.PerformanceMetrics, error) {
	return model.PerformanceMetrics{
		ResponseTimeP95: 120.5,
		ErrorRate:       0.02,
		Throughput:      2600,
	}, nil
}

// StaticSecurityProvider derives the security posture from a fixed scan
// result. Threat level is low only for a clean scan.
type StaticSecurityProvider struct{}

// AssessSecurity returns the built-in security assessment.
func (StaticSecurityProvider) AssessSecurity(_ context.Context) (model.SecurityAssessment, error) {
	vulnerabilityCount := 0

	threat := model.RiskLow
	if vulnerabilityCount > 0 {
		threat = model.RiskMedium
	}

	return model.SecurityAssessment{
		VulnerabilityCount:     vulnerabilityCount,
		SecurityScore:          0.95,
		ComplianceScore:        0.98,
		ThreatLevel:            threat,
		QuantumSecurityEnabled: true,
		ZeroTrustValidated:     true,
	}, nil
}

// StaticImpactAssessor reports negligible business impact for every sample.
type StaticImpactAssessor struct{}

// AssessImpact returns the built-in business impact assessment.
func (StaticImpactAssessor) AssessImpact(_ context.Context, _ model.PerformanceMetrics) (model.BusinessImpact, error) {
	return model.BusinessImpact{
		Severity:      0.1,
		ImpactAreas:   []string{},
		EstimatedLoss: 0,
	}, nil
}

// DefaultStageExecutor produces the canned per-stage outcome payloads.
type DefaultStageExecutor struct {
	Log *zap.Logger
}

// ExecuteStage runs one pipeline stage and returns its outcome payload.
func (e DefaultStageExecutor) ExecuteStage(_ context.Context, stage model.Stage, dctx model.DeploymentContext) (model.StageResult, error) {
	e.Log.Info("executing deployment stage",
		zap.String("stage", string(stage)),
		zap.String("environment", string(dctx.Environment)))

	switch stage {
	case model.StageValidation:
		return model.StageResult{"validation_passed": true, "checks_completed": 15}, nil
	case model.StageBuild:
		return model.StageResult{"build_successful": true, "artifacts_created": []string{"frontend", "api", "worker"}}, nil
	case model.StageTest:
		return model.StageResult{"tests_passed": true, "test_coverage": 89.5, "test_count": 1247}, nil
	case model.StageDeployDev, model.StageDeployStaging, model.StageDeployProduction:
		return model.StageResult{"deployment_successful": true, "strategy": dctx.DeploymentStrategy}, nil
	case model.StageMonitoring:
		return model.StageResult{"success": true, "monitoring_enabled": true, "dashboards_created": 5, "alerts_configured": 12}, nil
	default:
		return model.StageResult{}, nil
	}
}

// DefaultRollbackExecutor logs the rollback. Real remediation (traffic
// shifting, redeploying the previous release) hangs off this seam.
type DefaultRollbackExecutor struct {
	Log *zap.Logger
}

// ExecuteRollback carries out the chosen rollback plan.
func (e DefaultRollbackExecutor) ExecuteRollback(_ context.Context, plan model.RollbackPlan, dctx model.DeploymentContext) error {
	switch plan.Strategy {
	case model.RollbackImmediate:
		e.Log.Info("executing immediate rollback",
			zap.String("environment", string(dctx.Environment)),
			zap.String("reason", plan.Reason))
	case model.RollbackGradual:
		e.Log.Info("executing gradual rollback",
			zap.String("environment", string(dctx.Environment)),
			zap.String("reason", plan.Reason))
	case model.RollbackTargeted:
		e.Log.Info("executing targeted rollback",
			zap.String("environment", string(dctx.Environment)),
			zap.Strings("targets", plan.Targets))
	}
	return nil
}
