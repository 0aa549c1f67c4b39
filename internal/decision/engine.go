// Package decision implements the deployment decision engine: sub-score
// computation, the approve/conditional/reject verdict, per-stage result
// validation, and rollback strategy selection.
package decision

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ortelius/ado-backend/config"
	"github.com/ortelius/ado-backend/model"
)

// Decision thresholds on the overall score.
const (
	approveThreshold     = 0.9
	conditionalThreshold = 0.7
)

// Engine computes deployment decisions from an assembled context. Decide is
// idempotent: the engine keeps no per-run state.
type Engine struct {
	cfg *config.Config
	log *zap.Logger
}

// NewEngine creates a decision engine bound to a pipeline configuration.
func NewEngine(cfg *config.Config, log *zap.Logger) *Engine {
	return &Engine{cfg: cfg, log: log}
}

// Decide produces the deployment verdict for a context.
//
// Precondition: dctx.RiskAssessment has been populated by the risk analyzer.
// Deciding against the zero-value placeholder is a programming error in the
// caller, not a runtime failure path.
//
// Configured approval rules are evaluated first, in order; the first rule
// whose condition matches approves with that rule's confidence. Otherwise
// the default thresholds apply: overall >= 0.9 approves autonomously,
// >= 0.7 is conditional, anything lower is rejected.
func (e *Engine) Decide(dctx model.DeploymentContext) model.DeploymentDecision {
	scores := e.scoresFor(dctx)

	e.log.Info("deployment scores computed",
		zap.Float64("quality", scores.Quality),
		zap.Float64("performance", scores.Performance),
		zap.Float64("security", scores.Security),
		zap.Float64("risk_complement", scores.RiskComplement),
		zap.Float64("overall", scores.Overall))

	for _, rule := range e.cfg.AutonomousDecisions.DeploymentApproval {
		matched, err := EvalCondition(rule.Condition, scores)
		if err != nil {
			e.log.Warn("skipping unparseable decision rule",
				zap.String("rule", rule.Name), zap.Error(err))
			continue
		}
		if matched {
			return model.DeploymentDecision{
				Decision:            model.DecisionApprove,
				Confidence:          rule.Confidence,
				Reasoning:           []string{fmt.Sprintf("Condition met: %s", rule.Condition)},
				AutonomousExecution: true,
			}
		}
	}

	switch {
	case scores.Overall >= approveThreshold:
		return model.DeploymentDecision{
			Decision:            model.DecisionApprove,
			Confidence:          scores.Overall,
			Reasoning:           []string{"High overall quality score"},
			AutonomousExecution: true,
		}
	case scores.Overall >= conditionalThreshold:
		return model.DeploymentDecision{
			Decision:           model.DecisionConditional,
			Confidence:         scores.Overall,
			Reasoning:          []string{"Moderate quality score, conditions required"},
			Conditions:         []string{"enhanced_monitoring", "gradual_rollout"},
			RecommendedActions: []string{"Monitor key metrics closely"},
		}
	default:
		return model.DeploymentDecision{
			Decision:           model.DecisionReject,
			Confidence:         1.0 - scores.Overall,
			Reasoning:          []string{"Quality metrics below threshold"},
			RecommendedActions: []string{"Improve test coverage", "Fix security issues"},
		}
	}
}

// scoresFor computes the four sub-scores and their mean.
func (e *Engine) scoresFor(dctx model.DeploymentContext) Scores {
	s := Scores{
		Quality:        qualityScore(dctx.QualityMetrics),
		Performance:    performanceScore(dctx.PerformanceMetrics),
		Security:       securityScore(dctx.SecurityAssessment),
		RiskComplement: 1.0 - dctx.RiskAssessment.OverallRiskScore,
	}
	s.Overall = (s.Quality + s.Performance + s.Security + s.RiskComplement) / 4
	return s
}

// qualityScore weighs coverage, static quality, vulnerability count (fewer
// is better, saturating at 10), performance and reliability.
func qualityScore(m model.QualityMetrics) float64 {
	vulnScore := 1.0 - float64(m.SecurityVulnerabilities)/10
	if vulnScore < 0 {
		vulnScore = 0
	}

	score := 0.25*(m.TestCoverage/100) +
		0.25*m.CodeQualityScore +
		0.25*vulnScore +
		0.125*m.PerformanceScore +
		0.125*m.ReliabilityScore

	return clamp01(score)
}

// performanceScore averages four normalized terms against fixed targets:
// 500ms p95, 2000 req/s throughput, 1% error rate, 100% availability.
func performanceScore(m model.PerformanceMetrics) float64 {
	responseScore := 1.0 - m.ResponseTimeP95/500
	if responseScore < 0 {
		responseScore = 0
	}

	throughputScore := m.Throughput / 2000
	if throughputScore > 1 {
		throughputScore = 1
	}

	errorScore := 1.0 - m.ErrorRate
	if errorScore < 0 {
		errorScore = 0
	}

	availabilityScore := m.Availability / 100

	return clamp01((responseScore + throughputScore + errorScore + availabilityScore) / 4)
}

// securityScore starts from the assessed score, adds small bonuses for
// quantum security and zero trust, and penalizes vulnerabilities up to 0.5.
func securityScore(a model.SecurityAssessment) float64 {
	score := a.SecurityScore
	if a.QuantumSecurityEnabled {
		score += 0.05
	}
	if a.ZeroTrustValidated {
		score += 0.05
	}

	penalty := float64(a.VulnerabilityCount) * 0.1
	if penalty > 0.5 {
		penalty = 0.5
	}

	return clamp01(score - penalty)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ValidateStage checks whether a stage outcome passes its gate. Validation,
// build and deploy stages require their explicit success flag; the test
// stage additionally requires coverage of at least 85 even when the tests
// themselves pass. Unrecognized stages require the generic "success" flag.
func (e *Engine) ValidateStage(stage model.Stage, result model.StageResult, _ model.DeploymentContext) bool {
	switch stage {
	case model.StageValidation:
		return result.GetBool("validation_passed")
	case model.StageBuild:
		return result.GetBool("build_successful")
	case model.StageTest:
		return result.GetBool("tests_passed") && result.GetFloat("test_coverage") >= 85
	case model.StageDeployDev, model.StageDeployStaging, model.StageDeployProduction:
		return result.GetBool("deployment_successful")
	default:
		return result.GetBool("success")
	}
}

// SelectRollback chooses the remediation strategy after a stage failure.
// Production always rolls back immediately (safety priority); every other
// environment rolls back gradually. The targeted strategy is a reserved
// extension point with no trigger in the current rule set.
func (e *Engine) SelectRollback(dctx model.DeploymentContext, _ map[model.Stage]model.StageResult) model.RollbackPlan {
	if dctx.Environment == model.EnvProduction {
		return model.RollbackPlan{
			Strategy: model.RollbackImmediate,
			Reason:   "Production safety priority",
		}
	}
	return model.RollbackPlan{
		Strategy: model.RollbackGradual,
		Reason:   "Non-production environment",
	}
}
