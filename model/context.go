package model

import "github.com/ortelius/ado-backend/util"

// DeploymentRequest is the inbound request that triggers an orchestration
// run. Source and TriggeredBy are provenance metadata carried into the
// history record and ignored by decision logic.
type DeploymentRequest struct {
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Strategy    string `json:"strategy"`
	Source      string `json:"source,omitempty"`
	TriggeredBy string `json:"triggered_by,omitempty"`
}

// Normalized returns a copy with the contract defaults applied
// (environment=production, version=latest, strategy=blue-green) and the
// version string cleaned of branch prefixes.
func (r DeploymentRequest) Normalized() DeploymentRequest {
	out := r
	out.Environment = util.GetStringOrDefault(out.Environment, string(EnvProduction))
	if out.Version == "" {
		out.Version = "latest"
	} else {
		out.Version = util.CleanVersion(out.Version)
	}
	out.Strategy = util.GetStringOrDefault(out.Strategy, "blue-green")
	return out
}

// HistorySummary is the aggregate view of past deployments used as
// historical context for a new decision. A store with no history returns
// the zero value, never an error.
type HistorySummary struct {
	TotalDeployments   int     `json:"total_deployments"`
	SuccessRate        float64 `json:"success_rate"`
	AverageDurationMin float64 `json:"average_deployment_time"` // minutes
	SimilarDeployments int     `json:"similar_deployments"`
}

// DeploymentContext bundles everything the decision engine needs for one
// run. It is assembled once per request and read-only afterwards, except for
// the RiskAssessment backfill performed by the orchestrator before the
// decision step.
type DeploymentContext struct {
	Environment        Environment        `json:"environment"`
	ApplicationVersion string             `json:"application_version"`
	DeploymentStrategy string             `json:"deployment_strategy"`
	QualityMetrics     QualityMetrics     `json:"quality_metrics"`
	PerformanceMetrics PerformanceMetrics `json:"performance_metrics"`
	SecurityAssessment SecurityAssessment `json:"security_assessment"`
	RiskAssessment     RiskAssessment     `json:"risk_assessment"`
	HistoricalData     HistorySummary     `json:"historical_data"`
}
