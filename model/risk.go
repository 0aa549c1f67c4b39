package model

// RiskAssessment is the output of the risk analyzer. RiskLevel is always a
// deterministic bucketing of OverallRiskScore, and MitigationStrategies
// corresponds 1:1 with RiskFactors in the same order.
type RiskAssessment struct {
	OverallRiskScore     float64            `json:"overall_risk_score"` // 0-1
	RiskLevel            RiskLevel          `json:"risk_level"`
	RiskFactors          []string           `json:"risk_factors"`
	MitigationStrategies []string           `json:"mitigation_strategies"`
	ConfidenceScore      float64            `json:"confidence_score"`
	PredictiveAnalysis   map[string]float64 `json:"predictive_analysis"`
}

// Populated reports whether the assessment has been filled in by the risk
// analyzer. A freshly assembled DeploymentContext carries a zero-value
// placeholder until the backfill step runs.
func (r RiskAssessment) Populated() bool {
	return r.RiskLevel != ""
}
