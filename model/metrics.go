package model

// QualityMetrics is an immutable snapshot of code quality signals, captured
// once per orchestration run.
type QualityMetrics struct {
	TestCoverage            float64 `json:"test_coverage"`            // percent, 0-100
	CodeQualityScore        float64 `json:"code_quality_score"`       // 0-1
	SecurityVulnerabilities int     `json:"security_vulnerabilities"` // open vulnerability count
	PerformanceScore        float64 `json:"performance_score"`        // 0-1
	ReliabilityScore        float64 `json:"reliability_score"`        // 0-1
	MaintainabilityScore    float64 `json:"maintainability_score"`    // 0-1
}

// PerformanceMetrics is a snapshot of runtime performance signals. The same
// shape serves two lifecycles: a baseline captured before the deploy and
// realtime samples pulled during production monitoring.
type PerformanceMetrics struct {
	ResponseTimeP95   float64 `json:"response_time_p95"` // ms
	Throughput        float64 `json:"throughput"`        // req/s
	ErrorRate         float64 `json:"error_rate"`        // percent
	CPUUtilization    float64 `json:"cpu_utilization"`   // percent
	MemoryUtilization float64 `json:"memory_utilization"`
	Availability      float64 `json:"availability"` // percent
}

// SecurityAssessment is a snapshot of the security posture for a release.
type SecurityAssessment struct {
	VulnerabilityCount     int       `json:"vulnerability_count"`
	SecurityScore          float64   `json:"security_score"`   // 0-1
	ComplianceScore        float64   `json:"compliance_score"` // 0-1
	ThreatLevel            RiskLevel `json:"threat_level"`
	QuantumSecurityEnabled bool      `json:"quantum_security_enabled"`
	ZeroTrustValidated     bool      `json:"zero_trust_validated"`
}

// BusinessImpact is the assessed business effect of a realtime metrics
// sample during production monitoring.
type BusinessImpact struct {
	Severity      float64  `json:"severity"` // 0-1
	ImpactAreas   []string `json:"impact_areas"`
	EstimatedLoss float64  `json:"estimated_loss"`
}
