package model

import "time"

// StageResult is the opaque outcome payload produced by a stage executor and
// consumed by the decision engine's per-stage validator.
type StageResult map[string]interface{}

// GetBool returns the named flag, treating a missing or mistyped value as
// false.
func (r StageResult) GetBool(key string) bool {
	v, ok := r[key].(bool)
	return ok && v
}

// GetFloat returns the named numeric value, accepting either float64 or int,
// or 0 when absent.
func (r StageResult) GetFloat(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// OrchestrationResult is the full outcome of one orchestration run.
//
// Status selects which of the optional fields are meaningful:
//
//	rejected: Reason, Recommendations
//	success:  DeploymentStrategy, StageResults, MonitoringEnabled, PredictedMetrics
//	failed:   FailedStage, RollbackInitiated, RollbackPlan, StageResults
//	error:    FailedStage, Error, RollbackInitiated, RollbackPlan, StageResults
type OrchestrationResult struct {
	DeploymentID string             `json:"deployment_id"`
	Status       DeploymentStatus   `json:"status"`
	Decision     DeploymentDecision `json:"decision"`

	Reason          []string `json:"reason,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`

	DeploymentStrategy string                `json:"deployment_strategy,omitempty"`
	StageResults       map[Stage]StageResult `json:"results,omitempty"`
	MonitoringEnabled  bool                  `json:"monitoring_enabled,omitempty"`
	PredictedMetrics   *PerformanceMetrics   `json:"predicted_metrics,omitempty"`

	FailedStage       Stage         `json:"failed_stage,omitempty"`
	Error             string        `json:"error,omitempty"`
	RollbackInitiated bool          `json:"rollback_initiated,omitempty"`
	RollbackPlan      *RollbackPlan `json:"rollback,omitempty"`

	Conditions []string `json:"conditions,omitempty"`

	Context     DeploymentContext `json:"context"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt time.Time         `json:"completed_at"`
}

// DeploymentRecord is the append-only history entry persisted after every
// orchestration run. Records are immutable once written.
type DeploymentRecord struct {
	Key          string             `json:"_key,omitempty"`
	ObjType      string             `json:"objtype,omitempty"`
	DeploymentID string             `json:"deployment_id"`
	Timestamp    time.Time          `json:"timestamp"`
	Environment  Environment        `json:"environment"`
	Version      string             `json:"version"`
	VersionMajor *int               `json:"version_major,omitempty"`
	VersionMinor *int               `json:"version_minor,omitempty"`
	VersionPatch *int               `json:"version_patch,omitempty"`
	Strategy     string             `json:"strategy"`
	Source       string             `json:"source,omitempty"`
	TriggeredBy  string             `json:"triggered_by,omitempty"`
	Context      DeploymentContext  `json:"context"`
	Decision     DeploymentDecision `json:"decision"`
	Status       DeploymentStatus   `json:"status"`
	FailedStage  Stage              `json:"failed_stage,omitempty"`
	DurationSec  float64            `json:"duration_seconds"`
}
