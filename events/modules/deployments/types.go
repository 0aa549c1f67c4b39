// Package deployments defines types for Kafka event processing of deployment
// lifecycle events.
package deployments

import (
	"time"

	"github.com/ortelius/ado-backend/model"
)

// DeploymentRequestedEvent is consumed from Kafka to trigger an
// orchestration run, typically published by CI.
type DeploymentRequestedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	Request model.DeploymentRequest `json:"request"`
}

// DeploymentCompletedEvent is published after a run terminates successfully.
type DeploymentCompletedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	DeploymentID string                   `json:"deployment_id"`
	Environment  model.Environment        `json:"environment"`
	Version      string                   `json:"version"`
	Strategy     string                   `json:"strategy"`
	Decision     model.DeploymentDecision `json:"decision"`
	Predicted    *model.PerformanceMetrics `json:"predicted_metrics,omitempty"`
}

// DeploymentRolledBackEvent notifies stakeholders that a rollback ran. It is
// published unconditionally after rollback execution, regardless of whether
// the rollback actions themselves succeeded.
type DeploymentRolledBackEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	DeploymentID string             `json:"deployment_id"`
	Environment  model.Environment  `json:"environment"`
	FailedStage  model.Stage        `json:"failed_stage,omitempty"`
	Plan         model.RollbackPlan `json:"rollback"`
}
