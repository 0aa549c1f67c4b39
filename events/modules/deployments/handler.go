package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ortelius/ado-backend/model"
)

// DeploymentService defines the interface for triggering orchestration runs.
type DeploymentService interface {
	Deploy(ctx context.Context, req model.DeploymentRequest) (model.OrchestrationResult, error)
}

// HandleDeploymentRequestedWithService processes deployment request events
// from Kafka and runs them through the shared orchestration service, so
// Kafka-driven deployments follow the same decision gate and pipeline as the
// REST API.
func HandleDeploymentRequestedWithService(
	ctx context.Context,
	msg []byte,
	service DeploymentService,
) error {
	var event DeploymentRequestedEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to unmarshal DeploymentRequestedEvent: %w", err)
	}

	log.Printf("Processing deployment request for %s@%s", event.Request.Environment, event.Request.Version)

	result, err := service.Deploy(ctx, event.Request)
	if err != nil {
		return fmt.Errorf("internal service error: %w", err)
	}

	log.Printf("Deployment %s finished with status %s", result.DeploymentID, result.Status)
	return nil
}
