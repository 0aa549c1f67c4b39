// Package services provides internal service implementations for the ADO backend.
package services

import (
	"context"
	"log"

	"github.com/ortelius/ado-backend/internal/orchestrator"
	"github.com/ortelius/ado-backend/model"
)

// DeploymentServiceWrapper implements deployments.DeploymentService by
// delegating to the shared orchestrator. This ensures that Kafka-driven
// deployment requests go through the same decision gate, pipeline and
// history recording as the REST API.
type DeploymentServiceWrapper struct {
	Orchestrator *orchestrator.Orchestrator
}

// Deploy runs one orchestration for the given request.
func (w *DeploymentServiceWrapper) Deploy(ctx context.Context, req model.DeploymentRequest) (model.OrchestrationResult, error) {
	log.Printf("Worker: Processing deployment request for %s@%s", req.Environment, req.Version)

	return w.Orchestrator.Orchestrate(ctx, req)
}
