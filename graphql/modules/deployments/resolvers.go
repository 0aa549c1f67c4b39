package deployments

import (
	"context"

	"github.com/ortelius/ado-backend/history"
	"github.com/ortelius/ado-backend/model"
)

// ResolveDeployments returns recent deployment records, newest first.
func ResolveDeployments(ctx context.Context, store history.Tracker, limit int) ([]model.DeploymentRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	return store.Recent(ctx, limit)
}

// ResolveDeploymentSummary returns the aggregate history for an environment.
func ResolveDeploymentSummary(ctx context.Context, store history.Tracker, environment string) (model.HistorySummary, error) {
	return store.RelevantHistory(ctx, model.DeploymentRequest{Environment: environment})
}
