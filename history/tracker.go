// Package history persists the append-only deployment record and aggregates
// it into the historical context consumed by the decision engine.
package history

import (
	"context"

	"github.com/ortelius/ado-backend/model"
)

// Tracker records orchestration outcomes and serves aggregate history back to
// the orchestrator. Implementations must treat records as append-only.
type Tracker interface {
	// Record appends one deployment record.
	Record(ctx context.Context, rec model.DeploymentRecord) error

	// RelevantHistory aggregates past records for a new request. A store
	// with no history returns the zero summary, not an error.
	RelevantHistory(ctx context.Context, req model.DeploymentRequest) (model.HistorySummary, error)

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]model.DeploymentRecord, error)
}
