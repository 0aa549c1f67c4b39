package history

import (
	"context"
	"fmt"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/google/uuid"

	"github.com/ortelius/ado-backend/database"
	"github.com/ortelius/ado-backend/model"
)

// ArangoStore is the production Tracker backed by the "deployment" collection
// in ArangoDB.
type ArangoStore struct {
	db database.DBConnection
}

// NewArangoStore creates a Tracker backed by the given database connection.
func NewArangoStore(db database.DBConnection) *ArangoStore {
	return &ArangoStore{db: db}
}

// Record appends one deployment record. Records are keyed by a fresh UUID so
// retried writes never overwrite history.
func (s *ArangoStore) Record(ctx context.Context, rec model.DeploymentRecord) error {
	if rec.Key == "" {
		rec.Key = uuid.New().String()
	}
	if rec.ObjType == "" {
		rec.ObjType = "DeploymentRecord"
	}

	query := `INSERT @doc INTO deployment`
	bindVars := map[string]interface{}{
		"doc": rec,
	}

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return fmt.Errorf("failed to insert deployment record %s: %w", rec.DeploymentID, err)
	}
	defer cursor.Close()

	return nil
}

// RelevantHistory aggregates the deployment collection into the summary the
// decision engine consumes. Similar deployments share the request's target
// environment. An empty collection yields the zero summary.
func (s *ArangoStore) RelevantHistory(ctx context.Context, req model.DeploymentRequest) (model.HistorySummary, error) {
	req = req.Normalized()

	query := `
		LET total = LENGTH(deployment)
		LET succeeded = LENGTH(
			FOR d IN deployment
				FILTER d.status == "success"
				RETURN 1
		)
		LET similar = LENGTH(
			FOR d IN deployment
				FILTER d.environment == @environment
				RETURN 1
		)
		LET avgDuration = (
			FOR d IN deployment
				COLLECT AGGREGATE avg = AVERAGE(d.duration_seconds)
				RETURN avg
		)[0]
		RETURN {
			total_deployments: total,
			success_rate: total == 0 ? 0 : succeeded / total,
			average_deployment_time: avgDuration == null ? 0 : avgDuration / 60,
			similar_deployments: similar
		}
	`
	bindVars := map[string]interface{}{
		"environment": req.Environment,
	}

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return model.HistorySummary{}, fmt.Errorf("failed to query deployment history: %w", err)
	}
	defer cursor.Close()

	var summary model.HistorySummary
	if _, err := cursor.ReadDocument(ctx, &summary); err != nil {
		return model.HistorySummary{}, fmt.Errorf("failed to read deployment history summary: %w", err)
	}

	return summary, nil
}

// Recent returns up to limit records, newest first.
func (s *ArangoStore) Recent(ctx context.Context, limit int) ([]model.DeploymentRecord, error) {
	query := `
		FOR d IN deployment
			SORT d.timestamp DESC
			LIMIT @limit
			RETURN d
	`
	bindVars := map[string]interface{}{
		"limit": limit,
	}

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, fmt.Errorf("failed to query recent deployments: %w", err)
	}
	defer cursor.Close()

	records := []model.DeploymentRecord{}
	for cursor.HasMore() {
		var rec model.DeploymentRecord
		if _, err := cursor.ReadDocument(ctx, &rec); err != nil {
			return nil, fmt.Errorf("failed to read deployment record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}
