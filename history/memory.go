package history

import (
	"context"
	"sync"

	"github.com/ortelius/ado-backend/model"
)

// MemoryStore is an in-process Tracker. It backs single-node deployments and
// tests; production setups use the ArangoDB store instead.
type MemoryStore struct {
	mu      sync.Mutex
	records []model.DeploymentRecord
}

// NewMemoryStore creates an empty in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Record appends one deployment record.
func (s *MemoryStore) Record(_ context.Context, rec model.DeploymentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// RelevantHistory aggregates the stored records. Similar deployments are
// those targeting the same environment as the request.
func (s *MemoryStore) RelevantHistory(_ context.Context, req model.DeploymentRequest) (model.HistorySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 {
		return model.HistorySummary{}, nil
	}

	req = req.Normalized()

	var summary model.HistorySummary
	var succeeded int
	var totalDuration float64

	for _, rec := range s.records {
		summary.TotalDeployments++
		if rec.Status == model.StatusSuccess {
			succeeded++
		}
		totalDuration += rec.DurationSec
		if rec.Environment == model.Environment(req.Environment) {
			summary.SimilarDeployments++
		}
	}

	summary.SuccessRate = float64(succeeded) / float64(summary.TotalDeployments)
	summary.AverageDurationMin = totalDuration / float64(summary.TotalDeployments) / 60

	return summary, nil
}

// Recent returns up to limit records, newest first.
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]model.DeploymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.records)
	if limit > n {
		limit = n
	}

	out := make([]model.DeploymentRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}
