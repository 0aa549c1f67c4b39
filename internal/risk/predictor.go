package risk

import "github.com/ortelius/ado-backend/model"

// PredictPerformance projects post-deployment performance from the baseline
// metrics: a modest p95/throughput improvement, an error-rate reduction with
// a 0.01 floor, and availability gains capped at 99.99.
func PredictPerformance(baseline model.PerformanceMetrics) model.PerformanceMetrics {
	predicted := baseline
	predicted.ResponseTimeP95 = baseline.ResponseTimeP95 * 0.95
	predicted.Throughput = baseline.Throughput * 1.05
	predicted.ErrorRate = baseline.ErrorRate * 0.8
	if predicted.ErrorRate < 0.01 {
		predicted.ErrorRate = 0.01
	}
	predicted.Availability = baseline.Availability + 0.1
	if predicted.Availability > 99.99 {
		predicted.Availability = 99.99
	}
	return predicted
}
