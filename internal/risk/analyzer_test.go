package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ortelius/ado-backend/model"
)

func cleanContext() model.DeploymentContext {
	return model.DeploymentContext{
		Environment: model.EnvStaging,
		QualityMetrics: model.QualityMetrics{
			TestCoverage:            90,
			CodeQualityScore:        0.9,
			SecurityVulnerabilities: 0,
		},
		PerformanceMetrics: model.PerformanceMetrics{
			ErrorRate:    0.1,
			Availability: 99.9,
		},
	}
}

func TestAnalyzeCleanDeploymentIsLowRisk(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())

	assessment := a.Analyze(cleanContext())

	assert.Equal(t, 0.0, assessment.OverallRiskScore)
	assert.Equal(t, model.RiskLow, assessment.RiskLevel)
	assert.Empty(t, assessment.RiskFactors)
	assert.Empty(t, assessment.MitigationStrategies)
	assert.Equal(t, 0.85, assessment.ConfidenceScore)
	assert.Equal(t, 0.0, assessment.PredictiveAnalysis["failure_probability"])
}

func TestAnalyzeAccumulatesWeights(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())

	dctx := cleanContext()
	dctx.QualityMetrics.TestCoverage = 60
	dctx.QualityMetrics.SecurityVulnerabilities = 2

	assessment := a.Analyze(dctx)

	assert.InDelta(t, 0.50, assessment.OverallRiskScore, 1e-9)
	assert.Equal(t, model.RiskMedium, assessment.RiskLevel)
	require.Equal(t, []string{"Low test coverage", "Security vulnerabilities present"}, assessment.RiskFactors)
	require.Equal(t, []string{
		"Increase test coverage before deployment",
		"Fix all security vulnerabilities",
	}, assessment.MitigationStrategies)
	assert.InDelta(t, 0.40, assessment.PredictiveAnalysis["failure_probability"], 1e-9)
}

func TestAnalyzeBucketBoundaries(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())

	// Coverage + error rate trigger exactly 0.40, the closed medium bound.
	dctx := cleanContext()
	dctx.QualityMetrics.TestCoverage = 70
	dctx.PerformanceMetrics.ErrorRate = 0.6

	assessment := a.Analyze(dctx)
	assert.InDelta(t, 0.40, assessment.OverallRiskScore, 1e-9)
	assert.Equal(t, model.RiskMedium, assessment.RiskLevel)

	// Adding vulnerabilities reaches exactly 0.70, the closed high bound.
	dctx.QualityMetrics.SecurityVulnerabilities = 1

	assessment = a.Analyze(dctx)
	assert.InDelta(t, 0.70, assessment.OverallRiskScore, 1e-9)
	assert.Equal(t, model.RiskHigh, assessment.RiskLevel)
}

func TestAnalyzeAllFactors(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())

	dctx := model.DeploymentContext{
		QualityMetrics: model.QualityMetrics{
			TestCoverage:            10,
			SecurityVulnerabilities: 5,
		},
		PerformanceMetrics: model.PerformanceMetrics{
			ErrorRate:    2.0,
			Availability: 95,
		},
	}

	assessment := a.Analyze(dctx)

	assert.InDelta(t, 0.85, assessment.OverallRiskScore, 1e-9)
	assert.Equal(t, model.RiskHigh, assessment.RiskLevel)
	assert.Len(t, assessment.RiskFactors, 4)
	assert.Len(t, assessment.MitigationStrategies, 4)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())

	dctx := cleanContext()
	dctx.QualityMetrics.TestCoverage = 60

	first := a.Analyze(dctx)
	second := a.Analyze(dctx)

	assert.Equal(t, first, second)
}

func TestPredictPerformance(t *testing.T) {
	baseline := model.PerformanceMetrics{
		ResponseTimeP95: 145.7,
		Throughput:      2500,
		ErrorRate:       0.05,
		Availability:    99.97,
	}

	predicted := PredictPerformance(baseline)

	assert.InDelta(t, 138.415, predicted.ResponseTimeP95, 1e-9)
	assert.InDelta(t, 2625, predicted.Throughput, 1e-9)
	assert.InDelta(t, 0.04, predicted.ErrorRate, 1e-9)
	assert.Equal(t, 99.99, predicted.Availability)
}

func TestPredictPerformanceErrorRateFloor(t *testing.T) {
	baseline := model.PerformanceMetrics{ErrorRate: 0.005, Availability: 99.0}

	predicted := PredictPerformance(baseline)

	assert.Equal(t, 0.01, predicted.ErrorRate)
	assert.InDelta(t, 99.1, predicted.Availability, 1e-9)
}
