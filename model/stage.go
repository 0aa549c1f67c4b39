// Package model defines the data types shared by the deployment orchestrator:
// pipeline stages, metric snapshots, risk and decision records.
package model

import "fmt"

// Environment identifies a deployment target environment.
type Environment string

// Valid deployment environments.
const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// ParseEnvironment validates a raw environment string. An empty string
// defaults to production, matching the deployment request contract.
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(s) {
	case EnvDevelopment, EnvStaging, EnvProduction:
		return Environment(s), nil
	case "":
		return EnvProduction, nil
	default:
		return "", fmt.Errorf("unknown environment %q", s)
	}
}

// Stage identifies one discrete phase of the deployment pipeline.
type Stage string

// Pipeline stages. StageRollback is entered on failure only and is never
// part of the ordered stage plan.
const (
	StageValidation       Stage = "validation"
	StageBuild            Stage = "build"
	StageTest             Stage = "test"
	StageDeployDev        Stage = "deploy-development"
	StageDeployStaging    Stage = "deploy-staging"
	StageDeployProduction Stage = "deploy-production"
	StageMonitoring       Stage = "monitoring"
	StageRollback         Stage = "rollback"
)

// StagesFor returns the ordered stage plan for an environment. Deploy
// sub-stages are cumulative: staging includes the development deploy,
// production includes both lower deploys.
func StagesFor(env Environment) []Stage {
	stages := []Stage{StageValidation, StageBuild, StageTest}

	switch env {
	case EnvDevelopment:
		stages = append(stages, StageDeployDev)
	case EnvStaging:
		stages = append(stages, StageDeployDev, StageDeployStaging)
	default: // production
		stages = append(stages, StageDeployDev, StageDeployStaging, StageDeployProduction)
	}

	return append(stages, StageMonitoring)
}

// DeploymentStatus is the lifecycle/outcome state of an orchestration run.
type DeploymentStatus string

// Deployment statuses. Rejected and Error are terminal result statuses;
// RolledBack is recorded when a rollback has been executed.
const (
	StatusPending    DeploymentStatus = "pending"
	StatusRunning    DeploymentStatus = "running"
	StatusSuccess    DeploymentStatus = "success"
	StatusFailed     DeploymentStatus = "failed"
	StatusRejected   DeploymentStatus = "rejected"
	StatusError      DeploymentStatus = "error"
	StatusRolledBack DeploymentStatus = "rolled_back"
)

// RiskLevel buckets a risk or threat score into a severity band.
type RiskLevel string

// Risk levels. RiskCritical is representable but no current rule produces it.
const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RollbackStrategy is the remediation mode chosen once a stage fails.
type RollbackStrategy string

// Rollback strategies. RollbackTargeted is representable but the default
// rule set never selects it.
const (
	RollbackImmediate RollbackStrategy = "immediate"
	RollbackGradual   RollbackStrategy = "gradual"
	RollbackTargeted  RollbackStrategy = "targeted"
)

// DecisionKind is the verdict of the decision engine.
type DecisionKind string

// Decision verdicts.
const (
	DecisionApprove     DecisionKind = "approve"
	DecisionConditional DecisionKind = "conditional"
	DecisionReject      DecisionKind = "reject"
)
