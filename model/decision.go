package model

// DeploymentDecision is the verdict of the decision engine for one
// orchestration run. Conditions is non-empty only for conditional decisions;
// AutonomousExecution is true only for approvals.
type DeploymentDecision struct {
	Decision            DecisionKind `json:"decision"`
	Confidence          float64      `json:"confidence"`
	Reasoning           []string     `json:"reasoning"`
	Conditions          []string     `json:"conditions"`
	RecommendedActions  []string     `json:"recommended_actions"`
	AutonomousExecution bool         `json:"autonomous_execution"`
}

// RollbackPlan is the chosen remediation once a stage has failed. Targets is
// populated only for the targeted strategy.
type RollbackPlan struct {
	Strategy RollbackStrategy `json:"strategy"`
	Reason   string           `json:"reason"`
	Targets  []string         `json:"targets,omitempty"`
}
