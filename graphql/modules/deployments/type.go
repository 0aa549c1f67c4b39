// Package deployments defines the GraphQL types for deployment history.
package deployments

import (
	"github.com/graphql-go/graphql"

	"github.com/ortelius/ado-backend/model"
)

// DecisionType represents the decision engine verdict attached to a run.
var DecisionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DeploymentDecision",
	Fields: graphql.Fields{
		"decision":   &graphql.Field{Type: graphql.String},
		"confidence": &graphql.Field{Type: graphql.Float},
		"reasoning":  &graphql.Field{Type: graphql.NewList(graphql.String)},
		"conditions": &graphql.Field{Type: graphql.NewList(graphql.String)},
		"recommended_actions": &graphql.Field{
			Type: graphql.NewList(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if d, ok := p.Source.(model.DeploymentDecision); ok {
					return d.RecommendedActions, nil
				}
				return nil, nil
			},
		},
		"autonomous_execution": &graphql.Field{
			Type: graphql.Boolean,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if d, ok := p.Source.(model.DeploymentDecision); ok {
					return d.AutonomousExecution, nil
				}
				return nil, nil
			},
		},
	},
})

// DeploymentRecordType represents one append-only deployment history entry.
var DeploymentRecordType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DeploymentRecord",
	Fields: graphql.Fields{
		"deployment_id": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if rec, ok := p.Source.(model.DeploymentRecord); ok {
					return rec.DeploymentID, nil
				}
				return nil, nil
			},
		},
		"timestamp": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if rec, ok := p.Source.(model.DeploymentRecord); ok {
					return rec.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"), nil
				}
				return nil, nil
			},
		},
		"environment": &graphql.Field{Type: graphql.String},
		"version":     &graphql.Field{Type: graphql.String},
		"strategy":    &graphql.Field{Type: graphql.String},
		"status":      &graphql.Field{Type: graphql.String},
		"failed_stage": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if rec, ok := p.Source.(model.DeploymentRecord); ok {
					return string(rec.FailedStage), nil
				}
				return nil, nil
			},
		},
		"duration_seconds": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if rec, ok := p.Source.(model.DeploymentRecord); ok {
					return rec.DurationSec, nil
				}
				return nil, nil
			},
		},
		"decision": &graphql.Field{
			Type: DecisionType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if rec, ok := p.Source.(model.DeploymentRecord); ok {
					return rec.Decision, nil
				}
				return nil, nil
			},
		},
	},
})

// HistorySummaryType represents the aggregate deployment history view.
var HistorySummaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "HistorySummary",
	Fields: graphql.Fields{
		"total_deployments": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if s, ok := p.Source.(model.HistorySummary); ok {
					return s.TotalDeployments, nil
				}
				return nil, nil
			},
		},
		"success_rate": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if s, ok := p.Source.(model.HistorySummary); ok {
					return s.SuccessRate, nil
				}
				return nil, nil
			},
		},
		"average_deployment_time": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if s, ok := p.Source.(model.HistorySummary); ok {
					return s.AverageDurationMin, nil
				}
				return nil, nil
			},
		},
		"similar_deployments": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if s, ok := p.Source.(model.HistorySummary); ok {
					return s.SimilarDeployments, nil
				}
				return nil, nil
			},
		},
	},
})
