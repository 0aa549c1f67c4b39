// Package deployments defines the GraphQL queries for deployment history.
package deployments

import (
	"github.com/graphql-go/graphql"

	"github.com/ortelius/ado-backend/history"
)

// GetQueryFields returns the deployment queries to be mounted in the root schema.
func GetQueryFields(store history.Tracker) graphql.Fields {
	return graphql.Fields{
		"deployments": &graphql.Field{
			Type: graphql.NewList(DeploymentRecordType),
			Args: graphql.FieldConfigArgument{
				"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 50},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				limit := p.Args["limit"].(int)
				return ResolveDeployments(p.Context, store, limit)
			},
		},
		"deploymentSummary": &graphql.Field{
			Type: HistorySummaryType,
			Args: graphql.FieldConfigArgument{
				"environment": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "production"},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				environment := p.Args["environment"].(string)
				return ResolveDeploymentSummary(p.Context, store, environment)
			},
		},
	}
}
