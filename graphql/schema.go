// Package graphql assembles the root GraphQL schema from the module query fields.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/ortelius/ado-backend/graphql/modules/deployments"
	"github.com/ortelius/ado-backend/history"
)

var store history.Tracker

// Init binds the schema resolvers to a history store. Must be called before
// CreateSchema.
func Init(s history.Tracker) {
	store = s
}

// CreateSchema builds the root query schema from the module field sets.
func CreateSchema() (graphql.Schema, error) {
	fields := graphql.Fields{}

	for name, field := range deployments.GetQueryFields(store) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: rootQuery,
	})
}
