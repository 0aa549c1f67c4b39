// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/ortelius/ado-backend/history"
	"github.com/ortelius/ado-backend/internal/orchestrator"
	"github.com/ortelius/ado-backend/restapi/modules/deployments"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
func SetupRoutes(app *fiber.App, orch *orchestrator.Orchestrator, store history.Tracker, schema graphql.Schema) {
	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL Route - Mounted within the api group to inherit path prefixes
	api.Post("/graphql", GraphQLHandler(schema))

	// Deployment orchestration and history
	api.Post("/deployments", deployments.PostDeployment(orch))
	api.Get("/deployments", deployments.ListDeployments(store))
	api.Get("/deployments/summary", deployments.GetDeploymentSummary(store))

	log.Println("API routes initialized successfully")
}
