// Package deployments implements the REST API handlers for deployment
// orchestration and history.
package deployments

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ortelius/ado-backend/history"
	"github.com/ortelius/ado-backend/internal/orchestrator"
	"github.com/ortelius/ado-backend/model"
	"github.com/ortelius/ado-backend/util"
)

// validEnvironments are the environment names accepted by the summary query.
var validEnvironments = []string{
	string(model.EnvDevelopment),
	string(model.EnvStaging),
	string(model.EnvProduction),
}

// PostDeployment triggers one orchestration run for the posted request and
// returns its terminal result. Rejected and failed runs are still 200s: the
// orchestration itself completed and the outcome is in the body.
func PostDeployment(orch *orchestrator.Orchestrator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.DeploymentRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body: " + err.Error(),
			})
		}

		result, err := orch.Orchestrate(c.Context(), req)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(result)
	}
}

// ListDeployments returns recent deployment records, newest first.
func ListDeployments(store history.Tracker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 50
		if raw := c.Query("limit"); util.IsNotEmpty(raw) {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "limit must be a positive integer",
				})
			}
			limit = parsed
		}

		records, err := store.Recent(c.Context(), limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(fiber.Map{"deployments": records})
	}
}

// GetDeploymentSummary returns the aggregate history summary for an
// environment (defaults to production).
func GetDeploymentSummary(store history.Tracker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		environment := c.Query("environment")
		if util.IsNotEmpty(environment) && !util.Contains(validEnvironments, environment) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown environment: " + environment,
			})
		}

		summary, err := store.RelevantHistory(c.Context(), model.DeploymentRequest{Environment: environment})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(summary)
	}
}
