// Package main wires the autonomous deployment orchestrator service: pipeline
// configuration, database, Kafka event processing, and the HTTP API.
package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/ortelius/ado-backend/config"
	"github.com/ortelius/ado-backend/database"
	deployments "github.com/ortelius/ado-backend/events/modules/deployments"
	"github.com/ortelius/ado-backend/history"
	"github.com/ortelius/ado-backend/internal/api"
	"github.com/ortelius/ado-backend/internal/kafka"
	"github.com/ortelius/ado-backend/internal/orchestrator"
	"github.com/ortelius/ado-backend/internal/providers"
	"github.com/ortelius/ado-backend/util"
)

func main() {
	logger := database.InitLogger()

	// Pipeline configuration: external YAML when configured, built-in
	// defaults otherwise.
	cfg := config.Default()
	if path := os.Getenv("ADO_PIPELINE_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load pipeline config: %v", err)
		}
		cfg = loaded
	}

	// Initialize database connection and the deployment history store
	db := database.InitializeDatabase()
	store := history.NewArangoStore(db)

	// Kafka producer for deployment lifecycle notifications
	brokersEnv := util.GetEnvDefault("KAFKA_BROKERS", "localhost:9092")
	brokers := strings.Split(brokersEnv, ",")
	producer := deployments.NewDeploymentProducer(brokers, "deployment-events")
	defer producer.Close()

	executor := providers.DefaultStageExecutor{Log: logger}
	rollback := providers.DefaultRollbackExecutor{Log: logger}

	orch := orchestrator.New(orchestrator.Dependencies{
		Config:      cfg,
		Quality:     providers.StaticQualityProvider{},
		Performance: providers.StaticPerformanceProvider{},
		Security:    providers.StaticSecurityProvider{},
		Executor:    executor,
		Rollback:    rollback,
		Monitor:     providers.StaticPerformanceProvider{},
		Impact:      providers.StaticImpactAssessor{},
		History:     store,
		Notifier:    producer,
		Log:         logger,
	})

	// Kafka consumer for deployment request events
	ctx := context.Background()
	if err := kafka.RunEventProcessor(ctx, orch); err != nil {
		log.Printf("WARNING: Kafka event processor unavailable: %v", err)
	}

	// HTTP API
	app := api.NewFiberApp(orch, store)

	port := util.GetEnvDefault("MS_PORT", "3000")

	log.Printf("Starting server on port %s", port)
	log.Printf("GraphQL endpoint available at /api/v1/graphql")
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
