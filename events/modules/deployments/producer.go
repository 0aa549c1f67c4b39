package deployments

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/ortelius/ado-backend/model"
)

// DeploymentProducer publishes deployment lifecycle events to Kafka. It is
// the stakeholder notification path for completed and rolled-back runs.
type DeploymentProducer struct {
	Writer *kafka.Writer
}

// NewDeploymentProducer initializes a new Kafka writer for deployment events
func NewDeploymentProducer(brokers []string, topic string) *DeploymentProducer {
	return &DeploymentProducer{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// DeploymentCompleted publishes the completion event for a successful run.
func (p *DeploymentProducer) DeploymentCompleted(ctx context.Context, result model.OrchestrationResult) error {
	event := DeploymentCompletedEvent{
		EventType:     "deployment.completed",
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		DeploymentID:  result.DeploymentID,
		Environment:   result.Context.Environment,
		Version:       result.Context.ApplicationVersion,
		Strategy:      result.DeploymentStrategy,
		Decision:      result.Decision,
		Predicted:     result.PredictedMetrics,
	}

	return p.publish(ctx, result.DeploymentID, event)
}

// DeploymentRolledBack publishes the rollback notification event.
func (p *DeploymentProducer) DeploymentRolledBack(ctx context.Context, result model.OrchestrationResult, plan model.RollbackPlan) error {
	event := DeploymentRolledBackEvent{
		EventType:     "deployment.rolled_back",
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		DeploymentID:  result.DeploymentID,
		Environment:   result.Context.Environment,
		FailedStage:   result.FailedStage,
		Plan:          plan,
	}

	return p.publish(ctx, result.DeploymentID, event)
}

func (p *DeploymentProducer) publish(ctx context.Context, key string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

// Close cleans up the Kafka writer
func (p *DeploymentProducer) Close() error {
	return p.Writer.Close()
}
