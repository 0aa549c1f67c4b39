// Package config loads the deployment pipeline configuration: the stage
// descriptors the orchestrator is allowed to run, the named decision rules
// consumed by the decision engine, and the production monitoring tunables.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// ErrStageNotConfigured is returned when the orchestrator plans a stage that
// has no matching descriptor. This is a fatal configuration error for the
// run: nothing executes and no rollback is needed.
var ErrStageNotConfigured = fmt.Errorf("stage not configured in deployment pipeline")

// StageDescriptor names one pipeline stage. Ordering is implied by position
// in the stages list.
type StageDescriptor struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// DecisionRule is a named approval override evaluated before the default
// threshold logic. Condition is a predicate expression over the engine's
// sub-scores (see the decision package for the grammar).
type DecisionRule struct {
	Name       string  `yaml:"name"`
	Condition  string  `yaml:"condition"`
	Confidence float64 `yaml:"confidence"`
}

// Monitoring holds the production monitoring loop tunables.
type Monitoring struct {
	WindowSeconds   int `yaml:"window_seconds"`
	IntervalSeconds int `yaml:"interval_seconds"`
}

// Window returns the total monitoring window as a duration.
func (m Monitoring) Window() time.Duration {
	return time.Duration(m.WindowSeconds) * time.Second
}

// Interval returns the sampling interval as a duration.
func (m Monitoring) Interval() time.Duration {
	return time.Duration(m.IntervalSeconds) * time.Second
}

// Config is the full pipeline configuration consumed by the orchestrator and
// the decision engine.
type Config struct {
	Pipeline struct {
		Stages []StageDescriptor `yaml:"stages"`
	} `yaml:"deployment_pipeline"`

	AutonomousDecisions struct {
		DeploymentApproval []DecisionRule `yaml:"deployment_approval"`
	} `yaml:"autonomous_decisions"`

	Monitoring Monitoring `yaml:"monitoring"`
}

// Default returns the built-in configuration: every known stage enabled, the
// single high-confidence approval rule, and the 300s/10s monitoring window.
func Default() *Config {
	cfg := &Config{}
	for _, name := range []string{
		"validation", "build", "test",
		"deploy-development", "deploy-staging", "deploy-production",
		"monitoring",
	} {
		cfg.Pipeline.Stages = append(cfg.Pipeline.Stages, StageDescriptor{Name: name})
	}
	cfg.AutonomousDecisions.DeploymentApproval = []DecisionRule{
		{Name: "high-confidence", Condition: "overall_score >= 0.85", Confidence: 0.95},
	}
	cfg.Monitoring = Monitoring{WindowSeconds: 300, IntervalSeconds: 10}
	return cfg
}

// Load reads and parses a YAML pipeline configuration file. Monitoring
// tunables fall back to the defaults when omitted.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline config %s: %w", path, err)
	}

	if cfg.Monitoring.WindowSeconds <= 0 {
		cfg.Monitoring.WindowSeconds = 300
	}
	if cfg.Monitoring.IntervalSeconds <= 0 {
		cfg.Monitoring.IntervalSeconds = 10
	}

	return &cfg, nil
}

// HasStage reports whether a stage descriptor with the given name exists.
func (c *Config) HasStage(name string) bool {
	for _, s := range c.Pipeline.Stages {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Descriptor returns the stage descriptor for name, or
// ErrStageNotConfigured when the pipeline does not define it.
func (c *Config) Descriptor(name string) (StageDescriptor, error) {
	for _, s := range c.Pipeline.Stages {
		if s.Name == name {
			return s, nil
		}
	}
	return StageDescriptor{}, fmt.Errorf("%w: %s", ErrStageNotConfigured, name)
}
