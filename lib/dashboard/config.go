package dashboard

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config is the Lambda runtime configuration, parsed from the function
// environment. The poll knobs exist so the bounded wait in ThreatCounter
// stays tunable per deployment instead of being baked into the binary.
type Config struct {
	// WafLogGroupName is the CloudWatch log group receiving WAF logs.
	WafLogGroupName string `env:"WAF_LOG_GROUP_NAME" validate:"required"`
	// WafLogsRegion is where that log group lives. CloudFront WAF logs
	// are always delivered to us-east-1 regardless of the stack region.
	WafLogsRegion string `env:"WAF_LOGS_REGION" envDefault:"us-east-1" validate:"required"`

	// QueryWindow is the trailing interval the block count covers.
	QueryWindow time.Duration `env:"WAF_QUERY_WINDOW" envDefault:"1h" validate:"gt=0"`
	// PollInterval is the delay between query status checks.
	PollInterval time.Duration `env:"WAF_QUERY_POLL_INTERVAL" envDefault:"1s" validate:"gt=0"`
	// PollMaxAttempts bounds the number of status checks per query.
	PollMaxAttempts int `env:"WAF_QUERY_POLL_MAX_ATTEMPTS" envDefault:"30" validate:"gt=0"`
	// PollBudget bounds the total wall-clock time spent waiting.
	PollBudget time.Duration `env:"WAF_QUERY_POLL_BUDGET" envDefault:"45s" validate:"gt=0"`

	// EdgeCodeDelimiter and EdgeCodePattern describe how the POP code is
	// embedded in the trace header; see EdgeCodeSpec.
	EdgeCodeDelimiter string `env:"EDGE_CODE_DELIMITER" envDefault:"-" validate:"required"`
	EdgeCodePattern   string `env:"EDGE_CODE_PATTERN" envDefault:"^[A-Z]{3}\\d{1,3}$" validate:"required"`
}

// LoadConfig parses and validates the configuration from the process
// environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validating configuration: %w", err)
	}
	return cfg, nil
}

// EdgeCodeSpec compiles the configured edge-code convention.
func (c Config) EdgeCodeSpec() (EdgeCodeSpec, error) {
	return ParseEdgeCodeSpec(c.EdgeCodeDelimiter, c.EdgeCodePattern)
}
