package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("WAF_LOG_GROUP_NAME", "aws-waf-logs-aetherdrone")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "aws-waf-logs-aetherdrone", cfg.WafLogGroupName)
	require.Equal(t, "us-east-1", cfg.WafLogsRegion)
	require.Equal(t, time.Hour, cfg.QueryWindow)
	require.Equal(t, time.Second, cfg.PollInterval)
	require.Equal(t, 30, cfg.PollMaxAttempts)
	require.Equal(t, 45*time.Second, cfg.PollBudget)

	spec, err := cfg.EdgeCodeSpec()
	require.NoError(t, err)
	require.Equal(t, "YYZ50", spec.Extract("abcd1234-YYZ50-xyz"))
}

func TestLoadConfig_MissingLogGroup(t *testing.T) {
	t.Setenv("WAF_LOG_GROUP_NAME", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("WAF_LOG_GROUP_NAME", "aws-waf-logs-aetherdrone")
	t.Setenv("WAF_QUERY_POLL_INTERVAL", "250ms")
	t.Setenv("WAF_QUERY_POLL_MAX_ATTEMPTS", "8")
	t.Setenv("EDGE_CODE_PATTERN", `^\d{4}$`)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	require.Equal(t, 8, cfg.PollMaxAttempts)

	spec, err := cfg.EdgeCodeSpec()
	require.NoError(t, err)
	require.Equal(t, "5150", spec.Extract("ab-5150-cd"))
}

func TestLoadConfig_RejectsNonPositiveBounds(t *testing.T) {
	t.Setenv("WAF_LOG_GROUP_NAME", "aws-waf-logs-aetherdrone")
	t.Setenv("WAF_QUERY_POLL_MAX_ATTEMPTS", "0")

	_, err := LoadConfig()
	require.Error(t, err)
}
