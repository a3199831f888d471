package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clearEnv unsets every config variable so one test's settings cannot
// leak into another.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvAPIKey, EnvEndpoint, EnvRequestLimit,
		EnvMaxPages, EnvCacheTTL, EnvDisabledTools,
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_RequiresAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), EnvAPIKey)
}

func TestLoad_DefaultsWhenOnlyKeySet(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "lin_api_abc123")

	cfg, err := Load()
	require.NoError(t, err)

	def := DefaultConfig()
	require.Equal(t, "lin_api_abc123", cfg.APIKey)
	require.Empty(t, cfg.Endpoint)
	require.Equal(t, def.RequestLimit, cfg.RequestLimit)
	require.Equal(t, def.MaxPages, cfg.MaxPages)
	require.Equal(t, def.CacheTTL, cfg.CacheTTL)
	require.Empty(t, cfg.DisabledTools)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "lin_api_abc123")
	t.Setenv(EnvEndpoint, "http://localhost:8089/graphql")
	t.Setenv(EnvRequestLimit, "25")
	t.Setenv(EnvMaxPages, "2")
	t.Setenv(EnvCacheTTL, "90s")
	t.Setenv(EnvDisabledTools, "linear_add_comment, linear_update_issue,,")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8089/graphql", cfg.Endpoint)
	require.Equal(t, 25, cfg.RequestLimit)
	require.Equal(t, 2, cfg.MaxPages)
	require.Equal(t, 90*time.Second, cfg.CacheTTL)
	require.Equal(t, []string{"linear_add_comment", "linear_update_issue"}, cfg.DisabledTools)
}

func TestLoad_RejectsBadNumbers(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric limit", EnvRequestLimit, "many"},
		{"zero limit", EnvRequestLimit, "0"},
		{"negative pages", EnvMaxPages, "-1"},
		{"bad duration", EnvCacheTTL, "5 minutes"},
		{"negative duration", EnvCacheTTL, "-1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvAPIKey, "lin_api_abc123")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestKeyLooksNonPersonal(t *testing.T) {
	require.False(t, (&Config{APIKey: "lin_api_abc123"}).KeyLooksNonPersonal())
	require.True(t, (&Config{APIKey: "lin_oauth_xyz"}).KeyLooksNonPersonal())
	require.True(t, (&Config{APIKey: "abc123"}).KeyLooksNonPersonal())
}

func TestSplitList(t *testing.T) {
	require.Nil(t, splitList(""))
	require.Nil(t, splitList(" , ,"))
	require.Equal(t, []string{"a", "b"}, splitList(" a ,b"))
}
