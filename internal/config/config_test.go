package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	require.True(t, cfg.Enabled)
	require.Equal(t, map[string]bool{"GET": true}, cfg.Methods)
	require.Equal(t, 30*time.Second, cfg.TTL)
	require.Equal(t, "route_query", cfg.KeyStrategy)
	require.Equal(t, "cache", cfg.Prefix)
	require.Equal(t, 1048576, cfg.MaxBodyBytes)
}

func TestLoadCacheConfigOverrides(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "2m")

	cfg := LoadCacheConfig()
	require.False(t, cfg.Enabled)
	require.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
	require.Equal(t, 2*time.Minute, cfg.TTL)
}

func TestParseDurFallback(t *testing.T) {
	require.Equal(t, time.Second, parseDur("garbage"))
	require.Equal(t, 90*time.Second, parseDur("1m30s"))
}

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	require.True(t, cfg.Enabled)
	require.Equal(t, 60, cfg.Capacity)
	require.Equal(t, 1, cfg.RefillTokens)
	require.Equal(t, time.Second, cfg.RefillInterval)
	require.Equal(t, 10*time.Minute, cfg.TTL)
	require.Equal(t, "ip_user_route", cfg.KeyStrategy)
	require.Equal(t, "rl", cfg.Prefix)
	require.False(t, cfg.Debug)
}

func TestLoadRateLimitConfigOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_CAPACITY", "5")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "250ms")
	t.Setenv("RATE_LIMIT_CAPACITY_BAD", "x") // unrelated keys are ignored

	cfg := LoadRateLimitConfig()
	require.False(t, cfg.Enabled)
	require.Equal(t, 5, cfg.Capacity)
	require.Equal(t, 250*time.Millisecond, cfg.RefillInterval)
}

func TestEnvHelpersIgnoreInvalid(t *testing.T) {
	t.Setenv("X_INT", "not-a-number")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "soon")

	require.Equal(t, 7, envInt("X_INT", 7))
	require.True(t, envBool("X_BOOL", true))
	require.Equal(t, time.Minute, envDur("X_DUR", time.Minute))
}
