package ratelimit

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := LoadConfig(envMap(nil))
		assert.True(t, cfg.Enabled)
		assert.Equal(t, 1000, cfg.DefaultLimit)
		assert.Equal(t, time.Minute, cfg.DefaultWindow)
		assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
		assert.Empty(t, cfg.Whitelist)
		assert.Equal(t, DefaultTiers(), cfg.Tiers)
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := LoadConfig(envMap(map[string]string{"RATE_LIMIT_ENABLED": "false"}))
		assert.False(t, cfg.Enabled)
		assert.Nil(t, cfg.Tiers)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg := LoadConfig(envMap(map[string]string{
			"RATE_LIMIT_DEFAULT_LIMIT":    "50",
			"RATE_LIMIT_DEFAULT_WINDOW":   "10s",
			"RATE_LIMIT_CLEANUP_INTERVAL": "bogus",
			"RATE_LIMIT_WHITELIST":        " 10.0.0.1, ,10.0.0.2 ",
			"RATE_LIMIT_BLACKLIST":        "192.168.1.5",
		}))
		assert.Equal(t, 50, cfg.DefaultLimit)
		assert.Equal(t, 10*time.Second, cfg.DefaultWindow)
		assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
		assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
		assert.True(t, cfg.Blacklist["192.168.1.5"])
	})
}

func TestMatchTier(t *testing.T) {
	tiers := DefaultTiers()
	tests := []struct {
		path   string
		method string
		want   string
	}{
		{path: "/health", method: http.MethodGet, want: "health"},
		{path: "/analyze", method: http.MethodPost, want: "analysis"},
		{path: "/analyze/stream", method: http.MethodPost, want: "analysis"},
		{path: "/analyze-resume", method: http.MethodPost, want: "upload"},
		{path: "/keywords", method: http.MethodPost, want: "compute"},
		{path: "/reports/r1/j1", method: http.MethodGet, want: "export"},
		{path: "/runs/abc", method: http.MethodDelete, want: "delete"},
		{path: "/runs/abc", method: http.MethodGet, want: ""},
		{path: "/analyze", method: http.MethodGet, want: ""},
		{path: "/health", method: http.MethodPost, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchTier(tt.path, tt.method, tiers)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestMatchTier_LongestPrefix(t *testing.T) {
	tiers := []Tier{
		{Name: "short", Path: "/a/", Method: http.MethodGet},
		{Name: "long", Path: "/a/b/", Method: http.MethodGet},
	}
	assert.Equal(t, "long", MatchTier("/a/b/c", http.MethodGet, tiers).Name)
	assert.Equal(t, "short", MatchTier("/a/c", http.MethodGet, tiers).Name)
}
