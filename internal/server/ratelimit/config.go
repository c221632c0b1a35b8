package ratelimit

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Tier is a rate limit applied to a group of endpoints. Endpoints with the
// same Name share one bucket per client.
type Tier struct {
	Name   string
	Path   string // exact path, or a prefix when it ends in "/"
	Method string
	Limit  int           // requests per Window; 0 means unlimited
	Window time.Duration
	Burst  int // bucket capacity, defaults to Limit
}

// LoadConfig reads RATE_LIMIT_* variables through getenv, which defaults to os.Getenv.
func LoadConfig(getenv func(string) string) *Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	env := envReader(getenv)

	if !env.bool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.int("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   env.duration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(getenv("RATE_LIMIT_BLACKLIST")),
		Tiers:           DefaultTiers(),
	}
}

// DefaultTiers returns the limits of the analysis API.
func DefaultTiers() []Tier {
	compute := func(path string) Tier {
		return Tier{Name: "compute", Path: path, Method: http.MethodPost, Limit: 300, Window: time.Minute, Burst: 20}
	}
	return []Tier{
		// Full pipeline runs and uploads
		{Name: "analysis", Path: "/analyze", Method: http.MethodPost, Limit: 30, Window: time.Hour, Burst: 5},
		{Name: "analysis", Path: "/analyze/stream", Method: http.MethodPost, Limit: 30, Window: time.Hour, Burst: 5},
		{Name: "upload", Path: "/analyze-resume", Method: http.MethodPost, Limit: 60, Window: time.Hour, Burst: 10},

		// Single stages
		compute("/process-job-description"),
		compute("/keywords"),
		compute("/calculate-score"),
		compute("/recommendations"),

		{Name: "export", Path: "/reports/", Method: http.MethodGet, Limit: 60, Window: time.Minute, Burst: 10},
		{Name: "delete", Path: "/runs/", Method: http.MethodDelete, Limit: 100, Window: time.Minute, Burst: 10},
		// Reads fall through to the default limit; GET /health is unlimited.
	}
}

type envReader func(string) string

func (e envReader) int(key string, def int) int {
	if v, err := strconv.Atoi(e(key)); err == nil {
		return v
	}
	return def
}

func (e envReader) bool(key string, def bool) bool {
	if v, err := strconv.ParseBool(e(key)); err == nil {
		return v
	}
	return def
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(e(key)); err == nil {
		return v
	}
	return def
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
