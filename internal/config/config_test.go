package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"port": 9090,
		"database_url": "postgres://localhost/ats",
		"cache_ttl": "30m",
		"max_upload_size": 2048,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/ats", cfg.DatabaseURL)
	assert.Equal(t, "30m", cfg.CacheTTL)
	assert.Equal(t, int64(2048), cfg.MaxUploadSize)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestApplyEnv(t *testing.T) {
	cfg := Config{Port: 1, LogLevel: "warn"}
	err := cfg.ApplyEnv(envMap(map[string]string{
		"PORT":            "8080",
		"DATABASE_URL":    "postgres://db/ats",
		"REDIS_URL":       "redis://cache:6379/0",
		"CACHE_TTL":       "2h",
		"MAX_UPLOAD_SIZE": "1024",
		"LOG_FORMAT":      "pretty",
		"DICTIONARY_PATH": "dict.yaml",
	}))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres://db/ats", cfg.DatabaseURL)
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
	assert.Equal(t, "2h", cfg.CacheTTL)
	assert.Equal(t, int64(1024), cfg.MaxUploadSize)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.Equal(t, "dict.yaml", cfg.DictionaryPath)
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "port", env: map[string]string{"PORT": "http"}, want: "PORT"},
		{name: "upload size", env: map[string]string{"MAX_UPLOAD_SIZE": "10MB"}, want: "MAX_UPLOAD_SIZE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{}
			err := cfg.ApplyEnv(envMap(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	dict := filepath.Join(t.TempDir(), "dict.yaml")
	require.NoError(t, os.WriteFile(dict, []byte("technical_skills: []\n"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Default()},
		{name: "empty", cfg: Config{}},
		{name: "existing dictionary", cfg: Config{DictionaryPath: dict}},
		{name: "negative port", cfg: Config{Port: -1}, wantErr: "'port'"},
		{name: "port too large", cfg: Config{Port: 70000}, wantErr: "'port'"},
		{name: "negative upload size", cfg: Config{MaxUploadSize: -5}, wantErr: "'max_upload_size'"},
		{name: "bad ttl", cfg: Config{CacheTTL: "one day"}, wantErr: "'cache_ttl'"},
		{name: "bad format", cfg: Config{LogFormat: "xml"}, wantErr: "'log_format'"},
		{name: "bad level", cfg: Config{LogLevel: "loud"}, wantErr: "'log_level'"},
		{name: "missing dictionary", cfg: Config{DictionaryPath: "/nonexistent/dict.yaml"}, wantErr: "dictionary file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 9000, LogLevel: "debug"}
	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "debug", merged.LogLevel)
	assert.Equal(t, DefaultLogFormat, merged.LogFormat)
	assert.Equal(t, DefaultCacheTTL, merged.CacheTTL)
	assert.Equal(t, int64(DefaultMaxUploadSize), merged.MaxUploadSize)

	// Original is unchanged
	assert.Empty(t, cfg.LogFormat)
}

func TestCacheDuration(t *testing.T) {
	d, err := (&Config{CacheTTL: "90s"}).CacheDuration()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	d, err = (&Config{}).CacheDuration()
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = (&Config{CacheTTL: "soon"}).CacheDuration()
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"port": 9000, "log_level": "debug"}`), 0644))

	cfg, err := Load(tmpFile, envMap(map[string]string{"PORT": "7000"}))
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)

	cfg, err = Load("", envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load("", envMap(map[string]string{"CACHE_TTL": "later"}))
	assert.Error(t, err)
}
