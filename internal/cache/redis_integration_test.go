package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_Integration(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	c, err := NewRedis(ctx, url)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	key := "ats:test:" + uuid.NewString()
	defer func() { _ = c.Delete(ctx, key) }()

	var got payload
	ok, err := c.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, key, payload{Score: 40, Terms: []string{"sql"}}, time.Minute))
	ok, err = c.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 40.0, got.Score)
}

func TestNewRedis_BadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not-a-url")
	assert.Error(t, err)
}
