package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server only when SKILLNET_TEST_REDIS_ADDR is set.
func TestTokenStore(t *testing.T) {
	addr := os.Getenv("SKILLNET_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SKILLNET_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	client, err := Connect(ctx, Config{Addr: addr, DB: 15, Timeout: 2 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	s := NewTokenStore(client, time.Minute)
	require.NoError(t, s.Clear(ctx))

	tok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, s.Save(ctx, "tok"))
	tok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)

	ttl, err := client.TTL(ctx, TokenKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, s.Clear(ctx))
	tok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}

func TestConnect_UnreachableNamesAddress(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}
