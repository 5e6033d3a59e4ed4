package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillnet/skillnet/internal/core/ports"
)

func exerciseStore(t *testing.T, s ports.TokenStore) {
	t.Helper()
	ctx := context.Background()

	tok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, s.Save(ctx, "tok-1"))
	require.NoError(t, s.Save(ctx, "tok-2"))
	tok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))
	tok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	exerciseStore(t, NewFile(path))
}

func TestFile_PermissionsAndFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	f := NewFile(path)
	require.NoError(t, f.Save(context.Background(), "secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"skillnet_token":"secret"}`, string(raw))
}

func TestFile_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := NewFile(path).Load(context.Background())
	assert.Error(t, err)
}
