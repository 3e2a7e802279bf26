package keystore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProvider_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "license.key")
	p := NewFileProvider(path)
	ctx := context.Background()

	_, err := p.Load(ctx)
	require.ErrorIs(t, err, ErrKeyNotFound)

	key := bytes.Repeat([]byte{0xab}, 32)
	require.NoError(t, p.Store(ctx, key))

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, key, got)

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestFileProvider_StoreNeverOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "license.key")
	p := NewFileProvider(path)
	ctx := context.Background()

	first := bytes.Repeat([]byte{1}, 32)
	require.NoError(t, p.Store(ctx, first))
	require.ErrorIs(t, p.Store(ctx, bytes.Repeat([]byte{2}, 32)), ErrKeyExists)

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestFileProvider_BadContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "license.key")
	require.NoError(t, os.WriteFile(path, []byte("not hex"), 0o600))

	_, err := NewFileProvider(path).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)
}

func TestFileProvider_WithLoadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "license.key")

	k1, err := LoadOrCreate(context.Background(), NewFileProvider(path))
	require.NoError(t, err)

	// a restart sees the same key
	k2, err := LoadOrCreate(context.Background(), NewFileProvider(path))
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
}

func TestPassphraseProvider(t *testing.T) {
	_, err := NewPassphraseProvider("", "salt")
	require.Error(t, err)

	p, err := NewPassphraseProvider("correct horse", "pepper")
	require.NoError(t, err)

	k1, err := LoadOrCreate(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, k1, 32)

	p2, _ := NewPassphraseProvider("correct horse", "pepper")
	k2, err := p2.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, k1, k2)

	p3, _ := NewPassphraseProvider("another", "pepper")
	k3, _ := p3.Load(context.Background())
	assert.NotEqual(t, k1, k3)
}
