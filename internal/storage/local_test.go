package storage

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOutbox(t *testing.T) *LocalOutbox {
	t.Helper()
	outbox, err := NewLocalOutbox(LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8080/outbox",
	}, testLogger())
	require.NoError(t, err)
	return outbox
}

func TestLocalOutbox_PutGetRoundTrip(t *testing.T) {
	outbox := newTestOutbox(t)
	ctx := context.Background()

	content := []byte("%PDF-1.4 conteúdo")
	err := outbox.Put(ctx, "oficio.pdf", bytes.NewReader(content), PutOptions{ContentType: "application/pdf"})
	require.NoError(t, err)

	rc, info, err := outbox.Get(ctx, "oficio.pdf")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.Equal(t, int64(len(content)), info.Size)
	assert.Equal(t, "application/pdf", info.ContentType)
}

func TestLocalOutbox_PutRespectsOverwriteFlag(t *testing.T) {
	outbox := newTestOutbox(t)
	ctx := context.Background()

	require.NoError(t, outbox.Put(ctx, "doc.json", strings.NewReader("v1"), PutOptions{}))

	err := outbox.Put(ctx, "doc.json", strings.NewReader("v2"), PutOptions{})
	assert.True(t, IsKeyExists(err))

	require.NoError(t, outbox.Put(ctx, "doc.json", strings.NewReader("v2"), PutOptions{Overwrite: true}))

	rc, _, err := outbox.Get(ctx, "doc.json")
	require.NoError(t, err)
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	assert.Equal(t, "v2", string(got))
}

func TestLocalOutbox_PutEnforcesMaxSize(t *testing.T) {
	outbox := newTestOutbox(t)
	ctx := context.Background()

	err := outbox.Put(ctx, "grande.bin", strings.NewReader("123456789"), PutOptions{MaxSize: 4})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooLarge)

	// The oversized partial write is cleaned up.
	exists, err := outbox.Exists(ctx, "grande.bin")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalOutbox_RejectsTraversalKeys(t *testing.T) {
	outbox := newTestOutbox(t)
	ctx := context.Background()

	for _, key := range []string{"", "../fora.txt", "a/../../fora.txt"} {
		err := outbox.Put(ctx, key, strings.NewReader("x"), PutOptions{})
		assert.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
	}
}

func TestLocalOutbox_DeleteIsIdempotent(t *testing.T) {
	outbox := newTestOutbox(t)
	ctx := context.Background()

	require.NoError(t, outbox.Put(ctx, "doc.txt", strings.NewReader("x"), PutOptions{}))
	require.NoError(t, outbox.Delete(ctx, "doc.txt"))
	require.NoError(t, outbox.Delete(ctx, "doc.txt"))

	exists, err := outbox.Exists(ctx, "doc.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalOutbox_GetMissingKey(t *testing.T) {
	outbox := newTestOutbox(t)

	_, _, err := outbox.Get(context.Background(), "nada.pdf")
	assert.True(t, IsNotFound(err))
}

func TestLocalOutbox_URL(t *testing.T) {
	outbox := newTestOutbox(t)

	url, err := outbox.URL(context.Background(), "oficio.pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/outbox/oficio.pdf", url)
}
