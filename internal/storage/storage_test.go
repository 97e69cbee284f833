package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/Chamas111/booking-airbnb/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewObjectName(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{13}-[0-9a-v]{20}\.png$`)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		name := NewObjectName(".png")
		assert.Regexp(t, pattern, name)
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
}

func TestExtFromFilename(t *testing.T) {
	tests := map[string]string{
		"photo.PNG":      ".png",
		"archive.tar.gz": ".gz",
		"noext":          ".jpg",
		"":               ".jpg",
		"trailing.":      ".jpg",
	}

	for in, want := range tests {
		assert.Equal(t, want, ExtFromFilename(in), in)
	}
}

func TestLocalStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	ctx := context.Background()

	ref, err := store.UploadImage(ctx, ".gif", "image/gif", bytes.NewReader([]byte("GIF89a")), 6)
	require.NoError(t, err)
	assert.Equal(t, ".gif", filepath.Ext(ref))
	assert.Equal(t, ref, filepath.Base(ref))

	data, err := os.ReadFile(filepath.Join(dir, ref))
	require.NoError(t, err)
	assert.Equal(t, "GIF89a", string(data))

	require.NoError(t, store.DeleteImage(ctx, ref))
	_, err = os.Stat(filepath.Join(dir, ref))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	// deleting twice is fine
	assert.NoError(t, store.DeleteImage(ctx, ref))
}

func TestLocalStorage_CancelledContext(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.UploadImage(ctx, ".jpg", "image/jpeg", bytes.NewReader(nil), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestLocalStorage_WriteFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = store.UploadImage(context.Background(), ".jpg", "image/jpeg", failingReader{}, 10)
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMinIOClient_References(t *testing.T) {
	m := &MinIOClient{config: config.MinIO{PublicURL: "http://localhost:9000", BucketName: "photos"}}

	url := m.objectURL("1-abc.jpg")
	assert.Equal(t, "http://localhost:9000/photos/1-abc.jpg", url)
	assert.Equal(t, "1-abc.jpg", m.objectName(url))
	assert.Equal(t, "1-abc.jpg", m.objectName("1-abc.jpg"))
}
