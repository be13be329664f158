// internal/services/storage_service_test.go
package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musichub/musichub-backend/internal/config"
)

// smallest valid PNG header plus padding
var pngBytes = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}, make([]byte, 32)...)

func newLocalStorage(t *testing.T, maxMB int) *StorageService {
	t.Helper()
	svc, err := NewStorageService(&config.Config{
		Storage: config.StorageConfig{
			LocalPath:     t.TempDir(),
			PublicBaseURL: "/uploads/",
			MaxUploadMB:   maxMB,
		},
	})
	require.NoError(t, err)
	return svc
}

func TestUploadImageToLocalDisk(t *testing.T) {
	ctx := context.Background()
	svc := newLocalStorage(t, 1)

	result, err := svc.UploadImage(ctx, FolderAlbumCovers, bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, "image/png", result.MimeType)
	assert.Equal(t, int64(len(pngBytes)), result.Size)
	assert.Equal(t, "/uploads/"+result.Key, result.URL)
	assert.Equal(t, ".png", filepath.Ext(result.Key))

	stored := filepath.Join(svc.config.Storage.LocalPath, filepath.FromSlash(result.Key))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)

	again, err := svc.UploadImage(ctx, FolderAlbumCovers, bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, result.Key, again.Key)

	require.NoError(t, svc.DeleteFile(ctx, result.Key))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, svc.DeleteFile(ctx, result.Key))
}

func TestUploadImageRejections(t *testing.T) {
	ctx := context.Background()
	svc := newLocalStorage(t, 1)

	_, err := svc.UploadImage(ctx, FolderBeatArtwork, bytes.NewReader([]byte("plain text, not a picture")))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	big := append(append([]byte{}, pngBytes...), make([]byte, 1024*1024)...)
	_, err = svc.UploadImage(ctx, FolderBeatArtwork, bytes.NewReader(big))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}
