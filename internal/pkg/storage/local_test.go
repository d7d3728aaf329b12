package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadExistsDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/storage/")
	require.NoError(t, err)

	key, err := s.Upload(ctx, strings.NewReader("jpeg bytes"), "attendance/2025-03-03/a.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "attendance/2025-03-03/a.jpg", key)

	content, err := os.ReadFile(filepath.Join(s.BasePath(), "attendance", "2025-03-03", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(content))

	ok, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:8080/storage/attendance/2025-03-03/a.jpg", s.URL(key))

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key), "deleting twice is fine")

	ok, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://x")
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), strings.NewReader("x"), "../../etc/passwd", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)

	assert.ErrorIs(t, s.Delete(context.Background(), "../outside"), ErrInvalidPath)
}
