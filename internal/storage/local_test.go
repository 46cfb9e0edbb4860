package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docanalyzer/internal/config"
)

func newTestLocal(t *testing.T) Storage {
	t.Helper()
	st, err := NewLocal(config.StorageConfig{Driver: "local", LocalDir: t.TempDir()})
	require.NoError(t, err)
	return st
}

func TestNewLocal(t *testing.T) {
	t.Run("creates missing base directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "uploads")
		_, err := NewLocal(config.StorageConfig{LocalDir: dir})
		require.NoError(t, err)

		st, statErr := os.Stat(dir)
		require.NoError(t, statErr)
		assert.True(t, st.IsDir())
	})

	t.Run("empty dir is rejected", func(t *testing.T) {
		_, err := NewLocal(config.StorageConfig{})
		assert.Error(t, err)
	})
}

func TestLocalPutGetDelete(t *testing.T) {
	st := newTestLocal(t)
	ctx := context.Background()

	content := "hello upload"
	info, err := st.Put(ctx, "documents/abc.pdf", strings.NewReader(content), PutObjectOptions{
		Size:        int64(len(content)),
		ContentType: "application/pdf",
	})
	require.NoError(t, err)
	// Size comes from bytes written, not the declared option.
	assert.Equal(t, int64(len(content)), info.Size)
	assert.Equal(t, "documents/abc.pdf", info.Key)

	rc, getInfo, err := st.Get(ctx, "documents/abc.pdf")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
	assert.Equal(t, int64(len(content)), getInfo.Size)

	require.NoError(t, st.Delete(ctx, "documents/abc.pdf"))

	_, _, err = st.Get(ctx, "documents/abc.pdf")
	assert.Error(t, err)
}

func TestLocalDeleteMissingIsNil(t *testing.T) {
	st := newTestLocal(t)
	assert.NoError(t, st.Delete(context.Background(), "documents/never-there.pdf"))
}

func TestLocalPresignUnsupported(t *testing.T) {
	st := newTestLocal(t)
	_, err := st.PresignGet(context.Background(), "documents/abc.pdf", 0)
	assert.Error(t, err)
}
