package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RigelNana/arkstudy/services/admin-service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSinkSaveRemove(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewLocalSink(dir)
	require.NoError(t, err)

	ctx := context.Background()
	key, err := sink.Save(ctx, "materials", "Chapter 1.PDF", strings.NewReader("%PDF-1.4"), 8, "application/pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "materials/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.NotContains(t, key, "Chapter")

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, sink.Remove(ctx, key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))

	// 重复删除不报错
	assert.NoError(t, sink.Remove(ctx, key))
	assert.Error(t, sink.Remove(ctx, "../outside"))
}

func TestLocalSinkUniqueNames(t *testing.T) {
	sink, err := NewLocalSink(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	a, err := sink.Save(ctx, "", "same.pdf", strings.NewReader("a"), 1, "application/pdf")
	require.NoError(t, err)
	b, err := sink.Save(ctx, "", "same.pdf", strings.NewReader("b"), 1, "application/pdf")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewSinkUnknownBackend(t *testing.T) {
	_, err := NewSink(context.Background(), config.UploadConfig{Backend: "ftp"}, config.MinIOConfig{})
	assert.ErrorContains(t, err, "unsupported upload backend")

	sink, err := NewSink(context.Background(), config.UploadConfig{Backend: "local", Dir: t.TempDir()}, config.MinIOConfig{})
	require.NoError(t, err)
	assert.IsType(t, &LocalSink{}, sink)
}
