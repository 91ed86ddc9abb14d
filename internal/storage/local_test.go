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

func newLocal(t *testing.T) (*LocalService, string) {
	t.Helper()
	root := t.TempDir()
	svc, err := NewLocalService(root)
	require.NoError(t, err)
	return svc, root
}

func TestLocalPutAndExists(t *testing.T) {
	svc, root := newLocal(t)
	ctx := context.Background()

	url, err := svc.Put(ctx, "notes.pdf", "application/pdf", strings.NewReader("content"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/notes.pdf", url)

	data, err := os.ReadFile(filepath.Join(root, "notes.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	exists, err := svc.Exists(ctx, "notes.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.Exists(ctx, "missing.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalPutStripsDirectories(t *testing.T) {
	svc, root := newLocal(t)

	url, err := svc.Put(context.Background(), "../../etc/passwd.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/passwd.png", url)

	_, err = os.Stat(filepath.Join(root, "passwd.png"))
	assert.NoError(t, err)
}

func TestLocalDelete(t *testing.T) {
	svc, _ := newLocal(t)
	ctx := context.Background()

	_, err := svc.Put(ctx, "a.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "a.png"))
	assert.ErrorIs(t, svc.Delete(ctx, "a.png"), os.ErrNotExist)
}

func TestLocalList(t *testing.T) {
	svc, _ := newLocal(t)
	ctx := context.Background()

	_, err := svc.Put(ctx, "a.png", "image/png", strings.NewReader("aa"))
	require.NoError(t, err)
	_, err = svc.Put(ctx, "b.pdf", "application/pdf", strings.NewReader("bbb"))
	require.NoError(t, err)

	objects, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, objects, 2)

	sizes := map[string]int64{}
	for _, obj := range objects {
		sizes[obj.Key] = obj.Size
		assert.NotNil(t, obj.LastModified)
	}
	assert.Equal(t, int64(2), sizes["a.png"])
	assert.Equal(t, int64(3), sizes["b.pdf"])
}

func TestLocalRequiresRoot(t *testing.T) {
	_, err := NewLocalService("")
	assert.Error(t, err)
}
