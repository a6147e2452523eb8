package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk full") }

func TestFSStorage_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	s := NewFSStorage(fsys)

	require.NoError(t, s.Save(ctx, "assets/u1/a1/doc.pdf", strings.NewReader("%PDF-1.4 hello")))

	rc, err := s.Open(ctx, "assets/u1/a1/doc.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.4 hello", string(data))

	require.NoError(t, s.Delete(ctx, "assets/u1/a1/doc.pdf"))
	_, err = s.Open(ctx, "assets/u1/a1/doc.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestFSStorage_SaveFailureLeavesNothing(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	s := NewFSStorage(fsys)

	err := s.Save(ctx, "assets/u1/a1/broken.pdf", failingReader{})
	require.Error(t, err)

	exists, err := afero.Exists(fsys, "assets/u1/a1/broken.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = afero.Exists(fsys, "assets/u1/a1/broken.pdf.part")
	require.NoError(t, err)
	assert.False(t, exists, "temporary file should be cleaned up")
}

func TestFSStorage_DeleteMissingIsNoop(t *testing.T) {
	s := NewFSStorage(afero.NewMemMapFs())
	assert.NoError(t, s.Delete(context.Background(), "nope/missing.png"))
}

func TestFSStorage_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewFSStorage(afero.NewMemMapFs())

	require.NoError(t, s.Save(ctx, "a/b.txt", strings.NewReader("first")))
	require.NoError(t, s.Save(ctx, "a/b.txt", strings.NewReader("second")))

	rc, err := s.Open(ctx, "a/b.txt")
	require.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "second", string(data))
}

func TestFSStorage_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewFSStorage(afero.NewMemMapFs())

	assert.ErrorIs(t, s.Save(ctx, "x.txt", strings.NewReader("x")), context.Canceled)
}
