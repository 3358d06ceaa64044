package secmem

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c := New(32)
	defer c.Close()

	assert.NotEmpty(t, c.ID())
	assert.Equal(t, 32, c.Len())
	assert.False(t, c.IsShared())
	assert.False(t, c.IsClosed())

	b, err := c.Bytes()
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 32), b)
}

func TestNewZeroLength(t *testing.T) {
	c := New(0)
	defer c.Close()

	assert.Equal(t, 0, c.Len())
	b, err := c.Bytes()
	require.NoError(t, err)
	assert.Empty(t, b)

	e, err := c.Export()
	require.NoError(t, err)
	assert.Empty(t, e)
}

func TestNewNegativePanics(t *testing.T) {
	assert.Panics(t, func() { New(-1) })
	assert.Panics(t, func() { NewFromBytes(nil) })
}

func TestNewFromBytesWipesSource(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	c := NewFromBytes(src)
	defer c.Close()

	assert.Equal(t, []byte{0, 0, 0, 0}, src)

	b, err := c.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, b)
}

func TestNewRandom(t *testing.T) {
	c := NewRandom(64)
	defer c.Close()

	b, err := c.Bytes()
	require.NoError(t, err)
	assert.NotEqual(t, make([]byte, 64), b)
}

func TestSharedOnlyExport(t *testing.T) {
	c := NewSharedFromBytes([]byte("topsecret"))
	defer c.Close()

	assert.True(t, c.IsShared())

	_, err := c.Bytes()
	assert.True(t, errors.Is(err, ErrSharedAccess))

	e, err := c.Export()
	require.NoError(t, err)
	assert.Equal(t, []byte("topsecret"), e)
}

func TestExportRepeatable(t *testing.T) {
	c := NewFromBytes([]byte("payload"))
	defer c.Close()

	e1, err := c.Export()
	require.NoError(t, err)
	e2, err := c.Export()
	require.NoError(t, err)
	assert.Equal(t, e1, e2)

	// mutating the export must not affect the container
	e1[0] = 'X'
	e3, err := c.Export()
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), e3)
}

func TestClose(t *testing.T) {
	c := NewFromBytes([]byte("gone"))
	c.Close()

	assert.True(t, c.IsClosed())
	_, err := c.Bytes()
	assert.True(t, errors.Is(err, ErrClosed))
	_, err = c.Export()
	assert.True(t, errors.Is(err, ErrClosed))

	// idempotent
	c.Close()
	c.Close()
}

func TestAttach(t *testing.T) {
	parent := New(8)

	child, err := parent.AttachNew(16)
	require.NoError(t, err)
	assert.Equal(t, 1, parent.Children())

	got, err := parent.Child(0)
	require.NoError(t, err)
	assert.Equal(t, child.ID(), got.ID())

	_, err = parent.Child(1)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	_, err = parent.Child(-1)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	grand, err := child.AttachBytes([]byte("nested"))
	require.NoError(t, err)

	parent.Close()
	assert.True(t, parent.IsClosed())
	assert.True(t, child.IsClosed())
	assert.True(t, grand.IsClosed())
}

func TestAttachAfterClose(t *testing.T) {
	parent := New(8)
	parent.Close()

	_, err := parent.AttachNew(4)
	assert.True(t, errors.Is(err, ErrAlreadyClosed))

	// the source is wiped even when attachment fails
	src := []byte{9, 9, 9}
	_, err = parent.AttachBytes(src)
	assert.True(t, errors.Is(err, ErrAlreadyClosed))
	assert.Equal(t, []byte{0, 0, 0}, src)

	orphan := New(4)
	err = parent.Attach(orphan)
	assert.True(t, errors.Is(err, ErrAlreadyClosed))
	assert.False(t, orphan.IsClosed())
	orphan.Close()
}

func TestExportBase64(t *testing.T) {
	c := NewFromBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	defer c.Close()

	b64, err := c.ExportBase64()
	require.NoError(t, err)
	assert.Equal(t, "3q2+7w==", b64)
}

func TestRandomBytes(t *testing.T) {
	b, err := RandomBytes(16)
	require.NoError(t, err)
	assert.Len(t, b, 16)

	_, err = RandomBytes(-1)
	assert.Error(t, err)

	empty, err := RandomBytes(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
