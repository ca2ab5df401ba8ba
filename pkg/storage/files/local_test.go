package files

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	stored, err := s.Put(context.Background(), "abc.pdf", "application/pdf", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "abc.pdf", stored.Key)
	assert.Contains(t, stored.URL, "abc.pdf")

	got, err := s.Get(context.Background(), "abc.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)

	require.NoError(t, s.Delete(context.Background(), "abc.pdf"))
	_, err = s.Get(context.Background(), "abc.pdf")
	assert.Error(t, err)
}

func TestLocalStoreDeleteMissingIsNoop(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, s.Delete(context.Background(), "nothing.pdf"))
}

func TestLocalStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir)
	require.NoError(t, err)

	stored, err := s.Put(context.Background(), "../../etc/passwd", "text/plain", []byte("x"))
	require.NoError(t, err)
	assert.NotContains(t, stored.URL, "..")

	got, err := s.Get(context.Background(), "../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got)
}
