package files

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestStoreOpen_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Store(context.Background(), bytes.NewReader([]byte("pdf-bytes")), "u-1", "panel.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "u-1/"))
	assert.True(t, strings.HasSuffix(ref, "-panel.pdf"))

	rc, err := s.Open(context.Background(), ref)
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), b)
}

func TestStore_DistinctRefsForSameName(t *testing.T) {
	s := newTestStore(t)

	ref1, err := s.Store(context.Background(), bytes.NewReader([]byte("a")), "u-1", "panel.pdf")
	require.NoError(t, err)
	ref2, err := s.Store(context.Background(), bytes.NewReader([]byte("b")), "u-1", "panel.pdf")
	require.NoError(t, err)

	assert.NotEqual(t, ref1, ref2)
}

func TestStore_SanitizesFileName(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Store(context.Background(), bytes.NewReader([]byte("x")), "u-1", "../..//we ird:name.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "u-1/"))
	assert.NotContains(t, ref, "..")
	assert.NotContains(t, ref, " ")

	rc, err := s.Open(context.Background(), ref)
	require.NoError(t, err)
	rc.Close()
}

func TestDelete_Idempotent(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Store(context.Background(), bytes.NewReader([]byte("x")), "u-1", "a.pdf")
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), ref))
	// Deleting again is not an error.
	require.NoError(t, s.Delete(context.Background(), ref))

	_, err = s.Open(context.Background(), ref)
	assert.Error(t, err)
}

func TestOpen_RejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Open(context.Background(), "../outside.txt")
	assert.Error(t, err)

	_, err = s.Open(context.Background(), "/etc/passwd")
	assert.Error(t, err)

	assert.Error(t, s.Delete(context.Background(), "../outside.txt"))
}

func TestList(t *testing.T) {
	s := newTestStore(t)

	ref1, err := s.Store(context.Background(), bytes.NewReader([]byte("a")), "u-1", "a.pdf")
	require.NoError(t, err)
	ref2, err := s.Store(context.Background(), bytes.NewReader([]byte("b")), "u-2", "b.pdf")
	require.NoError(t, err)

	var got []string
	require.NoError(t, s.List(context.Background(), func(ref string) error {
		got = append(got, ref)
		return nil
	}))

	want := []string{ref1, ref2}
	sort.Strings(got)
	sort.Strings(want)
	assert.Equal(t, want, got)
}
