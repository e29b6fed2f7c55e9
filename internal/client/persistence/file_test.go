package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/fittracker/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = s.Get(ctx, "mf_state_v5")
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, s.Set(ctx, "mf_state_v5", []byte(`{"water":0}`)))
	b, err := os.ReadFile(filepath.Join(dir, "mf_state_v5.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"water":0}`, string(b))

	got, err := s.Get(ctx, "mf_state_v5")
	require.NoError(t, err)
	assert.Equal(t, b, got)

	require.NoError(t, s.Delete(ctx, "mf_state_v5"))
	require.NoError(t, s.Delete(ctx, "mf_state_v5"))
	_, err = s.Get(ctx, "mf_state_v5")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	err = s.Set(context.Background(), "../escape", []byte("x"))
	require.Error(t, err)
}

func TestFileStore_WithAdapter(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	a := NewAdapter(s, "mf_state_v1")

	doc, err := a.Load(ctx)
	require.NoError(t, err)
	doc.WaterGoal = 3000
	require.NoError(t, a.Save(ctx, doc))

	again, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3000, again.WaterGoal)
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", buf))
	buf[0] = 'z'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}
