package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfq/internal/algebra"
)

func TestPutTemplate_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	compiled, _ := compileTestQuery(t, "http://ex/p")

	id, err := s.PutTemplate(ctx, compiled)
	require.NoError(t, err)
	assert.Equal(t, compiled.Fingerprint(), id)

	got, err := s.GetTemplate(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "sparql", got.Dialect)
	assert.Equal(t, algebra.KindTuple, got.Kind)
	assert.Equal(t, compiled.Text, got.Text)
	assert.Equal(t, int64(1), got.Seq)
	assert.Equal(t, []TemplateLabel{
		{Name: "_c1", Param: false},
		{Name: "name", Param: true},
	}, got.Labels)
}

func TestPutTemplate_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	compiled, _ := compileTestQuery(t, "http://ex/p")

	first, err := s.PutTemplate(ctx, compiled)
	require.NoError(t, err)
	second, err := s.PutTemplate(ctx, compiled)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	templates, err := s.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Len(t, templates[0].Labels, 2)
}

func TestPutTemplate_Nil(t *testing.T) {
	s := createTestStore(t)
	_, err := s.PutTemplate(t.Context(), nil)
	assert.Error(t, err)
}

func TestGetTemplate_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetTemplate(t.Context(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListTemplates_Ordered(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()

	var ids []string
	for _, p := range []string{"http://ex/c", "http://ex/a", "http://ex/b"} {
		compiled, _ := compileTestQuery(t, p)
		id, err := s.PutTemplate(ctx, compiled)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	templates, err := s.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 3)
	for i, tmpl := range templates {
		assert.Equal(t, ids[i], tmpl.ID, "insertion order")
		assert.Equal(t, int64(i+1), tmpl.Seq)
	}
}

func TestDefaultClock_ContinuesAfterReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := t.Context()

	s, err := Open(path)
	require.NoError(t, err)
	first, _ := compileTestQuery(t, "http://ex/a")
	_, err = s.PutTemplate(ctx, first)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	second, _ := compileTestQuery(t, "http://ex/b")
	id, err := s.PutTemplate(ctx, second)
	require.NoError(t, err)

	got, err := s.GetTemplate(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Seq)
}
