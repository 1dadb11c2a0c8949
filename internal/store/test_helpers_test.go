package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfq/internal/algebra"
	"github.com/roach88/rdfq/internal/sparql"
	"github.com/roach88/rdfq/internal/testutil"
)

// createTestStore creates a file-backed store with deterministic ids and seq.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path,
		WithIDGenerator(testutil.NewSequenceIDGenerator()),
		WithClock(testutil.NewSeqClock(0)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// compileTestQuery compiles SELECT ?x WHERE { ?x <p> "v" . ?x <q> $name }.
func compileTestQuery(t *testing.T, predicate string) (*sparql.Compiled, *algebra.Query) {
	t.Helper()
	x := algebra.V("x")
	q := algebra.Select(x)
	q.Where = algebra.GroupOf(
		algebra.Triple(x, algebra.URI(predicate), algebra.Lit("v")),
		algebra.Triple(x, algebra.URI("http://ex/q"), algebra.P("name")),
	)
	out, err := sparql.NewCompiler(nil).Compile(q)
	require.NoError(t, err)
	return out, q
}
