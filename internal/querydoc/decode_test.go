package querydoc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfq/internal/algebra"
	"github.com/roach88/rdfq/internal/rdf"
)

func TestLoad_File(t *testing.T) {
	q, err := Load("testdata/people.yaml")
	require.NoError(t, err)

	assert.Equal(t, algebra.KindTuple, q.Kind)
	assert.True(t, q.Distinct)
	require.Len(t, q.Projection, 2)
	assert.Equal(t, algebra.V("name"), q.Projection[0])
	assert.Equal(t, []rdf.URI{rdf.NewURI("http://ex/people")}, q.Sources)

	g, ok := q.Where.(algebra.Group)
	require.True(t, ok)
	require.Len(t, g.Blocks, 3)
	assert.IsType(t, algebra.Optional{}, g.Blocks[2])

	filter, ok := g.Filter.(algebra.Operation)
	require.True(t, ok)
	assert.Equal(t, algebra.OpGt, filter.Op)
	assert.Equal(t, algebra.C(rdf.NewTypedLiteral("18", rdf.XSDInteger)), filter.Args[1])

	require.Len(t, q.OrderBy, 2)
	assert.False(t, q.OrderBy[0].Ascending)
	assert.True(t, q.OrderBy[1].Ascending)
	assert.Len(t, q.GroupBy, 1)
	assert.NotNil(t, q.Having)
	assert.Equal(t, int64(20), *q.Limit)
	assert.Equal(t, int64(40), *q.Offset)
	assert.Equal(t, rdf.NewURI("http://ex/Paris"), q.Params["city"])
}

func TestDecode_Terms(t *testing.T) {
	q, err := Decode([]byte(`
where:
  group:
    - pattern: ["?s", "<http://ex/p>", "$v"]
    - pattern: ["_:b1", "<http://ex/p>", {value: "chat", lang: fr}]
    - pattern: ["?s", "<http://ex/q>", {value: "1", datatype: "xsd:int"}]
    - pattern: ["?s", "<http://ex/r>", true]
    - pattern: ["?s", "<http://ex/r>", 2.5]
    - pattern: ["?s", "<http://ex/r>", "plain"]
`))
	require.NoError(t, err)

	g := q.Where.(algebra.Group)
	obj := func(i int) algebra.Expression { return g.Blocks[i].(algebra.Pattern).Object }

	assert.Equal(t, algebra.P("v"), obj(0))
	assert.Equal(t, algebra.C(rdf.NewBlankNode("b1")), g.Blocks[1].(algebra.Pattern).Subject)
	assert.Equal(t, algebra.C(rdf.NewLangLiteral("chat", "fr")), obj(1))
	assert.Equal(t, algebra.C(rdf.NewTypedLiteral("1", rdf.XSDInt)), obj(2))
	assert.Equal(t, algebra.C(rdf.NewTypedLiteral("true", rdf.XSDBoolean)), obj(3))
	assert.Equal(t, algebra.C(rdf.NewTypedLiteral("2.5", rdf.XSDDecimal)), obj(4))
	assert.Equal(t, algebra.Lit("plain"), obj(5))
}

func TestDecode_NFC(t *testing.T) {
	// Decomposed e + combining acute accent normalizes to the precomposed form
	q, err := Decode([]byte("where: {pattern: [\"?s\", \"?p\", \"cafe\u0301\"]}\n"))
	require.NoError(t, err)

	p := q.Where.(algebra.Pattern)
	assert.Equal(t, algebra.Lit("caf\u00e9"), p.Object)
}

func TestDecode_BlocksAndExpressions(t *testing.T) {
	q, err := Decode([]byte(`
kind: ask
where:
  group:
    - union:
        - pattern: ["?s", "?p", "?o"]
        - graph: "?g"
          blocks:
            - pattern: ["?s", "?p", "?o"]
          filter: {op: IN, args: ["?o", ["a", "b"]]}
  filter:
    op: AND
    args:
      - null
      - {op: EXISTS, args: [{subquery: {where: {pattern: ["?s", "<http://ex/q>", "?z"]}}}]}
`))
	require.NoError(t, err)
	assert.Equal(t, algebra.KindBoolean, q.Kind)

	g := q.Where.(algebra.Group)
	u := g.Blocks[0].(algebra.Union)
	require.Len(t, u.Blocks, 2)

	graph := u.Blocks[1].(algebra.Graph)
	assert.Equal(t, algebra.V("g"), graph.Context)
	in := graph.Filter.(algebra.Operation)
	assert.Equal(t, algebra.OpIn, in.Op)
	assert.Equal(t, algebra.C([]algebra.Expression{algebra.Lit("a"), algebra.Lit("b")}), in.Args[1])

	and := g.Filter.(algebra.Operation)
	require.Len(t, and.Args, 2)
	assert.Nil(t, and.Args[0])
	exists := and.Args[1].(algebra.Operation)
	assert.Equal(t, algebra.OpExists, exists.Op)
	sub := exists.Args[0].(algebra.SubQuery)
	assert.IsType(t, algebra.Pattern{}, sub.Query.Where)
}

func TestDecode_Construct(t *testing.T) {
	q, err := Decode([]byte(`
kind: construct
template:
  - pattern: ["?s", "<http://ex/knows>", "?o"]
where: {pattern: ["?o", "<http://ex/knownBy>", "?s"]}
`))
	require.NoError(t, err)
	assert.Equal(t, algebra.KindGraph, q.Kind)
	require.Len(t, q.Projection, 1)
	_, ok := algebra.AsBlock(q.Projection[0])
	assert.True(t, ok)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "", "empty document"},
		{"unknown field", "selct: [\"?x\"]\n", `unknown query field "selct"`},
		{"bad kind", "kind: describe\n", "unknown query kind"},
		{"bad source", "sources: [\"http://ex/g\"]\n", "must be written <iri>"},
		{"two block kinds", "where: {pattern: [\"?s\", \"?p\", \"?o\"], group: []}\n", "block has both"},
		{"no block kind", "where: {filter: \"?x\"}\n", "block needs one of"},
		{"short pattern", "where: {pattern: [\"?s\", \"?p\"]}\n", "sequence of 3 terms"},
		{"pattern filter", "where: {pattern: [\"?s\", \"?p\", \"?o\"], filter: \"?x\"}\n", "cannot have a filter"},
		{"lang and datatype", "where: {pattern: [\"?s\", \"?p\", {value: x, lang: en, datatype: \"xsd:string\"}]}\n", "both language"},
		{"bad datatype", "where: {pattern: [\"?s\", \"?p\", {value: x, datatype: string}]}\n", "must be <iri> or xsd:name"},
		{"variable param", "params: {a: \"?x\"}\n", "is not an RDF term"},
		{"bad expression", "select: [{foo: 1}]\n", "needs op, subquery, block or value"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestDecode_ErrorPosition(t *testing.T) {
	_, err := Decode([]byte("where:\n  group:\n    - pattern: [\"?s\"]\n"))
	require.Error(t, err)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 3, de.Line)
	assert.Contains(t, de.Error(), "line 3:")
}

func TestDecode_NestedDocument(t *testing.T) {
	q, err := Decode([]byte("select: [\"?x\"]\nwhere:\n  pattern: [\"?x\", \"<http://ex/p>\", \"v\"]\n"))
	require.NoError(t, err)

	p, ok := q.Where.(algebra.Pattern)
	require.True(t, ok, "where is %T", q.Where)
	assert.Equal(t, algebra.Var{Name: "x"}, p.Subject)
}

func TestDecode_UnknownFieldPosition(t *testing.T) {
	_, err := Decode([]byte("select: [\"?x\"]\nwhere:\n  pattern: [\"?x\", \"?p\", \"?o\"]\nlimt: 3\n"))
	require.Error(t, err)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 4, de.Line)
	assert.Equal(t, 1, de.Column)
	assert.Contains(t, de.Message, `unknown query field "limt"`)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read query file")
}
