package algebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfq/internal/rdf"
)

func TestValidate_SimpleSelect(t *testing.T) {
	q := Select(V("x"))
	q.Where = Triple(V("x"), URI("http://ex/p"), P("v"))
	q.Params = map[string]rdf.Node{"v": rdf.NewLiteral("a")}

	result := Validate(q)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Problems)
	assert.Empty(t, result.Warnings)
}

func TestValidate_NilQuery(t *testing.T) {
	result := Validate(nil)

	assert.False(t, result.IsValid)
	require.Len(t, result.Problems, 1)
	assert.Contains(t, result.Problems[0], "nil query")
}

func TestValidate_OptionalRoot(t *testing.T) {
	q := Select(V("x"))
	q.Where = OptionalOf(Triple(V("x"), V("p"), V("o")))

	result := Validate(q)

	assert.False(t, result.IsValid)
	require.Len(t, result.Problems, 1)
	assert.Contains(t, result.Problems[0], "optional block cannot be the root")
}

func TestValidate_PatternMissingTerm(t *testing.T) {
	q := Select(V("x"))
	q.Where = GroupOf(Pattern{Subject: V("x"), Predicate: V("p")})

	result := Validate(q)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Problems[0], "missing subject, predicate or object")
}

func TestValidate_Union(t *testing.T) {
	q := Select(V("x"))
	q.Where = UnionOf()

	result := Validate(q)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Problems[0], "union without alternatives")

	q.Where = UnionOf(Triple(V("x"), V("p"), V("o")))
	result = Validate(q)
	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "single alternative")
}

func TestValidate_GraphWithoutContext(t *testing.T) {
	q := Select(V("x"))
	q.Where = Graph{Blocks: []Block{Triple(V("x"), V("p"), V("o"))}}

	result := Validate(q)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Problems[0], "graph block without context")
}

func TestValidate_LiteralWithLangAndDatatype(t *testing.T) {
	bad := rdf.Literal{Lexical: "1", Lang: "en", Datatype: rdf.XSDInt}
	q := Select(V("x"))
	q.Where = Triple(V("x"), URI("http://ex/p"), C(bad))

	result := Validate(q)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Problems[0], "both language")
}

func TestValidate_NegatedBlockInFilter(t *testing.T) {
	q := Select(V("x"))
	q.Where = Group{
		Blocks: []Block{Triple(V("x"), V("p"), V("o"))},
		Filter: Op(OpNot, BlockExpr(Triple(V("x"), V("q"), V("z")))),
	}

	result := Validate(q)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Problems[0], "negation of pattern block")
}

func TestValidate_UnusedParamWarning(t *testing.T) {
	q := Select(V("x"))
	q.Where = Triple(V("x"), V("p"), V("o"))
	q.Params = map[string]rdf.Node{
		"zeta":  rdf.NewLiteral("z"),
		"alpha": rdf.NewLiteral("a"),
	}

	result := Validate(q)

	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], `"alpha"`)
	assert.Contains(t, result.Warnings[1], `"zeta"`)
}

func TestValidate_ParamReferencedInSubquery(t *testing.T) {
	inner := Ask(Triple(V("x"), URI("http://ex/q"), P("v")))
	q := Select(V("x"))
	q.Where = Group{
		Blocks: []Block{Triple(V("x"), V("p"), V("o"))},
		Filter: Exists(inner),
	}
	q.Params = map[string]rdf.Node{"v": rdf.NewLiteral("a")}

	result := Validate(q)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
}

func TestValidate_LimitOffsetAndSources(t *testing.T) {
	q := Select(V("x"))
	q.Where = Triple(V("x"), V("p"), V("o"))
	q.Limit = Int64(-1)
	q.Offset = Int64(-2)
	q.Sources = []rdf.URI{{}}

	result := Validate(q)

	assert.False(t, result.IsValid)
	assert.Len(t, result.Problems, 3)
}

func TestValidate_GraphQueryWithoutTemplate(t *testing.T) {
	q := &Query{Kind: KindGraph, Where: Triple(V("s"), V("p"), V("o"))}

	result := Validate(q)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Problems[0], "construct template")
}

func TestValidate_AskWithoutWhereWarns(t *testing.T) {
	result := Validate(Ask(nil))

	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "always true")
}

func TestValidate_PointerBlocks(t *testing.T) {
	g := GroupOf(Triple(V("x"), V("p"), V("o")))
	q := Select(V("x"))
	q.Where = &g

	result := Validate(q)

	assert.True(t, result.IsValid)
}
