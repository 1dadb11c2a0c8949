package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfq/internal/algebra"
	"github.com/roach88/rdfq/internal/rdf"
)

func TestLookup_Builtins(t *testing.T) {
	assert.Equal(t, []string{"sesame", "sparql", "strict", "virtuoso"}, Names())

	for _, name := range Names() {
		d, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, d.Name())
	}

	_, err := Lookup("oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")
}

func TestBuiltins_Options(t *testing.T) {
	sparql, _ := Lookup(SPARQL)
	assert.Equal(t, InlineResources, sparql.Inline())
	assert.False(t, sparql.AskOmitsWhere())
	assert.Same(t, sparql, Default())

	sesame, _ := Lookup(Sesame)
	assert.Equal(t, InlineNone, sesame.Inline())
	assert.True(t, sesame.AskOmitsWhere())
	assert.True(t, sesame.Options().ExpandIn)

	strict, _ := Lookup(Strict)
	assert.False(t, strict.Supports(algebra.KindGraph))
	assert.True(t, strict.Supports(algebra.KindTuple))
	assert.Equal(t, []algebra.QueryKind{algebra.KindTuple, algebra.KindBoolean}, strict.Kinds())
	_, ok := strict.Rule(algebra.OpLike)
	assert.False(t, ok, "strict has no LIKE rewrite")
}

func TestRule_Lookup(t *testing.T) {
	d := Default()

	r, ok := d.Rule(algebra.OpEq)
	require.True(t, ok)
	assert.Equal(t, FormInfix, r.Form)
	assert.Equal(t, "=", r.Symbol)
	assert.True(t, r.WrapsNested())

	r, ok = d.Rule(algebra.OpStartsWith)
	require.True(t, ok)
	assert.Equal(t, FormTemplate, r.Form)
	assert.Equal(t, 2, r.Arity())
	assert.False(t, r.WrapsNested())
	assert.NotNil(t, r.Rewrite)

	r, ok = d.Rule(algebra.OpCast)
	require.True(t, ok)
	assert.Equal(t, "xsd", r.Symbol)

	_, ok = d.Rule("FOO")
	assert.False(t, ok)
}

func TestRule_FunctionFallback(t *testing.T) {
	d, err := New("custom", Options{FunctionFallback: true})
	require.NoError(t, err)

	r, ok := d.Rule("GEO_DISTANCE")
	require.True(t, ok)
	assert.Equal(t, FormFunc, r.Form)
	assert.Equal(t, "geo_distance", r.Symbol)
}

func TestNew_Overrides(t *testing.T) {
	d, err := New("custom", Options{
		CastPrefix: "bif",
		Rules: map[algebra.Operator]Rule{
			"GEO_WITHIN": Tmpl("bif:st_within({0}, {1}, {2})"),
		},
	})
	require.NoError(t, err)

	r, ok := d.Rule("GEO_WITHIN")
	require.True(t, ok)
	assert.Equal(t, 3, r.Arity())

	r, _ = d.Rule(algebra.OpCast)
	assert.Equal(t, "bif", r.Symbol)
	assert.Contains(t, d.Operators(), algebra.Operator("GEO_WITHIN"))
}

func TestNew_Errors(t *testing.T) {
	_, err := New("", Options{})
	assert.Error(t, err)

	_, err = New("bad", Options{Rules: map[algebra.Operator]Rule{"X": Tmpl("f({0}, {2})")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skips placeholder {1}")

	_, err = New("bad", Options{Rules: map[algebra.Operator]Rule{"X": Tmpl("nothing")}})
	assert.Error(t, err)
}

func TestNew_DoesNotAliasOptions(t *testing.T) {
	kinds := []algebra.QueryKind{algebra.KindTuple}
	d, err := New("x", Options{Kinds: kinds})
	require.NoError(t, err)

	kinds[0] = algebra.KindGraph
	assert.True(t, d.Supports(algebra.KindTuple))
	assert.False(t, d.Supports(algebra.KindGraph))
}

func TestParseTemplate(t *testing.T) {
	parts, arity, err := parseTemplate("EXISTS {0}")
	require.NoError(t, err)
	assert.Equal(t, 1, arity)
	assert.Equal(t, []Part{{Text: "EXISTS ", Arg: -1}, {Arg: 0}}, parts)

	parts, arity, err = parseTemplate("{0} IN {1}")
	require.NoError(t, err)
	assert.Equal(t, 2, arity)
	assert.Equal(t, []Part{{Arg: 0}, {Text: " IN ", Arg: -1}, {Arg: 1}}, parts)

	// Non-index braces are text
	parts, _, err = parseTemplate("{ {0} }")
	require.NoError(t, err)
	assert.Equal(t, []Part{{Text: "{ ", Arg: -1}, {Arg: 0}, {Text: " }", Arg: -1}}, parts)
}

func TestParseInlineMode(t *testing.T) {
	for _, m := range []InlineMode{InlineNone, InlineResources, InlineAll} {
		got, err := ParseInlineMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseInlineMode("some")
	assert.Error(t, err)
}

func TestRewrite_ExpandIn(t *testing.T) {
	x := algebra.V("x")

	got, err := expandIn([]algebra.Expression{x, algebra.C([]string{"a", "b"})})
	require.NoError(t, err)
	want := algebra.Or(algebra.Eq(x, algebra.C("a")), algebra.Eq(x, algebra.C("b")))
	assert.True(t, algebra.Equal(want, got))

	got, err = expandNotIn([]algebra.Expression{x, algebra.C([]int{1})})
	require.NoError(t, err)
	assert.True(t, algebra.Equal(algebra.And(algebra.Ne(x, algebra.C(1))), got))

	got, err = expandIn([]algebra.Expression{x, algebra.C([]string{})})
	require.NoError(t, err)
	assert.Equal(t, algebra.C(false), got)

	_, err = expandIn([]algebra.Expression{x, algebra.V("y")})
	require.Error(t, err)
	assert.True(t, algebra.IsMalformedExpression(err))
}

func TestRewrite_ExpandInKeepsExpressionMembers(t *testing.T) {
	x := algebra.V("x")
	members := []algebra.Expression{algebra.URI("http://ex/a"), algebra.P("p")}

	got, err := expandIn([]algebra.Expression{x, algebra.C(members)})
	require.NoError(t, err)

	want := algebra.Or(algebra.Eq(x, algebra.URI("http://ex/a")), algebra.Eq(x, algebra.P("p")))
	assert.True(t, algebra.Equal(want, got))
}

func TestRewrite_LikeToRegex(t *testing.T) {
	got, err := likeToRegex([]algebra.Expression{algebra.V("x"), algebra.Lit("abc%")})
	require.NoError(t, err)
	assert.True(t, algebra.Equal(algebra.Matches(algebra.V("x"), "abc.*"), got))

	got, err = likeToRegex([]algebra.Expression{algebra.V("x"), algebra.C("a_c")})
	require.NoError(t, err)
	assert.True(t, algebra.Equal(algebra.Matches(algebra.V("x"), "a.c"), got))

	got, err = likeToRegex([]algebra.Expression{algebra.V("x"), algebra.P("p")})
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = likeToRegex([]algebra.Expression{algebra.V("x")})
	assert.True(t, algebra.IsMalformedExpression(err))
}

func TestRewrite_StripMatchLiteral(t *testing.T) {
	rw := stripMatchLiteral(algebra.OpStartsWith)
	x := algebra.V("x")

	got, err := rw([]algebra.Expression{x, algebra.C(rdf.NewLangLiteral("ab", "en"))})
	require.NoError(t, err)
	assert.True(t, algebra.Equal(algebra.Op(algebra.OpStartsWith, x, algebra.Lit("ab")), got))

	got, err = rw([]algebra.Expression{x, algebra.Lit("ab")})
	require.NoError(t, err)
	assert.Nil(t, got, "plain literal needs no rewrite")

	got, err = rw([]algebra.Expression{x, algebra.V("y")})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRewrite_CollapseConnective(t *testing.T) {
	rw := collapseConnective(algebra.OpAnd)
	a, b := algebra.V("a"), algebra.V("b")

	got, err := rw([]algebra.Expression{a, nil})
	require.NoError(t, err)
	assert.Equal(t, a, got)

	got, err = rw([]algebra.Expression{nil, b})
	require.NoError(t, err)
	assert.Equal(t, b, got)

	got, err = rw([]algebra.Expression{a, b})
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = rw([]algebra.Expression{a, nil, b})
	require.NoError(t, err)
	assert.True(t, algebra.Equal(algebra.And(a, b), got))

	got, err = rw([]algebra.Expression{a, algebra.Or(nil, nil)})
	require.NoError(t, err)
	assert.Equal(t, a, got)

	_, err = rw([]algebra.Expression{nil, nil})
	assert.True(t, algebra.IsMalformedExpression(err))

	_, err = rw([]algebra.Expression{nil, algebra.And(nil)})
	assert.True(t, algebra.IsMalformedExpression(err))
}
