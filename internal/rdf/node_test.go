package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeString(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"uri", NewURI("http://ex/a"), "<http://ex/a>"},
		{"blank", NewBlankNode("b1"), "_:b1"},
		{"plain literal", NewLiteral("v"), `"v"`},
		{"lang literal", NewLangLiteral("chat", "fr"), `"chat"@fr`},
		{"typed literal", NewTypedLiteral("1", XSDInt), `"1"^^<http://www.w3.org/2001/XMLSchema#int>`},
		{"escaped literal", NewLiteral("a \"b\"\n"), `"a \"b\"\n"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.node.String())
		})
	}
}

func TestNodeKind(t *testing.T) {
	assert.Equal(t, KindURI, NewURI("x").Kind())
	assert.Equal(t, KindBlank, NewBlankNode("x").Kind())
	assert.Equal(t, KindLiteral, NewLiteral("x").Kind())
	assert.Equal(t, "bnode", KindBlank.String())
}

func TestLiteral_Validate(t *testing.T) {
	require.NoError(t, NewLiteral("a").Validate())
	require.NoError(t, NewLangLiteral("a", "en").Validate())
	require.NoError(t, NewTypedLiteral("a", XSDString).Validate())

	bad := Literal{Lexical: "a", Lang: "en", Datatype: XSDString}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both language")
}

func TestLiteral_Plain(t *testing.T) {
	lit := NewLangLiteral("abc", "en")
	assert.False(t, lit.IsPlain())
	assert.True(t, lit.Plain().IsPlain())
	assert.Equal(t, NewLiteral("abc"), lit.Plain())
}

func TestNodesAreComparable(t *testing.T) {
	m := map[Node]int{}
	m[NewLiteral("v")] = 1
	m[NewLiteral("v")] = 2
	m[NewTypedLiteral("v", XSDString)] = 3
	assert.Len(t, m, 2)
	assert.Equal(t, 2, m[NewLiteral("v")])
}

func TestURI_LocalName(t *testing.T) {
	assert.Equal(t, "int", XSDInt.LocalName())
	assert.Equal(t, XSDNamespace, XSDInt.Namespace())
	assert.Equal(t, "name", NewURI("http://ex/person/name").LocalName())
	assert.Equal(t, "plain", NewURI("plain").LocalName())
	assert.Equal(t, "", NewURI("plain").Namespace())
}

func TestNormalize(t *testing.T) {
	// "é" as e + combining acute accent
	decomposed := NewLiteral("cafe\u0301")
	got := Normalize(decomposed)
	assert.Equal(t, NewLiteral("caf\u00e9"), got)

	uri := NewURI("http://ex/café")
	assert.Equal(t, uri, Normalize(uri), "URIs are not normalized")
}
