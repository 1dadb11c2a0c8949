package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash_EqualNodesHashEqual(t *testing.T) {
	assert.Equal(t, Hash(NewLiteral("v")), Hash(NewLiteral("v")))
	assert.Equal(t, Hash(NewURI("http://ex/a")), Hash(NewURI("http://ex/a")))
}

func TestHash_AllFieldsParticipate(t *testing.T) {
	base := Hash(NewLiteral("v"))
	assert.NotEqual(t, base, Hash(NewLangLiteral("v", "en")))
	assert.NotEqual(t, base, Hash(NewTypedLiteral("v", XSDString)))
	assert.NotEqual(t, Hash(NewURI("x")), Hash(NewBlankNode("x")), "kind tag participates")
	assert.NotEqual(t, Hash(NewLiteral("x")), Hash(NewURI("x")))
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint(DomainTemplate, []byte("SELECT *"))
	b := Fingerprint(DomainTemplate, []byte("SELECT *"))
	c := Fingerprint(DomainBindings, []byte("SELECT *"))

	assert.Len(t, a, 32)
	assert.Equal(t, a, b, "fingerprint must be deterministic")
	assert.NotEqual(t, a, c, "domain separation must change the digest")
}
