package convert

import (
	"math"
	"math/big"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/roach88/rdfq/internal/rdf"
)

type age int32

func TestDefault_Scalars(t *testing.T) {
	when := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		value    any
		lexical  string
		datatype rdf.URI
	}{
		{"bool", true, "true", rdf.XSDBoolean},
		{"int", 42, "42", rdf.XSDLong},
		{"int64", int64(-7), "-7", rdf.XSDLong},
		{"int32", int32(5), "5", rdf.XSDInt},
		{"int16", int16(5), "5", rdf.XSDShort},
		{"int8", int8(5), "5", rdf.XSDByte},
		{"uint", uint(9), "9", rdf.XSDUnsignedLong},
		{"uint8", uint8(255), "255", rdf.XSDUnsignedByte},
		{"float32", float32(1.5), "1.5", rdf.XSDFloat},
		{"float64", 2.25, "2.25", rdf.XSDDouble},
		{"nan", math.NaN(), "NaN", rdf.XSDDouble},
		{"inf", math.Inf(-1), "-INF", rdf.XSDDouble},
		{"time", when, "2024-03-01T12:30:00Z", rdf.XSDDateTime},
		{"duration", 90 * time.Minute, "PT1H30M", rdf.XSDDuration},
		{"big int", big.NewInt(12345678901234), "12345678901234", rdf.XSDInteger},
		{"big float", big.NewFloat(0.5), "0.5", rdf.XSDDecimal},
		{"uuid", uuid.MustParse("0190a4b2-0000-7000-8000-000000000001"), "urn:uuid:0190a4b2-0000-7000-8000-000000000001", rdf.XSDAnyURI},
		{"language", language.MustParse("en-GB"), "en-GB", rdf.XSDLanguage},
		{"named int32", age(30), "30", rdf.XSDInt},
	}

	reg := Default()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lit, ok, err := ToLiteral(reg, tc.value)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tc.lexical, lit.Lexical)
			assert.Equal(t, tc.datatype, lit.Datatype)
			assert.Empty(t, lit.Lang)
		})
	}
}

func TestDefault_Unsupported(t *testing.T) {
	reg := Default()

	assert.False(t, reg.Supports(reflect.TypeOf(struct{}{})))
	assert.True(t, reg.DatatypeFor(reflect.TypeOf([]int{})).IsZero())

	_, ok, err := ToLiteral(reg, struct{ A int }{})
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = ToLiteral(reg, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = reg.ToString(map[string]int{})
	assert.Error(t, err)
}

func TestRegisterFor_OverridesKind(t *testing.T) {
	reg := Default()
	RegisterFor(reg, rdf.XSDInteger, func(a age) string { return "x" })

	assert.Equal(t, rdf.XSDInteger, reg.DatatypeFor(reflect.TypeOf(age(1))))
	// Plain int32 keeps the kind converter
	assert.Equal(t, rdf.XSDInt, reg.DatatypeFor(reflect.TypeOf(int32(1))))
}

func TestDefault_Independent(t *testing.T) {
	a := Default()
	b := Default()
	RegisterFor(a, rdf.XSDString, func(s struct{}) string { return "x" })

	assert.True(t, a.Supports(reflect.TypeOf(struct{}{})))
	assert.False(t, b.Supports(reflect.TypeOf(struct{}{})))
}

func TestToLiteral_NilRegistry(t *testing.T) {
	_, ok, err := ToLiteral(nil, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "PT0S"},
		{1500 * time.Millisecond, "PT1.5S"},
		{2*time.Hour + 3*time.Second, "PT2H3S"},
		{-time.Minute, "-PT1M"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDuration(tc.in))
		})
	}
}
