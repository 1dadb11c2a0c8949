package convert

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/roach88/rdfq/internal/rdf"
)

// Default returns a registry populated with the standard scalar converters.
// Each call returns an independent registry.
func Default() *Converters {
	c := New()

	c.registerKind(reflect.Bool, Converter{rdf.XSDBoolean, formatBool})

	c.registerKind(reflect.Int, Converter{rdf.XSDLong, formatInt})
	c.registerKind(reflect.Int64, Converter{rdf.XSDLong, formatInt})
	c.registerKind(reflect.Int32, Converter{rdf.XSDInt, formatInt})
	c.registerKind(reflect.Int16, Converter{rdf.XSDShort, formatInt})
	c.registerKind(reflect.Int8, Converter{rdf.XSDByte, formatInt})

	c.registerKind(reflect.Uint, Converter{rdf.XSDUnsignedLong, formatUint})
	c.registerKind(reflect.Uint64, Converter{rdf.XSDUnsignedLong, formatUint})
	c.registerKind(reflect.Uint32, Converter{rdf.XSDUnsignedInt, formatUint})
	c.registerKind(reflect.Uint16, Converter{rdf.XSDUnsignedShort, formatUint})
	c.registerKind(reflect.Uint8, Converter{rdf.XSDUnsignedByte, formatUint})

	c.registerKind(reflect.Float32, Converter{rdf.XSDFloat, formatFloat(32)})
	c.registerKind(reflect.Float64, Converter{rdf.XSDDouble, formatFloat(64)})

	RegisterFor(c, rdf.XSDDateTime, func(t time.Time) string {
		return t.Format(time.RFC3339Nano)
	})
	RegisterFor(c, rdf.XSDDuration, FormatDuration)
	RegisterFor(c, rdf.XSDAnyURI, func(u uuid.UUID) string {
		return u.URN()
	})
	RegisterFor(c, rdf.XSDLanguage, func(tag language.Tag) string {
		return tag.String()
	})
	RegisterFor(c, rdf.XSDInteger, func(n *big.Int) string {
		return n.String()
	})
	RegisterFor(c, rdf.XSDDecimal, func(f *big.Float) string {
		return f.Text('f', -1)
	})

	return c
}

func formatBool(v reflect.Value) (string, error) {
	return strconv.FormatBool(v.Bool()), nil
}

func formatInt(v reflect.Value) (string, error) {
	return strconv.FormatInt(v.Int(), 10), nil
}

func formatUint(v reflect.Value) (string, error) {
	return strconv.FormatUint(v.Uint(), 10), nil
}

// formatFloat renders XSD float/double lexical forms, including the
// special values INF, -INF and NaN.
func formatFloat(bits int) func(reflect.Value) (string, error) {
	return func(v reflect.Value) (string, error) {
		f := v.Float()
		switch {
		case math.IsNaN(f):
			return "NaN", nil
		case math.IsInf(f, 1):
			return "INF", nil
		case math.IsInf(f, -1):
			return "-INF", nil
		}
		return strconv.FormatFloat(f, 'g', -1, bits), nil
	}
}

// FormatDuration renders d as an xsd:duration day-time value, e.g. PT1H2M3.5S.
// The zero duration is PT0S.
func FormatDuration(d time.Duration) string {
	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
		d = -d
	}
	b.WriteString("PT")
	if d == 0 {
		b.WriteString("0S")
		return b.String()
	}

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute

	if h > 0 {
		fmt.Fprintf(&b, "%dH", h)
	}
	if m > 0 {
		fmt.Fprintf(&b, "%dM", m)
	}
	if d > 0 {
		secs := strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
		b.WriteString(secs)
		b.WriteByte('S')
	}
	return b.String()
}
