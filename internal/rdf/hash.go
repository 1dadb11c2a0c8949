package rdf

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/xxh3"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainTemplate = "rdfq/template/v1"
	DomainBindings = "rdfq/bindings/v1"
)

// Hash returns a stable 64-bit hash of a node derived from all of its fields.
// Equal nodes always hash equal. The kind tag and each field are separated by
// NUL bytes so that boundaries cannot be confused.
func Hash(n Node) uint64 {
	h := xxh3.New()
	h.Write([]byte{byte(n.Kind()), 0x00})
	h.WriteString(n.Value())
	if lit, ok := n.(Literal); ok {
		h.Write([]byte{0x00})
		h.WriteString(lit.Lang)
		h.Write([]byte{0x00})
		h.WriteString(lit.Datatype.IRI)
	}
	return h.Sum64()
}

// Fingerprint computes a 128-bit xxh3 digest with domain separation.
// Format: XXH3-128(domain + 0x00 + data), hex encoded (32 characters).
func Fingerprint(domain string, data []byte) string {
	buf := make([]byte, 0, len(domain)+1+len(data))
	buf = append(buf, domain...)
	buf = append(buf, 0x00)
	buf = append(buf, data...)

	sum := xxh3.Hash128(buf)
	var out [16]byte
	binary.BigEndian.PutUint64(out[0:8], sum.Hi)
	binary.BigEndian.PutUint64(out[8:16], sum.Lo)
	return hex.EncodeToString(out[:])
}
