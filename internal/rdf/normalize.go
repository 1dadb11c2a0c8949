package rdf

import "golang.org/x/text/unicode/norm"

// Normalize returns n with its lexical form NFC normalized.
// Only literals are affected; IRIs and blank node ids are returned as is.
//
// Normalization happens at input boundaries (query documents), so that two
// visually identical literals deduplicate to the same placeholder.
func Normalize(n Node) Node {
	lit, ok := n.(Literal)
	if !ok {
		return n
	}
	lit.Lexical = norm.NFC.String(lit.Lexical)
	return lit
}
