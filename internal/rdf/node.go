package rdf

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of a Node.
type Kind int

const (
	KindURI Kind = iota + 1
	KindBlank
	KindLiteral
)

// String returns the lower-case variant name used in storage and YAML.
func (k Kind) String() string {
	switch k {
	case KindURI:
		return "uri"
	case KindBlank:
		return "bnode"
	case KindLiteral:
		return "literal"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is a sealed interface representing an RDF term.
// Only URI, BlankNode and Literal implement this.
type Node interface {
	// Kind reports the node variant.
	Kind() Kind

	// Value returns the raw lexical value: the IRI, the blank node id, or the
	// literal's lexical form.
	Value() string

	// String returns the N-Triples form of the node.
	String() string

	node() // Sealed - only these types implement it
}

// URI is an IRI reference.
type URI struct {
	IRI string
}

func (URI) node() {}

// NewURI creates a URI node.
func NewURI(iri string) URI {
	return URI{IRI: iri}
}

func (u URI) Kind() Kind { return KindURI }
func (u URI) Value() string { return u.IRI }
func (u URI) String() string { return "<" + u.IRI + ">" }
func (u URI) IsZero() bool { return u.IRI == "" }

// LocalName returns the part of the IRI after the last '#' or '/'.
// Example: LocalName("http://www.w3.org/2001/XMLSchema#int") == "int"
func (u URI) LocalName() string {
	if i := strings.LastIndexAny(u.IRI, "#/"); i >= 0 {
		return u.IRI[i+1:]
	}
	return u.IRI
}

// Namespace returns the IRI up to and including the last '#' or '/'.
func (u URI) Namespace() string {
	if i := strings.LastIndexAny(u.IRI, "#/"); i >= 0 {
		return u.IRI[:i+1]
	}
	return ""
}

// BlankNode is a blank node with a store-local identifier.
type BlankNode struct {
	ID string
}

func (BlankNode) node() {}

// NewBlankNode creates a blank node.
func NewBlankNode(id string) BlankNode {
	return BlankNode{ID: id}
}

func (b BlankNode) Kind() Kind { return KindBlank }
func (b BlankNode) Value() string { return b.ID }
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal is a scalar RDF value.
//
// Invariant: Lang and Datatype are mutually exclusive. A plain literal has
// neither. Use the constructors, or call Validate on hand-built values.
type Literal struct {
	Lexical  string
	Lang     string
	Datatype URI
}

func (Literal) node() {}

// NewLiteral creates a plain literal.
func NewLiteral(value string) Literal {
	return Literal{Lexical: value}
}

// NewLangLiteral creates a language-tagged literal.
func NewLangLiteral(value, lang string) Literal {
	return Literal{Lexical: value, Lang: lang}
}

// NewTypedLiteral creates a literal with a datatype.
func NewTypedLiteral(value string, datatype URI) Literal {
	return Literal{Lexical: value, Datatype: datatype}
}

func (l Literal) Kind() Kind { return KindLiteral }
func (l Literal) Value() string { return l.Lexical }

// IsPlain reports whether the literal has neither language tag nor datatype.
func (l Literal) IsPlain() bool {
	return l.Lang == "" && l.Datatype.IsZero()
}

// Plain returns the literal stripped of its language tag and datatype.
func (l Literal) Plain() Literal {
	return Literal{Lexical: l.Lexical}
}

// Validate checks the lang/datatype exclusivity invariant.
func (l Literal) Validate() error {
	if l.Lang != "" && !l.Datatype.IsZero() {
		return fmt.Errorf("literal %q has both language %q and datatype %s", l.Lexical, l.Lang, l.Datatype)
	}
	return nil
}

// String returns the N-Triples form, e.g. "chat"@fr or "1"^^<http://www.w3.org/2001/XMLSchema#int>.
func (l Literal) String() string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(EscapeString(l.Lexical))
	b.WriteByte('"')
	if l.Lang != "" {
		b.WriteByte('@')
		b.WriteString(l.Lang)
	} else if !l.Datatype.IsZero() {
		b.WriteString("^^")
		b.WriteString(l.Datatype.String())
	}
	return b.String()
}

// EscapeString escapes a lexical form for a quoted N-Triples string.
// Only backslash, double quote and the line/tab controls are escaped.
func EscapeString(s string) string {
	if !strings.ContainsAny(s, "\\\"\n\r\t") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
