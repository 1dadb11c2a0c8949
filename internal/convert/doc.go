// Package convert promotes Go scalar values to typed RDF literals.
//
// A Registry answers three questions about a runtime type: whether it can be
// converted, which XSD datatype it maps to, and what its canonical lexical
// form is. The compiler consults it for constants that are neither RDF nodes
// nor plain strings.
//
// Default registers converters for the Go numeric kinds, bool, time.Time,
// time.Duration, math/big numbers, uuid.UUID and language.Tag. Named types
// whose underlying kind is a builtin scalar fall back to the kind's converter.
package convert
