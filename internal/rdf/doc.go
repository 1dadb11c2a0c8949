// Package rdf provides the RDF term model shared by every other package.
//
// This package has no internal imports. Node is a sealed interface: only URI,
// BlankNode and Literal implement it, so type switches over nodes are exhaustive.
//
// Key design constraints:
//   - Nodes are comparable values; they are safe to use as map keys
//   - A Literal carries either a language tag or a datatype, never both
//   - The zero URI means "no datatype" on a Literal
//   - Hash and Fingerprint are stable across processes and releases
package rdf
