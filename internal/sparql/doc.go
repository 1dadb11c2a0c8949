// Package sparql compiles query descriptors into SPARQL text.
//
// Compile performs a single recursive pass over an algebra.Query and its
// block tree, emitting text under the rules of a dialect.Dialect. Constants
// are replaced by placeholder variables (?_c1, ?_c2, ...) unless the dialect
// inlines them; the placeholders are recorded in a Labels registry in
// first-encounter order. ExtractBindings turns that registry into the
// name to value table a backend binds before execution, so one compiled
// text can be executed repeatedly with different values.
//
// Example:
//
//	q := algebra.Select(algebra.V("x"))
//	q.Sources = []rdf.URI{rdf.NewURI("http://ex/g")}
//	q.Where = algebra.Triple(algebra.V("x"), algebra.URI("http://ex/p"), algebra.Lit("v"))
//	q.Limit = algebra.Int64(10)
//
//	compiled, err := sparql.NewCompiler(dialect.Default()).Compile(q)
//	// compiled.Text:
//	// SELECT ?x
//	// FROM <http://ex/g>
//	// WHERE
//	//   { ?x <http://ex/p> ?_c1 }
//	// LIMIT 10
//	bindings := sparql.ExtractBindings(compiled.Labels, q) // _c1 -> "v"
//
// A Compiler holds only immutable configuration. All traversal state lives
// in a value created per Compile call, so one Compiler can serve concurrent
// callers.
package sparql
