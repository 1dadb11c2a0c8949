// Package algebra provides the backend-agnostic query representation consumed
// by dialect compilers.
//
// ARCHITECTURE:
//
// The algebra sits between a query builder and a backend dialect:
//
//	[query builder / query document] → [algebra.Query] → [sparql.Compiler + dialect] → text + bindings
//
// A Query aggregates a projection, graph contexts, a root graph pattern (Block),
// ordering, grouping, having, limit/offset and named parameter values.
//
// SEALED INTERFACES:
//
// Expression and Block are sealed interfaces using the marker method pattern.
// Only types in this package implement them, so compilers can switch
// exhaustively:
//
//	switch e := expr.(type) {
//	case Var, Param, Const, Operation, SubQuery:
//	    // ...
//	}
//
// Both value and pointer forms of every variant are accepted by consumers.
//
// BLOCKS ARE NOT PREDICATES:
//
// A Block can sit where a boolean expression is expected (wrapped in a Const),
// for uniform traversal, but it carries no boolean operations. Not() on a block
// fails with an UNSUPPORTED_OPERATION QueryError, at construction time or at
// compile time for hand-built operations.
//
// LIFECYCLE:
//
// A Query and its Block tree are built once by the caller and passed read-only
// to a compiler. Nothing in this module mutates them.
package algebra
