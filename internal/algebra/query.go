package algebra

import (
	"fmt"
	"strings"

	"github.com/roach88/rdfq/internal/rdf"
)

// QueryKind selects the result form of a query.
type QueryKind int

const (
	// KindTuple produces variable bindings (SELECT).
	KindTuple QueryKind = iota + 1
	// KindBoolean produces a single boolean (ASK).
	KindBoolean
	// KindGraph produces triples (CONSTRUCT).
	KindGraph
)

// AllKinds lists every query kind in declaration order.
var AllKinds = []QueryKind{KindTuple, KindBoolean, KindGraph}

func (k QueryKind) String() string {
	switch k {
	case KindTuple:
		return "tuple"
	case KindBoolean:
		return "boolean"
	case KindGraph:
		return "graph"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseQueryKind parses "tuple", "boolean" or "graph" (and the SPARQL
// keywords "select", "ask", "construct"), case-insensitively.
func ParseQueryKind(s string) (QueryKind, error) {
	switch strings.ToLower(s) {
	case "tuple", "select":
		return KindTuple, nil
	case "boolean", "ask":
		return KindBoolean, nil
	case "graph", "construct":
		return KindGraph, nil
	default:
		return 0, fmt.Errorf("unknown query kind %q", s)
	}
}

// OrderTerm is one ORDER BY term.
type OrderTerm struct {
	Expr      Expression
	Ascending bool
}

// Asc creates an ascending order term.
func Asc(e Expression) OrderTerm { return OrderTerm{Expr: e, Ascending: true} }

// Desc creates a descending order term.
func Desc(e Expression) OrderTerm { return OrderTerm{Expr: e} }

// Query is the query descriptor.
//
// Semantics (tuple kind):
//
//	SELECT [DISTINCT] <Projection> FROM <Sources...> WHERE { <Where> }
//	ORDER BY <OrderBy> GROUP BY <GroupBy> HAVING (<Having>) LIMIT <Limit> OFFSET <Offset>
//
// Params maps parameter names to bound values; unbound parameters are absent
// and remain free variables in the compiled text.
type Query struct {
	Kind       QueryKind
	Projection []Expression
	Distinct   bool
	Sources    []rdf.URI
	Where      Block
	OrderBy    []OrderTerm
	GroupBy    []Expression
	Having     Expression
	Limit      *int64
	Offset     *int64
	Params     map[string]rdf.Node
}

// Int64 returns a pointer to n, for Limit and Offset.
func Int64(n int64) *int64 { return &n }

// Select creates a tuple query.
func Select(projection ...Expression) *Query {
	return &Query{Kind: KindTuple, Projection: projection}
}

// Ask creates a boolean query.
func Ask(where Block) *Query {
	return &Query{Kind: KindBoolean, Where: where}
}

// Construct creates a graph query whose template is the given blocks.
func Construct(template ...Block) *Query {
	q := &Query{Kind: KindGraph}
	for _, b := range template {
		q.Projection = append(q.Projection, BlockExpr(b))
	}
	return q
}

// WithParams returns a shallow copy of q whose Params are the union of
// outer and q.Params; entries already in q.Params take precedence.
// Neither q nor outer is modified.
func (q *Query) WithParams(outer map[string]rdf.Node) *Query {
	if len(outer) == 0 {
		return q
	}
	merged := make(map[string]rdf.Node, len(outer)+len(q.Params))
	for k, v := range outer {
		merged[k] = v
	}
	for k, v := range q.Params {
		merged[k] = v
	}
	cp := *q
	cp.Params = merged
	return &cp
}
