package algebra

import (
	"reflect"

	"github.com/roach88/rdfq/internal/rdf"
)

// Expression is a node in an expression tree.
//
// This is a sealed interface - only types in this package implement it.
//
// Expression types:
//   - Var: an unparameterized query variable (?name)
//   - Param: a named parameter, bound through Query.Params
//   - Const: a constant (Node, Go scalar, collection, *Query or Block)
//   - Operation: an operator applied to ordered arguments
//   - SubQuery: a nested query descriptor
type Expression interface {
	expression() // Marker method - seals interface to this package
}

// Var is a query variable. It is emitted as ?Name and never parameterized.
type Var struct {
	Name string
}

func (Var) expression() {}

// Param is a named parameter. It is emitted as ?Name and registers Name as
// its own label; its value, if any, comes from Query.Params.
type Param struct {
	Name string
}

func (Param) expression() {}

// Const wraps a constant value.
//
// Value may be:
//   - an rdf.Node
//   - a string (promoted to a plain literal)
//   - a scalar supported by the converter registry (promoted to a typed literal)
//   - a slice or array (emitted as a parenthesized list, order preserved)
//   - a *Query (nested query)
//   - a Block (graph pattern in expression position)
type Const struct {
	Value any
}

func (Const) expression() {}

// Operation applies Op to ordered arguments. Arguments may be nil where an
// upstream builder elided an operand of a boolean connective.
type Operation struct {
	Op   Operator
	Args []Expression
}

func (Operation) expression() {}

// SubQuery embeds a nested query descriptor.
type SubQuery struct {
	Query *Query
}

func (SubQuery) expression() {}

// V creates a variable expression.
func V(name string) Var { return Var{Name: name} }

// P creates a parameter expression.
func P(name string) Param { return Param{Name: name} }

// C creates a constant expression.
func C(value any) Const { return Const{Value: value} }

// Op creates an operation expression.
func Op(op Operator, args ...Expression) Operation {
	return Operation{Op: op, Args: args}
}

// URI creates a constant URI expression.
func URI(iri string) Const { return Const{Value: rdf.NewURI(iri)} }

// Lit creates a constant plain literal expression.
func Lit(value string) Const { return Const{Value: rdf.NewLiteral(value)} }

// BlockExpr places a graph pattern in expression position.
func BlockExpr(b Block) Const { return Const{Value: b} }

func Eq(a, b Expression) Operation  { return Op(OpEq, a, b) }
func Ne(a, b Expression) Operation  { return Op(OpNe, a, b) }
func Lt(a, b Expression) Operation  { return Op(OpLt, a, b) }
func Gt(a, b Expression) Operation  { return Op(OpGt, a, b) }
func Loe(a, b Expression) Operation { return Op(OpLoe, a, b) }
func Goe(a, b Expression) Operation { return Op(OpGoe, a, b) }

// And creates a conjunction. Nil operands are tolerated and collapsed at
// compile time.
func And(args ...Expression) Operation { return Op(OpAnd, args...) }

// Or creates a disjunction. Nil operands are tolerated and collapsed at
// compile time.
func Or(args ...Expression) Operation { return Op(OpOr, args...) }

// In tests membership of x in a constant collection.
func In(x Expression, values any) Operation { return Op(OpIn, x, C(values)) }

// Like matches x against an SQL-style pattern (% and _ wildcards).
func Like(x Expression, pattern string) Operation {
	return Op(OpLike, x, Lit(pattern))
}

// Matches matches x against a regular expression.
func Matches(x Expression, pattern string) Operation {
	return Op(OpMatches, x, Lit(pattern))
}

// Exists tests whether the subquery has at least one solution.
func Exists(q *Query) Operation { return Op(OpExists, SubQuery{Query: q}) }

// NotExists tests whether the subquery has no solution.
func NotExists(q *Query) Operation { return Op(OpNotExists, SubQuery{Query: q}) }

// Cast converts x to the given datatype.
func Cast(x Expression, datatype rdf.URI) Operation {
	return Op(OpCast, x, C(datatype))
}

// As aliases a projected expression to a variable.
func As(x Expression, alias string) Operation { return Op(OpAs, x, V(alias)) }

// Not negates a boolean expression.
//
// Negating a Block is not a boolean operation; it fails with an
// UNSUPPORTED_OPERATION QueryError.
func Not(e Expression) (Expression, error) {
	if b, ok := AsBlock(e); ok {
		return nil, NewUnsupportedOperationError("negation of " + BlockName(b) + " block")
	}
	return Op(OpNot, e), nil
}

// Absent reports whether e contributes nothing to a filter: it is nil, or
// an AND / OR whose operands are all absent.
func Absent(e Expression) bool {
	var op Operation
	switch v := e.(type) {
	case nil:
		return true
	case Operation:
		op = v
	case *Operation:
		if v == nil {
			return true
		}
		op = *v
	default:
		return false
	}
	if op.Op != OpAnd && op.Op != OpOr {
		return false
	}
	for _, a := range op.Args {
		if !Absent(a) {
			return false
		}
	}
	return true
}

// AsBlock reports whether e is a Block placed in expression position.
func AsBlock(e Expression) (Block, bool) {
	switch c := e.(type) {
	case Const:
		b, ok := c.Value.(Block)
		return b, ok
	case *Const:
		if c == nil {
			return nil, false
		}
		b, ok := c.Value.(Block)
		return b, ok
	default:
		return nil, false
	}
}

// ConstValue returns the wrapped value when e is a Const.
func ConstValue(e Expression) (any, bool) {
	switch c := e.(type) {
	case Const:
		return c.Value, true
	case *Const:
		if c == nil {
			return nil, false
		}
		return c.Value, true
	default:
		return nil, false
	}
}

// ConstLiteral returns the literal held by a constant, promoting bare strings
// to plain literals.
func ConstLiteral(e Expression) (rdf.Literal, bool) {
	v, ok := ConstValue(e)
	if !ok {
		return rdf.Literal{}, false
	}
	switch val := v.(type) {
	case rdf.Literal:
		return val, true
	case string:
		return rdf.NewLiteral(val), true
	default:
		return rdf.Literal{}, false
	}
}

// Elements returns the members of a slice or array constant in order.
// Byte slices are not collections.
func Elements(value any) ([]any, bool) {
	if value == nil {
		return nil, false
	}
	if _, ok := value.([]byte); ok {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Equal reports structural equality of two expressions.
// Pointer and value forms of the same variant compare equal.
func Equal(a, b Expression) bool {
	return reflect.DeepEqual(deref(a), deref(b))
}

// deref normalizes pointer variants to their value form.
func deref(e Expression) Expression {
	switch v := e.(type) {
	case *Var:
		if v != nil {
			return *v
		}
	case *Param:
		if v != nil {
			return *v
		}
	case *Const:
		if v != nil {
			return *v
		}
	case *Operation:
		if v != nil {
			return *v
		}
	case *SubQuery:
		if v != nil {
			return *v
		}
	}
	return e
}
