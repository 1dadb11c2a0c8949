package dialect

import (
	"strings"

	"github.com/roach88/rdfq/internal/algebra"
	"github.com/roach88/rdfq/internal/rdf"
)

// collapseConnective drops absent operands of AND / OR, including nested
// connectives with nothing in them. A single remaining operand replaces the
// operation. With no operand left the operation is malformed; compilers
// prune such filters before emission.
func collapseConnective(op algebra.Operator) RewriteFunc {
	return func(args []algebra.Expression) (algebra.Expression, error) {
		present := make([]algebra.Expression, 0, len(args))
		for _, a := range args {
			if !algebra.Absent(a) {
				present = append(present, a)
			}
		}
		switch {
		case len(present) == 0:
			return nil, algebra.NewMalformedExpressionError(op, "connective without operands")
		case len(present) == 1:
			return present[0], nil
		case len(present) == len(args):
			return nil, nil
		default:
			return algebra.Op(op, present...), nil
		}
	}
}

// expandIn rewrites x IN (a, b) into (x = a) OR (x = b). An empty
// collection is the constant false.
func expandIn(args []algebra.Expression) (algebra.Expression, error) {
	return expandMembership(algebra.OpIn, algebra.OpEq, algebra.OpOr, false, args)
}

// expandNotIn rewrites x NOT IN (a, b) into (x != a) AND (x != b). An empty
// collection is the constant true.
func expandNotIn(args []algebra.Expression) (algebra.Expression, error) {
	return expandMembership(algebra.OpNotIn, algebra.OpNe, algebra.OpAnd, true, args)
}

func expandMembership(op, cmp, join algebra.Operator, empty bool, args []algebra.Expression) (algebra.Expression, error) {
	if len(args) != 2 {
		return nil, algebra.NewMalformedExpressionError(op, "expects 2 arguments")
	}
	value, ok := algebra.ConstValue(args[1])
	if !ok {
		return nil, algebra.NewMalformedExpressionError(op, "second argument must be a constant collection")
	}
	elems, ok := algebra.Elements(value)
	if !ok {
		return nil, algebra.NewMalformedExpressionError(op, "second argument must be a constant collection")
	}
	if len(elems) == 0 {
		return algebra.C(empty), nil
	}

	terms := make([]algebra.Expression, 0, len(elems))
	for _, e := range elems {
		terms = append(terms, algebra.Op(cmp, args[0], elementExpr(e)))
	}
	return algebra.Op(join, terms...), nil
}

// elementExpr wraps a collection member as an expression. Members that
// already are expressions are used as is.
func elementExpr(v any) algebra.Expression {
	if e, ok := v.(algebra.Expression); ok {
		return e
	}
	return algebra.C(v)
}

// likeToRegex rewrites LIKE with a constant pattern into MATCHES, replacing
// the SQL wildcards: % becomes .* and _ becomes a dot. A pattern that is
// not a constant literal is left to the rule's emission form.
func likeToRegex(args []algebra.Expression) (algebra.Expression, error) {
	if len(args) != 2 {
		return nil, algebra.NewMalformedExpressionError(algebra.OpLike, "expects 2 arguments")
	}
	lit, ok := algebra.ConstLiteral(args[1])
	if !ok {
		return nil, nil
	}
	pattern := strings.NewReplacer("%", ".*", "_", ".").Replace(lit.Lexical)
	return algebra.Op(algebra.OpMatches, args[0], algebra.C(rdf.NewLiteral(pattern))), nil
}

// stripMatchLiteral removes the language tag and datatype of a constant
// literal used as a string-match pattern.
func stripMatchLiteral(op algebra.Operator) RewriteFunc {
	return func(args []algebra.Expression) (algebra.Expression, error) {
		if len(args) != 2 {
			return nil, nil
		}
		v, ok := algebra.ConstValue(args[1])
		if !ok {
			return nil, nil
		}
		lit, ok := v.(rdf.Literal)
		if !ok || lit.IsPlain() {
			return nil, nil
		}
		return algebra.Op(op, args[0], algebra.C(lit.Plain())), nil
	}
}
