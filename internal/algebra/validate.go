package algebra

import (
	"fmt"
	"sort"

	"github.com/roach88/rdfq/internal/rdf"
)

// ValidationResult contains the structural analysis of a query.
//
// Problems are defects that make the query uncompilable or ill-formed RDF
// (an Optional root, a pattern with a missing term, a literal with both
// language and datatype). Warnings flag legal but suspicious shapes (a
// parameter value that is never referenced, a single-branch union).
type ValidationResult struct {
	// IsValid is true when Problems is empty.
	IsValid bool

	// Problems lists structural defects.
	Problems []string

	// Warnings lists non-fatal observations.
	Warnings []string
}

// Validate checks a query descriptor and its block tree.
//
// Compilers perform no structural validation beyond what they need to emit
// text, so callers that accept queries from outside (query documents, the
// CLI) run Validate first to report every defect at once.
//
// Validate is a pure function with no side effects.
func Validate(q *Query) ValidationResult {
	v := &validator{
		problems: []string{},
		warnings: []string{},
		params:   map[string]bool{},
	}
	v.validateQuery(q, true)

	return ValidationResult{
		IsValid:  len(v.problems) == 0,
		Problems: v.problems,
		Warnings: v.warnings,
	}
}

// validator accumulates findings during traversal.
type validator struct {
	problems []string
	warnings []string
	params   map[string]bool // parameter names referenced anywhere
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) validateQuery(q *Query, top bool) {
	if q == nil {
		v.addProblem("nil query")
		return
	}

	switch q.Kind {
	case KindTuple, KindBoolean, KindGraph:
	default:
		v.addProblem("unknown query kind %d", int(q.Kind))
	}

	if q.Kind == KindGraph && len(q.Projection) == 0 {
		v.addProblem("graph query needs a construct template")
	}
	if q.Kind == KindBoolean && q.Where == nil {
		v.addWarning("boolean query without where pattern is always true")
	}

	for i, src := range q.Sources {
		if src.IsZero() {
			v.addProblem("source %d is an empty URI", i)
		}
	}

	for _, e := range q.Projection {
		v.validateExpr(e)
	}

	if q.Where != nil {
		if _, ok := DerefBlock(q.Where).(Optional); ok {
			v.addProblem("optional block cannot be the root of a where pattern")
		}
		v.validateBlock(q.Where)
	}

	for _, o := range q.OrderBy {
		if o.Expr == nil {
			v.addProblem("order term without expression")
			continue
		}
		v.validateExpr(o.Expr)
	}
	for _, g := range q.GroupBy {
		v.validateExpr(g)
	}
	if q.Having != nil {
		v.validateExpr(q.Having)
	}

	if q.Limit != nil && *q.Limit < 0 {
		v.addProblem("negative limit %d", *q.Limit)
	}
	if q.Offset != nil && *q.Offset < 0 {
		v.addProblem("negative offset %d", *q.Offset)
	}

	for _, node := range q.Params {
		v.validateNode(node)
	}

	if top {
		v.checkUnusedParams(q)
	}
}

// checkUnusedParams warns about bound values that no Param references.
// Names are sorted for deterministic output.
func (v *validator) checkUnusedParams(q *Query) {
	names := make([]string, 0, len(q.Params))
	for name := range q.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !v.params[name] {
			v.addWarning("parameter %q has a value but is never referenced", name)
		}
	}
}

func (v *validator) validateBlock(b Block) {
	switch blk := DerefBlock(b).(type) {
	case Pattern:
		if blk.Subject == nil || blk.Predicate == nil || blk.Object == nil {
			v.addProblem("pattern with missing subject, predicate or object")
		}
		for _, e := range []Expression{blk.Subject, blk.Predicate, blk.Object} {
			if e != nil {
				v.validateExpr(e)
			}
		}
	case Group:
		v.validateBlocks(blk.Blocks)
		v.validateFilter(blk.Filter)
	case Union:
		switch len(blk.Blocks) {
		case 0:
			v.addProblem("union without alternatives")
		case 1:
			v.addWarning("union with a single alternative")
		}
		v.validateBlocks(blk.Blocks)
	case Optional:
		v.validateBlocks(blk.Blocks)
		v.validateFilter(blk.Filter)
	case Graph:
		if blk.Context == nil {
			v.addProblem("graph block without context")
		} else {
			v.validateExpr(blk.Context)
		}
		v.validateBlocks(blk.Blocks)
		v.validateFilter(blk.Filter)
	default:
		v.addProblem("unknown block type: %T", b)
	}
}

func (v *validator) validateBlocks(blocks []Block) {
	for _, b := range blocks {
		if b == nil {
			v.addProblem("nil block")
			continue
		}
		v.validateBlock(b)
	}
}

func (v *validator) validateFilter(e Expression) {
	if e != nil {
		v.validateExpr(e)
	}
}

func (v *validator) validateExpr(e Expression) {
	switch expr := deref(e).(type) {
	case nil:
		// Elided operand, collapsed by the compiler
	case Var:
		if expr.Name == "" {
			v.addProblem("variable without name")
		}
	case Param:
		if expr.Name == "" {
			v.addProblem("parameter without name")
		}
		v.params[expr.Name] = true
	case Const:
		v.validateConst(expr.Value)
	case Operation:
		if expr.Op == OpNot && len(expr.Args) == 1 {
			if b, ok := AsBlock(expr.Args[0]); ok {
				v.addProblem("negation of %s block", BlockName(b))
			}
		}
		for _, arg := range expr.Args {
			v.validateExpr(arg)
		}
	case SubQuery:
		v.validateQuery(expr.Query, false)
	default:
		v.addProblem("unknown expression type: %T", e)
	}
}

func (v *validator) validateConst(value any) {
	switch val := value.(type) {
	case nil:
		v.addProblem("nil constant")
	case rdf.Node:
		v.validateNode(val)
	case Block:
		v.validateBlock(val)
	case *Query:
		v.validateQuery(val, false)
	}
}

func (v *validator) validateNode(n rdf.Node) {
	if lit, ok := n.(rdf.Literal); ok {
		if err := lit.Validate(); err != nil {
			v.addProblem("%v", err)
		}
	}
}
