package sparql

import (
	"bytes"
	"strconv"

	"github.com/roach88/rdfq/internal/algebra"
	"github.com/roach88/rdfq/internal/convert"
	"github.com/roach88/rdfq/internal/dialect"
	"github.com/roach88/rdfq/internal/rdf"
)

// maxRewriteDepth bounds chained rule rewrites of one operation.
const maxRewriteDepth = 32

// state is the traversal context of a single Compile call.
// It is never shared between calls.
type state struct {
	c       *Compiler
	buf     bytes.Buffer
	last    *algebra.Pattern // last emitted pattern, nil after any non-pattern
	labels  *Labels
	ops     []algebra.Operator    // enclosing operators, innermost last
	scopes  []map[string]rdf.Node // parameter scopes, innermost last
	rewrite int
}

func newState(c *Compiler) *state {
	return &state{c: c, labels: newLabels()}
}

func (s *state) write(str string) { s.buf.WriteString(str) }

// trimSpace drops one trailing space so list separators attach to the
// previous term.
func (s *state) trimSpace() {
	if b := s.buf.Bytes(); len(b) > 0 && b[len(b)-1] == ' ' {
		s.buf.Truncate(len(b) - 1)
	}
}

func (s *state) scope() map[string]rdf.Node {
	if len(s.scopes) == 0 {
		return nil
	}
	return s.scopes[len(s.scopes)-1]
}

func (s *state) topOperator() algebra.Operator {
	if len(s.ops) == 0 {
		return ""
	}
	return s.ops[len(s.ops)-1]
}

// visitQuery emits a full query of the given kind.
func (s *state) visitQuery(q *algebra.Query, kind algebra.QueryKind) error {
	s.scopes = append(s.scopes, q.Params)
	defer func() { s.scopes = s.scopes[:len(s.scopes)-1] }()

	switch kind {
	case algebra.KindTuple:
		s.write("SELECT ")
		if q.Distinct {
			s.write("DISTINCT ")
		}
		if len(q.Projection) == 0 {
			s.write("*")
		}
		for _, e := range q.Projection {
			if err := s.visitWrapped(e, true); err != nil {
				return err
			}
			s.write(" ")
		}
		s.write("\n")
	case algebra.KindBoolean:
		s.write("ASK ")
	case algebra.KindGraph:
		if err := s.visitTemplate(q.Projection); err != nil {
			return err
		}
	default:
		return algebra.NewUnsupportedQueryKindError(kind, s.c.dialect.Name())
	}
	s.last = nil

	for _, src := range q.Sources {
		s.write("FROM <" + src.IRI + ">\n")
	}

	if q.Where != nil {
		if err := s.visitWhere(q.Where, kind); err != nil {
			return err
		}
	}

	if len(q.OrderBy) > 0 {
		s.write("ORDER BY ")
		for i, o := range q.OrderBy {
			if i > 0 {
				s.write(" ")
			}
			if o.Ascending {
				if err := s.visitWrapped(o.Expr, true); err != nil {
					return err
				}
				continue
			}
			s.write("DESC(")
			if err := s.visitExpr(o.Expr); err != nil {
				return err
			}
			s.write(")")
		}
		s.write("\n")
	}

	if len(q.GroupBy) > 0 {
		s.write("GROUP BY ")
		for i, g := range q.GroupBy {
			if i > 0 {
				s.write(" ")
			}
			if err := s.visitWrapped(g, true); err != nil {
				return err
			}
		}
		s.write("\n")
	}

	if having := prune(q.Having); having != nil {
		s.write("HAVING (")
		if err := s.visitExpr(having); err != nil {
			return err
		}
		s.write(")\n")
	}

	if q.Limit != nil {
		s.write("LIMIT " + strconv.FormatInt(*q.Limit, 10) + "\n")
	}
	if q.Offset != nil {
		s.write("OFFSET " + strconv.FormatInt(*q.Offset, 10) + "\n")
	}
	return nil
}

// visitTemplate emits the CONSTRUCT clause. A single Group template
// supplies its own braces.
func (s *state) visitTemplate(projection []algebra.Expression) error {
	s.write("CONSTRUCT ")
	if len(projection) == 1 {
		if b, ok := algebra.AsBlock(projection[0]); ok {
			if g, ok := algebra.DerefBlock(b).(algebra.Group); ok {
				if err := s.visitGroup(g); err != nil {
					return err
				}
				s.write("\n")
				return nil
			}
		}
	}

	s.write("{ ")
	s.last = nil
	for _, e := range projection {
		b, ok := algebra.AsBlock(e)
		if !ok {
			if err := s.visitExpr(e); err != nil {
				return err
			}
			s.write(" ")
			s.last = nil
			continue
		}
		if err := s.visitBlocks([]algebra.Block{b}); err != nil {
			return err
		}
	}
	s.last = nil
	s.write("}\n")
	return nil
}

// visitWhere emits the WHERE clause. A Group root self-wraps, any other
// root is wrapped in braces. An Optional cannot be the root.
func (s *state) visitWhere(where algebra.Block, kind algebra.QueryKind) error {
	root := algebra.DerefBlock(where)
	if root == nil {
		return algebra.NewMalformedBlockError(algebra.BlockName(where), "unknown or nil where block")
	}
	if _, ok := root.(algebra.Optional); ok {
		return algebra.NewMalformedBlockError("optional", "optional block cannot be the root of a where pattern")
	}

	_, isGroup := root.(algebra.Group)
	if !(kind == algebra.KindBoolean && isGroup && s.c.dialect.AskOmitsWhere()) {
		s.write("WHERE \n  ")
	}
	if err := s.visitBraced(root); err != nil {
		return err
	}
	if !isGroup {
		s.write("}")
	}
	s.write("\n")
	return nil
}

// visitBraced emits b, opening a brace first unless it is a Group.
// The caller closes the brace of a non-Group.
func (s *state) visitBraced(b algebra.Block) error {
	if g, ok := b.(algebra.Group); ok {
		return s.visitGroup(g)
	}
	s.last = nil
	s.write("{ ")
	err := s.visitBlock(b)
	s.last = nil
	return err
}

// visitBracedBlock emits b as a self-contained braced group.
func (s *state) visitBracedBlock(b algebra.Block) error {
	root := algebra.DerefBlock(b)
	if root == nil {
		return algebra.NewMalformedBlockError(algebra.BlockName(b), "unknown or nil block")
	}
	if err := s.visitBraced(root); err != nil {
		return err
	}
	if _, ok := root.(algebra.Group); !ok {
		s.write("} ")
	}
	return nil
}

func (s *state) visitBlock(b algebra.Block) error {
	switch blk := algebra.DerefBlock(b).(type) {
	case algebra.Pattern:
		return s.visitPattern(blk)
	case algebra.Group:
		return s.visitGroup(blk)
	case algebra.Union:
		return s.visitUnion(blk)
	case algebra.Optional:
		return s.visitScoped("OPTIONAL { ", blk.Blocks, blk.Filter)
	case algebra.Graph:
		if blk.Context == nil {
			return algebra.NewMalformedBlockError("graph", "graph block without context")
		}
		s.last = nil
		s.write("GRAPH ")
		if err := s.visitExpr(blk.Context); err != nil {
			return err
		}
		return s.visitScoped(" { ", blk.Blocks, blk.Filter)
	default:
		return algebra.NewMalformedBlockError(algebra.BlockName(b), "unknown or nil block")
	}
}

// visitPattern emits a triple pattern, compacting runs that share a
// subject (; predicate object) or a subject and predicate (, object).
func (s *state) visitPattern(p algebra.Pattern) error {
	if p.Subject == nil || p.Predicate == nil || p.Object == nil {
		return algebra.NewMalformedBlockError("pattern", "pattern needs subject, predicate and object")
	}

	switch {
	case s.last == nil || !algebra.Equal(s.last.Subject, p.Subject):
		if s.last != nil {
			s.write(".\n  ")
		}
		if err := s.visitExpr(p.Subject); err != nil {
			return err
		}
		s.write(" ")
		if err := s.visitExpr(p.Predicate); err != nil {
			return err
		}
		s.write(" ")
	case !algebra.Equal(s.last.Predicate, p.Predicate):
		s.write("; ")
		if err := s.visitExpr(p.Predicate); err != nil {
			return err
		}
		s.write(" ")
	default:
		s.trimSpace()
		s.write(", ")
	}

	if err := s.visitExpr(p.Object); err != nil {
		return err
	}
	s.write(" ")
	s.last = &p
	return nil
}

func (s *state) visitGroup(g algebra.Group) error {
	return s.visitScoped("{ ", g.Blocks, g.Filter)
}

// visitScoped emits open, the child blocks, the trailing filter and the
// closing brace.
func (s *state) visitScoped(open string, blocks []algebra.Block, filter algebra.Expression) error {
	s.last = nil
	s.write(open)
	if err := s.visitBlocks(blocks); err != nil {
		return err
	}
	if err := s.visitFilter(filter); err != nil {
		return err
	}
	s.write("} ")
	s.last = nil
	return nil
}

// visitBlocks emits sibling blocks. A pattern run is terminated before
// any non-pattern sibling.
func (s *state) visitBlocks(blocks []algebra.Block) error {
	for _, b := range blocks {
		if _, isPattern := algebra.DerefBlock(b).(algebra.Pattern); s.last != nil && !isPattern {
			s.write(".\n  ")
			s.last = nil
		}
		if err := s.visitBlock(b); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) visitFilter(filter algebra.Expression) error {
	if f := prune(filter); f != nil {
		if s.last != nil {
			s.write(". ")
		}
		s.last = nil
		s.write("FILTER(")
		if err := s.visitExpr(f); err != nil {
			return err
		}
		s.write(") ")
	}
	s.last = nil
	return nil
}

// visitUnion joins alternatives with UNION. Alternatives other than
// groups are wrapped in braces.
func (s *state) visitUnion(u algebra.Union) error {
	if len(u.Blocks) == 0 {
		return algebra.NewMalformedBlockError("union", "union without alternatives")
	}
	s.last = nil
	for i, b := range u.Blocks {
		if i > 0 {
			s.write("UNION ")
		}
		if err := s.visitBracedBlock(b); err != nil {
			return err
		}
		s.last = nil
	}
	return nil
}

// visitWrapped emits e, parenthesized when it is an operation and wrap is set.
func (s *state) visitWrapped(e algebra.Expression, wrap bool) error {
	if wrap && isOperation(e) {
		s.write("(")
		if err := s.visitExpr(e); err != nil {
			return err
		}
		s.write(")")
		return nil
	}
	return s.visitExpr(e)
}

func (s *state) visitExpr(e algebra.Expression) error {
	switch expr := e.(type) {
	case algebra.Var:
		s.write("?" + expr.Name)
		return nil
	case *algebra.Var:
		if expr != nil {
			return s.visitExpr(*expr)
		}
	case algebra.Param:
		s.labels.param(expr.Name, s.scope()[expr.Name])
		s.write("?" + expr.Name)
		return nil
	case *algebra.Param:
		if expr != nil {
			return s.visitExpr(*expr)
		}
	case algebra.Const:
		return s.visitConstant(expr.Value)
	case *algebra.Const:
		if expr != nil {
			return s.visitConstant(expr.Value)
		}
	case algebra.Operation:
		return s.visitOperation(expr)
	case *algebra.Operation:
		if expr != nil {
			return s.visitOperation(*expr)
		}
	case algebra.SubQuery:
		return s.visitSubQuery(expr.Query)
	case *algebra.SubQuery:
		if expr != nil {
			return s.visitSubQuery(expr.Query)
		}
	}
	return algebra.NewMalformedExpressionError(s.topOperator(), "missing or unknown operand")
}

// visitSubQuery emits a nested query. Directly beneath an existence test
// only its where tree is emitted; elsewhere it becomes a nested SELECT.
// The nested query sees the enclosing parameter scope merged under its own.
func (s *state) visitSubQuery(q *algebra.Query) error {
	if q == nil {
		return algebra.NewMalformedExpressionError(s.topOperator(), "nil subquery")
	}
	inner := q.WithParams(s.scope())

	if s.topOperator().IsExistence() {
		s.scopes = append(s.scopes, inner.Params)
		defer func() { s.scopes = s.scopes[:len(s.scopes)-1] }()
		if inner.Where == nil {
			s.write("{ } ")
			return nil
		}
		err := s.visitBracedBlock(inner.Where)
		s.last = nil
		return err
	}

	saved := s.last
	s.write("{ ")
	if err := s.visitQuery(inner, algebra.KindTuple); err != nil {
		return err
	}
	s.write("} ")
	s.last = saved
	return nil
}

// visitConstant emits a constant value: inlined, as a list, as a nested
// block or query, or as a placeholder variable.
func (s *state) visitConstant(value any) error {
	switch v := value.(type) {
	case string:
		value = rdf.NewLiteral(v)
	case rdf.Node, algebra.Block, *algebra.Query, algebra.Expression, nil:
	default:
		lit, ok, err := convert.ToLiteral(s.c.converters, value)
		if err != nil {
			return algebra.NewUnsupportedConstantError(value)
		}
		if ok {
			value = lit
		}
	}

	switch v := value.(type) {
	case nil:
		return algebra.NewUnsupportedConstantError(value)
	case *algebra.Query:
		return s.visitSubQuery(v)
	case algebra.Block:
		return s.visitBracedBlock(v)
	case algebra.Expression:
		return s.visitExpr(v)
	case rdf.Node:
		return s.visitNode(v)
	}

	if elems, ok := algebra.Elements(value); ok {
		s.write("(")
		for i, e := range elems {
			if i > 0 {
				s.write(", ")
			}
			if err := s.visitConstant(e); err != nil {
				return err
			}
		}
		s.write(")")
		return nil
	}
	return algebra.NewUnsupportedConstantError(value)
}

// visitNode inlines n when the dialect asks for it, else emits its label.
func (s *state) visitNode(n rdf.Node) error {
	switch s.c.dialect.Inline() {
	case dialect.InlineAll:
		s.write(n.String())
		return nil
	case dialect.InlineResources:
		if u, ok := n.(rdf.URI); ok {
			s.write(u.String())
			return nil
		}
	}
	s.write("?" + s.labels.constant(n))
	return nil
}

// visitOperation applies the operator's rule: rewrite first, then emit
// in the rule's form with the operator on the stack.
func (s *state) visitOperation(op algebra.Operation) error {
	if op.Op == algebra.OpNot && len(op.Args) == 1 {
		if b, ok := algebra.AsBlock(op.Args[0]); ok {
			return algebra.NewUnsupportedOperationError("negation of " + algebra.BlockName(b) + " block")
		}
	}

	rule, ok := s.c.dialect.Rule(op.Op)
	if !ok {
		return algebra.NewUnsupportedOperatorError(op.Op)
	}

	if rule.Rewrite != nil {
		repl, err := rule.Rewrite(op.Args)
		if err != nil {
			return err
		}
		if repl != nil {
			if s.rewrite >= maxRewriteDepth {
				return algebra.NewMalformedExpressionError(op.Op, "rewrite does not terminate")
			}
			s.rewrite++
			defer func() { s.rewrite-- }()
			return s.visitExpr(repl)
		}
	}

	s.ops = append(s.ops, op.Op)
	defer func() { s.ops = s.ops[:len(s.ops)-1] }()

	args := op.Args
	switch rule.Form {
	case dialect.FormInfix:
		if len(args) < 2 {
			return algebra.NewMalformedExpressionError(op.Op, "infix operator needs at least 2 arguments")
		}
		for i, a := range args {
			if i > 0 {
				s.write(" " + rule.Symbol + " ")
			}
			if err := s.visitWrapped(a, true); err != nil {
				return err
			}
		}
	case dialect.FormPrefix:
		if len(args) != 1 {
			return algebra.NewMalformedExpressionError(op.Op, "prefix operator needs 1 argument")
		}
		s.write(rule.Symbol)
		return s.visitWrapped(args[0], true)
	case dialect.FormFunc:
		s.write(rule.Symbol + "(")
		for i, a := range args {
			if i > 0 {
				s.write(", ")
			}
			if err := s.visitExpr(a); err != nil {
				return err
			}
		}
		s.write(")")
	case dialect.FormTemplate:
		if len(args) != rule.Arity() {
			return algebra.NewMalformedExpressionError(op.Op,
				"expects "+strconv.Itoa(rule.Arity())+" arguments, got "+strconv.Itoa(len(args)))
		}
		for _, part := range rule.Parts() {
			if part.Arg < 0 {
				s.write(part.Text)
				continue
			}
			if err := s.visitWrapped(args[part.Arg], rule.WrapsNested()); err != nil {
				return err
			}
		}
	case dialect.FormCast:
		if len(args) != 2 {
			return algebra.NewMalformedExpressionError(op.Op, "cast needs a value and a datatype")
		}
		v, _ := algebra.ConstValue(args[1])
		datatype, ok := v.(rdf.URI)
		if !ok {
			return algebra.NewMalformedExpressionError(op.Op, "cast datatype must be a constant URI")
		}
		s.write(rule.Symbol + ":" + datatype.LocalName() + "(")
		if err := s.visitExpr(args[0]); err != nil {
			return err
		}
		s.write(")")
	default:
		// A rewrite-only rule whose rewrite declined the arguments.
		return algebra.NewUnsupportedOperatorError(op.Op)
	}
	return nil
}

// isOperation reports whether e is an Operation in value or pointer form.
func isOperation(e algebra.Expression) bool {
	switch v := e.(type) {
	case algebra.Operation:
		return true
	case *algebra.Operation:
		return v != nil
	default:
		return false
	}
}

// prune returns nil for an absent filter or a connective whose operands
// are all absent, so no empty FILTER() is emitted.
func prune(e algebra.Expression) algebra.Expression {
	if algebra.Absent(e) {
		return nil
	}
	return e
}
