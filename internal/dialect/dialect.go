package dialect

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/rdfq/internal/algebra"
)

// Dialect is an immutable operator table with syntax options.
type Dialect struct {
	name  string
	opts  Options
	rules map[algebra.Operator]Rule
	kinds map[algebra.QueryKind]bool
}

// New builds a dialect from the base SPARQL rule table, the rewrites the
// options enable, and opts.Rules overrides.
func New(name string, opts Options) (*Dialect, error) {
	if name == "" {
		return nil, fmt.Errorf("dialect name is required")
	}
	opts = opts.clone()
	if opts.CastPrefix == "" {
		opts.CastPrefix = DefaultCastPrefix
	}

	rules := baseRules(opts)
	for op, r := range opts.Rules {
		rules[op] = r
	}
	for op, r := range rules {
		compiled, err := r.compile()
		if err != nil {
			return nil, fmt.Errorf("dialect %s: operator %s: %w", name, op, err)
		}
		rules[op] = compiled
	}

	kinds := opts.Kinds
	if kinds == nil {
		kinds = algebra.AllKinds
	}
	supported := make(map[algebra.QueryKind]bool, len(kinds))
	for _, k := range kinds {
		supported[k] = true
	}

	return &Dialect{name: name, opts: opts, rules: rules, kinds: supported}, nil
}

// MustNew is New that panics on error. For package-level dialects.
func MustNew(name string, opts Options) *Dialect {
	d, err := New(name, opts)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the dialect name.
func (d *Dialect) Name() string { return d.name }

// Options returns a copy of the dialect options.
func (d *Dialect) Options() Options { return d.opts.clone() }

// Inline returns the constant inlining mode.
func (d *Dialect) Inline() InlineMode { return d.opts.Inline }

// AskOmitsWhere reports whether boolean queries drop WHERE before a Group root.
func (d *Dialect) AskOmitsWhere() bool { return d.opts.AskOmitsWhere }

// Preamble returns text to emit before the top-level query.
func (d *Dialect) Preamble() string { return d.opts.Preamble }

// Supports reports whether the dialect compiles queries of kind k.
func (d *Dialect) Supports(k algebra.QueryKind) bool { return d.kinds[k] }

// Rule returns the rule for op. With FunctionFallback enabled an operator
// without a rule is emitted as a call to lower(tag).
func (d *Dialect) Rule(op algebra.Operator) (Rule, bool) {
	if r, ok := d.rules[op]; ok {
		return r, true
	}
	if d.opts.FunctionFallback {
		return Func(strings.ToLower(string(op))), true
	}
	return Rule{}, false
}

// Operators returns the operators with a rule, sorted.
func (d *Dialect) Operators() []algebra.Operator {
	ops := make([]algebra.Operator, 0, len(d.rules))
	for op := range d.rules {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

// Kinds returns the supported query kinds in declaration order.
func (d *Dialect) Kinds() []algebra.QueryKind {
	var out []algebra.QueryKind
	for _, k := range algebra.AllKinds {
		if d.kinds[k] {
			out = append(out, k)
		}
	}
	return out
}
