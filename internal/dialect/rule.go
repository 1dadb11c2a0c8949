package dialect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/rdfq/internal/algebra"
)

// Form is the emission shape of a rule.
type Form int

const (
	// FormNone marks a rule that only rewrites. When the rewrite declines,
	// the operator is reported unsupported.
	FormNone Form = iota
	FormInfix
	FormPrefix
	FormFunc
	FormTemplate
	FormCast
)

func (f Form) String() string {
	switch f {
	case FormNone:
		return "rewrite"
	case FormInfix:
		return "infix"
	case FormPrefix:
		return "prefix"
	case FormFunc:
		return "func"
	case FormTemplate:
		return "template"
	case FormCast:
		return "cast"
	default:
		return fmt.Sprintf("form(%d)", int(f))
	}
}

// RewriteFunc returns an expression to emit in place of an operation with
// the given arguments. A nil expression with nil error means no rewrite
// applies and the rule's form is used.
type RewriteFunc func(args []algebra.Expression) (algebra.Expression, error)

// Rule is the emission rule for one operator.
type Rule struct {
	Form Form

	// Symbol is the infix or prefix operator, the function name, or the
	// cast prefix.
	Symbol string

	// Template is the FormTemplate pattern with {0}-style placeholders.
	Template string

	// WrapArgs parenthesizes nested operations substituted into a template.
	WrapArgs bool

	// Rewrite is applied before emission when non-nil.
	Rewrite RewriteFunc

	parts []Part
	arity int
}

// Part is one segment of a parsed template: literal text, or the argument
// at index Arg when Arg >= 0.
type Part struct {
	Text string
	Arg  int
}

// Parts returns the parsed template segments.
func (r Rule) Parts() []Part { return r.parts }

// Arity returns the argument count a template expects.
func (r Rule) Arity() int { return r.arity }

// WrapsNested reports whether nested operation arguments are parenthesized.
func (r Rule) WrapsNested() bool {
	switch r.Form {
	case FormInfix, FormPrefix:
		return true
	case FormTemplate:
		return r.WrapArgs
	default:
		return false
	}
}

// Infix creates an n-ary infix rule.
func Infix(symbol string) Rule { return Rule{Form: FormInfix, Symbol: symbol} }

// Prefix creates a unary prefix rule.
func Prefix(symbol string) Rule { return Rule{Form: FormPrefix, Symbol: symbol} }

// Func creates a function-call rule.
func Func(name string) Rule { return Rule{Form: FormFunc, Symbol: name} }

// Tmpl creates a template rule.
func Tmpl(template string) Rule { return Rule{Form: FormTemplate, Template: template} }

// TmplWrapped creates a template rule that parenthesizes nested operations.
func TmplWrapped(template string) Rule {
	return Rule{Form: FormTemplate, Template: template, WrapArgs: true}
}

// Cast creates a cast constructor rule with the given prefix.
func Cast(prefix string) Rule { return Rule{Form: FormCast, Symbol: prefix} }

// Rewriting creates a rewrite-only rule.
func Rewriting(fn RewriteFunc) Rule { return Rule{Form: FormNone, Rewrite: fn} }

// WithRewrite returns r with fn as its rewrite.
func (r Rule) WithRewrite(fn RewriteFunc) Rule {
	r.Rewrite = fn
	return r
}

// compile parses the template of a FormTemplate rule.
func (r Rule) compile() (Rule, error) {
	if r.Form != FormTemplate {
		return r, nil
	}
	parts, arity, err := parseTemplate(r.Template)
	if err != nil {
		return r, err
	}
	r.parts = parts
	r.arity = arity
	return r, nil
}

// parseTemplate splits a template at {N} placeholders.
// Braces not enclosing a decimal index are literal text.
// Placeholder indices must cover 0..arity-1 without gaps.
func parseTemplate(t string) ([]Part, int, error) {
	var parts []Part
	var text strings.Builder
	seen := map[int]bool{}
	arity := 0

	for i := 0; i < len(t); i++ {
		if t[i] == '{' {
			end := strings.IndexByte(t[i:], '}')
			if end > 1 {
				if n, err := strconv.Atoi(t[i+1 : i+end]); err == nil && n >= 0 {
					if text.Len() > 0 {
						parts = append(parts, Part{Text: text.String(), Arg: -1})
						text.Reset()
					}
					parts = append(parts, Part{Arg: n})
					seen[n] = true
					arity = max(arity, n+1)
					i += end
					continue
				}
			}
		}
		text.WriteByte(t[i])
	}
	if text.Len() > 0 {
		parts = append(parts, Part{Text: text.String(), Arg: -1})
	}

	if arity == 0 {
		return nil, 0, fmt.Errorf("template %q has no placeholders", t)
	}
	for n := 0; n < arity; n++ {
		if !seen[n] {
			return nil, 0, fmt.Errorf("template %q skips placeholder {%d}", t, n)
		}
	}
	return parts, arity, nil
}
