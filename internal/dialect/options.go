package dialect

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/rdfq/internal/algebra"
)

// InlineMode controls which constants bypass parameterization.
type InlineMode int

const (
	// InlineNone parameterizes every constant.
	InlineNone InlineMode = iota
	// InlineResources emits URI constants as <uri>; other constants stay parameterized.
	InlineResources
	// InlineAll emits every node constant in its textual form.
	InlineAll
)

func (m InlineMode) String() string {
	switch m {
	case InlineNone:
		return "none"
	case InlineResources:
		return "resources"
	case InlineAll:
		return "all"
	default:
		return fmt.Sprintf("inline(%d)", int(m))
	}
}

// ParseInlineMode parses "none", "resources" or "all".
func ParseInlineMode(s string) (InlineMode, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return InlineNone, nil
	case "resources":
		return InlineResources, nil
	case "all":
		return InlineAll, nil
	default:
		return 0, fmt.Errorf("unknown inline mode %q", s)
	}
}

// DefaultCastPrefix is the prefix used for cast constructor calls.
const DefaultCastPrefix = "xsd"

// Options configures a dialect.
type Options struct {
	// ExpandIn rewrites IN / NOT_IN over a constant collection into a
	// disjunction of equalities (conjunction of inequalities).
	ExpandIn bool

	// LikeAsRegex rewrites LIKE with a constant pattern into MATCHES.
	LikeAsRegex bool

	// Inline selects constants emitted as text instead of placeholders.
	Inline InlineMode

	// AskOmitsWhere drops the WHERE keyword of boolean queries whose where
	// root is a Group.
	AskOmitsWhere bool

	// FunctionFallback emits operators without a rule as lower(tag)(args).
	FunctionFallback bool

	// CastPrefix is the namespace prefix of cast constructor calls.
	// Empty means DefaultCastPrefix.
	CastPrefix string

	// Preamble is emitted before the top-level query (PREFIX lines, pragmas).
	Preamble string

	// Kinds lists the supported query kinds. Nil means all kinds.
	Kinds []algebra.QueryKind

	// Rules overrides or extends the base rule table.
	Rules map[algebra.Operator]Rule
}

// clone returns a deep copy so a Dialect never aliases caller state.
func (o Options) clone() Options {
	cp := o
	cp.Kinds = slices.Clone(o.Kinds)
	if o.Rules != nil {
		cp.Rules = make(map[algebra.Operator]Rule, len(o.Rules))
		for k, v := range o.Rules {
			cp.Rules[k] = v
		}
	}
	return cp
}
