package dialect

import (
	"fmt"
	"sort"

	"github.com/roach88/rdfq/internal/algebra"
)

// baseRules returns a fresh SPARQL 1.1 rule table for opts.
func baseRules(opts Options) map[algebra.Operator]Rule {
	r := map[algebra.Operator]Rule{
		algebra.OpEq:  Infix("="),
		algebra.OpNe:  Infix("!="),
		algebra.OpLt:  Infix("<"),
		algebra.OpGt:  Infix(">"),
		algebra.OpLoe: Infix("<="),
		algebra.OpGoe: Infix(">="),
		algebra.OpAnd: Infix("&&").WithRewrite(collapseConnective(algebra.OpAnd)),
		algebra.OpOr:  Infix("||").WithRewrite(collapseConnective(algebra.OpOr)),
		algebra.OpNot: Prefix("!"),

		algebra.OpAdd:    Infix("+"),
		algebra.OpSub:    Infix("-"),
		algebra.OpMult:   Infix("*"),
		algebra.OpDiv:    Infix("/"),
		algebra.OpNegate: Prefix("-"),
		algebra.OpCast:   Cast(opts.CastPrefix),

		algebra.OpIn:    TmplWrapped("{0} IN {1}"),
		algebra.OpNotIn: TmplWrapped("{0} NOT IN {1}"),

		algebra.OpMatches:          Tmpl("regex({0}, {1})"),
		algebra.OpMatchesIC:        Tmpl(`regex({0}, {1}, "i")`),
		algebra.OpStartsWith:       Tmpl("STRSTARTS(STR({0}), {1})"),
		algebra.OpStartsWithIC:     Tmpl("STRSTARTS(LCASE(STR({0})), LCASE({1}))"),
		algebra.OpEndsWith:         Tmpl("STRENDS(STR({0}), {1})"),
		algebra.OpEndsWithIC:       Tmpl("STRENDS(LCASE(STR({0})), LCASE({1}))"),
		algebra.OpStringContains:   Tmpl("CONTAINS(STR({0}), {1})"),
		algebra.OpStringContainsIC: Tmpl("CONTAINS(LCASE(STR({0})), LCASE({1}))"),
		algebra.OpEqIgnoreCase:     Tmpl("LCASE(STR({0})) = LCASE({1})"),
		algebra.OpStringIsEmpty:    Tmpl("STRLEN(STR({0})) = 0"),

		algebra.OpExists:    Tmpl("EXISTS {0}"),
		algebra.OpNotExists: Tmpl("NOT EXISTS {0}"),
		algebra.OpIsNull:    Tmpl("!BOUND({0})"),
		algebra.OpIsNotNull: Func("BOUND"),
		algebra.OpIsURI:     Func("isIRI"),
		algebra.OpIsBlank:   Func("isBlank"),
		algebra.OpIsLiteral: Func("isLiteral"),
		algebra.OpSameTerm:  Func("sameTerm"),

		algebra.OpStr:      Func("STR"),
		algebra.OpLang:     Func("LANG"),
		algebra.OpDatatype: Func("DATATYPE"),
		algebra.OpLower:    Func("LCASE"),
		algebra.OpUpper:    Func("UCASE"),
		algebra.OpStrlen:   Func("STRLEN"),
		algebra.OpConcat:   Func("CONCAT"),
		algebra.OpCoalesce: Func("COALESCE"),

		algebra.OpCount:         Func("COUNT"),
		algebra.OpCountDistinct: Tmpl("COUNT(DISTINCT {0})"),
		algebra.OpSum:           Func("SUM"),
		algebra.OpAvg:           Func("AVG"),
		algebra.OpMin:           Func("MIN"),
		algebra.OpMax:           Func("MAX"),
		algebra.OpAs:            Tmpl("{0} AS {1}"),
	}

	for _, op := range algebra.StringMatchFamily {
		r[op] = r[op].WithRewrite(stripMatchLiteral(op))
	}
	if opts.ExpandIn {
		r[algebra.OpIn] = r[algebra.OpIn].WithRewrite(expandIn)
		r[algebra.OpNotIn] = r[algebra.OpNotIn].WithRewrite(expandNotIn)
	}
	if opts.LikeAsRegex {
		r[algebra.OpLike] = Rewriting(likeToRegex)
	}
	return r
}

// Built-in dialect names.
const (
	SPARQL   = "sparql"
	Sesame   = "sesame"
	Virtuoso = "virtuoso"
	Strict   = "strict"
)

var builtins = map[string]*Dialect{
	SPARQL: MustNew(SPARQL, Options{
		LikeAsRegex: true,
		Inline:      InlineResources,
	}),
	Sesame: MustNew(Sesame, Options{
		ExpandIn:      true,
		LikeAsRegex:   true,
		AskOmitsWhere: true,
	}),
	Virtuoso: MustNew(Virtuoso, Options{
		ExpandIn:    true,
		LikeAsRegex: true,
		Inline:      InlineResources,
	}),
	Strict: MustNew(Strict, Options{
		Kinds: []algebra.QueryKind{algebra.KindTuple, algebra.KindBoolean},
	}),
}

// Default returns the sparql dialect.
func Default() *Dialect { return builtins[SPARQL] }

// Lookup returns the built-in dialect with the given name.
func Lookup(name string) (*Dialect, error) {
	d, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (available: %v)", name, Names())
	}
	return d, nil
}

// Names returns the built-in dialect names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
