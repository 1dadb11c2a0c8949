// Package dialect defines backend-specific operator emission rules.
//
// A Dialect is an immutable table from operator tag to Rule, plus the
// syntax options a backend needs (IN expansion, LIKE as regex, constant
// inlining, the ASK/WHERE convention). It is built once by New and only
// read during compilation, so a single Dialect may be shared by any number
// of concurrent compilations.
//
// Rules have one of five emission forms:
//
//	Infix     a op b op c        (n-ary; nested operations parenthesized)
//	Prefix    op a               (nested operation parenthesized)
//	Func      name(a, b, ...)
//	Template  "STRSTARTS(STR({0}), {1})" with positional placeholders
//	Cast      prefix:localname(a)
//
// and may carry a Rewrite that replaces the operation with an equivalent
// expression before emission (IN expansion, LIKE to regex, connective
// collapse).
package dialect
