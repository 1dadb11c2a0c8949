package algebra

// Operator is a symbolic operation tag. Dialects map tags to emission rules.
type Operator string

// Comparison and boolean connectives.
const (
	OpEq  Operator = "EQ"
	OpNe  Operator = "NE"
	OpLt  Operator = "LT"
	OpGt  Operator = "GT"
	OpLoe Operator = "LOE"
	OpGoe Operator = "GOE"
	OpAnd Operator = "AND"
	OpOr  Operator = "OR"
	OpNot Operator = "NOT"
)

// Membership and string matching.
const (
	OpIn               Operator = "IN"
	OpNotIn            Operator = "NOT_IN"
	OpLike             Operator = "LIKE"
	OpMatches          Operator = "MATCHES"
	OpMatchesIC        Operator = "MATCHES_IC"
	OpStartsWith       Operator = "STARTS_WITH"
	OpStartsWithIC     Operator = "STARTS_WITH_IC"
	OpEndsWith         Operator = "ENDS_WITH"
	OpEndsWithIC       Operator = "ENDS_WITH_IC"
	OpStringContains   Operator = "STRING_CONTAINS"
	OpStringContainsIC Operator = "STRING_CONTAINS_IC"
	OpEqIgnoreCase     Operator = "EQ_IGNORE_CASE"
	OpStringIsEmpty    Operator = "STRING_IS_EMPTY"
)

// Arithmetic and casts.
const (
	OpAdd    Operator = "ADD"
	OpSub    Operator = "SUB"
	OpMult   Operator = "MULT"
	OpDiv    Operator = "DIV"
	OpNegate Operator = "NEGATE"
	OpCast   Operator = "CAST"
)

// Existence and term tests.
const (
	OpExists    Operator = "EXISTS"
	OpNotExists Operator = "NOT_EXISTS"
	OpIsNull    Operator = "IS_NULL"
	OpIsNotNull Operator = "IS_NOT_NULL"
	OpIsURI     Operator = "IS_URI"
	OpIsBlank   Operator = "IS_BLANK"
	OpIsLiteral Operator = "IS_LITERAL"
	OpSameTerm  Operator = "SAME_TERM"
)

// Term accessors and string functions.
const (
	OpStr      Operator = "STR"
	OpLang     Operator = "LANG"
	OpDatatype Operator = "DATATYPE"
	OpLower    Operator = "LOWER"
	OpUpper    Operator = "UPPER"
	OpStrlen   Operator = "STRLEN"
	OpConcat   Operator = "CONCAT"
	OpCoalesce Operator = "COALESCE"
)

// Aggregates and projection aliasing.
const (
	OpCount         Operator = "COUNT"
	OpCountDistinct Operator = "COUNT_DISTINCT"
	OpSum           Operator = "SUM"
	OpAvg           Operator = "AVG"
	OpMin           Operator = "MIN"
	OpMax           Operator = "MAX"
	OpAs            Operator = "AS"
)

// StringMatchFamily lists the operators whose second argument is a raw
// string pattern. Dialects strip language tags and datatypes from a constant
// literal in that position.
var StringMatchFamily = []Operator{
	OpMatches, OpMatchesIC,
	OpStartsWith, OpStartsWithIC,
	OpEndsWith, OpEndsWithIC,
	OpStringContains, OpStringContainsIC,
}

// IsExistence reports whether op is an existence test whose subquery
// argument may be inlined as a bare graph pattern.
func (op Operator) IsExistence() bool {
	return op == OpExists || op == OpNotExists
}
