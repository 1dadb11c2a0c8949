package algebra

import (
	"errors"
	"fmt"
)

// QueryError represents an error detected while compiling a query.
//
// Query errors include:
//   - Unsupported operator: the dialect has no rule for an operator tag
//   - Unsupported operation: negation requested on a Block
//   - Unsupported query kind: the dialect does not compile the query kind
//   - Malformed block: a block in a structurally invalid position
//   - Malformed expression: argument count or shape does not fit the rule
//   - Unsupported constant: a constant that has no term representation
//
// All query errors abort the compile call; partial output is discarded.
type QueryError struct {
	// Code identifies the error category.
	Code QueryErrorCode

	// Message is a human-readable description.
	Message string

	// Operator is the operator tag involved, if any.
	Operator Operator

	// Kind is the query kind involved, if any.
	Kind QueryKind

	// Block is the block variant name involved, if any.
	Block string
}

// QueryErrorCode categorizes query errors.
type QueryErrorCode string

const (
	// ErrCodeUnsupportedOperator indicates an operator tag without a rule.
	ErrCodeUnsupportedOperator QueryErrorCode = "UNSUPPORTED_OPERATOR"

	// ErrCodeUnsupportedOperation indicates negation of a Block.
	ErrCodeUnsupportedOperation QueryErrorCode = "UNSUPPORTED_OPERATION"

	// ErrCodeUnsupportedQueryKind indicates a query kind the dialect does not compile.
	ErrCodeUnsupportedQueryKind QueryErrorCode = "UNSUPPORTED_QUERY_KIND"

	// ErrCodeMalformedBlock indicates a block in a structurally invalid position.
	ErrCodeMalformedBlock QueryErrorCode = "MALFORMED_BLOCK"

	// ErrCodeMalformedExpression indicates arguments that do not fit an operator rule.
	ErrCodeMalformedExpression QueryErrorCode = "MALFORMED_EXPRESSION"

	// ErrCodeUnsupportedConstant indicates a constant with no term representation.
	ErrCodeUnsupportedConstant QueryErrorCode = "UNSUPPORTED_CONSTANT"
)

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Operator != "" {
		return fmt.Sprintf("%s: %s (operator=%s)", e.Code, e.Message, e.Operator)
	}
	if e.Block != "" {
		return fmt.Sprintf("%s: %s (block=%s)", e.Code, e.Message, e.Block)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnsupportedOperator returns true if err is an unsupported operator error.
// Uses errors.As to handle wrapped errors.
func IsUnsupportedOperator(err error) bool {
	return hasCode(err, ErrCodeUnsupportedOperator)
}

// IsUnsupportedOperation returns true if err is an unsupported operation error.
func IsUnsupportedOperation(err error) bool {
	return hasCode(err, ErrCodeUnsupportedOperation)
}

// IsUnsupportedQueryKind returns true if err is an unsupported query kind error.
func IsUnsupportedQueryKind(err error) bool {
	return hasCode(err, ErrCodeUnsupportedQueryKind)
}

// IsMalformedBlock returns true if err is a malformed block error.
func IsMalformedBlock(err error) bool {
	return hasCode(err, ErrCodeMalformedBlock)
}

// IsMalformedExpression returns true if err is a malformed expression error.
func IsMalformedExpression(err error) bool {
	return hasCode(err, ErrCodeMalformedExpression)
}

// IsUnsupportedConstant returns true if err is an unsupported constant error.
func IsUnsupportedConstant(err error) bool {
	return hasCode(err, ErrCodeUnsupportedConstant)
}

func hasCode(err error, code QueryErrorCode) bool {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Code == code
	}
	return false
}

// NewUnsupportedOperatorError creates a QueryError naming the operator tag.
func NewUnsupportedOperatorError(op Operator) *QueryError {
	return &QueryError{
		Code:     ErrCodeUnsupportedOperator,
		Message:  fmt.Sprintf("no rule for operator %s", op),
		Operator: op,
	}
}

// NewUnsupportedOperationError creates a QueryError for an operation that
// the operand type does not support.
func NewUnsupportedOperationError(what string) *QueryError {
	return &QueryError{
		Code:    ErrCodeUnsupportedOperation,
		Message: "unsupported operation: " + what,
	}
}

// NewUnsupportedQueryKindError creates a QueryError for a query kind the
// named dialect does not compile.
func NewUnsupportedQueryKindError(kind QueryKind, dialect string) *QueryError {
	return &QueryError{
		Code:    ErrCodeUnsupportedQueryKind,
		Message: fmt.Sprintf("dialect %q does not support %s queries", dialect, kind),
		Kind:    kind,
	}
}

// NewMalformedBlockError creates a QueryError for a misplaced or incomplete block.
func NewMalformedBlockError(block, message string) *QueryError {
	return &QueryError{
		Code:    ErrCodeMalformedBlock,
		Message: message,
		Block:   block,
	}
}

// NewMalformedExpressionError creates a QueryError for arguments that do not
// fit the operator's rule.
func NewMalformedExpressionError(op Operator, message string) *QueryError {
	return &QueryError{
		Code:     ErrCodeMalformedExpression,
		Message:  message,
		Operator: op,
	}
}

// NewUnsupportedConstantError creates a QueryError for a constant value with
// no term representation.
func NewUnsupportedConstantError(value any) *QueryError {
	return &QueryError{
		Code:    ErrCodeUnsupportedConstant,
		Message: fmt.Sprintf("constant of type %T has no RDF term form", value),
	}
}
