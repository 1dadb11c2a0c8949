package harness

import (
	"github.com/roach88/rdfq/internal/sparql"
	"github.com/roach88/rdfq/internal/store"
)

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	Pass bool

	// Dialect is the dialect the query was compiled with.
	Dialect string

	// Kind is the compiled query kind, e.g. "tuple".
	Kind string

	// Text is the compiled text as read back from the template store.
	Text string

	// TemplateID is the fingerprint the template was stored under.
	TemplateID string

	// Labels are the stored template labels in first-encounter order.
	Labels []store.TemplateLabel

	// Bindings are the values read back from the stored binding set.
	Bindings sparql.Bindings

	// ErrorCode is the QueryError code when compilation failed.
	ErrorCode string

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Bindings: sparql.Bindings{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
