package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes the compiled text to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Text     string // Compiled text for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nCompiled text:\n")
	for _, line := range strings.Split(strings.TrimRight(e.Text, "\n"), "\n") {
		fmt.Fprintf(&buf, "  | %s\n", line)
	}

	return buf.String()
}

func evaluateAssertion(r *Result, a Assertion) error {
	fail := func(expected, actual string) error {
		return &AssertionError{Type: a.Type, Expected: expected, Actual: actual, Text: r.Text}
	}

	switch a.Type {
	case AssertTextPrefix:
		if !strings.HasPrefix(r.Text, a.Text) {
			return fail(fmt.Sprintf("text starting with %q", a.Text), "different prefix")
		}
	case AssertTextContains:
		if !strings.Contains(r.Text, a.Text) {
			return fail(fmt.Sprintf("text containing %q", a.Text), "not found")
		}
	case AssertTextNotContains:
		if strings.Contains(r.Text, a.Text) {
			return fail(fmt.Sprintf("text without %q", a.Text), "found")
		}
	case AssertLabelCount:
		if len(r.Labels) != a.Count {
			return fail(fmt.Sprintf("%d labels", a.Count), fmt.Sprintf("%d labels", len(r.Labels)))
		}
	case AssertBinding:
		n, ok := r.Bindings[a.Name]
		if !ok {
			return fail(fmt.Sprintf("%s bound to %s", a.Name, a.Value), "unbound")
		}
		if n.String() != a.Value {
			return fail(fmt.Sprintf("%s bound to %s", a.Name, a.Value), n.String())
		}
	case AssertUnbound:
		if n, ok := r.Bindings[a.Name]; ok {
			return fail(fmt.Sprintf("%s unbound", a.Name), "bound to "+n.String())
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
