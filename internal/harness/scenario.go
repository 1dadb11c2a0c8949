package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/rdfq/internal/algebra"
)

// Scenario defines a compiler conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Dialect is the built-in dialect to compile with. Defaults to sparql.
	Dialect string `yaml:"dialect,omitempty"`

	// Query is the query document, decoded by querydoc.FromNode.
	Query yaml.Node `yaml:"query"`

	// ExpectError is the QueryError code compilation must fail with.
	// When set, assertions are not evaluated.
	ExpectError string `yaml:"expect_error,omitempty"`

	// Assertions validate the compiled text and bindings.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Assertion validates one aspect of a compilation.
type Assertion struct {
	// Type specifies the assertion type:
	// - "text_prefix", "text_contains", "text_not_contains": match Text
	// - "label_count": the template has Count labels
	// - "binding": label Name is bound to Value (N-Triples form)
	// - "unbound": label Name has no binding
	Type string `yaml:"type"`

	// Text is the substring matched by the text assertions.
	Text string `yaml:"text,omitempty"`

	// Count is the expected number of labels (used by label_count).
	Count int `yaml:"count,omitempty"`

	// Name is the label name without '?' (used by binding and unbound).
	Name string `yaml:"name,omitempty"`

	// Value is the expected bound node (used by binding).
	Value string `yaml:"value,omitempty"`
}

// Assertion type constants.
const (
	AssertTextPrefix      = "text_prefix"
	AssertTextContains    = "text_contains"
	AssertTextNotContains = "text_not_contains"
	AssertLabelCount      = "label_count"
	AssertBinding         = "binding"
	AssertUnbound         = "unbound"
)

// strictScenario mirrors Scenario for known-field checking.
type strictScenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Dialect     string      `yaml:"dialect"`
	Query       any         `yaml:"query"`
	ExpectError string      `yaml:"expect_error"`
	Assertions  []Assertion `yaml:"assertions"`
}

var errorCodes = map[string]bool{
	string(algebra.ErrCodeUnsupportedOperator):  true,
	string(algebra.ErrCodeUnsupportedOperation): true,
	string(algebra.ErrCodeUnsupportedQueryKind): true,
	string(algebra.ErrCodeMalformedBlock):       true,
	string(algebra.ErrCodeMalformedExpression):  true,
	string(algebra.ErrCodeUnsupportedConstant):  true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:".
	// The query is checked by querydoc, so the strict pass holds it as a
	// plain value rather than a node.
	var strict strictScenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&strict); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml scenario in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if prev, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("%s: scenario name %q already used by %s", path, s.Name, prev)
		}
		seen[s.Name] = path
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Query.Kind == 0 {
		return fmt.Errorf("query is required")
	}

	if s.ExpectError != "" {
		if !errorCodes[s.ExpectError] {
			return fmt.Errorf("expect_error: unknown error code %q", s.ExpectError)
		}
		if len(s.Assertions) > 0 {
			return fmt.Errorf("assertions cannot be combined with expect_error")
		}
		return nil
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTextPrefix, AssertTextContains, AssertTextNotContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertLabelCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for label_count", index)
		}
	case AssertBinding:
		if a.Name == "" || a.Value == "" {
			return fmt.Errorf("assertions[%d]: name and value are required for binding", index)
		}
	case AssertUnbound:
		if a.Name == "" {
			return fmt.Errorf("assertions[%d]: name is required for unbound", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
