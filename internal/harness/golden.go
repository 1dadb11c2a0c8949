package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot renders the result in the golden file format:
//
//	scenario: <name>
//	dialect: <dialect>
//	kind: <kind>
//	--- text
//	<compiled text>
//	--- labels
//	<name> const|param
//	--- bindings
//	<name> = <N-Triples node>
//
// A failed compilation renders only the header and "error: <code>".
func (r *Result) Snapshot(name string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", name)
	fmt.Fprintf(&b, "dialect: %s\n", r.Dialect)
	if r.ErrorCode != "" {
		fmt.Fprintf(&b, "error: %s\n", r.ErrorCode)
		return []byte(b.String())
	}

	fmt.Fprintf(&b, "kind: %s\n", r.Kind)
	b.WriteString("--- text\n")
	b.WriteString(r.Text)
	if !strings.HasSuffix(r.Text, "\n") {
		b.WriteString("\n")
	}

	b.WriteString("--- labels\n")
	for _, l := range r.Labels {
		role := "const"
		if l.Param {
			role = "param"
		}
		fmt.Fprintf(&b, "%s %s\n", l.Name, role)
	}

	b.WriteString("--- bindings\n")
	for _, name := range r.Bindings.Names() {
		fmt.Fprintf(&b, "%s = %s\n", name, r.Bindings[name])
	}
	return []byte(b.String())
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also check Pass.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against its golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, result.Snapshot(scenarioName))
}
