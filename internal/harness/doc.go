// Package harness provides conformance testing for the query compiler.
//
// The harness loads YAML scenarios, compiles each query with the named
// dialect, caches the result in an in-memory template store, and checks the
// compiled text and the stored bindings against the scenario's assertions.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	dialect: sesame
//	query:
//	  kind: select
//	  select: ["?x"]
//	  where:
//	    group:
//	      - pattern: ["?x", "?p", "?o"]
//	    filter: {op: IN, args: ["?o", ["a", "b"]]}
//	assertions:
//	  - type: text_contains
//	    text: "(?o = ?_c1) || (?o = ?_c2)"
//	  - type: binding
//	    name: _c1
//	    value: '"a"'
//
// The query field is a query document (see package querydoc). A scenario
// that sets expect_error instead expects compilation to fail with that
// error code.
//
// # Assertion Types
//
//   - text_prefix, text_contains, text_not_contains: match the compiled text
//   - label_count: number of labels recorded for the template
//   - binding: a label is bound to a value, written in N-Triples form
//   - unbound: a label has no binding
//
// # Deterministic Testing
//
// Each scenario runs against a fresh ":memory:" store with sequential
// binding-set ids and a logical clock starting at 0, so golden snapshots
// are byte-identical across runs.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/select_basic.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
