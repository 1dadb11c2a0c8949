package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/rdfq/internal/algebra"
	"github.com/roach88/rdfq/internal/dialect"
	"github.com/roach88/rdfq/internal/querydoc"
	"github.com/roach88/rdfq/internal/sparql"
	"github.com/roach88/rdfq/internal/store"
	"github.com/roach88/rdfq/internal/testutil"
)

// Harness is the test execution engine.
// It compiles a scenario's query and round-trips the result through a
// template store with deterministic ids and seq values.
type Harness struct {
	store    *store.Store
	compiler *sparql.Compiler
	logger   *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Resolve the dialect and decode the query document
// 2. Compile; a scenario with expect_error stops here
// 3. Store the template and its binding set, then read both back
// 4. Evaluate assertions against the stored values
//
// An error is returned only when the scenario itself cannot be executed
// (unknown dialect, undecodable query, store failure). Compilation
// outcomes are reported through the Result.
func Run(scenario *Scenario) (*Result, error) {
	name := scenario.Dialect
	if name == "" {
		name = dialect.SPARQL
	}
	d, err := dialect.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	q, err := querydoc.FromNode(&scenario.Query)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: query: %w", scenario.Name, err)
	}

	st, err := store.Open(":memory:",
		store.WithIDGenerator(testutil.NewSequenceIDGenerator()),
		store.WithClock(testutil.NewSeqClock(0)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	h := &Harness{
		store:    st,
		compiler: sparql.NewCompiler(d, sparql.WithLogger(logger)),
		logger:   logger,
	}

	result := NewResult()
	result.Dialect = d.Name()
	if err := h.execute(context.Background(), scenario, q, result); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return result, nil
}

func (h *Harness) execute(ctx context.Context, scenario *Scenario, q *algebra.Query, result *Result) error {
	compiled, err := h.compiler.Compile(q)
	if err != nil {
		var qe *algebra.QueryError
		if !errors.As(err, &qe) {
			result.AddError(fmt.Sprintf("compile failed: %v", err))
			return nil
		}
		result.ErrorCode = string(qe.Code)
		switch {
		case scenario.ExpectError == "":
			result.AddError(fmt.Sprintf("compile failed: %v", err))
		case scenario.ExpectError != result.ErrorCode:
			result.AddError(fmt.Sprintf("expected error %s, got %s: %v", scenario.ExpectError, result.ErrorCode, err))
		}
		return nil
	}
	if scenario.ExpectError != "" {
		result.AddError(fmt.Sprintf("expected error %s, compiled successfully", scenario.ExpectError))
	}
	result.Kind = compiled.Kind.String()

	id, err := h.store.PutTemplate(ctx, compiled)
	if err != nil {
		return err
	}
	tmpl, err := h.store.GetTemplate(ctx, id)
	if err != nil {
		return err
	}
	if tmpl.Text != compiled.Text {
		result.AddError("stored template text differs from compiled text")
	}
	result.TemplateID = id
	result.Text = tmpl.Text
	result.Labels = tmpl.Labels

	setID, err := h.store.PutBindings(ctx, id, compiled.Bindings(q))
	if err != nil {
		return err
	}
	set, err := h.store.GetBindings(ctx, setID)
	if err != nil {
		return err
	}
	result.Bindings = set.Bindings

	h.logger.Debug("scenario compiled",
		"scenario", scenario.Name,
		"template", id,
		"labels", len(tmpl.Labels))

	for _, a := range scenario.Assertions {
		if err := evaluateAssertion(result, a); err != nil {
			result.AddError(err.Error())
		}
	}
	return nil
}
