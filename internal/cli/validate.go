package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/rdfq/internal/algebra"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Dialect string // check the query kind against this dialect
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Kind     string   `json:"kind"`
	Problems []string `json:"problems,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <query.yaml>",
		Short: "Validate a query document without compiling it",
		Long: `Decode a query document and check its block tree.

Reports every structural problem at once (an optional root, a pattern
with a missing term, a literal with both language and datatype) plus
warnings for legal but suspicious shapes. With --dialect, the query
kind is also checked against the dialect.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "", "also check the query kind against a dialect")

	return cmd
}

func runValidate(opts *ValidateOptions, queryPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	q, err := loadQuery(queryPath)
	if err != nil {
		return outputCommandError(formatter, err)
	}
	formatter.VerboseLog("Decoded %s query from %s", q.Kind, queryPath)

	vr := algebra.Validate(q)
	result := ValidationResult{
		Valid:    vr.IsValid,
		Kind:     q.Kind.String(),
		Problems: vr.Problems,
		Warnings: vr.Warnings,
	}

	if opts.Dialect != "" {
		set, err := loadSettings("", opts.Dialect, "")
		if err != nil {
			return outputCommandError(formatter, err)
		}
		if !set.dialect.Supports(q.Kind) {
			result.Valid = false
			result.Problems = append(result.Problems,
				fmt.Sprintf("dialect %s does not support %s queries", set.dialect.Name(), q.Kind))
		}
	}

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	return outputValidateSuccess(formatter, result)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Valid %s query\n", result.Kind)
	for _, w := range result.Warnings {
		fmt.Fprintf(formatter.Writer, "  warning: %s\n", w)
	}
	return nil
}

// outputValidationErrors outputs validation problems.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	failed := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d problem(s)", len(result.Problems)))

	if formatter.IsJSON() {
		if err := formatter.Failure(ErrCodeInvalidQuery, result.Problems[0], result); err != nil {
			return err
		}
		// Validation failures = exit code 1 (test/validation failure)
		return failed
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, p := range result.Problems {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", ErrCodeInvalidQuery, p)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(formatter.Writer, "  warning: %s\n", w)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return failed
}
