package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/rdfq/internal/sparql"
	"github.com/roach88/rdfq/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Dialect string // dialect name, overrides the config file
	Config  string // CUE config file path
	Cache   string // sqlite template cache path, overrides the config file
	Output  string // output file path for the compiled text
}

// CompileResult is the output of the compile command.
type CompileResult struct {
	ID         string            `json:"id"`
	Dialect    string            `json:"dialect"`
	Kind       string            `json:"kind"`
	Text       string            `json:"text"`
	Labels     []LabelView       `json:"labels"`
	Bindings   map[string]string `json:"bindings"`
	BindingSet string            `json:"binding_set,omitempty"`
}

// LabelView is a placeholder label in CLI output.
type LabelView struct {
	Name  string `json:"name"`
	Param bool   `json:"param"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <query.yaml>",
		Short: "Compile a query document to SPARQL text",
		Long: `Compile a YAML query document to SPARQL text for the selected dialect.

Constants become generated placeholder variables; their values and the
values of named parameters are printed as the binding set. With a cache,
the template is stored under its fingerprint and the binding set is
stored alongside it.

Examples:
  rdfq compile people.yaml
  rdfq compile people.yaml --dialect sesame
  rdfq compile people.yaml --config rdfq.cue --cache rdfq.db
  rdfq compile people.yaml -o people.rq --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "", "target dialect (default from config, else sparql)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "CUE config file")
	cmd.Flags().StringVar(&opts.Cache, "cache", "", "sqlite template cache path")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the compiled text to a file")

	return cmd
}

func runCompile(opts *CompileOptions, queryPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	set, err := loadSettings(opts.Config, opts.Dialect, opts.Cache)
	if err != nil {
		return outputCommandError(formatter, err)
	}
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr(), set.config.LogLevel())

	q, err := loadQuery(queryPath)
	if err != nil {
		return outputCommandError(formatter, err)
	}

	compiler := sparql.NewCompiler(set.dialect, sparql.WithLogger(logger))
	compiled, err := compiler.Compile(q)
	if err != nil {
		return outputCommandError(formatter, err)
	}
	bindings := compiled.Bindings(q)

	result := &CompileResult{
		ID:       compiled.Fingerprint(),
		Dialect:  compiled.Dialect,
		Kind:     compiled.Kind.String(),
		Text:     compiled.Text,
		Labels:   labelViews(compiled.Labels.Entries()),
		Bindings: bindingViews(bindings),
	}

	if set.cache != "" {
		setID, err := cacheCompiled(cmd.Context(), set.cache, compiled, bindings, logger)
		if err != nil {
			return outputCommandError(formatter, err)
		}
		result.BindingSet = setID
		formatter.VerboseLog("Cached template %s in %s", result.ID, set.cache)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(withNewline(compiled.Text)), 0o644); err != nil {
			return outputCommandError(formatter, &LoadError{
				Code:    ErrCodeWriteFailed,
				Message: fmt.Sprintf("writing output file: %v", err),
				Err:     err,
			})
		}
	}

	return outputCompileSuccess(formatter, result, opts.Output)
}

// cacheCompiled stores the template and its binding set.
func cacheCompiled(ctx context.Context, path string, compiled *sparql.Compiled, bindings sparql.Bindings, logger *slog.Logger) (string, error) {
	st, err := store.Open(path)
	if err != nil {
		return "", &LoadError{Code: ErrCodeCacheFailed, Message: fmt.Sprintf("opening cache: %v", err), Err: err}
	}
	defer st.Close()

	id, err := st.PutTemplate(ctx, compiled)
	if err != nil {
		return "", &LoadError{Code: ErrCodeCacheFailed, Message: fmt.Sprintf("storing template: %v", err), Err: err}
	}
	setID, err := st.PutBindings(ctx, id, bindings)
	if err != nil {
		return "", &LoadError{Code: ErrCodeCacheFailed, Message: fmt.Sprintf("storing bindings: %v", err), Err: err}
	}
	logger.Debug("template cached", "template", id, "binding_set", setID)
	return setID, nil
}

// outputCompileSuccess prints the compiled text followed by the labels
// and the binding set.
func outputCompileSuccess(formatter *OutputFormatter, result *CompileResult, outputFile string) error {
	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprint(w, withNewline(result.Text))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "# template %s (%s, %s)\n", result.ID, result.Dialect, result.Kind)
	writeLabels(w, result.Labels, result.Bindings)
	if result.BindingSet != "" {
		fmt.Fprintf(w, "# binding set %s\n", result.BindingSet)
	}
	if outputFile != "" {
		fmt.Fprintf(w, "# wrote %s\n", outputFile)
	}
	return nil
}

func labelViews(labels []sparql.Label) []LabelView {
	out := make([]LabelView, len(labels))
	for i, l := range labels {
		out[i] = LabelView{Name: l.Name, Param: l.Param}
	}
	return out
}

// bindingViews renders bound nodes in N-Triples form.
func bindingViews(b sparql.Bindings) map[string]string {
	out := make(map[string]string, len(b))
	for name, n := range b {
		if n != nil {
			out[name] = n.String()
		}
	}
	return out
}

func withNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
