package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/rdfq/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Cache string // sqlite template cache path
}

// TemplateView is a cached template in CLI output.
type TemplateView struct {
	ID          string           `json:"id"`
	Dialect     string           `json:"dialect"`
	Kind        string           `json:"kind"`
	Text        string           `json:"text,omitempty"`
	Labels      []LabelView      `json:"labels"`
	BindingSets []BindingSetView `json:"binding_sets,omitempty"`
}

// BindingSetView is a stored binding set in CLI output.
type BindingSetView struct {
	ID       string            `json:"id"`
	Bindings map[string]string `json:"bindings"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show [template-id]",
		Short: "Show cached templates",
		Long: `Show a cached template with its stored binding sets.

Without an id, lists every cached template in insertion order.

Examples:
  rdfq show --cache rdfq.db
  rdfq show 3f9a0c... --cache rdfq.db --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runShow(opts, id, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Cache, "cache", "", "sqlite template cache path (required)")
	_ = cmd.MarkFlagRequired("cache")

	return cmd
}

func runShow(opts *ShowOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	// Opening a missing path would create an empty cache.
	if _, err := os.Stat(opts.Cache); err != nil {
		return outputCommandError(formatter, &LoadError{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("cache not found: %s", opts.Cache),
			Err:     err,
		})
	}

	st, err := store.Open(opts.Cache)
	if err != nil {
		return outputCommandError(formatter, &LoadError{Code: ErrCodeCacheFailed, Message: fmt.Sprintf("opening cache: %v", err), Err: err})
	}
	defer st.Close()

	if id == "" {
		return showAll(formatter, st, cmd)
	}
	return showOne(formatter, st, id, cmd)
}

func showAll(formatter *OutputFormatter, st *store.Store, cmd *cobra.Command) error {
	templates, err := st.ListTemplates(cmd.Context())
	if err != nil {
		return outputCommandError(formatter, &LoadError{Code: ErrCodeCacheFailed, Message: err.Error(), Err: err})
	}

	views := make([]TemplateView, len(templates))
	for i, t := range templates {
		views[i] = templateView(t)
		views[i].Text = ""
	}

	if formatter.IsJSON() {
		return formatter.Success(views)
	}
	if len(views) == 0 {
		fmt.Fprintln(formatter.Writer, "No cached templates.")
		return nil
	}
	for _, v := range views {
		fmt.Fprintf(formatter.Writer, "%s  %-8s %-7s %d label(s)\n", v.ID, v.Dialect, v.Kind, len(v.Labels))
	}
	return nil
}

func showOne(formatter *OutputFormatter, st *store.Store, id string, cmd *cobra.Command) error {
	ctx := cmd.Context()

	t, err := st.GetTemplate(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return outputCommandError(formatter, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("template not found: %s", id), Err: err})
		}
		return outputCommandError(formatter, &LoadError{Code: ErrCodeCacheFailed, Message: err.Error(), Err: err})
	}
	sets, err := st.ListBindingSets(ctx, id)
	if err != nil {
		return outputCommandError(formatter, &LoadError{Code: ErrCodeCacheFailed, Message: err.Error(), Err: err})
	}

	view := templateView(*t)
	for _, s := range sets {
		view.BindingSets = append(view.BindingSets, BindingSetView{ID: s.ID, Bindings: bindingViews(s.Bindings)})
	}

	if formatter.IsJSON() {
		return formatter.Success(view)
	}

	w := formatter.Writer
	fmt.Fprint(w, withNewline(view.Text))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "# template %s (%s, %s)\n", view.ID, view.Dialect, view.Kind)
	if len(view.BindingSets) == 0 {
		writeLabels(w, view.Labels, nil)
		return nil
	}
	for _, s := range view.BindingSets {
		fmt.Fprintf(w, "# binding set %s\n", s.ID)
		writeLabels(w, view.Labels, s.Bindings)
	}
	return nil
}

func templateView(t store.Template) TemplateView {
	labels := make([]LabelView, len(t.Labels))
	for i, l := range t.Labels {
		labels[i] = LabelView{Name: l.Name, Param: l.Param}
	}
	return TemplateView{
		ID:      t.ID,
		Dialect: t.Dialect,
		Kind:    t.Kind.String(),
		Text:    t.Text,
		Labels:  labels,
	}
}
