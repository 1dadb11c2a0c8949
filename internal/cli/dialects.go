package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/rdfq/internal/dialect"
)

// DialectInfo describes a built-in dialect.
type DialectInfo struct {
	Name          string   `json:"name"`
	Kinds         []string `json:"kinds"`
	Inline        string   `json:"inline"`
	ExpandIn      bool     `json:"expand_in"`
	LikeAsRegex   bool     `json:"like_as_regex"`
	AskOmitsWhere bool     `json:"ask_omits_where"`
	CastPrefix    string   `json:"cast_prefix"`
	Operators     int      `json:"operators"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "dialects",
		Short:         "List built-in dialects",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDialects(rootOpts, cmd)
		},
	}
}

func runDialects(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	var infos []DialectInfo
	for _, name := range dialect.Names() {
		d, err := dialect.Lookup(name)
		if err != nil {
			return outputCommandError(formatter, err)
		}
		infos = append(infos, describeDialect(d))
	}

	if formatter.IsJSON() {
		return formatter.Success(infos)
	}
	for _, info := range infos {
		fmt.Fprintf(formatter.Writer, "%-10s kinds=%v inline=%s expand_in=%t like_as_regex=%t ask_omits_where=%t cast=%s operators=%d\n",
			info.Name, info.Kinds, info.Inline, info.ExpandIn, info.LikeAsRegex,
			info.AskOmitsWhere, info.CastPrefix, info.Operators)
	}
	return nil
}

func describeDialect(d *dialect.Dialect) DialectInfo {
	opts := d.Options()
	kinds := d.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return DialectInfo{
		Name:          d.Name(),
		Kinds:         names,
		Inline:        opts.Inline.String(),
		ExpandIn:      opts.ExpandIn,
		LikeAsRegex:   opts.LikeAsRegex,
		AskOmitsWhere: opts.AskOmitsWhere,
		CastPrefix:    opts.CastPrefix,
		Operators:     len(d.Operators()),
	}
}
