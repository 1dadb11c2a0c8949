// Package config loads rdfq configuration files written in CUE.
//
// A file is unified with an embedded schema, so unknown fields and values
// outside the allowed sets are reported with their file position:
//
//	dialect: "virtuoso"
//	options: {
//		inline:   "all"
//		preamble: "DEFINE input:inference 'urn:rules'"
//	}
//	cache: "rdfq.db"
//	log: level: "debug"
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/rdfq/internal/dialect"
)

//go:embed schema.cue
var schemaCUE string

// Config is a decoded configuration file.
type Config struct {
	// Dialect names the built-in dialect the options are applied to.
	Dialect string `json:"dialect"`

	// Options override the built-in dialect's options.
	Options Overrides `json:"options"`

	// Cache is the sqlite path of the template cache. Empty disables it.
	Cache string `json:"cache"`

	Log LogConfig `json:"log"`
}

// Overrides holds the dialect options a file sets. Nil fields keep the
// built-in value.
type Overrides struct {
	ExpandIn         *bool   `json:"expandIn"`
	LikeAsRegex      *bool   `json:"likeAsRegex"`
	Inline           *string `json:"inline"`
	AskOmitsWhere    *bool   `json:"askOmitsWhere"`
	FunctionFallback *bool   `json:"functionFallback"`
	CastPrefix       *string `json:"castPrefix"`
	Preamble         *string `json:"preamble"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level string `json:"level"`
}

// Error is a configuration error with the CUE position it refers to.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Dialect: dialect.SPARQL, Log: LogConfig{Level: "info"}}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, path)
}

// Parse validates CUE source against the schema and decodes it.
// filename is used in error positions.
func Parse(data []byte, filename string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("config schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err, filename, cue.Value{})
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err, filename, v)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return nil, formatCUEError(err, filename, v)
	}
	return &cfg, nil
}

// BuildDialect returns the configured dialect: the named built-in, or a
// new dialect of the same name with the overrides applied.
func (c *Config) BuildDialect() (*dialect.Dialect, error) {
	base, err := dialect.Lookup(c.Dialect)
	if err != nil {
		return nil, err
	}
	o := c.Options
	if o == (Overrides{}) {
		return base, nil
	}

	opts := base.Options()
	setBool(&opts.ExpandIn, o.ExpandIn)
	setBool(&opts.LikeAsRegex, o.LikeAsRegex)
	setBool(&opts.AskOmitsWhere, o.AskOmitsWhere)
	setBool(&opts.FunctionFallback, o.FunctionFallback)
	if o.Inline != nil {
		mode, err := dialect.ParseInlineMode(*o.Inline)
		if err != nil {
			return nil, &Error{Field: "options.inline", Message: err.Error()}
		}
		opts.Inline = mode
	}
	if o.CastPrefix != nil {
		opts.CastPrefix = *o.CastPrefix
	}
	if o.Preamble != nil {
		opts.Preamble = *o.Preamble
	}
	return dialect.New(c.Dialect, opts)
}

// LogLevel maps log.level to a slog level. Unknown values mean info.
func (c *Config) LogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// formatCUEError converts a CUE error into an *Error naming the failing
// field. Positions in the config file win over positions in the schema,
// so a failed disjunction points at the offending value. When no error
// carries a position, the position of the value at the error path is used.
func formatCUEError(err error, filename string, v cue.Value) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &Error{Field: "config", Message: err.Error()}
	}

	first := errs[0]
	var pos, fallback token.Pos
	for _, e := range errs {
		for _, p := range errors.Positions(e) {
			if !p.IsValid() {
				continue
			}
			if p.Filename() == filename {
				pos, first = p, e
				break
			}
			if !fallback.IsValid() {
				fallback = p
			}
		}
		if pos.IsValid() {
			break
		}
	}

	path := errors.Path(first)
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	if !pos.IsValid() && len(path) > 0 && v.Exists() {
		if at := v.LookupPath(cue.ParsePath(strings.Join(path, "."))); at.Exists() {
			pos = at.Pos()
		}
	}
	if !pos.IsValid() {
		pos = fallback
	}

	field := strings.Join(path, ".")
	if field == "" {
		field = "config"
	}
	format, args := first.Msg()
	return &Error{Field: field, Message: fmt.Sprintf(format, args...), Pos: pos}
}
