package sparql

import (
	"fmt"
	"log/slog"

	"github.com/roach88/rdfq/internal/algebra"
	"github.com/roach88/rdfq/internal/convert"
	"github.com/roach88/rdfq/internal/dialect"
	"github.com/roach88/rdfq/internal/rdf"
)

// Compiler renders query descriptors as text for one dialect.
// It is safe for concurrent use.
type Compiler struct {
	dialect    *dialect.Dialect
	converters convert.Registry
	logger     *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithConverters sets the registry used to promote scalar constants to typed
// literals. Defaults to convert.Default().
func WithConverters(r convert.Registry) Option {
	return func(c *Compiler) { c.converters = r }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) { c.logger = l }
}

// NewCompiler creates a compiler for d. A nil dialect means dialect.Default().
func NewCompiler(d *dialect.Dialect, opts ...Option) *Compiler {
	if d == nil {
		d = dialect.Default()
	}
	c := &Compiler{dialect: d}
	for _, opt := range opts {
		opt(c)
	}
	if c.converters == nil {
		c.converters = convert.Default()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Dialect returns the compiler's dialect.
func (c *Compiler) Dialect() *dialect.Dialect { return c.dialect }

// Compiled is the result of one compilation. It is immutable.
type Compiled struct {
	Text    string
	Kind    algebra.QueryKind
	Dialect string
	Labels  *Labels
}

// Fingerprint returns the content address of the compiled template:
// the dialect name and text, hashed with rdf.DomainTemplate.
func (c *Compiled) Fingerprint() string {
	data := make([]byte, 0, len(c.Dialect)+1+len(c.Text))
	data = append(data, c.Dialect...)
	data = append(data, 0x00)
	data = append(data, c.Text...)
	return rdf.Fingerprint(rdf.DomainTemplate, data)
}

// Bindings extracts the binding table for q. See ExtractBindings.
func (c *Compiled) Bindings(q *algebra.Query) Bindings {
	return ExtractBindings(c.Labels, q)
}

// Compile renders q. On error no partial output is returned.
//
// Errors are *algebra.QueryError values (wrapped); use the algebra.Is*
// helpers to classify them.
func (c *Compiler) Compile(q *algebra.Query) (*Compiled, error) {
	if q == nil {
		return nil, fmt.Errorf("compile: nil query")
	}
	if !c.dialect.Supports(q.Kind) {
		return nil, fmt.Errorf("compile: %w", algebra.NewUnsupportedQueryKindError(q.Kind, c.dialect.Name()))
	}

	s := newState(c)
	if p := c.dialect.Preamble(); p != "" {
		s.buf.WriteString(p)
		if p[len(p)-1] != '\n' {
			s.buf.WriteByte('\n')
		}
	}
	if err := s.visitQuery(q, q.Kind); err != nil {
		c.logger.Debug("compile failed",
			"dialect", c.dialect.Name(),
			"kind", q.Kind.String(),
			"error", err)
		return nil, fmt.Errorf("compile %s query: %w", q.Kind, err)
	}

	out := &Compiled{
		Text:    s.buf.String(),
		Kind:    q.Kind,
		Dialect: c.dialect.Name(),
		Labels:  s.labels,
	}
	c.logger.Debug("compiled query",
		"dialect", out.Dialect,
		"kind", q.Kind.String(),
		"labels", out.Labels.Len(),
		"text", out.Text)
	return out, nil
}
