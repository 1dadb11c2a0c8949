package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/rdfq/internal/algebra"
	"github.com/roach88/rdfq/internal/sparql"
)

// Template is a cached compilation.
type Template struct {
	ID      string
	Dialect string
	Kind    algebra.QueryKind
	Text    string
	Labels  []TemplateLabel
	Seq     int64
}

// TemplateLabel is one placeholder a template expects, in first-encounter order.
type TemplateLabel struct {
	Name  string
	Param bool
}

// PutTemplate stores c under its fingerprint and returns the id.
// Storing the same compilation again is a no-op that returns the same id.
func (s *Store) PutTemplate(ctx context.Context, c *sparql.Compiled) (string, error) {
	if c == nil {
		return "", fmt.Errorf("put template: nil compilation")
	}
	id := c.Fingerprint()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("put template: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO templates (id, dialect, kind, text, seq)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, c.Dialect, c.Kind.String(), c.Text, s.clock.Next())
	if err != nil {
		return "", fmt.Errorf("put template: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("put template: %w", err)
	}
	if inserted == 0 {
		return id, nil
	}

	for i, l := range c.Labels.Entries() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO template_labels (template_id, position, name, is_param)
			VALUES (?, ?, ?, ?)
		`, id, i, l.Name, l.Param)
		if err != nil {
			return "", fmt.Errorf("put template label %s: %w", l.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("put template: commit: %w", err)
	}
	return id, nil
}

// GetTemplate returns the template with the given id.
// Returns an error wrapping ErrNotFound if it does not exist.
func (s *Store) GetTemplate(ctx context.Context, id string) (*Template, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, dialect, kind, text, seq
		FROM templates
		WHERE id = ?
	`, id)

	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get template %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get template %s: %w", id, err)
	}

	if t.Labels, err = s.readLabels(ctx, id); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTemplates returns every template ordered by seq ASC, id ASC COLLATE BINARY.
// Returns an empty slice (not nil) if the cache is empty.
func (s *Store) ListTemplates(ctx context.Context) ([]Template, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, dialect, kind, text, seq
		FROM templates
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}

	templates := []Template{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	// The pool has a single connection; release it before reading labels.
	rows.Close()

	for i := range templates {
		if templates[i].Labels, err = s.readLabels(ctx, templates[i].ID); err != nil {
			return nil, err
		}
	}
	return templates, nil
}

func (s *Store) readLabels(ctx context.Context, templateID string) ([]TemplateLabel, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, is_param
		FROM template_labels
		WHERE template_id = ?
		ORDER BY position ASC
	`, templateID)
	if err != nil {
		return nil, fmt.Errorf("query labels: %w", err)
	}
	defer rows.Close()

	labels := []TemplateLabel{}
	for rows.Next() {
		var l TemplateLabel
		if err := rows.Scan(&l.Name, &l.Param); err != nil {
			return nil, fmt.Errorf("scan label: %w", err)
		}
		labels = append(labels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate labels: %w", err)
	}
	return labels, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(sc scanner) (Template, error) {
	var t Template
	var kind string
	if err := sc.Scan(&t.ID, &t.Dialect, &kind, &t.Text, &t.Seq); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("scan template: %w", err)
	}
	k, err := algebra.ParseQueryKind(kind)
	if err != nil {
		return t, fmt.Errorf("scan template %s: %w", t.ID, err)
	}
	t.Kind = k
	return t, nil
}
