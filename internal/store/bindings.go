package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/rdfq/internal/rdf"
	"github.com/roach88/rdfq/internal/sparql"
)

// BindingSet is one stored set of values for a template's labels.
type BindingSet struct {
	ID         string
	TemplateID string
	Bindings   sparql.Bindings
	Seq        int64
}

// PutBindings stores b against the template and returns the new set id.
// The template must already be stored.
func (s *Store) PutBindings(ctx context.Context, templateID string, b sparql.Bindings) (string, error) {
	id, err := s.ids.NewID()
	if err != nil {
		return "", fmt.Errorf("put bindings: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("put bindings: begin: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM templates WHERE id = ?`, templateID).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("put bindings: %w", err)
	}
	if exists == 0 {
		return "", fmt.Errorf("put bindings: template %s: %w", templateID, ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO binding_sets (id, template_id, seq)
		VALUES (?, ?, ?)
	`, id, templateID, s.clock.Next()); err != nil {
		return "", fmt.Errorf("put bindings: %w", err)
	}

	for _, name := range b.Names() {
		n := b[name]
		if n == nil {
			continue
		}
		kind, value, lang, datatype := encodeNode(n)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bindings (set_id, name, kind, value, lang, datatype)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, name, kind, value, lang, datatype); err != nil {
			return "", fmt.Errorf("put binding %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("put bindings: commit: %w", err)
	}
	return id, nil
}

// GetBindings returns the binding set with the given id.
// Returns an error wrapping ErrNotFound if it does not exist.
func (s *Store) GetBindings(ctx context.Context, setID string) (*BindingSet, error) {
	set := BindingSet{ID: setID}
	err := s.db.QueryRowContext(ctx, `
		SELECT template_id, seq FROM binding_sets WHERE id = ?
	`, setID).Scan(&set.TemplateID, &set.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get bindings %s: %w", setID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get bindings %s: %w", setID, err)
	}

	if set.Bindings, err = s.readBindings(ctx, setID); err != nil {
		return nil, err
	}
	return &set, nil
}

// ListBindingSets returns the binding sets of a template ordered by
// seq ASC, id ASC COLLATE BINARY.
func (s *Store) ListBindingSets(ctx context.Context, templateID string) ([]BindingSet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, template_id, seq
		FROM binding_sets
		WHERE template_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, templateID)
	if err != nil {
		return nil, fmt.Errorf("query binding sets: %w", err)
	}

	sets := []BindingSet{}
	for rows.Next() {
		var set BindingSet
		if err := rows.Scan(&set.ID, &set.TemplateID, &set.Seq); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan binding set: %w", err)
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate binding sets: %w", err)
	}
	rows.Close()

	for i := range sets {
		if sets[i].Bindings, err = s.readBindings(ctx, sets[i].ID); err != nil {
			return nil, err
		}
	}
	return sets, nil
}

func (s *Store) readBindings(ctx context.Context, setID string) (sparql.Bindings, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, kind, value, lang, datatype
		FROM bindings
		WHERE set_id = ?
		ORDER BY name COLLATE BINARY ASC
	`, setID)
	if err != nil {
		return nil, fmt.Errorf("query bindings: %w", err)
	}
	defer rows.Close()

	out := sparql.Bindings{}
	for rows.Next() {
		var name, kind, value, lang, datatype string
		if err := rows.Scan(&name, &kind, &value, &lang, &datatype); err != nil {
			return nil, fmt.Errorf("scan binding: %w", err)
		}
		n, err := decodeNode(kind, value, lang, datatype)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", name, err)
		}
		out[name] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bindings: %w", err)
	}
	return out, nil
}

// encodeNode flattens a node into its storage columns.
func encodeNode(n rdf.Node) (kind, value, lang, datatype string) {
	kind, value = n.Kind().String(), n.Value()
	if l, ok := n.(rdf.Literal); ok {
		lang, datatype = l.Lang, l.Datatype.IRI
	}
	return kind, value, lang, datatype
}

// decodeNode is the inverse of encodeNode.
func decodeNode(kind, value, lang, datatype string) (rdf.Node, error) {
	switch kind {
	case rdf.KindURI.String():
		return rdf.NewURI(value), nil
	case rdf.KindBlank.String():
		return rdf.NewBlankNode(value), nil
	case rdf.KindLiteral.String():
		if lang != "" {
			return rdf.NewLangLiteral(value, lang), nil
		}
		if datatype != "" {
			return rdf.NewTypedLiteral(value, rdf.NewURI(datatype)), nil
		}
		return rdf.NewLiteral(value), nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", kind)
	}
}
