package querydoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/roach88/rdfq/internal/algebra"
	"github.com/roach88/rdfq/internal/rdf"
)

// DecodeError reports a malformed document with its source position.
type DecodeError struct {
	Line    int
	Column  int
	Message string
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

func errorAt(n *yaml.Node, format string, args ...any) error {
	e := &DecodeError{Message: fmt.Sprintf(format, args...)}
	if n != nil {
		e.Line, e.Column = n.Line, n.Column
	}
	return e
}

// queryDoc mirrors the document layout. Expression and block positions are
// kept as raw nodes and decoded by hand.
type queryDoc struct {
	Kind     string               `yaml:"kind"`
	Distinct bool                 `yaml:"distinct"`
	Select   []yaml.Node          `yaml:"select"`
	Template []yaml.Node          `yaml:"template"`
	Sources  []string             `yaml:"sources"`
	Where    *yaml.Node           `yaml:"where"`
	Order    []yaml.Node          `yaml:"order"`
	Group    []yaml.Node          `yaml:"group"`
	Having   *yaml.Node           `yaml:"having"`
	Limit    *int64               `yaml:"limit"`
	Offset   *int64               `yaml:"offset"`
	Params   map[string]yaml.Node `yaml:"params"`
}

// Load reads and decodes a query document file.
func Load(path string) (*algebra.Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read query file: %w", err)
	}
	q, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return q, nil
}

// Decode decodes a query document. Unknown top-level fields are rejected.
func Decode(data []byte) (*algebra.Query, error) {
	var root yaml.Node
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &DecodeError{Message: "empty document"}
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return FromNode(&root)
}

// FromNode decodes a query from a parsed YAML node. Used for queries
// embedded in larger documents.
func FromNode(n *yaml.Node) (*algebra.Query, error) {
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil, errorAt(n, "query must be a mapping")
	}
	if err := checkQueryFields(n); err != nil {
		return nil, err
	}

	var doc queryDoc
	if err := n.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse query document: %w", err)
	}
	return doc.query(n)
}

// queryFields are the top-level keys of a query document. Nested keys are
// checked by the block and expression decoders.
var queryFields = map[string]bool{
	"kind": true, "distinct": true, "select": true, "template": true,
	"sources": true, "where": true, "order": true, "group": true,
	"having": true, "limit": true, "offset": true, "params": true,
}

func checkQueryFields(n *yaml.Node) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if !queryFields[key.Value] {
			return errorAt(key, "unknown query field %q", key.Value)
		}
	}
	return nil
}

func (d *queryDoc) query(n *yaml.Node) (*algebra.Query, error) {
	q := &algebra.Query{Kind: algebra.KindTuple, Distinct: d.Distinct, Limit: d.Limit, Offset: d.Offset}
	if d.Kind != "" {
		kind, err := algebra.ParseQueryKind(d.Kind)
		if err != nil {
			return nil, errorAt(n, "%v", err)
		}
		q.Kind = kind
	}

	for i := range d.Select {
		e, err := decodeExpr(&d.Select[i])
		if err != nil {
			return nil, err
		}
		q.Projection = append(q.Projection, e)
	}
	for i := range d.Template {
		b, err := decodeBlock(&d.Template[i])
		if err != nil {
			return nil, err
		}
		q.Projection = append(q.Projection, algebra.BlockExpr(b))
	}

	for _, src := range d.Sources {
		u, ok := parseIRI(src)
		if !ok {
			return nil, errorAt(n, "source %q must be written <iri>", src)
		}
		q.Sources = append(q.Sources, u)
	}

	if d.Where != nil {
		b, err := decodeBlock(d.Where)
		if err != nil {
			return nil, err
		}
		q.Where = b
	}

	for i := range d.Order {
		o, err := decodeOrder(&d.Order[i])
		if err != nil {
			return nil, err
		}
		q.OrderBy = append(q.OrderBy, o)
	}
	for i := range d.Group {
		e, err := decodeExpr(&d.Group[i])
		if err != nil {
			return nil, err
		}
		q.GroupBy = append(q.GroupBy, e)
	}
	if d.Having != nil {
		e, err := decodeExpr(d.Having)
		if err != nil {
			return nil, err
		}
		q.Having = e
	}

	if len(d.Params) > 0 {
		names := make([]string, 0, len(d.Params))
		for name := range d.Params {
			names = append(names, name)
		}
		sort.Strings(names)

		q.Params = make(map[string]rdf.Node, len(d.Params))
		for _, name := range names {
			pn := d.Params[name]
			node, err := decodeNode(&pn)
			if err != nil {
				return nil, err
			}
			q.Params[strings.TrimPrefix(name, "$")] = node
		}
	}
	return q, nil
}

func decodeOrder(n *yaml.Node) (algebra.OrderTerm, error) {
	if n.Kind == yaml.MappingNode {
		if v := mappingValue(n, "desc"); v != nil {
			e, err := decodeExpr(v)
			return algebra.Desc(e), err
		}
		if v := mappingValue(n, "asc"); v != nil {
			e, err := decodeExpr(v)
			return algebra.Asc(e), err
		}
	}
	e, err := decodeExpr(n)
	return algebra.Asc(e), err
}

// decodeBlock decodes a block mapping.
func decodeBlock(n *yaml.Node) (algebra.Block, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errorAt(n, "block must be a mapping")
	}

	var kind string
	var body *yaml.Node
	var filter, blocks *yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "pattern", "group", "union", "optional", "graph":
			if kind != "" {
				return nil, errorAt(key, "block has both %s and %s", kind, key.Value)
			}
			kind, body = key.Value, val
		case "filter":
			filter = val
		case "blocks":
			blocks = val
		default:
			return nil, errorAt(key, "unknown block field %q", key.Value)
		}
	}
	if kind == "" {
		return nil, errorAt(n, "block needs one of pattern, group, union, optional, graph")
	}
	if filter != nil && (kind == "pattern" || kind == "union") {
		return nil, errorAt(filter, "%s block cannot have a filter", kind)
	}
	if blocks != nil && kind != "graph" {
		return nil, errorAt(blocks, "blocks is only valid for graph")
	}

	var f algebra.Expression
	if filter != nil {
		var err error
		if f, err = decodeExpr(filter); err != nil {
			return nil, err
		}
	}

	switch kind {
	case "pattern":
		if body.Kind != yaml.SequenceNode || len(body.Content) != 3 {
			return nil, errorAt(body, "pattern must be a sequence of 3 terms")
		}
		var terms [3]algebra.Expression
		for i, t := range body.Content {
			e, err := decodeExpr(t)
			if err != nil {
				return nil, err
			}
			terms[i] = e
		}
		return algebra.Triple(terms[0], terms[1], terms[2]), nil
	case "group":
		children, err := decodeBlocks(body)
		if err != nil {
			return nil, err
		}
		return algebra.Group{Blocks: children, Filter: f}, nil
	case "union":
		children, err := decodeBlocks(body)
		if err != nil {
			return nil, err
		}
		return algebra.Union{Blocks: children}, nil
	case "optional":
		children, err := decodeBlocks(body)
		if err != nil {
			return nil, err
		}
		return algebra.Optional{Blocks: children, Filter: f}, nil
	default: // graph
		ctx, err := decodeExpr(body)
		if err != nil {
			return nil, err
		}
		var children []algebra.Block
		if blocks != nil {
			if children, err = decodeBlocks(blocks); err != nil {
				return nil, err
			}
		}
		return algebra.Graph{Context: ctx, Blocks: children, Filter: f}, nil
	}
}

func decodeBlocks(n *yaml.Node) ([]algebra.Block, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, errorAt(n, "expected a sequence of blocks")
	}
	out := make([]algebra.Block, 0, len(n.Content))
	for _, c := range n.Content {
		b, err := decodeBlock(c)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// decodeExpr decodes a term, an operation, a literal mapping, a collection,
// a subquery or an embedded block.
func decodeExpr(n *yaml.Node) (algebra.Expression, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.SequenceNode:
		items := make([]algebra.Expression, 0, len(n.Content))
		for _, c := range n.Content {
			e, err := decodeExpr(c)
			if err != nil {
				return nil, err
			}
			items = append(items, e)
		}
		return algebra.C(items), nil
	case yaml.MappingNode:
		if v := mappingValue(n, "op"); v != nil {
			return decodeOperation(n, v)
		}
		if v := mappingValue(n, "subquery"); v != nil {
			q, err := FromNode(v)
			if err != nil {
				return nil, err
			}
			return algebra.SubQuery{Query: q}, nil
		}
		if v := mappingValue(n, "block"); v != nil {
			b, err := decodeBlock(v)
			if err != nil {
				return nil, err
			}
			return algebra.BlockExpr(b), nil
		}
		if mappingValue(n, "value") != nil {
			lit, err := decodeLiteral(n)
			if err != nil {
				return nil, err
			}
			return algebra.C(lit), nil
		}
		return nil, errorAt(n, "expression mapping needs op, subquery, block or value")
	case yaml.AliasNode:
		return decodeExpr(n.Alias)
	default:
		return nil, errorAt(n, "unsupported expression node")
	}
}

func decodeOperation(n, opNode *yaml.Node) (algebra.Expression, error) {
	if opNode.Kind != yaml.ScalarNode || opNode.Value == "" {
		return nil, errorAt(opNode, "op must be an operator tag")
	}
	op := algebra.Operator(strings.ToUpper(opNode.Value))

	var args []algebra.Expression
	if a := mappingValue(n, "args"); a != nil {
		if a.Kind != yaml.SequenceNode {
			return nil, errorAt(a, "args must be a sequence")
		}
		for _, c := range a.Content {
			if c.Kind == yaml.ScalarNode && c.ShortTag() == "!!null" {
				args = append(args, nil)
				continue
			}
			e, err := decodeExpr(c)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
		}
	}
	return algebra.Op(op, args...), nil
}

// decodeScalar decodes a scalar term.
func decodeScalar(n *yaml.Node) (algebra.Expression, error) {
	switch n.ShortTag() {
	case "!!int":
		return algebra.C(rdf.NewTypedLiteral(n.Value, rdf.XSDInteger)), nil
	case "!!float":
		return algebra.C(rdf.NewTypedLiteral(n.Value, rdf.XSDDecimal)), nil
	case "!!bool":
		return algebra.C(rdf.NewTypedLiteral(strings.ToLower(n.Value), rdf.XSDBoolean)), nil
	case "!!null":
		return nil, errorAt(n, "null is not a term")
	}

	s := n.Value
	switch {
	case strings.HasPrefix(s, "?") && len(s) > 1:
		return algebra.V(s[1:]), nil
	case strings.HasPrefix(s, "$") && len(s) > 1:
		return algebra.P(s[1:]), nil
	}
	node, err := scalarNode(n)
	if err != nil {
		return nil, err
	}
	return algebra.C(node), nil
}

// decodeNode decodes a node constant. Variables are not nodes.
func decodeNode(n *yaml.Node) (rdf.Node, error) {
	switch n.Kind {
	case yaml.MappingNode:
		return decodeLiteral(n)
	case yaml.ScalarNode:
		e, err := decodeScalar(n)
		if err != nil {
			return nil, err
		}
		v, _ := algebra.ConstValue(e)
		node, ok := v.(rdf.Node)
		if !ok {
			return nil, errorAt(n, "%q is not an RDF term", n.Value)
		}
		return node, nil
	default:
		return nil, errorAt(n, "expected an RDF term")
	}
}

func scalarNode(n *yaml.Node) (rdf.Node, error) {
	s := n.Value
	if u, ok := parseIRI(s); ok {
		return u, nil
	}
	if strings.HasPrefix(s, "_:") {
		if len(s) == 2 {
			return nil, errorAt(n, "blank node without id")
		}
		return rdf.NewBlankNode(s[2:]), nil
	}
	return rdf.Normalize(rdf.NewLiteral(s)), nil
}

func parseIRI(s string) (rdf.URI, bool) {
	if len(s) > 2 && strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") {
		return rdf.NewURI(s[1 : len(s)-1]), true
	}
	return rdf.URI{}, false
}

type literalDoc struct {
	Value    string `yaml:"value"`
	Lang     string `yaml:"lang"`
	Datatype string `yaml:"datatype"`
}

func decodeLiteral(n *yaml.Node) (rdf.Literal, error) {
	var doc literalDoc
	if err := n.Decode(&doc); err != nil {
		return rdf.Literal{}, errorAt(n, "invalid literal: %v", err)
	}

	lit := rdf.Literal{Lexical: norm.NFC.String(doc.Value), Lang: doc.Lang}
	if doc.Datatype != "" {
		dt := doc.Datatype
		if u, ok := parseIRI(dt); ok {
			lit.Datatype = u
		} else if local, ok := strings.CutPrefix(dt, "xsd:"); ok {
			lit.Datatype = rdf.NewURI(rdf.XSDNamespace + local)
		} else {
			return rdf.Literal{}, errorAt(n, "datatype %q must be <iri> or xsd:name", dt)
		}
	}
	if err := lit.Validate(); err != nil {
		return rdf.Literal{}, errorAt(n, "%v", err)
	}
	return lit, nil
}

// mappingValue returns the value node for key, or nil.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}
