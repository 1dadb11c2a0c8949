package sparql

import (
	"sort"

	"github.com/roach88/rdfq/internal/algebra"
	"github.com/roach88/rdfq/internal/rdf"
)

// Bindings maps placeholder names to the values a backend binds.
type Bindings map[string]rdf.Node

// Names returns the bound names, sorted.
func (b Bindings) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExtractBindings builds the binding table for labels.
//
// Generated labels bind their constant. Parameter labels bind q.Params[name]
// when present, else the value seen in a subquery scope during compilation;
// a parameter with neither is skipped and stays a free variable.
//
// Passing a different descriptor with the same shape rebinds a cached
// template without recompiling.
func ExtractBindings(labels *Labels, q *algebra.Query) Bindings {
	out := make(Bindings, labels.Len())
	for _, l := range labels.Entries() {
		if !l.Param {
			out[l.Name] = l.Value
			continue
		}
		if q != nil {
			if v, ok := q.Params[l.Name]; ok && v != nil {
				out[l.Name] = v
				continue
			}
		}
		if l.Value != nil {
			out[l.Name] = l.Value
		}
	}
	return out
}
