package sparql

import (
	"strconv"

	"github.com/roach88/rdfq/internal/rdf"
)

// Label is one placeholder recorded during compilation.
type Label struct {
	// Name is the variable name without the leading '?'.
	Name string

	// Param is true when the label was registered by a named parameter.
	Param bool

	// Value is the constant for generated labels. For parameters it is the
	// value visible in the parameter's scope at compile time, or nil.
	Value rdf.Node
}

// Labels is the insertion-ordered placeholder registry of one compilation.
type Labels struct {
	entries []Label
	consts  map[uint64][]int // node hash -> indexes into entries
	params  map[string]int   // param name -> index into entries
	counter int
}

func newLabels() *Labels {
	return &Labels{
		consts: make(map[uint64][]int),
		params: make(map[string]int),
	}
}

// constant returns the label for n, allocating _c<N> on first encounter.
func (l *Labels) constant(n rdf.Node) string {
	h := rdf.Hash(n)
	for _, i := range l.consts[h] {
		if l.entries[i].Value == n {
			return l.entries[i].Name
		}
	}
	l.counter++
	name := "_c" + strconv.Itoa(l.counter)
	l.consts[h] = append(l.consts[h], len(l.entries))
	l.entries = append(l.entries, Label{Name: name, Value: n})
	return name
}

// param registers name as its own label. The first non-nil scoped value wins.
func (l *Labels) param(name string, scoped rdf.Node) {
	if i, ok := l.params[name]; ok {
		if l.entries[i].Value == nil {
			l.entries[i].Value = scoped
		}
		return
	}
	l.params[name] = len(l.entries)
	l.entries = append(l.entries, Label{Name: name, Param: true, Value: scoped})
}

// Len returns the number of labels.
func (l *Labels) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Entries returns the labels in first-encounter order.
func (l *Labels) Entries() []Label {
	if l == nil {
		return nil
	}
	out := make([]Label, len(l.entries))
	copy(out, l.entries)
	return out
}

// Lookup returns the label with the given name.
func (l *Labels) Lookup(name string) (Label, bool) {
	if l == nil {
		return Label{}, false
	}
	if i, ok := l.params[name]; ok {
		return l.entries[i], true
	}
	for _, e := range l.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Label{}, false
}
