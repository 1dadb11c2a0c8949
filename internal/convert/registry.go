package convert

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/roach88/rdfq/internal/rdf"
)

// Registry is the type-converter capability used to promote scalars.
type Registry interface {
	// Supports reports whether values of type t can be converted.
	Supports(t reflect.Type) bool

	// DatatypeFor returns the datatype for t. The zero URI means unsupported.
	DatatypeFor(t reflect.Type) rdf.URI

	// ToString returns the canonical lexical form of value.
	ToString(value any) (string, error)
}

// Converter formats one Go type as an XSD lexical form.
type Converter struct {
	Datatype rdf.URI
	Format   func(v reflect.Value) (string, error)
}

// Converters is the default Registry implementation.
//
// Register may be called during setup; lookups are safe for concurrent use
// with each other and with Register.
type Converters struct {
	mu     sync.RWMutex
	byType map[reflect.Type]Converter
	byKind map[reflect.Kind]Converter
}

// New creates an empty registry.
func New() *Converters {
	return &Converters{
		byType: make(map[reflect.Type]Converter),
		byKind: make(map[reflect.Kind]Converter),
	}
}

// Register adds or replaces the converter for t.
func (c *Converters) Register(t reflect.Type, conv Converter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byType[t] = conv
}

// RegisterFor adds or replaces the converter for the type of T.
func RegisterFor[T any](c *Converters, datatype rdf.URI, format func(T) string) {
	c.Register(reflect.TypeFor[T](), Converter{
		Datatype: datatype,
		Format: func(v reflect.Value) (string, error) {
			return format(v.Interface().(T)), nil
		},
	})
}

func (c *Converters) registerKind(k reflect.Kind, conv Converter) {
	c.byKind[k] = conv
}

// lookup finds the converter for t: exact type first, then the
// underlying builtin kind.
func (c *Converters) lookup(t reflect.Type) (Converter, bool) {
	if t == nil {
		return Converter{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if conv, ok := c.byType[t]; ok {
		return conv, true
	}
	conv, ok := c.byKind[t.Kind()]
	return conv, ok
}

// Supports implements Registry.
func (c *Converters) Supports(t reflect.Type) bool {
	_, ok := c.lookup(t)
	return ok
}

// DatatypeFor implements Registry.
func (c *Converters) DatatypeFor(t reflect.Type) rdf.URI {
	conv, _ := c.lookup(t)
	return conv.Datatype
}

// ToString implements Registry.
func (c *Converters) ToString(value any) (string, error) {
	v := reflect.ValueOf(value)
	conv, ok := c.lookup(reflect.TypeOf(value))
	if !ok {
		return "", fmt.Errorf("no converter for %T", value)
	}
	s, err := conv.Format(v)
	if err != nil {
		return "", fmt.Errorf("convert %T: %w", value, err)
	}
	return s, nil
}

// ToLiteral converts value to a typed literal through r.
// Returns ok=false when r does not support the value's type.
func ToLiteral(r Registry, value any) (lit rdf.Literal, ok bool, err error) {
	t := reflect.TypeOf(value)
	if r == nil || t == nil || !r.Supports(t) {
		return rdf.Literal{}, false, nil
	}
	s, err := r.ToString(value)
	if err != nil {
		return rdf.Literal{}, true, err
	}
	return rdf.NewTypedLiteral(s, r.DatatypeFor(t)), true, nil
}
