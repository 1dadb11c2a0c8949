package algebra

// Block is a graph pattern in the where tree.
//
// This is a sealed interface - only types in this package implement it.
// Blocks have no boolean operations; see Not.
//
// Block types:
//   - Pattern: a single triple pattern
//   - Group: nested blocks with an optional trailing filter
//   - Union: alternative blocks
//   - Optional: blocks that may fail to match, with optional filter
//   - Graph: blocks scoped to a named graph context, with optional filter
type Block interface {
	block() // Marker method - seals interface to this package
}

// Pattern is a triple pattern. Subject, Predicate and Object are usually Var
// or Const (URI, blank node, literal) expressions.
type Pattern struct {
	Subject   Expression
	Predicate Expression
	Object    Expression
}

func (Pattern) block() {}

// Group is a braced group of blocks.
type Group struct {
	Blocks []Block
	Filter Expression // nil = no filter
}

func (Group) block() {}

// Union holds alternatives; each solution matches one of Blocks.
type Union struct {
	Blocks []Block
}

func (Union) block() {}

// Optional holds blocks that extend solutions when they match.
// An Optional cannot be the root of a where tree.
type Optional struct {
	Blocks []Block
	Filter Expression // nil = no filter
}

func (Optional) block() {}

// Graph scopes blocks to a named graph context.
type Graph struct {
	Context Expression
	Blocks  []Block
	Filter  Expression // nil = no filter
}

func (Graph) block() {}

// Triple creates a pattern block.
func Triple(s, p, o Expression) Pattern {
	return Pattern{Subject: s, Predicate: p, Object: o}
}

// GroupOf creates a group block without filter.
func GroupOf(blocks ...Block) Group {
	return Group{Blocks: blocks}
}

// UnionOf creates a union block.
func UnionOf(blocks ...Block) Union {
	return Union{Blocks: blocks}
}

// OptionalOf creates an optional block without filter.
func OptionalOf(blocks ...Block) Optional {
	return Optional{Blocks: blocks}
}

// GraphOf creates a named graph block without filter.
func GraphOf(context Expression, blocks ...Block) Graph {
	return Graph{Context: context, Blocks: blocks}
}

// DerefBlock normalizes pointer variants to their value form.
// Returns nil for nil pointers and unknown implementations.
func DerefBlock(b Block) Block {
	switch v := b.(type) {
	case Pattern, Group, Union, Optional, Graph:
		return v
	case *Pattern:
		if v != nil {
			return *v
		}
	case *Group:
		if v != nil {
			return *v
		}
	case *Union:
		if v != nil {
			return *v
		}
	case *Optional:
		if v != nil {
			return *v
		}
	case *Graph:
		if v != nil {
			return *v
		}
	}
	return nil
}

// BlockName returns the lower-case variant name of a block.
func BlockName(b Block) string {
	switch DerefBlock(b).(type) {
	case Pattern:
		return "pattern"
	case Group:
		return "group"
	case Union:
		return "union"
	case Optional:
		return "optional"
	case Graph:
		return "graph"
	default:
		return "unknown"
	}
}
