package typesystem

// Type is the interface for every type value the checker reasons about.
// The set of implementations is closed; algorithms switch over them exhaustively.
// Values are immutable: every rewrite returns a new tree.
type Type interface {
	String() string
	isType()
}

// Bottom is the empty type (no values). It marks unsolved positions.
type Bottom struct{}

// Top is the unknown type, produced when construction cannot recognize an annotation.
type Top struct{}

// Any is the gradual, dynamically checked type.
type Any struct{}

type LiteralKind int

const (
	LiteralBoolean LiteralKind = iota
	LiteralInteger
	LiteralString
)

// Literal is a value-level literal type, e.g. Literal[5].
// Only the field selected by Kind is meaningful.
type Literal struct {
	Kind LiteralKind
	Bool bool
	Int  int64
	Str  string
}

// Primitive is a nominal class name, e.g. int or foo.Bar.
type Primitive struct {
	Name string
}

// Optional is "T or None". NoneType itself is Optional{Bottom}.
type Optional struct {
	Type Type
}

// Union is a normalized set of alternatives: flat, deduplicated, sorted, at least two members.
type Union struct {
	Types []Type
}

// Tuple is either a fixed-arity tuple (Bounded) or a homogeneous variable-length
// tuple (Unbounded != nil).
type Tuple struct {
	Bounded   []Type
	Unbounded Type
}

// Parametric is a generic nominal type applied to arguments, e.g. list[int].
type Parametric struct {
	Name       string
	Parameters []Type
}

// Field is a single named entry of a typed dictionary.
type Field struct {
	Name       string
	Annotation Type
}

// TypedDictionary is a structural record type. Fields are sorted by name.
type TypedDictionary struct {
	Name   string
	Fields []Field
	Total  bool
}

func (Bottom) isType()          {}
func (Top) isType()             {}
func (Any) isType()             {}
func (Literal) isType()         {}
func (Primitive) isType()       {}
func (Optional) isType()        {}
func (Union) isType()           {}
func (Tuple) isType()           {}
func (Parametric) isType()      {}
func (Callable) isType()        {}
func (TypedDictionary) isType() {}
func (Variable) isType()        {}

func (t Bottom) String() string          { return render(t, fullStyle) }
func (t Top) String() string             { return render(t, fullStyle) }
func (t Any) String() string             { return render(t, fullStyle) }
func (t Literal) String() string         { return render(t, fullStyle) }
func (t Primitive) String() string       { return render(t, fullStyle) }
func (t Optional) String() string        { return render(t, fullStyle) }
func (t Union) String() string           { return render(t, fullStyle) }
func (t Tuple) String() string           { return render(t, fullStyle) }
func (t Parametric) String() string      { return render(t, fullStyle) }
func (t Callable) String() string        { return render(t, fullStyle) }
func (t TypedDictionary) String() string { return render(t, fullStyle) }
func (t Variable) String() string        { return render(t, fullStyle) }

// IsUnbounded reports whether the tuple is the homogeneous variable-length form.
func (t Tuple) IsUnbounded() bool { return t.Unbounded != nil }

// Elements returns the element types: the bounded list, or the single unbounded element.
func (t Tuple) Elements() []Type {
	if t.Unbounded != nil {
		return []Type{t.Unbounded}
	}
	return t.Bounded
}
