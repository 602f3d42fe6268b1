package ast

import "strings"

// Name is a bare identifier, e.g. int or None.
type Name struct {
	Position   Position
	Identifier string
}

func (n *Name) Accept(v Visitor)      { v.VisitName(n) }
func (n *Name) expressionNode()       {}
func (n *Name) GetPosition() Position { return n.Position }

// Attribute is dotted access, e.g. typing.List.
type Attribute struct {
	Position  Position
	Base      Expression
	Attribute string
}

func (a *Attribute) Accept(v Visitor)      { v.VisitAttribute(a) }
func (a *Attribute) expressionNode()       {}
func (a *Attribute) GetPosition() Position { return a.Position }

// Subscript is an indexing expression, e.g. typing.Dict[str, int].
// A tuple inside the brackets is flattened into Index.
type Subscript struct {
	Position Position
	Base     Expression
	Index    []Expression
}

func (s *Subscript) Accept(v Visitor)      { v.VisitSubscript(s) }
func (s *Subscript) expressionNode()       {}
func (s *Subscript) GetPosition() Position { return s.Position }

// Argument is a call argument. Name is empty for positional arguments.
type Argument struct {
	Name  string
	Value Expression
}

// Call is a call expression, e.g. typing.TypeVar("T", bound=int).
type Call struct {
	Position  Position
	Callee    Expression
	Arguments []Argument
}

func (c *Call) Accept(v Visitor)      { v.VisitCall(c) }
func (c *Call) expressionNode()       {}
func (c *Call) GetPosition() Position { return c.Position }

// StringLiteral holds the unquoted value of a string literal.
type StringLiteral struct {
	Position Position
	Value    string
}

func (s *StringLiteral) Accept(v Visitor)      { v.VisitStringLiteral(s) }
func (s *StringLiteral) expressionNode()       {}
func (s *StringLiteral) GetPosition() Position { return s.Position }

type IntegerLiteral struct {
	Position Position
	Value    int64
}

func (i *IntegerLiteral) Accept(v Visitor)      { v.VisitIntegerLiteral(i) }
func (i *IntegerLiteral) expressionNode()       {}
func (i *IntegerLiteral) GetPosition() Position { return i.Position }

// BooleanLiteral is True or False.
type BooleanLiteral struct {
	Position Position
	Value    bool
}

func (b *BooleanLiteral) Accept(v Visitor)      { v.VisitBooleanLiteral(b) }
func (b *BooleanLiteral) expressionNode()       {}
func (b *BooleanLiteral) GetPosition() Position { return b.Position }

// Ellipsis is the literal "...".
type Ellipsis struct {
	Position Position
}

func (e *Ellipsis) Accept(v Visitor)      { v.VisitEllipsis(e) }
func (e *Ellipsis) expressionNode()       {}
func (e *Ellipsis) GetPosition() Position { return e.Position }

// List is a bracketed list, e.g. the parameter list of typing.Callable[[int], str].
type List struct {
	Position Position
	Elements []Expression
}

func (l *List) Accept(v Visitor)      { v.VisitList(l) }
func (l *List) expressionNode()       {}
func (l *List) GetPosition() Position { return l.Position }

// Tuple is a parenthesized tuple; () is the empty tuple.
type Tuple struct {
	Position Position
	Elements []Expression
}

func (t *Tuple) Accept(v Visitor)      { v.VisitTuple(t) }
func (t *Tuple) expressionNode()       {}
func (t *Tuple) GetPosition() Position { return t.Position }

// Entry is a single key: value pair of a dictionary display.
type Entry struct {
	Key   Expression
	Value Expression
}

// Dictionary is a dictionary display, e.g. the field map of a functional TypedDict.
type Dictionary struct {
	Position Position
	Entries  []Entry
}

func (d *Dictionary) Accept(v Visitor)      { v.VisitDictionary(d) }
func (d *Dictionary) expressionNode()       {}
func (d *Dictionary) GetPosition() Position { return d.Position }

// NewReference builds a Name/Attribute chain from a dotted reference.
func NewReference(reference string) Expression {
	parts := strings.Split(reference, ".")
	var expression Expression = &Name{Identifier: parts[0]}
	for _, part := range parts[1:] {
		expression = &Attribute{Base: expression, Attribute: part}
	}
	return expression
}

// ReferenceOf returns the dotted reference spelled by a Name/Attribute chain.
func ReferenceOf(expression Expression) (string, bool) {
	switch e := expression.(type) {
	case *Name:
		return e.Identifier, true
	case *Attribute:
		base, ok := ReferenceOf(e.Base)
		if !ok {
			return "", false
		}
		return base + "." + e.Attribute, true
	default:
		return "", false
	}
}
