package ast

// Parameter is a parameter of a Define signature.
// Name carries the "*" or "**" prefix for variadic and keyword parameters.
type Parameter struct {
	Name       string
	Annotation Expression // nil if unannotated
	Value      Expression // default value; nil if required
}

// Define represents a function definition.
// Synthesized declarations (e.g. the methods of a typed dictionary) carry a Pass body.
type Define struct {
	Position         Position
	Name             string
	Parameters       []Parameter
	ReturnAnnotation Expression // nil if unannotated
	Decorators       []Expression
	Parent           string // enclosing class reference, empty for module-level functions
	Body             []Statement
}

func (d *Define) Accept(v Visitor)      { v.VisitDefine(d) }
func (d *Define) statementNode()        {}
func (d *Define) GetPosition() Position { return d.Position }

// IsMethod reports whether the define belongs to a class body.
func (d *Define) IsMethod() bool { return d.Parent != "" }

// Pass is the empty statement.
type Pass struct {
	Position Position
}

func (p *Pass) Accept(v Visitor)      { v.VisitPass(p) }
func (p *Pass) statementNode()        {}
func (p *Pass) GetPosition() Position { return p.Position }
