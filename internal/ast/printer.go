package ast

import (
	"strconv"
	"strings"
)

// Format renders a node back to annotation source text.
func Format(node Node) string {
	p := &printer{}
	node.Accept(p)
	return p.out.String()
}

type printer struct {
	out strings.Builder
}

func (p *printer) join(elements []Expression) {
	for i, e := range elements {
		if i > 0 {
			p.out.WriteString(", ")
		}
		e.Accept(p)
	}
}

func (p *printer) VisitName(n *Name) { p.out.WriteString(n.Identifier) }

func (p *printer) VisitAttribute(a *Attribute) {
	a.Base.Accept(p)
	p.out.WriteByte('.')
	p.out.WriteString(a.Attribute)
}

func (p *printer) VisitSubscript(s *Subscript) {
	s.Base.Accept(p)
	p.out.WriteByte('[')
	p.join(s.Index)
	p.out.WriteByte(']')
}

func (p *printer) VisitCall(c *Call) {
	c.Callee.Accept(p)
	p.out.WriteByte('(')
	for i, arg := range c.Arguments {
		if i > 0 {
			p.out.WriteString(", ")
		}
		if arg.Name != "" {
			p.out.WriteString(arg.Name)
			p.out.WriteByte('=')
		}
		arg.Value.Accept(p)
	}
	p.out.WriteByte(')')
}

func (p *printer) VisitStringLiteral(s *StringLiteral) { p.out.WriteString(strconv.Quote(s.Value)) }

func (p *printer) VisitIntegerLiteral(i *IntegerLiteral) {
	p.out.WriteString(strconv.FormatInt(i.Value, 10))
}

func (p *printer) VisitBooleanLiteral(b *BooleanLiteral) {
	if b.Value {
		p.out.WriteString("True")
	} else {
		p.out.WriteString("False")
	}
}

func (p *printer) VisitEllipsis(*Ellipsis) { p.out.WriteString("...") }

func (p *printer) VisitList(l *List) {
	p.out.WriteByte('[')
	p.join(l.Elements)
	p.out.WriteByte(']')
}

func (p *printer) VisitTuple(t *Tuple) {
	p.out.WriteByte('(')
	p.join(t.Elements)
	if len(t.Elements) == 1 {
		p.out.WriteByte(',')
	}
	p.out.WriteByte(')')
}

func (p *printer) VisitDictionary(d *Dictionary) {
	p.out.WriteByte('{')
	for i, entry := range d.Entries {
		if i > 0 {
			p.out.WriteString(", ")
		}
		entry.Key.Accept(p)
		p.out.WriteString(": ")
		entry.Value.Accept(p)
	}
	p.out.WriteByte('}')
}

func (p *printer) VisitDefine(d *Define) {
	for _, decorator := range d.Decorators {
		p.out.WriteByte('@')
		decorator.Accept(p)
		p.out.WriteByte('\n')
	}
	p.out.WriteString("def ")
	p.out.WriteString(d.Name)
	p.out.WriteByte('(')
	for i, param := range d.Parameters {
		if i > 0 {
			p.out.WriteString(", ")
		}
		p.out.WriteString(param.Name)
		if param.Annotation != nil {
			p.out.WriteString(": ")
			param.Annotation.Accept(p)
		}
		if param.Value != nil {
			p.out.WriteString(" = ")
			param.Value.Accept(p)
		}
	}
	p.out.WriteByte(')')
	if d.ReturnAnnotation != nil {
		p.out.WriteString(" -> ")
		d.ReturnAnnotation.Accept(p)
	}
	p.out.WriteString(":")
	for _, statement := range d.Body {
		p.out.WriteString(" ")
		statement.Accept(p)
	}
}

func (p *printer) VisitPass(*Pass) { p.out.WriteString("pass") }
