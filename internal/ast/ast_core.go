package ast

import "fmt"

// Position locates a node in the annotation source. The zero value means "synthesized".
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Line == 0 {
		return "<synthesized>"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is the base interface for all AST nodes.
type Node interface {
	Accept(v Visitor)
	GetPosition() Position
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Visitor walks expression and statement nodes.
type Visitor interface {
	VisitName(*Name)
	VisitAttribute(*Attribute)
	VisitSubscript(*Subscript)
	VisitCall(*Call)
	VisitStringLiteral(*StringLiteral)
	VisitIntegerLiteral(*IntegerLiteral)
	VisitBooleanLiteral(*BooleanLiteral)
	VisitEllipsis(*Ellipsis)
	VisitList(*List)
	VisitTuple(*Tuple)
	VisitDictionary(*Dictionary)
	VisitDefine(*Define)
	VisitPass(*Pass)
}
