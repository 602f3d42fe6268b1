// Package parser turns annotation source text into ast expressions.
//
// The grammar covers the expression subset that appears in type annotations:
// dotted names, subscripts, calls with keyword arguments, string/integer/boolean
// literals, ellipsis, and list, tuple and dictionary displays.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/seraphln/pyre-check/internal/ast"
)

// ParseError reports annotation text that does not match the grammar.
type ParseError struct {
	Source   string
	Position ast.Position
	Message  string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Position.Line == 0 {
		return fmt.Sprintf("invalid annotation %q: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("invalid annotation %q at %s: %s", e.Source, e.Position, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(source string, pos lexer.Position, message string) *ParseError {
	return &ParseError{Source: source, Position: position(pos), Message: message}
}

// Parse parses a single annotation expression.
func Parse(source string) (ast.Expression, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &ParseError{Source: source, Message: "empty annotation"}
	}
	node, err := annotationParser.ParseString("", source)
	if err != nil {
		parseErr := &ParseError{Source: source, Message: err.Error(), Err: err}
		if perr, ok := err.(interface{ Position() lexer.Position }); ok {
			parseErr.Position = position(perr.Position())
		}
		return nil, parseErr
	}
	c := converter{source: source}
	return c.expression(node)
}

// MustParse is like Parse but panics on error. Intended for tests and fixed tables.
func MustParse(source string) ast.Expression {
	expression, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return expression
}

func position(pos lexer.Position) ast.Position {
	return ast.Position{Line: pos.Line, Column: pos.Column}
}

type converter struct {
	source string
}

func (c converter) expression(node *expressionNode) (ast.Expression, error) {
	result, err := c.atom(node.Atom)
	if err != nil {
		return nil, err
	}
	for _, trailer := range node.Trailers {
		pos := position(trailer.Pos)
		switch {
		case trailer.Attribute != nil:
			result = &ast.Attribute{Position: pos, Base: result, Attribute: *trailer.Attribute}
		case trailer.Subscript != nil:
			index, err := c.items(trailer.Subscript.Items)
			if err != nil {
				return nil, err
			}
			if len(index) == 0 {
				return nil, newParseError(c.source, trailer.Pos, "empty subscript")
			}
			result = &ast.Subscript{Position: pos, Base: result, Index: index}
		case trailer.Call != nil:
			arguments, err := c.arguments(trailer.Call.Items)
			if err != nil {
				return nil, err
			}
			result = &ast.Call{Position: pos, Callee: result, Arguments: arguments}
		}
	}
	return result, nil
}

func (c converter) atom(node *atomNode) (ast.Expression, error) {
	pos := position(node.Pos)
	switch {
	case node.Ellipsis:
		return &ast.Ellipsis{Position: pos}, nil
	case node.String != nil:
		value, err := unquote(*node.String)
		if err != nil {
			return nil, newParseError(c.source, node.Pos, fmt.Sprintf("malformed string %s", *node.String))
		}
		return &ast.StringLiteral{Position: pos, Value: value}, nil
	case node.Negative != nil:
		return &ast.IntegerLiteral{Position: pos, Value: -*node.Negative}, nil
	case node.Integer != nil:
		return &ast.IntegerLiteral{Position: pos, Value: *node.Integer}, nil
	case node.Name != nil:
		switch *node.Name {
		case "True":
			return &ast.BooleanLiteral{Position: pos, Value: true}, nil
		case "False":
			return &ast.BooleanLiteral{Position: pos, Value: false}, nil
		}
		return &ast.Name{Position: pos, Identifier: *node.Name}, nil
	case node.List != nil:
		elements, err := c.items(node.List.Items)
		if err != nil {
			return nil, err
		}
		return &ast.List{Position: pos, Elements: elements}, nil
	case node.Tuple != nil:
		elements, err := c.items(node.Tuple.Items)
		if err != nil {
			return nil, err
		}
		// (x) is grouping, (x,) is a tuple.
		if len(elements) == 1 && !node.Tuple.Items[0].Comma {
			return elements[0], nil
		}
		return &ast.Tuple{Position: pos, Elements: elements}, nil
	case node.Dictionary != nil:
		entries := make([]ast.Entry, 0, len(node.Dictionary.Entries))
		for i, entry := range node.Dictionary.Entries {
			if i < len(node.Dictionary.Entries)-1 && !entry.Comma {
				return nil, newParseError(c.source, entry.Pos, "expected ',' between dictionary entries")
			}
			key, err := c.expression(entry.Key)
			if err != nil {
				return nil, err
			}
			value, err := c.expression(entry.Value)
			if err != nil {
				return nil, err
			}
			entries = append(entries, ast.Entry{Key: key, Value: value})
		}
		return &ast.Dictionary{Position: pos, Entries: entries}, nil
	}
	return nil, newParseError(c.source, node.Pos, "unrecognized expression")
}

func (c converter) items(items []*itemNode) ([]ast.Expression, error) {
	elements := make([]ast.Expression, 0, len(items))
	for i, item := range items {
		if i < len(items)-1 && !item.Comma {
			return nil, newParseError(c.source, item.Pos, "expected ','")
		}
		element, err := c.expression(item.Value)
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}
	return elements, nil
}

func (c converter) arguments(items []*argumentNode) ([]ast.Argument, error) {
	arguments := make([]ast.Argument, 0, len(items))
	for i, item := range items {
		if i < len(items)-1 && !item.Comma {
			return nil, newParseError(c.source, item.Pos, "expected ',' between arguments")
		}
		var argument ast.Argument
		node := item.Positional
		if item.Named != nil {
			argument.Name = strings.TrimSpace(strings.TrimSuffix(item.Named.Keyword, "="))
			node = item.Named.Value
		}
		value, err := c.expression(node)
		if err != nil {
			return nil, err
		}
		argument.Value = value
		arguments = append(arguments, argument)
	}
	return arguments, nil
}

// unquote handles both quote styles; strconv.Unquote reads single quotes as runes.
func unquote(literal string) (string, error) {
	if strings.HasPrefix(literal, "'") {
		inner := literal[1 : len(literal)-1]
		inner = strings.ReplaceAll(inner, `\'`, `'`)
		inner = strings.ReplaceAll(inner, `"`, `\"`)
		literal = `"` + inner + `"`
	}
	return strconv.Unquote(literal)
}
