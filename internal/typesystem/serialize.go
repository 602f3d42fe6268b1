package typesystem

import (
	"strconv"
	"strings"
)

// Serialize renders t in an explicit form that distinguishes every pair of
// unequal types, including variable namespaces and states.
func Serialize(t Type) string {
	var sb strings.Builder
	s := serializer{out: &sb}
	s.typ(t)
	return sb.String()
}

type serializer struct {
	out *strings.Builder
}

func (s serializer) write(parts ...string) {
	for _, part := range parts {
		s.out.WriteString(part)
	}
}

func (s serializer) quoted(value string) { s.write(strconv.Quote(value)) }

func (s serializer) list(types []Type) {
	for i, t := range types {
		if i > 0 {
			s.write(", ")
		}
		s.typ(t)
	}
}

func (s serializer) typ(t Type) {
	switch typ := t.(type) {
	case nil:
		s.write("nil")
	case Bottom:
		s.write("Bottom")
	case Top:
		s.write("Top")
	case Any:
		s.write("Any")
	case Literal:
		switch typ.Kind {
		case LiteralBoolean:
			s.write("Literal.Boolean(", strconv.FormatBool(typ.Bool), ")")
		case LiteralInteger:
			s.write("Literal.Integer(", strconv.FormatInt(typ.Int, 10), ")")
		default:
			s.write("Literal.String(")
			s.quoted(typ.Str)
			s.write(")")
		}
	case Primitive:
		s.write("Primitive(")
		s.quoted(typ.Name)
		s.write(")")
	case Optional:
		s.write("Optional(")
		s.typ(typ.Type)
		s.write(")")
	case Union:
		s.write("Union(")
		s.list(typ.Types)
		s.write(")")
	case Tuple:
		if typ.IsUnbounded() {
			s.write("Tuple.Unbounded(")
			s.typ(typ.Unbounded)
		} else {
			s.write("Tuple.Bounded(")
			s.list(typ.Bounded)
		}
		s.write(")")
	case Parametric:
		s.write("Parametric(")
		s.quoted(typ.Name)
		for _, parameter := range typ.Parameters {
			s.write(", ")
			s.typ(parameter)
		}
		s.write(")")
	case Callable:
		s.callable(typ)
	case TypedDictionary:
		s.write("TypedDictionary(")
		s.quoted(typ.Name)
		s.write(", total=", strconv.FormatBool(typ.Total))
		for _, field := range typ.Fields {
			s.write(", Field(")
			s.quoted(field.Name)
			s.write(", ")
			s.typ(field.Annotation)
			s.write(")")
		}
		s.write(")")
	case Variable:
		s.write("Variable(")
		s.quoted(typ.Name)
		s.write(
			", namespace=", strconv.Itoa(typ.Namespace),
			", state=", typ.State.String(),
			", simulated=", strconv.FormatBool(typ.Simulated),
			", variance=", typ.Variance.String(),
			", constraints=",
		)
		switch typ.Constraints.Kind {
		case BoundConstraint:
			s.write("Bound(")
			s.typ(typ.Constraints.Bound)
			s.write(")")
		case ExplicitConstraint:
			s.write("Explicit(")
			s.list(typ.Constraints.Explicit)
			s.write(")")
		case LiteralIntegersConstraint:
			s.write("LiteralIntegers")
		default:
			s.write("Unconstrained")
		}
		s.write(")")
	default:
		panic("typesystem: unknown type variant")
	}
}

func (s serializer) callable(c Callable) {
	s.write("Callable(")
	s.quoted(c.Name)
	s.write(", ")
	s.overload(c.Implementation)
	s.write(", overloads=[")
	for i, overload := range c.Overloads {
		if i > 0 {
			s.write(", ")
		}
		s.overload(overload)
	}
	s.write("], implicit=")
	if c.Implicit == nil {
		s.write("nil")
	} else {
		s.write("Implicit(")
		s.quoted(c.Implicit.Name)
		s.write(", ")
		s.typ(c.Implicit.Annotation)
		s.write(")")
	}
	s.write(")")
}

func (s serializer) overload(o Overload) {
	s.write("Overload(")
	if !o.Parameters.Defined {
		s.write("Undefined")
	} else {
		s.write("Defined(")
		for i, parameter := range o.Parameters.List {
			if i > 0 {
				s.write(", ")
			}
			switch parameter.Kind {
			case VariadicParameter:
				s.write("Variable(")
			case KeywordsParameter:
				s.write("Keywords(")
			default:
				s.write("Named(")
			}
			s.quoted(parameter.Name)
			s.write(", ")
			s.typ(parameter.Annotation)
			s.write(", ", strconv.FormatBool(parameter.Default), ")")
		}
		s.write(")")
	}
	s.write(", ")
	s.typ(o.Annotation)
	s.write(")")
}
