package typesystem

import (
	"strconv"
	"strings"

	"github.com/seraphln/pyre-check/internal/config"
)

type style int

const (
	fullStyle style = iota
	conciseStyle
)

// Concise renders t for diagnostics: unqualified names and Python-like signatures.
func Concise(t Type) string { return render(t, conciseStyle) }

func render(t Type, s style) string {
	var sb strings.Builder
	p := printer{out: &sb, style: s}
	p.typ(t)
	return sb.String()
}

type printer struct {
	out   *strings.Builder
	style style
}

func (p printer) write(parts ...string) {
	for _, part := range parts {
		p.out.WriteString(part)
	}
}

func (p printer) name(name string) string {
	if p.style == conciseStyle {
		if i := strings.LastIndex(name, "."); i >= 0 {
			return name[i+1:]
		}
	}
	return name
}

func (p printer) list(types []Type) {
	for i, t := range types {
		if i > 0 {
			p.write(", ")
		}
		p.typ(t)
	}
}

func (p printer) application(name string, parameters []Type) {
	p.write(p.name(name), "[")
	p.list(parameters)
	p.write("]")
}

func (p printer) typ(t Type) {
	switch typ := t.(type) {
	case nil:
		p.write("<nil>")
	case Bottom:
		if p.style == conciseStyle {
			p.write("?")
		} else {
			p.write("undefined")
		}
	case Top:
		p.write("unknown")
	case Any:
		p.write(p.name(config.TypingAny))
	case Literal:
		p.write(p.name(config.LiteralName), "[", literalValue(typ), "]")
	case Primitive:
		p.write(p.name(typ.Name))
	case Optional:
		if IsNone(typ) {
			p.write(config.NoneTypeName)
			return
		}
		p.application(config.TypingOptional, []Type{typ.Type})
	case Union:
		p.application(config.TypingUnion, typ.Types)
	case Tuple:
		p.write(p.name(config.TypingTuple), "[")
		switch {
		case typ.IsUnbounded():
			p.typ(typ.Unbounded)
			p.write(", ...")
		case len(typ.Bounded) == 0:
			p.write("()")
		default:
			p.list(typ.Bounded)
		}
		p.write("]")
	case Parametric:
		p.application(config.ReverseGenericAlias(typ.Name), typ.Parameters)
	case Callable:
		if p.style == conciseStyle {
			p.conciseCallable(typ)
		} else {
			p.callable(typ)
		}
	case TypedDictionary:
		p.typedDictionary(typ)
	case Variable:
		p.variable(typ)
	default:
		panic("typesystem: unknown type variant")
	}
}

func literalValue(l Literal) string {
	switch l.Kind {
	case LiteralBoolean:
		if l.Bool {
			return "True"
		}
		return "False"
	case LiteralInteger:
		return strconv.FormatInt(l.Int, 10)
	}
	return "'" + strings.ReplaceAll(l.Str, "'", `\'`) + "'"
}

func (p printer) callable(c Callable) {
	p.write(config.TypingCallable)
	if !c.IsAnonymous() {
		p.write("(", c.Name, ")")
	}
	p.write("[")
	p.signature(c.Implementation)
	p.write("]")
	if len(c.Overloads) > 0 {
		p.write("[")
		for i, overload := range c.Overloads {
			if i > 0 {
				p.write(", ")
			}
			p.write("[")
			p.signature(overload)
			p.write("]")
		}
		p.write("]")
	}
}

func (p printer) signature(o Overload) {
	if !o.Parameters.Defined {
		p.write("...")
	} else {
		p.write("[")
		for i, parameter := range o.Parameters.List {
			if i > 0 {
				p.write(", ")
			}
			p.parameter(parameter)
		}
		p.write("]")
	}
	p.write(", ")
	p.typ(o.Annotation)
}

func (p printer) parameter(parameter Parameter) {
	name := SanitizedName(parameter.Name)
	switch parameter.Kind {
	case VariadicParameter:
		p.write(config.VariableParameterName, "(", name, ", ")
	case KeywordsParameter:
		p.write(config.KeywordsParameterName, "(", name, ", ")
	default:
		if strings.HasPrefix(name, "$") && !parameter.Default {
			p.typ(parameter.Annotation)
			return
		}
		p.write(config.NamedParameterName, "(", name, ", ")
	}
	p.typ(parameter.Annotation)
	if parameter.Default {
		p.write(", ", config.DefaultMarker)
	}
	p.write(")")
}

func (p printer) conciseCallable(c Callable) {
	o := c.Implementation
	if !o.Parameters.Defined {
		p.write("(...) -> ")
		p.typ(o.Annotation)
		return
	}
	p.write("(")
	for i, parameter := range o.Parameters.List {
		if i > 0 {
			p.write(", ")
		}
		name := SanitizedName(parameter.Name)
		switch parameter.Kind {
		case VariadicParameter:
			p.write("*", name, ": ")
		case KeywordsParameter:
			p.write("**", name, ": ")
		default:
			if !strings.HasPrefix(name, "$") {
				p.write(name, ": ")
			}
		}
		p.typ(parameter.Annotation)
		if parameter.Default {
			p.write(" = ...")
		}
	}
	p.write(") -> ")
	p.typ(o.Annotation)
}

func (p printer) typedDictionary(t TypedDictionary) {
	anonymous := t.Name == config.AnonymousTypedDictionaryName
	if p.style == conciseStyle {
		if anonymous {
			p.write("TypedDict")
		} else {
			p.write(p.name(t.Name))
		}
		return
	}
	p.write("TypedDict")
	if !t.Total {
		p.write(" (non-total)")
	}
	if !anonymous {
		p.write(" `", t.Name, "`")
	}
	p.write(" with fields (")
	for i, field := range t.Fields {
		if i > 0 {
			p.write(", ")
		}
		p.write(field.Name, ": ")
		p.typ(field.Annotation)
	}
	p.write(")")
}

func (p printer) variable(v Variable) {
	if p.style == conciseStyle {
		p.write(v.Name)
		return
	}
	p.write("Variable[", v.Name)
	switch v.Constraints.Kind {
	case BoundConstraint:
		p.write(" <: ")
		p.typ(v.Constraints.Bound)
	case ExplicitConstraint:
		p.write(" <: [")
		p.list(v.Constraints.Explicit)
		p.write("]")
	case LiteralIntegersConstraint:
		p.write(" <: LiteralIntegers")
	}
	p.write("]")
	if v.Variance != Invariant {
		p.write(" (", v.Variance.String(), ")")
	}
}
