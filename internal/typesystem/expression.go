package typesystem

import (
	"github.com/seraphln/pyre-check/internal/ast"
	"github.com/seraphln/pyre-check/internal/config"
)

// Spellings of the lattice extremes in source position. Create maps them back.
const (
	bottomReference  = "$bottom"
	unknownReference = "$unknown"
)

func subscript(base string, index ...ast.Expression) ast.Expression {
	return &ast.Subscript{Base: ast.NewReference(base), Index: index}
}

func expressions(types []Type) []ast.Expression {
	result := make([]ast.Expression, len(types))
	for i, t := range types {
		result[i] = Expression(t)
	}
	return result
}

// Expression renders t as an annotation expression that Create maps back to t.
// Implicit arguments of callables have no source spelling and are dropped.
// Variables become typing.TypeVar calls, which Create reads back as free
// variables in namespace 0 without a literal-integers restriction.
func Expression(t Type) ast.Expression {
	switch typ := t.(type) {
	case Bottom:
		return ast.NewReference(bottomReference)
	case Top:
		return ast.NewReference(unknownReference)
	case Any:
		return ast.NewReference(config.TypingAny)
	case Literal:
		return subscript(config.LiteralName, literalExpression(typ))
	case Primitive:
		return ast.NewReference(typ.Name)
	case Optional:
		if IsNone(typ) {
			return &ast.Name{Identifier: config.NoneTypeName}
		}
		return subscript(config.TypingOptional, Expression(typ.Type))
	case Union:
		return subscript(config.TypingUnion, expressions(typ.Types)...)
	case Tuple:
		if typ.IsUnbounded() {
			return subscript(config.TypingTuple, Expression(typ.Unbounded), &ast.Ellipsis{})
		}
		if len(typ.Bounded) == 0 {
			return subscript(config.TypingTuple, &ast.Tuple{})
		}
		return subscript(config.TypingTuple, expressions(typ.Bounded)...)
	case Parametric:
		return subscript(config.ReverseGenericAlias(typ.Name), expressions(typ.Parameters)...)
	case Callable:
		return callableExpression(typ)
	case TypedDictionary:
		entries := make([]ast.Entry, len(typ.Fields))
		for i, field := range typ.Fields {
			entries[i] = ast.Entry{Key: &ast.StringLiteral{Value: field.Name}, Value: Expression(field.Annotation)}
		}
		return &ast.Call{
			Callee: ast.NewReference(config.TypedDictName),
			Arguments: []ast.Argument{
				{Value: &ast.StringLiteral{Value: typ.Name}},
				{Value: &ast.Dictionary{Entries: entries}},
				{Name: "total", Value: &ast.BooleanLiteral{Value: typ.Total}},
			},
		}
	case Variable:
		return typeVariableExpression(typ)
	}
	panic("typesystem: unknown type variant")
}

func typeVariableExpression(v Variable) ast.Expression {
	arguments := []ast.Argument{{Value: &ast.StringLiteral{Value: v.Name}}}
	switch v.Constraints.Kind {
	case BoundConstraint:
		arguments = append(arguments, ast.Argument{Name: "bound", Value: Expression(v.Constraints.Bound)})
	case ExplicitConstraint:
		for _, t := range v.Constraints.Explicit {
			arguments = append(arguments, ast.Argument{Value: Expression(t)})
		}
	}
	switch v.Variance {
	case Covariant:
		arguments = append(arguments, ast.Argument{Name: "covariant", Value: &ast.BooleanLiteral{Value: true}})
	case Contravariant:
		arguments = append(arguments, ast.Argument{Name: "contravariant", Value: &ast.BooleanLiteral{Value: true}})
	}
	return &ast.Call{Callee: ast.NewReference(config.TypingTypeVar), Arguments: arguments}
}

func literalExpression(l Literal) ast.Expression {
	switch l.Kind {
	case LiteralBoolean:
		return &ast.BooleanLiteral{Value: l.Bool}
	case LiteralInteger:
		return &ast.IntegerLiteral{Value: l.Int}
	}
	return &ast.StringLiteral{Value: l.Str}
}

func callableExpression(c Callable) ast.Expression {
	var base ast.Expression = ast.NewReference(config.TypingCallable)
	if !c.IsAnonymous() {
		base = &ast.Call{Callee: base, Arguments: []ast.Argument{{Value: ast.NewReference(c.Name)}}}
	}
	signature := func(o Overload) []ast.Expression {
		return []ast.Expression{parametersExpression(o.Parameters), Expression(o.Annotation)}
	}
	var expression ast.Expression = &ast.Subscript{Base: base, Index: signature(c.Implementation)}
	if len(c.Overloads) > 0 {
		overloads := make([]ast.Expression, len(c.Overloads))
		for i, overload := range c.Overloads {
			overloads[i] = &ast.List{Elements: signature(overload)}
		}
		expression = &ast.Subscript{Base: expression, Index: overloads}
	}
	return expression
}

func parametersExpression(parameters Parameters) ast.Expression {
	if !parameters.Defined {
		return &ast.Ellipsis{}
	}
	elements := make([]ast.Expression, len(parameters.List))
	for i, parameter := range parameters.List {
		elements[i] = parameterExpression(i, parameter)
	}
	return &ast.List{Elements: elements}
}

func parameterExpression(index int, parameter Parameter) ast.Expression {
	annotation := Expression(parameter.Annotation)
	var form string
	switch parameter.Kind {
	case NamedParameter:
		if parameter.Name == positionalName(index) && !parameter.Default {
			return annotation
		}
		form = config.NamedParameterName
	case VariadicParameter:
		form = config.VariableParameterName
	case KeywordsParameter:
		form = config.KeywordsParameterName
	}
	arguments := []ast.Argument{
		{Value: &ast.Name{Identifier: parameter.Name}},
		{Value: annotation},
	}
	if parameter.Default {
		arguments = append(arguments, ast.Argument{Value: &ast.Name{Identifier: config.DefaultMarker}})
	}
	return &ast.Call{Callee: &ast.Name{Identifier: form}, Arguments: arguments}
}
