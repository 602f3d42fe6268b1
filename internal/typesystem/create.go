package typesystem

import (
	"strconv"

	"github.com/seraphln/pyre-check/internal/ast"
	"github.com/seraphln/pyre-check/internal/config"
	"github.com/seraphln/pyre-check/internal/parser"
)

// AliasResolver expands a nominal type declared as an alias. It reports false
// for names that are not aliases.
type AliasResolver func(Type) (Type, bool)

// NoAliases resolves nothing.
func NoAliases(Type) (Type, bool) { return nil, false }

// MapAliases resolves primitives through a fixed table keyed by name.
func MapAliases(aliases map[string]Type) AliasResolver {
	return func(t Type) (Type, bool) {
		primitive, ok := t.(Primitive)
		if !ok {
			return nil, false
		}
		target, ok := aliases[primitive.Name]
		return target, ok
	}
}

// Create builds the type denoted by an annotation expression. Names are resolved
// through aliases before being treated as nominal references. Forms that do not
// denote a type produce Top.
func Create(aliases AliasResolver, expression ast.Expression) Type {
	if aliases == nil {
		aliases = NoAliases
	}
	c := creator{aliases: aliases}
	return c.create(expression)
}

type creator struct {
	aliases AliasResolver
}

func positionalName(index int) string { return "$" + strconv.Itoa(index) }

func (c creator) create(expression ast.Expression) Type {
	switch e := expression.(type) {
	case *ast.Name, *ast.Attribute:
		reference, _ := ast.ReferenceOf(e)
		return c.reference(reference)
	case *ast.Subscript:
		return c.subscript(e)
	case *ast.Call:
		return c.call(e)
	case *ast.StringLiteral:
		parsed, err := parser.Parse(e.Value)
		if err != nil {
			return Top{}
		}
		return c.create(parsed)
	}
	return Top{}
}

func (c creator) reference(reference string) Type {
	switch reference {
	case config.NoneTypeName:
		return NoneType
	case config.TypingAny:
		return Any{}
	case unknownReference:
		return Top{}
	case bottomReference:
		return Bottom{}
	}
	if builtin, ok := config.GenericAliases[reference]; ok {
		reference = builtin
	}
	primitive := NewPrimitive(reference)
	if resolved, ok := c.aliases(primitive); ok {
		return resolved
	}
	return primitive
}

func (c creator) list(expressions []ast.Expression) []Type {
	types := make([]Type, len(expressions))
	for i, expression := range expressions {
		types[i] = c.create(expression)
	}
	return types
}

func (c creator) subscript(s *ast.Subscript) Type {
	if inner, ok := s.Base.(*ast.Subscript); ok {
		return c.overloadedCallable(inner, s.Index)
	}
	if name, ok := callableName(s.Base); ok {
		return c.callable(name, s.Index, nil)
	}
	reference, ok := ast.ReferenceOf(s.Base)
	if !ok {
		return Top{}
	}
	switch reference {
	case config.TypingOptional:
		if len(s.Index) != 1 {
			return Top{}
		}
		return NewOptional(c.create(s.Index[0]))
	case config.TypingUnion:
		return NewUnion(c.list(s.Index)...)
	case config.TypingTuple, config.TupleTypeName:
		return c.tuple(s.Index)
	case config.TypingCallable:
		return c.callable("", s.Index, nil)
	case config.LiteralName, config.TypingLiteral:
		return literals(s.Index)
	}

	parameters := c.list(s.Index)
	switch base := c.reference(reference).(type) {
	case Primitive:
		return NewParametric(base.Name, parameters...)
	case Parametric:
		return NewParametric(base.Name, parameters...)
	}
	return NewParametric(reference, parameters...)
}

func (c creator) tuple(index []ast.Expression) Type {
	if len(index) == 1 {
		if empty, ok := index[0].(*ast.Tuple); ok && len(empty.Elements) == 0 {
			return NewBoundedTuple()
		}
	}
	if len(index) == 2 {
		if _, ok := index[1].(*ast.Ellipsis); ok {
			return NewUnboundedTuple(c.create(index[0]))
		}
	}
	return NewBoundedTuple(c.list(index)...)
}

func literals(index []ast.Expression) Type {
	members := make([]Type, 0, len(index))
	for _, expression := range index {
		switch e := expression.(type) {
		case *ast.BooleanLiteral:
			members = append(members, NewLiteralBoolean(e.Value))
		case *ast.IntegerLiteral:
			members = append(members, NewLiteralInteger(e.Value))
		case *ast.StringLiteral:
			members = append(members, NewLiteralString(e.Value))
		default:
			return Top{}
		}
	}
	return NewUnion(members...)
}

// callableName reads the function name of typing.Callable(name)[...].
func callableName(expression ast.Expression) (string, bool) {
	call, ok := expression.(*ast.Call)
	if !ok || len(call.Arguments) != 1 {
		return "", false
	}
	if reference, ok := ast.ReferenceOf(call.Callee); !ok || reference != config.TypingCallable {
		return "", false
	}
	switch argument := call.Arguments[0].Value.(type) {
	case *ast.StringLiteral:
		return argument.Value, true
	default:
		return ast.ReferenceOf(argument)
	}
}

func (c creator) overloadedCallable(inner *ast.Subscript, index []ast.Expression) Type {
	name, named := callableName(inner.Base)
	if !named {
		reference, ok := ast.ReferenceOf(inner.Base)
		if !ok || reference != config.TypingCallable {
			return Top{}
		}
	}
	overloads := make([]Overload, 0, len(index))
	for _, expression := range index {
		list, ok := expression.(*ast.List)
		if !ok {
			return Top{}
		}
		overload, ok := c.signature(list.Elements)
		if !ok {
			return Top{}
		}
		overloads = append(overloads, overload)
	}
	return c.callable(name, inner.Index, overloads)
}

func (c creator) callable(name string, index []ast.Expression, overloads []Overload) Type {
	implementation, ok := c.signature(index)
	if !ok {
		return Top{}
	}
	callable := NewCallable(name, implementation)
	if overloads != nil {
		callable.Overloads = overloads
	}
	return callable
}

// signature reads [parameters, return annotation].
func (c creator) signature(index []ast.Expression) (Overload, bool) {
	if len(index) != 2 {
		return Overload{}, false
	}
	annotation := c.create(index[1])
	switch parameters := index[0].(type) {
	case *ast.Ellipsis:
		return NewOverload(UndefinedParameters(), annotation), true
	case *ast.List:
		list := make([]Parameter, len(parameters.Elements))
		for i, element := range parameters.Elements {
			list[i] = c.parameter(i, element)
		}
		return NewOverload(DefinedParameters(list...), annotation), true
	}
	return Overload{}, false
}

// parameter reads Named(name, annotation[, default]), Variable(name, annotation),
// Keywords(name, annotation) or a bare positional annotation.
func (c creator) parameter(index int, expression ast.Expression) Parameter {
	call, ok := expression.(*ast.Call)
	if !ok || len(call.Arguments) < 2 {
		return Named(positionalName(index), c.create(expression))
	}
	form, _ := ast.ReferenceOf(call.Callee)
	name, ok := parameterName(call.Arguments[0].Value)
	if !ok {
		return Named(positionalName(index), c.create(expression))
	}
	annotation := c.create(call.Arguments[1].Value)
	switch form {
	case config.NamedParameterName:
		parameter := Named(name, annotation)
		if len(call.Arguments) > 2 {
			marker, _ := ast.ReferenceOf(call.Arguments[2].Value)
			parameter.Default = marker == config.DefaultMarker
		}
		return parameter
	case config.VariableParameterName:
		return Variadic(name, annotation)
	case config.KeywordsParameterName:
		return Keywords(name, annotation)
	}
	return Named(positionalName(index), c.create(expression))
}

func parameterName(expression ast.Expression) (string, bool) {
	if literal, ok := expression.(*ast.StringLiteral); ok {
		return literal.Value, true
	}
	return ast.ReferenceOf(expression)
}

func (c creator) call(call *ast.Call) Type {
	reference, ok := ast.ReferenceOf(call.Callee)
	if !ok {
		return Top{}
	}
	switch reference {
	case config.TypingTypeVar:
		return c.typeVariable(call.Arguments)
	case config.TypedDictName, config.TypingTypedDict:
		return c.typedDictionary(call.Arguments)
	}
	return Top{}
}

func isTrue(expression ast.Expression) bool {
	literal, ok := expression.(*ast.BooleanLiteral)
	return ok && literal.Value
}

func (c creator) typeVariable(arguments []ast.Argument) Type {
	if len(arguments) == 0 || arguments[0].Name != "" {
		return Top{}
	}
	name, ok := arguments[0].Value.(*ast.StringLiteral)
	if !ok {
		return Top{}
	}
	variable := NewVariable(name.Value)
	var explicit []Type
	for _, argument := range arguments[1:] {
		switch argument.Name {
		case "":
			explicit = append(explicit, c.create(argument.Value))
		case "bound":
			variable.Constraints = Constraints{Kind: BoundConstraint, Bound: c.create(argument.Value)}
		case "covariant":
			if isTrue(argument.Value) {
				variable.Variance = Covariant
			}
		case "contravariant":
			if isTrue(argument.Value) {
				variable.Variance = Contravariant
			}
		}
	}
	if len(explicit) > 0 {
		variable.Constraints = Constraints{Kind: ExplicitConstraint, Explicit: explicit}
	}
	return variable
}

func (c creator) typedDictionary(arguments []ast.Argument) Type {
	if len(arguments) < 2 {
		return Top{}
	}
	name, ok := arguments[0].Value.(*ast.StringLiteral)
	if !ok {
		return Top{}
	}
	entries, ok := arguments[1].Value.(*ast.Dictionary)
	if !ok {
		return Top{}
	}
	fields := make([]Field, 0, len(entries.Entries))
	for _, entry := range entries.Entries {
		key, ok := entry.Key.(*ast.StringLiteral)
		if !ok {
			return Top{}
		}
		fields = append(fields, Field{Name: key.Value, Annotation: c.create(entry.Value)})
	}
	total := true
	for _, argument := range arguments[2:] {
		if argument.Name == "total" {
			if literal, ok := argument.Value.(*ast.BooleanLiteral); ok {
				total = literal.Value
			}
		}
	}
	return NewTypedDictionary(name.Value, fields, total)
}
