package typesystem

import (
	"strings"

	"github.com/seraphln/pyre-check/internal/config"
)

type ParameterKind int

const (
	NamedParameter ParameterKind = iota
	VariadicParameter
	KeywordsParameter
)

// Parameter is one element of a defined parameter list. Named parameters whose
// name starts with "$" are positional only.
type Parameter struct {
	Kind       ParameterKind
	Name       string
	Annotation Type
	Default    bool
}

// Parameters is either Undefined (Defined false, matches any arguments) or a defined list.
type Parameters struct {
	Defined bool
	List    []Parameter
}

// Overload is one signature of a callable.
type Overload struct {
	Parameters Parameters
	Annotation Type
}

// Implicit is the bound first argument of a method-like callable.
type Implicit struct {
	Name       string
	Annotation Type
}

// Callable is a function type. An empty Name is an anonymous callable; otherwise
// Name is the qualified reference of the function. Overloads are tried in order
// before Implementation.
type Callable struct {
	Name           string
	Implementation Overload
	Overloads      []Overload
	Implicit       *Implicit
}

func Named(name string, annotation Type) Parameter {
	return Parameter{Kind: NamedParameter, Name: name, Annotation: annotation}
}

func NamedWithDefault(name string, annotation Type) Parameter {
	return Parameter{Kind: NamedParameter, Name: name, Annotation: annotation, Default: true}
}

func Variadic(name string, annotation Type) Parameter {
	return Parameter{Kind: VariadicParameter, Name: name, Annotation: annotation}
}

func Keywords(name string, annotation Type) Parameter {
	return Parameter{Kind: KeywordsParameter, Name: name, Annotation: annotation}
}

func DefinedParameters(parameters ...Parameter) Parameters {
	return Parameters{Defined: true, List: append([]Parameter{}, parameters...)}
}

// UndefinedParameters accept any arguments.
func UndefinedParameters() Parameters { return Parameters{} }

func NewOverload(parameters Parameters, annotation Type) Overload {
	if annotation == nil {
		annotation = Top{}
	}
	return Overload{Parameters: parameters, Annotation: annotation}
}

// NewCallable creates a callable with no extra overloads and no implicit argument.
func NewCallable(name string, implementation Overload) Callable {
	return Callable{Name: name, Implementation: implementation, Overloads: []Overload{}}
}

// UndefinedCallable is the anonymous callable returning annotation for any arguments.
func UndefinedCallable(annotation Type) Callable {
	return NewCallable("", NewOverload(UndefinedParameters(), annotation))
}

func (c Callable) IsAnonymous() bool { return c.Name == "" }

// IsUndefined reports whether nothing is known about the signature.
func (o Overload) IsUndefined() bool {
	_, top := o.Annotation.(Top)
	return !o.Parameters.Defined && top
}

// ParameterList returns the defined parameters, or nil for Undefined.
func (o Overload) ParameterList() []Parameter {
	if !o.Parameters.Defined {
		return nil
	}
	return o.Parameters.List
}

// SanitizedName strips the synthesized parameter prefix.
func SanitizedName(name string) string {
	return strings.TrimPrefix(name, config.ParameterPrefix)
}

func isPositionalName(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, "$")
}

// NamesCompatible reports whether left and right may match the same argument position.
// Variadic and keyword collectors on the right accept anything; names starting
// with an underscore or "$" are positional and match any name.
func NamesCompatible(left, right Parameter) bool {
	switch {
	case left.Kind == VariadicParameter && right.Kind == VariadicParameter:
		return true
	case left.Kind == KeywordsParameter && right.Kind == KeywordsParameter:
		return true
	case right.Kind == VariadicParameter || right.Kind == KeywordsParameter:
		return true
	case left.Kind == NamedParameter && right.Kind == NamedParameter:
		l, r := SanitizedName(left.Name), SanitizedName(right.Name)
		if isPositionalName(l) || isPositionalName(r) {
			return true
		}
		return l == r
	}
	return false
}

func sameImplicit(left, right *Implicit) bool {
	switch {
	case left == nil || right == nil:
		return left == right
	}
	return left.Name == right.Name && Equal(left.Annotation, right.Annotation)
}

// FromOverloads merges named callables into one whose overloads are the
// concatenation of every input's overloads in order. The implementation of the
// last input becomes the implementation of the result.
// Inputs must agree on the name and the implicit argument.
func FromOverloads(callables []Callable) (Callable, error) {
	if len(callables) == 0 || callables[0].IsAnonymous() {
		return Callable{}, ErrNoOverloads
	}
	first := callables[0]
	merged := Callable{Name: first.Name, Overloads: []Overload{}, Implicit: first.Implicit}
	for i, c := range callables {
		if c.Name != first.Name {
			return Callable{}, &MergeError{Index: i, Name: c.Name, Err: ErrKindMismatch}
		}
		if !sameImplicit(c.Implicit, first.Implicit) {
			return Callable{}, &MergeError{Index: i, Name: c.Name, Err: ErrImplicitMismatch}
		}
		merged.Overloads = append(merged.Overloads, c.Overloads...)
		merged.Implementation = c.Implementation
	}
	return merged, nil
}

func mapOverload(o Overload, f func(Type) Type) Overload {
	result := Overload{Parameters: Parameters{Defined: o.Parameters.Defined}, Annotation: f(o.Annotation)}
	if o.Parameters.List != nil {
		result.Parameters.List = make([]Parameter, len(o.Parameters.List))
		for i, parameter := range o.Parameters.List {
			parameter.Annotation = f(parameter.Annotation)
			result.Parameters.List[i] = parameter
		}
	}
	return result
}

// MapCallable applies f to every annotation of every signature and to the implicit argument.
func MapCallable(c Callable, f func(Type) Type) Callable {
	result := MapImplementation(c, f)
	result.Overloads = make([]Overload, len(c.Overloads))
	for i, overload := range c.Overloads {
		result.Overloads[i] = mapOverload(overload, f)
	}
	if c.Implicit != nil {
		result.Implicit = &Implicit{Name: c.Implicit.Name, Annotation: f(c.Implicit.Annotation)}
	}
	return result
}

// MapImplementation applies f to the annotations of the implementation only.
func MapImplementation(c Callable, f func(Type) Type) Callable {
	c.Implementation = mapOverload(c.Implementation, f)
	c.Overloads = append([]Overload{}, c.Overloads...)
	return c
}

// WithReturnAnnotation replaces the return annotation of the implementation
// and every overload.
func WithReturnAnnotation(c Callable, annotation Type) Callable {
	c.Implementation.Annotation = annotation
	overloads := make([]Overload, len(c.Overloads))
	for i, overload := range c.Overloads {
		overload.Annotation = annotation
		overloads[i] = overload
	}
	c.Overloads = overloads
	return c
}

// SelectOverload returns the first signature in declaration order that accepts
// the positional arguments, trying the implementation last.
func SelectOverload(c Callable, arguments []Type) (Overload, bool) {
	for _, overload := range c.Overloads {
		if accepts(overload, arguments) {
			return overload, true
		}
	}
	if accepts(c.Implementation, arguments) {
		return c.Implementation, true
	}
	return Overload{}, false
}

func accepts(o Overload, arguments []Type) bool {
	if !o.Parameters.Defined {
		return true
	}
	remaining := arguments
	for _, parameter := range o.Parameters.List {
		switch parameter.Kind {
		case NamedParameter:
			if len(remaining) == 0 {
				if !parameter.Default {
					return false
				}
				continue
			}
			if !fits(remaining[0], parameter.Annotation) {
				return false
			}
			remaining = remaining[1:]
		case VariadicParameter:
			for _, argument := range remaining {
				if !fits(argument, parameter.Annotation) {
					return false
				}
			}
			remaining = nil
		}
	}
	return len(remaining) == 0
}

// fits is the shallow acceptance check used by overload selection. A variable
// accepts whatever fits its upper bound.
func fits(argument, annotation Type) bool {
	if Equal(argument, annotation) {
		return true
	}
	switch annotation.(type) {
	case Any, Top:
		return true
	}
	if Equal(annotation, Object) {
		return true
	}
	switch argument.(type) {
	case Any, Bottom:
		return true
	}
	switch typ := annotation.(type) {
	case Variable:
		return fits(argument, UpperBound(typ))
	case Optional:
		if IsNone(argument) || fits(argument, typ.Type) {
			return true
		}
	case Union:
		for _, member := range typ.Types {
			if fits(argument, member) {
				return true
			}
		}
	}
	if _, ok := argument.(Literal); ok {
		return fits(WeakenLiterals(argument), annotation)
	}
	return false
}
