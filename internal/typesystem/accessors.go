package typesystem

import "github.com/seraphln/pyre-check/internal/config"

func IsAny(t Type) bool {
	_, ok := t.(Any)
	return ok
}

func IsTop(t Type) bool {
	_, ok := t.(Top)
	return ok
}

func IsBottom(t Type) bool {
	_, ok := t.(Bottom)
	return ok
}

func IsNone(t Type) bool {
	optional, ok := t.(Optional)
	if !ok {
		return false
	}
	_, bottom := optional.Type.(Bottom)
	return bottom
}

// IsOptional reports whether t is Optional[T] for some T other than the None marker.
func IsOptional(t Type) bool {
	_, ok := t.(Optional)
	return ok && !IsNone(t)
}

func IsUnion(t Type) bool {
	_, ok := t.(Union)
	return ok
}

func IsTuple(t Type) bool {
	_, ok := t.(Tuple)
	return ok
}

func IsCallable(t Type) bool {
	_, ok := t.(Callable)
	return ok
}

func IsTypedDictionary(t Type) bool {
	_, ok := t.(TypedDictionary)
	return ok
}

func IsVariable(t Type) bool {
	_, ok := t.(Variable)
	return ok
}

// IsGeneric reports whether t is typing.Generic, bare or applied.
func IsGeneric(t Type) bool {
	switch typ := t.(type) {
	case Primitive:
		return typ.Name == config.TypingGeneric
	case Parametric:
		return typ.Name == config.TypingGeneric
	}
	return false
}

// IsProtocol reports whether t is typing.Protocol, bare or applied.
func IsProtocol(t Type) bool {
	switch typ := t.(type) {
	case Primitive:
		return typ.Name == config.TypingProtocol
	case Parametric:
		return typ.Name == config.TypingProtocol
	}
	return false
}

// IsMeta reports whether t is type[T].
func IsMeta(t Type) bool {
	parametric, ok := t.(Parametric)
	return ok && parametric.Name == config.MetaTypeName
}

// IsUnknown reports whether Top occurs anywhere in t.
func IsUnknown(t Type) bool { return Exists(t, IsTop) }

func ContainsAny(t Type) bool { return Exists(t, IsAny) }

func OptionalValue(t Type) (Type, error) {
	optional, ok := t.(Optional)
	if !ok || IsNone(t) {
		return nil, NewWrongVariantError("OptionalValue", "Optional", t)
	}
	return optional.Type, nil
}

// ParametersOf returns the parameters of a parametric type.
func ParametersOf(t Type) ([]Type, error) {
	parametric, ok := t.(Parametric)
	if !ok {
		return nil, NewWrongVariantError("ParametersOf", "Parametric", t)
	}
	return parametric.Parameters, nil
}

// SingleParameter returns the only parameter of a parametric type such as list[T].
func SingleParameter(t Type) (Type, error) {
	parameters, err := ParametersOf(t)
	if err != nil {
		return nil, err
	}
	if len(parameters) != 1 {
		return nil, NewWrongVariantError("SingleParameter", "Parametric with one parameter", t)
	}
	return parameters[0], nil
}

// ElementsOf returns the elements of a tuple or the parameters of a parametric type.
func ElementsOf(t Type) ([]Type, error) {
	switch typ := t.(type) {
	case Tuple:
		return typ.Elements(), nil
	case Parametric:
		return typ.Parameters, nil
	}
	return nil, NewWrongVariantError("ElementsOf", "Tuple or Parametric", t)
}

// ClassName returns the nominal reference of a primitive or parametric type.
func ClassName(t Type) (string, error) {
	switch typ := t.(type) {
	case Primitive:
		return typ.Name, nil
	case Parametric:
		return typ.Name, nil
	}
	return "", NewWrongVariantError("ClassName", "Primitive or Parametric", t)
}

func AsCallable(t Type) (Callable, error) {
	callable, ok := t.(Callable)
	if !ok {
		return Callable{}, NewWrongVariantError("AsCallable", "Callable", t)
	}
	return callable, nil
}

func AsTypedDictionary(t Type) (TypedDictionary, error) {
	record, ok := t.(TypedDictionary)
	if !ok {
		return TypedDictionary{}, NewWrongVariantError("AsTypedDictionary", "TypedDictionary", t)
	}
	return record, nil
}

func AsVariable(t Type) (Variable, error) {
	variable, ok := t.(Variable)
	if !ok {
		return Variable{}, NewWrongVariantError("AsVariable", "Variable", t)
	}
	return variable, nil
}

// Primitives lists every nominal name mentioned in t, in traversal order
// without duplicates.
func Primitives(t Type) []string {
	seen := map[string]bool{}
	return Collect(t, func(t Type) []string {
		var name string
		switch typ := t.(type) {
		case Primitive:
			name = typ.Name
		case Parametric:
			name = typ.Name
		default:
			return nil
		}
		if seen[name] {
			return nil
		}
		seen[name] = true
		return []string{name}
	})
}
