package typesystem

import (
	"github.com/seraphln/pyre-check/internal/ast"
	"github.com/seraphln/pyre-check/internal/config"
)

// Methods synthesized for every typed dictionary. pop and __delitem__ only exist
// on non-total records.
const (
	MethodInit       = "__init__"
	MethodGetItem    = "__getitem__"
	MethodSetItem    = "__setitem__"
	MethodGet        = "get"
	MethodSetDefault = "setdefault"
	MethodUpdate     = "update"
	MethodPop        = "pop"
	MethodDelItem    = "__delitem__"
)

// IsTotal reports whether every field is required.
func (t TypedDictionary) IsTotal() bool { return t.Total }

// Field returns the annotation of the named field.
func (t TypedDictionary) Field(name string) (Type, bool) {
	for _, field := range t.Fields {
		if field.Name == name {
			return field.Annotation, true
		}
	}
	return nil, false
}

// FieldsHaveCollidingKeys reports whether the lists share a name with different annotations.
func FieldsHaveCollidingKeys(left, right []Field) bool {
	for _, l := range left {
		for _, r := range right {
			if l.Name == r.Name && !Equal(l.Annotation, r.Annotation) {
				return true
			}
		}
	}
	return false
}

func selfParameter() Parameter {
	return Named(config.SelfParameterName, Top{})
}

func keyParameter(name string) Parameter {
	return Named("k", NewLiteralString(name))
}

// TypedDictionaryConstructor is the __init__ signature that type checks record
// literals: one overload taking every field by keyword, defaulted unless the
// record is total, and one copying an existing record positionally.
func TypedDictionaryConstructor(name string, fields []Field, total bool) Callable {
	record := NewTypedDictionary(name, fields, total)
	sorted := record.(TypedDictionary).Fields

	keyword := []Parameter{selfParameter()}
	for _, field := range sorted {
		keyword = append(keyword, Parameter{
			Kind:       NamedParameter,
			Name:       config.ParameterPrefix + field.Name,
			Annotation: field.Annotation,
			Default:    !total,
		})
	}
	copying := []Parameter{selfParameter(), Named("$0", record)}

	constructor := NewCallable(MethodInit, NewOverload(UndefinedParameters(), Top{}))
	constructor.Overloads = []Overload{
		NewOverload(DefinedParameters(keyword...), record),
		NewOverload(DefinedParameters(copying...), record),
	}
	return constructor
}

// TypedDictionarySpecialOverloads synthesizes per-field overloads for the
// dictionary methods of a record. It reports false for any other method.
func TypedDictionarySpecialOverloads(fields []Field, method string, total bool) ([]Overload, bool) {
	defaultVariable := NewVariable("_T")
	var overloads []Overload
	perField := func(f func(Field) []Overload) {
		for _, field := range sortedFields(fields) {
			overloads = append(overloads, f(field)...)
		}
	}

	switch method {
	case MethodGetItem:
		perField(func(field Field) []Overload {
			return []Overload{NewOverload(DefinedParameters(selfParameter(), keyParameter(field.Name)), field.Annotation)}
		})
	case MethodSetItem:
		perField(func(field Field) []Overload {
			parameters := DefinedParameters(selfParameter(), keyParameter(field.Name), Named("v", field.Annotation))
			return []Overload{NewOverload(parameters, NoneType)}
		})
	case MethodGet:
		perField(func(field Field) []Overload {
			return []Overload{
				NewOverload(DefinedParameters(selfParameter(), keyParameter(field.Name)), NewOptional(field.Annotation)),
				NewOverload(
					DefinedParameters(selfParameter(), keyParameter(field.Name), Named(config.DefaultMarker, defaultVariable)),
					NewUnion(field.Annotation, defaultVariable),
				),
			}
		})
	case MethodSetDefault:
		perField(func(field Field) []Overload {
			parameters := DefinedParameters(selfParameter(), keyParameter(field.Name), Named(config.DefaultMarker, field.Annotation))
			return []Overload{NewOverload(parameters, field.Annotation)}
		})
	case MethodUpdate:
		parameters := []Parameter{selfParameter()}
		for _, field := range sortedFields(fields) {
			parameters = append(parameters, NamedWithDefault(config.ParameterPrefix+field.Name, field.Annotation))
		}
		overloads = []Overload{NewOverload(DefinedParameters(parameters...), NoneType)}
	case MethodPop:
		if total {
			return nil, false
		}
		perField(func(field Field) []Overload {
			return []Overload{
				NewOverload(DefinedParameters(selfParameter(), keyParameter(field.Name)), field.Annotation),
				NewOverload(
					DefinedParameters(selfParameter(), keyParameter(field.Name), Named(config.DefaultMarker, defaultVariable)),
					NewUnion(field.Annotation, defaultVariable),
				),
			}
		})
	case MethodDelItem:
		if total {
			return nil, false
		}
		perField(func(field Field) []Overload {
			return []Overload{NewOverload(DefinedParameters(selfParameter(), keyParameter(field.Name)), NoneType)}
		})
	default:
		return nil, false
	}
	if overloads == nil {
		overloads = []Overload{}
	}
	return overloads, true
}

// IsSpecialMismatch reports whether an argument mismatch at position (1-based,
// excluding self) of a synthesized method is expected: the key argument of the
// lookup methods and the value of __setitem__ are checked per field by overload
// selection, so a mismatch against the general signature is not an error.
func IsSpecialMismatch(method string, position int, total bool) bool {
	switch method {
	case MethodGetItem, MethodSetDefault:
		return position == 1
	case MethodGet:
		return position == 1 || position == 2
	case MethodSetItem:
		return position == 1 || position == 2
	case MethodPop, MethodDelItem:
		return !total && position == 1
	}
	return false
}

// TypedDictionaryMethods lists the synthesized method names for a record.
func TypedDictionaryMethods(total bool) []string {
	methods := []string{MethodInit, MethodGetItem, MethodSetItem, MethodGet, MethodSetDefault, MethodUpdate}
	if !total {
		methods = append(methods, MethodPop, MethodDelItem)
	}
	return methods
}

// TypedDictionaryDefines declares the synthesized methods as class members so
// method resolution treats records like ordinary classes.
func TypedDictionaryDefines(selfAnnotation ast.Expression, total bool) []ast.Define {
	methods := TypedDictionaryMethods(total)
	defines := make([]ast.Define, 0, len(methods))
	for _, method := range methods {
		defines = append(defines, ast.Define{
			Name: method,
			Parameters: []ast.Parameter{
				{Name: config.SelfParameterName, Annotation: selfAnnotation},
			},
			ReturnAnnotation: Expression(Any{}),
			Parent:           config.TypedDictPrimitive,
			Body:             []ast.Statement{&ast.Pass{}},
		})
	}
	return defines
}
