package typesystem

import (
	"errors"
	"testing"
)

func TestNamesCompatible(t *testing.T) {
	tests := []struct {
		name        string
		left, right Parameter
		want        bool
	}{
		{"same name", Named("x", Integer), Named("x", String), true},
		{"different names", Named("x", Integer), Named("y", Integer), false},
		{"underscore left", Named("_x", Integer), Named("y", Integer), true},
		{"underscore right", Named("x", Integer), Named("__y", Integer), true},
		{"positional", Named("$0", Integer), Named("y", Integer), true},
		{"synthesized prefix", Named("$parameter$x", Integer), Named("x", Integer), true},
		{"synthesized prefix mismatch", Named("$parameter$x", Integer), Named("y", Integer), false},
		{"variadic pair", Variadic("args", Integer), Variadic("rest", Integer), true},
		{"keywords pair", Keywords("kwargs", Integer), Keywords("options", Integer), true},
		{"variadic right accepts named", Named("x", Integer), Variadic("args", Integer), true},
		{"keywords right accepts named", Named("x", Integer), Keywords("kwargs", Integer), true},
		{"named right rejects variadic", Variadic("args", Integer), Named("x", Integer), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NamesCompatible(tt.left, tt.right); got != tt.want {
				t.Errorf("NamesCompatible(%s, %s) = %v, want %v", tt.left.Name, tt.right.Name, got, tt.want)
			}
		})
	}
}

func TestNewCallableDefaults(t *testing.T) {
	c := NewCallable("foo", NewOverload(DefinedParameters(), Integer))
	if c.Overloads == nil || len(c.Overloads) != 0 {
		t.Errorf("overloads should default to empty, got %v", c.Overloads)
	}
	if c.Implicit != nil {
		t.Errorf("implicit should default to none")
	}
}

func TestOverloadIsUndefined(t *testing.T) {
	if !NewOverload(UndefinedParameters(), Top{}).IsUndefined() {
		t.Errorf("undefined parameters returning unknown should be undefined")
	}
	if NewOverload(UndefinedParameters(), Integer).IsUndefined() {
		t.Errorf("a declared return type is information")
	}
	if NewOverload(DefinedParameters(), Top{}).IsUndefined() {
		t.Errorf("an empty defined parameter list is information")
	}
	if got := NewOverload(UndefinedParameters(), Integer).ParameterList(); got != nil {
		t.Errorf("undefined parameters have no list, got %v", got)
	}
}

func overloaded(name string, parameter, annotation Type) Callable {
	c := NewCallable(name, NewOverload(UndefinedParameters(), Top{}))
	c.Overloads = []Overload{NewOverload(DefinedParameters(Named("x", parameter)), annotation)}
	return c
}

func TestFromOverloads(t *testing.T) {
	first := overloaded("foo", Integer, String)
	second := overloaded("foo", String, Integer)
	second.Implementation = NewOverload(DefinedParameters(Named("x", Object)), Object)

	merged, err := FromOverloads([]Callable{first, second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(merged.Overloads) != 2 {
		t.Fatalf("got %d overloads, want 2", len(merged.Overloads))
	}
	if !Equal(merged.Overloads[0].Annotation, String) || !Equal(merged.Overloads[1].Annotation, Integer) {
		t.Errorf("overload order not preserved: %s", merged)
	}
	if !Equal(merged.Implementation.Annotation, Object) {
		t.Errorf("implementation should come from the last callable, got %s", merged.Implementation.Annotation)
	}
}

func TestFromOverloadsErrors(t *testing.T) {
	foo := overloaded("foo", Integer, String)
	bar := overloaded("bar", Integer, String)
	anonymous := overloaded("", Integer, String)
	method := overloaded("foo", Integer, String)
	method.Implicit = &Implicit{Name: "self", Annotation: NewPrimitive("Foo")}

	tests := []struct {
		name      string
		callables []Callable
		want      error
	}{
		{"empty", nil, ErrNoOverloads},
		{"anonymous", []Callable{anonymous, foo}, ErrNoOverloads},
		{"kind mismatch", []Callable{foo, bar}, ErrKindMismatch},
		{"implicit mismatch", []Callable{foo, method}, ErrImplicitMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromOverloads(tt.callables)
			if !errors.Is(err, tt.want) {
				t.Errorf("got error %v, want %v", err, tt.want)
			}
		})
	}

	var merge *MergeError
	_, err := FromOverloads([]Callable{foo, bar})
	if !errors.As(err, &merge) || merge.Index != 1 || merge.Name != "bar" {
		t.Errorf("expected merge error at index 1, got %v", err)
	}
}

func TestMapCallable(t *testing.T) {
	c := overloaded("foo", Integer, String)
	c.Implementation = NewOverload(DefinedParameters(Named("x", Integer)), Integer)
	c.Implicit = &Implicit{Name: "self", Annotation: Integer}
	toFloat := func(t Type) Type {
		if Equal(t, Integer) {
			return Float
		}
		return t
	}

	mapped := MapCallable(c, toFloat)
	if !Equal(mapped.Implementation.Parameters.List[0].Annotation, Float) || !Equal(mapped.Implementation.Annotation, Float) {
		t.Errorf("implementation not mapped: %s", mapped)
	}
	if !Equal(mapped.Overloads[0].Parameters.List[0].Annotation, Float) {
		t.Errorf("overload not mapped: %s", mapped)
	}
	if !Equal(mapped.Implicit.Annotation, Float) {
		t.Errorf("implicit not mapped: %s", mapped.Implicit.Annotation)
	}
	if !Equal(c.Implementation.Annotation, Integer) {
		t.Errorf("original callable was mutated")
	}

	implementationOnly := MapImplementation(c, toFloat)
	if !Equal(implementationOnly.Implementation.Annotation, Float) {
		t.Errorf("implementation not mapped")
	}
	if !Equal(implementationOnly.Overloads[0].Parameters.List[0].Annotation, Integer) {
		t.Errorf("overloads must be left alone")
	}
}

func TestWithReturnAnnotation(t *testing.T) {
	c := overloaded("foo", Integer, String)
	got := WithReturnAnnotation(c, Bool)
	if !Equal(got.Implementation.Annotation, Bool) || !Equal(got.Overloads[0].Annotation, Bool) {
		t.Errorf("return annotation not replaced everywhere: %s", got)
	}
	if !Equal(got.Overloads[0].Parameters.List[0].Annotation, Integer) {
		t.Errorf("parameters must be untouched")
	}
	if !Equal(c.Overloads[0].Annotation, String) {
		t.Errorf("original callable was mutated")
	}
}

func TestSelectOverloadPrecedence(t *testing.T) {
	c := NewCallable("foo", NewOverload(DefinedParameters(Named("x", Integer)), String))
	c.Overloads = []Overload{NewOverload(DefinedParameters(Named("x", String)), Integer)}

	selected, ok := SelectOverload(c, []Type{String})
	if !ok {
		t.Fatalf("no overload selected")
	}
	if !Equal(selected.Annotation, Integer) {
		t.Errorf("selected %s, want the listed (str) -> int overload", selected.Annotation)
	}

	selected, ok = SelectOverload(c, []Type{Integer})
	if !ok || !Equal(selected.Annotation, String) {
		t.Errorf("int argument should fall through to the implementation")
	}

	both := NewCallable("foo", NewOverload(DefinedParameters(Named("x", Object)), Object))
	both.Overloads = []Overload{
		NewOverload(DefinedParameters(Named("x", NewUnion(Integer, String))), Bool),
		NewOverload(DefinedParameters(Named("x", String)), Integer),
	}
	selected, _ = SelectOverload(both, []Type{String})
	if !Equal(selected.Annotation, Bool) {
		t.Errorf("first fitting overload must win, got %s", selected.Annotation)
	}
}

func TestSelectOverloadArity(t *testing.T) {
	c := NewCallable("foo", NewOverload(DefinedParameters(
		Named("x", Integer),
		NamedWithDefault("y", String),
		Variadic("rest", Bool),
	), NoneType))

	tests := []struct {
		name      string
		arguments []Type
		want      bool
	}{
		{"required only", []Type{Integer}, true},
		{"with default", []Type{Integer, String}, true},
		{"variadic", []Type{Integer, String, Bool, Bool}, true},
		{"literal widens", []Type{NewLiteralInteger(3)}, true},
		{"any fits", []Type{Any{}, String}, true},
		{"missing required", nil, false},
		{"wrong type", []Type{String}, false},
		{"wrong variadic", []Type{Integer, String, Integer}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := SelectOverload(c, tt.arguments); got != tt.want {
				t.Errorf("SelectOverload(%v) = %v, want %v", tt.arguments, got, tt.want)
			}
		})
	}

	if _, ok := SelectOverload(UndefinedCallable(Integer), []Type{String, Bool}); !ok {
		t.Errorf("undefined parameters accept anything")
	}
	optional := NewCallable("bar", NewOverload(DefinedParameters(Named("x", NewOptional(Integer))), NoneType))
	if _, ok := SelectOverload(optional, []Type{NoneType}); !ok {
		t.Errorf("None fits an optional parameter")
	}
}

func TestSelectOverloadGeneric(t *testing.T) {
	tv := NewVariable("T")
	identity := NewCallable("id", NewOverload(DefinedParameters(Named("x", tv)), tv))
	if selected, ok := SelectOverload(identity, []Type{Integer}); !ok || !Equal(selected.Annotation, tv) {
		t.Errorf("id(T) should accept int, got %v", ok)
	}

	bounded := NewCallable("f", NewOverload(DefinedParameters(Named("x", NewVariable("N", WithBound(Integer)))), NoneType))
	if _, ok := SelectOverload(bounded, []Type{Integer}); !ok {
		t.Errorf("a bound variable should accept its bound")
	}
	if _, ok := SelectOverload(bounded, []Type{String}); ok {
		t.Errorf("a bound variable should reject str")
	}

	explicit := NewCallable("g", NewOverload(DefinedParameters(Named("x", NewVariable("S", WithExplicit(Integer, String)))), NoneType))
	if _, ok := SelectOverload(explicit, []Type{String}); !ok {
		t.Errorf("an explicit variable should accept a listed member")
	}
	if _, ok := SelectOverload(explicit, []Type{Float}); ok {
		t.Errorf("an explicit variable should reject an unlisted type")
	}
}

func TestSelectTypedDictionaryGetWithDefault(t *testing.T) {
	overloads, ok := TypedDictionarySpecialOverloads(movieFields(), MethodGet, true)
	if !ok {
		t.Fatalf("get overloads missing")
	}
	get := UndefinedCallable(Top{})
	get.Name = MethodGet
	get.Overloads = overloads

	selected, ok := SelectOverload(get, []Type{Top{}, NewLiteralString("name"), String})
	if !ok {
		t.Fatalf("no overload selected")
	}
	if len(selected.ParameterList()) != 3 {
		t.Fatalf("selected %d parameters, want the defaulted overload", len(selected.ParameterList()))
	}
	if want := NewUnion(String, NewVariable("_T")); !Equal(selected.Annotation, want) {
		t.Errorf("got %s, want %s", selected.Annotation, want)
	}
}
