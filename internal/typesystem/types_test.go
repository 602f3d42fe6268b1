package typesystem

import (
	"testing"
)

func TestNewUnionNormalization(t *testing.T) {
	a, b, c := NewPrimitive("a"), NewPrimitive("b"), NewPrimitive("c")

	tests := []struct {
		name string
		got  Type
		want Type
	}{
		{"nested flattens", NewUnion(NewUnion(a, b), c), NewUnion(a, b, c)},
		{"order irrelevant", NewUnion(c, a, b), NewUnion(a, b, c)},
		{"duplicates removed", NewUnion(a, b, a), NewUnion(a, b)},
		{"singleton collapses", NewUnion(a), a},
		{"empty is bottom", NewUnion(), Bottom{}},
		{"bottom dropped", NewUnion(Bottom{}, a), a},
		{"any absorbs", NewUnion(a, Any{}), Any{}},
		{"top beats any", NewUnion(a, Any{}, Top{}), Top{}},
		{"top beats any in either order", NewUnion(Top{}, a, Any{}), Top{}},
		{"top absorbs", NewUnion(a, Top{}), Top{}},
		{"optional lifted", NewUnion(NewOptional(a), b), NewOptional(NewUnion(a, b))},
		{"none lifted", NewUnion(NoneType, a), NewOptional(a)},
		{"only none", NewUnion(NoneType, NoneType), NoneType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !Equal(tt.got, tt.want) {
				t.Errorf("got %s, want %s", Serialize(tt.got), Serialize(tt.want))
			}
		})
	}

	union, ok := NewUnion(c, b, a).(Union)
	if !ok {
		t.Fatalf("expected a union")
	}
	for _, member := range union.Types {
		if IsUnion(member) {
			t.Errorf("nested union member %s", member)
		}
	}
}

func TestNewOptionalNormalization(t *testing.T) {
	if got := NewOptional(NewOptional(Integer)); !Equal(got, NewOptional(Integer)) {
		t.Errorf("Optional[Optional[int]] = %s, want Optional[int]", got)
	}
	if got := NewOptional(Top{}); !IsTop(got) {
		t.Errorf("Optional[unknown] = %s, want unknown", got)
	}
	if got := NewOptional(Any{}); !IsAny(got) {
		t.Errorf("Optional[Any] = %s, want Any", got)
	}
	if !IsNone(NoneType) || IsOptional(NoneType) {
		t.Errorf("NoneType should be None and not a proper optional")
	}
}

func TestNormalizationIdempotent(t *testing.T) {
	types := []Type{
		NewUnion(Integer, String, NewOptional(Float)),
		NewOptional(NewUnion(List(Integer), NoneType)),
		Dictionary(String, NewUnion(Integer, NewUnion(Bool, Integer))),
		NewCallable("foo", NewOverload(DefinedParameters(Named("x", NewUnion(Integer, String))), NewOptional(Integer))),
	}
	for _, typ := range types {
		once := Map(typ, func(t Type) Type { return t })
		twice := Map(once, func(t Type) Type { return t })
		if !Equal(typ, once) || !Equal(once, twice) {
			t.Errorf("renormalizing %s changed it: %s then %s", typ, once, twice)
		}
	}
}

func TestTupleVariantsDiffer(t *testing.T) {
	bounded := NewBoundedTuple(Integer, String)
	single := NewBoundedTuple(Integer)
	unbounded := NewUnboundedTuple(Integer)

	if Equal(bounded, unbounded) {
		t.Errorf("%s should differ from %s", bounded, unbounded)
	}
	if Equal(single, unbounded) {
		t.Errorf("%s should differ from %s", single, unbounded)
	}
	if Equal(NewBoundedTuple(), NewUnboundedTuple(Top{})) {
		t.Errorf("empty tuple should differ from the unbounded unknown tuple")
	}
	if Hash(single) == Hash(unbounded) {
		t.Errorf("hash of %s collides with %s", single, unbounded)
	}
}

func TestEqualityImpliesHash(t *testing.T) {
	pairs := [][2]Type{
		{NewUnion(Integer, String), NewUnion(String, Integer)},
		{List(Integer), NewParametric("typing.List", Integer)},
		{NewTypedDictionary("Movie", []Field{{"year", Integer}, {"name", String}}, true),
			NewTypedDictionary("Movie", []Field{{"name", String}, {"year", Integer}}, true)},
		{NewVariable("T", WithBound(Integer)), NewVariable("T", WithBound(Integer))},
		{NewLiteralString("a"), NewLiteralString("a")},
	}
	for _, pair := range pairs {
		if !Equal(pair[0], pair[1]) {
			t.Errorf("%s should equal %s", pair[0], pair[1])
			continue
		}
		if Hash(pair[0]) != Hash(pair[1]) {
			t.Errorf("equal types %s hash differently", pair[0])
		}
	}
}

func TestVariableIdentityIncludesNamespace(t *testing.T) {
	left := NewVariable("T")
	right := NewVariable("T", WithNamespace(7))
	if Equal(left, right) {
		t.Errorf("variables in different namespaces must differ")
	}
	bound := MarkVariablesAsBound(left, false)
	if Equal(left, bound) {
		t.Errorf("free and bound variables must differ")
	}
}

func TestCompareIsTotalOrder(t *testing.T) {
	types := []Type{
		Bottom{}, Top{}, Any{}, NewLiteralInteger(1), NewLiteralInteger(2), Integer, String,
		NewOptional(Integer), NewUnion(Integer, String), NewBoundedTuple(Integer), NewUnboundedTuple(Integer),
		List(Integer), UndefinedCallable(Integer), AnonymousTypedDictionary(nil), NewVariable("T"),
	}
	for i, left := range types {
		for j, right := range types {
			c := Compare(left, right)
			switch {
			case i == j && c != 0:
				t.Errorf("Compare(%s, %s) = %d, want 0", left, right, c)
			case i != j && c == 0:
				t.Errorf("Compare(%s, %s) = 0 for distinct types", left, right)
			case c != -Compare(right, left):
				t.Errorf("Compare(%s, %s) is not antisymmetric", left, right)
			}
		}
	}
}

func TestWellKnownConstructors(t *testing.T) {
	tests := []struct {
		got  Type
		want string
	}{
		{List(Integer), "typing.List[int]"},
		{Dictionary(String, Integer), "typing.Dict[str, int]"},
		{Set(Integer), "typing.Set[int]"},
		{Meta(Integer), "typing.Type[int]"},
		{Generator(Integer), "typing.Generator[int, None, None]"},
		{Coroutine(Integer), "typing.Coroutine[typing.Any, typing.Any, int]"},
		{TupleOf(Integer, String), "typing.Tuple[int, str]"},
	}
	for _, tt := range tests {
		if tt.got.String() != tt.want {
			t.Errorf("got %s, want %s", tt.got, tt.want)
		}
	}
}
