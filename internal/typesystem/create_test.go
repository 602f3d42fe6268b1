package typesystem

import (
	"testing"

	"github.com/seraphln/pyre-check/internal/ast"
	"github.com/seraphln/pyre-check/internal/parser"
)

func create(source string) Type {
	return Create(NoAliases, parser.MustParse(source))
}

func TestCreateResolvesAliases(t *testing.T) {
	aliases := MapAliases(map[string]Type{
		"IntAlias": Integer,
		"MyList":   NewPrimitive("list"),
		"Ints":     List(Integer),
	})

	got := Create(aliases, parser.MustParse("IntAlias"))
	if !Equal(got, Integer) {
		t.Fatalf("IntAlias = %s, want int", got)
	}
	if Concise(got) != "int" {
		t.Errorf("concise rendering = %q, want %q", Concise(got), "int")
	}

	if got := Create(aliases, parser.MustParse("MyList[str]")); !Equal(got, List(String)) {
		t.Errorf("MyList[str] = %s, want list[str]", got)
	}
	if got := Create(aliases, parser.MustParse("typing.Optional[Ints]")); !Equal(got, NewOptional(List(Integer))) {
		t.Errorf("Optional[Ints] = %s", got)
	}
	if got := Create(nil, parser.MustParse("IntAlias")); !Equal(got, NewPrimitive("IntAlias")) {
		t.Errorf("without aliases IntAlias is nominal, got %s", got)
	}
}

func TestCreate(t *testing.T) {
	fooCallable := NewCallable("foo.bar", NewOverload(DefinedParameters(
		Named("x", Integer),
		NamedWithDefault("y", String),
		Variadic("args", Integer),
		Keywords("kwargs", String),
	), Integer))
	overloadedCallable := NewCallable("foo", NewOverload(DefinedParameters(Named("$0", Integer)), String))
	overloadedCallable.Overloads = []Overload{NewOverload(DefinedParameters(Named("$0", String)), Integer)}

	tests := []struct {
		source string
		want   Type
	}{
		{"int", Integer},
		{"None", NoneType},
		{"typing.Any", Any{}},
		{"foo.Bar", NewPrimitive("foo.Bar")},
		{"typing.Optional[int]", NewOptional(Integer)},
		{"typing.Optional[typing.Optional[int]]", NewOptional(Integer)},
		{"typing.Union[int, str]", NewUnion(Integer, String)},
		{"typing.Union[int, None]", NewOptional(Integer)},
		{"typing.Union[int]", Integer},
		{"typing.List[int]", List(Integer)},
		{"list[int]", List(Integer)},
		{"typing.Dict[str, typing.List[int]]", Dictionary(String, List(Integer))},
		{"typing.Tuple[int, str]", NewBoundedTuple(Integer, String)},
		{"typing.Tuple[int, ...]", NewUnboundedTuple(Integer)},
		{"tuple[int, ...]", NewUnboundedTuple(Integer)},
		{"typing.Tuple[()]", NewBoundedTuple()},
		{"typing.Callable[[int], str]", NewCallable("", NewOverload(DefinedParameters(Named("$0", Integer)), String))},
		{"typing.Callable[..., int]", UndefinedCallable(Integer)},
		{"typing.Callable(foo.bar)[[Named(x, int), Named(y, str, default), Variable(args, int), Keywords(kwargs, str)], int]", fooCallable},
		{"typing.Callable(foo)[[int], str][[[str], int]]", overloadedCallable},
		{"typing_extensions.Literal[1]", NewLiteralInteger(1)},
		{"typing_extensions.Literal[1, 'a', True]", NewUnion(NewLiteralInteger(1), NewLiteralString("a"), NewLiteralBoolean(true))},
		{"typing.Literal[-3]", NewLiteralInteger(-3)},
		{"typing.TypeVar('T')", NewVariable("T")},
		{"typing.TypeVar('T', bound='int')", NewVariable("T", WithBound(Integer))},
		{"typing.TypeVar('T', int, str)", NewVariable("T", WithExplicit(Integer, String))},
		{"typing.TypeVar('T_co', covariant=True)", NewVariable("T_co", WithVariance(Covariant))},
		{"typing.TypeVar('T_contra', contravariant=True)", NewVariable("T_contra", WithVariance(Contravariant))},
		{"mypy_extensions.TypedDict('Movie', {'name': str, 'year': int})", NewTypedDictionary("Movie", movieFields(), true)},
		{"mypy_extensions.TypedDict('Movie', {'name': str, 'year': int}, total=False)", NewTypedDictionary("Movie", movieFields(), false)},
		{"'int'", Integer},
		{`typing.List["typing.Optional['int']"]`, List(NewOptional(Integer))},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := create(tt.source); !Equal(got, tt.want) {
				t.Errorf("got %s, want %s", Serialize(got), Serialize(tt.want))
			}
		})
	}
}

func TestCreateDegradesToTop(t *testing.T) {
	sources := []string{
		"5",
		"...",
		"[int]",
		"typing.Optional[int, str]",
		"typing.Callable[int]",
		"typing.Callable[int, str]",
		"typing_extensions.Literal[int]",
		"typing.TypeVar(T)",
		"mypy_extensions.TypedDict('Movie', [])",
		"foo()",
		"'typing.List['",
	}
	for _, source := range sources {
		if got := create(source); !IsTop(got) {
			t.Errorf("Create(%s) = %s, want unknown", source, got)
		}
	}
}

func TestExpressionRoundTrip(t *testing.T) {
	named := NewCallable("foo.bar", NewOverload(DefinedParameters(
		Named("$0", Integer),
		Named("$parameter$x", NewOptional(String)),
		NamedWithDefault("y", Bool),
		Variadic("args", Integer),
		Keywords("kwargs", Any{}),
	), NoneType))
	named.Overloads = []Overload{NewOverload(UndefinedParameters(), Integer)}

	types := []Type{
		Integer,
		NoneType,
		Any{},
		Top{},
		Bottom{},
		NewLiteralInteger(-4),
		NewLiteralString("it's"),
		NewLiteralBoolean(false),
		NewOptional(List(Integer)),
		NewUnion(Integer, String, Bytes),
		NewBoundedTuple(),
		NewBoundedTuple(Integer),
		NewUnboundedTuple(String),
		Dictionary(String, Set(Float)),
		Meta(NewPrimitive("foo.Bar")),
		UndefinedCallable(Integer),
		named,
		NewTypedDictionary("Movie", movieFields(), false),
		NewVariable("T"),
		NewVariable("T", WithBound(List(Integer))),
		NewVariable("T", WithExplicit(Integer, String)),
		NewVariable("T_co", WithVariance(Covariant)),
		List(NewVariable("T_contra", WithVariance(Contravariant))),
	}
	for _, typ := range types {
		expression := Expression(typ)
		if got := Create(NoAliases, expression); !Equal(got, typ) {
			t.Errorf("Create(Expression(%s)) = %s", Serialize(typ), Serialize(got))
		}

		source := ast.Format(expression)
		parsed, err := parser.Parse(source)
		if err != nil {
			t.Errorf("Parse(%s): %v", source, err)
			continue
		}
		if got := Create(NoAliases, parsed); !Equal(got, typ) {
			t.Errorf("Create(%s) = %s, want %s", source, Serialize(got), Serialize(typ))
		}
	}
}

func FuzzCreate(f *testing.F) {
	f.Add("typing.Optional[int]")
	f.Add("typing.Callable(foo)[[Named(x, int)], str][[[str], int]]")
	f.Add("mypy_extensions.TypedDict('Movie', {'name': str}, total=False)")
	f.Add("typing.TypeVar('T', bound='typing.List[int]')")

	f.Fuzz(func(t *testing.T, source string) {
		expression, err := parser.Parse(source)
		if err != nil {
			return
		}
		typ := Create(NoAliases, expression)
		_ = Serialize(typ)
		_ = Concise(typ)
		_ = typ.String()
		if _, err := MarshalJSON(typ); err != nil {
			t.Errorf("MarshalJSON(%s): %v", Serialize(typ), err)
		}
	})
}
