package config

// IsTestMode indicates if the program is running under tests.
// When set, the CLI never colours its output.
var IsTestMode = false

// SettingsFileName is the configuration file looked up by the CLI.
const SettingsFileName = "pyretype.yaml"

// Builtin nominal type names
const (
	IntegerTypeName    = "int"
	StringTypeName     = "str"
	BoolTypeName       = "bool"
	FloatTypeName      = "float"
	ComplexTypeName    = "complex"
	BytesTypeName      = "bytes"
	ObjectTypeName     = "object"
	EllipsisTypeName   = "ellipsis"
	ListTypeName       = "list"
	DictTypeName       = "dict"
	SetTypeName        = "set"
	FrozenSetTypeName  = "frozenset"
	TupleTypeName      = "tuple"
	MetaTypeName       = "type"
	NoneTypeName       = "None"
	DefaultDictName    = "collections.defaultdict"
	DequeTypeName      = "collections.deque"
	CounterTypeName    = "collections.Counter"
	ChainMapTypeName   = "collections.ChainMap"
	OrderedDictName    = "collections.OrderedDict"
	TypedDictPrimitive = "TypedDictionary"
)

// typing module names
const (
	TypingAny        = "typing.Any"
	TypingOptional   = "typing.Optional"
	TypingUnion      = "typing.Union"
	TypingTuple      = "typing.Tuple"
	TypingCallable   = "typing.Callable"
	TypingTypeVar    = "typing.TypeVar"
	TypingGeneric    = "typing.Generic"
	TypingProtocol   = "typing.Protocol"
	TypingIterator   = "typing.Iterator"
	TypingIterable   = "typing.Iterable"
	TypingSequence   = "typing.Sequence"
	TypingGenerator  = "typing.Generator"
	TypingAwaitable  = "typing.Awaitable"
	TypingCoroutine  = "typing.Coroutine"
	TypingUndeclared = "typing.Undeclared"
	TypingLiteral    = "typing.Literal"
	TypingTypedDict  = "typing.TypedDict"
	LiteralName      = "typing_extensions.Literal"
	TypedDictName    = "mypy_extensions.TypedDict"
)

// Parameter spellings used inside Callable annotations
const (
	NamedParameterName    = "Named"
	VariableParameterName = "Variable"
	KeywordsParameterName = "Keywords"
	DefaultMarker         = "default"
	ParameterPrefix       = "$parameter$"
	SelfParameterName     = "self"
)

// AnonymousTypedDictionaryName names records that were never declared with a class name.
const AnonymousTypedDictionaryName = "$anonymous"

// GenericAliases maps typing aliases of builtin generics to their builtin names.
// Construction normalizes through this table and full rendering reverses it.
var GenericAliases = map[string]string{
	"typing.List":        ListTypeName,
	"typing.Dict":        DictTypeName,
	"typing.Set":         SetTypeName,
	"typing.FrozenSet":   FrozenSetTypeName,
	"typing.Type":        MetaTypeName,
	"typing.DefaultDict": DefaultDictName,
	"typing.Deque":       DequeTypeName,
	"typing.Counter":     CounterTypeName,
	"typing.ChainMap":    ChainMapTypeName,
	"typing.OrderedDict": OrderedDictName,
}

// ReverseGenericAlias returns the typing spelling of a builtin generic name.
func ReverseGenericAlias(name string) string {
	for alias, builtin := range GenericAliases {
		if builtin == name {
			return alias
		}
	}
	return name
}
