package typesystem

import (
	"sort"

	"github.com/seraphln/pyre-check/internal/config"
)

// Well-known types.
var (
	Integer    Type = Primitive{Name: config.IntegerTypeName}
	String     Type = Primitive{Name: config.StringTypeName}
	Bool       Type = Primitive{Name: config.BoolTypeName}
	Float      Type = Primitive{Name: config.FloatTypeName}
	Complex    Type = Primitive{Name: config.ComplexTypeName}
	Bytes      Type = Primitive{Name: config.BytesTypeName}
	Object     Type = Primitive{Name: config.ObjectTypeName}
	Ellipsis   Type = Primitive{Name: config.EllipsisTypeName}
	Undeclared Type = Primitive{Name: config.TypingUndeclared}
	Generic    Type = Primitive{Name: config.TypingGeneric}
	Protocol   Type = Primitive{Name: config.TypingProtocol}
	NoneType   Type = Optional{Type: Bottom{}}
)

func NewPrimitive(name string) Type { return Primitive{Name: name} }

func NewLiteralBoolean(value bool) Type { return Literal{Kind: LiteralBoolean, Bool: value} }

func NewLiteralInteger(value int64) Type { return Literal{Kind: LiteralInteger, Int: value} }

func NewLiteralString(value string) Type { return Literal{Kind: LiteralString, Str: value} }

// NewOptional wraps t in Optional, collapsing Optional[Optional[T]] to Optional[T].
// Optional of Top or Any is the operand itself.
func NewOptional(t Type) Type {
	switch inner := t.(type) {
	case nil:
		return NoneType
	case Optional:
		return inner
	case Top, Any:
		return inner
	}
	return Optional{Type: t}
}

// NewUnion builds a normalized union: nested unions are flattened, Bottom members
// dropped, duplicates removed and members sorted. A Top member absorbs the whole
// union, otherwise an Any member does. Optional members lift the union into an Optional.
// An empty union is Bottom and a singleton is its member.
func NewUnion(types ...Type) Type {
	members := make([]Type, 0, len(types))
	optional := false
	absorbing := Type(nil)

	var flatten func(t Type)
	flatten = func(t Type) {
		switch typ := t.(type) {
		case nil, Bottom:
		case Union:
			for _, member := range typ.Types {
				flatten(member)
			}
		case Optional:
			optional = true
			flatten(typ.Type)
		case Top:
			absorbing = typ
		case Any:
			if _, isTop := absorbing.(Top); !isTop {
				absorbing = typ
			}
		default:
			members = append(members, t)
		}
	}
	for _, t := range types {
		flatten(t)
	}
	if absorbing != nil {
		return absorbing
	}

	sort.SliceStable(members, func(i, j int) bool { return Compare(members[i], members[j]) < 0 })
	unique := members[:0]
	for _, member := range members {
		if len(unique) > 0 && Equal(unique[len(unique)-1], member) {
			continue
		}
		unique = append(unique, member)
	}

	var result Type
	switch len(unique) {
	case 0:
		result = Bottom{}
	case 1:
		result = unique[0]
	default:
		result = Union{Types: unique}
	}
	if optional {
		return NewOptional(result)
	}
	return result
}

// NewParametric applies a generic name to parameters. typing aliases of builtin
// generics (typing.List, typing.Dict, ...) are normalized to the builtin name.
func NewParametric(name string, parameters ...Type) Type {
	if builtin, ok := config.GenericAliases[name]; ok {
		name = builtin
	}
	return Parametric{Name: name, Parameters: append([]Type(nil), parameters...)}
}

func NewBoundedTuple(elements ...Type) Type {
	return Tuple{Bounded: append([]Type(nil), elements...)}
}

func NewUnboundedTuple(element Type) Type {
	if element == nil {
		element = Top{}
	}
	return Tuple{Unbounded: element}
}

// NewTypedDictionary builds a record with fields sorted by name.
func NewTypedDictionary(name string, fields []Field, total bool) Type {
	return TypedDictionary{Name: name, Fields: sortedFields(fields), Total: total}
}

// AnonymousTypedDictionary is a total record that was never given a class name.
func AnonymousTypedDictionary(fields []Field) Type {
	return NewTypedDictionary(config.AnonymousTypedDictionaryName, fields, true)
}

func sortedFields(fields []Field) []Field {
	sorted := append([]Field(nil), fields...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted
}

func List(element Type) Type { return NewParametric(config.ListTypeName, element) }

func Dictionary(key, value Type) Type { return NewParametric(config.DictTypeName, key, value) }

func Set(element Type) Type { return NewParametric(config.SetTypeName, element) }

func Iterator(element Type) Type { return NewParametric(config.TypingIterator, element) }

func Iterable(element Type) Type { return NewParametric(config.TypingIterable, element) }

func Sequence(element Type) Type { return NewParametric(config.TypingSequence, element) }

func Generator(element Type) Type {
	return NewParametric(config.TypingGenerator, element, NoneType, NoneType)
}

func Awaitable(element Type) Type { return NewParametric(config.TypingAwaitable, element) }

func Coroutine(element Type) Type {
	return NewParametric(config.TypingCoroutine, Any{}, Any{}, element)
}

// Meta is the type of a class object, type[T].
func Meta(t Type) Type { return NewParametric(config.MetaTypeName, t) }

func TupleOf(elements ...Type) Type { return NewBoundedTuple(elements...) }
