package typesystem

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hash returns a structural hash consistent with Equal:
// Equal(a, b) implies Hash(a) == Hash(b).
func Hash(t Type) uint64 {
	h := hasher{digest: xxhash.New()}
	h.typ(t)
	return h.digest.Sum64()
}

type hasher struct {
	digest  *xxhash.Digest
	scratch [8]byte
}

func (h *hasher) writeInt(value int64) {
	binary.LittleEndian.PutUint64(h.scratch[:], uint64(value))
	_, _ = h.digest.Write(h.scratch[:])
}

func (h *hasher) writeBool(value bool) {
	if value {
		h.writeInt(1)
	} else {
		h.writeInt(0)
	}
}

// Strings are length-prefixed so adjacent strings cannot run together.
func (h *hasher) writeString(value string) {
	h.writeInt(int64(len(value)))
	_, _ = h.digest.WriteString(value)
}

func (h *hasher) types(types []Type) {
	h.writeInt(int64(len(types)))
	for _, t := range types {
		h.typ(t)
	}
}

func (h *hasher) typ(t Type) {
	h.writeInt(int64(rank(t)))
	switch typ := t.(type) {
	case nil, Bottom, Top, Any:
	case Literal:
		h.writeInt(int64(typ.Kind))
		switch typ.Kind {
		case LiteralBoolean:
			h.writeBool(typ.Bool)
		case LiteralInteger:
			h.writeInt(typ.Int)
		default:
			h.writeString(typ.Str)
		}
	case Primitive:
		h.writeString(typ.Name)
	case Optional:
		h.typ(typ.Type)
	case Union:
		h.types(typ.Types)
	case Tuple:
		h.writeBool(typ.IsUnbounded())
		if typ.IsUnbounded() {
			h.typ(typ.Unbounded)
		} else {
			h.types(typ.Bounded)
		}
	case Parametric:
		h.writeString(typ.Name)
		h.types(typ.Parameters)
	case Callable:
		h.writeString(typ.Name)
		h.overload(typ.Implementation)
		h.writeInt(int64(len(typ.Overloads)))
		for _, overload := range typ.Overloads {
			h.overload(overload)
		}
		h.writeBool(typ.Implicit != nil)
		if typ.Implicit != nil {
			h.writeString(typ.Implicit.Name)
			h.typ(typ.Implicit.Annotation)
		}
	case TypedDictionary:
		h.writeString(typ.Name)
		h.writeBool(typ.Total)
		h.writeInt(int64(len(typ.Fields)))
		for _, field := range typ.Fields {
			h.writeString(field.Name)
			h.typ(field.Annotation)
		}
	case Variable:
		h.writeString(typ.Name)
		h.writeInt(int64(typ.Namespace))
		h.writeInt(int64(typ.State))
		h.writeBool(typ.Simulated)
		h.writeInt(int64(typ.Variance))
		h.writeInt(int64(typ.Constraints.Kind))
		switch typ.Constraints.Kind {
		case BoundConstraint:
			h.typ(typ.Constraints.Bound)
		case ExplicitConstraint:
			h.types(typ.Constraints.Explicit)
		}
	}
}

func (h *hasher) overload(overload Overload) {
	h.writeBool(overload.Parameters.Defined)
	h.writeInt(int64(len(overload.Parameters.List)))
	for _, parameter := range overload.Parameters.List {
		h.writeInt(int64(parameter.Kind))
		h.writeString(parameter.Name)
		h.typ(parameter.Annotation)
		h.writeBool(parameter.Default)
	}
	h.typ(overload.Annotation)
}
