package typesystem

import (
	"strings"

	"github.com/seraphln/pyre-check/internal/config"
)

// WeakenLiterals replaces every literal in t with its general type.
func WeakenLiterals(t Type) Type {
	return Map(t, func(t Type) Type {
		literal, ok := t.(Literal)
		if !ok {
			return t
		}
		switch literal.Kind {
		case LiteralBoolean:
			return Bool
		case LiteralInteger:
			return Integer
		}
		return String
	})
}

// RemoveUndeclared drops the undeclared marker from unions. A type that was
// nothing but the marker becomes Top.
func RemoveUndeclared(t Type) Type {
	if Equal(t, Undeclared) {
		return Top{}
	}
	result := Map(t, func(t Type) Type {
		union, ok := t.(Union)
		if !ok {
			return t
		}
		kept := make([]Type, 0, len(union.Types))
		for _, member := range union.Types {
			if !Equal(member, Undeclared) {
				kept = append(kept, member)
			}
		}
		if len(kept) == 0 {
			return Top{}
		}
		return NewUnion(kept...)
	})
	if Equal(result, Undeclared) {
		return Top{}
	}
	return result
}

// Split decomposes t into its head and element types.
func Split(t Type) (Type, []Type) {
	switch typ := t.(type) {
	case Optional:
		if IsNone(typ) {
			return typ, nil
		}
		return NewPrimitive(config.TypingOptional), []Type{typ.Type}
	case Parametric:
		return NewPrimitive(typ.Name), typ.Parameters
	case Tuple:
		return NewPrimitive(config.TupleTypeName), typ.Elements()
	case TypedDictionary:
		return NewPrimitive(config.TypedDictPrimitive), nil
	case Literal:
		return WeakenLiterals(typ), nil
	case Callable:
		return NewPrimitive(config.TypingCallable), nil
	}
	return t, nil
}

// Dequalify shortens nominal names for display. Each name is rewritten by the
// longest qualifier in renames that prefixes it on a component boundary; the
// empty string removes the qualifier. Optional and Union are spelled as
// applications of their (dequalified) typing names.
func Dequalify(renames map[string]string, t Type) Type {
	dequalify := func(name string) string { return dequalifyName(renames, name) }
	_, result := Transform[struct{}](VisitorFuncs[struct{}]{
		VisitFunc: func(state struct{}, t Type) (struct{}, Type) {
			switch typ := t.(type) {
			case Optional:
				if IsNone(typ) {
					return state, typ
				}
				return state, Parametric{Name: dequalify(config.TypingOptional), Parameters: []Type{typ.Type}}
			case Union:
				return state, Parametric{Name: dequalify(config.TypingUnion), Parameters: typ.Types}
			case Primitive:
				return state, Primitive{Name: dequalify(typ.Name)}
			case Parametric:
				return state, Parametric{Name: dequalify(config.ReverseGenericAlias(typ.Name)), Parameters: typ.Parameters}
			case Variable:
				typ.Name = dequalify(typ.Name)
				return state, typ
			case Callable:
				if !typ.IsAnonymous() {
					typ.Name = dequalify(typ.Name)
				}
				return state, typ
			}
			return state, t
		},
	}, struct{}{}, t)
	return result
}

func dequalifyName(renames map[string]string, name string) string {
	best := ""
	found := false
	for qualifier := range renames {
		if name != qualifier && !strings.HasPrefix(name, qualifier+".") {
			continue
		}
		if !found || len(qualifier) > len(best) {
			best, found = qualifier, true
		}
	}
	if !found {
		return name
	}
	rest := strings.TrimPrefix(strings.TrimPrefix(name, best), ".")
	replacement := renames[best]
	switch {
	case rest == "":
		return replacement
	case replacement == "":
		return rest
	}
	return replacement + "." + rest
}
