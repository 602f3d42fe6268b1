package typesystem

// ReplacePrimitive replaces every occurrence of the nominal name with replacement.
// Parametric applications of the name keep their parameters only when the
// replacement is itself nominal; otherwise the whole application is replaced.
func ReplacePrimitive(t Type, name string, replacement Type) Type {
	return Map(t, func(t Type) Type {
		switch typ := t.(type) {
		case Primitive:
			if typ.Name == name {
				return replacement
			}
		case Parametric:
			if typ.Name != name {
				return typ
			}
			switch target := replacement.(type) {
			case Primitive:
				return NewParametric(target.Name, typ.Parameters...)
			case Parametric:
				return NewParametric(target.Name, typ.Parameters...)
			}
			return replacement
		}
		return t
	})
}
