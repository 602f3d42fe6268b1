package typesystem

import "strings"

// variant ranks order types of different variants in Compare.
func rank(t Type) int {
	switch t.(type) {
	case nil:
		return -1
	case Bottom:
		return 0
	case Top:
		return 1
	case Any:
		return 2
	case Literal:
		return 3
	case Primitive:
		return 4
	case Optional:
		return 5
	case Union:
		return 6
	case Tuple:
		return 7
	case Parametric:
		return 8
	case Callable:
		return 9
	case TypedDictionary:
		return 10
	case Variable:
		return 11
	}
	panic("typesystem: unknown type variant")
}

// Compare is a total structural order over types. It returns 0 iff the
// values are structurally equal, including variable namespaces and states.
func Compare(left, right Type) int {
	if c := compareInts(rank(left), rank(right)); c != 0 {
		return c
	}
	switch l := left.(type) {
	case nil, Bottom, Top, Any:
		return 0
	case Literal:
		return compareLiterals(l, right.(Literal))
	case Primitive:
		return strings.Compare(l.Name, right.(Primitive).Name)
	case Optional:
		return Compare(l.Type, right.(Optional).Type)
	case Union:
		return compareTypeLists(l.Types, right.(Union).Types)
	case Tuple:
		r := right.(Tuple)
		if c := compareBools(l.IsUnbounded(), r.IsUnbounded()); c != 0 {
			return c
		}
		if l.IsUnbounded() {
			return Compare(l.Unbounded, r.Unbounded)
		}
		return compareTypeLists(l.Bounded, r.Bounded)
	case Parametric:
		r := right.(Parametric)
		if c := strings.Compare(l.Name, r.Name); c != 0 {
			return c
		}
		return compareTypeLists(l.Parameters, r.Parameters)
	case Callable:
		return compareCallables(l, right.(Callable))
	case TypedDictionary:
		r := right.(TypedDictionary)
		if c := strings.Compare(l.Name, r.Name); c != 0 {
			return c
		}
		if c := compareBools(l.Total, r.Total); c != 0 {
			return c
		}
		return compareFields(l.Fields, r.Fields)
	case Variable:
		return compareVariables(l, right.(Variable))
	}
	panic("typesystem: unknown type variant")
}

// Equal reports exact structural equality.
func Equal(left, right Type) bool { return Compare(left, right) == 0 }

func compareInts(left, right int) int {
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	}
	return 0
}

func compareInt64s(left, right int64) int {
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	}
	return 0
}

func compareBools(left, right bool) int {
	switch {
	case left == right:
		return 0
	case !left:
		return -1
	}
	return 1
}

func compareLiterals(left, right Literal) int {
	if c := compareInts(int(left.Kind), int(right.Kind)); c != 0 {
		return c
	}
	switch left.Kind {
	case LiteralBoolean:
		return compareBools(left.Bool, right.Bool)
	case LiteralInteger:
		return compareInt64s(left.Int, right.Int)
	default:
		return strings.Compare(left.Str, right.Str)
	}
}

func compareTypeLists(left, right []Type) int {
	for i := 0; i < len(left) && i < len(right); i++ {
		if c := Compare(left[i], right[i]); c != 0 {
			return c
		}
	}
	return compareInts(len(left), len(right))
}

func compareFields(left, right []Field) int {
	for i := 0; i < len(left) && i < len(right); i++ {
		if c := strings.Compare(left[i].Name, right[i].Name); c != 0 {
			return c
		}
		if c := Compare(left[i].Annotation, right[i].Annotation); c != 0 {
			return c
		}
	}
	return compareInts(len(left), len(right))
}

func compareCallables(left, right Callable) int {
	if c := strings.Compare(left.Name, right.Name); c != 0 {
		return c
	}
	if c := compareOverloads(left.Implementation, right.Implementation); c != 0 {
		return c
	}
	for i := 0; i < len(left.Overloads) && i < len(right.Overloads); i++ {
		if c := compareOverloads(left.Overloads[i], right.Overloads[i]); c != 0 {
			return c
		}
	}
	if c := compareInts(len(left.Overloads), len(right.Overloads)); c != 0 {
		return c
	}
	switch {
	case left.Implicit == nil && right.Implicit == nil:
		return 0
	case left.Implicit == nil:
		return -1
	case right.Implicit == nil:
		return 1
	}
	if c := strings.Compare(left.Implicit.Name, right.Implicit.Name); c != 0 {
		return c
	}
	return Compare(left.Implicit.Annotation, right.Implicit.Annotation)
}

func compareOverloads(left, right Overload) int {
	if c := compareBools(left.Parameters.Defined, right.Parameters.Defined); c != 0 {
		return c
	}
	for i := 0; i < len(left.Parameters.List) && i < len(right.Parameters.List); i++ {
		if c := compareParameters(left.Parameters.List[i], right.Parameters.List[i]); c != 0 {
			return c
		}
	}
	if c := compareInts(len(left.Parameters.List), len(right.Parameters.List)); c != 0 {
		return c
	}
	return Compare(left.Annotation, right.Annotation)
}

func compareParameters(left, right Parameter) int {
	if c := compareInts(int(left.Kind), int(right.Kind)); c != 0 {
		return c
	}
	if c := strings.Compare(left.Name, right.Name); c != 0 {
		return c
	}
	if c := Compare(left.Annotation, right.Annotation); c != 0 {
		return c
	}
	return compareBools(left.Default, right.Default)
}

func compareVariables(left, right Variable) int {
	if c := strings.Compare(left.Name, right.Name); c != 0 {
		return c
	}
	if c := compareInts(left.Namespace, right.Namespace); c != 0 {
		return c
	}
	if c := compareInts(int(left.State), int(right.State)); c != 0 {
		return c
	}
	if c := compareBools(left.Simulated, right.Simulated); c != 0 {
		return c
	}
	if c := compareInts(int(left.Variance), int(right.Variance)); c != 0 {
		return c
	}
	return compareConstraints(left.Constraints, right.Constraints)
}

func compareConstraints(left, right Constraints) int {
	if c := compareInts(int(left.Kind), int(right.Kind)); c != 0 {
		return c
	}
	switch left.Kind {
	case BoundConstraint:
		return Compare(left.Bound, right.Bound)
	case ExplicitConstraint:
		return compareTypeLists(left.Explicit, right.Explicit)
	}
	return 0
}
