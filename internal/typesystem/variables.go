package typesystem

import "sync/atomic"

type ConstraintKind int

const (
	Unconstrained ConstraintKind = iota
	BoundConstraint
	ExplicitConstraint
	LiteralIntegersConstraint
)

// Constraints restrict the solutions of a type variable.
// Bound is set for BoundConstraint, Explicit for ExplicitConstraint.
type Constraints struct {
	Kind     ConstraintKind
	Bound    Type
	Explicit []Type
}

type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

// VariableState is the lifecycle tag of a type variable.
type VariableState int

const (
	StateFree VariableState = iota
	StateBound
	StateEscaped
)

func (s VariableState) String() string {
	switch s {
	case StateBound:
		return "bound"
	case StateEscaped:
		return "escaped"
	}
	return "free"
}

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "covariant"
	case Contravariant:
		return "contravariant"
	}
	return "invariant"
}

// Variable is a type variable. Identity is Name plus Namespace; two variables
// with the same name in different namespaces never unify with each other.
// Simulated marks a bound state that MarkSimulatedVariablesAsFree may revert.
type Variable struct {
	Name        string
	Constraints Constraints
	Variance    Variance
	State       VariableState
	Namespace   int
	Simulated   bool
}

type VariableOption func(*Variable)

func WithBound(bound Type) VariableOption {
	return func(v *Variable) { v.Constraints = Constraints{Kind: BoundConstraint, Bound: bound} }
}

// WithExplicit restricts solutions to the listed types. No types leaves the
// variable unconstrained.
func WithExplicit(types ...Type) VariableOption {
	return func(v *Variable) {
		if len(types) == 0 {
			v.Constraints = Constraints{}
			return
		}
		v.Constraints = Constraints{Kind: ExplicitConstraint, Explicit: append([]Type(nil), types...)}
	}
}

func WithLiteralIntegers() VariableOption {
	return func(v *Variable) { v.Constraints = Constraints{Kind: LiteralIntegersConstraint} }
}

func WithVariance(variance Variance) VariableOption {
	return func(v *Variable) { v.Variance = variance }
}

func WithNamespace(namespace int) VariableOption {
	return func(v *Variable) { v.Namespace = namespace }
}

// NewVariable creates a free, unconstrained, invariant variable in namespace 0.
func NewVariable(name string, options ...VariableOption) Variable {
	v := Variable{Name: name}
	for _, option := range options {
		option(&v)
	}
	return v
}

// Namespacer hands out namespaces. The zero value is ready to use and safe
// for concurrent callers.
type Namespacer struct {
	counter atomic.Int64
}

// Fresh returns a namespace never returned before by this Namespacer. Namespace 0
// is reserved for variables as written in source.
func (n *Namespacer) Fresh() int {
	return int(n.counter.Add(1))
}

var namespaces Namespacer

func FreshNamespace() int { return namespaces.Fresh() }

func (v Variable) IsFree() bool          { return v.State == StateFree }
func (v Variable) IsCovariant() bool     { return v.Variance == Covariant }
func (v Variable) IsContravariant() bool { return v.Variance == Contravariant }

// Identity reports whether two variables denote the same binder.
func (v Variable) Identity(other Variable) bool {
	return v.Name == other.Name && v.Namespace == other.Namespace
}

// UpperBound is the most general solution allowed by the constraints.
func UpperBound(v Variable) Type {
	switch v.Constraints.Kind {
	case BoundConstraint:
		return v.Constraints.Bound
	case ExplicitConstraint:
		return NewUnion(v.Constraints.Explicit...)
	case LiteralIntegersConstraint:
		return Integer
	}
	return Object
}

// mapVariables rewrites every variable of t with f; other nodes are rebuilt as is.
func mapVariables(t Type, f func(Variable) Type) Type {
	return Map(t, func(t Type) Type {
		if v, ok := t.(Variable); ok {
			return f(v)
		}
		return t
	})
}

// NamespaceVariable moves a variable into namespace.
func NamespaceVariable(v Variable, namespace int) Variable {
	v.Namespace = namespace
	return v
}

// NamespaceFreeVariables moves every free variable of t into namespace.
func NamespaceFreeVariables(t Type, namespace int) Type {
	return mapVariables(t, func(v Variable) Type {
		if v.IsFree() {
			return NamespaceVariable(v, namespace)
		}
		return v
	})
}

// FreshenFreeVariables moves every free variable of t into a fresh namespace.
func FreshenFreeVariables(t Type) Type {
	return NamespaceFreeVariables(t, FreshNamespace())
}

// FreeVariables lists the variables of t that are not bound, deduplicated by
// identity, in order of first occurrence.
func FreeVariables(t Type) []Variable {
	free, _ := Transform[[]Variable](VisitorFuncs[[]Variable]{
		VisitFunc: func(free []Variable, t Type) ([]Variable, Type) {
			v, ok := t.(Variable)
			if !ok || v.State == StateBound || containsVariable(free, v) {
				return free, t
			}
			return append(free, v), t
		},
	}, nil, t)
	return free
}

// MarkVariablesAsBound quantifies every variable of t. Simulated marks are only
// held for fit checking and are reverted by MarkSimulatedVariablesAsFree, so a
// simulated pass leaves variables that are already bound untouched.
func MarkVariablesAsBound(t Type, simulated bool) Type {
	return mapVariables(t, func(v Variable) Type {
		if simulated && v.State == StateBound {
			return v
		}
		v.State = StateBound
		v.Simulated = simulated
		return v
	})
}

func MarkSimulatedVariablesAsFree(t Type) Type {
	return mapVariables(t, func(v Variable) Type {
		if v.State == StateBound && v.Simulated {
			v.State = StateFree
			v.Simulated = false
		}
		return v
	})
}

// MarkFreeVariablesAsEscaped flips free variables to the escaped state. When
// specific is non-nil only the listed variables are affected. Escaped copies
// are moved into one fresh namespace so they cannot alias the originals.
func MarkFreeVariablesAsEscaped(t Type, specific []Variable) Type {
	namespace := FreshNamespace()
	return mapVariables(t, func(v Variable) Type {
		if !v.IsFree() {
			return v
		}
		if specific != nil && !containsVariable(specific, v) {
			return v
		}
		v.State = StateEscaped
		v.Namespace = namespace
		return v
	})
}

func containsVariable(variables []Variable, v Variable) bool {
	for _, candidate := range variables {
		if candidate.Identity(v) {
			return true
		}
	}
	return false
}

func IsEscapedFreeVariable(t Type) bool {
	v, ok := t.(Variable)
	return ok && v.State == StateEscaped
}

func ContainsEscapedFreeVariable(t Type) bool {
	return Exists(t, IsEscapedFreeVariable)
}

func ConvertEscapedFreeVariablesToAnys(t Type) Type {
	return mapVariables(t, func(v Variable) Type {
		if v.State == StateEscaped {
			return Any{}
		}
		return v
	})
}

// InstantiateFreeVariables replaces every free variable of t with replacement.
func InstantiateFreeVariables(t Type, replacement Type) Type {
	return mapVariables(t, func(v Variable) Type {
		if v.IsFree() {
			return replacement
		}
		return v
	})
}

// Instantiate substitutes every subtree for which constraints has a solution.
// Mapped subtrees are replaced whole and not descended into. With widen set,
// a Bottom solution becomes Top and literals within solutions are weakened.
func Instantiate(t Type, constraints func(Type) (Type, bool), widen bool) Type {
	_, result := Transform[struct{}](VisitorFuncs[struct{}]{
		VisitFunc: func(state struct{}, t Type) (struct{}, Type) {
			solution, ok := constraints(t)
			if !ok {
				return state, t
			}
			if widen {
				if _, isBottom := solution.(Bottom); isBottom {
					return state, Top{}
				}
				return state, WeakenLiterals(solution)
			}
			return state, solution
		},
		Before: func(_ struct{}, t Type) bool {
			_, ok := constraints(t)
			return !ok
		},
	}, struct{}{}, t)
	return result
}

// Binding pairs a variable with its solution.
type Binding struct {
	Variable Variable
	Solution Type
}

// Solution builds a constraints function for Instantiate. Variables are matched
// by identity; the first matching binding wins.
func Solution(bindings ...Binding) func(Type) (Type, bool) {
	return func(t Type) (Type, bool) {
		v, ok := t.(Variable)
		if !ok {
			return nil, false
		}
		for _, binding := range bindings {
			if binding.Variable.Identity(v) {
				return binding.Solution, true
			}
		}
		return nil, false
	}
}

// IsInstantiated reports whether t mentions neither Bottom nor any variable.
// The Bottom inside None does not count.
func IsInstantiated(t Type) bool {
	found, _ := Transform[bool](VisitorFuncs[bool]{
		VisitFunc: func(found bool, t Type) (bool, Type) {
			switch t.(type) {
			case Bottom, Variable:
				return true, t
			}
			return found, t
		},
		Before: func(found bool, t Type) bool { return !found && !IsNone(t) },
	}, false, t)
	return !found
}

// ContainsVariable reports whether any variable occurs in t.
func ContainsVariable(t Type) bool {
	return Exists(t, func(t Type) bool {
		_, ok := t.(Variable)
		return ok
	})
}
