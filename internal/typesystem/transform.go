package typesystem

// Visitor drives Transform. Visit rewrites a single node and threads state.
// VisitChildrenBefore decides whether the children of a node are rewritten
// before Visit sees it; VisitChildrenAfter whether the children of the node
// returned by Visit are rewritten afterwards.
type Visitor[S any] interface {
	Visit(state S, t Type) (S, Type)
	VisitChildrenBefore(state S, t Type) bool
	VisitChildrenAfter() bool
}

// VisitorFuncs adapts closures to Visitor. A nil Before always recurses first.
type VisitorFuncs[S any] struct {
	VisitFunc func(state S, t Type) (S, Type)
	Before    func(state S, t Type) bool
	After     bool
}

func (v VisitorFuncs[S]) Visit(state S, t Type) (S, Type) {
	if v.VisitFunc == nil {
		return state, t
	}
	return v.VisitFunc(state, t)
}

func (v VisitorFuncs[S]) VisitChildrenBefore(state S, t Type) bool {
	if v.Before == nil {
		return true
	}
	return v.Before(state, t)
}

func (v VisitorFuncs[S]) VisitChildrenAfter() bool { return v.After }

// Transform rewrites t depth-first and returns the final state with the new tree.
// Children are visited left to right in field order; compound nodes are rebuilt
// with the normalizing constructors, so the result is always normalized.
func Transform[S any](v Visitor[S], state S, t Type) (S, Type) {
	tr := transformer[S]{visitor: v, state: state}
	result := tr.visit(t)
	return tr.state, result
}

type transformer[S any] struct {
	visitor Visitor[S]
	state   S
}

func (tr *transformer[S]) visit(t Type) Type {
	if t == nil {
		return nil
	}
	if tr.visitor.VisitChildrenBefore(tr.state, t) {
		t = tr.children(t)
	}
	var transformed Type
	tr.state, transformed = tr.visitor.Visit(tr.state, t)
	if tr.visitor.VisitChildrenAfter() {
		transformed = tr.children(transformed)
	}
	return transformed
}

func (tr *transformer[S]) list(types []Type) []Type {
	if types == nil {
		return nil
	}
	result := make([]Type, len(types))
	for i, t := range types {
		result[i] = tr.visit(t)
	}
	return result
}

func (tr *transformer[S]) children(t Type) Type {
	switch typ := t.(type) {
	case nil, Bottom, Top, Any, Literal, Primitive, Variable:
		return t
	case Optional:
		return NewOptional(tr.visit(typ.Type))
	case Union:
		return NewUnion(tr.list(typ.Types)...)
	case Tuple:
		if typ.IsUnbounded() {
			return Tuple{Unbounded: tr.visit(typ.Unbounded)}
		}
		return Tuple{Bounded: tr.list(typ.Bounded)}
	case Parametric:
		return Parametric{Name: typ.Name, Parameters: tr.list(typ.Parameters)}
	case Callable:
		return tr.callable(typ)
	case TypedDictionary:
		fields := make([]Field, len(typ.Fields))
		for i, field := range typ.Fields {
			fields[i] = Field{Name: field.Name, Annotation: tr.visit(field.Annotation)}
		}
		return TypedDictionary{Name: typ.Name, Fields: fields, Total: typ.Total}
	}
	panic("typesystem: unknown type variant")
}

func (tr *transformer[S]) callable(c Callable) Type {
	result := Callable{Name: c.Name, Implementation: tr.overload(c.Implementation)}
	if c.Overloads != nil {
		result.Overloads = make([]Overload, len(c.Overloads))
		for i, overload := range c.Overloads {
			result.Overloads[i] = tr.overload(overload)
		}
	}
	if c.Implicit != nil {
		result.Implicit = &Implicit{Name: c.Implicit.Name, Annotation: tr.visit(c.Implicit.Annotation)}
	}
	return result
}

func (tr *transformer[S]) overload(o Overload) Overload {
	result := Overload{Parameters: Parameters{Defined: o.Parameters.Defined}}
	if o.Parameters.List != nil {
		result.Parameters.List = make([]Parameter, len(o.Parameters.List))
		for i, parameter := range o.Parameters.List {
			parameter.Annotation = tr.visit(parameter.Annotation)
			result.Parameters.List[i] = parameter
		}
	}
	result.Annotation = tr.visit(o.Annotation)
	return result
}

// Map rewrites every node of t bottom-up with f.
func Map(t Type, f func(Type) Type) Type {
	_, result := Transform[struct{}](VisitorFuncs[struct{}]{
		VisitFunc: func(state struct{}, t Type) (struct{}, Type) { return state, f(t) },
	}, struct{}{}, t)
	return result
}

// Collect gathers values from every node of t in traversal order.
func Collect[V any](t Type, f func(Type) []V) []V {
	collected, _ := Transform[[]V](VisitorFuncs[[]V]{
		VisitFunc: func(state []V, t Type) ([]V, Type) { return append(state, f(t)...), t },
	}, nil, t)
	return collected
}

// Exists reports whether any node of t satisfies predicate.
func Exists(t Type, predicate func(Type) bool) bool {
	found, _ := Transform[bool](VisitorFuncs[bool]{
		VisitFunc: func(found bool, t Type) (bool, Type) { return found || predicate(t), t },
		Before:    func(found bool, _ Type) bool { return !found },
	}, false, t)
	return found
}
