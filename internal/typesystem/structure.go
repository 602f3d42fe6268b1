package typesystem

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// Structure converts t into a structured value for tooling consumers. Every
// node is an object with a "kind" key; integer literals are carried as strings
// so values beyond float64 precision survive.
func Structure(t Type) (*structpb.Value, error) {
	value, err := structpb.NewValue(structure(t))
	if err != nil {
		return nil, fmt.Errorf("structuring %s: %w", Serialize(t), err)
	}
	return value, nil
}

// MarshalJSON encodes the structured form of t. Object keys are sorted, so the
// output is a deterministic function of t.
func MarshalJSON(t Type) ([]byte, error) {
	value, err := Structure(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(value.AsInterface())
}

type object = map[string]interface{}

func structures(types []Type) []interface{} {
	result := make([]interface{}, len(types))
	for i, t := range types {
		result[i] = structure(t)
	}
	return result
}

func structure(t Type) interface{} {
	switch typ := t.(type) {
	case nil:
		return nil
	case Bottom:
		return object{"kind": "bottom"}
	case Top:
		return object{"kind": "top"}
	case Any:
		return object{"kind": "any"}
	case Literal:
		switch typ.Kind {
		case LiteralBoolean:
			return object{"kind": "literal", "literal": "boolean", "value": typ.Bool}
		case LiteralInteger:
			return object{"kind": "literal", "literal": "integer", "value": fmt.Sprint(typ.Int)}
		}
		return object{"kind": "literal", "literal": "string", "value": typ.Str}
	case Primitive:
		return object{"kind": "primitive", "name": typ.Name}
	case Optional:
		if IsNone(typ) {
			return object{"kind": "none"}
		}
		return object{"kind": "optional", "type": structure(typ.Type)}
	case Union:
		return object{"kind": "union", "types": structures(typ.Types)}
	case Tuple:
		if typ.IsUnbounded() {
			return object{"kind": "tuple", "unbounded": structure(typ.Unbounded)}
		}
		return object{"kind": "tuple", "bounded": structures(typ.Bounded)}
	case Parametric:
		return object{"kind": "parametric", "name": typ.Name, "parameters": structures(typ.Parameters)}
	case Callable:
		overloads := make([]interface{}, len(typ.Overloads))
		for i, overload := range typ.Overloads {
			overloads[i] = overloadStructure(overload)
		}
		result := object{
			"kind":           "callable",
			"name":           typ.Name,
			"implementation": overloadStructure(typ.Implementation),
			"overloads":      overloads,
		}
		if typ.Implicit != nil {
			result["implicit"] = object{"name": typ.Implicit.Name, "annotation": structure(typ.Implicit.Annotation)}
		}
		return result
	case TypedDictionary:
		fields := make([]interface{}, len(typ.Fields))
		for i, field := range typ.Fields {
			fields[i] = object{"name": field.Name, "annotation": structure(field.Annotation)}
		}
		return object{"kind": "typed_dictionary", "name": typ.Name, "total": typ.Total, "fields": fields}
	case Variable:
		constraints := object{}
		switch typ.Constraints.Kind {
		case BoundConstraint:
			constraints["bound"] = structure(typ.Constraints.Bound)
		case ExplicitConstraint:
			constraints["explicit"] = structures(typ.Constraints.Explicit)
		case LiteralIntegersConstraint:
			constraints["literal_integers"] = true
		}
		return object{
			"kind":        "variable",
			"name":        typ.Name,
			"namespace":   typ.Namespace,
			"state":       typ.State.String(),
			"simulated":   typ.Simulated,
			"variance":    typ.Variance.String(),
			"constraints": constraints,
		}
	}
	panic("typesystem: unknown type variant")
}

func overloadStructure(o Overload) interface{} {
	result := object{"annotation": structure(o.Annotation)}
	if !o.Parameters.Defined {
		result["parameters"] = nil
		return result
	}
	parameters := make([]interface{}, len(o.Parameters.List))
	for i, parameter := range o.Parameters.List {
		kind := "named"
		switch parameter.Kind {
		case VariadicParameter:
			kind = "variable"
		case KeywordsParameter:
			kind = "keywords"
		}
		parameters[i] = object{
			"kind":       kind,
			"name":       parameter.Name,
			"annotation": structure(parameter.Annotation),
			"default":    parameter.Default,
		}
	}
	result["parameters"] = parameters
	return result
}
