package schema

import (
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

// ValidateArguments checks an untrusted argument payload against the model
// and returns the validated, coerced payload that may be forwarded to the
// UTCP client.
//
// Unconstrained models pass the payload through untouched. Constrained
// object models reject undeclared fields, require every required field,
// coerce scalar values to their declared kinds and recurse into nested
// objects and arrays. Optional fields the caller omitted stay omitted.
func (m *ParameterModel) ValidateArguments(args map[string]any) (map[string]any, error) {
	if args == nil {
		args = map[string]any{}
	}
	if m.Unconstrained() || m.Kind != KindObject {
		return args, nil
	}

	for name := range args {
		if _, ok := m.Fields[name]; !ok {
			return nil, &ValidationError{Field: name, Reason: "field is not declared by the tool's input schema"}
		}
	}

	out := make(map[string]any, len(args))
	for name, field := range m.Fields {
		value, present := args[name]
		if !present {
			if field.Required {
				return nil, &ValidationError{Field: name, Reason: "required field is missing"}
			}
			continue
		}
		coerced, err := field.Model.coerceValue(value, name)
		if err != nil {
			return nil, err
		}
		out[name] = coerced
	}
	return out, nil
}

// coerceValue converts a single value to the model's kind, checking enum
// membership after coercion. field names the value's location for errors.
func (m *ParameterModel) coerceValue(value any, field string) (any, error) {
	// Explicit null is passed through as-is; it is distinct from an
	// omitted field and the remote tool decides what null means.
	if value == nil {
		return nil, nil
	}
	if m == nil || m.Kind == KindAny {
		return value, nil
	}

	var coerced any
	switch m.Kind {
	case KindString:
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, &ValidationError{Field: field, Reason: fmt.Sprintf("expected string, got %T", value)}
		}
		coerced = s
	case KindInteger:
		n, err := cast.ToInt64E(value)
		if err != nil {
			return nil, &ValidationError{Field: field, Reason: fmt.Sprintf("expected integer, got %v (%T)", value, value)}
		}
		coerced = n
	case KindNumber:
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return nil, &ValidationError{Field: field, Reason: fmt.Sprintf("expected number, got %v (%T)", value, value)}
		}
		coerced = f
	case KindBoolean:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return nil, &ValidationError{Field: field, Reason: fmt.Sprintf("expected boolean, got %v (%T)", value, value)}
		}
		coerced = b
	case KindArray:
		items, ok := value.([]any)
		if !ok {
			return nil, &ValidationError{Field: field, Reason: fmt.Sprintf("expected array, got %T", value)}
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := m.Items.coerceValue(item, fmt.Sprintf("%s[%d]", field, i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		coerced = out
	case KindObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, &ValidationError{Field: field, Reason: fmt.Sprintf("expected object, got %T", value)}
		}
		nested, err := m.ValidateArguments(obj)
		if err != nil {
			if ve, ok := err.(*ValidationError); ok && ve.Field != "" {
				return nil, &ValidationError{Field: field + "." + ve.Field, Reason: ve.Reason}
			}
			return nil, err
		}
		coerced = nested
	default:
		coerced = value
	}

	if len(m.Enum) > 0 && !enumContains(m.Enum, coerced) {
		return nil, &ValidationError{Field: field, Reason: fmt.Sprintf("value %v is not one of the allowed values %v", coerced, m.Enum)}
	}
	return coerced, nil
}

// enumContains matches structurally first, then by printed form so that a
// coerced int64(1) still matches the float64(1) a JSON-decoded enum holds.
func enumContains(enum []any, value any) bool {
	for _, allowed := range enum {
		if reflect.DeepEqual(allowed, value) {
			return true
		}
		if fmt.Sprint(allowed) == fmt.Sprint(value) {
			return true
		}
	}
	return false
}
