// Package schema translates the JSON-Schema-like input specifications
// carried by UTCP tool descriptors into runtime parameter models that can
// be presented to an LLM and used to validate argument payloads before a
// tool call is forwarded to the UTCP client.
package schema

import (
	"fmt"
	"sort"

	"github.com/universal-tool-calling-protocol/go-utcp/src/tools"
)

// Kind tags a node of a ParameterModel tree.
type Kind string

const (
	// KindAny accepts any JSON-serializable value. Unknown or missing
	// type tags translate to KindAny because UTCP manuals are not
	// guaranteed to be fully typed.
	KindAny     Kind = "any"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindInteger Kind = "integer"
	KindBoolean Kind = "boolean"
)

// maxSchemaDepth caps translation recursion so that a cyclic or absurdly
// nested property tree surfaces as a SchemaError instead of overflowing.
const maxSchemaDepth = 32

// Field describes one named argument of an object model.
type Field struct {
	Model    *ParameterModel
	Required bool
	// Default carries the schema-declared default of an optional field.
	// Validation never injects it: an omitted optional field stays
	// omitted so the remote API never receives fields the caller did
	// not provide.
	Default    any
	HasDefault bool
}

// ParameterModel is the in-process representation of a tool's input
// specification: a tagged variant tree over objects, arrays, scalars and
// enums, built fresh per tool descriptor at wrap time.
type ParameterModel struct {
	Kind        Kind
	Title       string
	Description string
	Format      string
	// Fields is set for object models with declared properties. A nil
	// Fields map on an object model means the object is free-form.
	Fields map[string]*Field
	// Items constrains array elements; nil means unconstrained items.
	Items *ParameterModel
	Enum  []any
}

// Unconstrained reports whether the model accepts any payload untouched.
func (m *ParameterModel) Unconstrained() bool {
	return m == nil || m.Kind == KindAny || (m.Kind == KindObject && m.Fields == nil)
}

// Translate converts a UTCP tool input specification into a ParameterModel.
func Translate(s *tools.ToolInputOutputSchema) (*ParameterModel, error) {
	if s == nil {
		return &ParameterModel{Kind: KindAny}, nil
	}
	node := map[string]any{}
	if s.Type != "" {
		node["type"] = s.Type
	}
	if len(s.Properties) > 0 {
		node["properties"] = s.Properties
	}
	if len(s.Required) > 0 {
		node["required"] = s.Required
	}
	if len(s.Items) > 0 {
		node["items"] = s.Items
	}
	if len(s.Enum) > 0 {
		node["enum"] = s.Enum
	}
	if s.Title != "" {
		node["title"] = s.Title
	}
	if s.Description != "" {
		node["description"] = s.Description
	}
	if s.Format != "" {
		node["format"] = s.Format
	}
	return translateNode(node, "$", 0)
}

// translateNode builds a model for one schema node. path is the JSONPath-ish
// location used in error messages.
func translateNode(node map[string]any, path string, depth int) (*ParameterModel, error) {
	if depth > maxSchemaDepth {
		return nil, &SchemaError{Path: path, Reason: fmt.Sprintf("nesting exceeds %d levels", maxSchemaDepth)}
	}

	typeTag, _ := node["type"].(string)
	m := &ParameterModel{Kind: kindOf(typeTag)}
	if v, ok := node["title"].(string); ok {
		m.Title = v
	}
	if v, ok := node["description"].(string); ok {
		m.Description = v
	}
	if v, ok := node["format"].(string); ok {
		m.Format = v
	}
	if v, ok := node["enum"].([]any); ok && len(v) > 0 {
		m.Enum = append([]any(nil), v...)
	}

	if rawProps, ok := node["properties"]; ok {
		props, ok := rawProps.(map[string]any)
		if !ok {
			return nil, &SchemaError{Path: path, Reason: `"properties" must be an object`}
		}
		if typeTag != "" && m.Kind != KindObject {
			return nil, &SchemaError{Path: path, Reason: fmt.Sprintf(`"properties" requires type "object", got %q`, typeTag)}
		}
		// Manuals frequently declare properties without a type tag;
		// treat those nodes as objects.
		m.Kind = KindObject
		required := stringSet(node["required"])
		m.Fields = make(map[string]*Field, len(props))
		for name, raw := range props {
			sub, ok := raw.(map[string]any)
			if !ok {
				return nil, &SchemaError{Path: path + "." + name, Reason: "field schema must be an object"}
			}
			fieldModel, err := translateNode(sub, path+"."+name, depth+1)
			if err != nil {
				return nil, err
			}
			field := &Field{Model: fieldModel, Required: required[name]}
			if def, ok := sub["default"]; ok && !field.Required {
				field.Default = def
				field.HasDefault = true
			}
			m.Fields[name] = field
		}
	}

	if m.Kind == KindArray {
		if items, ok := node["items"].(map[string]any); ok {
			itemModel, err := translateNode(items, path+"[]", depth+1)
			if err != nil {
				return nil, err
			}
			m.Items = itemModel
		}
	}

	return m, nil
}

// kindOf maps a JSON schema type tag to a Kind. Unrecognised tags fall
// back to KindAny rather than failing.
func kindOf(typeTag string) Kind {
	switch typeTag {
	case "object":
		return KindObject
	case "array":
		return KindArray
	case "string":
		return KindString
	case "number":
		return KindNumber
	case "integer":
		return KindInteger
	case "boolean":
		return KindBoolean
	default:
		return KindAny
	}
}

// stringSet normalises a schema "required" entry, which arrives either as
// []string straight off the descriptor or []any after JSON decoding.
func stringSet(raw any) map[string]bool {
	out := map[string]bool{}
	switch v := raw.(type) {
	case []string:
		for _, s := range v {
			out[s] = true
		}
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok {
				out[s] = true
			}
		}
	}
	return out
}

// JSONSchema re-serialises the model as a JSON-Schema-shaped map, the form
// in which the argument contract is presented to an LLM binding. Keys are
// emitted deterministically so two translations of the same input render
// identically.
func (m *ParameterModel) JSONSchema() map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := map[string]any{}
	if m.Kind != KindAny {
		out["type"] = string(m.Kind)
	}
	if m.Title != "" {
		out["title"] = m.Title
	}
	if m.Description != "" {
		out["description"] = m.Description
	}
	if m.Format != "" {
		out["format"] = m.Format
	}
	if len(m.Enum) > 0 {
		out["enum"] = append([]any(nil), m.Enum...)
	}
	if m.Kind == KindObject && m.Fields != nil {
		props := make(map[string]any, len(m.Fields))
		var required []string
		for name, field := range m.Fields {
			sub := field.Model.JSONSchema()
			if field.HasDefault {
				sub["default"] = field.Default
			}
			props[name] = sub
			if field.Required {
				required = append(required, name)
			}
		}
		out["properties"] = props
		if len(required) > 0 {
			sort.Strings(required)
			out["required"] = required
		}
	}
	if m.Kind == KindArray && m.Items != nil {
		out["items"] = m.Items.JSONSchema()
	}
	return out
}
