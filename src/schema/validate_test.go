package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/universal-tool-calling-protocol/go-utcp/src/tools"
)

func mustTranslate(t *testing.T, s *tools.ToolInputOutputSchema) *ParameterModel {
	t.Helper()
	model, err := Translate(s)
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}
	return model
}

func TestValidateMissingRequiredFieldNamesIt(t *testing.T) {
	model := mustTranslate(t, bookSchema())
	_, err := model.ValidateArguments(map[string]any{"max_pages": 10})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "isbn", validationErr.Field)
	assert.Contains(t, err.Error(), "isbn")
}

func TestValidateRejectsUndeclaredField(t *testing.T) {
	model := mustTranslate(t, bookSchema())
	_, err := model.ValidateArguments(map[string]any{
		"isbn":     "978-3",
		"surprise": true,
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "surprise", validationErr.Field)
}

func TestValidateCoercesScalars(t *testing.T) {
	model := mustTranslate(t, &tools.ToolInputOutputSchema{
		Type: "object",
		Properties: map[string]any{
			"count":   map[string]any{"type": "integer"},
			"ratio":   map[string]any{"type": "number"},
			"enabled": map[string]any{"type": "boolean"},
			"label":   map[string]any{"type": "string"},
		},
	})
	out, err := model.ValidateArguments(map[string]any{
		"count":   "5",
		"ratio":   1,
		"enabled": "true",
		"label":   42,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), out["count"])
	assert.Equal(t, float64(1), out["ratio"])
	assert.Equal(t, true, out["enabled"])
	assert.Equal(t, "42", out["label"])
}

func TestValidateRejectsUncoercibleValue(t *testing.T) {
	model := mustTranslate(t, &tools.ToolInputOutputSchema{
		Type:       "object",
		Properties: map[string]any{"count": map[string]any{"type": "integer"}},
	})
	_, err := model.ValidateArguments(map[string]any{"count": "plenty"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "count", validationErr.Field)
}

func TestValidateOptionalOmittedStaysOmitted(t *testing.T) {
	model := mustTranslate(t, bookSchema())
	out, err := model.ValidateArguments(map[string]any{"isbn": "978-3"})
	require.NoError(t, err)
	if _, present := out["include_reviews"]; present {
		t.Fatalf("optional field was injected into the payload: %v", out)
	}
	if _, present := out["max_pages"]; present {
		t.Fatalf("optional field was injected into the payload: %v", out)
	}
}

func TestValidateExplicitNullIsKept(t *testing.T) {
	model := mustTranslate(t, bookSchema())
	out, err := model.ValidateArguments(map[string]any{"isbn": "978-3", "max_pages": nil})
	require.NoError(t, err)
	value, present := out["max_pages"]
	require.True(t, present)
	assert.Nil(t, value)
}

func TestValidateUnconstrainedPassthrough(t *testing.T) {
	model := mustTranslate(t, &tools.ToolInputOutputSchema{})
	args := map[string]any{"whatever": []any{1, "two"}, "more": nil}
	out, err := model.ValidateArguments(args)
	require.NoError(t, err)
	assert.Equal(t, args, out)
}

func TestValidateEnum(t *testing.T) {
	model := mustTranslate(t, &tools.ToolInputOutputSchema{
		Type: "object",
		Properties: map[string]any{
			"genre": map[string]any{"type": "string", "enum": []any{"fiction", "poetry"}},
			"level": map[string]any{"type": "integer", "enum": []any{float64(1), float64(2)}},
		},
	})

	out, err := model.ValidateArguments(map[string]any{"genre": "poetry", "level": "2"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out["level"])

	_, err = model.ValidateArguments(map[string]any{"genre": "horror"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "genre", validationErr.Field)
}

func TestValidateNestedObjectErrorNamesPath(t *testing.T) {
	model := mustTranslate(t, &tools.ToolInputOutputSchema{
		Type: "object",
		Properties: map[string]any{
			"filters": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"genre": map[string]any{"type": "string"},
				},
				"required": []any{"genre"},
			},
		},
	})
	_, err := model.ValidateArguments(map[string]any{"filters": map[string]any{}})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "filters.genre", validationErr.Field)
}

func TestValidateArrayItems(t *testing.T) {
	model := mustTranslate(t, &tools.ToolInputOutputSchema{
		Type: "object",
		Properties: map[string]any{
			"pages": map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
		},
	})

	out, err := model.ValidateArguments(map[string]any{"pages": []any{"1", 2}})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2)}, out["pages"])

	_, err = model.ValidateArguments(map[string]any{"pages": "1,2"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = model.ValidateArguments(map[string]any{"pages": []any{"one"}})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "pages[0]", validationErr.Field)
}

func TestValidateNilArguments(t *testing.T) {
	model := mustTranslate(t, &tools.ToolInputOutputSchema{
		Type:       "object",
		Properties: map[string]any{"q": map[string]any{"type": "string"}},
	})
	out, err := model.ValidateArguments(nil)
	if err != nil || len(out) != 0 {
		t.Fatalf("expected empty payload, got %v %v", out, err)
	}
}
