package schema

import "fmt"

// SchemaError reports an input specification that could not be translated
// into a ParameterModel. Callers may degrade to an unconstrained model
// instead of propagating it.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid tool schema at %s: %s", e.Path, e.Reason)
}

// ValidationError reports an argument payload rejected by a ParameterModel.
// It is an expected, per-call failure and should be surfaced to the agent
// as a tool-level error result rather than aborting the agent loop.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid arguments: %s", e.Reason)
	}
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}
