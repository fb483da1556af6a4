// Package langchain wraps UTCP tool descriptors into LangChain-style tool
// objects backed by a live UTCP client, and provides the catalog and
// search entry points used to load them in bulk.
package langchain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/universal-tool-calling-protocol/go-utcp/src/tools"

	"github.com/universal-tool-calling-protocol/langchain-utcp-adapters/src/json"
	"github.com/universal-tool-calling-protocol/langchain-utcp-adapters/src/schema"
)

// Logger is the logging callback threaded through the adapters.
type Logger func(format string, args ...any)

func discardLogger(string, ...any) {}

// Tool is the tool contract expected by LangChain-style agent frameworks.
type Tool interface {
	Name() string
	Description() string
	Call(ctx context.Context, input string) (string, error)
}

// UtcpClientInterface is the surface of the go-utcp client consumed by
// this package. Any client implementation, including test doubles, may be
// plugged in. The adapters hold a non-owning reference: opening and
// closing the client stays the responsibility of whoever constructed it.
type UtcpClientInterface interface {
	SearchTools(ctx context.Context, query string, limit int) ([]tools.Tool, error)
	CallTool(ctx context.Context, toolName string, args map[string]any) (any, error)
}

// ExecutionError reports a UTCP tool call that failed at the client or
// transport level. It is surfaced to the agent as a tool-level error
// result, never as an unwind that aborts the agent loop.
type ExecutionError struct {
	Tool   string
	CallID string
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("error calling UTCP tool %s (call %s): %v", e.Tool, e.CallID, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Result is the either-shaped outcome of a tool invocation: a raw output
// from the UTCP client, or an error to be presented to the model.
type Result struct {
	Output any
	Err    error
}

// String renders the result for an LLM. Errors and UTCP error-shaped maps
// render as "Error: ..." text, maps and slices as indented JSON and
// anything else through fmt.
func (r Result) String() string {
	if r.Err != nil {
		return "Error: " + r.Err.Error()
	}
	return renderOutput(r.Output)
}

func renderOutput(output any) string {
	if output == nil {
		return ""
	}
	if m, ok := output.(map[string]any); ok {
		if errVal, present := m["error"]; present && errVal != nil {
			return fmt.Sprintf("Error: %v", errVal)
		}
	}
	switch output.(type) {
	case map[string]any, []any:
		if encoded, err := json.MarshalIndent(output, "", "  "); err == nil {
			return string(encoded)
		}
	}
	return fmt.Sprint(output)
}

// StructuredTool binds one UTCP tool descriptor, its parameter model and a
// borrowed UTCP client into a callable LangChain-style tool.
//
// StructuredTool is immutable after construction and safe for concurrent
// invocation; discarding one has no effect on the client.
type StructuredTool struct {
	name             string
	utcpName         string
	description      string
	callTemplate     string
	callTemplateType string
	tags             []string
	model            *schema.ParameterModel
	client           UtcpClientInterface
	metadata         map[string]any
	log              Logger
}

// Name returns the name the tool is exposed under. It equals the UTCP
// tool name unless the tool went through a name-compatibility renaming.
func (t *StructuredTool) Name() string { return t.name }

// UTCPName returns the namespaced name the UTCP client executes under.
func (t *StructuredTool) UTCPName() string { return t.utcpName }

// Description returns the tool description verbatim from the descriptor.
func (t *StructuredTool) Description() string { return t.description }

// CallTemplate returns the name of the call template the tool belongs to.
func (t *StructuredTool) CallTemplate() string { return t.callTemplate }

// ArgsSchema returns the parameter model derived from the tool's input
// specification.
func (t *StructuredTool) ArgsSchema() *schema.ParameterModel { return t.model }

// Tags returns a copy of the descriptor's tags.
func (t *StructuredTool) Tags() []string { return append([]string(nil), t.tags...) }

// Metadata returns a copy of the tool metadata (call template name and
// type, tags, and the utcp_tool marker).
func (t *StructuredTool) Metadata() map[string]any {
	out := make(map[string]any, len(t.metadata))
	for k, v := range t.metadata {
		out[k] = v
	}
	return out
}

// WithName returns a copy of the tool exposed under a different public
// name. The copy still executes under the original UTCP tool name.
func (t *StructuredTool) WithName(name string) *StructuredTool {
	clone := *t
	clone.name = name
	return &clone
}

// Invoke validates the argument payload against the parameter model and
// forwards it to the UTCP client. Validation and execution failures come
// back inside the Result so the calling agent can show them to the model
// and retry; they never panic and never abort the caller.
func (t *StructuredTool) Invoke(ctx context.Context, args map[string]any) Result {
	if t.client == nil {
		return Result{Err: fmt.Errorf("tool %s has no UTCP client attached", t.name)}
	}
	validated, err := t.model.ValidateArguments(args)
	if err != nil {
		return Result{Err: err}
	}
	callID := uuid.NewString()
	output, err := t.client.CallTool(ctx, t.utcpName, validated)
	if err != nil {
		t.log("utcp tool %s call %s failed: %v", t.utcpName, callID, err)
		return Result{Err: &ExecutionError{Tool: t.utcpName, CallID: callID, Err: err}}
	}
	return Result{Output: output}
}

// Call satisfies the Tool interface. The input string is decoded into an
// argument payload, the tool is invoked, and the rendered result is
// returned. Expected failures (validation, execution) are rendered into
// the returned string; the error return is reserved for programming
// errors such as a wrapper without a client.
func (t *StructuredTool) Call(ctx context.Context, input string) (string, error) {
	if t.client == nil {
		return "", fmt.Errorf("tool %s has no UTCP client attached", t.name)
	}
	res := t.Invoke(ctx, decodeInput(input))
	if res.Err != nil {
		var validationErr *schema.ValidationError
		var executionErr *ExecutionError
		if errors.As(res.Err, &validationErr) || errors.As(res.Err, &executionErr) {
			return res.String(), nil
		}
		return "", res.Err
	}
	return res.String(), nil
}

// decodeInput turns the framework's string input into an argument payload.
// A JSON object maps directly; any other non-empty input becomes the
// single "value" argument, which keeps plain-string agent prompts usable
// against tools whose input schema is a bare scalar.
func decodeInput(input string) map[string]any {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return map[string]any{}
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(trimmed), &args); err == nil && args != nil {
		return args
	}
	return map[string]any{"value": input}
}
