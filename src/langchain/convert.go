package langchain

import (
	"errors"

	base "github.com/universal-tool-calling-protocol/go-utcp/src/providers/base"
	"github.com/universal-tool-calling-protocol/go-utcp/src/tools"

	"github.com/universal-tool-calling-protocol/langchain-utcp-adapters/src/json"
	"github.com/universal-tool-calling-protocol/langchain-utcp-adapters/src/schema"
)

// ConvertTool wraps a single UTCP tool descriptor into a StructuredTool
// backed by the given client.
//
// A descriptor whose input specification cannot be translated degrades to
// an unconstrained (passthrough) parameter model rather than failing; the
// only wrap-time hard error is a descriptor without a name.
func ConvertTool(client UtcpClientInterface, tool tools.Tool, opts ...Option) (*StructuredTool, error) {
	o := newOptions(opts)
	if tool.Name == "" {
		return nil, errors.New("cannot convert a UTCP tool without a name")
	}

	model, err := schema.Translate(&tool.Inputs)
	if err != nil {
		o.logger("tool %s has an untranslatable input schema (%v), using passthrough arguments", tool.Name, err)
		model = &schema.ParameterModel{Kind: schema.KindAny}
	}
	// A descriptor typed as a bare scalar or array still needs a named
	// argument contract; wrap it in a single required "value" field.
	if model.Kind != schema.KindObject && model.Kind != schema.KindAny {
		model = &schema.ParameterModel{
			Kind:   schema.KindObject,
			Fields: map[string]*schema.Field{"value": {Model: model, Required: true}},
		}
	}

	description := tool.Description
	if description == "" {
		description = "UTCP tool: " + tool.Name
	}

	templateName, templateType := callTemplateIdentity(tool.Provider)
	return &StructuredTool{
		name:             tool.Name,
		utcpName:         tool.Name,
		description:      description,
		callTemplate:     templateName,
		callTemplateType: templateType,
		tags:             append([]string(nil), tool.Tags...),
		model:            model,
		client:           client,
		metadata: map[string]any{
			"call_template":      templateName,
			"call_template_type": templateType,
			"tags":               append([]string(nil), tool.Tags...),
			"utcp_tool":          true,
		},
		log: o.logger,
	}, nil
}

// callTemplateIdentity extracts the owning call template's name and type
// from a provider. The base Provider interface only exposes the type
// discriminator, so the name comes from a Name method where one exists
// and otherwise from the provider's JSON form, the same round-trip the
// go-utcp client uses for provider manipulation.
func callTemplateIdentity(p base.Provider) (name, providerType string) {
	if p == nil {
		return "unknown", "unknown"
	}
	providerType = string(p.Type())
	if named, ok := p.(interface{ Name() string }); ok {
		return named.Name(), providerType
	}
	blob, err := json.Marshal(p)
	if err != nil {
		return "unknown", providerType
	}
	var raw map[string]any
	if err := json.Unmarshal(blob, &raw); err != nil {
		return "unknown", providerType
	}
	if n, ok := raw["name"].(string); ok && n != "" {
		return n, providerType
	}
	return "unknown", providerType
}
