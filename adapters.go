// Package adapters makes Universal Tool Calling Protocol (UTCP) tools
// usable from LangChain-style agent frameworks in Go. It re-exports the
// public surface of the src packages: schema translation, tool wrapping,
// catalog loading, search, and name compatibility for downstream
// consumers with stricter tool-name grammars.
package adapters

import (
	"github.com/universal-tool-calling-protocol/langchain-utcp-adapters/src/langchain"
	"github.com/universal-tool-calling-protocol/langchain-utcp-adapters/src/names"
	"github.com/universal-tool-calling-protocol/langchain-utcp-adapters/src/schema"
)

// Core types.
type (
	Tool                = langchain.Tool
	StructuredTool      = langchain.StructuredTool
	UtcpClientInterface = langchain.UtcpClientInterface
	Result              = langchain.Result
	ExecutionError      = langchain.ExecutionError
	Logger              = langchain.Logger
	Option              = langchain.Option

	ParameterModel  = schema.ParameterModel
	Field           = schema.Field
	Kind            = schema.Kind
	SchemaError     = schema.SchemaError
	ValidationError = schema.ValidationError

	Grammar                      = names.Grammar
	AliasTable                   = names.AliasTable
	AliasCollisionExhaustedError = names.AliasCollisionExhaustedError
)

// Loading, searching and converting tools.
var (
	LoadUTCPTools    = langchain.LoadUTCPTools
	SearchUTCPTools  = langchain.SearchUTCPTools
	ConvertTool      = langchain.ConvertTool
	WithCallTemplate = langchain.WithCallTemplate
	WithMaxResults   = langchain.WithMaxResults
	WithLogger       = langchain.WithLogger
)

// Schema translation.
var Translate = schema.Translate

// Name compatibility.
var (
	CreateNameCompatibleMapping = names.CreateNameCompatibleMapping
	RestoreOriginalName         = names.RestoreOriginalName
	DefaultGrammar              = names.DefaultGrammar
)
