// Package lang defines the language-level vocabulary shared between the
// lexer, the parser and visitor sinks: variable kinds, normalized
// identifiers and function attributes.
package lang

import "github.com/kasumi-lint/kasumi/internal/source"

// VariableKind classifies how a variable was introduced.
type VariableKind int

const (
	VariableKindVar VariableKind = iota
	VariableKindLet
	VariableKindConst
	VariableKindFunction
	VariableKindClass
	VariableKindParameter
	VariableKindCatch
	VariableKindImport
)

var variableKindNames = map[VariableKind]string{
	VariableKindVar:       "var",
	VariableKindLet:       "let",
	VariableKindConst:     "const",
	VariableKindFunction:  "function",
	VariableKindClass:     "class",
	VariableKindParameter: "parameter",
	VariableKindCatch:     "catch",
	VariableKindImport:    "import",
}

func (k VariableKind) String() string {
	if name, ok := variableKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Identifier is a name in source position: its span plus the text after
// escape-sequence normalization (\u{76} decoded to its code point).
// HasEscape is preserved so keyword-with-escape diagnostics can be emitted.
type Identifier struct {
	Name      string
	Span      source.Span
	HasEscape bool
}

// FunctionAttributes records whether a function is async, a generator, both
// or neither. It changes how await and yield lex and parse in the body.
type FunctionAttributes int

const (
	FunctionAttributesNormal FunctionAttributes = iota
	FunctionAttributesAsync
	FunctionAttributesGenerator
	FunctionAttributesAsyncGenerator
)

// IsAsync reports whether await is an operator under these attributes.
func (a FunctionAttributes) IsAsync() bool {
	return a == FunctionAttributesAsync || a == FunctionAttributesAsyncGenerator
}

// IsGenerator reports whether yield is an operator under these attributes.
func (a FunctionAttributes) IsGenerator() bool {
	return a == FunctionAttributesGenerator || a == FunctionAttributesAsyncGenerator
}

func (a FunctionAttributes) String() string {
	switch a {
	case FunctionAttributesAsync:
		return "async"
	case FunctionAttributesGenerator:
		return "generator"
	case FunctionAttributesAsyncGenerator:
		return "async generator"
	default:
		return "normal"
	}
}
