package diag

import (
	"fmt"

	"github.com/kasumi-lint/kasumi/internal/source"
)

// Lexer-level diagnostics.

type UnexpectedCharacter struct {
	Character source.Span
}

func (UnexpectedCharacter) Code() string        { return "E0001" }
func (UnexpectedCharacter) Message() string     { return "unexpected character" }
func (d UnexpectedCharacter) Span() source.Span { return d.Character }

type UnclosedStringLiteral struct {
	StringLiteral source.Span
}

func (UnclosedStringLiteral) Code() string        { return "E0002" }
func (UnclosedStringLiteral) Message() string     { return "unclosed string literal" }
func (d UnclosedStringLiteral) Span() source.Span { return d.StringLiteral }

type UnclosedTemplate struct {
	Template source.Span
}

func (UnclosedTemplate) Code() string        { return "E0003" }
func (UnclosedTemplate) Message() string     { return "unclosed template" }
func (d UnclosedTemplate) Span() source.Span { return d.Template }

type UnclosedRegexpLiteral struct {
	RegexpLiteral source.Span
}

func (UnclosedRegexpLiteral) Code() string        { return "E0004" }
func (UnclosedRegexpLiteral) Message() string     { return "unclosed regexp literal" }
func (d UnclosedRegexpLiteral) Span() source.Span { return d.RegexpLiteral }

type UnclosedBlockComment struct {
	Comment source.Span
}

func (UnclosedBlockComment) Code() string        { return "E0005" }
func (UnclosedBlockComment) Message() string     { return "unclosed block comment" }
func (d UnclosedBlockComment) Span() source.Span { return d.Comment }

type UnexpectedCharactersInNumber struct {
	Characters source.Span
}

func (UnexpectedCharactersInNumber) Code() string        { return "E0006" }
func (UnexpectedCharactersInNumber) Message() string     { return "unexpected characters in number literal" }
func (d UnexpectedCharactersInNumber) Span() source.Span { return d.Characters }

type BigIntLiteralContainsDecimalPoint struct {
	Where source.Span
}

func (BigIntLiteralContainsDecimalPoint) Code() string { return "E0007" }
func (BigIntLiteralContainsDecimalPoint) Message() string {
	return "BigInt literal contains decimal point"
}
func (d BigIntLiteralContainsDecimalPoint) Span() source.Span { return d.Where }

type BigIntLiteralContainsExponent struct {
	Where source.Span
}

func (BigIntLiteralContainsExponent) Code() string        { return "E0008" }
func (BigIntLiteralContainsExponent) Message() string     { return "BigInt literal contains exponent" }
func (d BigIntLiteralContainsExponent) Span() source.Span { return d.Where }

type KeywordsCannotContainEscapeSequences struct {
	EscapeSequence source.Span
}

func (KeywordsCannotContainEscapeSequences) Code() string { return "E0009" }
func (KeywordsCannotContainEscapeSequences) Message() string {
	return "keywords cannot contain escape sequences"
}
func (d KeywordsCannotContainEscapeSequences) Span() source.Span { return d.EscapeSequence }

type ExpectedHexDigitsInUnicodeEscape struct {
	EscapeSequence source.Span
}

func (ExpectedHexDigitsInUnicodeEscape) Code() string { return "E0010" }
func (ExpectedHexDigitsInUnicodeEscape) Message() string {
	return "expected hexadecimal digits in Unicode escape sequence"
}
func (d ExpectedHexDigitsInUnicodeEscape) Span() source.Span { return d.EscapeSequence }

type EscapedCharacterDisallowedInIdentifiers struct {
	EscapeSequence source.Span
}

func (EscapedCharacterDisallowedInIdentifiers) Code() string { return "E0011" }
func (EscapedCharacterDisallowedInIdentifiers) Message() string {
	return "escaped character is not allowed in identifiers"
}
func (d EscapedCharacterDisallowedInIdentifiers) Span() source.Span { return d.EscapeSequence }

// Statement and declaration diagnostics.

type UnexpectedToken struct {
	Token source.Span
}

func (UnexpectedToken) Code() string        { return "E0012" }
func (UnexpectedToken) Message() string     { return "unexpected token" }
func (d UnexpectedToken) Span() source.Span { return d.Token }

type LetWithNoBindings struct {
	Where source.Span
}

func (LetWithNoBindings) Code() string        { return "E0013" }
func (LetWithNoBindings) Message() string     { return "let with no bindings" }
func (d LetWithNoBindings) Span() source.Span { return d.Where }

type StrayCommaInLetStatement struct {
	Where source.Span
}

func (StrayCommaInLetStatement) Code() string        { return "E0014" }
func (StrayCommaInLetStatement) Message() string     { return "stray comma in let statement" }
func (d StrayCommaInLetStatement) Span() source.Span { return d.Where }

type UnexpectedTokenInVariableDeclaration struct {
	UnexpectedToken source.Span
}

func (UnexpectedTokenInVariableDeclaration) Code() string { return "E0015" }
func (UnexpectedTokenInVariableDeclaration) Message() string {
	return "unexpected token in variable declaration; expected variable name"
}
func (d UnexpectedTokenInVariableDeclaration) Span() source.Span { return d.UnexpectedToken }

type InvalidBindingInLetStatement struct {
	Where source.Span
}

func (InvalidBindingInLetStatement) Code() string        { return "E0016" }
func (InvalidBindingInLetStatement) Message() string     { return "invalid binding in let statement" }
func (d InvalidBindingInLetStatement) Span() source.Span { return d.Where }

type MissingVariableNameInDeclaration struct {
	EqualToken source.Span
}

func (MissingVariableNameInDeclaration) Code() string        { return "E0017" }
func (MissingVariableNameInDeclaration) Message() string     { return "missing variable name" }
func (d MissingVariableNameInDeclaration) Span() source.Span { return d.EqualToken }

type CannotDeclareVariableWithKeywordName struct {
	Keyword source.Span
	Name    string
}

func (CannotDeclareVariableWithKeywordName) Code() string { return "E0018" }
func (d CannotDeclareVariableWithKeywordName) Message() string {
	return fmt.Sprintf("cannot declare variable named keyword %q", d.Name)
}
func (d CannotDeclareVariableWithKeywordName) Span() source.Span { return d.Keyword }

type CannotDeclareVariableNamedLetWithLet struct {
	Name source.Span
}

func (CannotDeclareVariableNamedLetWithLet) Code() string { return "E0019" }
func (CannotDeclareVariableNamedLetWithLet) Message() string {
	return "cannot declare variable named 'let' with 'let' or 'const'"
}
func (d CannotDeclareVariableNamedLetWithLet) Span() source.Span { return d.Name }

type CannotDeclareClassNamedLet struct {
	Name source.Span
}

func (CannotDeclareClassNamedLet) Code() string        { return "E0020" }
func (CannotDeclareClassNamedLet) Message() string     { return "classes cannot be named 'let'" }
func (d CannotDeclareClassNamedLet) Span() source.Span { return d.Name }

type CannotDeclareAwaitInAsyncFunction struct {
	Name source.Span
}

func (CannotDeclareAwaitInAsyncFunction) Code() string { return "E0021" }
func (CannotDeclareAwaitInAsyncFunction) Message() string {
	return "cannot declare 'await' inside async function"
}
func (d CannotDeclareAwaitInAsyncFunction) Span() source.Span { return d.Name }

type CannotDeclareYieldInGeneratorFunction struct {
	Name source.Span
}

func (CannotDeclareYieldInGeneratorFunction) Code() string { return "E0022" }
func (CannotDeclareYieldInGeneratorFunction) Message() string {
	return "cannot declare 'yield' inside generator function"
}
func (d CannotDeclareYieldInGeneratorFunction) Span() source.Span { return d.Name }

type MissingSemicolonAfterStatement struct {
	Where source.Span
}

func (MissingSemicolonAfterStatement) Code() string        { return "E0023" }
func (MissingSemicolonAfterStatement) Message() string     { return "missing semicolon after statement" }
func (d MissingSemicolonAfterStatement) Span() source.Span { return d.Where }

type MissingOperandForOperator struct {
	Where source.Span
}

func (MissingOperandForOperator) Code() string        { return "E0024" }
func (MissingOperandForOperator) Message() string     { return "missing operand for operator" }
func (d MissingOperandForOperator) Span() source.Span { return d.Where }

type UnmatchedParenthesis struct {
	Where source.Span
}

func (UnmatchedParenthesis) Code() string        { return "E0025" }
func (UnmatchedParenthesis) Message() string     { return "unmatched parenthesis" }
func (d UnmatchedParenthesis) Span() source.Span { return d.Where }

type MissingValueForObjectLiteralEntry struct {
	Key source.Span
}

func (MissingValueForObjectLiteralEntry) Code() string { return "E0026" }
func (MissingValueForObjectLiteralEntry) Message() string {
	return "missing value for object property"
}
func (d MissingValueForObjectLiteralEntry) Span() source.Span { return d.Key }

type InvalidLoneLiteralInObjectLiteral struct {
	Where source.Span
}

func (InvalidLoneLiteralInObjectLiteral) Code() string { return "E0027" }
func (InvalidLoneLiteralInObjectLiteral) Message() string {
	return "invalid lone literal in object literal"
}
func (d InvalidLoneLiteralInObjectLiteral) Span() source.Span { return d.Where }

// Module (import/export) diagnostics.

type MissingTokenAfterExport struct {
	ExportToken source.Span
}

func (MissingTokenAfterExport) Code() string { return "E0028" }
func (MissingTokenAfterExport) Message() string {
	return "incomplete export; expected 'export default ...' or 'export {name}' or 'export * from ...' or 'export class' or 'export function' or 'export let'"
}
func (d MissingTokenAfterExport) Span() source.Span { return d.ExportToken }

type UnexpectedTokenAfterExport struct {
	UnexpectedToken source.Span
}

func (UnexpectedTokenAfterExport) Code() string { return "E0029" }
func (UnexpectedTokenAfterExport) Message() string {
	return "unexpected token in export; expected 'export default ...' or 'export {name}' or 'export * from ...' or 'export class' or 'export function' or 'export let'"
}
func (d UnexpectedTokenAfterExport) Span() source.Span { return d.UnexpectedToken }

type ExportingRequiresCurlies struct {
	Names source.Span
}

func (ExportingRequiresCurlies) Code() string        { return "E0030" }
func (ExportingRequiresCurlies) Message() string     { return "exporting requires '{' and '}'" }
func (d ExportingRequiresCurlies) Span() source.Span { return d.Names }

type ExportingRequiresDefault struct {
	Expression source.Span
}

func (ExportingRequiresDefault) Code() string        { return "E0031" }
func (ExportingRequiresDefault) Message() string     { return "exporting requires 'default'" }
func (d ExportingRequiresDefault) Span() source.Span { return d.Expression }

type CannotExportDefaultVariable struct {
	DeclaringToken source.Span
}

func (CannotExportDefaultVariable) Code() string { return "E0032" }
func (CannotExportDefaultVariable) Message() string {
	return "cannot declare and export variable with 'export default'"
}
func (d CannotExportDefaultVariable) Span() source.Span { return d.DeclaringToken }

type CannotExportVariableNamedKeyword struct {
	ExportName source.Span
	Name       string
}

func (CannotExportVariableNamedKeyword) Code() string { return "E0033" }
func (d CannotExportVariableNamedKeyword) Message() string {
	return fmt.Sprintf("cannot export variable named keyword %q", d.Name)
}
func (d CannotExportVariableNamedKeyword) Span() source.Span { return d.ExportName }

type ExportingStringNameOnlyAllowedForExportFrom struct {
	ExportName source.Span
}

func (ExportingStringNameOnlyAllowedForExportFrom) Code() string { return "E0034" }
func (ExportingStringNameOnlyAllowedForExportFrom) Message() string {
	return "forwarding exports are only allowed in export-from"
}
func (d ExportingStringNameOnlyAllowedForExportFrom) Span() source.Span { return d.ExportName }

type MissingNameOfExportedFunction struct {
	FunctionKeyword source.Span
}

func (MissingNameOfExportedFunction) Code() string        { return "E0035" }
func (MissingNameOfExportedFunction) Message() string     { return "exported function must have a name" }
func (d MissingNameOfExportedFunction) Span() source.Span { return d.FunctionKeyword }

type MissingNameOfExportedClass struct {
	ClassKeyword source.Span
}

func (MissingNameOfExportedClass) Code() string        { return "E0036" }
func (MissingNameOfExportedClass) Message() string     { return "exported class must have a name" }
func (d MissingNameOfExportedClass) Span() source.Span { return d.ClassKeyword }

type ExpectedAsBeforeImportedNamespaceAlias struct {
	StarThroughAliasToken source.Span
	StarToken             source.Span
	Alias                 source.Span
}

func (ExpectedAsBeforeImportedNamespaceAlias) Code() string { return "E0037" }
func (ExpectedAsBeforeImportedNamespaceAlias) Message() string {
	return "expected 'as' between '*' and variable"
}
func (d ExpectedAsBeforeImportedNamespaceAlias) Span() source.Span { return d.StarThroughAliasToken }

type ExpectedFromBeforeModuleSpecifier struct {
	ModuleSpecifier source.Span
}

func (ExpectedFromBeforeModuleSpecifier) Code() string { return "E0038" }
func (ExpectedFromBeforeModuleSpecifier) Message() string {
	return "expected 'from' before module specifier"
}
func (d ExpectedFromBeforeModuleSpecifier) Span() source.Span { return d.ModuleSpecifier }

type ExpectedFromAndModuleSpecifier struct {
	Where source.Span
}

func (ExpectedFromAndModuleSpecifier) Code() string        { return "E0039" }
func (ExpectedFromAndModuleSpecifier) Message() string     { return "expected 'from \"name_of_module.mjs\"'" }
func (d ExpectedFromAndModuleSpecifier) Span() source.Span { return d.Where }

type ExpectedVariableNameForImportAs struct {
	UnexpectedToken source.Span
}

func (ExpectedVariableNameForImportAs) Code() string        { return "E0040" }
func (ExpectedVariableNameForImportAs) Message() string     { return "expected variable name for 'as'" }
func (d ExpectedVariableNameForImportAs) Span() source.Span { return d.UnexpectedToken }

type CannotImportLet struct {
	ImportName source.Span
}

func (CannotImportLet) Code() string        { return "E0041" }
func (CannotImportLet) Message() string     { return "cannot import 'let'" }
func (d CannotImportLet) Span() source.Span { return d.ImportName }

type CannotImportVariableNamedKeyword struct {
	ImportName source.Span
	Name       string
}

func (CannotImportVariableNamedKeyword) Code() string { return "E0042" }
func (d CannotImportVariableNamedKeyword) Message() string {
	return fmt.Sprintf("cannot import variable named keyword %q", d.Name)
}
func (d CannotImportVariableNamedKeyword) Span() source.Span { return d.ImportName }

type CannotImportFromUnquotedModule struct {
	ImportName source.Span
}

func (CannotImportFromUnquotedModule) Code() string        { return "E0043" }
func (CannotImportFromUnquotedModule) Message() string     { return "missing quotes around module name" }
func (d CannotImportFromUnquotedModule) Span() source.Span { return d.ImportName }

// Loop diagnostics.

type CannotAssignToVariableNamedAsyncInForOfLoop struct {
	AsyncToken source.Span
}

func (CannotAssignToVariableNamedAsyncInForOfLoop) Code() string { return "E0044" }
func (CannotAssignToVariableNamedAsyncInForOfLoop) Message() string {
	return "assigning to 'async' in a for-of loop requires parentheses"
}
func (d CannotAssignToVariableNamedAsyncInForOfLoop) Span() source.Span { return d.AsyncToken }

// TypeScript diagnostics.

type TypeScriptTypeAnnotationsNotAllowedInJavaScript struct {
	TypeColon source.Span
}

func (TypeScriptTypeAnnotationsNotAllowedInJavaScript) Code() string { return "E0045" }
func (TypeScriptTypeAnnotationsNotAllowedInJavaScript) Message() string {
	return "TypeScript type annotations are not allowed in JavaScript code"
}
func (d TypeScriptTypeAnnotationsNotAllowedInJavaScript) Span() source.Span { return d.TypeColon }

type NonNullAssertionNotAllowedInParameter struct {
	Bang source.Span
}

func (NonNullAssertionNotAllowedInParameter) Code() string { return "E0046" }
func (NonNullAssertionNotAllowedInParameter) Message() string {
	return "non-null assertion is not allowed on parameters"
}
func (d NonNullAssertionNotAllowedInParameter) Span() source.Span { return d.Bang }

type ArrowParameterWithTypeAnnotationRequiresParentheses struct {
	ParameterAndAnnotation source.Span
	TypeColon              source.Span
}

func (ArrowParameterWithTypeAnnotationRequiresParentheses) Code() string { return "E0047" }
func (ArrowParameterWithTypeAnnotationRequiresParentheses) Message() string {
	return "missing parentheses around parameter with type annotation"
}
func (d ArrowParameterWithTypeAnnotationRequiresParentheses) Span() source.Span {
	return d.ParameterAndAnnotation
}

// JSX diagnostics.

type JSXNotAllowed struct {
	Where source.Span
}

func (JSXNotAllowed) Code() string { return "E0048" }
func (JSXNotAllowed) Message() string {
	return "JSX is not allowed; enable JSX support to parse this"
}
func (d JSXNotAllowed) Span() source.Span { return d.Where }

type MissingNameInFunctionStatement struct {
	Where source.Span
}

func (MissingNameInFunctionStatement) Code() string        { return "E0049" }
func (MissingNameInFunctionStatement) Message() string     { return "missing name in function statement" }
func (d MissingNameInFunctionStatement) Span() source.Span { return d.Where }

// Fatal recovery diagnostics.

type FatalParserError struct {
	Where source.Span
}

func (FatalParserError) Code() string        { return "E0050" }
func (FatalParserError) Message() string     { return "parser gave up: could not recover from earlier errors" }
func (d FatalParserError) Span() source.Span { return d.Where }
