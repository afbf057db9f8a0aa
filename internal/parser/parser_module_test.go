package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasumi-lint/kasumi/internal/diag"
	"github.com/kasumi-lint/kasumi/internal/lang"
	"github.com/kasumi-lint/kasumi/internal/source"
)

func importDecl(name string) visitedDeclaration {
	return visitedDeclaration{name: name, kind: lang.VariableKindImport}
}

func TestExportVariable(t *testing.T) {
	for _, code := range []string{
		"export let x;",
		"export let x = 42;",
		"export var x;",
		"export var x = 42;",
		"export const x = null;",
	} {
		tp := parseAndVisitStatementSource(t, code)
		require.Len(t, tp.spy.declarations, 1, "code: %s", code)
		assert.Equal(t, "x", tp.spy.declarations[0].name)
		assert.Empty(t, tp.errors.Diags)
	}
}

func TestExportDefault(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "export default x;")
		assert.Equal(t, []string{"visit_variable_use"}, tp.spy.visits)
	}

	{
		tp := parseAndVisitStatementSource(t, "export default function f() {}")
		assert.Equal(t, []string{
			"visit_variable_declaration", // f
			"visit_enter_function_scope",
			"visit_enter_function_scope_body",
			"visit_exit_function_scope",
		}, tp.spy.visits)
	}

	{
		tp := parseAndVisitStatementSource(t, "export default function() {}")
		assert.Equal(t, []string{
			"visit_enter_function_scope",
			"visit_enter_function_scope_body",
			"visit_exit_function_scope",
		}, tp.spy.visits)
		assert.Empty(t, tp.errors.Diags)
	}

	{
		tp := parseAndVisitStatementSource(t, "export default async function f() {}")
		assert.Equal(t, []string{
			"visit_variable_declaration",
			"visit_enter_function_scope",
			"visit_enter_function_scope_body",
			"visit_exit_function_scope",
		}, tp.spy.visits)
	}

	{
		tp := parseAndVisitStatementSource(t, "export default (function f() {})")
		assert.Equal(t, []string{
			"visit_enter_named_function_scope",
			"visit_enter_function_scope_body",
			"visit_exit_function_scope",
		}, tp.spy.visits)
	}

	{
		tp := parseAndVisitStatementSource(t, "export default class C {}")
		assert.Equal(t, []string{
			"visit_enter_class_scope",
			"visit_enter_class_scope_body",
			"visit_exit_class_scope",
			"visit_variable_declaration", // C
		}, tp.spy.visits)
	}

	{
		tp := parseAndVisitStatementSource(t, "export default class {}")
		assert.Equal(t, []string{
			"visit_enter_class_scope",
			"visit_enter_class_scope_body",
			"visit_exit_class_scope",
		}, tp.spy.visits)
		assert.Empty(t, tp.errors.Diags)
	}

	{
		tp := parseAndVisitStatementSource(t, "export default async (a) => b;")
		assert.Equal(t, []string{
			"visit_enter_function_scope",
			"visit_variable_declaration", // a
			"visit_enter_function_scope_body",
			"visit_variable_use", // b
			"visit_exit_function_scope",
		}, tp.spy.visits)
	}
}

func TestExportDefaultOfVariableIsIllegal(t *testing.T) {
	for _, declarationKind := range []string{"const", "let", "var"} {
		code := "export default " + declarationKind + " x = y;"
		tp := parseAndVisitStatementSource(t, code)
		assert.Equal(t, []string{
			"visit_variable_use",         // y
			"visit_variable_declaration", // x
		}, tp.spy.visits, "code: %s", code)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.CannotExportDefaultVariable)
		require.True(t, ok)
		assert.Equal(t, spanAfter("export default ", declarationKind), d.DeclaringToken)
	}
}

func TestExportSometimesRequiresSemicolon(t *testing.T) {
	{
		tp := parseAndVisitModuleSource(t, "export {x} console.log();")
		assert.Equal(t, []string{
			"visit_variable_export_use", // x
			"visit_variable_use",        // console
			"visit_end_of_module",
		}, tp.spy.visits)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.MissingSemicolonAfterStatement)
		require.True(t, ok)
		assert.Equal(t, source.EmptySpanAt(len("export {x}")), d.Where)
	}

	{
		tp := parseAndVisitModuleSource(t, "export * from 'other' console.log();")
		assert.Equal(t, []string{
			"visit_variable_use", // console
			"visit_end_of_module",
		}, tp.spy.visits)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.MissingSemicolonAfterStatement)
		require.True(t, ok)
		assert.Equal(t, source.EmptySpanAt(len("export * from 'other'")), d.Where)
	}

	{
		tp := parseAndVisitModuleSource(t, "export default x+y console.log();")
		assert.Equal(t, []string{
			"visit_variable_use", // x
			"visit_variable_use", // y
			"visit_variable_use", // console
			"visit_end_of_module",
		}, tp.spy.visits)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.MissingSemicolonAfterStatement)
		require.True(t, ok)
		assert.Equal(t, source.EmptySpanAt(len("export default x+y")), d.Where)
	}

	{
		tp := parseAndVisitModuleSource(t, "export default async () => {} console.log();")
		assert.Equal(t, []string{
			"visit_enter_function_scope",
			"visit_enter_function_scope_body",
			"visit_exit_function_scope",
			"visit_variable_use", // console
			"visit_end_of_module",
		}, tp.spy.visits)
		require.Len(t, tp.errors.Diags, 1)
	}
}

func TestExportSometimesDoesNotRequireSemicolon(t *testing.T) {
	{
		tp := parseAndVisitModuleSource(t, "export default async function f() {} console.log();")
		assert.Equal(t, []string{
			"visit_variable_declaration", // f
			"visit_enter_function_scope",
			"visit_enter_function_scope_body",
			"visit_exit_function_scope",
			"visit_variable_use", // console
			"visit_end_of_module",
		}, tp.spy.visits)
		assert.Empty(t, tp.errors.Diags)
	}

	{
		tp := parseAndVisitModuleSource(t, "export default function() {} console.log();")
		assert.Empty(t, tp.errors.Diags)
	}
}

func TestExportList(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "export {one, two};")
		assert.Equal(t, []string{
			"visit_variable_export_use",
			"visit_variable_export_use",
		}, tp.spy.visits)
		assert.Equal(t, []string{"one", "two"}, tp.spy.exportUses)
	}

	{
		tp := parseAndVisitStatementSource(t, "export {one as two, three as four};")
		assert.Equal(t, []string{"one", "three"}, tp.spy.exportUses)
	}

	{
		tp := parseAndVisitStatementSource(t, "export {myVar as 'name'};")
		assert.Equal(t, []string{"myVar"}, tp.spy.exportUses)
	}
}

func TestExportingByStringNameRequiresExportFrom(t *testing.T) {
	tp := parseAndVisitStatementSource(t, "export {'name'};")
	assert.Empty(t, tp.spy.visits)
	require.Len(t, tp.errors.Diags, 1)
	d, ok := tp.errors.Diags[0].(diag.ExportingStringNameOnlyAllowedForExportFrom)
	require.True(t, ok)
	assert.Equal(t, spanAfter("export {", "'name'"), d.ExportName)
}

func TestExportedVariablesCannotBeNamedReservedKeywords(t *testing.T) {
	for _, keyword := range []string{"implements", "interface", "package", "private", "protected", "public"} {
		code := "export {" + keyword + "};"
		tp := parseAndVisitStatementSource(t, code)
		assert.Empty(t, tp.spy.visits, "code: %s", code)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.CannotExportVariableNamedKeyword)
		require.True(t, ok)
		assert.Equal(t, spanAfter("export {", keyword), d.ExportName)
	}

	for _, keyword := range []string{"if", "while", "typeof"} {
		code := "export {" + keyword + " as thing};"
		tp := parseAndVisitStatementSource(t, code)
		assert.Empty(t, tp.spy.visits, "code: %s", code)
		require.Len(t, tp.errors.Diags, 1)
		_, ok := tp.errors.Diags[0].(diag.CannotExportVariableNamedKeyword)
		require.True(t, ok)
	}
}

func TestExportFrom(t *testing.T) {
	for _, code := range []string{
		"export * from 'other';",
		"export * as mother from 'other';",
		"export * as 'mother' from 'other';",
		"export {} from 'other';",
		"export {util1, util2, util3} from 'other';",
		"export {readFileSync as readFile} from 'fs';",
		"export {promises as default} from 'fs';",
		"export {if} from 'other';",
		"export {while as whatever} from 'other';",
		"export {'name'} from 'other';",
		"export {'name' as 'othername'} from 'other';",
	} {
		tp := parseAndVisitStatementSource(t, code)
		assert.Empty(t, tp.spy.visits, "code: %s", code)
		assert.Empty(t, tp.errors.Diags, "code: %s", code)
	}

	// Escaped keywords classify as identifiers; the lexer reports the
	// escape, and no export use is emitted.
	tp := parseAndVisitStatementSource(t, `export {\u{76}ar} from 'fs';`)
	assert.Empty(t, tp.spy.visits)
	require.Len(t, tp.errors.Diags, 1)
	_, ok := tp.errors.Diags[0].(diag.KeywordsCannotContainEscapeSequences)
	require.True(t, ok)
}

func TestInvalidExportExpression(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "export stuff;")
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.ExportingRequiresCurlies)
		require.True(t, ok)
		assert.Equal(t, spanAfter("export ", "stuff"), d.Names)
		assert.Equal(t, []string{"visit_variable_use"}, tp.spy.visits)
	}

	{
		tp := parseAndVisitStatementSource(t, "export a, b, c;")
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.ExportingRequiresDefault)
		require.True(t, ok)
		assert.Equal(t, spanAfter("export ", "a, b, c"), d.Expression)
		assert.Equal(t, []string{"a", "b", "c"}, tp.spy.uses)
	}

	{
		tp := parseAndVisitStatementSource(t, "export 2 + x;")
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.ExportingRequiresDefault)
		require.True(t, ok)
		assert.Equal(t, spanAfter("export ", "2 + x"), d.Expression)
		assert.Equal(t, []string{"x"}, tp.spy.uses)
	}
}

func TestInvalidExport(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "export ;")
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.MissingTokenAfterExport)
		require.True(t, ok)
		assert.Equal(t, source.NewSpan(0, len("export")), d.ExportToken)
		assert.Empty(t, tp.spy.visits)
	}

	{
		tp := parseAndVisitStatementSource(t, "export ")
		require.Len(t, tp.errors.Diags, 1)
		_, ok := tp.errors.Diags[0].(diag.MissingTokenAfterExport)
		require.True(t, ok)
	}

	{
		tp := parseAndVisitStatementSource(t, "export = x")
		require.NotEmpty(t, tp.errors.Diags)
		d, ok := tp.errors.Diags[0].(diag.UnexpectedTokenAfterExport)
		require.True(t, ok)
		assert.Equal(t, spanAfter("export ", "="), d.UnexpectedToken)
	}
}

func TestParseAndVisitImport(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "import 'foo';")
		assert.Empty(t, tp.spy.visits)
		assert.Empty(t, tp.errors.Diags)
	}

	{
		tp := parseAndVisitStatementSource(t, "import fs from 'fs'")
		assert.Equal(t, []visitedDeclaration{importDecl("fs")}, tp.spy.declarations)
	}

	{
		tp := parseAndVisitStatementSource(t, "import * as fs from 'fs'")
		assert.Equal(t, []visitedDeclaration{importDecl("fs")}, tp.spy.declarations)
	}

	{
		tp := newTestParser("import fs from 'fs'; import net from 'net';", Options{})
		require.True(t, tp.parser.ParseAndVisitStatement(tp.spy))
		require.True(t, tp.parser.ParseAndVisitStatement(tp.spy))
		assert.Equal(t, []visitedDeclaration{importDecl("fs"), importDecl("net")}, tp.spy.declarations)
		assert.Empty(t, tp.errors.Diags)
	}

	{
		tp := parseAndVisitStatementSource(t, "import { readFile, writeFile } from 'fs';")
		assert.Equal(t, []visitedDeclaration{importDecl("readFile"), importDecl("writeFile")}, tp.spy.declarations)
	}

	{
		tp := parseAndVisitStatementSource(t, "import {readFileSync as rf} from 'fs';")
		assert.Equal(t, []visitedDeclaration{importDecl("rf")}, tp.spy.declarations)
	}

	{
		tp := parseAndVisitStatementSource(t, "import {'read file sync' as readFileSync} from 'fs';")
		assert.Equal(t, []visitedDeclaration{importDecl("readFileSync")}, tp.spy.declarations)
	}

	{
		tp := parseAndVisitStatementSource(t, "import fs, {readFileSync} from 'fs';")
		assert.Equal(t, []visitedDeclaration{importDecl("fs"), importDecl("readFileSync")}, tp.spy.declarations)
	}

	{
		tp := parseAndVisitStatementSource(t, "import fsDefault, * as fsExports from 'fs';")
		assert.Equal(t, []visitedDeclaration{importDecl("fsDefault"), importDecl("fsExports")}, tp.spy.declarations)
	}
}

func TestImportStarWithoutAsKeyword(t *testing.T) {
	tp := parseAndVisitStatementSource(t, "import * myExport from 'other';")
	require.Len(t, tp.errors.Diags, 1)
	d, ok := tp.errors.Diags[0].(diag.ExpectedAsBeforeImportedNamespaceAlias)
	require.True(t, ok)
	assert.Equal(t, spanAfter("import ", "* myExport"), d.StarThroughAliasToken)
	assert.Equal(t, spanAfter("import ", "*"), d.StarToken)
	assert.Equal(t, spanAfter("import * ", "myExport"), d.Alias)
	assert.Equal(t, []string{"visit_variable_declaration"}, tp.spy.visits)
}

func TestImportWithoutFromKeyword(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "import { x } 'other';")
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.ExpectedFromBeforeModuleSpecifier)
		require.True(t, ok)
		assert.Equal(t, spanAfter("import { x } ", "'other'"), d.ModuleSpecifier)
		assert.Equal(t, []string{"visit_variable_declaration"}, tp.spy.visits)
	}

	{
		tp := parseAndVisitStatementSource(t, "import { x } ;")
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.ExpectedFromAndModuleSpecifier)
		require.True(t, ok)
		assert.Equal(t, source.EmptySpanAt(len("import { x }")), d.Where)
	}
}

func TestImportAsInvalidToken(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "import {myExport as 'string'} from 'module';")
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.ExpectedVariableNameForImportAs)
		require.True(t, ok)
		assert.Equal(t, spanAfter("import {myExport as ", "'string'"), d.UnexpectedToken)
	}

	{
		tp := parseAndVisitStatementSource(t, "import {'myExport' as 'string'} from 'module';")
		require.Len(t, tp.errors.Diags, 1)
		_, ok := tp.errors.Diags[0].(diag.ExpectedVariableNameForImportAs)
		require.True(t, ok)
	}
}

func TestExportFunction(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "export function foo() {}")
		assert.Equal(t, []visitedDeclaration{{name: "foo", kind: lang.VariableKindFunction}}, tp.spy.declarations)
	}

	{
		tp := parseAndVisitStatementSource(t, "export async function foo() {}")
		assert.Equal(t, []visitedDeclaration{{name: "foo", kind: lang.VariableKindFunction}}, tp.spy.declarations)
	}
}

func TestExportFunctionRequiresAName(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "export function() {}")
		assert.Equal(t, []string{
			"visit_enter_function_scope",
			"visit_enter_function_scope_body",
			"visit_exit_function_scope",
		}, tp.spy.visits)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.MissingNameOfExportedFunction)
		require.True(t, ok)
		assert.Equal(t, spanAfter("export ", "function"), d.FunctionKeyword)
	}

	{
		tp := parseAndVisitStatementSource(t, "export async function() {}")
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.MissingNameOfExportedFunction)
		require.True(t, ok)
		assert.Equal(t, spanAfter("export async ", "function"), d.FunctionKeyword)
	}
}

func TestExportClass(t *testing.T) {
	tp := parseAndVisitStatementSource(t, "export class C {}")
	assert.Equal(t, []visitedDeclaration{{name: "C", kind: lang.VariableKindClass}}, tp.spy.declarations)
}

func TestExportClassRequiresAName(t *testing.T) {
	tp := parseAndVisitStatementSource(t, "export class {}")
	assert.Equal(t, []string{
		"visit_enter_class_scope",
		"visit_enter_class_scope_body",
		"visit_exit_class_scope",
	}, tp.spy.visits)
	require.Len(t, tp.errors.Diags, 1)
	d, ok := tp.errors.Diags[0].(diag.MissingNameOfExportedClass)
	require.True(t, ok)
	assert.Equal(t, spanAfter("export ", "class"), d.ClassKeyword)
}

func TestParseEmptyModule(t *testing.T) {
	tp := parseAndVisitModuleSource(t, "")
	assert.Empty(t, tp.errors.Diags)
	assert.Equal(t, []string{"visit_end_of_module"}, tp.spy.visits)
}

func TestImportedVariablesCanBeNamedContextualKeywords(t *testing.T) {
	for _, name := range []string{"as", "async", "from", "get", "of", "set", "static"} {
		for _, code := range []string{
			"import { " + name + " } from 'other';",
			"import { exportedName as " + name + " } from 'other';",
			"import { 'exportedName' as " + name + " } from 'other';",
			"import " + name + " from 'other';",
			"import * as " + name + " from 'other';",
		} {
			tp := parseAndVisitStatementSource(t, code)
			assert.Equal(t, []string{"visit_variable_declaration"}, tp.spy.visits, "code: %s", code)
			assert.Empty(t, tp.errors.Diags, "code: %s", code)
		}
	}
}

func TestImportedModulesMustBeQuoted(t *testing.T) {
	for _, importName := range []string{"module", "not_a_keyword"} {
		tp := parseAndVisitStatementSource(t, "import { test } from "+importName+";")
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.CannotImportFromUnquotedModule)
		require.True(t, ok)
		assert.Equal(t, spanAfter("import { test } from ", importName), d.ImportName)
	}
}

func TestImportedVariablesCannotBeNamedReservedKeywords(t *testing.T) {
	for _, name := range []string{"implements", "interface", "package", "private", "protected", "public"} {
		for _, prefix := range []string{
			"import { ",
			"import { someFunction as ",
			"import ",
			"import * as ",
		} {
			code := prefix + name + " } from 'other';"
			if prefix == "import " || prefix == "import * as " {
				code = prefix + name + " from 'other';"
			}
			tp := parseAndVisitStatementSource(t, code)
			assert.Equal(t, []string{"visit_variable_declaration"}, tp.spy.visits, "code: %s", code)
			require.Len(t, tp.errors.Diags, 1, "code: %s", code)
			d, ok := tp.errors.Diags[0].(diag.CannotImportVariableNamedKeyword)
			require.True(t, ok)
			assert.Equal(t, name, d.Name)
		}
	}
}

func TestExportedNamesCanBeNamedKeywords(t *testing.T) {
	for _, exportName := range []string{"while", "interface", "let", "of"} {
		{
			tp := parseAndVisitStatementSource(t, "export {someFunction as "+exportName+"};")
			assert.Equal(t, []string{"visit_variable_export_use"}, tp.spy.visits)
			assert.Equal(t, []string{"someFunction"}, tp.spy.exportUses)
			assert.Empty(t, tp.errors.Diags)
		}

		{
			tp := parseAndVisitStatementSource(t, "export * as "+exportName+" from 'other-module';")
			assert.Empty(t, tp.spy.visits)
			assert.Empty(t, tp.errors.Diags)
		}
	}
}

func TestImportedNamesCanBeNamedKeywords(t *testing.T) {
	for _, importName := range []string{"while", "if", "typeof", "interface"} {
		code := "import {" + importName + " as someFunction} from 'somewhere';"
		tp := parseAndVisitStatementSource(t, code)
		assert.Equal(t, []string{"visit_variable_declaration"}, tp.spy.visits, "code: %s", code)
		assert.Equal(t, []visitedDeclaration{importDecl("someFunction")}, tp.spy.declarations)
		assert.Empty(t, tp.errors.Diags)
	}
}

func TestImportRequiresSemicolonOrNewline(t *testing.T) {
	tp := parseAndVisitModuleSource(t, "import fs from 'fs' nextStatement")
	assert.Equal(t, []string{
		"visit_variable_declaration", // fs
		"visit_variable_use",         // nextStatement
		"visit_end_of_module",
	}, tp.spy.visits)
	require.Len(t, tp.errors.Diags, 1)
	d, ok := tp.errors.Diags[0].(diag.MissingSemicolonAfterStatement)
	require.True(t, ok)
	assert.Equal(t, source.EmptySpanAt(len("import fs from 'fs'")), d.Where)
}
