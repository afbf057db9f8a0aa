package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasumi-lint/kasumi/internal/diag"
	"github.com/kasumi-lint/kasumi/internal/lang"
	"github.com/kasumi-lint/kasumi/internal/source"
)

// spyVisitor records every event, both as a readable trace of event names
// and as typed captures for detailed assertions.
type spyVisitor struct {
	visits []string

	declarations        []visitedDeclaration
	uses                []string
	assignments         []string
	exportUses          []string
	typeUses            []string
	properties          []string
	namedFunctionScopes []string
}

type visitedDeclaration struct {
	name string
	kind lang.VariableKind
}

func (s *spyVisitor) VisitVariableDeclaration(name lang.Identifier, kind lang.VariableKind) {
	s.visits = append(s.visits, "visit_variable_declaration")
	s.declarations = append(s.declarations, visitedDeclaration{name: name.Name, kind: kind})
}

func (s *spyVisitor) VisitVariableUse(name lang.Identifier) {
	s.visits = append(s.visits, "visit_variable_use")
	s.uses = append(s.uses, name.Name)
}

func (s *spyVisitor) VisitVariableAssignment(name lang.Identifier) {
	s.visits = append(s.visits, "visit_variable_assignment")
	s.assignments = append(s.assignments, name.Name)
}

func (s *spyVisitor) VisitVariableExportUse(name lang.Identifier) {
	s.visits = append(s.visits, "visit_variable_export_use")
	s.exportUses = append(s.exportUses, name.Name)
}

func (s *spyVisitor) VisitVariableTypeUse(name lang.Identifier) {
	s.visits = append(s.visits, "visit_variable_type_use")
	s.typeUses = append(s.typeUses, name.Name)
}

func (s *spyVisitor) VisitPropertyDeclaration(name *lang.Identifier) {
	s.visits = append(s.visits, "visit_property_declaration")
	if name != nil {
		s.properties = append(s.properties, name.Name)
	} else {
		s.properties = append(s.properties, "")
	}
}

func (s *spyVisitor) VisitEnterBlockScope()    { s.visits = append(s.visits, "visit_enter_block_scope") }
func (s *spyVisitor) VisitExitBlockScope()     { s.visits = append(s.visits, "visit_exit_block_scope") }
func (s *spyVisitor) VisitEnterFunctionScope() { s.visits = append(s.visits, "visit_enter_function_scope") }
func (s *spyVisitor) VisitEnterFunctionScopeBody() {
	s.visits = append(s.visits, "visit_enter_function_scope_body")
}
func (s *spyVisitor) VisitExitFunctionScope() {
	s.visits = append(s.visits, "visit_exit_function_scope")
}
func (s *spyVisitor) VisitEnterNamedFunctionScope(name lang.Identifier) {
	s.visits = append(s.visits, "visit_enter_named_function_scope")
	s.namedFunctionScopes = append(s.namedFunctionScopes, name.Name)
}
func (s *spyVisitor) VisitEnterClassScope() { s.visits = append(s.visits, "visit_enter_class_scope") }
func (s *spyVisitor) VisitEnterClassScopeBody() {
	s.visits = append(s.visits, "visit_enter_class_scope_body")
}
func (s *spyVisitor) VisitExitClassScope() { s.visits = append(s.visits, "visit_exit_class_scope") }
func (s *spyVisitor) VisitEnterInterfaceScope() {
	s.visits = append(s.visits, "visit_enter_interface_scope")
}
func (s *spyVisitor) VisitExitInterfaceScope() {
	s.visits = append(s.visits, "visit_exit_interface_scope")
}
func (s *spyVisitor) VisitEnterForScope() { s.visits = append(s.visits, "visit_enter_for_scope") }
func (s *spyVisitor) VisitExitForScope()  { s.visits = append(s.visits, "visit_exit_for_scope") }
func (s *spyVisitor) VisitEndOfModule()   { s.visits = append(s.visits, "visit_end_of_module") }

// testParser bundles a parser with a spy and a diagnostic collector.
type testParser struct {
	parser *Parser
	spy    *spyVisitor
	errors *diag.Collector
	code   string
}

func newTestParser(code string, options Options) *testParser {
	collector := &diag.Collector{}
	return &testParser{
		parser: New(source.NewPaddedStringFromString(code), collector, options),
		spy:    &spyVisitor{},
		errors: collector,
		code:   code,
	}
}

func parseAndVisitModuleSource(t *testing.T, code string) *testParser {
	t.Helper()
	tp := newTestParser(code, Options{})
	tp.parser.ParseAndVisitModule(tp.spy)
	return tp
}

func parseAndVisitStatementSource(t *testing.T, code string) *testParser {
	t.Helper()
	tp := newTestParser(code, Options{})
	require.True(t, tp.parser.ParseAndVisitStatement(tp.spy))
	return tp
}

func parseTypeScriptStatement(t *testing.T, code string) *testParser {
	t.Helper()
	tp := newTestParser(code, Options{TypeScript: true})
	require.True(t, tp.parser.ParseAndVisitStatement(tp.spy))
	return tp
}

func (tp *testParser) errorCodes() []string {
	return tp.errors.Codes()
}

// spanAfter returns the span [begin, begin+len(text)) for the needle after
// the given prefix, mirroring the offsets-based assertions of the original
// suite.
func spanAfter(prefix, text string) source.Span {
	return source.NewSpan(len(prefix), len(prefix)+len(text))
}

func TestParseSimpleLet(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "let x")
		require.Len(t, tp.spy.declarations, 1)
		assert.Equal(t, "x", tp.spy.declarations[0].name)
		assert.Equal(t, lang.VariableKindLet, tp.spy.declarations[0].kind)
		assert.Empty(t, tp.errors.Diags)
	}

	{
		tp := parseAndVisitStatementSource(t, "let a, b")
		require.Len(t, tp.spy.declarations, 2)
		assert.Equal(t, "a", tp.spy.declarations[0].name)
		assert.Equal(t, "b", tp.spy.declarations[1].name)
	}

	{
		tp := parseAndVisitStatementSource(t, "let a, b, c, d, e, f, g")
		require.Len(t, tp.spy.declarations, 7)
		for _, decl := range tp.spy.declarations {
			assert.Equal(t, lang.VariableKindLet, decl.kind)
		}
	}

	{
		tp := newTestParser("let first; let second", Options{})
		require.True(t, tp.parser.ParseAndVisitStatement(tp.spy))
		require.Len(t, tp.spy.declarations, 1)
		assert.Equal(t, "first", tp.spy.declarations[0].name)
		require.True(t, tp.parser.ParseAndVisitStatement(tp.spy))
		require.Len(t, tp.spy.declarations, 2)
		assert.Equal(t, "second", tp.spy.declarations[1].name)
		assert.Empty(t, tp.errors.Diags)
	}
}

func TestParseSimpleVarAndConst(t *testing.T) {
	tp := parseAndVisitStatementSource(t, "var x")
	require.Len(t, tp.spy.declarations, 1)
	assert.Equal(t, lang.VariableKindVar, tp.spy.declarations[0].kind)

	tp = parseAndVisitStatementSource(t, "const x")
	require.Len(t, tp.spy.declarations, 1)
	assert.Equal(t, lang.VariableKindConst, tp.spy.declarations[0].kind)
}

func TestParseLetWithInitializers(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "let x = 2")
		require.Len(t, tp.spy.declarations, 1)
		assert.Equal(t, "x", tp.spy.declarations[0].name)
	}

	{
		tp := parseAndVisitStatementSource(t, "let x = other, y = x")
		assert.Equal(t, []string{"other", "x"}, tp.spy.uses)
		require.Len(t, tp.spy.declarations, 2)
	}

	{
		tp := parseAndVisitStatementSource(t, "let x = y in z;")
		require.Len(t, tp.spy.declarations, 1)
		assert.Equal(t, []string{"y", "z"}, tp.spy.uses)
	}
}

func TestParseLetWithObjectDestructuring(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "let {x, y, z} = 2")
		require.Len(t, tp.spy.declarations, 3)
		assert.Equal(t, "x", tp.spy.declarations[0].name)
		assert.Equal(t, "y", tp.spy.declarations[1].name)
		assert.Equal(t, "z", tp.spy.declarations[2].name)
	}

	{
		tp := parseAndVisitStatementSource(t, "let {key: variable} = 2")
		assert.Equal(t, []string{"visit_variable_declaration"}, tp.spy.visits)
		assert.Equal(t, "variable", tp.spy.declarations[0].name)
	}

	{
		tp := parseAndVisitStatementSource(t, "let {} = x;")
		assert.Empty(t, tp.spy.declarations)
		assert.Equal(t, []string{"x"}, tp.spy.uses)
	}

	{
		tp := parseAndVisitStatementSource(t, "let {key = defaultValue} = x;")
		assert.Equal(t, []string{
			"visit_variable_use",         // x
			"visit_variable_use",         // defaultValue
			"visit_variable_declaration", // key
		}, tp.spy.visits)
		assert.Equal(t, []string{"x", "defaultValue"}, tp.spy.uses)
	}
}

func TestParseLetWithArrayDestructuring(t *testing.T) {
	tp := parseAndVisitStatementSource(t, "let [first, second] = xs;")
	assert.Equal(t, []string{
		"visit_variable_use",
		"visit_variable_declaration",
		"visit_variable_declaration",
	}, tp.spy.visits)
	assert.Equal(t, []string{"xs"}, tp.spy.uses)
}

func TestLetInitializerUsesAreVisitedBeforeTheDeclaration(t *testing.T) {
	tp := parseAndVisitStatementSource(t, "let x = x")
	assert.Equal(t, []string{
		"visit_variable_use",
		"visit_variable_declaration",
	}, tp.spy.visits)
	assert.Empty(t, tp.errors.Diags)
}

func TestParseInvalidLet(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "let")
		assert.Empty(t, tp.spy.declarations)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.LetWithNoBindings)
		require.True(t, ok)
		assert.Equal(t, source.NewSpan(0, 3), d.Where)
	}

	{
		tp := parseAndVisitStatementSource(t, "let a,")
		assert.Len(t, tp.spy.declarations, 1)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.StrayCommaInLetStatement)
		require.True(t, ok)
		assert.Equal(t, spanAfter("let a", ","), d.Where)
	}

	{
		tp := parseAndVisitStatementSource(t, "let x, 42")
		assert.Len(t, tp.spy.declarations, 1)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.UnexpectedTokenInVariableDeclaration)
		require.True(t, ok)
		assert.Equal(t, spanAfter("let x, ", "42"), d.UnexpectedToken)
	}

	{
		tp := parseAndVisitStatementSource(t, "var if = x;")
		assert.Empty(t, tp.spy.declarations)
		assert.Equal(t, []string{"visit_variable_use"}, tp.spy.visits)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.CannotDeclareVariableWithKeywordName)
		require.True(t, ok)
		assert.Equal(t, spanAfter("var ", "if"), d.Keyword)
	}

	{
		tp := parseAndVisitModuleSource(t, "let while (x) { break; }")
		assert.Empty(t, tp.spy.declarations)
		assert.Equal(t, []string{
			"visit_variable_use", // x
			"visit_enter_block_scope",
			"visit_exit_block_scope",
			"visit_end_of_module",
		}, tp.spy.visits)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.UnexpectedTokenInVariableDeclaration)
		require.True(t, ok)
		assert.Equal(t, spanAfter("let ", "while"), d.UnexpectedToken)
	}

	{
		tp := parseAndVisitModuleSource(t, "let\nwhile (x) { break; }")
		assert.Empty(t, tp.spy.declarations)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.LetWithNoBindings)
		require.True(t, ok)
		assert.Equal(t, source.NewSpan(0, 3), d.Where)
	}

	{
		tp := parseAndVisitModuleSource(t, "let 42*69")
		assert.Empty(t, tp.spy.declarations)
		require.Len(t, tp.errors.Diags, 1)
		_, ok := tp.errors.Diags[0].(diag.UnexpectedTokenInVariableDeclaration)
		require.True(t, ok)
	}

	{
		tp := parseAndVisitModuleSource(t, "let true, true, y\nlet x;")
		assert.Equal(t, []string{
			"visit_variable_use",         // y
			"visit_variable_declaration", // x
			"visit_end_of_module",
		}, tp.spy.visits)
		assert.Equal(t, []string{"y"}, tp.spy.uses)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.UnexpectedTokenInVariableDeclaration)
		require.True(t, ok)
		assert.Equal(t, spanAfter("let ", "true"), d.UnexpectedToken)
	}

	{
		tp := parseAndVisitModuleSource(t, "const = y, z = w, = x;")
		assert.Equal(t, []string{
			"visit_variable_use",         // y
			"visit_variable_use",         // w
			"visit_variable_declaration", // z
			"visit_variable_use",         // x
			"visit_end_of_module",
		}, tp.spy.visits)
		require.Len(t, tp.errors.Diags, 2)
		first, ok := tp.errors.Diags[0].(diag.MissingVariableNameInDeclaration)
		require.True(t, ok)
		assert.Equal(t, spanAfter("const ", "="), first.EqualToken)
		second, ok := tp.errors.Diags[1].(diag.MissingVariableNameInDeclaration)
		require.True(t, ok)
		assert.Equal(t, spanAfter("const = y, z = w, ", "="), second.EqualToken)
	}

	{
		tp := parseAndVisitStatementSource(t, "let {debugger}")
		assert.Empty(t, tp.spy.declarations)
		assert.ElementsMatch(t, []string{
			diag.MissingValueForObjectLiteralEntry{}.Code(),
			diag.InvalidBindingInLetStatement{}.Code(),
		}, tp.errorCodes())
	}

	{
		tp := parseAndVisitStatementSource(t, "let {42}")
		assert.Empty(t, tp.spy.declarations)
		assert.ElementsMatch(t, []string{
			diag.InvalidLoneLiteralInObjectLiteral{}.Code(),
			diag.InvalidBindingInLetStatement{}.Code(),
		}, tp.errorCodes())
	}
}

func TestReportMissingSemicolonForDeclarations(t *testing.T) {
	{
		tp := newTestParser("let x = 2 for (;;) { console.log(); }", Options{})
		require.True(t, tp.parser.ParseAndVisitStatement(tp.spy))
		require.True(t, tp.parser.ParseAndVisitStatement(tp.spy))
		assert.Equal(t, []visitedDeclaration{{name: "x", kind: lang.VariableKindLet}}, tp.spy.declarations)
		assert.Equal(t, []string{"console"}, tp.spy.uses)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.MissingSemicolonAfterStatement)
		require.True(t, ok)
		assert.Equal(t, source.EmptySpanAt(len("let x = 2")), d.Where)
	}

	{
		tp := newTestParser("const x debugger", Options{})
		require.True(t, tp.parser.ParseAndVisitStatement(tp.spy))
		require.True(t, tp.parser.ParseAndVisitStatement(tp.spy))
		assert.Equal(t, []visitedDeclaration{{name: "x", kind: lang.VariableKindConst}}, tp.spy.declarations)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.MissingSemicolonAfterStatement)
		require.True(t, ok)
		assert.Equal(t, source.EmptySpanAt(len("const x")), d.Where)
	}
}

func TestOldStyleVariablesCanBeNamedLet(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "var let = initial;")
		assert.Equal(t, []string{
			"visit_variable_use",         // initial
			"visit_variable_declaration", // let
		}, tp.spy.visits)
		assert.Equal(t, []visitedDeclaration{{name: "let", kind: lang.VariableKindVar}}, tp.spy.declarations)
		assert.Empty(t, tp.errors.Diags)
	}

	{
		tp := parseAndVisitStatementSource(t, "function let(let) {}")
		assert.Equal(t, []string{
			"visit_variable_declaration", // let (function)
			"visit_enter_function_scope",
			"visit_variable_declaration", // let (parameter)
			"visit_enter_function_scope_body",
			"visit_exit_function_scope",
		}, tp.spy.visits)
		require.Len(t, tp.spy.declarations, 2)
		assert.Equal(t, lang.VariableKindFunction, tp.spy.declarations[0].kind)
		assert.Equal(t, lang.VariableKindParameter, tp.spy.declarations[1].kind)
	}

	{
		tp := parseAndVisitStatementSource(t, "(function let() {})")
		assert.Equal(t, []string{
			"visit_enter_named_function_scope",
			"visit_enter_function_scope_body",
			"visit_exit_function_scope",
		}, tp.spy.visits)
		assert.Equal(t, []string{"let"}, tp.spy.namedFunctionScopes)
	}

	{
		tp := parseAndVisitStatementSource(t, "try { } catch (let) { }")
		assert.Equal(t, []string{
			"visit_enter_block_scope",
			"visit_exit_block_scope",
			"visit_enter_block_scope",
			"visit_variable_declaration", // let
			"visit_exit_block_scope",
		}, tp.spy.visits)
		assert.Equal(t, []visitedDeclaration{{name: "let", kind: lang.VariableKindCatch}}, tp.spy.declarations)
	}

	{
		tp := parseAndVisitStatementSource(t, "let {x = let} = o;")
		assert.Equal(t, []string{
			"visit_variable_use",         // o
			"visit_variable_use",         // let
			"visit_variable_declaration", // x
		}, tp.spy.visits)
		assert.Equal(t, []string{"o", "let"}, tp.spy.uses)
	}

	{
		tp := parseAndVisitStatementSource(t, "console.log(let);")
		assert.Equal(t, []string{"console", "let"}, tp.spy.uses)
	}

	{
		tp := parseAndVisitStatementSource(t, "let.method();")
		assert.Equal(t, []string{"let"}, tp.spy.uses)
	}

	for _, code := range []string{
		"(async let => null)",
		"(async (let) => null)",
		"(let => null)",
		"((let) => null)",
	} {
		tp := parseAndVisitStatementSource(t, code)
		assert.Equal(t, []string{
			"visit_enter_function_scope",
			"visit_variable_declaration", // let
			"visit_enter_function_scope_body",
			"visit_exit_function_scope",
		}, tp.spy.visits, "code: %s", code)
		assert.Equal(t, []visitedDeclaration{{name: "let", kind: lang.VariableKindParameter}}, tp.spy.declarations)
	}

	{
		tp := parseAndVisitStatementSource(t, "for (let in xs) ;")
		assert.Equal(t, []string{
			"visit_enter_for_scope",
			"visit_variable_use",        // xs
			"visit_variable_assignment", // let
			"visit_exit_for_scope",
		}, tp.spy.visits)
		assert.Equal(t, []string{"let"}, tp.spy.assignments)
	}

	{
		tp := parseAndVisitStatementSource(t, "for (let.prop in xs) ;")
		assert.Equal(t, []string{"let", "xs"}, tp.spy.uses)
	}
}

func TestNewStyleVariablesCannotBeNamedLet(t *testing.T) {
	for _, declarationKind := range []string{"const", "let"} {
		tp := parseAndVisitStatementSource(t, declarationKind+" let = null;")
		require.Len(t, tp.errors.Diags, 1, "kind: %s", declarationKind)
		d, ok := tp.errors.Diags[0].(diag.CannotDeclareVariableNamedLetWithLet)
		require.True(t, ok)
		assert.Equal(t, spanAfter(declarationKind+" ", "let"), d.Name)
		assert.Equal(t, []string{"visit_variable_declaration"}, tp.spy.visits)
		assert.Equal(t, "let", tp.spy.declarations[0].name)
	}

	{
		tp := parseAndVisitStatementSource(t, "let {other, let} = stuff;")
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.CannotDeclareVariableNamedLetWithLet)
		require.True(t, ok)
		assert.Equal(t, spanAfter("let {other, ", "let"), d.Name)
	}

	{
		tp := parseAndVisitStatementSource(t, "import let from 'weird';")
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.CannotImportLet)
		require.True(t, ok)
		assert.Equal(t, spanAfter("import ", "let"), d.ImportName)
		assert.Equal(t, []visitedDeclaration{{name: "let", kind: lang.VariableKindImport}}, tp.spy.declarations)
	}

	{
		tp := parseAndVisitStatementSource(t, "import * as let from 'weird';")
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.CannotImportLet)
		require.True(t, ok)
		assert.Equal(t, spanAfter("import * as ", "let"), d.ImportName)
	}

	{
		tp := parseAndVisitStatementSource(t, "import { let } from 'weird';")
		require.Len(t, tp.errors.Diags, 1)
		_, ok := tp.errors.Diags[0].(diag.CannotImportLet)
		require.True(t, ok)
	}

	{
		tp := parseAndVisitStatementSource(t, "class let {}")
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.CannotDeclareClassNamedLet)
		require.True(t, ok)
		assert.Equal(t, spanAfter("class ", "let"), d.Name)
		assert.Equal(t, []visitedDeclaration{{name: "let", kind: lang.VariableKindClass}}, tp.spy.declarations)
	}
}

func TestUseAwaitInNonAsyncFunction(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "await(x);")
		assert.Equal(t, []string{"await", "x"}, tp.spy.uses)
	}

	{
		tp := parseAndVisitStatementSource(t, "async function f() {\n  function g() { await(x); }\n}")
		assert.Equal(t, []string{"await", "x"}, tp.spy.uses)
	}

	{
		tp := parseAndVisitStatementSource(t, "function f() {\n  async function g() {}\n  await();\n}")
		assert.Equal(t, []string{"await"}, tp.spy.uses)
	}

	{
		tp := parseAndVisitStatementSource(t, "(() => {\n  async () => {};\n  await();\n})")
		assert.Equal(t, []string{"await"}, tp.spy.uses)
	}

	{
		tp := parseAndVisitStatementSource(t, "(async => { await(); })")
		assert.Equal(t, []string{"await"}, tp.spy.uses)
	}

	{
		tp := parseAndVisitStatementSource(t, "({ async() { await(); } })")
		assert.Equal(t, []string{"await"}, tp.spy.uses)
	}

	{
		tp := parseAndVisitStatementSource(t, "class C { async() { await(); } }")
		assert.Equal(t, []string{"await"}, tp.spy.uses)
	}
}

func TestDeclareAwaitInNonAsyncFunction(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "function await() { }")
		assert.Equal(t, []visitedDeclaration{{name: "await", kind: lang.VariableKindFunction}}, tp.spy.declarations)
		assert.Empty(t, tp.errors.Diags)
	}

	{
		tp := parseAndVisitStatementSource(t, "let await = 42;")
		assert.Equal(t, []visitedDeclaration{{name: "await", kind: lang.VariableKindLet}}, tp.spy.declarations)
	}

	{
		tp := parseAndVisitStatementSource(t, "(async function() {\n  (function(await) { })\n})")
		assert.Equal(t, []visitedDeclaration{{name: "await", kind: lang.VariableKindParameter}}, tp.spy.declarations)
	}
}

func TestDeclareAwaitInAsyncFunction(t *testing.T) {
	{
		tp := newTestParser("function await() { }", Options{})
		guard := tp.parser.EnterFunction(lang.FunctionAttributesAsync)
		require.True(t, tp.parser.ParseAndVisitStatement(tp.spy))
		guard.Restore()
		assert.Equal(t, []visitedDeclaration{{name: "await", kind: lang.VariableKindFunction}}, tp.spy.declarations)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.CannotDeclareAwaitInAsyncFunction)
		require.True(t, ok)
		assert.Equal(t, spanAfter("function ", "await"), d.Name)
	}

	{
		tp := newTestParser("var await;", Options{})
		guard := tp.parser.EnterFunction(lang.FunctionAttributesAsync)
		require.True(t, tp.parser.ParseAndVisitStatement(tp.spy))
		guard.Restore()
		require.Len(t, tp.errors.Diags, 1)
		_, ok := tp.errors.Diags[0].(diag.CannotDeclareAwaitInAsyncFunction)
		require.True(t, ok)
	}

	{
		tp := newTestParser("try {} catch (await) {}", Options{})
		guard := tp.parser.EnterFunction(lang.FunctionAttributesAsync)
		require.True(t, tp.parser.ParseAndVisitStatement(tp.spy))
		guard.Restore()
		assert.Equal(t, []visitedDeclaration{{name: "await", kind: lang.VariableKindCatch}}, tp.spy.declarations)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.CannotDeclareAwaitInAsyncFunction)
		require.True(t, ok)
		assert.Equal(t, spanAfter("try {} catch (", "await"), d.Name)
	}

	{
		tp := parseAndVisitStatementSource(t, "async function f(await) {}")
		assert.Equal(t, []visitedDeclaration{
			{name: "f", kind: lang.VariableKindFunction},
			{name: "await", kind: lang.VariableKindParameter},
		}, tp.spy.declarations)
		require.NotEmpty(t, tp.errors.Diags)
		_, ok := tp.errors.Diags[0].(diag.CannotDeclareAwaitInAsyncFunction)
		require.True(t, ok)
	}
}

func TestNamedFunctionExpressionMayBeNamedAwait(t *testing.T) {
	tp := parseAndVisitStatementSource(t, "(async function() {\n  (function await() { await; })(); \n})();")
	assert.Equal(t, []string{
		"visit_enter_function_scope",
		"visit_enter_function_scope_body",
		"visit_enter_named_function_scope", // await
		"visit_enter_function_scope_body",
		"visit_variable_use", // await
		"visit_exit_function_scope",
		"visit_exit_function_scope",
	}, tp.spy.visits)
	assert.Equal(t, []string{"await"}, tp.spy.namedFunctionScopes)
}

func TestUseYieldInNonGeneratorFunction(t *testing.T) {
	{
		tp := parseAndVisitStatementSource(t, "yield(x);")
		assert.Equal(t, []string{"yield", "x"}, tp.spy.uses)
	}

	{
		tp := parseAndVisitStatementSource(t, "function* f() {\n  function g() { yield(x); }\n}")
		assert.Equal(t, []string{"yield", "x"}, tp.spy.uses)
	}

	{
		tp := parseAndVisitStatementSource(t, "function f() {\n  function* g() {}\n  yield();\n}")
		assert.Equal(t, []string{"yield"}, tp.spy.uses)
	}
}

func TestDeclareYieldInGeneratorFunction(t *testing.T) {
	{
		tp := newTestParser("function yield() { }", Options{})
		guard := tp.parser.EnterFunction(lang.FunctionAttributesGenerator)
		require.True(t, tp.parser.ParseAndVisitStatement(tp.spy))
		guard.Restore()
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.CannotDeclareYieldInGeneratorFunction)
		require.True(t, ok)
		assert.Equal(t, spanAfter("function ", "yield"), d.Name)
	}

	{
		tp := parseAndVisitStatementSource(t, "function* f(yield) {}")
		assert.Equal(t, []visitedDeclaration{
			{name: "f", kind: lang.VariableKindFunction},
			{name: "yield", kind: lang.VariableKindParameter},
		}, tp.spy.declarations)
		require.Len(t, tp.errors.Diags, 1)
		d, ok := tp.errors.Diags[0].(diag.CannotDeclareYieldInGeneratorFunction)
		require.True(t, ok)
		assert.Equal(t, spanAfter("function* f(", "yield"), d.Name)
	}
}

func TestVariablesCanBeNamedContextualKeywords(t *testing.T) {
	names := []string{
		"as", "async", "await", "from", "get", "of", "private",
		"protected", "public", "set", "static", "yield",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			{
				tp := parseAndVisitStatementSource(t, "var "+name+" = initial;")
				assert.Equal(t, []string{
					"visit_variable_use",
					"visit_variable_declaration",
				}, tp.spy.visits)
				assert.Equal(t, []visitedDeclaration{{name: name, kind: lang.VariableKindVar}}, tp.spy.declarations)
			}

			{
				tp := parseAndVisitStatementSource(t, "function "+name+"("+name+") {}")
				assert.Equal(t, []string{
					"visit_variable_declaration",
					"visit_enter_function_scope",
					"visit_variable_declaration",
					"visit_enter_function_scope_body",
					"visit_exit_function_scope",
				}, tp.spy.visits)
			}

			{
				tp := parseAndVisitStatementSource(t, "(function "+name+"() {})")
				assert.Equal(t, []string{name}, tp.spy.namedFunctionScopes)
			}

			{
				tp := parseAndVisitStatementSource(t, "try { } catch ("+name+") { }")
				assert.Equal(t, []visitedDeclaration{{name: name, kind: lang.VariableKindCatch}}, tp.spy.declarations)
			}

			{
				tp := parseAndVisitStatementSource(t, "let {x = "+name+"} = o;")
				assert.Equal(t, []string{"o", name}, tp.spy.uses)
			}

			{
				tp := parseAndVisitStatementSource(t, name+";")
				assert.Equal(t, []string{name}, tp.spy.uses)
			}

			{
				tp := parseAndVisitStatementSource(t, name+".method();")
				assert.Equal(t, []string{name}, tp.spy.uses)
			}

			{
				tp := parseAndVisitStatementSource(t, "for ("+name+" in xs) ;")
				assert.Equal(t, []string{
					"visit_variable_use",
					"visit_variable_assignment",
				}, tp.spy.visits)
				assert.Equal(t, []string{name}, tp.spy.assignments)
			}

			if name != "async" {
				tp := parseAndVisitStatementSource(t, "for ("+name+" of xs) ;")
				assert.Equal(t, []string{name}, tp.spy.assignments)
				assert.Equal(t, []string{"xs"}, tp.spy.uses)
			}

			{
				tp := parseAndVisitStatementSource(t, "for (("+name+") of xs) ;")
				assert.Equal(t, []string{name}, tp.spy.assignments)
				assert.Equal(t, []string{"xs"}, tp.spy.uses)
			}

			{
				tp := parseAndVisitStatementSource(t, "for ("+name+".prop of xs) ;")
				assert.Empty(t, tp.spy.assignments)
				assert.Equal(t, []string{name, "xs"}, tp.spy.uses)
			}

			{
				tp := parseAndVisitStatementSource(t, "for ("+name+"; cond;) ;")
				assert.Empty(t, tp.spy.assignments)
				assert.Equal(t, []string{name, "cond"}, tp.spy.uses)
			}
		})
	}
}

func TestForAsyncOfIsNotAnAssignment(t *testing.T) {
	tp := parseAndVisitStatementSource(t, "for (async of xs) ;")
	assert.Empty(t, tp.spy.assignments)
	assert.Equal(t, []string{"xs"}, tp.spy.uses)
	require.Len(t, tp.errors.Diags, 1)
	d, ok := tp.errors.Diags[0].(diag.CannotAssignToVariableNamedAsyncInForOfLoop)
	require.True(t, ok)
	assert.Equal(t, spanAfter("for (", "async"), d.AsyncToken)
}
