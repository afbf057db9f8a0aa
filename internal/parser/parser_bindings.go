package parser

import (
	"github.com/kasumi-lint/kasumi/internal/ast"
	"github.com/kasumi-lint/kasumi/internal/diag"
	"github.com/kasumi-lint/kasumi/internal/lang"
	"github.com/kasumi-lint/kasumi/internal/lexer"
	"github.com/kasumi-lint/kasumi/internal/source"
	"github.com/kasumi-lint/kasumi/internal/visit"
)

// bindingOptions tweaks binding-list parsing per context.
type bindingOptions struct {
	// ForLoopHead disables the in operator in initializers so
	// `for (let x = a in b)` stops before the in.
	ForLoopHead bool
	// Parameter marks function-parameter position (non-null assertions are
	// diagnosed there; in let/var/const they are definite-assignment
	// assertions and legal TypeScript).
	Parameter bool
}

func variableKindForToken(tt lexer.TokenType) lang.VariableKind {
	switch tt {
	case lexer.TokenConst:
		return lang.VariableKindConst
	case lexer.TokenVar:
		return lang.VariableKindVar
	default:
		return lang.VariableKindLet
	}
}

// parseAndVisitLetBindings parses a binding list and consumes the statement
// terminator, unless the list was abandoned at a token that belongs to the
// next statement.
func (p *Parser) parseAndVisitLetBindings(v visit.Visitor, declToken *lexer.Token) {
	if p.parseAndVisitLetBindingsInto(v, declToken, bindingOptions{}) {
		p.consumeSemicolon()
	}
}

// parseAndVisitLetBindingsInto parses the binding list of a let, const or
// var statement whose declaring keyword has already been consumed. It
// returns false when parsing stopped at a token the next statement should
// consume, in which case no terminator is expected.
func (p *Parser) parseAndVisitLetBindingsInto(v visit.Visitor, declToken *lexer.Token, opts bindingOptions) bool {
	kind := variableKindForToken(declToken.Type)
	declSpan := declToken.Span()
	firstBinding := true
	var commaSpan source.Span

	for {
		if !firstBinding {
			if p.peek().Type != lexer.TokenComma {
				return true
			}
			commaSpan = p.peek().Span()
			p.skipToken()
		}

		switch t := p.peek(); {
		case t.IsIdentifierLike(), t.Type == lexer.TokenLBrace, t.Type == lexer.TokenLBracket:
			p.parseAndVisitBindingElement(v, kind, opts)

		case t.Type == lexer.TokenAssign:
			p.report(diag.MissingVariableNameInDeclaration{EqualToken: t.Span()})
			p.skipToken()
			expr := p.parseExpression(p.initializerPrecedence(opts))
			p.visitExpression(expr, v, variableContextRHS)

		case t.Type == lexer.TokenEOF, t.Type == lexer.TokenSemicolon, t.NewlineBefore:
			if firstBinding {
				p.report(diag.LetWithNoBindings{Where: declSpan})
			} else {
				p.report(diag.StrayCommaInLetStatement{Where: commaSpan})
			}
			return true

		case p.peekCanBeginExpression():
			// `let 42*69` or `let x, 42`: not a binding at all. Report once
			// and re-parse the rest as an expression.
			p.report(diag.UnexpectedTokenInVariableDeclaration{UnexpectedToken: t.Span()})
			expr := p.parseExpression(defaultPrecedence())
			p.visitExpression(expr, v, variableContextRHS)
			return true

		case t.IsReservedWord():
			// `var if = x`: a keyword in binding position. If what follows
			// still looks like a binding, diagnose the name and carry on;
			// otherwise leave the token for the statement parser
			// (`let while (x) ...`).
			if p.reservedWordLooksLikeBinding() {
				p.report(diag.CannotDeclareVariableWithKeywordName{Keyword: t.Span(), Name: t.Literal})
				p.skipToken()
				if p.peek().Type == lexer.TokenAssign {
					p.skipToken()
					expr := p.parseExpression(p.initializerPrecedence(opts))
					p.visitExpression(expr, v, variableContextRHS)
				}
			} else {
				p.report(diag.UnexpectedTokenInVariableDeclaration{UnexpectedToken: t.Span()})
				return false
			}

		default:
			if firstBinding {
				p.report(diag.LetWithNoBindings{Where: declSpan})
			} else {
				p.report(diag.StrayCommaInLetStatement{Where: commaSpan})
			}
			return true
		}
		firstBinding = false
	}
}

// reservedWordLooksLikeBinding peeks past a reserved word in binding
// position to decide whether it was meant as a (misspelled) variable name.
func (p *Parser) reservedWordLooksLikeBinding() bool {
	snapshot := p.lexer.Snapshot()
	p.skipToken()
	looksLikeBinding := false
	switch p.peek().Type {
	case lexer.TokenAssign, lexer.TokenSemicolon, lexer.TokenComma, lexer.TokenEOF:
		looksLikeBinding = true
	}
	p.lexer.RollBack(snapshot)
	return looksLikeBinding
}

func (p *Parser) initializerPrecedence(opts bindingOptions) precedence {
	return precedence{
		BinaryOperators:          true,
		Commas:                   false,
		InOperator:               !opts.ForLoopHead,
		ConditionalOperator:      true,
		TrailingCurlyIsArrowBody: true,
	}
}

// parseAndVisitBindingElement parses one binding (a name or a destructuring
// pattern), its optional TypeScript annotation and its optional initializer.
// The declarations are buffered so that initializer uses are visited first:
// in `let {x = f()} = o`, o and f are visited before the declaration of x.
func (p *Parser) parseAndVisitBindingElement(v visit.Visitor, kind lang.VariableKind, opts bindingOptions) {
	var lhs visit.Buffer        // declarations, in source order
	var innerInits visit.Buffer // uses from defaults inside the pattern
	var typeVisits visit.Buffer // type uses from the annotation

	p.parseBindingPattern(&lhs, &innerInits, kind, opts)

	if t := p.peek(); t.Type == lexer.TokenBang && p.options.TypeScript && !t.NewlineBefore {
		if opts.Parameter {
			p.report(diag.NonNullAssertionNotAllowedInParameter{Bang: t.Span()})
		}
		p.skipToken()
	}

	if t := p.peek(); t.Type == lexer.TokenColon {
		if !p.options.TypeScript {
			p.report(diag.TypeScriptTypeAnnotationsNotAllowedInJavaScript{TypeColon: t.Span()})
		}
		p.skipToken()
		p.parseAndVisitTypeExpression(&typeVisits)
	}

	if p.peek().Type == lexer.TokenAssign {
		p.skipToken()
		expr := p.parseExpression(p.initializerPrecedence(opts))
		p.visitExpression(expr, v, variableContextRHS)
	}

	innerInits.MoveInto(v)
	typeVisits.MoveInto(v)
	lhs.MoveInto(v)
}

// parseBindingPattern parses a binding name, object pattern or array
// pattern. Declarations go to lhs; uses from nested defaults and computed
// keys go to inits.
func (p *Parser) parseBindingPattern(lhs, inits *visit.Buffer, kind lang.VariableKind, opts bindingOptions) {
	switch t := p.peek(); {
	case t.IsIdentifierLike():
		ident := t.Identifier()
		tokType := t.Type
		p.skipToken()
		if p.checkBindingName(tokType, ident, kind) {
			lhs.VisitVariableDeclaration(ident, kind)
		}

	case t.Type == lexer.TokenLBrace:
		p.parseObjectBindingPattern(lhs, inits, kind, opts)

	case t.Type == lexer.TokenLBracket:
		p.parseArrayBindingPattern(lhs, inits, kind, opts)

	default:
		p.report(diag.InvalidBindingInLetStatement{Where: t.Span()})
		p.skipToken()
	}
}

// parsePatternTargetWithDefault parses a nested binding target plus its
// optional `= default`, whose uses are deferred into inits.
func (p *Parser) parsePatternTargetWithDefault(lhs, inits *visit.Buffer, kind lang.VariableKind, opts bindingOptions) {
	p.parseBindingPattern(lhs, inits, kind, opts)
	if p.peek().Type == lexer.TokenAssign {
		p.skipToken()
		expr := p.parseExpression(p.initializerPrecedence(opts))
		p.visitExpression(expr, inits, variableContextRHS)
	}
}

func (p *Parser) parseObjectBindingPattern(lhs, inits *visit.Buffer, kind lang.VariableKind, opts bindingOptions) {
	p.skipToken() // '{'
	for {
		switch t := p.peek(); {
		case t.Type == lexer.TokenRBrace:
			p.skipToken()
			return
		case t.Type == lexer.TokenEOF:
			p.report(diag.UnmatchedParenthesis{Where: source.EmptySpanAt(t.Begin)})
			return
		case t.Type == lexer.TokenComma:
			p.skipToken()
		case t.Type == lexer.TokenDotDotDot:
			p.skipToken()
			p.parsePatternTargetWithDefault(lhs, inits, kind, opts)
		case t.Type == lexer.TokenString:
			keySpan := t.Span()
			p.skipToken()
			if p.peek().Type == lexer.TokenColon {
				p.skipToken()
				p.parsePatternTargetWithDefault(lhs, inits, kind, opts)
			} else {
				p.report(diag.MissingValueForObjectLiteralEntry{Key: keySpan})
				p.report(diag.InvalidBindingInLetStatement{Where: keySpan})
			}
		case t.Type == lexer.TokenNumber, t.Type == lexer.TokenBigInt:
			keySpan := t.Span()
			p.skipToken()
			if p.peek().Type == lexer.TokenColon {
				p.skipToken()
				p.parsePatternTargetWithDefault(lhs, inits, kind, opts)
			} else {
				p.report(diag.InvalidLoneLiteralInObjectLiteral{Where: keySpan})
				p.report(diag.InvalidBindingInLetStatement{Where: keySpan})
			}
		case t.Type == lexer.TokenLBracket:
			// Computed key: the key expression is a use.
			p.skipToken()
			keyExpr := p.parseExpression(defaultPrecedence())
			p.visitExpression(keyExpr, inits, variableContextRHS)
			p.expect(lexer.TokenRBracket)
			if p.expect(lexer.TokenColon) {
				p.parsePatternTargetWithDefault(lhs, inits, kind, opts)
			}
		case t.IsIdentifierLike():
			ident := t.Identifier()
			tokType := t.Type
			p.skipToken()
			if p.peek().Type == lexer.TokenColon {
				// `{key: target}`: the key is not a variable.
				p.skipToken()
				p.parsePatternTargetWithDefault(lhs, inits, kind, opts)
			} else {
				// Shorthand `{name}` or `{name = default}`.
				if p.checkBindingName(tokType, ident, kind) {
					lhs.VisitVariableDeclaration(ident, kind)
				}
				if p.peek().Type == lexer.TokenAssign {
					p.skipToken()
					expr := p.parseExpression(p.initializerPrecedence(opts))
					p.visitExpression(expr, inits, variableContextRHS)
				}
			}
		default:
			// A keyword or stray punctuation where a property was expected.
			p.report(diag.MissingValueForObjectLiteralEntry{Key: t.Span()})
			p.report(diag.InvalidBindingInLetStatement{Where: t.Span()})
			p.skipToken()
		}
	}
}

func (p *Parser) parseArrayBindingPattern(lhs, inits *visit.Buffer, kind lang.VariableKind, opts bindingOptions) {
	p.skipToken() // '['
	for {
		switch t := p.peek(); {
		case t.Type == lexer.TokenRBracket:
			p.skipToken()
			return
		case t.Type == lexer.TokenEOF:
			p.report(diag.UnmatchedParenthesis{Where: source.EmptySpanAt(t.Begin)})
			return
		case t.Type == lexer.TokenComma:
			p.skipToken() // elision
		case t.Type == lexer.TokenDotDotDot:
			p.skipToken()
			p.parsePatternTargetWithDefault(lhs, inits, kind, opts)
		case t.IsIdentifierLike(), t.Type == lexer.TokenLBrace, t.Type == lexer.TokenLBracket:
			p.parsePatternTargetWithDefault(lhs, inits, kind, opts)
		default:
			p.report(diag.InvalidBindingInLetStatement{Where: t.Span()})
			p.skipToken()
		}
	}
}

// checkBindingName applies name restrictions for a binding in declaration
// position. It reports any diagnostic and returns whether the declaration
// event should still be emitted.
func (p *Parser) checkBindingName(tokType lexer.TokenType, ident lang.Identifier, kind lang.VariableKind) bool {
	if ident.HasEscape {
		// The lexer already reported the escape if the text is a keyword.
		return true
	}
	switch tokType {
	case lexer.TokenLet:
		switch kind {
		case lang.VariableKindLet, lang.VariableKindConst:
			p.report(diag.CannotDeclareVariableNamedLetWithLet{Name: ident.Span})
		case lang.VariableKindClass:
			p.report(diag.CannotDeclareClassNamedLet{Name: ident.Span})
		case lang.VariableKindImport:
			p.report(diag.CannotImportLet{ImportName: ident.Span})
		}
		return true
	case lexer.TokenAwait:
		if p.inAsyncFunction {
			p.report(diag.CannotDeclareAwaitInAsyncFunction{Name: ident.Span})
		}
		return true
	case lexer.TokenYield:
		if p.inGeneratorFunction {
			p.report(diag.CannotDeclareYieldInGeneratorFunction{Name: ident.Span})
		}
		return true
	}
	if isStrictReservedType(tokType) && kind == lang.VariableKindImport {
		p.report(diag.CannotImportVariableNamedKeyword{ImportName: ident.Span, Name: ident.Name})
	}
	return true
}

func isStrictReservedType(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TokenImplements, lexer.TokenInterface, lexer.TokenPackage,
		lexer.TokenPrivate, lexer.TokenProtected, lexer.TokenPublic:
		return true
	}
	return false
}

// ====== import ======

func (p *Parser) parseAndVisitImport(v visit.Visitor) {
	p.skipToken() // 'import'

	switch t := p.peek(); {
	case t.Type == lexer.TokenString:
		// Side-effect import: `import 'foo';`
		p.skipToken()
		p.consumeSemicolon()
		return

	case t.IsIdentifierLike():
		p.parseImportedBindingName(v)
		if p.peek().Type == lexer.TokenComma {
			p.skipToken()
			switch p.peek().Type {
			case lexer.TokenLBrace:
				p.parseImportNamedList(v)
			case lexer.TokenStar:
				p.parseImportNamespace(v)
			default:
				p.report(diag.UnexpectedToken{Token: p.peek().Span()})
			}
		}

	case t.Type == lexer.TokenLBrace:
		p.parseImportNamedList(v)

	case t.Type == lexer.TokenStar:
		p.parseImportNamespace(v)

	default:
		p.report(diag.UnexpectedToken{Token: t.Span()})
		p.skipToStatementBoundary()
		return
	}

	p.parseModuleSpecifierClause()
	p.consumeSemicolon()
}

// parseModuleSpecifierClause parses `from 'module'`, diagnosing a missing
// from keyword or a missing specifier.
func (p *Parser) parseModuleSpecifierClause() {
	switch p.peek().Type {
	case lexer.TokenFrom:
		p.skipToken()
		switch t := p.peek(); {
		case t.Type == lexer.TokenString:
			p.skipToken()
		case t.IsIdentifierLike() || t.IsKeyword():
			p.report(diag.CannotImportFromUnquotedModule{ImportName: t.Span()})
			p.skipToken()
		default:
			p.report(diag.UnexpectedToken{Token: t.Span()})
		}
	case lexer.TokenString:
		p.report(diag.ExpectedFromBeforeModuleSpecifier{ModuleSpecifier: p.peek().Span()})
		p.skipToken()
	default:
		p.report(diag.ExpectedFromAndModuleSpecifier{
			Where: source.EmptySpanAt(p.lexer.EndOfPreviousToken()),
		})
	}
}

// parseImportedBindingName declares the current token as an imported local
// name.
func (p *Parser) parseImportedBindingName(v visit.Visitor) {
	switch t := p.peek(); {
	case t.IsIdentifierLike():
		ident := t.Identifier()
		tokType := t.Type
		p.skipToken()
		if p.checkBindingName(tokType, ident, lang.VariableKindImport) {
			v.VisitVariableDeclaration(ident, lang.VariableKindImport)
		}
	case t.Type == lexer.TokenString:
		p.report(diag.ExpectedVariableNameForImportAs{UnexpectedToken: t.Span()})
		p.skipToken()
	case t.IsReservedWord():
		p.report(diag.CannotImportVariableNamedKeyword{ImportName: t.Span(), Name: t.Literal})
		v.VisitVariableDeclaration(t.Identifier(), lang.VariableKindImport)
		p.skipToken()
	default:
		p.report(diag.UnexpectedToken{Token: t.Span()})
	}
}

func (p *Parser) parseImportNamespace(v visit.Visitor) {
	starToken := *p.peek()
	p.skipToken() // '*'
	switch t := p.peek(); {
	case t.Type == lexer.TokenAs:
		p.skipToken()
		p.parseImportedBindingName(v)
	case t.IsIdentifierLike():
		alias := t.Identifier()
		p.report(diag.ExpectedAsBeforeImportedNamespaceAlias{
			StarThroughAliasToken: source.NewSpan(starToken.Begin, alias.Span.End),
			StarToken:             starToken.Span(),
			Alias:                 alias.Span,
		})
		p.parseImportedBindingName(v)
	default:
		p.report(diag.UnexpectedToken{Token: t.Span()})
	}
}

func (p *Parser) parseImportNamedList(v visit.Visitor) {
	p.skipToken() // '{'
	for {
		switch t := p.peek(); {
		case t.Type == lexer.TokenRBrace:
			p.skipToken()
			return
		case t.Type == lexer.TokenEOF:
			p.report(diag.UnmatchedParenthesis{Where: source.EmptySpanAt(t.Begin)})
			return
		case t.Type == lexer.TokenComma:
			p.skipToken()
		case t.Type == lexer.TokenString:
			// `import {'exported name' as local}`
			nameSpan := t.Span()
			p.skipToken()
			if p.peek().Type == lexer.TokenAs {
				p.skipToken()
				p.parseImportedBindingName(v)
			} else {
				p.report(diag.ExpectedVariableNameForImportAs{UnexpectedToken: nameSpan})
			}
		case t.IsIdentifierLike() || t.IsKeyword():
			// The exported name may be any keyword when renamed with as.
			orig := *t
			p.skipToken()
			if p.peek().Type == lexer.TokenAs {
				p.skipToken()
				p.parseImportedBindingName(v)
			} else if orig.IsReservedWord() {
				p.report(diag.CannotImportVariableNamedKeyword{ImportName: orig.Span(), Name: orig.Literal})
				v.VisitVariableDeclaration(orig.Identifier(), lang.VariableKindImport)
			} else if p.checkBindingName(orig.Type, orig.Identifier(), lang.VariableKindImport) {
				v.VisitVariableDeclaration(orig.Identifier(), lang.VariableKindImport)
			}
		default:
			p.report(diag.UnexpectedToken{Token: t.Span()})
			p.skipToken()
		}
	}
}

// ====== export ======

func (p *Parser) parseAndVisitExport(v visit.Visitor) {
	exportToken := *p.peek()
	p.skipToken()

	switch t := p.peek(); t.Type {
	case lexer.TokenDefault:
		p.skipToken()
		p.parseAndVisitExportDefault(v)

	case lexer.TokenStar:
		p.skipToken()
		if p.peek().Type == lexer.TokenAs {
			p.skipToken()
			// The exported namespace name may be any keyword or string.
			if et := p.peek(); et.IsIdentifierLike() || et.IsKeyword() || et.Type == lexer.TokenString {
				p.skipToken()
			} else {
				p.report(diag.UnexpectedToken{Token: et.Span()})
			}
		}
		if p.peek().Type == lexer.TokenFrom {
			p.skipToken()
			if p.peek().Type == lexer.TokenString {
				p.skipToken()
			} else {
				p.report(diag.UnexpectedToken{Token: p.peek().Span()})
			}
		} else {
			p.report(diag.ExpectedFromAndModuleSpecifier{
				Where: source.EmptySpanAt(p.lexer.EndOfPreviousToken()),
			})
		}
		p.consumeSemicolon()

	case lexer.TokenLBrace:
		p.parseExportList(v)

	case lexer.TokenFunction:
		p.parseAndVisitFunctionDeclaration(v, lang.FunctionAttributesNormal,
			functionDeclarationOptions{Exported: true})

	case lexer.TokenAsync:
		p.skipToken()
		if p.peek().Type == lexer.TokenFunction {
			p.parseAndVisitFunctionDeclaration(v, lang.FunctionAttributesAsync,
				functionDeclarationOptions{Exported: true})
		} else {
			p.report(diag.UnexpectedTokenAfterExport{UnexpectedToken: p.peek().Span()})
		}

	case lexer.TokenClass:
		p.parseAndVisitClassDeclaration(v, classDeclarationOptions{Exported: true})

	case lexer.TokenVar, lexer.TokenConst, lexer.TokenLet:
		declToken := *t
		p.skipToken()
		p.parseAndVisitLetBindings(v, &declToken)

	case lexer.TokenInterface:
		if p.options.TypeScript {
			p.parseAndVisitInterface(v)
		} else {
			p.report(diag.UnexpectedTokenAfterExport{UnexpectedToken: t.Span()})
		}

	case lexer.TokenEOF, lexer.TokenSemicolon:
		p.report(diag.MissingTokenAfterExport{ExportToken: exportToken.Span()})

	default:
		if p.peekCanBeginExpression() {
			expr := p.parseExpression(defaultPrecedence())
			if expr.Kind == ast.KindVariable {
				p.report(diag.ExportingRequiresCurlies{Names: expr.Span})
			} else {
				p.report(diag.ExportingRequiresDefault{Expression: expr.Span})
			}
			p.visitExpression(expr, v, variableContextRHS)
			p.consumeSemicolon()
		} else {
			p.report(diag.UnexpectedTokenAfterExport{UnexpectedToken: t.Span()})
		}
	}
}

func (p *Parser) parseAndVisitExportDefault(v visit.Visitor) {
	switch t := p.peek(); t.Type {
	case lexer.TokenClass:
		p.parseAndVisitClassDeclaration(v, classDeclarationOptions{DefaultExport: true})

	case lexer.TokenFunction:
		p.parseAndVisitFunctionDeclaration(v, lang.FunctionAttributesNormal,
			functionDeclarationOptions{DefaultExport: true})

	case lexer.TokenAsync:
		snapshot := p.lexer.Snapshot()
		p.skipToken()
		if p.peek().Type == lexer.TokenFunction && !p.peek().NewlineBefore {
			p.parseAndVisitFunctionDeclaration(v, lang.FunctionAttributesAsync,
				functionDeclarationOptions{DefaultExport: true})
			return
		}
		p.lexer.RollBack(snapshot)
		p.parseAndVisitExportDefaultExpression(v)

	case lexer.TokenVar, lexer.TokenConst, lexer.TokenLet:
		declToken := *t
		p.report(diag.CannotExportDefaultVariable{DeclaringToken: declToken.Span()})
		p.skipToken()
		p.parseAndVisitLetBindings(v, &declToken)

	default:
		p.parseAndVisitExportDefaultExpression(v)
	}
}

func (p *Parser) parseAndVisitExportDefaultExpression(v visit.Visitor) {
	p.parseAndVisitExpression(v, precedence{
		BinaryOperators: true, Commas: false, InOperator: true,
		ConditionalOperator: true, TrailingCurlyIsArrowBody: true,
	})
	p.consumeSemicolon()
}

type exportListEntry struct {
	name      lang.Identifier
	isString  bool
	reserved  bool
	hasEscape bool
}

func (p *Parser) parseExportList(v visit.Visitor) {
	p.skipToken() // '{'
	var entries []exportListEntry

list:
	for {
		switch t := p.peek(); {
		case t.Type == lexer.TokenRBrace:
			p.skipToken()
			break list
		case t.Type == lexer.TokenEOF:
			p.report(diag.UnmatchedParenthesis{Where: source.EmptySpanAt(t.Begin)})
			break list
		case t.Type == lexer.TokenComma:
			p.skipToken()
		case t.Type == lexer.TokenString || t.IsIdentifierLike() || t.IsKeyword():
			entry := exportListEntry{
				name:      t.Identifier(),
				isString:  t.Type == lexer.TokenString,
				hasEscape: t.HasEscape,
				reserved:  t.IsReservedWord() || t.IsStrictReservedWord(),
			}
			if entry.isString {
				entry.name.Span = t.Span()
			}
			p.skipToken()
			if p.peek().Type == lexer.TokenAs {
				p.skipToken()
				// The exported alias may be any keyword or string.
				if at := p.peek(); at.IsIdentifierLike() || at.IsKeyword() || at.Type == lexer.TokenString {
					p.skipToken()
				} else {
					p.report(diag.UnexpectedToken{Token: at.Span()})
				}
			}
			entries = append(entries, entry)
		default:
			p.report(diag.UnexpectedToken{Token: t.Span()})
			p.skipToken()
		}
	}

	if p.peek().Type == lexer.TokenFrom {
		// Export-from re-exports other module names; nothing here is a use
		// of a local variable, and keywords and strings are legal.
		p.skipToken()
		if p.peek().Type == lexer.TokenString {
			p.skipToken()
		} else {
			p.report(diag.UnexpectedToken{Token: p.peek().Span()})
		}
		p.consumeSemicolon()
		return
	}

	for _, entry := range entries {
		switch {
		case entry.isString:
			p.report(diag.ExportingStringNameOnlyAllowedForExportFrom{ExportName: entry.name.Span})
		case entry.reserved:
			p.report(diag.CannotExportVariableNamedKeyword{ExportName: entry.name.Span, Name: entry.name.Name})
		case entry.hasEscape && isNonContextualKeywordName(entry.name.Name):
			// The lexer already reported the escape sequence.
		default:
			v.VisitVariableExportUse(entry.name)
		}
	}
	p.consumeSemicolon()
}

// isNonContextualKeywordName reports whether normalized identifier text is a
// reserved word (not merely contextual).
func isNonContextualKeywordName(name string) bool {
	tt, ok := lexer.ReservedWordType(name)
	if !ok {
		return false
	}
	switch tt {
	case lexer.TokenAs, lexer.TokenAsync, lexer.TokenFrom, lexer.TokenGet,
		lexer.TokenOf, lexer.TokenSet, lexer.TokenLet, lexer.TokenStatic,
		lexer.TokenAwait, lexer.TokenYield:
		return false
	}
	return true
}
