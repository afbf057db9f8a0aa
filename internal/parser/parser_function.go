package parser

import (
	"github.com/kasumi-lint/kasumi/internal/ast"
	"github.com/kasumi-lint/kasumi/internal/diag"
	"github.com/kasumi-lint/kasumi/internal/lang"
	"github.com/kasumi-lint/kasumi/internal/lexer"
	"github.com/kasumi-lint/kasumi/internal/source"
	"github.com/kasumi-lint/kasumi/internal/visit"
)

type functionDeclarationOptions struct {
	Exported      bool
	DefaultExport bool
}

// parseAndVisitFunctionDeclaration parses `function f(params) { body }`
// (and async/generator variants). Event order: declaration of f, enter
// function scope, parameter declarations, enter function scope body, body,
// exit function scope.
func (p *Parser) parseAndVisitFunctionDeclaration(v visit.Visitor, attrs lang.FunctionAttributes, opts functionDeclarationOptions) {
	functionToken := *p.peek()
	p.skipToken() // 'function'
	attrs = p.parseGeneratorStar(attrs)

	if t := p.peek(); t.IsIdentifierLike() {
		ident := t.Identifier()
		tokType := t.Type
		p.skipToken()
		// The name lives in the enclosing scope, so await/yield
		// restrictions apply relative to the enclosing function.
		if p.checkBindingName(tokType, ident, lang.VariableKindFunction) {
			v.VisitVariableDeclaration(ident, lang.VariableKindFunction)
		}
	} else if opts.Exported {
		p.report(diag.MissingNameOfExportedFunction{FunctionKeyword: functionToken.Span()})
	} else if !opts.DefaultExport {
		p.report(diag.MissingNameInFunctionStatement{Where: functionToken.Span()})
	}

	p.parseAndVisitFunctionParametersAndBody(v, attrs)
}

func (p *Parser) parseGeneratorStar(attrs lang.FunctionAttributes) lang.FunctionAttributes {
	if p.peek().Type != lexer.TokenStar {
		return attrs
	}
	p.skipToken()
	if attrs.IsAsync() {
		return lang.FunctionAttributesAsyncGenerator
	}
	return lang.FunctionAttributesGenerator
}

func (p *Parser) parseAndVisitFunctionParametersAndBody(v visit.Visitor, attrs lang.FunctionAttributes) {
	v.VisitEnterFunctionScope()
	guard := p.EnterFunction(attrs)
	p.parseAndVisitFunctionParametersAndBodyNoScope(v)
	guard.Restore()
	v.VisitExitFunctionScope()
}

func (p *Parser) parseAndVisitFunctionParametersAndBodyNoScope(v visit.Visitor) {
	p.expect(lexer.TokenLParen)
	p.parseAndVisitParameterList(v)

	if t := p.peek(); t.Type == lexer.TokenColon {
		if !p.options.TypeScript {
			p.report(diag.TypeScriptTypeAnnotationsNotAllowedInJavaScript{TypeColon: t.Span()})
		}
		p.skipToken()
		p.parseAndVisitTypeExpression(v)
	}

	if p.peek().Type == lexer.TokenLBrace {
		v.VisitEnterFunctionScopeBody()
		p.parseAndVisitStatementBlockNoScope(v)
	} else {
		p.report(diag.UnexpectedToken{Token: p.peek().Span()})
	}
}

// parseAndVisitParameterList parses parameters up to and including the ')'.
// The '(' has already been consumed.
func (p *Parser) parseAndVisitParameterList(v visit.Visitor) {
	for {
		switch t := p.peek(); {
		case t.Type == lexer.TokenRParen:
			p.skipToken()
			return
		case t.Type == lexer.TokenEOF:
			p.report(diag.UnmatchedParenthesis{Where: source.EmptySpanAt(t.Begin)})
			return
		case t.Type == lexer.TokenComma:
			p.skipToken()
		case t.Type == lexer.TokenDotDotDot:
			p.skipToken()
			p.parseAndVisitBindingElement(v, lang.VariableKindParameter, bindingOptions{Parameter: true})
		case t.IsIdentifierLike(), t.Type == lexer.TokenLBrace, t.Type == lexer.TokenLBracket:
			p.parseAndVisitBindingElement(v, lang.VariableKindParameter, bindingOptions{Parameter: true})
		case t.Type == lexer.TokenThis && p.options.TypeScript:
			// TypeScript this-parameter: a type annotation, not a binding.
			p.skipToken()
			if p.peek().Type == lexer.TokenColon {
				p.skipToken()
				p.parseAndVisitTypeExpression(v)
			}
		default:
			p.report(diag.UnexpectedToken{Token: t.Span()})
			p.skipToken()
		}
	}
}

// parseFunctionExpression parses a function expression into a buffered AST
// node. The scope events are emitted when the node is visited, because named
// function expressions open a named function scope instead.
func (p *Parser) parseFunctionExpression(attrs lang.FunctionAttributes) *ast.Expression {
	begin := p.peek().Begin
	p.skipToken() // 'function'
	attrs = p.parseGeneratorStar(attrs)

	var name *lang.Identifier
	if t := p.peek(); t.IsIdentifierLike() {
		// A named function expression may be named await or yield even in
		// async/generator contexts; the name binds inside the function's
		// own scope.
		ident := t.Identifier()
		name = &ident
		p.skipToken()
	}

	body := &visit.Buffer{}
	guard := p.EnterFunction(attrs)
	p.parseAndVisitFunctionParametersAndBodyNoScope(body)
	guard.Restore()

	kind := ast.KindFunction
	if name != nil {
		kind = ast.KindNamedFunction
	}
	node := p.arena.NewExpression(kind)
	if name != nil {
		node.Name = *name
	}
	node.Attributes = attrs
	node.BodyVisits = body
	node.Span = source.NewSpan(begin, p.lexer.EndOfPreviousToken())
	return node
}

// ====== Classes ======

type classDeclarationOptions struct {
	Exported      bool
	DefaultExport bool
}

// parseAndVisitClassDeclaration parses a class statement. Event order:
// enter class scope, extends-clause uses, enter class scope body, members,
// exit class scope, then the declaration of the class name.
func (p *Parser) parseAndVisitClassDeclaration(v visit.Visitor, opts classDeclarationOptions) {
	classToken := *p.peek()
	p.skipToken() // 'class'

	var name *lang.Identifier
	var nameTokType lexer.TokenType
	if t := p.peek(); t.IsIdentifierLike() {
		ident := t.Identifier()
		name = &ident
		nameTokType = t.Type
		p.skipToken()
	} else if opts.Exported {
		p.report(diag.MissingNameOfExportedClass{ClassKeyword: classToken.Span()})
	}

	v.VisitEnterClassScope()
	if p.peek().Type == lexer.TokenExtends {
		p.skipToken()
		p.parseAndVisitExpression(v, precedence{
			BinaryOperators: false, Commas: false, InOperator: true, ConditionalOperator: false,
		})
	}
	v.VisitEnterClassScopeBody()
	p.parseAndVisitClassBody(v)
	v.VisitExitClassScope()

	if name != nil && p.checkBindingName(nameTokType, *name, lang.VariableKindClass) {
		v.VisitVariableDeclaration(*name, lang.VariableKindClass)
	}
}

// parseClassExpression parses a class expression into a buffered node. The
// name of a class expression binds inside the class scope.
func (p *Parser) parseClassExpression() *ast.Expression {
	begin := p.peek().Begin
	p.skipToken() // 'class'

	var name *lang.Identifier
	if t := p.peek(); t.IsIdentifierLike() {
		ident := t.Identifier()
		name = &ident
		p.skipToken()
	}

	body := &visit.Buffer{}
	if p.peek().Type == lexer.TokenExtends {
		p.skipToken()
		base := p.parseExpression(precedence{
			BinaryOperators: false, Commas: false, InOperator: true, ConditionalOperator: false,
		})
		p.visitExpression(base, body, variableContextRHS)
	}
	if name != nil {
		body.VisitVariableDeclaration(*name, lang.VariableKindClass)
	}
	body.VisitEnterClassScopeBody()
	p.parseAndVisitClassBody(body)

	node := p.arena.NewExpression(ast.KindClass)
	if name != nil {
		node.Name = *name
	}
	node.BodyVisits = body
	node.Span = source.NewSpan(begin, p.lexer.EndOfPreviousToken())
	return node
}

func (p *Parser) parseAndVisitClassBody(v visit.Visitor) {
	p.expect(lexer.TokenLBrace)
	for {
		switch p.peek().Type {
		case lexer.TokenRBrace:
			p.skipToken()
			return
		case lexer.TokenEOF:
			p.report(diag.UnmatchedParenthesis{Where: source.EmptySpanAt(p.peek().Begin)})
			return
		case lexer.TokenSemicolon:
			p.skipToken()
		default:
			p.parseAndVisitClassMember(v)
		}
	}
}

// parseAndVisitClassMember parses one field or method, including static,
// async, get/set and generator modifiers. A modifier word followed by '(',
// '=', ':' or the end of the member is actually the member's name.
func (p *Parser) parseAndVisitClassMember(v visit.Visitor) {
	attrs := lang.FunctionAttributesNormal

modifiers:
	for {
		switch p.peek().Type {
		case lexer.TokenStatic, lexer.TokenAsync, lexer.TokenGet, lexer.TokenSet:
			isAsync := p.peek().Type == lexer.TokenAsync
			snapshot := p.lexer.Snapshot()
			p.skipToken()
			switch p.peek().Type {
			case lexer.TokenLParen, lexer.TokenAssign, lexer.TokenColon,
				lexer.TokenSemicolon, lexer.TokenRBrace:
				p.lexer.RollBack(snapshot)
				break modifiers
			}
			if isAsync {
				attrs = lang.FunctionAttributesAsync
			}
		case lexer.TokenStar:
			p.skipToken()
			if attrs.IsAsync() {
				attrs = lang.FunctionAttributesAsyncGenerator
			} else {
				attrs = lang.FunctionAttributesGenerator
			}
		default:
			break modifiers
		}
	}

	switch t := p.peek(); {
	case t.Type == lexer.TokenLBracket:
		// Computed member name: the key expression is evaluated.
		p.skipToken()
		key := p.parseExpression(defaultPrecedence())
		p.visitExpression(key, v, variableContextRHS)
		p.expect(lexer.TokenRBracket)
		v.VisitPropertyDeclaration(nil)
	case t.IsIdentifierLike() || t.IsKeyword() || t.Type == lexer.TokenString || t.Type == lexer.TokenNumber:
		ident := t.Identifier()
		v.VisitPropertyDeclaration(&ident)
		p.skipToken()
	default:
		p.report(diag.UnexpectedToken{Token: t.Span()})
		p.skipToken()
		return
	}

	switch p.peek().Type {
	case lexer.TokenLParen:
		p.parseAndVisitFunctionParametersAndBody(v, attrs)
	case lexer.TokenColon:
		if !p.options.TypeScript {
			p.report(diag.TypeScriptTypeAnnotationsNotAllowedInJavaScript{TypeColon: p.peek().Span()})
		}
		p.skipToken()
		p.parseAndVisitTypeExpression(v)
		p.parseOptionalFieldInitializer(v)
	case lexer.TokenAssign:
		p.parseOptionalFieldInitializer(v)
	default:
		if p.peek().Type == lexer.TokenSemicolon {
			p.skipToken()
		}
	}
}

func (p *Parser) parseOptionalFieldInitializer(v visit.Visitor) {
	if p.peek().Type == lexer.TokenAssign {
		p.skipToken()
		p.parseAndVisitExpression(v, precedence{
			BinaryOperators: true, Commas: false, InOperator: true,
			ConditionalOperator: true, TrailingCurlyIsArrowBody: true,
		})
	}
	if p.peek().Type == lexer.TokenSemicolon {
		p.skipToken()
	}
}

// ====== TypeScript interface and enum declarations ======

// parseAndVisitInterface parses `interface I { ... }`. The interface name is
// declared first, then the interface scope opens.
func (p *Parser) parseAndVisitInterface(v visit.Visitor) {
	p.skipToken() // 'interface'
	if t := p.peek(); t.IsIdentifierLike() {
		v.VisitVariableDeclaration(t.Identifier(), lang.VariableKindClass)
		p.skipToken()
	} else {
		p.report(diag.UnexpectedToken{Token: t.Span()})
	}

	if p.peek().Type == lexer.TokenExtends {
		p.skipToken()
		for {
			p.parseAndVisitTypeExpression(v)
			if p.peek().Type != lexer.TokenComma {
				break
			}
			p.skipToken()
		}
	}

	v.VisitEnterInterfaceScope()
	p.expect(lexer.TokenLBrace)
members:
	for {
		switch p.peek().Type {
		case lexer.TokenRBrace:
			p.skipToken()
			break members
		case lexer.TokenEOF:
			p.report(diag.UnmatchedParenthesis{Where: source.EmptySpanAt(p.peek().Begin)})
			break members
		case lexer.TokenSemicolon, lexer.TokenComma:
			p.skipToken()
		default:
			p.parseAndVisitInterfaceMember(v)
		}
	}
	v.VisitExitInterfaceScope()
}

func (p *Parser) parseAndVisitInterfaceMember(v visit.Visitor) {
	switch t := p.peek(); {
	case t.Type == lexer.TokenLBracket:
		// Computed name or index signature.
		p.skipToken()
		if p.peek().IsIdentifierLike() {
			// Index signature: `[key: string]: T` declares no variable.
			p.skipToken()
			if p.peek().Type == lexer.TokenColon {
				p.skipToken()
				p.parseAndVisitTypeExpression(v)
			}
		}
		p.expect(lexer.TokenRBracket)
		v.VisitPropertyDeclaration(nil)
	case t.IsIdentifierLike() || t.IsKeyword() || t.Type == lexer.TokenString || t.Type == lexer.TokenNumber:
		ident := t.Identifier()
		v.VisitPropertyDeclaration(&ident)
		p.skipToken()
	default:
		p.report(diag.UnexpectedToken{Token: t.Span()})
		p.skipToken()
		return
	}

	if p.peek().Type == lexer.TokenQuestion {
		p.skipToken()
	}

	switch p.peek().Type {
	case lexer.TokenLParen:
		// Method signature: parameters and return type, no body.
		v.VisitEnterFunctionScope()
		p.skipToken()
		p.parseAndVisitParameterList(v)
		if p.peek().Type == lexer.TokenColon {
			p.skipToken()
			p.parseAndVisitTypeExpression(v)
		}
		v.VisitExitFunctionScope()
	case lexer.TokenColon:
		p.skipToken()
		p.parseAndVisitTypeExpression(v)
	}
}

// parseAndVisitEnum parses `enum E { A, B = expr }`. Member names declare
// nothing; initializer expressions are uses.
func (p *Parser) parseAndVisitEnum(v visit.Visitor) {
	p.skipToken() // 'enum'
	if t := p.peek(); t.IsIdentifierLike() {
		v.VisitVariableDeclaration(t.Identifier(), lang.VariableKindConst)
		p.skipToken()
	} else {
		p.report(diag.UnexpectedToken{Token: t.Span()})
	}

	p.expect(lexer.TokenLBrace)
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
		case t.IsIdentifierLike() || t.IsKeyword() || t.Type == lexer.TokenString:
			p.skipToken()
			if p.peek().Type == lexer.TokenAssign {
				p.skipToken()
				p.parseAndVisitExpression(v, precedence{
					BinaryOperators: true, Commas: false, InOperator: true,
					ConditionalOperator: true, TrailingCurlyIsArrowBody: true,
				})
			}
		default:
			p.report(diag.UnexpectedToken{Token: t.Span()})
			p.skipToken()
		}
	}
}
