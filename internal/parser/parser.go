// Package parser implements the recursive-descent ECMAScript/TypeScript
// parser. It pulls tokens from the lexer, builds partial expression trees in
// an arena, and pushes semantic events into a caller-supplied visitor while
// appending diagnostics to a reporter. The parser always terminates: on
// unrecoverable input it raises an internal fatal signal that is caught at
// the module boundary.
package parser

import (
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kasumi-lint/kasumi/internal/ast"
	"github.com/kasumi-lint/kasumi/internal/diag"
	"github.com/kasumi-lint/kasumi/internal/lang"
	"github.com/kasumi-lint/kasumi/internal/lexer"
	"github.com/kasumi-lint/kasumi/internal/source"
	"github.com/kasumi-lint/kasumi/internal/visit"
)

// Options is the flat parser configuration record.
type Options struct {
	// JSX accepts JSX element syntax as a primary expression.
	JSX bool
	// TypeScript accepts type annotations, interface, enum, as-casts,
	// non-null assertions and generic arrow functions.
	TypeScript bool
}

// Option configures optional parser facilities.
type Option func(*Parser)

// WithLogger attaches a trace logger. The parser logs recovery decisions and
// fatal errors at debug level; the default logger is a no-op.
func WithLogger(log *zap.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// Parser parses one source buffer. It is single-threaded and synchronous; a
// fresh parser (with a fresh arena) is needed per source.
type Parser struct {
	lexer    *lexer.Lexer
	reporter diag.Reporter
	options  Options
	arena    *ast.Arena
	log      *zap.Logger

	inAsyncFunction     bool
	inGeneratorFunction bool
}

// New creates a parser over src reporting into reporter.
func New(src *source.PaddedString, reporter diag.Reporter, options Options, opts ...Option) *Parser {
	p := &Parser{
		lexer:    lexer.New(src, reporter),
		reporter: reporter,
		options:  options,
		arena:    ast.NewArena(),
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// fatalParseError is the internal control signal raised when recovery cannot
// identify a resynchronization point. It is caught only at the module
// boundary; it is not a diagnostic.
type fatalParseError struct {
	span source.Span
	err  error
}

func (p *Parser) crash(span source.Span, msg string) {
	panic(&fatalParseError{span: span, err: pkgerrors.Errorf("parser cannot continue: %s at %v", msg, span)})
}

// ParseAndVisitModule parses an entire module, emits events into v, emits
// VisitEndOfModule exactly once, and consumes input through end-of-file.
// Fatal parse errors are caught here: a FatalParserError diagnostic is
// reported and the end-of-module event still fires.
func (p *Parser) ParseAndVisitModule(v visit.Visitor) {
	if fatal := p.catchFatal(func() { p.parseModuleStatements(v) }); fatal != nil {
		p.log.Debug("fatal parse error", zap.Error(fatal.err))
		p.report(diag.FatalParserError{Where: fatal.span})
	}
	v.VisitEndOfModule()
}

func (p *Parser) catchFatal(fn func()) (fatal *fatalParseError) {
	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(*fatalParseError)
			if !ok {
				panic(r)
			}
			fatal = fe
		}
	}()
	fn()
	return nil
}

func (p *Parser) parseModuleStatements(v visit.Visitor) {
	for p.peek().Type != lexer.TokenEOF {
		if !p.ParseAndVisitStatement(v) {
			// Stray token no statement can start with (e.g. an unmatched
			// '}' at the top level). Skip it so the module loop advances.
			p.report(diag.UnexpectedToken{Token: p.peek().Span()})
			p.skipToken()
		}
	}
}

// ParseAndVisitStatement parses a single statement or declaration. It
// returns false when the current token cannot begin a statement and was not
// consumed (end-of-file or an unmatched closing brace).
func (p *Parser) ParseAndVisitStatement(v visit.Visitor) bool {
	switch p.peek().Type {
	case lexer.TokenEOF, lexer.TokenRBrace:
		return false

	case lexer.TokenSemicolon:
		p.skipToken()

	case lexer.TokenExport:
		p.parseAndVisitExport(v)

	case lexer.TokenImport:
		p.parseAndVisitImport(v)

	case lexer.TokenConst, lexer.TokenVar:
		declToken := *p.peek()
		p.skipToken()
		p.parseAndVisitLetBindings(v, &declToken)

	case lexer.TokenLet:
		p.parseAndVisitLetStatement(v)

	case lexer.TokenAsync:
		p.parseAndVisitAsyncStatement(v)

	case lexer.TokenFunction:
		p.parseAndVisitFunctionDeclaration(v, lang.FunctionAttributesNormal, functionDeclarationOptions{})

	case lexer.TokenClass:
		p.parseAndVisitClassDeclaration(v, classDeclarationOptions{})

	case lexer.TokenInterface:
		if p.options.TypeScript {
			p.parseAndVisitInterface(v)
		} else {
			p.parseAndVisitExpressionStatement(v)
		}

	case lexer.TokenEnum:
		if p.options.TypeScript {
			p.parseAndVisitEnum(v)
		} else {
			p.report(diag.UnexpectedToken{Token: p.peek().Span()})
			p.skipToken()
		}

	case lexer.TokenIf:
		p.parseAndVisitIf(v)

	case lexer.TokenWhile:
		p.parseAndVisitWhile(v)

	case lexer.TokenDo:
		p.parseAndVisitDoWhile(v)

	case lexer.TokenFor:
		p.parseAndVisitFor(v)

	case lexer.TokenSwitch:
		p.parseAndVisitSwitch(v)

	case lexer.TokenTry:
		p.parseAndVisitTry(v)

	case lexer.TokenReturn, lexer.TokenThrow:
		keyword := *p.peek()
		p.skipToken()
		t := p.peek()
		if t.Type == lexer.TokenSemicolon || t.Type == lexer.TokenRBrace ||
			t.Type == lexer.TokenEOF || t.NewlineBefore && keyword.Type == lexer.TokenReturn {
			p.consumeSemicolon()
			break
		}
		p.parseAndVisitExpression(v, defaultPrecedence())
		p.consumeSemicolon()

	case lexer.TokenBreak, lexer.TokenContinue:
		p.skipToken()
		if t := p.peek(); t.IsIdentifierLike() && !t.NewlineBefore {
			p.skipToken() // label; not a variable reference
		}
		p.consumeSemicolon()

	case lexer.TokenDebugger:
		p.skipToken()
		p.consumeSemicolon()

	case lexer.TokenLBrace:
		v.VisitEnterBlockScope()
		p.parseAndVisitStatementBlockNoScope(v)
		v.VisitExitBlockScope()

	default:
		if p.isLabelledStatement() {
			p.skipToken() // label name; not a variable reference
			p.skipToken() // ':'
			p.ParseAndVisitStatement(v)
			break
		}
		if !p.peekCanBeginExpression() {
			p.report(diag.UnexpectedToken{Token: p.peek().Span()})
			p.log.Debug("skipping to statement boundary",
				zap.String("token", p.peek().Type.String()))
			p.skipToStatementBoundary()
			break
		}
		p.parseAndVisitExpressionStatement(v)
	}
	return true
}

func (p *Parser) parseAndVisitExpressionStatement(v visit.Visitor) {
	p.parseAndVisitExpression(v, defaultPrecedence())
	p.consumeSemicolon()
}

// isLabelledStatement reports whether the current token starts `name:`.
func (p *Parser) isLabelledStatement() bool {
	if !p.peek().IsIdentifierLike() {
		return false
	}
	snapshot := p.lexer.Snapshot()
	p.skipToken()
	isLabel := p.peek().Type == lexer.TokenColon
	p.lexer.RollBack(snapshot)
	return isLabel
}

// parseAndVisitAsyncStatement disambiguates `async function ...` from an
// expression statement beginning with the identifier async.
func (p *Parser) parseAndVisitAsyncStatement(v visit.Visitor) {
	snapshot := p.lexer.Snapshot()
	p.skipToken()
	if p.peek().Type == lexer.TokenFunction && !p.peek().NewlineBefore {
		p.parseAndVisitFunctionDeclaration(v, lang.FunctionAttributesAsync, functionDeclarationOptions{})
		return
	}
	p.lexer.RollBack(snapshot)
	p.parseAndVisitExpressionStatement(v)
}

// parseAndVisitLetStatement disambiguates a let declaration from an
// expression statement beginning with the identifier let (`let.prop`,
// `let(x)`, `let = y`).
func (p *Parser) parseAndVisitLetStatement(v visit.Visitor) {
	declToken := *p.peek()
	snapshot := p.lexer.Snapshot()
	p.skipToken()
	switch t := p.peek(); {
	case t.IsIdentifierLike(), t.Type == lexer.TokenLBrace, t.Type == lexer.TokenLBracket:
		p.lexer.RollBack(snapshot)
		p.skipToken()
		p.parseAndVisitLetBindings(v, &declToken)
	case t.Type == lexer.TokenDot, t.Type == lexer.TokenLParen, t.Type == lexer.TokenAssign:
		// `let` used as an old-style variable.
		p.lexer.RollBack(snapshot)
		p.parseAndVisitExpressionStatement(v)
	default:
		p.lexer.RollBack(snapshot)
		p.skipToken()
		p.parseAndVisitLetBindings(v, &declToken)
	}
}

// consumeSemicolon applies the ASI policy: an explicit ';', a newline before
// the next token, a '}' closing the enclosing block, or end-of-file all
// terminate the statement. Anything else reports a zero-width
// MissingSemicolonAfterStatement at the insertion point and continues.
func (p *Parser) consumeSemicolon() {
	switch t := p.peek(); t.Type {
	case lexer.TokenSemicolon:
		p.skipToken()
	case lexer.TokenRBrace, lexer.TokenEOF:
		// ASI.
	default:
		if !t.NewlineBefore {
			p.report(diag.MissingSemicolonAfterStatement{
				Where: source.EmptySpanAt(p.lexer.EndOfPreviousToken()),
			})
		}
	}
}

// parseAndVisitStatementBlockNoScope consumes '{', statements, and '}'. The
// caller is responsible for scope events.
func (p *Parser) parseAndVisitStatementBlockNoScope(v visit.Visitor) {
	p.expect(lexer.TokenLBrace)
	for {
		switch p.peek().Type {
		case lexer.TokenRBrace:
			p.skipToken()
			return
		case lexer.TokenEOF:
			p.report(diag.UnmatchedParenthesis{Where: source.EmptySpanAt(p.peek().Begin)})
			return
		}
		p.ParseAndVisitStatement(v)
	}
}

// ====== Control flow statements ======

func (p *Parser) parseAndVisitIf(v visit.Visitor) {
	p.skipToken() // 'if'
	p.expect(lexer.TokenLParen)
	p.parseAndVisitExpression(v, defaultPrecedence())
	p.expect(lexer.TokenRParen)
	p.ParseAndVisitStatement(v)
	if p.peek().Type == lexer.TokenElse {
		p.skipToken()
		p.ParseAndVisitStatement(v)
	}
}

func (p *Parser) parseAndVisitWhile(v visit.Visitor) {
	p.skipToken() // 'while'
	p.expect(lexer.TokenLParen)
	p.parseAndVisitExpression(v, defaultPrecedence())
	p.expect(lexer.TokenRParen)
	p.ParseAndVisitStatement(v)
}

func (p *Parser) parseAndVisitDoWhile(v visit.Visitor) {
	p.skipToken() // 'do'
	p.ParseAndVisitStatement(v)
	p.expect(lexer.TokenWhile)
	p.expect(lexer.TokenLParen)
	p.parseAndVisitExpression(v, defaultPrecedence())
	p.expect(lexer.TokenRParen)
	if p.peek().Type == lexer.TokenSemicolon {
		p.skipToken()
	}
}

func (p *Parser) parseAndVisitSwitch(v visit.Visitor) {
	p.skipToken() // 'switch'
	p.expect(lexer.TokenLParen)
	p.parseAndVisitExpression(v, defaultPrecedence())
	p.expect(lexer.TokenRParen)
	p.expect(lexer.TokenLBrace)
	v.VisitEnterBlockScope()
	for {
		switch p.peek().Type {
		case lexer.TokenCase:
			p.skipToken()
			p.parseAndVisitExpression(v, precedence{
				BinaryOperators: true, Commas: true, InOperator: true,
				ConditionalOperator: true, TrailingCurlyIsArrowBody: true,
			})
			p.expect(lexer.TokenColon)
		case lexer.TokenDefault:
			p.skipToken()
			p.expect(lexer.TokenColon)
		case lexer.TokenRBrace:
			p.skipToken()
			v.VisitExitBlockScope()
			return
		case lexer.TokenEOF:
			p.report(diag.UnmatchedParenthesis{Where: source.EmptySpanAt(p.peek().Begin)})
			v.VisitExitBlockScope()
			return
		default:
			p.ParseAndVisitStatement(v)
		}
	}
}

func (p *Parser) parseAndVisitTry(v visit.Visitor) {
	p.skipToken() // 'try'
	v.VisitEnterBlockScope()
	p.parseAndVisitStatementBlockNoScope(v)
	v.VisitExitBlockScope()

	if p.peek().Type == lexer.TokenCatch {
		p.skipToken()
		v.VisitEnterBlockScope()
		if p.peek().Type == lexer.TokenLParen {
			p.skipToken()
			p.parseAndVisitBindingElement(v, lang.VariableKindCatch, bindingOptions{})
			p.expect(lexer.TokenRParen)
		}
		p.parseAndVisitStatementBlockNoScope(v)
		v.VisitExitBlockScope()
	}
	if p.peek().Type == lexer.TokenFinally {
		p.skipToken()
		v.VisitEnterBlockScope()
		p.parseAndVisitStatementBlockNoScope(v)
		v.VisitExitBlockScope()
	}
}

func (p *Parser) parseAndVisitFor(v visit.Visitor) {
	p.skipToken() // 'for'
	p.expect(lexer.TokenLParen)

	enteredForScope := false
	var afterExpression *ast.Expression

	parseCStyleHeadRemainder := func() {
		if p.peek().Type != lexer.TokenSemicolon {
			p.parseAndVisitExpression(v, defaultPrecedence())
		}
		p.expect(lexer.TokenSemicolon)
		if p.peek().Type != lexer.TokenRParen {
			afterExpression = p.parseExpression(defaultPrecedence())
		}
	}

	headIsDeclaration := false
	switch p.peek().Type {
	case lexer.TokenConst, lexer.TokenVar:
		headIsDeclaration = true
	case lexer.TokenLet:
		// `let.prop` and `let(x)` are expressions; `let x`, `let [`,
		// `let {` and the `let in xs` quirk are handled as declarations.
		snapshot := p.lexer.Snapshot()
		p.skipToken()
		switch t := p.peek(); {
		case t.IsIdentifierLike(), t.Type == lexer.TokenLBrace,
			t.Type == lexer.TokenLBracket, t.Type == lexer.TokenIn:
			headIsDeclaration = true
		}
		p.lexer.RollBack(snapshot)
	}

	switch {
	case p.peek().Type == lexer.TokenSemicolon:
		p.skipToken()
		parseCStyleHeadRemainder()

	case headIsDeclaration:
		declToken := *p.peek()
		newScope := declToken.Type != lexer.TokenVar
		if newScope {
			v.VisitEnterForScope()
			enteredForScope = true
		}
		p.skipToken()

		if declToken.Type == lexer.TokenLet && p.peek().Type == lexer.TokenIn {
			// `for (let in xs)`: old-style variable named let.
			p.skipToken()
			rhs := p.parseExpression(defaultPrecedence())
			p.visitExpression(rhs, v, variableContextRHS)
			v.VisitVariableAssignment(declToken.Identifier())
			break
		}

		var lhs visit.Buffer
		p.parseAndVisitLetBindingsInto(&lhs, &declToken, bindingOptions{ForLoopHead: true})
		switch p.peek().Type {
		case lexer.TokenIn, lexer.TokenOf:
			p.skipToken()
			rhs := p.parseExpression(defaultPrecedence())
			p.visitExpression(rhs, v, variableContextRHS)
			lhs.MoveInto(v)
		default:
			lhs.MoveInto(v)
			p.expect(lexer.TokenSemicolon)
			parseCStyleHeadRemainder()
		}

	default:
		if p.peek().Type == lexer.TokenAsync {
			// `for (async of xs)` is not an assignment; async is excluded
			// from the contextual-keyword sweep here.
			asyncToken := *p.peek()
			snapshot := p.lexer.Snapshot()
			p.skipToken()
			if p.peek().Type == lexer.TokenOf {
				p.report(diag.CannotAssignToVariableNamedAsyncInForOfLoop{AsyncToken: asyncToken.Span()})
				p.skipToken()
				rhs := p.parseExpression(defaultPrecedence())
				p.visitExpression(rhs, v, variableContextRHS)
				break
			}
			p.lexer.RollBack(snapshot)
		}

		initExpression := p.parseExpression(precedence{
			BinaryOperators: true, Commas: true, InOperator: false,
			ConditionalOperator: true, TrailingCurlyIsArrowBody: true,
		})
		switch p.peek().Type {
		case lexer.TokenIn, lexer.TokenOf:
			p.skipToken()
			rhs := p.parseExpression(defaultPrecedence())
			p.visitAssignmentExpression(initExpression, rhs, v)
		default:
			p.visitExpression(initExpression, v, variableContextRHS)
			p.expect(lexer.TokenSemicolon)
			parseCStyleHeadRemainder()
		}
	}

	p.expect(lexer.TokenRParen)
	p.ParseAndVisitStatement(v)

	if afterExpression != nil {
		p.visitExpression(afterExpression, v, variableContextRHS)
	}
	if enteredForScope {
		v.VisitExitForScope()
	}
}

// ====== Helpers ======

func (p *Parser) peek() *lexer.Token {
	return p.lexer.Peek()
}

func (p *Parser) skipToken() {
	p.lexer.Skip()
}

func (p *Parser) report(d diag.Diag) {
	if p.reporter != nil {
		p.reporter.Report(d)
	}
}

// expect consumes a token of the given type, or reports a structural
// diagnostic and synthesizes it.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.peek().Type == tt {
		p.skipToken()
		return true
	}
	switch tt {
	case lexer.TokenRParen, lexer.TokenRBracket, lexer.TokenRBrace:
		p.report(diag.UnmatchedParenthesis{Where: source.EmptySpanAt(p.peek().Begin)})
	default:
		p.report(diag.UnexpectedToken{Token: p.peek().Span()})
	}
	return false
}

// skipToStatementBoundary advances past the offending token to the next
// ';', '}', statement-starting keyword, or end-of-file.
func (p *Parser) skipToStatementBoundary() {
	startPos := p.peek().Begin
	p.skipToken()
	for {
		switch p.peek().Type {
		case lexer.TokenEOF, lexer.TokenRBrace,
			lexer.TokenVar, lexer.TokenLet, lexer.TokenConst, lexer.TokenFunction,
			lexer.TokenClass, lexer.TokenIf, lexer.TokenWhile, lexer.TokenDo,
			lexer.TokenFor, lexer.TokenSwitch, lexer.TokenTry, lexer.TokenReturn,
			lexer.TokenThrow, lexer.TokenBreak, lexer.TokenContinue,
			lexer.TokenImport, lexer.TokenExport:
			return
		case lexer.TokenSemicolon:
			p.skipToken()
			return
		}
		if p.peek().Begin == startPos {
			// The lexer made no progress; nothing can resynchronize.
			p.crash(p.peek().Span(), "no resynchronization point")
		}
		p.skipToken()
	}
}

// peekCanBeginExpression reports whether the current token can start an
// expression.
func (p *Parser) peekCanBeginExpression() bool {
	t := p.peek()
	switch t.Type {
	case lexer.TokenIdentifier, lexer.TokenNumber, lexer.TokenBigInt, lexer.TokenString,
		lexer.TokenTemplateComplete, lexer.TokenTemplateHead,
		lexer.TokenLParen, lexer.TokenLBracket, lexer.TokenLBrace,
		lexer.TokenPlus, lexer.TokenMinus, lexer.TokenBang, lexer.TokenTilde,
		lexer.TokenPlusPlus, lexer.TokenMinusMinus,
		lexer.TokenSlash, lexer.TokenSlashAssign,
		lexer.TokenTypeof, lexer.TokenVoid, lexer.TokenDelete,
		lexer.TokenNew, lexer.TokenThis, lexer.TokenSuper,
		lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNull,
		lexer.TokenFunction, lexer.TokenClass,
		lexer.TokenDotDotDot:
		return true
	case lexer.TokenLt:
		return p.options.JSX || p.options.TypeScript
	}
	return t.IsIdentifierLike()
}

// ====== Function-attribute guards ======

// FunctionGuard restores the parser's async/generator context when the
// guarded region ends.
type FunctionGuard struct {
	parser       *Parser
	wasAsync     bool
	wasGenerator bool
}

// EnterFunction makes the parser behave as if subsequent code were inside a
// function with the given attributes. Used by tests and by lazily-entered
// scopes.
func (p *Parser) EnterFunction(attributes lang.FunctionAttributes) FunctionGuard {
	g := FunctionGuard{parser: p, wasAsync: p.inAsyncFunction, wasGenerator: p.inGeneratorFunction}
	p.inAsyncFunction = attributes.IsAsync()
	p.inGeneratorFunction = attributes.IsGenerator()
	return g
}

// Restore reverts the context captured by EnterFunction.
func (g FunctionGuard) Restore() {
	g.parser.inAsyncFunction = g.wasAsync
	g.parser.inGeneratorFunction = g.wasGenerator
}
