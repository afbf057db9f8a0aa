package parser

import (
	"github.com/kasumi-lint/kasumi/internal/ast"
	"github.com/kasumi-lint/kasumi/internal/diag"
	"github.com/kasumi-lint/kasumi/internal/lang"
	"github.com/kasumi-lint/kasumi/internal/lexer"
	"github.com/kasumi-lint/kasumi/internal/source"
	"github.com/kasumi-lint/kasumi/internal/visit"
)

// precedence configures which operators the expression parser accepts in
// the current grammatical context.
type precedence struct {
	// BinaryOperators allows binary operators (false inside some JSX
	// contexts).
	BinaryOperators bool
	// Commas allows the comma operator (false in function arguments and
	// initializers).
	Commas bool
	// InOperator allows `in` (false in a for head before the in/of
	// disambiguation).
	InOperator bool
	// ConditionalOperator allows `?:`.
	ConditionalOperator bool
	// TrailingCurlyIsArrowBody hints that a '{' after '=>' opens a
	// statement body (false inside JSX expression containers).
	TrailingCurlyIsArrowBody bool
}

func defaultPrecedence() precedence {
	return precedence{
		BinaryOperators:          true,
		Commas:                   true,
		InOperator:               true,
		ConditionalOperator:      true,
		TrailingCurlyIsArrowBody: true,
	}
}

func (prec precedence) withoutCommas() precedence {
	prec.Commas = false
	return prec
}

// binaryPrecedence maps binary operator tokens to binding levels.
var binaryPrecedence = map[lexer.TokenType]int{
	lexer.TokenNullish: 4,
	lexer.TokenOrOr:    5,
	lexer.TokenAndAnd:  6,
	lexer.TokenPipe:    7,
	lexer.TokenCaret:   8,
	lexer.TokenAmp:     9,

	lexer.TokenEq:       10,
	lexer.TokenNe:       10,
	lexer.TokenStrictEq: 10,
	lexer.TokenStrictNe: 10,

	lexer.TokenLt:         11,
	lexer.TokenGt:         11,
	lexer.TokenLe:         11,
	lexer.TokenGe:         11,
	lexer.TokenIn:         11,
	lexer.TokenInstanceof: 11,

	lexer.TokenShl:  12,
	lexer.TokenShr:  12,
	lexer.TokenUShr: 12,

	lexer.TokenPlus:  13,
	lexer.TokenMinus: 13,

	lexer.TokenStar:    14,
	lexer.TokenSlash:   14,
	lexer.TokenPercent: 14,

	lexer.TokenStarStar: 15,
}

// isCompoundAssignment reports whether tt is a compound (updating)
// assignment operator.
func isCompoundAssignment(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TokenPlusAssign, lexer.TokenMinusAssign, lexer.TokenStarAssign,
		lexer.TokenSlashAssign, lexer.TokenPercentAssign, lexer.TokenStarStarAssign,
		lexer.TokenShlAssign, lexer.TokenShrAssign, lexer.TokenUShrAssign,
		lexer.TokenAmpAssign, lexer.TokenPipeAssign, lexer.TokenCaretAssign,
		lexer.TokenAndAndAssign, lexer.TokenOrOrAssign, lexer.TokenNullishAssign:
		return true
	}
	return false
}

// parseAndVisitExpression parses one expression and visits it in rvalue
// context.
func (p *Parser) parseAndVisitExpression(v visit.Visitor, prec precedence) {
	expr := p.parseExpression(prec)
	p.visitExpression(expr, v, variableContextRHS)
}

// ParseExpression parses an expression in the default precedence. Primarily
// for testing; the resulting tree lives until the parser's arena is reset.
func (p *Parser) ParseExpression() *ast.Expression {
	return p.parseExpression(defaultPrecedence())
}

// parseExpression is the entry of the two-phase Pratt parser: a primary
// (with its postfix chain) followed by the operator remainder.
func (p *Parser) parseExpression(prec precedence) *ast.Expression {
	left := p.parseUnary(prec)
	return p.parseExpressionRemainder(left, prec)
}

func (p *Parser) newNode(kind ast.ExpressionKind, begin int) *ast.Expression {
	node := p.arena.NewExpression(kind)
	node.Span = source.NewSpan(begin, p.lexer.EndOfPreviousToken())
	return node
}

func (p *Parser) finishNode(node *ast.Expression, begin int) *ast.Expression {
	node.Span = source.NewSpan(begin, p.lexer.EndOfPreviousToken())
	return node
}

// ====== Operator remainder ======

func (p *Parser) parseExpressionRemainder(left *ast.Expression, prec precedence) *ast.Expression {
	for {
		switch t := p.peek(); {
		case binaryPrecedence[t.Type] != 0 && prec.BinaryOperators &&
			!(t.Type == lexer.TokenIn && !prec.InOperator):
			left = p.parseBinaryTail(left, prec, 4)

		case t.Type == lexer.TokenQuestion && prec.ConditionalOperator:
			left = p.parseConditional(left, prec)

		case t.Type == lexer.TokenAssign || isCompoundAssignment(t.Type):
			kind := ast.KindAssignment
			if t.Type != lexer.TokenAssign {
				kind = ast.KindUpdatingAssignment
			}
			p.skipToken()
			rhs := p.parseExpression(prec.withoutCommas())
			node := p.arena.NewExpression(kind)
			node.Children = []*ast.Expression{left, rhs}
			left = p.finishNode(node, left.Span.Begin)

		case t.Type == lexer.TokenArrow && !t.NewlineBefore:
			if left.Kind == ast.KindVariable {
				left = p.parseArrowFunctionRemainder([]*ast.Expression{left},
					lang.FunctionAttributesNormal, nil, nil, left.Span.Begin, prec)
				continue
			}
			p.report(diag.UnexpectedToken{Token: t.Span()})
			p.skipToken()

		case t.Type == lexer.TokenAs && p.options.TypeScript:
			// `expr as Type`: the type names are uses, deferred until the
			// expression itself is visited.
			p.skipToken()
			buf := &visit.Buffer{}
			p.parseAndVisitTypeExpression(buf)
			if left.TypeVisits == nil {
				left.TypeVisits = buf
			} else {
				buf.MoveInto(left.TypeVisits)
			}

		case t.Type == lexer.TokenComma && prec.Commas:
			p.skipToken()
			rhs := p.parseExpression(prec.withoutCommas())
			node := p.arena.NewExpression(ast.KindBinaryOperator)
			node.Children = []*ast.Expression{left, rhs}
			left = p.finishNode(node, left.Span.Begin)

		default:
			return left
		}
	}
}

// parseBinaryTail runs precedence climbing over a run of binary operators.
func (p *Parser) parseBinaryTail(left *ast.Expression, prec precedence, minPrec int) *ast.Expression {
	for {
		t := p.peek()
		opPrec := binaryPrecedence[t.Type]
		if opPrec == 0 || opPrec < minPrec {
			return left
		}
		if t.Type == lexer.TokenIn && !prec.InOperator {
			return left
		}
		opSpan := t.Span()
		p.skipToken()
		right := p.parseUnary(prec)
		if right.Kind == ast.KindInvalid {
			p.report(diag.MissingOperandForOperator{Where: opSpan})
		}
		for {
			nt := p.peek()
			nextPrec := binaryPrecedence[nt.Type]
			if nextPrec == 0 || nt.Type == lexer.TokenIn && !prec.InOperator {
				break
			}
			// ** is right-associative; everything else is left-associative.
			if nextPrec > opPrec || nextPrec == opPrec && nt.Type == lexer.TokenStarStar {
				right = p.parseBinaryTail(right, prec, nextPrec)
			} else {
				break
			}
		}
		node := p.arena.NewExpression(ast.KindBinaryOperator)
		node.Children = []*ast.Expression{left, right}
		left = p.finishNode(node, left.Span.Begin)
	}
}

func (p *Parser) parseConditional(left *ast.Expression, prec precedence) *ast.Expression {
	p.skipToken() // '?'
	thenBranch := p.parseExpression(prec.withoutCommas())
	var elseBranch *ast.Expression
	if p.expect(lexer.TokenColon) {
		elseBranch = p.parseExpression(prec.withoutCommas())
	} else {
		elseBranch = p.arena.NewExpression(ast.KindInvalid)
		elseBranch.Span = source.EmptySpanAt(p.peek().Begin)
	}
	node := p.arena.NewExpression(ast.KindConditional)
	node.Children = []*ast.Expression{left, thenBranch, elseBranch}
	return p.finishNode(node, left.Span.Begin)
}

// ====== Unary and primary ======

func (p *Parser) parseUnary(prec precedence) *ast.Expression {
	t := p.peek()
	begin := t.Begin
	switch t.Type {
	case lexer.TokenMinus, lexer.TokenPlus, lexer.TokenBang, lexer.TokenTilde,
		lexer.TokenTypeof, lexer.TokenVoid, lexer.TokenDelete:
		p.skipToken()
		operand := p.parseUnary(prec)
		node := p.arena.NewExpression(ast.KindUnaryOperator)
		node.Children = []*ast.Expression{operand}
		return p.finishNode(node, begin)

	case lexer.TokenPlusPlus, lexer.TokenMinusMinus:
		p.skipToken()
		operand := p.parseUnary(prec)
		node := p.arena.NewExpression(ast.KindRWUnaryPrefix)
		node.Children = []*ast.Expression{operand}
		return p.finishNode(node, begin)

	case lexer.TokenDotDotDot:
		p.skipToken()
		operand := p.parseExpression(prec.withoutCommas())
		node := p.arena.NewExpression(ast.KindSpread)
		node.Children = []*ast.Expression{operand}
		return p.finishNode(node, begin)
	}

	left := p.parsePrimary(prec)
	return p.parsePostfixRemainder(left, prec, true)
}

func (p *Parser) parsePrimary(prec precedence) *ast.Expression {
	t := p.peek()
	begin := t.Begin

	switch {
	case t.Type == lexer.TokenNumber, t.Type == lexer.TokenBigInt,
		t.Type == lexer.TokenString, t.Type == lexer.TokenTrue,
		t.Type == lexer.TokenFalse, t.Type == lexer.TokenNull:
		node := p.arena.NewExpression(ast.KindLiteral)
		node.Name = t.Identifier()
		p.skipToken()
		return p.finishNode(node, begin)

	case t.Type == lexer.TokenSlash, t.Type == lexer.TokenSlashAssign:
		// '/' at expression position is a regexp, not division.
		p.lexer.ReparseAsRegExp()
		node := p.arena.NewExpression(ast.KindLiteral)
		node.Name = p.peek().Identifier()
		p.skipToken()
		return p.finishNode(node, begin)

	case t.Type == lexer.TokenThis:
		p.skipToken()
		return p.newNode(ast.KindThis, begin)

	case t.Type == lexer.TokenSuper:
		p.skipToken()
		return p.newNode(ast.KindSuper, begin)

	case t.Type == lexer.TokenAwait && p.inAsyncFunction:
		p.skipToken()
		operand := p.parseUnary(prec)
		node := p.arena.NewExpression(ast.KindAwait)
		node.Children = []*ast.Expression{operand}
		return p.finishNode(node, begin)

	case t.Type == lexer.TokenYield && p.inGeneratorFunction:
		p.skipToken()
		if p.peek().Type == lexer.TokenStar {
			p.skipToken()
		}
		node := p.arena.NewExpression(ast.KindYield)
		if !p.peek().NewlineBefore && p.peekCanBeginExpression() {
			operand := p.parseExpression(prec.withoutCommas())
			node.Children = []*ast.Expression{operand}
		}
		return p.finishNode(node, begin)

	case t.Type == lexer.TokenAsync:
		return p.parseAsyncExpression(prec)

	case t.IsIdentifierLike():
		node := p.arena.NewExpression(ast.KindVariable)
		node.Name = t.Identifier()
		p.skipToken()
		return p.finishNode(node, begin)

	case t.Type == lexer.TokenTemplateComplete:
		node := p.arena.NewExpression(ast.KindTemplate)
		p.skipToken()
		return p.finishNode(node, begin)

	case t.Type == lexer.TokenTemplateHead:
		return p.parseTemplate(nil)

	case t.Type == lexer.TokenLParen:
		return p.parseParenthesizedOrArrow(nil, prec)

	case t.Type == lexer.TokenLBracket:
		return p.parseArrayLiteral(prec)

	case t.Type == lexer.TokenLBrace:
		return p.parseObjectLiteral(prec)

	case t.Type == lexer.TokenFunction:
		return p.parseFunctionExpression(lang.FunctionAttributesNormal)

	case t.Type == lexer.TokenClass:
		return p.parseClassExpression()

	case t.Type == lexer.TokenNew:
		return p.parseNewExpression(prec)

	case t.Type == lexer.TokenLt && p.options.JSX:
		return p.parseJSXElement()

	case t.Type == lexer.TokenLt && p.options.TypeScript:
		return p.parseGenericArrowFunction(lang.FunctionAttributesNormal, prec)
	}

	p.report(diag.MissingOperandForOperator{Where: source.EmptySpanAt(t.Begin)})
	node := p.arena.NewExpression(ast.KindInvalid)
	node.Span = source.EmptySpanAt(t.Begin)
	return node
}

// parseNewExpression parses `new Callee(args)` and `new.target`.
func (p *Parser) parseNewExpression(prec precedence) *ast.Expression {
	begin := p.peek().Begin
	p.skipToken() // 'new'

	if p.peek().Type == lexer.TokenDot {
		// new.target
		p.skipToken()
		if p.peek().IsIdentifierLike() {
			p.skipToken()
		}
		return p.newNode(ast.KindNew, begin)
	}

	callee := p.parsePrimary(prec)
	callee = p.parsePostfixRemainder(callee, prec, false)
	node := p.arena.NewExpression(ast.KindNew)
	node.Children = []*ast.Expression{callee}
	if p.peek().Type == lexer.TokenLParen {
		node.Children = append(node.Children, p.parseCallArguments()...)
	}
	return p.finishNode(node, begin)
}

// parseAsyncExpression disambiguates the many meanings of async at
// expression position: async function, async arrow (with or without
// parentheses), or a plain variable named async.
func (p *Parser) parseAsyncExpression(prec precedence) *ast.Expression {
	asyncToken := *p.peek()
	snapshot := p.lexer.Snapshot()
	p.skipToken()

	switch t := p.peek(); {
	case t.Type == lexer.TokenFunction && !t.NewlineBefore:
		return p.parseFunctionExpression(lang.FunctionAttributesAsync)

	case t.Type == lexer.TokenLParen && !t.NewlineBefore:
		return p.parseParenthesizedOrArrow(&asyncToken, prec)

	case t.Type == lexer.TokenLt && p.options.TypeScript && !t.NewlineBefore:
		return p.parseGenericArrowFunction(lang.FunctionAttributesAsync, prec)

	case t.IsIdentifierLike() && !t.NewlineBefore:
		// `async param => ...`, possibly with an (illegal) unparenthesized
		// type annotation.
		param := p.arena.NewExpression(ast.KindVariable)
		param.Name = t.Identifier()
		param.Span = t.Span()
		p.skipToken()
		if p.peek().Type == lexer.TokenColon && p.options.TypeScript {
			colonSpan := p.peek().Span()
			p.skipToken()
			buf := &visit.Buffer{}
			p.parseAndVisitTypeExpression(buf)
			param.TypeVisits = buf
			if p.peek().Type == lexer.TokenArrow {
				p.report(diag.ArrowParameterWithTypeAnnotationRequiresParentheses{
					ParameterAndAnnotation: source.NewSpan(param.Span.Begin, p.lexer.EndOfPreviousToken()),
					TypeColon:              colonSpan,
				})
				return p.parseArrowFunctionRemainder([]*ast.Expression{param},
					lang.FunctionAttributesAsync, nil, nil, asyncToken.Begin, prec)
			}
			p.lexer.RollBack(snapshot)
		} else if p.peek().Type == lexer.TokenArrow {
			return p.parseArrowFunctionRemainder([]*ast.Expression{param},
				lang.FunctionAttributesAsync, nil, nil, asyncToken.Begin, prec)
		} else {
			p.lexer.RollBack(snapshot)
		}
	default:
		p.lexer.RollBack(snapshot)
	}

	node := p.arena.NewExpression(ast.KindVariable)
	node.Name = p.peek().Identifier()
	p.skipToken()
	return p.finishNode(node, node.Name.Span.Begin)
}

// ====== Postfix chain ======

func (p *Parser) parsePostfixRemainder(left *ast.Expression, prec precedence, allowCalls bool) *ast.Expression {
	for {
		switch t := p.peek(); {
		case t.Type == lexer.TokenLParen && allowCalls:
			args := p.parseCallArguments()
			node := p.arena.NewExpression(ast.KindCall)
			node.Children = append([]*ast.Expression{left}, args...)
			left = p.finishNode(node, left.Span.Begin)

		case t.Type == lexer.TokenDot, t.Type == lexer.TokenQuestionDot:
			optional := t.Type == lexer.TokenQuestionDot
			p.skipToken()
			switch m := p.peek(); {
			case m.Type == lexer.TokenLParen && optional:
				// `x?.(args)`
				args := p.parseCallArguments()
				node := p.arena.NewExpression(ast.KindCall)
				node.Children = append([]*ast.Expression{left}, args...)
				left = p.finishNode(node, left.Span.Begin)
			case m.Type == lexer.TokenLBracket && optional:
				p.skipToken()
				subscript := p.parseExpression(defaultPrecedence())
				p.expect(lexer.TokenRBracket)
				node := p.arena.NewExpression(ast.KindIndex)
				node.Children = []*ast.Expression{left, subscript}
				left = p.finishNode(node, left.Span.Begin)
			case m.IsIdentifierLike() || m.IsKeyword():
				node := p.arena.NewExpression(ast.KindDot)
				node.Children = []*ast.Expression{left}
				node.Name = m.Identifier()
				p.skipToken()
				left = p.finishNode(node, left.Span.Begin)
			default:
				p.report(diag.UnexpectedToken{Token: m.Span()})
				return left
			}

		case t.Type == lexer.TokenLBracket:
			p.skipToken()
			subscript := p.parseExpression(defaultPrecedence())
			p.expect(lexer.TokenRBracket)
			node := p.arena.NewExpression(ast.KindIndex)
			node.Children = []*ast.Expression{left, subscript}
			left = p.finishNode(node, left.Span.Begin)

		case t.Type == lexer.TokenTemplateComplete, t.Type == lexer.TokenTemplateHead:
			left = p.parseTemplate(left)

		case (t.Type == lexer.TokenPlusPlus || t.Type == lexer.TokenMinusMinus) && !t.NewlineBefore:
			p.skipToken()
			node := p.arena.NewExpression(ast.KindRWUnarySuffix)
			node.Children = []*ast.Expression{left}
			left = p.finishNode(node, left.Span.Begin)

		case t.Type == lexer.TokenBang && p.options.TypeScript && !t.NewlineBefore:
			// Non-null assertion. Remembered on the node so parameter
			// lists can diagnose it.
			left.NonNull = true
			left.NonNullSpan = t.Span()
			p.skipToken()

		default:
			return left
		}
	}
}

func (p *Parser) parseCallArguments() []*ast.Expression {
	p.skipToken() // '('
	var args []*ast.Expression
	for {
		switch t := p.peek(); t.Type {
		case lexer.TokenRParen:
			p.skipToken()
			return args
		case lexer.TokenEOF:
			p.report(diag.UnmatchedParenthesis{Where: source.EmptySpanAt(t.Begin)})
			return args
		case lexer.TokenComma:
			p.skipToken()
		default:
			beginPos := t.Begin
			args = append(args, p.parseExpression(defaultPrecedence().withoutCommas()))
			if p.peek().Begin == beginPos {
				// The operand was invalid and consumed nothing.
				p.skipToken()
			}
		}
	}
}

// ====== Templates ======

// parseTemplate parses a template literal (current token is the head or a
// complete template). tag is the tag expression for tagged templates.
func (p *Parser) parseTemplate(tag *ast.Expression) *ast.Expression {
	kind := ast.KindTemplate
	begin := p.peek().Begin
	var children []*ast.Expression
	if tag != nil {
		kind = ast.KindTaggedTemplate
		begin = tag.Span.Begin
		children = append(children, tag)
	}

	if p.peek().Type == lexer.TokenTemplateComplete {
		p.skipToken()
		node := p.arena.NewExpression(kind)
		node.Children = children
		return p.finishNode(node, begin)
	}

	p.skipToken() // template head
	for {
		children = append(children, p.parseExpression(defaultPrecedence()))
		if p.peek().Type != lexer.TokenRBrace {
			p.report(diag.UnmatchedParenthesis{Where: source.EmptySpanAt(p.peek().Begin)})
			break
		}
		// Resume template scanning after the substitution's '}'.
		p.lexer.SkipInTemplate()
		if p.peek().Type == lexer.TokenTemplateTail {
			p.skipToken()
			break
		}
		p.skipToken() // template middle
	}
	node := p.arena.NewExpression(kind)
	node.Children = children
	return p.finishNode(node, begin)
}

// ====== Array and object literals ======

func (p *Parser) parseArrayLiteral(prec precedence) *ast.Expression {
	begin := p.peek().Begin
	p.skipToken() // '['
	var children []*ast.Expression
	for {
		switch t := p.peek(); t.Type {
		case lexer.TokenRBracket:
			p.skipToken()
			node := p.arena.NewExpression(ast.KindArray)
			node.Children = children
			return p.finishNode(node, begin)
		case lexer.TokenEOF:
			p.report(diag.UnmatchedParenthesis{Where: source.EmptySpanAt(t.Begin)})
			node := p.arena.NewExpression(ast.KindArray)
			node.Children = children
			return p.finishNode(node, begin)
		case lexer.TokenComma:
			p.skipToken() // elision
		default:
			beginPos := t.Begin
			children = append(children, p.parseExpression(defaultPrecedence().withoutCommas()))
			if p.peek().Begin == beginPos {
				p.skipToken()
			}
		}
	}
}

func (p *Parser) parseObjectLiteral(prec precedence) *ast.Expression {
	begin := p.peek().Begin
	p.skipToken() // '{'
	var entries []ast.ObjectEntry

	finish := func() *ast.Expression {
		node := p.arena.NewExpression(ast.KindObject)
		node.Entries = entries
		return p.finishNode(node, begin)
	}

	for {
		switch t := p.peek(); {
		case t.Type == lexer.TokenRBrace:
			p.skipToken()
			return finish()
		case t.Type == lexer.TokenEOF:
			p.report(diag.UnmatchedParenthesis{Where: source.EmptySpanAt(t.Begin)})
			return finish()
		case t.Type == lexer.TokenComma:
			p.skipToken()
		case t.Type == lexer.TokenDotDotDot:
			spreadBegin := t.Begin
			p.skipToken()
			operand := p.parseExpression(defaultPrecedence().withoutCommas())
			node := p.arena.NewExpression(ast.KindSpread)
			node.Children = []*ast.Expression{operand}
			p.finishNode(node, spreadBegin)
			entries = append(entries, ast.ObjectEntry{Value: node})
		case t.Type == lexer.TokenStar:
			// Generator method: `*name() {}`
			p.skipToken()
			entries = append(entries, p.parseObjectMethodEntry(lang.FunctionAttributesGenerator))
		case t.Type == lexer.TokenLBracket:
			// Computed key.
			p.skipToken()
			key := p.parseExpression(defaultPrecedence())
			p.expect(lexer.TokenRBracket)
			entry := ast.ObjectEntry{Property: key}
			switch p.peek().Type {
			case lexer.TokenColon:
				p.skipToken()
				entry.Value = p.parseExpression(defaultPrecedence().withoutCommas())
			case lexer.TokenLParen:
				entry.Value = p.parseMethodFunction(lang.FunctionAttributesNormal, key.Span.Begin)
			default:
				p.report(diag.MissingValueForObjectLiteralEntry{Key: key.Span})
			}
			entries = append(entries, entry)
		case t.Type == lexer.TokenString, t.Type == lexer.TokenNumber, t.Type == lexer.TokenBigInt:
			keyTok := *t
			p.skipToken()
			switch p.peek().Type {
			case lexer.TokenColon:
				p.skipToken()
				entries = append(entries, ast.ObjectEntry{
					Value: p.parseExpression(defaultPrecedence().withoutCommas()),
				})
			case lexer.TokenLParen:
				entries = append(entries, ast.ObjectEntry{
					Value: p.parseMethodFunction(lang.FunctionAttributesNormal, keyTok.Begin),
				})
			default:
				if keyTok.Type == lexer.TokenString {
					p.report(diag.MissingValueForObjectLiteralEntry{Key: keyTok.Span()})
				} else {
					p.report(diag.InvalidLoneLiteralInObjectLiteral{Where: keyTok.Span()})
				}
			}
		case t.IsIdentifierLike() || t.IsKeyword():
			entries = append(entries, p.parseObjectNamedEntry(prec))
		default:
			p.report(diag.UnexpectedToken{Token: t.Span()})
			p.skipToken()
		}
	}
}

// parseObjectNamedEntry parses an entry introduced by an identifier or
// keyword: shorthand, key-value, method, or get/set/async-modified method.
func (p *Parser) parseObjectNamedEntry(prec precedence) ast.ObjectEntry {
	keyTok := *p.peek()
	p.skipToken()

	switch p.peek().Type {
	case lexer.TokenColon:
		p.skipToken()
		return ast.ObjectEntry{Value: p.parseExpression(defaultPrecedence().withoutCommas())}

	case lexer.TokenLParen:
		return ast.ObjectEntry{Value: p.parseMethodFunction(lang.FunctionAttributesNormal, keyTok.Begin)}

	case lexer.TokenAssign:
		// `{key = value}`: only meaningful as a destructuring target.
		lhs := p.arena.NewExpression(ast.KindVariable)
		lhs.Name = keyTok.Identifier()
		lhs.Span = keyTok.Span()
		p.skipToken()
		rhs := p.parseExpression(defaultPrecedence().withoutCommas())
		node := p.arena.NewExpression(ast.KindAssignment)
		node.Children = []*ast.Expression{lhs, rhs}
		p.finishNode(node, keyTok.Begin)
		return ast.ObjectEntry{Value: node}
	}

	// get/set/async modifiers followed by another member name.
	if keyTok.Type == lexer.TokenGet || keyTok.Type == lexer.TokenSet || keyTok.Type == lexer.TokenAsync {
		attrs := lang.FunctionAttributesNormal
		if keyTok.Type == lexer.TokenAsync {
			attrs = lang.FunctionAttributesAsync
			if p.peek().Type == lexer.TokenStar {
				p.skipToken()
				attrs = lang.FunctionAttributesAsyncGenerator
			}
		}
		if nt := p.peek(); nt.IsIdentifierLike() || nt.IsKeyword() ||
			nt.Type == lexer.TokenString || nt.Type == lexer.TokenNumber ||
			nt.Type == lexer.TokenLBracket {
			return p.parseObjectMethodEntry(attrs)
		}
	}

	if !keyTok.IsIdentifierLike() {
		p.report(diag.MissingValueForObjectLiteralEntry{Key: keyTok.Span()})
		return ast.ObjectEntry{}
	}

	// Shorthand `{name}`: the name is a use.
	value := p.arena.NewExpression(ast.KindVariable)
	value.Name = keyTok.Identifier()
	value.Span = keyTok.Span()
	return ast.ObjectEntry{Value: value}
}

// parseObjectMethodEntry parses `name(params) {}` where the current token
// is the member name (possibly computed).
func (p *Parser) parseObjectMethodEntry(attrs lang.FunctionAttributes) ast.ObjectEntry {
	var entry ast.ObjectEntry
	begin := p.peek().Begin
	if p.peek().Type == lexer.TokenLBracket {
		p.skipToken()
		entry.Property = p.parseExpression(defaultPrecedence())
		p.expect(lexer.TokenRBracket)
	} else {
		p.skipToken() // member name, not a variable reference
	}
	entry.Value = p.parseMethodFunction(attrs, begin)
	return entry
}

// parseMethodFunction parses a parameter list and body (no `function`
// keyword) into a buffered function node.
func (p *Parser) parseMethodFunction(attrs lang.FunctionAttributes, begin int) *ast.Expression {
	body := &visit.Buffer{}
	guard := p.EnterFunction(attrs)
	p.parseAndVisitFunctionParametersAndBodyNoScope(body)
	guard.Restore()

	node := p.arena.NewExpression(ast.KindFunction)
	node.Attributes = attrs
	node.BodyVisits = body
	return p.finishNode(node, begin)
}

// ====== Parenthesized expressions and arrow functions ======

// parseParenthesizedOrArrow parses `( ... )` at expression position. If the
// closing parenthesis is followed by `=>` (possibly with a TypeScript return
// annotation in between), the contents are re-interpreted as an
// arrow-function parameter list. asyncToken is non-nil when the parenthesis
// followed the contextual keyword async.
func (p *Parser) parseParenthesizedOrArrow(asyncToken *lexer.Token, prec precedence) *ast.Expression {
	begin := p.peek().Begin
	if asyncToken != nil {
		begin = asyncToken.Begin
	}
	p.skipToken() // '('

	var items []*ast.Expression

	for p.peek().Type != lexer.TokenRParen && p.peek().Type != lexer.TokenEOF {
		if p.peek().Type == lexer.TokenDotDotDot {
			spreadBegin := p.peek().Begin
			p.skipToken()
			operand := p.parseExpression(defaultPrecedence().withoutCommas())
			node := p.arena.NewExpression(ast.KindSpread)
			node.Children = []*ast.Expression{operand}
			items = append(items, p.finishNode(node, spreadBegin))
		} else {
			beginPos := p.peek().Begin
			item := p.parseExpression(defaultPrecedence().withoutCommas())
			item = p.parseParenItemAnnotation(item, attrsForAsync(asyncToken), prec)
			items = append(items, item)
			if p.peek().Begin == beginPos {
				p.skipToken()
			}
		}
		if p.peek().Type != lexer.TokenComma {
			break
		}
		p.skipToken()
	}
	p.expect(lexer.TokenRParen)

	// A TypeScript return annotation between ')' and '=>'.
	var returnTypeVisits *visit.Buffer
	if p.peek().Type == lexer.TokenColon && p.options.TypeScript {
		snapshot := p.lexer.Snapshot()
		p.skipToken()
		buf := &visit.Buffer{}
		p.parseAndVisitTypeExpression(buf)
		if p.peek().Type == lexer.TokenArrow {
			returnTypeVisits = buf
		} else {
			// Not an arrow after all; the colon belongs to the caller
			// (e.g. a conditional expression).
			p.lexer.RollBack(snapshot)
		}
	}

	if p.peek().Type == lexer.TokenArrow && !p.peek().NewlineBefore {
		return p.parseArrowFunctionRemainder(items, attrsForAsync(asyncToken), nil, returnTypeVisits, begin, prec)
	}

	if asyncToken != nil {
		// `async(...)` was a call to a function named async.
		callee := p.arena.NewExpression(ast.KindVariable)
		callee.Name = asyncToken.Identifier()
		callee.Span = asyncToken.Span()
		node := p.arena.NewExpression(ast.KindCall)
		node.Children = append([]*ast.Expression{callee}, items...)
		return p.finishNode(node, begin)
	}

	if len(items) == 0 {
		p.report(diag.MissingOperandForOperator{Where: source.EmptySpanAt(begin)})
		node := p.arena.NewExpression(ast.KindInvalid)
		node.Span = source.EmptySpanAt(begin)
		return node
	}

	expr := items[0]
	for _, item := range items[1:] {
		node := p.arena.NewExpression(ast.KindBinaryOperator)
		node.Children = []*ast.Expression{expr, item}
		expr = p.finishNode(node, begin)
	}
	return expr
}

func attrsForAsync(asyncToken *lexer.Token) lang.FunctionAttributes {
	if asyncToken != nil {
		return lang.FunctionAttributesAsync
	}
	return lang.FunctionAttributesNormal
}

// parseParenItemAnnotation handles a TypeScript annotation after one item
// of a parenthesized list: `(p: T)`, `({x}: T = init)`, and the
// missing-parentheses form `(p: T => body)`.
func (p *Parser) parseParenItemAnnotation(item *ast.Expression, attrs lang.FunctionAttributes, prec precedence) *ast.Expression {
	if p.peek().Type != lexer.TokenColon || !p.options.TypeScript {
		return item
	}
	switch item.Kind {
	case ast.KindVariable, ast.KindObject, ast.KindArray:
	default:
		return item
	}
	colonSpan := p.peek().Span()
	p.skipToken()
	buf := &visit.Buffer{}
	p.parseAndVisitTypeExpression(buf)

	switch p.peek().Type {
	case lexer.TokenArrow:
		// `(param: Type => body)`: the annotated parameter itself needed
		// parentheses.
		item.TypeVisits = buf
		p.report(diag.ArrowParameterWithTypeAnnotationRequiresParentheses{
			ParameterAndAnnotation: source.NewSpan(item.Span.Begin, p.lexer.EndOfPreviousToken()),
			TypeColon:              colonSpan,
		})
		return p.parseArrowFunctionRemainder([]*ast.Expression{item}, attrs, nil, nil, item.Span.Begin, prec)
	case lexer.TokenAssign:
		p.skipToken()
		rhs := p.parseExpression(defaultPrecedence().withoutCommas())
		node := p.arena.NewExpression(ast.KindAssignment)
		node.Children = []*ast.Expression{item, rhs}
		node.TypeVisits = buf
		return p.finishNode(node, item.Span.Begin)
	default:
		item.TypeVisits = buf
		return item
	}
}

// parseArrowFunctionRemainder consumes '=>' and the body. params are the
// already-parsed parameter expressions; typeParams are generic parameters;
// returnTypeVisits carries buffered return-annotation type uses.
func (p *Parser) parseArrowFunctionRemainder(params []*ast.Expression, attrs lang.FunctionAttributes,
	typeParams []lang.Identifier, returnTypeVisits *visit.Buffer, begin int, prec precedence) *ast.Expression {

	p.expect(lexer.TokenArrow)

	for _, param := range params {
		if param.NonNull {
			p.report(diag.NonNullAssertionNotAllowedInParameter{Bang: param.NonNullSpan})
		}
	}

	var node *ast.Expression
	if p.peek().Type == lexer.TokenLBrace && prec.TrailingCurlyIsArrowBody {
		body := &visit.Buffer{}
		body.VisitEnterFunctionScopeBody()
		guard := p.EnterFunction(attrs)
		p.parseAndVisitStatementBlockNoScope(body)
		guard.Restore()
		node = p.arena.NewExpression(ast.KindArrowFunctionWithStatements)
		node.Children = params
		node.BodyVisits = body
	} else {
		guard := p.EnterFunction(attrs)
		bodyExpr := p.parseExpression(precedence{
			BinaryOperators:          true,
			Commas:                   false,
			InOperator:               true,
			ConditionalOperator:      true,
			TrailingCurlyIsArrowBody: prec.TrailingCurlyIsArrowBody,
		})
		guard.Restore()
		node = p.arena.NewExpression(ast.KindArrowFunctionWithExpression)
		node.Children = append(append([]*ast.Expression{}, params...), bodyExpr)
	}
	node.Attributes = attrs
	node.TypeParams = typeParams
	node.TypeVisits = returnTypeVisits
	return p.finishNode(node, begin)
}

// parseGenericArrowFunction speculatively parses `<T, U>(params) => body`.
// Parseable only in TypeScript mode; on failure the lexer rolls back and an
// invalid expression is produced.
func (p *Parser) parseGenericArrowFunction(attrs lang.FunctionAttributes, prec precedence) *ast.Expression {
	begin := p.peek().Begin
	snapshot := p.lexer.Snapshot()
	p.skipToken() // '<'

	var typeParams []lang.Identifier
	ok := true
	for {
		t := p.peek()
		if !t.IsIdentifierLike() {
			ok = false
			break
		}
		typeParams = append(typeParams, t.Identifier())
		p.skipToken()
		if p.peek().Type == lexer.TokenExtends {
			p.skipToken()
			var constraint visit.Buffer
			p.parseAndVisitTypeExpression(&constraint)
			constraint.Reset()
		}
		if p.peek().Type == lexer.TokenComma {
			p.skipToken()
			if p.peek().Type == lexer.TokenGt {
				break // trailing comma: `<T,>`
			}
			continue
		}
		break
	}
	if ok && p.peek().Type == lexer.TokenGt {
		p.skipToken()
	} else {
		ok = false
	}
	if !ok || p.peek().Type != lexer.TokenLParen {
		p.lexer.RollBack(snapshot)
		p.report(diag.UnexpectedToken{Token: p.peek().Span()})
		p.skipToken()
		node := p.arena.NewExpression(ast.KindInvalid)
		node.Span = source.EmptySpanAt(begin)
		return node
	}

	arrow := p.parseParenthesizedOrArrow(nil, prec)
	if arrow.Kind == ast.KindArrowFunctionWithExpression || arrow.Kind == ast.KindArrowFunctionWithStatements {
		arrow.TypeParams = typeParams
		arrow.Attributes = attrs
		arrow.Span.Begin = begin
	}
	return arrow
}
