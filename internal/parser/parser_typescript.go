package parser

import (
	"github.com/kasumi-lint/kasumi/internal/diag"
	"github.com/kasumi-lint/kasumi/internal/lexer"
	"github.com/kasumi-lint/kasumi/internal/visit"
)

// parseAndVisitTypeExpression parses a TypeScript type, emitting
// VisitVariableTypeUse for each named type reference (the root of a
// qualified name). v is often a visit.Buffer so annotation uses can be
// re-ordered relative to declarations.
func (p *Parser) parseAndVisitTypeExpression(v visit.Visitor) {
	p.parseTypePrimary(v)
	for {
		switch p.peek().Type {
		case lexer.TokenPipe, lexer.TokenAmp:
			p.skipToken()
			p.parseTypePrimary(v)
		case lexer.TokenLBracket:
			// Array suffix `T[]` or indexed access `T[K]`.
			p.skipToken()
			if p.peek().Type != lexer.TokenRBracket {
				p.parseAndVisitTypeExpression(v)
			}
			p.expect(lexer.TokenRBracket)
		default:
			return
		}
	}
}

func (p *Parser) parseTypePrimary(v visit.Visitor) {
	switch t := p.peek(); {
	case t.Type == lexer.TokenString, t.Type == lexer.TokenNumber, t.Type == lexer.TokenBigInt,
		t.Type == lexer.TokenTrue, t.Type == lexer.TokenFalse, t.Type == lexer.TokenNull,
		t.Type == lexer.TokenVoid, t.Type == lexer.TokenThis:
		// Literal and primitive types reference no variables.
		p.skipToken()

	case t.Type == lexer.TokenTypeof:
		// A type query references the value binding.
		p.skipToken()
		if qt := p.peek(); qt.IsIdentifierLike() {
			v.VisitVariableUse(qt.Identifier())
			p.skipToken()
			for p.peek().Type == lexer.TokenDot {
				p.skipToken()
				if mt := p.peek(); mt.IsIdentifierLike() || mt.IsKeyword() {
					p.skipToken()
				} else {
					break
				}
			}
		}

	case t.Type == lexer.TokenLParen:
		p.parseParenthesizedOrFunctionType(v)

	case t.Type == lexer.TokenLBrace:
		p.parseObjectType(v)

	case t.Type == lexer.TokenLBracket:
		// Tuple type.
		p.skipToken()
		for p.peek().Type != lexer.TokenRBracket && p.peek().Type != lexer.TokenEOF {
			if p.peek().Type == lexer.TokenComma {
				p.skipToken()
				continue
			}
			if p.peek().Type == lexer.TokenDotDotDot {
				p.skipToken()
			}
			p.parseAndVisitTypeExpression(v)
		}
		p.expect(lexer.TokenRBracket)

	case t.Type == lexer.TokenNew:
		// Constructor type: `new (args) => T`.
		p.skipToken()
		p.parseParenthesizedOrFunctionType(v)

	case t.IsIdentifierLike():
		root := t.Identifier()
		p.skipToken()
		for p.peek().Type == lexer.TokenDot {
			p.skipToken()
			if mt := p.peek(); mt.IsIdentifierLike() || mt.IsKeyword() {
				p.skipToken()
			} else {
				break
			}
		}
		v.VisitVariableTypeUse(root)
		if p.peek().Type == lexer.TokenLt {
			p.skipToken()
			for {
				p.parseAndVisitTypeExpression(v)
				if p.peek().Type != lexer.TokenComma {
					break
				}
				p.skipToken()
			}
			p.expect(lexer.TokenGt)
		}

	default:
		p.report(diag.UnexpectedToken{Token: t.Span()})
		p.skipToken()
	}
}

// parseParenthesizedOrFunctionType parses `(T)`, `(a: T, b: U) => R` and
// similar shapes. Parameter names inside function types are not bindings
// visible to the checker, so only the types are visited.
func (p *Parser) parseParenthesizedOrFunctionType(v visit.Visitor) {
	p.skipToken() // '('
	for p.peek().Type != lexer.TokenRParen && p.peek().Type != lexer.TokenEOF {
		switch t := p.peek(); {
		case t.Type == lexer.TokenComma, t.Type == lexer.TokenDotDotDot:
			p.skipToken()
		case t.IsIdentifierLike():
			// Either `name: type` or a bare type name.
			snapshot := p.lexer.Snapshot()
			p.skipToken()
			switch p.peek().Type {
			case lexer.TokenColon:
				p.skipToken()
				p.parseAndVisitTypeExpression(v)
			case lexer.TokenQuestion:
				p.skipToken()
				if p.peek().Type == lexer.TokenColon {
					p.skipToken()
					p.parseAndVisitTypeExpression(v)
				}
			default:
				p.lexer.RollBack(snapshot)
				p.parseAndVisitTypeExpression(v)
			}
		default:
			p.parseAndVisitTypeExpression(v)
		}
	}
	p.expect(lexer.TokenRParen)
	if p.peek().Type == lexer.TokenArrow {
		p.skipToken()
		p.parseAndVisitTypeExpression(v)
	}
}

// parseObjectType parses `{ name: T; method(a: U): R }`, visiting only the
// member types.
func (p *Parser) parseObjectType(v visit.Visitor) {
	p.skipToken() // '{'
	for {
		switch t := p.peek(); t.Type {
		case lexer.TokenRBrace:
			p.skipToken()
			return
		case lexer.TokenEOF:
			p.report(diag.UnmatchedParenthesis{Where: t.Span()})
			return
		case lexer.TokenSemicolon, lexer.TokenComma:
			p.skipToken()
		case lexer.TokenColon:
			p.skipToken()
			p.parseAndVisitTypeExpression(v)
		case lexer.TokenLParen:
			p.parseParenthesizedOrFunctionType(v)
		case lexer.TokenLBracket:
			// Index signature key.
			p.skipToken()
			for p.peek().Type != lexer.TokenRBracket && p.peek().Type != lexer.TokenEOF {
				if p.peek().Type == lexer.TokenColon {
					p.skipToken()
					p.parseAndVisitTypeExpression(v)
					continue
				}
				p.skipToken()
			}
			p.expect(lexer.TokenRBracket)
		default:
			p.skipToken() // member name or modifier
		}
	}
}
