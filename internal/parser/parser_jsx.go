package parser

import (
	"github.com/kasumi-lint/kasumi/internal/ast"
	"github.com/kasumi-lint/kasumi/internal/diag"
	"github.com/kasumi-lint/kasumi/internal/lexer"
	"github.com/kasumi-lint/kasumi/internal/source"
)

// parseJSXElement parses a JSX element or fragment at expression position.
// Capitalized and dotted element names are component references (variable
// uses); lowercase intrinsic names are not. Attribute and child expressions
// become children of the resulting node.
func (p *Parser) parseJSXElement() *ast.Expression {
	begin := p.peek().Begin
	node := p.parseJSXElementTag()
	if p.peek().Type == lexer.TokenGt {
		p.skipToken()
	}
	return p.finishNode(node, begin)
}

// parseJSXElementTag parses from the current '<' through the element's
// final '>', which is left as the current token. Child elements must leave
// the '>' unconsumed so the enclosing children region can resume raw-text
// scanning after it.
func (p *Parser) parseJSXElementTag() *ast.Expression {
	node := p.arena.NewExpression(ast.KindJSXElement)
	node.Span = p.peek().Span()
	p.skipToken() // '<'

	if p.peek().Type == lexer.TokenGt {
		// Fragment: <>children</>
		p.parseJSXChildrenAndClosing(node)
		return node
	}

	p.parseJSXElementName(node)
	p.parseJSXAttributes(node)

	switch p.peek().Type {
	case lexer.TokenSlash:
		// Self-closing: `/>`
		p.skipToken()
		if p.peek().Type != lexer.TokenGt {
			p.report(diag.UnexpectedToken{Token: p.peek().Span()})
		}
	case lexer.TokenGt:
		p.parseJSXChildrenAndClosing(node)
	default:
		p.report(diag.UnexpectedToken{Token: p.peek().Span()})
	}
	return node
}

// parseJSXElementName consumes `name`, `ns:name` or `Obj.Prop`, recording a
// variable use for component names.
func (p *Parser) parseJSXElementName(node *ast.Expression) {
	t := p.peek()
	if !t.IsIdentifierLike() && !t.IsKeyword() {
		p.report(diag.UnexpectedToken{Token: t.Span()})
		return
	}
	name := t.Identifier()
	p.skipToken()

	dotted := false
	for p.peek().Type == lexer.TokenDot {
		dotted = true
		p.skipToken()
		if mt := p.peek(); mt.IsIdentifierLike() || mt.IsKeyword() {
			p.skipToken()
		} else {
			break
		}
	}
	if p.peek().Type == lexer.TokenColon {
		// Namespaced intrinsic: `ns:name` is never a component.
		p.skipToken()
		if mt := p.peek(); mt.IsIdentifierLike() || mt.IsKeyword() {
			p.skipToken()
		}
		return
	}

	if dotted || isCapitalized(name.Name) {
		use := p.arena.NewExpression(ast.KindVariable)
		use.Name = name
		use.Span = name.Span
		node.Children = append(node.Children, use)
	}
}

func isCapitalized(name string) bool {
	return len(name) > 0 && 'A' <= name[0] && name[0] <= 'Z'
}

func (p *Parser) parseJSXAttributes(node *ast.Expression) {
	for {
		switch t := p.peek(); {
		case t.Type == lexer.TokenGt, t.Type == lexer.TokenSlash, t.Type == lexer.TokenEOF:
			return
		case t.Type == lexer.TokenLBrace:
			// Spread attribute: {...expr}
			p.skipToken()
			if p.peek().Type == lexer.TokenDotDotDot {
				p.skipToken()
			}
			expr := p.parseExpression(jsxContainerPrecedence())
			node.Children = append(node.Children, expr)
			p.expect(lexer.TokenRBrace)
		case t.IsIdentifierLike() || t.IsKeyword():
			p.skipToken() // attribute name
			for p.peek().Type == lexer.TokenMinus || p.peek().Type == lexer.TokenColon {
				// `data-foo` and `xlink:href` style names.
				p.skipToken()
				if nt := p.peek(); nt.IsIdentifierLike() || nt.IsKeyword() {
					p.skipToken()
				}
			}
			if p.peek().Type != lexer.TokenAssign {
				continue // bare attribute
			}
			p.skipToken()
			switch p.peek().Type {
			case lexer.TokenString:
				p.skipToken()
			case lexer.TokenLBrace:
				p.skipToken()
				expr := p.parseExpression(jsxContainerPrecedence())
				node.Children = append(node.Children, expr)
				p.expect(lexer.TokenRBrace)
			default:
				p.report(diag.UnexpectedToken{Token: p.peek().Span()})
				p.skipToken()
			}
		default:
			p.report(diag.UnexpectedToken{Token: t.Span()})
			p.skipToken()
		}
	}
}

// parseJSXChildrenAndClosing parses the children region. Entered with the
// opening tag's '>' (or a container's '}') as the current token; returns
// with the closing tag's '>' as the current token.
func (p *Parser) parseJSXChildrenAndClosing(node *ast.Expression) {
	for {
		p.lexer.SkipInJSXText()
		if p.peek().Type == lexer.TokenJSXText {
			p.skipToken() // raw text; the next token is a delimiter
		}

		switch p.peek().Type {
		case lexer.TokenLBrace:
			p.skipToken()
			if p.peek().Type == lexer.TokenRBrace {
				continue // {} is an empty expression container
			}
			expr := p.parseExpression(jsxContainerPrecedence())
			node.Children = append(node.Children, expr)
			if p.peek().Type != lexer.TokenRBrace {
				p.report(diag.UnmatchedParenthesis{Where: source.EmptySpanAt(p.peek().Begin)})
				return
			}
			// The loop's SkipInJSXText consumes the '}'.

		case lexer.TokenLt:
			snapshot := p.lexer.Snapshot()
			p.skipToken()
			if p.peek().Type == lexer.TokenSlash {
				// Closing tag: </name> or </>
				p.skipToken()
				for p.peek().IsIdentifierLike() || p.peek().IsKeyword() ||
					p.peek().Type == lexer.TokenDot || p.peek().Type == lexer.TokenColon {
					p.skipToken()
				}
				if p.peek().Type != lexer.TokenGt {
					p.report(diag.UnexpectedToken{Token: p.peek().Span()})
				}
				return
			}
			p.lexer.RollBack(snapshot)
			child := p.parseJSXElementTag()
			node.Children = append(node.Children, child)
			// The loop's SkipInJSXText consumes the child's '>'.

		case lexer.TokenEOF:
			p.report(diag.UnmatchedParenthesis{Where: source.EmptySpanAt(p.peek().Begin)})
			return

		default:
			p.report(diag.UnexpectedToken{Token: p.peek().Span()})
			return
		}
	}
}

func jsxContainerPrecedence() precedence {
	return precedence{
		BinaryOperators:          true,
		Commas:                   false,
		InOperator:               true,
		ConditionalOperator:      true,
		TrailingCurlyIsArrowBody: false,
	}
}
