package parser

import (
	"github.com/kasumi-lint/kasumi/internal/ast"
	"github.com/kasumi-lint/kasumi/internal/lang"
	"github.com/kasumi-lint/kasumi/internal/visit"
)

// variableContext distinguishes reads from assignment targets while walking
// an expression tree.
type variableContext int

const (
	variableContextLHS variableContext = iota
	variableContextRHS
)

// visitExpression walks a parsed expression and emits the semantic events
// for it. The tree is visited in the same pass that built it; nodes carry
// buffered events for regions (function bodies) that were parsed eagerly.
func (p *Parser) visitExpression(e *ast.Expression, v visit.Visitor, context variableContext) {
	if e == nil {
		return
	}

	visitChildren := func() {
		for _, child := range e.Children {
			p.visitExpression(child, v, context)
		}
	}

	switch e.Kind {
	case ast.KindInvalid, ast.KindLiteral, ast.KindThis, ast.KindSuper:
		// No variable references.

	case ast.KindVariable:
		switch context {
		case variableContextLHS:
			// The assignment event is emitted by the caller.
		case variableContextRHS:
			v.VisitVariableUse(e.Name)
		}

	case ast.KindNew, ast.KindTemplate, ast.KindTaggedTemplate, ast.KindArray,
		ast.KindBinaryOperator, ast.KindCall, ast.KindConditional, ast.KindJSXElement:
		visitChildren()

	case ast.KindObject:
		for _, entry := range e.Entries {
			if entry.Property != nil {
				p.visitExpression(entry.Property, v, variableContextRHS)
			}
			p.visitExpression(entry.Value, v, context)
		}

	case ast.KindDot:
		p.visitExpression(e.Child(0), v, variableContextRHS)

	case ast.KindIndex:
		p.visitExpression(e.Child(0), v, variableContextRHS)
		p.visitExpression(e.Child(1), v, variableContextRHS)

	case ast.KindSpread, ast.KindAwait, ast.KindUnaryOperator, ast.KindYield:
		for _, child := range e.Children {
			p.visitExpression(child, v, variableContextRHS)
		}

	case ast.KindRWUnaryPrefix, ast.KindRWUnarySuffix:
		child := e.Child(0)
		p.visitExpression(child, v, variableContextRHS)
		p.maybeVisitAssignment(child, v)

	case ast.KindAssignment:
		p.visitAssignmentExpression(e.Child(0), e.Child(1), v)

	case ast.KindUpdatingAssignment:
		lhs, rhs := e.Child(0), e.Child(1)
		p.visitExpression(lhs, v, variableContextRHS)
		p.visitExpression(rhs, v, variableContextRHS)
		p.maybeVisitAssignment(lhs, v)

	case ast.KindArrowFunctionWithExpression:
		v.VisitEnterFunctionScope()
		p.declareTypeParameters(e, v)
		bodyIndex := len(e.Children) - 1
		p.declareArrowParameters(e.Children[:bodyIndex], v)
		if e.TypeVisits != nil {
			e.TypeVisits.MoveInto(v)
		}
		v.VisitEnterFunctionScopeBody()
		p.visitExpression(e.Children[bodyIndex], v, variableContextRHS)
		v.VisitExitFunctionScope()

	case ast.KindArrowFunctionWithStatements:
		v.VisitEnterFunctionScope()
		p.declareTypeParameters(e, v)
		p.declareArrowParameters(e.Children, v)
		if e.TypeVisits != nil {
			e.TypeVisits.MoveInto(v)
		}
		e.BodyVisits.MoveInto(v)
		v.VisitExitFunctionScope()

	case ast.KindFunction:
		v.VisitEnterFunctionScope()
		e.BodyVisits.MoveInto(v)
		v.VisitExitFunctionScope()

	case ast.KindNamedFunction:
		v.VisitEnterNamedFunctionScope(e.Name)
		e.BodyVisits.MoveInto(v)
		v.VisitExitFunctionScope()

	case ast.KindClass:
		v.VisitEnterClassScope()
		e.BodyVisits.MoveInto(v)
		v.VisitExitClassScope()
	}

	if e.Kind != ast.KindArrowFunctionWithExpression && e.Kind != ast.KindArrowFunctionWithStatements {
		if e.TypeVisits != nil {
			// An as-cast or annotation attached to this expression.
			e.TypeVisits.MoveInto(v)
		}
	}
}

// visitAssignmentExpression visits `lhs = rhs`: targets first (without use
// events), then the value, then the assignment events.
func (p *Parser) visitAssignmentExpression(lhs, rhs *ast.Expression, v visit.Visitor) {
	p.visitExpression(lhs, v, variableContextLHS)
	p.visitExpression(rhs, v, variableContextRHS)
	p.maybeVisitAssignment(lhs, v)
}

// maybeVisitAssignment emits assignment events for the variables written by
// an assignment target, recursing through destructuring shapes.
func (p *Parser) maybeVisitAssignment(e *ast.Expression, v visit.Visitor) {
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.KindVariable:
		v.VisitVariableAssignment(e.Name)
	case ast.KindArray:
		for _, child := range e.Children {
			p.maybeVisitAssignment(child, v)
		}
	case ast.KindObject:
		for _, entry := range e.Entries {
			p.maybeVisitAssignment(entry.Value, v)
		}
	case ast.KindSpread:
		p.maybeVisitAssignment(e.Child(0), v)
	case ast.KindAssignment:
		// `[a = default] = xs`: the target is the left side.
		p.maybeVisitAssignment(e.Child(0), v)
	}
}

// declareTypeParameters declares the generic parameters of a TypeScript
// generic arrow function.
func (p *Parser) declareTypeParameters(e *ast.Expression, v visit.Visitor) {
	for _, tp := range e.TypeParams {
		v.VisitVariableDeclaration(tp, lang.VariableKindParameter)
	}
}

// declareArrowParameters declares an arrow function's parameters. For each
// parameter: default-value uses, then annotation type uses, then the
// declarations, in source order.
func (p *Parser) declareArrowParameters(params []*ast.Expression, v visit.Visitor) {
	for _, param := range params {
		p.declareOneArrowParameter(param, v)
	}
}

func (p *Parser) declareOneArrowParameter(param *ast.Expression, v visit.Visitor) {
	if param == nil {
		return
	}
	switch param.Kind {
	case ast.KindAssignment:
		// `(a = default) => ...`
		p.visitExpression(param.Child(1), v, variableContextRHS)
		if param.TypeVisits != nil {
			param.TypeVisits.MoveInto(v)
		}
		p.declarePatternVariables(param.Child(0), v)
	default:
		if param.TypeVisits != nil {
			param.TypeVisits.MoveInto(v)
		}
		p.declarePatternVariables(param, v)
	}
}

// declarePatternVariables declares every variable bound by a reinterpreted
// parameter pattern.
func (p *Parser) declarePatternVariables(e *ast.Expression, v visit.Visitor) {
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.KindVariable:
		v.VisitVariableDeclaration(e.Name, lang.VariableKindParameter)
	case ast.KindArray:
		for _, child := range e.Children {
			p.declarePatternVariables(child, v)
		}
	case ast.KindObject:
		for _, entry := range e.Entries {
			if entry.Property != nil {
				p.visitExpression(entry.Property, v, variableContextRHS)
			}
			p.declarePatternVariables(entry.Value, v)
		}
	case ast.KindSpread:
		p.declarePatternVariables(e.Child(0), v)
	case ast.KindAssignment:
		// Nested default: value uses first, then the declarations.
		p.visitExpression(e.Child(1), v, variableContextRHS)
		p.declarePatternVariables(e.Child(0), v)
	}
}
