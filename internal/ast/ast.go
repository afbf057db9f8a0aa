// Package ast defines arena-allocated expression nodes. Expressions are a
// sum type: one Expression struct tagged by Kind, with children pointing at
// other nodes in the same arena. Nodes are immutable once the parser has
// finished building them and are released together when the arena resets.
package ast

import (
	"github.com/kasumi-lint/kasumi/internal/lang"
	"github.com/kasumi-lint/kasumi/internal/source"
	"github.com/kasumi-lint/kasumi/internal/visit"
)

// ExpressionKind tags the Expression sum type.
type ExpressionKind int

const (
	KindInvalid ExpressionKind = iota
	KindLiteral
	KindVariable
	KindThis
	KindSuper
	KindNew
	KindTemplate
	KindTaggedTemplate
	KindArray
	KindObject
	KindBinaryOperator
	KindUnaryOperator
	KindRWUnaryPrefix
	KindRWUnarySuffix
	KindAwait
	KindYield
	KindSpread
	KindCall
	KindDot
	KindIndex
	KindAssignment
	KindUpdatingAssignment
	KindConditional
	KindArrowFunctionWithExpression
	KindArrowFunctionWithStatements
	KindFunction
	KindNamedFunction
	KindClass
	KindJSXElement
)

var kindNames = map[ExpressionKind]string{
	KindInvalid:                     "invalid",
	KindLiteral:                     "literal",
	KindVariable:                    "variable",
	KindThis:                        "this",
	KindSuper:                       "super",
	KindNew:                         "new",
	KindTemplate:                    "template",
	KindTaggedTemplate:              "tagged_template",
	KindArray:                       "array",
	KindObject:                      "object",
	KindBinaryOperator:              "binary_operator",
	KindUnaryOperator:               "unary_operator",
	KindRWUnaryPrefix:               "rw_unary_prefix",
	KindRWUnarySuffix:               "rw_unary_suffix",
	KindAwait:                       "await",
	KindYield:                       "yield",
	KindSpread:                      "spread",
	KindCall:                        "call",
	KindDot:                         "dot",
	KindIndex:                       "index",
	KindAssignment:                  "assignment",
	KindUpdatingAssignment:          "updating_assignment",
	KindConditional:                 "conditional",
	KindArrowFunctionWithExpression: "arrow_function_with_expression",
	KindArrowFunctionWithStatements: "arrow_function_with_statements",
	KindFunction:                    "function",
	KindNamedFunction:               "named_function",
	KindClass:                       "class",
	KindJSXElement:                  "jsx_element",
}

func (k ExpressionKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ObjectEntry is one property of an object literal. Property is non-nil only
// for computed keys (which must be visited as expressions); literal keys are
// not variable references. Value is the property's value, a method function,
// or a spread node.
type ObjectEntry struct {
	Property *Expression
	Value    *Expression
}

// Expression is one node of the expression tree. Fields beyond Kind and Span
// are populated per kind:
//
//	variable, dot:                    Name
//	literal:                          Name holds the token's literal text (number lexeme, decoded string value, regexp body)
//	named_function, class:            Name (class: only when named)
//	function, named_function:         Attributes, BodyVisits (parameters and body)
//	arrow functions:                  Attributes, Children=params; with_statements also BodyVisits
//	arrow_function_with_expression:   last child is the body expression
//	object:                           Entries
//	everything else:                  Children in source order
//
// TypeVisits, when non-nil, carries buffered VisitVariableTypeUse events for
// a TypeScript annotation attached to this node (parameter patterns).
type Expression struct {
	Kind     ExpressionKind
	Span     source.Span
	Children []*Expression
	Entries  []ObjectEntry

	Name       lang.Identifier
	Attributes lang.FunctionAttributes
	BodyVisits *visit.Buffer
	TypeVisits *visit.Buffer

	// TypeParams are the generic parameters of a TypeScript generic arrow
	// function; they are declared before the value parameters.
	TypeParams []lang.Identifier

	// NonNull records a TypeScript non-null assertion applied to this node,
	// so parameter lists can diagnose it after arrow commitment.
	NonNull     bool
	NonNullSpan source.Span
}

// ChildCount returns the number of children.
func (e *Expression) ChildCount() int {
	return len(e.Children)
}

// Child returns the i-th child.
func (e *Expression) Child(i int) *Expression {
	return e.Children[i]
}

// VariableIdentifier returns the node's identifier. Valid for variable,
// named_function and named class nodes.
func (e *Expression) VariableIdentifier() lang.Identifier {
	return e.Name
}
