// Package visit defines the semantic event protocol emitted by the parser.
// The alphabet is fixed: downstream analyzers (the name-resolution pass, the
// scope checker) depend on exactly this set of events, in order, with
// properly nested scope enter/exit pairs.
package visit

import "github.com/kasumi-lint/kasumi/internal/lang"

// Visitor receives semantic events during a parse. Calls are synchronous on
// the parser's goroutine. Implementations must not re-enter the parser, and
// should copy identifiers they need beyond the call.
type Visitor interface {
	VisitVariableDeclaration(name lang.Identifier, kind lang.VariableKind)
	VisitVariableUse(name lang.Identifier)
	VisitVariableAssignment(name lang.Identifier)
	VisitVariableExportUse(name lang.Identifier)
	VisitVariableTypeUse(name lang.Identifier)

	// VisitPropertyDeclaration reports a property or method of a class,
	// interface or object type. name is nil for computed names.
	VisitPropertyDeclaration(name *lang.Identifier)

	VisitEnterBlockScope()
	VisitExitBlockScope()
	VisitEnterFunctionScope()
	VisitEnterFunctionScopeBody()
	VisitExitFunctionScope()
	VisitEnterNamedFunctionScope(name lang.Identifier)
	VisitEnterClassScope()
	VisitEnterClassScopeBody()
	VisitExitClassScope()
	VisitEnterInterfaceScope()
	VisitExitInterfaceScope()
	VisitEnterForScope()
	VisitExitForScope()

	VisitEndOfModule()
}

// NullVisitor discards every event.
type NullVisitor struct{}

func (NullVisitor) VisitVariableDeclaration(lang.Identifier, lang.VariableKind) {}
func (NullVisitor) VisitVariableUse(lang.Identifier)                            {}
func (NullVisitor) VisitVariableAssignment(lang.Identifier)                     {}
func (NullVisitor) VisitVariableExportUse(lang.Identifier)                      {}
func (NullVisitor) VisitVariableTypeUse(lang.Identifier)                        {}
func (NullVisitor) VisitPropertyDeclaration(*lang.Identifier)                   {}
func (NullVisitor) VisitEnterBlockScope()                                       {}
func (NullVisitor) VisitExitBlockScope()                                        {}
func (NullVisitor) VisitEnterFunctionScope()                                    {}
func (NullVisitor) VisitEnterFunctionScopeBody()                                {}
func (NullVisitor) VisitExitFunctionScope()                                     {}
func (NullVisitor) VisitEnterNamedFunctionScope(lang.Identifier)                {}
func (NullVisitor) VisitEnterClassScope()                                       {}
func (NullVisitor) VisitEnterClassScopeBody()                                   {}
func (NullVisitor) VisitExitClassScope()                                        {}
func (NullVisitor) VisitEnterInterfaceScope()                                   {}
func (NullVisitor) VisitExitInterfaceScope()                                    {}
func (NullVisitor) VisitEnterForScope()                                         {}
func (NullVisitor) VisitExitForScope()                                          {}
func (NullVisitor) VisitEndOfModule()                                           {}
