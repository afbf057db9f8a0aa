package visit

import "github.com/kasumi-lint/kasumi/internal/lang"

type eventKind int

const (
	eventVariableDeclaration eventKind = iota
	eventVariableUse
	eventVariableAssignment
	eventVariableExportUse
	eventVariableTypeUse
	eventPropertyDeclaration
	eventEnterBlockScope
	eventExitBlockScope
	eventEnterFunctionScope
	eventEnterFunctionScopeBody
	eventExitFunctionScope
	eventEnterNamedFunctionScope
	eventEnterClassScope
	eventEnterClassScopeBody
	eventExitClassScope
	eventEnterInterfaceScope
	eventExitInterfaceScope
	eventEnterForScope
	eventExitForScope
	eventEndOfModule
)

type event struct {
	kind     eventKind
	name     lang.Identifier
	varKind  lang.VariableKind
	property *lang.Identifier
}

// Buffer is a deferred event log. The parser uses it when events must be
// emitted out of parse order, e.g. the declarations in `let {x = f()} = o`
// are visited after the uses of o and f even though x is parsed first.
type Buffer struct {
	events []event
}

var _ Visitor = (*Buffer)(nil)

// MoveInto replays the buffered events into v, in order, and empties the
// buffer.
func (b *Buffer) MoveInto(v Visitor) {
	for i := range b.events {
		e := &b.events[i]
		switch e.kind {
		case eventVariableDeclaration:
			v.VisitVariableDeclaration(e.name, e.varKind)
		case eventVariableUse:
			v.VisitVariableUse(e.name)
		case eventVariableAssignment:
			v.VisitVariableAssignment(e.name)
		case eventVariableExportUse:
			v.VisitVariableExportUse(e.name)
		case eventVariableTypeUse:
			v.VisitVariableTypeUse(e.name)
		case eventPropertyDeclaration:
			v.VisitPropertyDeclaration(e.property)
		case eventEnterBlockScope:
			v.VisitEnterBlockScope()
		case eventExitBlockScope:
			v.VisitExitBlockScope()
		case eventEnterFunctionScope:
			v.VisitEnterFunctionScope()
		case eventEnterFunctionScopeBody:
			v.VisitEnterFunctionScopeBody()
		case eventExitFunctionScope:
			v.VisitExitFunctionScope()
		case eventEnterNamedFunctionScope:
			v.VisitEnterNamedFunctionScope(e.name)
		case eventEnterClassScope:
			v.VisitEnterClassScope()
		case eventEnterClassScopeBody:
			v.VisitEnterClassScopeBody()
		case eventExitClassScope:
			v.VisitExitClassScope()
		case eventEnterInterfaceScope:
			v.VisitEnterInterfaceScope()
		case eventExitInterfaceScope:
			v.VisitExitInterfaceScope()
		case eventEnterForScope:
			v.VisitEnterForScope()
		case eventExitForScope:
			v.VisitExitForScope()
		case eventEndOfModule:
			v.VisitEndOfModule()
		}
	}
	b.events = b.events[:0]
}

// Reset drops all buffered events.
func (b *Buffer) Reset() {
	b.events = b.events[:0]
}

// Empty reports whether no events are buffered.
func (b *Buffer) Empty() bool {
	return len(b.events) == 0
}

func (b *Buffer) push(e event) {
	b.events = append(b.events, e)
}

func (b *Buffer) VisitVariableDeclaration(name lang.Identifier, kind lang.VariableKind) {
	b.push(event{kind: eventVariableDeclaration, name: name, varKind: kind})
}

func (b *Buffer) VisitVariableUse(name lang.Identifier) {
	b.push(event{kind: eventVariableUse, name: name})
}

func (b *Buffer) VisitVariableAssignment(name lang.Identifier) {
	b.push(event{kind: eventVariableAssignment, name: name})
}

func (b *Buffer) VisitVariableExportUse(name lang.Identifier) {
	b.push(event{kind: eventVariableExportUse, name: name})
}

func (b *Buffer) VisitVariableTypeUse(name lang.Identifier) {
	b.push(event{kind: eventVariableTypeUse, name: name})
}

func (b *Buffer) VisitPropertyDeclaration(name *lang.Identifier) {
	b.push(event{kind: eventPropertyDeclaration, property: name})
}

func (b *Buffer) VisitEnterBlockScope()        { b.push(event{kind: eventEnterBlockScope}) }
func (b *Buffer) VisitExitBlockScope()         { b.push(event{kind: eventExitBlockScope}) }
func (b *Buffer) VisitEnterFunctionScope()     { b.push(event{kind: eventEnterFunctionScope}) }
func (b *Buffer) VisitEnterFunctionScopeBody() { b.push(event{kind: eventEnterFunctionScopeBody}) }
func (b *Buffer) VisitExitFunctionScope()      { b.push(event{kind: eventExitFunctionScope}) }

func (b *Buffer) VisitEnterNamedFunctionScope(name lang.Identifier) {
	b.push(event{kind: eventEnterNamedFunctionScope, name: name})
}

func (b *Buffer) VisitEnterClassScope()     { b.push(event{kind: eventEnterClassScope}) }
func (b *Buffer) VisitEnterClassScopeBody() { b.push(event{kind: eventEnterClassScopeBody}) }
func (b *Buffer) VisitExitClassScope()      { b.push(event{kind: eventExitClassScope}) }
func (b *Buffer) VisitEnterInterfaceScope() { b.push(event{kind: eventEnterInterfaceScope}) }
func (b *Buffer) VisitExitInterfaceScope()  { b.push(event{kind: eventExitInterfaceScope}) }
func (b *Buffer) VisitEnterForScope()       { b.push(event{kind: eventEnterForScope}) }
func (b *Buffer) VisitExitForScope()        { b.push(event{kind: eventExitForScope}) }
func (b *Buffer) VisitEndOfModule()         { b.push(event{kind: eventEndOfModule}) }
