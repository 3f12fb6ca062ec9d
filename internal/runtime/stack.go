package runtime

import (
	"fmt"

	"clike/internal/ast"
)

// ActivationRecord is a single invocation's frame: a flat name→value map.
// Mutations are only ever applied to the current (top) AR; the interpreter
// never reaches into a frame other than the one it is currently executing.
type ActivationRecord struct {
	// Name identifies the frame for tracing: the function name, or
	// "<global>" for the bottom-of-stack frame.
	Name string

	vars map[string]Value

	// funcs holds function declarations, populated only in the global AR
	// at program start. Every other frame's funcs is nil; lookups for
	// function declarations always read the bottom (global) frame.
	funcs map[string]FuncValue
}

// FuncValue is the runtime-visible half of a function declaration: what
// the interpreter needs to invoke it. The AST body is kept alongside the
// signature rather than in the symbol table, per the Call boundary's need
// to walk it directly.
type FuncValue struct {
	Name    string
	RetType ast.TypeTag
	Params  []ParamBinding
	Body    *ast.Block
}

// ParamBinding describes one formal parameter for binding purposes.
type ParamBinding struct {
	Name    string
	IsArray bool
}

func newAR(name string) *ActivationRecord {
	return &ActivationRecord{Name: name, vars: make(map[string]Value)}
}

// Set installs or overwrites a binding in this AR.
func (ar *ActivationRecord) Set(name string, v Value) { ar.vars[name] = v }

// Get reads a binding from this AR.
func (ar *ActivationRecord) Get(name string) (Value, bool) {
	v, ok := ar.vars[name]
	return v, ok
}

// Members lists the names currently bound in this AR, for tracing.
func (ar *ActivationRecord) Members() []string {
	names := make([]string, 0, len(ar.vars))
	for name := range ar.vars {
		names = append(names, name)
	}
	return names
}

// CallStack is a LIFO of activation records. The bottom frame is the
// global AR, which holds function declarations and nothing else; it is
// popped last, after main has returned.
type CallStack struct {
	frames []*ActivationRecord
}

// NewCallStack returns an empty call stack.
func NewCallStack() *CallStack {
	return &CallStack{}
}

// PushGlobal pushes the bottom-of-stack global frame. Must be called
// exactly once, before any other push.
func (cs *CallStack) PushGlobal() *ActivationRecord {
	ar := newAR("<global>")
	ar.funcs = make(map[string]FuncValue)
	cs.frames = append(cs.frames, ar)
	return ar
}

// Push pushes a new frame named name and returns it.
func (cs *CallStack) Push(name string) *ActivationRecord {
	ar := newAR(name)
	cs.frames = append(cs.frames, ar)
	return ar
}

// Pop removes and returns the top frame.
func (cs *CallStack) Pop() *ActivationRecord {
	top := cs.frames[len(cs.frames)-1]
	cs.frames = cs.frames[:len(cs.frames)-1]
	return top
}

// Peek returns the current (top) frame without removing it.
func (cs *CallStack) Peek() *ActivationRecord {
	return cs.frames[len(cs.frames)-1]
}

// Global returns the bottom frame, which holds function declarations.
func (cs *CallStack) Global() *ActivationRecord {
	return cs.frames[0]
}

// Depth returns the number of frames currently on the stack.
func (cs *CallStack) Depth() int { return len(cs.frames) }

// DefineFunc stores a function declaration in the global AR.
func (cs *CallStack) DefineFunc(fn FuncValue) {
	cs.frames[0].funcs[fn.Name] = fn
}

// LookupFunc finds a function declaration in the global AR.
func (cs *CallStack) LookupFunc(name string) (FuncValue, bool) {
	fn, ok := cs.frames[0].funcs[name]
	return fn, ok
}

// Snapshot renders every frame (outermost first) as a single trace line,
// for the stack trace channel.
func (cs *CallStack) Snapshot() string {
	s := ""
	for i, ar := range cs.frames {
		if i > 0 {
			s += " -> "
		}
		s += fmt.Sprintf("%s%v", ar.Name, ar.Members())
	}
	return s
}
