// Package interp implements the tree-walking interpreter: a visitor over
// the semantically-validated AST, backed by a call stack of activation
// records.
package interp

import (
	"clike/internal/ast"
	"clike/internal/diag"
	"clike/internal/runtime"
	"clike/internal/sym"
)

// Output is the line-oriented sink print writes to.
type Output interface {
	Println(s string)
}

// ctrlKind distinguishes normal fall-through from a propagating return,
// kept entirely separate from the error channel per the non-local-return
// design: a *diag.Diagnostic always means "stop, something is wrong"; a
// ctrl value always means "stop, a return happened" and is never user
// reportable on its own.
type ctrlKind int

const (
	ctrlNone ctrlKind = iota
	ctrlReturn
)

type ctrl struct {
	kind  ctrlKind
	value runtime.Value
}

// Interp executes a Program that has already passed semantic analysis.
type Interp struct {
	stack  *runtime.CallStack
	out    Output
	trace  diag.Trace
}

// New constructs an Interp.
func New(out Output, trace diag.Trace) *Interp {
	if trace == nil {
		trace = diag.NopTrace{}
	}
	return &Interp{stack: runtime.NewCallStack(), out: out, trace: trace}
}

// Run executes prog end to end: pushes the global AR, registers every
// function declaration, invokes main, discards its value, and pops the
// global AR.
func (ip *Interp) Run(prog *ast.Program, funcs *sym.FuncTable) *diag.Diagnostic {
	ip.stack.PushGlobal()
	ip.traceStack("push <global>")

	for _, fn := range prog.Funcs {
		ip.stack.DefineFunc(toFuncValue(fn))
	}
	ip.stack.DefineFunc(toFuncValue(prog.Main))

	mainCall := &ast.Call{Name: "main"}
	if _, err := ip.evalCall(mainCall); err != nil {
		ip.stack.Pop()
		ip.traceStack("pop <global> (error unwind)")
		return err
	}

	ip.stack.Pop()
	ip.traceStack("pop <global>")
	return nil
}

func toFuncValue(fn *ast.FunctionDecl) runtime.FuncValue {
	params := make([]runtime.ParamBinding, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = runtime.ParamBinding{Name: p.Name, IsArray: p.IsArray}
	}
	return runtime.FuncValue{Name: fn.Name, RetType: fn.RetType, Params: params, Body: fn.Body}
}

func (ip *Interp) traceStack(label string) {
	ip.trace.Stackf("%s: %s", label, ip.stack.Snapshot())
}
