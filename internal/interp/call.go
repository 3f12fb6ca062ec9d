package interp

import (
	"clike/internal/ast"
	"clike/internal/diag"
	"clike/internal/runtime"
)

// evalCall implements the Call contract: built-in print is handled
// inline; user functions get a fresh AR, positional argument binding
// (arrays by reference, scalars by value), and have their return signal
// caught here so it never escapes past this boundary.
func (ip *Interp) evalCall(n *ast.Call) (runtime.Value, *diag.Diagnostic) {
	if n.Name == "print" {
		return ip.evalPrint(n)
	}

	fn, ok := ip.stack.LookupFunc(n.Name)
	if !ok {
		return runtime.Value{}, diag.Errorf(diag.RunUndefinedFunction, n.Pos(), "call to undefined function %q", n.Name)
	}
	if len(n.Args) != len(fn.Params) {
		return runtime.Value{}, diag.Errorf(diag.RunTypeError, n.Pos(), "%q expects %d argument(s), got %d", n.Name, len(fn.Params), len(n.Args))
	}

	args := make([]runtime.Value, len(n.Args))
	for i, argExpr := range n.Args {
		v, err := ip.evalExpr(argExpr)
		if err != nil {
			return runtime.Value{}, err
		}
		args[i] = v
	}

	ip.stack.Push(fn.Name)
	ip.traceStack("push " + fn.Name)
	frame := ip.stack.Peek()
	for i, param := range fn.Params {
		frame.Set(param.Name, args[i])
	}

	c, err := ip.execBlock(fn.Body)

	ip.stack.Pop()
	ip.traceStack("pop " + fn.Name)

	if err != nil {
		return runtime.Value{}, err
	}
	if c.kind == ctrlReturn {
		return c.value, nil
	}
	return runtime.Value{Type: fn.RetType}, nil
}

func (ip *Interp) evalPrint(n *ast.Call) (runtime.Value, *diag.Diagnostic) {
	for _, argExpr := range n.Args {
		v, err := ip.evalExpr(argExpr)
		if err != nil {
			return runtime.Value{}, err
		}
		ip.out.Println(v.Text())
	}
	return runtime.Value{Type: ast.VOID}, nil
}
