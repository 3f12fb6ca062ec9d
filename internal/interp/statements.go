package interp

import (
	"clike/internal/ast"
	"clike/internal/diag"
	"clike/internal/runtime"
)

// execBlock runs every statement in order, stopping early if any of them
// yields a propagating return.
func (ip *Interp) execBlock(block *ast.Block) (ctrl, *diag.Diagnostic) {
	for _, stmt := range block.Statements {
		c, err := ip.execStatement(stmt)
		if err != nil {
			return ctrl{}, err
		}
		if c.kind == ctrlReturn {
			return c, nil
		}
	}
	return ctrl{}, nil
}

// execStatement dispatches on every statement-position node kind. The
// switch is exhaustive over the statement variants ast.go defines.
func (ip *Interp) execStatement(node ast.Node) (ctrl, *diag.Diagnostic) {
	ip.trace.Debugf("exec %T", node)

	switch n := node.(type) {
	case *ast.VarDecl:
		return ctrl{}, ip.execVarDecl(n)
	case *ast.ArrayDecl:
		return ctrl{}, ip.execArrayDecl(n)
	case *ast.Assign:
		return ctrl{}, ip.execAssign(n)
	case *ast.If:
		return ip.execIf(n)
	case *ast.While:
		return ip.execWhile(n)
	case *ast.For:
		return ip.execFor(n)
	case *ast.Return:
		return ip.execReturn(n)
	case *ast.Call:
		_, err := ip.evalCall(n)
		return ctrl{}, err
	}
	return ctrl{}, diag.Errorf(diag.RunTypeError, node.Pos(), "internal: unhandled statement kind %T", node)
}

func (ip *Interp) execVarDecl(n *ast.VarDecl) *diag.Diagnostic {
	v := runtime.Zero(n.Type)
	if n.Init != nil {
		val, err := ip.evalExpr(n.Init)
		if err != nil {
			return err
		}
		v = widen(n.Type, val)
	}
	ip.stack.Peek().Set(n.Name, v)
	return nil
}

func (ip *Interp) execArrayDecl(n *ast.ArrayDecl) *diag.Diagnostic {
	arr := runtime.NewArray(n.Type, n.Size)
	ip.stack.Peek().Set(n.Name, runtime.Value{Type: n.Type, Array: arr})
	return nil
}

// widen applies the only implicit conversion the interpreter performs:
// int -> float. Narrowing was already rejected during analysis.
func widen(declared ast.TypeTag, v runtime.Value) runtime.Value {
	if declared == ast.FLOAT && v.Type == ast.INT {
		return runtime.Value{Type: ast.FLOAT, Float: float64(v.Int)}
	}
	return v
}

func (ip *Interp) execAssign(n *ast.Assign) *diag.Diagnostic {
	val, err := ip.evalExpr(n.Value)
	if err != nil {
		return err
	}

	switch target := n.Target.(type) {
	case *ast.VarRef:
		cur, _ := ip.stack.Peek().Get(target.Name)
		ip.stack.Peek().Set(target.Name, widen(cur.Type, val))
		return nil
	case *ast.Index:
		arr, idx, err := ip.resolveIndex(target)
		if err != nil {
			return err
		}
		arr.Items[idx] = widen(arr.ElemType, val)
		return nil
	}
	return diag.Errorf(diag.RunTypeError, n.Pos(), "internal: unhandled assignment target %T", n.Target)
}

// resolveIndex evaluates and range-checks an Index node's subscript,
// returning the backing array and the validated integer index.
func (ip *Interp) resolveIndex(n *ast.Index) (*runtime.Array, int64, *diag.Diagnostic) {
	base, ok := ip.stack.Peek().Get(n.Name)
	if !ok || base.Array == nil {
		return nil, 0, diag.Errorf(diag.RunTypeError, n.Pos(), "%q is not an array at runtime", n.Name)
	}

	idxVal, err := ip.evalExpr(n.Idx)
	if err != nil {
		return nil, 0, err
	}
	idx := idxVal.Int
	if idxVal.Type == ast.FLOAT {
		idx = int64(idxVal.Float)
	}

	if idx < 0 || idx >= int64(len(base.Array.Items)) {
		return nil, 0, diag.Errorf(diag.RunIndexOutOfBounds, n.Pos(), "index %d out of bounds for array %q of length %d", idx, n.Name, len(base.Array.Items))
	}
	return base.Array, idx, nil
}

func (ip *Interp) execIf(n *ast.If) (ctrl, *diag.Diagnostic) {
	cond, err := ip.evalExpr(n.Cond)
	if err != nil {
		return ctrl{}, err
	}
	if cond.Truthy() {
		return ip.execBlock(n.Then)
	}
	if n.Else != nil {
		return ip.execBlock(n.Else)
	}
	return ctrl{}, nil
}

func (ip *Interp) execWhile(n *ast.While) (ctrl, *diag.Diagnostic) {
	for {
		cond, err := ip.evalExpr(n.Cond)
		if err != nil {
			return ctrl{}, err
		}
		if !cond.Truthy() {
			return ctrl{}, nil
		}
		c, err := ip.execBlock(n.Body)
		if err != nil {
			return ctrl{}, err
		}
		if c.kind == ctrlReturn {
			return c, nil
		}
	}
}

func (ip *Interp) execFor(n *ast.For) (ctrl, *diag.Diagnostic) {
	if n.Init != nil {
		if _, err := ip.execStatement(n.Init); err != nil {
			return ctrl{}, err
		}
	}

	for {
		if n.Cond != nil {
			cond, err := ip.evalExpr(n.Cond)
			if err != nil {
				return ctrl{}, err
			}
			if !cond.Truthy() {
				return ctrl{}, nil
			}
		}

		c, err := ip.execBlock(n.Body)
		if err != nil {
			return ctrl{}, err
		}
		if c.kind == ctrlReturn {
			return c, nil
		}

		for _, post := range n.Post {
			if err := ip.execAssign(post); err != nil {
				return ctrl{}, err
			}
		}
	}
}

func (ip *Interp) execReturn(n *ast.Return) (ctrl, *diag.Diagnostic) {
	if n.Value == nil {
		return ctrl{kind: ctrlReturn, value: runtime.Value{Type: ast.VOID}}, nil
	}
	val, err := ip.evalExpr(n.Value)
	if err != nil {
		return ctrl{}, err
	}
	return ctrl{kind: ctrlReturn, value: val}, nil
}
