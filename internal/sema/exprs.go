package sema

import (
	"clike/internal/ast"
	"clike/internal/diag"
)

// analyzeExpr resolves identifiers and checks array/call usage, returning
// the expression's static type as used by the narrowing check. The switch
// is exhaustive over every ast.Expr variant.
func (a *Analyzer) analyzeExpr(expr ast.Expr) (ast.TypeTag, *diag.Diagnostic) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return ast.INT, nil
	case *ast.FloatLit:
		return ast.FLOAT, nil
	case *ast.CharLit:
		return ast.CHAR, nil
	case *ast.StringLit:
		return ast.STRING, nil
	case *ast.VarRef:
		sym, ok := a.scope.Lookup(e.Name, false)
		if !ok {
			return ast.VOID, diag.Errorf(diag.SemIDNotFound, e.Pos(), "undeclared identifier %q", e.Name)
		}
		return sym.Type, nil
	case *ast.Index:
		sym, ok := a.scope.Lookup(e.Name, false)
		if !ok {
			return ast.VOID, diag.Errorf(diag.SemIDNotFound, e.Pos(), "undeclared identifier %q", e.Name)
		}
		if !sym.IsArray {
			return ast.VOID, diag.Errorf(diag.SemNotAnArray, e.Pos(), "%q is not an array", e.Name)
		}
		if _, err := a.analyzeExpr(e.Idx); err != nil {
			return ast.VOID, err
		}
		return sym.Type, nil
	case *ast.UnaryOp:
		return a.analyzeExpr(e.Operand)
	case *ast.BinOp:
		return a.analyzeBinOp(e)
	case *ast.Call:
		return a.analyzeCall(e)
	}
	return ast.VOID, diag.Errorf(diag.ParseExpected, expr.Pos(), "internal: unhandled expression kind %T", expr)
}

func (a *Analyzer) analyzeBinOp(e *ast.BinOp) (ast.TypeTag, *diag.Diagnostic) {
	leftType, err := a.analyzeExpr(e.Left)
	if err != nil {
		return ast.VOID, err
	}
	rightType, err := a.analyzeExpr(e.Right)
	if err != nil {
		return ast.VOID, err
	}

	switch e.Op {
	case "/":
		return ast.FLOAT, nil
	case "+", "-", "*":
		if leftType == ast.FLOAT || rightType == ast.FLOAT {
			return ast.FLOAT, nil
		}
		return ast.INT, nil
	default: // relational and logical operators
		return ast.INT, nil
	}
}

func (a *Analyzer) analyzeCall(e *ast.Call) (ast.TypeTag, *diag.Diagnostic) {
	if e.Name == "print" {
		for _, arg := range e.Args {
			if _, err := a.analyzeExpr(arg); err != nil {
				return ast.VOID, err
			}
		}
		return ast.VOID, nil
	}

	fn, ok := a.funcs.Lookup(e.Name)
	if !ok {
		return ast.VOID, diag.Errorf(diag.SemIDNotFound, e.Pos(), "call to undeclared function %q", e.Name)
	}
	if len(e.Args) != len(fn.Params) {
		return ast.VOID, diag.Errorf(diag.SemArgCountMismatch, e.Pos(),
			"%q expects %d argument(s), got %d", e.Name, len(fn.Params), len(e.Args))
	}
	for _, arg := range e.Args {
		if _, err := a.analyzeExpr(arg); err != nil {
			return ast.VOID, err
		}
	}
	return fn.RetType, nil
}
