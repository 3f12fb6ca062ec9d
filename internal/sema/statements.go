package sema

import (
	"clike/internal/ast"
	"clike/internal/diag"
	"clike/internal/sym"
)

// analyzeStatement dispatches on every statement-position node kind. The
// switch is exhaustive over the statement variants ast.go defines.
func (a *Analyzer) analyzeStatement(node ast.Node) *diag.Diagnostic {
	switch n := node.(type) {
	case *ast.VarDecl:
		return a.analyzeVarDecl(n)
	case *ast.ArrayDecl:
		return a.analyzeArrayDecl(n)
	case *ast.Assign:
		return a.analyzeAssign(n)
	case *ast.If:
		return a.analyzeIf(n)
	case *ast.While:
		return a.analyzeWhile(n)
	case *ast.For:
		return a.analyzeFor(n)
	case *ast.Return:
		return a.analyzeReturn(n)
	case *ast.Call:
		_, err := a.analyzeCall(n)
		return err
	}
	return diag.Errorf(diag.ParseExpected, node.Pos(), "internal: unhandled statement kind %T", node)
}

func (a *Analyzer) analyzeVarDecl(n *ast.VarDecl) *diag.Diagnostic {
	vs := &sym.VarSymbol{Name: n.Name, Type: n.Type}
	if !a.scope.Insert(vs) {
		return diag.Errorf(diag.SemDuplicateID, n.Pos(), "%q is already declared in this scope", n.Name)
	}

	if n.Init == nil {
		return nil
	}
	initType, err := a.analyzeExpr(n.Init)
	if err != nil {
		return err
	}
	if n.Type == ast.INT && initType == ast.FLOAT {
		return diag.Errorf(diag.SemTypeNarrowing, n.Pos(), "cannot initialize int %q from a float expression", n.Name)
	}
	return nil
}

func (a *Analyzer) analyzeArrayDecl(n *ast.ArrayDecl) *diag.Diagnostic {
	vs := &sym.VarSymbol{Name: n.Name, Type: n.Type, IsArray: true, Size: n.Size}
	if !a.scope.Insert(vs) {
		return diag.Errorf(diag.SemDuplicateID, n.Pos(), "%q is already declared in this scope", n.Name)
	}
	return nil
}

func (a *Analyzer) analyzeAssign(n *ast.Assign) *diag.Diagnostic {
	targetType, err := a.analyzeExpr(n.Target)
	if err != nil {
		return err
	}
	valueType, err := a.analyzeExpr(n.Value)
	if err != nil {
		return err
	}
	if targetType == ast.INT && valueType == ast.FLOAT {
		return diag.Errorf(diag.SemTypeNarrowing, n.Pos(), "cannot assign a float expression to an int target")
	}
	return nil
}

func (a *Analyzer) analyzeIf(n *ast.If) *diag.Diagnostic {
	if _, err := a.analyzeExpr(n.Cond); err != nil {
		return err
	}
	if err := a.analyzeBlock(n.Then); err != nil {
		return err
	}
	if n.Else != nil {
		return a.analyzeBlock(n.Else)
	}
	return nil
}

func (a *Analyzer) analyzeWhile(n *ast.While) *diag.Diagnostic {
	if _, err := a.analyzeExpr(n.Cond); err != nil {
		return err
	}
	return a.analyzeBlock(n.Body)
}

func (a *Analyzer) analyzeFor(n *ast.For) *diag.Diagnostic {
	if n.Init != nil {
		if err := a.analyzeStatement(n.Init); err != nil {
			return err
		}
	}
	if n.Cond != nil {
		if _, err := a.analyzeExpr(n.Cond); err != nil {
			return err
		}
	}
	for _, post := range n.Post {
		if err := a.analyzeAssign(post); err != nil {
			return err
		}
	}
	return a.analyzeBlock(n.Body)
}

func (a *Analyzer) analyzeReturn(n *ast.Return) *diag.Diagnostic {
	if n.Value == nil {
		return nil
	}
	_, err := a.analyzeExpr(n.Value)
	return err
}
