// Package sema implements CLIKE's one-pass semantic analyzer: a visitor
// over the AST that builds the symbol table, checks identifier resolution,
// array usage, call arity, and the single static type rule (narrowing
// assignment).
package sema

import (
	"clike/internal/ast"
	"clike/internal/diag"
	"clike/internal/sym"
)

// Analyzer walks a validated (parsed) Program and reports the first
// semantic error it finds, if any. On success it returns the global
// function table; the interpreter accepts it but resolves calls through
// its global activation record instead.
type Analyzer struct {
	funcs   *sym.FuncTable
	scope   *sym.Scope
	trace   diag.Trace
}

// New returns an Analyzer that reports scope-exit records on trace.
func New(trace diag.Trace) *Analyzer {
	if trace == nil {
		trace = diag.NopTrace{}
	}
	return &Analyzer{trace: trace}
}

// Analyze runs the full pass described in the analyzer's per-node
// contracts. It returns the populated function table on success.
func (a *Analyzer) Analyze(prog *ast.Program) (*sym.FuncTable, *diag.Diagnostic) {
	a.funcs = sym.NewFuncTable()

	if prog.Main == nil {
		return nil, diag.Errorf(diag.SemMissingMain, nil, "program has no int main() function")
	}

	all := append(append([]*ast.FunctionDecl{}, prog.Funcs...), prog.Main)
	for _, fn := range all {
		fs := &sym.FuncSymbol{Name: fn.Name, RetType: fn.RetType, Params: fn.Params}
		if !a.funcs.Insert(fs) {
			return nil, diag.Errorf(diag.SemDuplicateID, fn.Pos(), "function %q is already declared", fn.Name)
		}
	}

	for _, fn := range all {
		if err := a.analyzeFunction(fn); err != nil {
			return nil, err
		}
	}

	return a.funcs, nil
}

func (a *Analyzer) analyzeFunction(fn *ast.FunctionDecl) *diag.Diagnostic {
	a.scope = sym.NewScope(nil)

	for _, param := range fn.Params {
		vs := &sym.VarSymbol{Name: param.Name, Type: param.Type, IsArray: param.IsArray}
		if !a.scope.Insert(vs) {
			return diag.Errorf(diag.SemDuplicateID, param.Pos(), "parameter %q is already declared", param.Name)
		}
	}

	if err := a.analyzeBlock(fn.Body); err != nil {
		return err
	}

	a.traceScopeExit(fn.Name)
	return nil
}

func (a *Analyzer) traceScopeExit(label string) {
	a.trace.Scopef("exit scope %s: %v", label, a.scope.Members())
}

func (a *Analyzer) analyzeBlock(block *ast.Block) *diag.Diagnostic {
	for _, stmt := range block.Statements {
		if err := a.analyzeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}
