package parser

import (
	"testing"

	"clike/internal/ast"
	"clike/internal/source"
)

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse("/main.clike", []byte(src), source.MapLoader{})
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func TestParser_MainExtraction(t *testing.T) {
	prog := parseSrc(t, `int main() { return 0; }`)
	if prog.Main == nil {
		t.Fatal("expected main to be extracted")
	}
	if len(prog.Funcs) != 0 {
		t.Fatalf("expected no other functions, got %d", len(prog.Funcs))
	}
}

func TestParser_MalformedMainSignatureNotExtracted(t *testing.T) {
	prog := parseSrc(t, `void main(int x) { return; }`)
	if prog.Main != nil {
		t.Fatal("expected a void main(int) to not be extracted as Program.Main")
	}
	if len(prog.Funcs) != 1 || prog.Funcs[0].Name != "main" {
		t.Fatalf("expected the malformed main to remain an ordinary function, got %+v", prog.Funcs)
	}
}

func TestParser_FunctionWithParamsAndArrayParam(t *testing.T) {
	prog := parseSrc(t, `int sum(int xs[], int n) { return n; }`)
	if len(prog.Funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(prog.Funcs))
	}
	fn := prog.Funcs[0]
	if len(fn.Params) != 2 || !fn.Params[0].IsArray || fn.Params[1].IsArray {
		t.Fatalf("unexpected params: %+v", fn.Params)
	}
}

func TestParser_BinOpPrecedenceAndAssociativity(t *testing.T) {
	prog := parseSrc(t, `int main() { int x = 1 + 2 * 3 - 4; return x; }`)
	decl := prog.Main.Body.Statements[0].(*ast.VarDecl)
	top := decl.Init.(*ast.BinOp)
	if top.Op != "-" {
		t.Fatalf("expected top-level op '-', got %q", top.Op)
	}
	left := top.Left.(*ast.BinOp)
	if left.Op != "+" {
		t.Fatalf("expected left op '+', got %q", left.Op)
	}
	right := left.Right.(*ast.BinOp)
	if right.Op != "*" {
		t.Fatalf("expected nested op '*', got %q", right.Op)
	}
}

func TestParser_CommaDeclaratorsFlattened(t *testing.T) {
	prog := parseSrc(t, `int main() { int a = 1, b = 2; return a; }`)
	stmts := prog.Main.Body.Statements
	if len(stmts) != 3 {
		t.Fatalf("expected comma declarators to flatten into sibling statements, got %d: %+v", len(stmts), stmts)
	}
	if stmts[0].(*ast.VarDecl).Name != "a" || stmts[1].(*ast.VarDecl).Name != "b" {
		t.Fatalf("unexpected declarator order: %+v", stmts)
	}
	if _, ok := stmts[2].(*ast.Return); !ok {
		t.Fatalf("expected trailing return statement, got %T", stmts[2])
	}
}

func TestParser_ArrayDeclAndIndexAssign(t *testing.T) {
	prog := parseSrc(t, `int main() { int xs[3]; xs[0] = 5; return xs[0]; }`)
	stmts := prog.Main.Body.Statements
	if _, ok := stmts[0].(*ast.ArrayDecl); !ok {
		t.Fatalf("expected ArrayDecl, got %T", stmts[0])
	}
	assign, ok := stmts[1].(*ast.Assign)
	if !ok {
		t.Fatalf("expected Assign, got %T", stmts[1])
	}
	if _, ok := assign.Target.(*ast.Index); !ok {
		t.Fatalf("expected Index target, got %T", assign.Target)
	}
}

func TestParser_CallStatementVsAssignStatement(t *testing.T) {
	prog := parseSrc(t, `int main() { print(1); int x; x = 2; return x; }`)
	stmts := prog.Main.Body.Statements
	if _, ok := stmts[0].(*ast.Call); !ok {
		t.Fatalf("expected Call statement, got %T", stmts[0])
	}
	if _, ok := stmts[2].(*ast.Assign); !ok {
		t.Fatalf("expected Assign statement, got %T", stmts[2])
	}
}

func TestParser_ForLoopClauses(t *testing.T) {
	prog := parseSrc(t, `int main() { int s = 0; for (int i = 0; i < 10; i = i + 1) { s = s + i; } return s; }`)
	forNode := prog.Main.Body.Statements[1].(*ast.For)
	if _, ok := forNode.Init.(*ast.VarDecl); !ok {
		t.Fatalf("expected VarDecl init, got %T", forNode.Init)
	}
	if forNode.Cond == nil {
		t.Fatal("expected a condition")
	}
	if len(forNode.Post) != 1 {
		t.Fatalf("expected 1 post-assign, got %d", len(forNode.Post))
	}
}

func TestParser_IfElse(t *testing.T) {
	prog := parseSrc(t, `int main() { if (1 < 2) { return 1; } else { return 0; } }`)
	ifNode := prog.Main.Body.Statements[0].(*ast.If)
	if ifNode.Else == nil {
		t.Fatal("expected an else block")
	}
}

func TestParser_ExpectedErrorOnMissingSemicolon(t *testing.T) {
	_, err := Parse("/main.clike", []byte(`int main() { return 0 }`), source.MapLoader{})
	if err == nil || err.Kind.String() != "PARSE_EXPECTED" {
		t.Fatalf("expected PARSE_EXPECTED, got %v", err)
	}
}

func TestParser_Include(t *testing.T) {
	loader := source.MapLoader{
		"/util.clike": `int add(int a, int b) { return a + b; }`,
	}
	prog, err := Parse("/main.clike", []byte(`#include "util.clike"
int main() { return add(2, 3); }`), loader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Funcs) != 1 || prog.Funcs[0].Name != "add" {
		t.Fatalf("expected included function 'add', got %+v", prog.Funcs)
	}
}

func TestParser_IncludeDedupIgnoresRepeat(t *testing.T) {
	loader := source.MapLoader{
		"/util.clike": `int add(int a, int b) { return a + b; }`,
	}
	prog, err := Parse("/main.clike", []byte(`#include "util.clike"
#include "util.clike"
int main() { return add(2, 3); }`), loader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Funcs) != 1 {
		t.Fatalf("expected single add despite repeated include, got %d", len(prog.Funcs))
	}
}

func TestParser_RecursiveIncludeIsHarmless(t *testing.T) {
	loader := source.MapLoader{
		"/a.clike": `#include "b.clike"
int fa() { return 1; }`,
		"/b.clike": `#include "a.clike"
int fb() { return 2; }`,
	}
	prog, err := Parse("/main.clike", []byte(`#include "a.clike"
int main() { return fa() + fb(); }`), loader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := map[string]bool{}
	for _, fn := range prog.Funcs {
		names[fn.Name] = true
	}
	if !names["fa"] || !names["fb"] {
		t.Fatalf("expected both fa and fb available, got %+v", prog.Funcs)
	}
}

func TestParser_IncludeAfterDeclarationIsBadPosition(t *testing.T) {
	_, err := Parse("/main.clike", []byte(`int main() { return 0; }
#include "util.clike"`), source.MapLoader{})
	if err == nil || err.Kind.String() != "PARSE_BAD_INCLUDE_POSITION" {
		t.Fatalf("expected PARSE_BAD_INCLUDE_POSITION, got %v", err)
	}
}

func TestParser_IncludeDepthCapIsOverridable(t *testing.T) {
	loader := source.MapLoader{
		"/a.clike": `#include "b.clike"
int fa() { return 1; }`,
		"/b.clike": `int fb() { return 2; }`,
	}
	_, err := ParseWithDepth("/main.clike", []byte(`#include "a.clike"
int main() { return 0; }`), loader, 1)
	if err == nil || err.Kind.String() != "PARSE_INCLUDE_DEPTH" {
		t.Fatalf("expected PARSE_INCLUDE_DEPTH with a depth cap of 1, got %v", err)
	}
}

func TestParser_IncludeMissingFileFailsIO(t *testing.T) {
	_, err := Parse("/main.clike", []byte(`#include "missing.clike"
int main() { return 0; }`), source.MapLoader{})
	if err == nil || err.Kind.String() != "PARSE_INCLUDE_IO" {
		t.Fatalf("expected PARSE_INCLUDE_IO, got %v", err)
	}
}
