package sema

import (
	"testing"

	"clike/internal/diag"
	"clike/internal/parser"
	"clike/internal/source"
)

func analyze(t *testing.T, src string) *diag.Diagnostic {
	t.Helper()
	prog, perr := parser.Parse("/main.clike", []byte(src), source.MapLoader{})
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}
	_, serr := New(nil).Analyze(prog)
	return serr
}

func TestAnalyzer_MissingMain(t *testing.T) {
	err := analyze(t, `int notmain() { return 0; }`)
	if err == nil || err.Kind.String() != "MISSING_MAIN" {
		t.Fatalf("expected MISSING_MAIN, got %v", err)
	}
}

func TestAnalyzer_MalformedMainSignatureIsMissingMain(t *testing.T) {
	err := analyze(t, `void main(int x) { return; }`)
	if err == nil || err.Kind.String() != "MISSING_MAIN" {
		t.Fatalf("expected MISSING_MAIN for a malformed main signature, got %v", err)
	}
}

func TestAnalyzer_DuplicateFunction(t *testing.T) {
	err := analyze(t, `int f() { return 0; } int f() { return 1; } int main() { return f(); }`)
	if err == nil || err.Kind.String() != "DUPLICATE_ID" {
		t.Fatalf("expected DUPLICATE_ID, got %v", err)
	}
}

func TestAnalyzer_UndeclaredIdentifier(t *testing.T) {
	err := analyze(t, `int main() { return x; }`)
	if err == nil || err.Kind.String() != "ID_NOT_FOUND" {
		t.Fatalf("expected ID_NOT_FOUND, got %v", err)
	}
}

func TestAnalyzer_DuplicateDeclarationInScope(t *testing.T) {
	err := analyze(t, `int main() { int x = 0; int x = 1; return x; }`)
	if err == nil || err.Kind.String() != "DUPLICATE_ID" {
		t.Fatalf("expected DUPLICATE_ID, got %v", err)
	}
}

func TestAnalyzer_ArgCountMismatch(t *testing.T) {
	err := analyze(t, `int add(int a, int b) { return a + b; } int main() { return add(1); }`)
	if err == nil || err.Kind.String() != "ARG_COUNT_MISMATCH" {
		t.Fatalf("expected ARG_COUNT_MISMATCH, got %v", err)
	}
}

func TestAnalyzer_TypeNarrowingRejected(t *testing.T) {
	err := analyze(t, `int main() { int x = 1.5; return x; }`)
	if err == nil || err.Kind.String() != "TYPE_NARROWING" {
		t.Fatalf("expected TYPE_NARROWING, got %v", err)
	}
}

func TestAnalyzer_WideningAllowed(t *testing.T) {
	err := analyze(t, `int main() { float x = 1; return 0; }`)
	if err != nil {
		t.Fatalf("expected widening int->float to be accepted, got %v", err)
	}
}

func TestAnalyzer_IndexOnNonArray(t *testing.T) {
	err := analyze(t, `int main() { int x = 0; return x[0]; }`)
	if err == nil || err.Kind.String() != "NOT_AN_ARRAY" {
		t.Fatalf("expected NOT_AN_ARRAY, got %v", err)
	}
}

func TestAnalyzer_ValidProgramPasses(t *testing.T) {
	err := analyze(t, `
int factorial(int n) {
	if (n <= 1) { return 1; } else { return n * factorial(n - 1); }
}
int main() {
	print(factorial(5));
}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzer_ForInitScopedToFunctionRejectsRedeclarationAcrossLoops(t *testing.T) {
	err := analyze(t, `
int main() {
	for (int i = 0; i < 3; i = i + 1) {}
	for (int i = 0; i < 3; i = i + 1) {}
	return 0;
}`)
	if err == nil || err.Kind.String() != "DUPLICATE_ID" {
		t.Fatalf("expected DUPLICATE_ID for redeclared for-init across loops, got %v", err)
	}
}
