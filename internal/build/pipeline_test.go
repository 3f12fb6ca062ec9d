package build

import (
	"os"
	"path/filepath"
	"testing"

	"clike/internal/config"
	"clike/internal/diag"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPipeline_RunSucceeds(t *testing.T) {
	dir := t.TempDir()
	mainPath := writeFile(t, dir, "main.clike", `
int main() {
	print("ok");
}
`)

	logger := diag.NewLogger(diag.LevelSilent, mainPath)
	p := NewPipeline(config.Default(), diag.NopTrace{}, logger)
	if err := p.Run(mainPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPipeline_ResolvesIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "util.clike", `
int add(int a, int b) {
	return a + b;
}
`)
	mainPath := writeFile(t, dir, "main.clike", `
#include "util.clike"
int main() {
	print(add(2, 3));
}
`)

	logger := diag.NewLogger(diag.LevelSilent, mainPath)
	p := NewPipeline(config.Default(), diag.NopTrace{}, logger)
	if err := p.Run(mainPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPipeline_StopsAtFirstParseError(t *testing.T) {
	dir := t.TempDir()
	mainPath := writeFile(t, dir, "main.clike", `int main() { print("unterminated ; }`)

	logger := diag.NewLogger(diag.LevelSilent, mainPath)
	p := NewPipeline(config.Default(), diag.NopTrace{}, logger)
	if err := p.Run(mainPath); err == nil {
		t.Fatal("expected a diagnostic for the unterminated string")
	}
}

func TestPipeline_StopsAtSemanticError(t *testing.T) {
	dir := t.TempDir()
	mainPath := writeFile(t, dir, "main.clike", `
int main() {
	print(missing);
}
`)

	logger := diag.NewLogger(diag.LevelSilent, mainPath)
	p := NewPipeline(config.Default(), diag.NopTrace{}, logger)
	err := p.Run(mainPath)
	if err == nil {
		t.Fatal("expected ID_NOT_FOUND")
	}
	if err.Kind != diag.SemIDNotFound {
		t.Fatalf("got kind %v", err.Kind)
	}
}

func TestPipeline_StopsAtRuntimeError(t *testing.T) {
	dir := t.TempDir()
	mainPath := writeFile(t, dir, "main.clike", `
int main() {
	print(1 / 0);
}
`)

	logger := diag.NewLogger(diag.LevelSilent, mainPath)
	p := NewPipeline(config.Default(), diag.NopTrace{}, logger)
	err := p.Run(mainPath)
	if err == nil {
		t.Fatal("expected DIV_BY_ZERO")
	}
	if err.Kind != diag.RunDivByZero {
		t.Fatalf("got kind %v", err.Kind)
	}
}

func TestPipeline_HonorsSearchPaths(t *testing.T) {
	workDir := t.TempDir()
	libDir := t.TempDir()
	writeFile(t, libDir, "util.clike", `
int twice(int x) {
	return x * 2;
}
`)
	mainPath := writeFile(t, workDir, "main.clike", `
#include "util.clike"
int main() {
	print(twice(21));
}
`)

	cfg := config.Default()
	cfg.IncludeSearchPaths = []string{libDir}

	logger := diag.NewLogger(diag.LevelSilent, mainPath)
	p := NewPipeline(cfg, diag.NopTrace{}, logger)
	if err := p.Run(mainPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
