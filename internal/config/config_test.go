package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "clike.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IncludeMaxDepth != 64 || cfg.TraceDebug || cfg.PrintJoin {
		t.Fatalf("expected baseline defaults, got %+v", cfg)
	}
}

func TestLoad_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clike.toml")
	contents := `
[trace]
debug = true
scope = true

[include]
search-paths = ["lib", "vendor"]
max-depth = 8

[output]
print-join = true
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.TraceDebug || !cfg.TraceScope || cfg.TraceStack {
		t.Fatalf("unexpected trace config: %+v", cfg)
	}
	if cfg.IncludeMaxDepth != 8 || len(cfg.IncludeSearchPaths) != 2 {
		t.Fatalf("unexpected include config: %+v", cfg)
	}
	if !cfg.PrintJoin {
		t.Fatal("expected print-join to be true")
	}
}
