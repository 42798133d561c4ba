package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, dir string, compileCommandsEntries string) (notablePath, dbPath string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "compile_commands.json"), []byte("["+compileCommandsEntries+"]"), 0o644); err != nil {
		t.Fatalf("write compile_commands.json: %v", err)
	}
	notablePath = filepath.Join(dir, "notable.json")
	if err := os.WriteFile(notablePath, []byte(`[{"name":"malloc","reporting":"return_value"}]`), 0o644); err != nil {
		t.Fatalf("write notable.json: %v", err)
	}
	dbPath = filepath.Join(dir, "out.db")
	return notablePath, dbPath
}

func TestRunReturnsErrorWhenATranslationUnitFailsToAnalyze(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "good.c"), []byte(`void f(){ malloc(10); }`), 0o644); err != nil {
		t.Fatalf("write good.c: %v", err)
	}

	entries := `{"directory":"` + dir + `","file":"good.c","command":"cc -c good.c"},` +
		`{"directory":"` + dir + `","file":"missing.c","command":"cc -c missing.c"}`
	notable, dbPath := writeFixture(t, dir, entries)

	err := run(notable, dbPath, dir, false, 1)
	if err == nil {
		t.Fatal("expected run to return a non-nil error when a translation unit fails to analyze, per the frontend-error exit contract")
	}
}

func TestRunSucceedsWhenEveryTranslationUnitParses(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "good.c"), []byte(`void f(){ malloc(10); }`), 0o644); err != nil {
		t.Fatalf("write good.c: %v", err)
	}

	entries := `{"directory":"` + dir + `","file":"good.c","command":"cc -c good.c"}`
	notable, dbPath := writeFixture(t, dir, entries)

	if err := run(notable, dbPath, dir, false, 1); err != nil {
		t.Fatalf("run: %v", err)
	}
}
