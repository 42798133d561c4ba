package compdb_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/errorck/errorck/internal/compdb"
)

func writeCompDB(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "compile_commands.json"), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadArgumentsForm(t *testing.T) {
	dir := t.TempDir()
	writeCompDB(t, dir, `[
		{
			"directory": "/proj",
			"file": "src/a.c",
			"arguments": ["cc", "-Iinclude", "-I", "/usr/local/include", "-DFOO", "-D", "BAR=1", "-c", "src/a.c"]
		}
	]`)

	entries, err := compdb.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if got, want := e.AbsPath(), filepath.Join("/proj", "src/a.c"); got != want {
		t.Errorf("AbsPath = %q, want %q", got, want)
	}
	wantIncludes := []string{"include", "/usr/local/include"}
	if len(e.Includes) != len(wantIncludes) {
		t.Fatalf("Includes = %v, want %v", e.Includes, wantIncludes)
	}
	for i, v := range wantIncludes {
		if e.Includes[i] != v {
			t.Errorf("Includes[%d] = %q, want %q", i, e.Includes[i], v)
		}
	}
	wantDefines := []string{"FOO", "BAR=1"}
	for i, v := range wantDefines {
		if e.Defines[i] != v {
			t.Errorf("Defines[%d] = %q, want %q", i, e.Defines[i], v)
		}
	}
}

func TestLoadCommandStringForm(t *testing.T) {
	dir := t.TempDir()
	writeCompDB(t, dir, `[
		{"directory": "/proj", "file": "b.c", "command": "cc -Ifoo -DBAZ -c b.c"}
	]`)

	entries, err := compdb.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 1 || len(entries[0].Includes) != 1 || entries[0].Includes[0] != "foo" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestAbsPathAlreadyAbsolute(t *testing.T) {
	e := compdb.Entry{Directory: "/proj", File: "/other/c.c"}
	if got, want := e.AbsPath(), "/other/c.c"; got != want {
		t.Errorf("AbsPath = %q, want %q", got, want)
	}
}

func TestLoadRejectsMissingFields(t *testing.T) {
	dir := t.TempDir()
	writeCompDB(t, dir, `[{"directory": "/proj"}]`)
	if _, err := compdb.Load(dir); err == nil {
		t.Fatal("expected an error for an entry missing file")
	}
}

func TestLoadMissingCompDB(t *testing.T) {
	if _, err := compdb.Load(t.TempDir()); err == nil {
		t.Fatal("expected an error when compile_commands.json is absent")
	}
}
