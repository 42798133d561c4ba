package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/errorck/errorck/internal/config"
)

func TestLoadValidRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notable.json")
	if err := os.WriteFile(path, []byte(`[
		{"name": "malloc", "reporting": "return_value"},
		{"name": "strtoull", "reporting": "errno"},
		{"name": "handle_error", "type": "handler"},
		{"name": "log_error", "type": "logger"}
	]`), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if role, ok := reg.IsWatched("malloc"); !ok || role != config.RoleWatchedReturnValue {
		t.Errorf("malloc role = %v, %v; want RoleWatchedReturnValue, true", role, ok)
	}
	if role, ok := reg.IsWatched("strtoull"); !ok || role != config.RoleWatchedErrno {
		t.Errorf("strtoull role = %v, %v; want RoleWatchedErrno, true", role, ok)
	}
	if !reg.IsHandler("handle_error") {
		t.Error("handle_error should be a handler")
	}
	if !reg.IsLogger("log_error") {
		t.Error("log_error should be a logger")
	}
	if _, ok := reg.IsWatched("unregistered"); ok {
		t.Error("unregistered function should not be watched")
	}
}

func TestRejectsBothReportingAndType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notable.json")
	if err := os.WriteFile(path, []byte(`[{"name": "f", "reporting": "errno", "type": "handler"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected an error for an entry setting both reporting and type")
	}
}

func TestRejectsNeitherReportingNorType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notable.json")
	if err := os.WriteFile(path, []byte(`[{"name": "f"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected an error for an entry setting neither reporting nor type")
	}
}

func TestRejectsDuplicateNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notable.json")
	if err := os.WriteFile(path, []byte(`[
		{"name": "f", "reporting": "errno"},
		{"name": "f", "type": "handler"}
	]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected an error for a duplicate name")
	}
}

func TestRejectsUnknownReportingValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notable.json")
	if err := os.WriteFile(path, []byte(`[{"name": "f", "reporting": "exit_code"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected an error for an unknown reporting value")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing registry file")
	}
}

func TestNewForTest(t *testing.T) {
	reg, err := config.NewForTest(map[string]string{
		"malloc": "return_value",
		"handle": "handler",
	})
	if err != nil {
		t.Fatalf("NewForTest: %v", err)
	}
	if role, ok := reg.IsWatched("malloc"); !ok || role != config.RoleWatchedReturnValue {
		t.Errorf("malloc role = %v, %v; want RoleWatchedReturnValue, true", role, ok)
	}
	if !reg.IsHandler("handle") {
		t.Error("handle should be a handler")
	}
}
