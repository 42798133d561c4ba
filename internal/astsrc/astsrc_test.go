package astsrc_test

import (
	"testing"

	"github.com/errorck/errorck/internal/ast"
	"github.com/errorck/errorck/internal/astsrc"
)

func findCall(root ast.Node, name string) ast.Node {
	var found ast.Node
	root.Walk(func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if n.Kind() == ast.CallExpr && n.CalleeName() == name {
			found = n
			return false
		}
		return true
	})
	return found
}

func TestLanguageForPath(t *testing.T) {
	cases := map[string]astsrc.Language{
		"a.c":   astsrc.LangC,
		"a.h":   astsrc.LangC,
		"a.cc":  astsrc.LangCPP,
		"a.cpp": astsrc.LangCPP,
		"a.hpp": astsrc.LangCPP,
	}
	for path, want := range cases {
		if got := astsrc.LanguageForPath(path); got != want {
			t.Errorf("LanguageForPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestParseSourceExposesCallAndArguments(t *testing.T) {
	tree, err := astsrc.ParseSource("t.c", []byte(`int main(){ int x = foo(1, 2); return x; }`), astsrc.LangC)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	call := findCall(tree.Root(), "foo")
	if call == nil {
		t.Fatal("expected to find call to foo")
	}
	args := call.Arguments()
	if len(args) != 2 {
		t.Fatalf("Arguments() = %d, want 2", len(args))
	}
	if args[0].Text() != "1" || args[1].Text() != "2" {
		t.Errorf("Arguments text = %q, %q", args[0].Text(), args[1].Text())
	}
}

func TestExpressionStatementIsTransparent(t *testing.T) {
	tree, err := astsrc.ParseSource("t.c", []byte(`void f(){ foo(); }`), astsrc.LangC)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	call := findCall(tree.Root(), "foo")
	if call == nil {
		t.Fatal("expected to find call to foo")
	}
	parent := call.Parent()
	if parent == nil {
		t.Fatal("expected call's parent to be its enclosing block, not nil")
	}
	if parent.Kind() != ast.CompoundBlock {
		t.Errorf("call's parent kind = %v, want CompoundBlock (expression_statement should be transparent)", parent.Kind())
	}
}

func TestResolveVarFindsLocalDeclaration(t *testing.T) {
	tree, err := astsrc.ParseSource("t.c", []byte(`void f(){ int *p = 0; if (p) { p = p; } }`), astsrc.LangC)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	var ref ast.Node
	tree.Root().Walk(func(n ast.Node) bool {
		if n.Kind() == ast.DeclRefExpr && n.Name() == "p" {
			ref = n
		}
		return true
	})
	if ref == nil {
		t.Fatal("expected to find a reference to p")
	}
	v := ref.ResolveVar()
	if v == nil {
		t.Fatal("expected ResolveVar to resolve p to its declaration")
	}
	if v.NameText != "p" {
		t.Errorf("resolved var name = %q, want p", v.NameText)
	}
}

func TestResolveVarSkipsStaticLocal(t *testing.T) {
	tree, err := astsrc.ParseSource("t.c", []byte(`void f(){ static int cached = 0; if (cached) { cached = cached; } }`), astsrc.LangC)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	var ref ast.Node
	tree.Root().Walk(func(n ast.Node) bool {
		if n.Kind() == ast.DeclRefExpr && n.Name() == "cached" {
			ref = n
			return false
		}
		return true
	})
	if ref == nil {
		t.Fatal("expected to find a reference to cached")
	}
	if v := ref.ResolveVar(); v != nil {
		t.Errorf("ResolveVar = %v, want nil: a static local doesn't have local storage and isn't a resolvable local", v)
	}
}

func TestResolveVarFindsFunctionParameter(t *testing.T) {
	tree, err := astsrc.ParseSource("t.c", []byte(`void f(int err){ if (err) return; }`), astsrc.LangC)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	var ref ast.Node
	tree.Root().Walk(func(n ast.Node) bool {
		if n.Kind() == ast.DeclRefExpr && n.Name() == "err" {
			ref = n
		}
		return true
	})
	if ref == nil {
		t.Fatal("expected to find a reference to err")
	}
	if v := ref.ResolveVar(); v == nil || v.NameText != "err" {
		t.Errorf("ResolveVar = %v, want a var named err", v)
	}
}

func TestSwitchHasDefaultDetection(t *testing.T) {
	withDefault, err := astsrc.ParseSource("t.c", []byte(`void f(int x){ switch(x){ case 1: break; default: break; } }`), astsrc.LangC)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	withoutDefault, err := astsrc.ParseSource("t.c", []byte(`void f(int x){ switch(x){ case 1: break; } }`), astsrc.LangC)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}

	var sw1, sw2 ast.Node
	withDefault.Root().Walk(func(n ast.Node) bool {
		if n.Kind() == ast.SwitchStmt {
			sw1 = n
		}
		return true
	})
	withoutDefault.Root().Walk(func(n ast.Node) bool {
		if n.Kind() == ast.SwitchStmt {
			sw2 = n
		}
		return true
	})
	if sw1 == nil || sw2 == nil {
		t.Fatal("expected to find a switch statement in both sources")
	}
	if !sw1.SwitchHasDefault() {
		t.Error("expected SwitchHasDefault() to be true")
	}
	if sw2.SwitchHasDefault() {
		t.Error("expected SwitchHasDefault() to be false")
	}
}

func TestParseSourceWithOptionsPreservesFlags(t *testing.T) {
	opts := astsrc.Options{Includes: []string{"/usr/include"}, Defines: []string{"FOO=1"}}
	tree, err := astsrc.ParseSourceWithOptions("t.c", []byte(`void f(){}`), astsrc.LangC, opts)
	if err != nil {
		t.Fatalf("ParseSourceWithOptions: %v", err)
	}
	got := tree.Options()
	if len(got.Includes) != 1 || got.Includes[0] != "/usr/include" {
		t.Errorf("Includes = %v, want [/usr/include]", got.Includes)
	}
	if len(got.Defines) != 1 || got.Defines[0] != "FOO=1" {
		t.Errorf("Defines = %v, want [FOO=1]", got.Defines)
	}
}
