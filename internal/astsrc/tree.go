package astsrc

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/errorck/errorck/internal/ast"
)

// Tree owns a single parsed translation unit: the tree-sitter syntax tree,
// the source bytes it spans (node text and locations are computed by
// slicing this, never copied into the tree), and the variable-identity
// cache every node wrapped from this tree shares.
type Tree struct {
	filename string
	source   []byte
	lang     Language
	sitter   *sitter.Tree

	// varCache gives every DeclRefExpr that resolves to the same declarator
	// the same *ast.Var, mirroring how clang hands out one VarDecl* per
	// declaration. Keyed by the declarator node's byte span, since
	// go-tree-sitter materializes a fresh *sitter.Node value on every
	// traversal step rather than handing out a stable pointer.
	varCache map[[2]uint32]*ast.Var

	opts Options
}

func newTree(filename string, source []byte, lang Language, st *sitter.Tree, opts Options) *Tree {
	return &Tree{
		filename: filename,
		source:   source,
		lang:     lang,
		sitter:   st,
		varCache: make(map[[2]uint32]*ast.Var),
		opts:     opts,
	}
}

// Root returns the translation-unit root as an ast.Node.
func (t *Tree) Root() ast.Node {
	return t.wrap(t.sitter.RootNode())
}

// Filename returns the name this tree was parsed under.
func (t *Tree) Filename() string {
	return t.filename
}

// Options returns the compilation-database-derived include/define flags
// this translation unit was parsed with, for diagnostics that want to
// report the build context a call site was found under.
func (t *Tree) Options() Options {
	return t.opts
}

func (t *Tree) wrap(sn *sitter.Node) ast.Node {
	if sn == nil || sn.IsNull() {
		return nil
	}
	return &node{tree: t, n: sn}
}

// wrapStmt wraps sn as a "statement slot" value: if sn is an
// expression_statement (the grammar's bare wrapper around a top-level
// expression, with no AST significance of its own) it is transparently
// unwrapped to the expression it holds, so the facade never exposes this
// node kind the way clang's AST has no equivalent for it either.
func (t *Tree) wrapStmt(sn *sitter.Node) ast.Node {
	if sn == nil || sn.IsNull() {
		return nil
	}
	for sn.Type() == "expression_statement" && sn.NamedChildCount() == 1 {
		sn = sn.NamedChild(0)
	}
	return &node{tree: t, n: sn}
}

func (t *Tree) spanKey(sn *sitter.Node) [2]uint32 {
	return [2]uint32{sn.StartByte(), sn.EndByte()}
}

func (t *Tree) varFor(declarator *sitter.Node, name string) *ast.Var {
	key := t.spanKey(declarator)
	if v, ok := t.varCache[key]; ok {
		return v
	}
	v := &ast.Var{NameText: name, Decl: t.wrap(declarator)}
	t.varCache[key] = v
	return v
}
