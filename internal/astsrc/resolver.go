package astsrc

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/errorck/errorck/internal/ast"
)

// resolveVar finds the local variable a DeclRefExpr's identifier names,
// mirroring clang's ordinary lexical lookup closely enough for the
// syntax-driven rules in the classifier: walk outward through enclosing
// compound blocks declared before ref, falling back to the enclosing
// function's parameter list. Declarations in sibling or inner blocks, or
// later in the same block, are correctly invisible - this is a linear scan
// of each enclosing block's statements up to (not including) the one
// containing ref.
func resolveVar(t *Tree, ref *sitter.Node) *ast.Var {
	name := ref.Content(t.source)

	block := ref
	for block != nil {
		compound := parentCompound(block)
		if compound == nil {
			break
		}
		if v := searchCompoundBefore(t, compound, block, name); v != nil {
			return v
		}
		block = compound
	}

	if fn := enclosingFunctionDefinition(ref); fn != nil {
		if v := searchParameters(t, fn, name); v != nil {
			return v
		}
	}
	return nil
}

// parentCompound returns the nearest ancestor compound_statement (or
// case_statement, which can hold its own declarations) strictly above n.
func parentCompound(n *sitter.Node) *sitter.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "compound_statement" || p.Type() == "case_statement" {
			return p
		}
	}
	return nil
}

// searchCompoundBefore scans compound's direct statement children up to (not
// including) the one that contains before, looking for a declaration
// introducing name. Later declarations are intentionally not visible to an
// earlier reference, matching ordinary C scoping. A declaration carrying a
// static storage-class-specifier is skipped: it doesn't have local storage
// (clang's VarDecl::hasLocalStorage is false for it), so it isn't a
// resolvable local for the tracker's purposes.
func searchCompoundBefore(t *Tree, compound, before *sitter.Node, name string) *ast.Var {
	for i := 0; i < int(compound.NamedChildCount()); i++ {
		stmt := compound.NamedChild(i)
		if spanContains(stmt, before) {
			return nil
		}
		if stmt.Type() != "declaration" || declarationIsStatic(stmt, t.source) {
			continue
		}
		for j := 0; j < int(stmt.ChildCount()); j++ {
			if stmt.FieldNameForChild(j) != "declarator" {
				continue
			}
			declName, _ := declaratorNameAndInit(stmt.Child(j), t.source)
			if declName == name {
				return t.varFor(stmt.Child(j), declName)
			}
		}
	}
	return nil
}

// declarationIsStatic reports whether a declaration node carries a "static"
// storage_class_specifier child.
func declarationIsStatic(decl *sitter.Node, source []byte) bool {
	for i := 0; i < int(decl.ChildCount()); i++ {
		c := decl.Child(i)
		if c.Type() == "storage_class_specifier" && c.Content(source) == "static" {
			return true
		}
	}
	return false
}

func spanContains(outer, inner *sitter.Node) bool {
	return outer.StartByte() <= inner.StartByte() && inner.EndByte() <= outer.EndByte()
}

func enclosingFunctionDefinition(n *sitter.Node) *sitter.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "function_definition" {
			return p
		}
	}
	return nil
}

// searchParameters looks for name among a function_definition's parameter
// list, drilling through the (possibly pointer-wrapped) function_declarator.
func searchParameters(t *Tree, fn *sitter.Node, name string) *ast.Var {
	declarator := fn.ChildByFieldName("declarator")
	for declarator != nil && declarator.Type() != "function_declarator" {
		declarator = declarator.ChildByFieldName("declarator")
	}
	if declarator == nil {
		return nil
	}
	params := declarator.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if p.Type() != "parameter_declaration" {
			continue
		}
		pd := p.ChildByFieldName("declarator")
		if pd == nil {
			continue
		}
		declName, _ := declaratorNameAndInit(pd, t.source)
		if declName == name {
			return t.varFor(pd, declName)
		}
	}
	return nil
}
