package astsrc

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/errorck/errorck/internal/ast"
)

// node is the concrete ast.Node backed by a single tree-sitter syntax node.
// It never escapes this package as anything but the ast.Node interface.
type node struct {
	tree *Tree
	n    *sitter.Node
}

var _ ast.Node = (*node)(nil)

func (nd *node) Kind() ast.Kind {
	switch nd.n.Type() {
	case "call_expression":
		return ast.CallExpr
	case "identifier", "field_identifier":
		if isDeclaratorContext(nd.n) {
			return ast.Other
		}
		return ast.DeclRefExpr
	case "unary_expression":
		if op := nd.n.ChildByFieldName("operator"); op != nil && op.Content(nd.tree.source) == "*" {
			return ast.UnaryDeref
		}
		return ast.Other
	case "pointer_expression":
		return ast.UnaryDeref
	case "binary_expression":
		return ast.BinaryOp
	case "assignment_expression":
		return ast.BinaryOp
	case "parenthesized_expression":
		return ast.ParenExpr
	case "cast_expression":
		return ast.ExplicitCast
	case "compound_statement":
		return ast.CompoundBlock
	case "if_statement":
		return ast.IfStmt
	case "while_statement":
		return ast.WhileStmt
	case "do_statement":
		return ast.DoStmt
	case "for_statement":
		return ast.ForStmt
	case "switch_statement":
		return ast.SwitchStmt
	case "case_statement":
		return ast.CaseStmt
	case "labeled_statement":
		return ast.LabeledStmt
	case "attributed_statement":
		return ast.AttributedStmt
	case "return_statement":
		return ast.ReturnStmt
	case "declaration", "init_declarator":
		if nd.n.Type() == "declaration" {
			return ast.DeclStmt
		}
		return ast.Other
	case "translation_unit":
		return ast.TranslationUnit
	case "function_definition":
		return ast.FunctionDef
	default:
		return ast.Other
	}
}

func (nd *node) RawType() string {
	return nd.n.Type()
}

func (nd *node) Parent() ast.Node {
	p := nd.n.Parent()
	for p != nil && p.Type() == "expression_statement" {
		p = p.Parent()
	}
	return nd.tree.wrap(p)
}

func (nd *node) Location() ast.Location {
	p := nd.n.StartPoint()
	return ast.Location{
		Filename: nd.tree.filename,
		Line:     int(p.Row) + 1,
		Column:   int(p.Column) + 1,
	}
}

func (nd *node) Text() string {
	return nd.n.Content(nd.tree.source)
}

func (nd *node) Walk(visit func(ast.Node) bool) {
	nd.walkNamed(visit)
}

func (nd *node) walkNamed(visit func(ast.Node) bool) {
	if !visit(nd) {
		return
	}
	for i := 0; i < int(nd.n.NamedChildCount()); i++ {
		child := &node{tree: nd.tree, n: nd.n.NamedChild(i)}
		child.walkNamed(visit)
	}
}

func (nd *node) Equal(other ast.Node) bool {
	o, ok := other.(*node)
	if !ok || o == nil {
		return false
	}
	return nd.tree == o.tree && nd.n.StartByte() == o.n.StartByte() && nd.n.EndByte() == o.n.EndByte()
}

func (nd *node) CalleeName() string {
	if nd.Kind() != ast.CallExpr {
		return ""
	}
	fn := nd.n.ChildByFieldName("function")
	if fn == nil || fn.Type() != "identifier" {
		return ""
	}
	return fn.Content(nd.tree.source)
}

func (nd *node) Arguments() []ast.Node {
	if nd.Kind() != ast.CallExpr {
		return nil
	}
	args := nd.n.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	out := make([]ast.Node, 0, args.NamedChildCount())
	for i := 0; i < int(args.NamedChildCount()); i++ {
		out = append(out, nd.tree.wrap(args.NamedChild(i)))
	}
	return out
}

func (nd *node) Name() string {
	if nd.Kind() != ast.DeclRefExpr {
		return ""
	}
	return nd.n.Content(nd.tree.source)
}

func (nd *node) ResolveVar() *ast.Var {
	if nd.Kind() != ast.DeclRefExpr {
		return nil
	}
	return resolveVar(nd.tree, nd.n)
}

func (nd *node) Operand() ast.Node {
	switch nd.Kind() {
	case ast.ParenExpr:
		if nd.n.NamedChildCount() > 0 {
			return nd.tree.wrap(nd.n.NamedChild(0))
		}
		return nil
	case ast.ExplicitCast:
		return nd.tree.wrap(nd.n.ChildByFieldName("value"))
	case ast.UnaryDeref:
		if v := nd.n.ChildByFieldName("argument"); v != nil {
			return nd.tree.wrap(v)
		}
		if nd.n.NamedChildCount() > 0 {
			return nd.tree.wrap(nd.n.NamedChild(0))
		}
		return nil
	default:
		return nil
	}
}

func (nd *node) CastTargetIsVoid() bool {
	if nd.Kind() != ast.ExplicitCast {
		return false
	}
	t := nd.n.ChildByFieldName("type")
	return t != nil && t.Content(nd.tree.source) == "void"
}

func (nd *node) IsAssignment() bool {
	if nd.n.Type() != "assignment_expression" {
		return false
	}
	op := nd.n.ChildByFieldName("operator")
	return op != nil && op.Content(nd.tree.source) == "="
}

func (nd *node) LHS() ast.Node {
	if nd.Kind() != ast.BinaryOp {
		return nil
	}
	return nd.tree.wrap(nd.n.ChildByFieldName("left"))
}

func (nd *node) RHS() ast.Node {
	if nd.Kind() != ast.BinaryOp {
		return nil
	}
	return nd.tree.wrap(nd.n.ChildByFieldName("right"))
}

func (nd *node) Cond() ast.Node {
	switch nd.Kind() {
	case ast.IfStmt, ast.WhileStmt, ast.DoStmt, ast.SwitchStmt:
		return nd.tree.wrap(nd.n.ChildByFieldName("condition"))
	default:
		return nil
	}
}

func (nd *node) Then() ast.Node {
	if nd.Kind() != ast.IfStmt {
		return nil
	}
	return nd.tree.wrapStmt(nd.n.ChildByFieldName("consequence"))
}

func (nd *node) Else() ast.Node {
	if nd.Kind() != ast.IfStmt {
		return nil
	}
	return nd.tree.wrapStmt(nd.n.ChildByFieldName("alternative"))
}

func (nd *node) Body() ast.Node {
	switch nd.Kind() {
	case ast.WhileStmt, ast.DoStmt, ast.ForStmt, ast.SwitchStmt:
		return nd.tree.wrapStmt(nd.n.ChildByFieldName("body"))
	default:
		return nil
	}
}

func (nd *node) ForInit() ast.Node {
	if nd.Kind() != ast.ForStmt {
		return nil
	}
	return nd.tree.wrap(nd.n.ChildByFieldName("initializer"))
}

func (nd *node) ForInc() ast.Node {
	if nd.Kind() != ast.ForStmt {
		return nil
	}
	return nd.tree.wrap(nd.n.ChildByFieldName("update"))
}

func (nd *node) IsDefaultCase() bool {
	if nd.Kind() != ast.CaseStmt {
		return false
	}
	return nd.n.ChildByFieldName("value") == nil
}

func (nd *node) SwitchHasDefault() bool {
	if nd.Kind() != ast.SwitchStmt {
		return false
	}
	body := nd.n.ChildByFieldName("body")
	if body == nil {
		return false
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		if c.Type() == "case_statement" && c.ChildByFieldName("value") == nil {
			return true
		}
	}
	return false
}

func (nd *node) ReturnValue() ast.Node {
	if nd.Kind() != ast.ReturnStmt {
		return nil
	}
	if nd.n.NamedChildCount() == 0 {
		return nil
	}
	return nd.tree.wrap(nd.n.NamedChild(0))
}

func (nd *node) Declarators() []*ast.Declarator {
	if nd.Kind() != ast.DeclStmt {
		return nil
	}
	var out []*ast.Declarator
	for i := 0; i < int(nd.n.ChildCount()); i++ {
		if nd.n.FieldNameForChild(i) != "declarator" {
			continue
		}
		child := nd.n.Child(i)
		name, init := declaratorNameAndInit(child, nd.tree.source)
		if name == "" {
			continue
		}
		v := nd.tree.varFor(child, name)
		out = append(out, &ast.Declarator{Var: v, Init: nd.tree.wrap(init)})
	}
	return out
}

func (nd *node) Statements() []ast.Node {
	switch nd.Kind() {
	case ast.CompoundBlock:
		out := make([]ast.Node, 0, nd.n.NamedChildCount())
		for i := 0; i < int(nd.n.NamedChildCount()); i++ {
			out = append(out, nd.tree.wrapStmt(nd.n.NamedChild(i)))
		}
		return out
	case ast.CaseStmt:
		var out []ast.Node
		for i := 0; i < int(nd.n.ChildCount()); i++ {
			if nd.n.FieldNameForChild(i) == "value" {
				continue
			}
			c := nd.n.Child(i)
			if !c.IsNamed() || c.Type() == ":" {
				continue
			}
			out = append(out, nd.tree.wrapStmt(c))
		}
		return out
	case ast.LabeledStmt, ast.AttributedStmt:
		stmt := nd.n.ChildByFieldName("statement")
		if stmt == nil && nd.n.NamedChildCount() > 0 {
			stmt = nd.n.NamedChild(int(nd.n.NamedChildCount()) - 1)
		}
		if stmt == nil {
			return nil
		}
		return []ast.Node{nd.tree.wrapStmt(stmt)}
	default:
		return nil
	}
}

// isDeclaratorContext reports whether an identifier/field_identifier node is
// being used to name a declaration rather than to reference one - i.e. it is
// the "declarator" (possibly nested under pointer/array/function declarator
// wrappers) of an init_declarator, a bare declaration, or a
// parameter_declaration, or the declarator of a function_definition.
func isDeclaratorContext(id *sitter.Node) bool {
	for p := id.Parent(); p != nil; p = p.Parent() {
		switch p.Type() {
		case "pointer_declarator", "array_declarator", "function_declarator", "parenthesized_declarator":
			continue
		case "init_declarator", "declaration", "parameter_declaration", "function_definition":
			return declaratorSpans(p.ChildByFieldName("declarator"), id)
		default:
			return false
		}
	}
	return false
}

func declaratorSpans(declarator, candidate *sitter.Node) bool {
	if declarator == nil {
		return false
	}
	return declarator.StartByte() <= candidate.StartByte() && candidate.EndByte() <= declarator.EndByte()
}

// declaratorNameAndInit unwraps pointer/array/function declarator wrappers to
// find the innermost identifier naming the variable, plus the sibling
// initializer if the declarator is an init_declarator.
func declaratorNameAndInit(declarator *sitter.Node, source []byte) (name string, init *sitter.Node) {
	cur := declarator
	if cur.Type() == "init_declarator" {
		init = cur.ChildByFieldName("value")
		cur = cur.ChildByFieldName("declarator")
	}
	for cur != nil {
		switch cur.Type() {
		case "identifier", "field_identifier":
			return cur.Content(source), init
		case "pointer_declarator", "array_declarator", "function_declarator", "parenthesized_declarator":
			cur = cur.ChildByFieldName("declarator")
		default:
			return "", init
		}
	}
	return "", init
}
