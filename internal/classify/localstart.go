package classify

import "github.com/errorck/errorck/internal/ast"

// directLocalAssignmentTarget implements rule 6 of the return-value
// classifier's trigger condition: the call's value is, after trivial
// unwrapping, the right-hand side of a direct assignment to a local
// variable, or the initializer of a local variable declaration. It returns
// the target variable and the source location of the value-bearing
// expression (the call itself, or its topmost wrapper) to attribute if the
// value later turns out unread.
func directLocalAssignmentTarget(call ast.Node) (*ast.Var, ast.Location, bool) {
	parent, top, ok := ast.ParentSkippingWrappers(call)
	if !ok {
		return nil, ast.Location{}, false
	}

	if parent.Kind() == ast.BinaryOp && parent.IsAssignment() {
		rhs := parent.RHS()
		if rhs != nil && rhs.Equal(top) {
			if v := resolveLocal(parent.LHS()); v != nil {
				return v, top.Location(), true
			}
		}
		return nil, ast.Location{}, false
	}

	if parent.RawType() == "init_declarator" {
		declStmt := parent.Parent()
		if declStmt != nil && declStmt.Kind() == ast.DeclStmt {
			for _, d := range declStmt.Declarators() {
				if d.Init != nil && d.Init.Equal(top) {
					return d.Var, top.Location(), true
				}
			}
		}
	}
	return nil, ast.Location{}, false
}

func resolveLocal(n ast.Node) *ast.Var {
	n = ast.UnwrapExprWrappers(n)
	if n == nil || n.Kind() != ast.DeclRefExpr {
		return nil
	}
	return n.ResolveVar()
}
