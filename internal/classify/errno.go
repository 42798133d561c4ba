package classify

import (
	"github.com/errorck/errorck/internal/ast"
	"github.com/errorck/errorck/internal/config"
)

// isErrnoRead reports whether n is itself one of the three syntactic forms
// that count as "a reference to errno": a read of an identifier named
// errno, a call to one of the builtin errno-address accessors, or a
// dereference of such a call (the shape the errno macro expands to on
// common platforms).
func isErrnoRead(n ast.Node) bool {
	switch n.Kind() {
	case ast.DeclRefExpr:
		return n.Name() == "errno"
	case ast.CallExpr:
		return isErrnoAccessor(n.CalleeName())
	case ast.UnaryDeref:
		operand := ast.UnwrapExprWrappers(n.Operand())
		return operand != nil && operand.Kind() == ast.CallExpr && isErrnoAccessor(operand.CalleeName())
	default:
		return false
	}
}

func isErrnoAccessor(name string) bool {
	return name == "__errno_location" || name == "__error"
}

// ContainsErrnoReference reports whether root's subtree contains an errno
// reference, per isErrnoRead, excluding the left-hand side of any
// assignment expression - per the specification, "errno = ..." does not
// count as a read even though errno appears syntactically on the left.
func ContainsErrnoReference(root ast.Node) bool {
	if root == nil {
		return false
	}
	found := false
	var visit func(ast.Node) bool
	visit = func(n ast.Node) bool {
		if found {
			return false
		}
		if n.Kind() == ast.BinaryOp && n.IsAssignment() {
			if rhs := n.RHS(); rhs != nil {
				rhs.Walk(visit)
			}
			return false
		}
		if isErrnoRead(n) {
			found = true
			return false
		}
		return true
	}
	root.Walk(visit)
	return found
}

// usesErrnoOutsideRoleCalls reports whether stmt contains an errno
// reference that is not inside the argument list of a registered handler
// or logger call - the "other" usage context from the original's
// statement-local errno usage visitor, as opposed to its handler/logger
// contexts.
func usesErrnoOutsideRoleCalls(stmt ast.Node, reg *config.Registry) bool {
	if stmt == nil {
		return false
	}
	found := false
	var visit func(ast.Node) bool
	visit = func(n ast.Node) bool {
		if found {
			return false
		}
		if n.Kind() == ast.BinaryOp && n.IsAssignment() {
			if rhs := n.RHS(); rhs != nil {
				rhs.Walk(visit)
			}
			return false
		}
		if isErrnoRead(n) {
			if !errnoNearestRoleAncestor(n, reg) {
				found = true
			}
			return false
		}
		return true
	}
	stmt.Walk(visit)
	return found
}

// errnoNearestRoleAncestor reports whether any call expression enclosing n
// is registered as a handler or logger. A plain call
// nested inside a role call's arguments inherits that role, since context
// only changes on entry into a role call's own argument list - so the
// nearest CallExpr ancestor that is itself a role call is the one that
// determines n's context.
func errnoNearestRoleAncestor(n ast.Node, reg *config.Registry) bool {
	call, _ := nearestRoleCall(n, reg)
	return call != nil
}

// nearestRoleCall walks upward from n through enclosing CallExprs and
// returns the first one registered as a handler or logger, along with
// which role it holds. This is the "nearest role-call wins" rule the
// original's context-stack visitors implement by push/pop on call entry:
// a plain call nested inside a role call's arguments inherits that role,
// and a role call nested inside another role call's arguments is itself
// the nearer context.
func nearestRoleCall(n ast.Node, reg *config.Registry) (call ast.Node, isHandler bool) {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == ast.CallExpr {
			name := p.CalleeName()
			if reg.IsHandler(name) {
				return p, true
			}
			if reg.IsLogger(name) {
				return p, false
			}
		}
	}
	return nil, false
}

// directErrnoAssignmentTarget mirrors directLocalAssignmentTarget for the
// errno contract: a declaration-with-initializer or plain assignment to a
// local whose right-hand side is, after trivial unwrapping, exactly an
// errno reference (not merely containing one).
func directErrnoAssignmentTarget(stmt ast.Node) (*ast.Var, ast.Location, bool) {
	expr := stmt
	if expr.Kind() == ast.DeclStmt {
		for _, d := range expr.Declarators() {
			if d.Init == nil {
				continue
			}
			if rhs := ast.UnwrapExprWrappers(d.Init); rhs != nil && isErrnoRead(rhs) {
				return d.Var, d.Init.Location(), true
			}
		}
		return nil, ast.Location{}, false
	}
	if expr.Kind() == ast.BinaryOp && expr.IsAssignment() {
		rhs := ast.UnwrapExprWrappers(expr.RHS())
		if rhs != nil && isErrnoRead(rhs) {
			if v := resolveLocal(expr.LHS()); v != nil {
				return v, expr.RHS().Location(), true
			}
		}
	}
	return nil, ast.Location{}, false
}
