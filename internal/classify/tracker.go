package classify

import (
	"github.com/errorck/errorck/internal/ast"
	"github.com/errorck/errorck/internal/config"
)

// trackLocalPropagation implements the local-propagation tracker (spec
// §4.4): starting just after start, it walks forward through start's
// enclosing compound block's sibling statements, classifying the first
// non-trivial use of the tracked variable. allowCastToVoid is true for
// return-value contracts and false for errno contracts, since an explicit
// cast-to-void of a locally-copied errno value is used_other, not
// cast_to_void.
func trackLocalPropagation(start ast.Node, v *ast.Var, site ast.Location, allowCastToVoid bool, reg *config.Registry) (Category, ast.Location) {
	current := v
	lastSite := site
	loggedSeen := false

	for stmt := ast.NextStatementInCompound(start); stmt != nil; stmt = ast.NextStatementInCompound(stmt) {
		contains := func(n ast.Node) bool { return n != nil && ast.ContainsVarReference(n, current) }

		if hasRoleUse(stmt, current, reg, true) {
			return PassedToHandlerFn, lastSite
		}
		if ast.ContainsReturnMatching(stmt, contains) {
			return Propagated, lastSite
		}
		if hasCatchall, matched := ast.BranchHandlingForCondition(stmt, contains); matched {
			return branchedCategory(hasCatchall), lastSite
		}
		if allowCastToVoid && stmt.Kind() == ast.ExplicitCast && stmt.CastTargetIsVoid() {
			if operand := ast.UnwrapExprWrappers(stmt.Operand()); operand != nil && ast.ContainsVarReference(operand, current) {
				return CastToVoid, lastSite
			}
		}
		if newVar, newSite, outcome := retarget(stmt, current); outcome == retargetAmbiguous {
			return UsedOther, lastSite
		} else if outcome == retargetFound {
			current = newVar
			lastSite = newSite
			continue
		}
		if killed(stmt, current) {
			if loggedSeen {
				return LoggedNotHandled, lastSite
			}
			return AssignedNotRead, lastSite
		}
		if hasRoleUse(stmt, current, reg, false) {
			loggedSeen = true
			continue
		}
		if ast.ContainsVarReference(stmt, current) {
			return UsedOther, lastSite
		}
		// none: fall through to the next statement.
	}

	if loggedSeen {
		return LoggedNotHandled, lastSite
	}
	return AssignedNotRead, lastSite
}

// retargetOutcome distinguishes "no propagating declarator/assignment
// found" from "found exactly one" from "found two declarators in the same
// DeclStmt that both directly reference current," which is ambiguous.
type retargetOutcome int

const (
	retargetNone retargetOutcome = iota
	retargetFound
	retargetAmbiguous
)

// retarget detects the tracker's "propagation" statement use: a declaration
// or assignment whose right-hand side is exactly a reference to current
// (after trivial unwrapping) and whose left-hand side is another local. A
// DeclStmt with two or more declarators that each directly reference
// current is ambiguous - there is no principled way to pick which one the
// value "really" propagated to - and is reported as such rather than
// silently retargeting to whichever declarator happened to come first.
func retarget(stmt ast.Node, current *ast.Var) (*ast.Var, ast.Location, retargetOutcome) {
	switch stmt.Kind() {
	case ast.DeclStmt:
		var candidate *ast.Var
		var candidateSite ast.Location
		for _, d := range stmt.Declarators() {
			if d.Init == nil {
				continue
			}
			if rv := referencedVar(d.Init); rv == current {
				if candidate != nil && candidate != d.Var {
					return nil, ast.Location{}, retargetAmbiguous
				}
				candidate = d.Var
				candidateSite = d.Init.Location()
			}
		}
		if candidate != nil {
			return candidate, candidateSite, retargetFound
		}
	case ast.BinaryOp:
		if !stmt.IsAssignment() {
			return nil, ast.Location{}, retargetNone
		}
		rhs := stmt.RHS()
		if referencedVar(rhs) != current {
			return nil, ast.Location{}, retargetNone
		}
		if newVar := resolveLocal(stmt.LHS()); newVar != nil && newVar != current {
			return newVar, rhs.Location(), retargetFound
		}
	}
	return nil, ast.Location{}, retargetNone
}

// killed reports whether stmt assigns a new value to current that does not
// itself reference current's old value.
func killed(stmt ast.Node, current *ast.Var) bool {
	if stmt.Kind() != ast.BinaryOp || !stmt.IsAssignment() {
		return false
	}
	if resolveLocal(stmt.LHS()) != current {
		return false
	}
	rhs := stmt.RHS()
	return rhs == nil || !ast.ContainsVarReference(rhs, current)
}

// referencedVar returns the variable n resolves to if n is, after trivial
// unwrapping, exactly a DeclRefExpr - not merely an expression containing
// one somewhere in its subtree.
func referencedVar(n ast.Node) *ast.Var {
	n = ast.UnwrapExprWrappers(n)
	if n == nil || n.Kind() != ast.DeclRefExpr {
		return nil
	}
	return n.ResolveVar()
}

// hasRoleUse reports whether stmt contains a reference to current whose
// nearest enclosing role call (per nearestRoleCall; plain calls in between
// are skipped) is registered as a handler (wantHandler) or logger
// (!wantHandler). "Nearest enclosing" matters when role calls nest,
// e.g. handle(log_errno(err)): the innermost call determines the
// reference's context, not merely any containing call.
func hasRoleUse(stmt ast.Node, current *ast.Var, reg *config.Registry, wantHandler bool) bool {
	found := false
	stmt.Walk(func(n ast.Node) bool {
		if found {
			return false
		}
		if n.Kind() == ast.DeclRefExpr && n.ResolveVar() == current {
			if call, isHandler := nearestRoleCall(n, reg); call != nil && isHandler == wantHandler {
				found = true
			}
			return false
		}
		return true
	})
	return found
}
