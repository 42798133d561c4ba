package classify

import (
	"github.com/errorck/errorck/internal/ast"
	"github.com/errorck/errorck/internal/config"
)

// AnalyzeErrno classifies a watched call whose contract signals errors
// out-of-band via errno, applying spec §4.3's rules. Analysis is strictly
// local to the call statement and the statement immediately following it
// in the same compound block: the call statement's own rule chain is
// evaluated to completion first, and the next statement is only consulted
// if the call statement's chain was fully inconclusive (no errno reference
// at all, a local assignment handed off for tracking, or a logger-only
// use), never merely because a later rule would match in it.
func AnalyzeErrno(call ast.Node, reg *config.Registry) Record {
	rec := Record{
		Name:     call.CalleeName(),
		Filename: call.Location().Filename,
		Line:     call.Location().Line,
		Column:   call.Location().Column,
	}

	callStmt := ast.FindStatementInCompound(call)
	nextStmt := ast.NextStatementInCompound(callStmt)

	// 1. ignored
	if !ContainsErrnoReference(callStmt) && (nextStmt == nil || !ContainsErrnoReference(nextStmt)) {
		rec.Category = Ignored
		return rec
	}

	var logged bool

	// 2-5, per statement: handler, propagated, branched, or a hand-off to
	// local-propagation tracking when a direct assignment is found.
	if category, ok := analyzeErrnoStatement(callStmt, reg, &logged); ok {
		rec.Category = category
		return rec
	}
	if nextStmt != nil {
		if category, ok := analyzeErrnoStatement(nextStmt, reg, &logged); ok {
			rec.Category = category
			return rec
		}
	}

	// 5. local-propagation tracking for a direct assignment found in
	// either statement.
	if v, site, ok := directErrnoAssignmentTarget(callStmt); ok {
		category, finalSite := trackLocalPropagation(callStmt, v, site, false, reg)
		rec.Category = category
		if category == AssignedNotRead {
			s := siteOf(finalSite)
			rec.Assignment = &s
		}
		return rec
	}
	if nextStmt != nil {
		if v, site, ok := directErrnoAssignmentTarget(nextStmt); ok {
			category, finalSite := trackLocalPropagation(nextStmt, v, site, false, reg)
			rec.Category = category
			if category == AssignedNotRead {
				s := siteOf(finalSite)
				rec.Assignment = &s
			}
			return rec
		}
	}

	// 6. logged_not_handled, else 7. used_other.
	if logged {
		rec.Category = LoggedNotHandled
		return rec
	}
	rec.Category = UsedOther
	return rec
}

// analyzeErrnoStatement runs the errno rule chain against a single
// statement, mirroring the original's AnalyzeErrnoStatement: handler,
// then propagated, then branched all return a conclusive category
// immediately. A direct assignment to a local defers to the caller's
// local-propagation tracking (ok=false) rather than classifying here,
// latching logged if this statement also passes errno to a logger. A
// stray errno reference outside any handler/logger call is used_other.
// Otherwise, a logger-only use latches logged and also defers (ok=false).
func analyzeErrnoStatement(stmt ast.Node, reg *config.Registry, logged *bool) (Category, bool) {
	if stmt == nil {
		return 0, false
	}
	if errnoPassedToRole(stmt, reg, true) {
		return PassedToHandlerFn, true
	}
	if ast.ContainsReturnMatching(stmt, ContainsErrnoReference) {
		return Propagated, true
	}
	if hasCatchall, matched := ast.BranchHandlingForCondition(stmt, ContainsErrnoReference); matched {
		return branchedCategory(hasCatchall), true
	}
	if _, _, ok := directErrnoAssignmentTarget(stmt); ok {
		if errnoPassedToRole(stmt, reg, false) {
			*logged = true
		}
		return 0, false
	}
	if usesErrnoOutsideRoleCalls(stmt, reg) {
		return UsedOther, true
	}
	if errnoPassedToRole(stmt, reg, false) {
		*logged = true
	}
	return 0, false
}

// errnoPassedToRole reports whether stmt contains an errno reference whose
// nearest enclosing role call (per nearestRoleCall; plain calls in between
// are skipped) is registered as a handler (wantHandler) or logger
// (!wantHandler). "Nearest enclosing" matters when role calls nest, e.g.
// handle(log_errno(errno)): the innermost call determines the reference's
// context, mirroring the original's context-stack visitors rather than
// treating every containing call as a match.
func errnoPassedToRole(stmt ast.Node, reg *config.Registry, wantHandler bool) bool {
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
			if call, isHandler := nearestRoleCall(n, reg); call != nil && isHandler == wantHandler {
				found = true
			}
			return false
		}
		return true
	}
	stmt.Walk(visit)
	return found
}
