package classify

import (
	"github.com/errorck/errorck/internal/ast"
	"github.com/errorck/errorck/internal/config"
)

// AnalyzeReturnValue classifies a watched call whose contract signals
// errors through its return value, applying spec §4.2's rules in strict
// precedence order. The first matching rule wins.
func AnalyzeReturnValue(call ast.Node, reg *config.Registry) Record {
	rec := Record{
		Name:     call.CalleeName(),
		Filename: call.Location().Filename,
		Line:     call.Location().Line,
		Column:   call.Location().Column,
	}

	// 1. cast_to_void
	if top := ast.TopOfExprWrapperChain(call); top.Kind() == ast.ExplicitCast && top.CastTargetIsVoid() {
		rec.Category = CastToVoid
		return rec
	}

	// 2. passed_to_handler_fn / logged_not_handled (direct)
	if enclosing := ast.FindEnclosingCallAsArgument(call); enclosing != nil {
		name := enclosing.CalleeName()
		if reg.IsHandler(name) {
			rec.Category = PassedToHandlerFn
			return rec
		}
		if reg.IsLogger(name) {
			rec.Category = LoggedNotHandled
			return rec
		}
	}

	// 3. ignored
	if ast.IsStatementPosition(call) {
		rec.Category = Ignored
		return rec
	}

	// 4. propagated
	if ast.IsReturnedExpr(call) {
		rec.Category = Propagated
		return rec
	}

	// 5. branched_no_catchall / branched_with_catchall
	stmt := ast.FindStatementInCompound(call)
	containsCall := func(n ast.Node) bool { return n != nil && ast.ContainsNode(n, call) }
	if hasCatchall, matched := ast.BranchHandlingForCondition(stmt, containsCall); matched {
		rec.Category = branchedCategory(hasCatchall)
		return rec
	}

	// 6. local-propagation tracking
	if v, site, ok := directLocalAssignmentTarget(call); ok {
		startStmt := ast.FindStatementInCompound(call)
		category, finalSite := trackLocalPropagation(startStmt, v, site, true, reg)
		rec.Category = category
		if category == AssignedNotRead {
			s := siteOf(finalSite)
			rec.Assignment = &s
		}
		return rec
	}

	// 7. used_other
	rec.Category = UsedOther
	return rec
}
