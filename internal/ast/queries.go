package ast

// isBlockKind reports whether k is a node kind that owns a linear list of
// child statements via Statements() that the rest of the engine walks
// forward through: an ordinary {...} block, and a switch's `case`/`default`
// arm, which in the grammar this tool parses can itself hold several
// statements directly (unlike clang's single-child-then-chain CaseStmt).
func isBlockKind(k Kind) bool {
	return k == CompoundBlock || k == CaseStmt
}

// FindStatementInCompound returns the direct child of the nearest enclosing
// block (a CompoundBlock, or a CaseStmt's statement list) that contains n -
// i.e. "the statement in the compound block" that the rest of the engine
// reasons about. It walks up through expression wrappers, statements, and
// declarations alike, mirroring the original's FindStatementInCompound which
// climbs through both Stmt and Decl parents (a call inside a variable
// initializer still belongs to that DeclStmt).
func FindStatementInCompound(n Node) Node {
	current := n
	for {
		parent := current.Parent()
		if parent == nil {
			return nil
		}
		if isBlockKind(parent.Kind()) {
			return current
		}
		current = parent
	}
}

// NextStatementInCompound returns the statement immediately following stmt
// within its enclosing block, or nil if stmt is last (or not itself a direct
// child of a block).
func NextStatementInCompound(stmt Node) Node {
	parent := stmt.Parent()
	if parent == nil || !isBlockKind(parent.Kind()) {
		return nil
	}
	siblings := parent.Statements()
	for i, s := range siblings {
		if s.Equal(stmt) {
			if i+1 < len(siblings) {
				return siblings[i+1]
			}
			return nil
		}
	}
	return nil
}

// EnclosingCompound returns the block (CompoundBlock or CaseStmt) that
// directly owns stmt, or nil.
func EnclosingCompound(stmt Node) Node {
	parent := stmt.Parent()
	if parent == nil || !isBlockKind(parent.Kind()) {
		return nil
	}
	return parent
}

// ContainsNode reports whether target appears anywhere in root's subtree
// (including root itself).
func ContainsNode(root, target Node) bool {
	if root == nil || target == nil {
		return false
	}
	found := false
	root.Walk(func(n Node) bool {
		if found {
			return false
		}
		if n.Equal(target) {
			found = true
			return false
		}
		return true
	})
	return found
}

// ContainsVarReference reports whether root's subtree contains a DeclRefExpr
// resolving to v.
func ContainsVarReference(root Node, v *Var) bool {
	if root == nil || v == nil {
		return false
	}
	found := false
	root.Walk(func(n Node) bool {
		if found {
			return false
		}
		if n.Kind() == DeclRefExpr {
			if rv := n.ResolveVar(); rv != nil && rv == v {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// ContainsReturnMatching reports whether root's subtree contains a return
// statement whose returned expression subtree satisfies match.
func ContainsReturnMatching(root Node, match func(Node) bool) bool {
	if root == nil {
		return false
	}
	found := false
	root.Walk(func(n Node) bool {
		if found {
			return false
		}
		if n.Kind() == ReturnStmt {
			if v := n.ReturnValue(); v != nil && match(v) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// IsStatementPosition implements the "statement position" predicate from the
// specification's ignored rule: walk upward through expression wrappers and
// check whether the first non-wrapper parent is a context where an
// expression's value is syntactically discarded.
func IsStatementPosition(n Node) bool {
	parent, top, ok := ParentSkippingWrappers(n)
	if !ok {
		return false
	}
	switch parent.Kind() {
	case CompoundBlock, CaseStmt:
		return true
	case IfStmt:
		return equalOrNil(parent.Then(), top) || equalOrNil(parent.Else(), top)
	case WhileStmt, DoStmt, SwitchStmt:
		return equalOrNil(parent.Body(), top)
	case ForStmt:
		return equalOrNil(parent.ForInit(), top) || equalOrNil(parent.ForInc(), top) || equalOrNil(parent.Body(), top)
	case LabeledStmt, AttributedStmt:
		stmts := parent.Statements()
		return len(stmts) == 1 && equalOrNil(stmts[0], top)
	default:
		return false
	}
}

func equalOrNil(a, b Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Equal(b)
}

// FindEnclosingCallAsArgument walks upward from n (through expression
// wrappers and any other expression ancestors) looking for the nearest
// enclosing CallExpr whose Arguments subtree contains n. It stops as soon as
// it crosses into statement territory without finding one.
func FindEnclosingCallAsArgument(n Node) Node {
	current := n
	for {
		parent := current.Parent()
		if parent == nil {
			return nil
		}
		if parent.Kind() == CallExpr {
			for _, arg := range parent.Arguments() {
				if ContainsNode(arg, n) {
					return parent
				}
			}
		}
		// Keep climbing through any expression ancestor; stop at the first
		// statement-level parent since a call can't be "passed as an argument"
		// once we've left expression territory.
		if isStatementKind(parent.Kind()) {
			return nil
		}
		current = parent
	}
}

func isStatementKind(k Kind) bool {
	switch k {
	case CompoundBlock, IfStmt, WhileStmt, DoStmt, ForStmt, SwitchStmt,
		CaseStmt, LabeledStmt, AttributedStmt, ReturnStmt, DeclStmt,
		FunctionDef, TranslationUnit:
		return true
	default:
		return false
	}
}

// IsReturnedExpr reports whether, walking up from n through expression
// ancestors only, the first statement-level parent is a ReturnStmt whose
// value subtree contains n.
func IsReturnedExpr(n Node) bool {
	current := n
	for {
		parent := current.Parent()
		if parent == nil {
			return false
		}
		if parent.Kind() == ReturnStmt {
			v := parent.ReturnValue()
			return v != nil && ContainsNode(v, n)
		}
		if isStatementKind(parent.Kind()) {
			return false
		}
		current = parent
	}
}

// BranchHandlingForCondition checks whether stmt (a statement of a compound
// block) is an If/Switch whose condition satisfies containsTarget, returning
// whether that branch has a catch-all (terminal else, or default case).
func BranchHandlingForCondition(stmt Node, containsTarget func(Node) bool) (hasCatchall bool, matched bool) {
	if stmt == nil {
		return false, false
	}
	switch stmt.Kind() {
	case IfStmt:
		if containsTarget(stmt.Cond()) {
			return IfHasCatchall(stmt), true
		}
	case SwitchStmt:
		if containsTarget(stmt.Cond()) {
			return stmt.SwitchHasDefault(), true
		}
	}
	return false, false
}

// IfHasCatchall reports whether an if/else-if chain ends in a terminal else
// that is not itself another if.
func IfHasCatchall(n Node) bool {
	current := n
	for current != nil {
		elseStmt := current.Else()
		if elseStmt == nil {
			return false
		}
		if elseStmt.Kind() == IfStmt {
			current = elseStmt
			continue
		}
		return true
	}
	return false
}
