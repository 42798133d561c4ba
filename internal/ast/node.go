package ast

// Location is a 1-based (line, column) source position within a named file,
// matching clang's PresumedLoc semantics that the original tool reports.
type Location struct {
	Filename string
	Line     int
	Column   int
}

// IsZero reports whether the location carries no position information, the
// case the specification calls out for absent or invalid source locations.
func (l Location) IsZero() bool {
	return l.Filename == "" && l.Line == 0 && l.Column == 0
}

// Node is the typed view over a single syntax node that the classification
// engine operates on. Implementations wrap a concrete parser's tree (see
// internal/astsrc) but never leak parser types across this boundary.
type Node interface {
	Kind() Kind

	// RawType is the underlying grammar's node type string, kept only for
	// diagnostics and for Kind mappings the engine doesn't need to special-case.
	RawType() string

	// Parent returns the syntactic parent, or nil at the translation unit root.
	Parent() Node

	// Location is this node's starting source position.
	Location() Location

	// Text is the verbatim source text spanned by this node.
	Text() string

	// Walk visits this node and every descendant in pre-order, stopping early
	// if visit returns false for a node (descendants of that node are skipped).
	Walk(visit func(Node) bool)

	// Equal reports whether two Nodes wrap the same underlying syntax node.
	Equal(Node) bool

	// --- kind-specific accessors; each returns its zero value/nil when Kind() doesn't match ---

	// CalleeName returns the directly-written callee name of a CallExpr, or
	// "" if the callee isn't a simple name (e.g. a function pointer or member).
	CalleeName() string
	// Arguments returns a CallExpr's argument expressions in order.
	Arguments() []Node

	// Name returns the identifier text of a DeclRefExpr.
	Name() string
	// ResolveVar returns the local variable a DeclRefExpr resolves to, or nil
	// if it isn't a reference to a local (or can't be resolved at all).
	ResolveVar() *Var

	// Operand returns the single operand of UnaryDeref, ParenExpr, or ExplicitCast.
	Operand() Node
	// CastTargetIsVoid reports whether an ExplicitCast casts to void.
	CastTargetIsVoid() bool

	// IsAssignment reports whether a BinaryOp is a plain "=" assignment
	// (not a compound assignment like "+=").
	IsAssignment() bool
	// LHS/RHS return a BinaryOp's operands.
	LHS() Node
	RHS() Node

	// Cond returns the controlling expression of If/While/Do/Switch.
	Cond() Node
	// Then/Else return an IfStmt's branches; Else is nil if absent.
	Then() Node
	Else() Node
	// Body returns the loop/switch body.
	Body() Node
	// ForInit/ForInc return a ForStmt's init and increment clauses (may be nil).
	ForInit() Node
	ForInc() Node

	// IsDefaultCase reports whether a CaseStmt is a `default:` label.
	IsDefaultCase() bool
	// SwitchHasDefault reports whether a SwitchStmt's case list has a default.
	SwitchHasDefault() bool

	// ReturnValue returns a ReturnStmt's returned expression, or nil for `return;`.
	ReturnValue() Node

	// Declarators returns the (possibly several) local variables a DeclStmt
	// declares in this translation unit, each with its initializer if any.
	Declarators() []*Declarator

	// Statements returns a block-like node's direct child statements in
	// order: a CompoundBlock's full body, a CaseStmt's statements after its
	// label, or a single-element slice for LabeledStmt/AttributedStmt's
	// wrapped statement.
	Statements() []Node
}

// Var identifies a single declared local variable for pointer-equality
// comparisons, mirroring how the original tool compares clang::VarDecl*.
type Var struct {
	NameText string
	Decl     Node // the declarator node introducing this variable
}

// Declarator pairs a declared Var with its initializer expression, if any.
type Declarator struct {
	Var  *Var
	Init Node // nil if the declarator has no initializer
}

// Two helpers deal with expression wrappers: UnwrapExprWrappers walks *into*
// an expression, and ParentSkippingWrappers walks *up* through wrappers.

// UnwrapExprWrappers strips parentheses and explicit casts around an
// expression, repeatedly taking the inner Operand, mirroring
// Expr::IgnoreParenImpCasts for the wrapper kinds tree-sitter actually has.
func UnwrapExprWrappers(n Node) Node {
	for n != nil && isExprWrapper(n.Kind()) {
		inner := n.Operand()
		if inner == nil {
			return n
		}
		n = inner
	}
	return n
}

// ParentSkippingWrappers returns the nearest ancestor of n that is not itself
// an expression wrapper (paren/explicit cast), along with that ancestor's
// direct wrapped child (the top of the wrapper chain). If n has no parent at
// all, ok is false.
func ParentSkippingWrappers(n Node) (parent Node, topOfChain Node, ok bool) {
	current := n
	for {
		p := current.Parent()
		if p == nil {
			return nil, current, false
		}
		if isExprWrapper(p.Kind()) {
			current = p
			continue
		}
		return p, current, true
	}
}

// TopOfExprWrapperChain walks upward through parentheses/explicit-cast
// wrappers above n and returns the outermost one (or n itself if n has no
// such parent), mirroring the original's TopLevelExpr.
func TopOfExprWrapperChain(n Node) Node {
	current := n
	for {
		p := current.Parent()
		if p == nil || !isExprWrapper(p.Kind()) {
			return current
		}
		current = p
	}
}
