// Package classify holds the per-translation-unit classification engine:
// the AST walker that finds watched calls, the return-value and errno
// classifiers, and the local-propagation tracker they both hand off to.
// Nothing in this package imports a concrete parser type; it operates
// entirely over the internal/ast facade.
package classify

// Category is one of the nine handling-category labels a watched call is
// classified into. It is intentionally a flat sum type, not a hierarchy:
// the classifiers are short ordered sequences of predicates returning the
// first match, never a dispatch scheme where precedence is implicit.
type Category int

const (
	Ignored Category = iota
	CastToVoid
	AssignedNotRead
	BranchedNoCatchall
	BranchedWithCatchall
	Propagated
	PassedToHandlerFn
	LoggedNotHandled
	UsedOther
)

func (c Category) String() string {
	switch c {
	case Ignored:
		return "ignored"
	case CastToVoid:
		return "cast_to_void"
	case AssignedNotRead:
		return "assigned_not_read"
	case BranchedNoCatchall:
		return "branched_no_catchall"
	case BranchedWithCatchall:
		return "branched_with_catchall"
	case Propagated:
		return "propagated"
	case PassedToHandlerFn:
		return "passed_to_handler_fn"
	case LoggedNotHandled:
		return "logged_not_handled"
	case UsedOther:
		return "used_other"
	default:
		return "used_other"
	}
}

// branchedCategory picks between the two branched_* categories given whether
// the construct has a catch-all (terminal else, or a default case).
func branchedCategory(hasCatchall bool) Category {
	if hasCatchall {
		return BranchedWithCatchall
	}
	return BranchedNoCatchall
}
