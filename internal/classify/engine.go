package classify

import (
	"github.com/errorck/errorck/internal/ast"
	"github.com/errorck/errorck/internal/config"
)

// Engine runs the AST walker over one translation unit: it visits every
// call expression, resolves its callee's written name against the
// registry, and dispatches to the matching classifier. All of its state
// (the emitter's dedup set) is scoped to a single translation unit, per
// the engine's lifecycle invariant.
type Engine struct {
	reg *config.Registry
	out *Emitter
}

// NewEngine returns an Engine bound to reg, emitting into a fresh Emitter.
func NewEngine(reg *config.Registry) *Engine {
	return &Engine{reg: reg, out: NewEmitter()}
}

// Run walks root (a translation unit's root node) and classifies every
// watched call it finds. It does not recurse into the arguments of a
// watched call before classifying it - the parent call is classified
// first, and the walker's normal pre-order traversal still visits any
// nested watched calls in the argument subtrees afterward.
func (e *Engine) Run(root ast.Node) {
	if root == nil {
		return
	}
	root.Walk(func(n ast.Node) bool {
		if n.Kind() != ast.CallExpr {
			return true
		}
		name := n.CalleeName()
		if name == "" {
			return true
		}
		role, ok := e.reg.IsWatched(name)
		if !ok {
			return true
		}
		var rec Record
		switch role {
		case config.RoleWatchedReturnValue:
			rec = AnalyzeReturnValue(n, e.reg)
		case config.RoleWatchedErrno:
			rec = AnalyzeErrno(n, e.reg)
		default:
			return true
		}
		e.out.Emit(rec)
		return true
	})
}

// Records returns every distinct classified record produced by Run calls
// so far on this Engine.
func (e *Engine) Records() []Record {
	return e.out.Records()
}
