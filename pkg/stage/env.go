package stage

// Symbol identifies a staged variable. Symbols are opaque integers unique
// within a Context for the life of the process; they have no identity
// beyond equality and hashing.
type Symbol uint64

// Env is a scoped environment mapping symbols to values.
// It supports parent-chained lookup for lexical scoping; a child scope
// shadows its parent. Environments are created per function-call
// activation and are kept alive only by the closures that captured them.
type Env struct {
	bindings map[Symbol]Value
	parent   *Env
	ctx      *Context
}

func newEnv(parent *Env, ctx *Context) *Env {
	return &Env{
		bindings: make(map[Symbol]Value),
		parent:   parent,
		ctx:      ctx,
	}
}

// Child creates a new child scope whose parent is this environment.
func (e *Env) Child() *Env {
	return newEnv(e, e.ctx)
}

// Lookup finds a symbol's value, traversing parent scopes outward.
func (e *Env) Lookup(sym Symbol) (Value, bool) {
	if val, ok := e.bindings[sym]; ok {
		return val, true
	}
	if e.parent != nil {
		return e.parent.Lookup(sym)
	}
	return nil, false
}

// Bind inserts a binding into this scope only. Symbols are unique per
// lambda activation, so an overwrite never happens by construction.
func (e *Env) Bind(sym Symbol, val Value) {
	e.bindings[sym] = val
}

// Context returns the staging context this environment belongs to.
func (e *Env) Context() *Context {
	return e.ctx
}
