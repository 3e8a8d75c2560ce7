package stage

import (
	"runtime"
	"sync/atomic"
)

// CallSite identifies the textual position where a lambda-constructing
// expression was built. Two lambda constructions at the same position are
// the same staged function, however many times that code path executes.
type CallSite struct {
	File   string
	Line   int
	Column int
}

// Here returns the call site of the caller. Go's runtime has no column
// information, so Column is always 0 for sites captured this way.
func Here() CallSite {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return CallSite{}
	}
	return CallSite{File: file, Line: line}
}

// Closure is the staged record for one lambda call site: the synthesized
// formal symbol, the body subtree produced by the meta-closure, and the
// permanently recorded result of the body's free-variable test.
type Closure struct {
	Formal Symbol
	Body   Expression
	// HasFreeVariables records whether the body references any symbol
	// other than its own formal. Fixed at staging time, never re-derived.
	HasFreeVariables bool
}

// Context owns the staging state the evaluator needs: the symbol counter
// and the call-site closure table. Keeping this state on an injectable
// context rather than in package globals lets independent evaluation
// universes coexist in one process.
//
// The core assumes single-threaded use. The symbol counter is atomic,
// but concurrent staging of the same call site from two threads is a
// race this design does not resolve, and per-node result caches are
// unsynchronized.
type Context struct {
	symbols  atomic.Uint64
	closures map[CallSite]*Closure
	trace    func(TraceEvent)
	maxDepth int
	depth    int
}

// Option configures a Context.
type Option func(*Context)

// WithTrace installs an instrumentation callback invoked for every
// evaluation, cache, staging, and lookup event.
func WithTrace(fn func(TraceEvent)) Option {
	return func(c *Context) { c.trace = fn }
}

// WithMaxDepth sets an opt-in limit on Result recursion depth, failing
// with an E_DEPTH error when exceeded. Zero means unlimited: evaluation
// runs to completion or overflows the host stack, as the core's default
// contract states.
func WithMaxDepth(n int) Option {
	return func(c *Context) { c.maxDepth = n }
}

// NewContext creates an empty staging context.
func NewContext(opts ...Option) *Context {
	c := &Context{closures: make(map[CallSite]*Closure)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NextSymbol returns a fresh symbol, unique within this context.
func (c *Context) NextSymbol() Symbol {
	return Symbol(c.symbols.Add(1))
}

// ClosureAt returns the closure record staged at the given call site.
func (c *Context) ClosureAt(site CallSite) (*Closure, bool) {
	cl, ok := c.closures[site]
	return cl, ok
}

// RegisterClosure records a staged closure for a call site. Registration
// is idempotent with first-writer-wins: if the site already has a record,
// the existing record is returned and the new one is discarded.
func (c *Context) RegisterClosure(site CallSite, cl *Closure) *Closure {
	if existing, ok := c.closures[site]; ok {
		return existing
	}
	c.closures[site] = cl
	return cl
}

// NewEnv returns a fresh parentless environment for this context.
func (c *Context) NewEnv() *Env {
	return newEnv(nil, c)
}

// Evaluate evaluates a staged expression tree in a fresh top-level
// environment. Any RuntimeError aborts the whole call.
func (c *Context) Evaluate(n Expression) (Value, error) {
	return Result(n, c.NewEnv())
}

func (c *Context) enter() error {
	if c.maxDepth > 0 && c.depth >= c.maxDepth {
		return &RuntimeError{Code: EDepth, Message: "evaluation depth limit exceeded"}
	}
	c.depth++
	return nil
}

func (c *Context) leave() {
	c.depth--
}
