package stage

// Expression is the interface implemented by all IR nodes. Nodes are
// built once, bottom-up, and never mutated afterwards; the tree is
// acyclic and node-owns-children.
//
// Evaluate computes the node's value in an environment. Callers must go
// through Result instead: calling Evaluate directly bypasses caching.
type Expression interface {
	// Evaluate computes the node's value. Child values are always pulled
	// via the children's Result, never their Evaluate, so caching
	// composes through the tree.
	Evaluate(env *Env) (Value, error)
	// ContainsSymbolOtherThan reports whether the subtree references any
	// symbol other than sym. This is the free-variable test lambda
	// staging uses; it is conservative (may answer true for subtrees it
	// cannot inspect) and never forces construction of thunked branches.
	ContainsSymbolOtherThan(sym Symbol) bool
	// Volatile reports whether the node's value may differ between calls
	// even with an unchanged environment, making its cache untrustworthy.
	Volatile() bool

	base() *exprBase // sealed marker and cache slot access
}

// exprBase carries the per-node volatility flag and memoized result.
// Volatility is fixed at construction (conservative OR over children;
// lambda staging may later force it on, never off).
type exprBase struct {
	volatile  bool
	cached    Value
	hasCached bool
}

func (b *exprBase) base() *exprBase { return b }

// Volatile reports the node's volatility flag.
func (b *exprBase) Volatile() bool { return b.volatile }

func (b *exprBase) markVolatile() { b.volatile = true }

func anyVolatile(nodes ...Expression) bool {
	for _, n := range nodes {
		if n.Volatile() {
			return true
		}
	}
	return false
}

func anyContains(sym Symbol, nodes ...Expression) bool {
	for _, n := range nodes {
		if n.ContainsSymbolOtherThan(sym) {
			return true
		}
	}
	return false
}

// Result is the sole entry point for evaluating a node. A volatile node
// drops any retained cache and re-evaluates; a non-volatile node
// evaluates at most once and returns its retained value on every later
// call, regardless of environment.
func Result(n Expression, env *Env) (Value, error) {
	ctx := env.ctx
	if err := ctx.enter(); err != nil {
		return nil, err
	}
	defer ctx.leave()

	b := n.base()
	if b.volatile {
		if b.hasCached {
			ctx.emit(TraceInvalidate, n)
			b.cached = nil
			b.hasCached = false
		}
		ctx.emit(TraceEvaluate, n)
		return n.Evaluate(env)
	}
	if b.hasCached {
		ctx.emit(TraceCacheHit, n)
		return b.cached, nil
	}
	ctx.emit(TraceEvaluate, n)
	v, err := n.Evaluate(env)
	if err != nil {
		return nil, err
	}
	b.cached = v
	b.hasCached = true
	return v, nil
}

// Constant is a literal leaf. Never volatile.
type Constant struct {
	exprBase
	Value Value
}

// NewConstant creates a constant node holding a literal value.
func NewConstant(v Value) *Constant {
	return &Constant{Value: v}
}

// NewIntConstant lifts an integer literal into the IR.
func NewIntConstant(n int64) *Constant {
	return NewConstant(NewInt(n))
}

// NewFloatConstant lifts a float literal into the IR.
func NewFloatConstant(f float64) *Constant {
	return NewConstant(NewFloat(f))
}

// NewBoolConstant lifts a boolean literal into the IR.
func NewBoolConstant(b bool) *Constant {
	return NewConstant(NewBool(b))
}

// NewStringConstant lifts a string literal into the IR.
func NewStringConstant(s string) *Constant {
	return NewConstant(NewString(s))
}

// Evaluate returns the literal value.
func (n *Constant) Evaluate(env *Env) (Value, error) {
	return n.Value, nil
}

func (n *Constant) ContainsSymbolOtherThan(sym Symbol) bool {
	return false
}

// SymbolExpr is a leaf referencing a staged variable. Always volatile:
// its value depends on environment lookup.
type SymbolExpr struct {
	exprBase
	Sym Symbol
}

// NewSymbolExpr creates a symbol reference node. Normally only lambda
// staging constructs these, one per synthesized formal.
func NewSymbolExpr(sym Symbol) *SymbolExpr {
	n := &SymbolExpr{Sym: sym}
	n.markVolatile()
	return n
}

// Evaluate looks the symbol up in the environment chain. An unbound
// symbol is fatal: it signals a construction bug, a body referencing a
// symbol not introduced by any enclosing lambda on the active path.
func (n *SymbolExpr) Evaluate(env *Env) (Value, error) {
	env.ctx.emitLookup(n.Sym)
	v, ok := env.Lookup(n.Sym)
	if !ok {
		return nil, unboundSymbol(n.Sym)
	}
	return v, nil
}

func (n *SymbolExpr) ContainsSymbolOtherThan(sym Symbol) bool {
	return n.Sym != sym
}
