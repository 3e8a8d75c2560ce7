package stage

// branch is a lazily built subtree. The builder runs at most once, and
// only when the branch is actually selected (or inspected after being
// built). Construction-level laziness mirrors evaluation-level short
// circuit: an untaken branch never forces its builder.
type branch struct {
	build func() Expression
	node  Expression
}

func newBranch(build func() Expression) *branch {
	return &branch{build: build}
}

func (b *branch) force() Expression {
	if b.node == nil {
		b.node = b.build()
		b.build = nil
	}
	return b.node
}

// containsSymbolOtherThan is conservative: an unbuilt branch may
// reference anything, so it answers true without forcing the builder.
func (b *branch) containsSymbolOtherThan(sym Symbol) bool {
	if b.node == nil {
		return true
	}
	return b.node.ContainsSymbolOtherThan(sym)
}

// If evaluates its condition, then exactly one branch. Unlike the eager
// operator nodes, the untaken branch is neither built nor evaluated.
// Volatile iff the condition is volatile; each branch subtree still
// obeys its own volatility when its Result is invoked.
type If struct {
	exprBase
	Cond Expression
	then *branch
	els  *branch
}

// NewIf creates a conditional node. The branch arguments are
// zero-argument thunks so unevaluated branches never force construction
// of their subtree.
func NewIf(cond Expression, then, els func() Expression) *If {
	n := &If{Cond: cond, then: newBranch(then), els: newBranch(els)}
	if cond.Volatile() {
		n.markVolatile()
	}
	return n
}

func (n *If) Evaluate(env *Env) (Value, error) {
	c, err := Result(n.Cond, env)
	if err != nil {
		return nil, err
	}
	b, ok := c.(BoolValue)
	if !ok {
		return nil, typeMismatch("if condition must be a bool, got %s", typeNameOf(c))
	}
	if b.Value {
		return Result(n.then.force(), env)
	}
	return Result(n.els.force(), env)
}

func (n *If) ContainsSymbolOtherThan(sym Symbol) bool {
	return n.Cond.ContainsSymbolOtherThan(sym) ||
		n.then.containsSymbolOtherThan(sym) ||
		n.els.containsSymbolOtherThan(sym)
}

// CondClause is one (condition, consequence) pair of a Cond chain. Both
// parts are built lazily: When is forced only once all earlier clauses
// were false, Then only if this clause is selected.
type CondClause struct {
	When func() Expression
	Then func() Expression
}

// Cond evaluates clause conditions strictly left to right and returns
// the first true clause's consequence; the remaining clauses are not
// built or evaluated. If no clause matches, the else branch runs.
// Always volatile: clause volatility cannot be derived before the
// builders run.
type Cond struct {
	exprBase
	clauses []*condClause
	els     *branch
}

type condClause struct {
	when *branch
	then *branch
}

// NewCond creates a clause-chain conditional.
func NewCond(clauses []CondClause, els func() Expression) *Cond {
	n := &Cond{els: newBranch(els)}
	for _, c := range clauses {
		n.clauses = append(n.clauses, &condClause{
			when: newBranch(c.When),
			then: newBranch(c.Then),
		})
	}
	n.markVolatile()
	return n
}

func (n *Cond) Evaluate(env *Env) (Value, error) {
	for _, c := range n.clauses {
		v, err := Result(c.when.force(), env)
		if err != nil {
			return nil, err
		}
		b, ok := v.(BoolValue)
		if !ok {
			return nil, typeMismatch("cond clause condition must be a bool, got %s", typeNameOf(v))
		}
		if b.Value {
			return Result(c.then.force(), env)
		}
	}
	return Result(n.els.force(), env)
}

func (n *Cond) ContainsSymbolOtherThan(sym Symbol) bool {
	for _, c := range n.clauses {
		if c.when.containsSymbolOtherThan(sym) || c.then.containsSymbolOtherThan(sym) {
			return true
		}
	}
	return n.els.containsSymbolOtherThan(sym)
}
