package stage

// MetaClosure is a code generator: a host-level function from an
// expression of the argument type to an expression of the return type.
// It is invoked at most once per call site, the first time that site is
// staged.
type MetaClosure func(arg Expression) Expression

// Lambda stages a function literal. The first evaluation of a given call
// site synthesizes a formal symbol, runs the meta-closure to build the
// body, records the body's free-variable status, and registers the
// closure record in the context; every later evaluation of any Lambda
// built at that site reuses the record.
//
// A Lambda node's own result is never cached (it is always volatile):
// the returned function value captures the evaluation environment by
// reference, and re-evaluating in a different environment must produce a
// function bound to that environment.
type Lambda struct {
	exprBase
	Site CallSite
	Meta MetaClosure
}

// NewLambda creates a lambda node for the given call site. Use Here to
// capture the caller's position.
func NewLambda(site CallSite, meta MetaClosure) *Lambda {
	n := &Lambda{Site: site, Meta: meta}
	n.markVolatile()
	return n
}

func (n *Lambda) Evaluate(env *Env) (Value, error) {
	ctx := env.ctx
	cl, ok := ctx.ClosureAt(n.Site)
	if !ok {
		formal := ctx.NextSymbol()
		body := n.Meta(NewSymbolExpr(formal))
		free := body.ContainsSymbolOtherThan(formal)
		if free {
			// Free variables mean the body's value depends on the
			// enclosing environment, so its root must never trust a
			// cache. The flag is only ever forced on: a body that
			// depends on its own formal is already volatile and must
			// stay so across activations.
			body.base().markVolatile()
		}
		cl = ctx.RegisterClosure(n.Site, &Closure{
			Formal:           formal,
			Body:             body,
			HasFreeVariables: free,
		})
		ctx.emitStage(TraceStage, n, n.Site, cl.Formal)
	} else {
		ctx.emitStage(TraceStageReuse, n, n.Site, cl.Formal)
	}

	captured := env
	return NewFunc(func(arg Value) (Value, error) {
		child := captured.Child()
		child.Bind(cl.Formal, arg)
		return Result(cl.Body, child)
	}), nil
}

// ContainsSymbolOtherThan answers true unconditionally: the body is not
// staged until first evaluation and may capture anything through the
// environment, so the conservative answer is the only safe one.
func (n *Lambda) ContainsSymbolOtherThan(sym Symbol) bool {
	return true
}

// Apply invokes a staged function. The argument is evaluated first, then
// the closure expression, then the call.
type Apply struct {
	exprBase
	Fn  Expression
	Arg Expression
}

// NewApply creates an application node.
func NewApply(fn, arg Expression) *Apply {
	n := &Apply{Fn: fn, Arg: arg}
	if anyVolatile(fn, arg) {
		n.markVolatile()
	}
	return n
}

func (n *Apply) Evaluate(env *Env) (Value, error) {
	arg, err := Result(n.Arg, env)
	if err != nil {
		return nil, err
	}
	fn, err := Result(n.Fn, env)
	if err != nil {
		return nil, err
	}
	f, ok := fn.(FuncValue)
	if !ok {
		return nil, &RuntimeError{
			Code:    ENotFunction,
			Message: "apply target evaluated to " + typeNameOf(fn) + ", not a function",
		}
	}
	return f.Fn(arg)
}

func (n *Apply) ContainsSymbolOtherThan(sym Symbol) bool {
	return anyContains(sym, n.Fn, n.Arg)
}
