package stage

// Map transforms a sequence left to right through a staged function.
type Map struct {
	exprBase
	Fn    Expression
	Array Expression
}

// NewMap creates a map node.
func NewMap(fn, array Expression) *Map {
	n := &Map{Fn: fn, Array: array}
	if anyVolatile(fn, array) {
		n.markVolatile()
	}
	return n
}

func (n *Map) Evaluate(env *Env) (Value, error) {
	fn, arr, err := evalFnAndList(n.Fn, n.Array, env)
	if err != nil {
		return nil, err
	}
	out := make([]Value, 0, len(arr.Items))
	for _, item := range arr.Items {
		v, err := fn.Fn(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return NewList(out), nil
}

func (n *Map) ContainsSymbolOtherThan(sym Symbol) bool {
	return anyContains(sym, n.Fn, n.Array)
}

// Reduce folds a sequence left to right from an initial accumulator.
// The combiner is a staged function of a single pair argument
// (accumulator, element), following the nested-pair convention for
// multi-argument functions.
type Reduce struct {
	exprBase
	Initial  Expression
	Combiner Expression
	Array    Expression
}

// NewReduce creates a fold node.
func NewReduce(initial, combiner, array Expression) *Reduce {
	n := &Reduce{Initial: initial, Combiner: combiner, Array: array}
	if anyVolatile(initial, combiner, array) {
		n.markVolatile()
	}
	return n
}

func (n *Reduce) Evaluate(env *Env) (Value, error) {
	acc, err := Result(n.Initial, env)
	if err != nil {
		return nil, err
	}
	fn, arr, err := evalFnAndList(n.Combiner, n.Array, env)
	if err != nil {
		return nil, err
	}
	for _, item := range arr.Items {
		acc, err = fn.Fn(NewPair(acc, item))
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (n *Reduce) ContainsSymbolOtherThan(sym Symbol) bool {
	return anyContains(sym, n.Initial, n.Combiner, n.Array)
}

// Filter keeps the elements for which a staged predicate returns true,
// preserving order.
type Filter struct {
	exprBase
	Pred  Expression
	Array Expression
}

// NewFilter creates a filter node.
func NewFilter(pred, array Expression) *Filter {
	n := &Filter{Pred: pred, Array: array}
	if anyVolatile(pred, array) {
		n.markVolatile()
	}
	return n
}

func (n *Filter) Evaluate(env *Env) (Value, error) {
	fn, arr, err := evalFnAndList(n.Pred, n.Array, env)
	if err != nil {
		return nil, err
	}
	out := make([]Value, 0, len(arr.Items))
	for _, item := range arr.Items {
		v, err := fn.Fn(item)
		if err != nil {
			return nil, err
		}
		keep, ok := v.(BoolValue)
		if !ok {
			return nil, typeMismatch("filter predicate must return a bool, got %s", typeNameOf(v))
		}
		if keep.Value {
			out = append(out, item)
		}
	}
	return NewList(out), nil
}

func (n *Filter) ContainsSymbolOtherThan(sym Symbol) bool {
	return anyContains(sym, n.Pred, n.Array)
}

// Zip pairs two sequences index-wise, truncated to the shorter length.
type Zip struct {
	exprBase
	A Expression
	B Expression
}

// NewZip creates a zip node.
func NewZip(a, b Expression) *Zip {
	n := &Zip{A: a, B: b}
	if anyVolatile(a, b) {
		n.markVolatile()
	}
	return n
}

func (n *Zip) Evaluate(env *Env) (Value, error) {
	a, err := evalList(n.A, env)
	if err != nil {
		return nil, err
	}
	b, err := evalList(n.B, env)
	if err != nil {
		return nil, err
	}
	length := min(len(a.Items), len(b.Items))
	out := make([]Value, 0, length)
	for i := 0; i < length; i++ {
		out = append(out, NewPair(a.Items[i], b.Items[i]))
	}
	return NewList(out), nil
}

func (n *Zip) ContainsSymbolOtherThan(sym Symbol) bool {
	return anyContains(sym, n.A, n.B)
}

// ZipWith combines two sequences index-wise through a staged function of
// a single pair argument, truncated to the shorter length.
type ZipWith struct {
	exprBase
	Fn Expression
	A  Expression
	B  Expression
}

// NewZipWith creates a combining zip node.
func NewZipWith(fn, a, b Expression) *ZipWith {
	n := &ZipWith{Fn: fn, A: a, B: b}
	if anyVolatile(fn, a, b) {
		n.markVolatile()
	}
	return n
}

func (n *ZipWith) Evaluate(env *Env) (Value, error) {
	fnVal, err := Result(n.Fn, env)
	if err != nil {
		return nil, err
	}
	fn, ok := fnVal.(FuncValue)
	if !ok {
		return nil, typeMismatch("zipWith combiner must be a function, got %s", typeNameOf(fnVal))
	}
	a, err := evalList(n.A, env)
	if err != nil {
		return nil, err
	}
	b, err := evalList(n.B, env)
	if err != nil {
		return nil, err
	}
	length := min(len(a.Items), len(b.Items))
	out := make([]Value, 0, length)
	for i := 0; i < length; i++ {
		v, err := fn.Fn(NewPair(a.Items[i], b.Items[i]))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return NewList(out), nil
}

func (n *ZipWith) ContainsSymbolOtherThan(sym Symbol) bool {
	return anyContains(sym, n.Fn, n.A, n.B)
}

// Tuple builds a pair value from two subexpressions. N-ary tuples are
// right-nested Tuple chains.
type Tuple struct {
	exprBase
	FirstExpr  Expression
	SecondExpr Expression
}

// NewTuple creates a pair-construction node.
func NewTuple(first, second Expression) *Tuple {
	n := &Tuple{FirstExpr: first, SecondExpr: second}
	if anyVolatile(first, second) {
		n.markVolatile()
	}
	return n
}

func (n *Tuple) Evaluate(env *Env) (Value, error) {
	f, err := Result(n.FirstExpr, env)
	if err != nil {
		return nil, err
	}
	s, err := Result(n.SecondExpr, env)
	if err != nil {
		return nil, err
	}
	return NewPair(f, s), nil
}

func (n *Tuple) ContainsSymbolOtherThan(sym Symbol) bool {
	return anyContains(sym, n.FirstExpr, n.SecondExpr)
}

// First projects the first element of a pair.
type First struct {
	exprBase
	Pair Expression
}

// NewFirst creates a first-projection node.
func NewFirst(pair Expression) *First {
	n := &First{Pair: pair}
	if pair.Volatile() {
		n.markVolatile()
	}
	return n
}

func (n *First) Evaluate(env *Env) (Value, error) {
	v, err := Result(n.Pair, env)
	if err != nil {
		return nil, err
	}
	p, ok := v.(PairValue)
	if !ok {
		return nil, typeMismatch("first requires a pair, got %s", typeNameOf(v))
	}
	return p.First, nil
}

func (n *First) ContainsSymbolOtherThan(sym Symbol) bool {
	return n.Pair.ContainsSymbolOtherThan(sym)
}

// Second projects the second element of a pair.
type Second struct {
	exprBase
	Pair Expression
}

// NewSecond creates a second-projection node.
func NewSecond(pair Expression) *Second {
	n := &Second{Pair: pair}
	if pair.Volatile() {
		n.markVolatile()
	}
	return n
}

func (n *Second) Evaluate(env *Env) (Value, error) {
	v, err := Result(n.Pair, env)
	if err != nil {
		return nil, err
	}
	p, ok := v.(PairValue)
	if !ok {
		return nil, typeMismatch("second requires a pair, got %s", typeNameOf(v))
	}
	return p.Second, nil
}

func (n *Second) ContainsSymbolOtherThan(sym Symbol) bool {
	return n.Pair.ContainsSymbolOtherThan(sym)
}

func evalList(e Expression, env *Env) (ListValue, error) {
	v, err := Result(e, env)
	if err != nil {
		return ListValue{}, err
	}
	list, ok := v.(ListValue)
	if !ok {
		return ListValue{}, typeMismatch("expected a list, got %s", typeNameOf(v))
	}
	return list, nil
}

func evalFnAndList(fnExpr, arrExpr Expression, env *Env) (FuncValue, ListValue, error) {
	fnVal, err := Result(fnExpr, env)
	if err != nil {
		return FuncValue{}, ListValue{}, err
	}
	fn, ok := fnVal.(FuncValue)
	if !ok {
		return FuncValue{}, ListValue{}, typeMismatch("expected a function, got %s", typeNameOf(fnVal))
	}
	arr, err := evalList(arrExpr, env)
	if err != nil {
		return FuncValue{}, ListValue{}, err
	}
	return fn, arr, nil
}
