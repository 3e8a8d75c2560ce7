package stage

import "math"

// ArithOp is an arithmetic operator over matching numeric kinds.
type ArithOp string

const (
	OpAdd ArithOp = "+"
	OpSub ArithOp = "-"
	OpMul ArithOp = "*"
)

// DivOp is a division-family operator.
type DivOp string

const (
	OpDiv DivOp = "/"
	OpRem DivOp = "%"
)

// CmpOp is a comparison operator.
type CmpOp string

const (
	OpGt   CmpOp = ">"
	OpGtEq CmpOp = ">="
	OpLt   CmpOp = "<"
	OpLtEq CmpOp = "<="
	OpEqEq CmpOp = "=="
	OpNeq  CmpOp = "!="
)

// LogicOp is a boolean connective.
type LogicOp string

const (
	OpAnd LogicOp = "&&"
	OpOr  LogicOp = "||"
)

// Arithmetic applies add, sub, or mul to two operands of the same
// numeric kind. Both operands are evaluated eagerly.
type Arithmetic struct {
	exprBase
	Op    ArithOp
	Left  Expression
	Right Expression
}

// NewArithmetic creates an arithmetic node.
func NewArithmetic(op ArithOp, left, right Expression) *Arithmetic {
	n := &Arithmetic{Op: op, Left: left, Right: right}
	if anyVolatile(left, right) {
		n.markVolatile()
	}
	return n
}

func (n *Arithmetic) Evaluate(env *Env) (Value, error) {
	l, err := Result(n.Left, env)
	if err != nil {
		return nil, err
	}
	r, err := Result(n.Right, env)
	if err != nil {
		return nil, err
	}
	if li, ok := l.(IntValue); ok {
		ri, ok := r.(IntValue)
		if !ok {
			return nil, typeMismatch("'%s' requires matching numeric kinds, got int and %s", n.Op, typeNameOf(r))
		}
		switch n.Op {
		case OpAdd:
			return NewInt(li.Value + ri.Value), nil
		case OpSub:
			return NewInt(li.Value - ri.Value), nil
		case OpMul:
			return NewInt(li.Value * ri.Value), nil
		}
	}
	if lf, ok := l.(FloatValue); ok {
		rf, ok := r.(FloatValue)
		if !ok {
			return nil, typeMismatch("'%s' requires matching numeric kinds, got float and %s", n.Op, typeNameOf(r))
		}
		switch n.Op {
		case OpAdd:
			return NewFloat(lf.Value + rf.Value), nil
		case OpSub:
			return NewFloat(lf.Value - rf.Value), nil
		case OpMul:
			return NewFloat(lf.Value * rf.Value), nil
		}
	}
	return nil, typeMismatch("'%s' requires two numbers, got %s and %s", n.Op, typeNameOf(l), typeNameOf(r))
}

func (n *Arithmetic) ContainsSymbolOtherThan(sym Symbol) bool {
	return anyContains(sym, n.Left, n.Right)
}

// IntegerDivision applies truncating integer division or remainder.
// Division by zero is not guarded at the IR level: it panics exactly as
// the host's integer division does.
type IntegerDivision struct {
	exprBase
	Op    DivOp
	Left  Expression
	Right Expression
}

// NewIntegerDivision creates an integer division or remainder node.
func NewIntegerDivision(op DivOp, left, right Expression) *IntegerDivision {
	n := &IntegerDivision{Op: op, Left: left, Right: right}
	if anyVolatile(left, right) {
		n.markVolatile()
	}
	return n
}

func (n *IntegerDivision) Evaluate(env *Env) (Value, error) {
	l, err := Result(n.Left, env)
	if err != nil {
		return nil, err
	}
	r, err := Result(n.Right, env)
	if err != nil {
		return nil, err
	}
	li, lok := l.(IntValue)
	ri, rok := r.(IntValue)
	if !lok || !rok {
		return nil, typeMismatch("'%s' requires two ints, got %s and %s", n.Op, typeNameOf(l), typeNameOf(r))
	}
	switch n.Op {
	case OpDiv:
		return NewInt(li.Value / ri.Value), nil
	case OpRem:
		return NewInt(li.Value % ri.Value), nil
	}
	return nil, typeMismatch("unknown division operator '%s'", n.Op)
}

func (n *IntegerDivision) ContainsSymbolOtherThan(sym Symbol) bool {
	return anyContains(sym, n.Left, n.Right)
}

// FloatingDivision applies floating division or truncating remainder.
// Division by zero produces the host float behavior (Inf/NaN).
type FloatingDivision struct {
	exprBase
	Op    DivOp
	Left  Expression
	Right Expression
}

// NewFloatingDivision creates a floating division or remainder node.
func NewFloatingDivision(op DivOp, left, right Expression) *FloatingDivision {
	n := &FloatingDivision{Op: op, Left: left, Right: right}
	if anyVolatile(left, right) {
		n.markVolatile()
	}
	return n
}

func (n *FloatingDivision) Evaluate(env *Env) (Value, error) {
	l, err := Result(n.Left, env)
	if err != nil {
		return nil, err
	}
	r, err := Result(n.Right, env)
	if err != nil {
		return nil, err
	}
	lf, lok := l.(FloatValue)
	rf, rok := r.(FloatValue)
	if !lok || !rok {
		return nil, typeMismatch("'%s' requires two floats, got %s and %s", n.Op, typeNameOf(l), typeNameOf(r))
	}
	switch n.Op {
	case OpDiv:
		return NewFloat(lf.Value / rf.Value), nil
	case OpRem:
		// math.Mod keeps the truncating convention: result has the
		// sign of the dividend.
		return NewFloat(math.Mod(lf.Value, rf.Value)), nil
	}
	return nil, typeMismatch("unknown division operator '%s'", n.Op)
}

func (n *FloatingDivision) ContainsSymbolOtherThan(sym Symbol) bool {
	return anyContains(sym, n.Left, n.Right)
}

// Comparison compares two operands. Ordered operators require matching
// int, float, or string kinds; equality uses structural DeepEqual.
// Both operands are evaluated eagerly even when one side determines the
// answer.
type Comparison struct {
	exprBase
	Op    CmpOp
	Left  Expression
	Right Expression
}

// NewComparison creates a comparison node.
func NewComparison(op CmpOp, left, right Expression) *Comparison {
	n := &Comparison{Op: op, Left: left, Right: right}
	if anyVolatile(left, right) {
		n.markVolatile()
	}
	return n
}

func (n *Comparison) Evaluate(env *Env) (Value, error) {
	l, err := Result(n.Left, env)
	if err != nil {
		return nil, err
	}
	r, err := Result(n.Right, env)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case OpEqEq:
		return NewBool(DeepEqual(l, r)), nil
	case OpNeq:
		return NewBool(!DeepEqual(l, r)), nil
	}
	if li, ok := l.(IntValue); ok {
		if ri, ok := r.(IntValue); ok {
			return orderedCompare(n.Op, li.Value < ri.Value, li.Value == ri.Value), nil
		}
	}
	if lf, ok := l.(FloatValue); ok {
		if rf, ok := r.(FloatValue); ok {
			return orderedCompare(n.Op, lf.Value < rf.Value, lf.Value == rf.Value), nil
		}
	}
	if ls, ok := l.(StringValue); ok {
		if rs, ok := r.(StringValue); ok {
			return orderedCompare(n.Op, ls.Value < rs.Value, ls.Value == rs.Value), nil
		}
	}
	return nil, typeMismatch("'%s' requires two ordered values of the same kind, got %s and %s", n.Op, typeNameOf(l), typeNameOf(r))
}

func orderedCompare(op CmpOp, less, equal bool) Value {
	switch op {
	case OpLt:
		return NewBool(less)
	case OpLtEq:
		return NewBool(less || equal)
	case OpGt:
		return NewBool(!less && !equal)
	case OpGtEq:
		return NewBool(!less)
	}
	return NewBool(false)
}

func (n *Comparison) ContainsSymbolOtherThan(sym Symbol) bool {
	return anyContains(sym, n.Left, n.Right)
}

// Logical applies a boolean connective. Both operands are always
// evaluated; there is deliberately no short circuit, so
// `false && <unbound lookup>` still fails.
type Logical struct {
	exprBase
	Op    LogicOp
	Left  Expression
	Right Expression
}

// NewLogical creates a boolean connective node.
func NewLogical(op LogicOp, left, right Expression) *Logical {
	n := &Logical{Op: op, Left: left, Right: right}
	if anyVolatile(left, right) {
		n.markVolatile()
	}
	return n
}

func (n *Logical) Evaluate(env *Env) (Value, error) {
	l, err := Result(n.Left, env)
	if err != nil {
		return nil, err
	}
	r, err := Result(n.Right, env)
	if err != nil {
		return nil, err
	}
	lb, lok := l.(BoolValue)
	rb, rok := r.(BoolValue)
	if !lok || !rok {
		return nil, typeMismatch("'%s' requires two bools, got %s and %s", n.Op, typeNameOf(l), typeNameOf(r))
	}
	switch n.Op {
	case OpAnd:
		return NewBool(lb.Value && rb.Value), nil
	case OpOr:
		return NewBool(lb.Value || rb.Value), nil
	}
	return nil, typeMismatch("unknown logical operator '%s'", n.Op)
}

func (n *Logical) ContainsSymbolOtherThan(sym Symbol) bool {
	return anyContains(sym, n.Left, n.Right)
}

// Negate negates a numeric operand.
type Negate struct {
	exprBase
	Operand Expression
}

// NewNegate creates a numeric negation node.
func NewNegate(operand Expression) *Negate {
	n := &Negate{Operand: operand}
	if operand.Volatile() {
		n.markVolatile()
	}
	return n
}

func (n *Negate) Evaluate(env *Env) (Value, error) {
	v, err := Result(n.Operand, env)
	if err != nil {
		return nil, err
	}
	switch val := v.(type) {
	case IntValue:
		return NewInt(-val.Value), nil
	case FloatValue:
		return NewFloat(-val.Value), nil
	}
	return nil, typeMismatch("'-' requires a number, got %s", typeNameOf(v))
}

func (n *Negate) ContainsSymbolOtherThan(sym Symbol) bool {
	return n.Operand.ContainsSymbolOtherThan(sym)
}

// Not negates a boolean operand.
type Not struct {
	exprBase
	Operand Expression
}

// NewNot creates a logical negation node.
func NewNot(operand Expression) *Not {
	n := &Not{Operand: operand}
	if operand.Volatile() {
		n.markVolatile()
	}
	return n
}

func (n *Not) Evaluate(env *Env) (Value, error) {
	v, err := Result(n.Operand, env)
	if err != nil {
		return nil, err
	}
	b, ok := v.(BoolValue)
	if !ok {
		return nil, typeMismatch("'!' requires a bool, got %s", typeNameOf(v))
	}
	return NewBool(!b.Value), nil
}

func (n *Not) ContainsSymbolOtherThan(sym Symbol) bool {
	return n.Operand.ContainsSymbolOtherThan(sym)
}
