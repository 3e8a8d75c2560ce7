// Package stage implements a staged-expression evaluator: typed IR trees
// built bottom-up by host code, evaluated against a scoped environment,
// with selective result caching and call-site-memoized closure staging.
package stage

// Value is the interface for all runtime values produced by evaluation.
// Use the sealed marker method to restrict implementations to this package.
type Value interface {
	value() // sealed marker
}

// IntValue represents an integer scalar.
type IntValue struct {
	Value int64
}

func (IntValue) value() {}

// FloatValue represents a floating-point scalar.
type FloatValue struct {
	Value float64
}

func (FloatValue) value() {}

// BoolValue represents a boolean.
type BoolValue struct {
	Value bool
}

func (BoolValue) value() {}

// StringValue represents a string.
type StringValue struct {
	Value string
}

func (StringValue) value() {}

// ListValue represents a materialized ordered sequence.
type ListValue struct {
	Items []Value
}

func (ListValue) value() {}

// PairValue represents a two-element tuple. N-ary tuples are encoded as
// right-nested pairs: (A, (B, (C, ...))).
type PairValue struct {
	First  Value
	Second Value
}

func (PairValue) value() {}

// FuncValue represents a host-level function value produced by evaluating
// a Lambda node. Multi-argument functions take a right-nested PairValue.
type FuncValue struct {
	Fn func(arg Value) (Value, error)
}

func (FuncValue) value() {}

// AnyValue carries an opaque host-specific payload through the evaluator.
type AnyValue struct {
	Value any
}

func (AnyValue) value() {}

// NewInt creates an integer value.
func NewInt(n int64) Value {
	return IntValue{Value: n}
}

// NewFloat creates a floating-point value.
func NewFloat(f float64) Value {
	return FloatValue{Value: f}
}

// NewBool creates a boolean value.
func NewBool(b bool) Value {
	return BoolValue{Value: b}
}

// NewString creates a string value.
func NewString(s string) Value {
	return StringValue{Value: s}
}

// NewList creates a list value.
func NewList(items []Value) Value {
	return ListValue{Items: items}
}

// NewPair creates a pair value.
func NewPair(first, second Value) Value {
	return PairValue{First: first, Second: second}
}

// NewFunc creates a function value.
func NewFunc(fn func(Value) (Value, error)) Value {
	return FuncValue{Fn: fn}
}

// NewAny creates an opaque value.
func NewAny(v any) Value {
	return AnyValue{Value: v}
}

// DeepEqual reports structural equality of two values. Lists and pairs
// compare element-wise; function values are never equal; opaque values
// compare by interface equality.
func DeepEqual(a, b Value) bool {
	switch av := a.(type) {
	case IntValue:
		bv, ok := b.(IntValue)
		return ok && av.Value == bv.Value
	case FloatValue:
		bv, ok := b.(FloatValue)
		return ok && av.Value == bv.Value
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Value == bv.Value
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Value == bv.Value
	case ListValue:
		bv, ok := b.(ListValue)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !DeepEqual(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case PairValue:
		bv, ok := b.(PairValue)
		return ok && DeepEqual(av.First, bv.First) && DeepEqual(av.Second, bv.Second)
	case FuncValue:
		return false
	case AnyValue:
		bv, ok := b.(AnyValue)
		return ok && av.Value == bv.Value
	default:
		return false
	}
}
