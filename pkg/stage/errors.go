package stage

import "fmt"

// Runtime error code constants.
const (
	EUnbound     = "E_UNBOUND_SYMBOL"
	EType        = "E_TYPE_MISMATCH"
	ENotFunction = "E_NOT_FUNCTION"
	EDepth       = "E_DEPTH"
)

// RuntimeError represents a fatal evaluation error. All core errors
// indicate a malformed IR (a bug in the layer that built the tree), so
// they abort the enclosing Evaluate call; there is no retry and no
// partial result. Numeric domain faults (integer division by zero,
// float Inf/NaN) are not intercepted and keep the host's behavior.
type RuntimeError struct {
	Code    string
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func unboundSymbol(sym Symbol) *RuntimeError {
	return &RuntimeError{
		Code:    EUnbound,
		Message: fmt.Sprintf("unbound symbol %d", sym),
	}
}

func typeMismatch(format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Code:    EType,
		Message: fmt.Sprintf(format, args...),
	}
}

func typeNameOf(v Value) string {
	switch v.(type) {
	case IntValue:
		return "int"
	case FloatValue:
		return "float"
	case BoolValue:
		return "bool"
	case StringValue:
		return "string"
	case ListValue:
		return "list"
	case PairValue:
		return "pair"
	case FuncValue:
		return "function"
	case AnyValue:
		return "any"
	default:
		return "unknown"
	}
}
