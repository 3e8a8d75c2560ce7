package stage

import (
	"fmt"
	"strconv"
	"strings"
)

// Sprint renders a staged expression tree as a compact prefix-form
// string, for debugging and test diagnostics. Unbuilt conditional
// branches print as "?" without forcing their builders; lambda bodies
// print only when the call site has been staged.
func Sprint(n Expression) string {
	var sb strings.Builder
	sprintExpr(&sb, n)
	return sb.String()
}

func sprintExpr(sb *strings.Builder, n Expression) {
	switch e := n.(type) {
	case *Constant:
		sb.WriteString(sprintValue(e.Value))
	case *SymbolExpr:
		fmt.Fprintf(sb, "s%d", e.Sym)
	case *Arithmetic:
		sprintOp(sb, string(e.Op), e.Left, e.Right)
	case *IntegerDivision:
		sprintOp(sb, string(e.Op), e.Left, e.Right)
	case *FloatingDivision:
		sprintOp(sb, string(e.Op)+".", e.Left, e.Right)
	case *Comparison:
		sprintOp(sb, string(e.Op), e.Left, e.Right)
	case *Logical:
		sprintOp(sb, string(e.Op), e.Left, e.Right)
	case *Negate:
		sprintOp(sb, "-", e.Operand)
	case *Not:
		sprintOp(sb, "!", e.Operand)
	case *Lambda:
		fmt.Fprintf(sb, "(lambda@%s:%d)", shortFile(e.Site.File), e.Site.Line)
	case *Apply:
		sprintOp(sb, "apply", e.Fn, e.Arg)
	case *If:
		sb.WriteString("(if ")
		sprintExpr(sb, e.Cond)
		sb.WriteByte(' ')
		sprintBranch(sb, e.then)
		sb.WriteByte(' ')
		sprintBranch(sb, e.els)
		sb.WriteByte(')')
	case *Cond:
		sb.WriteString("(cond")
		for _, c := range e.clauses {
			sb.WriteString(" [")
			sprintBranch(sb, c.when)
			sb.WriteByte(' ')
			sprintBranch(sb, c.then)
			sb.WriteByte(']')
		}
		sb.WriteByte(' ')
		sprintBranch(sb, e.els)
		sb.WriteByte(')')
	case *Map:
		sprintOp(sb, "map", e.Fn, e.Array)
	case *Reduce:
		sprintOp(sb, "reduce", e.Initial, e.Combiner, e.Array)
	case *Filter:
		sprintOp(sb, "filter", e.Pred, e.Array)
	case *Zip:
		sprintOp(sb, "zip", e.A, e.B)
	case *ZipWith:
		sprintOp(sb, "zipWith", e.Fn, e.A, e.B)
	case *Tuple:
		sprintOp(sb, "tuple", e.FirstExpr, e.SecondExpr)
	case *First:
		sprintOp(sb, "first", e.Pair)
	case *Second:
		sprintOp(sb, "second", e.Pair)
	default:
		fmt.Fprintf(sb, "(%T)", n)
	}
}

func sprintOp(sb *strings.Builder, op string, operands ...Expression) {
	sb.WriteByte('(')
	sb.WriteString(op)
	for _, operand := range operands {
		sb.WriteByte(' ')
		sprintExpr(sb, operand)
	}
	sb.WriteByte(')')
}

func sprintBranch(sb *strings.Builder, b *branch) {
	if b.node == nil {
		sb.WriteByte('?')
		return
	}
	sprintExpr(sb, b.node)
}

func sprintValue(v Value) string {
	switch val := v.(type) {
	case IntValue:
		return strconv.FormatInt(val.Value, 10)
	case FloatValue:
		return strconv.FormatFloat(val.Value, 'g', -1, 64)
	case BoolValue:
		return strconv.FormatBool(val.Value)
	case StringValue:
		return strconv.Quote(val.Value)
	case ListValue:
		parts := make([]string, len(val.Items))
		for i, item := range val.Items {
			parts[i] = sprintValue(item)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case PairValue:
		return "(" + sprintValue(val.First) + " . " + sprintValue(val.Second) + ")"
	case FuncValue:
		return "<function>"
	case AnyValue:
		return fmt.Sprintf("<any %v>", val.Value)
	default:
		return fmt.Sprintf("<%T>", v)
	}
}

func shortFile(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
