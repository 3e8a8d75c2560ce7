package stage_test

import (
	"testing"

	"github.com/dan-zheng/nnkit/pkg/stage"
)

// addPair builds the combiner body `first(p) + second(p)`.
func addPair(p stage.Expression) stage.Expression {
	return stage.NewArithmetic(stage.OpAdd, stage.NewFirst(p), stage.NewSecond(p))
}

// mulPair builds the combiner body `first(p) * second(p)`.
func mulPair(p stage.Expression) stage.Expression {
	return stage.NewArithmetic(stage.OpMul, stage.NewFirst(p), stage.NewSecond(p))
}

func TestMapDoublesFloats(t *testing.T) {
	ctx := stage.NewContext()
	double := stage.NewLambda(site("double.go", 1), func(x stage.Expression) stage.Expression {
		return stage.NewArithmetic(stage.OpMul, x, stage.NewFloatConstant(2))
	})
	node := stage.NewMap(double, floatList(1, 2, 3))
	expectFloatList(t, mustEvaluate(t, ctx, node), []float64{2, 4, 6})
}

func TestMapComposesWithSameFunction(t *testing.T) {
	// Mapping twice with the same staged function must double twice,
	// not replay a cached per-element result.
	ctx := stage.NewContext()
	double := stage.NewLambda(site("double.go", 2), func(x stage.Expression) stage.Expression {
		return stage.NewArithmetic(stage.OpMul, x, stage.NewFloatConstant(2))
	})
	once := stage.NewMap(double, floatList(1, 2, 3))
	twice := stage.NewMap(double, once)
	expectFloatList(t, mustEvaluate(t, ctx, twice), []float64{4, 8, 12})
}

func TestReduce(t *testing.T) {
	ctx := stage.NewContext()

	sum := stage.NewReduce(stage.NewIntConstant(0),
		stage.NewLambda(site("sum.go", 1), addPair), intList(1, 2, 3, 4))
	expectInt(t, mustEvaluate(t, ctx, sum), 10)

	product := stage.NewReduce(stage.NewIntConstant(1),
		stage.NewLambda(site("product.go", 1), mulPair), intList(1, 2, 3, 4))
	expectInt(t, mustEvaluate(t, ctx, product), 24)
}

func TestReduceFoldsLeftToRight(t *testing.T) {
	// Left fold over subtraction distinguishes the direction:
	// ((((0-1)-2)-3)-4) = -10.
	ctx := stage.NewContext()
	node := stage.NewReduce(stage.NewIntConstant(0),
		stage.NewLambda(site("subfold.go", 1), func(p stage.Expression) stage.Expression {
			return stage.NewArithmetic(stage.OpSub, stage.NewFirst(p), stage.NewSecond(p))
		}), intList(1, 2, 3, 4))
	expectInt(t, mustEvaluate(t, ctx, node), -10)
}

func TestReduceEmptyListYieldsInitial(t *testing.T) {
	ctx := stage.NewContext()
	node := stage.NewReduce(stage.NewIntConstant(7),
		stage.NewLambda(site("sum.go", 2), addPair), intList())
	expectInt(t, mustEvaluate(t, ctx, node), 7)
}

func TestFilterKeepsOdds(t *testing.T) {
	ctx := stage.NewContext()
	odd := stage.NewLambda(site("odd.go", 1), func(x stage.Expression) stage.Expression {
		return stage.NewComparison(stage.OpNeq,
			stage.NewIntegerDivision(stage.OpRem, x, stage.NewIntConstant(2)),
			stage.NewIntConstant(0))
	})
	node := stage.NewFilter(odd, intList(1, 2, 3, 4, 5))
	expectIntList(t, mustEvaluate(t, ctx, node), []int64{1, 3, 5})
}

func TestFilterPreservesOrder(t *testing.T) {
	ctx := stage.NewContext()
	positive := stage.NewLambda(site("pos.go", 1), func(x stage.Expression) stage.Expression {
		return stage.NewComparison(stage.OpGt, x, stage.NewIntConstant(0))
	})
	node := stage.NewFilter(positive, intList(3, -1, 4, -1, 5))
	expectIntList(t, mustEvaluate(t, ctx, node), []int64{3, 4, 5})
}

func TestZipTruncatesToShorter(t *testing.T) {
	ctx := stage.NewContext()
	node := stage.NewZip(intList(1, 2, 3), intList(10, 20))
	v := mustEvaluate(t, ctx, node)

	list, ok := v.(stage.ListValue)
	if !ok {
		t.Fatalf("expected ListValue, got %T", v)
	}
	if len(list.Items) != 2 {
		t.Fatalf("got %d pairs, want 2", len(list.Items))
	}
	for i, want := range []struct{ a, b int64 }{{1, 10}, {2, 20}} {
		p, ok := list.Items[i].(stage.PairValue)
		if !ok {
			t.Fatalf("item %d: expected PairValue, got %T", i, list.Items[i])
		}
		expectInt(t, p.First, want.a)
		expectInt(t, p.Second, want.b)
	}
}

func TestZipWith(t *testing.T) {
	ctx := stage.NewContext()
	node := stage.NewZipWith(stage.NewLambda(site("zw.go", 1), addPair),
		intList(1, 2, 3), intList(10, 20, 30, 40))
	expectIntList(t, mustEvaluate(t, ctx, node), []int64{11, 22, 33})
}

func TestTupleAndProjections(t *testing.T) {
	ctx := stage.NewContext()
	tuple := stage.NewTuple(stage.NewIntConstant(1), stage.NewStringConstant("two"))

	v := mustEvaluate(t, ctx, stage.NewFirst(tuple))
	expectInt(t, v, 1)

	v = mustEvaluate(t, ctx, stage.NewSecond(tuple))
	s, ok := v.(stage.StringValue)
	if !ok {
		t.Fatalf("expected StringValue, got %T", v)
	}
	if s.Value != "two" {
		t.Errorf("got %q, want %q", s.Value, "two")
	}
}

func TestProjectionOnNonPairFails(t *testing.T) {
	ctx := stage.NewContext()
	_, err := ctx.Evaluate(stage.NewFirst(stage.NewIntConstant(1)))
	expectRuntimeError(t, err, stage.EType)
}

func TestMapOverNonListFails(t *testing.T) {
	ctx := stage.NewContext()
	identity := stage.NewLambda(site("id.go", 1), func(x stage.Expression) stage.Expression { return x })
	_, err := ctx.Evaluate(stage.NewMap(identity, stage.NewIntConstant(1)))
	expectRuntimeError(t, err, stage.EType)
}
