package stage_test

import (
	"errors"
	"testing"

	"github.com/dan-zheng/nnkit/pkg/stage"
)

// --- helpers ---

// evalCounter records how many times each traced event fired, so tests
// can verify caching behavior without touching package internals.
type evalCounter struct {
	evaluates   int
	cacheHits   int
	invalidates int
	stages      int
	stageReuses int
	lookups     int
}

func (c *evalCounter) hook(ev stage.TraceEvent) {
	switch ev.Event {
	case stage.TraceEvaluate:
		c.evaluates++
	case stage.TraceCacheHit:
		c.cacheHits++
	case stage.TraceInvalidate:
		c.invalidates++
	case stage.TraceStage:
		c.stages++
	case stage.TraceStageReuse:
		c.stageReuses++
	case stage.TraceLookup:
		c.lookups++
	}
}

// countingContext returns a context with an evalCounter installed.
func countingContext() (*stage.Context, *evalCounter) {
	c := &evalCounter{}
	return stage.NewContext(stage.WithTrace(c.hook)), c
}

// nodeCounter counts TraceEvaluate events for one specific node.
type nodeCounter struct {
	node      stage.Expression
	evaluates int
}

func (c *nodeCounter) hook(ev stage.TraceEvent) {
	if ev.Event == stage.TraceEvaluate && ev.Node == c.node {
		c.evaluates++
	}
}

// expectInt asserts the value is an IntValue with the expected value.
func expectInt(t *testing.T, val stage.Value, expected int64) {
	t.Helper()
	n, ok := val.(stage.IntValue)
	if !ok {
		t.Fatalf("expected IntValue, got %T (%v)", val, val)
	}
	if n.Value != expected {
		t.Errorf("got %d, want %d", n.Value, expected)
	}
}

// expectFloat asserts the value is a FloatValue with the expected value.
func expectFloat(t *testing.T, val stage.Value, expected float64) {
	t.Helper()
	f, ok := val.(stage.FloatValue)
	if !ok {
		t.Fatalf("expected FloatValue, got %T (%v)", val, val)
	}
	if f.Value != expected {
		t.Errorf("got %v, want %v", f.Value, expected)
	}
}

// expectBool asserts the value is a BoolValue with the expected value.
func expectBool(t *testing.T, val stage.Value, expected bool) {
	t.Helper()
	b, ok := val.(stage.BoolValue)
	if !ok {
		t.Fatalf("expected BoolValue, got %T (%v)", val, val)
	}
	if b.Value != expected {
		t.Errorf("got %v, want %v", b.Value, expected)
	}
}

// expectIntList asserts the value is a ListValue of the expected ints.
func expectIntList(t *testing.T, val stage.Value, expected []int64) {
	t.Helper()
	list, ok := val.(stage.ListValue)
	if !ok {
		t.Fatalf("expected ListValue, got %T (%v)", val, val)
	}
	if len(list.Items) != len(expected) {
		t.Fatalf("got %d items, want %d", len(list.Items), len(expected))
	}
	for i, item := range list.Items {
		expectInt(t, item, expected[i])
	}
}

// expectFloatList asserts the value is a ListValue of the expected floats.
func expectFloatList(t *testing.T, val stage.Value, expected []float64) {
	t.Helper()
	list, ok := val.(stage.ListValue)
	if !ok {
		t.Fatalf("expected ListValue, got %T (%v)", val, val)
	}
	if len(list.Items) != len(expected) {
		t.Fatalf("got %d items, want %d", len(list.Items), len(expected))
	}
	for i, item := range list.Items {
		expectFloat(t, item, expected[i])
	}
}

// expectRuntimeError asserts the error is a RuntimeError with the
// expected code.
func expectRuntimeError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected runtime error with code %s, got nil", expectedCode)
	}
	var rtErr *stage.RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if rtErr.Code != expectedCode {
		t.Errorf("got code %s, want %s (message: %s)", rtErr.Code, expectedCode, rtErr.Message)
	}
}

// mustEvaluate evaluates a node in a fresh context, failing the test on
// error.
func mustEvaluate(t *testing.T, ctx *stage.Context, n stage.Expression) stage.Value {
	t.Helper()
	v, err := ctx.Evaluate(n)
	if err != nil {
		t.Fatalf("unexpected evaluation error: %v", err)
	}
	return v
}

// intList lifts a slice of ints into a constant list node.
func intList(items ...int64) stage.Expression {
	vals := make([]stage.Value, len(items))
	for i, item := range items {
		vals[i] = stage.NewInt(item)
	}
	return stage.NewConstant(stage.NewList(vals))
}

// floatList lifts a slice of floats into a constant list node.
func floatList(items ...float64) stage.Expression {
	vals := make([]stage.Value, len(items))
	for i, item := range items {
		vals[i] = stage.NewFloat(item)
	}
	return stage.NewConstant(stage.NewList(vals))
}

// site builds a distinct synthetic call site for staging tests.
func site(file string, line int) stage.CallSite {
	return stage.CallSite{File: file, Line: line}
}
