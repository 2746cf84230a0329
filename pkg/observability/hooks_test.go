package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Calculation hooks
	p := NoopCalculationHooks{}
	p.OnCalculationStart(ctx, 3)
	p.OnTrimSolved(ctx, "converged", 2, 0.12)
	p.OnCalculationComplete(ctx, time.Millisecond, nil)
	p.OnComplianceChecked(ctx, false, []string{"gm"})

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "result")
	c.OnCacheMiss(ctx, "result")
	c.OnCacheSet(ctx, "result", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Calculation().(NoopCalculationHooks); !ok {
		t.Error("Calculation() should return NoopCalculationHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customCalc := &testCalculationHooks{}
	SetCalculationHooks(customCalc)
	if Calculation() != customCalc {
		t.Error("SetCalculationHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Calculation().(NoopCalculationHooks); !ok {
		t.Error("Reset() should restore NoopCalculationHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testCalculationHooks{}
	SetCalculationHooks(custom)

	// Setting nil should be ignored
	SetCalculationHooks(nil)

	if Calculation() != custom {
		t.Error("SetCalculationHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testCalculationHooks struct{ NoopCalculationHooks }
type testCacheHooks struct{ NoopCacheHooks }
