// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about stability calculations and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCalculationHooks(&myCalcHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Calculation().OnCalculationStart(ctx, len(items))
//	// ... calculate ...
//	observability.Calculation().OnCalculationComplete(ctx, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Calculation Hooks
// =============================================================================

// CalculationHooks receives events from the stability calculation.
type CalculationHooks interface {
	// OnCalculationStart is called before the displacement is aggregated.
	OnCalculationStart(ctx context.Context, itemCount int)

	// OnTrimSolved reports the terminal state of the trim solver.
	OnTrimSolved(ctx context.Context, state string, iterations int, trim float64)

	// OnCalculationComplete is called once the result is built or the
	// calculation failed.
	OnCalculationComplete(ctx context.Context, duration time.Duration, err error)

	// OnComplianceChecked reports the IMO outcome of an assessment.
	OnComplianceChecked(ctx context.Context, pass bool, failed []string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCalculationHooks is a no-op implementation of CalculationHooks.
type NoopCalculationHooks struct{}

func (NoopCalculationHooks) OnCalculationStart(context.Context, int)                     {}
func (NoopCalculationHooks) OnTrimSolved(context.Context, string, int, float64)          {}
func (NoopCalculationHooks) OnCalculationComplete(context.Context, time.Duration, error) {}
func (NoopCalculationHooks) OnComplianceChecked(context.Context, bool, []string)         {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	calculationHooks CalculationHooks = NoopCalculationHooks{}
	cacheHooks       CacheHooks       = NoopCacheHooks{}
	hooksMu          sync.RWMutex
)

// SetCalculationHooks registers custom calculation hooks.
// This should be called once at application startup.
func SetCalculationHooks(h CalculationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		calculationHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Calculation returns the registered calculation hooks.
func Calculation() CalculationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return calculationHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	calculationHooks = NoopCalculationHooks{}
	cacheHooks = NoopCacheHooks{}
}
