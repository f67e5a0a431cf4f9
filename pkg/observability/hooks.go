// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about graph generation, layout, export, cache and store
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the core packages stay
// free of logging and metrics backends.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetWorkbenchHooks(&myWorkbenchHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Workbench().OnGenerateStart(ctx, "cycle", "4")
//	// ... generate ...
//	observability.Workbench().OnGenerateComplete(ctx, "cycle", 4, 4, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Workbench Hooks
// =============================================================================

// WorkbenchHooks receives events from generators, layout algorithms and
// exporters.
type WorkbenchHooks interface {
	// Generate events
	OnGenerateStart(ctx context.Context, generator, params string)
	OnGenerateComplete(ctx context.Context, generator string, vertices, edges int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, algorithm string, vertices int)
	OnLayoutComplete(ctx context.Context, algorithm string, duration time.Duration, err error)

	// Export events
	OnExportStart(ctx context.Context, format string)
	OnExportComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
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
// Store Hooks
// =============================================================================

// StoreHooks receives events from document store backends.
type StoreHooks interface {
	// OnStoreOperation records a completed store call. id is empty for
	// listings.
	OnStoreOperation(ctx context.Context, backend, op, id string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopWorkbenchHooks is a no-op implementation of WorkbenchHooks.
type NoopWorkbenchHooks struct{}

func (NoopWorkbenchHooks) OnGenerateStart(context.Context, string, string) {}
func (NoopWorkbenchHooks) OnGenerateComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopWorkbenchHooks) OnLayoutStart(context.Context, string, int)                          {}
func (NoopWorkbenchHooks) OnLayoutComplete(context.Context, string, time.Duration, error)      {}
func (NoopWorkbenchHooks) OnExportStart(context.Context, string)                               {}
func (NoopWorkbenchHooks) OnExportComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreOperation(context.Context, string, string, string, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	workbenchHooks WorkbenchHooks = NoopWorkbenchHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	storeHooks     StoreHooks     = NoopStoreHooks{}
	hooksMu        sync.RWMutex
)

// SetWorkbenchHooks registers custom workbench hooks.
// This should be called once at application startup.
func SetWorkbenchHooks(h WorkbenchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		workbenchHooks = h
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

// SetStoreHooks registers custom store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Workbench returns the registered workbench hooks.
func Workbench() WorkbenchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return workbenchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	workbenchHooks = NoopWorkbenchHooks{}
	cacheHooks = NoopCacheHooks{}
	storeHooks = NoopStoreHooks{}
}
