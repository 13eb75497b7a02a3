// Package state provides thread-safe caches shared between pollers and the UI.
//
// # Overview
//
// A Cache holds the latest value produced by one poller. The poller writes
// through Set/Fail (or Update) from its goroutine; the UI reads Snapshot from
// its own tick. Each poller owns its own Cache, so the signup count and the
// deployment status never share mutable state.
//
// # Update Semantics
//
//	cache.Set(v)     → Value = v, HasValue = true, LastError = nil
//	cache.Fail(err)  → Value unchanged, LastError = err, failures++
//
// A failed poll never clears the value. Whether a stale value may be shown is
// the caller's decision: the count widget keeps showing it, while the
// deployment footer checks Failed() first and renders its unknown state.
//
// # Concurrency Model
//
// Set/Fail take the write lock and Snapshot takes the read lock. The lock is
// never held during network I/O or rendering. Snapshot returns a copy, with
// the error wrapped so callers never share the stored instance.
package state
