// Package sslstats exposes the session-cache statistics of a native TLS
// library to Go callers.
//
// The native library owns the session cache and its counters; this
// package never implements either. It provides the one piece of design
// the problem actually needs: reading counters through an opaque context
// handle without ever racing the release of the context that keeps the
// handle valid.
//
// # Ownership
//
// A Context owns one native session context. It is reference-counted;
// the native side is freed exactly once, when the last reference is
// released. Every statistics read serializes against that release on a
// mutex scoped to the Context, so a read can never observe a freed
// context - it either completes before the free or fails with a typed
// released error.
//
// # Usage
//
//	lib := native.NewLocalLibrary()
//	ctx, err := sslstats.NewContext(lib)
//	if err != nil {
//		return err
//	}
//	defer ctx.Release()
//
//	stats := ctx.Stats()
//	hits, err := stats.Hits()
//
// SessionStats values are cheap views; any number of them may share one
// Context from any number of goroutines. Counter values are sampled
// statistics: each read is individually serialized, but no consistency
// across counters is promised.
//
// # Backends
//
// The native library is reached through the Library interface. Two
// implementations ship with the module: native.LocalLibrary, an
// in-process counter store, and wasmlib.Library, which hosts the counter
// store inside a wazero instance so the counters genuinely live outside
// the Go heap.
package sslstats
