// Package native provides an in-process implementation of the native TLS
// library surface the module reads statistics from.
//
// LocalLibrary stands in for the real native side: it owns a table of
// session contexts addressed by opaque IDs and maintains the counter
// block for each. The TLS engine side of a real deployment mutates the
// counters; here that role is played by Bump and Set, which tests and
// the bundled traffic simulator drive.
//
// # Handle Table
//
// Context IDs are indices into an entries slice, offset by one so that
// ID 0 stays reserved and invalid. Freed slots go onto a free list and
// are reused with a zeroed counter block:
//
//	lib := native.NewLocalLibrary()
//
//	id, _ := lib.NewSessionContext()
//	lib.Bump(id, sslstats.CounterHits, 1)
//	v, _ := lib.ReadCounter(id, sslstats.CounterHits)
//
//	lib.FreeSessionContext(id)
//
// # Observers
//
// Subscribe to be notified when contexts are created or freed:
//
//	lib.Subscribe(obs) // obs.OnContextEvent(native.Event)
//
// All operations are safe for concurrent use. Note that the library's
// internal lock protects only its own table; it is not the per-owner
// lock that guards reads against teardown - that lives in
// sslstats.Context.
package native
