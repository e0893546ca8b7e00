package sslstats

// ContextID is an opaque reference to a session context owned by the
// native library. ID 0 is reserved and always invalid. An ID is valid
// only while its owning Context is alive; the Context's lifetime is the
// sole authority for validity.
type ContextID uint32

// Library is the surface of the native TLS library this package reads
// statistics from. Implementations own the session contexts and their
// counters; this package only allocates, frees, and reads through them.
type Library interface {
	// NewSessionContext allocates a session context and returns its ID.
	NewSessionContext() (ContextID, error)

	// FreeSessionContext releases a context. Freeing the same ID twice
	// is an error.
	FreeSessionContext(id ContextID) error

	// ReadCounter returns the current value of one statistic. It has no
	// side effects on the context. Behavior is undefined once the
	// context has been freed; Context makes that state unreachable.
	ReadCounter(id ContextID, c Counter) (uint64, error)
}
