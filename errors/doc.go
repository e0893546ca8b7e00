// Package errors defines the structured error type used throughout the
// module.
//
// Every error carries a Phase (where in processing it occurred) and a
// Kind (what went wrong). Matching is structural: errors.Is compares
// Phase and Kind, so callers can test for a condition without holding
// the exact value that was returned:
//
//	if stderrors.Is(err, errors.Released()) {
//		// owner tore the context down first
//	}
//
// The query path produces exactly two caller-visible kinds: released
// (the owner freed the native context before the read) and foreign (the
// native read itself failed). Foreign failures are never retried -
// counter reads are cheap and idempotent, so a failure is structural,
// not transient.
package errors
