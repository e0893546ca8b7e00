package native

import (
	"errors"
	"sync"

	sslstats "github.com/wippyai/ssl-stats"
)

var (
	ErrClosed         = errors.New("native library closed")
	ErrInvalidContext = errors.New("invalid session context")
	ErrInvalidCounter = errors.New("invalid counter")
)

// Event types for context lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventFreed
)

// Event represents a context lifecycle event.
type Event struct {
	ID   sslstats.ContextID
	Type EventType
}

// Observer receives notifications about context lifecycle events.
type Observer interface {
	OnContextEvent(Event)
}

// LocalLibrary is an in-memory native library with per-context counter
// blocks. Implements sslstats.Library.
type LocalLibrary struct {
	entries   []entry
	freeList  []sslstats.ContextID
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

type entry struct {
	counters [sslstats.NumCounters]uint64
	valid    bool
}

var _ sslstats.Library = (*LocalLibrary)(nil)

// NewLocalLibrary creates a new in-memory library.
func NewLocalLibrary() *LocalLibrary {
	return &LocalLibrary{
		entries:  make([]entry, 0, 16),
		freeList: make([]sslstats.ContextID, 0, 8),
	}
}

// NewSessionContext allocates a session context and returns its ID.
func (l *LocalLibrary) NewSessionContext() (sslstats.ContextID, error) {
	l.mu.Lock()

	if l.closed {
		l.mu.Unlock()
		return 0, ErrClosed
	}

	var id sslstats.ContextID
	if n := len(l.freeList); n > 0 {
		id = l.freeList[n-1]
		l.freeList = l.freeList[:n-1]
		l.entries[id-1] = entry{valid: true}
	} else {
		l.entries = append(l.entries, entry{valid: true})
		id = sslstats.ContextID(len(l.entries))
	}
	l.mu.Unlock()

	l.notify(Event{ID: id, Type: EventCreated})
	return id, nil
}

// FreeSessionContext releases a context and recycles its slot. The
// counter block is zeroed so a reused slot starts clean.
func (l *LocalLibrary) FreeSessionContext(id sslstats.ContextID) error {
	l.mu.Lock()

	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}

	e, err := l.lookup(id)
	if err != nil {
		l.mu.Unlock()
		return err
	}

	*e = entry{}
	l.freeList = append(l.freeList, id)
	l.mu.Unlock()

	l.notify(Event{ID: id, Type: EventFreed})
	return nil
}

// ReadCounter returns the current value of one statistic.
func (l *LocalLibrary) ReadCounter(id sslstats.ContextID, c sslstats.Counter) (uint64, error) {
	if !c.Valid() {
		return 0, ErrInvalidCounter
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return 0, ErrClosed
	}
	e, err := l.lookup(id)
	if err != nil {
		return 0, err
	}
	return e.counters[c], nil
}

// Bump adds delta to a counter. This is the mutation surface the TLS
// engine side would drive as handshakes and cache lookups happen.
func (l *LocalLibrary) Bump(id sslstats.ContextID, c sslstats.Counter, delta uint64) error {
	if !c.Valid() {
		return ErrInvalidCounter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	e, err := l.lookup(id)
	if err != nil {
		return err
	}
	e.counters[c] += delta
	return nil
}

// Set overwrites a counter value. Intended for tests and simulators;
// real counters only ever accumulate.
func (l *LocalLibrary) Set(id sslstats.ContextID, c sslstats.Counter, v uint64) error {
	if !c.Valid() {
		return ErrInvalidCounter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	e, err := l.lookup(id)
	if err != nil {
		return err
	}
	e.counters[c] = v
	return nil
}

// Len returns the number of live session contexts.
func (l *LocalLibrary) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for i := range l.entries {
		if l.entries[i].valid {
			count++
		}
	}
	return count
}

// Each iterates over all live session contexts.
func (l *LocalLibrary) Each(fn func(sslstats.ContextID) bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := range l.entries {
		if l.entries[i].valid {
			if !fn(sslstats.ContextID(i + 1)) {
				break
			}
		}
	}
}

// Close frees all contexts and stops accepting operations.
func (l *LocalLibrary) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	l.entries = nil
	l.freeList = nil
	return nil
}

// Subscribe adds an observer for lifecycle events.
func (l *LocalLibrary) Subscribe(o Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	l.observers = append(l.observers, o)
}

// Unsubscribe removes an observer.
func (l *LocalLibrary) Unsubscribe(o Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	for i, obs := range l.observers {
		if obs == o {
			l.observers = append(l.observers[:i], l.observers[i+1:]...)
			return
		}
	}
}

// lookup resolves an ID to its entry. Caller holds l.mu.
func (l *LocalLibrary) lookup(id sslstats.ContextID) (*entry, error) {
	if id == 0 || int(id) > len(l.entries) {
		return nil, ErrInvalidContext
	}
	e := &l.entries[id-1]
	if !e.valid {
		return nil, ErrInvalidContext
	}
	return e, nil
}

func (l *LocalLibrary) notify(e Event) {
	l.obsMu.RLock()
	defer l.obsMu.RUnlock()
	for _, o := range l.observers {
		o.OnContextEvent(e)
	}
}
