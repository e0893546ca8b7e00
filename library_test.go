package sslstats

import (
	"sync"
)

// fakeLibrary is an instrumented in-file Library. It records how often
// the foreign layer is reached so tests can assert that released
// contexts never make it this far, and exposes an onRead hook (invoked
// outside the fake's own lock) for stalling or overlap-detecting reads.
type fakeLibrary struct {
	mu       sync.Mutex
	blocks   map[ContextID]*[NumCounters]uint64
	next     ContextID
	reads    int
	frees    int
	allocErr error
	freeErr  error
	readErr  error
	onRead   func(id ContextID, c Counter)
}

var _ Library = (*fakeLibrary)(nil)

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{
		blocks: make(map[ContextID]*[NumCounters]uint64),
		next:   1,
	}
}

func (f *fakeLibrary) NewSessionContext() (ContextID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.allocErr != nil {
		return 0, f.allocErr
	}
	id := f.next
	f.next++
	f.blocks[id] = new([NumCounters]uint64)
	return id, nil
}

func (f *fakeLibrary) FreeSessionContext(id ContextID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.frees++
	if f.freeErr != nil {
		return f.freeErr
	}
	delete(f.blocks, id)
	return nil
}

func (f *fakeLibrary) ReadCounter(id ContextID, c Counter) (uint64, error) {
	f.mu.Lock()
	f.reads++
	if f.readErr != nil {
		f.mu.Unlock()
		return 0, f.readErr
	}
	block, ok := f.blocks[id]
	if !ok {
		f.mu.Unlock()
		panic("read of freed session context")
	}
	v := block[c]
	hook := f.onRead
	f.mu.Unlock()

	if hook != nil {
		hook(id, c)
	}
	return v, nil
}

func (f *fakeLibrary) set(id ContextID, c Counter, v uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocks[id][c] = v
}

func (f *fakeLibrary) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func (f *fakeLibrary) freeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frees
}
