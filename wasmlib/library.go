package wasmlib

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	sslstats "github.com/wippyai/ssl-stats"
)

var (
	ErrClosed         = errors.New("wasm library closed")
	ErrInvalidContext = errors.New("invalid session context")
	ErrInvalidCounter = errors.New("invalid counter")
	ErrOutOfMemory    = errors.New("wasm memory limit reached")
)

const (
	// blockSize is the byte size of one context's counter block.
	blockSize = sslstats.NumCounters * 8

	pageSize = 65536
)

// Library hosts the counter store inside a wazero instance.
// Implements sslstats.Library.
type Library struct {
	runtime wazero.Runtime
	mod     api.Module
	read    api.Function
	bump    api.Function
	mem     api.Memory

	mu       sync.Mutex
	next     sslstats.ContextID
	freeList []sslstats.ContextID
	live     map[sslstats.ContextID]struct{}
	closed   bool
}

var _ sslstats.Library = (*Library)(nil)

// New assembles the counter module and instantiates it under a fresh
// wazero runtime.
func New(ctx context.Context) (*Library, error) {
	r := wazero.NewRuntime(ctx)

	mod, err := r.Instantiate(ctx, counterModule())
	if err != nil {
		r.Close(ctx)
		return nil, fmt.Errorf("instantiate counter module: %w", err)
	}

	return &Library{
		runtime: r,
		mod:     mod,
		read:    mod.ExportedFunction("read"),
		bump:    mod.ExportedFunction("bump"),
		mem:     mod.ExportedMemory("memory"),
		next:    1,
		live:    make(map[sslstats.ContextID]struct{}),
	}, nil
}

// NewSessionContext allocates a counter block and returns its ID. Freed
// blocks are reused; otherwise linear memory grows as needed.
func (l *Library) NewSessionContext() (sslstats.ContextID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return 0, ErrClosed
	}

	if n := len(l.freeList); n > 0 {
		id := l.freeList[n-1]
		l.freeList = l.freeList[:n-1]
		l.live[id] = struct{}{}
		return id, nil
	}

	id := l.next
	if err := l.ensureCapacity(id); err != nil {
		return 0, err
	}
	l.next++
	l.live[id] = struct{}{}
	return id, nil
}

// ensureCapacity grows linear memory until id's block fits. Caller
// holds l.mu.
func (l *Library) ensureCapacity(id sslstats.ContextID) error {
	needed := (uint64(id) + 1) * blockSize
	size := uint64(l.mem.Size())
	if needed <= size {
		return nil
	}
	pages := uint32((needed - size + pageSize - 1) / pageSize)
	if _, ok := l.mem.Grow(pages); !ok {
		return ErrOutOfMemory
	}
	return nil
}

// FreeSessionContext releases a context. Its block is zeroed before the
// slot goes back on the free list, so reuse starts clean.
func (l *Library) FreeSessionContext(id sslstats.ContextID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	if _, ok := l.live[id]; !ok {
		return ErrInvalidContext
	}

	base := uint32(id) * blockSize
	for i := uint32(0); i < sslstats.NumCounters; i++ {
		if !l.mem.WriteUint64Le(base+i*8, 0) {
			return fmt.Errorf("zero counter block for context %d: out of range", id)
		}
	}

	delete(l.live, id)
	l.freeList = append(l.freeList, id)
	return nil
}

// ReadCounter calls the instance's read export for one counter slot.
func (l *Library) ReadCounter(id sslstats.ContextID, c sslstats.Counter) (uint64, error) {
	if !c.Valid() {
		return 0, ErrInvalidCounter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return 0, ErrClosed
	}
	if _, ok := l.live[id]; !ok {
		return 0, ErrInvalidContext
	}

	res, err := l.read.Call(context.Background(), uint64(id), uint64(c))
	if err != nil {
		return 0, fmt.Errorf("read counter %v: %w", c, err)
	}
	return res[0], nil
}

// Bump calls the instance's bump export, adding delta to one counter.
func (l *Library) Bump(id sslstats.ContextID, c sslstats.Counter, delta uint64) error {
	if !c.Valid() {
		return ErrInvalidCounter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	if _, ok := l.live[id]; !ok {
		return ErrInvalidContext
	}

	if _, err := l.bump.Call(context.Background(), uint64(id), uint64(c), delta); err != nil {
		return fmt.Errorf("bump counter %v: %w", c, err)
	}
	return nil
}

// Len returns the number of live session contexts.
func (l *Library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live)
}

// Close tears down the wazero runtime and everything in it.
func (l *Library) Close(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	l.live = nil
	l.freeList = nil
	return l.runtime.Close(ctx)
}
