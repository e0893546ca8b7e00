package sslstats

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/ssl-stats/errors"
)

// Context owns one native session context. It is the sole authority over
// the context's lifetime: the native side is freed exactly once, when
// the reference count drops to zero.
//
// The mutex is shared by every SessionStats view over this Context.
// Statistics reads and the final release serialize on it, so a read
// either completes against a live context or fails with a released
// error - it can never reach the native layer after the free. The lock
// is per-owner, not per-view: two views over the same Context mutually
// exclude, views over different Contexts never contend.
type Context struct {
	lib      Library
	mu       sync.Mutex
	id       ContextID
	refs     int
	released bool
}

// NewContext allocates a session context from lib. The returned Context
// holds one reference; the caller releases it with Release.
func NewContext(lib Library) (*Context, error) {
	id, err := lib.NewSessionContext()
	if err != nil {
		return nil, errors.Native("allocate session context", err)
	}
	Logger().Debug("session context allocated", zap.Uint32("context", uint32(id)))
	return &Context{lib: lib, id: id, refs: 1}, nil
}

// Retain adds a reference. It fails once the context has been released.
func (c *Context) Retain() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return errors.RetainReleased()
	}
	c.refs++
	return nil
}

// Release drops one reference and frees the native context when the
// count reaches zero. Further calls after that point fail. The context
// is marked released even if the native free reports an error; the
// native layer is never handed the ID again.
func (c *Context) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		Logger().Warn("release of already-released session context",
			zap.Uint32("context", uint32(c.id)))
		return errors.Overreleased()
	}

	c.refs--
	if c.refs > 0 {
		return nil
	}

	c.released = true
	if err := c.lib.FreeSessionContext(c.id); err != nil {
		return errors.Native("free session context", err)
	}
	Logger().Debug("session context freed", zap.Uint32("context", uint32(c.id)))
	return nil
}

// ID returns the native context ID. The ID is only meaningful while the
// context is alive; callers handing it to the native layer must hold a
// reference for as long as they use it.
func (c *Context) ID() ContextID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// Stats returns a statistics view over this context. Views are cheap;
// callers may create as many as they like.
func (c *Context) Stats() *SessionStats {
	return NewSessionStats(c)
}

// query runs one locked foreign read. The critical section covers both
// the ID fetch and the native call: a non-atomic fetch-then-use sequence
// is exactly the window a concurrent release would slip into.
func (c *Context) query(kind Counter) (uint64, error) {
	if !kind.Valid() {
		return 0, errors.InvalidCounter(uint8(kind))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return 0, errors.Released()
	}

	v, err := c.lib.ReadCounter(c.id, kind)
	if err != nil {
		return 0, errors.ForeignQuery(kind.String(), err)
	}
	return v, nil
}
