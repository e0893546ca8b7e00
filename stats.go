package sslstats

// SessionStats exposes the session-cache statistics of one native
// session context. It is a read-only view: it never mutates the native
// side and holds no state of its own beyond the borrowed Context
// reference that keeps the native pointer reachable for the duration of
// each call.
//
// All methods are safe for concurrent use. Reads against the same
// Context serialize on the owner's mutex; once the owner has released
// its native context, every read fails with a released error instead of
// touching freed native state.
type SessionStats struct {
	ctx *Context
}

// NewSessionStats returns a statistics view borrowing ctx. Construction
// does not touch the native layer and cannot fail.
func NewSessionStats(ctx *Context) *SessionStats {
	return &SessionStats{ctx: ctx}
}

// Query returns the current value of one statistic.
func (s *SessionStats) Query(kind Counter) (uint64, error) {
	return s.ctx.query(kind)
}

// Number returns the current number of sessions in the internal session
// cache.
func (s *SessionStats) Number() (uint64, error) {
	return s.ctx.query(CounterNumber)
}

// Connect returns the number of started handshakes in client mode.
func (s *SessionStats) Connect() (uint64, error) {
	return s.ctx.query(CounterConnect)
}

// ConnectGood returns the number of successfully established sessions in
// client mode.
func (s *SessionStats) ConnectGood() (uint64, error) {
	return s.ctx.query(CounterConnectGood)
}

// ConnectRenegotiate returns the number of started renegotiations in
// client mode.
func (s *SessionStats) ConnectRenegotiate() (uint64, error) {
	return s.ctx.query(CounterConnectRenegotiate)
}

// Accept returns the number of started handshakes in server mode.
func (s *SessionStats) Accept() (uint64, error) {
	return s.ctx.query(CounterAccept)
}

// AcceptGood returns the number of successfully established sessions in
// server mode.
func (s *SessionStats) AcceptGood() (uint64, error) {
	return s.ctx.query(CounterAcceptGood)
}

// AcceptRenegotiate returns the number of started renegotiations in
// server mode.
func (s *SessionStats) AcceptRenegotiate() (uint64, error) {
	return s.ctx.query(CounterAcceptRenegotiate)
}

// Hits returns the number of successfully reused sessions. In client
// mode a reused set session counts as a hit; in server mode a session
// retrieved from the internal or external cache counts as a hit.
func (s *SessionStats) Hits() (uint64, error) {
	return s.ctx.query(CounterHits)
}

// CallbackHits returns the number of sessions retrieved from the
// external session cache in server mode.
func (s *SessionStats) CallbackHits() (uint64, error) {
	return s.ctx.query(CounterCallbackHits)
}

// Misses returns the number of sessions proposed by clients that were
// not found in the internal session cache in server mode.
func (s *SessionStats) Misses() (uint64, error) {
	return s.ctx.query(CounterMisses)
}

// Timeouts returns the number of proposed sessions found in the cache
// but invalid due to timeout. These are not included in the Hits count.
func (s *SessionStats) Timeouts() (uint64, error) {
	return s.ctx.query(CounterTimeouts)
}

// CacheFull returns the number of sessions removed because the maximum
// session cache size was exceeded.
func (s *SessionStats) CacheFull() (uint64, error) {
	return s.ctx.query(CounterCacheFull)
}

// TicketKeyFail returns the number of tickets presented that matched no
// key in the list.
func (s *SessionStats) TicketKeyFail() (uint64, error) {
	return s.ctx.query(CounterTicketKeyFail)
}

// TicketKeyNew returns the number of times no ticket was presented and a
// new one was issued.
func (s *SessionStats) TicketKeyNew() (uint64, error) {
	return s.ctx.query(CounterTicketKeyNew)
}

// TicketKeyRenew returns the number of tickets derived from an older key
// that were upgraded to the primary key.
func (s *SessionStats) TicketKeyRenew() (uint64, error) {
	return s.ctx.query(CounterTicketKeyRenew)
}

// TicketKeyResume returns the number of tickets presented that were
// derived from the primary key.
func (s *SessionStats) TicketKeyResume() (uint64, error) {
	return s.ctx.query(CounterTicketKeyResume)
}

// Snapshot holds one sampled value per counter kind, indexed by Counter.
type Snapshot [NumCounters]uint64

// Get returns the sampled value for kind, or 0 for an unknown kind.
func (s Snapshot) Get(kind Counter) uint64 {
	if !kind.Valid() {
		return 0
	}
	return s[kind]
}

// Snapshot samples every counter. Each counter is read under its own
// critical section; the result is a sampled statistic, not a consistent
// cross-counter view.
func (s *SessionStats) Snapshot() (Snapshot, error) {
	var snap Snapshot
	for _, kind := range Counters() {
		v, err := s.ctx.query(kind)
		if err != nil {
			return Snapshot{}, err
		}
		snap[kind] = v
	}
	return snap, nil
}
