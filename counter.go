package sslstats

import "fmt"

// Counter identifies one of the cumulative session-cache statistics
// maintained by the native TLS library. The set mirrors the counters an
// OpenSSL session context reports; their exact semantics belong to the
// native side.
type Counter uint8

const (
	// CounterNumber is the current number of sessions in the internal
	// session cache.
	CounterNumber Counter = iota
	// CounterConnect is the number of started handshakes in client mode.
	CounterConnect
	// CounterConnectGood is the number of successfully established
	// sessions in client mode.
	CounterConnectGood
	// CounterConnectRenegotiate is the number of started renegotiations
	// in client mode.
	CounterConnectRenegotiate
	// CounterAccept is the number of started handshakes in server mode.
	CounterAccept
	// CounterAcceptGood is the number of successfully established
	// sessions in server mode.
	CounterAcceptGood
	// CounterAcceptRenegotiate is the number of started renegotiations
	// in server mode.
	CounterAcceptRenegotiate
	// CounterHits is the number of successfully reused sessions.
	CounterHits
	// CounterCallbackHits is the number of sessions retrieved from the
	// external session cache in server mode.
	CounterCallbackHits
	// CounterMisses is the number of sessions proposed by clients that
	// were not found in the internal session cache in server mode.
	CounterMisses
	// CounterTimeouts is the number of proposed sessions found in the
	// cache but invalid due to timeout.
	CounterTimeouts
	// CounterCacheFull is the number of sessions removed because the
	// maximum cache size was exceeded.
	CounterCacheFull
	// CounterTicketKeyFail is the number of tickets presented that
	// matched no key in the list.
	CounterTicketKeyFail
	// CounterTicketKeyNew is the number of times no ticket was presented
	// and a new one was issued.
	CounterTicketKeyNew
	// CounterTicketKeyRenew is the number of tickets derived from an
	// older key that were upgraded to the primary key.
	CounterTicketKeyRenew
	// CounterTicketKeyResume is the number of tickets presented that
	// were derived from the primary key.
	CounterTicketKeyResume

	// NumCounters is the size of the counter block every session context
	// carries.
	NumCounters = 16
)

var counterNames = [NumCounters]string{
	"number",
	"connect",
	"connect_good",
	"connect_renegotiate",
	"accept",
	"accept_good",
	"accept_renegotiate",
	"hits",
	"cb_hits",
	"misses",
	"timeouts",
	"cache_full",
	"ticket_key_fail",
	"ticket_key_new",
	"ticket_key_renew",
	"ticket_key_resume",
}

// Valid reports whether c names a known counter.
func (c Counter) Valid() bool {
	return c < NumCounters
}

func (c Counter) String() string {
	if !c.Valid() {
		return fmt.Sprintf("counter(%d)", uint8(c))
	}
	return counterNames[c]
}

// Counters returns every counter kind in declaration order.
func Counters() []Counter {
	out := make([]Counter, NumCounters)
	for i := range out {
		out[i] = Counter(i)
	}
	return out
}
