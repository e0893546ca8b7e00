package native

import (
	"sync"
	"testing"

	sslstats "github.com/wippyai/ssl-stats"
)

func TestLocalLibrary_Basic(t *testing.T) {
	lib := NewLocalLibrary()

	id, err := lib.NewSessionContext()
	if err != nil {
		t.Fatalf("NewSessionContext failed: %v", err)
	}
	if id == 0 {
		t.Fatal("Expected non-zero context ID")
	}

	v, err := lib.ReadCounter(id, sslstats.CounterHits)
	if err != nil {
		t.Fatalf("ReadCounter failed: %v", err)
	}
	if v != 0 {
		t.Fatalf("Expected fresh counter to be 0, got %d", v)
	}

	if err := lib.Bump(id, sslstats.CounterHits, 3); err != nil {
		t.Fatalf("Bump failed: %v", err)
	}
	if err := lib.Bump(id, sslstats.CounterHits, 2); err != nil {
		t.Fatalf("Bump failed: %v", err)
	}

	v, err = lib.ReadCounter(id, sslstats.CounterHits)
	if err != nil {
		t.Fatalf("ReadCounter failed: %v", err)
	}
	if v != 5 {
		t.Fatalf("Expected 5, got %d", v)
	}

	// Other counters stay untouched.
	v, err = lib.ReadCounter(id, sslstats.CounterMisses)
	if err != nil {
		t.Fatalf("ReadCounter failed: %v", err)
	}
	if v != 0 {
		t.Fatalf("Expected 0, got %d", v)
	}
}

func TestLocalLibrary_Set(t *testing.T) {
	lib := NewLocalLibrary()
	id, _ := lib.NewSessionContext()

	if err := lib.Set(id, sslstats.CounterNumber, 42); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, _ := lib.ReadCounter(id, sslstats.CounterNumber)
	if v != 42 {
		t.Fatalf("Expected 42, got %d", v)
	}
}

func TestLocalLibrary_InvalidContext(t *testing.T) {
	lib := NewLocalLibrary()

	if _, err := lib.ReadCounter(0, sslstats.CounterHits); err != ErrInvalidContext {
		t.Fatalf("Expected ErrInvalidContext for ID 0, got %v", err)
	}
	if _, err := lib.ReadCounter(99, sslstats.CounterHits); err != ErrInvalidContext {
		t.Fatalf("Expected ErrInvalidContext for unknown ID, got %v", err)
	}

	id, _ := lib.NewSessionContext()
	if err := lib.FreeSessionContext(id); err != nil {
		t.Fatalf("FreeSessionContext failed: %v", err)
	}
	if _, err := lib.ReadCounter(id, sslstats.CounterHits); err != ErrInvalidContext {
		t.Fatalf("Expected ErrInvalidContext after free, got %v", err)
	}
	if err := lib.FreeSessionContext(id); err != ErrInvalidContext {
		t.Fatalf("Expected ErrInvalidContext on double free, got %v", err)
	}
}

func TestLocalLibrary_InvalidCounter(t *testing.T) {
	lib := NewLocalLibrary()
	id, _ := lib.NewSessionContext()

	if _, err := lib.ReadCounter(id, sslstats.Counter(200)); err != ErrInvalidCounter {
		t.Fatalf("Expected ErrInvalidCounter, got %v", err)
	}
	if err := lib.Bump(id, sslstats.Counter(200), 1); err != ErrInvalidCounter {
		t.Fatalf("Expected ErrInvalidCounter, got %v", err)
	}
}

func TestLocalLibrary_SlotReuse(t *testing.T) {
	lib := NewLocalLibrary()

	a, _ := lib.NewSessionContext()
	lib.Bump(a, sslstats.CounterHits, 7)
	lib.FreeSessionContext(a)

	b, err := lib.NewSessionContext()
	if err != nil {
		t.Fatalf("NewSessionContext failed: %v", err)
	}
	if b != a {
		t.Fatalf("Expected freed slot %d to be reused, got %d", a, b)
	}

	// Reused slot must start with a zeroed counter block.
	v, _ := lib.ReadCounter(b, sslstats.CounterHits)
	if v != 0 {
		t.Fatalf("Expected reused slot counter to be 0, got %d", v)
	}
}

func TestLocalLibrary_LenEach(t *testing.T) {
	lib := NewLocalLibrary()

	a, _ := lib.NewSessionContext()
	b, _ := lib.NewSessionContext()
	c, _ := lib.NewSessionContext()
	lib.FreeSessionContext(b)

	if lib.Len() != 2 {
		t.Fatalf("Expected Len() == 2, got %d", lib.Len())
	}

	var seen []sslstats.ContextID
	lib.Each(func(id sslstats.ContextID) bool {
		seen = append(seen, id)
		return true
	})
	if len(seen) != 2 || seen[0] != a || seen[1] != c {
		t.Fatalf("Each visited %v, expected [%d %d]", seen, a, c)
	}
}

func TestLocalLibrary_Close(t *testing.T) {
	lib := NewLocalLibrary()
	id, _ := lib.NewSessionContext()

	if err := lib.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := lib.Close(); err != nil {
		t.Fatalf("Second Close should be a no-op, got %v", err)
	}

	if _, err := lib.NewSessionContext(); err != ErrClosed {
		t.Fatalf("Expected ErrClosed, got %v", err)
	}
	if _, err := lib.ReadCounter(id, sslstats.CounterHits); err != ErrClosed {
		t.Fatalf("Expected ErrClosed, got %v", err)
	}
	if err := lib.Bump(id, sslstats.CounterHits, 1); err != ErrClosed {
		t.Fatalf("Expected ErrClosed, got %v", err)
	}
	if err := lib.FreeSessionContext(id); err != ErrClosed {
		t.Fatalf("Expected ErrClosed, got %v", err)
	}
}

type testObserver struct {
	mu     sync.Mutex
	events []Event
}

func (o *testObserver) OnContextEvent(e Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *testObserver) snapshot() []Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Event(nil), o.events...)
}

func TestLocalLibrary_Observer(t *testing.T) {
	lib := NewLocalLibrary()
	obs := &testObserver{}
	lib.Subscribe(obs)

	id, _ := lib.NewSessionContext()
	lib.FreeSessionContext(id)

	events := obs.snapshot()
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Type != EventCreated || events[0].ID != id {
		t.Fatalf("Expected created event for %d, got %+v", id, events[0])
	}
	if events[1].Type != EventFreed || events[1].ID != id {
		t.Fatalf("Expected freed event for %d, got %+v", id, events[1])
	}

	lib.Unsubscribe(obs)
	lib.NewSessionContext()
	if len(obs.snapshot()) != 2 {
		t.Fatal("Should not receive events after Unsubscribe")
	}
}

func TestLocalLibrary_ConcurrentBump(t *testing.T) {
	lib := NewLocalLibrary()
	id, _ := lib.NewSessionContext()

	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if err := lib.Bump(id, sslstats.CounterAccept, 1); err != nil {
					t.Errorf("Bump failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	v, err := lib.ReadCounter(id, sslstats.CounterAccept)
	if err != nil {
		t.Fatalf("ReadCounter failed: %v", err)
	}
	if v != workers*perWorker {
		t.Fatalf("Expected %d, got %d", workers*perWorker, v)
	}
}
