package sslstats

import "testing"

func TestCounter_Valid(t *testing.T) {
	if !CounterNumber.Valid() {
		t.Fatal("CounterNumber should be valid")
	}
	if !CounterTicketKeyResume.Valid() {
		t.Fatal("CounterTicketKeyResume should be valid")
	}
	if Counter(NumCounters).Valid() {
		t.Fatal("Counter(NumCounters) should be invalid")
	}
}

func TestCounter_String(t *testing.T) {
	cases := map[Counter]string{
		CounterNumber:          "number",
		CounterConnectGood:     "connect_good",
		CounterCallbackHits:    "cb_hits",
		CounterCacheFull:       "cache_full",
		CounterTicketKeyResume: "ticket_key_resume",
	}
	for c, want := range cases {
		if got := c.String(); got != want {
			t.Fatalf("Expected %q, got %q", want, got)
		}
	}

	if got := Counter(99).String(); got != "counter(99)" {
		t.Fatalf("Expected counter(99), got %q", got)
	}
}

func TestCounters_Order(t *testing.T) {
	all := Counters()
	if len(all) != NumCounters {
		t.Fatalf("Expected %d counters, got %d", NumCounters, len(all))
	}
	for i, c := range all {
		if c != Counter(i) {
			t.Fatalf("Expected counter %d at position %d, got %v", i, i, c)
		}
	}
}
