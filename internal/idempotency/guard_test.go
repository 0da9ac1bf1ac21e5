package idempotency

import "testing"

func TestGuard_SeenAndRecord(t *testing.T) {
	guard := NewGuard(1000, 0.001)

	if guard.Seen("req-1") {
		t.Error("req-1 should be fresh before it is recorded")
	}

	guard.Record("req-1")

	if !guard.Seen("req-1") {
		t.Error("req-1 should be seen after recording")
	}
	if guard.Seen("req-2") {
		t.Error("a different key should still be fresh")
	}
}

func TestGuard_UnrecordedKeyStaysFresh(t *testing.T) {
	guard := NewGuard(1000, 0.001)

	// Checking a key any number of times must not record it; only an
	// explicit Record (after a successful order) does
	for i := 0; i < 3; i++ {
		if guard.Seen("req-1") {
			t.Fatal("Seen() must not record the key")
		}
	}
}

func TestGuard_EmptyKey(t *testing.T) {
	guard := NewGuard(1000, 0.001)

	// The header is optional; requests without a key are never rejected
	guard.Record("")
	if guard.Seen("") {
		t.Fatal("empty key must always be accepted")
	}
}
