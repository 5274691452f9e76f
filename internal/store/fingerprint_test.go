package store

import (
	"testing"
	"time"
)

func TestFingerprintDeterministic(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := Fingerprint("Breaking News", 7, at)
	b := Fingerprint("Breaking News", 7, at)
	if a != b {
		t.Errorf("same inputs produced different fingerprints: %s vs %s", a, b)
	}
	if len(a) != 32 {
		t.Errorf("fingerprint length = %d, want 32 hex chars", len(a))
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	base := Fingerprint("Breaking News", 7, at)

	if got := Fingerprint("Other News", 7, at); got == base {
		t.Error("changing the title should change the fingerprint")
	}
	if got := Fingerprint("Breaking News", 8, at); got == base {
		t.Error("changing the source should change the fingerprint")
	}
	if got := Fingerprint("Breaking News", 7, at.Add(time.Second)); got == base {
		t.Error("changing the timestamp should change the fingerprint")
	}
}

func TestFingerprintTimezoneInvariant(t *testing.T) {
	utc := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	est := utc.In(time.FixedZone("EST", -5*3600))
	if Fingerprint("t", 1, utc) != Fingerprint("t", 1, est) {
		t.Error("the same instant in different zones should fingerprint identically")
	}
}
