package rfc6265

import (
	"testing"
	"time"
)

func TestDeltaSeconds(t *testing.T) {
	if s, err := DeltaSeconds("60"); err != nil || s != 60 {
		t.Fatalf("Seconds %d, error %v", s, err)
	}
	if s, err := DeltaSeconds("-1"); err != nil || s != -1 {
		t.Fatalf("Seconds %d, error %v", s, err)
	}
	if s, err := DeltaSeconds("99999999999999999999"); err != nil || s != 2147483647 {
		t.Fatalf("Seconds %d, error %v", s, err)
	}
}

func TestDeltaSecondsInvalid(t *testing.T) {
	for _, value := range []string{"", "-", "+5", "5s", " 5", "abc"} {
		if _, err := DeltaSeconds(value); err != ErrDeltaSeconds {
			t.Fatalf("DeltaSeconds(%q) gave %v", value, err)
		}
	}
}

func TestMaxAgeExpiry(t *testing.T) {
	now := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	if exp := MaxAgeExpiry(now, 60); !exp.Equal(now.Add(time.Minute)) {
		t.Fatalf("Expiry is %s", exp)
	}
	if exp := MaxAgeExpiry(now, 0); exp.Unix() != 0 {
		t.Fatalf("Expiry is %s", exp)
	}
}
