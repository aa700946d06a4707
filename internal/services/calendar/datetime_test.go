package calendar

import (
	"testing"
	"time"
)

func TestResolveConvertsLocalToUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	r := NewDateTimeResolver(loc)

	got, err := r.Resolve("Jan 6", "8:30am", 2025)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := time.Date(2025, 1, 6, 13, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveYearBoundary(t *testing.T) {
	// A late December local time crosses into January in UTC but keeps
	// the year it was resolved against.
	loc := time.FixedZone("UTC-5", -5*3600)
	r := NewDateTimeResolver(loc)

	got, err := r.Resolve("Dec 31", "11:30pm", 2024)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := time.Date(2025, 1, 1, 4, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolvePlaceholderStaysLocal(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	r := NewDateTimeResolver(loc)

	for _, label := range []string{"Day 1", "Day 2", "Tentative"} {
		got, err := r.Resolve("Mar 14", label, 2025)
		if err != nil {
			t.Fatalf("resolve %q: %v", label, err)
		}
		want := time.Date(2025, 3, 14, 0, 0, 0, 0, loc)
		if !got.Equal(want) {
			t.Fatalf("%q: got %v, want %v", label, got, want)
		}
		if got.Location() != loc {
			t.Fatalf("%q: expected local zone, got %v", label, got.Location())
		}
	}
}

func TestResolveRejectsBadInput(t *testing.T) {
	r := NewDateTimeResolver(time.UTC)

	if _, err := r.Resolve("Jan 6", "8:30am", 0); err == nil {
		t.Fatalf("expected error for zero year")
	}
	if _, err := r.Resolve("", "8:30am", 2025); err == nil {
		t.Fatalf("expected error for empty date")
	}
	if _, err := r.Resolve("Jan 6", "", 2025); err == nil {
		t.Fatalf("expected error for empty time")
	}
	if _, err := r.Resolve("Jan 6", "half past eight", 2025); err == nil {
		t.Fatalf("expected error for unparsable time")
	}
}
