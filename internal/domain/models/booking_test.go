package models

import "testing"

func TestParseBookingStatus(t *testing.T) {
	cases := []struct {
		raw   string
		want  BookingStatus
		valid bool
	}{
		{"s", StatusScheduled, true},
		{"S", StatusScheduled, true},
		{" c ", StatusCheckedIn, true},
		{"f", StatusFree, true},
		{"e", StatusExecuted, true},
		{"x", "X", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseBookingStatus(tc.raw)
		if ok != tc.valid {
			t.Fatalf("ParseBookingStatus(%q) valid=%v, want %v", tc.raw, ok, tc.valid)
		}
		if tc.valid && got != tc.want {
			t.Fatalf("ParseBookingStatus(%q)=%q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestResolveStatusRetainsCurrentOnBlank(t *testing.T) {
	if got := ResolveStatus(StatusCheckedIn, ""); got != StatusCheckedIn {
		t.Fatalf("blank input changed status to %q", got)
	}
	if got := ResolveStatus(StatusCheckedIn, "   "); got != StatusCheckedIn {
		t.Fatalf("whitespace input changed status to %q", got)
	}
}

func TestResolveStatusNormalizesToUppercase(t *testing.T) {
	if got := ResolveStatus(StatusScheduled, "f"); got != StatusFree {
		t.Fatalf("got %q, want %q", got, StatusFree)
	}
	if got := ResolveStatus(StatusFree, "s"); got != StatusScheduled {
		t.Fatalf("got %q, want %q", got, StatusScheduled)
	}
}

func TestStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to BookingStatus }{
		{StatusScheduled, StatusCheckedIn},
		{StatusScheduled, StatusFree},
		{StatusCheckedIn, StatusFree},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransition(tc.to) {
			t.Fatalf("%s -> %s should be legal", tc.from, tc.to)
		}
	}

	forbidden := []struct{ from, to BookingStatus }{
		{StatusFree, StatusCheckedIn},
		{StatusFree, StatusScheduled},
		{StatusCheckedIn, StatusScheduled},
		{StatusCheckedIn, StatusCheckedIn},
		{StatusExecuted, StatusCheckedIn},
	}
	for _, tc := range forbidden {
		if tc.from.CanTransition(tc.to) {
			t.Fatalf("%s -> %s should be rejected", tc.from, tc.to)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusCheckedIn.Label(); got != "CHECKED-IN" {
		t.Fatalf("got %q", got)
	}
	if got := BookingStatus("X").Label(); got != "X" {
		t.Fatalf("unknown status label got %q", got)
	}
}
