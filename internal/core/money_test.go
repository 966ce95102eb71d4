package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
	}{
		{"0", 0},
		{"1", 100},
		{"1.0", 100},
		{"1.23", 123},
		{"0.01", 1},
		{"1000.50", 100050},
		{"1.005", 101}, // half away from zero
		{"1.004", 100},
		{"1.006", 101},
		{"-1.005", -101}, // half away from zero, negative side
		{"-250.50", -25050},
		{"2.675", 268},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got := ToCents(d); got != tc.out {
			t.Errorf("ToCents(%s) = %d, want %d", tc.in, got, tc.out)
		}
	}
}

func TestFromCents(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{0, "0"},
		{1, "0.01"},
		{100, "1"},
		{123, "1.23"},
		{100050, "1000.5"},
		{-25050, "-250.5"},
	}
	for _, tc := range cases {
		want, err := decimal.NewFromString(tc.out)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.out, err)
		}
		if got := FromCents(tc.in); !got.Equal(want) {
			t.Errorf("FromCents(%d) = %s, want %s", tc.in, got, want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	// Any value with at most two fractional digits must survive unchanged.
	values := []string{"0", "0.01", "1.23", "1000.50", "-250.50", "99999999.99"}
	for _, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			t.Fatalf("parse %q: %v", v, err)
		}
		if got := FromCents(ToCents(d)); !got.Equal(d) {
			t.Errorf("round trip of %s: got %s", v, got)
		}
	}
}

func TestCentsPtr(t *testing.T) {
	if ToCentsPtr(nil) != nil {
		t.Error("ToCentsPtr(nil) should be nil")
	}
	if FromCentsPtr(nil) != nil {
		t.Error("FromCentsPtr(nil) should be nil")
	}

	d := decimal.RequireFromString("1000.50")
	cents := ToCentsPtr(&d)
	if cents == nil || *cents != 100050 {
		t.Fatalf("ToCentsPtr(1000.50) = %v, want 100050", cents)
	}
	back := FromCentsPtr(cents)
	if back == nil || !back.Equal(d) {
		t.Fatalf("FromCentsPtr(100050) = %v, want 1000.50", back)
	}
}
