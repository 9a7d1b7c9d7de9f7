package laps

import (
	"math"
	"testing"
)

func TestParseLapTime(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1:23.456", 83.456, true},
		{"0:59.9", 59.9, true},
		{"2:00", 120, true},
		{"10:05.5", 605.5, true},
		{" 1:23.456 ", 83.456, true},
		{"1 : 23.456", 83.456, true},
		{"1:23:45", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"83.456", 0, false},
		{"1:", 0, false},
		{":23.4", 0, false},
		{"1.5:23.4", 0, false},
		{"1:NaN", 0, false},
		{"1:Inf", 0, false},
		{"-", 0, false},
		{"1:0x1p4", 0, false},
		{"1:0X1P4", 0, false},
		{"1:1_0.5", 0, false},
		{"1:2e1", 80, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLapTime(tt.in).Get()
			if ok != tt.wantOK {
				t.Fatalf("ParseLapTime(%q) present = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseLapTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatLapTime(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{83.456, "1:23.456"},
		{59.9, "0:59.900"},
		{59.9996, "1:00.000"},
		{605.5, "10:05.500"},
		{0, "0:00.000"},
		{-1.5, "-0:01.500"},
	}

	for _, tt := range tests {
		if got := FormatLapTime(tt.in); got != tt.want {
			t.Errorf("FormatLapTime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatLapTime_RoundTrip(t *testing.T) {
	for _, s := range []string{"1:23.456", "0:05.001", "12:34.567"} {
		v, ok := ParseLapTime(s).Get()
		if !ok {
			t.Fatalf("ParseLapTime(%q) absent", s)
		}
		if got := FormatLapTime(v); got != s {
			t.Errorf("FormatLapTime(ParseLapTime(%q)) = %q", s, got)
		}
	}
}

func TestOptional(t *testing.T) {
	some := Some(3)
	if v, ok := some.Get(); !ok || v != 3 {
		t.Errorf("Some(3).Get() = %v, %v", v, ok)
	}
	if !some.Present() {
		t.Error("Some(3).Present() = false")
	}
	if got := some.Or(7); got != 3 {
		t.Errorf("Some(3).Or(7) = %d, want 3", got)
	}

	none := None[int]()
	if none.Present() {
		t.Error("None().Present() = true")
	}
	if got := none.Or(7); got != 7 {
		t.Errorf("None().Or(7) = %d, want 7", got)
	}

	var zero Optional[string]
	if zero.Present() {
		t.Error("zero Optional should be absent")
	}
}
