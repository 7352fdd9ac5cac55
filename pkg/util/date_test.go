package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeSpreadsheetLayouts(t *testing.T) {
	cases := map[string]string{
		"2024-01-09 09:15:00":        "2024-01-09",
		"2024-01-09 09:15:00.123456": "2024-01-09",
		"2024-01-09T23:59:59":        "2024-01-09",
		"2024-01-09 09:15":           "2024-01-09",
		"2024-01-09":                 "2024-01-09",
		"01/09/2024 09:15:00":        "2024-01-09",
		"1/9/2024 9:15:00":           "2024-01-09",
		"12/31/2024 15:30:00":        "2024-12-31",
		"1/9/2024 9:15":              "2024-01-09",
		"1/9/2024":                   "2024-01-09",
		"2024-01-09T23:30:00+05:30":  "2024-01-09",
	}
	for in, want := range cases {
		got, ok := ParseTime(in)
		if !ok {
			t.Fatalf("%q: expected ok", in)
		}
		if DateOf(got) != want {
			t.Fatalf("%q: date %s, want %s", in, DateOf(got), want)
		}
	}
}

func TestParseTimeRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "not a time", "2024-13-45", "-5"} {
		if _, ok := ParseTime(in); ok {
			t.Fatalf("%q: expected failure", in)
		}
	}
}

func TestParseFloat(t *testing.T) {
	if v, ok := ParseFloat(" 1,234.5 "); !ok || v != 1234.5 {
		t.Fatalf("unexpected %v %v", v, ok)
	}
	if v, ok := ParseFloat("-0.0123"); !ok || v != -0.0123 {
		t.Fatalf("unexpected %v %v", v, ok)
	}
	for _, in := range []string{"", "n/a", "NaN", "Inf"} {
		if _, ok := ParseFloat(in); ok {
			t.Fatalf("%q: expected failure", in)
		}
	}
}
