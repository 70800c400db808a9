package calendar

import (
	"slices"
	"testing"

	"github.com/dcontreras/mueblesrent-backend/pkg/errors"
)

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		start1, end1, start2, end2 string
		want                       bool
	}{
		{"disjoint before", "2026-03-01", "2026-03-05", "2026-03-06", "2026-03-10", false},
		{"disjoint after", "2026-03-06", "2026-03-10", "2026-03-01", "2026-03-05", false},
		{"shared boundary day", "2026-03-01", "2026-03-05", "2026-03-05", "2026-03-10", true},
		{"contained", "2026-03-01", "2026-03-31", "2026-03-10", "2026-03-12", true},
		{"identical", "2026-03-01", "2026-03-05", "2026-03-01", "2026-03-05", true},
		{"partial", "2026-03-01", "2026-03-07", "2026-03-05", "2026-03-12", true},
		{"single day inside", "2026-03-05", "2026-03-05", "2026-03-01", "2026-03-10", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.start1, tc.end1, tc.start2, tc.end2); got != tc.want {
				t.Fatalf("Overlaps(%s,%s,%s,%s) = %v, want %v", tc.start1, tc.end1, tc.start2, tc.end2, got, tc.want)
			}
			// Overlap is symmetric.
			if got := Overlaps(tc.start2, tc.end2, tc.start1, tc.end1); got != tc.want {
				t.Fatalf("symmetric overlap mismatch for %s", tc.name)
			}
		})
	}
}

func TestInclusiveDays(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2026-03-10", "2026-03-10", 1},
		{"2026-03-10", "2026-03-12", 3},
		{"2026-02-27", "2026-03-02", 4},
		{"2026-01-01", "2026-01-31", 31},
		{"2024-02-28", "2024-03-01", 3}, // leap year
	}
	for _, tc := range cases {
		got, err := InclusiveDays(tc.start, tc.end)
		if err != nil {
			t.Fatalf("InclusiveDays(%s, %s): %v", tc.start, tc.end, err)
		}
		if got != tc.want {
			t.Fatalf("InclusiveDays(%s, %s) = %d, want %d", tc.start, tc.end, got, tc.want)
		}
	}

	if _, err := InclusiveDays("2026-03-12", "2026-03-10"); err == nil {
		t.Fatalf("expected error for inverted range")
	}
	if _, err := InclusiveDays("12-03-2026", "2026-03-13"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestValidateRange(t *testing.T) {
	today := "2026-03-01"

	if err := ValidateRange("2026-03-10", "2026-03-12", today); err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}
	if err := ValidateRange("2026-03-01", "2026-03-01", today); err != nil {
		t.Fatalf("single day starting today rejected: %v", err)
	}

	for name, tc := range map[string][2]string{
		"inverted":       {"2026-03-12", "2026-03-10"},
		"past start":     {"2026-02-20", "2026-03-10"},
		"bad start":      {"03/10/2026", "2026-03-12"},
		"bad end":        {"2026-03-10", "tomorrow"},
		"empty start":    {"", "2026-03-12"},
		"month overflow": {"2026-13-01", "2026-13-05"},
	} {
		err := ValidateRange(tc[0], tc[1], today)
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		typed := errors.As(err)
		if typed == nil || typed.Code() != errors.CodeInvalidRange {
			t.Fatalf("%s: expected INVALID_DATE_RANGE, got %v", name, err)
		}
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2026-02-27", 3)
	if err != nil {
		t.Fatalf("AddDays: %v", err)
	}
	if got != "2026-03-02" {
		t.Fatalf("AddDays = %s, want 2026-03-02", got)
	}

	got, err = AddDays("2026-03-02", -3)
	if err != nil {
		t.Fatalf("AddDays: %v", err)
	}
	if got != "2026-02-27" {
		t.Fatalf("AddDays = %s, want 2026-02-27", got)
	}
}

func TestDaysSequence(t *testing.T) {
	seq := Days("2026-02-27", "2026-03-02")

	want := []string{"2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"}
	if got := slices.Collect(seq); !slices.Equal(got, want) {
		t.Fatalf("Days = %v, want %v", got, want)
	}

	// The sequence restarts cleanly on a second iteration.
	if got := slices.Collect(seq); !slices.Equal(got, want) {
		t.Fatalf("second pass = %v, want %v", got, want)
	}

	// Early break stops the walk.
	var first string
	for d := range seq {
		first = d
		break
	}
	if first != "2026-02-27" {
		t.Fatalf("first day = %s", first)
	}

	if got := slices.Collect(Days("bad", "2026-03-02")); len(got) != 0 {
		t.Fatalf("invalid range yielded %v", got)
	}
}
