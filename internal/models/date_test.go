package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-03")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2024-06-03" {
		t.Fatalf("expected 2024-06-03, got %s", d)
	}

	if _, err := ParseDate("06/03/2024"); err == nil {
		t.Fatalf("expected error for non ISO date")
	}
	if _, err := ParseDate(""); err == nil {
		t.Fatalf("expected error for empty date")
	}
}

func TestDaysInclusive(t *testing.T) {
	start := NewDate(2024, time.June, 1)

	// single-day rental counts as one day
	if got := start.DaysInclusive(start); got != 1 {
		t.Fatalf("expected 1 day for start == end, got %d", got)
	}

	end := NewDate(2024, time.June, 3)
	if got := start.DaysInclusive(end); got != 3 {
		t.Fatalf("expected 3 days, got %d", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.June, 1)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"2024-06-01"` {
		t.Fatalf("unexpected JSON: %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip mismatch: %s != %s", back, d)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2024, time.June, 1, 13, 45, 0, 0, time.Local)); err != nil {
		t.Fatalf("Scan time.Time: %v", err)
	}
	if d.String() != "2024-06-01" {
		t.Fatalf("expected 2024-06-01, got %s", d)
	}

	if err := d.Scan("2024-06-02 00:00:00+00:00"); err != nil {
		t.Fatalf("Scan timestamp string: %v", err)
	}
	if d.String() != "2024-06-02" {
		t.Fatalf("expected 2024-06-02, got %s", d)
	}

	if err := d.Scan([]byte("2024-06-03")); err != nil {
		t.Fatalf("Scan bytes: %v", err)
	}
	if d.String() != "2024-06-03" {
		t.Fatalf("expected 2024-06-03, got %s", d)
	}
}

func TestOverlaps(t *testing.T) {
	day := func(d int) Date { return NewDate(2024, time.June, d) }

	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"disjoint before", 1, 3, 4, 5, false},
		{"disjoint after", 10, 12, 4, 5, false},
		{"identical", 1, 3, 1, 3, true},
		{"candidate starts inside", 1, 3, 2, 5, true},
		{"candidate ends inside", 3, 6, 1, 4, true},
		{"candidate encloses existing", 3, 4, 1, 6, true},
		{"existing encloses candidate", 1, 6, 3, 4, true},
		// boundary days are inclusive on both sides: no same-day handover
		{"shared boundary day at start", 3, 5, 1, 3, true},
		{"shared boundary day at end", 1, 3, 3, 5, true},
		{"single day inside", 1, 3, 2, 2, true},
		{"single day clear", 1, 3, 4, 4, false},
	}

	for _, tc := range cases {
		got := Overlaps(day(tc.aStart), day(tc.aEnd), day(tc.bStart), day(tc.bEnd))
		if got != tc.want {
			t.Errorf("%s: Overlaps([%d,%d],[%d,%d]) = %v, want %v",
				tc.name, tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
		}
	}
}

func TestParseBookingStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "completed", "cancelled"} {
		if _, ok := ParseBookingStatus(s); !ok {
			t.Errorf("expected %q to be a valid status", s)
		}
	}
	if _, ok := ParseBookingStatus("canceled"); ok {
		t.Errorf("expected single-l spelling to be rejected")
	}
	if _, ok := ParseBookingStatus(""); ok {
		t.Errorf("expected empty status to be rejected")
	}
}

func TestRolePredicates(t *testing.T) {
	if !RoleHost.CanListCars() || !RoleAdmin.CanListCars() {
		t.Fatalf("host and admin should be able to list cars")
	}
	if RoleUser.CanListCars() {
		t.Fatalf("plain users should not be able to list cars")
	}
	if _, ok := ParseRole("superuser"); ok {
		t.Fatalf("expected unknown role to be rejected")
	}
}
