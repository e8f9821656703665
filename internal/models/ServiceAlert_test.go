package models

import (
	"testing"
	"time"
)

func TestServiceAlertActiveAt(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	alert := ServiceAlert{StartsAt: start, EndsAt: end}

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before window", start.Add(-time.Second), false},
		{"at start", start, true},
		{"inside window", start.Add(time.Hour), true},
		{"at end (half-open)", end, false},
		{"after window", end.Add(time.Second), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := alert.ActiveAt(tc.at); got != tc.want {
				t.Errorf("ActiveAt(%v) = %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestValidAlertType(t *testing.T) {
	for _, v := range []string{AlertTypeDelay, AlertTypeDetour, AlertTypeClosure, AlertTypeInfo} {
		if !ValidAlertType(v) {
			t.Errorf("%q should be a valid alert type", v)
		}
	}
	if ValidAlertType("Outage") {
		t.Error("unknown kind accepted")
	}
}
