package service

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		raw     string
		want    time.Time
		wantErr bool
	}{
		{raw: "2026-03-10", want: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)},
		{raw: " 2026-03-10T23:30:00+07:00 ", want: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)},
		{raw: "2026-03-10 08:00", want: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)},
		{raw: "", wantErr: true},
		{raw: "10/03/2026", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.raw, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("parse %q want %v got %v", tc.raw, tc.want, got)
		}
	}
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("  ")
	if err != nil || got != nil {
		t.Fatalf("blank date should be nil, got %v err=%v", got, err)
	}
	got, err = ParseOptionalDate("2026-01-02")
	if err != nil || got == nil || got.Day() != 2 {
		t.Fatalf("unexpected optional date %v err=%v", got, err)
	}
}

func TestMonthsAgo(t *testing.T) {
	tests := []struct {
		now  time.Time
		n    int
		want string
	}{
		{time.Date(2026, 3, 31, 9, 0, 0, 0, time.UTC), 1, "2026-02-28"},
		{time.Date(2028, 3, 31, 9, 0, 0, 0, time.UTC), 1, "2028-02-29"},
		{time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC), 1, "2026-02-15"},
		{time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), 1, "2025-12-31"},
		{time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC), 3, "2026-02-28"},
	}
	for _, tt := range tests {
		got := monthsAgo(tt.now, tt.n)
		if got.Format(dateLayout) != tt.want || got.Hour() != 0 {
			t.Fatalf("monthsAgo(%s, %d) = %s, want %s", tt.now.Format(dateLayout), tt.n, got, tt.want)
		}
	}
}
