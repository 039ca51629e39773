package datetime

import (
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "Valid month", input: "2019-06", wantErr: false},
		{name: "Valid January", input: "2024-01", wantErr: false},
		{name: "Full date rejected", input: "2019-06-01", wantErr: true},
		{name: "Garbage", input: "not-a-date", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseMonth(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseMonth(%q) expected error, got %v", tt.input, parsed)
				}
				return
			}
			if err != nil {
				t.Errorf("ParseMonth(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}

func TestFormatMonth(t *testing.T) {
	parsed := MustParseTime(DateTimeLayout, "2019-06")
	if got := FormatMonth(parsed); got != "2019-06" {
		t.Errorf("FormatMonth() = %q, expected %q", got, "2019-06")
	}
}

func TestOffsetDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
	}{
		{name: "Forward one month", date: "2019-06", months: 1, expected: "2019-07"},
		{name: "Across year boundary", date: "2019-12", months: 1, expected: "2020-01"},
		{name: "Backward", date: "2019-01", months: -1, expected: "2018-12"},
		{name: "Ten years", date: "2019-06", months: 120, expected: "2029-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OffsetDate(tt.date, DateTimeLayout, tt.months)
			if err != nil {
				t.Fatalf("OffsetDate() unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("OffsetDate(%q, %d) = %q, expected %q", tt.date, tt.months, got, tt.expected)
			}
		})
	}

	if _, err := OffsetDate("bogus", DateTimeLayout, 1); err == nil {
		t.Errorf("OffsetDate with invalid date expected error")
	}
}

func TestMustParseTimePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("MustParseTime with invalid input should panic")
		}
	}()
	_ = MustParseTime(time.RFC3339, "bogus")
}
