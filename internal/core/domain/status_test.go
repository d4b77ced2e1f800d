package domain

import (
	"errors"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPeriodFileName(t *testing.T) {
	tests := []struct {
		name     string
		period   Period
		expected string
	}{
		{
			name:     "daily uses ISO date",
			period:   Period{Type: StatusDaily, Date: date("2024-05-01")},
			expected: "2024-05-01",
		},
		{
			name:     "weekly joins start and end",
			period:   Period{Type: StatusWeekly, Start: date("2024-01-01"), End: date("2024-01-07")},
			expected: "Weekly_2024-01-01_2024-01-07",
		},
		{
			name:     "weekly single day range",
			period:   Period{Type: StatusWeekly, Start: date("2024-03-15"), End: date("2024-03-15")},
			expected: "Weekly_2024-03-15_2024-03-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.period.FileName(); got != tt.expected {
				t.Errorf("Expected file name %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNewWeeklyPeriod(t *testing.T) {
	if _, err := NewWeeklyPeriod(date("2024-01-07"), date("2024-01-01")); err == nil {
		t.Error("Expected error when start is after end")
	}

	p, err := NewWeeklyPeriod(date("2024-01-01"), date("2024-01-07"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.Type != StatusWeekly {
		t.Errorf("Expected type %q, got %q", StatusWeekly, p.Type)
	}
}

func TestNewDailyPeriod(t *testing.T) {
	if _, err := NewDailyPeriod(time.Time{}); err == nil {
		t.Error("Expected error for zero date")
	}

	p, err := NewDailyPeriod(date("2024-06-10"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.FileName() != "2024-06-10" {
		t.Errorf("Expected file name 2024-06-10, got %q", p.FileName())
	}
}

func TestEntryValidate(t *testing.T) {
	period := Period{Type: StatusDaily, Date: date("2024-05-01")}

	tests := []struct {
		name      string
		entry     Entry
		wantErr   bool
		wantEmpty bool
	}{
		{
			name:  "valid entry",
			entry: Entry{Profile: "acme", Period: period, Content: "did things"},
		},
		{
			name:      "empty content",
			entry:     Entry{Profile: "acme", Period: period, Content: ""},
			wantErr:   true,
			wantEmpty: true,
		},
		{
			name:      "whitespace only content",
			entry:     Entry{Profile: "acme", Period: period, Content: "   \n\t  "},
			wantErr:   true,
			wantEmpty: true,
		},
		{
			name:    "missing profile",
			entry:   Entry{Profile: "", Period: period, Content: "did things"},
			wantErr: true,
		},
		{
			name:    "invalid period",
			entry:   Entry{Profile: "acme", Period: Period{Type: "Monthly"}, Content: "did things"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("Expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.wantEmpty && !errors.Is(err, ErrEmptyContent) {
				t.Errorf("Expected ErrEmptyContent, got %v", err)
			}
		})
	}
}
