package domain

import (
	"fmt"
	"strings"
	"time"
)

// StatusType identifies the reporting cadence of a status entry.
type StatusType string

const (
	StatusDaily  StatusType = "Daily"
	StatusWeekly StatusType = "Weekly"
)

// DateFormat is the ISO layout used to derive report file names.
const DateFormat = "2006-01-02"

// Period identifies which report a status entry belongs to: a single
// date for daily entries, a start/end pair for weekly ones.
type Period struct {
	Type  StatusType
	Date  time.Time
	Start time.Time
	End   time.Time
}

// NewDailyPeriod creates a daily period for the given date.
func NewDailyPeriod(date time.Time) (Period, error) {
	if date.IsZero() {
		return Period{}, fmt.Errorf("daily period requires a date")
	}
	return Period{Type: StatusDaily, Date: date}, nil
}

// NewWeeklyPeriod creates a weekly period. Start must not be after end.
func NewWeeklyPeriod(start, end time.Time) (Period, error) {
	if start.IsZero() || end.IsZero() {
		return Period{}, fmt.Errorf("weekly period requires a start and end date")
	}
	if start.After(end) {
		return Period{}, fmt.Errorf("weekly period start %s is after end %s",
			start.Format(DateFormat), end.Format(DateFormat))
	}
	return Period{Type: StatusWeekly, Start: start, End: end}, nil
}

// FileName derives the report document name for the period.
// Daily periods map to the ISO date, weekly ones to
// Weekly_{start}_{end}.
func (p Period) FileName() string {
	if p.Type == StatusWeekly {
		return fmt.Sprintf("Weekly_%s_%s",
			p.Start.Format(DateFormat), p.End.Format(DateFormat))
	}
	return p.Date.Format(DateFormat)
}

// Validate checks the period is one of the known types with its dates set.
func (p Period) Validate() error {
	switch p.Type {
	case StatusDaily:
		if p.Date.IsZero() {
			return fmt.Errorf("daily period has no date")
		}
	case StatusWeekly:
		if p.Start.IsZero() || p.End.IsZero() {
			return fmt.Errorf("weekly period has no start or end date")
		}
		if p.Start.After(p.End) {
			return fmt.Errorf("weekly period start is after end")
		}
	default:
		return fmt.Errorf("unknown status type %q", p.Type)
	}
	return nil
}

// Entry is a status update before it has been appended into a document.
type Entry struct {
	Profile string
	Period  Period
	Content string
}

// Validate checks the entry can be submitted. Whitespace-only content
// counts as empty.
func (e Entry) Validate() error {
	if e.Profile == "" {
		return fmt.Errorf("no profile selected")
	}
	if strings.TrimSpace(e.Content) == "" {
		return ErrEmptyContent
	}
	return e.Period.Validate()
}

// DocumentInfo describes a status document found in a profile folder.
type DocumentInfo struct {
	ID       string
	Name     string
	Modified time.Time
}

// TextInsert is one positional insert in a document batch. Indexes are
// 1-based and refer to the document state before any insert in the
// batch is applied; the provider shifts later inserts accordingly.
type TextInsert struct {
	Index int64
	Text  string
}
