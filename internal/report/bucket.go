// Package report turns transaction lists into the numbers the dashboards show:
// bucketed totals, period comparison, top products and payment splits.
package report

import (
	"errors"
	"strings"
	"time"
)

type Bucket string

const (
	BucketDay   Bucket = "day"
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
	BucketYear  Bucket = "year"
)

// ParseBucket defaults to day.
func ParseBucket(s string) Bucket {
	switch b := Bucket(strings.ToLower(strings.TrimSpace(s))); b {
	case BucketWeek, BucketMonth, BucketYear:
		return b
	}
	return BucketDay
}

var ErrInvalidRange = errors.New("invalid date range")

// Range is an inclusive span of YYYY-MM-DD dates.
type Range struct {
	Start string `json:"startDate"`
	End   string `json:"endDate"`
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// NewRange validates both ends. start must not be after end.
func NewRange(start, end string) (Range, error) {
	s, err := parseDate(start)
	if err != nil {
		return Range{}, ErrInvalidRange
	}
	e, err := parseDate(end)
	if err != nil {
		return Range{}, ErrInvalidRange
	}
	if s.After(e) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: start, End: end}, nil
}

// LastDays is the n-day range ending at end.
func LastDays(end string, n int) Range {
	e, err := parseDate(end)
	if err != nil || n < 1 {
		return Range{Start: end, End: end}
	}
	return Range{Start: formatDate(e.AddDate(0, 0, -(n - 1))), End: end}
}

// Contains compares lexically, which is exact for YYYY-MM-DD.
func (r Range) Contains(date string) bool {
	return date >= r.Start && date <= r.End
}

// Days lists every date in the range.
func (r Range) Days() []string {
	s, err1 := parseDate(r.Start)
	e, err2 := parseDate(r.End)
	if err1 != nil || err2 != nil {
		return nil
	}
	var out []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		out = append(out, formatDate(d))
	}
	return out
}

// Len is the number of days in the range.
func (r Range) Len() int {
	s, err1 := parseDate(r.Start)
	e, err2 := parseDate(r.End)
	if err1 != nil || err2 != nil || s.After(e) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// Previous is the range of equal length ending the day before r starts.
func (r Range) Previous() Range {
	s, err := parseDate(r.Start)
	if err != nil {
		return r
	}
	n := r.Len()
	return Range{
		Start: formatDate(s.AddDate(0, 0, -n)),
		End:   formatDate(s.AddDate(0, 0, -1)),
	}
}

// MondayOf returns the Monday starting date's week.
func MondayOf(date string) string {
	t, err := parseDate(date)
	if err != nil {
		return date
	}
	offset := (int(t.Weekday()) + 6) % 7
	return formatDate(t.AddDate(0, 0, -offset))
}

// BucketKey groups a date: the date itself, its week's Monday, YYYY-MM or YYYY.
func BucketKey(date string, b Bucket) string {
	switch b {
	case BucketWeek:
		return MondayOf(date)
	case BucketMonth:
		if len(date) >= 7 {
			return date[:7]
		}
	case BucketYear:
		if len(date) >= 4 {
			return date[:4]
		}
	}
	return date
}
