// Package codec maps spreadsheet rows to typed records and back.
// Decoders return nil for rows that are too short or have a blank id
// (tombstones); they never fail.
package codec

import (
	"math"
	"strconv"
	"strings"
)

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func trimmed(row []string, i int) string {
	return strings.TrimSpace(cell(row, i))
}

// parseInt reads a numeric cell, rounding fractions. Unparsable input is 0.
func parseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(math.Round(f))
}

// parseOptInt returns nil for an empty cell.
func parseOptInt(s string) *int64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v := parseInt(s)
	return &v
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatOptInt(v *int64) string {
	if v == nil {
		return ""
	}
	return formatInt(*v)
}

func blankID(row []string) bool {
	return trimmed(row, 0) == ""
}
