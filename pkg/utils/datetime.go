package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateTimeLayouts are the accepted input layouts, most specific first
var DateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDateTime parses value with the first matching layout. Values
// without an offset are read in location; a nil location means UTC.
func ParseDateTime(value string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}

	value = strings.TrimSpace(value)
	for _, layout := range DateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, location); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date/time %q: use YYYY-MM-DD HH:MM[:SS], YYYY-MM-DD or RFC3339", value)
}

// ParseID converts a positive record ID
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", value)
	}
	return id, nil
}

// FormatDateTime renders t in UTC with minute precision
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04")
}
