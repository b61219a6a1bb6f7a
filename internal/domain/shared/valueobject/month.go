package valueobject

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// monthNames is the canonical English month-name table. The display form
// "<MonthName> <4-digit year>" built from this table is the only key used for
// matching across anchor months, payment entries and ledger slots; producing
// it anywhere else risks silent mismatches.
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthIndexByName = func() map[string]time.Month {
	m := make(map[string]time.Month, 12)
	for i, name := range monthNames {
		m[name] = time.Month(i + 1)
	}
	return m
}()

// Month is a value object identifying one calendar month of one year.
// It is immutable and strongly typed internally; the wire and storage
// representation is always the display string (e.g. "September 2025"),
// produced and parsed only at the boundary.
type Month struct {
	year  int
	month time.Month
}

// NewMonth creates a Month from a year and a calendar month
func NewMonth(year int, month time.Month) Month {
	return Month{year: year, month: month}
}

// MonthOf returns the calendar month the given instant falls in
func MonthOf(t time.Time) Month {
	return Month{year: t.Year(), month: t.Month()}
}

// ParseMonth parses the canonical display form "<MonthName> <4-digit year>".
// The match is exact: English month name, single space, no zero padding.
func ParseMonth(s string) (Month, error) {
	parts := strings.Split(s, " ")
	if len(parts) != 2 {
		return Month{}, fmt.Errorf("invalid month string %q: want \"<MonthName> <year>\"", s)
	}
	month, ok := monthIndexByName[parts[0]]
	if !ok {
		return Month{}, fmt.Errorf("invalid month name %q", parts[0])
	}
	if len(parts[1]) != 4 {
		return Month{}, fmt.Errorf("invalid year %q: want 4 digits", parts[1])
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return Month{}, fmt.Errorf("invalid year %q: %w", parts[1], err)
	}
	return Month{year: year, month: month}, nil
}

// Year returns the calendar year
func (m Month) Year() int {
	return m.year
}

// Month returns the month number (January = 1)
func (m Month) Month() time.Month {
	return m.month
}

// IsZero reports whether m is the zero Month
func (m Month) IsZero() bool {
	return m.month == 0
}

// String returns the canonical display form, e.g. "September 2025"
func (m Month) String() string {
	if m.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %d", monthNames[m.month-1], m.year)
}

// Name returns the English month name without the year
func (m Month) Name() string {
	if m.IsZero() {
		return ""
	}
	return monthNames[m.month-1]
}

// Next returns the following calendar month, rolling the year over after December
func (m Month) Next() Month {
	if m.month == time.December {
		return Month{year: m.year + 1, month: time.January}
	}
	return Month{year: m.year, month: m.month + 1}
}

// Compare returns -1, 0 or 1 ordering m chronologically against o
func (m Month) Compare(o Month) int {
	switch {
	case m.year < o.year:
		return -1
	case m.year > o.year:
		return 1
	case m.month < o.month:
		return -1
	case m.month > o.month:
		return 1
	default:
		return 0
	}
}

// Before reports whether m is chronologically before o
func (m Month) Before(o Month) bool {
	return m.Compare(o) < 0
}

// After reports whether m is chronologically after o
func (m Month) After(o Month) bool {
	return m.Compare(o) > 0
}

// Equal reports whether m and o identify the same calendar month
func (m Month) Equal(o Month) bool {
	return m.Compare(o) == 0
}

// MonthsUntil returns the number of month steps from m to o.
// Negative when o is before m; 0 when equal.
func (m Month) MonthsUntil(o Month) int {
	return (o.year-m.year)*12 + int(o.month) - int(m.month)
}

// MarshalJSON encodes the Month as its display string
func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a Month from its display string; "" yields the zero Month
func (m *Month) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*m = Month{}
		return nil
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MonthNames returns the canonical month-name table in calendar order
func MonthNames() []string {
	names := make([]string, len(monthNames))
	copy(names, monthNames[:])
	return names
}
