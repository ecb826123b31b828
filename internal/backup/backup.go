package backup

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Options carries the tunables for backup-folder analysis. The zero value is
// not usable; obtain a baseline from DefaultOptions.
type Options struct {
	// PivotYear resolves two-digit years: values below the pivot map to
	// 2000-2099, values at or above it map to 1900-1999. Fixed per run,
	// never derived from the clock.
	PivotYear int
}

// DefaultOptions returns the standard analysis options.
func DefaultOptions() Options {
	return Options{PivotYear: 50}
}

// FolderDate is a parsed backup-folder name. Year is always set; Month and
// Day are zero when the matched pattern omits them. Day is never set without
// Month. Day values are range-checked (01-31) but not calendar-validated;
// an impossible date like 02-30 parses and is surfaced downstream.
type FolderDate struct {
	Year    int
	Month   int
	Day     int
	Pattern string
}

// HasMonth reports whether the pattern carried a month component.
func (d FolderDate) HasMonth() bool { return d.Month != 0 }

// HasDay reports whether the pattern carried a day component.
func (d FolderDate) HasDay() bool { return d.Day != 0 }

func (d FolderDate) String() string {
	switch {
	case d.HasDay():
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	case d.HasMonth():
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d", d.Year)
	}
}

// ParseFolderDate parses a folder name against the recognized backup
// patterns, tried in priority order: yyyy-mm-dd, mm-dd-yyyy, mm-dd-yy,
// yyyy-mm, mm-yyyy. The separator is "-" or "_", used consistently within
// one name. Returns false when no pattern matches.
func ParseFolderDate(name string, opts Options) (FolderDate, bool) {
	parts, ok := splitDateParts(name)
	if !ok {
		return FolderDate{}, false
	}

	switch len(parts) {
	case 3:
		a, b, c := parts[0], parts[1], parts[2]
		if len(a) == 4 && len(b) == 2 && len(c) == 2 {
			return assemble("yyyy-mm-dd", digits(a), digits(b), digits(c))
		}
		if len(a) == 2 && len(b) == 2 && len(c) == 4 {
			return assemble("mm-dd-yyyy", digits(c), digits(a), digits(b))
		}
		if len(a) == 2 && len(b) == 2 && len(c) == 2 {
			return assemble("mm-dd-yy", expandYear(digits(c), opts.PivotYear), digits(a), digits(b))
		}
	case 2:
		a, b := parts[0], parts[1]
		if len(a) == 4 && len(b) == 2 {
			return assemble("yyyy-mm", digits(a), digits(b), 0)
		}
		if len(a) == 2 && len(b) == 4 {
			return assemble("mm-yyyy", digits(b), digits(a), 0)
		}
	}
	return FolderDate{}, false
}

// splitDateParts splits name on its separator, requiring a single separator
// rune used consistently and all-digit parts.
func splitDateParts(name string) ([]string, bool) {
	hasDash := strings.ContainsRune(name, '-')
	hasUnderscore := strings.ContainsRune(name, '_')
	if hasDash == hasUnderscore {
		// Either no separator at all or an inconsistent mix.
		return nil, false
	}
	sep := "-"
	if hasUnderscore {
		sep = "_"
	}
	parts := strings.Split(name, sep)
	if len(parts) != 2 && len(parts) != 3 {
		return nil, false
	}
	for _, part := range parts {
		if part == "" {
			return nil, false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return nil, false
			}
		}
	}
	return parts, true
}

func digits(s string) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return value
}

func expandYear(yy, pivot int) int {
	if yy < pivot {
		return 2000 + yy
	}
	return 1900 + yy
}

func assemble(pattern string, year, month, day int) (FolderDate, bool) {
	if year < 0 || month < 1 || month > 12 {
		return FolderDate{}, false
	}
	if strings.Contains(pattern, "dd") && (day < 1 || day > 31) {
		return FolderDate{}, false
	}
	return FolderDate{Year: year, Month: month, Day: day, Pattern: pattern}, true
}

// Start returns the first instant covered by the folder date at its own
// granularity, in local time. Calendar-invalid days normalize forward here;
// the parsed fields themselves stay verbatim.
func (d FolderDate) Start() time.Time {
	month := time.January
	if d.HasMonth() {
		month = time.Month(d.Month)
	}
	day := 1
	if d.HasDay() {
		day = d.Day
	}
	return time.Date(d.Year, month, day, 0, 0, 0, 0, time.Local)
}

// matchesAt compares a member timestamp with the folder date at the folder's
// own granularity.
func (d FolderDate) matchesAt(ts time.Time) bool {
	year, month, day := ts.Date()
	if year != d.Year {
		return false
	}
	if d.HasMonth() && int(month) != d.Month {
		return false
	}
	if d.HasDay() && day != d.Day {
		return false
	}
	return true
}
