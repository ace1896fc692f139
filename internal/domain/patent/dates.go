package patent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateStyle selects the separator used when rendering a normalized date.
type DateStyle int

const (
	// DashStyle renders dates as "YYYY-MM-DD" (computation, JSON).
	DashStyle DateStyle = iota
	// DotStyle renders dates as "YYYY.MM.DD" (Korean display, exports).
	DotStyle
)

func (s DateStyle) separator() string {
	if s == DotStyle {
		return "."
	}
	return "-"
}

var compactDateRe = regexp.MustCompile(`^\d{8}$`)

// minYear/maxYear bound the accepted year range; anything outside is data
// corruption from upstream, not a real patent date.
const (
	minYear = 1900
	maxYear = 2100
)

// NormalizeDate converts a raw upstream date into canonical form using the
// given style.  Accepted inputs are 8-digit YYYYMMDD, dotted YYYY.MM.DD, and
// dashed YYYY-MM-DD; everything else, including empty input and calendar
// impossibilities, yields the sentinel.  The function is pure and total —
// it never panics and never returns an error.
func NormalizeDate(raw string, style DateStyle) string {
	digits, ok := dateDigits(raw)
	if !ok {
		return Sentinel
	}
	sep := style.separator()
	return digits[:4] + sep + digits[4:6] + sep + digits[6:]
}

// dateDigits reduces an accepted date form to its 8 digits and validates it.
func dateDigits(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || s == Sentinel {
		return "", false
	}

	switch {
	case compactDateRe.MatchString(s):
		// already compact
	case len(s) == 10 && (strings.Count(s, ".") == 2 || strings.Count(s, "-") == 2):
		s = strings.NewReplacer(".", "", "-", "").Replace(s)
		if !compactDateRe.MatchString(s) {
			return "", false
		}
	default:
		return "", false
	}

	year, _ := strconv.Atoi(s[:4])
	if year < minYear || year > maxYear {
		return "", false
	}
	if _, err := time.Parse("20060102", s); err != nil {
		return "", false
	}
	return s, true
}

// ExpirationDate computes a patent's expiration date as the application date
// plus exactly 20 calendar years.  Calendar arithmetic (not 20×365 days) is
// required so a Feb-29 filing maps to Feb-29 of the leap year twenty years
// on.  Returns the sentinel when applicationDate is sentinel or unparseable.
func ExpirationDate(applicationDate string, style DateStyle) string {
	digits, ok := dateDigits(applicationDate)
	if !ok {
		return Sentinel
	}
	t, err := time.Parse("20060102", digits)
	if err != nil {
		return Sentinel
	}
	exp := t.AddDate(20, 0, 0)
	layout := "2006" + style.separator() + "01" + style.separator() + "02"
	return exp.Format(layout)
}

// PriorityDeadline computes the one-year convention deadline from the
// priority date, falling back to the application date when no priority date
// exists.  The year component is incremented by exactly 1 with month and day
// carried over verbatim as string components — deliberately not time
// arithmetic, so "2020-12-31" becomes "2021-12-31" rather than shifting by
// 365 days.  Returns the sentinel when neither base date is usable.
func PriorityDeadline(priorityDate, applicationDate string, style DateStyle) string {
	digits, ok := dateDigits(priorityDate)
	if !ok {
		digits, ok = dateDigits(applicationDate)
	}
	if !ok {
		return Sentinel
	}

	year, _ := strconv.Atoi(digits[:4])
	sep := style.separator()
	return fmt.Sprintf("%04d%s%s%s%s", year+1, sep, digits[4:6], sep, digits[6:])
}
