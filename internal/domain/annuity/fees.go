package annuity

import (
	"fmt"
	"time"

	"github.com/unicpatent/unic-ip/internal/domain/patent"
)

// Statutory per-year renewal fees for Korean patents, in KRW.  The term is
// 20 annuity years; fees step up in three-year brackets.
type feeBracket struct {
	fromYear int
	toYear   int
	fee      int64
}

var feeBrackets = []feeBracket{
	{1, 3, 42000},
	{4, 6, 95000},
	{7, 9, 250000},
	{10, 12, 500000},
	{13, 15, 660000},
	{16, 18, 850000},
	{19, 20, 1100000},
}

// MaxAnnualYear is the last annuity year of the statutory term.
const MaxAnnualYear = 20

// Statutory grace windows after a missed due date: six months of late
// payment with surcharge, then recovery until eighteen months total.
const (
	latePaymentWindowDays = 180
	recoveryWindowDays    = 540
)

// FeeForYear returns the statutory renewal fee for the given annuity year.
// ok is false for years outside 1..20.
func FeeForYear(year int) (fee int64, ok bool) {
	for _, b := range feeBrackets {
		if year >= b.fromYear && year <= b.toYear {
			return b.fee, true
		}
	}
	return 0, false
}

// PaymentWindow classifies a due date relative to a reference time.
type PaymentWindow string

const (
	WindowActive   PaymentWindow = "active"
	WindowLate     PaymentWindow = "late"
	WindowRecovery PaymentWindow = "recovery"
	WindowExpired  PaymentWindow = "expired"
)

// Korean returns the Korean display label for the window.
func (w PaymentWindow) Korean() string {
	switch w {
	case WindowActive:
		return "유효"
	case WindowLate:
		return "추납기간"
	case WindowRecovery:
		return "회복기간"
	case WindowExpired:
		return "만료"
	default:
		return patent.Sentinel
	}
}

// ClassifyDueDate places a due date into its statutory window as of now:
// still in the future → active; up to 180 days past → late payment; up to
// 540 days past → recovery; beyond that the right has lapsed.
func ClassifyDueDate(due, now time.Time) PaymentWindow {
	days := int(now.Sub(due).Hours() / 24)
	switch {
	case days <= 0:
		return WindowActive
	case days <= latePaymentWindowDays:
		return WindowLate
	case days <= recoveryWindowDays:
		return WindowRecovery
	default:
		return WindowExpired
	}
}

// ScheduleEntry is one annuity year in the statutory schedule.
type ScheduleEntry struct {
	Year    int
	DueDate time.Time
	Fee     int64
	Window  PaymentWindow
}

// DueDateForYear computes the statutory due date for the Nth annuity year:
// the registration date shifted forward by N−1 years with month and day
// preserved.  A Feb-29 registration normalizes to Mar-1 in non-leap years.
func DueDateForYear(registration time.Time, year int) time.Time {
	return time.Date(
		registration.Year()+year-1,
		registration.Month(), registration.Day(),
		0, 0, 0, 0, registration.Location(),
	)
}

// Schedule builds the full 20-year statutory schedule for a patent
// registered on registrationDate (any accepted date form), classifying each
// year's window as of now.  Returns an error for unparseable dates.
func Schedule(registrationDate string, now time.Time) ([]ScheduleEntry, error) {
	normalized := patent.NormalizeDate(registrationDate, patent.DashStyle)
	if normalized == patent.Sentinel {
		return nil, fmt.Errorf("annuity: unparseable registration date %q", registrationDate)
	}
	reg, err := time.Parse("2006-01-02", normalized)
	if err != nil {
		return nil, fmt.Errorf("annuity: parse registration date: %w", err)
	}

	entries := make([]ScheduleEntry, 0, MaxAnnualYear)
	for year := 1; year <= MaxAnnualYear; year++ {
		fee, _ := FeeForYear(year)
		due := DueDateForYear(reg, year)
		entries = append(entries, ScheduleEntry{
			Year:    year,
			DueDate: due,
			Fee:     fee,
			Window:  ClassifyDueDate(due, now),
		})
	}
	return entries, nil
}

// NextDue returns the first schedule entry whose due date has not passed as
// of now.  ok is false when the full term has elapsed.
func NextDue(entries []ScheduleEntry, now time.Time) (ScheduleEntry, bool) {
	for _, e := range entries {
		if e.DueDate.After(now) {
			return e, true
		}
	}
	return ScheduleEntry{}, false
}
