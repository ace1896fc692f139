package patent

import (
	"regexp"
	"strings"
)

// FirstName extracts the first name from a comma-joined applicant or
// right-holder list.  Returns the sentinel for empty or sentinel input.
func FirstName(commaJoined string) string {
	s := strings.TrimSpace(commaJoined)
	if s == "" || s == Sentinel {
		return Sentinel
	}
	first := strings.TrimSpace(strings.SplitN(s, ",", 2)[0])
	if first == "" {
		return Sentinel
	}
	return first
}

// ParseRegistrationStatus maps a raw upstream status string onto the closed
// enum.  An empty status falls back per search context: records from a
// registered-rights search default to registered, records from an
// application search default to examining.  The two call sites deliberately
// differ — a rights search only returns granted patents, an application
// search mostly returns pending ones.
func ParseRegistrationStatus(raw string, ctx SearchContext) RegistrationStatus {
	s := strings.TrimSpace(raw)
	if s == "" || s == Sentinel {
		if ctx == ContextApplicationSearch {
			return StatusExamining
		}
		return StatusRegistered
	}
	if strings.Contains(s, "등록") {
		return StatusRegistered
	}
	if strings.Contains(s, "심사") || strings.Contains(s, "출원") || strings.Contains(s, "공개") {
		return StatusExamining
	}
	return StatusUnknown
}

var compactAppNoRe = regexp.MustCompile(`^\d{13}$`)

// DisplayApplicationNumber reformats a compact 13-digit application number
// as the conventional 2-4-7 form ("1020190012345" → "10-2019-0012345").
// Already-hyphenated or non-13-digit input passes through unchanged.
func DisplayApplicationNumber(appNo string) string {
	s := strings.TrimSpace(appNo)
	if !compactAppNoRe.MatchString(s) {
		return appNo
	}
	return s[:2] + "-" + s[2:6] + "-" + s[6:]
}

// CompactApplicationNumber strips display hyphens from an application
// number, restoring the 13-digit form used as an API key.
func CompactApplicationNumber(appNo string) string {
	return strings.ReplaceAll(strings.TrimSpace(appNo), "-", "")
}
