// Package patent defines the canonical patent record shared by every layer
// of the unic-ip service, together with the pure date and field-normalization
// helpers that shape raw government-API values into that record.
//
// Convention carried over from the upstream data sources: string fields use
// the sentinel "-" instead of an empty string to mean "no data".  The
// sentinel is part of the export contract and flows through to spreadsheet
// cells unchanged.
package patent

// Sentinel is the canonical "no data" marker used in place of empty strings.
const Sentinel = "-"

// RegistrationStatus is the closed set of registration states a record can
// be in.  Raw Korean status strings from the upstream APIs are mapped onto
// this enum at the infrastructure boundary; the original free text is kept
// in Record.StatusText for display.
type RegistrationStatus string

const (
	StatusRegistered RegistrationStatus = "registered"
	StatusExamining  RegistrationStatus = "examining"
	StatusUnknown    RegistrationStatus = "unknown"
)

// Korean returns the Korean display label for the status.
func (s RegistrationStatus) Korean() string {
	switch s {
	case StatusRegistered:
		return "등록"
	case StatusExamining:
		return "심사중"
	default:
		return Sentinel
	}
}

// SearchContext identifies which search produced a record.  The two contexts
// apply different fallbacks when the upstream omits the status field: a
// record from a registered-rights search defaults to registered, a record
// from an application search defaults to examining.  The asymmetry mirrors
// the upstream behaviour and is relied on by the bulk post-filter.
type SearchContext int

const (
	ContextRegisteredSearch SearchContext = iota
	ContextApplicationSearch
)

// Record is the canonical patent record.  ApplicationNumber is always
// present; every other string field defaults to the sentinel.
type Record struct {
	ApplicationNumber  string             `json:"applicationNumber"`
	RegistrationNumber string             `json:"registrationNumber"`
	ApplicantName      string             `json:"applicantName"`
	InventorName       string             `json:"inventorName"`
	InventionName      string             `json:"inventionName"`
	ApplicationDate    string             `json:"applicationDate"`
	RegistrationDate   string             `json:"registrationDate"`
	PublicationDate    string             `json:"publicationDate"`
	ExpirationDate     string             `json:"expirationDate"`
	ClaimCount         string             `json:"claimCount"`
	RegistrationStatus RegistrationStatus `json:"registrationStatus"`

	// StatusText preserves the raw upstream status string (e.g. 거절, 소멸)
	// when it does not map onto the closed enum.  Display code prefers
	// StatusText over the enum label when set.
	StatusText string `json:"statusText,omitempty"`

	// Application-search enrichment fields.
	PriorityDate         string `json:"priorityDate"`
	PCTApplicationNumber string `json:"pctApplicationNumber"`
	PCTDeadline          string `json:"pctDeadline"`
	IPCCode              string `json:"ipcCode"`
	PublicationFullText  string `json:"publicationFullText"`
	AnnouncementFullText string `json:"announcementFullText"`

	// Caller identifiers echoed into exports.
	BusinessNumber string `json:"businessNumber"`
	CustomerNumber string `json:"customerNumber"`
}

// NewRecord creates a Record for the given application number with every
// other field set to the sentinel and status unknown.
func NewRecord(applicationNumber string) Record {
	return Record{
		ApplicationNumber:    applicationNumber,
		RegistrationNumber:   Sentinel,
		ApplicantName:        Sentinel,
		InventorName:         Sentinel,
		InventionName:        Sentinel,
		ApplicationDate:      Sentinel,
		RegistrationDate:     Sentinel,
		PublicationDate:      Sentinel,
		ExpirationDate:       Sentinel,
		ClaimCount:           Sentinel,
		RegistrationStatus:   StatusUnknown,
		PriorityDate:         Sentinel,
		PCTApplicationNumber: Sentinel,
		PCTDeadline:          Sentinel,
		IPCCode:              Sentinel,
		PublicationFullText:  Sentinel,
		AnnouncementFullText: Sentinel,
		BusinessNumber:       Sentinel,
		CustomerNumber:       Sentinel,
	}
}

// DisplayStatus returns the Korean status string for presentation: the raw
// upstream text when one was preserved, otherwise the enum label.
func (r Record) DisplayStatus() string {
	if r.StatusText != "" && r.StatusText != Sentinel {
		return r.StatusText
	}
	return r.RegistrationStatus.Korean()
}

// IsRegistered reports whether the record represents a granted patent.
func (r Record) IsRegistered() bool {
	return r.RegistrationStatus == StatusRegistered
}

// HasRegistrationNumber reports whether a non-sentinel registration number
// is present.
func (r Record) HasRegistrationNumber() bool {
	return r.RegistrationNumber != "" && r.RegistrationNumber != Sentinel
}

// MergeDetail folds a bibliographic detail record into the receiver and
// returns the result.  Only registration number, registration date,
// expiration date, and claim count are taken, and each only when the detail
// value is non-sentinel: a later-stage source wins only when it actually has
// data, and real data is never overwritten by a sentinel.
func (r Record) MergeDetail(detail Record) Record {
	merged := r
	if isSet(detail.RegistrationNumber) {
		merged.RegistrationNumber = detail.RegistrationNumber
	}
	if isSet(detail.RegistrationDate) {
		merged.RegistrationDate = detail.RegistrationDate
	}
	if isSet(detail.ExpirationDate) {
		merged.ExpirationDate = detail.ExpirationDate
	}
	if isSet(detail.ClaimCount) {
		merged.ClaimCount = detail.ClaimCount
	}
	return merged
}

func isSet(v string) bool {
	return v != "" && v != Sentinel
}
