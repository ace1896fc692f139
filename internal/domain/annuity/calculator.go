// Package annuity derives renewal-fee (annuity) data for granted patents:
// the per-request calculation taken from registry payment histories, and the
// statutory fee schedule with its late-payment and recovery windows.
package annuity

import (
	"github.com/unicpatent/unic-ip/internal/domain/patent"
)

// Validity is the closed set of payment-validity states.
type Validity string

const (
	ValidityValid  Validity = "valid"
	ValidityUnpaid Validity = "unpaid"
	ValidityNone   Validity = "none"
)

// Korean returns the Korean display label for the validity state.
func (v Validity) Korean() string {
	switch v {
	case ValidityValid:
		return "유효"
	case ValidityUnpaid:
		return "불납"
	default:
		return patent.Sentinel
	}
}

// PaymentEntry is one historical annuity payment from the registry's
// register history.  Entries are ordered by table position; the last entry
// is the most recent payment on record.  Values stay as upstream strings so
// the sentinel discipline carries through to exports.
type PaymentEntry struct {
	AnnualYear  string `json:"annualYear"`
	PaymentDate string `json:"paymentDate"`
	Amount      string `json:"amount"`
}

// sentinelEntry is returned in place of missing history rows.
func sentinelEntry() PaymentEntry {
	return PaymentEntry{
		AnnualYear:  patent.Sentinel,
		PaymentDate: patent.Sentinel,
		Amount:      patent.Sentinel,
	}
}

// Passthrough carries the late-payment and recovery period values supplied
// by the caller.  These are display pass-through fields, not derived ones —
// the registry reports them directly when applicable.  The statutory windows
// in fees.go are a separate tool and are never substituted here.
type Passthrough struct {
	LatePaymentPeriod string
	RecoveryPeriod    string
}

// Calculation is the derived annuity data for a single record.  It is
// computed fresh per request and never persisted.
type Calculation struct {
	Validity             Validity `json:"validity"`
	PreviousPaymentMonth string   `json:"previousPaymentMonth"`
	DueDate              string   `json:"dueDate"`
	AnnualYear           string   `json:"annualYear"`
	AnnualFee            string   `json:"annualFee"`
	LatePaymentPeriod    string   `json:"latePaymentPeriod"`
	RecoveryPeriod       string   `json:"recoveryPeriod"`

	// CurrentEntry and PreviousEntry expose the last and second-to-last
	// payment-history rows directly for the payment-history view.
	CurrentEntry  PaymentEntry `json:"currentEntry"`
	PreviousEntry PaymentEntry `json:"previousEntry"`
}

// sentinelCalculation returns a Calculation with the given validity and
// every other field set to the sentinel.
func sentinelCalculation(v Validity) Calculation {
	return Calculation{
		Validity:             v,
		PreviousPaymentMonth: patent.Sentinel,
		DueDate:              patent.Sentinel,
		AnnualYear:           patent.Sentinel,
		AnnualFee:            patent.Sentinel,
		LatePaymentPeriod:    patent.Sentinel,
		RecoveryPeriod:       patent.Sentinel,
		CurrentEntry:         sentinelEntry(),
		PreviousEntry:        sentinelEntry(),
	}
}

// Calculate derives the annuity data for one record from its payment
// history.
//
// A record that is not registered short-circuits to unpaid with every other
// field sentinel — no date math is attempted for pending or lapsed rights.
// Otherwise the last history row supplies the current annuity year, due
// date, and fee; the second-to-last row supplies the previous payment.
// Missing rows degrade to sentinels, never to an error.
func Calculate(rec patent.Record, history []PaymentEntry, pass Passthrough) Calculation {
	if !rec.IsRegistered() {
		return sentinelCalculation(ValidityUnpaid)
	}

	calc := sentinelCalculation(ValidityValid)

	if n := len(history); n > 0 {
		current := normalizeEntry(history[n-1])
		calc.CurrentEntry = current
		calc.DueDate = current.PaymentDate
		calc.AnnualYear = current.AnnualYear
		calc.AnnualFee = current.Amount

		if n > 1 {
			previous := normalizeEntry(history[n-2])
			calc.PreviousEntry = previous
			calc.PreviousPaymentMonth = paymentMonth(previous.PaymentDate)
		}
	}

	if pass.LatePaymentPeriod != "" {
		calc.LatePaymentPeriod = pass.LatePaymentPeriod
	}
	if pass.RecoveryPeriod != "" {
		calc.RecoveryPeriod = pass.RecoveryPeriod
	}

	return calc
}

// normalizeEntry replaces empty fields with the sentinel.
func normalizeEntry(e PaymentEntry) PaymentEntry {
	if e.AnnualYear == "" {
		e.AnnualYear = patent.Sentinel
	}
	if e.PaymentDate == "" {
		e.PaymentDate = patent.Sentinel
	}
	if e.Amount == "" {
		e.Amount = patent.Sentinel
	}
	return e
}

// paymentMonth projects a payment date down to its year-month ("YYYY.MM")
// for the previous-payment column.  Unparseable dates yield the sentinel.
func paymentMonth(paymentDate string) string {
	normalized := patent.NormalizeDate(paymentDate, patent.DotStyle)
	if normalized == patent.Sentinel {
		return patent.Sentinel
	}
	// "YYYY.MM.DD" → "YYYY.MM"
	return normalized[:7]
}
