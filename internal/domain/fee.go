package domain

import "time"

// FeeQuote is the price of a booking span: an hourly fee prorated by the
// exact real-valued duration plus a flat refundable deposit
type FeeQuote struct {
	Fee     float64
	Deposit float64
}

// QuoteFee prices the span [start, end) against the facility's rates.
// The fee is hourlyFee times the exact hour fraction with no rounding up,
// so the quote is additive over contiguous intervals. The deposit is taken
// verbatim, never prorated. Unset rates quote as zero.
func QuoteFee(f *Facility, start, end time.Time) FeeQuote {
	var quote FeeQuote

	if f.HourlyFee != nil {
		hours := end.Sub(start).Hours()
		if hours > 0 {
			quote.Fee = *f.HourlyFee * hours
		}
	}

	if f.DepositAmount != nil {
		quote.Deposit = *f.DepositAmount
	}

	return quote
}
