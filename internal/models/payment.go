package models

import (
	"slices"

	"cloud.google.com/go/civil"
)

// Payment is a single dated cash flow.
// Negative amounts are money out (investments), positive amounts are money in.
type Payment struct {
	Date   civil.Date `json:"date"`
	Amount float64    `json:"amount"`
}

// Schedule is an ordered sequence of payments. Dates need not be sorted and
// may repeat; each payment is an independent term in the valuation.
type Schedule []Payment

// Start returns the earliest date in the schedule (day zero for discounting).
// The zero Date is returned for an empty schedule.
func (s Schedule) Start() civil.Date {
	if len(s) == 0 {
		return civil.Date{}
	}
	start := s[0].Date
	for _, p := range s[1:] {
		if p.Date.Before(start) {
			start = p.Date
		}
	}
	return start
}

// End returns the latest date in the schedule.
func (s Schedule) End() civil.Date {
	if len(s) == 0 {
		return civil.Date{}
	}
	end := s[0].Date
	for _, p := range s[1:] {
		if p.Date.After(end) {
			end = p.Date
		}
	}
	return end
}

// Totals returns the money returned and the money invested, both as
// non-negative sums.
func (s Schedule) Totals() (inflow, outflow float64) {
	for _, p := range s {
		if p.Amount > 0 {
			inflow += p.Amount
		} else {
			outflow -= p.Amount
		}
	}
	return inflow, outflow
}

// Sorted returns a chronologically ordered copy. Payments on the same date
// are ordered by amount so the result does not depend on input order.
func (s Schedule) Sorted() Schedule {
	out := slices.Clone(s)
	slices.SortStableFunc(out, ComparePayments)
	return out
}

// ComparePayments orders payments by date, then by amount.
func ComparePayments(a, b Payment) int {
	switch {
	case a.Date.Before(b.Date):
		return -1
	case a.Date.After(b.Date):
		return 1
	case a.Amount < b.Amount:
		return -1
	case a.Amount > b.Amount:
		return 1
	}
	return 0
}
