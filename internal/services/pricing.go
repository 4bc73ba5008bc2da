package services

import (
	"math"
	"time"
)

// Nights returns the number of billable nights between checkin and checkout.
// Any partial day rounds up, so a stay of 2 days and 3 hours bills 3 nights.
func Nights(checkin, checkout time.Time) int {
	if !checkout.After(checkin) {
		return 0
	}
	return int(math.Ceil(checkout.Sub(checkin).Hours() / 24))
}

// StayTotal computes the total price of a stay at the given nightly rate
func StayTotal(checkin, checkout time.Time, pricePerDay float64) float64 {
	return float64(Nights(checkin, checkout)) * pricePerDay
}

// AmountMinorUnits converts a decimal amount to the integer minor units
// (cents) the payment provider expects
func AmountMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
