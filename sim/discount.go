package sim

import "math"

// PresentValue discounts amount received after the given number of periods
// at rate per period: amount / (1+rate)^periods.
func PresentValue(amount, rate float64, periods int) float64 {
	return amount / math.Pow(1+rate, float64(periods))
}

// HalfCyclePresentValue discounts an amount accrued during step k to the
// midpoint of that step: period 2k+1 at half the per-step rate.
func HalfCyclePresentValue(amount, adjRate float64, k int) float64 {
	return PresentValue(amount, adjRate/2, 2*k+1)
}
