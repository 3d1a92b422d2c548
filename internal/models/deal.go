package models

import "math"

// Deal is a PriceObservation that cleared the discount and stock gate,
// with the derived fields filled in. Same composite key as the observation.
type Deal struct {
	PriceObservation
	PercentOff int     `json:"percent_off"`
	Savings    float64 `json:"savings"`
}

// PercentOff computes the rounded discount percentage for a price against
// its retail baseline. Returns 0 when the baseline is not positive.
func PercentOff(retail, price float64) int {
	if retail <= 0 {
		return 0
	}
	return int(math.Round(100 * (retail - price) / retail))
}

// Savings is the absolute discount, rounded to cents.
func Savings(retail, price float64) float64 {
	return RoundCents(retail - price)
}
