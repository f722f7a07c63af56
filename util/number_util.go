package util

import "github.com/shopspring/decimal"

// Round2 rounds half away from zero to two decimal places.
func Round2(n float64) float64 {
	return decimal.NewFromFloat(n).Round(2).InexactFloat64()
}
