package utils

import "math"

// Round rounds a number to 2 decimal places for monetary calculations
func Round(num float64) float64 {
	return math.Round(num*MoneyPrecision) / MoneyPrecision
}

// ToMinorUnits converts a major-unit amount (rupees) to minor units (paise)
func ToMinorUnits(major float64) int64 {
	return int64(math.Round(major * MoneyPrecision))
}

// ToMajorUnits converts minor units back to a major-unit amount
func ToMajorUnits(minor int64) float64 {
	return float64(minor) / MoneyPrecision
}

// MinInt64 returns the smaller of two values
func MinInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
