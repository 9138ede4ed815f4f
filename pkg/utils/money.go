package utils

import (
	"fmt"
	"math"
	"strconv"
)

// MaxAmount bounds a single money value so cent sums cannot overflow int64.
const MaxAmount = 1e12

// ValidAmount reports whether amount is finite, non-negative and at most MaxAmount.
func ValidAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount >= 0 && amount <= MaxAmount
}

// ToCents converts an amount to integer cents, rounding half away from zero.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// RoundMoney rounds an amount to two decimals.
func RoundMoney(amount float64) float64 {
	return float64(ToCents(amount)) / 100
}

// FormatCents renders cents without trailing zeros: 52000 -> "520", 4305 -> "43.05".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	if cents%100 == 0 {
		return sign + strconv.FormatInt(cents/100, 10)
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
