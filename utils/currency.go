package utils

import (
	"fmt"
	"math"
)

// FormatCurrencyIDR memformat float64 ke format Rupiah.
// Contoh: 15000.50 -> "Rp 15.000,50"
func FormatCurrencyIDR(amount float64) string {
	integer := math.Floor(amount)
	decimal := amount - integer

	integerStr := ""
	intTemp := integer

	if intTemp == 0 {
		integerStr = "0"
	}

	// Format bagian integer dengan pemisah ribuan
	for intTemp > 0 {
		remainder := int(math.Mod(intTemp, 1000))

		if intTemp >= 1000 {
			if remainder < 10 {
				integerStr = fmt.Sprintf(".00%d%s", remainder, integerStr)
			} else if remainder < 100 {
				integerStr = fmt.Sprintf(".0%d%s", remainder, integerStr)
			} else {
				integerStr = fmt.Sprintf(".%d%s", remainder, integerStr)
			}
		} else {
			integerStr = fmt.Sprintf("%d%s", remainder, integerStr)
		}

		intTemp = math.Floor(intTemp / 1000)
	}

	if decimal > 0 {
		decimal = math.Round(decimal*100) / 100
		decimalStr := fmt.Sprintf("%02.0f", decimal*100)
		return fmt.Sprintf("Rp %s,%s", integerStr, decimalStr)
	}

	return fmt.Sprintf("Rp %s", integerStr)
}
