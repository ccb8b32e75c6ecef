// README: Common money value object used across modules.
package types

import "math"

// Money holds an amount in minor units (cents).
type Money struct {
	Amount   int64
	Currency string
}

func MoneyFromFloat(v float64, currency string) Money {
	return Money{Amount: int64(math.Round(v * 100)), Currency: currency}
}

// Float returns the amount in major units.
func (m Money) Float() float64 {
	return float64(m.Amount) / 100
}
