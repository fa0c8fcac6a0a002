package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Price range errors.
var (
	ErrNegativePrice = errors.New("price must not be negative")
	ErrPriceTooLarge = errors.New("price is too large")
)

// maxAmount is the largest decimal amount whose cents fit in an int64.
const maxAmount = float64(math.MaxInt64 / 100)

// Price is a non-negative amount in cents.
type Price int64

// PriceFromFloat converts a decimal amount such as 25.5 to a Price,
// rounding to the nearest cent.
func PriceFromFloat(amount float64) (Price, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("invalid price %v", amount)
	}
	if amount < 0 {
		return 0, fmt.Errorf("%w: %.2f", ErrNegativePrice, amount)
	}
	if amount > maxAmount {
		return 0, fmt.Errorf("%w: %g", ErrPriceTooLarge, amount)
	}
	return Price(math.Round(amount * 100)), nil
}

// Cents returns the raw amount in cents.
func (p Price) Cents() int64 {
	return int64(p)
}

// Float returns the amount as a decimal number.
func (p Price) Float() float64 {
	return float64(p) / 100
}

// String formats the price with exactly two decimal places, e.g. "30.00".
func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", int64(p)/100, int64(p)%100)
}

// MarshalJSON encodes the price as a decimal number.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(json.Number(p.String()))
}

// UnmarshalJSON decodes a decimal number such as 30.00.
func (p *Price) UnmarshalJSON(data []byte) error {
	var amount float64
	if err := json.Unmarshal(data, &amount); err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}
	v, err := PriceFromFloat(amount)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
