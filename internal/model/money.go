package model

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// amountPlaces is the scale of every money column.
const amountPlaces = 2

// validateAmount accepts min <= v < limit with at most two decimal places,
// so the stored value is exactly the one that was submitted.
func validateAmount(field string, v float64, min, limit int64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a number", ErrValidation, field)
	}
	d := decimal.NewFromFloat(v)
	if d.LessThan(decimal.NewFromInt(min)) {
		return fmt.Errorf("%w: %s must be at least %d", ErrValidation, field, min)
	}
	if d.GreaterThanOrEqual(decimal.NewFromInt(limit)) {
		return fmt.Errorf("%w: %s must be below %d", ErrValidation, field, limit)
	}
	if !d.Equal(d.Round(amountPlaces)) {
		return fmt.Errorf("%w: %s must have at most %d decimal places", ErrValidation, field, amountPlaces)
	}
	return nil
}
