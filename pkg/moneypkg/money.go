// Package moneypkg provides parsing and validation of money amounts.
package moneypkg

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits money amounts may carry.
const Scale = 2

// MaxAmount is the largest amount, and the largest balance, the ledger stores.
// It matches the numeric(14,2) columns of the schema.
var MaxAmount = decimal.New(99_999_999_999_999, -Scale)

// ErrInvalidAmount indicates a malformed, non positive, too precise or too large amount.
var ErrInvalidAmount = errors.New("amount must be a positive number with at most 2 decimal places")

// IsValidAmount reports whether d can be moved between accounts.
func IsValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Truncate(Scale)) && d.LessThanOrEqual(MaxAmount)
}

// ParseAmount parses s into a valid transfer amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	if !IsValidAmount(d) {
		return decimal.Zero, ErrInvalidAmount
	}

	return d, nil
}

// ValidAmount validates that a string field holds a valid transfer amount.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := ParseAmount(s)

	return err == nil
}
