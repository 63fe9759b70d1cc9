package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrPriceTooManyDigits   = fmt.Errorf("ensure that there are no more than %d digits in total", PriceMaxDigits)
	ErrPriceTooManyDecimals = fmt.Errorf("ensure that there are no more than %d decimal places", PriceDecimalPlaces)
	ErrPriceTooManyWhole    = fmt.Errorf("ensure that there are no more than %d digits before the decimal point", PriceMaxDigits-PriceDecimalPlaces)
	ErrPriceInvalid         = errors.New("a valid number is required")
)

// ParsePrice parses and validates a price string such as "5.50".
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrPriceInvalid
	}
	if err := ValidatePrice(d); err != nil {
		return decimal.Decimal{}, err
	}
	return d, nil
}

// ValidatePrice checks d against a fixed-point column of PriceMaxDigits
// digits with PriceDecimalPlaces of them after the point. Digits are counted
// as written, so "1.500" has three decimal places.
func ValidatePrice(d decimal.Decimal) error {
	exp := int(d.Exponent())
	coef := d.Coefficient()
	n := len(coef.Abs(coef).String())

	var digits, decimals int
	switch {
	case exp >= 0:
		if coef.Sign() != 0 {
			digits = n + exp
		}
	case -exp > n:
		digits, decimals = -exp, -exp
	default:
		digits, decimals = n, -exp
	}

	switch {
	case digits > PriceMaxDigits:
		return ErrPriceTooManyDigits
	case decimals > PriceDecimalPlaces:
		return ErrPriceTooManyDecimals
	case digits-decimals > PriceMaxDigits-PriceDecimalPlaces:
		return ErrPriceTooManyWhole
	}
	return nil
}

// FormatPrice renders d with exactly PriceDecimalPlaces places.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(PriceDecimalPlaces)
}
