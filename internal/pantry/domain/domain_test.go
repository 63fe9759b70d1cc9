package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"test1@EXAMPLE.com", "test1@example.com"},
		{"Test2@Example.com", "Test2@example.com"},
		{"TEST3@EXAMPLE.COM", "TEST3@example.com"},
		{"Test4@example.COM", "Test4@example.com"},
		{"  padded@Example.Org  ", "padded@example.org"},
		{"no-at-sign", "no-at-sign"},
		{"", ""},
		{`"odd@local"@Example.COM`, `"odd@local"@example.com`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeEmail(tt.in)
			require.Equal(t, tt.want, got)
			require.Equal(t, got, NormalizeEmail(got), "normalization must be idempotent")
		})
	}
}

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"test@example.com", "Test4@example.com", "first.last+tag@sub.example.co"} {
		require.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@localhost",
		"user@.example.com",
		"Name <user@example.com>",
		"user@example.com ",
	} {
		require.False(t, ValidEmail(bad), bad)
	}
}

func TestUserString(t *testing.T) {
	require.Equal(t, "cook@example.com", User{Email: "cook@example.com", Name: "Cook"}.String())
}

func TestParsePrice(t *testing.T) {
	valid := map[string]string{
		"5":      "5.00",
		"5.5":    "5.50",
		"5.25":   "5.25",
		"999.99": "999.99",
		"0":      "0.00",
		"0.00":   "0.00",
		"-1.50":  "-1.50",
	}
	for in, want := range valid {
		d, err := ParsePrice(in)
		require.NoError(t, err, in)
		require.Equal(t, want, FormatPrice(d), in)
	}

	invalid := map[string]error{
		"1000":    ErrPriceTooManyWhole,
		"1000.00": ErrPriceTooManyDigits,
		"1.500":   ErrPriceTooManyDecimals,
		"0.001":   ErrPriceTooManyDecimals,
		"12345":   ErrPriceTooManyWhole,
		"abc":     ErrPriceInvalid,
		"":        ErrPriceInvalid,
	}
	for in, want := range invalid {
		_, err := ParsePrice(in)
		require.ErrorIs(t, err, want, in)
	}
}

func TestValidatePrice_IntegerExponent(t *testing.T) {
	// 1e3 has coefficient 1 and exponent 3, i.e. four whole digits.
	require.ErrorIs(t, ValidatePrice(decimal.New(1, 3)), ErrPriceTooManyWhole)
	require.NoError(t, ValidatePrice(decimal.New(1, 2)))
	require.NoError(t, ValidatePrice(decimal.New(0, 5)))
}

func TestAuthTokenExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Second)
	future := now.Add(time.Hour)

	require.False(t, AuthToken{}.Expired(now))
	require.True(t, AuthToken{ExpiresAt: &past}.Expired(now))
	require.True(t, AuthToken{ExpiresAt: &now}.Expired(now))
	require.False(t, AuthToken{ExpiresAt: &future}.Expired(now))
}
