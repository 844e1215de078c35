package format

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatIndianNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"12.5", "12.5"},
		{"12.345", "12.35"},
		{"1000", "1,000"},
		{"100000", "1,00,000"},
		{"10000000", "1,00,00,000"},
		{"1234567.891", "12,34,567.89"},
		{"-1234567.5", "-12,34,567.5"},
		{"-42", "-42"},
		{"999.999", "1,000"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatIndianNumber(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatIndianFloat(t *testing.T) {
	assert.Equal(t, "0", FormatIndianFloat(math.NaN()))
	assert.Equal(t, "1,50,000", FormatIndianFloat(150000))
	assert.Equal(t, "0", FormatIndianNumberPtr(nil))
}

func TestFormatIndianCurrency(t *testing.T) {
	assert.Equal(t, "₹2,50,000.75", FormatIndianCurrency(decimal.RequireFromString("250000.75")))
}

func TestParseIndianNumber(t *testing.T) {
	assert.True(t, ParseIndianNumber("1,23,456.50").Equal(decimal.RequireFromString("123456.5")))
	assert.True(t, ParseIndianNumber("₹1,000").Equal(decimal.NewFromInt(1000)))
	assert.True(t, ParseIndianNumber("").IsZero())
	assert.True(t, ParseIndianNumber("abc").IsZero())
}
