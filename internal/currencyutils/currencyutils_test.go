package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "123.45", expected: "123.45"},
		{name: "thousands separator", input: "1,234.56", expected: "1234.56"},
		{name: "shekel glyph", input: "₪150.00", expected: "150"},
		{name: "shekel abbreviation", input: `150 ש"ח`, expected: "150"},
		{name: "negative", input: "-42.50", expected: "-42.5"},
		{name: "negative with glyph", input: "₪ -42.50", expected: "-42.5"},
		{name: "embedded minus dropped", input: "42.50-", expected: "42.5"},
		{name: "empty returns zero", input: "", expected: "0"},
		{name: "garbage returns zero", input: "abc", expected: "0"},
		{name: "whitespace only", input: "   ", expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected, err := decimal.NewFromString(tt.expected)
			assert.NoError(t, err)
			assert.True(t, expected.Equal(ParseAmount(tt.input)),
				"got %s", ParseAmount(tt.input))
		})
	}
}

func TestTryParseAmount(t *testing.T) {
	_, ok := TryParseAmount("not a number")
	assert.False(t, ok)

	zero, ok := TryParseAmount("0.00")
	assert.True(t, ok, "literal zero must parse with ok=true")
	assert.True(t, zero.IsZero())

	_, ok = TryParseAmount("")
	assert.False(t, ok)
}

func TestTryParseMagnitude(t *testing.T) {
	m, ok := TryParseMagnitude("-1,250.75")
	assert.True(t, ok)
	assert.True(t, decimal.RequireFromString("1250.75").Equal(m))

	_, ok = TryParseMagnitude("יתרה")
	assert.False(t, ok)
}

func TestStandardize(t *testing.T) {
	assert.Equal(t, "1234.56", Standardize("₪1,234.56"))
	assert.Equal(t, "-99", Standardize("- 99"))
	assert.Equal(t, "", Standardize("₪"))
}
