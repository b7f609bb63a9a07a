// Package currencyutils normalizes the amount formats found in shekel bank
// and card exports into decimal values.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var (
	// Currency glyphs, the shekel unit abbreviation and whitespace.
	glyphPattern   = regexp.MustCompile(`[₪€$£¥\s]|ש"ח|שח`)
	numericPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// ParseAmount converts an amount string to a decimal. It returns zero for
// anything it cannot parse; polarity conventions are the caller's job.
func ParseAmount(amountStr string) decimal.Decimal {
	amount, _ := TryParseAmount(amountStr)
	return amount
}

// TryParseAmount is ParseAmount with an explicit ok flag, for callers that
// must distinguish a genuine zero from a parse failure.
func TryParseAmount(amountStr string) (decimal.Decimal, bool) {
	standardized := Standardize(amountStr)
	if standardized == "" || !numericPattern.MatchString(standardized) {
		if strings.TrimSpace(amountStr) != "" {
			log.Debugf("unparseable amount %q", amountStr)
		}
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// TryParseMagnitude parses like TryParseAmount and returns the absolute
// value. Balance columns use it, where the sign is formatting noise.
func TryParseMagnitude(amountStr string) (decimal.Decimal, bool) {
	amount, ok := TryParseAmount(amountStr)
	if !ok {
		return decimal.Zero, false
	}
	return amount.Abs(), true
}

// Standardize strips currency glyphs, thousands separators and formatting
// noise, leaving a plain decimal string. A single leading minus is preserved;
// minus signs embedded mid-string by RTL formatting are dropped.
func Standardize(amountStr string) string {
	s := glyphPattern.ReplaceAllString(amountStr, "")
	s = strings.ReplaceAll(s, ",", "")

	negative := strings.HasPrefix(s, "-")
	s = strings.ReplaceAll(s, "-", "")
	if s == "" {
		return ""
	}
	if negative {
		s = "-" + s
	}
	return s
}
