// Package money parses and formats the loose currency expressions found in
// startup and investor profiles ("$1M", "500k", "1-2m", "$1M - $5M").
package money

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numberPattern = regexp.MustCompile(`[\d.]+`)

// Range is an inclusive investment band in dollars.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ParseAmount converts a currency expression to dollars. Numeric input
// passes through unchanged. Malformed input degrades to 0 rather than
// erroring; these values feed advisory scoring, not accounting.
func ParseAmount(value interface{}) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return parseAmountString(v)
	default:
		return 0
	}
}

func parseAmountString(value string) float64 {
	if value == "" {
		return 0
	}

	str := strings.ToLower(value)
	str = strings.ReplaceAll(str, ",", "")
	str = strings.Join(strings.Fields(str), "")

	numeric := numberPattern.FindString(str)
	if numeric == "" {
		return 0
	}

	amount, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return 0
	}

	if strings.Contains(str, "m") {
		amount *= 1_000_000
	} else if strings.Contains(str, "k") || strings.Contains(str, "thousand") {
		amount *= 1_000
	} else if strings.Contains(str, "b") {
		amount *= 1_000_000_000
	}

	return amount
}

// ParseTicketRange parses a range expression like "$1M - $5M". A single
// point estimate yields a synthetic ±20% band, since point comparison
// against a lone ticket value would be too strict.
func ParseTicketRange(rangeStr string) Range {
	if strings.TrimSpace(rangeStr) == "" {
		return Range{Min: 0, Max: math.Inf(1)}
	}

	parts := splitRange(strings.ToLower(rangeStr))
	if len(parts) == 2 {
		return Range{
			Min: parseAmountString(parts[0]),
			Max: parseAmountString(parts[1]),
		}
	}

	amount := parseAmountString(parts[0])
	return Range{
		Min: amount * 0.8,
		Max: amount * 1.2,
	}
}

// splitRange splits on "-", "–" or a standalone "to" token.
func splitRange(s string) []string {
	for _, sep := range []string{"-", "–", " to "} {
		if strings.Contains(s, sep) {
			parts := strings.SplitN(s, sep, 2)
			if len(parts) == 2 && strings.TrimSpace(parts[0]) != "" && strings.TrimSpace(parts[1]) != "" {
				return parts
			}
		}
	}
	return []string{s}
}

// FormatAmount renders a dollar amount for explanation strings.
func FormatAmount(amount float64) string {
	if amount >= 1_000_000 {
		return "$" + strconv.FormatFloat(amount/1_000_000, 'f', 1, 64) + "M"
	}
	if amount >= 1_000 {
		return "$" + strconv.FormatFloat(amount/1_000, 'f', 0, 64) + "K"
	}
	return "$" + strconv.FormatFloat(amount, 'f', -1, 64)
}
