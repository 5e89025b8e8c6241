package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected float64
	}{
		{"millions with symbol", "$1.5M", 1500000},
		{"millions lowercase", "1m", 1000000},
		{"millions word", "2 million", 2000000},
		{"thousands", "500k", 500000},
		{"thousands word", "750 thousand", 750000},
		{"billions", "$1B", 1000000000},
		{"plain number string", "25000", 25000},
		{"with commas", "$1,500,000", 1500000},
		{"empty string", "", 0},
		{"no digits", "lots of money", 0},
		{"nil", nil, 0},
		{"numeric passthrough", 42, 42},
		{"float passthrough", float64(1234.5), 1234.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAmount(tt.input))
		})
	}
}

func TestParseTicketRange(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Range
	}{
		{"hyphen range", "$1M - $5M", Range{Min: 1000000, Max: 5000000}},
		{"compact range", "1-2m", Range{Min: 1, Max: 2000000}},
		{"en dash range", "$500K – $2M", Range{Min: 500000, Max: 2000000}},
		{"to range", "$1M to $3M", Range{Min: 1000000, Max: 3000000}},
		{"point estimate gets band", "$2M", Range{Min: 1600000, Max: 2400000}},
		{"point estimate thousands", "500k", Range{Min: 400000, Max: 600000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTicketRange(tt.input)
			assert.InDelta(t, tt.expected.Min, got.Min, 0.001)
			assert.InDelta(t, tt.expected.Max, got.Max, 0.001)
		})
	}
}

func TestParseTicketRangeEmpty(t *testing.T) {
	got := ParseTicketRange("")
	assert.Equal(t, float64(0), got.Min)
	assert.True(t, math.IsInf(got.Max, 1))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$1.5M", FormatAmount(1500000))
	assert.Equal(t, "$500K", FormatAmount(500000))
	assert.Equal(t, "$750", FormatAmount(750))
	assert.Equal(t, "$2.0M", FormatAmount(2000000))
}
