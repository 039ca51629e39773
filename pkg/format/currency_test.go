package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "Simple amount", amount: 5.00, expected: "$5.00"},
		{name: "Thousands separator", amount: 1234.56, expected: "$1,234.56"},
		{name: "Negative amount", amount: -1234.56, expected: "-$1,234.56"},
		{name: "Zero", amount: 0, expected: "$0.00"},
		{name: "Large amount", amount: 1000000, expected: "$1,000,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		expected string
	}{
		{name: "Six percent", rate: 0.06, expected: "6.00%"},
		{name: "Zero", rate: 0, expected: "0.00%"},
		{name: "Fractional", rate: 0.0425, expected: "4.25%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.rate); got != tt.expected {
				t.Errorf("Percent(%v) = %q, expected %q", tt.rate, got, tt.expected)
			}
		})
	}
}
