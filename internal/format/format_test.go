package format_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sergiodev3/control-gastos-app/internal/format"
)

func TestCurrency(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"1234.5", "$1,234.50 MXN"},
		{"200", "$200.00 MXN"},
		{"15000", "$15,000.00 MXN"},
		{"99.9", "$99.90 MXN"},
		{"0.5", "$0.50 MXN"},
		{"-350.25", "-$350.25 MXN"},
	}

	for _, tc := range cases {
		amount := decimal.RequireFromString(tc.amount)
		if got := format.Currency(amount); got != tc.want {
			t.Errorf("Currency(%s) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestDate(t *testing.T) {
	cases := []struct {
		name string
		iso  string
		want string
	}{
		{"rfc3339", "2026-03-15T10:30:00Z", "15/03/2026"},
		{"fastapi sin zona", "2026-03-15T10:30:00.123456", "15/03/2026"},
		{"sin fracción", "2026-03-15T10:30:00", "15/03/2026"},
		{"solo fecha", "2026-03-15", "15/03/2026"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := format.Date(tc.iso); got != tc.want {
				t.Errorf("Date(%q) = %q, want %q", tc.iso, got, tc.want)
			}
		})
	}
}

func TestDate_UnparseableReturnsInput(t *testing.T) {
	for _, iso := range []string{"mañana", "15-03-2026", ""} {
		if got := format.Date(iso); got != iso {
			t.Errorf("Date(%q) = %q, want the input unchanged", iso, got)
		}
	}
}
