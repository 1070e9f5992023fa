package nlp_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sergiodev3/control-gastos-app/internal/nlp"
)

func TestStripTriggers(t *testing.T) {
	triggers := []string{"gasté", "gaste", "compré", "compre", "pagué", "pague"}

	cases := []struct {
		name   string
		text   string
		amount string
		want   string
	}{
		{"gasto simple", "Gasté $200 en gasolina", "200", "en gasolina"},
		{"con tipo de pago", "Pagué $500 de luz con tarjeta de débito", "500", "de luz con tarjeta de débito"},
		{"monto con miles", "Compré muebles por $1,500.50", "1500.5", "muebles por"},
		{"solo monto", "$200", "200", ""},
		{"solo disparador y monto", "gasté 200", "200", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			if got := nlp.StripTriggers(tc.text, triggers, amount); got != tc.want {
				t.Errorf("StripTriggers(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestExtractPurpose(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"ahorra $1000 para vacaciones", "Vacaciones"},
		{"ahorra $1,000 para el auto", "El auto"},
		{"retira $500 de emergencias", "Ahorro general"},
		{"guardar con meta de viaje", "Viaje"},
		{"sin propósito alguno", "Ahorro general"},
		{"", "Ahorro general"},
	}

	for _, tc := range cases {
		if got := nlp.ExtractPurpose(tc.text); got != tc.want {
			t.Errorf("ExtractPurpose(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}
