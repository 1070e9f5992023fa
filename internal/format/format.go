// Package format renderiza valores para las respuestas del chat.
//
// El formateo es de mejor esfuerzo y nunca falla: una fecha que no se
// puede interpretar se devuelve tal cual. Esto es intencional — la
// respuesta es un mensaje de chat, no una API validada, y degradar al
// valor crudo es mejor que no responder.
package format

import (
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// dateLayouts son los formatos de fecha que emite el backend, en orden
// de preferencia. FastAPI serializa datetimes sin zona; el resto son
// variantes RFC 3339.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Currency formatea un monto como moneda mexicana con dos decimales y
// separador de miles: 1234.5 → "$1,234.50 MXN".
func Currency(amount decimal.Decimal) string {
	cents := amount.Shift(2).Round(0).IntPart()
	return money.New(cents, money.MXN).Display() + " MXN"
}

// Date formatea una fecha ISO para mostrarla como dd/mm/aaaa. Si la
// cadena no se puede interpretar devuelve la entrada sin modificar.
func Date(iso string) string {
	candidate := strings.TrimSuffix(iso, "Z")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("02/01/2006")
		}
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return iso
}
