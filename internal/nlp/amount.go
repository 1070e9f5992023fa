// Package nlp implementa el pipeline de interpretación de mensajes en
// lenguaje natural: extracción de montos, inferencia de atributos
// (tipo de pago, categoría, recurrencia, dirección de ahorro) y
// extracción de descripción/propósito.
//
// Todas las funciones son puras y sin estado compartido: cada mensaje
// entrante se procesa de forma independiente, sin locks.
package nlp

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrAmountNotFound se devuelve cuando el texto no contiene ningún
// monto interpretable. Es la única falla de extracción que bloquea la
// persistencia: el router la convierte en un mensaje de ayuda.
var ErrAmountNotFound = errors.New("no se encontró un monto en el texto")

// currencyMarkers son los marcadores de moneda que se eliminan antes
// de intentar interpretar el número: símbolo, nombre y código ISO.
var currencyMarkers = strings.NewReplacer("$", "", "pesos", "", "mxn", "")

// amountPattern localiza el primer token numérico del texto:
// dígitos con separador de miles opcional y decimales opcionales.
// Ejemplos que captura: "200", "1,500.50", "15000".
var amountPattern = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParseAmount extrae un monto monetario del texto.
//
// Primero intenta la interpretación de cadena completa: quita los
// marcadores de moneda y separadores de miles, y si lo que queda es un
// número, ese es el monto ("$1,500.50" → 1500.50). Esto cubre las
// respuestas que son solo un monto.
//
// Si el texto completo no se reduce a un número (monto incrustado en
// una oración: "gasté $200 en gasolina"), busca el primer token
// numérico y lo usa. Devuelve ErrAmountNotFound si no hay ninguno o si
// el monto no es estrictamente positivo.
func ParseAmount(text string) (decimal.Decimal, error) {
	stripped := strings.TrimSpace(currencyMarkers.Replace(strings.ToLower(text)))
	direct := strings.ReplaceAll(stripped, ",", "")

	if amount, err := decimal.NewFromString(direct); err == nil {
		return validateAmount(amount)
	}

	match := amountPattern.FindString(stripped)
	if match == "" {
		return decimal.Zero, ErrAmountNotFound
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(match, ",", ""))
	if err != nil {
		return decimal.Zero, ErrAmountNotFound
	}
	return validateAmount(amount)
}

// validateAmount aplica la invariante de monto estrictamente positivo.
func validateAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrAmountNotFound
	}
	return amount, nil
}
