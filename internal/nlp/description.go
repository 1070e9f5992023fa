// Package nlp — description.go construye la etiqueta legible de una
// transacción a partir del residuo del mensaje.
//
// Para gastos e ingresos se eliminan las palabras disparadoras y el
// monto; para ahorros se extrae un propósito orientado a meta con
// reglas de patrón, porque "para el auto" es más útil como etiqueta
// que el residuo plano del mensaje.
package nlp

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// purposePatterns son las reglas ordenadas de extracción de propósito
// de ahorro. Gana la primera que captura.
var purposePatterns = []*regexp.Regexp{
	regexp.MustCompile(`para\s+(.+?)(?:\s+de\s+|$)`),
	regexp.MustCompile(`meta\s+(?:de\s+)?(.+?)(?:\s+|$)`),
	regexp.MustCompile(`ahorro\s+(?:para\s+)?(.+?)(?:\s+|$)`),
}

// whitespacePattern colapsa los huecos que deja la eliminación de
// palabras disparadoras.
var whitespacePattern = regexp.MustCompile(`\s+`)

// StripTriggers elimina del texto cada palabra disparadora, el monto
// detectado (en su forma cruda "1,500.50" y normalizada "1500.5") y el
// símbolo de moneda, y devuelve el residuo recortado.
//
// El residuo puede quedar vacío; el llamador debe sustituirlo por la
// etiqueta por defecto del canal ("Gasto desde el chat", etc.) para
// que la descripción nunca quede vacía.
func StripTriggers(text string, triggers []string, amount decimal.Decimal) string {
	residual := strings.ToLower(text)
	for _, trigger := range triggers {
		residual = strings.ReplaceAll(residual, trigger, "")
	}

	// El monto pudo escribirse con separador de miles o decimales de
	// más: se elimina el token numérico tal como aparece y también la
	// representación canónica.
	if raw := amountPattern.FindString(residual); raw != "" {
		residual = strings.Replace(residual, raw, "", 1)
	}
	residual = strings.ReplaceAll(residual, amount.String(), "")
	residual = strings.ReplaceAll(residual, "$", "")

	return strings.TrimSpace(whitespacePattern.ReplaceAllString(residual, " "))
}

// ExtractPurpose extrae el propósito/meta de ahorro del texto
// aplicando las reglas de patrón en orden y capitalizando la primera
// coincidencia. Sin coincidencias devuelve "Ahorro general".
func ExtractPurpose(text string) string {
	lower := strings.ToLower(text)
	for _, pattern := range purposePatterns {
		if match := pattern.FindStringSubmatch(lower); match != nil {
			if purpose := strings.TrimSpace(match[1]); purpose != "" {
				return capitalize(purpose)
			}
		}
	}
	return "Ahorro general"
}

func capitalize(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
