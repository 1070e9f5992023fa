// Package nlp — infer.go contiene los clasificadores de atributos por
// palabras clave: tipo de pago, recurrencia y dirección de ahorro.
//
// Todos trabajan por contención de subcadenas sobre el texto en
// minúsculas, no por tokens. Los falsos positivos por subcadenas son
// una limitación conocida y aceptada.
package nlp

import (
	"strings"

	"github.com/sergiodev3/control-gastos-app/internal/domain"
)

// paymentKeywords define los conjuntos de palabras clave por tipo de
// pago. El orden es significativo: el primer conjunto que coincide
// gana, y sin coincidencia el tipo por defecto es efectivo.
var paymentKeywords = []struct {
	method domain.PaymentMethod
	words  []string
}{
	{domain.PaymentCash, []string{"efectivo", "cash", "dinero"}},
	{domain.PaymentDebitCard, []string{"débito", "debito", "tarjeta de débito"}},
	{domain.PaymentCreditCard, []string{"crédito", "credito", "tarjeta de crédito", "tc"}},
	{domain.PaymentTransfer, []string{"transferencia", "transfer"}},
	{domain.PaymentPaypal, []string{"paypal"}},
}

// recurringKeywords denota periodicidad o términos de nómina.
var recurringKeywords = []string{"mensual", "recurrente", "sueldo", "salario", "nómina", "nomina"}

// withdrawalKeywords denota un retiro de ahorro. Sin coincidencia la
// dirección por defecto es depósito.
var withdrawalKeywords = []string{"retiro", "retirar", "sacar", "emergencia"}

// InferPaymentMethod infiere el tipo de pago del texto. Es una función
// total: para cualquier entrada devuelve uno de los seis valores del
// enum, nunca falla.
func InferPaymentMethod(text string) domain.PaymentMethod {
	lower := strings.ToLower(text)
	for _, set := range paymentKeywords {
		if containsAny(lower, set.words) {
			return set.method
		}
	}
	return domain.PaymentCash
}

// IsRecurring determina si un ingreso es recurrente.
func IsRecurring(text string) bool {
	return containsAny(strings.ToLower(text), recurringKeywords)
}

// InferSavingType determina si un movimiento de ahorro es depósito o
// retiro. Por defecto es depósito.
func InferSavingType(text string) domain.SavingType {
	if containsAny(strings.ToLower(text), withdrawalKeywords) {
		return domain.SavingWithdrawal
	}
	return domain.SavingDeposit
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
