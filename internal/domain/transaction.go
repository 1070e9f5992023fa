// Package domain — transaction.go define los tipos del pipeline de
// lenguaje natural: la transacción interpretada a partir de un mensaje
// y las enumeraciones cerradas que la acompañan.
//
// ============================================================
// CICLO DE VIDA DE UNA ParsedTransaction
// ============================================================
//
// Una ParsedTransaction se construye fresca por cada mensaje entrante,
// se entrega al backend de almacenamiento para persistirla y se
// descarta. No tiene identidad ni mutación posterior dentro del bot.
//
// Invariante: Amount siempre es estrictamente positivo. Para ahorros,
// la dirección (depósito/retiro) viaja como etiqueta de tipo de
// transacción, nunca como monto con signo.
package domain

import "github.com/shopspring/decimal"

// Intent es la categoría gruesa de acción a la que se enruta un
// mensaje de texto libre.
type Intent string

const (
	IntentExpense      Intent = "gasto"
	IntentIncome       Intent = "ingreso"
	IntentSaving       Intent = "ahorro"
	IntentSummary      Intent = "resumen"
	IntentListExpenses Intent = "ultimos_gastos"
	IntentUnknown      Intent = "desconocido"
)

// PaymentMethod es la enumeración cerrada de tipos de pago.
// Los valores coinciden con los que acepta la API de gastos.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "efectivo"
	PaymentDebitCard  PaymentMethod = "tarjeta_debito"
	PaymentCreditCard PaymentMethod = "tarjeta_credito"
	PaymentTransfer   PaymentMethod = "transferencia"
	PaymentPaypal     PaymentMethod = "paypal"
	PaymentOther      PaymentMethod = "otro"
)

// SavingType indica la dirección de un movimiento de ahorro.
// El monto almacenado siempre es positivo; el retiro es un débito
// solo por su etiqueta.
type SavingType string

const (
	SavingDeposit    SavingType = "deposito"
	SavingWithdrawal SavingType = "retiro"
)

// TransactionKind distingue qué clase de registro produjo el mensaje.
type TransactionKind string

const (
	KindExpense          TransactionKind = "expense"
	KindIncome           TransactionKind = "income"
	KindSavingDeposit    TransactionKind = "saving_deposit"
	KindSavingWithdrawal TransactionKind = "saving_withdrawal"
)

// SavingType traduce la clase de registro a la etiqueta de dirección
// que espera la API de ahorros. Solo tiene sentido para las clases de
// ahorro; cualquier otra se trata como depósito.
func (k TransactionKind) SavingType() SavingType {
	if k == KindSavingWithdrawal {
		return SavingWithdrawal
	}
	return SavingDeposit
}

// ParsedTransaction es el resultado estructurado del pipeline de
// extracción sobre un mensaje. Es efímera: existe solo durante el
// turno del mensaje que la originó.
type ParsedTransaction struct {
	Kind        TransactionKind
	Amount      decimal.Decimal
	Description string

	// Campos de gasto
	PaymentMethod PaymentMethod
	Category      *string // nil = sin categoría

	// Campos de ingreso
	IsRecurring bool

	// Campos de ahorro
	Purpose    string
	GoalAmount *decimal.Decimal
}

// ToExpenseCreate proyecta la transacción interpretada al payload de
// POST /expenses.
func (p *ParsedTransaction) ToExpenseCreate() *ExpenseCreate {
	return &ExpenseCreate{
		Description: p.Description,
		Amount:      p.Amount,
		PaymentType: p.PaymentMethod,
		Category:    p.Category,
	}
}

// ToIncomeCreate proyecta la transacción interpretada al payload de
// POST /incomes.
func (p *ParsedTransaction) ToIncomeCreate() *IncomeCreate {
	return &IncomeCreate{
		Description: p.Description,
		Amount:      p.Amount,
		IsRecurring: p.IsRecurring,
	}
}

// ToSavingCreate proyecta la transacción interpretada al payload de
// POST /savings. La dirección sale de la clase de registro.
func (p *ParsedTransaction) ToSavingCreate() *SavingCreate {
	return &SavingCreate{
		Amount:          p.Amount,
		TransactionType: p.Kind.SavingType(),
		Purpose:         p.Purpose,
		GoalAmount:      p.GoalAmount,
	}
}
