// Package domain — finance.go define los contratos JSON con el
// backend de Control de Gastos (/api/v1). Deben casar con los
// esquemas de respuesta de la API: /expenses, /incomes, /savings,
// /stats/summary y /stats/monthly/{año}/{mes}.
package domain

import "github.com/shopspring/decimal"

// ============================================================
// Gastos
// ============================================================

// ExpenseCreate es el payload de POST /expenses.
type ExpenseCreate struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType PaymentMethod   `json:"payment_type"`
	Category    *string         `json:"category,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	Date        string          `json:"date,omitempty"`
}

// Expense es un gasto ya persistido por el backend.
type Expense struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType PaymentMethod   `json:"payment_type"`
	Category    *string         `json:"category"`
	Notes       *string         `json:"notes"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// ============================================================
// Ingresos
// ============================================================

// IncomeCreate es el payload de POST /incomes.
type IncomeCreate struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Source      *string         `json:"source,omitempty"`
	IsRecurring bool            `json:"is_recurring"`
	Notes       *string         `json:"notes,omitempty"`
	Date        string          `json:"date,omitempty"`
}

// Income es un ingreso ya persistido por el backend.
type Income struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Source      *string         `json:"source"`
	IsRecurring bool            `json:"is_recurring"`
	Notes       *string         `json:"notes"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// ============================================================
// Ahorros
// ============================================================

// SavingCreate es el payload de POST /savings. TransactionType
// distingue depósito de retiro; Amount siempre positivo.
type SavingCreate struct {
	Amount          decimal.Decimal  `json:"amount"`
	TransactionType SavingType       `json:"transaction_type"`
	Purpose         string           `json:"purpose"`
	GoalAmount      *decimal.Decimal `json:"goal_amount,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	Date            string           `json:"date,omitempty"`
}

// Saving es un movimiento de ahorro ya persistido.
type Saving struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	Date            string           `json:"date"`
	Amount          decimal.Decimal  `json:"amount"`
	TransactionType SavingType       `json:"transaction_type"`
	Purpose         string           `json:"purpose"`
	GoalAmount      *decimal.Decimal `json:"goal_amount"`
	Notes           *string          `json:"notes"`
	CreatedAt       string           `json:"created_at"`
	UpdatedAt       string           `json:"updated_at"`
}

// ============================================================
// Estadísticas
// ============================================================

// FinancialSummary es la respuesta de GET /stats/summary.
// Balance = ingresos - gastos (los ahorros no se restan).
type FinancialSummary struct {
	TotalIncomes          decimal.Decimal            `json:"total_incomes"`
	TotalExpenses         decimal.Decimal            `json:"total_expenses"`
	TotalSavings          decimal.Decimal            `json:"total_savings"`
	Balance               decimal.Decimal            `json:"balance"`
	ExpensesByCategory    map[string]decimal.Decimal `json:"expenses_by_category"`
	ExpensesByPaymentType map[string]decimal.Decimal `json:"expenses_by_payment_type"`
}

// MonthlyReport es la respuesta de GET /stats/monthly/{año}/{mes}.
type MonthlyReport struct {
	Year          int                        `json:"year"`
	Month         int                        `json:"month"`
	TotalIncomes  decimal.Decimal            `json:"total_incomes"`
	TotalExpenses decimal.Decimal            `json:"total_expenses"`
	TotalSavings  decimal.Decimal            `json:"total_savings"`
	Balance       decimal.Decimal            `json:"balance"`
	ByCategory    map[string]decimal.Decimal `json:"expenses_by_category"`
}
