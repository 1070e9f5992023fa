// Package port — interfaces (ports) que el servicio de chat consume.
//
// Siguiendo la arquitectura hexagonal, los servicios dependen de estas
// interfaces y NO de los clientes concretos. Eso facilita las pruebas
// (mocks triviales) y el reemplazo de implementación.
package port

import (
	"context"

	"github.com/sergiodev3/control-gastos-app/internal/domain"
)

// FinanceStore es el colaborador de almacenamiento: el backend REST de
// Control de Gastos. Todas las llamadas llevan el token portador de la
// sesión; el bot solo lo reenvía, nunca lo valida.
type FinanceStore interface {
	CreateExpense(ctx context.Context, token string, req *domain.ExpenseCreate) (*domain.Expense, error)
	CreateIncome(ctx context.Context, token string, req *domain.IncomeCreate) (*domain.Income, error)
	CreateSaving(ctx context.Context, token string, req *domain.SavingCreate) (*domain.Saving, error)

	ListExpenses(ctx context.Context, token string, limit int) ([]domain.Expense, error)
	ListIncomes(ctx context.Context, token string, limit int) ([]domain.Income, error)
	ListSavings(ctx context.Context, token string, limit int) ([]domain.Saving, error)

	GetSummary(ctx context.Context, token string) (*domain.FinancialSummary, error)
	GetMonthlyReport(ctx context.Context, token string, year, month int) (*domain.MonthlyReport, error)
}

// Authenticator es el colaborador de autenticación: intercambia
// email+contraseña por un token portador.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResponse, error)
}

// SessionStore guarda el token portador por sesión de chat. Es el
// único estado mutable compartido del bot; cada sesión escribe
// únicamente su propia entrada.
type SessionStore interface {
	Get(sessionID string) (string, bool)
	Set(sessionID, token string)
	Delete(sessionID string)
}
