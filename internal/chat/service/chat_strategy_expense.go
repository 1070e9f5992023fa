// Package service — chat_strategy_expense.go implementa la estrategia
// de registro de gastos.
//
// ============================================================
// PIPELINE DE UN GASTO
// ============================================================
//
// "Pagué $500 de luz con tarjeta de débito" se convierte en:
//
//	monto        → 500           (extractor de montos)
//	tipo de pago → tarjeta_debito (clasificador de palabras clave)
//	categoría    → Servicios      (tabla ordenada de categorías)
//	descripción  → "de luz con tarjeta de débito" (residuo del texto)
//
// El único dato obligatorio es el monto: si no se encuentra, la
// estrategia responde con un ejemplo de uso y no persiste nada. Todo
// lo demás tiene un valor por defecto.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	chatdomain "github.com/sergiodev3/control-gastos-app/internal/chat/domain"
	finance "github.com/sergiodev3/control-gastos-app/internal/domain"
	"github.com/sergiodev3/control-gastos-app/internal/format"
	"github.com/sergiodev3/control-gastos-app/internal/infra/observability"
	"github.com/sergiodev3/control-gastos-app/internal/nlp"
	"github.com/sergiodev3/control-gastos-app/internal/port"
)

// expenseTriggers son las palabras disparadoras que se eliminan del
// texto al construir la descripción del gasto.
var expenseTriggers = []string{"gasté", "gaste", "compré", "compre", "pagué", "pague"}

// defaultExpenseDescription se usa cuando el residuo queda vacío.
const defaultExpenseDescription = "Gasto desde el chat"

// ExpenseStrategy registra un gasto extraído de un mensaje.
type ExpenseStrategy struct {
	store   port.FinanceStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewExpenseStrategy crea la estrategia de gastos.
func NewExpenseStrategy(store port.FinanceStore, metrics *observability.Metrics, logger *zap.Logger) *ExpenseStrategy {
	return &ExpenseStrategy{store: store, metrics: metrics, logger: logger}
}

// Handle extrae monto, tipo de pago, categoría y descripción del
// mensaje, persiste el gasto y devuelve la confirmación.
func (s *ExpenseStrategy) Handle(ctx context.Context, chatCtx *chatdomain.ChatContext) (string, error) {
	ctx, span := chatTracer.Start(ctx, "ExpenseStrategy.Handle")
	defer span.End()

	amount, err := nlp.ParseAmount(chatCtx.Message)
	if err != nil {
		if errors.Is(err, nlp.ErrAmountNotFound) {
			s.metrics.IncrParseFailure("amount")
			return "❌ No pude detectar el monto. Ejemplo: 'Gasté $200 en gasolina'", nil
		}
		return "", err
	}

	description := nlp.StripTriggers(chatCtx.Message, expenseTriggers, amount)
	if description == "" {
		description = defaultExpenseDescription
	}

	parsed := &finance.ParsedTransaction{
		Kind:          finance.KindExpense,
		Amount:        amount,
		Description:   description,
		PaymentMethod: nlp.InferPaymentMethod(chatCtx.Message),
		Category:      nlp.InferCategory(chatCtx.Message),
	}

	expense, err := s.store.CreateExpense(ctx, chatCtx.Token, parsed.ToExpenseCreate())
	if err != nil {
		return "", err
	}

	s.logger.Info("expense recorded",
		zap.String("session_id", chatCtx.SessionID),
		zap.String("expense_id", expense.ID),
		zap.String("amount", amount.String()),
	)

	categoryLabel := "Sin categoría"
	if parsed.Category != nil {
		categoryLabel = *parsed.Category
	}

	return fmt.Sprintf(`✅ **Gasto registrado**

💰 Monto: %s
📝 Descripción: %s
💳 Tipo de pago: %s
📂 Categoría: %s`,
		format.Currency(parsed.Amount),
		parsed.Description,
		parsed.PaymentMethod,
		categoryLabel,
	), nil
}
