// Package service — chat_strategy_income.go implementa la estrategia
// de registro de ingresos.
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

// incomeTriggers son las palabras disparadoras que se eliminan del
// texto al construir la descripción del ingreso.
var incomeTriggers = []string{"recibí", "recibi", "cobré", "cobre", "ingreso"}

const defaultIncomeDescription = "Ingreso desde el chat"

// IncomeStrategy registra un ingreso extraído de un mensaje. Además
// del monto detecta si el ingreso es recurrente (sueldo, mensual...).
type IncomeStrategy struct {
	store   port.FinanceStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewIncomeStrategy crea la estrategia de ingresos.
func NewIncomeStrategy(store port.FinanceStore, metrics *observability.Metrics, logger *zap.Logger) *IncomeStrategy {
	return &IncomeStrategy{store: store, metrics: metrics, logger: logger}
}

// Handle extrae monto, recurrencia y descripción, persiste el ingreso
// y devuelve la confirmación.
func (s *IncomeStrategy) Handle(ctx context.Context, chatCtx *chatdomain.ChatContext) (string, error) {
	ctx, span := chatTracer.Start(ctx, "IncomeStrategy.Handle")
	defer span.End()

	amount, err := nlp.ParseAmount(chatCtx.Message)
	if err != nil {
		if errors.Is(err, nlp.ErrAmountNotFound) {
			s.metrics.IncrParseFailure("amount")
			return "❌ No pude detectar el monto. Ejemplo: 'Recibí $5000 de salario'", nil
		}
		return "", err
	}

	description := nlp.StripTriggers(chatCtx.Message, incomeTriggers, amount)
	if description == "" {
		description = defaultIncomeDescription
	}

	parsed := &finance.ParsedTransaction{
		Kind:        finance.KindIncome,
		Amount:      amount,
		Description: description,
		IsRecurring: nlp.IsRecurring(chatCtx.Message),
	}

	income, err := s.store.CreateIncome(ctx, chatCtx.Token, parsed.ToIncomeCreate())
	if err != nil {
		return "", err
	}

	s.logger.Info("income recorded",
		zap.String("session_id", chatCtx.SessionID),
		zap.String("income_id", income.ID),
		zap.String("amount", parsed.Amount.String()),
		zap.Bool("recurring", parsed.IsRecurring),
	)

	recurringText := "📅 Ingreso único"
	if parsed.IsRecurring {
		recurringText = "📅 Recurrente mensual"
	}

	return fmt.Sprintf(`✅ **Ingreso registrado**

💵 Monto: %s
📝 Descripción: %s
%s`,
		format.Currency(parsed.Amount),
		parsed.Description,
		recurringText,
	), nil
}
