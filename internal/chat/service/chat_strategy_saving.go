// Package service — chat_strategy_saving.go implementa la estrategia
// de movimientos de ahorro (depósitos y retiros).
//
// A diferencia de gastos e ingresos, la etiqueta de un ahorro es un
// PROPÓSITO orientado a meta ("El auto", "Vacaciones"), extraído con
// reglas de patrón en lugar del residuo del mensaje. El monto siempre
// se registra positivo; la dirección viaja como tipo de transacción.
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

// SavingStrategy registra un depósito o retiro de ahorro.
type SavingStrategy struct {
	store   port.FinanceStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewSavingStrategy crea la estrategia de ahorros.
func NewSavingStrategy(store port.FinanceStore, metrics *observability.Metrics, logger *zap.Logger) *SavingStrategy {
	return &SavingStrategy{store: store, metrics: metrics, logger: logger}
}

// Handle extrae monto, dirección y propósito, persiste el movimiento
// y devuelve la confirmación.
func (s *SavingStrategy) Handle(ctx context.Context, chatCtx *chatdomain.ChatContext) (string, error) {
	ctx, span := chatTracer.Start(ctx, "SavingStrategy.Handle")
	defer span.End()

	amount, err := nlp.ParseAmount(chatCtx.Message)
	if err != nil {
		if errors.Is(err, nlp.ErrAmountNotFound) {
			s.metrics.IncrParseFailure("amount")
			return "❌ No pude detectar el monto. Ejemplo: 'Ahorra $1000 para vacaciones'", nil
		}
		return "", err
	}

	kind := finance.KindSavingDeposit
	if nlp.InferSavingType(chatCtx.Message) == finance.SavingWithdrawal {
		kind = finance.KindSavingWithdrawal
	}

	parsed := &finance.ParsedTransaction{
		Kind:    kind,
		Amount:  amount,
		Purpose: nlp.ExtractPurpose(chatCtx.Message),
	}

	saving, err := s.store.CreateSaving(ctx, chatCtx.Token, parsed.ToSavingCreate())
	if err != nil {
		return "", err
	}

	s.logger.Info("saving recorded",
		zap.String("session_id", chatCtx.SessionID),
		zap.String("saving_id", saving.ID),
		zap.String("amount", parsed.Amount.String()),
		zap.String("type", string(parsed.Kind.SavingType())),
	)

	action := "💰 Depósito"
	if parsed.Kind == finance.KindSavingWithdrawal {
		action = "💸 Retiro"
	}

	return fmt.Sprintf(`✅ **%s registrado**

💵 Monto: %s
🎯 Propósito: %s`,
		action,
		format.Currency(parsed.Amount),
		parsed.Purpose,
	), nil
}
