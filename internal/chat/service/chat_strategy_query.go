// Package service — chat_strategy_query.go implementa las estrategias
// de consulta: resumen financiero y últimos gastos.
//
// Las consultas no extraen datos del mensaje: el texto solo sirvió
// para enrutar. El resumen combina dos llamadas al backend (totales
// generales y reporte del mes en curso) ejecutadas en paralelo; el
// reporte mensual es opcional y su fallo no tumba la respuesta.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	chatdomain "github.com/sergiodev3/control-gastos-app/internal/chat/domain"
	finance "github.com/sergiodev3/control-gastos-app/internal/domain"
	"github.com/sergiodev3/control-gastos-app/internal/format"
	"github.com/sergiodev3/control-gastos-app/internal/port"
)

// recentExpensesLimit es la cantidad de gastos que muestra la lista.
const recentExpensesLimit = 5

// ============================================================
// SummaryStrategy — resumen financiero
// ============================================================

// SummaryStrategy responde "¿cómo van mis finanzas?" con los totales
// generales y el detalle del mes en curso.
type SummaryStrategy struct {
	store  port.FinanceStore
	logger *zap.Logger
	now    func() time.Time
}

// NewSummaryStrategy crea la estrategia de resumen.
func NewSummaryStrategy(store port.FinanceStore, logger *zap.Logger) *SummaryStrategy {
	return &SummaryStrategy{store: store, logger: logger, now: time.Now}
}

// Handle consulta resumen y reporte mensual en paralelo y arma la
// respuesta. Si el reporte mensual falla se omite esa sección.
func (s *SummaryStrategy) Handle(ctx context.Context, chatCtx *chatdomain.ChatContext) (string, error) {
	ctx, span := chatTracer.Start(ctx, "SummaryStrategy.Handle")
	defer span.End()

	var (
		summary *finance.FinancialSummary
		monthly *finance.MonthlyReport
	)

	today := s.now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.store.GetSummary(gctx, chatCtx.Token)
		return err
	})
	g.Go(func() error {
		report, err := s.store.GetMonthlyReport(gctx, chatCtx.Token, today.Year(), int(today.Month()))
		if err != nil {
			// Sección opcional: se registra y se sigue sin ella.
			s.logger.Warn("monthly report unavailable",
				zap.String("session_id", chatCtx.SessionID),
				zap.Error(err),
			)
			return nil
		}
		monthly = report
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	icon := "✅"
	if summary.Balance.IsNegative() {
		icon = "⚠️"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `📊 **RESUMEN FINANCIERO**

%s Balance: %s

💵 Ingresos: %s
💸 Gastos: %s
💰 Ahorros: %s`,
		icon,
		format.Currency(summary.Balance),
		format.Currency(summary.TotalIncomes),
		format.Currency(summary.TotalExpenses),
		format.Currency(summary.TotalSavings),
	)

	if monthly != nil {
		fmt.Fprintf(&b, `

📅 **Este mes (%02d/%d):**
💵 Ingresos: %s
💸 Gastos: %s`,
			monthly.Month,
			monthly.Year,
			format.Currency(monthly.TotalIncomes),
			format.Currency(monthly.TotalExpenses),
		)
	}

	return b.String(), nil
}

// ============================================================
// ListExpensesStrategy — últimos gastos
// ============================================================

// ListExpensesStrategy responde con la lista de gastos más recientes.
type ListExpensesStrategy struct {
	store  port.FinanceStore
	logger *zap.Logger
}

// NewListExpensesStrategy crea la estrategia de listado.
func NewListExpensesStrategy(store port.FinanceStore, logger *zap.Logger) *ListExpensesStrategy {
	return &ListExpensesStrategy{store: store, logger: logger}
}

// Handle lista los últimos gastos con monto, descripción y fecha.
func (s *ListExpensesStrategy) Handle(ctx context.Context, chatCtx *chatdomain.ChatContext) (string, error) {
	ctx, span := chatTracer.Start(ctx, "ListExpensesStrategy.Handle")
	defer span.End()

	expenses, err := s.store.ListExpenses(ctx, chatCtx.Token, recentExpensesLimit)
	if err != nil {
		return "", err
	}

	if len(expenses) == 0 {
		return "📋 No tienes gastos registrados aún.", nil
	}

	var b strings.Builder
	b.WriteString("📋 **Tus últimos gastos:**\n\n")
	for _, exp := range expenses {
		fmt.Fprintf(&b, "💸 %s - %s (%s)\n",
			format.Currency(exp.Amount),
			exp.Description,
			format.Date(exp.Date),
		)
	}
	return b.String(), nil
}
