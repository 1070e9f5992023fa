// Package client contains the HTTP clients for the collaborator
// services: the Control de Gastos REST backend (storage) and its auth
// endpoint. All calls go through the circuit breaker, retry with
// backoff, and the bulkhead; failures surface as typed domain errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/sergiodev3/control-gastos-app/internal/domain"
	"github.com/sergiodev3/control-gastos-app/internal/infra/resilience"
)

var tracer = otel.Tracer("infra/client")

// FinanceClient talks to the Control de Gastos backend (/api/v1).
// It implements port.FinanceStore. The bearer token is supplied per
// call — the client holds no credentials of its own.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string // ex: http://localhost:8000/api/v1
	cb         *gobreaker.CircuitBreaker
	bh         *resilience.Bulkhead
	cfg        resilience.Config
}

// NewFinanceClient creates the backend client. baseURL must include
// the /api/v1 prefix.
func NewFinanceClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config) *FinanceClient {
	return &FinanceClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		bh:         resilience.NewBulkhead(cfg.MaxConcurrency),
		cfg:        cfg,
	}
}

// CreateExpense persists a new expense.
func (c *FinanceClient) CreateExpense(ctx context.Context, token string, req *domain.ExpenseCreate) (*domain.Expense, error) {
	ctx, span := tracer.Start(ctx, "FinanceClient.CreateExpense")
	defer span.End()

	var out domain.Expense
	if err := c.do(ctx, http.MethodPost, "/expenses", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateIncome persists a new income.
func (c *FinanceClient) CreateIncome(ctx context.Context, token string, req *domain.IncomeCreate) (*domain.Income, error) {
	ctx, span := tracer.Start(ctx, "FinanceClient.CreateIncome")
	defer span.End()

	var out domain.Income
	if err := c.do(ctx, http.MethodPost, "/incomes", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSaving persists a new saving movement (deposit or withdrawal).
func (c *FinanceClient) CreateSaving(ctx context.Context, token string, req *domain.SavingCreate) (*domain.Saving, error) {
	ctx, span := tracer.Start(ctx, "FinanceClient.CreateSaving")
	defer span.End()

	var out domain.Saving
	if err := c.do(ctx, http.MethodPost, "/savings", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListExpenses fetches the most recent expenses.
func (c *FinanceClient) ListExpenses(ctx context.Context, token string, limit int) ([]domain.Expense, error) {
	ctx, span := tracer.Start(ctx, "FinanceClient.ListExpenses")
	defer span.End()
	span.SetAttributes(attribute.Int("limit", limit))

	var out []domain.Expense
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/expenses?limit=%d", limit), token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListIncomes fetches the most recent incomes.
func (c *FinanceClient) ListIncomes(ctx context.Context, token string, limit int) ([]domain.Income, error) {
	ctx, span := tracer.Start(ctx, "FinanceClient.ListIncomes")
	defer span.End()

	var out []domain.Income
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/incomes?limit=%d", limit), token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSavings fetches the most recent saving movements.
func (c *FinanceClient) ListSavings(ctx context.Context, token string, limit int) ([]domain.Saving, error) {
	ctx, span := tracer.Start(ctx, "FinanceClient.ListSavings")
	defer span.End()

	var out []domain.Saving
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/savings?limit=%d", limit), token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSummary fetches the overall financial summary.
func (c *FinanceClient) GetSummary(ctx context.Context, token string) (*domain.FinancialSummary, error) {
	ctx, span := tracer.Start(ctx, "FinanceClient.GetSummary")
	defer span.End()

	var out domain.FinancialSummary
	if err := c.do(ctx, http.MethodGet, "/stats/summary", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMonthlyReport fetches the report for a given month.
func (c *FinanceClient) GetMonthlyReport(ctx context.Context, token string, year, month int) (*domain.MonthlyReport, error) {
	ctx, span := tracer.Start(ctx, "FinanceClient.GetMonthlyReport")
	defer span.End()
	span.SetAttributes(attribute.Int("year", year), attribute.Int("month", month))

	var out domain.MonthlyReport
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/stats/monthly/%d/%d", year, month), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do runs one backend call with bulkhead, circuit breaker and retry.
// Client errors (401/404/422) are returned as typed domain errors and
// are not retried; everything else wraps into ErrExternalService.
//
// Writes carry an idempotency key generated once per operation, so a
// retried POST cannot double-register a transaction.
func (c *FinanceClient) do(ctx context.Context, method, path, token string, body, out any) error {
	if err := c.bh.Acquire(ctx); err != nil {
		return err
	}
	defer c.bh.Release()

	var idempotencyKey string
	if method != http.MethodGet {
		idempotencyKey = uuid.New().String()
	}

	_, err := c.cb.Execute(func() (any, error) {
		innerErr := resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			var reader io.Reader
			if body != nil {
				payload, err := json.Marshal(body)
				if err != nil {
					return resilience.Permanent(fmt.Errorf("marshal request: %w", err))
				}
				reader = bytes.NewReader(payload)
			}

			req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
			if err != nil {
				return resilience.Permanent(err)
			}
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")
			if idempotencyKey != "" {
				req.Header.Set("Idempotency-Key", idempotencyKey)
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			switch {
			case resp.StatusCode == http.StatusUnauthorized:
				return resilience.Permanent(&domain.ErrUnauthorized{Message: "token rechazado por el backend"})
			case resp.StatusCode == http.StatusNotFound:
				return resilience.Permanent(&domain.ErrNotFound{Resource: "recurso", ID: path})
			case resp.StatusCode == http.StatusUnprocessableEntity:
				return resilience.Permanent(&domain.ErrValidation{Field: path, Message: readErrorDetail(resp.Body)})
			case resp.StatusCode >= 300:
				return fmt.Errorf("backend %s %s returned status %d", method, path, resp.StatusCode)
			}

			if out == nil {
				return nil
			}
			return json.NewDecoder(resp.Body).Decode(out)
		})
		return nil, innerErr
	})

	if err != nil {
		return classifyError("finance-api", err)
	}
	return nil
}

// classifyError lets typed client errors pass through untouched and
// wraps everything else so the chat layer can render a generic reply.
func classifyError(service string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &domain.ErrCircuitOpen{Service: service}
	}

	var (
		unauthorized *domain.ErrUnauthorized
		notFound     *domain.ErrNotFound
		validation   *domain.ErrValidation
	)
	switch {
	case errors.As(err, &unauthorized), errors.As(err, &notFound), errors.As(err, &validation):
		return err
	}
	return &domain.ErrExternalService{Service: service, Err: err}
}

// readErrorDetail extracts FastAPI's {"detail": "..."} error body.
func readErrorDetail(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Detail == "" {
		return "payload rechazado"
	}
	return payload.Detail
}
