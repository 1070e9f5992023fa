package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sergiodev3/control-gastos-app/internal/domain"
	"github.com/sergiodev3/control-gastos-app/internal/infra/client"
	"github.com/sergiodev3/control-gastos-app/internal/infra/resilience"
)

func newFinanceClient(baseURL string) *client.FinanceClient {
	cfg := resilience.Config{
		MaxRetries:     2,
		InitialBackoff: time.Millisecond,
		MaxConcurrency: 4,
	}
	httpClient := &http.Client{Timeout: 5 * time.Second}
	return client.NewFinanceClient(httpClient, baseURL, resilience.NewCircuitBreaker("test"), cfg)
}

func TestFinanceClient_UnauthorizedIsNotRetried(t *testing.T) {
	hits := 0
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer backend.Close()

	c := newFinanceClient(backend.URL)

	_, err := c.GetSummary(context.Background(), "stale-token")

	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if hits != 1 {
		t.Errorf("a 401 must not be retried, got %d attempts", hits)
	}
}

func TestFinanceClient_ValidationDetailSurfaces(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "amount must be positive"})
	}))
	defer backend.Close()

	c := newFinanceClient(backend.URL)

	_, err := c.CreateExpense(context.Background(), "tok", &domain.ExpenseCreate{
		Description: "en gasolina",
		Amount:      decimal.NewFromInt(200),
		PaymentType: domain.PaymentCash,
	})

	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if validation.Message != "amount must be positive" {
		t.Errorf("expected backend detail, got %q", validation.Message)
	}
}

func TestFinanceClient_IdempotencyKeyStableAcrossRetries(t *testing.T) {
	var keys []string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		// Primer intento falla; el reintento debe llegar con la misma clave.
		if len(keys) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Expense{ID: "exp-1"})
	}))
	defer backend.Close()

	c := newFinanceClient(backend.URL)

	expense, err := c.CreateExpense(context.Background(), "tok", &domain.ExpenseCreate{
		Description: "en gasolina",
		Amount:      decimal.NewFromInt(200),
		PaymentType: domain.PaymentCash,
	})
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if expense.ID != "exp-1" {
		t.Errorf("expected persisted expense, got %+v", expense)
	}

	if len(keys) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(keys))
	}
	if keys[0] == "" {
		t.Error("writes must carry an idempotency key")
	}
	if keys[0] != keys[1] {
		t.Errorf("retries must reuse the key, got %q then %q", keys[0], keys[1])
	}
}
