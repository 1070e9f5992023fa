package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	chatdomain "github.com/sergiodev3/control-gastos-app/internal/chat/domain"
	"github.com/sergiodev3/control-gastos-app/internal/chat/service"
	"github.com/sergiodev3/control-gastos-app/internal/domain"
	"github.com/sergiodev3/control-gastos-app/internal/handler"
	"github.com/sergiodev3/control-gastos-app/internal/infra/client"
	"github.com/sergiodev3/control-gastos-app/internal/infra/observability"
	"github.com/sergiodev3/control-gastos-app/internal/infra/resilience"
	"github.com/sergiodev3/control-gastos-app/internal/infra/sessions"
)

// newBackend levanta un backend simulado con los endpoints que usa el
// bot: login, gastos y resumen.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req domain.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Email != "ana@mail.com" || req.Password != "secreta" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(domain.LoginResponse{
			AccessToken: "tok-integration",
			TokenType:   "bearer",
			ExpiresIn:   3600,
		})
	})

	mux.HandleFunc("/expenses", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("Authorization") != "Bearer tok-integration" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req domain.ExpenseCreate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Expense{
			ID:          "exp-integration-1",
			Description: req.Description,
			Amount:      req.Amount,
			PaymentType: req.PaymentType,
			Category:    req.Category,
			Date:        "2026-08-30T12:00:00",
		})
	})

	mux.HandleFunc("/stats/summary", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("Authorization") != "Bearer tok-integration" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(domain.FinancialSummary{
			TotalIncomes:  decimal.NewFromInt(15000),
			TotalExpenses: decimal.NewFromInt(4200),
			TotalSavings:  decimal.NewFromInt(1000),
			Balance:       decimal.NewFromInt(10800),
		})
	})

	mux.HandleFunc("/stats/monthly/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		json.NewEncoder(w).Encode(domain.MonthlyReport{
			Year:          2026,
			Month:         8,
			TotalIncomes:  decimal.NewFromInt(5000),
			TotalExpenses: decimal.NewFromInt(1200),
		})
	})

	return httptest.NewServer(mux)
}

// newRouter arma el bot completo contra el backend simulado.
func newRouter(backendURL string) http.Handler {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cb := resilience.NewCircuitBreaker("test")
	cfg := resilience.Config{MaxRetries: 1, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10}
	httpClient := &http.Client{Timeout: 5 * time.Second}

	chatSvc := service.NewChatService(
		client.NewFinanceClient(httpClient, backendURL, cb, cfg),
		client.NewAuthClient(httpClient, backendURL),
		sessions.New(time.Hour),
		metrics,
		logger,
	)
	return handler.NewRouter(chatSvc, metrics, logger)
}

// send hace un POST /v1/chat y devuelve el reply.
func send(t *testing.T, router http.Handler, sessionID, message string) string {
	t.Helper()

	body, _ := json.Marshal(chatdomain.ChatRequest{SessionID: sessionID, Message: message})
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}

	var resp chatdomain.ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.Reply
}

// TestIntegration_FullFlow recorre el flujo completo: login por
// comando, registro de un gasto en lenguaje natural y consulta del
// resumen, todo contra un backend simulado.
func TestIntegration_FullFlow(t *testing.T) {
	backend := newBackend(t)
	defer backend.Close()

	router := newRouter(backend.URL)

	// Sin sesión: el bot pide login.
	reply := send(t, router, "s1", "Gasté $200 en gasolina")
	if !strings.Contains(reply, "Debes iniciar sesión") {
		t.Fatalf("expected login prompt, got %q", reply)
	}

	// Login por comando.
	reply = send(t, router, "s1", "/login ana@mail.com secreta")
	if !strings.Contains(reply, "Sesión iniciada correctamente") {
		t.Fatalf("expected login confirmation, got %q", reply)
	}

	// Registro de gasto en lenguaje natural.
	reply = send(t, router, "s1", "Gasté $200 en gasolina en efectivo")
	if !strings.Contains(reply, "Gasto registrado") {
		t.Fatalf("expected expense confirmation, got %q", reply)
	}
	if !strings.Contains(reply, "$200.00 MXN") {
		t.Errorf("expected formatted amount, got %q", reply)
	}
	if !strings.Contains(reply, "Transporte") {
		t.Errorf("expected inferred category, got %q", reply)
	}

	// Consulta del resumen.
	reply = send(t, router, "s1", "¿Cómo van mis finanzas?")
	if !strings.Contains(reply, "RESUMEN FINANCIERO") {
		t.Fatalf("expected summary, got %q", reply)
	}
	if !strings.Contains(reply, "$10,800.00 MXN") {
		t.Errorf("expected formatted balance, got %q", reply)
	}
}

// TestIntegration_LoginRejected verifica que un 401 del backend se
// traduce en un mensaje de credenciales y no guarda sesión.
func TestIntegration_LoginRejected(t *testing.T) {
	backend := newBackend(t)
	defer backend.Close()

	router := newRouter(backend.URL)

	reply := send(t, router, "s2", "/login ana@mail.com incorrecta")
	if !strings.Contains(reply, "Verifica tu email y contraseña") {
		t.Fatalf("expected rejection, got %q", reply)
	}

	// La sesión sigue sin token.
	reply = send(t, router, "s2", "Gasté $100 en comida")
	if !strings.Contains(reply, "Debes iniciar sesión") {
		t.Fatalf("expected login prompt, got %q", reply)
	}
}

// TestIntegration_BackendDown verifica que un backend caído degrada a
// un mensaje genérico sin tumbar el proceso.
func TestIntegration_BackendDown(t *testing.T) {
	backend := newBackend(t)
	router := newRouter(backend.URL)

	// Login antes de apagar el backend.
	send(t, router, "s3", "/login ana@mail.com secreta")
	backend.Close()

	reply := send(t, router, "s3", "Gasté $50 en café")
	if !strings.Contains(reply, "Error al conectar con el servidor") {
		t.Fatalf("expected degraded reply, got %q", reply)
	}
}
