package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	chathandler "github.com/sergiodev3/control-gastos-app/internal/chat/handler"
	"github.com/sergiodev3/control-gastos-app/internal/chat/service"
	"github.com/sergiodev3/control-gastos-app/internal/domain"
	"github.com/sergiodev3/control-gastos-app/internal/infra/observability"
)

// stubStore es un FinanceStore vacío: los tests de handler solo
// necesitan que el servicio responda, no que persista.
type stubStore struct{}

func (stubStore) CreateExpense(context.Context, string, *domain.ExpenseCreate) (*domain.Expense, error) {
	return &domain.Expense{ID: "e1"}, nil
}

func (stubStore) CreateIncome(context.Context, string, *domain.IncomeCreate) (*domain.Income, error) {
	return &domain.Income{ID: "i1"}, nil
}

func (stubStore) CreateSaving(context.Context, string, *domain.SavingCreate) (*domain.Saving, error) {
	return &domain.Saving{ID: "s1"}, nil
}

func (stubStore) ListExpenses(context.Context, string, int) ([]domain.Expense, error) {
	return nil, nil
}

func (stubStore) ListIncomes(context.Context, string, int) ([]domain.Income, error) {
	return nil, nil
}

func (stubStore) ListSavings(context.Context, string, int) ([]domain.Saving, error) {
	return nil, nil
}

func (stubStore) GetSummary(context.Context, string) (*domain.FinancialSummary, error) {
	return &domain.FinancialSummary{}, nil
}

func (stubStore) GetMonthlyReport(context.Context, string, int, int) (*domain.MonthlyReport, error) {
	return nil, nil
}

type stubAuth struct{}

func (stubAuth) Login(context.Context, string, string) (*domain.LoginResponse, error) {
	return &domain.LoginResponse{AccessToken: "tok"}, nil
}

type stubSessions struct{ tokens map[string]string }

func (s stubSessions) Get(id string) (string, bool) { t, ok := s.tokens[id]; return t, ok }
func (s stubSessions) Set(id, token string)         { s.tokens[id] = token }
func (s stubSessions) Delete(id string)             { delete(s.tokens, id) }

func newChatService() *service.ChatService {
	return service.NewChatService(
		stubStore{},
		stubAuth{},
		stubSessions{tokens: make(map[string]string)},
		observability.NewMetrics(),
		zap.NewNop(),
	)
}

func TestChatHandler_BadRequests(t *testing.T) {
	h := chathandler.ChatHandler(newChatService(), zap.NewNop())

	cases := []struct {
		name string
		body string
	}{
		{"body roto", "{not json"},
		{"sin session_id", `{"message": "hola"}`},
		{"sin message", `{"session_id": "s1"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestChatHandler_ReturnsReply(t *testing.T) {
	h := chathandler.ChatHandler(newChatService(), zap.NewNop())

	body := `{"session_id": "s1", "message": "/start"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !strings.Contains(resp.Reply, "Bienvenido a Control de Gastos") {
		t.Errorf("expected welcome reply, got %q", resp.Reply)
	}
}

func TestTelegramWebhook_RepliesWithSendMessage(t *testing.T) {
	h := chathandler.TelegramWebhookHandler(newChatService(), zap.NewNop())

	body := `{"update_id": 7, "message": {"message_id": 1, "text": "/ayuda", "chat": {"id": 12345}}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/webhook/telegram", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var reply struct {
		Method string `json:"method"`
		ChatID int64  `json:"chat_id"`
		Text   string `json:"text"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&reply); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if reply.Method != "sendMessage" {
		t.Errorf("expected sendMessage, got %q", reply.Method)
	}
	if reply.ChatID != 12345 {
		t.Errorf("expected chat_id 12345, got %d", reply.ChatID)
	}
	if !strings.Contains(reply.Text, "Ejemplos de uso") {
		t.Errorf("expected help text, got %q", reply.Text)
	}
}

func TestTelegramWebhook_IgnoresNonTextUpdates(t *testing.T) {
	h := chathandler.TelegramWebhookHandler(newChatService(), zap.NewNop())

	cases := []struct {
		name string
		body string
	}{
		{"sin mensaje", `{"update_id": 8}`},
		{"mensaje sin texto", `{"update_id": 9, "message": {"message_id": 2, "chat": {"id": 1}}}`},
		{"body roto", "not json"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/webhook/telegram", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("non-text updates must be acknowledged with 200, got %d", rec.Code)
			}
			if rec.Body.Len() != 0 {
				t.Errorf("expected empty body, got %q", rec.Body.String())
			}
		})
	}
}
