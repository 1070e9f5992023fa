package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	chathandler "github.com/sergiodev3/control-gastos-app/internal/chat/handler"
	"github.com/sergiodev3/control-gastos-app/internal/chat/service"
	"github.com/sergiodev3/control-gastos-app/internal/infra/observability"
)

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(chatSvc *service.ChatService, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// 💬 Chat — canal genérico
		// POST /v1/chat
		// =============================================
		r.Post("/chat", chathandler.ChatHandler(chatSvc, logger))

		// =============================================
		// 🤖 Telegram — webhook de la Bot API
		// POST /v1/webhook/telegram
		// =============================================
		r.Post("/webhook/telegram", chathandler.TelegramWebhookHandler(chatSvc, logger))
	})

	return r
}

// healthzHandler reports process liveness. It does not call the
// backend: a broken collaborator degrades replies, not the process.
func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
