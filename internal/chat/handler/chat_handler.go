// Package handler — chat_handler.go implementa las rutas de entrada
// del bot: POST /v1/chat (canal genérico) y POST /v1/webhook/telegram
// (canal de Telegram).
//
// ============================================================
// DIFERENCIA ENTRE LOS DOS CANALES
// ============================================================
//
// POST /v1/chat               →  canal genérico (frontend, pruebas)
//   - Body: {"session_id": "...", "message": "..."}
//   - Respuesta: {"reply": "..."}
//
// POST /v1/webhook/telegram   →  webhook de Telegram
//   - Body: el Update JSON que envía la API de Telegram
//   - La sesión se deriva del chat id ("tg:12345")
//   - Respuesta: un sendMessage en el mismo POST (la API de Telegram
//     acepta responder al webhook con el método a ejecutar)
//
// Los handlers son finos: validan el body y delegan al ChatService.
// Toda la lógica (detección de intención, estrategias, backend) vive
// en la capa de servicio.
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/sergiodev3/control-gastos-app/internal/chat/domain"
	"github.com/sergiodev3/control-gastos-app/internal/chat/service"
)

// tracer es el tracer OpenTelemetry del módulo chat/handler.
var tracer = otel.Tracer("chat/handler")

// ============================================================
// ChatHandler — POST /v1/chat
// ============================================================

// ChatHandler devuelve el http.HandlerFunc de la ruta POST /v1/chat.
//
// Request:
//
//	Content-Type: application/json
//	Body: {"session_id": "web:abc", "message": "Gasté $200 en gasolina"}
//
// Response (200 OK):
//
//	{"reply": "✅ **Gasto registrado** ..."}
func ChatHandler(chatSvc *service.ChatService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/chat")
		defer span.End()

		var req domain.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: expected {\"session_id\": \"...\", \"message\": \"...\"}")
			return
		}
		if req.SessionID == "" {
			writeError(w, http.StatusBadRequest, "session_id is required")
			return
		}
		if req.Message == "" {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}
		span.SetAttributes(attribute.String("chat.session_id", req.SessionID))

		resp, err := chatSvc.ProcessMessage(ctx, req.SessionID, req.Message)
		if err != nil {
			logger.Error("unexpected error in chat handler", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// ============================================================
// TelegramWebhookHandler — POST /v1/webhook/telegram
// ============================================================

// telegramUpdate es el subconjunto del Update de la Bot API que el
// bot necesita: solo mensajes de texto.
type telegramUpdate struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		MessageID int64  `json:"message_id"`
		Text      string `json:"text"`
		Chat      struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// telegramReply es la respuesta al webhook: la Bot API ejecuta el
// método indicado en `method` con el resto de campos como parámetros.
type telegramReply struct {
	Method    string `json:"method"`
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// TelegramWebhookHandler devuelve el http.HandlerFunc del webhook de
// Telegram. La sesión del chat es el chat id con prefijo "tg:".
//
// Un Update sin mensaje de texto (fotos, stickers, ediciones) se
// confirma con 200 y body vacío para que Telegram no lo reintente.
func TelegramWebhookHandler(chatSvc *service.ChatService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/webhook/telegram")
		defer span.End()

		var update telegramUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			// Telegram reintenta ante cualquier no-2xx; un body roto
			// jamás va a mejorar, así que se confirma y se descarta.
			logger.Warn("malformed telegram update", zap.Error(err))
			w.WriteHeader(http.StatusOK)
			return
		}

		if update.Message == nil || update.Message.Text == "" {
			w.WriteHeader(http.StatusOK)
			return
		}

		sessionID := fmt.Sprintf("tg:%d", update.Message.Chat.ID)
		span.SetAttributes(
			attribute.String("chat.session_id", sessionID),
			attribute.Int64("telegram.update_id", update.UpdateID),
		)

		resp, err := chatSvc.ProcessMessage(ctx, sessionID, update.Message.Text)
		if err != nil {
			logger.Error("unexpected error in telegram webhook", zap.Error(err))
			w.WriteHeader(http.StatusOK)
			return
		}

		writeJSON(w, http.StatusOK, telegramReply{
			Method:    "sendMessage",
			ChatID:    update.Message.Chat.ID,
			Text:      resp.Reply,
			ParseMode: "Markdown",
		})
	}
}

// ============================================================
// Helpers
// ============================================================

// writeJSON serializa data como JSON y la escribe en la respuesta.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError escribe una respuesta de error estándar.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
