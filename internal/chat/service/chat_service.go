// Package service — chat_service.go implementa el ChatService.
//
// ============================================================
// ARQUITECTURA — Tabla de rutas para despacho por intención
// ============================================================
//
// El ChatService es el orquestador central del bot. Recibe el texto
// del usuario, detecta la intención y delega en la estrategia
// correspondiente.
//
// Flujo completo:
//  1. El handler recibe POST /v1/chat (o el webhook de Telegram)
//  2. Se llama a ChatService.ProcessMessage()
//  3. Si el texto empieza con "/" se trata como comando
//  4. Si no, se recorre la tabla de rutas en orden: la primera cuyo
//     conjunto de palabras clave coincide gana
//  5. Se verifica la sesión y se delega en la estrategia con el token
//  6. La estrategia extrae los datos, llama al backend y arma la
//     respuesta
//  7. Cualquier error se convierte en un mensaje legible; el usuario
//     nunca ve un error crudo
//
// La prioridad de las intenciones es un dato explícito (el orden de
// la tabla), no un efecto colateral del orden del código. Un mensaje
// que coincide con varios grupos resuelve siempre al primero.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	chatdomain "github.com/sergiodev3/control-gastos-app/internal/chat/domain"
	finance "github.com/sergiodev3/control-gastos-app/internal/domain"
	"github.com/sergiodev3/control-gastos-app/internal/infra/observability"
	"github.com/sergiodev3/control-gastos-app/internal/port"
)

// chatTracer es el tracer OpenTelemetry del módulo de chat.
var chatTracer = otel.Tracer("chat/service")

// Respuestas fijas que no dependen de ninguna estrategia.
const (
	replyLoginRequired = "❌ Debes iniciar sesión primero con `/login email password`"

	replySessionExpired = "❌ Tu sesión expiró. Vuelve a autenticarte con `/login email password`"

	replyBackendDown = "❌ Error al conectar con el servidor. Intenta más tarde."

	replyUnknown = `❓ No entendí tu mensaje. Intenta con:
• "Gasté $200 en gasolina"
• "¿Cuál es mi balance?"
• "Recibí $5000 de salario"

Usa /ayuda para ver más ejemplos.`
)

// ============================================================
// ChatStrategy — interfaz que cada intención implementa
// ============================================================

// ChatStrategy define el contrato de una estrategia de procesamiento.
// Cada intención (gasto, ingreso, ahorro, consulta) implementa la suya.
//
// Handle recibe el ChatContext ya autenticado y devuelve la respuesta
// en texto. Un error devuelto aquí nunca llega crudo al usuario: el
// ChatService lo traduce a un mensaje legible.
type ChatStrategy interface {
	Handle(ctx context.Context, chatCtx *chatdomain.ChatContext) (string, error)
}

// route es una entrada de la tabla de despacho: si alguna de las
// palabras clave aparece en el texto, la estrategia procesa el
// mensaje. El orden de la tabla ES la prioridad.
type route struct {
	intent   finance.Intent
	keywords []string
	handler  ChatStrategy
}

// ============================================================
// ChatService — orquestador con tabla de rutas
// ============================================================

// ChatService es el servicio principal del bot de chat.
type ChatService struct {
	store    port.FinanceStore
	auth     port.Authenticator
	sessions port.SessionStore
	routes   []route
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewChatService crea el ChatService con las dependencias inyectadas.
//
// El orden de las estrategias en la tabla de rutas replica la
// prioridad del clasificador: gasto → ingreso → ahorro → resumen →
// últimos gastos.
func NewChatService(
	store port.FinanceStore,
	auth port.Authenticator,
	sessions port.SessionStore,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ChatService {
	s := &ChatService{
		store:    store,
		auth:     auth,
		sessions: sessions,
		metrics:  metrics,
		logger:   logger,
	}

	s.routes = []route{
		{
			intent:   finance.IntentExpense,
			keywords: []string{"gast", "compré", "pagué", "compr"},
			handler:  NewExpenseStrategy(store, metrics, logger),
		},
		{
			intent:   finance.IntentIncome,
			keywords: []string{"ingreso", "recib", "cobr", "salario", "sueldo"},
			handler:  NewIncomeStrategy(store, metrics, logger),
		},
		{
			intent:   finance.IntentSaving,
			keywords: []string{"ahorro", "ahorra", "deposita", "retira", "retiro"},
			handler:  NewSavingStrategy(store, metrics, logger),
		},
		{
			intent:   finance.IntentSummary,
			keywords: []string{"balance", "finanzas", "resumen", "cómo van", "como van"},
			handler:  NewSummaryStrategy(store, logger),
		},
		{
			intent:   finance.IntentListExpenses,
			keywords: []string{"últimos gastos", "ultimos gastos", "gastos recientes", "mis gastos"},
			handler:  NewListExpensesStrategy(store, logger),
		},
	}

	return s
}

// ProcessMessage es el punto de entrada principal del chat.
//
// Siempre devuelve una respuesta legible para el usuario; los errores
// de los colaboradores se traducen aquí. El error de retorno queda
// reservado para fallos del propio canal (p. ej. contexto cancelado).
func (s *ChatService) ProcessMessage(ctx context.Context, sessionID, message string) (*chatdomain.ChatResponse, error) {
	ctx, span := chatTracer.Start(ctx, "ChatService.ProcessMessage")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("process_message", time.Since(start))
	}()

	text := strings.TrimSpace(message)

	// Los comandos tienen su propio despacho, sin pasar por la tabla.
	if strings.HasPrefix(text, "/") {
		return s.handleCommand(ctx, sessionID, text)
	}

	matched := s.detectRoute(text)

	intent := finance.IntentUnknown
	if matched != nil {
		intent = matched.intent
	}
	s.metrics.IncrMessage(string(intent))

	s.logger.Info("chat message received",
		zap.String("session_id", sessionID),
		zap.String("intent", string(intent)),
		zap.Int("message_length", len(text)),
	)

	if matched == nil {
		return &chatdomain.ChatResponse{Reply: replyUnknown}, nil
	}

	// Toda intención reconocida requiere sesión: el token viaja
	// explícito en el contexto, las estrategias no tocan el almacén.
	token, ok := s.lookupSession(sessionID)
	if !ok {
		return &chatdomain.ChatResponse{Reply: replyLoginRequired}, nil
	}

	chatCtx := &chatdomain.ChatContext{
		SessionID: sessionID,
		Token:     token,
		Message:   text,
		Intent:    intent,
	}

	reply, err := matched.handler.Handle(ctx, chatCtx)
	if err != nil {
		return &chatdomain.ChatResponse{Reply: s.renderError(sessionID, intent, err)}, nil
	}
	return &chatdomain.ChatResponse{Reply: reply}, nil
}

// lookupSession consulta el almacén de sesiones y contabiliza el
// resultado en las métricas de caché.
func (s *ChatService) lookupSession(sessionID string) (string, bool) {
	token, ok := s.sessions.Get(sessionID)
	if ok {
		s.metrics.IncrCacheHit()
	} else {
		s.metrics.IncrCacheMiss()
	}
	return token, ok
}

// detectRoute recorre la tabla en orden y devuelve la primera ruta
// cuyas palabras clave aparecen en el texto. nil si ninguna coincide.
//
// La comparación es por contención de subcadenas sobre el texto en
// minúsculas, igual que el resto de clasificadores.
func (s *ChatService) detectRoute(text string) *route {
	lower := strings.ToLower(text)
	for i := range s.routes {
		for _, kw := range s.routes[i].keywords {
			if strings.Contains(lower, kw) {
				return &s.routes[i]
			}
		}
	}
	return nil
}

// renderError traduce un error de estrategia a un mensaje de chat.
// Un 401 del backend además invalida la sesión local para que el
// siguiente mensaje pida login de nuevo.
func (s *ChatService) renderError(sessionID string, intent finance.Intent, err error) string {
	var unauthorized *finance.ErrUnauthorized
	if errors.As(err, &unauthorized) {
		s.sessions.Delete(sessionID)
		s.metrics.IncrSessionEvent("expired")
		s.logger.Warn("session token rejected",
			zap.String("session_id", sessionID),
		)
		return replySessionExpired
	}

	var circuitOpen *finance.ErrCircuitOpen
	var external *finance.ErrExternalService
	switch {
	case errors.As(err, &circuitOpen):
		s.metrics.IncrExternalError(circuitOpen.Service)
	case errors.As(err, &external):
		s.metrics.IncrExternalError(external.Service)
	default:
		s.metrics.IncrExternalError("finance-api")
	}

	s.logger.Error("strategy call failed",
		zap.String("session_id", sessionID),
		zap.String("intent", string(intent)),
		zap.Error(err),
	)
	return replyBackendDown
}
