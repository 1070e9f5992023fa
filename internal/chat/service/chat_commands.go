// Package service — chat_commands.go implementa los comandos del bot.
//
// Los comandos (texto que empieza con "/") se despachan aparte de la
// tabla de intenciones: no hay extracción de datos, solo acciones de
// sesión y consultas directas.
//
// Comandos disponibles:
//
//	/start   — mensaje de bienvenida
//	/login   — inicia sesión: /login email contraseña
//	/logout  — cierra la sesión
//	/ayuda   — ejemplos de uso
//	/balance — balance rápido (resumen general)
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	chatdomain "github.com/sergiodev3/control-gastos-app/internal/chat/domain"
	finance "github.com/sergiodev3/control-gastos-app/internal/domain"
	"github.com/sergiodev3/control-gastos-app/internal/format"
)

const welcomeText = `🤖 **¡Bienvenido a Control de Gastos!**

Soy tu asistente financiero personal. Puedo ayudarte a:
💸 Registrar gastos
💵 Registrar ingresos
💰 Gestionar ahorros
📊 Consultar tu balance

**Para empezar:**
1. Envía ` + "`/login tu_email tu_contraseña`" + ` para autenticarte
2. Luego puedes enviar mensajes como:
   - "Gasté $200 en gasolina"
   - "¿Cómo van mis finanzas?"
   - "Registra un ingreso de $5000"

**Comandos disponibles:**
/start - Mostrar este mensaje
/login - Iniciar sesión
/logout - Cerrar sesión
/ayuda - Ver ejemplos de uso
/balance - Ver tu balance actual`

const helpText = `📚 **Ejemplos de uso:**

**Registrar gastos:**
• "Gasté $200 en gasolina"
• "Compré comida por $150 en efectivo"
• "$80 en el metro"
• "Pagué $500 de luz con tarjeta de débito"

**Registrar ingresos:**
• "Recibí mi salario de $15,000"
• "Ingreso de $2,500 por freelance"
• "Cobré $800"

**Gestionar ahorros:**
• "Ahorra $1,000 para el auto"
• "Retira $500 de emergencias"
• "Deposita $200 en vacaciones"

**Consultas:**
• "¿Cómo van mis finanzas?"
• "¿Cuál es mi balance?"
• "Muestra mis últimos gastos"
• "Dame un resumen"

💡 **Tip:** Escribe en lenguaje natural, el bot entenderá tu intención.`

const loginOKText = "✅ **Sesión iniciada correctamente**\n\n" +
	"Ahora puedes enviarme mensajes como:\n" +
	"• 'Gasté $50 en café'\n" +
	"• '¿Cuál es mi balance?'\n" +
	"• 'Ahorra $1000 para vacaciones'"

// handleCommand despacha un comando del bot. Un comando desconocido
// responde con una sugerencia, nunca con error.
func (s *ChatService) handleCommand(ctx context.Context, sessionID, text string) (*chatdomain.ChatResponse, error) {
	ctx, span := chatTracer.Start(ctx, "ChatService.handleCommand")
	defer span.End()

	fields := strings.Fields(text)
	command := strings.ToLower(fields[0])
	args := fields[1:]

	s.logger.Info("chat command received",
		zap.String("session_id", sessionID),
		zap.String("command", command),
	)

	var reply string
	switch command {
	case "/start":
		reply = welcomeText
	case "/ayuda":
		reply = helpText
	case "/login":
		reply = s.commandLogin(ctx, sessionID, args)
	case "/logout":
		reply = s.commandLogout(sessionID)
	case "/balance":
		reply = s.commandBalance(ctx, sessionID)
	default:
		reply = "❓ Comando no reconocido. Usa /ayuda para ver los comandos disponibles."
	}
	return &chatdomain.ChatResponse{Reply: reply}, nil
}

// commandLogin intercambia las credenciales por un token y lo guarda
// en el almacén de sesiones.
func (s *ChatService) commandLogin(ctx context.Context, sessionID string, args []string) string {
	if len(args) != 2 {
		return "❌ Uso: `/login tu_email tu_contraseña`"
	}
	email, password := args[0], args[1]

	resp, err := s.auth.Login(ctx, email, password)
	if err != nil {
		var unauthorized *finance.ErrUnauthorized
		if errors.As(err, &unauthorized) {
			s.logger.Warn("login rejected",
				zap.String("session_id", sessionID),
			)
			return "❌ Error al iniciar sesión. Verifica tu email y contraseña."
		}
		s.logger.Error("login call failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return replyBackendDown
	}

	s.sessions.Set(sessionID, resp.AccessToken)
	s.metrics.IncrSessionEvent("login")
	return loginOKText
}

// commandLogout descarta el token de la sesión si existía.
func (s *ChatService) commandLogout(sessionID string) string {
	if _, ok := s.sessions.Get(sessionID); !ok {
		return "No tenías una sesión activa"
	}
	s.sessions.Delete(sessionID)
	s.metrics.IncrSessionEvent("logout")
	return "✅ Sesión cerrada correctamente"
}

// commandBalance muestra el balance rápido de la sesión autenticada.
func (s *ChatService) commandBalance(ctx context.Context, sessionID string) string {
	token, ok := s.lookupSession(sessionID)
	if !ok {
		return "❌ Debes iniciar sesión primero con `/login`"
	}

	summary, err := s.store.GetSummary(ctx, token)
	if err != nil {
		return s.renderError(sessionID, finance.IntentSummary, err)
	}

	icon := "✅"
	if summary.Balance.IsNegative() {
		icon = "⚠️"
	}

	return fmt.Sprintf(`📊 **TU BALANCE**

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
}
