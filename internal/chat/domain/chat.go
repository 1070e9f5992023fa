// Package domain — chat.go define los tipos de la capa de canal.
//
// El flujo completo de un mensaje:
//  1. Un canal (POST /v1/chat o el webhook de Telegram) entrega el
//     texto crudo y un identificador de sesión.
//  2. El ChatService detecta la intención y delega en la estrategia
//     correspondiente (gasto, ingreso, ahorro, consulta).
//  3. La estrategia extrae monto/atributos, llama al backend y arma
//     la respuesta con el formateador.
//  4. El canal devuelve SOLO la cadena de respuesta al usuario.
package domain

import finance "github.com/sergiodev3/control-gastos-app/internal/domain"

// ============================================================
// Chat — Request/Response entre el canal y el servicio
// ============================================================

// ChatRequest es el body de POST /v1/chat.
type ChatRequest struct {
	// SessionID identifica la sesión del chat. Para Telegram es el
	// chat id con prefijo ("tg:12345"); para el endpoint genérico lo
	// elige el llamador.
	SessionID string `json:"session_id"`

	// Message es el texto crudo del usuario (mensaje o comando).
	Message string `json:"message"`
}

// ChatResponse es lo que el servicio devuelve al canal.
// Por ahora solo la respuesta en texto; puede crecer con metadata.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ============================================================
// Contexto de estrategia
// ============================================================

// ChatContext encapsula todo lo que una estrategia necesita para
// procesar un mensaje. Lo arma el ChatService antes de delegar.
type ChatContext struct {
	// SessionID de la sesión de chat
	SessionID string

	// Token portador de la sesión autenticada. Las estrategias lo
	// reciben explícitamente; nunca leen el almacén de sesiones.
	Token string

	// Message es el texto original del usuario
	Message string

	// Intent es la intención detectada por el enrutador
	Intent finance.Intent
}
