// Package domain — auth.go define los tipos de la colaboración con el
// servicio de autenticación. El bot nunca valida tokens por sí mismo:
// intercambia email+contraseña por un token y lo reenvía en cada
// llamada al backend.
package domain

// LoginRequest es el payload de POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse es la respuesta del servicio de autenticación.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
