package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"

	"github.com/sergiodev3/control-gastos-app/internal/domain"
)

// AuthClient talks to the backend's login endpoint. Login is a single
// interactive call so it skips the retry/breaker machinery — a wrong
// password must fail fast, not trip the circuit for everyone else.
type AuthClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewAuthClient creates the auth client. baseURL must include the
// /api/v1 prefix.
func NewAuthClient(httpClient *http.Client, baseURL string) *AuthClient {
	return &AuthClient{httpClient: httpClient, baseURL: baseURL}
}

// Login exchanges credentials for an access token.
func (c *AuthClient) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	ctx, span := otel.Tracer("infra/client").Start(ctx, "AuthClient.Login")
	defer span.End()

	payload, err := json.Marshal(domain.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "auth", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &domain.ErrUnauthorized{Message: "credenciales incorrectas"}
	case resp.StatusCode >= 300:
		return nil, &domain.ErrExternalService{
			Service: "auth",
			Err:     fmt.Errorf("login returned status %d", resp.StatusCode),
		}
	}

	var out domain.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &domain.ErrExternalService{Service: "auth", Err: err}
	}
	return &out, nil
}
