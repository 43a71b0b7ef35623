package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// FuncionesClient calls the two serverless endpoints that live outside this
// service: user provisioning and password reset. Both are invoked over HTTPS
// with bearer-token auth.
type FuncionesClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewFuncionesClient(baseURL, token string) *FuncionesClient {
	return &FuncionesClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CrearUsuarioPayload provisions an auth account for a back-office user.
type CrearUsuarioPayload struct {
	Email    string `json:"email"`
	Nombre   string `json:"nombre"`
	Rol      string `json:"rol"`
	Password string `json:"password"`
}

// ResetPasswordPayload triggers a password-reset email for an existing account.
type ResetPasswordPayload struct {
	Email string `json:"email"`
}

// FuncionResponse is the common envelope both functions return.
type FuncionResponse struct {
	OK     bool    `json:"ok"`
	UserID *string `json:"user_id,omitempty"`
	Error  *string `json:"error,omitempty"`
}

// CrearUsuario POSTs to /crear-usuario.
func (c *FuncionesClient) CrearUsuario(ctx context.Context, payload CrearUsuarioPayload) (*FuncionResponse, error) {
	return c.post(ctx, "/crear-usuario", payload)
}

// ResetPassword POSTs to /reset-password.
func (c *FuncionesClient) ResetPassword(ctx context.Context, payload ResetPasswordPayload) (*FuncionResponse, error) {
	return c.post(ctx, "/reset-password", payload)
}

func (c *FuncionesClient) post(ctx context.Context, path string, payload interface{}) (*FuncionResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("funciones: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("funciones: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("funciones: endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("funciones: endpoint returned %d", resp.StatusCode)
	}

	var result FuncionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("funciones: decode response: %w", err)
	}
	return &result, nil
}
