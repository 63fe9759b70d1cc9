package pantrysdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the pantry service. It provides the
// unauthenticated operations and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new pantry service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CreateUser registers a new account.
func (c *SDKClient) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	var user UserResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/user/create/", "", req, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateToken exchanges credentials for a token.
func (c *SDKClient) CreateToken(ctx context.Context, email, password string) (*TokenResponse, error) {
	var tok TokenResponse
	req := TokenRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/user/token/", "", req, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Login creates a token and wraps it in a Session.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	tok, err := c.CreateToken(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return c.NewSession(tok.Token), nil
}

// NewSession wraps an existing token, e.g. one stored by a previous Login.
func (c *SDKClient) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", "", nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks if the service is ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", "", nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
