package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Client talks to a GoTrue-style auth API. Ordinary calls authenticate with
// the anon key plus the caller's bearer token; admin endpoints require the
// service key.
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
	logger     *slog.Logger
}

type Config struct {
	BaseURL        string
	AnonKey        string
	ServiceKey     string
	RequestTimeout time.Duration
}

func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		anonKey:    config.AnonKey,
		serviceKey: config.ServiceKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// apiError is the provider's error body; different endpoints use different
// field names so all are collected.
type apiError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Code             any    `json:"code"`
}

func (e *apiError) text() string {
	for _, s := range []string{e.ErrorDescription, e.Msg, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*User, error) {
	payload := map[string]string{"email": email, "password": password}

	var user User
	status, apiErr, err := c.do(ctx, http.MethodPost, "/auth/v1/signup", c.anonKey, "", payload, &user)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusOK || status == http.StatusCreated:
		return &user, nil
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		if apiErr != nil && strings.Contains(strings.ToLower(apiErr.text()), "registered") {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("signup rejected: %s", apiErr.text())
	case status == http.StatusConflict:
		return nil, ErrEmailTaken
	default:
		return nil, fmt.Errorf("identity provider returned status %d", status)
	}
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{"email": email, "password": password}

	var session Session
	status, _, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", c.anonKey, "", payload, &session)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusOK:
		return &session, nil
	case status == http.StatusBadRequest || status == http.StatusUnauthorized || status == http.StatusForbidden:
		// unknown email and wrong password are deliberately indistinguishable
		return nil, ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("identity provider returned status %d", status)
	}
}

func (c *Client) Recover(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}

	status, apiErr, err := c.do(ctx, http.MethodPost, "/auth/v1/recover", c.anonKey, "", payload, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		// recovery outcomes are never surfaced to the caller; log and move on
		c.logger.Warn("password recovery request rejected", "status", status, "detail", apiErr.text())
	}
	return nil
}

func (c *Client) UserFromToken(ctx context.Context, accessToken string) (*User, error) {
	// cheap local expiry check before the network round-trip; the provider
	// stays authoritative for everything else
	if expired, err := tokenExpired(accessToken); err == nil && expired {
		return nil, ErrTokenExpired
	}

	var user User
	status, _, err := c.do(ctx, http.MethodGet, "/auth/v1/user", c.anonKey, accessToken, nil, &user)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusOK && user.ID != "":
		return &user, nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden || status == http.StatusOK:
		return nil, ErrInvalidToken
	default:
		return nil, fmt.Errorf("identity provider returned status %d", status)
	}
}

func (c *Client) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	payload := map[string]string{"password": newPassword}

	status, apiErr, err := c.do(ctx, http.MethodPut, "/auth/v1/user", c.anonKey, accessToken, payload, nil)
	if err != nil {
		return err
	}

	switch status {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrInvalidToken
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("password update rejected: %s", apiErr.text())
	default:
		return fmt.Errorf("identity provider returned status %d", status)
	}
}

func (c *Client) AdminUpdateEmail(ctx context.Context, userID, email string) (*User, error) {
	if c.serviceKey == "" {
		return nil, ErrAdminKeyMissing
	}

	payload := map[string]string{"email": email}

	var user User
	status, apiErr, err := c.do(ctx, http.MethodPut, "/auth/v1/admin/users/"+userID, c.serviceKey, c.serviceKey, payload, &user)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		return &user, nil
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		return nil, fmt.Errorf("email update rejected: %s", apiErr.text())
	default:
		return nil, fmt.Errorf("identity provider returned status %d", status)
	}
}

func (c *Client) AdminDeleteUser(ctx context.Context, userID string) error {
	if c.serviceKey == "" {
		return ErrAdminKeyMissing
	}

	status, _, err := c.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+userID, c.serviceKey, c.serviceKey, nil, nil)
	if err != nil {
		return err
	}

	if status != http.StatusOK && status != http.StatusNoContent && status != http.StatusNotFound {
		return fmt.Errorf("identity provider returned status %d", status)
	}
	return nil
}

// do performs one provider call and decodes the success body into out when
// the status is 2xx. The parsed error body is returned for non-2xx statuses
// so callers can discriminate.
func (c *Client) do(ctx context.Context, method, path, apiKey, bearer string, payload, out interface{}) (int, *apiError, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", apiKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil && len(raw) > 0 {
			if err := json.Unmarshal(raw, out); err != nil {
				return resp.StatusCode, nil, fmt.Errorf("failed to decode response: %w", err)
			}
		}
		return resp.StatusCode, &apiError{}, nil
	}

	parsed := &apiError{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, parsed)
	}

	c.logger.Debug("identity provider error response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"detail", parsed.text())

	return resp.StatusCode, parsed, nil
}

// tokenExpired inspects the exp claim without verifying the signature. Only
// a definite "yes, expired" is trusted; anything ambiguous defers to the
// provider.
func tokenExpired(accessToken string) (bool, error) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return false, err
	}
	if claims.ExpiresAt == nil {
		return false, nil
	}
	return claims.ExpiresAt.Before(time.Now()), nil
}
