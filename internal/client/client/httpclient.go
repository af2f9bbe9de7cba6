package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/quotedesk/internal/client/models"
	"github.com/dmitrijs2005/quotedesk/internal/common"
	"github.com/google/uuid"
)

// maxErrorBody bounds how much of an error answer is read.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
}

// NewQuoteDeskClient builds an HTTP client for the API at baseURL.
// A missing scheme defaults to http://.
func NewQuoteDeskClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url: missing host in %q", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

type resetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type resetLinkRequest struct {
	Email string `json:"email"`
}

func (c *HTTPClient) Login(ctx context.Context, email string, password string) (*models.Credential, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", false, loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("login: %w: empty access token", ErrInvalidAnswer)
	}

	cred := &models.Credential{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	if resp.User != nil {
		cred.User = *resp.User
	}
	if cred.User.Email == "" {
		cred.User.Email = email
	}

	c.UseCredential(cred)
	return cred, nil
}

// Logout tells the server to drop the session and forgets the local token.
// The token is forgotten even when the call fails.
func (c *HTTPClient) Logout(ctx context.Context) error {
	if c.token() == "" {
		return nil
	}
	err := c.do(ctx, http.MethodPost, "/auth/logout", true, nil, nil)
	c.UseCredential(nil)
	return err
}

func (c *HTTPClient) UseCredential(cred *models.Credential) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cred == nil {
		c.accessToken = ""
		return
	}
	c.accessToken = cred.AccessToken
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", true, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", false, nil, nil)
}

func (c *HTTPClient) ValidateResetToken(ctx context.Context, token string) (*models.TokenValidation, error) {
	var v models.TokenValidation
	path := "/auth/password-reset/validate/" + url.PathEscape(token)
	if err := c.do(ctx, http.MethodPost, path, false, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, token string, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/auth/password-reset/reset", false, resetRequest{Token: token, NewPassword: newPassword}, nil)
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/password-reset/request", false, resetLinkRequest{Email: email}, nil)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// do sends one JSON request. A nil body sends no payload; a nil target
// discards the answer body.
func (c *HTTPClient) do(ctx context.Context, method, path string, auth bool, body any, target any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", common.UserAgent)
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		token := c.token()
		if token == "" {
			return ErrNoCredential
		}
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
	}
	return nil
}

// mapError turns transport failures into package sentinels. Cancellation by
// the caller is passed through unchanged.
func (c *HTTPClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	// The request URL may carry a reset token; keep it out of error text.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("http error: %w", err)
}

// readDetail pulls a message out of an error body. The API answers
// {"detail": "..."}, validation failures carry {"detail": [{"msg": "..."}]},
// and older endpoints use "message" or "error".
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}

	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}

	if len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
