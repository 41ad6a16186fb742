package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// TokenSource supplies the current bearer credential. An empty token means
// the session is unauthenticated and calls fail locally without a network
// round-trip.
type TokenSource interface {
	Token() string
}

// Client is the typed REST client for the portfolio admin backend.
type Client struct {
	routes        routes
	http          *http.Client
	tokens        TokenSource
	onAuthFailure func()
	logger        interfaces.Logger
}

// Option configures the client at construction time.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithTimeout overrides the request timeout on the default http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithLogger injects the logger used for request diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAuthFailureHook registers a callback fired whenever the backend
// rejects the session credential. The session store uses this to force a
// logout.
func WithAuthFailureHook(hook func()) Option {
	return func(c *Client) {
		c.onAuthFailure = hook
	}
}

// New constructs a client against the given base URL. The token source may
// be nil for login-only use.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		routes: newRoutes(baseURL),
		http:   &http.Client{Timeout: 15 * time.Second},
		tokens: tokens,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// LoginResult is the payload returned by a successful credential exchange.
type LoginResult struct {
	Token string       `json:"token"`
	User  content.User `json:"user"`
}

// Login exchanges credentials for a bearer token. No session token is
// required or consulted.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	url, err := c.routes.build(routeLogin, nil)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrServer, err)
	}

	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, url, "", body, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

// Verify checks an explicit token against the backend, returning the user
// it belongs to. Used during session restore before the token is trusted.
func (c *Client) Verify(ctx context.Context, token string) (content.User, error) {
	url, err := c.routes.build(routeVerify, nil)
	if err != nil {
		return content.User{}, fmt.Errorf("%w: %v", ErrServer, err)
	}

	var user content.User
	if err := c.do(ctx, http.MethodGet, url, token, nil, &user); err != nil {
		return content.User{}, err
	}
	return user, nil
}

// List fetches the full item list for a content type.
func (c *Client) List(ctx context.Context, t content.Type) ([]content.Item, error) {
	url, err := c.authedURL(routeContent, map[string]any{"type": t.APISlug()})
	if err != nil {
		return nil, err
	}

	var items []content.Item
	if err := c.do(ctx, http.MethodGet, url, c.tokens.Token(), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Create persists a new item; the backend assigns id and updatedAt.
func (c *Client) Create(ctx context.Context, item content.Item) (content.Item, error) {
	url, err := c.authedURL(routeContent, map[string]any{"type": item.Type.APISlug()})
	if err != nil {
		return content.Item{}, err
	}

	var saved content.Item
	if err := c.do(ctx, http.MethodPost, url, c.tokens.Token(), item, &saved); err != nil {
		return content.Item{}, err
	}
	return saved, nil
}

// Update replaces an existing item by id.
func (c *Client) Update(ctx context.Context, item content.Item) (content.Item, error) {
	url, err := c.authedURL(routeItem, map[string]any{"id": item.ID})
	if err != nil {
		return content.Item{}, err
	}

	var saved content.Item
	if err := c.do(ctx, http.MethodPut, url, c.tokens.Token(), item, &saved); err != nil {
		return content.Item{}, err
	}
	return saved, nil
}

// SetVisibility flips the public display flag for an item.
func (c *Client) SetVisibility(ctx context.Context, id string, visible bool) error {
	url, err := c.authedURL(routeVisibility, map[string]any{"id": id})
	if err != nil {
		return err
	}
	body := map[string]bool{"visible": visible}
	return c.do(ctx, http.MethodPatch, url, c.tokens.Token(), body, nil)
}

// Delete removes an item by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	url, err := c.authedURL(routeItem, map[string]any{"id": id})
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, url, c.tokens.Token(), nil, nil)
}

// OrderUpdate pairs an item id with its new rank for a reorder call.
type OrderUpdate struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// Reorder submits the full renumbered ranking for a content type.
func (c *Client) Reorder(ctx context.Context, t content.Type, orders []OrderUpdate) error {
	url, err := c.authedURL(routeReorder, map[string]any{"type": t.APISlug()})
	if err != nil {
		return err
	}
	body := map[string]any{"items": orders}
	return c.do(ctx, http.MethodPost, url, c.tokens.Token(), body, nil)
}

// Bulk applies a batch action to a set of item ids.
func (c *Client) Bulk(ctx context.Context, action content.BulkAction, ids []string) error {
	url, err := c.authedURL(routeBulk, nil)
	if err != nil {
		return err
	}
	body := map[string]any{"action": action, "itemIds": ids}
	return c.do(ctx, http.MethodPost, url, c.tokens.Token(), body, nil)
}

// Analytics fetches the read-only traffic summary.
func (c *Client) Analytics(ctx context.Context) (content.Analytics, error) {
	url, err := c.authedURL(routeAnalytics, nil)
	if err != nil {
		return content.Analytics{}, err
	}
	var out content.Analytics
	if err := c.do(ctx, http.MethodGet, url, c.tokens.Token(), nil, &out); err != nil {
		return content.Analytics{}, err
	}
	return out, nil
}

// Audit fetches the append-only audit trail.
func (c *Client) Audit(ctx context.Context) ([]content.AuditEntry, error) {
	url, err := c.authedURL(routeAudit, nil)
	if err != nil {
		return nil, err
	}
	var out []content.AuditEntry
	if err := c.do(ctx, http.MethodGet, url, c.tokens.Token(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Users fetches the admin user roster.
func (c *Client) Users(ctx context.Context) ([]content.User, error) {
	url, err := c.authedURL(routeUsers, nil)
	if err != nil {
		return nil, err
	}
	var out []content.User
	if err := c.do(ctx, http.MethodGet, url, c.tokens.Token(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// authedURL rejects calls locally when no credential is present, then
// builds the route.
func (c *Client) authedURL(route string, params map[string]any) (string, error) {
	if c.tokens == nil || strings.TrimSpace(c.tokens.Token()) == "" {
		return "", fmt.Errorf("%w: no session token", ErrUnauthenticated)
	}
	url, err := c.routes.build(route, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServer, err)
	}
	return url, nil
}

func (c *Client) do(ctx context.Context, method, url, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrServer, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api.request.unreachable", "method", method, "url", url, "error", err)
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		c.logger.Debug("api.request.rejected", "method", method, "url", url, "status", resp.StatusCode)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrServer, err)
	}
	return nil
}

// errorBody is the shape the backend uses for failure payloads. Field is
// present on validation rejections.
type errorBody struct {
	Error   string `json:"error"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		if c.onAuthFailure != nil {
			c.onAuthFailure()
		}
		return fmt.Errorf("%w: backend rejected credential", ErrUnauthenticated)
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		var payload errorBody
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Field != "" {
			return NewValidationError(payload.Field, firstNonEmpty(payload.Message, payload.Error))
		}
		return fmt.Errorf("%w: status %d: %s", ErrServer, resp.StatusCode, firstNonEmpty(payload.Message, payload.Error))
	}
	return fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
