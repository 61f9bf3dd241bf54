package mamweb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mamrr/internal/services"
)

const (
	userAgent       = "mamrr/0.1.0"
	maxErrorBody    = 2048
	maxResponseBody = 4 << 20
)

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client provides access to the backend API.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// New creates a backend client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("server url required")
	}
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Account is the identity record behind /api/me.
type Account struct {
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// Login posts form-encoded credentials and returns the issued bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "mamweb", "login", "build request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.tokenRequest(req, "login")
}

// Register posts a JSON profile and returns the issued bearer token.
func (c *Client) Register(ctx context.Context, username, password, inviteCode string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"username":    username,
		"password":    password,
		"invite_code": inviteCode,
	})
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "mamweb", "register", "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/register", bytes.NewReader(body))
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "mamweb", "register", "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.tokenRequest(req, "register")
}

func (c *Client) tokenRequest(req *http.Request, operation string) (string, error) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "mamweb", operation, "execute request", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode >= 300 {
		return "", rejection(resp)
	}

	var payload tokenResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&payload); err != nil {
		return "", services.Wrap(services.ErrMalformedResponse, "mamweb", operation, "decode response", err)
	}
	if strings.TrimSpace(payload.AccessToken) == "" {
		return "", services.Wrap(services.ErrMalformedResponse, "mamweb", operation, "no token in response", nil)
	}
	return payload.AccessToken, nil
}

// Me fetches the account behind the bearer token. Used to validate a restored
// session against the server.
func (c *Client) Me(ctx context.Context, token string) (Account, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/me", nil)
	if err != nil {
		return Account{}, services.Wrap(services.ErrTransport, "mamweb", "me", "build request", err)
	}
	authorize(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Account{}, services.Wrap(services.ErrTransport, "mamweb", "me", "execute request", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode >= 300 {
		return Account{}, rejection(resp)
	}

	var account Account
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&account); err != nil {
		return Account{}, services.Wrap(services.ErrMalformedResponse, "mamweb", "me", "decode response", err)
	}
	return account, nil
}

// Search issues an authenticated index query. The payload is returned raw
// because the backend answers with either a flat list or a series-keyed
// object depending on the query.
func (c *Client) Search(ctx context.Context, token, term, field string) (json.RawMessage, error) {
	endpoint, err := url.Parse(c.baseURL + "/api/search")
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "mamweb", "search", "parse url", err)
	}
	params := url.Values{}
	params.Set("q", term)
	params.Set("field", field)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "mamweb", "search", "build request", err)
	}
	authorize(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "mamweb", "search", "execute request", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode >= 300 {
		return nil, rejection(resp)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "mamweb", "search", "read response", err)
	}
	return json.RawMessage(raw), nil
}

// Add forwards a release to the download agent by torrent id.
func (c *Client) Add(ctx context.Context, token string, tid int64) error {
	body, err := json.Marshal(map[string]int64{"tid": tid})
	if err != nil {
		return services.Wrap(services.ErrTransport, "mamweb", "add", "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/add", bytes.NewReader(body))
	if err != nil {
		return services.Wrap(services.ErrTransport, "mamweb", "add", "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	authorize(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransport, "mamweb", "add", "execute request", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode >= 300 {
		return rejection(resp)
	}
	return nil
}

// Ping hits the unauthenticated health probe.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/test", nil)
	if err != nil {
		return services.Wrap(services.ErrTransport, "mamweb", "ping", "build request", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransport, "mamweb", "ping", "execute request", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode >= 300 {
		return rejection(resp)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&payload); err != nil {
		return services.Wrap(services.ErrMalformedResponse, "mamweb", "ping", "decode response", err)
	}
	if payload.Status != "ok" {
		return services.Wrap(services.ErrMalformedResponse, "mamweb", "ping", fmt.Sprintf("unexpected status %q", payload.Status), nil)
	}
	return nil
}

func authorize(req *http.Request, token string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// rejection reads the non-2xx body for the backend's {detail} message.
func rejection(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(body, &payload)

	return &services.RejectionError{
		Status: resp.StatusCode,
		Detail: strings.TrimSpace(payload.Detail),
	}
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxErrorBody))
	body.Close()
}
