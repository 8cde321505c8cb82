// Package api is the HTTP client for the console backend's REST API.
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

	"github.com/panta/machineid"
)

const (
	// ClientIDHeader carries a machine-derived identifier so the backend
	// can distinguish client installations in its logs.
	ClientIDHeader = "X-Webconsole-Client-Id"

	clientIDAppKey = "webctl"

	defaultTimeout = 30 * time.Second
)

// Client talks to the console backend. The zero value is not usable; use
// NewClient.
type Client struct {
	baseURL    string
	userAgent  string
	clientID   string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	// Protected machine id; empty when the platform cannot provide one.
	if id, err := machineid.ProtectedID(clientIDAppKey); err == nil {
		c.clientID = id
	}
	return c
}

// BaseURL returns the backend base URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type authModeResponse struct {
	Mode AuthMode `json:"mode"`
}

// ProbeAuthMode asks the backend which authentication strategy it expects.
// The answer is not cached; callers probe once per login attempt.
func (c *Client) ProbeAuthMode(ctx context.Context) (AuthMode, error) {
	var resp authModeResponse
	if err := c.do(ctx, http.MethodGet, "/rest/auth/mode", nil, &resp); err != nil {
		return "", fmt.Errorf("probing auth mode: %w", err)
	}
	return resp.Mode, nil
}

type loginLocalRequest struct {
	Password string `json:"password"`
}

// AuthenticateLocal submits a local-mode login. The argument must already be
// the doubly SHA-256 hashed hex digest of the password; this client never
// transmits a raw password in local mode.
func (c *Client) AuthenticateLocal(ctx context.Context, hashedPasswordHex string) error {
	req := loginLocalRequest{Password: hashedPasswordHex}
	return c.do(ctx, http.MethodPost, "/rest/auth/local", &req, nil)
}

type loginLDAPRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthenticateLDAP submits an LDAP-mode login with the raw credentials.
func (c *Client) AuthenticateLDAP(ctx context.Context, username, password string) error {
	req := loginLDAPRequest{Username: username, Password: password}
	return c.do(ctx, http.MethodPost, "/rest/auth/ldap", &req, nil)
}

type statusResponse struct {
	Status ServiceStatus `json:"status"`
}

// FetchStatus returns the backend-reported service status.
func (c *Client) FetchStatus(ctx context.Context) (ServiceStatus, error) {
	var resp statusResponse
	if err := c.do(ctx, http.MethodGet, "/rest/status", nil, &resp); err != nil {
		return "", fmt.Errorf("fetching status: %w", err)
	}
	return resp.Status, nil
}

// FetchPreferences returns the operator's stored preferences.
func (c *Client) FetchPreferences(ctx context.Context) (Preferences, error) {
	var resp Preferences
	if err := c.do(ctx, http.MethodGet, "/rest/preferences", nil, &resp); err != nil {
		return Preferences{}, fmt.Errorf("fetching preferences: %w", err)
	}
	return resp, nil
}

// Version returns the backend's build information.
func (c *Client) Version(ctx context.Context) (VersionInfo, error) {
	var resp VersionInfo
	if err := c.do(ctx, http.MethodGet, "/rest/version", nil, &resp); err != nil {
		return VersionInfo{}, fmt.Errorf("fetching version: %w", err)
	}
	return resp, nil
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.clientID != "" {
		req.Header.Set(ClientIDHeader, c.clientID)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := &Error{StatusCode: res.StatusCode}
		var errResp errorResponse
		if data, err := io.ReadAll(io.LimitReader(res.Body, 1<<16)); err == nil {
			if json.Unmarshal(data, &errResp) == nil {
				apiErr.Message = errResp.Message
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
