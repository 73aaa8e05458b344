package backend

// Package backend is the REST client for the asset-management backend. Every
// call goes through one interception layer (do) that applies the same
// response-interpretation policy: 401 invalidates the session, 403 carries a
// server-supplied message for the forbidden screen, 409 surfaces a conflict
// message inline, anything else non-success is a generic request failure.
// Keeping the policy in one place means no individual call wrapper can
// forget a branch.

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	apperrors "github.com/itamlab/assetview-ui/internal/errors"
	"github.com/itamlab/assetview-ui/internal/ports"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 1 << 20

	fallbackForbiddenMessage = "Insufficient permissions"
	fallbackConflictMessage  = "Conflict"

	// DefaultErrorMessageExpr is the JMESPath expression used to pull the
	// human-readable message out of backend error bodies.
	DefaultErrorMessageExpr = "message"
)

// Client calls the backend REST API. The bearer token is read from the
// session store at call time, keyed by the session ID carried in the request
// context, so a token replaced mid-session is honored on the next call.
type Client struct {
	baseURL  string
	hc       *http.Client
	sessions ports.SessionStore
	msgExpr  string
	logger   *slog.Logger
}

// Options configures a backend Client.
type Options struct {
	// BaseURL is the backend base path, e.g. "http://0.0.0.0:8000/api".
	BaseURL string
	// Sessions is the session store the client reads tokens from and clears
	// on 401 responses.
	Sessions ports.SessionStore
	// ErrorMessageExpr overrides the JMESPath expression for extracting the
	// message field from error bodies. Defaults to "message".
	ErrorMessageExpr string
	// Timeout bounds each backend call. Zero means the default of 15s.
	// Ignored when HTTPClient is set.
	Timeout time.Duration
	// HTTPClient overrides the underlying http.Client (tests).
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient builds a backend client. Callers should pass a validated config.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, apperrors.Validation("backend base URL is required")
	}
	if opts.Sessions == nil {
		return nil, apperrors.Validation("session store is required")
	}

	expr := strings.TrimSpace(opts.ErrorMessageExpr)
	if expr == "" {
		expr = DefaultErrorMessageExpr
	}
	if _, err := jmespath.Compile(expr); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeValidation, "compile error-message expression %q", expr)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:  baseURL,
		hc:       hc,
		sessions: opts.Sessions,
		msgExpr:  expr,
		logger:   logger,
	}, nil
}

// sessionIDKey carries the browser session ID through the request context so
// the client can read the token at call time and invalidate the right
// session on 401.
type sessionIDKey struct{}

// WithSessionID returns a child context carrying the browser session ID.
func WithSessionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// SessionIDFromContext returns the session ID set by WithSessionID, if any.
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}

// call describes one backend request for the do interception layer.
type call struct {
	method string
	path   string
	query  url.Values
	// expect is the endpoint-specific success status (201 for creation, 204
	// for deletion). Zero accepts any 2xx.
	expect int
	// out receives the decoded JSON body; nil discards it.
	out any
}

// do issues the request and applies the uniform interpretation policy, in
// priority order: 401, 403, 409 (writes), other non-success, success-status
// mismatch, decode.
func (c *Client) do(ctx context.Context, cl call) error {
	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeRequestFailed, "%s %s", cl.method, cl.path)
	}
	body, readErr := readBody(resp)
	if readErr != nil {
		return apperrors.Wrapf(readErr, apperrors.ErrCodeRequestFailed, "%s %s: read response", cl.method, cl.path)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.invalidateSession(ctx)
		return apperrors.Unauthorized("session expired")

	case resp.StatusCode == http.StatusForbidden:
		return apperrors.Forbidden(c.errorMessage(body, fallbackForbiddenMessage))

	case resp.StatusCode == http.StatusConflict && cl.method != http.MethodGet:
		return apperrors.Conflict(c.errorMessage(body, fallbackConflictMessage))

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return c.requestFailed(cl, resp.StatusCode, body)

	case cl.expect != 0 && resp.StatusCode != cl.expect:
		return c.requestFailed(cl, resp.StatusCode, body)
	}

	if cl.out != nil {
		if err := json.Unmarshal(body, cl.out); err != nil {
			return apperrors.Wrapf(err, apperrors.ErrCodeRequestFailed, "%s %s: decode response", cl.method, cl.path)
		}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, http.NoBody)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "build %s %s", cl.method, cl.path)
	}
	req.Header.Set("Accept", "application/json")

	// Token is read at call time, not cached at construction.
	sess := c.sessions.Read(ctx, SessionIDFromContext(ctx))
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}
	return req, nil
}

// invalidateSession clears the stored session after a 401. The redirect to
// the login screen is issued by the navigation layer when it sees the
// Unauthorized error; this is the only state the client mutates.
func (c *Client) invalidateSession(ctx context.Context) {
	id := SessionIDFromContext(ctx)
	if id == "" {
		return
	}
	if err := c.sessions.Clear(ctx, id); err != nil {
		c.logger.WarnContext(ctx, "clear session after 401 failed", "error", err)
	}
}

func (c *Client) requestFailed(cl call, status int, body []byte) error {
	if text := strings.TrimSpace(string(body)); text != "" {
		return apperrors.RequestFailed(text)
	}
	return apperrors.RequestFailedf("%s %s failed with status %d", cl.method, cl.path, status)
}

// errorMessage extracts the human-readable message from an error body: the
// configured JMESPath expression over a JSON body first, then the raw body
// text, then the fallback.
func (c *Client) errorMessage(body []byte, fallback string) string {
	text := strings.TrimSpace(string(body))

	var data any
	if err := json.Unmarshal(body, &data); err == nil {
		if result, serr := jmespath.Search(c.msgExpr, data); serr == nil {
			if msg, ok := result.(string); ok && strings.TrimSpace(msg) != "" {
				return msg
			}
		}
	}
	if text != "" {
		return text
	}
	return fallback
}

func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close() //nolint:errcheck // best-effort close after full read
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}
