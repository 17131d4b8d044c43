package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophcontacts/internal/client/models"
	"github.com/dmitrijs2005/gophcontacts/internal/logging"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 4 << 10
)

// Middleware decorates a RoundTripper.
type Middleware func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type HTTPClient struct {
	baseURL     *url.URL
	http        *http.Client
	timeout     time.Duration
	logger      logging.Logger
	middlewares []Middleware
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. Its transport is
// still wrapped by the configured middleware.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithMiddleware appends middleware. The first one given is the outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(c *HTTPClient) { c.middlewares = append(c.middlewares, mw...) }
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient builds a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &HTTPClient{baseURL: u, http: &http.Client{}, logger: logging.Discard()}
	for _, opt := range opts {
		opt(c)
	}

	var rt http.RoundTripper = http.DefaultTransport
	if c.http.Transport != nil {
		rt = c.http.Transport
	}
	rt = requestID(rt)
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		rt = c.middlewares[i](rt)
	}

	hc := *c.http
	hc.Transport = rt
	c.http = &hc
	return c, nil
}

// requestID stamps every outgoing request with a fresh X-Request-ID unless
// the caller already set one.
func requestID(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if r.Header.Get(RequestIDHeader) != "" {
			return next.RoundTrip(r)
		}
		r = r.Clone(r.Context())
		r.Header.Set(RequestIDHeader, uuid.NewString())
		return next.RoundTrip(r)
	})
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, r models.Registration) error {
	return c.do(ctx, http.MethodPost, http.StatusOK, r, nil, "api", "SignUp", "register")
}

func (c *HTTPClient) SignIn(ctx context.Context, cr models.Credentials) (string, error) {
	var resp models.SignInResponse
	if err := c.do(ctx, http.MethodPost, http.StatusOK, cr, &resp, "signin"); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) ListContacts(ctx context.Context) ([]models.Contact, error) {
	var out []models.Contact
	if err := c.do(ctx, http.MethodGet, http.StatusOK, nil, &out, "api", "Contacts"); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Contact{}
	}
	return out, nil
}

func (c *HTTPClient) UpdateContact(ctx context.Context, contact models.Contact) error {
	id := strconv.FormatInt(contact.ContactID, 10)
	return c.do(ctx, http.MethodPut, http.StatusNoContent, contact, nil, "api", "Contacts", id)
}

func (c *HTTPClient) DeleteContact(ctx context.Context, contactID int64) error {
	id := strconv.FormatInt(contactID, 10)
	return c.do(ctx, http.MethodDelete, http.StatusNoContent, nil, nil, "api", "Contacts", id)
}

func (c *HTTPClient) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	contact.ContactID = 0

	var created models.Contact
	if err := c.do(ctx, http.MethodPost, http.StatusCreated, contact, &created, "api", "Contacts"); err != nil {
		return models.Contact{}, err
	}
	return created, nil
}

// do performs one JSON round trip. in is encoded as the request body when
// non-nil; out receives the decoded response body when non-nil.
func (c *HTTPClient) do(ctx context.Context, method string, want int, in, out any, path ...string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.baseURL.JoinPath(path...)

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, endpoint.Path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, endpoint.Path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "method", method, "path", endpoint.Path, "error", err)
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, endpoint.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		se := &StatusError{Method: method, Path: endpoint.Path, Code: resp.StatusCode, Body: string(b)}
		if se.Unwrap() == ErrUnexpectedStatus {
			c.logger.Warn(ctx, "unexpected status", "method", method, "path", endpoint.Path,
				"status", resp.StatusCode, "want", want)
		}
		return se
	}

	c.logger.Debug(ctx, "request done", "method", method, "path", endpoint.Path, "status", resp.StatusCode)

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrDecode, method, endpoint.Path, err)
	}
	return nil
}
