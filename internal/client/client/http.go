package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/client/session"
	"github.com/dmitrijs2005/tasktracker/internal/common"
)

type HTTPClient struct {
	baseURL  string
	http     *http.Client
	store    session.Store
	onLogout func()
}

type Option func(*HTTPClient)

// WithTimeout bounds every HTTP call.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithOnLogout registers fn to run whenever the session is found missing or
// has just been cleared because it expired.
func WithOnLogout(fn func()) Option {
	return func(c *HTTPClient) { c.onLogout = fn }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func NewHTTPClient(baseURL string, store session.Store, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		store:   store,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *HTTPClient) logout() {
	if c.onLogout != nil {
		c.onLogout()
	}
}

// Do performs an authenticated request. body, when not nil, is encoded as
// JSON once and resent unchanged on the retry. The caller owns the returned
// response body.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	rec, err := c.store.Get(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		c.logout()
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	payload, err := encode(body)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, method, path, payload, rec.AccessToken)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	drain(resp)

	if err := c.renew(ctx, rec); err != nil {
		return nil, err
	}
	return c.send(ctx, method, path, payload, rec.AccessToken)
}

// renew exchanges rec's refresh token for a new access token and stores it.
// Only the access token changes. When the server refuses, the session is
// cleared and ErrSessionExpired returned.
func (c *HTTPClient) renew(ctx context.Context, rec *session.Record) error {
	payload, err := encode(api.RefreshRequest{RefreshToken: rec.RefreshToken})
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, http.MethodPost, "/api/refresh", payload, "")
	if err != nil {
		return err
	}
	defer drain(resp)

	var out api.RefreshResponse
	if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&out) != nil || out.AccessToken == "" {
		if err := c.store.Clear(ctx); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		c.logout()
		return ErrSessionExpired
	}

	rec.AccessToken = out.AccessToken
	if err := c.store.Set(ctx, rec); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (c *HTTPClient) send(ctx context.Context, method, path string, payload []byte, token string) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerScheme+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return resp, nil
}

func encode(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return b, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// decodeResponse closes resp and decodes its body into out when the status is
// want. Other statuses map to the package errors.
func decodeResponse(resp *http.Response, want int, out any) error {
	defer drain(resp)

	if resp.StatusCode != want {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	var e api.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&e)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if e.Error != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, e.Error)
		}
		return ErrUnauthorized
	case http.StatusNotFound:
		if e.Error != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, e.Error)
		}
		return ErrNotFound
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
}
