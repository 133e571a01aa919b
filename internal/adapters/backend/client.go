// Package backend is the REST client for the member service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/memberhub/portal/internal/errors"
	obserrors "github.com/memberhub/portal/internal/observability/errors"
	"github.com/memberhub/portal/internal/observability/metrics"
)

// DefaultCookieName is the cookie the member service issues its session token in.
const DefaultCookieName = "token"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// Options configures a Client.
type Options struct {
	BaseURL string
	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
	// Timeout bounds each call. Zero means no deadline beyond the request context.
	Timeout    time.Duration
	CookieName string
	UserAgent  string
	Logger     *slog.Logger
	Metrics    metrics.Recorder
}

// Client calls the member service on behalf of portal users.
type Client struct {
	base       *url.URL
	http       *http.Client
	cookieName string
	userAgent  string
	logger     *slog.Logger
	metrics    metrics.Recorder
}

// New validates opts and builds a Client.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, errors.New("backend base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend base URL must be http or https, got %q", base.Scheme)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	cookieName := opts.CookieName
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "memberhub-portal"
	}

	return &Client{
		base:       base,
		http:       hc,
		cookieName: cookieName,
		userAgent:  userAgent,
		logger:     logger.With("component", "backend"),
		metrics:    metrics.OrNop(opts.Metrics),
	}, nil
}

// call describes one request to the member service.
type call struct {
	// endpoint is a stable label for logs and metrics, e.g. "events.list".
	endpoint string
	method   string
	path     string
	query    url.Values
	token    string
	body     any
}

type response struct {
	status  int
	body    []byte
	cookies []*http.Cookie
}

// do performs c and maps non-2xx statuses to application errors.
func (cl *Client) do(ctx context.Context, c call) (response, error) {
	start := time.Now()
	resp, err := cl.roundTrip(ctx, c)
	cl.metrics.RecordBackendRequest(c.endpoint, resp.status, obserrors.Classify(err), time.Since(start))
	if err != nil && !errors.Is(err, context.Canceled) {
		cl.logger.DebugContext(ctx, "backend call failed",
			slog.String("endpoint", c.endpoint),
			slog.Int("status", resp.status),
			slog.Any("error", err),
		)
	}
	return resp, err
}

func (cl *Client) roundTrip(ctx context.Context, c call) (response, error) {
	req, err := cl.newRequest(ctx, c)
	if err != nil {
		return response{}, err
	}

	res, err := cl.http.Do(req)
	if err != nil {
		return response{}, apperrors.FromTransport(err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	out := response{status: res.StatusCode, body: body, cookies: res.Cookies()}
	if err != nil {
		return out, apperrors.FromTransport(fmt.Errorf("read response: %w", err))
	}
	if appErr := apperrors.FromStatus(res.StatusCode, errorMessage(body)); appErr != nil {
		return out, appErr
	}
	return out, nil
}

func (cl *Client) newRequest(ctx context.Context, c call) (*http.Request, error) {
	u := *cl.base
	// c.path carries escaped IDs; keep that encoding on the wire.
	raw := cl.base.EscapedPath() + c.path
	if unescaped, err := url.PathUnescape(raw); err == nil {
		u.Path, u.RawPath = unescaped, raw
	} else {
		u.Path, u.RawPath = raw, ""
	}
	if len(c.query) > 0 {
		u.RawQuery = c.query.Encode()
	}

	var body io.Reader
	if c.body != nil {
		buf, err := json.Marshal(c.body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s request: %w", c.endpoint, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", c.endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", cl.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: cl.cookieName, Value: c.token})
	}
	return req, nil
}

// tokenFrom returns the session token the backend set on resp, if any.
func (cl *Client) tokenFrom(resp response) string {
	for _, ck := range resp.cookies {
		if ck.Name == cl.cookieName && ck.Value != "" {
			return ck.Value
		}
	}
	return ""
}

func escape(id string) string { return url.PathEscape(id) }
