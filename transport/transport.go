package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrTransport is the single failure kind surfaced for network, timeout,
// and redirect-limit errors. Retry policies match it with errors.Is.
var ErrTransport = errors.New("transport error")

const (
	// DefaultTimeout bounds the total operation, redirects included.
	DefaultTimeout = 40 * time.Second

	// DefaultMaxRedirects is the hard redirect cap.
	DefaultMaxRedirects = 5

	// DefaultUserAgent identifies the client when none is configured.
	DefaultUserAgent = "Mozilla/5.0 (compatible; roam/1.0; +https://github.com/roamlib/roam)"

	acceptEncoding = "gzip, deflate"
)

// Settings configures a Client. Zero values take the defaults above.
type Settings struct {
	UserAgent    string
	Timeout      time.Duration
	MaxRedirects int

	// DisableRedirects stops the client from following any redirect.
	DisableRedirects bool

	// Proxy is an optional http(s) proxy URL.
	Proxy string

	// RateLimit caps requests per second; zero means unlimited.
	RateLimit float64

	Logger *zap.Logger
}

// Client executes GET and POST requests. Configuration is the only durable
// state; each call returns a fresh Response, and per-call headers never
// touch shared state. Cookies live in an in-memory jar for the life of the
// process and are never persisted.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewClient creates a client with pooled connections and the fixed
// redirect, cookie, and encoding policy described in the package docs.
func NewClient(s Settings) *Client {
	if s.Timeout == 0 {
		s.Timeout = DefaultTimeout
	}
	if s.MaxRedirects == 0 {
		s.MaxRedirects = DefaultMaxRedirects
	}
	if s.UserAgent == "" {
		s.UserAgent = DefaultUserAgent
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}

	// Connection pooling comes from retryablehttp's tuned transport.
	// Retries stay off here; the retry executor owns that policy.
	pooled := retryablehttp.NewClient()
	pooled.RetryMax = 0
	pooled.Logger = nil

	rc := resty.New().
		SetTimeout(s.Timeout).
		SetHeader("User-Agent", s.UserAgent).
		SetHeader("Accept-Encoding", acceptEncoding).
		SetTransport(pooled.HTTPClient.Transport)

	if s.DisableRedirects {
		// Hand back the redirect response itself instead of following it.
		rc.SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}))
	} else {
		rc.SetRedirectPolicy(resty.FlexibleRedirectPolicy(s.MaxRedirects))
	}
	rc.SetDoNotParseResponse(true)

	jar, err := cookiejar.New(nil)
	if err == nil {
		rc.SetCookieJar(jar)
	}

	if s.Proxy != "" {
		rc.SetProxy(s.Proxy)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if s.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.RateLimit), int(s.RateLimit)+1)
	}

	return &Client{resty: rc, limiter: limiter, log: s.Logger}
}

// Get executes a GET request against an absolute URL. headers apply to
// this call only.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) (*Response, error) {
	return c.do(ctx, http.MethodGet, rawURL, nil, headers)
}

// Post executes a form POST against an absolute URL. form is sent
// URL-encoded; headers apply to this call only.
func (c *Client) Post(ctx context.Context, rawURL string, form url.Values, headers map[string]string) (*Response, error) {
	return c.do(ctx, http.MethodPost, rawURL, form, headers)
}

func (c *Client) do(ctx context.Context, method, rawURL string, form url.Values, headers map[string]string) (*Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("transport: parse url %q: %v", rawURL, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("transport: url %q is not absolute", rawURL)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit: %v", ErrTransport, err)
	}

	req := c.resty.R().SetContext(ctx)
	for k, v := range headers {
		req.SetHeader(k, v)
	}

	start := time.Now()
	var resp *resty.Response
	switch method {
	case http.MethodPost:
		req.SetHeader("Content-Type", "application/x-www-form-urlencoded")
		resp, err = req.SetBody(form.Encode()).Post(rawURL)
	default:
		resp, err = req.Get(rawURL)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, rawURL, err)
	}

	out, err := c.snapshot(resp)
	if err != nil {
		return nil, err
	}

	c.log.Debug("request completed",
		zap.String("method", method),
		zap.String("url", out.URL),
		zap.Int("status", out.StatusCode),
		zap.Int("bytes", len(out.Content)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}

// snapshot drains and decodes the raw body into an immutable Response.
func (c *Client) snapshot(resp *resty.Response) (*Response, error) {
	raw := resp.RawResponse
	body := resp.RawBody()
	defer body.Close()

	content, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	headers := headerMap(raw.Header)
	if enc := headers["content-encoding"]; enc != "" {
		decoded, derr := decodeBody(content, enc)
		if derr != nil {
			return nil, fmt.Errorf("%w: decode %s body: %v", ErrTransport, enc, derr)
		}
		content = decoded
	}

	finalURL := ""
	if raw.Request != nil && raw.Request.URL != nil {
		finalURL = raw.Request.URL.String()
	}

	return &Response{
		Content:    content,
		URL:        finalURL,
		StatusLine: raw.Proto + " " + raw.Status,
		StatusCode: raw.StatusCode,
		Headers:    headers,
	}, nil
}
