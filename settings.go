package roam

import (
	"context"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/roamlib/roam/retry"
	"github.com/roamlib/roam/transport"
)

// Transport is the minimal request surface the browser needs. It is
// satisfied by *transport.Client; tests substitute doubles.
type Transport interface {
	Get(ctx context.Context, url string, headers map[string]string) (*transport.Response, error)
	Post(ctx context.Context, url string, form url.Values, headers map[string]string) (*transport.Response, error)
}

// Settings configures a Browser. The zero value gives an unbounded-history
// browser with default transport policy and no retries.
type Settings struct {
	// Parser selects the document engine; see the document package
	// constants. Empty means document.ParserHTML.
	Parser string

	// UserAgent overrides the default user agent.
	UserAgent string

	// HistoryDepth: 0 tracks everything, 1 disables back/forward (only
	// the current page is kept), N > 1 bounds the history at N.
	HistoryDepth int

	// Timeout bounds each whole navigation, redirects included.
	Timeout time.Duration

	// DisableRedirects stops the transport from following redirects.
	DisableRedirects bool

	// Proxy is an optional http(s) proxy URL.
	Proxy string

	// RateLimit caps transport requests per second; zero means unlimited.
	RateLimit float64

	// Retry wraps Open and SubmitForm. When Retryable is empty, transport
	// errors are the retried kind. The zero policy means a single attempt.
	Retry retry.Policy

	// Transport overrides the default client; Timeout, UserAgent,
	// DisableRedirects, Proxy and RateLimit are ignored when set.
	Transport Transport

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// Metrics, when set, registers navigation collectors against it.
	Metrics prometheus.Registerer
}
