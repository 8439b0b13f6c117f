package roam

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/roamlib/roam/document"
	"github.com/roamlib/roam/forms"
	"github.com/roamlib/roam/internal/metrics"
	"github.com/roamlib/roam/retry"
	"github.com/roamlib/roam/transport"
)

// linkSelector matches the elements FollowLink and Link operate on.
const linkSelector = "a, button"

// Browser is the navigation façade: it executes requests through the
// transport, records page states in history, and exposes document queries
// over the current page. A Browser is single-owner; callers needing
// concurrency must serialize access externally.
type Browser struct {
	transport Transport
	history   *History
	parser    string
	retry     retry.Policy
	log       *zap.Logger
	metrics   *metrics.Metrics
}

// New creates a browser from settings.
func New(settings Settings) *Browser {
	if settings.Logger == nil {
		settings.Logger = zap.NewNop()
	}
	log := settings.Logger.With(zap.String("browser_id", uuid.NewString()))

	tr := settings.Transport
	if tr == nil {
		tr = transport.NewClient(transport.Settings{
			UserAgent:        settings.UserAgent,
			Timeout:          settings.Timeout,
			DisableRedirects: settings.DisableRedirects,
			Proxy:            settings.Proxy,
			RateLimit:        settings.RateLimit,
			Logger:           log,
		})
	}

	var collectors *metrics.Metrics
	if settings.Metrics != nil {
		collectors = metrics.New(settings.Metrics)
	}

	policy := settings.Retry
	if len(policy.Retryable) == 0 {
		policy.Retryable = []error{transport.ErrTransport}
	}
	userHook := policy.OnRetry
	policy.OnRetry = func(attempt int, err error) {
		log.Debug("retrying navigation", zap.Int("attempt", attempt), zap.Error(err))
		if collectors != nil {
			collectors.Retries.Inc()
		}
		if userHook != nil {
			userHook(attempt, err)
		}
	}

	return &Browser{
		transport: tr,
		history:   NewHistory(settings.HistoryDepth),
		parser:    settings.Parser,
		retry:     policy,
		log:       log,
		metrics:   collectors,
	}
}

// Open navigates to a URL, resolving it against the current page when
// relative, and pushes the resulting state onto the history.
func (b *Browser) Open(ctx context.Context, rawURL string) error {
	target, err := b.resolve(rawURL)
	if err != nil {
		return err
	}

	var resp *transport.Response
	err = b.retry.Do(ctx, func() error {
		var rerr error
		resp, rerr = b.transport.Get(ctx, target, nil)
		return rerr
	})
	if err != nil {
		b.countError(http.MethodGet)
		return err
	}

	b.push(http.MethodGet, resp)
	return nil
}

// FollowLink opens the href of a link element. ErrMissingHref when the
// element carries no href.
func (b *Browser) FollowLink(ctx context.Context, link *document.Node) error {
	if link == nil {
		return ErrMissingHref
	}
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return ErrMissingHref
	}
	return b.Open(ctx, href)
}

// SubmitForm serializes the form and dispatches it according to its
// method, resolving the action against the current page URL. An empty
// action submits to the current URL.
func (b *Browser) SubmitForm(ctx context.Context, form *forms.Form, opts ...forms.SerializeOption) error {
	target, err := b.formTarget(form)
	if err != nil {
		return err
	}

	method := form.Method()
	payload := form.Serialize(opts...)

	var resp *transport.Response
	err = b.retry.Do(ctx, func() error {
		var rerr error
		if method == http.MethodPost {
			resp, rerr = b.transport.Post(ctx, target, payload, nil)
		} else {
			resp, rerr = b.transport.Get(ctx, mergeQuery(target, payload), nil)
		}
		return rerr
	})
	if err != nil {
		b.countError(method)
		return err
	}

	b.push(method, resp)
	return nil
}

// Back moves n pages back in history. Pure traversal, never retried.
func (b *Browser) Back(n int) error { return b.history.Back(n) }

// Forward moves n pages forward in history.
func (b *Browser) Forward(n int) error { return b.history.Forward(n) }

// History exposes the underlying navigator.
func (b *Browser) History() *History { return b.history }

// State returns the current page state.
func (b *Browser) State() (*PageState, error) { return b.history.Current() }

// Response returns the current page's response snapshot.
func (b *Browser) Response() (*transport.Response, error) {
	state, err := b.history.Current()
	if err != nil {
		return nil, err
	}
	return state.Response(), nil
}

// URL returns the current page's final URL.
func (b *Browser) URL() (string, error) {
	state, err := b.history.Current()
	if err != nil {
		return "", err
	}
	return state.URL(), nil
}

// Parsed returns the current page's document, parsing it on first access.
func (b *Browser) Parsed() (*document.Document, error) {
	state, err := b.history.Current()
	if err != nil {
		return nil, err
	}
	return state.Parsed()
}

// Find returns the first node matching the CSS selector on the current
// page, or nil when nothing matches.
func (b *Browser) Find(selector string) (*document.Node, error) {
	doc, err := b.document()
	if err != nil {
		return nil, err
	}
	return doc.Find(selector), nil
}

// FindAll returns every node matching the CSS selector.
func (b *Browser) FindAll(selector string) ([]*document.Node, error) {
	doc, err := b.document()
	if err != nil {
		return nil, err
	}
	return doc.FindAll(selector), nil
}

// Select is an alias for FindAll.
func (b *Browser) Select(selector string) ([]*document.Node, error) {
	return b.FindAll(selector)
}

// XPath evaluates an XPath expression against the current page.
func (b *Browser) XPath(expr string) ([]*html.Node, error) {
	doc, err := b.document()
	if err != nil {
		return nil, err
	}
	return doc.XPath(expr)
}

// Link finds an anchor or button containing text, or nil.
func (b *Browser) Link(text string) (*document.Node, error) {
	doc, err := b.document()
	if err != nil {
		return nil, err
	}
	return doc.FindText(linkSelector, text), nil
}

// Links finds all anchors or buttons containing text.
func (b *Browser) Links(text string) ([]*document.Node, error) {
	doc, err := b.document()
	if err != nil {
		return nil, err
	}
	return doc.FindAllText(linkSelector, text), nil
}

// Form finds a form on the current page by CSS selector; empty selector
// means the first form. Returns nil when nothing matches.
func (b *Browser) Form(selector string) (*forms.Form, error) {
	doc, err := b.document()
	if err != nil {
		return nil, err
	}
	if selector == "" {
		selector = "form"
	}
	node := doc.Find(selector)
	if node == nil {
		return nil, nil
	}
	return forms.Parse(node.Selection())
}

// Forms returns every form on the current page.
func (b *Browser) Forms() ([]*forms.Form, error) {
	doc, err := b.document()
	if err != nil {
		return nil, err
	}
	var out []*forms.Form
	for _, node := range doc.FindAll("form") {
		form, err := forms.Parse(node.Selection())
		if err != nil {
			return nil, err
		}
		out = append(out, form)
	}
	return out, nil
}

// document returns the current page's document, mapping a missing state
// to ErrNoDocument.
func (b *Browser) document() (*document.Document, error) {
	state, err := b.history.Current()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDocument, err)
	}
	return state.Parsed()
}

// resolve builds an absolute URL, resolving relative references against
// the current page. A relative URL with no current page is an error.
func (b *Browser) resolve(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %v", rawURL, err)
	}
	if u.IsAbs() {
		return rawURL, nil
	}
	state, err := b.history.Current()
	if err != nil {
		return "", fmt.Errorf("relative url %q with no current page: %w", rawURL, err)
	}
	base, err := url.Parse(state.URL())
	if err != nil {
		return "", fmt.Errorf("parse current url %q: %v", state.URL(), err)
	}
	return base.ResolveReference(u).String(), nil
}

func (b *Browser) formTarget(form *forms.Form) (string, error) {
	if form.Action() == "" {
		state, err := b.history.Current()
		if err != nil {
			return "", err
		}
		return state.URL(), nil
	}
	return b.resolve(form.Action())
}

func (b *Browser) push(method string, resp *transport.Response) {
	evicted := b.history.Push(newPageState(resp, b.parser))

	b.log.Debug("navigated",
		zap.String("method", method),
		zap.String("url", resp.URL),
		zap.Int("status", resp.StatusCode),
		zap.Int("history_len", b.history.Len()),
		zap.Int("cursor", b.history.Cursor()),
	)

	if b.metrics != nil {
		b.metrics.Navigations.WithLabelValues(method).Inc()
		b.metrics.ResponseSize.Observe(float64(len(resp.Content)))
		if evicted > 0 {
			b.metrics.HistoryEvictions.Add(float64(evicted))
		}
	}
}

func (b *Browser) countError(method string) {
	if b.metrics != nil {
		b.metrics.NavigationErrors.WithLabelValues(method).Inc()
	}
}

// mergeQuery folds form values into a URL's query string for GET submits.
func mergeQuery(target string, form url.Values) string {
	if len(form) == 0 {
		return target
	}
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	for key, values := range form {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
