package transport

import (
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Response is an immutable snapshot of one completed request. It is built
// once by the client and never mutated afterwards; each call produces a
// fresh Response, so nothing leaks between requests sharing a client.
type Response struct {
	// Content is the fully decoded body.
	Content []byte

	// URL is the final URL after any redirects.
	URL string

	// StatusLine is the reconstructed status line, e.g. "HTTP/1.1 200 OK".
	StatusLine string

	// StatusCode is the numeric status of the final response.
	StatusCode int

	// Headers maps lowercased header names to trimmed values. When a
	// header appears more than once the last value wins.
	Headers map[string]string
}

// Header returns the value for a lowercased header name, or "".
func (r *Response) Header(name string) string {
	return r.Headers[strings.ToLower(name)]
}

// ContentType returns the declared content type, sniffing the body when
// the server did not send one.
func (r *Response) ContentType() string {
	if ct := r.Headers["content-type"]; ct != "" {
		return ct
	}
	return mimetype.Detect(r.Content).String()
}

// headerMap flattens an http.Header into the lowercase, last-wins form
// used by Response.
func headerMap(h http.Header) map[string]string {
	m := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) == 0 {
			continue
		}
		m[strings.ToLower(name)] = strings.TrimSpace(values[len(values)-1])
	}
	return m
}
