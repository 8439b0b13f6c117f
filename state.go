package roam

import (
	"sync"

	"github.com/roamlib/roam/document"
	"github.com/roamlib/roam/transport"
)

// PageState is an immutable snapshot of one navigated page: the response
// plus a lazily parsed document. Parsing happens at most once, on first
// access to Parsed, and the handle is cached thereafter.
type PageState struct {
	response *transport.Response
	parser   string

	once     sync.Once
	parsed   *document.Document
	parseErr error
}

func newPageState(response *transport.Response, parser string) *PageState {
	return &PageState{response: response, parser: parser}
}

// Response returns the wrapped response snapshot.
func (s *PageState) Response() *transport.Response { return s.response }

// URL returns the final URL of the wrapped response.
func (s *PageState) URL() string { return s.response.URL }

// Parsed parses the response content on first call and returns the cached
// document afterwards. A parse failure is returned on every call; it never
// mutates the response.
func (s *PageState) Parsed() (*document.Document, error) {
	s.once.Do(func() {
		s.parsed, s.parseErr = document.Parse(s.response.Content, s.parser)
	})
	return s.parsed, s.parseErr
}
