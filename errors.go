package roam

import "errors"

// Error kinds surfaced by the browser. Transport failures carry their own
// kind, transport.ErrTransport.
var (
	// ErrNoState means the history is empty: nothing has been opened yet.
	ErrNoState = errors.New("no state")

	// ErrOutOfRange means a cursor move would leave the history bounds.
	ErrOutOfRange = errors.New("index out of range")

	// ErrHistoryDisabled means back/forward was attempted while history
	// tracking is disabled.
	ErrHistoryDisabled = errors.New("not tracking history")

	// ErrMissingHref means a link element has no navigable href.
	ErrMissingHref = errors.New("link element must have href attribute")

	// ErrNoDocument means a document query was attempted with no
	// parseable page available.
	ErrNoDocument = errors.New("no document available")
)
