// Package transport executes HTTP requests for the browser and returns
// immutable response snapshots.
//
// The client follows redirects up to a fixed cap, keeps cookies in memory
// for the life of the process only, and negotiates gzip/deflate content
// encoding. Decoding is done here rather than by net/http so that bodies
// declared "deflate" but sent without zlib framing can still be recovered.
//
// Every network, timeout, or redirect-limit failure wraps ErrTransport so
// callers can match the whole class with errors.Is.
package transport
