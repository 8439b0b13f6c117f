package transport

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// decodeBody decodes a response body according to its declared content
// encoding. Unknown or empty encodings pass through untouched.
func decodeBody(raw []byte, encoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "gzip":
		// gzip framing is unambiguous, no fallback needed.
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case "deflate":
		dr := newDeflateReader(bytes.NewReader(raw))
		defer dr.Close()
		return io.ReadAll(dr)
	default:
		return raw, nil
	}
}

// deflateReader decodes a deflate-encoded stream. Servers disagree on what
// "deflate" means: most send zlib-wrapped data, some send a bare DEFLATE
// stream with no zlib header. Input is buffered until the first read
// succeeds; if zlib framing is rejected on that first attempt, the buffered
// input is replayed through a raw DEFLATE inflater. Once a framing mode has
// worked, buffering stops and the mode is kept for the rest of the stream.
type deflateReader struct {
	src   *replaySource
	r     io.ReadCloser
	tried bool
}

func newDeflateReader(src io.Reader) *deflateReader {
	return &deflateReader{src: newReplaySource(src)}
}

func (d *deflateReader) Read(p []byte) (int, error) {
	if !d.tried {
		d.tried = true
		zr, err := zlib.NewReader(d.src)
		if err == nil {
			var n int
			n, err = zr.Read(p)
			if err == nil || err == io.EOF {
				d.src.commit()
				d.r = zr
				return n, err
			}
		}
		// zlib framing rejected on the very first attempt; replay the
		// consumed input as a raw DEFLATE stream. Errors from here on
		// propagate normally.
		d.src.rewind()
		d.r = flate.NewReader(d.src)
	}
	return d.r.Read(p)
}

func (d *deflateReader) Close() error {
	if d.r == nil {
		return nil
	}
	return d.r.Close()
}

// replaySource records bytes consumed from the underlying reader so a
// single rewind can replay them. commit drops the record once a framing
// mode has been decided.
type replaySource struct {
	src       io.Reader
	consumed  bytes.Buffer
	replay    *bytes.Reader
	recording bool
}

func newReplaySource(src io.Reader) *replaySource {
	return &replaySource{src: src, recording: true}
}

func (r *replaySource) Read(p []byte) (int, error) {
	if r.replay != nil {
		n, err := r.replay.Read(p)
		if n > 0 {
			return n, nil
		}
		if err != nil && err != io.EOF {
			return n, err
		}
		r.replay = nil
	}
	n, err := r.src.Read(p)
	if r.recording && n > 0 {
		r.consumed.Write(p[:n])
	}
	return n, err
}

func (r *replaySource) commit() {
	r.recording = false
	r.consumed.Reset()
}

func (r *replaySource) rewind() {
	if !r.recording {
		panic(fmt.Sprintf("transport: rewind after commit (%d bytes dropped)", r.consumed.Len()))
	}
	r.recording = false
	r.replay = bytes.NewReader(r.consumed.Bytes())
}
