package roam

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamlib/roam/transport"
)

func pageState(url string) *PageState {
	return newPageState(&transport.Response{
		Content:    []byte("<html><body>" + url + "</body></html>"),
		URL:        url,
		StatusLine: "HTTP/1.1 200 OK",
		StatusCode: 200,
		Headers:    map[string]string{"content-type": "text/html"},
	}, "")
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(0)

	assert.Equal(t, -1, h.Cursor())
	assert.Equal(t, 0, h.Len())

	_, err := h.Current()
	assert.ErrorIs(t, err, ErrNoState)
}

func TestHistoryPushAdvancesCursor(t *testing.T) {
	h := NewHistory(0)

	for i := 0; i < 5; i++ {
		h.Push(pageState(fmt.Sprintf("https://example.com/%d", i)))
		assert.Equal(t, h.Len()-1, h.Cursor())
		assert.Equal(t, i+1, h.Len())
	}

	current, err := h.Current()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/4", current.URL())
}

func TestHistoryEviction(t *testing.T) {
	const depth = 3
	h := NewHistory(depth)

	for i := 0; i < 10; i++ {
		h.Push(pageState(fmt.Sprintf("https://example.com/%d", i)))
		assert.LessOrEqual(t, h.Len(), depth)
	}

	current, err := h.Current()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/9", current.URL())

	// Oldest entries were evicted first.
	require.NoError(t, h.Back(2))
	current, err = h.Current()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/7", current.URL())
}

func TestHistoryPushReportsEvictions(t *testing.T) {
	h := NewHistory(2)

	assert.Equal(t, 0, h.Push(pageState("https://example.com/a")))
	assert.Equal(t, 0, h.Push(pageState("https://example.com/b")))
	assert.Equal(t, 1, h.Push(pageState("https://example.com/c")))
}

func TestHistoryTruncationOnNewNavigation(t *testing.T) {
	h := NewHistory(0)
	h.Push(pageState("https://example.com/a"))
	h.Push(pageState("https://example.com/b"))
	h.Push(pageState("https://example.com/c"))

	require.NoError(t, h.Back(1))
	h.Push(pageState("https://example.com/d"))

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())

	current, err := h.Current()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/d", current.URL())

	// Forward history was discarded.
	assert.ErrorIs(t, h.Forward(1), ErrOutOfRange)

	require.NoError(t, h.Back(2))
	current, err = h.Current()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", current.URL())
}

func TestHistoryMoveBounds(t *testing.T) {
	h := NewHistory(0)
	h.Push(pageState("https://example.com/a"))
	h.Push(pageState("https://example.com/b"))

	assert.ErrorIs(t, h.Back(5), ErrOutOfRange)
	assert.ErrorIs(t, h.Forward(1), ErrOutOfRange)

	require.NoError(t, h.Back(1))
	assert.ErrorIs(t, h.Back(1), ErrOutOfRange)

	require.NoError(t, h.Forward(1))
	assert.ErrorIs(t, h.Forward(1), ErrOutOfRange)
}

func TestHistoryMoveDoesNotMutateStates(t *testing.T) {
	h := NewHistory(0)
	h.Push(pageState("https://example.com/a"))
	h.Push(pageState("https://example.com/b"))

	require.NoError(t, h.Back(1))
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 0, h.Cursor())
}

func TestHistoryDisabled(t *testing.T) {
	h := NewHistory(1)

	for i := 0; i < 4; i++ {
		h.Push(pageState(fmt.Sprintf("https://example.com/%d", i)))
		assert.Equal(t, 1, h.Len())
	}

	assert.ErrorIs(t, h.Back(1), ErrHistoryDisabled)
	assert.ErrorIs(t, h.Forward(1), ErrHistoryDisabled)

	// The current page is still reachable.
	current, err := h.Current()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/3", current.URL())
}
