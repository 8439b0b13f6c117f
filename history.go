package roam

// History is the bounded, cursor-addressed sequence of page states.
// Invariants: -1 <= cursor < len(states); cursor is -1 exactly when the
// sequence is empty; len(states) never exceeds a positive depth.
//
// Depth semantics: 0 tracks everything, 1 keeps only the current page and
// disables back/forward, N > 1 bounds the sequence at N with oldest-first
// eviction.
type History struct {
	states []*PageState
	cursor int
	depth  int
}

// NewHistory creates an empty history with the given depth.
func NewHistory(depth int) *History {
	if depth < 0 {
		depth = 0
	}
	return &History{cursor: -1, depth: depth}
}

// Push discards every state after the cursor, appends the new state, and
// advances the cursor to it. When the depth bound is exceeded the oldest
// states are evicted and the cursor shifts back by the evicted count.
// Returns how many states were evicted.
func (h *History) Push(state *PageState) int {
	h.states = append(h.states[:h.cursor+1], state)
	h.cursor = len(h.states) - 1

	if h.depth == 0 {
		return 0
	}
	excess := len(h.states) - h.depth
	if excess <= 0 {
		return 0
	}
	h.states = h.states[excess:]
	h.cursor -= excess
	return excess
}

// Current returns the state under the cursor. ErrNoState when empty;
// ErrOutOfRange if the cursor somehow left bounds.
func (h *History) Current() (*PageState, error) {
	if h.cursor == -1 {
		return nil, ErrNoState
	}
	if h.cursor < 0 || h.cursor >= len(h.states) {
		return nil, ErrOutOfRange
	}
	return h.states[h.cursor], nil
}

// Move shifts the cursor by delta without touching the states.
// ErrHistoryDisabled when the depth is exactly 1; ErrOutOfRange when the
// target leaves [0, len).
func (h *History) Move(delta int) error {
	if h.depth == 1 {
		return ErrHistoryDisabled
	}
	cursor := h.cursor + delta
	if cursor < 0 || cursor >= len(h.states) {
		return ErrOutOfRange
	}
	h.cursor = cursor
	return nil
}

// Back moves the cursor n pages back; n below 1 means 1.
func (h *History) Back(n int) error {
	if n < 1 {
		n = 1
	}
	return h.Move(-n)
}

// Forward moves the cursor n pages forward; n below 1 means 1.
func (h *History) Forward(n int) error {
	if n < 1 {
		n = 1
	}
	return h.Move(n)
}

// Len returns the number of tracked states.
func (h *History) Len() int { return len(h.states) }

// Cursor returns the current cursor index, -1 when empty.
func (h *History) Cursor() int { return h.cursor }
