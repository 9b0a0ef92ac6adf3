// Package tui provides a Bubble Tea terminal UI that runs the generator with
// a live progress log, then lets the user query the finished shuffle.
package tui

import "strings"

// History keeps recent queries for Up/Down recall. Queries match entrance
// ids without regard to case, so history compares them the same way.
type History struct {
	queries []string
	limit   int
	pos     int // index into queries while browsing, -1 otherwise
}

// NewHistory creates a history that keeps at most limit queries.
func NewHistory(limit int) *History {
	return &History{queries: make([]string, 0, limit), limit: limit, pos: -1}
}

// Push records a query. Blank input, repeat shortcuts and a query equal to
// the previous one (ignoring case and spacing) are not recorded.
func (h *History) Push(query string) {
	query = strings.Join(strings.Fields(query), " ")
	if query == "" || isRepeat(query) {
		return
	}
	if n := len(h.queries); n > 0 && strings.EqualFold(h.queries[n-1], query) {
		return
	}
	h.queries = append(h.queries, query)
	if over := len(h.queries) - h.limit; over > 0 {
		h.queries = h.queries[over:]
	}
}

// isRepeat reports whether query is the again shortcut.
func isRepeat(query string) bool {
	q := strings.ToLower(query)
	return q == "again" || q == "g"
}

// Prev steps back to an older query. It stays on the oldest one.
func (h *History) Prev() (string, bool) {
	if len(h.queries) == 0 {
		return "", false
	}
	switch {
	case h.pos < 0:
		h.pos = len(h.queries) - 1
	case h.pos > 0:
		h.pos--
	}
	return h.queries[h.pos], true
}

// Next steps forward. Past the newest query it reports false and stops
// browsing.
func (h *History) Next() (string, bool) {
	if h.pos < 0 {
		return "", false
	}
	h.pos++
	if h.pos == len(h.queries) {
		h.pos = -1
		return "", false
	}
	return h.queries[h.pos], true
}

// ResetCursor stops browsing.
func (h *History) ResetCursor() {
	h.pos = -1
}
