// Package selection maintains the set of selected page indices for an open
// document, kept in sync with a human-readable 1-based range expression such
// as "1-3, 5".
package selection

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Model holds a selection of 0-based page indices over a document with a
// fixed page count. The zero value is not usable; call New.
type Model struct {
	pageCount int
	pages     map[int]struct{}
	text      string
}

// New returns an empty selection over a document with pageCount pages.
func New(pageCount int) *Model {
	if pageCount < 0 {
		pageCount = 0
	}
	return &Model{pageCount: pageCount, pages: make(map[int]struct{})}
}

// PageCount returns the page count the selection ranges over.
func (m *Model) PageCount() int { return m.pageCount }

// Count returns the number of selected pages.
func (m *Model) Count() int { return len(m.pages) }

// Has reports whether index is selected.
func (m *Model) Has(index int) bool {
	_, ok := m.pages[index]
	return ok
}

// Toggle flips membership of a 0-based page index and re-derives the textual
// form. Out-of-range indices are ignored.
func (m *Model) Toggle(index int) {
	if index < 0 || index >= m.pageCount {
		return
	}
	if _, ok := m.pages[index]; ok {
		delete(m.pages, index)
	} else {
		m.pages[index] = struct{}{}
	}
	m.text = Format(m.Indices())
}

// SelectAll selects every page of the document.
func (m *Model) SelectAll() {
	for i := 0; i < m.pageCount; i++ {
		m.pages[i] = struct{}{}
	}
	m.text = Format(m.Indices())
}

// Clear empties the selection.
func (m *Model) Clear() {
	m.pages = make(map[int]struct{})
	m.text = ""
}

// SetText replaces the selection with the pages described by a range
// expression. Invalid or out-of-range tokens are silently dropped.
func (m *Model) SetText(s string) {
	m.pages = make(map[int]struct{})
	for _, idx := range Parse(s, m.pageCount) {
		m.pages[idx] = struct{}{}
	}
	m.text = s
}

// Text returns the current textual form of the selection. After SetText this
// is the user's own input; after any other mutation it is the normalized form.
func (m *Model) Text() string { return m.text }

// Normalize re-derives the canonical textual form from the index set.
func (m *Model) Normalize() string {
	m.text = Format(m.Indices())
	return m.text
}

// Indices returns the selected 0-based indices in ascending order.
func (m *Model) Indices() []int {
	out := make([]int, 0, len(m.pages))
	for i := range m.pages {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Parse converts a 1-based range expression into sorted, deduplicated
// 0-based indices. Tokens are split on commas; each token is a single page
// number or an "a-b" range with the bounds in either order. Tokens that are
// non-numeric or entirely out of [1, pageCount] are dropped; ranges are
// clamped to the valid interval.
func Parse(s string, pageCount int) []int {
	set := make(map[int]struct{})
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		lo, hi, ok := parseToken(tok)
		if !ok {
			continue
		}
		if lo < 1 {
			lo = 1
		}
		if hi > pageCount {
			hi = pageCount
		}
		for p := lo; p <= hi; p++ {
			set[p-1] = struct{}{}
		}
	}
	out := make([]int, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func parseToken(tok string) (lo, hi int, ok bool) {
	if a, b, found := strings.Cut(tok, "-"); found {
		x, err1 := strconv.Atoi(strings.TrimSpace(a))
		y, err2 := strconv.Atoi(strings.TrimSpace(b))
		if err1 != nil || err2 != nil {
			return 0, 0, false
		}
		if x > y {
			x, y = y, x
		}
		return x, y, true
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, 0, false
	}
	return n, n, true
}

// Format renders sorted 0-based indices as a canonical 1-based range
// expression: consecutive runs collapse to "start-end", single pages stand
// alone, tokens join with ", ".
func Format(indices []int) string {
	if len(indices) == 0 {
		return ""
	}
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)

	var b strings.Builder
	start, prev := sorted[0], sorted[0]
	flush := func() {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		if start == prev {
			fmt.Fprintf(&b, "%d", start+1)
		} else {
			fmt.Fprintf(&b, "%d-%d", start+1, prev+1)
		}
	}
	for _, i := range sorted[1:] {
		if i == prev {
			continue
		}
		if i == prev+1 {
			prev = i
			continue
		}
		flush()
		start, prev = i, i
	}
	flush()
	return b.String()
}
