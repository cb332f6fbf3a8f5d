package model

import (
	"encoding/json"
	"sort"
)

// History is the set of date keys on which a habit was completed or has a
// measurement. It remembers insertion order only so that a snapshot
// round-trips unchanged; membership is all that matters semantically.
type History struct {
	order []string
	index map[string]struct{}
}

// NewHistory returns a history holding the given dates, duplicates dropped.
func NewHistory(dates ...string) History {
	h := History{index: make(map[string]struct{}, len(dates))}
	for _, d := range dates {
		h.Add(d)
	}
	return h
}

// Has reports whether date is in the set.
func (h History) Has(date string) bool {
	_, ok := h.index[date]
	return ok
}

// Add inserts date. It reports false when the date was already present.
func (h *History) Add(date string) bool {
	if h.index == nil {
		h.index = make(map[string]struct{})
	}
	if _, ok := h.index[date]; ok {
		return false
	}
	h.index[date] = struct{}{}
	h.order = append(h.order, date)
	return true
}

// Remove deletes date if present.
func (h *History) Remove(date string) {
	if _, ok := h.index[date]; !ok {
		return
	}
	delete(h.index, date)
	for i, d := range h.order {
		if d == date {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of dates.
func (h History) Len() int {
	return len(h.order)
}

// Dates returns a copy of the dates in insertion order.
func (h History) Dates() []string {
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// Sorted returns the dates in chronological order.
func (h History) Sorted() []string {
	out := h.Dates()
	sort.Strings(out)
	return out
}

// Latest returns the most recent date.
func (h History) Latest() (string, bool) {
	latest := ""
	for _, d := range h.order {
		if d > latest {
			latest = d
		}
	}
	return latest, latest != ""
}

// CountBetween counts dates within [from, to], inclusive.
func (h History) CountBetween(from, to string) int {
	n := 0
	for _, d := range h.order {
		if d >= from && d <= to {
			n++
		}
	}
	return n
}

// MarshalJSON encodes the history as an array of date keys.
func (h History) MarshalJSON() ([]byte, error) {
	if h.order == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h.order)
}

// UnmarshalJSON decodes an array of date keys, collapsing duplicates.
func (h *History) UnmarshalJSON(data []byte) error {
	var dates []string
	if err := json.Unmarshal(data, &dates); err != nil {
		return err
	}
	*h = NewHistory(dates...)
	return nil
}
