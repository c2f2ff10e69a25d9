// Package collection is the per-screen view-model shared by every admin
// resource: a fetched collection, its loading lifecycle, the view-side
// filter lens, and the post-mutation reconciliation contract.
package collection

import (
	"github.com/fydblock/fydadmin/internal/domain"
)

// Keyed exposes the stable identity used for reconciliation.
type Keyed interface {
	Key() string
}

// Resource is what a collection element must provide.
type Resource interface {
	Keyed
	domain.Filterable
}

// Phase is the fetch lifecycle of a screen's collection.
type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Failed
)

// Model holds one resource screen's state. It is not safe for concurrent
// use; each screen owns exactly one and drives it from its event loop.
type Model[T Resource] struct {
	phase Phase
	items []T
	err   error

	SearchTerm   string
	StatusFilter string
}

// New returns an idle model with the status filter passing everything.
func New[T Resource]() Model[T] {
	return Model[T]{StatusFilter: domain.FilterStatusAll}
}

// Phase reports the fetch lifecycle state.
func (m *Model[T]) Phase() Phase { return m.phase }

// Loading reports whether a fetch is in flight.
func (m *Model[T]) Loading() bool { return m.phase == Loading }

// Err returns the last fetch error, nil unless Failed.
func (m *Model[T]) Err() error { return m.err }

// Items returns the unfiltered collection in server order.
func (m *Model[T]) Items() []T { return m.items }

// Len returns the unfiltered collection size.
func (m *Model[T]) Len() int { return len(m.items) }

// StartFetch marks a fetch in flight. Existing items stay visible so a
// refresh does not blank the screen.
func (m *Model[T]) StartFetch() {
	m.phase = Loading
	m.err = nil
}

// FetchSucceeded replaces the collection wholesale and clears the loading
// flag. Filter state is untouched: a refresh never resets the lens.
func (m *Model[T]) FetchSucceeded(items []T) {
	m.items = items
	m.phase = Loaded
	m.err = nil
}

// FetchFailed clears the loading flag and records the error. No placeholder
// data is fabricated; the screen shows an explicit empty/error state.
func (m *Model[T]) FetchFailed(err error) {
	m.phase = Failed
	m.err = err
}

// Visible applies the filter lens to the current collection.
func (m *Model[T]) Visible() []T {
	return domain.Filter(m.items, m.SearchTerm, m.StatusFilter)
}

// Patch merge-patches the single item with the given key in place,
// the update reconciliation strategy for users and bots. Returns false
// when no item carries the key; local state is then left untouched.
func (m *Model[T]) Patch(key string, merge func(T) T) bool {
	for i, item := range m.items {
		if item.Key() == key {
			m.items[i] = merge(item)
			return true
		}
	}
	return false
}

// Remove drops the item with the given key, the delete reconciliation
// strategy. Removing an absent key is a clean no-op.
func (m *Model[T]) Remove(key string) bool {
	for i, item := range m.items {
		if item.Key() == key {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the item with the given key.
func (m *Model[T]) Find(key string) (T, bool) {
	for _, item := range m.items {
		if item.Key() == key {
			return item, true
		}
	}
	var zero T
	return zero, false
}
