// Package cart implements the client-side shopping cart: an in-memory set
// of book entries with derived totals, persisted as a full snapshot to a
// session-scoped storage port on every mutation.
package cart

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sand20man/bookstore/data"
	"github.com/shopspring/decimal"
)

const (
	cartKey           = "cart"
	lastViewedPageKey = "lastViewedPage"
	rootPath          = "/"
)

// Entry holds a book snapshot and its quantity. The snapshot is copied when
// the book is added and never re-fetched; a price change in the catalog does
// not affect a cart already holding the book.
type Entry struct {
	Book     data.Book `json:"book"`
	Quantity int       `json:"quantity"`
}

// Manager owns the cart state for a single session. It is explicitly
// constructed around a Storage port, so tests can instantiate isolated
// instances instead of sharing ambient state.
type Manager struct {
	mu      sync.Mutex
	store   Storage
	entries []Entry
}

// NewManager creates a cart manager, restoring state from the last persisted
// snapshot if one is present and well-formed. Malformed persisted data is
// treated as absent: the cart starts empty rather than failing.
func NewManager(store Storage) *Manager {
	m := &Manager{store: store}
	snapshot, ok := store.Get(cartKey)
	if !ok {
		return m
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(snapshot), &entries); err != nil {
		return m
	}
	for _, entry := range entries {
		if entry.Quantity > 0 {
			m.entries = append(m.entries, entry)
		}
	}
	return m
}

// AddToCart adds one copy of a book. If the cart already holds an entry for
// the book's identifier its quantity is incremented; there is never more
// than one entry per book. The full snapshot is persisted; on persistence
// failure the in-memory state is kept and the error returned.
func (m *Manager) AddToCart(book data.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		if m.entries[i].Book.ID == book.ID {
			m.entries[i].Quantity++
			return m.persist()
		}
	}
	m.entries = append(m.entries, Entry{Book: book, Quantity: 1})
	return m.persist()
}

// RemoveFromCart deletes the entry for a book entirely, regardless of its
// quantity. Removing an absent identifier is a no-op.
func (m *Manager) RemoveFromCart(bookID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remove(bookID)
}

// UpdateQuantity sets the entry's quantity to exactly the given value.
// A quantity of zero or less behaves as RemoveFromCart.
func (m *Manager) UpdateQuantity(bookID int64, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if quantity <= 0 {
		return m.remove(bookID)
	}
	for i := range m.entries {
		if m.entries[i].Book.ID == bookID {
			m.entries[i].Quantity = quantity
			return m.persist()
		}
	}
	return nil
}

// Clear empties all entries and erases the persisted snapshot.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	m.store.Delete(cartKey)
	return nil
}

// Entries returns a copy of the current cart entries in insertion order.
func (m *Manager) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]Entry, len(m.entries))
	copy(entries, m.entries)
	return entries
}

// ItemCount returns the sum of quantities across all entries. It is derived
// from the current entries on every call, never cached.
func (m *Manager) ItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, entry := range m.entries {
		count += entry.Quantity
	}
	return count
}

// Total returns the sum of price times quantity across all entries.
func (m *Manager) Total() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := decimal.Zero
	for _, entry := range m.entries {
		total = total.Add(entry.Book.Price.Mul(decimal.NewFromInt(int64(entry.Quantity))))
	}
	return total
}

// SetLastViewedPage persists the listing path the user last viewed, so
// "continue shopping" can return there. It is overwritten on every
// add-to-cart action.
func (m *Manager) SetLastViewedPage(path string) error {
	if err := m.store.Set(lastViewedPageKey, path); err != nil {
		return fmt.Errorf("persist last viewed page: %w", err)
	}
	return nil
}

// LastViewedPage returns the persisted navigation context, defaulting to the
// root path when none is persisted or when the cart is empty.
func (m *Manager) LastViewedPage() string {
	m.mu.Lock()
	empty := len(m.entries) == 0
	m.mu.Unlock()
	if empty {
		return rootPath
	}
	path, ok := m.store.Get(lastViewedPageKey)
	if !ok || path == "" {
		return rootPath
	}
	return path
}

// remove deletes a book's entry and persists if anything changed.
// The caller must hold the mutex.
func (m *Manager) remove(bookID int64) error {
	for i := range m.entries {
		if m.entries[i].Book.ID == bookID {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return m.persist()
		}
	}
	return nil
}

// persist writes the full cart snapshot to storage. The caller must hold
// the mutex. In-memory state is already updated when persist runs, so a
// storage failure leaves the cart correct in memory and is surfaced to the
// caller instead of being dropped.
func (m *Manager) persist() error {
	snapshot, err := json.Marshal(m.entries)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := m.store.Set(cartKey, string(snapshot)); err != nil {
		return fmt.Errorf("persist cart snapshot: %w", err)
	}
	return nil
}
