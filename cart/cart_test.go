package cart

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sand20man/bookstore/data"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory Storage fake. failSet makes every write fail,
// for exercising the persistence-failure path.
type memoryStore struct {
	values  map[string]string
	failSet bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string]string)}
}

func (s *memoryStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *memoryStore) Set(key, value string) error {
	if s.failSet {
		return errors.New("storage unreachable")
	}
	s.values[key] = value
	return nil
}

func (s *memoryStore) Delete(key string) {
	delete(s.values, key)
}

func book(id int64, price string) data.Book {
	return data.Book{
		ID:             id,
		Title:          "Test Book",
		Author:         "Test Author",
		Publisher:      "Test Publisher",
		Isbn:           "978-0000000000",
		Classification: "Fiction",
		Category:       "Classics",
		Price:          decimal.RequireFromString(price),
	}
}

func TestAddToCart(t *testing.T) {
	t.Run("adding the same book twice yields one entry with quantity 2", func(t *testing.T) {
		m := NewManager(newMemoryStore())
		require.NoError(t, m.AddToCart(book(1, "12.00")))
		require.NoError(t, m.AddToCart(book(1, "12.00")))
		require.Len(t, m.Entries(), 1)
		assert.Equal(t, 2, m.ItemCount())
		assert.True(t, m.Total().Equal(decimal.RequireFromString("24.00")), "total is %s", m.Total())
	})

	t.Run("distinct books get distinct entries", func(t *testing.T) {
		m := NewManager(newMemoryStore())
		require.NoError(t, m.AddToCart(book(1, "12.00")))
		require.NoError(t, m.AddToCart(book(2, "7.25")))
		assert.Len(t, m.Entries(), 2)
		assert.Equal(t, 2, m.ItemCount())
		assert.True(t, m.Total().Equal(decimal.RequireFromString("19.25")))
	})

	t.Run("book snapshot is copied at add time", func(t *testing.T) {
		m := NewManager(newMemoryStore())
		b := book(1, "12.00")
		require.NoError(t, m.AddToCart(b))
		// A later catalog price change must not affect the cart.
		b.Price = decimal.RequireFromString("99.99")
		assert.True(t, m.Total().Equal(decimal.RequireFromString("12.00")))
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("sets the quantity absolutely", func(t *testing.T) {
		m := NewManager(newMemoryStore())
		require.NoError(t, m.AddToCart(book(1, "10.00")))
		require.NoError(t, m.UpdateQuantity(1, 5))
		assert.Equal(t, 5, m.ItemCount())
		assert.True(t, m.Total().Equal(decimal.RequireFromString("50.00")))
	})

	t.Run("is idempotent", func(t *testing.T) {
		m := NewManager(newMemoryStore())
		require.NoError(t, m.AddToCart(book(1, "10.00")))
		require.NoError(t, m.UpdateQuantity(1, 3))
		before := m.Entries()
		require.NoError(t, m.UpdateQuantity(1, 3))
		if diff := cmp.Diff(before, m.Entries()); diff != "" {
			t.Errorf("state changed on repeated update (-want +got):\n%s", diff)
		}
	})

	t.Run("zero or negative quantity removes the entry", func(t *testing.T) {
		m := NewManager(newMemoryStore())
		require.NoError(t, m.AddToCart(book(1, "12.00")))
		require.NoError(t, m.AddToCart(book(1, "12.00")))
		require.NoError(t, m.UpdateQuantity(1, 0))
		assert.Empty(t, m.Entries())
		assert.Equal(t, 0, m.ItemCount())

		require.NoError(t, m.AddToCart(book(2, "5.00")))
		require.NoError(t, m.UpdateQuantity(2, -1))
		assert.Empty(t, m.Entries())
	})
}

func TestRemoveFromCart(t *testing.T) {
	t.Run("removes the entry regardless of quantity", func(t *testing.T) {
		m := NewManager(newMemoryStore())
		require.NoError(t, m.AddToCart(book(1, "12.00")))
		require.NoError(t, m.AddToCart(book(1, "12.00")))
		require.NoError(t, m.RemoveFromCart(1))
		assert.Empty(t, m.Entries())
	})

	t.Run("absent id is a no-op and leaves other entries untouched", func(t *testing.T) {
		m := NewManager(newMemoryStore())
		require.NoError(t, m.AddToCart(book(1, "12.00")))
		before := m.Entries()
		require.NoError(t, m.RemoveFromCart(42))
		if diff := cmp.Diff(before, m.Entries()); diff != "" {
			t.Errorf("entries changed (-want +got):\n%s", diff)
		}
	})
}

func TestClear(t *testing.T) {
	store := newMemoryStore()
	m := NewManager(store)
	require.NoError(t, m.AddToCart(book(1, "12.00")))
	require.NoError(t, m.Clear())
	assert.Empty(t, m.Entries())
	assert.Equal(t, 0, m.ItemCount())
	assert.True(t, m.Total().IsZero())
	_, ok := store.Get("cart")
	assert.False(t, ok, "persisted snapshot must be erased")
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := newMemoryStore()
	m := NewManager(store)
	require.NoError(t, m.AddToCart(book(1, "12.00")))
	require.NoError(t, m.AddToCart(book(2, "7.25")))
	require.NoError(t, m.UpdateQuantity(2, 3))

	// A new manager over the same storage reproduces the same entries.
	restored := NewManager(store)
	if diff := cmp.Diff(m.Entries(), restored.Entries()); diff != "" {
		t.Errorf("restored cart differs (-want +got):\n%s", diff)
	}
	assert.Equal(t, 4, restored.ItemCount())
	assert.True(t, restored.Total().Equal(decimal.RequireFromString("33.75")))
}

func TestMalformedSnapshotFailsOpen(t *testing.T) {
	store := newMemoryStore()
	store.values["cart"] = `{"this is": "not a cart`
	m := NewManager(store)
	assert.Empty(t, m.Entries())
	assert.Equal(t, 0, m.ItemCount())

	// The cart must be usable afterwards.
	require.NoError(t, m.AddToCart(book(1, "12.00")))
	assert.Equal(t, 1, m.ItemCount())
}

func TestPersistenceFailureKeepsMemoryState(t *testing.T) {
	store := newMemoryStore()
	store.failSet = true
	m := NewManager(store)
	err := m.AddToCart(book(1, "12.00"))
	require.Error(t, err, "persistence failure must be observable")
	assert.Equal(t, 1, m.ItemCount(), "in-memory state must remain correct")
	assert.True(t, m.Total().Equal(decimal.RequireFromString("12.00")))
}

func TestLastViewedPage(t *testing.T) {
	t.Run("defaults to root when absent", func(t *testing.T) {
		m := NewManager(newMemoryStore())
		require.NoError(t, m.AddToCart(book(1, "12.00")))
		assert.Equal(t, "/", m.LastViewedPage())
	})

	t.Run("defaults to root when the cart is empty", func(t *testing.T) {
		m := NewManager(newMemoryStore())
		require.NoError(t, m.SetLastViewedPage("/v1/books?sortBy=price"))
		assert.Equal(t, "/", m.LastViewedPage())
	})

	t.Run("returns the persisted path", func(t *testing.T) {
		m := NewManager(newMemoryStore())
		require.NoError(t, m.AddToCart(book(1, "12.00")))
		require.NoError(t, m.SetLastViewedPage("/v1/books?sortBy=price"))
		assert.Equal(t, "/v1/books?sortBy=price", m.LastViewedPage())
	})
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(time.Minute)
	defer store.Stop()

	_, ok := store.Get("cart")
	assert.False(t, ok)

	require.NoError(t, store.Set("cart", "[]"))
	v, ok := store.Get("cart")
	require.True(t, ok)
	assert.Equal(t, "[]", v)

	store.Delete("cart")
	_, ok = store.Get("cart")
	assert.False(t, ok)
}
