package browse

import (
	"context"
	"fmt"
	"sync"

	"github.com/sand20man/bookstore/cart"
	"github.com/sand20man/bookstore/data"
	"github.com/sand20man/bookstore/internal/pagination"
)

const defaultPageSize = 5

// Lister is the part of the catalog client the session reads from.
type Lister interface {
	ListBooks(ctx context.Context, query data.Query) ([]data.Book, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListBooksURL(query data.Query) string
}

// Session holds one shopper's listing state: the active query, the fetched
// books, the current page and the selected page size. It owns no goroutines;
// callers drive it by calling Refresh after changing the query.
type Session struct {
	mu          sync.Mutex
	catalog     Lister
	cart        *cart.Manager
	query       data.Query
	pageSize    int
	currentPage int
	books       []data.Book
	categories  []string
	err         error
	seq         uint64
	catSeq      uint64
}

func NewSession(catalog Lister, cartManager *cart.Manager) *Session {
	return &Session{
		catalog:     catalog,
		cart:        cartManager,
		pageSize:    defaultPageSize,
		currentPage: 1,
	}
}

// Refresh fetches the listing for the session's current query. Each call is
// sequence-numbered; if another Refresh started after this one, the result is
// discarded so that the last request wins. A failed fetch empties the listing
// and records the error for Err.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	query := s.query
	s.mu.Unlock()

	books, err := s.catalog.ListBooks(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return nil
	}
	if err != nil {
		s.books = nil
		s.err = fmt.Errorf("refresh listing: %w", err)
		return s.err
	}
	s.books = books
	s.err = nil
	return nil
}

// RefreshCategories fetches the category facet. Like Refresh, each call is
// sequence-numbered so a stale fetch cannot overwrite a newer one, and a
// failed fetch empties the facet and records the error.
func (s *Session) RefreshCategories(ctx context.Context) error {
	s.mu.Lock()
	s.catSeq++
	seq := s.catSeq
	s.mu.Unlock()

	categories, err := s.catalog.ListCategories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.catSeq {
		return nil
	}
	if err != nil {
		s.categories = nil
		s.err = fmt.Errorf("refresh categories: %w", err)
		return s.err
	}
	s.categories = categories
	return nil
}

// SetCategories replaces the category filter and resets to the first page.
func (s *Session) SetCategories(categories ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query.Categories = categories
	s.currentPage = 1
}

// SetSort replaces the sort key and direction and resets to the first page.
func (s *Session) SetSort(key data.SortKey, descending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query.SortBy = key
	s.query.Descending = descending
	s.currentPage = 1
}

// SetSearch replaces the free-text search term and resets to the first page.
func (s *Session) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query.Search = term
	s.currentPage = 1
}

// SetPageSize changes the page size and resets to the first page. Sizes
// below 1 fall back to the default.
func (s *Session) SetPageSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if size < 1 {
		size = defaultPageSize
	}
	s.pageSize = size
	s.currentPage = 1
}

// SetPage moves to the given page. Out-of-range values are normalized on the
// next Page call.
func (s *Session) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 1 {
		page = 1
	}
	s.currentPage = page
}

// Page returns the current page of the fetched listing along with the total
// number of pages. A current page beyond the last page resets to page one
// first.
func (s *Session) Page() ([]data.Book, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totalPages := pagination.TotalPages(len(s.books), s.pageSize)
	s.currentPage = pagination.Normalize(s.currentPage, totalPages)

	items, _ := pagination.Paginate(s.books, s.pageSize, s.currentPage)
	return items, totalPages
}

// CurrentPage returns the page Page would serve next.
func (s *Session) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	totalPages := pagination.TotalPages(len(s.books), s.pageSize)
	return pagination.Normalize(s.currentPage, totalPages)
}

// Categories returns the last fetched category facet.
func (s *Session) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := make([]string, len(s.categories))
	copy(categories, s.categories)
	return categories
}

// Err returns the error recorded by the last failed fetch, or nil after a
// successful one.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// AddToCart adds the book to the shopper's cart and records the session's
// current listing URL as the page to return to.
func (s *Session) AddToCart(book data.Book) error {
	s.mu.Lock()
	listingURL := s.catalog.ListBooksURL(s.query)
	s.mu.Unlock()

	if err := s.cart.AddToCart(book); err != nil {
		return err
	}
	return s.cart.SetLastViewedPage(listingURL)
}

// ContinueShoppingPath returns the listing URL recorded by the last
// AddToCart, or "/" when there is none.
func (s *Session) ContinueShoppingPath() string {
	return s.cart.LastViewedPage()
}

// Cart exposes the injected cart manager.
func (s *Session) Cart() *cart.Manager {
	return s.cart
}
