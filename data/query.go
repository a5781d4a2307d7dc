package data

import (
	"sort"
	"strings"
)

// SortKey is the closed set of fields a book listing can be ordered by.
// Anything outside the set falls back to SortTitle, so an unrecognized
// query-string value can never reach the database.
type SortKey int8

const (
	SortTitle SortKey = iota
	SortAuthor
	SortPrice
)

// ParseSortKey maps a query-string sort value to a SortKey. Matching is
// case-insensitive and "name" is accepted as an alias for "title".
// Unrecognized or empty values default to SortTitle.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(s) {
	case "name", "title":
		return SortTitle
	case "author":
		return SortAuthor
	case "price":
		return SortPrice
	default:
		return SortTitle
	}
}

// String returns the canonical query-string value for the sort key.
func (k SortKey) String() string {
	switch k {
	case SortAuthor:
		return "author"
	case SortPrice:
		return "price"
	default:
		return "title"
	}
}

// Column returns the database column the sort key orders by.
func (k SortKey) Column() string {
	switch k {
	case SortAuthor:
		return "author"
	case SortPrice:
		return "price"
	default:
		return "title"
	}
}

// Query describes a catalog listing request: which records to retain and
// how to order them. Filtering is applied strictly before sorting.
type Query struct {
	SortBy     SortKey
	Descending bool
	Categories []string
	Search     string
}

// Direction returns the SQL sort direction for the query.
func (q Query) Direction() string {
	if q.Descending {
		return "DESC"
	}
	return "ASC"
}

// Match reports whether a book is retained by the query's filters.
// Category filtering is exact set membership; the free-text search is a
// case-insensitive substring match over title, author and classification.
func (q Query) Match(book Book) bool {
	if len(q.Categories) > 0 {
		found := false
		for _, c := range q.Categories {
			if book.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(book.Title), needle) &&
			!strings.Contains(strings.ToLower(book.Author), needle) &&
			!strings.Contains(strings.ToLower(book.Classification), needle) {
			return false
		}
	}
	return true
}

// Apply evaluates the query against a book collection: it filters first,
// then sorts the retained records. The sort is stable, so records that
// compare equal keep their relative order in the input collection. The
// input slice is not modified.
func (q Query) Apply(books []Book) []Book {
	result := make([]Book, 0, len(books))
	for _, book := range books {
		if q.Match(book) {
			result = append(result, book)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return q.less(result[i], result[j])
	})
	return result
}

func (q Query) less(a, b Book) bool {
	var cmp int
	switch q.SortBy {
	case SortAuthor:
		cmp = strings.Compare(a.Author, b.Author)
	case SortPrice:
		cmp = a.Price.Cmp(b.Price)
	default:
		cmp = strings.Compare(a.Title, b.Title)
	}
	if q.Descending {
		return cmp > 0
	}
	return cmp < 0
}
