// Package pagination slices ordered collections into fixed-size pages.
// Pages are one-indexed. A collection always has at least one page, even
// when it is empty.
package pagination

// TotalPages returns the number of pages needed to hold n items at the
// given page size. The result is never less than 1.
func TotalPages(n, pageSize int) int {
	if pageSize < 1 {
		return 1
	}
	pages := (n + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Normalize returns a valid current page for the given total. Whenever the
// collection changes (a filter narrowed results, the page size changed), the
// caller must pass the previous page through Normalize: a page past the end
// resets to page 1.
func Normalize(currentPage, totalPages int) int {
	if currentPage < 1 || currentPage > totalPages {
		return 1
	}
	return currentPage
}

// Paginate returns the items on currentPage along with the total number of
// pages. currentPage is one-indexed and is expected to be normalized first;
// an out-of-range page yields an empty slice.
func Paginate[T any](items []T, pageSize, currentPage int) ([]T, int) {
	totalPages := TotalPages(len(items), pageSize)
	if pageSize < 1 || currentPage < 1 || currentPage > totalPages {
		return []T{}, totalPages
	}
	start := (currentPage - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}
