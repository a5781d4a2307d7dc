package data

import (
	"time"

	"github.com/sand20man/bookstore/internal/validator"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices serialize as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Book defines a book record in the catalog.
type Book struct {
	ID             int64           `json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	Title          string          `json:"title"`
	Author         string          `json:"author"`
	Publisher      string          `json:"publisher"`
	Isbn           string          `json:"isbn"`
	Classification string          `json:"classification"`
	Category       string          `json:"category"`
	PageCount      int32           `json:"page_count"`
	Price          decimal.Decimal `json:"price"`
	CoverPath      string          `json:"cover_path,omitempty"`
	Version        int32           `json:"-"`
}

func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.Title != "", "title", "must be provided")
	v.Check(len(book.Title) <= 500, "title", "must not be more than 500 bytes long")
	v.Check(book.Author != "", "author", "must be provided")
	v.Check(len(book.Author) <= 500, "author", "must not be more than 500 bytes long")
	v.Check(book.Publisher != "", "publisher", "must be provided")
	v.Check(book.Isbn != "", "isbn", "must be provided")
	v.Check(len(book.Isbn) <= 17, "isbn", "must not be more than 17 characters")
	v.Check(book.Classification != "", "classification", "must be provided")
	v.Check(book.Category != "", "category", "must be provided")
	v.Check(book.PageCount >= 0, "page_count", "must not be negative")
	v.Check(!book.Price.IsNegative(), "price", "must not be negative")
	v.Check(book.Price.Exponent() >= -2, "price", "must not have more than two decimal places")
}
