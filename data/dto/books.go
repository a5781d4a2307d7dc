package dto

import "github.com/shopspring/decimal"

// BookRequestBody defines the request body for the CreateBook and UpdateBook
// services. Updates replace every mutable field wholesale, so the same shape
// serves both operations and all fields are required.
type BookRequestBody struct {
	Title          string          `json:"title"`
	Author         string          `json:"author"`
	Publisher      string          `json:"publisher"`
	Isbn           string          `json:"isbn"`
	Classification string          `json:"classification"`
	Category       string          `json:"category"`
	PageCount      int32           `json:"page_count"`
	Price          decimal.Decimal `json:"price"`
}

// QsListBooks defines the query strings used for listing books.
type QsListBooks struct {
	SortBy     string
	Descending bool
	Categories []string
	Search     string
}
