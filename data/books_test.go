package data

import (
	"encoding/json"
	"testing"

	"github.com/sand20man/bookstore/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookPriceMarshalsAsNumber(t *testing.T) {
	book := Book{ID: 1, Title: "Dune", Price: decimal.RequireFromString("9.99")}
	js, err := json.Marshal(book)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"price":9.99`, "price must be a JSON number, not a quoted string")

	var decoded Book
	require.NoError(t, json.Unmarshal(js, &decoded))
	assert.True(t, decoded.Price.Equal(book.Price))
}

func TestValidateBook(t *testing.T) {
	valid := func() *Book {
		return &Book{
			Title:          "Anna Karenina",
			Author:         "Leo Tolstoy",
			Publisher:      "Penguin Classics",
			Isbn:           "978-0140449174",
			Classification: "Fiction",
			Category:       "Classics",
			PageCount:      864,
			Price:          decimal.RequireFromString("12.99"),
		}
	}

	tests := []struct {
		name      string
		mutate    func(b *Book)
		wantField string
	}{
		{"valid book", func(b *Book) {}, ""},
		{"missing title", func(b *Book) { b.Title = "" }, "title"},
		{"missing author", func(b *Book) { b.Author = "" }, "author"},
		{"missing isbn", func(b *Book) { b.Isbn = "" }, "isbn"},
		{"negative page count", func(b *Book) { b.PageCount = -1 }, "page_count"},
		{"negative price", func(b *Book) { b.Price = decimal.RequireFromString("-0.01") }, "price"},
		{"three decimal places", func(b *Book) { b.Price = decimal.RequireFromString("9.999") }, "price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := valid()
			tt.mutate(book)
			v := validator.New()
			ValidateBook(v, book)
			if tt.wantField == "" {
				assert.True(t, v.Valid(), "unexpected errors: %v", v.Errors)
				return
			}
			assert.Contains(t, v.Errors, tt.wantField)
		})
	}
}
