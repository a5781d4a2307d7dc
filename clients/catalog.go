package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sand20man/bookstore/data"
	"github.com/sand20man/bookstore/data/dto"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrFailedValidation = errors.New("failed validation")
)

// Catalog is a client for the bookstore catalog API. It translates HTTP
// status codes back into error kinds so callers never have to inspect
// responses themselves.
type Catalog struct {
	baseURL string
	client  *http.Client
}

// NewCatalog creates a catalog API client rooted at baseURL.
func NewCatalog(baseURL string, client *http.Client) *Catalog {
	if client == nil {
		client = NewHTTPClient()
	}
	return &Catalog{
		baseURL: baseURL,
		client:  client,
	}
}

// ListBooksURL returns the listing URL for a catalog query. The browse
// session also records it as the last-viewed navigation context.
func (c *Catalog) ListBooksURL(query data.Query) string {
	qs := url.Values{}
	qs.Set("sortBy", query.SortBy.String())
	qs.Set("descending", strconv.FormatBool(query.Descending))
	for _, category := range query.Categories {
		qs.Add("category", category)
	}
	if query.Search != "" {
		qs.Set("search", query.Search)
	}
	return c.baseURL + "/v1/books?" + qs.Encode()
}

// ListBooks retrieves the books matching a catalog query, in server order.
func (c *Catalog) ListBooks(ctx context.Context, query data.Query) ([]data.Book, error) {
	var response struct {
		Books []data.Book `json:"books"`
	}
	err := c.do(ctx, http.MethodGet, c.ListBooksURL(query), nil, &response)
	if err != nil {
		return nil, err
	}
	return response.Books, nil
}

// ListCategories retrieves the distinct categories in the catalog. The
// server responds with a bare JSON array.
func (c *Catalog) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := c.do(ctx, http.MethodGet, c.baseURL+"/v1/categories", nil, &categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateBook adds a book to the catalog and returns the stored record,
// including the identifier assigned by the store.
func (c *Catalog) CreateBook(ctx context.Context, requestBody dto.BookRequestBody) (*data.Book, error) {
	var response struct {
		Book data.Book `json:"book"`
	}
	err := c.do(ctx, http.MethodPost, c.baseURL+"/v1/books", requestBody, &response)
	if err != nil {
		return nil, err
	}
	return &response.Book, nil
}

// UpdateBook replaces all mutable fields of a book and returns the updated record.
func (c *Catalog) UpdateBook(ctx context.Context, bookID int64, requestBody dto.BookRequestBody) (*data.Book, error) {
	var response struct {
		Book data.Book `json:"book"`
	}
	u := fmt.Sprintf("%s/v1/books/%d", c.baseURL, bookID)
	err := c.do(ctx, http.MethodPut, u, requestBody, &response)
	if err != nil {
		return nil, err
	}
	return &response.Book, nil
}

// DeleteBook removes a book from the catalog. A missing identifier is
// reported as ErrNotFound.
func (c *Catalog) DeleteBook(ctx context.Context, bookID int64) error {
	u := fmt.Sprintf("%s/v1/books/%d", c.baseURL, bookID)
	return c.do(ctx, http.MethodDelete, u, nil, nil)
}

// do issues a JSON request and decodes the response into dst, mapping error
// status codes to the client's sentinel errors.
func (c *Catalog) do(ctx context.Context, method, url string, body interface{}, dst interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		js, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(js)
	} else {
		reqBody = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer res.Body.Close()
	switch {
	case res.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case res.StatusCode == http.StatusUnprocessableEntity:
		return ErrFailedValidation
	case res.StatusCode >= 400:
		return fmt.Errorf("catalog request failed with status %d", res.StatusCode)
	}
	if dst == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(dst)
}
