package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sand20man/bookstore/data"
	"github.com/sand20man/bookstore/data/dto"
	"github.com/sand20man/bookstore/internal/validator"
	"github.com/sand20man/bookstore/service"
)

// ListBooks godoc
// @Summary List books in the catalog
// @Description Lists books filtered by category and free-text search, ordered by the requested sort key
// @Tags books
// @Produce json
// @Param sortBy query string false "Sort key: title (alias name), author or price. Unrecognized values sort by title"
// @Param descending query bool false "Reverse the sort order"
// @Param category query []string false "Category filter, repeatable for multi-select"
// @Param search query string false "Case-insensitive substring match over title, author and classification"
// @Success 200 {array} data.Book
// @Failure 422
// @Failure 500
// @Router /v1/books [get]
func (h *Handler) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListBooks
	v := validator.New()
	qs := r.URL.Query()
	qsInput.SortBy = h.readString(qs, "sortBy", "title")
	qsInput.Descending = h.readBool(qs, "descending", false, v)
	qsInput.Categories = h.readValues(qs, "category", []string{})
	qsInput.Search = h.readString(qs, "search", "")
	if !v.Valid() {
		h.failedValidationResponse(w, r, v.Errors)
		return
	}
	query := data.Query{
		SortBy:     data.ParseSortKey(qsInput.SortBy),
		Descending: qsInput.Descending,
		Categories: qsInput.Categories,
		Search:     qsInput.Search,
	}
	books, err := h.service.ListBooks(query)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// CreateBook godoc
// @Summary Add a new book to the catalog
// @Tags books
// @Accept json
// @Produce json
// @Success 201 {object} data.Book
// @Failure 400
// @Failure 422
// @Failure 500
// @Router /v1/books [post]
func (h *Handler) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.BookRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.CreateBook(requestBody)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.failedValidationResponse(w, r, validationErr.Fields)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/books/%d", book.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"book": book}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowBook godoc
// @Summary Show details of a book
// @Tags books
// @Produce json
// @Param bookId path int true "ID of book to show"
// @Success 200 {object} data.Book
// @Failure 404
// @Failure 500
// @Router /v1/books/{bookId} [get]
func (h *Handler) showBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	book, err := h.service.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateBook godoc
// @Summary Replace all fields of a book
// @Description Replaces every mutable field wholesale; there is no partial patch
// @Tags books
// @Accept json
// @Produce json
// @Param bookId path int true "ID of book to update"
// @Success 200 {object} data.Book
// @Failure 400
// @Failure 404
// @Failure 409
// @Failure 422
// @Failure 500
// @Router /v1/books/{bookId} [put]
func (h *Handler) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.BookRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	book, err := h.service.UpdateBook(bookID, requestBody)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.As(err, &validationErr):
			h.failedValidationResponse(w, r, validationErr.Fields)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateBookCover godoc
// @Summary Upload a cover image for a book
// @Tags books
// @Accept mpfd
// @Produce json
// @Param bookId path int true "ID of book to update"
// @Param cover formData file true "Cover image (jpeg or png)"
// @Success 200 {object} data.Book
// @Failure 404
// @Failure 413
// @Failure 415
// @Failure 500
// @Router /v1/books/{bookId}/cover [patch]
func (h *Handler) updateBookCoverHandler(w http.ResponseWriter, r *http.Request) {
	// Set 2MB limit for request body size
	maxBytes := int64(2_097_152)
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	book, err := h.service.UpdateBookCover(bookID, r)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrContentTooLarge):
			h.contentTooLargeResponse(w, r)
		case errors.Is(err, service.ErrBadRequest):
			h.badRequestResponse(w, r, err)
		case errors.Is(err, service.ErrUnsupportedMediaType):
			h.unsupportedMediaTypeResponse(w, r)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteBook godoc
// @Summary Delete a book from the catalog
// @Tags books
// @Param bookId path int true "ID of book to delete"
// @Success 204
// @Failure 404
// @Failure 500
// @Router /v1/books/{bookId} [delete]
func (h *Handler) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.service.DeleteBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
