package service

import (
	"errors"
	"net/http"

	"github.com/sand20man/bookstore/clients"
	"github.com/sand20man/bookstore/data"
	"github.com/sand20man/bookstore/data/dto"
	"github.com/sand20man/bookstore/internal/validator"
	"github.com/sand20man/bookstore/repository"
)

type books interface {
	CreateBook(requestBody dto.BookRequestBody) (*data.Book, error)
	GetBook(bookID int64) (*data.Book, error)
	ListBooks(query data.Query) ([]data.Book, error)
	UpdateBook(bookID int64, requestBody dto.BookRequestBody) (*data.Book, error)
	UpdateBookCover(bookID int64, r *http.Request) (*data.Book, error)
	DeleteBook(bookID int64) error
}

// CreateBook service creates a new book record. The store assigns the
// identifier; the stored record is returned with it filled in.
func (s *service) CreateBook(requestBody dto.BookRequestBody) (*data.Book, error) {
	book := &data.Book{
		Title:          requestBody.Title,
		Author:         requestBody.Author,
		Publisher:      requestBody.Publisher,
		Isbn:           requestBody.Isbn,
		Classification: requestBody.Classification,
		Category:       requestBody.Category,
		PageCount:      requestBody.PageCount,
		Price:          requestBody.Price,
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateBook(book)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// GetBook service retrieves the details of a book.
func (s *service) GetBook(bookID int64) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// ListBooks service retrieves the book records matching a catalog query.
// The store filters before it sorts, so excluded records never influence
// the ordering.
func (s *service) ListBooks(query data.Query) ([]data.Book, error) {
	books, err := s.repo.GetAllBooks(query)
	if err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBook service replaces all mutable fields of a book atomically.
// There is no partial patch: the request body must carry every field.
func (s *service) UpdateBook(bookID int64, requestBody dto.BookRequestBody) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	book.Title = requestBody.Title
	book.Author = requestBody.Author
	book.Publisher = requestBody.Publisher
	book.Isbn = requestBody.Isbn
	book.Classification = requestBody.Classification
	book.Category = requestBody.Category
	book.PageCount = requestBody.PageCount
	book.Price = requestBody.Price
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return book, nil
}

// UpdateBookCover service uploads a cover image for a book and stores its URL.
func (s *service) UpdateBookCover(bookID int64, r *http.Request) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	err = r.ParseMultipartForm(5000)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesError):
			return nil, ErrContentTooLarge
		default:
			return nil, ErrBadRequest
		}
	}
	file, fileHeader, err := r.FormFile("cover")
	if err != nil {
		return nil, ErrBadRequest
	}
	defer file.Close()
	buffer, mtype, err := s.detectMimeType(file, fileHeader)
	if err != nil {
		return nil, err
	}
	supportedMediaType := []string{
		"image/jpeg",
		"image/png",
	}
	if validMime := validator.Mime(mtype, supportedMediaType...); !validMime {
		return nil, ErrUnsupportedMediaType
	}
	s3Client, err := clients.NewS3Client(s.config)
	if err != nil {
		return nil, err
	}
	coverPath, err := s.uploadCoverToS3(s3Client, buffer, mtype, fileHeader)
	if err != nil {
		return nil, err
	}
	book.CoverPath = coverPath
	err = s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return book, nil
}

// DeleteBook service deletes a book.
func (s *service) DeleteBook(bookID int64) error {
	err := s.repo.DeleteBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}
