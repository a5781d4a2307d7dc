package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sand20man/bookstore/data"
)

type books interface {
	CreateBook(book *data.Book) error
	GetBook(bookID int64) (*data.Book, error)
	GetAllBooks(query data.Query) ([]data.Book, error)
	UpdateBook(book *data.Book) error
	DeleteBook(bookID int64) error
}

// categoriesArg binds the category filter for GetAllBooks. pq.Array over a
// nil slice binds SQL NULL, which would make the category guard NULL for
// every row and return an empty listing; an absent filter must bind an empty
// array so the guard stays true.
func categoriesArg(categories []string) interface{} {
	if categories == nil {
		categories = []string{}
	}
	return pq.Array(categories)
}

// CreateBook creates a new book record and fills in the store-assigned fields.
func (r *repository) CreateBook(book *data.Book) error {
	query := `
		INSERT INTO books (title, author, publisher, isbn, classification, category, page_count, price, cover_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, version`
	args := []interface{}{
		book.Title,
		book.Author,
		book.Publisher,
		book.Isbn,
		book.Classification,
		book.Category,
		book.PageCount,
		book.Price,
		book.CoverPath,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return r.db.QueryRowContext(ctx, query, args...).Scan(&book.ID, &book.CreatedAt, &book.Version)
}

// GetBook retrieves a book record by its ID.
func (r *repository) GetBook(bookID int64) (*data.Book, error) {
	if bookID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, title, author, publisher, isbn, classification, category, page_count, price, cover_path, version
		FROM books
		WHERE id = $1`
	var book data.Book
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, bookID).Scan(
		&book.ID,
		&book.CreatedAt,
		&book.Title,
		&book.Author,
		&book.Publisher,
		&book.Isbn,
		&book.Classification,
		&book.Category,
		&book.PageCount,
		&book.Price,
		&book.CoverPath,
		&book.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAllBooks retrieves all book records matching a catalog query. Records
// are filtered before they are sorted, and ties are broken by id so that the
// ordering is stable across requests.
func (r *repository) GetAllBooks(q data.Query) ([]data.Book, error) {
	// The sort column and direction come from a closed enumeration, never
	// from the raw query string, so they are safe to interpolate.
	query := fmt.Sprintf(`
		SELECT id, created_at, title, author, publisher, isbn, classification, category, page_count, price, cover_path, version
		FROM books
		WHERE (category = ANY($1) OR $1 = '{}')
		AND (
			title ILIKE '%%' || $2 || '%%'
			OR author ILIKE '%%' || $2 || '%%'
			OR classification ILIKE '%%' || $2 || '%%'
			OR $2 = ''
		)
		ORDER BY %s %s, id ASC`,
		q.SortBy.Column(), q.Direction(),
	)
	args := []interface{}{categoriesArg(q.Categories), q.Search}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	books := []data.Book{}
	for rows.Next() {
		var book data.Book
		err := rows.Scan(
			&book.ID,
			&book.CreatedAt,
			&book.Title,
			&book.Author,
			&book.Publisher,
			&book.Isbn,
			&book.Classification,
			&book.Category,
			&book.PageCount,
			&book.Price,
			&book.CoverPath,
			&book.Version,
		)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBook replaces all mutable fields of a book record.
func (r *repository) UpdateBook(book *data.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, publisher = $3, isbn = $4, classification = $5, category = $6, page_count = $7, price = $8, cover_path = $9, version = version + 1
		WHERE id = $10 AND version = $11
		RETURNING version`
	args := []interface{}{
		book.Title,
		book.Author,
		book.Publisher,
		book.Isbn,
		book.Classification,
		book.Category,
		book.PageCount,
		book.Price,
		book.CoverPath,
		book.ID,
		book.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteBook deletes a book record. A missing record is signaled with
// ErrRecordNotFound, never silently ignored.
func (r *repository) DeleteBook(bookID int64) error {
	if bookID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM books
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, bookID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
