package repository_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/lib/pq"
	"github.com/sand20man/bookstore/data"
	"github.com/sand20man/bookstore/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type booksRepositorySuite struct {
	suite.Suite

	repo repository.Repository
	db   *sql.DB
}

// entry point to run the tests in the suite
func TestBooksRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed repository tests in short mode")
	}
	suite.Run(t, new(booksRepositorySuite))
}

// before all tests in the suite
func (suite *booksRepositorySuite) SetupSuite() {
	ctx := context.Background()

	_, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)

	suite.db, err = sql.Open("postgres", connStr)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.PingContext(ctx))

	suite.repo = repository.New(suite.db)
}

// after all tests in the suite
func (suite *booksRepositorySuite) TearDownSuite() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *booksRepositorySuite) deleteAll() {
	_, err := suite.db.Exec("TRUNCATE books RESTART IDENTITY")
	suite.Require().NoError(err)
}

func newBook(title, author, category, price string) *data.Book {
	return &data.Book{
		Title:          title,
		Author:         author,
		Publisher:      "Test Publisher",
		Isbn:           "978-0000000000",
		Classification: "Fiction",
		Category:       category,
		PageCount:      200,
		Price:          decimal.RequireFromString(price),
	}
}

func (suite *booksRepositorySuite) seed(books ...*data.Book) {
	for _, b := range books {
		suite.Require().NoError(suite.repo.CreateBook(b))
	}
}

func (suite *booksRepositorySuite) TestCreateAndGetBook() {
	defer suite.deleteAll()

	book := newBook("Dune", "Frank Herbert", "Science Fiction", "9.99")
	suite.Require().NoError(suite.repo.CreateBook(book))
	suite.Positive(book.ID)
	suite.EqualValues(1, book.Version)
	suite.False(book.CreatedAt.IsZero())

	got, err := suite.repo.GetBook(book.ID)
	suite.Require().NoError(err)
	suite.Equal("Dune", got.Title)
	suite.Equal("Science Fiction", got.Category)
	suite.True(got.Price.Equal(decimal.RequireFromString("9.99")))
}

func (suite *booksRepositorySuite) TestGetBookNotFound() {
	_, err := suite.repo.GetBook(9999)
	suite.ErrorIs(err, repository.ErrRecordNotFound)

	_, err = suite.repo.GetBook(0)
	suite.ErrorIs(err, repository.ErrRecordNotFound)
}

func (suite *booksRepositorySuite) TestGetAllBooks() {
	defer suite.deleteAll()

	suite.seed(
		newBook("The Pragmatic Programmer", "Andrew Hunt", "Technology", "25.50"),
		newBook("Anna Karenina", "Leo Tolstoy", "Classics", "10.00"),
		newBook("Dune", "Frank Herbert", "Science Fiction", "7.25"),
		newBook("War and Peace", "Leo Tolstoy", "Classics", "10.00"),
	)

	suite.Run("default order is title ascending", func() {
		books, err := suite.repo.GetAllBooks(data.Query{})
		suite.Require().NoError(err)
		suite.Require().Len(books, 4)
		suite.Equal("Anna Karenina", books[0].Title)
		suite.Equal("War and Peace", books[3].Title)
	})

	suite.Run("price descending with id tie-break", func() {
		books, err := suite.repo.GetAllBooks(data.Query{SortBy: data.SortPrice, Descending: true})
		suite.Require().NoError(err)
		suite.Require().Len(books, 4)
		suite.True(books[0].Price.Equal(decimal.RequireFromString("25.50")))
		// The two 10.00 books keep insertion order.
		suite.Equal("Anna Karenina", books[1].Title)
		suite.Equal("War and Peace", books[2].Title)
		suite.True(books[3].Price.Equal(decimal.RequireFromString("7.25")))
	})

	suite.Run("category filter is exact membership", func() {
		books, err := suite.repo.GetAllBooks(data.Query{Categories: []string{"Classics"}})
		suite.Require().NoError(err)
		suite.Require().Len(books, 2)
		for _, b := range books {
			suite.Equal("Classics", b.Category)
		}

		books, err = suite.repo.GetAllBooks(data.Query{Categories: []string{"Classic"}})
		suite.Require().NoError(err)
		suite.Empty(books)
	})

	suite.Run("multi-select categories", func() {
		books, err := suite.repo.GetAllBooks(data.Query{Categories: []string{"Classics", "Technology"}})
		suite.Require().NoError(err)
		suite.Len(books, 3)
	})

	suite.Run("search matches substrings case-insensitively", func() {
		books, err := suite.repo.GetAllBooks(data.Query{Search: "tolstoy"})
		suite.Require().NoError(err)
		suite.Require().Len(books, 2)

		books, err = suite.repo.GetAllBooks(data.Query{Search: "pragmatic"})
		suite.Require().NoError(err)
		suite.Require().Len(books, 1)
		suite.Equal("The Pragmatic Programmer", books[0].Title)
	})

	suite.Run("no match returns an empty slice", func() {
		books, err := suite.repo.GetAllBooks(data.Query{Search: "zzzz"})
		suite.Require().NoError(err)
		suite.NotNil(books)
		suite.Empty(books)
	})
}

func (suite *booksRepositorySuite) TestUpdateBook() {
	defer suite.deleteAll()

	book := newBook("Dune", "Frank Herbert", "Science Fiction", "9.99")
	suite.seed(book)

	suite.Run("replaces fields and bumps the version", func() {
		book.Title = "Dune Messiah"
		book.Price = decimal.RequireFromString("11.50")
		suite.Require().NoError(suite.repo.UpdateBook(book))
		suite.EqualValues(2, book.Version)

		got, err := suite.repo.GetBook(book.ID)
		suite.Require().NoError(err)
		suite.Equal("Dune Messiah", got.Title)
		suite.True(got.Price.Equal(decimal.RequireFromString("11.50")))
	})

	suite.Run("stale version reports an edit conflict", func() {
		stale := *book
		stale.Version = 1
		suite.ErrorIs(suite.repo.UpdateBook(&stale), repository.ErrEditConflict)
	})
}

func (suite *booksRepositorySuite) TestDeleteBook() {
	defer suite.deleteAll()

	book := newBook("Dune", "Frank Herbert", "Science Fiction", "9.99")
	suite.seed(book)

	suite.Require().NoError(suite.repo.DeleteBook(book.ID))
	_, err := suite.repo.GetBook(book.ID)
	suite.ErrorIs(err, repository.ErrRecordNotFound)

	suite.ErrorIs(suite.repo.DeleteBook(book.ID), repository.ErrRecordNotFound)
}

func (suite *booksRepositorySuite) TestGetAllCategories() {
	defer suite.deleteAll()

	suite.seed(
		newBook("The Pragmatic Programmer", "Andrew Hunt", "Technology", "25.50"),
		newBook("Anna Karenina", "Leo Tolstoy", "Classics", "10.00"),
		newBook("War and Peace", "Leo Tolstoy", "Classics", "10.00"),
	)

	categories, err := suite.repo.GetAllCategories()
	suite.Require().NoError(err)
	suite.Equal([]string{"Classics", "Technology"}, categories)
}
