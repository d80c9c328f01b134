package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-bookshelf/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBookRepo(t *testing.T) (BookRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return NewBookRepository(db), mock
}

func bookRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "pages", "price", "author_id", "original_filename", "file_id"})
}

func TestCreateBook(t *testing.T) {
	repo, mock := newTestBookRepo(t)

	book := models.Book{ID: testBookID, Name: "Dune", Pages: 412, Price: 9.99, AuthorID: testUserID}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO books (id,name,pages,price,author_id) VALUES ($1,$2,$3,$4,$5) RETURNING")).
		WithArgs(testBookID, "Dune", 412, 9.99, testUserID).
		WillReturnRows(bookRows().AddRow(testBookID, "Dune", 412, 9.99, testUserID, "", ""))

	created, err := repo.CreateBook(context.Background(), book)
	require.NoError(t, err)
	assert.Equal(t, book, created)
	assert.False(t, created.HasContent())
}

func TestCreateBook_Error(t *testing.T) {
	repo, mock := newTestBookRepo(t)

	mock.ExpectQuery("INSERT INTO books").WillReturnError(pgError(pgerrcode.CheckViolation))

	_, err := repo.CreateBook(context.Background(), models.Book{ID: testBookID})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestFindBookByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newTestBookRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM books WHERE id = $1")).
			WithArgs(testBookID).
			WillReturnRows(bookRows().AddRow(testBookID, "Dune", 412, 9.99, testUserID, "dune.pdf", "file-1"))

		book, err := repo.FindBookByID(context.Background(), testBookID)
		require.NoError(t, err)
		assert.Equal(t, "dune.pdf", book.OriginalFilename)
		assert.True(t, book.HasContent())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestBookRepo(t)

		mock.ExpectQuery("FROM books").WillReturnError(sql.ErrNoRows)

		_, err := repo.FindBookByID(context.Background(), testBookID)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		repo, _ := newTestBookRepo(t)

		_, err := repo.FindBookByID(context.Background(), "42")
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestFindBookByFilename(t *testing.T) {
	t.Run("first match", func(t *testing.T) {
		repo, mock := newTestBookRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE original_filename = $1 AND file_id IS NOT NULL ORDER BY id ASC LIMIT 1")).
			WithArgs("dune.pdf").
			WillReturnRows(bookRows().AddRow(testBookID, "Dune", 412, 9.99, testUserID, "dune.pdf", "file-1"))

		book, err := repo.FindBookByFilename(context.Background(), "dune.pdf")
		require.NoError(t, err)
		assert.Equal(t, "file-1", book.FileID)
	})

	t.Run("no match", func(t *testing.T) {
		repo, mock := newTestBookRepo(t)

		mock.ExpectQuery("FROM books").WillReturnRows(bookRows())

		_, err := repo.FindBookByFilename(context.Background(), "missing.pdf")
		assert.ErrorIs(t, err, ErrContentNotFound)
	})
}

func TestListBooks(t *testing.T) {
	repo, mock := newTestBookRepo(t)

	params := models.ListParams{Limit: 2, Offset: 0, Sort: "price", Order: models.OrderAsc, SearchKey: "50%"}
	pattern := `%50\%%`

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM books WHERE name ILIKE $1")).
		WithArgs(pattern).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE name ILIKE $1 ORDER BY price ASC, id ASC LIMIT 2 OFFSET 0")).
		WithArgs(pattern).
		WillReturnRows(bookRows().
			AddRow(testBookID, "50% off", 10, 1.5, testUserID, "", "").
			AddRow(testBookID2, "Top 50%", 20, 2.5, testUserID2, "", ""))

	books, total, err := repo.ListBooks(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, books, 2)
	assert.Equal(t, testUserID2, books[1].AuthorID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListBooks_NoSearch(t *testing.T) {
	repo, mock := newTestBookRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM books")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY name DESC, id ASC LIMIT 5 OFFSET 5")).
		WillReturnRows(bookRows())

	books, total, err := repo.ListBooks(context.Background(), models.ListParams{Limit: 5, Offset: 5, Sort: "unknown", Order: models.OrderDesc})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, books)
	assert.NotNil(t, books)
}

// Five books priced 10, 30, 20, 5 and 15: the store returns the page for
// sort=price&order=desc&limit=2, i.e. the 30 and 20 rows.
func TestListBooks_HighestPricedFirst(t *testing.T) {
	repo, mock := newTestBookRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM books")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(regexp.QuoteMeta("FROM books ORDER BY price DESC, id ASC LIMIT 2 OFFSET 0")).
		WillReturnRows(bookRows().
			AddRow(testBookID2, "Children of Dune", 444, 30.0, testUserID, "", "").
			AddRow(testBookID, "Dune Messiah", 256, 20.0, testUserID, "", ""))

	books, total, err := repo.ListBooks(context.Background(), models.ListParams{Limit: 2, Offset: 0, Sort: "price", Order: models.OrderDesc})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, books, 2)
	assert.Equal(t, []float64{30, 20}, []float64{books[0].Price, books[1].Price})
	assert.Greater(t, books[0].Price, books[1].Price)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBook(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock := newTestBookRepo(t)

		book := models.Book{ID: testBookID, Name: "Dune Messiah", Pages: 256, Price: 7.5, AuthorID: testUserID2}
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE books SET author_id = $1, name = $2, pages = $3, price = $4 WHERE id = $5 RETURNING")).
			WithArgs(testUserID2, "Dune Messiah", 256, 7.5, testBookID).
			WillReturnRows(bookRows().AddRow(testBookID, "Dune Messiah", 256, 7.5, testUserID2, "", ""))

		updated, err := repo.UpdateBook(context.Background(), book)
		require.NoError(t, err)
		assert.Equal(t, book, updated)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newTestBookRepo(t)

		mock.ExpectQuery("UPDATE books").WillReturnRows(bookRows())

		_, err := repo.UpdateBook(context.Background(), models.Book{ID: testBookID})
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestDeleteBook(t *testing.T) {
	t.Run("returns deleted book", func(t *testing.T) {
		repo, mock := newTestBookRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM books WHERE id = $1 RETURNING")).
			WithArgs(testBookID).
			WillReturnRows(bookRows().AddRow(testBookID, "Dune", 412, 9.99, testUserID, "dune.pdf", "file-1"))

		book, err := repo.DeleteBook(context.Background(), testBookID)
		require.NoError(t, err)
		assert.Equal(t, testUserID, book.AuthorID)
		assert.Equal(t, "file-1", book.FileID)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newTestBookRepo(t)

		mock.ExpectQuery("DELETE FROM books").WillReturnRows(bookRows())

		_, err := repo.DeleteBook(context.Background(), testBookID)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestAttachContent(t *testing.T) {
	repo, mock := newTestBookRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE books SET file_id = $1, original_filename = $2 WHERE id = $3 RETURNING")).
		WithArgs("file-2", "dune.epub", testBookID).
		WillReturnRows(bookRows().AddRow(testBookID, "Dune", 412, 9.99, testUserID, "dune.epub", "file-2"))

	book, err := repo.AttachContent(context.Background(), testBookID, "dune.epub", "file-2")
	require.NoError(t, err)
	assert.Equal(t, "dune.epub", book.OriginalFilename)
	assert.Equal(t, "file-2", book.FileID)
}
