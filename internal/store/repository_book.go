package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/utils"
	"github.com/MKhiriev/go-bookshelf/models"
)

// bookRepository is the PostgreSQL-backed implementation of [BookRepository].
type bookRepository struct {
	db *DB
}

// NewBookRepository constructs a [BookRepository] backed by the provided
// database connection.
func NewBookRepository(db *DB) BookRepository {
	db.logger.Debug().Msg("creating book repository")
	return &bookRepository{db: db}
}

func scanBook(row rowScanner) (models.Book, error) {
	var book models.Book
	err := row.Scan(&book.ID, &book.Name, &book.Pages, &book.Price, &book.AuthorID, &book.OriginalFilename, &book.FileID)
	return book, err
}

// bookError translates a driver error of a single-book statement.
func bookError(err error, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	err = classifyError(err)
	if errors.Is(err, errInvalidIdentifier) {
		return fmt.Errorf("%w: %w", notFound, err)
	}

	return err
}

func (r *bookRepository) queryBook(ctx context.Context, funcName, query string, args []any) (models.Book, error) {
	book, err := scanBook(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error querying book")
		}
		return models.Book{}, bookError(err, ErrBookNotFound)
	}

	return book, nil
}

// CreateBook persists a new book and returns it as stored.
func (r *bookRepository) CreateBook(ctx context.Context, book models.Book) (models.Book, error) {
	query, args, err := buildInsertBookQuery(ctx, book)
	if err != nil {
		return models.Book{}, err
	}

	created, err := scanBook(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*bookRepository.CreateBook").Msg("error inserting book")
		return models.Book{}, classifyError(err)
	}

	return created, nil
}

// FindBookByID returns the book with the given id or [ErrBookNotFound].
func (r *bookRepository) FindBookByID(ctx context.Context, id string) (models.Book, error) {
	if !utils.IsUUID(id) {
		return models.Book{}, ErrBookNotFound
	}

	query, args, err := buildSelectBookByIDQuery(ctx, id)
	if err != nil {
		return models.Book{}, err
	}

	return r.queryBook(ctx, "*bookRepository.FindBookByID", query, args)
}

// FindBookByFilename returns the first book carrying uploaded content with
// the given original filename, or [ErrContentNotFound].
func (r *bookRepository) FindBookByFilename(ctx context.Context, filename string) (models.Book, error) {
	query, args, err := buildSelectBookByFilenameQuery(ctx, filename)
	if err != nil {
		return models.Book{}, err
	}

	book, err := scanBook(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.FromContext(ctx).Err(err).Str("func", "*bookRepository.FindBookByFilename").Msg("error querying book")
		}
		return models.Book{}, bookError(err, ErrContentNotFound)
	}

	return book, nil
}

// ListBooks returns one page of books and the number of books matching the
// search key regardless of pagination.
func (r *bookRepository) ListBooks(ctx context.Context, params models.ListParams) ([]models.Book, int, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountBooksQuery(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err = r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*bookRepository.ListBooks").Msg("error counting books")
		return nil, 0, classifyError(err)
	}

	query, args, err := buildListBooksQuery(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*bookRepository.ListBooks").Msg("error listing books")
		return nil, 0, classifyError(err)
	}
	defer rows.Close()

	books := make([]models.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			log.Err(err).Str("func", "*bookRepository.ListBooks").Msg("error scanning book")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		books = append(books, book)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return books, total, nil
}

// UpdateBook replaces the name, pages, price and author of the book.
func (r *bookRepository) UpdateBook(ctx context.Context, book models.Book) (models.Book, error) {
	if !utils.IsUUID(book.ID) {
		return models.Book{}, ErrBookNotFound
	}

	query, args, err := buildUpdateBookQuery(ctx, book)
	if err != nil {
		return models.Book{}, err
	}

	return r.queryBook(ctx, "*bookRepository.UpdateBook", query, args)
}

// DeleteBook removes the book and returns its last state.
func (r *bookRepository) DeleteBook(ctx context.Context, id string) (models.Book, error) {
	if !utils.IsUUID(id) {
		return models.Book{}, ErrBookNotFound
	}

	query, args, err := buildDeleteBookQuery(ctx, id)
	if err != nil {
		return models.Book{}, err
	}

	return r.queryBook(ctx, "*bookRepository.DeleteBook", query, args)
}

// AttachContent records the original filename and content key of the book.
func (r *bookRepository) AttachContent(ctx context.Context, id, filename, fileID string) (models.Book, error) {
	if !utils.IsUUID(id) {
		return models.Book{}, ErrBookNotFound
	}

	query, args, err := buildAttachContentQuery(ctx, id, filename, fileID)
	if err != nil {
		return models.Book{}, err
	}

	return r.queryBook(ctx, "*bookRepository.AttachContent", query, args)
}
