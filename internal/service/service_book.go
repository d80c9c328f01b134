package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/store"
	"github.com/MKhiriev/go-bookshelf/models"
)

// bookService keeps books and the back-references on their authors in sync.
// The two tables are updated one after another without a transaction; the
// reconciliation worker repairs sets left behind by a failed second step.
type bookService struct {
	bookRepository store.BookRepository
	userRepository store.UserRepository
	contentStorage store.ContentStorage
	ids            IDGenerator

	logger *logger.Logger
}

func NewBookService(bookRepository store.BookRepository, userRepository store.UserRepository, contentStorage store.ContentStorage, ids IDGenerator, logger *logger.Logger) BookService {
	return &bookService{
		bookRepository: bookRepository,
		userRepository: userRepository,
		contentStorage: contentStorage,
		ids:            ids,
		logger:         logger,
	}
}

// ListBooks returns one page of books with their authors expanded. Authors
// are fetched with a single query for the whole page.
func (s *bookService) ListBooks(ctx context.Context, params models.ListParams) (models.BookPage, error) {
	params = normalizeListParams(params, bookSortFields)

	books, total, err := s.bookRepository.ListBooks(ctx, params)
	if err != nil {
		return models.BookPage{}, fmt.Errorf("error listing books: %w", err)
	}
	if books == nil {
		books = []models.Book{}
	}

	if err = s.populateAuthors(ctx, books); err != nil {
		return models.BookPage{}, err
	}

	return models.BookPage{
		TotalCount: total,
		Limit:      params.Limit,
		Offset:     params.Offset,
		Sort:       params.Sort,
		Order:      params.Order,
		SearchKey:  params.SearchKey,
		Books:      books,
	}, nil
}

func (s *bookService) GetBook(ctx context.Context, id string) (models.Book, error) {
	book, err := s.bookRepository.FindBookByID(ctx, id)
	if err != nil {
		return models.Book{}, err
	}

	if err = s.populateAuthor(ctx, &book); err != nil {
		return models.Book{}, err
	}

	return book, nil
}

// CreateBook stores the book and links it to its author. A missing author is
// not an error: the book is created without a back-reference.
func (s *bookService) CreateBook(ctx context.Context, request models.BookRequest) (models.Book, error) {
	book := models.Book{
		ID:       s.ids.Generate(),
		Name:     request.Name,
		Pages:    request.Pages,
		Price:    request.Price,
		AuthorID: request.Author,
	}

	created, err := s.bookRepository.CreateBook(ctx, book)
	if err != nil {
		return models.Book{}, fmt.Errorf("error creating book: %w", err)
	}

	if err = s.addBookRef(ctx, created.AuthorID, created.ID); err != nil {
		return models.Book{}, err
	}

	if err = s.populateAuthor(ctx, &created); err != nil {
		return models.Book{}, err
	}

	return created, nil
}

// UpdateBook replaces the book's fields. When the author changes the book is
// moved from the previous author's set to the new one before the book itself
// is updated.
func (s *bookService) UpdateBook(ctx context.Context, id string, request models.BookRequest) (models.Book, error) {
	existing, err := s.bookRepository.FindBookByID(ctx, id)
	if err != nil {
		return models.Book{}, err
	}

	if existing.AuthorID != request.Author {
		if err = s.removeBookRef(ctx, existing.AuthorID, existing.ID); err != nil {
			return models.Book{}, err
		}
		if err = s.addBookRef(ctx, request.Author, existing.ID); err != nil {
			return models.Book{}, err
		}
	}

	existing.Name = request.Name
	existing.Pages = request.Pages
	existing.Price = request.Price
	existing.AuthorID = request.Author

	updated, err := s.bookRepository.UpdateBook(ctx, existing)
	if err != nil {
		return models.Book{}, fmt.Errorf("error updating book: %w", err)
	}

	if err = s.populateAuthor(ctx, &updated); err != nil {
		return models.Book{}, err
	}

	return updated, nil
}

// DeleteBook removes the book. Pruning the author's back-reference and
// removing the uploaded file are best effort: failures are logged only.
func (s *bookService) DeleteBook(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	deleted, err := s.bookRepository.DeleteBook(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting book: %w", err)
	}

	if err = s.removeBookRef(ctx, deleted.AuthorID, deleted.ID); err != nil {
		log.Err(err).Str("book_id", deleted.ID).Str("author_id", deleted.AuthorID).Msg("error pruning book reference")
	}

	if deleted.HasContent() {
		if err = s.contentStorage.Delete(ctx, deleted.FileID); err != nil {
			log.Err(err).Str("book_id", deleted.ID).Str("file_id", deleted.FileID).Msg("error removing book content")
		}
	}

	return nil
}

func (s *bookService) ReconcileAuthors(ctx context.Context) (int64, error) {
	changed, err := s.userRepository.RebuildBookRefs(ctx)
	if err != nil {
		return 0, fmt.Errorf("error reconciling book authors: %w", err)
	}
	return changed, nil
}

func (s *bookService) addBookRef(ctx context.Context, userID, bookID string) error {
	err := s.userRepository.AddBookRef(ctx, userID, bookID)
	if errors.Is(err, store.ErrUserNotFound) {
		logger.FromContext(ctx).Warn().Str("author_id", userID).Str("book_id", bookID).Msg("author not found, book reference skipped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error adding book reference: %w", err)
	}
	return nil
}

func (s *bookService) removeBookRef(ctx context.Context, userID, bookID string) error {
	err := s.userRepository.RemoveBookRef(ctx, userID, bookID)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error removing book reference: %w", err)
	}
	return nil
}

// populateAuthor sets book.Author. A missing author leaves it nil.
func (s *bookService) populateAuthor(ctx context.Context, book *models.Book) error {
	author, err := s.userRepository.FindUserByID(ctx, book.AuthorID)
	if errors.Is(err, store.ErrUserNotFound) {
		book.Author = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("error getting book author: %w", err)
	}

	book.Author = &author
	return nil
}

func (s *bookService) populateAuthors(ctx context.Context, books []models.Book) error {
	if len(books) == 0 {
		return nil
	}

	ids := make([]string, 0, len(books))
	seen := make(map[string]struct{}, len(books))
	for _, book := range books {
		if _, ok := seen[book.AuthorID]; ok {
			continue
		}
		seen[book.AuthorID] = struct{}{}
		ids = append(ids, book.AuthorID)
	}

	authors, err := s.userRepository.FindUsersByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("error getting book authors: %w", err)
	}

	byID := make(map[string]models.User, len(authors))
	for _, author := range authors {
		byID[author.ID] = author
	}

	for i := range books {
		if author, ok := byID[books[i].AuthorID]; ok {
			books[i].Author = &author
		}
	}

	return nil
}
