// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/store"
	"github.com/MKhiriev/go-bookshelf/models"
)

const defaultContentType = "application/octet-stream"

type contentService struct {
	bookRepository store.BookRepository
	contentStorage store.ContentStorage
	ids            IDGenerator

	logger *logger.Logger
}

func NewContentService(bookRepository store.BookRepository, contentStorage store.ContentStorage, ids IDGenerator, logger *logger.Logger) ContentService {
	return &contentService{
		bookRepository: bookRepository,
		contentStorage: contentStorage,
		ids:            ids,
		logger:         logger,
	}
}

// Upload stores content under a fresh key and attaches it to the book. The
// book is looked up first so that nothing is written for unknown books.
// A previously attached file is removed once the book points to the new one.
func (s *contentService) Upload(ctx context.Context, bookID string, content models.Content) (models.Book, error) {
	log := logger.FromContext(ctx)

	if content.Body == nil || content.Filename == "" {
		return models.Book{}, ErrMissingFile
	}

	book, err := s.bookRepository.FindBookByID(ctx, bookID)
	if err != nil {
		return models.Book{}, err
	}

	contentType := content.ContentType
	if contentType == "" {
		contentType = contentTypeOf(content.Filename)
	}

	fileID := s.ids.Generate()
	if err = s.contentStorage.Upload(ctx, fileID, content.Body, contentType); err != nil {
		log.Err(err).Str("book_id", bookID).Str("file_id", fileID).Msg("error uploading content")
		return models.Book{}, fmt.Errorf("error uploading content: %w", err)
	}

	updated, err := s.bookRepository.AttachContent(ctx, bookID, content.Filename, fileID)
	if err != nil {
		log.Err(err).Str("book_id", bookID).Str("file_id", fileID).Msg("error attaching content, removing uploaded file")
		if deleteErr := s.contentStorage.Delete(ctx, fileID); deleteErr != nil {
			log.Err(deleteErr).Str("file_id", fileID).Msg("error removing orphaned content")
		}
		return models.Book{}, fmt.Errorf("error attaching content: %w", err)
	}

	if book.HasContent() && book.FileID != fileID {
		if err = s.contentStorage.Delete(ctx, book.FileID); err != nil {
			log.Err(err).Str("file_id", book.FileID).Msg("error removing replaced content")
		}
	}

	log.Info().Str("book_id", bookID).Str("file_id", fileID).Str("filename", content.Filename).Msg("content uploaded")

	return updated, nil
}

// Download opens the content uploaded under filename. When several books
// share the filename the one with the lowest id wins.
func (s *contentService) Download(ctx context.Context, filename string) (models.Content, error) {
	book, err := s.bookRepository.FindBookByFilename(ctx, filename)
	if err != nil {
		return models.Content{}, err
	}
	if !book.HasContent() {
		return models.Content{}, store.ErrContentNotFound
	}

	body, err := s.contentStorage.Download(ctx, book.FileID)
	if err != nil {
		return models.Content{}, err
	}

	return models.Content{
		Filename:    book.OriginalFilename,
		ContentType: contentTypeOf(book.OriginalFilename),
		Body:        body,
	}, nil
}

func contentTypeOf(filename string) string {
	if contentType := mime.TypeByExtension(filepath.Ext(filename)); contentType != "" {
		return contentType
	}
	return defaultContentType
}
