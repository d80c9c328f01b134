// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
)

// Book is a single entry of the "books" collection.
//
// AuthorID is the authoritative reference to the owning user. Author is only
// populated by read operations that dereference the reference; it stays nil
// when the author no longer exists.
type Book struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Pages int     `json:"pages"`
	Price float64 `json:"price"`

	AuthorID string `json:"authorId"`
	Author   *User  `json:"author"`

	// OriginalFilename is the name of the last uploaded file.
	OriginalFilename string `json:"originalFilename,omitempty"`

	// FileID is the key of the uploaded content in the content bucket.
	FileID string `json:"fileId,omitempty"`
}

// TableName returns the name of the database table
// associated with the Book model.
func (b Book) TableName() string {
	return "books"
}

// HasContent reports whether a file has been attached to the book.
func (b Book) HasContent() bool {
	return b.FileID != ""
}

// BookRequest is the body accepted by book creation and update endpoints.
// Author carries the id of the authoring user.
type BookRequest struct {
	Name   string  `json:"name"`
	Pages  int     `json:"pages"`
	Price  float64 `json:"price"`
	Author string  `json:"author"`
}

// BookRefs is the set of book ids stored on a user. It is persisted as a
// JSONB array.
type BookRefs []string

// Contains reports whether id is part of the set.
func (r BookRefs) Contains(id string) bool {
	return slices.Contains(r, id)
}

// Scan implements [sql.Scanner].
func (r *BookRefs) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*r = BookRefs{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for book refs", src)
	}

	refs := make(BookRefs, 0)
	if err := json.Unmarshal(raw, &refs); err != nil {
		return fmt.Errorf("error decoding book refs: %w", err)
	}
	*r = refs

	return nil
}

// Value implements [driver.Valuer].
func (r BookRefs) Value() (driver.Value, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(r))
}
