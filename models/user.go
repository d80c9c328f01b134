// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"strings"
)

// User represents an account stored in the "users" collection.
//
// Password always holds a bcrypt hash once the user has been persisted and is
// never serialized. FirstName/LastName may be empty for records created before
// the split; in that case the legacy combined Name is used as a fallback (see
// [User.Names]).
type User struct {
	// ID is the opaque identifier of the user (UUID).
	ID string `json:"id"`

	// FirstName is the given name of the user.
	FirstName string `json:"firstName"`

	// LastName is the family name of the user.
	LastName string `json:"lastName"`

	// Name is the legacy combined "First Last" value. It is kept only as a
	// fallback source for FirstName/LastName and is not exposed via JSON.
	Name string `json:"-"`

	// Email is unique across all users.
	Email string `json:"email"`

	// Password is the salted hash of the user's password.
	Password string `json:"-"`

	// Books is the denormalized set of ids of books authored by the user.
	Books BookRefs `json:"books"`

	// Suspended users are hidden from listings and cannot log in.
	Suspended bool `json:"suspended"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Names returns the first and last name of the user. When either of them is
// missing and a legacy combined name is present, both are derived from it:
// the first word becomes the first name, the remaining words the last name.
func (u User) Names() (string, string) {
	if (u.FirstName != "" && u.LastName != "") || strings.TrimSpace(u.Name) == "" {
		return u.FirstName, u.LastName
	}

	parts := strings.Fields(u.Name)
	return parts[0], strings.Join(parts[1:], " ")
}

// FullName returns "first last" trimmed of surrounding whitespace.
// It is computed on every call and never stored.
func (u User) FullName() string {
	first, last := u.Names()
	return strings.TrimSpace(first + " " + last)
}

// MarshalJSON renders the user with derived names and the computed fullName.
func (u User) MarshalJSON() ([]byte, error) {
	type plainUser User

	first, last := u.Names()
	out := struct {
		plainUser
		FullName string `json:"fullName"`
	}{
		plainUser: plainUser(u),
		FullName:  u.FullName(),
	}
	out.FirstName = first
	out.LastName = last
	if out.Books == nil {
		out.Books = BookRefs{}
	}

	return json.Marshal(out)
}

// UserRequest is the body accepted by user creation, registration and update
// endpoints. Nil fields are left untouched on update.
type UserRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
	Suspended *bool   `json:"suspended,omitempty"`
}

// UserUpdate is the set of columns to change on an existing user.
// Password, when set, must already be hashed.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	Suspended *bool
}

// IsEmpty reports whether the update does not change any column.
func (u UserUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil && u.Password == nil && u.Suspended == nil
}

// Credentials is the body of the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
