// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-bookshelf server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body fails basic
	// validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidEmailPassword is returned when the supplied email/password
	// combination does not match any existing user record.
	MsgInvalidEmailPassword = "invalid email/password"

	// MsgServerError is returned when a store operation fails.
	MsgServerError = "Server error"

	// MsgNoToken is returned by the auth middleware when the request carries
	// no token at all.
	MsgNoToken = "No token, authorization denied"

	// MsgTokenIsNotValid is returned when the token is expired, has a wrong
	// issuer or cannot be verified.
	MsgTokenIsNotValid = "Token is not valid"

	// MsgEmailAlreadyExists is returned when a user is created or updated
	// with an email that is already in use.
	MsgEmailAlreadyExists = "Email already exists"

	MsgUserNotFound = "User not found"
	MsgBookNotFound = "Book not found"
	MsgUserDeleted  = "User deleted"
	MsgBookDeleted  = "Book deleted"

	// MsgNoFileExists is returned when no book has an uploaded file with the
	// requested name.
	MsgNoFileExists = "No file exists"

	// MsgFileIsMissing is returned when an upload request has no "file" part.
	MsgFileIsMissing = "File is missing"

	MsgFileUploaded        = "File uploaded successfully"
	MsgErrorUploadingFile  = "Error uploading file"
	MsgErrorRetrievingFile = "Error retrieving file"

	// MsgAccessForbidden prefixes the message of every 403 response.
	MsgAccessForbidden = "Access forbidden: "

	// MsgNotFound prefixes the original URL of unmatched routes.
	MsgNotFound = "Not Found - "

	// MsgStackPlaceholder replaces stack traces in production responses.
	MsgStackPlaceholder = "🥞"

	MsgIndex                = "Hello World from the index route!"
	MsgAuthenticated        = "Authenticated"
	MsgForbidden            = "Forbidden"
	MsgSimulatedServerError = "Simulated server error"
	MsgSimulatedAsyncError  = "Simulated async error"
)
