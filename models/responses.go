package models

import "io"

// MessageResponse is the generic JSON acknowledgment and error body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is rendered by the terminal error stage. Stack is omitted
// for errors that do not carry diagnostic information (forbidden, not found).
type ErrorResponse struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// AuthResponse is returned by the register and login endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UploadResponse acknowledges a stored file and tells the client where the
// content can be downloaded from.
type UploadResponse struct {
	Message     string `json:"message"`
	DownloadURL string `json:"downloadUrl"`
}

// Content describes a file travelling between the HTTP layer and the content
// bucket. Body is streamed and never buffered whole.
type Content struct {
	// Filename is the original name of the file as sent by the client.
	Filename string

	// ContentType is the MIME type of the file, if known.
	ContentType string

	// Body is the file content. For downloads it must be closed by the caller.
	Body io.ReadCloser
}
