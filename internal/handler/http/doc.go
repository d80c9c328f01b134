// Package http serves the bookshelf REST API: users, books, file content,
// authentication and a few diagnostic routes.
//
// Every request passes through trace id, access log, panic recovery and gzip
// middleware. Users and books routes additionally require a token in the
// X-Auth-Token header. Handler errors end in a single renderer that writes
// {"message", "stack"} JSON.
package http
