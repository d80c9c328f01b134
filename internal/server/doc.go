// Package server wires and runs the application's transport servers.
//
// It provides orchestration for the HTTP server lifecycle, including startup
// and graceful shutdown once the application context is cancelled.
package server
