// Package server runs the HTTP API of the credential core.
//
// It owns the server lifecycle: startup, signal handling and graceful
// shutdown.
package server
