// Package http implements the HTTP transport of the credential core.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Request tracing, access logging, metrics and request timeouts are
// handled here before requests are delegated to the service layer. Request
// bodies are validated here as well: the service expects clean input.
package http
