// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures for server settings such as the listen port,
// the listing page size and the request body limit.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by feature loaders that need the page size.
package server
