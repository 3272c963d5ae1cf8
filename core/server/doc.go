// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application; this package only defines
// the listen port, the API key and the graceful shutdown bound.
package server
