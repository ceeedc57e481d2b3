// Package server holds the HTTP server configuration for the status API.
//
// The serve command builds the Fiber application; this package only defines the
// listen port, the API key and request timeouts.
package server
