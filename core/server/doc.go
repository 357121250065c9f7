// Package server holds the HTTP server configuration.
//
// The start command reads the listen port, the API key protecting every route and
// the request read timeout from here.
package server
