// Package server holds the HTTP server configuration.
//
// The batch command never touches it; it is embedded in core/config and read by the
// start command, which serves payout runs and username lookups over HTTP.
package server
