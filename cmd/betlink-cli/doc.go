// Command betlink-cli is the command-line client for the betting
// exchange API.
//
// It logs in with a client certificate, maintains the session token
// transparently and exposes market discovery, price and order
// operations as subcommands. See `betlink-cli --help` for usage.
package main
