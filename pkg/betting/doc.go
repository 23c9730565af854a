// Package betting provides typed bindings for the Sports API operations.
//
// Each binding builds a typed request, hands it to an Executor (normally
// *exchange.Client) and decodes the typed result. The bindings carry no
// session logic of their own; login and token refresh are the executor's
// business.
//
// The wire types mirror the exchange's published operation schema. Only
// fields the exchange documents as optional are pointers or omitempty.
package betting
