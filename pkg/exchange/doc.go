// Package exchange implements the session lifecycle and request layer for
// the betting-exchange JSON-RPC API.
//
// This package contains:
//
//   - Credentials: immutable login identity (username, password, PKCS#12
//     certificate bundle, application key)
//   - Gateway: the transport capability consumed by the session manager
//   - HTTPGateway: the production Gateway over HTTP with certificate login
//   - Client: the session manager owning the shared session token
//
// A Client is safe for concurrent use. It performs certificate login on
// first use, refreshes the session token transparently when the exchange
// reports it invalid, and guarantees at most one login round trip per
// token invalidation regardless of caller concurrency. A background
// keep-alive loop pings the identity service so an idle token is not
// expired server-side.
package exchange
