// Package rpc implements the JSON-RPC 2.0 request/response envelope used
// by the exchange API.
//
// This package contains:
//
//   - request.go: Request envelope with per-request correlation IDs
//   - response.go: Response envelope decoding and validation
//
// Every request carries a freshly generated ULID as its correlation ID.
// Response decoding enforces that exactly one of result/error is present and
// that the response correlation ID matches the request that produced it.
package rpc
