package rpc

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Version is the JSON-RPC protocol version sent on every request.
const Version = "2.0"

// Request is a JSON-RPC 2.0 request envelope.
type Request struct {
	// JSONRPC is the protocol version, always "2.0".
	JSONRPC string `json:"jsonrpc"`

	// Method is the fully qualified remote procedure name
	// (e.g. "SportsAPING/v1.0/listEventTypes").
	Method string `json:"method"`

	// Params is the typed parameter struct for the procedure.
	Params any `json:"params"`

	// ID is the per-request correlation ID.
	ID string `json:"id"`
}

// NewRequest builds a request envelope for the given method and parameters,
// assigning it a fresh correlation ID.
func NewRequest(method string, params any) *Request {
	return &Request{
		JSONRPC: Version,
		Method:  method,
		Params:  params,
		ID:      newCorrelationID(),
	}
}

// newCorrelationID generates a ULID correlation ID.
func newCorrelationID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		// crypto/rand is the only failure source here; treat it as fatal
		// the same way ulid.MustNew would.
		panic(err)
	}
	return id.String()
}
