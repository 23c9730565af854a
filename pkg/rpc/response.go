package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrEmptyEnvelope is returned when a response carries neither a result
	// nor an error.
	ErrEmptyEnvelope = errors.New("rpc: response has neither result nor error")

	// ErrAmbiguousEnvelope is returned when a response carries both a result
	// and an error.
	ErrAmbiguousEnvelope = errors.New("rpc: response has both result and error")

	// ErrCorrelationMismatch is returned when a response correlation ID does
	// not match the request that produced it.
	ErrCorrelationMismatch = errors.New("rpc: response id does not match request id")
)

// Error is the error member of a JSON-RPC response envelope.
type Error struct {
	// Code is the JSON-RPC error code.
	Code int `json:"code"`

	// Message is the error message. The exchange places its enumerated
	// exception code here.
	Message string `json:"message"`

	// Data carries the structured remote exception, when present.
	Data json.RawMessage `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Response is a JSON-RPC 2.0 response envelope. Exactly one of Result and
// Error is expected to be present.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      string          `json:"id"`
}

// Into validates the envelope against the request that produced it and
// returns the raw result payload.
//
// Validation order: correlation first, then result/error exclusivity. A
// mismatched correlation ID means the payload cannot be trusted at all, so
// it wins over any error the envelope may carry.
func (r *Response) Into(req *Request) (json.RawMessage, error) {
	if r.ID != req.ID {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrCorrelationMismatch, r.ID, req.ID)
	}
	switch {
	case r.Error != nil && r.Result != nil:
		return nil, ErrAmbiguousEnvelope
	case r.Error != nil:
		return nil, r.Error
	case r.Result == nil:
		return nil, ErrEmptyEnvelope
	}
	return r.Result, nil
}
