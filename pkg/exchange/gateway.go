package exchange

import (
	"context"
	"encoding/json"

	"github.com/yndnr/betlink-go/pkg/rpc"
)

// Gateway is the transport capability consumed by the session manager.
// It performs the network calls and maps outcomes onto the exchange error
// taxonomy; it holds no session state of its own.
type Gateway interface {
	// Call performs one business call with the given bearer token and
	// returns the raw result payload. Auth failures are reported as
	// KindAuth errors so the session manager can refresh and retry.
	Call(ctx context.Context, token string, req *rpc.Request) (json.RawMessage, error)

	// Login performs exactly one certificate login attempt and returns a
	// fresh session token. Retrying is the session manager's business.
	Login(ctx context.Context, creds *Credentials) (string, error)

	// KeepAlive pings the identity service so an idle token is not
	// expired server-side.
	KeepAlive(ctx context.Context, token string) error
}
