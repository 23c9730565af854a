package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/betlink-go/internal/telemetry/metric"
	"github.com/yndnr/betlink-go/pkg/rpc"
)

// Defaults for the session lifecycle timers.
const (
	// DefaultLoginRetryDelay is the fixed delay between login attempts
	// when login fails. The retry loop is deliberately unbounded; callers
	// bound the wait through their context.
	DefaultLoginRetryDelay = 5 * time.Second

	// DefaultKeepAliveInterval is how often the background loop pings the
	// identity service.
	DefaultKeepAliveInterval = 60 * time.Second

	// keepAliveTimeout bounds one keep-alive network call.
	keepAliveTimeout = 30 * time.Second
)

// Client is the session manager. It owns the shared session token, performs
// certificate login transparently, and serializes concurrent re-login
// attempts so a token invalidation costs exactly one login round trip no
// matter how many callers observe it.
//
// A Client is safe for concurrent use. Independent Clients share no state.
type Client struct {
	gw    Gateway
	creds *Credentials

	// mu guards token. It is held only to read or publish the value,
	// never across a network call.
	mu    sync.RWMutex
	token string

	// refreshMu serializes the refresh path. Login happens while holding
	// it, which keeps readers of the token cell lock-free during a login
	// attempt by another caller.
	refreshMu sync.Mutex

	log             *slog.Logger
	metrics         *metric.ClientMetrics
	loginRetryDelay time.Duration

	keepAliveInterval time.Duration
	stopOnce          sync.Once
	stop              chan struct{}
	done              chan struct{}
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithLoginRetryDelay sets the fixed delay between login attempts.
func WithLoginRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.loginRetryDelay = d
	}
}

// WithKeepAliveInterval sets the keep-alive polling interval.
func WithKeepAliveInterval(d time.Duration) Option {
	return func(c *Client) {
		c.keepAliveInterval = d
	}
}

// WithMetrics registers client metrics with the given registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.metrics = metric.NewClientMetrics(reg)
	}
}

// New creates a Client and starts its keep-alive loop. The caller must
// Close the client to stop the loop.
func New(creds *Credentials, gw Gateway, opts ...Option) *Client {
	c := &Client{
		gw:                gw,
		creds:             creds,
		log:               slog.Default(),
		loginRetryDelay:   DefaultLoginRetryDelay,
		keepAliveInterval: DefaultKeepAliveInterval,
		stop:              make(chan struct{}),
		done:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.keepAliveLoop()
	return c
}

// Close stops the keep-alive loop and waits for it to exit. Close is
// idempotent and safe to call concurrently.
func (c *Client) Close() error {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	<-c.done
	return nil
}

// SessionToken returns the current session token, or "" when the client
// has never logged in.
func (c *Client) SessionToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Execute performs one typed call against the exchange, logging in or
// refreshing the session token transparently on auth failures. Every other
// error kind propagates to the caller unchanged. When result is non-nil
// the raw result payload is unmarshalled into it.
//
// The auth-refresh path has no retry ceiling; an expired token is expected
// to eventually be replaceable by a successful login. Cancel ctx to bound
// the wait.
func (c *Client) Execute(ctx context.Context, method string, params, result any) error {
	req := rpc.NewRequest(method, params)
	token := c.SessionToken()

	for {
		raw, err := c.attempt(ctx, token, req)
		if err == nil {
			if result == nil {
				return nil
			}
			if err := json.Unmarshal(raw, result); err != nil {
				return ErrProtocol.WithDetails("decode result for " + method).WithCause(err)
			}
			return nil
		}

		if !IsAuthError(err) {
			return err
		}

		c.log.Info("session refresh required", "method", method)
		token, err = c.refresh(ctx, token)
		if err != nil {
			return err
		}
	}
}

// attempt performs one gateway call with the given token snapshot. An
// empty snapshot is an auth failure without a network round trip: the call
// would be guaranteed to fail, so login happens first (and the request is
// never sent token-less).
func (c *Client) attempt(ctx context.Context, token string, req *rpc.Request) (json.RawMessage, error) {
	if token == "" {
		c.metrics.Call("auth", 0)
		return nil, ErrNoSession
	}

	start := time.Now()
	raw, err := c.gw.Call(ctx, token, req)
	c.metrics.Call(callOutcome(err), time.Since(start).Seconds())
	return raw, err
}

// refresh resolves a stale token observation. Exactly one caller per
// invalidation performs the login; everyone else adopts the token that
// caller published.
func (c *Client) refresh(ctx context.Context, stale string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Double-checked refresh: if the cell no longer holds the stale value,
	// another caller already logged in while we waited. Adopt its token.
	if current := c.SessionToken(); current != stale {
		c.log.Debug("adopting token refreshed by a concurrent caller")
		return current, nil
	}

	c.metrics.Refresh()
	token, err := c.loginLoop(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	return token, nil
}

// loginLoop performs login attempts until one succeeds, pacing retries
// with a fixed delay so a failing identity service is not hot-looped.
func (c *Client) loginLoop(ctx context.Context) (string, error) {
	for {
		token, err := c.gw.Login(ctx, c.creds)
		if err == nil {
			c.metrics.Login("success")
			return token, nil
		}
		c.metrics.Login("failure")
		c.log.Warn("login failed, retrying",
			"delay", c.loginRetryDelay, "error", err)

		select {
		case <-ctx.Done():
			return "", ErrLoginAborted.WithDetails(fmt.Sprintf("last attempt: %v", err)).WithCause(ctx.Err())
		case <-time.After(c.loginRetryDelay):
			c.metrics.LoginRetry()
		}
	}
}

// keepAliveLoop pings the identity service on a fixed interval for the
// lifetime of the client. It never initiates a login and never writes the
// token cell; a failing keep-alive only records a local hint that the
// token is known expired. Refresh stays confined to the request path,
// where a failed business call triggers it.
func (c *Client) keepAliveLoop() {
	defer close(c.done)

	ticker := time.NewTicker(c.keepAliveInterval)
	defer ticker.Stop()

	var expired string
	for {
		select {
		case <-c.stop:
			c.log.Debug("keep-alive loop stopping")
			return
		case <-ticker.C:
			token := c.SessionToken()
			if token == "" {
				continue
			}
			if token == expired {
				c.log.Warn("keep-alive: token already known expired")
			}

			ctx, cancel := context.WithTimeout(context.Background(), keepAliveTimeout)
			err := c.gw.KeepAlive(ctx, token)
			cancel()

			if err != nil {
				c.metrics.KeepAlive("failure")
				c.log.Info("keep-alive failed", "error", err)
				expired = token
				continue
			}
			c.metrics.KeepAlive("success")
			if expired == token {
				expired = ""
			}
		}
	}
}

// callOutcome maps a call error onto a metrics label.
func callOutcome(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := ErrorKind(err); kind != 0 {
		return kind.String()
	}
	return "error"
}
