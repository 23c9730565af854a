package exchange

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/pkcs12"
	"golang.org/x/time/rate"

	"github.com/yndnr/betlink-go/internal/infra/buildinfo"
	"github.com/yndnr/betlink-go/pkg/rpc"
)

// Exchange endpoint defaults.
const (
	DefaultExchangeURL  = "https://api.betfair.com/exchange/betting/json-rpc/v1"
	DefaultCertLoginURL = "https://identitysso-cert.betfair.com/api/certlogin"
	DefaultKeepAliveURL = "https://identitysso.betfair.com/api/keepAlive"
)

// DefaultTimeout bounds each network call made by the gateway.
const DefaultTimeout = 30 * time.Second

// Endpoints holds the three remote endpoints consumed by the gateway.
type Endpoints struct {
	// Exchange is the JSON-RPC endpoint for business calls.
	Exchange string

	// CertLogin is the mutually-authenticated login endpoint.
	CertLogin string

	// KeepAlive is the identity keep-alive endpoint.
	KeepAlive string
}

// DefaultEndpoints returns the production exchange endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Exchange:  DefaultExchangeURL,
		CertLogin: DefaultCertLoginURL,
		KeepAlive: DefaultKeepAliveURL,
	}
}

// GatewayConfig configures an HTTPGateway.
type GatewayConfig struct {
	// Endpoints are the remote endpoints; zero fields fall back to the
	// production defaults.
	Endpoints Endpoints

	// ProxyURL routes all three endpoints through an HTTP(S) proxy when
	// non-empty.
	ProxyURL string

	// Timeout bounds each network call (default 30s).
	Timeout time.Duration

	// RequestsPerSecond paces business calls (0 = unlimited). The
	// exchange enforces transaction limits per application key.
	RequestsPerSecond float64

	// Burst is the rate-limiter burst size (default 1 when paced).
	Burst int

	// RootCAs overrides the trusted CA pool, e.g. for a proxy that
	// re-signs traffic or a test endpoint.
	RootCAs *x509.CertPool

	// ClientCertificate optionally supplies the login client identity
	// instead of the credentials' PKCS#12 bundle, e.g. from a watched
	// PEM pair (see internal/infra/tlsroots).
	ClientCertificate func(*tls.CertificateRequestInfo) (*tls.Certificate, error)

	// Logger receives transport-level logs (default slog.Default()).
	Logger *slog.Logger
}

// HTTPGateway is the production Gateway implementation.
type HTTPGateway struct {
	cfg       GatewayConfig
	endpoints Endpoints
	appKey    string
	call      *http.Client
	limiter   *rate.Limiter
	log       *slog.Logger
	userAgent string
}

// NewHTTPGateway creates a gateway for the given credentials. The
// credentials supply the application key sent on every call and the
// certificate bundle used during login.
func NewHTTPGateway(creds *Credentials, cfg GatewayConfig) (*HTTPGateway, error) {
	if cfg.Endpoints.Exchange == "" {
		cfg.Endpoints.Exchange = DefaultExchangeURL
	}
	if cfg.Endpoints.CertLogin == "" {
		cfg.Endpoints.CertLogin = DefaultCertLoginURL
	}
	if cfg.Endpoints.KeepAlive == "" {
		cfg.Endpoints.KeepAlive = DefaultKeepAliveURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	transport, err := newTransport(cfg, nil)
	if err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &HTTPGateway{
		cfg:       cfg,
		endpoints: cfg.Endpoints,
		appKey:    creds.AppKey(),
		call: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		limiter:   limiter,
		log:       cfg.Logger,
		userAgent: "betlink-go/" + buildinfo.Version,
	}, nil
}

// newTransport builds an http.Transport with the configured proxy, root
// CAs and optional client identity.
func newTransport(cfg GatewayConfig, identity *tls.Certificate) (*http.Transport, error) {
	tlsCfg := &tls.Config{RootCAs: cfg.RootCAs}
	switch {
	case identity != nil:
		tlsCfg.Certificates = []tls.Certificate{*identity}
	case cfg.ClientCertificate != nil:
		tlsCfg.GetClientCertificate = cfg.ClientCertificate
	}

	transport := &http.Transport{
		TLSClientConfig: tlsCfg,
		Proxy:           http.ProxyFromEnvironment,
	}
	if cfg.ProxyURL != "" {
		proxy, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("exchange: parse proxy url: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}
	return transport, nil
}

// Call implements Gateway.
func (g *HTTPGateway) Call(ctx context.Context, token string, req *rpc.Request) (json.RawMessage, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, ErrTransport.WithCause(err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, ErrProtocol.WithDetails("encode request").WithCause(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoints.Exchange, bytes.NewReader(body))
	if err != nil {
		return nil, ErrTransport.WithCause(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", g.userAgent)
	httpReq.Header.Set("X-Application", g.appKey)
	httpReq.Header.Set("X-Authentication", token)

	resp, err := g.call.Do(httpReq)
	if err != nil {
		return nil, ErrTransport.WithDetails("exchange call").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The exchange speaks JSON-RPC over 200; a 401/403 here means the
		// bearer token was rejected at the transport layer.
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, ErrSessionRejected.WithDetails(fmt.Sprintf("http status %d", resp.StatusCode))
		}
		return nil, ErrTransport.WithDetails(fmt.Sprintf("http status %d", resp.StatusCode))
	}

	var envelope rpc.Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, ErrProtocol.WithDetails("decode response envelope").WithCause(err)
	}

	result, err := envelope.Into(req)
	if err != nil {
		return nil, g.classifyEnvelopeError(req.Method, err)
	}
	return result, nil
}

// classifyEnvelopeError maps an envelope-level failure onto the error
// taxonomy: remote exceptions become auth or remote errors depending on the
// enumerated code, everything else is a protocol violation.
func (g *HTTPGateway) classifyEnvelopeError(method string, err error) error {
	var rpcErr *rpc.Error
	if !errors.As(err, &rpcErr) {
		return ErrProtocol.WithCause(err)
	}

	code, details := decodeRemoteException(rpcErr.Message, rpcErr.Data)
	if IsSessionInvalidCode(code) {
		return &Error{
			Kind:    KindAuth,
			Code:    code,
			Message: "session token invalid or expired",
			Cause:   rpcErr,
		}
	}

	g.log.Debug("exchange reported a business error",
		"method", method, "code", code)
	return &Error{
		Kind:    KindRemote,
		Code:    code,
		Message: "exchange error",
		Details: details,
		Cause:   rpcErr,
	}
}

// loginResponse is the identity-cert endpoint response body.
type loginResponse struct {
	SessionToken string `json:"sessionToken"`
	LoginStatus  string `json:"loginStatus"`
}

// Login implements Gateway. It authenticates via the client certificate
// rather than a bearer token and performs exactly one attempt.
func (g *HTTPGateway) Login(ctx context.Context, creds *Credentials) (string, error) {
	client, err := g.loginClient(creds)
	if err != nil {
		return "", err
	}

	form := url.Values(creds.loginForm())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoints.CertLogin,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", ErrLoginTransport.WithCause(err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", g.userAgent)
	httpReq.Header.Set("X-Application", g.appKey)

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", ErrLoginTransport.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrLoginTransport.WithDetails(fmt.Sprintf("http status %d", resp.StatusCode))
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", ErrLoginTransport.WithDetails("decode login response").WithCause(err)
	}

	// A token is only issued alongside a success status; any other status
	// is a rejection carrying the status string for diagnostics.
	if lr.SessionToken == "" || lr.LoginStatus != LoginStatusSuccess {
		return "", ErrLoginRejected.WithDetails("loginStatus: " + lr.LoginStatus)
	}

	g.log.Info("certificate login succeeded", "username", creds.Username())
	return lr.SessionToken, nil
}

// loginClient builds the mutually-authenticated HTTP client for one login
// attempt. Login is rare, so the client is rebuilt per call rather than
// cached.
func (g *HTTPGateway) loginClient(creds *Credentials) (*http.Client, error) {
	var identity *tls.Certificate
	if bundle := creds.CertBundle(); len(bundle) > 0 {
		key, cert, err := pkcs12.Decode(bundle, certBundlePassphrase)
		if err != nil {
			return nil, ErrLoginTransport.WithDetails("decode certificate bundle").WithCause(err)
		}
		identity = &tls.Certificate{
			Certificate: [][]byte{cert.Raw},
			PrivateKey:  key,
			Leaf:        cert,
		}
	}

	transport, err := newTransport(g.cfg, identity)
	if err != nil {
		return nil, ErrLoginTransport.WithCause(err)
	}
	return &http.Client{
		Timeout:   g.cfg.Timeout,
		Transport: transport,
	}, nil
}

// keepAliveResponse is the identity keep-alive endpoint response body.
type keepAliveResponse struct {
	Token   string `json:"token"`
	Product string `json:"product"`
	Status  string `json:"status"`
	Error   string `json:"error"`
}

// KeepAlive implements Gateway.
func (g *HTTPGateway) KeepAlive(ctx context.Context, token string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoints.KeepAlive, nil)
	if err != nil {
		return ErrTransport.WithCause(err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", g.userAgent)
	httpReq.Header.Set("X-Application", g.appKey)
	httpReq.Header.Set("X-Authentication", token)

	resp, err := g.call.Do(httpReq)
	if err != nil {
		return ErrTransport.WithDetails("keep-alive call").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrTransport.WithDetails(fmt.Sprintf("http status %d", resp.StatusCode))
	}

	var ka keepAliveResponse
	if err := json.NewDecoder(resp.Body).Decode(&ka); err != nil {
		return ErrProtocol.WithDetails("decode keep-alive response").WithCause(err)
	}

	if ka.Status != KeepAliveStatusSuccess {
		if ka.Error == KeepAliveErrNoSession {
			return ErrSessionRejected.WithDetails("keep-alive: " + ka.Error)
		}
		return &Error{
			Kind:    KindRemote,
			Code:    ka.Error,
			Message: "keep-alive failed",
		}
	}
	return nil
}
