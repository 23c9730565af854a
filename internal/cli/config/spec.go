// Package config defines the client configuration structure.
package config

import "time"

// Config is the root configuration for betlink-cli.
type Config struct {
	Session  SessionSection  `koanf:"session"`
	Exchange ExchangeSection `koanf:"exchange"`
	Log      LogSection      `koanf:"log"`
}

// SessionSection configures the exchange account identity and the
// session lifecycle.
type SessionSection struct {
	// Username is the exchange account name.
	Username string `koanf:"username"`

	// Password is the exchange account password.
	Password string `koanf:"password"`

	// AppKey is the application key sent with every call.
	AppKey string `koanf:"app_key"`

	// CertBundleFile is a PKCS#12 client certificate bundle for the
	// identity endpoint. Mutually exclusive with the PEM pair below.
	CertBundleFile string `koanf:"cert_bundle_file"`

	// CertPEMFile and KeyPEMFile hold the client identity as a PEM
	// pair. The pair is watched and hot-reloaded.
	CertPEMFile string `koanf:"cert_pem_file"`
	KeyPEMFile  string `koanf:"key_pem_file"`

	// KeepAliveInterval is the gap between keep-alive probes.
	KeepAliveInterval time.Duration `koanf:"keep_alive_interval"`

	// LoginRetryDelay is the fixed wait between failed login attempts.
	LoginRetryDelay time.Duration `koanf:"login_retry_delay"`
}

// ExchangeSection configures the remote endpoints and transport.
type ExchangeSection struct {
	// RPCURL is the JSON-RPC betting endpoint.
	RPCURL string `koanf:"rpc_url"`

	// LoginURL is the certificate login endpoint.
	LoginURL string `koanf:"login_url"`

	// KeepAliveURL is the keep-alive endpoint.
	KeepAliveURL string `koanf:"keep_alive_url"`

	// ProxyURL routes all exchange traffic through an HTTP(S) proxy
	// when set.
	ProxyURL string `koanf:"proxy_url"`

	// Timeout bounds each HTTP round trip.
	Timeout time.Duration `koanf:"timeout"`

	// RequestsPerSecond caps the call rate (0 = unpaced). Burst is the
	// limiter burst size.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	// CAFile adds a custom root CA (proxies, test endpoints).
	CAFile string `koanf:"ca_file"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
