package exchange

import (
	"fmt"
	"os"
)

// certBundlePassphrase is the passphrase for the PKCS#12 certificate
// bundle. The exchange issues bundles without one.
const certBundlePassphrase = ""

// Credentials holds the long-lived identity material for one exchange
// account: username, password, the PKCS#12 client certificate bundle used
// for certificate login, and the application key sent on every call.
//
// Credentials are immutable after construction and live for the lifetime
// of the Client that owns them.
type Credentials struct {
	username   string
	password   string
	certBundle []byte
	appKey     string
}

// NewCredentials creates credentials from in-memory material. The
// certificate bundle may be nil when the gateway is configured with a
// PEM identity instead (see GatewayConfig.ClientCertificate).
func NewCredentials(username, password string, certBundle []byte, appKey string) (*Credentials, error) {
	if username == "" {
		return nil, fmt.Errorf("exchange: username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("exchange: password is required")
	}
	if appKey == "" {
		return nil, fmt.Errorf("exchange: application key is required")
	}
	return &Credentials{
		username:   username,
		password:   password,
		certBundle: certBundle,
		appKey:     appKey,
	}, nil
}

// CredentialsFromFile creates credentials reading the PKCS#12 certificate
// bundle from disk.
func CredentialsFromFile(username, password, certBundlePath, appKey string) (*Credentials, error) {
	bundle, err := os.ReadFile(certBundlePath)
	if err != nil {
		return nil, fmt.Errorf("exchange: read certificate bundle %s: %w", certBundlePath, err)
	}
	return NewCredentials(username, password, bundle, appKey)
}

// Username returns the account username.
func (c *Credentials) Username() string { return c.username }

// AppKey returns the application key.
func (c *Credentials) AppKey() string { return c.appKey }

// CertBundle returns the PKCS#12 certificate bundle bytes, or nil when
// none was supplied.
func (c *Credentials) CertBundle() []byte { return c.certBundle }

// loginForm returns the urlencoded form values for the certificate login
// call.
func (c *Credentials) loginForm() map[string][]string {
	return map[string][]string{
		"username": {c.username},
		"password": {c.password},
	}
}

// String implements fmt.Stringer with secrets redacted.
func (c *Credentials) String() string {
	return fmt.Sprintf("Credentials{username: %s, password: ***, certBundle: %d bytes, appKey: ***}",
		c.username, len(c.certBundle))
}
