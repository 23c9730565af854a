package command

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

const testSessionToken = "MGUxNTA5ZWYtZTkzZS00MTdjLWJhZTk="

// mockExchange emulates the identity and RPC endpoints behind a single
// httptest server.
type mockExchange struct {
	server *httptest.Server

	mu      sync.Mutex
	logins  int
	methods []string
	results map[string]any
}

func newMockExchange(t *testing.T) *mockExchange {
	t.Helper()
	m := &mockExchange{results: map[string]any{}}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/certlogin", m.handleLogin)
	mux.HandleFunc("/api/keepAlive", m.handleKeepAlive)
	mux.HandleFunc("/rpc", m.handleRPC)
	m.server = httptest.NewServer(mux)
	t.Cleanup(m.server.Close)
	return m
}

// result registers the canned result payload for a fully qualified method.
func (m *mockExchange) result(method string, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[method] = payload
}

func (m *mockExchange) loginCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logins
}

func (m *mockExchange) calledMethods() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.methods...)
}

func (m *mockExchange) handleLogin(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.logins++
	m.mu.Unlock()
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{
		"sessionToken": testSessionToken,
		"loginStatus":  "SUCCESS",
	})
}

func (m *mockExchange) handleKeepAlive(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]string{
		"token":   r.Header.Get("X-Authentication"),
		"product": r.Header.Get("X-Application"),
		"status":  "SUCCESS",
	})
}

func (m *mockExchange) handleRPC(w http.ResponseWriter, r *http.Request) {
	if got := r.Header.Get("X-Authentication"); got != testSessionToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req struct {
		JSONRPC string          `json:"jsonrpc"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params"`
		ID      string          `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	m.methods = append(m.methods, req.Method)
	payload, ok := m.results[req.Method]
	m.mu.Unlock()
	if !ok {
		payload = []any{}
	}

	json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0",
		"result":  payload,
		"id":      req.ID,
	})
}

// writeTestConfig writes a config file wired to the mock exchange and a
// freshly generated client certificate pair.
func writeTestConfig(t *testing.T, m *mockExchange) string {
	t.Helper()
	dir := t.TempDir()
	certFile := filepath.Join(dir, "client.crt")
	keyFile := filepath.Join(dir, "client.key")
	writeClientCertPair(t, certFile, keyFile)

	cfg := fmt.Sprintf(`session:
  username: tester
  password: hunter2
  app_key: testappkey
  cert_pem_file: %s
  key_pem_file: %s
exchange:
  rpc_url: %s/rpc
  login_url: %s/api/certlogin
  keep_alive_url: %s/api/keepAlive
log:
  level: error
`, certFile, keyFile, m.server.URL, m.server.URL, m.server.URL)

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func writeClientCertPair(t *testing.T, certFile, keyFile string) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "betlink-test-client"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("creating certificate: %v", err)
	}
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("marshaling key: %v", err)
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})

	if err := os.WriteFile(certFile, certPEM, 0o600); err != nil {
		t.Fatalf("writing cert: %v", err)
	}
	if err := os.WriteFile(keyFile, keyPEM, 0o600); err != nil {
		t.Fatalf("writing key: %v", err)
	}
}

// runCommand runs the CLI with the given arguments against the mock
// exchange and returns stdout.
func runCommand(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	app := App()
	var buf bytes.Buffer
	app.Writer = &buf
	full := append([]string{"betlink-cli", "--config", cfgPath, "--output", "json"}, args...)
	err := app.Run(full)
	return buf.String(), err
}

func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("output %q does not contain %q", s, substr)
	}
}
