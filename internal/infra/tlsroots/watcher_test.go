package tlsroots

import (
	"crypto/tls"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// identityPair writes a fresh client cert/key pair into a temp
// directory and returns both paths.
func identityPair(t *testing.T) (certFile, keyFile string) {
	t.Helper()

	tmpDir := t.TempDir()
	certFile = filepath.Join(tmpDir, "client.crt")
	keyFile = filepath.Join(tmpDir, "client.key")
	writeIdentityPair(t, certFile, keyFile)
	return certFile, keyFile
}

func TestNewWatcher(t *testing.T) {
	certFile, keyFile := identityPair(t)

	w, err := NewWatcher(certFile, keyFile)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	if w.cert == nil {
		t.Error("NewWatcher() did not load initial certificate")
	}
}

func TestNewWatcher_InvalidCert(t *testing.T) {
	tmpDir := t.TempDir()
	certFile := filepath.Join(tmpDir, "client.crt")
	keyFile := filepath.Join(tmpDir, "client.key")

	os.WriteFile(certFile, []byte("invalid"), 0644)
	os.WriteFile(keyFile, []byte("invalid"), 0600)

	if _, err := NewWatcher(certFile, keyFile); err == nil {
		t.Error("NewWatcher() expected error for invalid certificate")
	}
}

func TestNewWatcher_NonexistentFiles(t *testing.T) {
	if _, err := NewWatcher("/nonexistent/cert.pem", "/nonexistent/key.pem"); err == nil {
		t.Error("NewWatcher() expected error for nonexistent files")
	}
}

func TestWatcher_GetClientCertificate(t *testing.T) {
	certFile, keyFile := identityPair(t)

	w, err := NewWatcher(certFile, keyFile)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	cert, err := w.GetClientCertificate(nil)
	if err != nil {
		t.Errorf("GetClientCertificate() error = %v", err)
	}
	if cert == nil {
		t.Error("GetClientCertificate() returned nil")
	}
}

func TestWatcher_StartStop(t *testing.T) {
	certFile, keyFile := identityPair(t)

	w, err := NewWatcher(certFile, keyFile,
		WithLogger(slog.Default()),
		WithDebounce(100*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	w.StartAsync()
	time.Sleep(50 * time.Millisecond)

	// Stop should not block
	w.Stop()
}

func TestWatcher_Stop_Idempotent(t *testing.T) {
	certFile, keyFile := identityPair(t)

	w, err := NewWatcher(certFile, keyFile)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	w.Stop()
	w.Stop()
}

func TestWatcher_ReloadOnChange(t *testing.T) {
	certFile, keyFile := identityPair(t)

	w, err := NewWatcher(certFile, keyFile,
		WithDebounce(50*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	w.StartAsync()
	defer w.Stop()

	// Give the fsnotify loop time to come up before rewriting.
	time.Sleep(100 * time.Millisecond)

	// Simulate a certificate renewal in place.
	writeIdentityPair(t, certFile, keyFile)

	// Debounce plus settle delay before the reload lands.
	time.Sleep(300 * time.Millisecond)

	newCert, err := w.GetClientCertificate(nil)
	if err != nil {
		t.Fatalf("GetClientCertificate() error = %v", err)
	}
	if newCert == nil {
		t.Error("certificate is nil after reload")
	}
}

func TestWatcher_Options(t *testing.T) {
	certFile, keyFile := identityPair(t)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	w, err := NewWatcher(certFile, keyFile,
		WithLogger(logger),
		WithDebounce(200*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	if w.logger != logger {
		t.Error("WithLogger() option not applied")
	}
	if w.debounce != 200*time.Millisecond {
		t.Errorf("WithDebounce() option not applied, got %v", w.debounce)
	}
}

func TestWatcher_TLSConfigIntegration(t *testing.T) {
	certFile, keyFile := identityPair(t)

	w, err := NewWatcher(certFile, keyFile)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	// The HTTP gateway wires the watcher in exactly like this.
	tlsConfig := &tls.Config{
		GetClientCertificate: w.GetClientCertificate,
		MinVersion:           tls.VersionTLS12,
	}

	cert, err := tlsConfig.GetClientCertificate(&tls.CertificateRequestInfo{})
	if err != nil {
		t.Errorf("GetClientCertificate() error = %v", err)
	}
	if cert == nil {
		t.Error("GetClientCertificate() returned nil")
	}
}
