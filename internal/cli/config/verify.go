// Package config defines the client configuration structure.
package config

import (
	"errors"
	"os"
)

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if err := verifySession(&cfg.Session); err != nil {
		return err
	}
	return verifyExchange(&cfg.Exchange)
}

func verifySession(cfg *SessionSection) error {
	if cfg.Username == "" {
		return errors.New("session.username is required")
	}
	if cfg.Password == "" {
		return errors.New("session.password is required")
	}
	if cfg.AppKey == "" {
		return errors.New("session.app_key is required")
	}
	if cfg.CertBundleFile != "" && cfg.CertPEMFile != "" {
		return errors.New("session.cert_bundle_file and session.cert_pem_file are mutually exclusive")
	}
	if (cfg.CertPEMFile == "") != (cfg.KeyPEMFile == "") {
		return errors.New("session.cert_pem_file and session.key_pem_file must be set together")
	}
	if cfg.CertBundleFile != "" {
		if _, err := os.Stat(cfg.CertBundleFile); err != nil {
			return errors.New("session.cert_bundle_file: " + err.Error())
		}
	}
	if cfg.KeepAliveInterval <= 0 {
		return errors.New("session.keep_alive_interval must be positive")
	}
	if cfg.LoginRetryDelay <= 0 {
		return errors.New("session.login_retry_delay must be positive")
	}
	return nil
}

func verifyExchange(cfg *ExchangeSection) error {
	if cfg.RPCURL == "" {
		return errors.New("exchange.rpc_url is required")
	}
	if cfg.LoginURL == "" {
		return errors.New("exchange.login_url is required")
	}
	if cfg.KeepAliveURL == "" {
		return errors.New("exchange.keep_alive_url is required")
	}
	if cfg.RequestsPerSecond < 0 {
		return errors.New("exchange.requests_per_second must not be negative")
	}
	if cfg.Burst < 0 {
		return errors.New("exchange.burst must not be negative")
	}
	return nil
}
