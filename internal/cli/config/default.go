// Package config defines the client configuration structure.
package config

import (
	"github.com/yndnr/betlink-go/pkg/exchange"
)

// Default configuration values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default client configuration.
func Default() *Config {
	return &Config{
		Session: SessionSection{
			KeepAliveInterval: exchange.DefaultKeepAliveInterval,
			LoginRetryDelay:   exchange.DefaultLoginRetryDelay,
		},
		Exchange: ExchangeSection{
			RPCURL:       exchange.DefaultExchangeURL,
			LoginURL:     exchange.DefaultCertLoginURL,
			KeepAliveURL: exchange.DefaultKeepAliveURL,
			Timeout:      exchange.DefaultTimeout,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
