// Package tlsroots provides TLS certificate management for BetLink.
//
// This package handles TLS certificate loading and management:
//
//   - roots.go: System certificates + custom CA loading
//   - watcher.go: Client-identity hot-reload via fsnotify
//
// The exchange identity endpoint authenticates clients with mutual TLS.
// The watcher keeps a PEM cert/key pair loaded and hands the current
// certificate to the HTTP transport through GetClientCertificate, so a
// renewed certificate is picked up without restarting the process.
package tlsroots
