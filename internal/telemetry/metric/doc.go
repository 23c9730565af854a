// Package metric provides Prometheus metrics for the exchange client.
//
// Metrics cover the session lifecycle and request path:
//
//   - Login attempts, by result
//   - Keep-alive calls, by result
//   - Business calls, by outcome kind
//   - Token refreshes triggered by auth failures
//
// Metrics are registered against a caller-supplied prometheus.Registerer,
// so multiple independent clients can share or isolate registries.
package metric
