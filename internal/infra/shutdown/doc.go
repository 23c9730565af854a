// Package shutdown provides graceful shutdown for BetLink.
//
// This package handles process termination signals:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Timeout-based forced shutdown
//   - Cleanup callback registration
//
// The keep-alive command uses it to close the exchange session cleanly
// before the process exits.
package shutdown
