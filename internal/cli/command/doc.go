// Package command provides CLI command definitions for betlink-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root application, global flags, output selection
//   - session.go: Session construction, ping and keepalive commands
//   - market.go: Market discovery subcommand group
//   - book.go: Live price command
//   - order.go: Order placement and cancellation
//   - config.go: Configuration inspection commands
//   - shell.go: Interactive shell mode
//
// Commands follow a consistent pattern of loading configuration,
// building an authenticated session, calling the typed bindings, and
// formatting output.
package command
