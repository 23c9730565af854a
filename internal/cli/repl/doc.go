// Package repl provides the interactive shell mode for betlink-cli.
//
// The shell reads command lines, keeps a persistent history under
// ~/.betlink/history, and dispatches each line to the regular command
// tree so interactive and one-shot invocations behave identically:
//
//   - repl.go: Main loop and command dispatch
//   - completer.go: Prefix completion for command names
//   - history.go: Command history persistence
package repl
