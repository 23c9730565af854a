package repl

import "strings"

// Completer provides command completion for the shell.
type Completer struct {
	commands []string
}

// NewCompleter creates a new Completer.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"market", "market event-types", "market competitions", "market events",
			"market types", "market countries", "market venues", "market time-ranges",
			"market catalogue",
			"book",
			"order", "order place", "order cancel",
			"session", "session ping", "session keepalive",
			"config", "config show", "config path",
			"version",
			"help", "exit", "quit",
		},
	}
}

// Complete returns completion suggestions for the given prefix.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
