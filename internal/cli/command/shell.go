package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/betlink-go/internal/cli/repl"
)

func shellCommand() *cli.Command {
	return &cli.Command{
		Name:   "shell",
		Usage:  "Interactive shell",
		Action: shellAction,
	}
}

func shellAction(c *cli.Context) error {
	// Global flags given to the shell invocation carry over to every
	// line typed into it.
	carried := []string{"betlink-cli"}
	if v := c.String("config"); v != "" {
		carried = append(carried, "--config", v)
	}
	if v := c.String("output"); v != "" {
		carried = append(carried, "--output", v)
	}
	if c.Bool("wide") {
		carried = append(carried, "--wide")
	}
	if v := c.String("log-level"); v != "" {
		carried = append(carried, "--log-level", v)
	}

	r := repl.New(func(args []string) error {
		app := App()
		app.Writer = c.App.Writer
		app.ErrWriter = c.App.ErrWriter
		return app.Run(append(append([]string(nil), carried...), args...))
	})
	return r.Run()
}
