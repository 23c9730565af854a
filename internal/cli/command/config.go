package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/betlink-go/internal/cli/config"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration inspection",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration with secrets masked",
				Action: configShowAction,
			},
			{
				Name:   "path",
				Usage:  "Print the default configuration file path",
				Action: configPathAction,
			},
		},
	}
}

func configShowAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	return render(c, config.Sanitize(cfg))
}

func configPathAction(c *cli.Context) error {
	_, err := fmt.Fprintln(c.App.Writer, config.DefaultConfigPath())
	return err
}
